// Package object implements the tagged Value union, the prototype-chain
// Object representation, and the specialized internal slots (array,
// function, wrapper, Date, RegExp, Buffer/Buffer32) that back every script
// value.
package object

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind tags the variant a Value currently holds.
type Kind uint8

const (
	UndefinedKind Kind = iota
	NullKind
	BooleanKind
	NumberKind
	StringKind
	ObjectKind
)

func (k Kind) String() string {
	switch k {
	case UndefinedKind:
		return "undefined"
	case NullKind:
		return "null"
	case BooleanKind:
		return "boolean"
	case NumberKind:
		return "number"
	case StringKind:
		return "string"
	case ObjectKind:
		return "object"
	default:
		return "unknown"
	}
}

// Value is the tagged sum described by the data model: Undefined, Null,
// Boolean, Number, String, or Object. All variants are cheap to copy; Obj
// is a heap handle owned by the collector.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	obj  *Object
}

var (
	Undefined = Value{kind: UndefinedKind}
	Null      = Value{kind: NullKind}
	True      = Value{kind: BooleanKind, b: true}
	False     = Value{kind: BooleanKind, b: false}
)

// Bool returns the Boolean value wrapping b.
func Bool(b bool) Value {
	if b {
		return True
	}
	return False
}

// Num returns a Number value.
func Num(n float64) Value { return Value{kind: NumberKind, n: n} }

// Str returns a String value.
func Str(s string) Value { return Value{kind: StringKind, s: s} }

// Obj returns an Object value. Passing a nil *Object is a bug — use Null
// instead, per the data model's invariant that Object(null-handle) is
// forbidden.
func Obj(o *Object) Value {
	if o == nil {
		panic("object.Obj: nil *Object; use object.Null instead")
	}
	return Value{kind: ObjectKind, obj: o}
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsUndefined, IsNull, IsObject report the variant directly.
func (v Value) IsUndefined() bool { return v.kind == UndefinedKind }
func (v Value) IsNull() bool      { return v.kind == NullKind }
func (v Value) IsObject() bool    { return v.kind == ObjectKind }
func (v Value) IsPrimitive() bool { return v.kind != ObjectKind }

// Bool, Number, String, Object extract the payload; callers must already
// know the Kind matches (typically after a type switch in the evaluator).
func (v Value) Bool() bool      { return v.b }
func (v Value) Number() float64 { return v.n }
func (v Value) String() string  { return v.s }
func (v Value) Object() *Object { return v.obj }

// TypeOf implements the `typeof` operator's result string.
func (v Value) TypeOf() string {
	switch v.kind {
	case UndefinedKind:
		return "undefined"
	case NullKind:
		return "object"
	case BooleanKind:
		return "boolean"
	case NumberKind:
		return "number"
	case StringKind:
		return "string"
	case ObjectKind:
		if v.obj.Kind == FunctionKind {
			return "function"
		}
		return "object"
	}
	return "undefined"
}

// ToBoolean implements ToBoolean: falsy are undefined, null, false, ±0,
// NaN, and the empty string; every object (including wrapper objects) is
// truthy.
func (v Value) ToBoolean() bool {
	switch v.kind {
	case UndefinedKind, NullKind:
		return false
	case BooleanKind:
		return v.b
	case NumberKind:
		return v.n != 0 && !math.IsNaN(v.n)
	case StringKind:
		return v.s != ""
	default:
		return true
	}
}

// numberToString renders a float64 using shortest-round-trip formatting
// with the special ES tokens, collapsing -0 to "0".
func numberToString(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	case n == 0:
		return "0"
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// stringToNumber implements the string-to-number half of ToNumber: decimal
// or 0x-prefixed hex, surrounding whitespace stripped, empty string is 0,
// anything else unparsable is NaN.
func stringToNumber(s string) float64 {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0
	}
	if len(t) > 1 && (strings.HasPrefix(t, "0x") || strings.HasPrefix(t, "0X")) {
		v, err := strconv.ParseUint(t[2:], 16, 64)
		if err != nil {
			return math.NaN()
		}
		return float64(v)
	}
	switch t {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// ToInt32 implements the ECMAScript ToInt32 conversion.
func ToInt32(n float64) int32 {
	if math.IsNaN(n) || math.IsInf(n, 0) || n == 0 {
		return 0
	}
	m := math.Mod(math.Trunc(n), 4294967296)
	if m < 0 {
		m += 4294967296
	}
	if m >= 2147483648 {
		m -= 4294967296
	}
	return int32(m)
}

// ToUint32 implements the ECMAScript ToUint32 conversion.
func ToUint32(n float64) uint32 {
	if math.IsNaN(n) || math.IsInf(n, 0) || n == 0 {
		return 0
	}
	m := math.Mod(math.Trunc(n), 4294967296)
	if m < 0 {
		m += 4294967296
	}
	return uint32(m)
}

// DebugString renders a Value for diagnostics (e.g. --dump-ast, panics);
// it never invokes user code, unlike ToString/ToPrimitive which require
// the call protocol for objects.
func (v Value) DebugString() string {
	switch v.kind {
	case UndefinedKind:
		return "undefined"
	case NullKind:
		return "null"
	case BooleanKind:
		if v.b {
			return "true"
		}
		return "false"
	case NumberKind:
		return numberToString(v.n)
	case StringKind:
		return fmt.Sprintf("%q", v.s)
	case ObjectKind:
		return v.obj.DebugTag()
	}
	return "<invalid>"
}
