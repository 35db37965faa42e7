package object

import (
	"fmt"
	"math"
)

// Caller lets the coercion helpers invoke toString/valueOf through the
// real call protocol without the object package depending on
// internal/interp; interp implements this interface and is the only
// concrete caller passed in.
type Caller interface {
	Call(fn *Object, this Value, args []Value) (Value, error)
}

// ToPrimitive implements ToPrimitive(v, hint). hint is one of "string",
// "number", or "default" (which behaves as "number" except that Date
// objects default to "string").
func ToPrimitive(c Caller, v Value, hint string) (Value, error) {
	if v.IsPrimitive() {
		return v, nil
	}
	obj := v.Object()
	if hint == "default" {
		if obj.Kind == DateKind {
			hint = "string"
		} else {
			hint = "number"
		}
	}
	order := [2]string{"valueOf", "toString"}
	if hint == "string" {
		order = [2]string{"toString", "valueOf"}
	}
	for _, name := range order {
		fnVal, ok := obj.Get(name)
		if !ok || !IsCallable(fnVal) {
			continue
		}
		res, err := c.Call(fnVal.Object(), v, nil)
		if err != nil {
			return Undefined, err
		}
		if res.IsPrimitive() {
			return res, nil
		}
	}
	return Undefined, fmt.Errorf("TypeError: Cannot convert object to primitive value")
}

// primToString stringifies a value already known to be primitive.
func primToString(v Value) string {
	switch v.Kind() {
	case UndefinedKind:
		return "undefined"
	case NullKind:
		return "null"
	case BooleanKind:
		if v.Bool() {
			return "true"
		}
		return "false"
	case NumberKind:
		return numberToString(v.Number())
	case StringKind:
		return v.String()
	default:
		return ""
	}
}

// ToString implements ToString(v): ToPrimitive(String) then stringify.
func ToString(c Caller, v Value) (string, error) {
	prim, err := ToPrimitive(c, v, "string")
	if err != nil {
		return "", err
	}
	return primToString(prim), nil
}

// ToNumber implements ToNumber(v): ToPrimitive(Number) then numeric
// coercion of the primitive.
func ToNumber(c Caller, v Value) (float64, error) {
	prim, err := ToPrimitive(c, v, "number")
	if err != nil {
		return 0, err
	}
	switch prim.Kind() {
	case UndefinedKind:
		return math.NaN(), nil
	case NullKind:
		return 0, nil
	case BooleanKind:
		if prim.Bool() {
			return 1, nil
		}
		return 0, nil
	case NumberKind:
		return prim.Number(), nil
	case StringKind:
		return stringToNumber(prim.String()), nil
	default:
		return math.NaN(), nil
	}
}

// StrictEquals implements ===: same-kind comparison, NaN never equal,
// objects by identity, strings by code-point sequence.
func StrictEquals(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case UndefinedKind, NullKind:
		return true
	case BooleanKind:
		return a.Bool() == b.Bool()
	case NumberKind:
		return a.Number() == b.Number()
	case StringKind:
		return a.String() == b.String()
	case ObjectKind:
		return a.Object() == b.Object()
	}
	return false
}

// AbstractEquals implements ==: same-type reduces to strict equality;
// null/undefined are mutually equal; number/string and boolean coerce to
// number; object/primitive coerces the object via ToPrimitive(Default)
// and recurses.
func AbstractEquals(c Caller, a, b Value) (bool, error) {
	if a.Kind() == b.Kind() {
		return StrictEquals(a, b), nil
	}
	if (a.IsNull() && b.IsUndefined()) || (a.IsUndefined() && b.IsNull()) {
		return true, nil
	}
	if a.Kind() == NumberKind && b.Kind() == StringKind {
		return a.Number() == stringToNumber(b.String()), nil
	}
	if a.Kind() == StringKind && b.Kind() == NumberKind {
		return stringToNumber(a.String()) == b.Number(), nil
	}
	if a.Kind() == BooleanKind {
		return AbstractEquals(c, Num(boolToNum(a.Bool())), b)
	}
	if b.Kind() == BooleanKind {
		return AbstractEquals(c, a, Num(boolToNum(b.Bool())))
	}
	if a.Kind() == ObjectKind && (b.Kind() == NumberKind || b.Kind() == StringKind) {
		prim, err := ToPrimitive(c, a, "default")
		if err != nil {
			return false, err
		}
		return AbstractEquals(c, prim, b)
	}
	if b.Kind() == ObjectKind && (a.Kind() == NumberKind || a.Kind() == StringKind) {
		prim, err := ToPrimitive(c, b, "default")
		if err != nil {
			return false, err
		}
		return AbstractEquals(c, a, prim)
	}
	return false, nil
}

func boolToNum(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// CompareResult is the outcome of a relational comparison: numbers or
// strings compare definitely, but NaN propagation yields Undefined (which
// every relational operator treats as false).
type CompareResult int

const (
	CompareLess CompareResult = iota
	CompareEqual
	CompareGreater
	CompareUndefined
)

// Compare implements the relational comparison algorithm shared by <, <=,
// >, >=: ToPrimitive(Number) both sides; if both become strings, compare
// lexicographically by code point; otherwise numerically with NaN
// propagating as CompareUndefined.
func Compare(c Caller, a, b Value) (CompareResult, error) {
	pa, err := ToPrimitive(c, a, "number")
	if err != nil {
		return CompareUndefined, err
	}
	pb, err := ToPrimitive(c, b, "number")
	if err != nil {
		return CompareUndefined, err
	}
	if pa.Kind() == StringKind && pb.Kind() == StringKind {
		sa, sb := pa.String(), pb.String()
		switch {
		case sa < sb:
			return CompareLess, nil
		case sa > sb:
			return CompareGreater, nil
		default:
			return CompareEqual, nil
		}
	}
	na, err := ToNumber(c, pa)
	if err != nil {
		return CompareUndefined, err
	}
	nb, err := ToNumber(c, pb)
	if err != nil {
		return CompareUndefined, err
	}
	if math.IsNaN(na) || math.IsNaN(nb) {
		return CompareUndefined, nil
	}
	switch {
	case na < nb:
		return CompareLess, nil
	case na > nb:
		return CompareGreater, nil
	default:
		return CompareEqual, nil
	}
}
