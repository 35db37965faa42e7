package builtins

import (
	"fmt"
	"math"

	"github.com/ppyne/protoscript/internal/errors"
	"github.com/ppyne/protoscript/internal/interp"
	"github.com/ppyne/protoscript/internal/object"
)

func nan() float64   { return math.NaN() }
func inf(s int) float64 { return math.Inf(s) }

// toNum coerces v via the real ToNumber algorithm, surfacing any thrown
// valueOf/toString error as a plain Go error (wrapped by the call
// protocol into a thrown Error object).
func toNum(vm *interp.Interp, v object.Value) (float64, error) {
	return object.ToNumber(vm, v)
}

func toStr(vm *interp.Interp, v object.Value) (string, error) {
	return object.ToString(vm, v)
}

func reqString(vm *interp.Interp, args []object.Value, i int) (string, error) {
	return toStr(vm, argOr(args, i))
}

func reqNumber(vm *interp.Interp, args []object.Value, i int) (float64, error) {
	return toNum(vm, argOr(args, i))
}

// thisString unwraps `this` into a Go string, whether it is a primitive
// string or a String wrapper object.
func thisString(vm *interp.Interp, this object.Value) (string, error) {
	if this.Kind() == object.StringKind {
		return this.String(), nil
	}
	if this.IsObject() {
		if p, ok := this.Object().WrappedPrimitive(); ok && p.Kind() == object.StringKind {
			return p.String(), nil
		}
	}
	return toStr(vm, this)
}

func thisNumber(vm *interp.Interp, this object.Value) (float64, error) {
	if this.Kind() == object.NumberKind {
		return this.Number(), nil
	}
	if this.IsObject() {
		if p, ok := this.Object().WrappedPrimitive(); ok && p.Kind() == object.NumberKind {
			return p.Number(), nil
		}
	}
	return toNum(vm, this)
}

func thisBool(this object.Value) bool {
	if this.Kind() == object.BooleanKind {
		return this.Bool()
	}
	if this.IsObject() {
		if p, ok := this.Object().WrappedPrimitive(); ok && p.Kind() == object.BooleanKind {
			return p.Bool()
		}
	}
	return this.ToBoolean()
}

// typeErr and rangeErr build a NativeError so the call protocol throws a
// real TypeError/RangeError object, not a generic Error, when a native
// method rejects its receiver or arguments.
func typeErr(format string, args ...interface{}) error {
	return &errors.NativeError{Kind: errors.TypeError, Message: fmt.Sprintf(format, args...)}
}

func rangeErr(format string, args ...interface{}) error {
	return &errors.NativeError{Kind: errors.RangeError, Message: fmt.Sprintf(format, args...)}
}

func syntaxErr(format string, args ...interface{}) error {
	return &errors.NativeError{Kind: errors.SyntaxError, Message: fmt.Sprintf(format, args...)}
}

// thisFreshInstance reports whether this is the plain instance object
// Construct allocates for `new F(...)` (as opposed to F() called as a
// plain function, where this is whatever the call site supplied). Native
// wrapper constructors (Boolean/Number/String/Date/RegExp) use this to
// decide whether to turn the fresh instance into a proper wrapper object
// in place, rather than just returning a primitive.
func thisFreshInstance(this object.Value) (*object.Object, bool) {
	if this.IsObject() && this.Object().Kind == object.PlainKind {
		return this.Object(), true
	}
	return nil, false
}
