package builtins

import (
	"math"
	"strconv"

	"github.com/ppyne/protoscript/internal/interp"
	"github.com/ppyne/protoscript/internal/object"
)

func registerNumberPrototype(vm *interp.Interp) {
	proto := vm.Proto.Number
	native(vm, proto, "toString", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		n, err := thisNumber(vm, this)
		if err != nil {
			return object.Undefined, err
		}
		radix := 10
		if len(args) > 0 && !args[0].IsUndefined() {
			r, err := toNum(vm, args[0])
			if err != nil {
				return object.Undefined, err
			}
			radix = int(r)
		}
		if radix == 10 || math.IsNaN(n) || math.IsInf(n, 0) {
			s, err := toStr(vm, object.Num(n))
			if err != nil {
				return object.Undefined, err
			}
			return object.Str(s), nil
		}
		return object.Str(strconv.FormatInt(int64(n), radix)), nil
	})
	native(vm, proto, "valueOf", 0, func(this object.Value, args []object.Value) (object.Value, error) {
		n, err := thisNumber(vm, this)
		if err != nil {
			return object.Undefined, err
		}
		return object.Num(n), nil
	})
	native(vm, proto, "toFixed", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		n, err := thisNumber(vm, this)
		if err != nil {
			return object.Undefined, err
		}
		digits := 0
		if len(args) > 0 && !args[0].IsUndefined() {
			d, err := toNum(vm, args[0])
			if err != nil {
				return object.Undefined, err
			}
			digits = int(d)
		}
		if digits < 0 || digits > 20 {
			return object.Undefined, typeErr("toFixed() digits argument must be between 0 and 20")
		}
		if math.IsNaN(n) {
			return object.Str("NaN"), nil
		}
		return object.Str(strconv.FormatFloat(n, 'f', digits, 64)), nil
	})
}

func registerNumberConstructor(vm *interp.Interp) {
	ctor := constructor(vm, "Number", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		n := 0.0
		if len(args) > 0 {
			v, err := toNum(vm, args[0])
			if err != nil {
				return object.Undefined, err
			}
			n = v
		}
		if o, ok := thisFreshInstance(this); ok {
			o.Kind = object.NumberWrapperKind
			o.Internal = object.Num(n)
			return this, nil
		}
		return object.Num(n), nil
	}, vm.Proto.Number)

	ctor.Define("MAX_VALUE", object.Num(math.MaxFloat64), object.READONLY|object.DONTENUM|object.DONTDELETE)
	ctor.Define("MIN_VALUE", object.Num(math.SmallestNonzeroFloat64), object.READONLY|object.DONTENUM|object.DONTDELETE)
	ctor.Define("NaN", object.Num(math.NaN()), object.READONLY|object.DONTENUM|object.DONTDELETE)
	ctor.Define("POSITIVE_INFINITY", object.Num(math.Inf(1)), object.READONLY|object.DONTENUM|object.DONTDELETE)
	ctor.Define("NEGATIVE_INFINITY", object.Num(math.Inf(-1)), object.READONLY|object.DONTENUM|object.DONTDELETE)
}
