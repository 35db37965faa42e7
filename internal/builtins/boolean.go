package builtins

import (
	"github.com/ppyne/protoscript/internal/interp"
	"github.com/ppyne/protoscript/internal/object"
)

func registerBooleanPrototype(vm *interp.Interp) {
	proto := vm.Proto.Boolean
	native(vm, proto, "toString", 0, func(this object.Value, args []object.Value) (object.Value, error) {
		if thisBool(this) {
			return object.Str("true"), nil
		}
		return object.Str("false"), nil
	})
	native(vm, proto, "valueOf", 0, func(this object.Value, args []object.Value) (object.Value, error) {
		return object.Bool(thisBool(this)), nil
	})
}

func registerBooleanConstructor(vm *interp.Interp) {
	constructor(vm, "Boolean", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		b := argOr(args, 0).ToBoolean()
		if o, ok := thisFreshInstance(this); ok {
			o.Kind = object.BooleanWrapperKind
			o.Internal = object.Bool(b)
			return this, nil
		}
		return object.Bool(b), nil
	}, vm.Proto.Boolean)
}
