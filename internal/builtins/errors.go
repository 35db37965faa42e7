package builtins

import (
	"github.com/ppyne/protoscript/internal/errors"
	"github.com/ppyne/protoscript/internal/interp"
	"github.com/ppyne/protoscript/internal/object"
)

// registerErrorPrototypes installs the shared Error.prototype.toString
// (and a "name"/"message" default pair) on Error and each derived kind's
// prototype, so an uncaught/uninitialized error still stringifies
// sensibly.
func registerErrorPrototypes(vm *interp.Interp) {
	kinds := []struct {
		proto *object.Object
		name  string
	}{
		{vm.Proto.Error, "Error"},
		{vm.Proto.TypeError, "TypeError"},
		{vm.Proto.RangeError, "RangeError"},
		{vm.Proto.ReferenceError, "ReferenceError"},
		{vm.Proto.SyntaxError, "SyntaxError"},
		{vm.Proto.EvalError, "EvalError"},
	}
	for _, k := range kinds {
		k.proto.Define("name", object.Str(k.name), object.DONTENUM)
		k.proto.Define("message", object.Str(""), object.DONTENUM)
		native(vm, k.proto, "toString", 0, func(this object.Value, args []object.Value) (object.Value, error) {
			return errorToString(vm, this)
		})
	}
}

func errorToString(vm *interp.Interp, this object.Value) (object.Value, error) {
	if !this.IsObject() {
		return object.Str("Error"), nil
	}
	o := this.Object()
	name := "Error"
	if v, ok := o.Get("name"); ok {
		s, err := toStr(vm, v)
		if err != nil {
			return object.Undefined, err
		}
		name = s
	}
	message := ""
	if v, ok := o.Get("message"); ok {
		s, err := toStr(vm, v)
		if err != nil {
			return object.Undefined, err
		}
		message = s
	}
	if message == "" {
		return object.Str(name), nil
	}
	return object.Str(name + ": " + message), nil
}

// registerErrorConstructors installs Error and its five derived
// constructors. Each supports the one-argument (message) and two-argument
// (message, {cause}) forms; called with `new`, the fresh instance (whose
// prototype Construct already set from the constructor's own "prototype"
// property) gets its own message/cause defined directly, leaving name
// lookup to fall through to the prototype.
func registerErrorConstructors(vm *interp.Interp) {
	define := func(name string, kind errors.Kind, proto *object.Object) {
		constructor(vm, name, 1, func(this object.Value, args []object.Value) (object.Value, error) {
			message := ""
			if len(args) > 0 && !args[0].IsUndefined() {
				s, err := toStr(vm, args[0])
				if err != nil {
					return object.Undefined, err
				}
				message = s
			}
			instance, ok := thisFreshInstance(this)
			if !ok {
				instance = object.New(proto)
				vm.Heap.Track(instance, 0)
			}
			instance.Define("message", object.Str(message), 0)
			if len(args) > 1 && args[1].IsObject() {
				if cause, ok := args[1].Object().Get("cause"); ok {
					instance.Define("cause", cause, 0)
				}
			}
			stack := kind.String() + ": " + message + "\n" + vm.CallStack.FormatStack()
			instance.Define("stack", object.Str(stack), 0)
			return object.Obj(instance), nil
		}, proto)
	}
	define("Error", errors.Generic, vm.Proto.Error)
	define("TypeError", errors.TypeError, vm.Proto.TypeError)
	define("RangeError", errors.RangeError, vm.Proto.RangeError)
	define("ReferenceError", errors.ReferenceError, vm.Proto.ReferenceError)
	define("SyntaxError", errors.SyntaxError, vm.Proto.SyntaxError)
	define("EvalError", errors.EvalError, vm.Proto.EvalError)
}
