package builtins

import (
	"github.com/ppyne/protoscript/internal/interp"
	"github.com/ppyne/protoscript/internal/object"
	"github.com/ppyne/protoscript/internal/token"
)

// registerFunctionPrototype installs Function.prototype's call apply
// bind, and toString — the call/construct protocol itself lives in
// internal/interp/call.go; these are thin wrappers over it.
func registerFunctionPrototype(vm *interp.Interp, proto *object.Object) {
	native(vm, proto, "call", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		if !object.IsCallable(this) {
			return object.Undefined, typeErr("Function.prototype.call called on a non-function")
		}
		var callThis object.Value = object.Undefined
		var rest []object.Value
		if len(args) > 0 {
			callThis = args[0]
			rest = args[1:]
		}
		v, c := vm.CallFunction(this.Object(), callThis, rest, token.Position{})
		return nativeResult(vm, v, c)
	})
	native(vm, proto, "apply", 2, func(this object.Value, args []object.Value) (object.Value, error) {
		if !object.IsCallable(this) {
			return object.Undefined, typeErr("Function.prototype.apply called on a non-function")
		}
		var callThis object.Value = object.Undefined
		if len(args) > 0 {
			callThis = args[0]
		}
		var rest []object.Value
		if len(args) > 1 && args[1].IsObject() {
			arr := args[1].Object()
			rest = make([]object.Value, arr.Length())
			for i := range rest {
				rest[i], _ = arr.GetIndex(i)
			}
		}
		v, c := vm.CallFunction(this.Object(), callThis, rest, token.Position{})
		return nativeResult(vm, v, c)
	})
	native(vm, proto, "bind", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		if !object.IsCallable(this) {
			return object.Undefined, typeErr("Function.prototype.bind called on a non-function")
		}
		var boundThis object.Value = object.Undefined
		var preset []object.Value
		if len(args) > 0 {
			boundThis = args[0]
			preset = args[1:]
		}
		bound := object.NewBoundFunction(vm.Proto.Function, this.Object(), boundThis, preset)
		vm.Heap.Track(bound, 0)
		return object.Obj(bound), nil
	})
	native(vm, proto, "toString", 0, func(this object.Value, args []object.Value) (object.Value, error) {
		name := ""
		if this.IsObject() && this.Object().FuncSlot() != nil {
			name = this.Object().FuncSlot().Name
		}
		return object.Str("function " + name + "() { [native code] }"), nil
	})
}

// nativeResult converts a call's (Value, Completion) into the
// (Value, error) shape a NativeFunc returns: a thrown completion's value
// is recorded as the pending exception (so an enclosing try/catch in the
// real evaluator still observes the actual object), mirroring
// internal/interp.Interp.Call.
func nativeResult(vm *interp.Interp, v object.Value, c interp.Completion) (object.Value, error) {
	if c.DidThrow {
		vm.SetException(c.ThrowValue)
		msg, _ := object.ToString(vm, c.ThrowValue)
		return object.Undefined, typeErr("%s", msg)
	}
	return v, nil
}

func registerFunctionConstructor(vm *interp.Interp) {
	constructor(vm, "Function", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		return object.Undefined, typeErr("Function constructor is not supported")
	}, vm.Proto.Function)
}
