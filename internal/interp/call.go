package interp

import (
	"fmt"

	"github.com/ppyne/protoscript/internal/env"
	"github.com/ppyne/protoscript/internal/errors"
	"github.com/ppyne/protoscript/internal/object"
	"github.com/ppyne/protoscript/internal/token"
)

// CallFunction invokes fn with the given receiver and arguments: bound
// functions unwrap to their target with preset this/args prepended,
// native functions run directly, and script functions get a fresh call
// frame (fast parameter slots, arguments object, hoisted vars/nested
// function declarations) pushed as the current environment for the
// duration of the body.
func (vm *Interp) CallFunction(fn *object.Object, this object.Value, args []object.Value, pos token.Position) (object.Value, Completion) {
	if !object.IsCallable(object.Obj(fn)) {
		return vm.ThrowValuef(pos, errors.TypeError, "value is not a function")
	}
	slot := fn.FuncSlot()

	if slot.IsBound {
		boundArgs := make([]object.Value, 0, len(slot.BoundArgs)+len(args))
		boundArgs = append(boundArgs, slot.BoundArgs...)
		boundArgs = append(boundArgs, args...)
		return vm.CallFunction(slot.BoundTarget, slot.BoundThis, boundArgs, pos)
	}

	if err := vm.CallStack.Push(slot.Name, pos); err != nil {
		return vm.ThrowValuef(pos, errors.RangeError, "Maximum call stack size exceeded")
	}
	defer vm.CallStack.Pop()

	if slot.Native != nil {
		v, err := slot.Native(this, args)
		if err != nil {
			kind := errors.Generic
			if ne, ok := err.(*errors.NativeError); ok {
				kind = ne.Kind
			}
			return object.Undefined, throwCompletion(object.Obj(vm.NewError(kind, pos, err.Error())))
		}
		return v, Completion{}
	}

	receiver := boxReceiver(vm, this)

	paramNames := make([]string, len(slot.Params))
	for i, p := range slot.Params {
		paramNames[i] = p.Name
	}
	closureEnv, _ := slot.Closure.(*env.Env)
	callEnv := env.NewCall(closureEnv, fn, receiver, vm.Proto.Array, paramNames, args)

	// Parameter defaults: a parameter whose corresponding argument is
	// missing or undefined evaluates its default expression (if any) in
	// the new call frame, so earlier parameters are already bound.
	prevForDefaults := vm.PushEnv(callEnv)
	for i, p := range slot.Params {
		if p.Default == nil {
			continue
		}
		if i < len(args) && !args[i].IsUndefined() {
			continue
		}
		v, c := vm.evalExpression(p.Default)
		if c.DidThrow {
			vm.RestoreEnv(prevForDefaults)
			return object.Undefined, c
		}
		callEnv.SetParam(i, v)
	}
	vm.RestoreEnv(prevForDefaults)

	prev := vm.PushEnv(callEnv)
	vm.Heap.PushRootEnv(prev)
	env.Hoist(callEnv, slot.Body.Statements, vm.makeFunctionValue)
	vm.Heap.SafePoint()

	completion := vm.evalStatements(slot.Body.Statements)

	vm.Heap.PopRootEnv()
	vm.RestoreEnv(prev)

	if completion.DidThrow {
		return object.Undefined, completion
	}
	if completion.DidReturn {
		return completion.Value, Completion{}
	}
	return object.Undefined, Completion{}
}

// boxReceiver applies ES1's call-receiver rule: undefined/null this
// becomes the global object, and a primitive this is wrapped in its
// corresponding wrapper object so member access inside the function body
// works the same as on an explicit wrapper.
func boxReceiver(vm *Interp, this object.Value) object.Value {
	if this.IsUndefined() || this.IsNull() {
		return object.Obj(vm.Global)
	}
	if this.IsPrimitive() {
		switch this.Kind() {
		case object.BooleanKind:
			w := object.NewBooleanWrapper(vm.Proto.Boolean, this.Bool())
			vm.Heap.Track(w, 0)
			return object.Obj(w)
		case object.NumberKind:
			w := object.NewNumberWrapper(vm.Proto.Number, this.Number())
			vm.Heap.Track(w, 0)
			return object.Obj(w)
		case object.StringKind:
			w := object.NewStringWrapper(vm.Proto.String, this.String())
			vm.Heap.Track(w, int64(len(this.String())))
			return object.Obj(w)
		}
	}
	return this
}

// Construct implements `new fn(args...)`: a fresh object is allocated
// with fn's "prototype" property (or Object.prototype if that isn't an
// object) as its prototype, fn runs against it as this, and the
// constructor's own return value is used only if it is itself an object.
func (vm *Interp) Construct(fn *object.Object, args []object.Value, pos token.Position) (object.Value, Completion) {
	if !object.IsCallable(object.Obj(fn)) {
		return vm.ThrowValuef(pos, errors.TypeError, "value is not a constructor")
	}
	protoObj := vm.Proto.Object
	if pv, ok := fn.Get("prototype"); ok && pv.IsObject() {
		protoObj = pv.Object()
	}
	instance := object.New(protoObj)
	vm.Heap.Track(instance, 0)

	result, c := vm.CallFunction(fn, object.Obj(instance), args, pos)
	if c.DidThrow {
		return object.Undefined, c
	}
	if result.IsObject() {
		return result, Completion{}
	}
	return object.Obj(instance), Completion{}
}

// Call implements object.Caller for the coercion helpers in
// internal/object: ToPrimitive/ToString/ToNumber invoke toString/valueOf
// through this method. A thrown exception is recorded on the VM (so a
// surrounding try/catch still sees it) and surfaced as a plain Go error,
// since object.Caller predates (and must stay independent of) this
// package's Completion type.
func (vm *Interp) Call(fn *object.Object, this object.Value, args []object.Value) (object.Value, error) {
	v, c := vm.CallFunction(fn, this, args, token.Position{})
	if c.DidThrow {
		vm.SetException(c.ThrowValue)
		msg, _ := object.ToString(vm, c.ThrowValue)
		return object.Undefined, fmt.Errorf("%s", msg)
	}
	return v, nil
}
