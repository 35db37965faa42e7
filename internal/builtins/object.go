package builtins

import (
	"github.com/ppyne/protoscript/internal/interp"
	"github.com/ppyne/protoscript/internal/object"
)

// registerObjectPrototype installs Object.prototype's own methods:
// toString, valueOf, hasOwnProperty, isPrototypeOf.
func registerObjectPrototype(vm *interp.Interp, proto *object.Object) {
	native(vm, proto, "toString", 0, func(this object.Value, args []object.Value) (object.Value, error) {
		if this.IsObject() {
			return object.Str(this.Object().DebugTag()), nil
		}
		return object.Str(this.TypeOf()), nil
	})
	native(vm, proto, "valueOf", 0, func(this object.Value, args []object.Value) (object.Value, error) {
		return this, nil
	})
	native(vm, proto, "hasOwnProperty", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		if !this.IsObject() {
			return object.Bool(false), nil
		}
		name, err := reqString(vm, args, 0)
		if err != nil {
			return object.Undefined, err
		}
		obj := this.Object()
		if obj.Kind == object.ArrayKind {
			if idx, ok := arrayKeyIndex(name); ok {
				_, present := obj.GetIndex(idx)
				return object.Bool(present), nil
			}
		}
		return object.Bool(obj.HasOwn(name)), nil
	})
	native(vm, proto, "isPrototypeOf", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		other := argOr(args, 0)
		if !this.IsObject() || !other.IsObject() {
			return object.Bool(false), nil
		}
		for cur := other.Object().Prototype; cur != nil; cur = cur.Prototype {
			if cur == this.Object() {
				return object.Bool(true), nil
			}
		}
		return object.Bool(false), nil
	})
}

func arrayKeyIndex(key string) (int, bool) {
	if key == "" {
		return 0, false
	}
	n := 0
	for _, c := range key {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// registerObjectConstructor installs the global Object function: called as
// a function or with `new`, it boxes its argument (or builds a fresh
// plain object for no argument / undefined / null), plus the static
// Object.keys/Object.create helpers used widely by script code.
func registerObjectConstructor(vm *interp.Interp) {
	ctor := constructor(vm, "Object", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		arg := argOr(args, 0)
		if arg.IsUndefined() || arg.IsNull() {
			o := object.New(vm.Proto.Object)
			vm.Heap.Track(o, 0)
			return object.Obj(o), nil
		}
		if arg.IsObject() {
			return arg, nil
		}
		return boxPrimitive(vm, arg), nil
	}, vm.Proto.Object)

	native(vm, ctor, "keys", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		arg := argOr(args, 0)
		arr := object.NewArray(vm.Proto.Array)
		vm.Heap.Track(arr, 0)
		if arg.IsObject() {
			for _, name := range arg.Object().OwnEnumerableOrder() {
				arr.Push(object.Str(name))
			}
		}
		return object.Obj(arr), nil
	})
	native(vm, ctor, "create", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		arg := argOr(args, 0)
		var proto *object.Object
		if arg.IsObject() {
			proto = arg.Object()
		}
		o := object.New(proto)
		vm.Heap.Track(o, 0)
		return object.Obj(o), nil
	})
	native(vm, ctor, "getPrototypeOf", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		arg := argOr(args, 0)
		if !arg.IsObject() || arg.Object().Prototype == nil {
			return object.Null, nil
		}
		return object.Obj(arg.Object().Prototype), nil
	})
}

// boxPrimitive wraps a primitive value in its corresponding wrapper
// object, as Object(primitive) and the call-receiver boxing rule do.
func boxPrimitive(vm *interp.Interp, v object.Value) object.Value {
	switch v.Kind() {
	case object.BooleanKind:
		w := object.NewBooleanWrapper(vm.Proto.Boolean, v.Bool())
		vm.Heap.Track(w, 0)
		return object.Obj(w)
	case object.NumberKind:
		w := object.NewNumberWrapper(vm.Proto.Number, v.Number())
		vm.Heap.Track(w, 0)
		return object.Obj(w)
	case object.StringKind:
		w := object.NewStringWrapper(vm.Proto.String, v.String())
		vm.Heap.Track(w, int64(len(v.String())))
		return object.Obj(w)
	}
	return v
}
