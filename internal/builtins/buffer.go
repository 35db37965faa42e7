package builtins

import (
	"github.com/ppyne/protoscript/internal/interp"
	"github.com/ppyne/protoscript/internal/object"
)

// registerBufferPrototype installs the methods shared by Buffer and
// Buffer32 instances: indexed get/set itself is handled directly by the
// member-access evaluator (internal/interp/expressions.go), so only
// slice and toString live here.
func registerBufferPrototype(vm *interp.Interp, proto *object.Object) {
	native(vm, proto, "slice", 2, func(this object.Value, args []object.Value) (object.Value, error) {
		slot, ok := bufferSlot(this)
		if !ok {
			return object.Undefined, typeErr("Buffer.prototype.slice called on a non-buffer")
		}
		n := slot.Len()
		start, err := bufferIndexArg(vm, args, 0, 0)
		if err != nil {
			return object.Undefined, err
		}
		end, err := bufferIndexArg(vm, args, 1, n)
		if err != nil {
			return object.Undefined, err
		}
		start = clampIndex(start, n)
		end = clampIndex(end, n)
		if end < start {
			end = start
		}
		out := newBufferLike(vm, this.Object().Kind, proto, end-start)
		outSlot, _ := bufferSlot(object.Obj(out))
		for i := start; i < end; i++ {
			v, _ := slot.Get(i)
			outSlot.Set(i-start, v)
		}
		return object.Obj(out), nil
	})
	native(vm, proto, "toString", 0, func(this object.Value, args []object.Value) (object.Value, error) {
		slot, ok := bufferSlot(this)
		if !ok {
			return object.Str("[object Object]"), nil
		}
		name := "Buffer"
		if slot.Width == 4 {
			name = "Buffer32"
		}
		return object.Str(name), nil
	})
}

func bufferSlot(this object.Value) (*object.BufferSlot, bool) {
	if !this.IsObject() {
		return nil, false
	}
	s := this.Object().BufferSlot()
	return s, s != nil
}

func newBufferLike(vm *interp.Interp, kind object.ObjKind, proto *object.Object, size int) *object.Object {
	var o *object.Object
	if kind == object.Buffer32Kind {
		o = object.NewBuffer32(proto, size)
	} else {
		o = object.NewBuffer(proto, size)
	}
	vm.Heap.Track(o, int64(size))
	return o
}

func bufferIndexArg(vm *interp.Interp, args []object.Value, i, def int) (int, error) {
	v := argOr(args, i)
	if v.IsUndefined() {
		return def, nil
	}
	n, err := toNum(vm, v)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// registerBufferConstructor installs `new Buffer(size)`: a fixed-size
// byte array whose indexed writes clamp to [0, 255], grounded on
// ps_buffer.c's alloc/size/slice surface, reshaped here into a
// constructible global per this implementation's object model.
func registerBufferConstructor(vm *interp.Interp) {
	ctor := constructor(vm, "Buffer", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		size, err := bufferConstructSize(vm, args)
		if err != nil {
			return object.Undefined, err
		}
		buf := object.NewBuffer(vm.Proto.Buffer, size)
		vm.Heap.Track(buf, int64(size))
		return object.Obj(buf), nil
	}, vm.Proto.Buffer)
	native(vm, ctor, "alloc", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		size, err := bufferConstructSize(vm, args)
		if err != nil {
			return object.Undefined, err
		}
		buf := object.NewBuffer(vm.Proto.Buffer, size)
		vm.Heap.Track(buf, int64(size))
		return object.Obj(buf), nil
	})
}

// registerBuffer32Constructor installs `new Buffer32(size)`: a fixed-size
// array of raw 32-bit words (no clamping on write, values wrap via
// ToUint32).
func registerBuffer32Constructor(vm *interp.Interp) {
	ctor := constructor(vm, "Buffer32", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		size, err := bufferConstructSize(vm, args)
		if err != nil {
			return object.Undefined, err
		}
		buf := object.NewBuffer32(vm.Proto.Buffer32, size)
		vm.Heap.Track(buf, int64(size*4))
		return object.Obj(buf), nil
	}, vm.Proto.Buffer32)
	native(vm, ctor, "alloc", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		size, err := bufferConstructSize(vm, args)
		if err != nil {
			return object.Undefined, err
		}
		buf := object.NewBuffer32(vm.Proto.Buffer32, size)
		vm.Heap.Track(buf, int64(size*4))
		return object.Obj(buf), nil
	})
}

func bufferConstructSize(vm *interp.Interp, args []object.Value) (int, error) {
	n, err := reqNumber(vm, args, 0)
	if err != nil {
		return 0, err
	}
	if n != n || n < 0 {
		return 0, rangeErr("Invalid buffer size")
	}
	return int(n), nil
}
