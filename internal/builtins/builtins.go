// Package builtins wires the global object and the standard prototype
// chain onto a freshly constructed internal/interp.Interp: Object,
// Function, Array, Boolean, Number, String, Date, RegExp, Buffer,
// Buffer32, the Error family, Math, JSON, and the two host-facing I/O
// functions print and println. internal/interp stays independent of
// this package (it only exposes the Prototypes struct fields builtins
// fills in), avoiding an import cycle between the evaluator and its
// standard library.
package builtins

import (
	"github.com/ppyne/protoscript/internal/interp"
	"github.com/ppyne/protoscript/internal/object"
)

// Register installs the full standard library onto vm: it must be called
// once, before any script runs against vm.
func Register(vm *interp.Interp) {
	objectProto := object.New(nil)
	functionProto := object.NewKind(objectProto, object.FunctionKind)
	functionProto.Internal = &object.FuncSlot{Name: ""}

	vm.Proto.Object = objectProto
	vm.Proto.Function = functionProto
	vm.Proto.Array = object.NewKind(objectProto, object.ArrayKind)
	vm.Proto.Boolean = object.New(objectProto)
	vm.Proto.Number = object.New(objectProto)
	vm.Proto.String = object.New(objectProto)
	vm.Proto.Date = object.New(objectProto)
	vm.Proto.RegExp = object.New(objectProto)
	vm.Proto.Buffer = object.New(objectProto)
	vm.Proto.Buffer32 = object.New(objectProto)

	vm.Proto.Error = object.New(objectProto)
	vm.Proto.TypeError = object.New(vm.Proto.Error)
	vm.Proto.RangeError = object.New(vm.Proto.Error)
	vm.Proto.ReferenceError = object.New(vm.Proto.Error)
	vm.Proto.SyntaxError = object.New(vm.Proto.Error)
	vm.Proto.EvalError = object.New(vm.Proto.Error)

	registerObjectPrototype(vm, objectProto)
	registerFunctionPrototype(vm, functionProto)
	registerArrayPrototype(vm)
	registerBooleanPrototype(vm)
	registerNumberPrototype(vm)
	registerStringPrototype(vm)
	registerDatePrototype(vm)
	registerRegExpPrototype(vm)
	registerBufferPrototype(vm, vm.Proto.Buffer)
	registerBufferPrototype(vm, vm.Proto.Buffer32)
	registerErrorPrototypes(vm)

	vm.Global.Define("this", object.Obj(vm.Global), object.DONTENUM)
	vm.Global.Define("undefined", object.Undefined, object.READONLY|object.DONTENUM|object.DONTDELETE)
	vm.Global.Define("NaN", object.Num(nan()), object.READONLY|object.DONTENUM|object.DONTDELETE)
	vm.Global.Define("Infinity", object.Num(inf(1)), object.READONLY|object.DONTENUM|object.DONTDELETE)

	registerMath(vm)
	registerJSON(vm)
	registerIO(vm)

	registerObjectConstructor(vm)
	registerFunctionConstructor(vm)
	registerArrayConstructor(vm)
	registerBooleanConstructor(vm)
	registerNumberConstructor(vm)
	registerStringConstructor(vm)
	registerDateConstructor(vm)
	registerRegExpConstructor(vm)
	registerBufferConstructor(vm)
	registerBuffer32Constructor(vm)
	registerErrorConstructors(vm)
	registerEval(vm)
}

// native registers a NativeFunc on proto/global object o under name,
// tracked on the heap like any other function object.
func native(vm *interp.Interp, o *object.Object, name string, arity int, fn object.NativeFunc) {
	f := object.NewNativeFunction(vm.Proto.Function, name, arity, fn)
	vm.Heap.Track(f, 0)
	o.Define(name, object.Obj(f), object.DONTENUM)
}

// constructor registers a NativeFunc as a named global constructor (also
// callable without `new`, in the idiomatic `NativeFunc` sense — the
// function itself decides what `this` means).
func constructor(vm *interp.Interp, name string, arity int, fn object.NativeFunc, proto *object.Object) *object.Object {
	f := object.NewNativeFunction(vm.Proto.Function, name, arity, fn)
	vm.Heap.Track(f, 0)
	if proto != nil {
		f.Define("prototype", object.Obj(proto), object.DONTENUM|object.DONTDELETE|object.READONLY)
		proto.Define("constructor", object.Obj(f), object.DONTENUM)
	}
	vm.Global.Define(name, object.Obj(f), object.DONTENUM)
	return f
}

func argOr(args []object.Value, i int) object.Value {
	if i < len(args) {
		return args[i]
	}
	return object.Undefined
}
