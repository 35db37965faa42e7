// Package interp is the tree-walking evaluator: the statement and
// expression evaluators, the call protocol and frame stack, and the VM
// state (globals, built-in prototypes, heap, pending exception) every
// evaluation step reads or mutates.
package interp

import (
	"io"

	"github.com/ppyne/protoscript/internal/env"
	"github.com/ppyne/protoscript/internal/gc"
	"github.com/ppyne/protoscript/internal/object"
)

// Prototypes holds the built-in prototype objects the evaluator consults
// directly (for `instanceof`-free kind checks, wrapper unboxing, and
// constructing Error objects of the right kind). internal/builtins fills
// these in after constructing an Interp and before running any script, so
// this package never needs to import internal/builtins itself.
type Prototypes struct {
	Object   *object.Object
	Function *object.Object
	Array    *object.Object
	Boolean  *object.Object
	Number   *object.Object
	String   *object.Object
	Date     *object.Object
	RegExp   *object.Object
	Buffer   *object.Object
	Buffer32 *object.Object

	Error          *object.Object
	TypeError      *object.Object
	RangeError     *object.Object
	ReferenceError *object.Object
	SyntaxError    *object.Object
	EvalError      *object.Object
}

// Interp is one VM instance: one global scope, one heap, one call stack.
// Host embedding code (pkg/script) and internal/builtins both hold a
// *Interp to register native functions and run scripts against it.
type Interp struct {
	Global     *object.Object
	GlobalEnv  *env.Env
	Proto      Prototypes
	Heap       *gc.Heap
	CallStack  *CallStack
	HostFrames []*object.Object // host module objects registered at init

	// Output receives print/println text. Discarded silently when nil,
	// matching the host embedding's default of not wiring a writer until
	// asked to.
	Output io.Writer

	// EvalFn is the registered eval() native function object, if any.
	// evalCall compares a call's resolved callee against this pointer so a
	// direct `eval(...)` call runs EvalString in place rather than through
	// the native-function dispatch in call.go, which only has a plain Go
	// error to carry a thrown value through and would lose the original
	// value's identity.
	EvalFn *object.Object

	current   *env.Env
	exception *object.Value
}

// New creates a VM with a fresh global object and environment. Call
// internal/builtins.Register(vm) (or an equivalent host setup routine)
// before evaluating any script, so Proto and the global object carry the
// standard library.
func New() *Interp {
	vm := &Interp{Global: object.New(nil)}
	vm.GlobalEnv = env.NewGlobal(vm.Global)
	vm.current = vm.GlobalEnv
	vm.CallStack = NewCallStack(0)
	vm.Heap = gc.NewHeap(vm)
	return vm
}

// Env returns the environment the evaluator is presently running against.
func (vm *Interp) Env() *env.Env { return vm.current }

// PushEnv enters e as the current environment, returning the previous one
// so the caller can restore it afterward. The caller is responsible for
// rooting the previous environment across any allocation-triggering
// sub-evaluation via Heap.PushRootEnv/PopRootEnv.
func (vm *Interp) PushEnv(e *env.Env) (prev *env.Env) {
	prev = vm.current
	vm.current = e
	return prev
}

// RestoreEnv sets the current environment back to prev (as returned by
// PushEnv).
func (vm *Interp) RestoreEnv(prev *env.Env) { vm.current = prev }

// Exception returns the pending thrown value and whether one is set.
func (vm *Interp) Exception() (object.Value, bool) {
	if vm.exception == nil {
		return object.Undefined, false
	}
	return *vm.exception, true
}

// SetException records a pending exception.
func (vm *Interp) SetException(v object.Value) { vm.exception = &v }

// ClearException clears the pending exception (done once a catch clause
// takes it).
func (vm *Interp) ClearException() { vm.exception = nil }

// ObjectProto, ArrayProto, and Track let internal/jsonvalue allocate
// plain objects/arrays and register them with the heap without importing
// internal/interp's full Prototypes/gc.Heap surface.
func (vm *Interp) ObjectProto() *object.Object { return vm.Proto.Object }
func (vm *Interp) ArrayProto() *object.Object  { return vm.Proto.Array }
func (vm *Interp) Track(o *object.Object, size int64) { vm.Heap.Track(o, size) }

// --- gc.Roots ---

// GlobalObjects implements gc.Roots.
func (vm *Interp) GlobalObjects() []*object.Object {
	objs := []*object.Object{vm.Global}
	protos := []*object.Object{
		vm.Proto.Object, vm.Proto.Function, vm.Proto.Array, vm.Proto.Boolean,
		vm.Proto.Number, vm.Proto.String, vm.Proto.Date, vm.Proto.RegExp,
		vm.Proto.Buffer, vm.Proto.Buffer32, vm.Proto.Error, vm.Proto.TypeError,
		vm.Proto.RangeError, vm.Proto.ReferenceError, vm.Proto.SyntaxError,
		vm.Proto.EvalError,
	}
	for _, p := range protos {
		if p != nil {
			objs = append(objs, p)
		}
	}
	objs = append(objs, vm.HostFrames...)
	return objs
}

// CurrentEnv implements gc.Roots; env.Env satisfies gc.EnvTracer
// structurally (see internal/gc's EnvTracer doc), so no adapter type is
// needed between the two packages.
func (vm *Interp) CurrentEnv() gc.EnvTracer {
	if vm.current == nil {
		return nil
	}
	return vm.current
}

// PendingValues implements gc.Roots.
func (vm *Interp) PendingValues() []object.Value {
	if vm.exception != nil {
		return []object.Value{*vm.exception}
	}
	return nil
}
