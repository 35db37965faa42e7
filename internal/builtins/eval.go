package builtins

import (
	"github.com/ppyne/protoscript/internal/interp"
	"github.com/ppyne/protoscript/internal/object"
)

// registerEval installs the eval() global: a non-string argument is
// returned unchanged, a string is parsed and run in the caller's scope
// by interp.EvalString. Native functions never get a fresh call
// environment pushed for them, so vm.Env() here is still the lexical
// environment active at the eval(...) call site.
//
// A direct call `eval(...)` is intercepted syntactically in
// internal/interp's evalCall (matched against vm.EvalFn) and never
// reaches this closure; it runs there so a thrown value's identity
// survives intact. This closure only backs indirect uses - `eval` passed
// or referenced as a value, e.g. `var e = eval; e(src)` - where a thrown
// value has to cross the plain (Value, error) native-call bridge and is
// best-effort wrapped, the same as any other native-to-script callback.
func registerEval(vm *interp.Interp) {
	fn := object.NewNativeFunction(vm.Proto.Function, "eval", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		arg := argOr(args, 0)
		if arg.Kind() != object.StringKind {
			return arg, nil
		}
		v, c := vm.EvalString(arg.String())
		if c.DidThrow {
			vm.SetException(c.ThrowValue)
			msg, _ := object.ToString(vm, c.ThrowValue)
			return object.Undefined, typeErr("%s", msg)
		}
		return v, nil
	})
	vm.Heap.Track(fn, 0)
	vm.Global.Define("eval", object.Obj(fn), object.DONTENUM)
	vm.EvalFn = fn
}
