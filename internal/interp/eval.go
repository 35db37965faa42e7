package interp

import (
	"strings"

	"github.com/ppyne/protoscript/internal/env"
	"github.com/ppyne/protoscript/internal/errors"
	"github.com/ppyne/protoscript/internal/lexer"
	"github.com/ppyne/protoscript/internal/object"
	"github.com/ppyne/protoscript/internal/parser"
	"github.com/ppyne/protoscript/internal/token"
)

// callDirectEval handles a call whose callee expression resolved directly
// to the eval function: a non-string argument is returned unchanged, a
// string is run against the caller's environment by EvalString. Running
// this in evalCall rather than through the native dispatch in call.go
// keeps a thrown value's exact identity intact - that dispatch only has a
// plain Go error to carry a failure through and would otherwise flatten
// any thrown value down to a generic Error built from its string form.
func (vm *Interp) callDirectEval(args []object.Value, pos token.Position) (object.Value, Completion) {
	if len(args) == 0 {
		return object.Undefined, Completion{}
	}
	if args[0].Kind() != object.StringKind {
		return args[0], Completion{}
	}
	if err := vm.CallStack.Push("eval", pos); err != nil {
		return vm.ThrowValuef(pos, errors.RangeError, "Maximum call stack size exceeded")
	}
	defer vm.CallStack.Pop()
	return vm.EvalString(args[0].String())
}

// EvalString implements the eval() global: src is parsed as a fresh
// program and its var/function declarations are hoisted into, then run
// against, the environment active when eval was called. ES1 has only
// direct eval, so a declaration inside the evaluated text leaks into the
// caller's scope exactly as if it had been written inline. A parse
// failure raises a SyntaxError instead of ever reaching evaluation.
func (vm *Interp) EvalString(src string) (object.Value, Completion) {
	p := parser.New(lexer.New("<eval>", src))
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) != 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return vm.ThrowValuef(token.Position{}, errors.SyntaxError, "%s", strings.Join(msgs, "; "))
	}
	callerEnv := vm.Env()
	env.Hoist(callerEnv, prog.Statements, vm.makeFunctionValue)
	c := vm.evalStatements(prog.Statements)
	if c.IsAbrupt() {
		return object.Undefined, c
	}
	return c.Value, Completion{}
}
