package interp

import (
	"fmt"

	"github.com/ppyne/protoscript/internal/errors"
	"github.com/ppyne/protoscript/internal/object"
	"github.com/ppyne/protoscript/internal/token"
)

// protoFor maps a script error kind to its prototype object; builtins
// registers these onto vm.Proto before any script runs.
func (vm *Interp) protoFor(kind errors.Kind) *object.Object {
	switch kind {
	case errors.TypeError:
		return vm.Proto.TypeError
	case errors.RangeError:
		return vm.Proto.RangeError
	case errors.ReferenceError:
		return vm.Proto.ReferenceError
	case errors.SyntaxError:
		return vm.Proto.SyntaxError
	case errors.EvalError:
		return vm.Proto.EvalError
	default:
		return vm.Proto.Error
	}
}

// NewError allocates a script Error object of the given kind, carrying
// name, message, and a stack string captured from the current call
// stack plus pos.
func (vm *Interp) NewError(kind errors.Kind, pos token.Position, message string) *object.Object {
	o := object.New(vm.protoFor(kind))
	o.Define("name", object.Str(kind.String()), 0)
	o.Define("message", object.Str(message), 0)
	o.Define("line", object.Num(float64(pos.Line)), 0)
	o.Define("column", object.Num(float64(pos.Column)), 0)
	stack := kind.String() + ": " + message + "\n" + vm.CallStack.FormatStack()
	o.Define("stack", object.Str(stack), 0)
	return o
}

// NewErrorWithCause is NewError plus an attached `cause` property, for the
// two-argument Error constructor form (`new Error(message, {cause})`).
func (vm *Interp) NewErrorWithCause(kind errors.Kind, pos token.Position, message string, cause object.Value) *object.Object {
	o := vm.NewError(kind, pos, message)
	o.Define("cause", cause, 0)
	return o
}

// Throwf builds a Completion carrying a freshly constructed Error of kind,
// formatted with fmt.Sprintf(format, args...). This is the evaluator's
// usual way of signaling a runtime error: `return vm.Throwf(pos,
// errors.TypeError, "%s is not a function", name)`.
func (vm *Interp) Throwf(pos token.Position, kind errors.Kind, format string, args ...interface{}) Completion {
	msg := fmt.Sprintf(format, args...)
	return throwCompletion(object.Obj(vm.NewError(kind, pos, msg)))
}

// ThrowValuef is Throwf's expression-evaluator counterpart: it returns the
// (Value, Completion) pair expression evaluation uses, with Value left as
// Undefined since any abrupt completion makes the paired value moot.
func (vm *Interp) ThrowValuef(pos token.Position, kind errors.Kind, format string, args ...interface{}) (object.Value, Completion) {
	return object.Undefined, vm.Throwf(pos, kind, format, args...)
}
