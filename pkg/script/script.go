// Package script is the embeddable front door onto the interpreter: a
// host program constructs an Engine, optionally registers native
// functions and an output sink, then evaluates source text against it.
// It wraps internal/interp and internal/builtins so host code never has
// to import either directly.
package script

import (
	"fmt"
	"io"
	"os"

	"github.com/ppyne/protoscript/internal/builtins"
	"github.com/ppyne/protoscript/internal/errors"
	"github.com/ppyne/protoscript/internal/interp"
	"github.com/ppyne/protoscript/internal/lexer"
	"github.com/ppyne/protoscript/internal/object"
	"github.com/ppyne/protoscript/internal/parser"
)

// Value re-exports the tagged value type scripts and native functions
// exchange, so host code never imports internal/object itself.
type Value = object.Value

// NativeFunc is the signature a host-registered global function
// implements: it receives the call's `this` and arguments and returns
// either a result value or an error. A *errors... NativeError (unwrapped
// automatically by the interpreter) is not required; any Go error
// surfaces to the script as a generic Error's message.
type NativeFunc = object.NativeFunc

// Engine is one interpreter instance with the standard library loaded.
// It is not safe for concurrent use by multiple goroutines.
type Engine struct {
	vm *interp.Interp
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithOutput directs print/println output to w instead of discarding it.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) { e.vm.Output = w }
}

// WithStdout is WithOutput(os.Stdout), the common case for a CLI host.
func WithStdout() Option { return WithOutput(os.Stdout) }

// New constructs an Engine with the full standard library registered.
func New(opts ...Option) *Engine {
	vm := interp.New()
	builtins.Register(vm)
	e := &Engine{vm: vm}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RegisterFunction installs a native global function callable from
// script as name(...). Arity is advisory (used for Function.length); the
// callback still receives however many arguments the call site passed.
func (e *Engine) RegisterFunction(name string, arity int, fn NativeFunc) {
	f := object.NewNativeFunction(e.vm.Proto.Function, name, arity, fn)
	e.vm.Heap.Track(f, 0)
	e.vm.Global.Define(name, object.Obj(f), object.DONTENUM)
}

// Global reads a top-level binding, for host code inspecting state a
// script left behind (e.g. a computed result assigned to a global var).
func (e *Engine) Global(name string) (Value, bool) {
	return e.vm.Global.Get(name)
}

// SetGlobal installs or overwrites a top-level binding, for host code
// seeding input before a script runs.
func (e *Engine) SetGlobal(name string, v Value) {
	e.vm.Global.Define(name, v, object.DONTENUM)
}

// Result is what Eval/Run return: the value of the last evaluated
// expression statement (Undefined if the program ended on a
// non-expression statement), and an error when the source failed to
// compile or the script ended with an uncaught exception.
type Result struct {
	Value Value
	// Err, when non-nil, is an *UncaughtError (a script exception
	// propagated past every try/catch) or a *CompileError (parse
	// failure). Other Go error types never appear here.
	Err error
}

// CompileError reports a lex/parse failure: the source could not be
// turned into a runnable program at all.
type CompileError struct {
	File     string
	Messages []string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s: %d parse error(s): %v", e.File, len(e.Messages), e.Messages)
}

// UncaughtError reports a script-level exception that propagated past
// every try/catch to the top of the program.
type UncaughtError struct {
	Value Value
}

func (e *UncaughtError) Error() string {
	if e.Value.IsObject() {
		if msg, ok := e.Value.Object().Get("stack"); ok && msg.Kind() == object.StringKind {
			return msg.String()
		}
	}
	return e.Value.DebugString()
}

// Eval parses and runs src as a standalone program named file (used only
// for error messages), returning the result of its last expression
// statement.
func (e *Engine) Eval(file, src string) Result {
	p := parser.New(lexer.New(file, src))
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) != 0 {
		msgs := make([]string, len(errs))
		for i, pe := range errs {
			msgs[i] = pe.Error()
		}
		return Result{Err: &CompileError{File: file, Messages: msgs}}
	}

	c := e.vm.Run(prog)
	if c.DidThrow {
		return Result{Err: &UncaughtError{Value: c.ThrowValue}}
	}
	return Result{Value: c.Value}
}

// RunFile reads path from disk and evaluates it as a script.
func (e *Engine) RunFile(path string) Result {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{Err: &CompileError{File: path, Messages: []string{err.Error()}}}
	}
	return e.Eval(path, string(data))
}

// Call invokes a script-level function value with args, the way a
// registered native function would call back into script code.
func (e *Engine) Call(fn Value, this Value, args []Value) (Value, error) {
	if !fn.IsObject() || fn.Object().Kind != object.FunctionKind {
		return object.Undefined, fmt.Errorf("script: value is not callable")
	}
	return e.vm.Call(fn.Object(), this, args)
}

// ErrorKind re-exports the script error-kind vocabulary (TypeError,
// RangeError, ...) for host code building a NativeError.
type ErrorKind = errors.Kind

const (
	GenericError   = errors.Generic
	TypeError      = errors.TypeError
	RangeError     = errors.RangeError
	ReferenceError = errors.ReferenceError
	SyntaxError    = errors.SyntaxError
	EvalError      = errors.EvalError
)

// NewNativeError builds the Go error a NativeFunc returns to make the
// interpreter throw a specific script error kind instead of a generic
// Error.
func NewNativeError(kind ErrorKind, message string) error {
	return &errors.NativeError{Kind: kind, Message: message}
}
