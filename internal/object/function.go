package object

import "github.com/ppyne/protoscript/internal/ast"

// Environment is the minimal surface a function closure needs from a
// lexical scope. internal/env's *Env satisfies it; object stays
// independent of the environment package to avoid an import cycle (env
// itself holds Objects for object/with environments).
type Environment interface {
	Get(name string) (Value, bool)
	Set(name string, v Value)
	Define(name string, v Value)
}

// NativeFunc is a host-implemented callback. Errors should be produced via
// the interpreter's error constructors so they carry the right prototype
// and stack; a plain Go error is converted to a generic Error object by
// the caller.
type NativeFunc func(this Value, args []Value) (Value, error)

// FuncSlot is the internal payload of a Function-kind Object: either a
// native callback or a script body closing over an environment, or (if
// IsBound) a bound wrapper around another function.
type FuncSlot struct {
	Native  NativeFunc
	Params  []ast.Param
	Body    *ast.Block
	Closure Environment
	Name    string

	IsBound     bool
	BoundTarget *Object
	BoundThis   Value
	BoundArgs   []Value
}

// NewNativeFunction allocates a Function object wrapping a native callback.
func NewNativeFunction(proto *Object, name string, arity int, fn NativeFunc) *Object {
	o := NewKind(proto, FunctionKind)
	o.Internal = &FuncSlot{Native: fn, Name: name}
	o.Define("name", Str(name), READONLY|DONTENUM)
	o.Define("length", Num(float64(arity)), READONLY|DONTENUM)
	return o
}

// NewScriptFunction allocates a Function object for a script-defined
// function expression/declaration.
func NewScriptFunction(proto, funcProto *Object, name string, params []ast.Param, body *ast.Block, closure Environment) *Object {
	o := NewKind(proto, FunctionKind)
	o.Internal = &FuncSlot{Params: params, Body: body, Closure: closure, Name: name}
	o.Define("name", Str(name), READONLY|DONTENUM)
	o.Define("length", Num(float64(len(params))), READONLY|DONTENUM)
	if funcProto != nil {
		funcProto.Define("constructor", Obj(o), DONTENUM)
		o.Define("prototype", Obj(funcProto), DONTENUM)
	}
	return o
}

// NewBoundFunction allocates the bound-function wrapper produced by
// Function.prototype.bind.
func NewBoundFunction(proto *Object, target *Object, this Value, presetArgs []Value) *Object {
	slot := target.FuncSlot()
	name := "bound"
	arity := 0
	if slot != nil {
		name = "bound " + slot.Name
		arity = len(slot.Params) - len(presetArgs)
		if arity < 0 {
			arity = 0
		}
	}
	o := NewKind(proto, FunctionKind)
	o.Internal = &FuncSlot{IsBound: true, BoundTarget: target, BoundThis: this, BoundArgs: presetArgs, Name: name}
	o.Define("name", Str(name), READONLY|DONTENUM)
	o.Define("length", Num(float64(arity)), READONLY|DONTENUM)
	return o
}

// FuncSlot returns o's function payload, or nil if o is not a Function.
func (o *Object) FuncSlot() *FuncSlot {
	if o == nil || o.Kind != FunctionKind {
		return nil
	}
	s, _ := o.Internal.(*FuncSlot)
	return s
}

// IsCallable reports whether v is a function object.
func IsCallable(v Value) bool {
	return v.IsObject() && v.Object().Kind == FunctionKind
}
