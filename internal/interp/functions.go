package interp

import (
	"github.com/ppyne/protoscript/internal/ast"
	"github.com/ppyne/protoscript/internal/env"
	"github.com/ppyne/protoscript/internal/object"
)

// makeFunctionValue builds the function object for a function declaration
// or expression, closing over closure. It satisfies env.MakeFunction's
// signature so hoisting can pass it directly.
func (vm *Interp) makeFunctionValue(decl *ast.FunctionDecl, closure *env.Env) object.Value {
	fn := vm.newScriptFunction(decl.Name, decl.Params, decl.Body, closure)
	return object.Obj(fn)
}

// newScriptFunction allocates a Function object for a script body: its
// own "prototype" property (for use as `new fn()`'s instance prototype)
// plus a "constructor" back-reference, matching how every script-defined
// function gets a fresh, empty prototype object.
func (vm *Interp) newScriptFunction(name string, params []ast.Param, body *ast.Block, closure *env.Env) *object.Object {
	funcProto := object.New(vm.Proto.Object)
	fn := object.NewScriptFunction(vm.Proto.Function, funcProto, name, params, body, closure)
	vm.Heap.Track(fn, int64(len(params)*16))
	vm.Heap.Track(funcProto, 0)
	return fn
}
