package env

import (
	"testing"

	"github.com/ppyne/protoscript/internal/ast"
	"github.com/ppyne/protoscript/internal/object"
)

func TestGetSetOuterChain(t *testing.T) {
	global := NewGlobal(object.New(nil))
	global.Define("x", object.Num(1))

	inner := NewEnclosed(global)
	v, ok := inner.Get("x")
	if !ok || v.Number() != 1 {
		t.Fatalf("expected inherited x=1, got %v ok=%v", v, ok)
	}

	inner.Set("x", object.Num(2))
	v, _ = global.Get("x")
	if v.Number() != 2 {
		t.Fatalf("expected outer binding updated in place, got %v", v.Number())
	}
}

func TestUndeclaredAssignmentCreatesGlobalBinding(t *testing.T) {
	global := NewGlobal(object.New(nil))
	inner := NewEnclosed(global)

	inner.Set("y", object.Str("hi"))

	if inner.HasBinding("y") {
		t.Fatal("expected y not bound in inner scope")
	}
	v, ok := global.Get("y")
	if !ok || v.String() != "hi" {
		t.Fatalf("expected undeclared assignment to land on global, got %v ok=%v", v, ok)
	}
}

func TestCallFrameFastSlotsAndArgumentsAliasing(t *testing.T) {
	global := NewGlobal(object.New(nil))
	callee := object.New(nil)
	frame := NewCall(global, callee, object.Undefined, nil, []string{"a", "b"}, []object.Value{object.Num(1), object.Num(2), object.Num(3)})

	v, ok := frame.Get("a")
	if !ok || v.Number() != 1 {
		t.Fatalf("expected a=1, got %v ok=%v", v, ok)
	}

	frame.Set("a", object.Num(99))
	argVal, _ := frame.Arguments().GetIndex(0)
	if argVal.Number() != 99 {
		t.Fatalf("expected arguments[0] aliased to 99, got %v", argVal.Number())
	}

	frame.SetParam(1, object.Num(42))
	v, _ = frame.Get("b")
	if v.Number() != 42 {
		t.Fatalf("expected fast slot b updated via SetParam, got %v", v.Number())
	}

	if frame.Arguments().Length() != 3 {
		t.Fatalf("expected arguments length 3, got %d", frame.Arguments().Length())
	}
	if frame.IsDeclaredParamIndex(2) {
		t.Fatal("expected index 2 (extra arg) to not be a declared param")
	}
	if !frame.IsDeclaredParamIndex(1) {
		t.Fatal("expected index 1 to be a declared param")
	}
}

func TestThisResolvesThroughNestedBlockToCallFrame(t *testing.T) {
	global := NewGlobal(object.New(nil))
	callee := object.New(nil)
	receiver := object.Obj(object.New(nil))
	frame := NewCall(global, callee, receiver, nil, nil, nil)
	block := NewEnclosed(frame)

	if block.This() != receiver {
		t.Fatal("expected This() to resolve through a nested block to the enclosing call frame")
	}
	if global.This() != object.Undefined {
		t.Fatal("expected This() at global scope to be undefined")
	}
}

func TestWithEnvironmentConsultsFullPrototypeChain(t *testing.T) {
	proto := object.New(nil)
	proto.Define("greeting", object.Str("hi"), 0)
	withObj := object.New(proto)

	global := NewGlobal(object.New(nil))
	withEnv := NewWith(global, withObj)

	v, ok := withEnv.Get("greeting")
	if !ok || v.String() != "hi" {
		t.Fatalf("expected with-env to see inherited property, got %v ok=%v", v, ok)
	}
}

func TestHoistVarsAndFunctionDecls(t *testing.T) {
	global := NewGlobal(object.New(nil))

	stmts := []ast.Statement{
		&ast.VarDecl{Decls: []ast.VarBinding{{Name: "x"}}},
		&ast.IfStmt{
			Then: &ast.VarDecl{Decls: []ast.VarBinding{{Name: "y"}}},
		},
		&ast.FunctionDecl{Name: "f", Body: &ast.Block{}},
	}

	var built *ast.FunctionDecl
	Hoist(global, stmts, func(decl *ast.FunctionDecl, closure *Env) object.Value {
		built = decl
		return object.Obj(object.New(nil))
	})

	if _, ok := global.Get("x"); !ok {
		t.Fatal("expected var x hoisted as undefined")
	}
	if _, ok := global.Get("y"); !ok {
		t.Fatal("expected nested var y hoisted through if-branch")
	}
	if built == nil || built.Name != "f" {
		t.Fatal("expected function declaration f to be hoisted and constructed")
	}
	fv, ok := global.Get("f")
	if !ok || !fv.IsObject() {
		t.Fatal("expected f bound to a constructed function object")
	}
}

func TestHoistDoesNotDescendIntoNestedFunctionBody(t *testing.T) {
	global := NewGlobal(object.New(nil))

	nestedFn := &ast.FunctionDecl{
		Name: "inner",
		Body: &ast.Block{Statements: []ast.Statement{
			&ast.VarDecl{Decls: []ast.VarBinding{{Name: "shouldNotHoist"}}},
		}},
	}
	stmts := []ast.Statement{nestedFn}

	Hoist(global, stmts, func(decl *ast.FunctionDecl, closure *Env) object.Value {
		return object.Obj(object.New(nil))
	})

	if global.HasBinding("shouldNotHoist") {
		t.Fatal("hoisting must not descend into a nested function body")
	}
}
