package parser

import (
	"testing"

	"github.com/ppyne/protoscript/internal/ast"
	"github.com/ppyne/protoscript/internal/lexer"
)

func parseProgram(t *testing.T, input string) *ast.Program {
	t.Helper()
	p := New(lexer.New("test.js", input))
	prog := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("parser errors: %v", p.Errors())
	}
	return prog
}

func TestParseVarDecl(t *testing.T) {
	prog := parseProgram(t, `var x = 5, y = x + 1;`)
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	decl, ok := prog.Statements[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected *ast.VarDecl, got %T", prog.Statements[0])
	}
	if len(decl.Decls) != 2 || decl.Decls[0].Name != "x" || decl.Decls[1].Name != "y" {
		t.Fatalf("unexpected bindings: %+v", decl.Decls)
	}
}

func TestParseFunctionDeclAndCall(t *testing.T) {
	prog := parseProgram(t, `function add(a, b) { return a + b; } add(1, 2);`)
	if len(prog.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(prog.Statements))
	}
	fn, ok := prog.Statements[0].(*ast.FunctionDecl)
	if !ok || fn.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("unexpected function decl: %+v", prog.Statements[0])
	}
	stmt, ok := prog.Statements[1].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected ExprStmt, got %T", prog.Statements[1])
	}
	call, ok := stmt.Expr.(*ast.Call)
	if !ok || len(call.Args) != 2 {
		t.Fatalf("expected call with 2 args, got %+v", stmt.Expr)
	}
}

func TestParseIfElse(t *testing.T) {
	prog := parseProgram(t, `if (x > 0) { y = 1; } else { y = -1; }`)
	stmt, ok := prog.Statements[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected IfStmt, got %T", prog.Statements[0])
	}
	if stmt.Then == nil || stmt.Else == nil {
		t.Fatalf("expected both branches, got %+v", stmt)
	}
}

func TestParseForLoop(t *testing.T) {
	prog := parseProgram(t, `for (var i = 0; i < 10; i++) { sum += i; }`)
	stmt, ok := prog.Statements[0].(*ast.ForStmt)
	if !ok {
		t.Fatalf("expected ForStmt, got %T", prog.Statements[0])
	}
	if stmt.Init == nil || stmt.Cond == nil || stmt.Post == nil || stmt.Body == nil {
		t.Fatalf("incomplete for statement: %+v", stmt)
	}
}

func TestParseForIn(t *testing.T) {
	prog := parseProgram(t, `for (var k in obj) { print(k); }`)
	stmt, ok := prog.Statements[0].(*ast.ForInStmt)
	if !ok {
		t.Fatalf("expected ForInStmt, got %T", prog.Statements[0])
	}
	if !stmt.Declare {
		t.Fatalf("expected Declare=true")
	}
}

func TestParseTryCatchFinally(t *testing.T) {
	prog := parseProgram(t, `try { risky(); } catch (e) { handle(e); } finally { cleanup(); }`)
	stmt, ok := prog.Statements[0].(*ast.TryStmt)
	if !ok {
		t.Fatalf("expected TryStmt, got %T", prog.Statements[0])
	}
	if stmt.Catch == nil || stmt.Finally == nil || stmt.CatchParam != "e" {
		t.Fatalf("incomplete try statement: %+v", stmt)
	}
}

func TestParsePrecedence(t *testing.T) {
	prog := parseProgram(t, `var r = 1 + 2 * 3;`)
	decl := prog.Statements[0].(*ast.VarDecl)
	bin, ok := decl.Decls[0].Init.(*ast.BinaryExpr)
	if !ok || bin.Op != ast.OpAdd {
		t.Fatalf("expected top-level +, got %+v", decl.Decls[0].Init)
	}
	right, ok := bin.Right.(*ast.BinaryExpr)
	if !ok || right.Op != ast.OpMul {
		t.Fatalf("expected * nested on the right, got %+v", bin.Right)
	}
}

func TestParseTernaryAndAssignRightAssoc(t *testing.T) {
	prog := parseProgram(t, `var a = b = c ? 1 : 2;`)
	decl := prog.Statements[0].(*ast.VarDecl)
	assign, ok := decl.Decls[0].Init.(*ast.AssignExpr)
	if !ok {
		t.Fatalf("expected AssignExpr, got %+v", decl.Decls[0].Init)
	}
	if _, ok := assign.Value.(*ast.ConditionalExpr); !ok {
		t.Fatalf("expected ConditionalExpr RHS, got %+v", assign.Value)
	}
}

func TestParseArrayLiteralWithElision(t *testing.T) {
	prog := parseProgram(t, `var a = [1, , 3];`)
	decl := prog.Statements[0].(*ast.VarDecl)
	arr, ok := decl.Decls[0].Init.(*ast.ArrayLiteral)
	if !ok || len(arr.Elements) != 3 {
		t.Fatalf("expected 3-element array, got %+v", decl.Decls[0].Init)
	}
	if arr.Elements[1] != nil {
		t.Fatalf("expected elision hole at index 1, got %v", arr.Elements[1])
	}
}

func TestParseObjectLiteral(t *testing.T) {
	prog := parseProgram(t, `var o = { a: 1, "b": 2, [c]: 3 };`)
	decl := prog.Statements[0].(*ast.VarDecl)
	obj, ok := decl.Decls[0].Init.(*ast.ObjectLiteral)
	if !ok || len(obj.Properties) != 3 {
		t.Fatalf("expected 3-property object, got %+v", decl.Decls[0].Init)
	}
	if !obj.Properties[2].Computed {
		t.Fatalf("expected third property to be computed")
	}
}

func TestParseMemberAndNew(t *testing.T) {
	prog := parseProgram(t, `var x = new Foo(1).bar[2];`)
	decl := prog.Statements[0].(*ast.VarDecl)
	member, ok := decl.Decls[0].Init.(*ast.Member)
	if !ok || !member.Computed {
		t.Fatalf("expected computed member at top, got %+v", decl.Decls[0].Init)
	}
	inner, ok := member.Object.(*ast.Member)
	if !ok || inner.Computed {
		t.Fatalf("expected dotted member, got %+v", member.Object)
	}
	if _, ok := inner.Object.(*ast.New); !ok {
		t.Fatalf("expected New at base, got %+v", inner.Object)
	}
}
