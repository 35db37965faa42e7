package env

import (
	"github.com/ppyne/protoscript/internal/ast"
	"github.com/ppyne/protoscript/internal/object"
)

// MakeFunction builds the function object for a hoisted function
// declaration, closing over the environment hoisting is running against.
// The interpreter supplies this (it alone knows Function.prototype and
// how to allocate through the heap), so this package never needs to
// import internal/interp or internal/object's function constructors
// directly for this purpose.
type MakeFunction func(decl *ast.FunctionDecl, closure *Env) object.Value

// Hoist walks stmts recursively (stopping at nested function bodies) and,
// before the first statement executes:
//   - defines each `var` name as undefined if no binding already exists
//     in this scope,
//   - constructs and binds each function declaration's function object
//     immediately, overwriting any same-named var hoist (function
//     declarations take precedence since they are processed after vars
//     textually but both resolve to one pass here; re-running the
//     function bind after the var pass reproduces that precedence).
func Hoist(e *Env, stmts []ast.Statement, makeFunc MakeFunction) {
	var funcDecls []*ast.FunctionDecl
	hoistVars(e, stmts, &funcDecls)
	for _, decl := range funcDecls {
		e.Define(decl.Name, makeFunc(decl, e))
	}
}

func hoistVars(e *Env, stmts []ast.Statement, funcDecls *[]*ast.FunctionDecl) {
	for _, s := range stmts {
		hoistStmt(e, s, funcDecls)
	}
}

func hoistStmt(e *Env, s ast.Statement, funcDecls *[]*ast.FunctionDecl) {
	switch n := s.(type) {
	case *ast.VarDecl:
		for _, d := range n.Decls {
			if !e.HasBinding(d.Name) {
				e.Define(d.Name, object.Undefined)
			}
		}
	case *ast.FunctionDecl:
		*funcDecls = append(*funcDecls, n)
	case *ast.Block:
		hoistVars(e, n.Statements, funcDecls)
	case *ast.IfStmt:
		hoistStmt(e, n.Then, funcDecls)
		if n.Else != nil {
			hoistStmt(e, n.Else, funcDecls)
		}
	case *ast.WhileStmt:
		hoistStmt(e, n.Body, funcDecls)
	case *ast.DoWhileStmt:
		hoistStmt(e, n.Body, funcDecls)
	case *ast.ForStmt:
		if n.Init != nil {
			hoistStmt(e, n.Init, funcDecls)
		}
		hoistStmt(e, n.Body, funcDecls)
	case *ast.ForInStmt:
		hoistStmt(e, n.Body, funcDecls)
	case *ast.ForOfStmt:
		hoistStmt(e, n.Body, funcDecls)
	case *ast.SwitchStmt:
		for _, c := range n.Cases {
			hoistVars(e, c.Body, funcDecls)
		}
	case *ast.LabeledStmt:
		hoistStmt(e, n.Body, funcDecls)
	case *ast.WithStmt:
		hoistStmt(e, n.Body, funcDecls)
	case *ast.TryStmt:
		hoistVars(e, n.Block.Statements, funcDecls)
		if n.Catch != nil {
			hoistVars(e, n.Catch.Statements, funcDecls)
		}
		if n.Finally != nil {
			hoistVars(e, n.Finally.Statements, funcDecls)
		}
	}
	// ExprStmt, ReturnStmt, BreakStmt, ContinueStmt, ThrowStmt carry no
	// declarations to hoist.
}
