package interp

import (
	"strconv"

	"github.com/ppyne/protoscript/internal/ast"
	"github.com/ppyne/protoscript/internal/env"
	"github.com/ppyne/protoscript/internal/errors"
	"github.com/ppyne/protoscript/internal/object"
	"github.com/ppyne/protoscript/internal/token"
)

// Run hoists and evaluates a top-level program against the VM's global
// environment.
func (vm *Interp) Run(program *ast.Program) Completion {
	env.Hoist(vm.GlobalEnv, program.Statements, vm.makeFunctionValue)
	return vm.evalStatements(program.Statements)
}

// evalStatements executes a statement list in order, stopping at the
// first abrupt completion. A statement that carries no value of its own
// (a declaration, a control-flow statement) inherits the last
// expression statement's value, so the program's own completion value
// is always its last evaluated expression, the way a top-level script's
// result is observed by an embedding host.
func (vm *Interp) evalStatements(stmts []ast.Statement) Completion {
	var result Completion
	for _, s := range stmts {
		vm.Heap.SafePoint()
		c := vm.evalStatement(s)
		if c.IsAbrupt() {
			return c
		}
		if c.Value.IsUndefined() {
			c.Value = result.Value
		}
		result = c
	}
	return result
}

// evalBlock runs a nested block's statements in the enclosing scope. ES1
// has no block scope: var is function-scoped, and a function/program's
// var and function declarations are hoisted once, at call/program entry
// (call.go, Run) - a plain `{}` block must not allocate its own
// environment or re-hoist, or `var` inside it would shadow rather than
// assign to the already-hoisted function-scope binding.
func (vm *Interp) evalBlock(b *ast.Block) Completion {
	return vm.evalStatements(b.Statements)
}

func (vm *Interp) evalStatement(s ast.Statement) Completion {
	switch n := s.(type) {
	case *ast.Block:
		return vm.evalBlock(n)
	case *ast.VarDecl:
		return vm.evalVarDecl(n)
	case *ast.ExprStmt:
		v, c := vm.evalExpression(n.Expr)
		if c.DidThrow {
			return c
		}
		return normal(v)
	case *ast.ReturnStmt:
		if n.Value == nil {
			return returnCompletion(object.Undefined)
		}
		v, c := vm.evalExpression(n.Value)
		if c.DidThrow {
			return c
		}
		return returnCompletion(v)
	case *ast.IfStmt:
		return vm.evalIf(n)
	case *ast.WhileStmt:
		return vm.evalWhile(n, "")
	case *ast.DoWhileStmt:
		return vm.evalDoWhile(n, "")
	case *ast.ForStmt:
		return vm.evalFor(n, "")
	case *ast.ForInStmt:
		return vm.evalForIn(n, "")
	case *ast.ForOfStmt:
		return vm.evalForOf(n, "")
	case *ast.SwitchStmt:
		return vm.evalSwitch(n)
	case *ast.LabeledStmt:
		return vm.evalLabeled(n)
	case *ast.BreakStmt:
		return breakCompletion(n.Label)
	case *ast.ContinueStmt:
		return continueCompletion(n.Label)
	case *ast.WithStmt:
		return vm.evalWith(n)
	case *ast.ThrowStmt:
		v, c := vm.evalExpression(n.Value)
		if c.DidThrow {
			return c
		}
		return throwCompletion(v)
	case *ast.TryStmt:
		return vm.evalTry(n)
	case *ast.FunctionDecl:
		// Already bound at hoist time; nothing to do when reached in
		// execution order.
		return Completion{}
	default:
		return Completion{}
	}
}

func (vm *Interp) evalVarDecl(n *ast.VarDecl) Completion {
	for _, d := range n.Decls {
		if d.Init == nil {
			continue
		}
		v, c := vm.evalExpression(d.Init)
		if c.DidThrow {
			return c
		}
		vm.Env().Set(d.Name, v)
	}
	return Completion{}
}

func (vm *Interp) evalIf(n *ast.IfStmt) Completion {
	cond, c := vm.evalExpression(n.Cond)
	if c.DidThrow {
		return c
	}
	if cond.ToBoolean() {
		return vm.evalStatement(n.Then)
	}
	if n.Else != nil {
		return vm.evalStatement(n.Else)
	}
	return Completion{}
}

// unwrapLoop absorbs a continue targeting this loop (or untargeted) into
// normal flow, lets a matching break end the loop normally, and
// propagates everything else (return, throw, a break/continue aimed at an
// outer label).
func unwrapLoop(c Completion, label string) (stop bool, propagate Completion, ok bool) {
	if c.DidBreak && (c.BreakLabel == "" || c.BreakLabel == label) {
		return true, Completion{}, true
	}
	if c.DidContinue && (c.ContinueLabel == "" || c.ContinueLabel == label) {
		return false, Completion{}, true
	}
	if c.IsAbrupt() {
		return true, c, true
	}
	return false, Completion{}, false
}

func (vm *Interp) evalWhile(n *ast.WhileStmt, label string) Completion {
	return vm.runLoop(label, func() (bool, Completion) {
		cond, c := vm.evalExpression(n.Cond)
		if c.DidThrow {
			return false, c
		}
		if !cond.ToBoolean() {
			return false, Completion{}
		}
		return true, vm.evalStatement(n.Body)
	})
}

func (vm *Interp) evalDoWhile(n *ast.DoWhileStmt, label string) Completion {
	first := true
	return vm.runLoop(label, func() (bool, Completion) {
		if !first {
			cond, c := vm.evalExpression(n.Cond)
			if c.DidThrow {
				return false, c
			}
			if !cond.ToBoolean() {
				return false, Completion{}
			}
		}
		first = false
		return true, vm.evalStatement(n.Body)
	})
}

func (vm *Interp) evalFor(n *ast.ForStmt, label string) Completion {
	if n.Init != nil {
		if c := vm.evalStatement(n.Init); c.DidThrow {
			return c
		}
	}
	return vm.runLoop(label, func() (bool, Completion) {
		if n.Cond != nil {
			cond, c := vm.evalExpression(n.Cond)
			if c.DidThrow {
				return false, c
			}
			if !cond.ToBoolean() {
				return false, Completion{}
			}
		}
		body := vm.evalStatement(n.Body)
		if body.DidContinue && (body.ContinueLabel == "" || body.ContinueLabel == label) {
			body = Completion{}
		} else if body.IsAbrupt() {
			return true, body
		}
		if n.Post != nil {
			if _, c := vm.evalExpression(n.Post); c.DidThrow {
				return true, c
			}
		}
		return true, Completion{}
	})
}

// runLoop drives one loop's iteration protocol: step returns (continue?,
// completion). It is called repeatedly; unwrapLoop interprets the
// completion each step produces against the loop's own (possibly empty)
// label.
func (vm *Interp) runLoop(label string, step func() (bool, Completion)) Completion {
	for {
		vm.Heap.SafePoint()
		more, c := step()
		if stop, prop, handled := unwrapLoop(c, label); handled {
			if stop {
				return prop
			}
			continue
		}
		if !more {
			return Completion{}
		}
	}
}

func (vm *Interp) evalForIn(n *ast.ForInStmt, label string) Completion {
	src, c := vm.evalExpression(n.Source)
	if c.DidThrow {
		return c
	}
	if !src.IsObject() {
		return Completion{}
	}
	names := collectForInNames(src.Object())

	for _, name := range names {
		if c := vm.bindLoopTarget(n.Target, n.Declare, object.Str(name)); c.DidThrow {
			return c
		}
		body := vm.evalStatement(n.Body)
		if stop, prop, handled := unwrapLoop(body, label); handled {
			if stop {
				return prop
			}
			continue
		}
	}
	return Completion{}
}

// collectForInNames snapshots own-enumerable names across the prototype
// chain before the loop body runs, array indices first, deduplicating
// names shadowed by a nearer object in the chain.
func collectForInNames(o *object.Object) []string {
	seen := make(map[string]bool)
	var names []string
	for cur := o; cur != nil; cur = cur.Prototype {
		for _, n := range cur.OwnEnumerableOrder() {
			if seen[n] {
				continue
			}
			seen[n] = true
			names = append(names, n)
		}
	}
	return names
}

// evalForOf iterates a string's code points, an array/array-like object's
// integer-indexed elements, or a general object's own-enumerable property
// values. Anything else (undefined, null, a number, a boolean) can't be
// iterated at all.
func (vm *Interp) evalForOf(n *ast.ForOfStmt, label string) Completion {
	src, c := vm.evalExpression(n.Source)
	if c.DidThrow {
		return c
	}

	values, c := vm.forOfValues(src, n.Pos())
	if c.DidThrow {
		return c
	}

	for _, v := range values {
		if c := vm.bindLoopTarget(n.Target, n.Declare, v); c.DidThrow {
			return c
		}
		body := vm.evalStatement(n.Body)
		if stop, prop, handled := unwrapLoop(body, label); handled {
			if stop {
				return prop
			}
			continue
		}
	}
	return Completion{}
}

// forOfValues snapshots the sequence of values a for-of loop walks, before
// the loop body runs (the same eager-snapshot approach collectForInNames
// takes for for-in).
func (vm *Interp) forOfValues(src object.Value, pos token.Position) ([]object.Value, Completion) {
	if src.Kind() == object.StringKind {
		s := src.String()
		values := make([]object.Value, 0, len(s))
		for _, r := range s {
			values = append(values, object.Str(string(r)))
		}
		return values, Completion{}
	}

	if !src.IsObject() {
		return nil, vm.Throwf(pos, errors.TypeError, "value is not iterable")
	}
	obj := src.Object()

	if obj.Kind == object.ArrayKind {
		values := make([]object.Value, 0, obj.Length())
		for i := 0; i < obj.Length(); i++ {
			v, _ := obj.GetIndex(i)
			values = append(values, v)
		}
		return values, Completion{}
	}

	if lenVal, ok := obj.Get("length"); ok && lenVal.Kind() == object.NumberKind {
		n := int(lenVal.Number())
		values := make([]object.Value, 0, n)
		for i := 0; i < n; i++ {
			v, _ := obj.Get(strconv.Itoa(i))
			values = append(values, v)
		}
		return values, Completion{}
	}

	names := collectForInNames(obj)
	values := make([]object.Value, 0, len(names))
	for _, name := range names {
		v, _ := obj.Get(name)
		values = append(values, v)
	}
	return values, Completion{}
}

func (vm *Interp) bindLoopTarget(target ast.Expression, declare bool, v object.Value) Completion {
	if id, ok := target.(*ast.Identifier); ok {
		if declare {
			vm.Env().Define(id.Value, v)
		} else {
			vm.Env().Set(id.Value, v)
		}
		return Completion{}
	}
	return vm.assignTo(target, v)
}

func (vm *Interp) evalSwitch(n *ast.SwitchStmt) Completion {
	disc, c := vm.evalExpression(n.Discriminant)
	if c.DidThrow {
		return c
	}
	matchIdx := -1
	for i, cs := range n.Cases {
		if cs.Test == nil {
			continue
		}
		tv, c := vm.evalExpression(cs.Test)
		if c.DidThrow {
			return c
		}
		if object.StrictEquals(disc, tv) {
			matchIdx = i
			break
		}
	}
	if matchIdx == -1 {
		for i, cs := range n.Cases {
			if cs.Test == nil {
				matchIdx = i
				break
			}
		}
	}
	if matchIdx == -1 {
		return Completion{}
	}
	for _, cs := range n.Cases[matchIdx:] {
		result := vm.evalStatements(cs.Body)
		if result.DidBreak && result.BreakLabel == "" {
			return Completion{}
		}
		if result.IsAbrupt() {
			return result
		}
	}
	return Completion{}
}

// evalLabeled dispatches a labeled loop body with its label threaded
// through so a `continue label`/`break label` aimed at it is absorbed by
// that loop's own iteration protocol rather than escaping to an outer
// frame. Any other labeled statement only needs the break case handled
// here, since it has no loop body to continue.
func (vm *Interp) evalLabeled(n *ast.LabeledStmt) Completion {
	switch body := n.Body.(type) {
	case *ast.WhileStmt:
		return vm.evalWhile(body, n.Label)
	case *ast.DoWhileStmt:
		return vm.evalDoWhile(body, n.Label)
	case *ast.ForStmt:
		return vm.evalFor(body, n.Label)
	case *ast.ForInStmt:
		return vm.evalForIn(body, n.Label)
	case *ast.ForOfStmt:
		return vm.evalForOf(body, n.Label)
	}
	result := vm.evalStatement(n.Body)
	if result.DidBreak && result.BreakLabel == n.Label {
		return Completion{}
	}
	return result
}

func (vm *Interp) evalWith(n *ast.WithStmt) Completion {
	v, c := vm.evalExpression(n.Expr)
	if c.DidThrow {
		return c
	}
	if !v.IsObject() {
		return vm.Throwf(n.Pos(), errors.TypeError, "with statement requires an object")
	}
	withEnv := env.NewWith(vm.Env(), v.Object())
	prev := vm.PushEnv(withEnv)
	defer vm.RestoreEnv(prev)
	return vm.evalStatement(n.Body)
}

func (vm *Interp) evalTry(n *ast.TryStmt) Completion {
	result := vm.evalBlock(n.Block)

	if result.DidThrow && n.Catch != nil {
		catchEnv := env.NewEnclosed(vm.Env())
		if n.CatchParam != "" {
			catchEnv.Define(n.CatchParam, result.ThrowValue)
		}
		prev := vm.PushEnv(catchEnv)
		env.Hoist(catchEnv, n.Catch.Statements, vm.makeFunctionValue)
		result = vm.evalStatements(n.Catch.Statements)
		vm.RestoreEnv(prev)
	}

	if n.Finally != nil {
		finallyResult := vm.evalBlock(n.Finally)
		if finallyResult.IsAbrupt() {
			return finallyResult
		}
	}
	return result
}
