package interp

import (
	"math"
	"strconv"

	"github.com/ppyne/protoscript/internal/ast"
	"github.com/ppyne/protoscript/internal/env"
	"github.com/ppyne/protoscript/internal/errors"
	"github.com/ppyne/protoscript/internal/object"
	"github.com/ppyne/protoscript/internal/regexp"
	"github.com/ppyne/protoscript/internal/token"
)

// evalExpression dispatches on the concrete expression node type,
// returning the evaluated value and an abrupt completion if evaluation
// threw. A non-abrupt Completion{} paired with a value means normal
// completion.
func (vm *Interp) evalExpression(e ast.Expression) (object.Value, Completion) {
	switch n := e.(type) {
	case *ast.Literal:
		return vm.evalLiteral(n), Completion{}
	case *ast.RegexLiteral:
		return vm.evalRegexLiteral(n)
	case *ast.This:
		return vm.Env().This(), Completion{}
	case *ast.Identifier:
		return vm.evalIdentifier(n)
	case *ast.ArrayLiteral:
		return vm.evalArrayLiteral(n)
	case *ast.ObjectLiteral:
		return vm.evalObjectLiteral(n)
	case *ast.FunctionExpr:
		return vm.evalFunctionExpr(n), Completion{}
	case *ast.UnaryExpr:
		return vm.evalUnary(n)
	case *ast.BinaryExpr:
		return vm.evalBinary(n)
	case *ast.AssignExpr:
		return vm.evalAssign(n)
	case *ast.ConditionalExpr:
		cond, c := vm.evalExpression(n.Cond)
		if c.DidThrow {
			return object.Undefined, c
		}
		if cond.ToBoolean() {
			return vm.evalExpression(n.Then)
		}
		return vm.evalExpression(n.Else)
	case *ast.Member:
		v, _, c := vm.evalMember(n)
		return v, c
	case *ast.Call:
		return vm.evalCall(n)
	case *ast.New:
		return vm.evalNew(n)
	}
	return object.Undefined, Completion{}
}

func (vm *Interp) evalLiteral(n *ast.Literal) object.Value {
	switch n.Kind {
	case ast.LitUndefined:
		return object.Undefined
	case ast.LitNull:
		return object.Null
	case ast.LitBoolean:
		return object.Bool(n.Bool)
	case ast.LitNumber:
		return object.Num(n.Num)
	default:
		return object.Str(n.Str)
	}
}

func (vm *Interp) evalRegexLiteral(n *ast.RegexLiteral) (object.Value, Completion) {
	prog, err := regexp.Compile(n.Pattern, n.Flags)
	if err != nil {
		return vm.ThrowValuef(n.Pos(), errors.SyntaxError, "invalid regular expression: %s", err.Error())
	}
	o := object.NewRegExp(vm.Proto.RegExp, prog)
	vm.Heap.Track(o, int64(len(n.Pattern)))
	return object.Obj(o), Completion{}
}

// evalIdentifier implements variable lookup: an unresolved name is a
// ReferenceError, except when the identifier is the operand of typeof
// (handled separately in evalUnary, which bypasses this path).
func (vm *Interp) evalIdentifier(n *ast.Identifier) (object.Value, Completion) {
	v, ok := vm.Env().Get(n.Value)
	if !ok {
		return vm.ThrowValuef(n.Pos(), errors.ReferenceError, "%s is not defined", n.Value)
	}
	return v, Completion{}
}

func (vm *Interp) evalArrayLiteral(n *ast.ArrayLiteral) (object.Value, Completion) {
	arr := object.NewArray(vm.Proto.Array)
	vm.Heap.Track(arr, int64(len(n.Elements)*16))
	for i, el := range n.Elements {
		if el == nil {
			continue
		}
		v, c := vm.evalExpression(el)
		if c.DidThrow {
			return object.Undefined, c
		}
		arr.SetIndex(i, v)
	}
	return object.Obj(arr), Completion{}
}

func (vm *Interp) evalObjectLiteral(n *ast.ObjectLiteral) (object.Value, Completion) {
	o := object.New(vm.Proto.Object)
	vm.Heap.Track(o, int64(len(n.Properties)*16))
	for _, p := range n.Properties {
		key, c := vm.propertyKey(p.Key, p.Computed)
		if c.DidThrow {
			return object.Undefined, c
		}
		v, c := vm.evalExpression(p.Value)
		if c.DidThrow {
			return object.Undefined, c
		}
		o.Define(key, v, 0)
	}
	return object.Obj(o), Completion{}
}

// propertyKey resolves an ObjectLiteral/Member property key: an
// Identifier used as a bare (non-computed) key names itself literally,
// anything else evaluates and coerces to a string.
func (vm *Interp) propertyKey(key ast.Expression, computed bool) (string, Completion) {
	if !computed {
		if id, ok := key.(*ast.Identifier); ok {
			return id.Value, Completion{}
		}
		if lit, ok := key.(*ast.Literal); ok && lit.Kind == ast.LitString {
			return lit.Str, Completion{}
		}
	}
	v, c := vm.evalExpression(key)
	if c.DidThrow {
		return "", c
	}
	s, err := object.ToString(vm, v)
	if err != nil {
		return "", vm.wrapCallerError(key.Pos(), err)
	}
	return s, Completion{}
}

// evalFunctionExpr builds a closure for a function expression. A named
// function expression's own name is visible only inside its own body, via
// a synthetic one-binding scope wrapped around the declaring closure, not
// in the enclosing scope.
func (vm *Interp) evalFunctionExpr(n *ast.FunctionExpr) object.Value {
	closure := vm.Env()
	if n.Name != "" {
		closure = env.NewEnclosed(closure)
	}
	fn := vm.newScriptFunction(n.Name, n.Params, n.Body, closure)
	if n.Name != "" {
		closure.Define(n.Name, object.Obj(fn))
	}
	return object.Obj(fn)
}

func (vm *Interp) evalUnary(n *ast.UnaryExpr) (object.Value, Completion) {
	switch n.Op {
	case ast.OpTypeof:
		if id, ok := n.Operand.(*ast.Identifier); ok {
			if v, found := vm.Env().Get(id.Value); found {
				return object.Str(v.TypeOf()), Completion{}
			}
			return object.Str("undefined"), Completion{}
		}
		v, c := vm.evalExpression(n.Operand)
		if c.DidThrow {
			return object.Undefined, c
		}
		return object.Str(v.TypeOf()), Completion{}
	case ast.OpDelete:
		return vm.evalDelete(n.Operand)
	case ast.OpVoid:
		_, c := vm.evalExpression(n.Operand)
		if c.DidThrow {
			return object.Undefined, c
		}
		return object.Undefined, Completion{}
	case ast.OpPreInc, ast.OpPreDec, ast.OpPostInc, ast.OpPostDec:
		return vm.evalIncDec(n)
	}

	v, c := vm.evalExpression(n.Operand)
	if c.DidThrow {
		return object.Undefined, c
	}
	switch n.Op {
	case ast.OpNot:
		return object.Bool(!v.ToBoolean()), Completion{}
	case ast.OpBitNot:
		i, c := vm.toInt32(n.Pos(), v)
		if c.DidThrow {
			return object.Undefined, c
		}
		return object.Num(float64(^i)), Completion{}
	case ast.OpPlus:
		num, err := object.ToNumber(vm, v)
		if err != nil {
			return object.Undefined, vm.wrapCallerError(n.Pos(), err)
		}
		return object.Num(num), Completion{}
	case ast.OpMinus:
		num, err := object.ToNumber(vm, v)
		if err != nil {
			return object.Undefined, vm.wrapCallerError(n.Pos(), err)
		}
		return object.Num(-num), Completion{}
	}
	return object.Undefined, Completion{}
}

func (vm *Interp) toInt32(pos token.Position, v object.Value) (int32, Completion) {
	num, err := object.ToNumber(vm, v)
	if err != nil {
		_, c := vm.ThrowValuef(pos, errors.TypeError, "%s", err.Error())
		return 0, c
	}
	return object.ToInt32(num), Completion{}
}

// evalDelete implements `delete target`: deleting a member removes the
// own property (honoring DONTDELETE); deleting anything else (a bare
// identifier, a literal) is a no-op that evaluates to true, since this
// language has no declarative-record deletion.
func (vm *Interp) evalDelete(target ast.Expression) (object.Value, Completion) {
	m, ok := target.(*ast.Member)
	if !ok {
		return object.Bool(true), Completion{}
	}
	objVal, c := vm.evalExpression(m.Object)
	if c.DidThrow {
		return object.Undefined, c
	}
	if !objVal.IsObject() {
		return object.Bool(true), Completion{}
	}
	key, c := vm.propertyKey(m.Property, m.Computed)
	if c.DidThrow {
		return object.Undefined, c
	}
	obj := objVal.Object()
	if obj.Kind == object.ArrayKind {
		if idx, ok := arrayIndexOf(key); ok {
			obj.DeleteIndex(idx)
			return object.Bool(true), Completion{}
		}
	}
	return object.Bool(obj.Delete(key)), Completion{}
}

func (vm *Interp) evalIncDec(n *ast.UnaryExpr) (object.Value, Completion) {
	old, _, c := vm.evalReference(n.Operand)
	if c.DidThrow {
		return object.Undefined, c
	}
	num, err := object.ToNumber(vm, old)
	if err != nil {
		return object.Undefined, vm.wrapCallerError(n.Pos(), err)
	}
	var next float64
	if n.Op == ast.OpPreInc || n.Op == ast.OpPostInc {
		next = num + 1
	} else {
		next = num - 1
	}
	if c := vm.assignTo(n.Operand, object.Num(next)); c.DidThrow {
		return object.Undefined, c
	}
	if n.Op == ast.OpPreInc || n.Op == ast.OpPreDec {
		return object.Num(next), Completion{}
	}
	return object.Num(num), Completion{}
}

// evalReference reads the current value of an assignable target
// (Identifier or Member), for the compound-assignment and ++/-- forms
// that need the old value before writing the new one.
func (vm *Interp) evalReference(target ast.Expression) (object.Value, bool, Completion) {
	if id, ok := target.(*ast.Identifier); ok {
		v, c := vm.evalIdentifier(id)
		return v, true, c
	}
	if m, ok := target.(*ast.Member); ok {
		v, _, c := vm.evalMember(m)
		return v, true, c
	}
	return object.Undefined, false, Completion{}
}

func (vm *Interp) evalBinary(n *ast.BinaryExpr) (object.Value, Completion) {
	if n.Op == ast.OpAnd {
		l, c := vm.evalExpression(n.Left)
		if c.DidThrow || !l.ToBoolean() {
			return l, c
		}
		return vm.evalExpression(n.Right)
	}
	if n.Op == ast.OpOr {
		l, c := vm.evalExpression(n.Left)
		if c.DidThrow || l.ToBoolean() {
			return l, c
		}
		return vm.evalExpression(n.Right)
	}
	if n.Op == ast.OpComma {
		if _, c := vm.evalExpression(n.Left); c.DidThrow {
			return object.Undefined, c
		}
		return vm.evalExpression(n.Right)
	}

	l, c := vm.evalExpression(n.Left)
	if c.DidThrow {
		return object.Undefined, c
	}
	r, c := vm.evalExpression(n.Right)
	if c.DidThrow {
		return object.Undefined, c
	}
	return vm.applyBinary(n.Op, l, r, n.Pos())
}

func (vm *Interp) applyBinary(op ast.BinaryOp, l, r object.Value, pos token.Position) (object.Value, Completion) {
	switch op {
	case ast.OpAdd:
		return vm.evalAdd(l, r, pos)
	case ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		return vm.evalArith(op, l, r, pos)
	case ast.OpBitAnd, ast.OpBitOr, ast.OpBitXor, ast.OpShl, ast.OpShr, ast.OpUShr:
		return vm.evalBitwise(op, l, r, pos)
	case ast.OpLt, ast.OpGt, ast.OpLe, ast.OpGe:
		return vm.evalRelational(op, l, r, pos)
	case ast.OpEq:
		eq, err := object.AbstractEquals(vm, l, r)
		if err != nil {
			return object.Undefined, vm.wrapCallerError(pos, err)
		}
		return object.Bool(eq), Completion{}
	case ast.OpNotEq:
		eq, err := object.AbstractEquals(vm, l, r)
		if err != nil {
			return object.Undefined, vm.wrapCallerError(pos, err)
		}
		return object.Bool(!eq), Completion{}
	case ast.OpStrictEq:
		return object.Bool(object.StrictEquals(l, r)), Completion{}
	case ast.OpStrictNotEq:
		return object.Bool(!object.StrictEquals(l, r)), Completion{}
	case ast.OpInstanceof:
		return vm.evalInstanceof(l, r, pos)
	case ast.OpIn:
		return vm.evalIn(l, r, pos)
	}
	return object.Undefined, Completion{}
}

// evalAdd implements `+`: if either ToPrimitive(Default) operand is a
// string, concatenate string representations; otherwise add numerically.
func (vm *Interp) evalAdd(l, r object.Value, pos token.Position) (object.Value, Completion) {
	pl, err := object.ToPrimitive(vm, l, "default")
	if err != nil {
		return object.Undefined, vm.wrapCallerError(pos, err)
	}
	pr, err := object.ToPrimitive(vm, r, "default")
	if err != nil {
		return object.Undefined, vm.wrapCallerError(pos, err)
	}
	if pl.Kind() == object.StringKind || pr.Kind() == object.StringKind {
		ls, err := object.ToString(vm, pl)
		if err != nil {
			return object.Undefined, vm.wrapCallerError(pos, err)
		}
		rs, err := object.ToString(vm, pr)
		if err != nil {
			return object.Undefined, vm.wrapCallerError(pos, err)
		}
		return object.Str(ls + rs), Completion{}
	}
	ln, err := object.ToNumber(vm, pl)
	if err != nil {
		return object.Undefined, vm.wrapCallerError(pos, err)
	}
	rn, err := object.ToNumber(vm, pr)
	if err != nil {
		return object.Undefined, vm.wrapCallerError(pos, err)
	}
	return object.Num(ln + rn), Completion{}
}

func (vm *Interp) evalArith(op ast.BinaryOp, l, r object.Value, pos token.Position) (object.Value, Completion) {
	ln, err := object.ToNumber(vm, l)
	if err != nil {
		return object.Undefined, vm.wrapCallerError(pos, err)
	}
	rn, err := object.ToNumber(vm, r)
	if err != nil {
		return object.Undefined, vm.wrapCallerError(pos, err)
	}
	switch op {
	case ast.OpSub:
		return object.Num(ln - rn), Completion{}
	case ast.OpMul:
		return object.Num(ln * rn), Completion{}
	case ast.OpDiv:
		return object.Num(ln / rn), Completion{}
	case ast.OpMod:
		return object.Num(math.Mod(ln, rn)), Completion{}
	}
	return object.Undefined, Completion{}
}

func (vm *Interp) evalBitwise(op ast.BinaryOp, l, r object.Value, pos token.Position) (object.Value, Completion) {
	ln, err := object.ToNumber(vm, l)
	if err != nil {
		return object.Undefined, vm.wrapCallerError(pos, err)
	}
	rn, err := object.ToNumber(vm, r)
	if err != nil {
		return object.Undefined, vm.wrapCallerError(pos, err)
	}
	li := object.ToInt32(ln)
	switch op {
	case ast.OpBitAnd:
		return object.Num(float64(li & object.ToInt32(rn))), Completion{}
	case ast.OpBitOr:
		return object.Num(float64(li | object.ToInt32(rn))), Completion{}
	case ast.OpBitXor:
		return object.Num(float64(li ^ object.ToInt32(rn))), Completion{}
	case ast.OpShl:
		shift := object.ToUint32(rn) & 31
		return object.Num(float64(li << shift)), Completion{}
	case ast.OpShr:
		shift := object.ToUint32(rn) & 31
		return object.Num(float64(li >> shift)), Completion{}
	case ast.OpUShr:
		shift := object.ToUint32(rn) & 31
		return object.Num(float64(object.ToUint32(ln) >> shift)), Completion{}
	}
	return object.Undefined, Completion{}
}

func (vm *Interp) evalRelational(op ast.BinaryOp, l, r object.Value, pos token.Position) (object.Value, Completion) {
	cmp, err := object.Compare(vm, l, r)
	if err != nil {
		return object.Undefined, vm.wrapCallerError(pos, err)
	}
	if cmp == object.CompareUndefined {
		return object.Bool(false), Completion{}
	}
	switch op {
	case ast.OpLt:
		return object.Bool(cmp == object.CompareLess), Completion{}
	case ast.OpGt:
		return object.Bool(cmp == object.CompareGreater), Completion{}
	case ast.OpLe:
		return object.Bool(cmp == object.CompareLess || cmp == object.CompareEqual), Completion{}
	case ast.OpGe:
		return object.Bool(cmp == object.CompareGreater || cmp == object.CompareEqual), Completion{}
	}
	return object.Undefined, Completion{}
}

func (vm *Interp) evalInstanceof(l, r object.Value, pos token.Position) (object.Value, Completion) {
	if !r.IsObject() || r.Object().Kind != object.FunctionKind {
		return vm.ThrowValuef(pos, errors.TypeError, "right-hand side of instanceof is not callable")
	}
	if !l.IsObject() {
		return object.Bool(false), Completion{}
	}
	protoVal, ok := r.Object().Get("prototype")
	if !ok || !protoVal.IsObject() {
		return object.Bool(false), Completion{}
	}
	target := protoVal.Object()
	for cur := l.Object().Prototype; cur != nil; cur = cur.Prototype {
		if cur == target {
			return object.Bool(true), Completion{}
		}
	}
	return object.Bool(false), Completion{}
}

func (vm *Interp) evalIn(l, r object.Value, pos token.Position) (object.Value, Completion) {
	if !r.IsObject() {
		return vm.ThrowValuef(pos, errors.TypeError, "cannot use 'in' operator on a non-object")
	}
	key, err := object.ToString(vm, l)
	if err != nil {
		return object.Undefined, vm.wrapCallerError(pos, err)
	}
	obj := r.Object()
	if obj.Kind == object.ArrayKind {
		if idx, ok := arrayIndexOf(key); ok {
			_, present := obj.GetIndex(idx)
			return object.Bool(present), Completion{}
		}
	}
	for cur := obj; cur != nil; cur = cur.Prototype {
		if cur.HasOwn(key) {
			return object.Bool(true), Completion{}
		}
	}
	return object.Bool(false), Completion{}
}

// evalMember reads a Member expression's value, returning also the base
// object (so Call can recover the implicit-this receiver without
// re-evaluating the base expression).
func (vm *Interp) evalMember(n *ast.Member) (object.Value, object.Value, Completion) {
	baseVal, c := vm.evalExpression(n.Object)
	if c.DidThrow {
		return object.Undefined, object.Undefined, c
	}
	key, c := vm.propertyKey(n.Property, n.Computed)
	if c.DidThrow {
		return object.Undefined, object.Undefined, c
	}
	if baseVal.IsUndefined() || baseVal.IsNull() {
		_, c := vm.ThrowValuef(n.Pos(), errors.TypeError, "cannot read property '%s' of %s", key, baseVal.TypeOf())
		return object.Undefined, object.Undefined, c
	}
	if !baseVal.IsObject() {
		return vm.getPrimitiveProperty(baseVal, key), baseVal, Completion{}
	}
	obj := baseVal.Object()
	if obj.Kind == object.ArrayKind {
		if idx, ok := arrayIndexOf(key); ok {
			v, _ := obj.GetIndex(idx)
			return v, baseVal, Completion{}
		}
	}
	if obj.Kind == object.BufferKind || obj.Kind == object.Buffer32Kind {
		if idx, ok := arrayIndexOf(key); ok {
			bv, err := obj.BufferSlot().Get(idx)
			if err != nil {
				c := vm.Throwf(n.Pos(), errors.RangeError, "%s", err.Error())
				return object.Undefined, object.Undefined, c
			}
			return object.Num(bv), baseVal, Completion{}
		}
	}
	v, _ := obj.Get(key)
	return v, baseVal, Completion{}
}

// getPrimitiveProperty reads a property off a primitive by temporarily
// boxing it in its wrapper prototype chain; strings additionally expose
// "length" and numeric-index character access.
func (vm *Interp) getPrimitiveProperty(v object.Value, key string) object.Value {
	if v.Kind() == object.StringKind {
		if key == "length" {
			return object.Num(float64(len([]rune(v.String()))))
		}
		if idx, ok := arrayIndexOf(key); ok {
			runes := []rune(v.String())
			if idx >= 0 && idx < len(runes) {
				return object.Str(string(runes[idx]))
			}
			return object.Undefined
		}
	}
	var proto *object.Object
	switch v.Kind() {
	case object.BooleanKind:
		proto = vm.Proto.Boolean
	case object.NumberKind:
		proto = vm.Proto.Number
	case object.StringKind:
		proto = vm.Proto.String
	}
	if proto == nil {
		return object.Undefined
	}
	val, _ := proto.Get(key)
	return val
}

// arrayIndexOf reports the canonical array index a property key denotes,
// using the same no-leading-zero, <= 2^32-2 rule internal/object uses for
// enumeration, so "01" stays a named property distinct from index 1 and
// an oversized numeric key like "99999999999999" falls back to a plain
// property instead of a multi-terabyte SetIndex allocation.
func arrayIndexOf(key string) (int, bool) {
	if !object.IsArrayIndexName(key) {
		return 0, false
	}
	n, err := strconv.Atoi(key)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (vm *Interp) evalCall(n *ast.Call) (object.Value, Completion) {
	var this object.Value = object.Undefined
	var calleeVal object.Value
	var c Completion

	if m, ok := n.Callee.(*ast.Member); ok {
		var base object.Value
		calleeVal, base, c = vm.evalMember(m)
		if c.DidThrow {
			return object.Undefined, c
		}
		this = base
	} else {
		calleeVal, c = vm.evalExpression(n.Callee)
		if c.DidThrow {
			return object.Undefined, c
		}
	}

	if !object.IsCallable(calleeVal) {
		return vm.ThrowValuef(n.Pos(), errors.TypeError, "value is not a function")
	}

	args := make([]object.Value, len(n.Args))
	for i, a := range n.Args {
		v, c := vm.evalExpression(a)
		if c.DidThrow {
			return object.Undefined, c
		}
		args[i] = v
	}

	if vm.EvalFn != nil && calleeVal.Object() == vm.EvalFn {
		return vm.callDirectEval(args, n.Pos())
	}

	return vm.CallFunction(calleeVal.Object(), this, args, n.Pos())
}

func (vm *Interp) evalNew(n *ast.New) (object.Value, Completion) {
	calleeVal, c := vm.evalExpression(n.Callee)
	if c.DidThrow {
		return object.Undefined, c
	}
	if !object.IsCallable(calleeVal) {
		return vm.ThrowValuef(n.Pos(), errors.TypeError, "value is not a constructor")
	}
	args := make([]object.Value, len(n.Args))
	for i, a := range n.Args {
		v, c := vm.evalExpression(a)
		if c.DidThrow {
			return object.Undefined, c
		}
		args[i] = v
	}
	return vm.Construct(calleeVal.Object(), args, n.Pos())
}

func (vm *Interp) evalAssign(n *ast.AssignExpr) (object.Value, Completion) {
	if n.Op == ast.AssignPlain {
		v, c := vm.evalExpression(n.Value)
		if c.DidThrow {
			return object.Undefined, c
		}
		if c := vm.assignTo(n.Target, v); c.DidThrow {
			return object.Undefined, c
		}
		return v, Completion{}
	}

	old, _, c := vm.evalReference(n.Target)
	if c.DidThrow {
		return object.Undefined, c
	}
	rhs, c := vm.evalExpression(n.Value)
	if c.DidThrow {
		return object.Undefined, c
	}
	var result object.Value
	var cc Completion
	switch n.Op {
	case ast.AssignAdd:
		result, cc = vm.evalAdd(old, rhs, n.Pos())
	case ast.AssignSub:
		result, cc = vm.evalArith(ast.OpSub, old, rhs, n.Pos())
	case ast.AssignMul:
		result, cc = vm.evalArith(ast.OpMul, old, rhs, n.Pos())
	case ast.AssignDiv:
		result, cc = vm.evalArith(ast.OpDiv, old, rhs, n.Pos())
	case ast.AssignMod:
		result, cc = vm.evalArith(ast.OpMod, old, rhs, n.Pos())
	case ast.AssignAnd:
		result, cc = vm.evalBitwise(ast.OpBitAnd, old, rhs, n.Pos())
	case ast.AssignOr:
		result, cc = vm.evalBitwise(ast.OpBitOr, old, rhs, n.Pos())
	case ast.AssignXor:
		result, cc = vm.evalBitwise(ast.OpBitXor, old, rhs, n.Pos())
	case ast.AssignShl:
		result, cc = vm.evalBitwise(ast.OpShl, old, rhs, n.Pos())
	case ast.AssignShr:
		result, cc = vm.evalBitwise(ast.OpShr, old, rhs, n.Pos())
	case ast.AssignUShr:
		result, cc = vm.evalBitwise(ast.OpUShr, old, rhs, n.Pos())
	}
	if cc.DidThrow {
		return object.Undefined, cc
	}
	if c := vm.assignTo(n.Target, result); c.DidThrow {
		return object.Undefined, c
	}
	return result, Completion{}
}

// assignTo writes v to an Identifier or Member assignment target. Member
// writes to a declared-parameter index of the current frame's arguments
// object are mirrored back into the fast parameter slot via
// env.Env.SetParam, keeping the two views in sync in both directions.
func (vm *Interp) assignTo(target ast.Expression, v object.Value) Completion {
	if id, ok := target.(*ast.Identifier); ok {
		vm.Env().Set(id.Value, v)
		return Completion{}
	}
	m, ok := target.(*ast.Member)
	if !ok {
		return Completion{}
	}
	baseVal, c := vm.evalExpression(m.Object)
	if c.DidThrow {
		return c
	}
	key, c := vm.propertyKey(m.Property, m.Computed)
	if c.DidThrow {
		return c
	}
	if !baseVal.IsObject() {
		return Completion{}
	}
	obj := baseVal.Object()

	if obj.Kind == object.ArrayKind {
		if idx, ok := arrayIndexOf(key); ok {
			obj.SetIndex(idx, v)
			vm.syncArgumentsAlias(obj, idx, v)
			return Completion{}
		}
		if key == "length" {
			num, err := object.ToNumber(vm, v)
			if err != nil {
				return vm.wrapCallerError(m.Pos(), err)
			}
			if err := obj.SetLength(num); err != nil {
				return vm.Throwf(m.Pos(), errors.RangeError, "%s", err.Error())
			}
			return Completion{}
		}
	}
	if obj.Kind == object.BufferKind || obj.Kind == object.Buffer32Kind {
		if idx, ok := arrayIndexOf(key); ok {
			num, err := object.ToNumber(vm, v)
			if err != nil {
				return vm.wrapCallerError(m.Pos(), err)
			}
			if err := obj.BufferSlot().Set(idx, num); err != nil {
				return vm.Throwf(m.Pos(), errors.RangeError, "%s", err.Error())
			}
			return Completion{}
		}
	}
	obj.Put(key, v)
	return Completion{}
}

// syncArgumentsAlias mirrors a write through arguments[i] back into the
// enclosing call frame's fast parameter slot, for the case where obj *is*
// the current frame's arguments object and i addresses a declared
// parameter.
func (vm *Interp) syncArgumentsAlias(obj *object.Object, idx int, v object.Value) {
	cur := vm.Env()
	for e := cur; e != nil; e = e.Outer() {
		if e.Arguments() == obj {
			if e.IsDeclaredParamIndex(idx) {
				e.SetParam(idx, v)
			}
			return
		}
	}
}

// wrapCallerError turns a plain Go error surfaced from the object
// package's coercion helpers (via object.Caller) into a thrown Completion,
// preferring the exception the VM already recorded (the real thrown
// object) over a stringified generic Error.
func (vm *Interp) wrapCallerError(pos token.Position, err error) Completion {
	if exc, ok := vm.Exception(); ok {
		vm.ClearException()
		return throwCompletion(exc)
	}
	return vm.Throwf(pos, errors.TypeError, "%s", err.Error())
}
