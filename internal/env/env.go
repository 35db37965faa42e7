// Package env implements lexical scope records: the outer-chain of
// bindings an identifier lookup walks, hoisting of var/function
// declarations, with-environments, and the fast parameter slots and
// arguments aliasing a call frame needs.
package env

import "github.com/ppyne/protoscript/internal/object"

// Kind distinguishes the three environment shapes a lexical scope can take.
type Kind uint8

const (
	// NormalKind is a plain block/global scope: bindings live directly on
	// record as object properties.
	NormalKind Kind = iota
	// WithKind augments lookup with an existing object's full prototype
	// chain (the `with` statement's target); record *is* that object, not
	// a fresh one.
	WithKind
	// CallKind is a function invocation frame: declared parameters live
	// in fast slots, additional locals/hoisted vars live on record, and
	// Arguments exposes the array-like `arguments` object.
	CallKind
)

// Env is one lexical scope. internal/object's Environment interface
// (Get/Set/Define) is satisfied by *Env so function closures can hold one
// without internal/object importing this package.
type Env struct {
	kind   Kind
	record *object.Object
	outer  *Env

	// CallKind only:
	params    []string
	slots     []object.Value
	arguments *object.Object
	callee    *object.Object
	this      object.Value
}

// NewGlobal creates a root environment whose record is globalObject, with
// no outer scope. Bindings created here are what ES1's undeclared-assignment
// fallback writes to.
func NewGlobal(globalObject *object.Object) *Env {
	return &Env{kind: NormalKind, record: globalObject}
}

// NewEnclosed creates a plain nested scope (catch clause, named function
// expression's own-name scope) whose
// record is a fresh, prototype-less property bag.
func NewEnclosed(outer *Env) *Env {
	return &Env{kind: NormalKind, record: object.New(nil), outer: outer}
}

// NewWith creates a with-environment: lookups consult obj's entire
// prototype chain before falling through to outer.
func NewWith(outer *Env, obj *object.Object) *Env {
	return &Env{kind: WithKind, record: obj, outer: outer}
}

// NewCall creates a function invocation frame. paramNames gives the
// declared parameter names in order; args supplies the actual arguments
// (which may be longer or shorter than paramNames). argumentsProto is the
// prototype for the arguments array-like object (ordinarily
// Array.prototype, but any host-supplied object is accepted). callee is
// the function object being invoked, exposed to the body as
// arguments.callee.
func NewCall(outer *Env, callee *object.Object, this object.Value, argumentsProto *object.Object, paramNames []string, args []object.Value) *Env {
	slots := make([]object.Value, len(paramNames))
	for i := range slots {
		if i < len(args) {
			slots[i] = args[i]
		} else {
			slots[i] = object.Undefined
		}
	}
	arguments := object.NewArray(argumentsProto)
	for i, a := range args {
		arguments.SetIndex(i, a)
	}
	arguments.Define("callee", object.Obj(callee), object.DONTENUM)
	record := object.New(nil)
	record.Define("arguments", object.Obj(arguments), object.DONTENUM)
	return &Env{
		kind:      CallKind,
		record:    record,
		outer:     outer,
		params:    paramNames,
		slots:     slots,
		arguments: arguments,
		callee:    callee,
		this:      this,
	}
}

// This returns the frame's `this` binding. Outside a call frame (block,
// with, or global scope) it walks out to the nearest enclosing call
// frame, matching non-arrow-function lexical `this` resolution.
func (e *Env) This() object.Value {
	for cur := e; cur != nil; cur = cur.outer {
		if cur.kind == CallKind {
			return cur.this
		}
	}
	return object.Undefined
}

// Outer returns the enclosing scope, or nil at the global scope.
func (e *Env) Outer() *Env { return e.outer }

// Arguments returns the frame's arguments object, or nil outside a call
// frame.
func (e *Env) Arguments() *object.Object {
	if e == nil || e.kind != CallKind {
		return nil
	}
	return e.arguments
}

// Callee returns the function being invoked in this frame, or nil outside
// a call frame.
func (e *Env) Callee() *object.Object {
	if e == nil {
		return nil
	}
	return e.callee
}

func (e *Env) paramIndex(name string) int {
	for i, p := range e.params {
		if p == name {
			return i
		}
	}
	return -1
}

// Get walks the scope chain for name: a with-environment consults its
// object's full prototype chain, a call frame consults fast parameter
// slots before its local record, and any kind falls through to its own
// record, then to outer.
func (e *Env) Get(name string) (object.Value, bool) {
	for cur := e; cur != nil; cur = cur.outer {
		if cur.kind == CallKind {
			if i := cur.paramIndex(name); i >= 0 {
				return cur.slots[i], true
			}
		}
		// record.Get walks record's own prototype chain, which is nil for
		// Normal/Call records and the full augmenting-object chain for a
		// with-environment — one call covers both cases.
		if v, ok := cur.record.Get(name); ok {
			return v, true
		}
	}
	return object.Undefined, false
}

// Set walks the chain looking for an existing binding to update in place.
// If none exists anywhere in the chain, ES1's undeclared-assignment rule
// creates the binding on the outermost (global) record.
func (e *Env) Set(name string, v object.Value) {
	for cur := e; cur != nil; cur = cur.outer {
		if cur.kind == CallKind {
			if i := cur.paramIndex(name); i >= 0 {
				cur.slots[i] = v
				if cur.arguments != nil && i < cur.arguments.Length() {
					cur.arguments.SetIndex(i, v)
				}
				return
			}
		}
		if _, ok := cur.record.Get(name); ok {
			cur.record.Put(name, v)
			return
		}
	}
	e.global().record.Define(name, v, 0)
}

// Define creates or overwrites a binding on the innermost record: the
// current call frame's param slot if name names a parameter, otherwise
// the innermost object record.
func (e *Env) Define(name string, v object.Value) {
	if e.kind == CallKind {
		if i := e.paramIndex(name); i >= 0 {
			e.slots[i] = v
			if e.arguments != nil && i < e.arguments.Length() {
				e.arguments.SetIndex(i, v)
			}
			return
		}
	}
	e.record.Define(name, v, 0)
}

// SetParam writes parameter index i directly, keeping the arguments
// object's aliased entry in sync. Used by the interpreter when a write
// targets arguments[i] for a declared parameter, so the fast slot stays
// current too.
func (e *Env) SetParam(i int, v object.Value) {
	if e == nil || e.kind != CallKind || i < 0 || i >= len(e.slots) {
		return
	}
	e.slots[i] = v
	if e.arguments != nil {
		e.arguments.SetIndex(i, v)
	}
}

// IsDeclaredParamIndex reports whether i addresses a declared parameter
// of this call frame (as opposed to an extra argument beyond the declared
// count, which lives only in the arguments object).
func (e *Env) IsDeclaredParamIndex(i int) bool {
	return e != nil && e.kind == CallKind && i >= 0 && i < len(e.params)
}

func (e *Env) global() *Env {
	cur := e
	for cur.outer != nil {
		cur = cur.outer
	}
	return cur
}

// HasBinding reports whether name is bound in this scope specifically
// (not outer scopes): as a parameter, or as an own record property. Used
// by hoisting to avoid redefining an already-shadowed name.
func (e *Env) HasBinding(name string) bool {
	if e.kind == CallKind && e.paramIndex(name) >= 0 {
		return true
	}
	return e.record.HasOwn(name)
}

// Trace implements gc.EnvTracer: it marks everything this environment and
// its outer chain hold a strong reference to, so the collector need not
// import this package to walk it (see internal/gc's EnvTracer assertion).
func (e *Env) Trace(mark func(object.Value)) {
	for cur := e; cur != nil; cur = cur.outer {
		if cur.record != nil {
			mark(object.Obj(cur.record))
		}
		for _, v := range cur.slots {
			mark(v)
		}
		if cur.arguments != nil {
			mark(object.Obj(cur.arguments))
		}
		if cur.callee != nil {
			mark(object.Obj(cur.callee))
		}
	}
}
