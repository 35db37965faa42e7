package object

import (
	"fmt"
	"strconv"
)

// Attr is a bitmask of property attributes.
type Attr uint8

const (
	READONLY Attr = 1 << iota
	DONTENUM
	DONTDELETE
)

// ObjKind tags which internal slot an Object carries.
type ObjKind uint8

const (
	PlainKind ObjKind = iota
	FunctionKind
	BooleanWrapperKind
	NumberWrapperKind
	StringWrapperKind
	ArrayKind
	DateKind
	RegExpKind
	BufferKind
	Buffer32Kind
	ImageKind
)

func (k ObjKind) tag() string {
	switch k {
	case FunctionKind:
		return "Function"
	case ArrayKind:
		return "Array"
	case DateKind:
		return "Date"
	case RegExpKind:
		return "RegExp"
	case BooleanWrapperKind:
		return "Boolean"
	case NumberWrapperKind:
		return "Number"
	case StringWrapperKind:
		return "String"
	case BufferKind:
		return "Buffer"
	case Buffer32Kind:
		return "Buffer32"
	case ImageKind:
		return "Image"
	default:
		return "Object"
	}
}

type property struct {
	value Value
	attrs Attr
}

type lookupCache struct {
	name string
	prop *property
	ok   bool
	set  bool
}

// Object is a prototype-chained property bag with an optional specialized
// internal slot selected by Kind.
type Object struct {
	Prototype *Object
	Kind      ObjKind

	names []string
	props map[string]*property
	cache lookupCache

	// Internal holds the kind-specific payload: *ArraySlot, *FuncSlot,
	// *DateSlot, *RegExpSlot, *BufferSlot, or a wrapped Value for the
	// primitive wrappers.
	Internal interface{}

	// marked is used by the tracing collector; see internal/gc.
	marked bool
}

// New allocates a plain object with the given prototype (nil for none).
func New(proto *Object) *Object {
	return &Object{Prototype: proto, Kind: PlainKind, props: make(map[string]*property)}
}

// NewKind allocates an object of the given internal kind with proto.
func NewKind(proto *Object, kind ObjKind) *Object {
	return &Object{Prototype: proto, Kind: kind, props: make(map[string]*property)}
}

// DebugTag renders "[object Tag]" per ToString's object branch.
func (o *Object) DebugTag() string { return fmt.Sprintf("[object %s]", o.Kind.tag()) }

// Marked reports the collector's mark bit; SetMarked/ClearMarked toggle it.
func (o *Object) Marked() bool   { return o.marked }
func (o *Object) SetMarked(v bool) { o.marked = v }

func (o *Object) invalidateCache() { o.cache = lookupCache{} }

// HasOwn reports whether name is an own property.
func (o *Object) HasOwn(name string) bool {
	_, ok := o.getOwnProp(name)
	return ok
}

func (o *Object) getOwnProp(name string) (*property, bool) {
	if o.cache.set && o.cache.name == name {
		return o.cache.prop, o.cache.ok
	}
	p, ok := o.props[name]
	o.cache = lookupCache{name: name, prop: p, ok: ok, set: true}
	return p, ok
}

// GetOwn returns an own property's value without walking the prototype
// chain.
func (o *Object) GetOwn(name string) (Value, bool) {
	p, ok := o.getOwnProp(name)
	if !ok {
		return Undefined, false
	}
	return p.value, true
}

// Get walks the prototype chain for name.
func (o *Object) Get(name string) (Value, bool) {
	for cur := o; cur != nil; cur = cur.Prototype {
		if v, ok := cur.GetOwn(name); ok {
			return v, true
		}
	}
	return Undefined, false
}

// Put updates an existing writable property anywhere in the chain,
// creating an own property on the receiver if none exists. Writing to a
// READONLY property is silently ignored, per the data model's invariant.
func (o *Object) Put(name string, value Value) {
	for cur := o; cur != nil; cur = cur.Prototype {
		if p, ok := cur.getOwnProp(name); ok {
			if p.attrs&READONLY != 0 {
				return
			}
			if cur == o {
				p.value = value
				return
			}
			break
		}
	}
	o.Define(name, value, 0)
}

// Define sets an own property with explicit attributes, overwriting any
// existing own property of the same name.
func (o *Object) Define(name string, value Value, attrs Attr) {
	if p, ok := o.props[name]; ok {
		p.value = value
		p.attrs = attrs
		o.invalidateCache()
		return
	}
	p := &property{value: value, attrs: attrs}
	o.props[name] = p
	o.names = append(o.names, name)
	o.invalidateCache()
}

// Delete removes an own property, honoring DONTDELETE.
func (o *Object) Delete(name string) bool {
	p, ok := o.props[name]
	if !ok {
		return true
	}
	if p.attrs&DONTDELETE != 0 {
		return false
	}
	delete(o.props, name)
	for i, n := range o.names {
		if n == name {
			o.names = append(o.names[:i], o.names[i+1:]...)
			break
		}
	}
	o.invalidateCache()
	return true
}

// Enumerate calls fn for each own enumerable property in insertion order,
// except that on an Array, numeric-index keys are visited first in
// ascending order (with "length" suppressed) before the remaining
// insertion-ordered keys. fn returning false stops iteration early.
func (o *Object) Enumerate(fn func(name string, v Value) bool) {
	for _, name := range o.OwnEnumerableOrder() {
		v, ok := o.GetOwn(name)
		if !ok && o.Kind == ArrayKind {
			if i, err := strconv.Atoi(name); err == nil {
				v, _ = o.GetIndex(i)
			}
		}
		if !fn(name, v) {
			return
		}
	}
}

// OwnEnumerableOrder returns the enumeration order of own enumerable
// property names, applying the array reordering rule when Kind ==
// ArrayKind.
func (o *Object) OwnEnumerableOrder() []string {
	var names []string
	if o.Kind == ArrayKind {
		names = append(names, arrayIndexNames(o)...)
	}
	for _, n := range o.names {
		if o.Kind == ArrayKind && (n == "length" || IsArrayIndexName(n)) {
			continue
		}
		p := o.props[n]
		if p.attrs&DONTENUM != 0 {
			continue
		}
		names = append(names, n)
	}
	return names
}

// TraceOwnProperties calls fn for every own property value regardless of
// attributes (including DONTENUM ones); the tracing collector uses this to
// find every Value reachable from an object, since enumeration visibility
// has no bearing on reachability.
func (o *Object) TraceOwnProperties(fn func(v Value)) {
	for _, n := range o.names {
		fn(o.props[n].value)
	}
}

// SetPrototype assigns a new prototype, rejecting chains that would
// introduce a cycle.
func (o *Object) SetPrototype(proto *Object) error {
	for cur := proto; cur != nil; cur = cur.Prototype {
		if cur == o {
			return fmt.Errorf("cyclic prototype chain")
		}
	}
	o.Prototype = proto
	return nil
}
