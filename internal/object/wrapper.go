package object

// NewBooleanWrapper, NewNumberWrapper, and NewStringWrapper allocate the
// wrapper objects created by `new Boolean(...)`, `new Number(...)`, and
// `new String(...)`: the primitive is stored in Internal and returned
// verbatim by valueOf.
func NewBooleanWrapper(proto *Object, v bool) *Object {
	o := NewKind(proto, BooleanWrapperKind)
	o.Internal = Bool(v)
	return o
}

func NewNumberWrapper(proto *Object, v float64) *Object {
	o := NewKind(proto, NumberWrapperKind)
	o.Internal = Num(v)
	return o
}

// NewStringWrapper also exposes "length" as the code-point count. The
// wrapper carries no index properties, so an integer-keyed read on it is
// an ordinary property lookup, not a character access.
func NewStringWrapper(proto *Object, v string) *Object {
	o := NewKind(proto, StringWrapperKind)
	o.Internal = Str(v)
	o.Define("length", Num(float64(len([]rune(v)))), READONLY|DONTENUM|DONTDELETE)
	return o
}

// WrappedPrimitive returns the primitive stored by a wrapper object's
// internal slot, and whether o actually is one of the three wrapper kinds.
func (o *Object) WrappedPrimitive() (Value, bool) {
	switch o.Kind {
	case BooleanWrapperKind, NumberWrapperKind, StringWrapperKind:
		v, ok := o.Internal.(Value)
		return v, ok
	default:
		return Undefined, false
	}
}
