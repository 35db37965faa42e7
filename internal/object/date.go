package object

import "math"

// DateSlot stores milliseconds since the Unix epoch as an IEEE double;
// NaN represents an invalid date.
type DateSlot struct {
	Millis float64
}

// NewDate allocates a Date object with the given epoch-millisecond value.
func NewDate(proto *Object, millis float64) *Object {
	o := NewKind(proto, DateKind)
	o.Internal = &DateSlot{Millis: millis}
	return o
}

func (o *Object) DateSlot() *DateSlot {
	if o == nil || o.Kind != DateKind {
		return nil
	}
	s, _ := o.Internal.(*DateSlot)
	return s
}

// NewInvalidDate allocates a Date object holding NaN ("Invalid Date").
func NewInvalidDate(proto *Object) *Object {
	return NewDate(proto, math.NaN())
}
