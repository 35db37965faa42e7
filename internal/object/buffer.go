package object

import "fmt"

// BufferSlot backs both Buffer (byte-addressed) and Buffer32 (32-bit-word
// addressed) objects; Width distinguishes them.
type BufferSlot struct {
	Bytes []byte
	Words []uint32
	Width int // 1 for Buffer, 4 for Buffer32
}

// NewBuffer allocates a fixed-size byte buffer.
func NewBuffer(proto *Object, size int) *Object {
	o := NewKind(proto, BufferKind)
	o.Internal = &BufferSlot{Bytes: make([]byte, size), Width: 1}
	o.Define("length", Num(float64(size)), READONLY|DONTENUM|DONTDELETE)
	return o
}

// NewBuffer32 allocates a fixed-size 32-bit-word buffer.
func NewBuffer32(proto *Object, size int) *Object {
	o := NewKind(proto, Buffer32Kind)
	o.Internal = &BufferSlot{Words: make([]uint32, size), Width: 4}
	o.Define("length", Num(float64(size)), READONLY|DONTENUM|DONTDELETE)
	return o
}

func (o *Object) BufferSlot() *BufferSlot {
	if o == nil || (o.Kind != BufferKind && o.Kind != Buffer32Kind) {
		return nil
	}
	s, _ := o.Internal.(*BufferSlot)
	return s
}

// Get reads the element at i, returning an error (to be raised as a
// RangeError by the caller) on an out-of-range index.
func (b *BufferSlot) Get(i int) (float64, error) {
	if b.Width == 1 {
		if i < 0 || i >= len(b.Bytes) {
			return 0, fmt.Errorf("buffer index %d out of range [0, %d)", i, len(b.Bytes))
		}
		return float64(b.Bytes[i]), nil
	}
	if i < 0 || i >= len(b.Words) {
		return 0, fmt.Errorf("buffer32 index %d out of range [0, %d)", i, len(b.Words))
	}
	return float64(b.Words[i]), nil
}

// Set writes the element at i, clamping the value to the byte range for a
// Buffer. Out-of-range indices return an error for the caller to raise as
// RangeError.
func (b *BufferSlot) Set(i int, v float64) error {
	if b.Width == 1 {
		if i < 0 || i >= len(b.Bytes) {
			return fmt.Errorf("buffer index %d out of range [0, %d)", i, len(b.Bytes))
		}
		iv := int64(v)
		if iv < 0 {
			iv = 0
		}
		if iv > 255 {
			iv = 255
		}
		b.Bytes[i] = byte(iv)
		return nil
	}
	if i < 0 || i >= len(b.Words) {
		return fmt.Errorf("buffer32 index %d out of range [0, %d)", i, len(b.Words))
	}
	b.Words[i] = ToUint32(v)
	return nil
}

// Len returns the element count.
func (b *BufferSlot) Len() int {
	if b.Width == 1 {
		return len(b.Bytes)
	}
	return len(b.Words)
}
