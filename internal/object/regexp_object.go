package object

import "github.com/ppyne/protoscript/internal/regexp"

// RegExpSlot is the internal payload of a RegExp-kind Object.
type RegExpSlot struct {
	Prog      *regexp.Program
	LastIndex int
}

// NewRegExp allocates a RegExp object wrapping a compiled program.
func NewRegExp(proto *Object, prog *regexp.Program) *Object {
	o := NewKind(proto, RegExpKind)
	o.Internal = &RegExpSlot{Prog: prog}
	o.Define("source", Str(prog.Source), READONLY|DONTENUM|DONTDELETE)
	o.Define("global", Bool(prog.Global), READONLY|DONTENUM|DONTDELETE)
	o.Define("ignoreCase", Bool(prog.IgnoreCase), READONLY|DONTENUM|DONTDELETE)
	o.Define("multiline", Bool(prog.Multiline), READONLY|DONTENUM|DONTDELETE)
	o.Define("lastIndex", Num(0), DONTENUM|DONTDELETE)
	return o
}

func (o *Object) RegExpSlot() *RegExpSlot {
	if o == nil || o.Kind != RegExpKind {
		return nil
	}
	s, _ := o.Internal.(*RegExpSlot)
	return s
}
