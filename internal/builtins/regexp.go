package builtins

import (
	"github.com/ppyne/protoscript/internal/interp"
	"github.com/ppyne/protoscript/internal/object"
	"github.com/ppyne/protoscript/internal/regexp"
)

func registerRegExpPrototype(vm *interp.Interp) {
	proto := vm.Proto.RegExp

	native(vm, proto, "test", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		slot, ok := regExpSlot(this)
		if !ok {
			return object.Undefined, typeErr("RegExp.prototype.test called on a non-RegExp")
		}
		s, err := reqString(vm, args, 0)
		if err != nil {
			return object.Undefined, err
		}
		input := []rune(s)
		start := 0
		if slot.Prog.Global {
			start = slot.LastIndex
		}
		if start < 0 || start > len(input) {
			slot.LastIndex = 0
			return object.Bool(false), nil
		}
		idx := slot.Prog.FindSubmatchIndex(input, start)
		if idx == nil {
			if slot.Prog.Global {
				slot.LastIndex = 0
			}
			return object.Bool(false), nil
		}
		if slot.Prog.Global {
			slot.LastIndex = advanceLastIndex(idx, input)
		}
		return object.Bool(true), nil
	})
	native(vm, proto, "exec", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		slot, ok := regExpSlot(this)
		if !ok {
			return object.Undefined, typeErr("RegExp.prototype.exec called on a non-RegExp")
		}
		s, err := reqString(vm, args, 0)
		if err != nil {
			return object.Undefined, err
		}
		input := []rune(s)
		start := 0
		if slot.Prog.Global {
			start = slot.LastIndex
		}
		if start < 0 || start > len(input) {
			slot.LastIndex = 0
			return object.Null, nil
		}
		idx := slot.Prog.FindSubmatchIndex(input, start)
		if idx == nil {
			if slot.Prog.Global {
				slot.LastIndex = 0
			}
			return object.Null, nil
		}
		if slot.Prog.Global {
			slot.LastIndex = advanceLastIndex(idx, input)
		}
		return object.Obj(matchResultArray(vm, input, idx)), nil
	})
	native(vm, proto, "toString", 0, func(this object.Value, args []object.Value) (object.Value, error) {
		slot, ok := regExpSlot(this)
		if !ok {
			return object.Str("/(?:)/"), nil
		}
		flags := ""
		if slot.Prog.Global {
			flags += "g"
		}
		if slot.Prog.IgnoreCase {
			flags += "i"
		}
		if slot.Prog.Multiline {
			flags += "m"
		}
		return object.Str("/" + slot.Prog.Source + "/" + flags), nil
	})
}

func regExpSlot(this object.Value) (*object.RegExpSlot, bool) {
	if !this.IsObject() || this.Object().Kind != object.RegExpKind {
		return nil, false
	}
	return this.Object().RegExpSlot(), true
}

// advanceLastIndex implements the global-flag lastIndex advancement rule:
// past the match end, bumped one code point further when the match was
// empty so a global exec/test loop always makes forward progress.
func advanceLastIndex(idx []int, input []rune) int {
	if idx[1] == idx[0] {
		return regexp.BumpOneCodePoint(idx[1], input)
	}
	return idx[1]
}

func registerRegExpConstructor(vm *interp.Interp) {
	constructor(vm, "RegExp", 2, func(this object.Value, args []object.Value) (object.Value, error) {
		pattern := ""
		flags := ""
		if len(args) > 0 {
			if args[0].IsObject() && args[0].Object().Kind == object.RegExpKind {
				slot := args[0].Object().RegExpSlot()
				pattern = slot.Prog.Source
				flags = regexpFlagsOf(slot.Prog)
			} else {
				p, err := toStr(vm, args[0])
				if err != nil {
					return object.Undefined, err
				}
				pattern = p
			}
		}
		if len(args) > 1 && !args[1].IsUndefined() {
			f, err := toStr(vm, args[1])
			if err != nil {
				return object.Undefined, err
			}
			flags = f
		}
		prog, err := regexp.Compile(pattern, flags)
		if err != nil {
			return object.Undefined, syntaxErr("Invalid regular expression: %s", err.Error())
		}
		re := object.NewRegExp(vm.Proto.RegExp, prog)
		vm.Heap.Track(re, 0)
		return object.Obj(re), nil
	}, vm.Proto.RegExp)
}

func regexpFlagsOf(prog *regexp.Program) string {
	f := ""
	if prog.Global {
		f += "g"
	}
	if prog.IgnoreCase {
		f += "i"
	}
	if prog.Multiline {
		f += "m"
	}
	return f
}
