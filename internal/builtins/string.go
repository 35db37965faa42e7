package builtins

import (
	"strings"

	"github.com/ppyne/protoscript/internal/interp"
	"github.com/ppyne/protoscript/internal/object"
	"github.com/ppyne/protoscript/internal/regexp"
	"github.com/ppyne/protoscript/internal/token"
)

func registerStringPrototype(vm *interp.Interp) {
	proto := vm.Proto.String

	native(vm, proto, "toString", 0, func(this object.Value, args []object.Value) (object.Value, error) {
		s, err := thisString(vm, this)
		if err != nil {
			return object.Undefined, err
		}
		return object.Str(s), nil
	})
	native(vm, proto, "valueOf", 0, func(this object.Value, args []object.Value) (object.Value, error) {
		s, err := thisString(vm, this)
		if err != nil {
			return object.Undefined, err
		}
		return object.Str(s), nil
	})
	native(vm, proto, "charAt", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		s, err := thisString(vm, this)
		if err != nil {
			return object.Undefined, err
		}
		r := []rune(s)
		i := 0
		if len(args) > 0 {
			n, err := toNum(vm, args[0])
			if err != nil {
				return object.Undefined, err
			}
			i = int(n)
		}
		if i < 0 || i >= len(r) {
			return object.Str(""), nil
		}
		return object.Str(string(r[i])), nil
	})
	native(vm, proto, "charCodeAt", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		s, err := thisString(vm, this)
		if err != nil {
			return object.Undefined, err
		}
		r := []rune(s)
		i := 0
		if len(args) > 0 {
			n, err := toNum(vm, args[0])
			if err != nil {
				return object.Undefined, err
			}
			i = int(n)
		}
		if i < 0 || i >= len(r) {
			return object.Num(nan()), nil
		}
		return object.Num(float64(r[i])), nil
	})
	native(vm, proto, "indexOf", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		s, err := thisString(vm, this)
		if err != nil {
			return object.Undefined, err
		}
		needle, err := reqString(vm, args, 0)
		if err != nil {
			return object.Undefined, err
		}
		start := 0
		if len(args) > 1 {
			n, err := toNum(vm, args[1])
			if err != nil {
				return object.Undefined, err
			}
			start = int(n)
		}
		r := []rune(s)
		needleRunes := []rune(needle)
		if start < 0 {
			start = 0
		}
		if start > len(r) {
			start = len(r)
		}
		for i := start; i+len(needleRunes) <= len(r); i++ {
			if string(r[i:i+len(needleRunes)]) == needle {
				return object.Num(float64(i)), nil
			}
		}
		return object.Num(-1), nil
	})
	native(vm, proto, "lastIndexOf", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		s, err := thisString(vm, this)
		if err != nil {
			return object.Undefined, err
		}
		needle, err := reqString(vm, args, 0)
		if err != nil {
			return object.Undefined, err
		}
		idx := strings.LastIndex(s, needle)
		if idx < 0 {
			return object.Num(-1), nil
		}
		return object.Num(float64(len([]rune(s[:idx])))), nil
	})
	native(vm, proto, "slice", 2, func(this object.Value, args []object.Value) (object.Value, error) {
		s, err := thisString(vm, this)
		if err != nil {
			return object.Undefined, err
		}
		r := []rune(s)
		start, end, err := sliceBounds(vm, args, len(r))
		if err != nil {
			return object.Undefined, err
		}
		return object.Str(string(r[start:end])), nil
	})
	native(vm, proto, "substring", 2, func(this object.Value, args []object.Value) (object.Value, error) {
		s, err := thisString(vm, this)
		if err != nil {
			return object.Undefined, err
		}
		r := []rune(s)
		n := len(r)
		start, end := 0, n
		if len(args) > 0 && !args[0].IsUndefined() {
			v, err := toNum(vm, args[0])
			if err != nil {
				return object.Undefined, err
			}
			start = clampIndex(int(v), n)
		}
		if len(args) > 1 && !args[1].IsUndefined() {
			v, err := toNum(vm, args[1])
			if err != nil {
				return object.Undefined, err
			}
			end = clampIndex(int(v), n)
		}
		if start > end {
			start, end = end, start
		}
		return object.Str(string(r[start:end])), nil
	})
	native(vm, proto, "toUpperCase", 0, func(this object.Value, args []object.Value) (object.Value, error) {
		s, err := thisString(vm, this)
		if err != nil {
			return object.Undefined, err
		}
		return object.Str(strings.ToUpper(s)), nil
	})
	native(vm, proto, "toLowerCase", 0, func(this object.Value, args []object.Value) (object.Value, error) {
		s, err := thisString(vm, this)
		if err != nil {
			return object.Undefined, err
		}
		return object.Str(strings.ToLower(s)), nil
	})
	native(vm, proto, "trim", 0, func(this object.Value, args []object.Value) (object.Value, error) {
		s, err := thisString(vm, this)
		if err != nil {
			return object.Undefined, err
		}
		return object.Str(strings.TrimSpace(s)), nil
	})
	native(vm, proto, "concat", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		s, err := thisString(vm, this)
		if err != nil {
			return object.Undefined, err
		}
		var b strings.Builder
		b.WriteString(s)
		for _, a := range args {
			t, err := toStr(vm, a)
			if err != nil {
				return object.Undefined, err
			}
			b.WriteString(t)
		}
		return object.Str(b.String()), nil
	})
	native(vm, proto, "split", 2, func(this object.Value, args []object.Value) (object.Value, error) {
		s, err := thisString(vm, this)
		if err != nil {
			return object.Undefined, err
		}
		out := object.NewArray(vm.Proto.Array)
		vm.Heap.Track(out, 0)
		if len(args) == 0 || args[0].IsUndefined() {
			out.Push(object.Str(s))
			return object.Obj(out), nil
		}
		if args[0].IsObject() && args[0].Object().Kind == object.RegExpKind {
			splitByRegExp(out, s, args[0].Object().RegExpSlot().Prog)
			return object.Obj(out), nil
		}
		sep, err := toStr(vm, args[0])
		if err != nil {
			return object.Undefined, err
		}
		if sep == "" {
			for _, r := range s {
				out.Push(object.Str(string(r)))
			}
			return object.Obj(out), nil
		}
		for _, part := range strings.Split(s, sep) {
			out.Push(object.Str(part))
		}
		return object.Obj(out), nil
	})
	native(vm, proto, "match", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		s, err := thisString(vm, this)
		if err != nil {
			return object.Undefined, err
		}
		prog, err := coerceRegExp(vm, argOr(args, 0))
		if err != nil {
			return object.Undefined, err
		}
		input := []rune(s)
		if !prog.Global {
			idx := prog.FindSubmatchIndex(input, 0)
			if idx == nil {
				return object.Null, nil
			}
			return object.Obj(matchResultArray(vm, input, idx)), nil
		}
		out := object.NewArray(vm.Proto.Array)
		vm.Heap.Track(out, 0)
		pos := 0
		for pos <= len(input) {
			idx := prog.FindSubmatchIndex(input, pos)
			if idx == nil {
				break
			}
			out.Push(object.Str(string(input[idx[0]:idx[1]])))
			if idx[1] == idx[0] {
				pos = regexp.BumpOneCodePoint(idx[1], input)
			} else {
				pos = idx[1]
			}
		}
		if out.Length() == 0 {
			return object.Null, nil
		}
		return object.Obj(out), nil
	})
	native(vm, proto, "search", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		s, err := thisString(vm, this)
		if err != nil {
			return object.Undefined, err
		}
		prog, err := coerceRegExp(vm, argOr(args, 0))
		if err != nil {
			return object.Undefined, err
		}
		idx := prog.FindSubmatchIndex([]rune(s), 0)
		if idx == nil {
			return object.Num(-1), nil
		}
		return object.Num(float64(idx[0])), nil
	})
	native(vm, proto, "replace", 2, func(this object.Value, args []object.Value) (object.Value, error) {
		s, err := thisString(vm, this)
		if err != nil {
			return object.Undefined, err
		}
		pattern := argOr(args, 0)
		replacement := argOr(args, 1)
		if pattern.IsObject() && pattern.Object().Kind == object.RegExpKind {
			return stringReplaceRegExp(vm, s, pattern.Object().RegExpSlot().Prog, replacement)
		}
		needle, err := toStr(vm, pattern)
		if err != nil {
			return object.Undefined, err
		}
		idx := strings.Index(s, needle)
		if idx < 0 {
			return object.Str(s), nil
		}
		repl, err := stringReplacement(vm, replacement, []string{needle}, idx, s)
		if err != nil {
			return object.Undefined, err
		}
		return object.Str(s[:idx] + repl + s[idx+len(needle):]), nil
	})
	native(vm, proto, "repeat", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		s, err := thisString(vm, this)
		if err != nil {
			return object.Undefined, err
		}
		n, err := reqNumber(vm, args, 0)
		if err != nil {
			return object.Undefined, err
		}
		if n < 0 {
			return object.Undefined, rangeErr("Invalid count value: %v", n)
		}
		return object.Str(strings.Repeat(s, int(n))), nil
	})
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

func coerceRegExp(vm *interp.Interp, v object.Value) (*regexp.Program, error) {
	if v.IsObject() && v.Object().Kind == object.RegExpKind {
		return v.Object().RegExpSlot().Prog, nil
	}
	s, err := toStr(vm, v)
	if err != nil {
		return nil, err
	}
	return regexp.Compile(s, "")
}

func matchResultArray(vm *interp.Interp, input []rune, idx []int) *object.Object {
	arr := object.NewArray(vm.Proto.Array)
	vm.Heap.Track(arr, 0)
	groups := len(idx) / 2
	for g := 0; g < groups; g++ {
		lo, hi := idx[2*g], idx[2*g+1]
		if lo < 0 {
			arr.Push(object.Undefined)
			continue
		}
		arr.Push(object.Str(string(input[lo:hi])))
	}
	arr.Define("index", object.Num(float64(idx[0])), object.DONTENUM)
	arr.Define("input", object.Str(string(input)), object.DONTENUM)
	return arr
}

func splitByRegExp(out *object.Object, s string, prog *regexp.Program) {
	input := []rune(s)
	pos, last := 0, 0
	for pos <= len(input) {
		idx := prog.FindSubmatchIndex(input, pos)
		if idx == nil || idx[0] >= len(input) {
			break
		}
		if idx[1] == idx[0] {
			if idx[0] == last {
				pos = regexp.BumpOneCodePoint(idx[0], input)
				continue
			}
		}
		out.Push(object.Str(string(input[last:idx[0]])))
		for g := 1; g < len(idx)/2; g++ {
			lo, hi := idx[2*g], idx[2*g+1]
			if lo < 0 {
				out.Push(object.Undefined)
			} else {
				out.Push(object.Str(string(input[lo:hi])))
			}
		}
		last = idx[1]
		if idx[1] == idx[0] {
			pos = regexp.BumpOneCodePoint(idx[1], input)
		} else {
			pos = idx[1]
		}
	}
	out.Push(object.Str(string(input[last:])))
}

// stringReplacement expands a replacement value: a callable is invoked with
// (match, ...groups, offset, string) and its return coerced to string;
// otherwise the replacement is coerced to string and "$&"/"$1".."$9"/"$$"
// substitutions are applied against groups (groups[0] is the whole match).
func stringReplacement(vm *interp.Interp, replacement object.Value, groups []string, offset int, whole string) (string, error) {
	if object.IsCallable(replacement) {
		args := make([]object.Value, 0, len(groups)+2)
		for _, g := range groups {
			args = append(args, object.Str(g))
		}
		args = append(args, object.Num(float64(offset)), object.Str(whole))
		fn := replacement.Object()
		v, c := vm.CallFunction(fn, object.Undefined, args, token.Position{})
		res, err := nativeResult(vm, v, c)
		if err != nil {
			return "", err
		}
		return toStr(vm, res)
	}
	tmpl, err := toStr(vm, replacement)
	if err != nil {
		return "", err
	}
	return expandReplacementTemplate(tmpl, groups), nil
}

func expandReplacementTemplate(tmpl string, groups []string) string {
	var b strings.Builder
	r := []rune(tmpl)
	for i := 0; i < len(r); i++ {
		if r[i] != '$' || i+1 >= len(r) {
			b.WriteRune(r[i])
			continue
		}
		next := r[i+1]
		switch {
		case next == '$':
			b.WriteRune('$')
			i++
		case next == '&':
			b.WriteString(groups[0])
			i++
		case next >= '1' && next <= '9':
			n := int(next - '0')
			if n < len(groups) {
				b.WriteString(groups[n])
			}
			i++
		default:
			b.WriteRune(r[i])
		}
	}
	return b.String()
}

func stringReplaceRegExp(vm *interp.Interp, s string, prog *regexp.Program, replacement object.Value) (object.Value, error) {
	input := []rune(s)
	var b strings.Builder
	pos, last := 0, 0
	for pos <= len(input) {
		idx := prog.FindSubmatchIndex(input, pos)
		if idx == nil {
			break
		}
		groups := make([]string, len(idx)/2)
		for g := range groups {
			lo, hi := idx[2*g], idx[2*g+1]
			if lo >= 0 {
				groups[g] = string(input[lo:hi])
			}
		}
		b.WriteString(string(input[last:idx[0]]))
		repl, err := stringReplacement(vm, replacement, groups, idx[0], s)
		if err != nil {
			return object.Undefined, err
		}
		b.WriteString(repl)
		last = idx[1]
		if idx[1] == idx[0] {
			pos = regexp.BumpOneCodePoint(idx[1], input)
		} else {
			pos = idx[1]
		}
		if !prog.Global {
			break
		}
	}
	b.WriteString(string(input[last:]))
	return object.Str(b.String()), nil
}

func registerStringConstructor(vm *interp.Interp) {
	ctor := constructor(vm, "String", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		s := ""
		if len(args) > 0 {
			v, err := toStr(vm, args[0])
			if err != nil {
				return object.Undefined, err
			}
			s = v
		}
		if o, ok := thisFreshInstance(this); ok {
			wrapped := object.NewStringWrapper(vm.Proto.String, s)
			vm.Heap.Track(wrapped, int64(len(s)))
			o.Kind = wrapped.Kind
			o.Internal = wrapped.Internal
			o.Prototype = vm.Proto.String
			o.Define("length", object.Num(float64(len([]rune(s)))), object.READONLY|object.DONTENUM|object.DONTDELETE)
			return this, nil
		}
		return object.Str(s), nil
	}, vm.Proto.String)

	native(vm, ctor, "fromCharCode", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		var b strings.Builder
		for _, a := range args {
			n, err := toNum(vm, a)
			if err != nil {
				return object.Undefined, err
			}
			b.WriteRune(rune(int(n)))
		}
		return object.Str(b.String()), nil
	})
}
