package jsonvalue

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ppyne/protoscript/internal/object"
)

// Stringify implements JSON.stringify(value[, replacer[, space]])'s core
// serialization walk: replacer (when a function) runs before type
// dispatch, a toJSON method (when present) runs before that, indent is
// applied per nesting level, and a value that cannot be represented
// (undefined, a function, a cyclic reference) is handled per the rules
// documented on each branch below.
func Stringify(h Host, v object.Value, replacer object.Value, indent string) (string, bool, error) {
	seen := map[*object.Object]bool{}
	var b strings.Builder
	ok, err := stringifyValue(h, &b, v, replacer, indent, "", seen)
	if err != nil {
		return "", false, err
	}
	return b.String(), ok, nil
}

func stringifyValue(h Host, b *strings.Builder, v object.Value, replacer object.Value, indent, curIndent string, seen map[*object.Object]bool) (bool, error) {
	if v.IsObject() {
		if fn, ok := v.Object().Get("toJSON"); ok && object.IsCallable(fn) {
			r, err := h.Call(fn.Object(), v, nil)
			if err != nil {
				return false, err
			}
			v = r
		}
	}
	if object.IsCallable(replacer) {
		r, err := h.Call(replacer.Object(), object.Undefined, []object.Value{object.Str(""), v})
		if err != nil {
			return false, err
		}
		v = r
	}

	switch {
	case v.IsUndefined():
		return false, nil
	case v.IsNull():
		b.WriteString("null")
		return true, nil
	case v.Kind() == object.BooleanKind:
		if v.Bool() {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
		return true, nil
	case v.Kind() == object.NumberKind:
		n := v.Number()
		if math.IsNaN(n) || math.IsInf(n, 0) {
			b.WriteString("null")
		} else {
			b.WriteString(strconv.FormatFloat(n, 'g', -1, 64))
		}
		return true, nil
	case v.Kind() == object.StringKind:
		writeJSONString(b, v.String())
		return true, nil
	case v.IsObject():
		return stringifyObject(h, b, v.Object(), replacer, indent, curIndent, seen)
	default:
		return false, nil
	}
}

func stringifyObject(h Host, b *strings.Builder, o *object.Object, replacer object.Value, indent, curIndent string, seen map[*object.Object]bool) (bool, error) {
	if object.IsCallable(object.Obj(o)) {
		return false, nil
	}
	if p, ok := o.WrappedPrimitive(); ok {
		return stringifyValue(h, b, p, replacer, indent, curIndent, seen)
	}
	if seen[o] {
		return false, fmt.Errorf("Converting circular structure to JSON")
	}
	seen[o] = true
	defer delete(seen, o)

	nextIndent := curIndent + indent
	nl, sp := "", ""
	if indent != "" {
		nl = "\n"
		sp = " "
	}

	if o.Kind == object.ArrayKind {
		n := o.Length()
		if n == 0 {
			b.WriteString("[]")
			return true, nil
		}
		b.WriteString("[")
		for i := 0; i < n; i++ {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(nl + nextIndent)
			elem, _ := o.GetIndex(i)
			ok, err := stringifyValue(h, b, elem, replacer, indent, nextIndent, seen)
			if err != nil {
				return false, err
			}
			if !ok {
				b.WriteString("null")
			}
		}
		b.WriteString(nl + curIndent + "]")
		return true, nil
	}

	keys := o.OwnEnumerableOrder()
	wrote := false
	var body strings.Builder
	for _, k := range keys {
		val, _ := o.Get(k)
		var vb strings.Builder
		ok, err := stringifyValue(h, &vb, val, replacer, indent, nextIndent, seen)
		if err != nil {
			return false, err
		}
		if !ok {
			continue
		}
		if wrote {
			body.WriteString(",")
		}
		body.WriteString(nl + nextIndent)
		writeJSONString(&body, k)
		body.WriteString(":" + sp)
		body.WriteString(vb.String())
		wrote = true
	}
	if !wrote {
		b.WriteString("{}")
		return true, nil
	}
	b.WriteString("{")
	b.WriteString(body.String())
	b.WriteString(nl + curIndent + "}")
	return true, nil
}

func writeJSONString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if r < 0x20 {
				fmt.Fprintf(b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
}
