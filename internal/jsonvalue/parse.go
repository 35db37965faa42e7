// Package jsonvalue implements JSON.parse and JSON.stringify directly
// over internal/object's Value/Object, without an intermediate tree type:
// parsing builds script objects/arrays straight from the input text, and
// stringify walks a Value via the call protocol (so a toJSON method or a
// wrapper's valueOf is honored the same way a real evaluation would).
package jsonvalue

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/ppyne/protoscript/internal/object"
)

// Host is the subset of interp.Interp that jsonvalue needs: a prototype
// set to allocate plain objects/arrays against, and the Caller protocol
// stringify needs to invoke toJSON/toString/valueOf.
type Host interface {
	object.Caller
	ObjectProto() *object.Object
	ArrayProto() *object.Object
	Track(o *object.Object, size int64)
}

type parser struct {
	src []rune
	pos int
	h   Host
}

// Parse parses s as a single JSON text (RFC 8259) and returns the
// resulting script value: object/array literals become freshly allocated
// Object/Array-kind objects (tracked on the host's heap), primitives map
// onto the corresponding Value kind.
func Parse(h Host, s string) (object.Value, error) {
	p := &parser{src: []rune(s), h: h}
	p.skipWS()
	v, err := p.parseValue()
	if err != nil {
		return object.Undefined, err
	}
	p.skipWS()
	if p.pos != len(p.src) {
		return object.Undefined, fmt.Errorf("unexpected trailing character at position %d", p.pos)
	}
	return v, nil
}

func (p *parser) peek() rune {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) skipWS() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) parseValue() (object.Value, error) {
	if p.pos >= len(p.src) {
		return object.Undefined, fmt.Errorf("unexpected end of JSON input")
	}
	switch c := p.peek(); {
	case c == '{':
		return p.parseObject()
	case c == '[':
		return p.parseArray()
	case c == '"':
		s, err := p.parseString()
		if err != nil {
			return object.Undefined, err
		}
		return object.Str(s), nil
	case c == 't':
		return p.parseLiteral("true", object.True)
	case c == 'f':
		return p.parseLiteral("false", object.False)
	case c == 'n':
		return p.parseLiteral("null", object.Null)
	case c == '-' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	default:
		return object.Undefined, fmt.Errorf("unexpected character %q at position %d", c, p.pos)
	}
}

func (p *parser) parseLiteral(word string, v object.Value) (object.Value, error) {
	w := []rune(word)
	if p.pos+len(w) > len(p.src) || string(p.src[p.pos:p.pos+len(w)]) != word {
		return object.Undefined, fmt.Errorf("invalid literal at position %d", p.pos)
	}
	p.pos += len(w)
	return v, nil
}

func (p *parser) parseNumber() (object.Value, error) {
	start := p.pos
	if p.peek() == '-' {
		p.pos++
	}
	if p.peek() == '0' {
		p.pos++
	} else if p.peek() >= '1' && p.peek() <= '9' {
		for p.peek() >= '0' && p.peek() <= '9' {
			p.pos++
		}
	} else {
		return object.Undefined, fmt.Errorf("invalid number at position %d", p.pos)
	}
	if p.peek() == '.' {
		p.pos++
		if !(p.peek() >= '0' && p.peek() <= '9') {
			return object.Undefined, fmt.Errorf("invalid number at position %d", p.pos)
		}
		for p.peek() >= '0' && p.peek() <= '9' {
			p.pos++
		}
	}
	if p.peek() == 'e' || p.peek() == 'E' {
		p.pos++
		if p.peek() == '+' || p.peek() == '-' {
			p.pos++
		}
		if !(p.peek() >= '0' && p.peek() <= '9') {
			return object.Undefined, fmt.Errorf("invalid number at position %d", p.pos)
		}
		for p.peek() >= '0' && p.peek() <= '9' {
			p.pos++
		}
	}
	text := string(p.src[start:p.pos])
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return object.Undefined, fmt.Errorf("invalid number %q at position %d", text, start)
	}
	return object.Num(n), nil
}

func (p *parser) parseString() (string, error) {
	if p.peek() != '"' {
		return "", fmt.Errorf("expected string at position %d", p.pos)
	}
	p.pos++
	var b strings.Builder
	for {
		if p.pos >= len(p.src) {
			return "", fmt.Errorf("unterminated string")
		}
		c := p.src[p.pos]
		if c == '"' {
			p.pos++
			return b.String(), nil
		}
		if c < 0x20 {
			return "", fmt.Errorf("control character in string at position %d", p.pos)
		}
		if c != '\\' {
			b.WriteRune(c)
			p.pos++
			continue
		}
		p.pos++
		if p.pos >= len(p.src) {
			return "", fmt.Errorf("unterminated escape sequence")
		}
		esc := p.src[p.pos]
		switch esc {
		case '"':
			b.WriteByte('"')
			p.pos++
		case '\\':
			b.WriteByte('\\')
			p.pos++
		case '/':
			b.WriteByte('/')
			p.pos++
		case 'b':
			b.WriteByte('\b')
			p.pos++
		case 'f':
			b.WriteByte('\f')
			p.pos++
		case 'n':
			b.WriteByte('\n')
			p.pos++
		case 'r':
			b.WriteByte('\r')
			p.pos++
		case 't':
			b.WriteByte('\t')
			p.pos++
		case 'u':
			p.pos++
			r1, err := p.parseHex4()
			if err != nil {
				return "", err
			}
			if utf16.IsSurrogate(rune(r1)) && p.pos+1 < len(p.src) && p.src[p.pos] == '\\' && p.src[p.pos+1] == 'u' {
				save := p.pos
				p.pos += 2
				r2, err := p.parseHex4()
				if err == nil {
					combined := utf16.DecodeRune(rune(r1), rune(r2))
					if combined != utf8.RuneError {
						b.WriteRune(combined)
						continue
					}
				}
				p.pos = save
			}
			b.WriteRune(rune(r1))
		default:
			return "", fmt.Errorf("invalid escape \\%c at position %d", esc, p.pos)
		}
	}
}

func (p *parser) parseHex4() (uint16, error) {
	if p.pos+4 > len(p.src) {
		return 0, fmt.Errorf("invalid unicode escape")
	}
	n, err := strconv.ParseUint(string(p.src[p.pos:p.pos+4]), 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid unicode escape")
	}
	p.pos += 4
	return uint16(n), nil
}

func (p *parser) expect(c rune) error {
	if p.peek() != c {
		return fmt.Errorf("expected %q at position %d", c, p.pos)
	}
	p.pos++
	return nil
}

func (p *parser) parseArray() (object.Value, error) {
	if err := p.expect('['); err != nil {
		return object.Undefined, err
	}
	arr := object.NewArray(p.h.ArrayProto())
	p.h.Track(arr, 0)
	p.skipWS()
	if p.peek() == ']' {
		p.pos++
		return object.Obj(arr), nil
	}
	for {
		p.skipWS()
		v, err := p.parseValue()
		if err != nil {
			return object.Undefined, err
		}
		arr.Push(v)
		p.skipWS()
		switch p.peek() {
		case ',':
			p.pos++
		case ']':
			p.pos++
			return object.Obj(arr), nil
		default:
			return object.Undefined, fmt.Errorf("expected ',' or ']' at position %d", p.pos)
		}
	}
}

func (p *parser) parseObject() (object.Value, error) {
	if err := p.expect('{'); err != nil {
		return object.Undefined, err
	}
	obj := object.New(p.h.ObjectProto())
	p.h.Track(obj, 0)
	p.skipWS()
	if p.peek() == '}' {
		p.pos++
		return object.Obj(obj), nil
	}
	for {
		p.skipWS()
		key, err := p.parseString()
		if err != nil {
			return object.Undefined, err
		}
		p.skipWS()
		if err := p.expect(':'); err != nil {
			return object.Undefined, err
		}
		p.skipWS()
		v, err := p.parseValue()
		if err != nil {
			return object.Undefined, err
		}
		obj.Define(key, v, 0)
		p.skipWS()
		switch p.peek() {
		case ',':
			p.pos++
		case '}':
			p.pos++
			return object.Obj(obj), nil
		default:
			return object.Undefined, fmt.Errorf("expected ',' or '}' at position %d", p.pos)
		}
	}
}
