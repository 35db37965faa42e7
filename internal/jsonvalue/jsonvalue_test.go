package jsonvalue_test

import (
	"testing"

	"github.com/ppyne/protoscript/internal/builtins"
	"github.com/ppyne/protoscript/internal/interp"
	"github.com/ppyne/protoscript/internal/jsonvalue"
	"github.com/ppyne/protoscript/internal/object"
)

func newHost(t *testing.T) *interp.Interp {
	t.Helper()
	vm := interp.New()
	builtins.Register(vm)
	return vm
}

func TestParseBuildsNestedObjectsAndArrays(t *testing.T) {
	vm := newHost(t)
	v, err := jsonvalue.Parse(vm, `{"a": 1, "b": [true, false, null, "s"]}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.IsObject() {
		t.Fatalf("want object, got %v", v.DebugString())
	}
	a, ok := v.Object().Get("a")
	if !ok || a.Number() != 1 {
		t.Fatalf("want a=1, got %v", a.DebugString())
	}
	b, ok := v.Object().Get("b")
	if !ok || !b.IsObject() {
		t.Fatalf("want array property b, got %v", b.DebugString())
	}
	arr := b.Object()
	if arr.Length() != 4 {
		t.Fatalf("want length 4, got %d", arr.Length())
	}
	e0, _ := arr.GetIndex(0)
	if e0.Kind() != object.BooleanKind || !e0.Bool() {
		t.Fatalf("want true at index 0, got %v", e0.DebugString())
	}
	e2, _ := arr.GetIndex(2)
	if e2.Kind() != object.NullKind {
		t.Fatalf("want null at index 2, got %v", e2.DebugString())
	}
	e3, _ := arr.GetIndex(3)
	if e3.Kind() != object.StringKind || e3.String() != "s" {
		t.Fatalf("want \"s\" at index 3, got %v", e3.DebugString())
	}
}

func TestParseRejectsTrailingGarbage(t *testing.T) {
	vm := newHost(t)
	if _, err := jsonvalue.Parse(vm, `{"a":1} garbage`); err == nil {
		t.Fatalf("expected a trailing-character error")
	}
}

func TestParseRejectsUnterminatedString(t *testing.T) {
	vm := newHost(t)
	if _, err := jsonvalue.Parse(vm, `"unterminated`); err == nil {
		t.Fatalf("expected an unterminated-string error")
	}
}

func TestParseHandlesEscapesAndUnicode(t *testing.T) {
	vm := newHost(t)
	v, err := jsonvalue.Parse(vm, `"line\nbreak\u0041"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "line\nbreakA"; v.String() != want {
		t.Fatalf("want %q, got %q", want, v.String())
	}
}

func TestStringifyRoundTripsThroughParse(t *testing.T) {
	vm := newHost(t)
	original, err := jsonvalue.Parse(vm, `{"x":1,"y":[1,2,3],"z":"hi"}`)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	s, ok, err := jsonvalue.Stringify(vm, original, object.Undefined, "")
	if err != nil {
		t.Fatalf("unexpected stringify error: %v", err)
	}
	if !ok {
		t.Fatalf("expected stringify to produce a value")
	}
	reparsed, err := jsonvalue.Parse(vm, s)
	if err != nil {
		t.Fatalf("unexpected reparse error: %v, source=%s", err, s)
	}
	y, _ := reparsed.Object().Get("y")
	if y.Object().Length() != 3 {
		t.Fatalf("want round-tripped array length 3, got %d", y.Object().Length())
	}
}

func TestStringifyOmitsUndefinedValues(t *testing.T) {
	vm := newHost(t)
	s, ok, err := jsonvalue.Stringify(vm, object.Undefined, object.Undefined, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("want no JSON representation for undefined, got %q", s)
	}
}

func TestStringifyAppliesIndent(t *testing.T) {
	vm := newHost(t)
	obj := object.NewArray(vm.ArrayProto())
	vm.Track(obj, 0)
	obj.SetIndex(0, object.Num(1))
	obj.SetIndex(1, object.Num(2))
	s, ok, err := jsonvalue.Stringify(vm, object.Obj(obj), object.Undefined, "  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected a JSON representation")
	}
	want := "[\n  1,\n  2\n]"
	if s != want {
		t.Fatalf("want %q, got %q", want, s)
	}
}
