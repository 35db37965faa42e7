package object

import "testing"

func TestPropertyGetPutPrototypeChain(t *testing.T) {
	proto := New(nil)
	proto.Define("greeting", Str("hi"), 0)
	child := New(proto)

	v, ok := child.Get("greeting")
	if !ok || v.String() != "hi" {
		t.Fatalf("expected inherited greeting, got %v ok=%v", v, ok)
	}

	child.Put("greeting", Str("yo"))
	v, _ = child.Get("greeting")
	if v.String() != "yo" {
		t.Fatalf("expected own override, got %v", v)
	}
	pv, _ := proto.Get("greeting")
	if pv.String() != "hi" {
		t.Fatalf("expected prototype unchanged, got %v", pv)
	}
}

func TestReadonlyRejectsPut(t *testing.T) {
	o := New(nil)
	o.Define("x", Num(1), READONLY)
	o.Put("x", Num(2))
	v, _ := o.GetOwn("x")
	if v.Number() != 1 {
		t.Fatalf("expected readonly property unchanged, got %v", v.Number())
	}
}

func TestDontDeleteRejectsDelete(t *testing.T) {
	o := New(nil)
	o.Define("x", Num(1), DONTDELETE)
	if o.Delete("x") {
		t.Fatal("expected delete to report failure")
	}
	if !o.HasOwn("x") {
		t.Fatal("expected property to remain")
	}
}

func TestDontEnumHidesFromEnumeration(t *testing.T) {
	o := New(nil)
	o.Define("a", Num(1), 0)
	o.Define("b", Num(2), DONTENUM)
	var seen []string
	o.Enumerate(func(name string, v Value) bool {
		seen = append(seen, name)
		return true
	})
	if len(seen) != 1 || seen[0] != "a" {
		t.Fatalf("expected only 'a' enumerated, got %v", seen)
	}
	if !o.HasOwn("b") {
		t.Fatal("expected 'b' still present via lookup")
	}
}

func TestCyclicPrototypeRejected(t *testing.T) {
	a := New(nil)
	b := New(a)
	if err := a.SetPrototype(b); err == nil {
		t.Fatal("expected cyclic prototype assignment to fail")
	}
}

func TestEnumerationInsertionOrder(t *testing.T) {
	o := New(nil)
	o.Define("z", Num(1), 0)
	o.Define("a", Num(2), 0)
	o.Define("m", Num(3), 0)
	var order []string
	o.Enumerate(func(name string, v Value) bool {
		order = append(order, name)
		return true
	})
	want := []string{"z", "a", "m"}
	for i, n := range want {
		if order[i] != n {
			t.Fatalf("expected insertion order %v, got %v", want, order)
		}
	}
}
