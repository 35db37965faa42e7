package object

import "testing"

func TestArraySetIndexGrowsAndSyncsLength(t *testing.T) {
	a := NewArray(nil)
	a.SetIndex(3, Str("x"))
	if a.Length() != 4 {
		t.Fatalf("expected length 4, got %d", a.Length())
	}
	lengthProp, _ := a.GetOwn("length")
	if lengthProp.Number() != 4 {
		t.Fatalf("expected length property 4, got %v", lengthProp.Number())
	}
	v, ok := a.GetIndex(3)
	if !ok || v.String() != "x" {
		t.Fatalf("expected x at index 3, got %v ok=%v", v, ok)
	}
	_, ok = a.GetIndex(1)
	if ok {
		t.Fatal("expected hole at index 1 to be absent")
	}
}

func TestArraySetLengthTruncates(t *testing.T) {
	a := NewArray(nil)
	a.SetIndex(0, Num(1))
	a.SetIndex(1, Num(2))
	a.SetIndex(2, Num(3))
	if err := a.SetLength(1); err != nil {
		t.Fatal(err)
	}
	if _, ok := a.GetIndex(1); ok {
		t.Fatal("expected index 1 truncated")
	}
	if a.Length() != 1 {
		t.Fatalf("expected length 1, got %d", a.Length())
	}
}

func TestArrayEnumerationOrdersIndicesFirst(t *testing.T) {
	a := NewArray(nil)
	a.Define("name", Str("arr"), 0)
	a.SetIndex(1, Num(1))
	a.SetIndex(0, Num(0))
	var order []string
	a.Enumerate(func(name string, v Value) bool {
		order = append(order, name)
		return true
	})
	want := []string{"0", "1", "name"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

func TestIsArrayIndexName(t *testing.T) {
	cases := map[string]bool{
		"0": true, "1": true, "42": true,
		"01": false, "-1": false, "abc": false, "": false,
	}
	for s, want := range cases {
		if got := IsArrayIndexName(s); got != want {
			t.Errorf("IsArrayIndexName(%q) = %v, want %v", s, got, want)
		}
	}
}
