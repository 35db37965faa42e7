package object

import (
	"math"
	"testing"
)

func TestToBoolean(t *testing.T) {
	falsy := []Value{Undefined, Null, False, Num(0), Num(math.NaN()), Str("")}
	for _, v := range falsy {
		if v.ToBoolean() {
			t.Errorf("expected falsy, got truthy: %v", v.DebugString())
		}
	}
	truthy := []Value{True, Num(1), Num(-1), Str("0"), Str("false")}
	for _, v := range truthy {
		if !v.ToBoolean() {
			t.Errorf("expected truthy, got falsy: %v", v.DebugString())
		}
	}
}

func TestTypeOf(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Undefined, "undefined"},
		{Null, "object"},
		{True, "boolean"},
		{Num(1), "number"},
		{Str("x"), "string"},
	}
	for _, c := range cases {
		if got := c.v.TypeOf(); got != c.want {
			t.Errorf("TypeOf() = %q, want %q", got, c.want)
		}
	}
}

func TestToInt32ToUint32(t *testing.T) {
	if ToInt32(4294967296) != 0 {
		t.Errorf("expected wraparound to 0")
	}
	if ToInt32(2147483648) != -2147483648 {
		t.Errorf("expected sign fold, got %d", ToInt32(2147483648))
	}
	if ToUint32(-1) != 4294967295 {
		t.Errorf("expected uint32 wraparound, got %d", ToUint32(-1))
	}
	if ToInt32(math.NaN()) != 0 || ToInt32(math.Inf(1)) != 0 {
		t.Errorf("expected NaN/Inf to fold to 0")
	}
}

func TestStrictEqualsNaN(t *testing.T) {
	nan := Num(math.NaN())
	if StrictEquals(nan, nan) {
		t.Fatal("NaN must not strict-equal itself")
	}
}

func TestStringToNumber(t *testing.T) {
	cases := map[string]float64{
		"":    0,
		" 42 ": 42,
		"0x1F": 31,
		"abc":  math.NaN(),
	}
	for s, want := range cases {
		got := stringToNumber(s)
		if math.IsNaN(want) {
			if !math.IsNaN(got) {
				t.Errorf("stringToNumber(%q) = %v, want NaN", s, got)
			}
			continue
		}
		if got != want {
			t.Errorf("stringToNumber(%q) = %v, want %v", s, got, want)
		}
	}
}

type stubCaller struct{}

func (stubCaller) Call(fn *Object, this Value, args []Value) (Value, error) {
	return Undefined, nil
}

func TestAbstractEqualsNullUndefined(t *testing.T) {
	ok, err := AbstractEquals(stubCaller{}, Null, Undefined)
	if err != nil || !ok {
		t.Fatalf("expected null == undefined, got %v err=%v", ok, err)
	}
}

func TestAbstractEqualsNumberString(t *testing.T) {
	ok, err := AbstractEquals(stubCaller{}, Num(1), Str("1"))
	if err != nil || !ok {
		t.Fatalf("expected 1 == \"1\", got %v err=%v", ok, err)
	}
}

func TestCompareStrings(t *testing.T) {
	r, err := Compare(stubCaller{}, Str("apple"), Str("banana"))
	if err != nil || r != CompareLess {
		t.Fatalf("expected apple < banana, got %v err=%v", r, err)
	}
}
