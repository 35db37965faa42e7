package builtins_test

import (
	"math"
	"testing"

	"github.com/ppyne/protoscript/internal/builtins"
	"github.com/ppyne/protoscript/internal/interp"
	"github.com/ppyne/protoscript/internal/lexer"
	"github.com/ppyne/protoscript/internal/object"
	"github.com/ppyne/protoscript/internal/parser"
)

// run parses and executes src against a freshly built VM with the full
// standard library registered, failing the test on a parse error or an
// uncaught exception.
func run(t *testing.T, src string) *interp.Interp {
	t.Helper()
	p := parser.New(lexer.New("test.js", src))
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("parser errors: %v", errs)
	}
	vm := interp.New()
	builtins.Register(vm)
	c := vm.Run(prog)
	if c.DidThrow {
		t.Fatalf("uncaught exception: %v", c.ThrowValue.DebugString())
	}
	return vm
}

func global(t *testing.T, vm *interp.Interp, name string) object.Value {
	t.Helper()
	v, ok := vm.Global.Get(name)
	if !ok {
		t.Fatalf("no global binding %q", name)
	}
	return v
}

func wantNumber(t *testing.T, v object.Value, want float64) {
	t.Helper()
	if v.Kind() != object.NumberKind || v.Number() != want {
		t.Fatalf("want number %v, got %v", want, v.DebugString())
	}
}

func wantString(t *testing.T, v object.Value, want string) {
	t.Helper()
	if v.Kind() != object.StringKind || v.String() != want {
		t.Fatalf("want string %q, got %v", want, v.DebugString())
	}
}

func wantBool(t *testing.T, v object.Value, want bool) {
	t.Helper()
	if v.Kind() != object.BooleanKind || v.Bool() != want {
		t.Fatalf("want bool %v, got %v", want, v.DebugString())
	}
}

func TestArrayPushPopSpliceJoin(t *testing.T) {
	vm := run(t, `
		var a = [1, 2, 3];
		a.push(4);
		var popped = a.pop();
		a.splice(1, 1, 9, 9);
		var joined = a.join("-");
	`)
	wantNumber(t, global(t, vm, "popped"), 4)
	wantString(t, global(t, vm, "joined"), "1-9-9-3")
}

func TestArraySortDefaultIsLexicographic(t *testing.T) {
	vm := run(t, `
		var a = [10, 2, 33, 4];
		a.sort();
		var joined = a.join(",");
	`)
	wantString(t, global(t, vm, "joined"), "10,2,33,4")
}

func TestArrayMapFilterReduce(t *testing.T) {
	vm := run(t, `
		var sum = [1,2,3,4].map(function(x) { return x * 2; })
			.filter(function(x) { return x > 2; })
			.reduce(function(acc, x) { return acc + x; }, 0);
	`)
	wantNumber(t, global(t, vm, "sum"), 14)
}

func TestStringSplitSliceReplace(t *testing.T) {
	vm := run(t, `
		var parts = "a,b,c".split(",");
		var mid = parts[1];
		var sliced = "hello world".slice(0, 5);
		var replaced = "foo bar foo".replace("foo", "baz");
	`)
	wantString(t, global(t, vm, "mid"), "b")
	wantString(t, global(t, vm, "sliced"), "hello")
	wantString(t, global(t, vm, "replaced"), "baz bar foo")
}

func TestStringIndexOfAndCase(t *testing.T) {
	vm := run(t, `
		var i = "hello world".indexOf("world");
		var upper = "shout".toUpperCase();
	`)
	wantNumber(t, global(t, vm, "i"), 6)
	wantString(t, global(t, vm, "upper"), "SHOUT")
}

func TestObjectKeysAndHasOwnProperty(t *testing.T) {
	vm := run(t, `
		var o = { a: 1, b: 2 };
		var keys = Object.keys(o).join(",");
		var has = o.hasOwnProperty("a");
		var hasNot = o.hasOwnProperty("z");
	`)
	wantString(t, global(t, vm, "keys"), "a,b")
	wantBool(t, global(t, vm, "has"), true)
	wantBool(t, global(t, vm, "hasNot"), false)
}

func TestMathFunctionsOperateOnNumbers(t *testing.T) {
	vm := run(t, `
		var m = Math.max(1, 5, 3);
		var f = Math.floor(4.7);
		var a = Math.abs(-9);
	`)
	wantNumber(t, global(t, vm, "m"), 5)
	wantNumber(t, global(t, vm, "f"), 4)
	wantNumber(t, global(t, vm, "a"), 9)
}

func TestErrorConstructorsSetNameAndMessage(t *testing.T) {
	vm := run(t, `
		var e = new TypeError("bad value");
		var name = e.name;
		var msg = e.message;
		var isInstance = e instanceof Error;
	`)
	wantString(t, global(t, vm, "name"), "TypeError")
	wantString(t, global(t, vm, "msg"), "bad value")
	wantBool(t, global(t, vm, "isInstance"), true)
}

func TestThrownErrorCaughtAndMessageRead(t *testing.T) {
	vm := run(t, `
		var caught;
		try {
			null.foo;
		} catch (e) {
			caught = e.message;
		}
	`)
	caught := global(t, vm, "caught")
	if caught.Kind() != object.StringKind || caught.String() == "" {
		t.Fatalf("want a non-empty caught message, got %v", caught.DebugString())
	}
}

func TestJSONParseAndStringifyRoundTrip(t *testing.T) {
	vm := run(t, `
		var obj = JSON.parse('{"x":1,"y":[1,2,3]}');
		var str = JSON.stringify(obj);
		var reparsed = JSON.parse(str);
		var sum = reparsed.x + reparsed.y[2];
	`)
	wantNumber(t, global(t, vm, "sum"), 4)
}

func TestBufferWriteClampsOutOfByteRangeValue(t *testing.T) {
	vm := run(t, `
		var b = new Buffer(4);
		b[0] = 300;
		var first = b[0];
	`)
	wantNumber(t, global(t, vm, "first"), 255)
}

func TestBufferOutOfRangeIndexThrowsRangeError(t *testing.T) {
	vm := run(t, `
		var caughtName;
		try {
			var b = new Buffer(4);
			b[10];
		} catch (e) {
			caughtName = e.name;
		}
	`)
	wantString(t, global(t, vm, "caughtName"), "RangeError")
}

func TestRegExpTestAndExecCapture(t *testing.T) {
	vm := run(t, `
		var re = /(\d+)-(\d+)/;
		var matched = re.test("room 12-34");
		var m = re.exec("room 12-34");
		var first = m[1];
		var second = m[2];
	`)
	wantBool(t, global(t, vm, "matched"), true)
	wantString(t, global(t, vm, "first"), "12")
	wantString(t, global(t, vm, "second"), "34")
}

func TestNumberToFixedRounds(t *testing.T) {
	vm := run(t, `var s = (3.14159).toFixed(2);`)
	wantString(t, global(t, vm, "s"), "3.14")
}

func TestMathRoundHandlesHalfwayRounding(t *testing.T) {
	vm := run(t, `var r = Math.round(2.5);`)
	wantNumber(t, global(t, vm, "r"), 3)
	if math.Round(2.5) != 3 {
		t.Fatalf("sanity check on Go's math.Round failed")
	}
}
