package interp_test

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
// standard library registered, failing the test on any parse error.
func run(t *testing.T, src string) (*interp.Interp, interp.Completion) {
	t.Helper()
	p := parser.New(lexer.New("test.js", src))
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("parser errors: %v", errs)
	}
	vm := interp.New()
	builtins.Register(vm)
	c := vm.Run(prog)
	return vm, c
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
	if v.Kind() != object.NumberKind {
		t.Fatalf("want number %v, got %v", want, v.DebugString())
	}
	if math.IsNaN(want) {
		if !math.IsNaN(v.Number()) {
			t.Fatalf("want NaN, got %v", v.DebugString())
		}
		return
	}
	if v.Number() != want {
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

func TestVarHoisting(t *testing.T) {
	vm, c := run(t, `
		x = y;
		var y = 5;
	`)
	if c.DidThrow {
		t.Fatalf("unexpected throw: %v", c.ThrowValue.DebugString())
	}
	// y is hoisted as undefined before the assignment runs; only the
	// later `var y = 5` initializer gives it a value.
	x := global(t, vm, "x")
	if !x.IsUndefined() {
		t.Fatalf("want undefined (y hoisted but not yet initialized), got %v", x.DebugString())
	}
	wantNumber(t, global(t, vm, "y"), 5)
}

func TestFunctionDeclHoistedBeforeUse(t *testing.T) {
	vm, c := run(t, `
		var r = add(2, 3);
		function add(a, b) { return a + b; }
	`)
	if c.DidThrow {
		t.Fatalf("unexpected throw: %v", c.ThrowValue.DebugString())
	}
	wantNumber(t, global(t, vm, "r"), 5)
}

func TestClosureCapturesOuterBinding(t *testing.T) {
	vm, c := run(t, `
		function counter() {
			var n = 0;
			return function() { n = n + 1; return n; };
		}
		var next = counter();
		var a = next();
		var b = next();
		var c2 = next();
	`)
	if c.DidThrow {
		t.Fatalf("unexpected throw: %v", c.ThrowValue.DebugString())
	}
	wantNumber(t, global(t, vm, "a"), 1)
	wantNumber(t, global(t, vm, "b"), 2)
	wantNumber(t, global(t, vm, "c2"), 3)
}

func TestForInArrayOrdersNumericIndicesFirst(t *testing.T) {
	vm, c := run(t, `
		var arr = [10, 20, 30];
		arr.label = "extra";
		var order = "";
		for (var k in arr) { order = order + k + ","; }
	`)
	if c.DidThrow {
		t.Fatalf("unexpected throw: %v", c.ThrowValue.DebugString())
	}
	wantString(t, global(t, vm, "order"), "0,1,2,label,")
}

func TestTryFinallyReplacesReturnValue(t *testing.T) {
	vm, c := run(t, `
		function f() {
			try {
				return 1;
			} finally {
				return 2;
			}
		}
		var r = f();
	`)
	if c.DidThrow {
		t.Fatalf("unexpected throw: %v", c.ThrowValue.DebugString())
	}
	wantNumber(t, global(t, vm, "r"), 2)
}

func TestTryCatchClearsExceptionAfterCatch(t *testing.T) {
	vm, c := run(t, `
		var caught = false;
		var msg = "";
		try {
			throw new TypeError("boom");
		} catch (e) {
			caught = true;
			msg = e.message;
		}
		var after = 1 + 1;
	`)
	if c.DidThrow {
		t.Fatalf("unexpected throw: %v", c.ThrowValue.DebugString())
	}
	wantBool(t, global(t, vm, "caught"), true)
	wantString(t, global(t, vm, "msg"), "boom")
	wantNumber(t, global(t, vm, "after"), 2)
}

func TestAbstractEqualityCoercionChain(t *testing.T) {
	vm, c := run(t, `
		var a = (1 == "1");
		var b = (null == undefined);
		var c1 = (false == "0");
		var d = (0 == "");
	`)
	if c.DidThrow {
		t.Fatalf("unexpected throw: %v", c.ThrowValue.DebugString())
	}
	wantBool(t, global(t, vm, "a"), true)
	wantBool(t, global(t, vm, "b"), true)
	wantBool(t, global(t, vm, "c1"), true)
	wantBool(t, global(t, vm, "d"), true)
}

func TestStrictEqualityDistinguishesTypes(t *testing.T) {
	vm, c := run(t, `
		var a = (1 === "1");
		var b = (NaN === NaN);
	`)
	if c.DidThrow {
		t.Fatalf("unexpected throw: %v", c.ThrowValue.DebugString())
	}
	wantBool(t, global(t, vm, "a"), false)
	wantBool(t, global(t, vm, "b"), false)
}

func TestRegexCaptureGroups(t *testing.T) {
	vm, c := run(t, `
		var re = /(\d+)-(\d+)/;
		var m = re.exec("id 42-7 end");
		var whole = m[0];
		var first = m[1];
		var second = m[2];
		var idx = m.index;
	`)
	if c.DidThrow {
		t.Fatalf("unexpected throw: %v", c.ThrowValue.DebugString())
	}
	wantString(t, global(t, vm, "whole"), "42-7")
	wantString(t, global(t, vm, "first"), "42")
	wantString(t, global(t, vm, "second"), "7")
	wantNumber(t, global(t, vm, "idx"), 3)
}

func TestThrowUnwindsToNearestCatch(t *testing.T) {
	vm, c := run(t, `
		function inner() { throw new RangeError("deep"); }
		function outer() { inner(); }
		var name = "";
		try {
			outer();
		} catch (e) {
			name = e.name;
		}
	`)
	if c.DidThrow {
		t.Fatalf("unexpected throw: %v", c.ThrowValue.DebugString())
	}
	wantString(t, global(t, vm, "name"), "RangeError")
}

func TestUncaughtThrowPropagatesAsCompletion(t *testing.T) {
	_, c := run(t, `throw "boom";`)
	if !c.DidThrow {
		t.Fatalf("expected an uncaught throw completion")
	}
	wantString(t, c.ThrowValue, "boom")
}

func TestWithStatementAugmentsLookup(t *testing.T) {
	vm, c := run(t, `
		var obj = { a: 1, b: 2 };
		var sum = 0;
		with (obj) {
			sum = a + b;
		}
	`)
	if c.DidThrow {
		t.Fatalf("unexpected throw: %v", c.ThrowValue.DebugString())
	}
	wantNumber(t, global(t, vm, "sum"), 3)
}

func TestSwitchFallthrough(t *testing.T) {
	vm, c := run(t, `
		var out = "";
		function mark(n) {
			switch (n) {
			case 1:
				out = out + "1";
			case 2:
				out = out + "2";
				break;
			default:
				out = out + "d";
			}
		}
		mark(1);
	`)
	if c.DidThrow {
		t.Fatalf("unexpected throw: %v", c.ThrowValue.DebugString())
	}
	wantString(t, global(t, vm, "out"), "12")
}

func TestArgumentsAliasingReflectsParamWrites(t *testing.T) {
	vm, c := run(t, `
		function f(a) {
			a = 99;
			return arguments[0];
		}
		var r = f(1);
	`)
	if c.DidThrow {
		t.Fatalf("unexpected throw: %v", c.ThrowValue.DebugString())
	}
	wantNumber(t, global(t, vm, "r"), 99)
}

func TestTypeofUndeclaredIdentifierDoesNotThrow(t *testing.T) {
	vm, c := run(t, `
		var t = typeof neverDeclared;
	`)
	if c.DidThrow {
		t.Fatalf("unexpected throw: %v", c.ThrowValue.DebugString())
	}
	wantString(t, global(t, vm, "t"), "undefined")
}

func TestProgramCompletionValueIsLastExpression(t *testing.T) {
	_, c := run(t, `
		x;
		var x = 1;
		x;
	`)
	if c.DidThrow {
		t.Fatalf("unexpected throw: %v", c.ThrowValue.DebugString())
	}
	wantNumber(t, c.Value, 1)
}

func TestDoWhileRunsBodyAtLeastOnce(t *testing.T) {
	vm, c := run(t, `
		var n = 0;
		var count = 0;
		do {
			count = count + 1;
		} while (n > 0);
	`)
	if c.DidThrow {
		t.Fatalf("unexpected throw: %v", c.ThrowValue.DebugString())
	}
	wantNumber(t, global(t, vm, "count"), 1)
}

func TestForLoopContinueStillRunsPost(t *testing.T) {
	vm, c := run(t, `
		var sum = 0;
		for (var i = 0; i < 5; i = i + 1) {
			if (i === 2) { continue; }
			sum = sum + i;
		}
	`)
	if c.DidThrow {
		t.Fatalf("unexpected throw: %v", c.ThrowValue.DebugString())
	}
	wantNumber(t, global(t, vm, "sum"), 8)
}

func TestLabeledBreakExitsOuterLoop(t *testing.T) {
	vm, c := run(t, `
		var seen = "";
		outer:
		for (var i = 0; i < 3; i = i + 1) {
			for (var j = 0; j < 3; j = j + 1) {
				if (j === 1) { continue outer; }
				if (i === 2) { break outer; }
				seen = seen + i + j;
			}
		}
	`)
	if c.DidThrow {
		t.Fatalf("unexpected throw: %v", c.ThrowValue.DebugString())
	}
	wantString(t, global(t, vm, "seen"), "0010")
}

func TestNewConstructsInstanceWithPrototypeChain(t *testing.T) {
	vm, c := run(t, `
		function Point(x, y) {
			this.x = x;
			this.y = y;
		}
		Point.prototype.sum = function() { return this.x + this.y; };
		var p = new Point(3, 4);
		var total = p.sum();
		var isPoint = p instanceof Point;
	`)
	if c.DidThrow {
		t.Fatalf("unexpected throw: %v", c.ThrowValue.DebugString())
	}
	wantNumber(t, global(t, vm, "total"), 7)
	wantBool(t, global(t, vm, "isPoint"), true)
}

func TestInstanceofDistinguishesConstructors(t *testing.T) {
	vm, c := run(t, `
		function A() {}
		function B() {}
		var a = new A();
		var isA = a instanceof A;
		var isB = a instanceof B;
	`)
	if c.DidThrow {
		t.Fatalf("unexpected throw: %v", c.ThrowValue.DebugString())
	}
	wantBool(t, global(t, vm, "isA"), true)
	wantBool(t, global(t, vm, "isB"), false)
}

func TestNestedTryCatchFinallyOrdering(t *testing.T) {
	vm, c := run(t, `
		var log = "";
		function f() {
			try {
				try {
					throw "inner";
				} finally {
					log = log + "F1";
				}
			} catch (e) {
				log = log + "C" + e;
			} finally {
				log = log + "F2";
			}
		}
		f();
	`)
	if c.DidThrow {
		t.Fatalf("unexpected throw: %v", c.ThrowValue.DebugString())
	}
	wantString(t, global(t, vm, "log"), "F1CinnerF2")
}

func TestBufferClampsAndRangeChecks(t *testing.T) {
	vm, c := run(t, `
		var buf = new Buffer(4);
		buf[0] = 300;
		buf[1] = -10;
		var ok = false;
		try {
			var x = buf[10];
		} catch (e) {
			ok = e.name === "RangeError";
		}
	`)
	if c.DidThrow {
		t.Fatalf("unexpected throw: %v", c.ThrowValue.DebugString())
	}
	buf := global(t, vm, "buf")
	if !buf.IsObject() {
		t.Fatalf("expected buffer object")
	}
	v0, _ := buf.Object().BufferSlot().Get(0)
	wantNumber(t, object.Num(v0), 255)
	v1, _ := buf.Object().BufferSlot().Get(1)
	wantNumber(t, object.Num(v1), 0)
	wantBool(t, global(t, vm, "ok"), true)
}

func TestBlockDoesNotShadowHoistedVar(t *testing.T) {
	vm, c := run(t, `
		function f() {
			if (true) {
				var x = 1;
			}
			return x;
		}
		var r = f();
	`)
	if c.DidThrow {
		t.Fatalf("unexpected throw: %v", c.ThrowValue.DebugString())
	}
	wantNumber(t, global(t, vm, "r"), 1)
}

func TestBlockInLoopWritesFunctionScopeVar(t *testing.T) {
	vm, c := run(t, `
		function f() {
			var last;
			for (var i = 0; i < 3; i = i + 1) {
				var tmp = i * 2;
				last = tmp;
			}
			return last;
		}
		var r = f();
	`)
	if c.DidThrow {
		t.Fatalf("unexpected throw: %v", c.ThrowValue.DebugString())
	}
	wantNumber(t, global(t, vm, "r"), 4)
}

func TestLeadingZeroIndexIsNamedPropertyNotAlias(t *testing.T) {
	vm, c := run(t, `
		var a = [9];
		a["01"] = 5;
		var viaIndex = a[1];
		var viaName = a["01"];
	`)
	if c.DidThrow {
		t.Fatalf("unexpected throw: %v", c.ThrowValue.DebugString())
	}
	if v := global(t, vm, "viaIndex"); !v.IsUndefined() {
		t.Fatalf("want a[1] undefined ('01' must not alias index 1), got %v", v.DebugString())
	}
	wantNumber(t, global(t, vm, "viaName"), 5)
}

func TestOversizedNumericKeyFallsBackToPlainProperty(t *testing.T) {
	vm, c := run(t, `
		var a = [];
		a["99999999999999"] = 1;
		var len = a.length;
		var v = a["99999999999999"];
	`)
	if c.DidThrow {
		t.Fatalf("unexpected throw: %v", c.ThrowValue.DebugString())
	}
	wantNumber(t, global(t, vm, "len"), 0)
	wantNumber(t, global(t, vm, "v"), 1)
}

func TestEvalRunsInCallerScopeAndReturnsValue(t *testing.T) {
	vm, c := run(t, `
		function f() {
			var x = 41;
			var r = eval("x + 1");
			eval("var y = 99;");
			return [r, y];
		}
		var out = f();
	`)
	if c.DidThrow {
		t.Fatalf("unexpected throw: %v", c.ThrowValue.DebugString())
	}
	out := global(t, vm, "out")
	if !out.IsObject() {
		t.Fatalf("expected array result")
	}
	v0, _ := out.Object().GetIndex(0)
	wantNumber(t, v0, 42)
	v1, _ := out.Object().GetIndex(1)
	wantNumber(t, v1, 99)
}

func TestEvalSyntaxErrorIsCatchable(t *testing.T) {
	vm, c := run(t, `
		var ok = false;
		try {
			eval("1 +");
		} catch (e) {
			ok = e.name === "SyntaxError";
		}
	`)
	if c.DidThrow {
		t.Fatalf("unexpected throw: %v", c.ThrowValue.DebugString())
	}
	wantBool(t, global(t, vm, "ok"), true)
}

func TestEvalNonStringArgumentReturnedUnchanged(t *testing.T) {
	vm, c := run(t, `
		var r = eval(42);
	`)
	if c.DidThrow {
		t.Fatalf("unexpected throw: %v", c.ThrowValue.DebugString())
	}
	wantNumber(t, global(t, vm, "r"), 42)
}

func TestEvalThrownValuePropagatesWithIdentity(t *testing.T) {
	vm, c := run(t, `
		var caught;
		try {
			eval("throw 42;");
		} catch (e) {
			caught = e;
		}
	`)
	if c.DidThrow {
		t.Fatalf("unexpected throw: %v", c.ThrowValue.DebugString())
	}
	wantNumber(t, global(t, vm, "caught"), 42)
}

func TestForOfIteratesStringCodePoints(t *testing.T) {
	vm, c := run(t, `
		var out = "";
		for (var ch of "abc") { out = out + ch + "-"; }
	`)
	if c.DidThrow {
		t.Fatalf("unexpected throw: %v", c.ThrowValue.DebugString())
	}
	wantString(t, global(t, vm, "out"), "a-b-c-")
}

func TestForOfIteratesGeneralObjectValues(t *testing.T) {
	vm, c := run(t, `
		var o = { a: 1, b: 2, c: 3 };
		var sum = 0;
		for (var v of o) { sum = sum + v; }
	`)
	if c.DidThrow {
		t.Fatalf("unexpected throw: %v", c.ThrowValue.DebugString())
	}
	wantNumber(t, global(t, vm, "sum"), 6)
}

func TestForOfNonIterableThrowsTypeError(t *testing.T) {
	vm, c := run(t, `
		var ok = false;
		try {
			for (var v of 42) {}
		} catch (e) {
			ok = e.name === "TypeError";
		}
	`)
	if c.DidThrow {
		t.Fatalf("unexpected throw: %v", c.ThrowValue.DebugString())
	}
	wantBool(t, global(t, vm, "ok"), true)
}
