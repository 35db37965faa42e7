package script_test

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/ppyne/protoscript/pkg/script"
)

func TestEvalReturnsLastExpressionValue(t *testing.T) {
	e := script.New()
	r := e.Eval("test.js", `1 + 2;`)
	if r.Err != nil {
		t.Fatalf("unexpected error: %v", r.Err)
	}
	if r.Value.Kind().String() != "number" || r.Value.Number() != 3 {
		t.Fatalf("want 3, got %v", r.Value.DebugString())
	}
}

func TestEvalWritesToConfiguredOutput(t *testing.T) {
	var buf bytes.Buffer
	e := script.New(script.WithOutput(&buf))
	r := e.Eval("test.js", `println("hi");`)
	if r.Err != nil {
		t.Fatalf("unexpected error: %v", r.Err)
	}
	if got := strings.TrimSpace(buf.String()); got != "hi" {
		t.Fatalf("want %q, got %q", "hi", got)
	}
}

func TestEvalSurfacesCompileError(t *testing.T) {
	e := script.New()
	r := e.Eval("test.js", `var = ;`)
	if r.Err == nil {
		t.Fatalf("expected a compile error")
	}
	if _, ok := r.Err.(*script.CompileError); !ok {
		t.Fatalf("want *CompileError, got %T", r.Err)
	}
}

func TestEvalSurfacesUncaughtException(t *testing.T) {
	e := script.New()
	r := e.Eval("test.js", `throw new TypeError("boom");`)
	if r.Err == nil {
		t.Fatalf("expected an uncaught error")
	}
	uc, ok := r.Err.(*script.UncaughtError)
	if !ok {
		t.Fatalf("want *UncaughtError, got %T", r.Err)
	}
	if !strings.Contains(uc.Error(), "boom") {
		t.Fatalf("want message to mention boom, got %q", uc.Error())
	}
}

// num evaluates a bare number literal to obtain a script.Value, since
// pkg/script has no standalone constructor for primitives (they only
// ever arise from evaluating or calling into script code).
func num(t *testing.T, n float64) script.Value {
	t.Helper()
	e := script.New()
	r := e.Eval("num.js", strconv.FormatFloat(n, 'g', -1, 64)+";")
	if r.Err != nil {
		t.Fatalf("unexpected error building number literal: %v", r.Err)
	}
	return r.Value
}

func TestRegisterFunctionCallableFromScript(t *testing.T) {
	e := script.New()
	e.RegisterFunction("double", 1, func(this script.Value, args []script.Value) (script.Value, error) {
		if len(args) == 0 {
			return num(t, 0), script.NewNativeError(script.TypeError, "double requires an argument")
		}
		return num(t, args[0].Number()*2), nil
	})
	r := e.Eval("test.js", `double(21);`)
	if r.Err != nil {
		t.Fatalf("unexpected error: %v", r.Err)
	}
	if r.Value.Number() != 42 {
		t.Fatalf("want 42, got %v", r.Value.DebugString())
	}
}

func TestSetGlobalSeedsScriptState(t *testing.T) {
	e := script.New()
	e.SetGlobal("seed", num(t, 7))
	r := e.Eval("test.js", `seed + 1;`)
	if r.Err != nil {
		t.Fatalf("unexpected error: %v", r.Err)
	}
	if r.Value.Number() != 8 {
		t.Fatalf("want 8, got %v", r.Value.DebugString())
	}
}

func TestCallInvokesScriptFunction(t *testing.T) {
	e := script.New()
	r := e.Eval("test.js", `function add(a, b) { return a + b; }`)
	if r.Err != nil {
		t.Fatalf("unexpected error: %v", r.Err)
	}
	fn, ok := e.Global("add")
	if !ok {
		t.Fatalf("expected global add")
	}
	v, err := e.Call(fn, script.Value{}, []script.Value{num(t, 3), num(t, 4)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Number() != 7 {
		t.Fatalf("want 7, got %v", v.DebugString())
	}
}
