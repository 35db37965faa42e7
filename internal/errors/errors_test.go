package errors

import (
	"strings"
	"testing"

	"github.com/ppyne/protoscript/internal/token"
)

func TestCompilerErrorFormat(t *testing.T) {
	src := "var x = ;\n"
	pos := token.Position{File: "t.js", Line: 1, Column: 9}
	err := NewCompilerError(pos, "unexpected token ;", src, "t.js")
	out := err.Format(false)
	if !strings.Contains(out, "t.js:1:9") {
		t.Fatalf("expected position header, got %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("expected caret, got %q", out)
	}
	if !strings.Contains(out, "unexpected token ;") {
		t.Fatalf("expected message, got %q", out)
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		Generic:        "Error",
		TypeError:      "TypeError",
		RangeError:     "RangeError",
		ReferenceError: "ReferenceError",
		SyntaxError:    "SyntaxError",
		EvalError:      "EvalError",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestFormatStack(t *testing.T) {
	frames := []Frame{
		{FuncName: "inner", Pos: token.Position{File: "a.js", Line: 3, Column: 5}},
		{FuncName: "", Pos: token.Position{File: "a.js", Line: 10, Column: 1}},
	}
	out := FormatStack(frames)
	if !strings.Contains(out, "at inner (a.js:3:5)") {
		t.Fatalf("missing named frame: %q", out)
	}
	if !strings.Contains(out, "at <anonymous> (a.js:10:1)") {
		t.Fatalf("missing anonymous frame: %q", out)
	}
}
