// Package errors provides host-facing error formatting (syntax/IO errors
// reported to the user running the interpreter) and the shared vocabulary
// of script-level error kinds and stack frames used when building thrown
// Error objects.
package errors

import (
	"fmt"
	"strings"

	"github.com/ppyne/protoscript/internal/token"
)

// CompilerError is a host-level error produced while lexing, parsing, or
// loading a script: a message anchored to a source position, with the
// surrounding source line available for a caret-pointer rendering.
type CompilerError struct {
	Message string
	Source  string
	File    string
	Pos     token.Position
}

// NewCompilerError builds a CompilerError anchored at pos.
func NewCompilerError(pos token.Position, message, source, file string) *CompilerError {
	return &CompilerError{Pos: pos, Message: message, Source: source, File: file}
}

func (e *CompilerError) Error() string { return e.Format(false) }

// Format renders the error with a source-line excerpt and a caret pointing
// at the offending column. If color is true, ANSI escapes highlight the
// caret and message.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "Error at line %d:%d\n", e.Pos.Line, e.Pos.Column)
	}

	if line := e.sourceLine(e.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func (e *CompilerError) sourceLine(n int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if n < 1 || n > len(lines) {
		return ""
	}
	return lines[n-1]
}

// Kind enumerates the built-in Error constructors of the script language.
type Kind int

const (
	Generic Kind = iota
	TypeError
	RangeError
	ReferenceError
	SyntaxError
	EvalError
)

var kindNames = map[Kind]string{
	Generic:        "Error",
	TypeError:      "TypeError",
	RangeError:     "RangeError",
	ReferenceError: "ReferenceError",
	SyntaxError:    "SyntaxError",
	EvalError:      "EvalError",
}

// String returns the kind's constructor/prototype name, e.g. "TypeError".
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Error"
}

// NativeError is the Go error type a native function returns when it
// needs the host to throw a specific script error kind (TypeError,
// RangeError, ...) rather than a generic Error. CallFunction's native
// dispatch type-asserts for this and falls back to Generic for any
// other Go error.
type NativeError struct {
	Kind    Kind
	Message string
}

func (e *NativeError) Error() string { return e.Message }

// Frame is one entry of a captured call stack: the function name active at
// the time and the source position of the call site or throw site.
type Frame struct {
	FuncName string
	Pos      token.Position
}

// FormatStack renders frames the way a thrown Error's `stack` property is
// built: most-recent call first, one "at name (file:line:column)" line per
// frame.
func FormatStack(frames []Frame) string {
	var sb strings.Builder
	for _, f := range frames {
		name := f.FuncName
		if name == "" {
			name = "<anonymous>"
		}
		fmt.Fprintf(&sb, "    at %s (%s)\n", name, f.Pos)
	}
	return sb.String()
}
