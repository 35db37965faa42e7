package interp

import "github.com/ppyne/protoscript/internal/object"

// Completion is the result of evaluating a statement: a value plus at
// most one of the non-normal flags. Only `finally` may replace an
// already-set completion with another.
type Completion struct {
	Value object.Value

	DidReturn   bool
	DidBreak    bool
	DidContinue bool
	DidThrow    bool

	BreakLabel    string
	ContinueLabel string
	ThrowValue    object.Value
}

// IsAbrupt reports whether execution should unwind past the statement
// that produced this completion (anything other than falling through
// normally).
func (c Completion) IsAbrupt() bool {
	return c.DidReturn || c.DidBreak || c.DidContinue || c.DidThrow
}

func normal(v object.Value) Completion { return Completion{Value: v} }

func returnCompletion(v object.Value) Completion {
	return Completion{Value: v, DidReturn: true}
}

func breakCompletion(label string) Completion {
	return Completion{DidBreak: true, BreakLabel: label}
}

func continueCompletion(label string) Completion {
	return Completion{DidContinue: true, ContinueLabel: label}
}

func throwCompletion(v object.Value) Completion {
	return Completion{DidThrow: true, ThrowValue: v}
}
