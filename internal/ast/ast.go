// Package ast defines the Abstract Syntax Tree node types produced by the
// parser and walked by the evaluator. Every node satisfies the Node
// interface; expression nodes additionally satisfy Expression, statement
// nodes additionally satisfy Statement. Every node carries its source
// position for error reporting.
package ast

import (
	"bytes"
	"strings"

	"github.com/ppyne/protoscript/internal/token"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	// TokenLiteral returns the literal text of the token the node was
	// built from. Used mainly for debugging.
	TokenLiteral() string
	// String renders the node back to source-like text, for debugging
	// and --dump-ast output.
	String() string
	// Pos returns the node's position in the source it was parsed from.
	Pos() token.Position
}

// Expression is a node that produces a value when evaluated.
type Expression interface {
	Node
	expressionNode()
}

// Statement is a node that performs an action without itself producing a
// value.
type Statement interface {
	Node
	statementNode()
}

// Program is the root of every AST; a top-level program behaves like a
// Block of statements for completion purposes.
type Program struct {
	Statements []Statement
	File       string
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return token.Position{File: p.File, Line: 1, Column: 1}
}

// Identifier is a bare name reference: a variable, function, or parameter.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()        {}
func (i *Identifier) TokenLiteral() string   { return i.Token.Literal }
func (i *Identifier) String() string         { return i.Value }
func (i *Identifier) Pos() token.Position    { return i.Token.Pos }

func joinStrings(nodes []Expression, sep string) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, sep)
}
