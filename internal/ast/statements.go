package ast

import (
	"bytes"
	"strings"

	"github.com/ppyne/protoscript/internal/token"
)

// Block is a `{ ... }` sequence of statements. Program is Block-like but
// has no enclosing braces; both share statement-list execution semantics.
type Block struct {
	Token      token.Token
	Statements []Statement
}

func (b *Block) statementNode()      {}
func (b *Block) TokenLiteral() string { return b.Token.Literal }
func (b *Block) Pos() token.Position  { return b.Token.Pos }
func (b *Block) String() string {
	var out bytes.Buffer
	out.WriteString("{ ")
	for _, s := range b.Statements {
		out.WriteString(s.String())
		out.WriteString(" ")
	}
	out.WriteString("}")
	return out.String()
}

// VarDecl is `var name = init, name2 = init2, ...;`.
type VarDecl struct {
	Token token.Token
	Decls []VarBinding
}

// VarBinding is a single `name` or `name = init` of a VarDecl.
type VarBinding struct {
	Name string
	Init Expression
}

func (v *VarDecl) statementNode()      {}
func (v *VarDecl) TokenLiteral() string { return v.Token.Literal }
func (v *VarDecl) Pos() token.Position  { return v.Token.Pos }
func (v *VarDecl) String() string {
	parts := make([]string, len(v.Decls))
	for i, d := range v.Decls {
		if d.Init != nil {
			parts[i] = d.Name + " = " + d.Init.String()
		} else {
			parts[i] = d.Name
		}
	}
	return "var " + strings.Join(parts, ", ") + ";"
}

// ExprStmt is an expression evaluated for its side effects.
type ExprStmt struct {
	Token token.Token
	Expr  Expression
}

func (e *ExprStmt) statementNode()      {}
func (e *ExprStmt) TokenLiteral() string { return e.Token.Literal }
func (e *ExprStmt) Pos() token.Position  { return e.Token.Pos }
func (e *ExprStmt) String() string       { return e.Expr.String() + ";" }

// ReturnStmt is `return expr;` (expr may be nil for a bare `return;`).
type ReturnStmt struct {
	Token token.Token
	Value Expression
}

func (r *ReturnStmt) statementNode()      {}
func (r *ReturnStmt) TokenLiteral() string { return r.Token.Literal }
func (r *ReturnStmt) Pos() token.Position  { return r.Token.Pos }
func (r *ReturnStmt) String() string {
	if r.Value == nil {
		return "return;"
	}
	return "return " + r.Value.String() + ";"
}

// IfStmt is `if (cond) then [else else]`.
type IfStmt struct {
	Token        token.Token
	Cond         Expression
	Then, Else   Statement
}

func (i *IfStmt) statementNode()      {}
func (i *IfStmt) TokenLiteral() string { return i.Token.Literal }
func (i *IfStmt) Pos() token.Position  { return i.Token.Pos }
func (i *IfStmt) String() string {
	s := "if (" + i.Cond.String() + ") " + i.Then.String()
	if i.Else != nil {
		s += " else " + i.Else.String()
	}
	return s
}

// WhileStmt is `while (cond) body`.
type WhileStmt struct {
	Token token.Token
	Cond  Expression
	Body  Statement
}

func (w *WhileStmt) statementNode()      {}
func (w *WhileStmt) TokenLiteral() string { return w.Token.Literal }
func (w *WhileStmt) Pos() token.Position  { return w.Token.Pos }
func (w *WhileStmt) String() string       { return "while (" + w.Cond.String() + ") " + w.Body.String() }

// DoWhileStmt is `do body while (cond);`.
type DoWhileStmt struct {
	Token token.Token
	Body  Statement
	Cond  Expression
}

func (d *DoWhileStmt) statementNode()      {}
func (d *DoWhileStmt) TokenLiteral() string { return d.Token.Literal }
func (d *DoWhileStmt) Pos() token.Position  { return d.Token.Pos }
func (d *DoWhileStmt) String() string {
	return "do " + d.Body.String() + " while (" + d.Cond.String() + ");"
}

// ForStmt is the classic C-style `for (init; cond; post) body`. Any of
// Init/Cond/Post may be nil.
type ForStmt struct {
	Token            token.Token
	Init             Statement // VarDecl or ExprStmt, or nil
	Cond             Expression
	Post             Expression
	Body             Statement
}

func (f *ForStmt) statementNode()      {}
func (f *ForStmt) TokenLiteral() string { return f.Token.Literal }
func (f *ForStmt) Pos() token.Position  { return f.Token.Pos }
func (f *ForStmt) String() string       { return "for (...) " + f.Body.String() }

// ForInStmt is `for (var? target in source) body`.
type ForInStmt struct {
	Token      token.Token
	Target     Expression // Identifier or Member
	Declare    bool        // true if introduced with `var`
	Source     Expression
	Body       Statement
}

func (f *ForInStmt) statementNode()      {}
func (f *ForInStmt) TokenLiteral() string { return f.Token.Literal }
func (f *ForInStmt) Pos() token.Position  { return f.Token.Pos }
func (f *ForInStmt) String() string {
	return "for (" + f.Target.String() + " in " + f.Source.String() + ") " + f.Body.String()
}

// ForOfStmt is `for (var? target of source) body`.
type ForOfStmt struct {
	Token   token.Token
	Target  Expression
	Declare bool
	Source  Expression
	Body    Statement
}

func (f *ForOfStmt) statementNode()      {}
func (f *ForOfStmt) TokenLiteral() string { return f.Token.Literal }
func (f *ForOfStmt) Pos() token.Position  { return f.Token.Pos }
func (f *ForOfStmt) String() string {
	return "for (" + f.Target.String() + " of " + f.Source.String() + ") " + f.Body.String()
}

// SwitchCase is one `case test:` or `default:` clause of a SwitchStmt. Test
// is nil for the default clause.
type SwitchCase struct {
	Test Expression
	Body []Statement
}

// SwitchStmt is `switch (disc) { case ...: ... default: ... }`. Cases are
// evaluated in source order with fall-through.
type SwitchStmt struct {
	Token      token.Token
	Discriminant Expression
	Cases      []SwitchCase
}

func (s *SwitchStmt) statementNode()      {}
func (s *SwitchStmt) TokenLiteral() string { return s.Token.Literal }
func (s *SwitchStmt) Pos() token.Position  { return s.Token.Pos }
func (s *SwitchStmt) String() string       { return "switch (" + s.Discriminant.String() + ") { ... }" }

// LabeledStmt is `label: statement`.
type LabeledStmt struct {
	Token token.Token
	Label string
	Body  Statement
}

func (l *LabeledStmt) statementNode()      {}
func (l *LabeledStmt) TokenLiteral() string { return l.Token.Literal }
func (l *LabeledStmt) Pos() token.Position  { return l.Token.Pos }
func (l *LabeledStmt) String() string       { return l.Label + ": " + l.Body.String() }

// BreakStmt is `break;` or `break label;`.
type BreakStmt struct {
	Token token.Token
	Label string
}

func (b *BreakStmt) statementNode()      {}
func (b *BreakStmt) TokenLiteral() string { return b.Token.Literal }
func (b *BreakStmt) Pos() token.Position  { return b.Token.Pos }
func (b *BreakStmt) String() string {
	if b.Label != "" {
		return "break " + b.Label + ";"
	}
	return "break;"
}

// ContinueStmt is `continue;` or `continue label;`.
type ContinueStmt struct {
	Token token.Token
	Label string
}

func (c *ContinueStmt) statementNode()      {}
func (c *ContinueStmt) TokenLiteral() string { return c.Token.Literal }
func (c *ContinueStmt) Pos() token.Position  { return c.Token.Pos }
func (c *ContinueStmt) String() string {
	if c.Label != "" {
		return "continue " + c.Label + ";"
	}
	return "continue;"
}

// WithStmt is `with (expr) body`.
type WithStmt struct {
	Token token.Token
	Expr  Expression
	Body  Statement
}

func (w *WithStmt) statementNode()      {}
func (w *WithStmt) TokenLiteral() string { return w.Token.Literal }
func (w *WithStmt) Pos() token.Position  { return w.Token.Pos }
func (w *WithStmt) String() string       { return "with (" + w.Expr.String() + ") " + w.Body.String() }

// ThrowStmt is `throw expr;`.
type ThrowStmt struct {
	Token token.Token
	Value Expression
}

func (t *ThrowStmt) statementNode()      {}
func (t *ThrowStmt) TokenLiteral() string { return t.Token.Literal }
func (t *ThrowStmt) Pos() token.Position  { return t.Token.Pos }
func (t *ThrowStmt) String() string       { return "throw " + t.Value.String() + ";" }

// TryStmt is `try block [catch (param) catchBlock] [finally finallyBlock]`.
// Catch may be nil; Finally may be nil; at least one of the two must be
// present (enforced by the parser).
type TryStmt struct {
	Token        token.Token
	Block        *Block
	CatchParam   string // empty if Catch == nil
	Catch        *Block
	Finally      *Block
}

func (t *TryStmt) statementNode()      {}
func (t *TryStmt) TokenLiteral() string { return t.Token.Literal }
func (t *TryStmt) Pos() token.Position  { return t.Token.Pos }
func (t *TryStmt) String() string {
	s := "try " + t.Block.String()
	if t.Catch != nil {
		s += " catch (" + t.CatchParam + ") " + t.Catch.String()
	}
	if t.Finally != nil {
		s += " finally " + t.Finally.String()
	}
	return s
}

// FunctionDecl is `function name(params) { body }` at statement position;
// bound at hoist time.
type FunctionDecl struct {
	Token  token.Token
	Name   string
	Params []Param
	Body   *Block
}

func (f *FunctionDecl) statementNode()      {}
func (f *FunctionDecl) TokenLiteral() string { return f.Token.Literal }
func (f *FunctionDecl) Pos() token.Position  { return f.Token.Pos }
func (f *FunctionDecl) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.Name
	}
	return "function " + f.Name + "(" + strings.Join(parts, ", ") + ") " + f.Body.String()
}

// IncludeStmt is a resolved `include "path.js";` directive: the parser
// inlines the included program as a Block in place of this node, so
// IncludeStmt only appears transiently during parsing.
type IncludeStmt struct {
	Token token.Token
	Path  string
}

func (i *IncludeStmt) statementNode()      {}
func (i *IncludeStmt) TokenLiteral() string { return i.Token.Literal }
func (i *IncludeStmt) Pos() token.Position  { return i.Token.Pos }
func (i *IncludeStmt) String() string       { return "include " + i.Path + ";" }
