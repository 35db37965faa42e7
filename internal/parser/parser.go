// Package parser implements a Pratt parser that turns a token stream from
// internal/lexer into an internal/ast tree.
package parser

import (
	"fmt"
	"path/filepath"

	"github.com/ppyne/protoscript/internal/ast"
	"github.com/ppyne/protoscript/internal/lexer"
	"github.com/ppyne/protoscript/internal/token"
)

// Precedence levels, lowest to highest.
const (
	_ int = iota
	LOWEST
	COMMA      // ,
	ASSIGN     // = += -= ...
	CONDITIONAL // ?:
	LOGOR      // ||
	LOGAND     // &&
	BITOR      // |
	BITXOR     // ^
	BITAND     // &
	EQUALS     // == != === !==
	RELATIONAL // < > <= >= instanceof in
	SHIFT      // << >> >>>
	SUM        // + -
	PRODUCT    // * / %
	PREFIX     // ! ~ + - typeof void delete ++ --
	POSTFIX    // expr++ expr--
	CALL       // f(x), new f(x)
	MEMBER     // obj.x, obj[x]
)

var precedences = map[token.Type]int{
	token.COMMA:         COMMA,
	token.ASSIGN:        ASSIGN,
	token.PLUS_EQ:       ASSIGN,
	token.MINUS_EQ:      ASSIGN,
	token.STAR_EQ:       ASSIGN,
	token.SLASH_EQ:      ASSIGN,
	token.PERCENT_EQ:    ASSIGN,
	token.AND_EQ:        ASSIGN,
	token.OR_EQ:         ASSIGN,
	token.XOR_EQ:        ASSIGN,
	token.SHL_EQ:        ASSIGN,
	token.SHR_EQ:        ASSIGN,
	token.USHR_EQ:       ASSIGN,
	token.QUESTION:      CONDITIONAL,
	token.LOR:           LOGOR,
	token.LAND:          LOGAND,
	token.OR:            BITOR,
	token.XOR:           BITXOR,
	token.AND:           BITAND,
	token.EQ:            EQUALS,
	token.NOT_EQ:        EQUALS,
	token.STRICT_EQ:     EQUALS,
	token.STRICT_NOT_EQ: EQUALS,
	token.LT:            RELATIONAL,
	token.GT:            RELATIONAL,
	token.LE:            RELATIONAL,
	token.GE:            RELATIONAL,
	token.INSTANCEOF:    RELATIONAL,
	token.IN:            RELATIONAL,
	token.SHL:           SHIFT,
	token.SHR:           SHIFT,
	token.USHR:          SHIFT,
	token.PLUS:          SUM,
	token.MINUS:         SUM,
	token.STAR:          PRODUCT,
	token.SLASH:         PRODUCT,
	token.PERCENT:       PRODUCT,
	token.INC:           POSTFIX,
	token.DEC:           POSTFIX,
	token.LPAREN:        CALL,
	token.LBRACKET:      MEMBER,
	token.DOT:           MEMBER,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser consumes a token stream and produces an *ast.Program.
type Parser struct {
	l      *lexer.Lexer
	errors []error

	curToken  token.Token
	peekToken token.Token

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn

	noIn bool // suppresses `in` as a relational operator inside for(;;) headers

	// resolveInclude, when non-nil, is called for each top-level
	// `include "path";` directive to load and parse the referenced file.
	// It is nil unless constructed via NewWithIncludes.
	resolveInclude func(fromFile, path string) (*ast.Program, error)
	includeStack   map[string]bool
	file           string
}

// New creates a Parser over l with include resolution disabled; an
// `include` statement encountered by such a parser is a syntax error.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.registerFns()
	p.nextToken()
	p.nextToken()
	return p
}

// NewWithIncludes creates a Parser that resolves top-level `include
// "path.js";` directives via resolve, tracking fromFile's own path (file)
// for relative resolution and cycle detection.
func NewWithIncludes(l *lexer.Lexer, file string, resolve func(fromFile, path string) (*ast.Program, error)) *Parser {
	p := New(l)
	p.file = file
	p.resolveInclude = resolve
	p.includeStack = map[string]bool{filepath.Clean(file): true}
	return p
}

func (p *Parser) registerFns() {
	p.prefixParseFns = map[token.Type]prefixParseFn{
		token.IDENT:     p.parseIdentifier,
		token.NUMBER:    p.parseNumberLiteral,
		token.STRING:    p.parseStringLiteral,
		token.REGEX:     p.parseRegexLiteral,
		token.TRUE:      p.parseBooleanLiteral,
		token.FALSE:     p.parseBooleanLiteral,
		token.NULL:      p.parseNullLiteral,
		token.UNDEFINED: p.parseUndefinedLiteral,
		token.THIS:      p.parseThis,
		token.LPAREN:    p.parseGroupedExpr,
		token.LBRACKET:  p.parseArrayLiteral,
		token.LBRACE:    p.parseObjectLiteral,
		token.FUNCTION:  p.parseFunctionExpr,
		token.NEW:       p.parseNewExpr,
		token.NOT:       p.parseUnaryExpr,
		token.TILDE:     p.parseUnaryExpr,
		token.PLUS:      p.parseUnaryExpr,
		token.MINUS:     p.parseUnaryExpr,
		token.TYPEOF:    p.parseUnaryExpr,
		token.VOID:      p.parseUnaryExpr,
		token.DELETE:    p.parseUnaryExpr,
		token.INC:       p.parsePrefixIncDec,
		token.DEC:       p.parsePrefixIncDec,
	}
	p.infixParseFns = map[token.Type]infixParseFn{
		token.PLUS: p.parseBinaryExpr, token.MINUS: p.parseBinaryExpr,
		token.STAR: p.parseBinaryExpr, token.SLASH: p.parseBinaryExpr, token.PERCENT: p.parseBinaryExpr,
		token.AND: p.parseBinaryExpr, token.OR: p.parseBinaryExpr, token.XOR: p.parseBinaryExpr,
		token.SHL: p.parseBinaryExpr, token.SHR: p.parseBinaryExpr, token.USHR: p.parseBinaryExpr,
		token.LT: p.parseBinaryExpr, token.GT: p.parseBinaryExpr, token.LE: p.parseBinaryExpr, token.GE: p.parseBinaryExpr,
		token.EQ: p.parseBinaryExpr, token.NOT_EQ: p.parseBinaryExpr,
		token.STRICT_EQ: p.parseBinaryExpr, token.STRICT_NOT_EQ: p.parseBinaryExpr,
		token.LAND: p.parseBinaryExpr, token.LOR: p.parseBinaryExpr,
		token.INSTANCEOF: p.parseBinaryExpr, token.IN: p.parseInExpr,
		token.COMMA:    p.parseCommaExpr,
		token.ASSIGN:   p.parseAssignExpr,
		token.PLUS_EQ:  p.parseAssignExpr, token.MINUS_EQ: p.parseAssignExpr,
		token.STAR_EQ:  p.parseAssignExpr, token.SLASH_EQ: p.parseAssignExpr, token.PERCENT_EQ: p.parseAssignExpr,
		token.AND_EQ: p.parseAssignExpr, token.OR_EQ: p.parseAssignExpr, token.XOR_EQ: p.parseAssignExpr,
		token.SHL_EQ: p.parseAssignExpr, token.SHR_EQ: p.parseAssignExpr, token.USHR_EQ: p.parseAssignExpr,
		token.QUESTION: p.parseConditionalExpr,
		token.LPAREN:   p.parseCallExpr,
		token.LBRACKET: p.parseComputedMember,
		token.DOT:      p.parseDotMember,
		token.INC:      p.parsePostfixIncDec,
		token.DEC:      p.parsePostfixIncDec,
	}
}

// Errors returns the parse errors accumulated so far.
func (p *Parser) Errors() []error { return p.errors }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.Type) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t token.Type) {
	p.errors = append(p.errors, fmt.Errorf("%s: expected next token to be %s, got %s (%q) instead",
		p.peekToken.Pos, t, p.peekToken.Type, p.peekToken.Literal))
}

func (p *Parser) errorf(pos token.Position, format string, args ...interface{}) {
	p.errors = append(p.errors, fmt.Errorf("%s: %s", pos, fmt.Sprintf(format, args...)))
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return LOWEST
}

// ParseProgram parses the whole token stream into an *ast.Program.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{File: p.file}
	for !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		p.nextToken()
	}
	return prog
}
