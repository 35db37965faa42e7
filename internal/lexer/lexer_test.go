package lexer

import (
	"testing"

	"github.com/ppyne/protoscript/internal/token"
)

func TestNextTokenBasicProgram(t *testing.T) {
	input := `var x = 5 + 10;
function add(a, b) { return a + b; }
if (x >= 5) { x++; } else { x--; }`

	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.VAR, "var"},
		{token.IDENT, "x"},
		{token.ASSIGN, "="},
		{token.NUMBER, "5"},
		{token.PLUS, "+"},
		{token.NUMBER, "10"},
		{token.SEMICOLON, ";"},
		{token.FUNCTION, "function"},
		{token.IDENT, "add"},
		{token.LPAREN, "("},
		{token.IDENT, "a"},
		{token.COMMA, ","},
		{token.IDENT, "b"},
		{token.RPAREN, ")"},
		{token.LBRACE, "{"},
		{token.RETURN, "return"},
		{token.IDENT, "a"},
		{token.PLUS, "+"},
		{token.IDENT, "b"},
		{token.SEMICOLON, ";"},
		{token.RBRACE, "}"},
		{token.IF, "if"},
		{token.LPAREN, "("},
		{token.IDENT, "x"},
		{token.GE, ">="},
		{token.NUMBER, "5"},
		{token.RPAREN, ")"},
		{token.LBRACE, "{"},
		{token.IDENT, "x"},
		{token.INC, "++"},
		{token.SEMICOLON, ";"},
		{token.RBRACE, "}"},
		{token.ELSE, "else"},
		{token.LBRACE, "{"},
		{token.IDENT, "x"},
		{token.DEC, "--"},
		{token.SEMICOLON, ";"},
		{token.RBRACE, "}"},
		{token.EOF, ""},
	}

	l := New("test.js", input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("test[%d] - wrong type. expected=%s, got=%s (%q)", i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("test[%d] - wrong literal. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestNextTokenStrings(t *testing.T) {
	input := `"hello\nworld" 'it''sA'`
	l := New("", input)

	tok := l.NextToken()
	if tok.Type != token.STRING || tok.Literal != "hello\nworld" {
		t.Fatalf("unexpected token: %+v", tok)
	}
	tok = l.NextToken()
	if tok.Type != token.STRING {
		t.Fatalf("expected string, got %s", tok.Type)
	}
}

func TestNextTokenRegexAfterAssign(t *testing.T) {
	l := New("", `var re = /ab+c/gi;`)
	var tok token.Token
	for tok.Type != token.REGEX && tok.Type != token.EOF {
		tok = l.NextToken()
	}
	if tok.Type != token.REGEX {
		t.Fatalf("expected REGEX token, got %s", tok.Type)
	}
	if tok.Literal != "/ab+c/gi" {
		t.Fatalf("expected /ab+c/gi, got %q", tok.Literal)
	}
}

func TestNextTokenDivisionAfterIdent(t *testing.T) {
	l := New("", `a / b`)
	tok := l.NextToken()
	if tok.Type != token.IDENT {
		t.Fatalf("expected IDENT, got %s", tok.Type)
	}
	tok = l.NextToken()
	if tok.Type != token.SLASH {
		t.Fatalf("expected SLASH (division), got %s %q", tok.Type, tok.Literal)
	}
}

func TestNextTokenNumbers(t *testing.T) {
	cases := []string{"123", "1.5", "1.5e10", "1e-3", "0x1F"}
	for _, c := range cases {
		l := New("", c)
		tok := l.NextToken()
		if tok.Type != token.NUMBER || tok.Literal != c {
			t.Errorf("case %q: got %s %q", c, tok.Type, tok.Literal)
		}
	}
}

func TestPositionTracksLineAndColumn(t *testing.T) {
	l := New("f.js", "var\nx")
	l.NextToken() // var
	tok := l.NextToken()
	if tok.Pos.Line != 2 || tok.Pos.Column != 1 {
		t.Fatalf("expected line=2 column=1, got line=%d column=%d", tok.Pos.Line, tok.Pos.Column)
	}
}
