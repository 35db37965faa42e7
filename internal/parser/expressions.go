package parser

import (
	"strconv"
	"strings"

	"github.com/ppyne/protoscript/internal/ast"
	"github.com/ppyne/protoscript/internal/token"
)

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.errorf(p.curToken.Pos, "no prefix parse function for %s found", p.curToken.Type)
		return nil
	}
	left := prefix()

	for !p.peekTokenIs(token.SEMICOLON) && precedence < p.peekPrecedence() {
		if p.noIn && p.peekTokenIs(token.IN) {
			break
		}
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	tok := p.curToken
	lit := tok.Literal
	var n float64
	if strings.HasPrefix(lit, "0x") || strings.HasPrefix(lit, "0X") {
		v, err := strconv.ParseUint(lit[2:], 16, 64)
		if err != nil {
			p.errorf(tok.Pos, "could not parse %q as a hex number", lit)
		}
		n = float64(v)
	} else {
		v, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			p.errorf(tok.Pos, "could not parse %q as a number", lit)
		}
		n = v
	}
	return &ast.Literal{Token: tok, Kind: ast.LitNumber, Num: n}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.Literal{Token: p.curToken, Kind: ast.LitString, Str: p.curToken.Literal}
}

func (p *Parser) parseRegexLiteral() ast.Expression {
	tok := p.curToken
	lit := tok.Literal // /pattern/flags
	end := strings.LastIndex(lit, "/")
	pattern := lit[1:end]
	flags := lit[end+1:]
	return &ast.RegexLiteral{Token: tok, Pattern: pattern, Flags: flags}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.Literal{Token: p.curToken, Kind: ast.LitBoolean, Bool: p.curToken.Type == token.TRUE}
}

func (p *Parser) parseNullLiteral() ast.Expression {
	return &ast.Literal{Token: p.curToken, Kind: ast.LitNull}
}

func (p *Parser) parseUndefinedLiteral() ast.Expression {
	return &ast.Literal{Token: p.curToken, Kind: ast.LitUndefined}
}

func (p *Parser) parseThis() ast.Expression {
	return &ast.This{Token: p.curToken}
}

func (p *Parser) parseGroupedExpr() ast.Expression {
	p.nextToken()
	noIn := p.noIn
	p.noIn = false
	expr := p.parseExpression(LOWEST)
	p.noIn = noIn
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	arr := &ast.ArrayLiteral{Token: p.curToken}
	for !p.peekTokenIs(token.RBRACKET) {
		if p.peekTokenIs(token.COMMA) {
			arr.Elements = append(arr.Elements, nil)
			p.nextToken()
			continue
		}
		p.nextToken()
		arr.Elements = append(arr.Elements, p.parseExpression(ASSIGN))
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		} else {
			break
		}
	}
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return arr
}

func (p *Parser) parseObjectLiteral() ast.Expression {
	obj := &ast.ObjectLiteral{Token: p.curToken}
	if p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		return obj
	}
	p.nextToken()
	for {
		prop := ast.ObjectProperty{}
		switch p.curToken.Type {
		case token.LBRACKET:
			p.nextToken()
			prop.Key = p.parseExpression(ASSIGN)
			prop.Computed = true
			if !p.expectPeek(token.RBRACKET) {
				return nil
			}
		case token.STRING:
			prop.Key = &ast.Literal{Token: p.curToken, Kind: ast.LitString, Str: p.curToken.Literal}
		case token.NUMBER:
			prop.Key = p.parseNumberLiteral()
		default:
			prop.Key = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
		}
		if !p.expectPeek(token.COLON) {
			return nil
		}
		p.nextToken()
		prop.Value = p.parseExpression(ASSIGN)
		obj.Properties = append(obj.Properties, prop)

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
		if p.peekTokenIs(token.RBRACE) {
			break
		}
		p.nextToken()
	}
	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return obj
}

func (p *Parser) parseFunctionExpr() ast.Expression {
	fn := &ast.FunctionExpr{Token: p.curToken}
	if p.peekTokenIs(token.IDENT) {
		p.nextToken()
		fn.Name = p.curToken.Literal
	}
	fn.Params = p.parseParamList()
	if !p.expectPeek(token.LBRACE) {
		return fn
	}
	fn.Body = p.parseBlock()
	return fn
}

func (p *Parser) parseArgs() []ast.Expression {
	var args []ast.Expression
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return args
	}
	p.nextToken()
	args = append(args, p.parseExpression(ASSIGN))
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		args = append(args, p.parseExpression(ASSIGN))
	}
	if !p.expectPeek(token.RPAREN) {
		return args
	}
	return args
}

func (p *Parser) parseNewExpr() ast.Expression {
	tok := p.curToken
	p.nextToken()
	callee := p.parseExpression(CALL)
	n := &ast.New{Token: tok, Callee: callee}
	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		n.Args = p.parseArgs()
	}
	return n
}

func (p *Parser) parseUnaryExpr() ast.Expression {
	tok := p.curToken
	var op ast.UnaryOp
	switch tok.Type {
	case token.NOT:
		op = ast.OpNot
	case token.TILDE:
		op = ast.OpBitNot
	case token.PLUS:
		op = ast.OpPlus
	case token.MINUS:
		op = ast.OpMinus
	case token.TYPEOF:
		op = ast.OpTypeof
	case token.VOID:
		op = ast.OpVoid
	case token.DELETE:
		op = ast.OpDelete
	}
	p.nextToken()
	operand := p.parseExpression(PREFIX)
	return &ast.UnaryExpr{Token: tok, Op: op, Operand: operand}
}

func (p *Parser) parsePrefixIncDec() ast.Expression {
	tok := p.curToken
	op := ast.OpPreInc
	if tok.Type == token.DEC {
		op = ast.OpPreDec
	}
	p.nextToken()
	operand := p.parseExpression(PREFIX)
	return &ast.UnaryExpr{Token: tok, Op: op, Operand: operand}
}

func (p *Parser) parsePostfixIncDec(left ast.Expression) ast.Expression {
	tok := p.curToken
	op := ast.OpPostInc
	if tok.Type == token.DEC {
		op = ast.OpPostDec
	}
	return &ast.UnaryExpr{Token: tok, Op: op, Operand: left}
}

var binaryOps = map[token.Type]ast.BinaryOp{
	token.PLUS: ast.OpAdd, token.MINUS: ast.OpSub, token.STAR: ast.OpMul,
	token.SLASH: ast.OpDiv, token.PERCENT: ast.OpMod,
	token.AND: ast.OpBitAnd, token.OR: ast.OpBitOr, token.XOR: ast.OpBitXor,
	token.SHL: ast.OpShl, token.SHR: ast.OpShr, token.USHR: ast.OpUShr,
	token.LT: ast.OpLt, token.GT: ast.OpGt, token.LE: ast.OpLe, token.GE: ast.OpGe,
	token.EQ: ast.OpEq, token.NOT_EQ: ast.OpNotEq,
	token.STRICT_EQ: ast.OpStrictEq, token.STRICT_NOT_EQ: ast.OpStrictNotEq,
	token.LAND: ast.OpAnd, token.LOR: ast.OpOr,
	token.INSTANCEOF: ast.OpInstanceof,
}

func (p *Parser) parseBinaryExpr(left ast.Expression) ast.Expression {
	tok := p.curToken
	precedence := p.curPrecedence()
	op := binaryOps[tok.Type]
	p.nextToken()
	right := p.parseExpression(precedence)
	return &ast.BinaryExpr{Token: tok, Op: op, Left: left, Right: right}
}

func (p *Parser) parseInExpr(left ast.Expression) ast.Expression {
	tok := p.curToken
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	return &ast.BinaryExpr{Token: tok, Op: ast.OpIn, Left: left, Right: right}
}

func (p *Parser) parseCommaExpr(left ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken()
	right := p.parseExpression(COMMA)
	return &ast.BinaryExpr{Token: tok, Op: ast.OpComma, Left: left, Right: right}
}

var assignOps = map[token.Type]ast.AssignOp{
	token.ASSIGN: ast.AssignPlain, token.PLUS_EQ: ast.AssignAdd, token.MINUS_EQ: ast.AssignSub,
	token.STAR_EQ: ast.AssignMul, token.SLASH_EQ: ast.AssignDiv, token.PERCENT_EQ: ast.AssignMod,
	token.AND_EQ: ast.AssignAnd, token.OR_EQ: ast.AssignOr, token.XOR_EQ: ast.AssignXor,
	token.SHL_EQ: ast.AssignShl, token.SHR_EQ: ast.AssignShr, token.USHR_EQ: ast.AssignUShr,
}

func (p *Parser) parseAssignExpr(left ast.Expression) ast.Expression {
	tok := p.curToken
	op := assignOps[tok.Type]
	p.nextToken()
	value := p.parseExpression(ASSIGN - 1)
	return &ast.AssignExpr{Token: tok, Op: op, Target: left, Value: value}
}

func (p *Parser) parseConditionalExpr(cond ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken()
	noIn := p.noIn
	p.noIn = false
	then := p.parseExpression(ASSIGN)
	if !p.expectPeek(token.COLON) {
		return nil
	}
	p.nextToken()
	els := p.parseExpression(ASSIGN)
	p.noIn = noIn
	return &ast.ConditionalExpr{Token: tok, Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseCallExpr(callee ast.Expression) ast.Expression {
	tok := p.curToken
	args := p.parseArgs()
	return &ast.Call{Token: tok, Callee: callee, Args: args}
}

func (p *Parser) parseComputedMember(obj ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken()
	prop := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return &ast.Member{Token: tok, Object: obj, Property: prop, Computed: true}
}

func (p *Parser) parseDotMember(obj ast.Expression) ast.Expression {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	prop := &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	return &ast.Member{Token: tok, Object: obj, Property: prop, Computed: false}
}
