package parser

import (
	"path/filepath"

	"github.com/ppyne/protoscript/internal/ast"
	"github.com/ppyne/protoscript/internal/token"
)

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.VAR:
		return p.parseVarDecl()
	case token.LBRACE:
		return p.parseBlock()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.DO:
		return p.parseDoWhile()
	case token.FOR:
		return p.parseFor()
	case token.BREAK:
		return p.parseBreak()
	case token.CONTINUE:
		return p.parseContinue()
	case token.RETURN:
		return p.parseReturn()
	case token.THROW:
		return p.parseThrow()
	case token.TRY:
		return p.parseTry()
	case token.WITH:
		return p.parseWith()
	case token.SWITCH:
		return p.parseSwitch()
	case token.FUNCTION:
		return p.parseFunctionDecl()
	case token.SEMICOLON:
		return nil
	case token.INCLUDE:
		return p.parseInclude()
	case token.IDENT:
		if p.peekTokenIs(token.COLON) {
			return p.parseLabeled()
		}
		return p.parseExprStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) consumeSemicolon() {
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
}

func (p *Parser) parseBlock() *ast.Block {
	blk := &ast.Block{Token: p.curToken}
	p.nextToken()
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			blk.Statements = append(blk.Statements, stmt)
		}
		p.nextToken()
	}
	return blk
}

func (p *Parser) parseVarDecl() *ast.VarDecl {
	decl := &ast.VarDecl{Token: p.curToken}
	for {
		if !p.expectPeek(token.IDENT) {
			return decl
		}
		binding := ast.VarBinding{Name: p.curToken.Literal}
		if p.peekTokenIs(token.ASSIGN) {
			p.nextToken()
			p.nextToken()
			binding.Init = p.parseExpression(COMMA)
		}
		decl.Decls = append(decl.Decls, binding)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	p.consumeSemicolon()
	return decl
}

func (p *Parser) parseExprStmt() *ast.ExprStmt {
	stmt := &ast.ExprStmt{Token: p.curToken}
	stmt.Expr = p.parseExpression(LOWEST)
	p.consumeSemicolon()
	return stmt
}

func (p *Parser) parseIf() *ast.IfStmt {
	stmt := &ast.IfStmt{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return stmt
	}
	p.nextToken()
	stmt.Cond = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return stmt
	}
	p.nextToken()
	stmt.Then = p.parseStatement()
	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		p.nextToken()
		stmt.Else = p.parseStatement()
	}
	return stmt
}

func (p *Parser) parseWhile() *ast.WhileStmt {
	stmt := &ast.WhileStmt{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return stmt
	}
	p.nextToken()
	stmt.Cond = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return stmt
	}
	p.nextToken()
	stmt.Body = p.parseStatement()
	return stmt
}

func (p *Parser) parseDoWhile() *ast.DoWhileStmt {
	stmt := &ast.DoWhileStmt{Token: p.curToken}
	p.nextToken()
	stmt.Body = p.parseStatement()
	if !p.expectPeek(token.WHILE) {
		return stmt
	}
	if !p.expectPeek(token.LPAREN) {
		return stmt
	}
	p.nextToken()
	stmt.Cond = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return stmt
	}
	p.consumeSemicolon()
	return stmt
}

// parseFor parses `for (...)`, disambiguating the classic three-clause
// form from for-in/for-of by parsing the first clause (with `in` disabled
// as an operator) and checking whether an `in`/`of` token follows it.
func (p *Parser) parseFor() ast.Statement {
	forTok := p.curToken
	if !p.expectPeek(token.LPAREN) {
		return &ast.ForStmt{Token: forTok}
	}

	var declare bool
	var init ast.Statement
	var target ast.Expression

	p.nextToken()
	if p.curTokenIs(token.VAR) {
		declare = true
		varTok := p.curToken
		if !p.expectPeek(token.IDENT) {
			return &ast.ForStmt{Token: forTok}
		}
		name := p.curToken.Literal
		ident := &ast.Identifier{Token: p.curToken, Value: name}

		if p.peekTokenIs(token.IN) {
			p.nextToken()
			p.nextToken()
			src := p.parseExpression(LOWEST)
			if !p.expectPeek(token.RPAREN) {
				return &ast.ForInStmt{Token: forTok}
			}
			p.nextToken()
			body := p.parseStatement()
			return &ast.ForInStmt{Token: forTok, Target: ident, Declare: true, Source: src, Body: body}
		}
		if p.peekTokenIs(token.OF) {
			p.nextToken()
			p.nextToken()
			src := p.parseExpression(LOWEST)
			if !p.expectPeek(token.RPAREN) {
				return &ast.ForOfStmt{Token: forTok}
			}
			p.nextToken()
			body := p.parseStatement()
			return &ast.ForOfStmt{Token: forTok, Target: ident, Declare: true, Source: src, Body: body}
		}

		decl := &ast.VarDecl{Token: varTok}
		binding := ast.VarBinding{Name: name}
		if p.peekTokenIs(token.ASSIGN) {
			p.nextToken()
			p.nextToken()
			p.noIn = true
			binding.Init = p.parseExpression(ASSIGN)
			p.noIn = false
		}
		decl.Decls = append(decl.Decls, binding)
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			if !p.expectPeek(token.IDENT) {
				break
			}
			b := ast.VarBinding{Name: p.curToken.Literal}
			if p.peekTokenIs(token.ASSIGN) {
				p.nextToken()
				p.nextToken()
				b.Init = p.parseExpression(ASSIGN)
			}
			decl.Decls = append(decl.Decls, b)
		}
		init = decl
		_ = declare
	} else if !p.curTokenIs(token.SEMICOLON) {
		p.noIn = true
		target = p.parseExpression(LOWEST)
		p.noIn = false

		if p.peekTokenIs(token.IN) {
			p.nextToken()
			p.nextToken()
			src := p.parseExpression(LOWEST)
			if !p.expectPeek(token.RPAREN) {
				return &ast.ForInStmt{Token: forTok}
			}
			p.nextToken()
			body := p.parseStatement()
			return &ast.ForInStmt{Token: forTok, Target: target, Source: src, Body: body}
		}
		if p.peekTokenIs(token.OF) {
			p.nextToken()
			p.nextToken()
			src := p.parseExpression(LOWEST)
			if !p.expectPeek(token.RPAREN) {
				return &ast.ForOfStmt{Token: forTok}
			}
			p.nextToken()
			body := p.parseStatement()
			return &ast.ForOfStmt{Token: forTok, Target: target, Source: src, Body: body}
		}
		init = &ast.ExprStmt{Token: forTok, Expr: target}
	}

	if !p.curTokenIs(token.SEMICOLON) {
		if !p.expectPeek(token.SEMICOLON) {
			return &ast.ForStmt{Token: forTok, Init: init}
		}
	}

	var cond ast.Expression
	p.nextToken()
	if !p.curTokenIs(token.SEMICOLON) {
		cond = p.parseExpression(LOWEST)
		if !p.expectPeek(token.SEMICOLON) {
			return &ast.ForStmt{Token: forTok, Init: init, Cond: cond}
		}
	}

	var post ast.Expression
	p.nextToken()
	if !p.curTokenIs(token.RPAREN) {
		post = p.parseExpression(LOWEST)
		if !p.expectPeek(token.RPAREN) {
			return &ast.ForStmt{Token: forTok, Init: init, Cond: cond, Post: post}
		}
	}

	p.nextToken()
	body := p.parseStatement()
	return &ast.ForStmt{Token: forTok, Init: init, Cond: cond, Post: post, Body: body}
}

func (p *Parser) parseBreak() *ast.BreakStmt {
	stmt := &ast.BreakStmt{Token: p.curToken}
	if p.peekTokenIs(token.IDENT) {
		p.nextToken()
		stmt.Label = p.curToken.Literal
	}
	p.consumeSemicolon()
	return stmt
}

func (p *Parser) parseContinue() *ast.ContinueStmt {
	stmt := &ast.ContinueStmt{Token: p.curToken}
	if p.peekTokenIs(token.IDENT) {
		p.nextToken()
		stmt.Label = p.curToken.Literal
	}
	p.consumeSemicolon()
	return stmt
}

func (p *Parser) parseReturn() *ast.ReturnStmt {
	stmt := &ast.ReturnStmt{Token: p.curToken}
	if p.peekTokenIs(token.SEMICOLON) || p.peekTokenIs(token.RBRACE) || p.peekTokenIs(token.EOF) {
		p.consumeSemicolon()
		return stmt
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	p.consumeSemicolon()
	return stmt
}

func (p *Parser) parseThrow() *ast.ThrowStmt {
	stmt := &ast.ThrowStmt{Token: p.curToken}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	p.consumeSemicolon()
	return stmt
}

func (p *Parser) parseTry() *ast.TryStmt {
	stmt := &ast.TryStmt{Token: p.curToken}
	if !p.expectPeek(token.LBRACE) {
		return stmt
	}
	stmt.Block = p.parseBlock()

	if p.peekTokenIs(token.CATCH) {
		p.nextToken()
		if p.peekTokenIs(token.LPAREN) {
			p.nextToken()
			if p.expectPeek(token.IDENT) {
				stmt.CatchParam = p.curToken.Literal
			}
			p.expectPeek(token.RPAREN)
		}
		if p.expectPeek(token.LBRACE) {
			stmt.Catch = p.parseBlock()
		}
	}
	if p.peekTokenIs(token.FINALLY) {
		p.nextToken()
		if p.expectPeek(token.LBRACE) {
			stmt.Finally = p.parseBlock()
		}
	}
	return stmt
}

func (p *Parser) parseWith() *ast.WithStmt {
	stmt := &ast.WithStmt{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return stmt
	}
	p.nextToken()
	stmt.Expr = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return stmt
	}
	p.nextToken()
	stmt.Body = p.parseStatement()
	return stmt
}

func (p *Parser) parseSwitch() *ast.SwitchStmt {
	stmt := &ast.SwitchStmt{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return stmt
	}
	p.nextToken()
	stmt.Discriminant = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return stmt
	}
	if !p.expectPeek(token.LBRACE) {
		return stmt
	}
	p.nextToken()
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		var c ast.SwitchCase
		if p.curTokenIs(token.CASE) {
			p.nextToken()
			c.Test = p.parseExpression(LOWEST)
			if !p.expectPeek(token.COLON) {
				return stmt
			}
		} else if p.curTokenIs(token.DEFAULT) {
			if !p.expectPeek(token.COLON) {
				return stmt
			}
		} else {
			p.nextToken()
			continue
		}
		p.nextToken()
		for !p.curTokenIs(token.CASE) && !p.curTokenIs(token.DEFAULT) &&
			!p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
			if s := p.parseStatement(); s != nil {
				c.Body = append(c.Body, s)
			}
			p.nextToken()
		}
		stmt.Cases = append(stmt.Cases, c)
	}
	return stmt
}

func (p *Parser) parseLabeled() *ast.LabeledStmt {
	stmt := &ast.LabeledStmt{Token: p.curToken, Label: p.curToken.Literal}
	p.nextToken() // consume ':'
	p.nextToken()
	stmt.Body = p.parseStatement()
	return stmt
}

func (p *Parser) parseParamList() []ast.Param {
	var params []ast.Param
	if !p.expectPeek(token.LPAREN) {
		return params
	}
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params
	}
	p.nextToken()
	for {
		param := ast.Param{Name: p.curToken.Literal}
		if p.peekTokenIs(token.ASSIGN) {
			p.nextToken()
			p.nextToken()
			param.Default = p.parseExpression(ASSIGN)
		}
		params = append(params, param)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
		p.nextToken()
	}
	p.expectPeek(token.RPAREN)
	return params
}

func (p *Parser) parseFunctionDecl() *ast.FunctionDecl {
	decl := &ast.FunctionDecl{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return decl
	}
	decl.Name = p.curToken.Literal
	decl.Params = p.parseParamList()
	if !p.expectPeek(token.LBRACE) {
		return decl
	}
	decl.Body = p.parseBlock()
	return decl
}

// parseInclude resolves a top-level `include "path.js";` directive into the
// included program's statements, inlined as a Block. Cycles and missing
// resolvers are reported as parse errors; the directive itself never
// survives into the final AST.
func (p *Parser) parseInclude() ast.Statement {
	incTok := p.curToken
	if !p.expectPeek(token.STRING) {
		return nil
	}
	path := p.curToken.Literal
	p.consumeSemicolon()

	if p.resolveInclude == nil {
		p.errorf(incTok.Pos, "include directive used without an include resolver configured")
		return nil
	}
	key := filepath.Clean(path)
	if p.includeStack[key] {
		p.errorf(incTok.Pos, "circular include of %q", path)
		return nil
	}
	included, err := p.resolveInclude(p.file, path)
	if err != nil {
		p.errorf(incTok.Pos, "include %q: %v", path, err)
		return nil
	}
	p.includeStack[key] = true
	return &ast.Block{Token: incTok, Statements: included.Statements}
}
