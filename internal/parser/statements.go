package parser

import (
	"fmt"

	"github.com/lppc/transpiler/internal/ast"
	"github.com/lppc/transpiler/internal/diagnostics"
	"github.com/lppc/transpiler/internal/token"
)

// parseBlock parses a `{ ... }` block. When enableImplicitReturn is true
// (function and lambda bodies), a trailing ExprStmt is rewritten to a
// ReturnStmt of the same expression (spec §4.2 "Implicit return"); the
// rewrite is idempotent since a body whose last statement is already a
// ReturnStmt is left untouched (Testable Property 10).
func (p *Parser) parseBlock(enableImplicitReturn bool) *ast.BlockStmt {
	tok := p.expect(token.LBRACE, "'{'")
	block := &ast.BlockStmt{Tok: tok}
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		block.Statements = append(block.Statements, p.parseStatement())
	}
	p.expect(token.RBRACE, "'}'")
	if enableImplicitReturn && len(block.Statements) > 0 {
		last := len(block.Statements) - 1
		if es, ok := block.Statements[last].(*ast.ExprStmt); ok {
			block.Statements[last] = &ast.ReturnStmt{Tok: es.Tok, Value: es.Expr}
		}
	}
	return block
}

func (p *Parser) parseStatement() ast.Statement {
	// A fresh statement is a recovery boundary: cascading-report suppression
	// only lasts until the parser reaches the next statement.
	p.panicMode = false
	switch {
	case p.check(token.LET) || p.check(token.CONST):
		return p.parseVarOrDestructuring()
	case p.check(token.QUANTUM):
		return p.parseQuantumVarDecl()
	case p.check(token.IF):
		return p.parseIf()
	case p.check(token.WHILE):
		return p.parseWhile()
	case p.check(token.DO):
		return p.parseDoWhile()
	case p.check(token.FOR):
		return p.parseForOrForIn()
	case p.check(token.MATCH):
		return p.parseSwitchLikeMatch()
	case p.check(token.TRY):
		return p.parseTryCatch()
	case p.check(token.BREAK):
		tok := p.advance()
		p.expect(token.SEMI, "';'")
		return &ast.BreakStmt{Tok: tok}
	case p.check(token.CONTINUE):
		tok := p.advance()
		p.expect(token.SEMI, "';'")
		return &ast.ContinueStmt{Tok: tok}
	case p.check(token.RETURN):
		tok := p.advance()
		var val ast.Expression
		if !p.check(token.SEMI) {
			val = p.parseExpression()
		}
		p.expect(token.SEMI, "';'")
		return &ast.ReturnStmt{Tok: tok, Value: val}
	case p.check(token.IMPORT):
		return p.parseImport()
	case p.check(token.EXPORT):
		return p.parseExport()
	case p.check(token.AUTOPATTERN):
		return p.parseAutoPatternStmt()
	case p.check(token.TYPE):
		return p.parseTypeDecl()
	case p.check(token.ENUM):
		return p.parseEnum()
	case p.check(token.INTERFACE):
		return p.parseInterface()
	case p.check(token.LBRACE):
		return p.parseBlock(false)
	default:
		return p.parseAssignmentOrExprStmt()
	}
}

// parseVarOrDestructuring disambiguates `let x: T = ...;` from
// `let [a, b] = ...;` / `let {a, b} = ...;` / `let (a, b) = ...;`.
func (p *Parser) parseVarOrDestructuring() ast.Statement {
	isConst := p.check(token.CONST)
	tok := p.advance() // 'let' or 'const'

	switch {
	case p.check(token.LBRACKET):
		return p.finishDestructuring(tok, "array")
	case p.check(token.LBRACE):
		return p.finishDestructuring(tok, "object")
	case p.check(token.LPAREN):
		return p.finishDestructuring(tok, "tuple")
	}

	name := p.expect(token.IDENT, "a variable name")
	decl := &ast.VarDeclStmt{Tok: tok, Name: name.Lexeme, IsConst: isConst}

	if p.match(token.COLON) {
		p.parseVarType(decl)
	}
	if p.match(token.ASSIGN) {
		decl.Initializer = p.parseExpression()
	}
	p.expect(token.SEMI, "';'")
	return decl
}

// parseVarType reads the type annotation after `:`, recording array /
// nullable / union shape on the VarDeclStmt per the AST data model.
func (p *Parser) parseVarType(decl *ast.VarDeclStmt) {
	name := p.expect(token.IDENT, "a type name").Lexeme
	if p.match(token.LBRACKET) {
		decl.IsArrayType = true
		if !p.check(token.RBRACKET) {
			decl.ArraySize = p.parseExpression()
		}
		p.expect(token.RBRACKET, "']'")
	}
	if p.match(token.QUESTION) {
		decl.IsNullable = true
	}
	decl.TypeName = name
	for p.match(token.PIPE) {
		alt := p.expect(token.IDENT, "a union member type").Lexeme
		decl.UnionTypes = append(decl.UnionTypes, alt)
	}
	if len(decl.UnionTypes) > 0 {
		decl.UnionTypes = append([]string{decl.TypeName}, decl.UnionTypes...)
	}
}

func (p *Parser) finishDestructuring(tok token.Token, kind string) ast.Statement {
	stmt := &ast.DestructuringStmt{Tok: tok, Kind: kind}
	closeTok := token.RBRACKET
	if kind == "object" {
		closeTok = token.RBRACE
	} else if kind == "tuple" {
		closeTok = token.RPAREN
	}
	p.advance() // opening delimiter
	if !p.check(closeTok) {
		for {
			name := p.expect(token.IDENT, "a destructuring target")
			stmt.Targets = append(stmt.Targets, name.Lexeme)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.expect(closeTok, "closing delimiter")
	p.expect(token.ASSIGN, "'='")
	stmt.Source = p.parseExpression()
	p.expect(token.SEMI, "';'")
	return stmt
}

// parseQuantumVarDecl reads `quantum x = [s1, s2, ...];`, optionally with
// `weights [w1, w2, ...]` before the semicolon.
// Invariant (v): Weights, when present, must match len(States).
func (p *Parser) parseQuantumVarDecl() ast.Statement {
	tok := p.advance() // 'quantum'
	name := p.expect(token.IDENT, "a quantum variable name")
	decl := &ast.QuantumVarDeclStmt{Tok: tok, Name: name.Lexeme}
	p.expect(token.ASSIGN, "'='")
	p.expect(token.LBRACKET, "'['")
	if !p.check(token.RBRACKET) {
		for {
			decl.States = append(decl.States, p.parseExpression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.expect(token.RBRACKET, "']'")
	if p.check(token.IDENT) && p.peek().Lexeme == "weights" {
		p.advance()
		p.expect(token.LBRACKET, "'['")
		if !p.check(token.RBRACKET) {
			for {
				decl.Weights = append(decl.Weights, p.parseExpression())
				if !p.match(token.COMMA) {
					break
				}
			}
		}
		p.expect(token.RBRACKET, "']'")
		if len(decl.Weights) != len(decl.States) {
			p.errorAt(decl.Tok, diagnostics.CodeSynUnexpected,
				fmt.Sprintf("%d weights (one per state)", len(decl.States)),
				fmt.Sprintf("%d weights", len(decl.Weights)))
		}
	}
	p.expect(token.SEMI, "';'")
	return decl
}

func (p *Parser) parseIf() ast.Statement {
	tok := p.advance()
	p.expect(token.LPAREN, "'('")
	cond := p.parseExpression()
	p.expect(token.RPAREN, "')'")
	then := p.parseBlock(false)
	stmt := &ast.IfStmt{Tok: tok, Cond: cond, Then: then}
	if p.match(token.ELSE) {
		if p.check(token.IF) {
			stmt.Else = p.parseIf()
		} else {
			stmt.Else = p.parseBlock(false)
		}
	}
	return stmt
}

func (p *Parser) parseWhile() ast.Statement {
	tok := p.advance()
	p.expect(token.LPAREN, "'('")
	cond := p.parseExpression()
	p.expect(token.RPAREN, "')'")
	body := p.parseBlock(false)
	return &ast.WhileStmt{Tok: tok, Cond: cond, Body: body}
}

func (p *Parser) parseDoWhile() ast.Statement {
	tok := p.advance()
	body := p.parseBlock(false)
	p.expect(token.WHILE, "'while'")
	p.expect(token.LPAREN, "'('")
	cond := p.parseExpression()
	p.expect(token.RPAREN, "')'")
	p.expect(token.SEMI, "';'")
	return &ast.DoWhileStmt{Tok: tok, Body: body, Cond: cond}
}

// parseForOrForIn disambiguates `for (init; cond; post) {}` from
// `for (x in iterable) {}`.
func (p *Parser) parseForOrForIn() ast.Statement {
	tok := p.advance()
	p.expect(token.LPAREN, "'('")

	if p.check(token.IDENT) && p.peekNext().Type == token.IN {
		name := p.advance()
		p.advance() // 'in'
		iterable := p.parseExpression()
		p.expect(token.RPAREN, "')'")
		body := p.parseBlock(false)
		return &ast.ForInStmt{Tok: tok, VarName: name.Lexeme, Iterable: iterable, Body: body}
	}

	var init ast.Statement
	if p.check(token.LET) || p.check(token.CONST) {
		init = p.parseVarOrDestructuring()
	} else if !p.check(token.SEMI) {
		init = &ast.ExprStmt{Tok: p.peek(), Expr: p.parseExpression()}
		p.expect(token.SEMI, "';'")
	} else {
		p.advance()
	}

	var cond ast.Expression
	if !p.check(token.SEMI) {
		cond = p.parseExpression()
	}
	p.expect(token.SEMI, "';'")

	var post ast.Statement
	if !p.check(token.RPAREN) {
		post = &ast.ExprStmt{Tok: p.peek(), Expr: p.parseExpression()}
	}
	p.expect(token.RPAREN, "')'")
	body := p.parseBlock(false)
	return &ast.ForStmt{Tok: tok, Init: init, Cond: cond, Post: post, Body: body}
}

// parseSwitchLikeMatch recognizes a statement-position `match (tag) {
// v1, v2 if guard => { ... } ... }` surface, lowering to SwitchStmt (spec's
// Statement family carries Switch separately from the match *expression*).
func (p *Parser) parseSwitchLikeMatch() ast.Statement {
	tok := p.advance()
	p.expect(token.LPAREN, "'('")
	tag := p.parseExpression()
	p.expect(token.RPAREN, "')'")
	p.expect(token.LBRACE, "'{'")
	stmt := &ast.SwitchStmt{Tok: tok, Tag: tag}
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		c := ast.SwitchCase{}
		for {
			c.Values = append(c.Values, p.parseExpression())
			if !p.match(token.COMMA) {
				break
			}
		}
		if p.match(token.IF) {
			c.Guard = p.parseExpression()
		}
		p.expect(token.FAT_ARROW, "'=>'")
		c.Body = p.parseBlock(false)
		stmt.Cases = append(stmt.Cases, c)
	}
	p.expect(token.RBRACE, "'}'")
	return stmt
}

func (p *Parser) parseTryCatch() ast.Statement {
	tok := p.advance()
	tryBlock := p.parseBlock(false)
	stmt := &ast.TryCatchStmt{Tok: tok, Try: tryBlock}
	if p.match(token.CATCH) {
		p.expect(token.LPAREN, "'('")
		name := p.expect(token.IDENT, "a catch variable")
		stmt.CatchVar = name.Lexeme
		p.expect(token.RPAREN, "')'")
		stmt.Catch = p.parseBlock(false)
	}
	if p.match(token.FINALLY) {
		stmt.Finally = p.parseBlock(false)
	}
	return stmt
}

// parseAssignmentOrExprStmt disambiguates a plain expression statement from
// an assignment (including compound-assignment operators).
func (p *Parser) parseAssignmentOrExprStmt() ast.Statement {
	tok := p.peek()
	expr := p.parseExpression()
	if op, ok := assignOp(p.peek().Type); ok {
		opTok := p.advance()
		value := p.parseExpression()
		p.expect(token.SEMI, "';'")
		return &ast.AssignStmt{Tok: opTok, Target: expr, Op: op, Value: value}
	}
	p.expect(token.SEMI, "';'")
	return &ast.ExprStmt{Tok: tok, Expr: expr}
}

func assignOp(t token.Type) (string, bool) {
	switch t {
	case token.ASSIGN:
		return "=", true
	case token.PLUS_ASSIGN:
		return "+=", true
	case token.MINUS_ASSIGN:
		return "-=", true
	case token.STAR_ASSIGN:
		return "*=", true
	case token.SLASH_ASSIGN:
		return "/=", true
	case token.PERCENT_ASSIGN:
		return "%=", true
	case token.POW_ASSIGN:
		return "**=", true
	case token.NULLISH_ASSIGN:
		return "??=", true
	case token.AND_ASSIGN:
		return "&&=", true
	case token.OR_ASSIGN:
		return "||=", true
	}
	return "", false
}
