package parser

import (
	"fmt"

	"github.com/lppc/transpiler/internal/ast"
	"github.com/lppc/transpiler/internal/config"
	"github.com/lppc/transpiler/internal/diagnostics"
	"github.com/lppc/transpiler/internal/token"
)

// parseExpression implements `expression := ternary_if | pipeline` (spec
// §4.2 grammar). A lone '?' not immediately followed by '|' begins a
// ternary; '?|...|' is the filter sugar handled lower down in
// parseSymbolicOps, per the disambiguation note.
func (p *Parser) parseExpression() ast.Expression {
	left := p.parsePipeline()
	if p.check(token.QUESTION) && p.peekNext().Type != token.PIPE {
		tok := p.advance()
		then := p.parseExpression()
		p.expect(token.COLON, "':'")
		els := p.parseExpression()
		return &ast.TernaryExpr{Tok: tok, Cond: left, Then: then, Else: els}
	}
	return left
}

// parsePipeline implements `pipeline := nullish ('|>' nullish)*`.
func (p *Parser) parsePipeline() ast.Expression {
	left := p.parseNullish()
	var stages []ast.Expression
	var tok token.Token
	for p.check(token.PIPE_GT) {
		tok = p.advance()
		stages = append(stages, p.parseNullish())
	}
	if len(stages) == 0 {
		return left
	}
	return &ast.PipelineExpr{Tok: tok, Initial: left, Stages: stages}
}

// parseNullish implements `nullish := logical_or ('??' logical_or)*`; its
// operands are the table-driven binary climb below.
func (p *Parser) parseNullish() ast.Expression {
	left := p.arithLogicOperand()
	for p.check(token.NULLISH) {
		tok := p.advance()
		right := p.arithLogicOperand()
		left = &ast.BinaryExpr{Tok: tok, Op: "??", Left: left, Right: right}
	}
	return left
}

// looseBinaryOps and tightBinaryOps split the climbable binary operators
// around the symbolic/range family, preserving the grammar's sandwich:
// logical, equality, and comparison operators bind looser than `@`/`..`
// and friends, additive and multiplicative operators bind tighter. The
// structural operators (`|>`, `??`, ranges, the symbolic family, `as`)
// keep their dedicated productions and never climb.
var looseBinaryOps = map[token.Type]bool{
	token.LOGIC_OR: true, token.OR_KW: true,
	token.LOGIC_AND: true, token.AND_KW: true,
	token.EQ: true, token.NOT_EQ: true, token.STRICT_EQ: true, token.STRICT_NOT_EQ: true,
	token.LT: true, token.LTE: true, token.GT: true, token.GTE: true,
}

var tightBinaryOps = map[token.Type]bool{
	token.PLUS: true, token.MINUS: true,
	token.STAR: true, token.SLASH: true, token.PERCENT: true,
}

func (p *Parser) arithLogicOperand() ast.Expression {
	return p.climbBinary(looseBinaryOps, 0, p.parseSymbolicOps)
}

// climbBinary is the Pratt-style precedence climber of spec §4.3: every
// operator parses with the {precedence, assoc} the active notation table
// reports, so linear mode's flattened table and custom-mode overrides
// shape the resulting tree rather than just flipping a mode flag.
func (p *Parser) climbBinary(ops map[token.Type]bool, minPrec int, operand func() ast.Expression) ast.Expression {
	left := operand()
	for {
		tok := p.peek()
		if !ops[tok.Type] {
			return left
		}
		f, ok := p.notation.Current().Lookup(tok)
		if !ok || f.Precedence < minPrec {
			return left
		}
		p.advance()
		next := f.Precedence + 1
		if f.Assoc == config.AssocRight {
			next = f.Precedence
		}
		right := p.climbBinary(ops, next, operand)
		left = &ast.BinaryExpr{Tok: tok, Op: opSymbol(tok), Left: left, Right: right}
	}
}

// parseSymbolicOps implements the `symbolic_ops` production over `term`
// operands (spec §4.2 grammar).
func (p *Parser) parseSymbolicOps() ast.Expression {
	return p.parseRangeAndSymbolic(p.parseTerm)
}

// parseRangeAndSymbolic folds range (`..`, `~`) and the symbolic operator
// family (`!!`, `!!<`, `!!>`, `~>`, `@`, `?|...|`, `\`) over the `term`
// operand level.
func (p *Parser) parseRangeAndSymbolic(operand func() ast.Expression) ast.Expression {
	left := operand()
	for {
		switch {
		case p.check(token.DOT_DOT) || p.check(token.TILDE):
			p.advance()
			end := operand()
			var step ast.Expression
			if p.check(token.DOT_DOT) || p.check(token.TILDE) {
				p.advance()
				step = operand()
			}
			left = &ast.RangeExpr{Tok: left.GetToken(), Start: left, End: end, Step: step}
		case p.check(token.BANG_BANG):
			tok := p.advance()
			bound := operand()
			p.expect(token.DOLLAR, "'$'")
			step := operand()
			left = &ast.IterateStepExpr{Tok: tok, Start: left, Bound: bound, Step: step}
		case p.check(token.QUANTUM_LT):
			tok := p.advance()
			cond := operand()
			left = &ast.IterateWhileExpr{Tok: tok, Start: left, Cond: cond}
		case p.check(token.QUANTUM_GT):
			tok := p.advance()
			fn := operand()
			left = &ast.AutoIterateExpr{Tok: tok, Start: left, Fn: fn}
		case p.check(token.TILDE_GT):
			tok := p.advance()
			bound := operand()
			p.expect(token.BANG_BANG, "'!!'")
			step := operand()
			left = &ast.IterateStepExpr{Tok: tok, Start: left, Bound: bound, Step: step}
		case p.check(token.AT):
			tok := p.advance()
			fn := operand()
			left = &ast.MapExpr{Tok: tok, List: left, Fn: fn}
		case p.check(token.QUESTION) && p.peekNext().Type == token.PIPE:
			tok := p.advance()
			p.expect(token.PIPE, "'|'")
			param := p.expect(token.IDENT, "a filter parameter name")
			p.expect(token.PIPE, "'|'")
			pred := p.parseExpression()
			left = &ast.FilterExpr{Tok: tok, List: left, Predicate: &ast.LambdaExpr{
				Tok: tok, Params: []ast.Param{{Name: param.Lexeme}}, Body: pred,
			}}
		case p.check(token.BACKSLASH):
			tok := p.advance()
			fn := operand()
			left = &ast.ReduceExpr{Tok: tok, List: left, Fn: fn}
		default:
			return left
		}
	}
}

func (p *Parser) parseTerm() ast.Expression {
	return p.climbBinary(tightBinaryOps, 0, p.parseCast)
}

func (p *Parser) parseCast() ast.Expression {
	left := p.parseUnary()
	for {
		switch {
		case p.check(token.AS):
			p.advance()
			target := p.parseTypeName()
			left = &ast.CastExpr{Tok: left.GetToken(), Expr: left, TargetType: target}
		case p.check(token.INSTANCEOF):
			tok := p.advance()
			target := p.parseTypeName()
			left = &ast.InstanceOfExpr{Tok: tok, Expr: left, TargetType: target}
		default:
			return left
		}
	}
}

func (p *Parser) parseUnary() ast.Expression {
	switch {
	case p.check(token.AWAIT):
		tok := p.advance()
		return &ast.AwaitExpr{Tok: tok, Expr: p.parseUnary()}
	case p.check(token.THROW):
		tok := p.advance()
		return &ast.ThrowExpr{Tok: tok, Expr: p.parseUnary()}
	case p.check(token.YIELD):
		tok := p.advance()
		var val ast.Expression
		if !p.check(token.SEMI) && !p.check(token.RPAREN) {
			val = p.parseUnary()
		}
		return &ast.YieldExpr{Tok: tok, Expr: val}
	case p.check(token.TYPEOF):
		tok := p.advance()
		return &ast.TypeOfExpr{Tok: tok, Expr: p.parseUnary()}
	case p.check(token.INC), p.check(token.DEC), p.check(token.BANG), p.check(token.MINUS):
		tok := p.advance()
		return &ast.UnaryExpr{Tok: tok, Op: opSymbol(tok), Operand: p.parseUnary()}
	}
	return p.parseCall()
}

// parseCall implements the `call` production's postfix chain: member
// access (`.`, `?.`), indexing, the speculative generic-call arm (type
// arguments are parsed then dropped per invariant iii), plain calls, and
// postfix `++`/`--`. A pure dot-chain of three or more bare identifiers
// with no intervening call or index folds into a CompositionExpr — two
// names stays ordinary member access, since that is overwhelmingly the
// common case.
func (p *Parser) parseCall() ast.Expression {
	expr := p.parsePrimary()
	dotNames := identChainNames(expr)

	for {
		switch {
		case p.check(token.DOT):
			tok := p.advance()
			member := p.expectMemberName()
			if (member.Type == token.OBSERVE || member.Type == token.ENTANGLE) && p.check(token.LPAREN) {
				p.advance()
				args := p.parseArgs()
				p.expect(token.RPAREN, "')'")
				expr = &ast.QuantumMethodCallExpr{Tok: tok, VarRef: expr, Method: member.Lexeme, Args: args}
				dotNames = nil
				continue
			}
			expr = &ast.IndexExpr{Tok: tok, Object: expr, Member: member.Lexeme, IsDot: true}
			if dotNames != nil && member.Type == token.IDENT {
				dotNames = append(dotNames, member.Lexeme)
			} else {
				dotNames = nil
			}
		case p.check(token.OPT_CHAIN):
			tok := p.advance()
			member := p.expectMemberName()
			expr = &ast.IndexExpr{Tok: tok, Object: expr, Member: member.Lexeme, IsDot: true, IsOptional: true}
			dotNames = nil
		case p.check(token.LBRACKET):
			tok := p.advance()
			idx := p.parseExpression()
			p.expect(token.RBRACKET, "']'")
			expr = &ast.IndexExpr{Tok: tok, Object: expr, Index: idx}
			dotNames = nil
		case p.check(token.LT) && p.looksLikeGenericCall():
			expr = p.tryGenericCall(expr)
			dotNames = nil
		case p.check(token.LPAREN):
			tok := p.advance()
			args := p.parseArgs()
			p.expect(token.RPAREN, "')'")
			expr = &ast.CallExpr{Tok: tok, Callee: expr, Args: args}
			dotNames = nil
		case p.check(token.INC) || p.check(token.DEC):
			tok := p.advance()
			expr = &ast.PostfixExpr{Tok: tok, Op: opSymbol(tok), Operand: expr}
			dotNames = nil
		default:
			if len(dotNames) >= 3 {
				return foldComposition(expr, dotNames)
			}
			return expr
		}
	}
}

// expectMemberName consumes a member name after '.'/'?.'. Besides plain
// identifiers, contextual keywords (observe, entangle, get, set) are valid
// member names — `qv.observe()` must not trip over keyword promotion.
func (p *Parser) expectMemberName() token.Token {
	switch p.peek().Type {
	case token.IDENT, token.OBSERVE, token.ENTANGLE, token.GET, token.SET:
		return p.advance()
	}
	p.errorAt(p.peek(), diagnostics.CodeSynUnexpected, "a member name", p.peek().Lexeme)
	return token.Token{Type: token.IDENT, Lexeme: "<missing>", Line: p.peek().Line, Column: p.peek().Column}
}

// identChainNames seeds composition-folding bookkeeping when expr is a bare
// identifier; nil (meaning "not tracking") otherwise.
func identChainNames(expr ast.Expression) []string {
	if id, ok := expr.(*ast.Identifier); ok {
		return []string{id.Value}
	}
	return nil
}

func foldComposition(expr ast.Expression, names []string) ast.Expression {
	fns := make([]ast.Expression, len(names))
	for i, n := range names {
		fns[i] = &ast.Identifier{Tok: expr.GetToken(), Value: n}
	}
	return &ast.CompositionExpr{Tok: expr.GetToken(), Functions: fns}
}

// looksLikeGenericCall speculatively scans ahead from '<' for a plausible
// `<Type, Type...>(` type-argument list without consuming tokens.
func (p *Parser) looksLikeGenericCall() bool {
	depth := 0
	for i := p.pos; i < len(p.tokens); i++ {
		switch p.tokens[i].Type {
		case token.LT:
			depth++
		case token.GT:
			depth--
			if depth == 0 {
				return i+1 < len(p.tokens) && p.tokens[i+1].Type == token.LPAREN
			}
		case token.IDENT, token.COMMA, token.LBRACKET, token.RBRACKET, token.QUESTION, token.PIPE:
			continue
		default:
			return false
		}
	}
	return false
}

// tryGenericCall consumes `<T, U>(args)`, discarding the type arguments per
// invariant (iii) — the AST stores only the identifier-level call.
func (p *Parser) tryGenericCall(callee ast.Expression) ast.Expression {
	p.expect(token.LT, "'<'")
	for !p.check(token.GT) && !p.isAtEnd() {
		p.parseTypeName()
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.GT, "'>'")
	tok := p.expect(token.LPAREN, "'('")
	args := p.parseArgs()
	p.expect(token.RPAREN, "')'")
	return &ast.CallExpr{Tok: tok, Callee: callee, Args: args}
}

func (p *Parser) parseArgs() []ast.Expression {
	var args []ast.Expression
	if p.check(token.RPAREN) {
		return args
	}
	for {
		if p.check(token.SPREAD) {
			tok := p.advance()
			args = append(args, &ast.SpreadExpr{Tok: tok, Value: p.parseExpression()})
		} else {
			args = append(args, p.parseExpression())
		}
		if !p.match(token.COMMA) {
			break
		}
	}
	return args
}

// parsePrimary handles literals, identifiers, grouping/tuple/lambda
// disambiguation, arrays, objects, match, template literals, and the
// destructuring-let-like expression forms that can appear mid-expression.
func (p *Parser) parsePrimary() ast.Expression {
	tok := p.peek()
	switch tok.Type {
	case token.INT:
		return p.parseIntLiteral()
	case token.FLOAT:
		return p.parseFloatLiteral()
	case token.STRING:
		p.advance()
		return &ast.StringLiteral{Tok: tok, Value: tok.Value()}
	case token.CHAR:
		p.advance()
		r, _ := tok.Literal.(rune)
		return &ast.CharLiteral{Tok: tok, Value: r}
	case token.TRUE:
		p.advance()
		return &ast.BoolLiteral{Tok: tok, Value: true}
	case token.FALSE:
		p.advance()
		return &ast.BoolLiteral{Tok: tok, Value: false}
	case token.NIL:
		p.advance()
		return &ast.NilLiteral{Tok: tok}
	case token.BACKTICK:
		return p.parseTemplateLiteral()
	case token.MATCH:
		return p.parseMatch()
	case token.LBRACKET:
		return p.parseArrayOrComprehension()
	case token.LBRACE:
		return p.parseObjectLit()
	case token.LPAREN:
		return p.parseParenGroup()
	case token.IDENT, token.GET, token.SET:
		if p.peekNext().Type == token.FAT_ARROW {
			return p.parseSingleParamLambda()
		}
		p.advance()
		return &ast.Identifier{Tok: tok, Value: tok.Lexeme}
	case token.OBSERVE, token.ENTANGLE:
		p.advance()
		return &ast.Identifier{Tok: tok, Value: tok.Lexeme}
	case token.INVALID:
		p.advance()
		if len(tok.Lexeme) >= 12 && tok.Lexeme[:12] == "unterminated" {
			p.errorAt(tok, diagnostics.CodeLexUnterminated, tok.Lexeme[13:])
		} else {
			p.errorAt(tok, diagnostics.CodeLexInvalid, tok.Lexeme)
		}
		return &ast.Identifier{Tok: tok, Value: "<missing>"}
	}
	p.errorAt(tok, diagnostics.CodeSynUnexpected, "an expression", tok.Lexeme)
	p.advance()
	return &ast.Identifier{Tok: tok, Value: "<missing>"}
}

func (p *Parser) parseIntLiteral() ast.Expression {
	tok := p.advance()
	lex := tok.Lexeme
	if len(lex) > 0 && lex[len(lex)-1] == 'n' {
		return &ast.BigIntLiteral{Tok: tok, Digits: lex[:len(lex)-1]}
	}
	var v int64
	fmt.Sscanf(lex, "%d", &v)
	return &ast.IntegerLiteral{Tok: tok, Value: v}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	tok := p.advance()
	lex := tok.Lexeme
	if len(lex) > 0 && lex[len(lex)-1] == 'r' {
		body := lex[:len(lex)-1]
		return &ast.RationalLiteral{Tok: tok, Num: body, Denom: "1"}
	}
	var v float64
	fmt.Sscanf(lex, "%g", &v)
	return &ast.FloatLiteral{Tok: tok, Value: v}
}

// parseTemplateLiteral consumes the BACKTICK...parts...BACKTICK stream the
// lexer emits in template mode (spec §4.1).
func (p *Parser) parseTemplateLiteral() ast.Expression {
	tok := p.advance() // opening BACKTICK
	lit := &ast.TemplateLiteral{Tok: tok}
	for {
		if p.check(token.STRING) {
			lit.Parts = append(lit.Parts, p.advance().Value())
			continue
		}
		if p.check(token.LBRACE) { // "${" marker from the lexer
			p.advance()
			lit.Exprs = append(lit.Exprs, p.parseExpression())
			p.expect(token.RBRACE, "'}'")
			continue
		}
		if p.check(token.BACKTICK) {
			p.advance()
			break
		}
		break
	}
	for len(lit.Parts) <= len(lit.Exprs) {
		lit.Parts = append(lit.Parts, "")
	}
	return lit
}

func (p *Parser) parseMatch() ast.Expression {
	tok := p.advance()
	scrutinee := p.parseExpression()
	p.expect(token.LBRACE, "'{'")
	var cases []ast.MatchCase
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		pattern := p.parseExpression()
		var guard ast.Expression
		if p.match(token.IF) {
			guard = p.parseExpression()
		}
		p.expect(token.FAT_ARROW, "'=>'")
		body := p.parseExpression()
		cases = append(cases, ast.MatchCase{Pattern: pattern, Guard: guard, Body: body})
		p.match(token.COMMA)
	}
	p.expect(token.RBRACE, "'}'")
	return &ast.MatchExpr{Tok: tok, Scrutinee: scrutinee, Cases: cases}
}

// parseArrayOrComprehension disambiguates `[expr, expr, ...]` from
// `[expr for x in range if pred]`.
func (p *Parser) parseArrayOrComprehension() ast.Expression {
	tok := p.advance() // '['
	if p.check(token.RBRACKET) {
		p.advance()
		return &ast.ArrayLit{Tok: tok}
	}
	first := p.parseExpressionOrSpread()
	if p.check(token.FOR) {
		return p.finishListComprehension(tok, first)
	}
	lit := &ast.ArrayLit{Tok: tok, Elements: []ast.Expression{first}}
	for p.match(token.COMMA) {
		if p.check(token.RBRACKET) {
			break
		}
		lit.Elements = append(lit.Elements, p.parseExpressionOrSpread())
	}
	p.expect(token.RBRACKET, "']'")
	return lit
}

func (p *Parser) parseExpressionOrSpread() ast.Expression {
	if p.check(token.SPREAD) {
		tok := p.advance()
		return &ast.SpreadExpr{Tok: tok, Value: p.parseExpression()}
	}
	return p.parseExpression()
}

func (p *Parser) finishListComprehension(tok token.Token, expr ast.Expression) ast.Expression {
	p.expect(token.FOR, "'for'")
	v := p.expect(token.IDENT, "a comprehension variable")
	p.expect(token.IN, "'in'")
	rng := p.parseExpression()
	lc := &ast.ListComprehension{Tok: tok, Expr: expr, Var: v.Lexeme, Range: rng}
	for p.match(token.IF) {
		lc.Predicates = append(lc.Predicates, p.parseExpression())
	}
	p.expect(token.RBRACKET, "']'")
	return lc
}

func (p *Parser) parseObjectLit() ast.Expression {
	tok := p.advance() // '{'
	lit := &ast.ObjectLit{Tok: tok}
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		var key string
		if p.check(token.STRING) {
			key = p.advance().Value()
		} else {
			key = p.expect(token.IDENT, "a property key").Lexeme
		}
		p.expect(token.COLON, "':'")
		val := p.parseExpression()
		lit.Props = append(lit.Props, ast.ObjectProp{Key: key, Value: val})
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RBRACE, "'}'")
	return lit
}

// parseParenGroup disambiguates a parenthesized expression, a tuple
// (trailing comma forces tuple semantics), and a multi-param lambda
// `(a, b) => expr`, optionally with a return type `(a, b) -> T => expr`.
func (p *Parser) parseParenGroup() ast.Expression {
	tok := p.advance() // '('
	if p.check(token.RPAREN) {
		p.advance()
		return p.finishLambdaFromParenless(tok)
	}
	if p.looksLikeLambdaParams() {
		return p.parseLambdaFromParams(tok)
	}

	first := p.parseExpressionOrSpread()
	if p.check(token.COMMA) {
		elems := []ast.Expression{first}
		for p.match(token.COMMA) {
			if p.check(token.RPAREN) {
				break
			}
			elems = append(elems, p.parseExpressionOrSpread())
		}
		p.expect(token.RPAREN, "')'")
		return &ast.TupleLit{Tok: tok, Elements: elems}
	}
	p.expect(token.RPAREN, "')'")
	return first
}

// looksLikeLambdaParams scans ahead for `ident (: type)? (, ident (: type)?)* ) ->`.
func (p *Parser) looksLikeLambdaParams() bool {
	i := p.pos
	for {
		if i >= len(p.tokens) || p.tokens[i].Type != token.IDENT {
			return false
		}
		i++
		if i < len(p.tokens) && p.tokens[i].Type == token.COLON {
			i++
			if i >= len(p.tokens) || p.tokens[i].Type != token.IDENT {
				return false
			}
			i++
		}
		if i < len(p.tokens) && p.tokens[i].Type == token.COMMA {
			i++
			continue
		}
		break
	}
	if i >= len(p.tokens) || p.tokens[i].Type != token.RPAREN {
		return false
	}
	i++
	return i < len(p.tokens) && (p.tokens[i].Type == token.ARROW || p.tokens[i].Type == token.FAT_ARROW)
}

func (p *Parser) parseLambdaFromParams(tok token.Token) ast.Expression {
	var params []ast.Param
	for {
		name := p.expect(token.IDENT, "a parameter name")
		param := ast.Param{Name: name.Lexeme}
		if p.match(token.COLON) {
			param.TypeName = p.parseTypeName()
		}
		params = append(params, param)
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN, "')'")
	return p.finishLambda(tok, params, nil)
}

func (p *Parser) finishLambdaFromParenless(tok token.Token) ast.Expression {
	return p.finishLambda(tok, nil, nil)
}

func (p *Parser) finishLambda(tok token.Token, params []ast.Param, rest *ast.Param) ast.Expression {
	var retType string
	if p.match(token.ARROW) {
		retType = p.parseTypeName()
	}
	p.expect(token.FAT_ARROW, "'=>'")
	var body ast.Node
	if p.check(token.LBRACE) {
		body = p.parseBlock(true)
	} else {
		body = p.parseExpression()
	}
	p.lambdaCounter++
	return &ast.LambdaExpr{Tok: tok, Params: params, Body: body, ReturnType: retType, RestParam: rest}
}

// parseSingleParamLambda handles `x => expr` (no parens).
func (p *Parser) parseSingleParamLambda() ast.Expression {
	name := p.advance()
	tok := p.advance() // '=>'
	var body ast.Node
	if p.check(token.LBRACE) {
		body = p.parseBlock(true)
	} else {
		body = p.parseExpression()
	}
	p.lambdaCounter++
	return &ast.LambdaExpr{Tok: tok, Params: []ast.Param{{Name: name.Lexeme}}, Body: body}
}

func opSymbol(tok token.Token) string {
	if tok.Type == token.AND_KW {
		return "and"
	}
	if tok.Type == token.OR_KW {
		return "or"
	}
	return tok.Lexeme
}
