package parser

import "github.com/lppc/transpiler/internal/ast"

func (p *Parser) parseImport() *ast.ImportDecl {
	tok := p.advance() // 'import'
	decl := &ast.ImportDecl{Tok: tok}

	if p.match(token_STAR()) {
		decl.ImportAll = true
	} else {
		p.expect(lbrace(), "'{'")
		if !p.check(rbrace()) {
			for {
				name := p.expect(identType(), "an import name")
				decl.Names = append(decl.Names, name.Lexeme)
				if !p.match(comma()) {
					break
				}
			}
		}
		p.expect(rbrace(), "'}'")
	}
	p.expect(fromKw(), "'from'")
	mod := p.expect(stringType(), "a module path string")
	decl.Module = mod.Value()
	p.expect(semi(), "';'")
	return decl
}

func (p *Parser) parseExport() *ast.ExportDecl {
	tok := p.advance() // 'export'
	var inner ast.Statement
	switch {
	case p.check(fnKw()) || p.check(asyncKw()):
		inner = p.parseFunction()
	case p.check(classKw()):
		inner = p.parseClass()
	default:
		inner = p.parseStatement()
	}
	return &ast.ExportDecl{Tok: tok, Decl: inner}
}

func (p *Parser) parseFunction() *ast.FunctionDecl {
	isAsync := p.match(asyncKw())
	tok := p.expect(fnKw(), "'fn'")
	name := p.expect(identType(), "a function name")

	var generics []string
	if p.match(lt()) {
		for {
			g := p.expect(identType(), "a generic parameter")
			generics = append(generics, g.Lexeme)
			if !p.match(comma()) {
				break
			}
		}
		p.expect(gt(), "'>'")
	}

	p.expect(lparen(), "'('")
	var params []ast.Param
	var rest *ast.Param
	if !p.check(rparen()) {
		for {
			if p.match(spread()) {
				n := p.expect(identType(), "a parameter name")
				rest = &ast.Param{Name: n.Lexeme}
				break
			}
			n := p.expect(identType(), "a parameter name")
			param := ast.Param{Name: n.Lexeme}
			if p.match(colon()) {
				param.TypeName = p.parseTypeName()
			}
			if p.match(assign()) {
				param.Default = p.parseExpression()
			}
			params = append(params, param)
			if !p.match(comma()) {
				break
			}
		}
	}
	p.expect(rparen(), "')'")
	p.expect(arrow(), "'->'")
	retType := p.parseTypeName()

	isGen := p.peekYieldInBody()
	body := p.parseBlock(true)

	return &ast.FunctionDecl{
		Tok: tok, Name: name.Lexeme, Params: params, ReturnType: retType,
		Body: body, IsAsync: isAsync, IsGenerator: isGen, GenericParams: generics, RestParam: rest,
	}
}

// peekYieldInBody is a cheap syntactic hint: scan forward to the matching
// closing brace for a top-level `yield` keyword, without consuming tokens.
func (p *Parser) peekYieldInBody() bool {
	if !p.check(lbrace()) {
		return false
	}
	depth := 0
	for i := p.pos; i < len(p.tokens); i++ {
		switch p.tokens[i].Type {
		case lbrace():
			depth++
		case rbrace():
			depth--
			if depth == 0 {
				return false
			}
		case yieldKw():
			return true
		}
	}
	return false
}

func (p *Parser) parseClass() *ast.ClassDecl {
	for p.match(at()) { // skip decorator markers, if any precede 'class'
	}
	tok := p.expect(classKw(), "'class'")
	name := p.expect(identType(), "a class name")
	decl := &ast.ClassDecl{Tok: tok, Name: name.Lexeme}
	if p.match(colon()) {
		base := p.expect(identType(), "a base class name")
		decl.Base = base.Lexeme
	}
	p.expect(lbrace(), "'{'")
	for !p.check(rbrace()) && !p.isAtEnd() {
		switch {
		case p.check(fnKw()) || p.check(asyncKw()):
			m := p.parseFunction()
			if m.Name == decl.Name {
				decl.Constructor = m
			} else {
				decl.Methods = append(decl.Methods, m)
			}
		default:
			name := p.expect(identType(), "a property name")
			prop := ast.Param{Name: name.Lexeme}
			if p.match(colon()) {
				prop.TypeName = p.parseTypeName()
			}
			if p.match(assign()) {
				prop.Default = p.parseExpression()
			}
			p.expect(semi(), "';'")
			decl.Properties = append(decl.Properties, prop)
		}
	}
	p.expect(rbrace(), "'}'")
	return decl
}

// parseInterface parses `interface Name { method(p: T, ...) -> R; ... }`,
// keeping each method's name, parameter types, and return type so the
// transpiler can lower it to a full pure-virtual method declaration (spec
// §4.6: interfaces lower to an abstract class with pure-virtual methods),
// grounded on original_source/src/Parser.cpp::interfaceDeclaration, which
// assembles the same three parts into one signature string; here they are
// kept separate and joined at lowering time so type names still pass
// through the transpiler's normal type-name lowering.
func (p *Parser) parseInterface() *ast.InterfaceDecl {
	tok := p.expect(interfaceKw(), "'interface'")
	name := p.expect(identType(), "an interface name")
	decl := &ast.InterfaceDecl{Tok: tok, Name: name.Lexeme}
	p.expect(lbrace(), "'{'")
	for !p.check(rbrace()) && !p.isAtEnd() {
		mname := p.expect(identType(), "a method name")
		p.expect(lparen(), "'('")
		var paramTypes []string
		if !p.check(rparen()) {
			for {
				p.expect(identType(), "a parameter name")
				p.expect(colon(), "':'")
				paramTypes = append(paramTypes, p.parseTypeName())
				if !p.match(comma()) {
					break
				}
			}
		}
		p.expect(rparen(), "')'")
		retType := "void"
		if p.match(arrow()) {
			retType = p.parseTypeName()
		}
		p.expect(semi(), "';'")
		decl.Methods = append(decl.Methods, ast.InterfaceMethod{
			Name: mname.Lexeme, ParamTypes: paramTypes, ReturnType: retType,
		})
	}
	p.expect(rbrace(), "'}'")
	return decl
}

func (p *Parser) parseTypeDecl() *ast.TypeDecl {
	tok := p.expect(typeKw(), "'type'")
	name := p.expect(identType(), "a type name")
	decl := &ast.TypeDecl{Tok: tok, Name: name.Lexeme}
	if p.match(lt()) {
		for {
			g := p.expect(identType(), "a type parameter")
			decl.TypeParams = append(decl.TypeParams, g.Lexeme)
			if !p.match(comma()) {
				break
			}
		}
		p.expect(gt(), "'>'")
	}
	p.expect(assign(), "'='")
	for {
		ctor := p.expect(identType(), "a variant constructor")
		variant := ast.TypeVariant{Ctor: ctor.Lexeme}
		if p.match(lparen()) {
			if !p.check(rparen()) {
				for {
					f := p.parseTypeName()
					variant.Fields = append(variant.Fields, f)
					if !p.match(comma()) {
						break
					}
				}
			}
			p.expect(rparen(), "')'")
		}
		decl.Variants = append(decl.Variants, variant)
		if !p.match(pipe()) {
			break
		}
	}
	p.expect(semi(), "';'")
	return decl
}

func (p *Parser) parseEnum() *ast.EnumDecl {
	tok := p.expect(enumKw(), "'enum'")
	name := p.expect(identType(), "an enum name")
	decl := &ast.EnumDecl{Tok: tok, Name: name.Lexeme}
	p.expect(lbrace(), "'{'")
	if !p.check(rbrace()) {
		for {
			v := p.expect(identType(), "an enum value")
			decl.Values = append(decl.Values, v.Lexeme)
			if !p.match(comma()) {
				break
			}
		}
	}
	p.expect(rbrace(), "'}'")
	return decl
}

// parseTypeName reads a type annotation: an identifier, optionally an array
// suffix `[size]`, a nullable suffix `?`, or a union `A | B | C`.
func (p *Parser) parseTypeName() string {
	name := p.expect(identType(), "a type name").Lexeme
	if p.match(lbracket()) {
		if !p.check(rbracket()) {
			p.advance() // size expression token(s) collapsed to a literal in common usage
		}
		p.expect(rbracket(), "']'")
		name += "[]"
	}
	if p.match(question()) {
		name += "?"
	}
	for p.match(pipe()) {
		alt := p.expect(identType(), "a union member type").Lexeme
		name += "|" + alt
	}
	return name
}
