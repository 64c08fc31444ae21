// Package parser implements the hand-written recursive-descent parser:
// token stream in, typed AST and diagnostics out (spec §4.2). Grounded on
// original_source/src/Parser.cpp's single-lookahead, panicMode/synchronize
// recovery strategy, reworked into Go idiom (diagnostics collected into a
// slice rather than thrown).
package parser

import (
	"strconv"

	"github.com/lppc/transpiler/internal/ast"
	"github.com/lppc/transpiler/internal/config"
	"github.com/lppc/transpiler/internal/diagnostics"
	"github.com/lppc/transpiler/internal/notation"
	"github.com/lppc/transpiler/internal/token"
)

// Parser consumes a fixed token slice produced by internal/lexer.
type Parser struct {
	tokens    []token.Token
	pos       int
	file      string
	panicMode bool
	diags     []*diagnostics.Diagnostic
	notation  *notation.Context

	lambdaCounter int // number of lambda expressions parsed so far
}

// New creates a Parser over a complete token stream (must end in EOF).
func New(tokens []token.Token, file string) *Parser {
	return &Parser{tokens: tokens, file: file, notation: notation.NewContext()}
}

// ParseProgram parses the whole token stream, returning the Program built
// so far even when diagnostics were raised (Testable Property: partial
// programs still transpile past recoverable syntax errors).
func (p *Parser) ParseProgram() (*ast.Program, []*diagnostics.Diagnostic) {
	prog := &ast.Program{Tok: p.peek()}

	paradigm, ok := p.parseParadigmPragma()
	if !ok {
		paradigm = "hybrid"
	}
	prog.Paradigm = paradigm

	for !p.isAtEnd() {
		p.panicMode = false
		switch {
		case p.check(token.IMPORT):
			prog.Imports = append(prog.Imports, p.parseImport())
		case p.check(token.EXPORT):
			exp := p.parseExport()
			prog.Exports = append(prog.Exports, exp)
			registerExported(prog, exp.Decl)
		case p.check(token.FN) || p.check(token.ASYNC):
			prog.Functions = append(prog.Functions, p.parseFunction())
		case p.check(token.AUTOPATTERN):
			prog.Classes = append(prog.Classes, p.parseAutoPattern())
		case p.check(token.AT) || p.check(token.CLASS):
			prog.Classes = append(prog.Classes, p.parseClass())
		case p.check(token.INTERFACE):
			prog.Interfaces = append(prog.Interfaces, p.parseInterface())
		case p.check(token.TYPE):
			prog.Types = append(prog.Types, p.parseTypeDecl())
		case p.check(token.ENUM):
			prog.Enums = append(prog.Enums, p.parseEnum())
		case p.check(token.PRAGMA):
			p.applyPragma(p.advance())
		default:
			p.errorAt(p.peek(), diagnostics.CodeSynUnexpected, "a top-level declaration", p.peek().Lexeme)
			p.advance()
			p.synchronize()
		}
	}
	return prog, p.diags
}

// registerExported files an exported declaration into the Program bucket the
// analyzer and transpiler read from; Exports keeps the export marker itself.
func registerExported(prog *ast.Program, decl ast.Statement) {
	switch d := decl.(type) {
	case *ast.FunctionDecl:
		prog.Functions = append(prog.Functions, d)
	case *ast.ClassDecl:
		prog.Classes = append(prog.Classes, d)
	case *ast.InterfaceDecl:
		prog.Interfaces = append(prog.Interfaces, d)
	case *ast.TypeDecl:
		prog.Types = append(prog.Types, d)
	case *ast.EnumDecl:
		prog.Enums = append(prog.Enums, d)
	}
}

func (p *Parser) parseParadigmPragma() (string, bool) {
	if !p.check(token.PRAGMA) {
		p.errorAt(p.peek(), diagnostics.CodeParadigmRequired)
		return "", false
	}
	tok := p.advance()
	mode := extractParadigmMode(tok.Lexeme)
	if mode == "" {
		p.errorAt(tok, diagnostics.CodeParadigmInvalid, tok.Lexeme)
		return "", false
	}
	if !isKnownParadigm(mode) {
		p.errorAt(tok, diagnostics.CodeParadigmInvalid, mode)
		return "", false
	}
	return mode, true
}

func isKnownParadigm(mode string) bool {
	switch mode {
	case "hybrid", "functional", "imperative", "oop", "golfed":
		return true
	}
	return false
}

// extractParadigmMode pulls the mode word out of a `#pragma paradigm <mode>`
// pragma lexeme; returns "" if the pragma isn't a paradigm declaration.
func extractParadigmMode(lexeme string) string {
	const marker = "paradigm"
	idx := indexOf(lexeme, marker)
	if idx < 0 {
		return ""
	}
	i := idx + len(marker)
	for i < len(lexeme) && isSpace(lexeme[i]) {
		i++
	}
	start := i
	for i < len(lexeme) && isAlnum(lexeme[i]) {
		i++
	}
	return lexeme[start:i]
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' }
func isAlnum(b byte) bool {
	return b == '_' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}

// ---- token-stream primitives -------------------------------------------------

func (p *Parser) peek() token.Token     { return p.tokens[p.pos] }
func (p *Parser) peekNext() token.Token {
	if p.pos+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+1]
}
func (p *Parser) previous() token.Token { return p.tokens[p.pos-1] }

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.pos++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool { return p.peek().Type == token.EOF }

func (p *Parser) check(t token.Type) bool {
	if p.isAtEnd() {
		return t == token.EOF
	}
	return p.peek().Type == t
}

func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

// expect consumes a token of the given type or records a diagnostic and
// synthesizes a `<missing>` token so parsing can continue (spec §4.2).
func (p *Parser) expect(t token.Type, want string) token.Token {
	if p.check(t) {
		return p.advance()
	}
	p.errorAt(p.peek(), diagnostics.CodeSynUnexpected, want, p.peek().Lexeme)
	return token.Token{Type: t, Lexeme: "<missing>", Line: p.peek().Line, Column: p.peek().Column}
}

func (p *Parser) errorAt(tok token.Token, code diagnostics.Code, args ...interface{}) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	d := diagnostics.New(code, diagnostics.Error, diagnostics.PhaseParser, tok, args...)
	d.WithFile(p.file)
	p.diags = append(p.diags, d)
}

// synchronize skips to the next statement boundary: after a ';' or at one
// of the declaration keywords, clearing panicMode so later errors report.
func (p *Parser) synchronize() {
	for !p.isAtEnd() {
		if p.previous().Type == token.SEMI {
			p.panicMode = false
			return
		}
		switch p.peek().Type {
		case token.CLASS, token.FN, token.LET, token.CONST, token.IF, token.WHILE,
			token.FOR, token.RETURN, token.IMPORT, token.EXPORT, token.TYPE,
			token.ENUM, token.INTERFACE:
			p.panicMode = false
			return
		}
		p.advance()
	}
	p.panicMode = false
}

// applyPragma recognizes `#pragma notation <math|linear|pop|custom name>`
// lines, which push/pop tables on the notation stack, and `#pragma
// operator <symbol> <precedence> <left|right|none>` lines, which override
// an operator's fixity on the active custom table (spec §4.3: custom mode
// permits user overrides; the core flag clears on override). Overrides
// outside a custom table and unrecognized pragma lines are ignored —
// pragmas beyond the paradigm declaration are not part of the stable
// diagnostic surface.
func (p *Parser) applyPragma(tok token.Token) {
	if rest, ok := pragmaRest(tok.Lexeme, "notation"); ok {
		switch {
		case rest == "linear":
			p.notation.PushLinear()
		case rest == "math":
			p.notation.PushMath()
		case rest == "pop":
			p.notation.Pop()
		case len(rest) > len("custom") && rest[:6] == "custom":
			name := rest[6:]
			for len(name) > 0 && isSpace(name[0]) {
				name = name[1:]
			}
			p.notation.PushCustom(name)
		}
		return
	}
	if rest, ok := pragmaRest(tok.Lexeme, "operator"); ok {
		fields := splitFields(rest)
		if len(fields) < 3 {
			return
		}
		prec, err := strconv.Atoi(fields[1])
		if err != nil {
			return
		}
		table := p.notation.Current()
		if len(table.Mode()) < 6 || table.Mode()[:6] != "custom" {
			return
		}
		assoc := config.AssocLeft
		switch fields[2] {
		case "right":
			assoc = config.AssocRight
		case "none":
			assoc = config.AssocNone
		}
		table.Override(fields[0], prec, assoc)
	}
}

// pragmaRest returns the text after `#pragma <marker>` with leading spaces
// trimmed, and whether the marker was present at all.
func pragmaRest(lexeme, marker string) (string, bool) {
	idx := indexOf(lexeme, marker)
	if idx < 0 {
		return "", false
	}
	i := idx + len(marker)
	for i < len(lexeme) && isSpace(lexeme[i]) {
		i++
	}
	return lexeme[i:], true
}

func splitFields(s string) []string {
	var fields []string
	i := 0
	for i < len(s) {
		for i < len(s) && isSpace(s[i]) {
			i++
		}
		start := i
		for i < len(s) && !isSpace(s[i]) {
			i++
		}
		if i > start {
			fields = append(fields, s[start:i])
		}
	}
	return fields
}

func syntheticToken(t token.Type, lexeme string, pos token.Token) token.Token {
	return token.Token{Type: t, Lexeme: lexeme, Line: pos.Line, Column: pos.Column}
}
