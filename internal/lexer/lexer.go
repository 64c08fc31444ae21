// Package lexer turns L source text into a token stream (spec §4.1).
// The scanner never aborts: invalid bytes and unterminated literals produce
// INVALID tokens and lexing continues, deferring diagnostics to later
// stages — grounded on the teacher's byte-position scanner idiom
// (internal/lexer/lexer.go: position/readPosition/ch/line/column).
package lexer

import (
	"strings"

	"github.com/lppc/transpiler/internal/token"
)

type frame struct {
	inTemplate bool
	braceDepth int // unmatched '{' seen inside this template's ${...} segment
}

// Lexer is a single-pass byte scanner with no backtracking.
type Lexer struct {
	input        string
	position     int // points to ch
	readPosition int // points after ch
	ch           byte
	line         int
	column       int
	templates    []frame
}

// New creates a Lexer over src.
func New(src string) *Lexer {
	l := &Lexer{input: src, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	if l.ch == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) peekCharAt(offset int) byte {
	idx := l.readPosition + offset - 1
	if idx >= len(l.input) || idx < 0 {
		return 0
	}
	return l.input[idx]
}

// Tokenize runs the scanner to completion and returns the full token list,
// always ending with exactly one EOF (Testable Property 1).
func (l *Lexer) Tokenize() []token.Token {
	var toks []token.Token
	for {
		t := l.NextToken()
		toks = append(toks, t)
		if t.Type == token.EOF {
			return toks
		}
	}
}

// NextToken scans and returns the next token.
func (l *Lexer) NextToken() token.Token {
	if len(l.templates) > 0 && l.templates[len(l.templates)-1].inTemplate {
		return l.readTemplatePart()
	}

	l.skipWhitespaceAndComments()

	if l.ch == 0 {
		return l.newToken(token.EOF, "", l.line, l.column)
	}

	// A '#' at column start begins a pragma; anywhere else it is invalid.
	if l.ch == '#' && l.column <= 1 {
		return l.readPragma()
	}

	line, col := l.line, l.column

	switch {
	case isLetter(l.ch):
		return l.readIdentifier(line, col)
	case isDigit(l.ch):
		return l.readNumber(line, col)
	case l.ch == '"':
		return l.readString(line, col)
	case l.ch == '\'':
		return l.readChar_(line, col)
	case l.ch == '`':
		l.templates = append(l.templates, frame{inTemplate: true})
		tok := l.newToken(token.BACKTICK, "`", line, col)
		l.readChar()
		return tok
	}

	return l.readOperator(line, col)
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			l.readChar()
			l.readChar()
			for {
				if l.ch == 0 {
					return // unterminated block comment: consume to EOF, don't crash
				}
				if l.ch == '*' && l.peekChar() == '/' {
					l.readChar()
					l.readChar()
					break
				}
				l.readChar()
			}
		default:
			return
		}
	}
}

func (l *Lexer) readPragma() token.Token {
	line, col := l.line, l.column
	start := l.position
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
	lexeme := l.input[start:l.position]
	return l.newToken(token.PRAGMA, lexeme, line, col)
}

func (l *Lexer) readIdentifier(line, col int) token.Token {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	lit := l.input[start:l.position]
	return l.newToken(token.LookupIdent(lit), lit, line, col)
}

func (l *Lexer) readNumber(line, col int) token.Token {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	isFloat := false
	if l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	lit := l.input[start:l.position]

	if !isFloat && l.ch == 'n' && !isLetter(l.peekChar()) {
		l.readChar()
		return l.newToken(token.INT, lit+"n", line, col)
	}
	if isFloat && l.ch == 'r' && !isLetter(l.peekChar()) {
		l.readChar()
		return l.newToken(token.FLOAT, lit+"r", line, col)
	}
	if isFloat {
		return l.newToken(token.FLOAT, lit, line, col)
	}
	return l.newToken(token.INT, lit, line, col)
}

func (l *Lexer) readString(line, col int) token.Token {
	l.readChar() // consume opening quote
	var sb strings.Builder
	for {
		if l.ch == 0 {
			return l.newToken(token.INVALID, "unterminated string literal", line, col)
		}
		if l.ch == '"' {
			l.readChar()
			return l.newTokenLit(token.STRING, sb.String(), sb.String(), line, col)
		}
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '\\':
				sb.WriteByte('\\')
			case '"':
				sb.WriteByte('"')
			case '0':
				sb.WriteByte(0)
			default:
				sb.WriteByte(l.ch)
			}
			l.readChar()
			continue
		}
		sb.WriteByte(l.ch)
		l.readChar()
	}
}

func (l *Lexer) readChar_(line, col int) token.Token {
	l.readChar() // consume opening quote
	if l.ch == 0 {
		return l.newToken(token.INVALID, "unterminated char literal", line, col)
	}
	r := rune(l.ch)
	if l.ch == '\\' {
		l.readChar()
		switch l.ch {
		case 'n':
			r = '\n'
		case 't':
			r = '\t'
		case 'r':
			r = '\r'
		case '\\':
			r = '\\'
		case '\'':
			r = '\''
		default:
			r = rune(l.ch)
		}
	}
	l.readChar()
	if l.ch != '\'' {
		return l.newToken(token.INVALID, "unterminated char literal", line, col)
	}
	l.readChar()
	return l.newTokenLit(token.CHAR, string(r), r, line, col)
}

// readTemplatePart scans the literal text between `...${` or between `}...`
// until the next interpolation or the closing backtick, and continues
// normal tokenization inside `${ }` (spec §4.1).
func (l *Lexer) readTemplatePart() token.Token {
	top := len(l.templates) - 1
	line, col := l.line, l.column
	var sb strings.Builder
	for {
		if l.ch == 0 {
			l.templates = l.templates[:top]
			return l.newToken(token.INVALID, "unterminated template literal", line, col)
		}
		if l.ch == '`' {
			if sb.Len() > 0 {
				return l.newTokenLit(token.STRING, sb.String(), sb.String(), line, col)
			}
			l.templates = l.templates[:top]
			tok := l.newToken(token.BACKTICK, "`", l.line, l.column)
			l.readChar()
			return tok
		}
		if l.ch == '$' && l.peekChar() == '{' {
			if sb.Len() > 0 {
				return l.newTokenLit(token.STRING, sb.String(), sb.String(), line, col)
			}
			l.readChar()
			l.readChar()
			l.templates[top].inTemplate = false
			l.templates[top].braceDepth = 0
			return l.newToken(token.LBRACE, "${", line, col)
		}
		if l.ch == '\\' {
			l.readChar()
		}
		sb.WriteByte(l.ch)
		l.readChar()
	}
}

func (l *Lexer) readOperator(line, col int) token.Token {
	three := string(l.ch) + string(l.peekCharAt(1)) + string(l.peekCharAt(2))
	if t, ok := threeCharOps[three]; ok {
		l.readChar()
		l.readChar()
		l.readChar()
		return l.newToken(t, three, line, col)
	}
	two := string(l.ch) + string(l.peekChar())
	if t, ok := twoCharOps[two]; ok {
		l.readChar()
		l.readChar()
		return l.newToken(t, two, line, col)
	}

	ch := l.ch
	if t, ok := oneCharOps[ch]; ok {
		// Track brace depth while inside a template interpolation so the
		// matching '}' pops back into template-literal mode.
		if len(l.templates) > 0 {
			top := len(l.templates) - 1
			if !l.templates[top].inTemplate {
				if ch == '{' {
					l.templates[top].braceDepth++
				} else if ch == '}' {
					if l.templates[top].braceDepth == 0 {
						l.templates[top].inTemplate = true
						l.readChar()
						return l.newToken(token.RBRACE, "}", line, col)
					}
					l.templates[top].braceDepth--
				}
			}
		}
		l.readChar()
		return l.newToken(t, string(ch), line, col)
	}

	l.readChar()
	return l.newToken(token.INVALID, string(ch), line, col)
}

var threeCharOps = map[string]token.Type{
	"===": token.STRICT_EQ,
	"!==": token.STRICT_NOT_EQ,
	">>>": token.USHIFT_RIGHT,
	"...": token.SPREAD,
	"!!<": token.QUANTUM_LT,
	"!!>": token.QUANTUM_GT,
	"??=": token.NULLISH_ASSIGN,
	"&&=": token.AND_ASSIGN,
	"||=": token.OR_ASSIGN,
	"**=": token.POW_ASSIGN,
}

var twoCharOps = map[string]token.Type{
	"==": token.EQ,
	"!=": token.NOT_EQ,
	"<=": token.LTE,
	">=": token.GTE,
	"->": token.ARROW,
	"=>": token.FAT_ARROW,
	"<-": token.LARROW,
	"<<": token.LSHIFT,
	">>": token.RSHIFT,
	"++": token.INC,
	"--": token.DEC,
	"+=": token.PLUS_ASSIGN,
	"-=": token.MINUS_ASSIGN,
	"*=": token.STAR_ASSIGN,
	"/=": token.SLASH_ASSIGN,
	"%=": token.PERCENT_ASSIGN,
	"**": token.POW,
	"&&": token.LOGIC_AND,
	"||": token.LOGIC_OR,
	"??": token.NULLISH,
	"?.": token.OPT_CHAIN,
	"|>": token.PIPE_GT,
	"~>": token.TILDE_GT,
	"!!": token.BANG_BANG,
	"..": token.DOT_DOT,
}

var oneCharOps = map[byte]token.Type{
	'+': token.PLUS, '-': token.MINUS, '*': token.STAR, '/': token.SLASH,
	'%': token.PERCENT, '=': token.ASSIGN, '!': token.BANG,
	'<': token.LT, '>': token.GT,
	'(': token.LPAREN, ')': token.RPAREN, '{': token.LBRACE, '}': token.RBRACE,
	'[': token.LBRACKET, ']': token.RBRACKET,
	',': token.COMMA, ';': token.SEMI, ':': token.COLON, '.': token.DOT,
	'?': token.QUESTION, '|': token.PIPE, '&': token.AMP, '~': token.TILDE,
	'@': token.AT, '\\': token.BACKSLASH, '$': token.DOLLAR,
}

func (l *Lexer) newToken(t token.Type, lexeme string, line, col int) token.Token {
	return token.Token{Type: t, Lexeme: lexeme, Line: line, Column: col}
}

func (l *Lexer) newTokenLit(t token.Type, lexeme string, lit interface{}, line, col int) token.Token {
	return token.Token{Type: t, Lexeme: lexeme, Line: line, Column: col, Literal: lit}
}

func isLetter(ch byte) bool {
	return ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
