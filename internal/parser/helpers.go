package parser

// Thin wrapper functions over token.Type constants used by declarations.go
// and expressions.go. Grounded on the teacher's style of small predicate
// helpers around its token package, kept as functions (not bare constants)
// so call sites read like grammar productions: p.expect(lbrace(), "'{'").
import "github.com/lppc/transpiler/internal/token"

func identType() token.Type   { return token.IDENT }
func stringType() token.Type  { return token.STRING }
func token_STAR() token.Type  { return token.STAR }

func lparen() token.Type   { return token.LPAREN }
func rparen() token.Type   { return token.RPAREN }
func lbrace() token.Type   { return token.LBRACE }
func rbrace() token.Type   { return token.RBRACE }
func lbracket() token.Type { return token.LBRACKET }
func rbracket() token.Type { return token.RBRACKET }
func comma() token.Type    { return token.COMMA }
func semi() token.Type     { return token.SEMI }
func colon() token.Type    { return token.COLON }
func dot() token.Type      { return token.DOT }
func question() token.Type { return token.QUESTION }
func pipe() token.Type     { return token.PIPE }
func at() token.Type       { return token.AT }
func spread() token.Type   { return token.SPREAD }
func assign() token.Type   { return token.ASSIGN }
func arrow() token.Type    { return token.ARROW }
func fatArrow() token.Type { return token.FAT_ARROW }
func lt() token.Type       { return token.LT }
func gt() token.Type       { return token.GT }

func classKw() token.Type     { return token.CLASS }
func fnKw() token.Type        { return token.FN }
func asyncKw() token.Type     { return token.ASYNC }
func yieldKw() token.Type     { return token.YIELD }
func interfaceKw() token.Type { return token.INTERFACE }
func typeKw() token.Type      { return token.TYPE }
func enumKw() token.Type      { return token.ENUM }
func fromKw() token.Type      { return token.FROM }
