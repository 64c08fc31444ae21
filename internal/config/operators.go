package config

import "github.com/lppc/transpiler/internal/token"

// Associativity defines operator associativity.
type Associativity int

const (
	AssocLeft Associativity = iota
	AssocRight
	AssocNone
)

// Precedence levels, ascending (higher binds tighter). These mirror the
// grammar in descending rule order: pipeline is loosest, call is tightest.
const (
	PrecPipe = iota
	PrecNullish
	PrecLogicOr
	PrecLogicAnd
	PrecEquality
	PrecComparison
	PrecSymbolic
	PrecRange
	PrecAdditive
	PrecMultiplicative
	PrecCast
	PrecUnary
	PrecCall
)

// OperatorInfo is the single source of truth for a core operator's fixity.
// It is consulted by the notation stack (internal/notation) to seed the
// default "math" table and by the parser's Pratt climbing.
type OperatorInfo struct {
	Token       token.Type
	Symbol      string
	Precedence  int
	Assoc       Associativity
	IsCore      bool
	Description string
}

// AllOperators is the default "math" precedence table.
var AllOperators = []OperatorInfo{
	{Token: token.PIPE_GT, Symbol: "|>", Precedence: PrecPipe, Assoc: AssocLeft, IsCore: true, Description: "pipeline"},
	{Token: token.NULLISH, Symbol: "??", Precedence: PrecNullish, Assoc: AssocLeft, IsCore: true, Description: "nullish coalescing"},
	{Token: token.OR_KW, Symbol: "or", Precedence: PrecLogicOr, Assoc: AssocLeft, IsCore: true, Description: "logical or"},
	{Token: token.LOGIC_OR, Symbol: "||", Precedence: PrecLogicOr, Assoc: AssocLeft, IsCore: true, Description: "logical or"},
	{Token: token.AND_KW, Symbol: "and", Precedence: PrecLogicAnd, Assoc: AssocLeft, IsCore: true, Description: "logical and"},
	{Token: token.LOGIC_AND, Symbol: "&&", Precedence: PrecLogicAnd, Assoc: AssocLeft, IsCore: true, Description: "logical and"},
	{Token: token.EQ, Symbol: "==", Precedence: PrecEquality, Assoc: AssocLeft, IsCore: true, Description: "equality"},
	{Token: token.NOT_EQ, Symbol: "!=", Precedence: PrecEquality, Assoc: AssocLeft, IsCore: true, Description: "inequality"},
	{Token: token.STRICT_EQ, Symbol: "===", Precedence: PrecEquality, Assoc: AssocLeft, IsCore: true, Description: "strict equality"},
	{Token: token.STRICT_NOT_EQ, Symbol: "!==", Precedence: PrecEquality, Assoc: AssocLeft, IsCore: true, Description: "strict inequality"},
	{Token: token.LT, Symbol: "<", Precedence: PrecComparison, Assoc: AssocLeft, IsCore: true, Description: "less than"},
	{Token: token.LTE, Symbol: "<=", Precedence: PrecComparison, Assoc: AssocLeft, IsCore: true, Description: "less or equal"},
	{Token: token.GT, Symbol: ">", Precedence: PrecComparison, Assoc: AssocLeft, IsCore: true, Description: "greater than"},
	{Token: token.GTE, Symbol: ">=", Precedence: PrecComparison, Assoc: AssocLeft, IsCore: true, Description: "greater or equal"},
	{Token: token.BANG_BANG, Symbol: "!!", Precedence: PrecSymbolic, Assoc: AssocLeft, IsCore: true, Description: "symbolic iterate-step"},
	{Token: token.QUANTUM_LT, Symbol: "!!<", Precedence: PrecSymbolic, Assoc: AssocLeft, IsCore: true, Description: "symbolic iterate-while"},
	{Token: token.QUANTUM_GT, Symbol: "!!>", Precedence: PrecSymbolic, Assoc: AssocLeft, IsCore: true, Description: "symbolic auto-iterate"},
	{Token: token.TILDE_GT, Symbol: "~>", Precedence: PrecSymbolic, Assoc: AssocLeft, IsCore: true, Description: "symbolic reduce chain"},
	{Token: token.AT, Symbol: "@", Precedence: PrecSymbolic, Assoc: AssocLeft, IsCore: true, Description: "map"},
	{Token: token.QUESTION, Symbol: "?", Precedence: PrecSymbolic, Assoc: AssocLeft, IsCore: true, Description: "filter"},
	{Token: token.BACKSLASH, Symbol: "\\", Precedence: PrecSymbolic, Assoc: AssocLeft, IsCore: true, Description: "reduce"},
	{Token: token.DOT_DOT, Symbol: "..", Precedence: PrecRange, Assoc: AssocLeft, IsCore: true, Description: "range"},
	{Token: token.TILDE, Symbol: "~", Precedence: PrecRange, Assoc: AssocLeft, IsCore: true, Description: "range step separator"},
	{Token: token.PLUS, Symbol: "+", Precedence: PrecAdditive, Assoc: AssocLeft, IsCore: true, Description: "addition"},
	{Token: token.MINUS, Symbol: "-", Precedence: PrecAdditive, Assoc: AssocLeft, IsCore: true, Description: "subtraction"},
	{Token: token.STAR, Symbol: "*", Precedence: PrecMultiplicative, Assoc: AssocLeft, IsCore: true, Description: "multiplication"},
	{Token: token.SLASH, Symbol: "/", Precedence: PrecMultiplicative, Assoc: AssocLeft, IsCore: true, Description: "division"},
	{Token: token.PERCENT, Symbol: "%", Precedence: PrecMultiplicative, Assoc: AssocLeft, IsCore: true, Description: "modulo"},
	{Token: token.AS, Symbol: "as", Precedence: PrecCast, Assoc: AssocLeft, IsCore: true, Description: "cast"},
}

// GetOperator looks up a core operator by token kind.
func GetOperator(t token.Type) (OperatorInfo, bool) {
	for _, op := range AllOperators {
		if op.Token == t {
			return op, true
		}
	}
	return OperatorInfo{}, false
}

// GetOperatorBySymbol looks up a core operator (an AllOperators entry) by
// its string name; custom fixities set through notation.Table.Override are
// not visible here.
func GetOperatorBySymbol(symbol string) (OperatorInfo, bool) {
	for _, op := range AllOperators {
		if op.Symbol == symbol {
			return op, true
		}
	}
	return OperatorInfo{}, false
}
