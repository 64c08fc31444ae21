// Package ast defines the typed abstract syntax tree produced by the parser.
// Every node owns its children (strict tree, no aliasing); positions are
// carried via the originating token so diagnostics can point at them.
package ast

import "github.com/lppc/transpiler/internal/token"

// Node is implemented by every AST node.
type Node interface {
	TokenLiteral() string
	GetToken() token.Token
	Accept(v Visitor)
}

// Statement is a Node that can appear in a block or at top level.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that yields a value.
type Expression interface {
	Node
	expressionNode()
}

// Visitor has one method per concrete node kind, per the closed AST variant
// set (§9 design note: keep the variant set closed; retain a visitor with
// one method per variant).
type Visitor interface {
	VisitProgram(n *Program)

	VisitImportDecl(n *ImportDecl)
	VisitExportDecl(n *ExportDecl)
	VisitFunctionDecl(n *FunctionDecl)
	VisitClassDecl(n *ClassDecl)
	VisitInterfaceDecl(n *InterfaceDecl)
	VisitTypeDecl(n *TypeDecl)
	VisitEnumDecl(n *EnumDecl)
	VisitAutoPatternStmt(n *AutoPatternStmt)

	VisitBlockStmt(n *BlockStmt)
	VisitVarDeclStmt(n *VarDeclStmt)
	VisitQuantumVarDeclStmt(n *QuantumVarDeclStmt)
	VisitAssignStmt(n *AssignStmt)
	VisitIfStmt(n *IfStmt)
	VisitWhileStmt(n *WhileStmt)
	VisitSwitchStmt(n *SwitchStmt)
	VisitForStmt(n *ForStmt)
	VisitForInStmt(n *ForInStmt)
	VisitDoWhileStmt(n *DoWhileStmt)
	VisitTryCatchStmt(n *TryCatchStmt)
	VisitDestructuringStmt(n *DestructuringStmt)
	VisitBreakStmt(n *BreakStmt)
	VisitContinueStmt(n *ContinueStmt)
	VisitReturnStmt(n *ReturnStmt)
	VisitExprStmt(n *ExprStmt)

	VisitIntegerLiteral(n *IntegerLiteral)
	VisitFloatLiteral(n *FloatLiteral)
	VisitBigIntLiteral(n *BigIntLiteral)
	VisitRationalLiteral(n *RationalLiteral)
	VisitStringLiteral(n *StringLiteral)
	VisitTemplateLiteral(n *TemplateLiteral)
	VisitBoolLiteral(n *BoolLiteral)
	VisitNilLiteral(n *NilLiteral)
	VisitCharLiteral(n *CharLiteral)
	VisitIdentifier(n *Identifier)
	VisitBinaryExpr(n *BinaryExpr)
	VisitUnaryExpr(n *UnaryExpr)
	VisitPostfixExpr(n *PostfixExpr)
	VisitRangeExpr(n *RangeExpr)
	VisitMapExpr(n *MapExpr)
	VisitFilterExpr(n *FilterExpr)
	VisitReduceExpr(n *ReduceExpr)
	VisitIterateWhileExpr(n *IterateWhileExpr)
	VisitAutoIterateExpr(n *AutoIterateExpr)
	VisitIterateStepExpr(n *IterateStepExpr)
	VisitCallExpr(n *CallExpr)
	VisitLambdaExpr(n *LambdaExpr)
	VisitTernaryExpr(n *TernaryExpr)
	VisitPipelineExpr(n *PipelineExpr)
	VisitCompositionExpr(n *CompositionExpr)
	VisitArrayLit(n *ArrayLit)
	VisitTupleLit(n *TupleLit)
	VisitListComprehension(n *ListComprehension)
	VisitSpreadExpr(n *SpreadExpr)
	VisitIndexExpr(n *IndexExpr)
	VisitObjectLit(n *ObjectLit)
	VisitMatchExpr(n *MatchExpr)
	VisitCastExpr(n *CastExpr)
	VisitAwaitExpr(n *AwaitExpr)
	VisitThrowExpr(n *ThrowExpr)
	VisitYieldExpr(n *YieldExpr)
	VisitTypeOfExpr(n *TypeOfExpr)
	VisitInstanceOfExpr(n *InstanceOfExpr)
	VisitQuantumMethodCallExpr(n *QuantumMethodCallExpr)
}

// ---- Program ---------------------------------------------------------------

// Program is the root node: one per compiled source file.
type Program struct {
	Tok        token.Token
	Paradigm   string // "" if absent (parser still emits an Error diagnostic)
	Imports    []*ImportDecl
	Exports    []*ExportDecl
	Functions  []*FunctionDecl
	Classes    []*ClassDecl
	Interfaces []*InterfaceDecl
	Types      []*TypeDecl
	Enums      []*EnumDecl
}

func (n *Program) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *Program) GetToken() token.Token { return n.Tok }
func (n *Program) Accept(v Visitor)      { v.VisitProgram(n) }

// ---- Top-level declarations ------------------------------------------------

type ImportDecl struct {
	Tok          token.Token
	Names        []string
	Module       string
	ImportAll    bool
	ResolvedPath string // filled in by internal/modules
}

func (n *ImportDecl) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *ImportDecl) GetToken() token.Token { return n.Tok }
func (n *ImportDecl) Accept(v Visitor)      { v.VisitImportDecl(n) }
func (n *ImportDecl) statementNode()        {}

type ExportDecl struct {
	Tok  token.Token
	Decl Statement
}

func (n *ExportDecl) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *ExportDecl) GetToken() token.Token { return n.Tok }
func (n *ExportDecl) Accept(v Visitor)      { v.VisitExportDecl(n) }
func (n *ExportDecl) statementNode()        {}

// Param is a function or class-property parameter: a name and optional type.
type Param struct {
	Name     string
	TypeName string
	Default  Expression
}

type FunctionDecl struct {
	Tok           token.Token
	Name          string
	Params        []Param
	ReturnType    string
	Body          *BlockStmt
	IsAsync       bool
	IsGenerator   bool
	IsGetter      bool
	IsSetter      bool
	GenericParams []string
	RestParam     *Param
}

func (n *FunctionDecl) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *FunctionDecl) GetToken() token.Token { return n.Tok }
func (n *FunctionDecl) Accept(v Visitor)      { v.VisitFunctionDecl(n) }
func (n *FunctionDecl) statementNode()        {}

type ClassDecl struct {
	Tok           token.Token
	Name          string
	Base          string
	Properties    []Param
	Methods       []*FunctionDecl
	Constructor   *FunctionDecl
	DesignPattern string // set by auto-pattern expansion
}

func (n *ClassDecl) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *ClassDecl) GetToken() token.Token { return n.Tok }
func (n *ClassDecl) Accept(v Visitor)      { v.VisitClassDecl(n) }
func (n *ClassDecl) statementNode()        {}

type InterfaceMethod struct {
	Name       string
	ParamTypes []string
	ReturnType string
}

type InterfaceDecl struct {
	Tok     token.Token
	Name    string
	Methods []InterfaceMethod
}

func (n *InterfaceDecl) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *InterfaceDecl) GetToken() token.Token { return n.Tok }
func (n *InterfaceDecl) Accept(v Visitor)      { v.VisitInterfaceDecl(n) }
func (n *InterfaceDecl) statementNode()        {}

type TypeVariant struct {
	Ctor   string
	Fields []string
}

type TypeDecl struct {
	Tok        token.Token
	Name       string
	TypeParams []string
	Variants   []TypeVariant
}

func (n *TypeDecl) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *TypeDecl) GetToken() token.Token { return n.Tok }
func (n *TypeDecl) Accept(v Visitor)      { v.VisitTypeDecl(n) }
func (n *TypeDecl) statementNode()        {}

type EnumDecl struct {
	Tok    token.Token
	Name   string
	Values []string
}

func (n *EnumDecl) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *EnumDecl) GetToken() token.Token { return n.Tok }
func (n *EnumDecl) Accept(v Visitor)      { v.VisitEnumDecl(n) }
func (n *EnumDecl) statementNode()        {}

// AutoPatternStmt is the unexpanded `autopattern Kind Name;` declaration.
// ResolvedKind and the synthesized ClassDecl are filled in during parsing,
// before the analyzer runs (invariant iv, spec §3).
type AutoPatternStmt struct {
	Tok          token.Token
	Problem      string
	ClassName    string
	ResolvedKind string
	Class        *ClassDecl
}

func (n *AutoPatternStmt) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *AutoPatternStmt) GetToken() token.Token { return n.Tok }
func (n *AutoPatternStmt) Accept(v Visitor)      { v.VisitAutoPatternStmt(n) }
func (n *AutoPatternStmt) statementNode()        {}

// ---- Statements -------------------------------------------------------------

type BlockStmt struct {
	Tok        token.Token
	Statements []Statement
}

func (n *BlockStmt) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *BlockStmt) GetToken() token.Token { return n.Tok }
func (n *BlockStmt) Accept(v Visitor)      { v.VisitBlockStmt(n) }
func (n *BlockStmt) statementNode()        {}

type VarDeclStmt struct {
	Tok         token.Token
	Name        string
	TypeName    string
	Initializer Expression
	IsArrayType bool
	ArraySize   Expression
	IsNullable  bool
	UnionTypes  []string
	IsConst     bool
}

func (n *VarDeclStmt) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *VarDeclStmt) GetToken() token.Token { return n.Tok }
func (n *VarDeclStmt) Accept(v Visitor)      { v.VisitVarDeclStmt(n) }
func (n *VarDeclStmt) statementNode()        {}

type QuantumVarDeclStmt struct {
	Tok     token.Token
	Name    string
	States  []Expression
	Weights []Expression // empty => uniform
}

func (n *QuantumVarDeclStmt) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *QuantumVarDeclStmt) GetToken() token.Token { return n.Tok }
func (n *QuantumVarDeclStmt) Accept(v Visitor)      { v.VisitQuantumVarDeclStmt(n) }
func (n *QuantumVarDeclStmt) statementNode()        {}

type AssignStmt struct {
	Tok    token.Token
	Target Expression
	Op     string // "=", "+=", "-=", ...
	Value  Expression
}

func (n *AssignStmt) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *AssignStmt) GetToken() token.Token { return n.Tok }
func (n *AssignStmt) Accept(v Visitor)      { v.VisitAssignStmt(n) }
func (n *AssignStmt) statementNode()        {}

type IfStmt struct {
	Tok  token.Token
	Cond Expression
	Then *BlockStmt
	Else Statement // *IfStmt (else-if), *BlockStmt, or nil
}

func (n *IfStmt) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *IfStmt) GetToken() token.Token { return n.Tok }
func (n *IfStmt) Accept(v Visitor)      { v.VisitIfStmt(n) }
func (n *IfStmt) statementNode()        {}

type WhileStmt struct {
	Tok  token.Token
	Cond Expression
	Body *BlockStmt
}

func (n *WhileStmt) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *WhileStmt) GetToken() token.Token { return n.Tok }
func (n *WhileStmt) Accept(v Visitor)      { v.VisitWhileStmt(n) }
func (n *WhileStmt) statementNode()        {}

type SwitchCase struct {
	Values []Expression
	Guard  Expression
	Body   *BlockStmt
}

type SwitchStmt struct {
	Tok   token.Token
	Tag   Expression
	Cases []SwitchCase
}

func (n *SwitchStmt) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *SwitchStmt) GetToken() token.Token { return n.Tok }
func (n *SwitchStmt) Accept(v Visitor)      { v.VisitSwitchStmt(n) }
func (n *SwitchStmt) statementNode()        {}

type ForStmt struct {
	Tok  token.Token
	Init Statement // VarDeclStmt or ExprStmt, per invariant (ii)
	Cond Expression
	Post Statement
	Body *BlockStmt
}

func (n *ForStmt) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *ForStmt) GetToken() token.Token { return n.Tok }
func (n *ForStmt) Accept(v Visitor)      { v.VisitForStmt(n) }
func (n *ForStmt) statementNode()        {}

type ForInStmt struct {
	Tok      token.Token
	VarName  string
	Iterable Expression
	Body     *BlockStmt
}

func (n *ForInStmt) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *ForInStmt) GetToken() token.Token { return n.Tok }
func (n *ForInStmt) Accept(v Visitor)      { v.VisitForInStmt(n) }
func (n *ForInStmt) statementNode()        {}

type DoWhileStmt struct {
	Tok  token.Token
	Body *BlockStmt
	Cond Expression
}

func (n *DoWhileStmt) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *DoWhileStmt) GetToken() token.Token { return n.Tok }
func (n *DoWhileStmt) Accept(v Visitor)      { v.VisitDoWhileStmt(n) }
func (n *DoWhileStmt) statementNode()        {}

type TryCatchStmt struct {
	Tok      token.Token
	Try      *BlockStmt
	CatchVar string
	Catch    *BlockStmt
	Finally  *BlockStmt // nil if absent
}

func (n *TryCatchStmt) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *TryCatchStmt) GetToken() token.Token { return n.Tok }
func (n *TryCatchStmt) Accept(v Visitor)      { v.VisitTryCatchStmt(n) }
func (n *TryCatchStmt) statementNode()        {}

type DestructuringStmt struct {
	Tok     token.Token
	Targets []string
	Source  Expression
	Kind    string // "array" | "object" | "tuple"
}

func (n *DestructuringStmt) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *DestructuringStmt) GetToken() token.Token { return n.Tok }
func (n *DestructuringStmt) Accept(v Visitor)      { v.VisitDestructuringStmt(n) }
func (n *DestructuringStmt) statementNode()        {}

type BreakStmt struct{ Tok token.Token }

func (n *BreakStmt) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *BreakStmt) GetToken() token.Token { return n.Tok }
func (n *BreakStmt) Accept(v Visitor)      { v.VisitBreakStmt(n) }
func (n *BreakStmt) statementNode()        {}

type ContinueStmt struct{ Tok token.Token }

func (n *ContinueStmt) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *ContinueStmt) GetToken() token.Token { return n.Tok }
func (n *ContinueStmt) Accept(v Visitor)      { v.VisitContinueStmt(n) }
func (n *ContinueStmt) statementNode()        {}

type ReturnStmt struct {
	Tok   token.Token
	Value Expression // nil for bare `return;`
}

func (n *ReturnStmt) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *ReturnStmt) GetToken() token.Token { return n.Tok }
func (n *ReturnStmt) Accept(v Visitor)      { v.VisitReturnStmt(n) }
func (n *ReturnStmt) statementNode()        {}

type ExprStmt struct {
	Tok  token.Token
	Expr Expression
}

func (n *ExprStmt) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *ExprStmt) GetToken() token.Token { return n.Tok }
func (n *ExprStmt) Accept(v Visitor)      { v.VisitExprStmt(n) }
func (n *ExprStmt) statementNode()        {}

// ---- Literal expressions ----------------------------------------------------

type IntegerLiteral struct {
	Tok   token.Token
	Value int64
}

func (n *IntegerLiteral) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *IntegerLiteral) GetToken() token.Token { return n.Tok }
func (n *IntegerLiteral) Accept(v Visitor)      { v.VisitIntegerLiteral(n) }
func (n *IntegerLiteral) expressionNode()       {}

type FloatLiteral struct {
	Tok   token.Token
	Value float64
}

func (n *FloatLiteral) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *FloatLiteral) GetToken() token.Token { return n.Tok }
func (n *FloatLiteral) Accept(v Visitor)      { v.VisitFloatLiteral(n) }
func (n *FloatLiteral) expressionNode()       {}

// BigIntLiteral holds the decimal digits of a `123n`-suffixed literal; the
// transpiler lowers it to a host bignum call rather than parsing it in Go.
type BigIntLiteral struct {
	Tok    token.Token
	Digits string
}

func (n *BigIntLiteral) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *BigIntLiteral) GetToken() token.Token { return n.Tok }
func (n *BigIntLiteral) Accept(v Visitor)      { v.VisitBigIntLiteral(n) }
func (n *BigIntLiteral) expressionNode()       {}

type RationalLiteral struct {
	Tok   token.Token
	Num   string
	Denom string
}

func (n *RationalLiteral) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *RationalLiteral) GetToken() token.Token { return n.Tok }
func (n *RationalLiteral) Accept(v Visitor)      { v.VisitRationalLiteral(n) }
func (n *RationalLiteral) expressionNode()       {}

type StringLiteral struct {
	Tok   token.Token
	Value string
}

func (n *StringLiteral) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *StringLiteral) GetToken() token.Token { return n.Tok }
func (n *StringLiteral) Accept(v Visitor)      { v.VisitStringLiteral(n) }
func (n *StringLiteral) expressionNode()       {}

// TemplateLiteral interleaves static string parts with interpolation
// expressions: len(Parts) == len(Exprs)+1.
type TemplateLiteral struct {
	Tok   token.Token
	Parts []string
	Exprs []Expression
}

func (n *TemplateLiteral) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *TemplateLiteral) GetToken() token.Token { return n.Tok }
func (n *TemplateLiteral) Accept(v Visitor)      { v.VisitTemplateLiteral(n) }
func (n *TemplateLiteral) expressionNode()       {}

type BoolLiteral struct {
	Tok   token.Token
	Value bool
}

func (n *BoolLiteral) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *BoolLiteral) GetToken() token.Token { return n.Tok }
func (n *BoolLiteral) Accept(v Visitor)      { v.VisitBoolLiteral(n) }
func (n *BoolLiteral) expressionNode()       {}

type NilLiteral struct{ Tok token.Token }

func (n *NilLiteral) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *NilLiteral) GetToken() token.Token { return n.Tok }
func (n *NilLiteral) Accept(v Visitor)      { v.VisitNilLiteral(n) }
func (n *NilLiteral) expressionNode()       {}

type CharLiteral struct {
	Tok   token.Token
	Value rune
}

func (n *CharLiteral) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *CharLiteral) GetToken() token.Token { return n.Tok }
func (n *CharLiteral) Accept(v Visitor)      { v.VisitCharLiteral(n) }
func (n *CharLiteral) expressionNode()       {}

type Identifier struct {
	Tok   token.Token
	Value string
}

func (n *Identifier) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *Identifier) GetToken() token.Token { return n.Tok }
func (n *Identifier) Accept(v Visitor)      { v.VisitIdentifier(n) }
func (n *Identifier) expressionNode()       {}

// ---- Compound expressions ---------------------------------------------------

type BinaryExpr struct {
	Tok   token.Token
	Op    string
	Left  Expression
	Right Expression
}

func (n *BinaryExpr) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *BinaryExpr) GetToken() token.Token { return n.Tok }
func (n *BinaryExpr) Accept(v Visitor)      { v.VisitBinaryExpr(n) }
func (n *BinaryExpr) expressionNode()       {}

type UnaryExpr struct {
	Tok     token.Token
	Op      string
	Operand Expression
}

func (n *UnaryExpr) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *UnaryExpr) GetToken() token.Token { return n.Tok }
func (n *UnaryExpr) Accept(v Visitor)      { v.VisitUnaryExpr(n) }
func (n *UnaryExpr) expressionNode()       {}

type PostfixExpr struct {
	Tok     token.Token
	Op      string
	Operand Expression
}

func (n *PostfixExpr) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *PostfixExpr) GetToken() token.Token { return n.Tok }
func (n *PostfixExpr) Accept(v Visitor)      { v.VisitPostfixExpr(n) }
func (n *PostfixExpr) expressionNode()       {}

// RangeExpr is `start..end` or `start..end..step`.
type RangeExpr struct {
	Tok   token.Token
	Start Expression
	End   Expression
	Step  Expression // nil => implicit step of 1
}

func (n *RangeExpr) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *RangeExpr) GetToken() token.Token { return n.Tok }
func (n *RangeExpr) Accept(v Visitor)      { v.VisitRangeExpr(n) }
func (n *RangeExpr) expressionNode()       {}

// MapExpr is `list @ fn`.
type MapExpr struct {
	Tok  token.Token
	List Expression
	Fn   Expression
}

func (n *MapExpr) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *MapExpr) GetToken() token.Token { return n.Tok }
func (n *MapExpr) Accept(v Visitor)      { v.VisitMapExpr(n) }
func (n *MapExpr) expressionNode()       {}

// FilterExpr is `list ?|x| pred`.
type FilterExpr struct {
	Tok       token.Token
	List      Expression
	Predicate Expression
}

func (n *FilterExpr) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *FilterExpr) GetToken() token.Token { return n.Tok }
func (n *FilterExpr) Accept(v Visitor)      { v.VisitFilterExpr(n) }
func (n *FilterExpr) expressionNode()       {}

// ReduceExpr is `list \ fn`.
type ReduceExpr struct {
	Tok  token.Token
	List Expression
	Fn   Expression
}

func (n *ReduceExpr) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *ReduceExpr) GetToken() token.Token { return n.Tok }
func (n *ReduceExpr) Accept(v Visitor)      { v.VisitReduceExpr(n) }
func (n *ReduceExpr) expressionNode()       {}

// IterateWhileExpr is `start !!< cond`.
type IterateWhileExpr struct {
	Tok   token.Token
	Start Expression
	Cond  Expression
}

func (n *IterateWhileExpr) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *IterateWhileExpr) GetToken() token.Token { return n.Tok }
func (n *IterateWhileExpr) Accept(v Visitor)      { v.VisitIterateWhileExpr(n) }
func (n *IterateWhileExpr) expressionNode()       {}

// AutoIterateExpr is `start !!> fn`.
type AutoIterateExpr struct {
	Tok   token.Token
	Start Expression
	Fn    Expression
}

func (n *AutoIterateExpr) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *AutoIterateExpr) GetToken() token.Token { return n.Tok }
func (n *AutoIterateExpr) Accept(v Visitor)      { v.VisitAutoIterateExpr(n) }
func (n *AutoIterateExpr) expressionNode()       {}

// IterateStepExpr is `start !! bound $ step`.
type IterateStepExpr struct {
	Tok   token.Token
	Start Expression
	Bound Expression
	Step  Expression
}

func (n *IterateStepExpr) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *IterateStepExpr) GetToken() token.Token { return n.Tok }
func (n *IterateStepExpr) Accept(v Visitor)      { v.VisitIterateStepExpr(n) }
func (n *IterateStepExpr) expressionNode()       {}

type CallExpr struct {
	Tok    token.Token
	Callee Expression
	Args   []Expression
}

func (n *CallExpr) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *CallExpr) GetToken() token.Token { return n.Tok }
func (n *CallExpr) Accept(v Visitor)      { v.VisitCallExpr(n) }
func (n *CallExpr) expressionNode()       {}

type LambdaExpr struct {
	Tok        token.Token
	Params     []Param
	Body       Node // Expression (implicit return) or *BlockStmt
	ReturnType string
	RestParam  *Param
}

func (n *LambdaExpr) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *LambdaExpr) GetToken() token.Token { return n.Tok }
func (n *LambdaExpr) Accept(v Visitor)      { v.VisitLambdaExpr(n) }
func (n *LambdaExpr) expressionNode()       {}

type TernaryExpr struct {
	Tok  token.Token
	Cond Expression
	Then Expression
	Else Expression
}

func (n *TernaryExpr) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *TernaryExpr) GetToken() token.Token { return n.Tok }
func (n *TernaryExpr) Accept(v Visitor)      { v.VisitTernaryExpr(n) }
func (n *TernaryExpr) expressionNode()       {}

type PipelineExpr struct {
	Tok     token.Token
	Initial Expression
	Stages  []Expression
}

func (n *PipelineExpr) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *PipelineExpr) GetToken() token.Token { return n.Tok }
func (n *PipelineExpr) Accept(v Visitor)      { v.VisitPipelineExpr(n) }
func (n *PipelineExpr) expressionNode()       {}

type CompositionExpr struct {
	Tok       token.Token
	Functions []Expression
}

func (n *CompositionExpr) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *CompositionExpr) GetToken() token.Token { return n.Tok }
func (n *CompositionExpr) Accept(v Visitor)      { v.VisitCompositionExpr(n) }
func (n *CompositionExpr) expressionNode()       {}

type ArrayLit struct {
	Tok      token.Token
	Elements []Expression
}

func (n *ArrayLit) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *ArrayLit) GetToken() token.Token { return n.Tok }
func (n *ArrayLit) Accept(v Visitor)      { v.VisitArrayLit(n) }
func (n *ArrayLit) expressionNode()       {}

type TupleLit struct {
	Tok      token.Token
	Elements []Expression
}

func (n *TupleLit) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *TupleLit) GetToken() token.Token { return n.Tok }
func (n *TupleLit) Accept(v Visitor)      { v.VisitTupleLit(n) }
func (n *TupleLit) expressionNode()       {}

type ListComprehension struct {
	Tok        token.Token
	Expr       Expression
	Var        string
	Range      Expression
	Predicates []Expression
}

func (n *ListComprehension) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *ListComprehension) GetToken() token.Token { return n.Tok }
func (n *ListComprehension) Accept(v Visitor)      { v.VisitListComprehension(n) }
func (n *ListComprehension) expressionNode()       {}

type SpreadExpr struct {
	Tok   token.Token
	Value Expression
}

func (n *SpreadExpr) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *SpreadExpr) GetToken() token.Token { return n.Tok }
func (n *SpreadExpr) Accept(v Visitor)      { v.VisitSpreadExpr(n) }
func (n *SpreadExpr) expressionNode()       {}

// IndexExpr covers `obj[idx]`, `obj.member`, and their optional-chaining
// forms; when IsDot is true, Member names the field and Index is nil.
type IndexExpr struct {
	Tok        token.Token
	Object     Expression
	Index      Expression
	Member     string
	IsDot      bool
	IsOptional bool
}

func (n *IndexExpr) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *IndexExpr) GetToken() token.Token { return n.Tok }
func (n *IndexExpr) Accept(v Visitor)      { v.VisitIndexExpr(n) }
func (n *IndexExpr) expressionNode()       {}

type ObjectProp struct {
	Key   string
	Value Expression
}

type ObjectLit struct {
	Tok   token.Token
	Props []ObjectProp
}

func (n *ObjectLit) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *ObjectLit) GetToken() token.Token { return n.Tok }
func (n *ObjectLit) Accept(v Visitor)      { v.VisitObjectLit(n) }
func (n *ObjectLit) expressionNode()       {}

type MatchCase struct {
	Pattern Expression
	Guard   Expression
	Body    Expression
}

type MatchExpr struct {
	Tok       token.Token
	Scrutinee Expression
	Cases     []MatchCase
}

func (n *MatchExpr) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *MatchExpr) GetToken() token.Token { return n.Tok }
func (n *MatchExpr) Accept(v Visitor)      { v.VisitMatchExpr(n) }
func (n *MatchExpr) expressionNode()       {}

type CastExpr struct {
	Tok        token.Token
	Expr       Expression
	TargetType string
}

func (n *CastExpr) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *CastExpr) GetToken() token.Token { return n.Tok }
func (n *CastExpr) Accept(v Visitor)      { v.VisitCastExpr(n) }
func (n *CastExpr) expressionNode()       {}

type AwaitExpr struct {
	Tok  token.Token
	Expr Expression
}

func (n *AwaitExpr) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *AwaitExpr) GetToken() token.Token { return n.Tok }
func (n *AwaitExpr) Accept(v Visitor)      { v.VisitAwaitExpr(n) }
func (n *AwaitExpr) expressionNode()       {}

type ThrowExpr struct {
	Tok  token.Token
	Expr Expression
}

func (n *ThrowExpr) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *ThrowExpr) GetToken() token.Token { return n.Tok }
func (n *ThrowExpr) Accept(v Visitor)      { v.VisitThrowExpr(n) }
func (n *ThrowExpr) expressionNode()       {}

type YieldExpr struct {
	Tok  token.Token
	Expr Expression
}

func (n *YieldExpr) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *YieldExpr) GetToken() token.Token { return n.Tok }
func (n *YieldExpr) Accept(v Visitor)      { v.VisitYieldExpr(n) }
func (n *YieldExpr) expressionNode()       {}

type TypeOfExpr struct {
	Tok  token.Token
	Expr Expression
}

func (n *TypeOfExpr) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *TypeOfExpr) GetToken() token.Token { return n.Tok }
func (n *TypeOfExpr) Accept(v Visitor)      { v.VisitTypeOfExpr(n) }
func (n *TypeOfExpr) expressionNode()       {}

type InstanceOfExpr struct {
	Tok        token.Token
	Expr       Expression
	TargetType string
}

func (n *InstanceOfExpr) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *InstanceOfExpr) GetToken() token.Token { return n.Tok }
func (n *InstanceOfExpr) Accept(v Visitor)      { v.VisitInstanceOfExpr(n) }
func (n *InstanceOfExpr) expressionNode()       {}

// QuantumMethodCallExpr calls a QuantumVar method: `qv.observe()`, etc.
type QuantumMethodCallExpr struct {
	Tok    token.Token
	VarRef Expression
	Method string
	Args   []Expression
}

func (n *QuantumMethodCallExpr) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *QuantumMethodCallExpr) GetToken() token.Token { return n.Tok }
func (n *QuantumMethodCallExpr) Accept(v Visitor)      { v.VisitQuantumMethodCallExpr(n) }
func (n *QuantumMethodCallExpr) expressionNode()       {}
