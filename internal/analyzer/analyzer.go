// Package analyzer runs the static checks over a parsed Program: CFG
// construction, a symbolic-state dataflow pass, and the six diagnostics
// spec.md §4.5 names (spec §4.5), grounded on
// original_source/include/StaticAnalyzer.h + src/StaticAnalyzer.cpp
// (CFGNode, SymbolicValue, buildCFG/runDataFlowAnalysis/transferFunction)
// and on the teacher's internal/analyzer/analyzer.go determinism idiom
// (walker, addError dedup-by-position, sort.Slice by line/column).
package analyzer

import (
	"sort"
	"strings"

	"github.com/lppc/transpiler/internal/ast"
	"github.com/lppc/transpiler/internal/config"
	"github.com/lppc/transpiler/internal/diagnostics"
	"github.com/lppc/transpiler/internal/symbols"
	"github.com/lppc/transpiler/internal/token"
)

// State is a variable's abstract lifecycle state.
type State int

const (
	StateUnknown State = iota
	StateUninitialized
	StateInitialized
	StateNullPtr
	StateNonNull
	StateFreed
)

// SymbolicValue is the abstract value tracked per variable per program
// point, grounded on StaticAnalyzer.h's SymbolicValue struct.
type SymbolicValue struct {
	State          State
	MayBeNull      bool
	DefinitelyNull bool
	ConstantValue  *int64
	Tainted        bool
}

// Analyzer runs the full suite of checks over a Program.
type Analyzer struct {
	symbolTable *symbols.Table
}

// New creates an Analyzer with a fresh global symbol table.
func New() *Analyzer {
	return &Analyzer{symbolTable: symbols.New()}
}

// walker accumulates diagnostics for one Analyze call, deduplicating by
// (line, column, code) exactly like the teacher's walker.addError.
type walker struct {
	file     string
	diagSet  map[string]*diagnostics.Diagnostic
	allocs   map[string]token.Token // var name -> declaring token, still outstanding
}

func newWalker(file string) *walker {
	return &walker{file: file, diagSet: make(map[string]*diagnostics.Diagnostic), allocs: make(map[string]token.Token)}
}

func (w *walker) add(d *diagnostics.Diagnostic) {
	d.WithFile(w.file)
	key := concatKey(d.Line, d.Column, string(d.Code))
	w.diagSet[key] = d
}

func concatKey(line, col int, code string) string {
	return itoa(line) + ":" + itoa(col) + ":" + code
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func (w *walker) results() []*diagnostics.Diagnostic {
	out := make([]*diagnostics.Diagnostic, 0, len(w.diagSet))
	for _, d := range w.diagSet {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Line != out[j].Line {
			return out[i].Line < out[j].Line
		}
		if out[i].Column != out[j].Column {
			return out[i].Column < out[j].Column
		}
		return out[i].Code < out[j].Code
	})
	return out
}

// Analyze runs every check over prog and returns diagnostics sorted by
// position. The pre-pass symbol table is populated first so declared-name
// resolution is available before any function body is walked (spec §4.5).
func (a *Analyzer) Analyze(prog *ast.Program, file string) []*diagnostics.Diagnostic {
	symbols.RegisterProgram(a.symbolTable, prog)
	w := newWalker(file)
	if prog == nil {
		return nil
	}
	for _, fn := range prog.Functions {
		a.analyzeFunction(w, fn)
	}
	for _, cls := range prog.Classes {
		for _, m := range cls.Methods {
			a.analyzeFunction(w, m)
		}
		if cls.Constructor != nil {
			a.analyzeFunction(w, cls.Constructor)
		}
	}
	return w.results()
}

func (a *Analyzer) analyzeFunction(w *walker, fn *ast.FunctionDecl) {
	if fn == nil || fn.Body == nil {
		return
	}
	state := make(map[string]SymbolicValue, len(fn.Params))
	for _, p := range fn.Params {
		state[p.Name] = SymbolicValue{
			State:     StateInitialized,
			MayBeNull: strings.HasSuffix(p.TypeName, "?"),
		}
	}

	cfg := buildCFG(fn.Body.Statements)
	cfg.markReachable()
	a.checkDeadCode(w, cfg)

	prevAllocs := w.allocs
	w.allocs = make(map[string]token.Token)
	walkStatements(w, fn.Body.Statements, state)
	a.checkMemoryLeak(w)
	w.allocs = prevAllocs
}

// checkDeadCode reports every statement node the reachability BFS never
// reached (spec §4.5's sixth check), grounded on
// StaticAnalyzer::checkDeadCode's visitedNodes set.
func (a *Analyzer) checkDeadCode(w *walker, cfg *CFG) {
	for _, n := range cfg.Nodes {
		if n.Type != NodeStatement || n.Stmt == nil || n.Reachable {
			continue
		}
		tok := n.Stmt.GetToken()
		w.add(diagnostics.New(diagnostics.CodeDeadCode, diagnostics.Warning, diagnostics.PhaseAnalyzer, tok))
	}
}

// checkMemoryLeak flags any allocation (spec §4.5, `config.AllocatingFunctions`)
// whose variable never reaches a freeing call before the function body
// walk completes, grounded on StaticAnalyzer::checkMemoryLeak's
// allocatedMemory/freedMemory set difference.
func (a *Analyzer) checkMemoryLeak(w *walker) {
	names := make([]string, 0, len(w.allocs))
	for name := range w.allocs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		tok := w.allocs[name]
		w.add(diagnostics.New(diagnostics.CodeMemLeak, diagnostics.Warning, diagnostics.PhaseAnalyzer, tok, name))
	}
}

// walkStatements threads one mutable symbolic-state map through a
// statement list, branching into a copy per arm and merging back
// (mergeStates) the way runDataFlowAnalysis folds divergent predecessor
// states — simplified here to a direct structural walk instead of a
// separate CFG worklist, since the statement tree already is the CFG's
// shape for every construct this analyzer reasons about.
func walkStatements(w *walker, stmts []ast.Statement, state map[string]SymbolicValue) {
	for _, s := range stmts {
		walkStatement(w, s, state)
	}
}

func walkStatement(w *walker, s ast.Statement, state map[string]SymbolicValue) {
	switch n := s.(type) {
	case *ast.VarDeclStmt:
		sv := SymbolicValue{State: StateUninitialized}
		if n.Initializer != nil {
			walkExpr(w, n.Initializer, state)
			sv = evaluateExpr(state, n.Initializer)
			sv.State = StateInitialized
			if call, ok := n.Initializer.(*ast.CallExpr); ok {
				if callee, ok := call.Callee.(*ast.Identifier); ok && config.AllocatingFunctions[callee.Value] {
					w.allocs[n.Name] = n.Tok
				}
			}
		} else if n.IsNullable {
			sv.State = StateNullPtr
			sv.MayBeNull = true
		}
		state[n.Name] = sv

	case *ast.QuantumVarDeclStmt:
		state[n.Name] = SymbolicValue{State: StateInitialized}

	case *ast.AssignStmt:
		walkExpr(w, n.Value, state)
		if ident, ok := n.Target.(*ast.Identifier); ok {
			sv := evaluateExpr(state, n.Value)
			sv.State = StateInitialized
			state[ident.Value] = sv
			delete(w.allocs, ident.Value)
		} else {
			walkExpr(w, n.Target, state)
		}
		checkFree(w, n.Value)

	case *ast.IfStmt:
		walkExpr(w, n.Cond, state)
		thenState := cloneState(state)
		if n.Then != nil {
			walkStatements(w, n.Then.Statements, thenState)
		}
		elseState := cloneState(state)
		if n.Else != nil {
			walkStatement(w, n.Else, elseState)
		}
		mergeInto(state, thenState, elseState)

	case *ast.WhileStmt:
		walkExpr(w, n.Cond, state)
		if n.Body != nil {
			body := cloneState(state)
			walkStatements(w, n.Body.Statements, body)
			walkStatements(w, n.Body.Statements, body) // second pass approximates the fixpoint
			mergeInto(state, state, body)
		}

	case *ast.DoWhileStmt:
		if n.Body != nil {
			walkStatements(w, n.Body.Statements, state)
		}
		walkExpr(w, n.Cond, state)

	case *ast.ForStmt:
		if n.Init != nil {
			walkStatement(w, n.Init, state)
		}
		if n.Cond != nil {
			walkExpr(w, n.Cond, state)
		}
		if n.Body != nil {
			body := cloneState(state)
			walkStatements(w, n.Body.Statements, body)
			if n.Post != nil {
				walkStatement(w, n.Post, body)
			}
			walkStatements(w, n.Body.Statements, body)
			mergeInto(state, state, body)
		}

	case *ast.ForInStmt:
		walkExpr(w, n.Iterable, state)
		body := cloneState(state)
		body[n.VarName] = SymbolicValue{State: StateInitialized}
		if n.Body != nil {
			walkStatements(w, n.Body.Statements, body)
		}
		mergeInto(state, state, body)

	case *ast.SwitchStmt:
		walkExpr(w, n.Tag, state)
		merged := cloneState(state)
		for _, c := range n.Cases {
			for _, v := range c.Values {
				walkExpr(w, v, state)
			}
			if c.Guard != nil {
				walkExpr(w, c.Guard, state)
			}
			branch := cloneState(state)
			if c.Body != nil {
				walkStatements(w, c.Body.Statements, branch)
			}
			mergeInto(merged, merged, branch)
		}
		for k, v := range merged {
			state[k] = v
		}

	case *ast.TryCatchStmt:
		if n.Try != nil {
			walkStatements(w, n.Try.Statements, state)
		}
		if n.CatchVar != "" {
			state[n.CatchVar] = SymbolicValue{State: StateInitialized}
		}
		if n.Catch != nil {
			walkStatements(w, n.Catch.Statements, state)
		}
		if n.Finally != nil {
			walkStatements(w, n.Finally.Statements, state)
		}

	case *ast.DestructuringStmt:
		walkExpr(w, n.Source, state)
		for _, t := range n.Targets {
			state[t] = SymbolicValue{State: StateInitialized}
		}

	case *ast.BlockStmt:
		walkStatements(w, n.Statements, state)

	case *ast.ReturnStmt:
		if n.Value != nil {
			walkExpr(w, n.Value, state)
			checkFree(w, n.Value)
		}

	case *ast.ExprStmt:
		walkExpr(w, n.Expr, state)
		checkFree(w, n.Expr)

	case *ast.AutoPatternStmt:
		// Auto-pattern resolution completes at parse time (invariant iv);
		// nothing left to analyze here.
	}
}

// checkFree clears an allocation from the outstanding set when its
// variable is passed to a freeing function or escapes via return.
func checkFree(w *walker, e ast.Expression) {
	switch n := e.(type) {
	case *ast.CallExpr:
		if callee, ok := n.Callee.(*ast.Identifier); ok && config.FreeingFunctions[callee.Value] {
			for _, arg := range n.Args {
				if id, ok := arg.(*ast.Identifier); ok {
					delete(w.allocs, id.Value)
				}
			}
		}
	case *ast.Identifier:
		delete(w.allocs, n.Value)
	}
}

func cloneState(state map[string]SymbolicValue) map[string]SymbolicValue {
	out := make(map[string]SymbolicValue, len(state))
	for k, v := range state {
		out[k] = v
	}
	return out
}

// mergeInto folds two divergent branch states into dst, the way
// StaticAnalyzer::mergeStates widens disagreeing predecessor states to
// Unknown rather than guessing.
func mergeInto(dst, a, b map[string]SymbolicValue) {
	seen := make(map[string]bool)
	for k, av := range a {
		bv, ok := b[k]
		if !ok {
			dst[k] = av
			continue
		}
		dst[k] = mergeValue(av, bv)
		seen[k] = true
	}
	for k, bv := range b {
		if !seen[k] {
			dst[k] = bv
		}
	}
}

func mergeValue(a, b SymbolicValue) SymbolicValue {
	if a.State == b.State {
		out := a
		out.MayBeNull = a.MayBeNull || b.MayBeNull
		out.DefinitelyNull = a.DefinitelyNull && b.DefinitelyNull
		if a.ConstantValue != nil && b.ConstantValue != nil && *a.ConstantValue == *b.ConstantValue {
			out.ConstantValue = a.ConstantValue
		} else {
			out.ConstantValue = nil
		}
		return out
	}
	return SymbolicValue{State: StateUnknown, MayBeNull: a.MayBeNull || b.MayBeNull}
}

// evaluateExpr computes the symbolic value an expression produces,
// grounded on StaticAnalyzer::evaluateExpression: constant-folds integer
// literals and propagates nullability from nil literals and identifiers.
func evaluateExpr(state map[string]SymbolicValue, e ast.Expression) SymbolicValue {
	switch n := e.(type) {
	case *ast.IntegerLiteral:
		v := n.Value
		return SymbolicValue{State: StateInitialized, ConstantValue: &v}
	case *ast.NilLiteral:
		return SymbolicValue{State: StateNullPtr, MayBeNull: true, DefinitelyNull: true}
	case *ast.Identifier:
		if sv, ok := state[n.Value]; ok {
			return sv
		}
		return SymbolicValue{State: StateUnknown}
	case *ast.CallExpr:
		if callee, ok := n.Callee.(*ast.Identifier); ok && config.AllocatingFunctions[callee.Value] {
			return SymbolicValue{State: StateNonNull}
		}
		return SymbolicValue{State: StateUnknown}
	case *ast.UnaryExpr:
		if n.Op == "-" {
			inner := evaluateExpr(state, n.Operand)
			if inner.ConstantValue != nil {
				v := -*inner.ConstantValue
				return SymbolicValue{State: StateInitialized, ConstantValue: &v}
			}
		}
		return SymbolicValue{State: StateUnknown}
	case *ast.BinaryExpr:
		return evaluateBinary(state, n)
	default:
		return SymbolicValue{State: StateUnknown}
	}
}

// evaluateBinary constant-folds `+`/`-`/`*` over two known-constant operands
// and additionally recognizes `-`/`%` of two structurally-identical operands
// as provably zero even when neither side alone folds to a literal (e.g.
// `n / (n - n)`, spec.md §8 Scenario C), grounded on
// StaticAnalyzer::evaluateExpression's recursive BinaryExpr case.
func evaluateBinary(state map[string]SymbolicValue, n *ast.BinaryExpr) SymbolicValue {
	if (n.Op == "-" || n.Op == "%") && exprEqual(n.Left, n.Right) {
		var zero int64
		return SymbolicValue{State: StateInitialized, ConstantValue: &zero}
	}

	left := evaluateExpr(state, n.Left)
	right := evaluateExpr(state, n.Right)
	if left.ConstantValue == nil || right.ConstantValue == nil {
		return SymbolicValue{State: StateUnknown}
	}
	l, r := *left.ConstantValue, *right.ConstantValue
	var v int64
	switch n.Op {
	case "+":
		v = l + r
	case "-":
		v = l - r
	case "*":
		v = l * r
	default:
		return SymbolicValue{State: StateUnknown}
	}
	return SymbolicValue{State: StateInitialized, ConstantValue: &v}
}

// exprEqual reports whether two expressions are structurally identical for
// the narrow purpose of recognizing "a op a" shapes (identifiers and
// integer literals only — anything else is conservatively treated as
// possibly different).
func exprEqual(a, b ast.Expression) bool {
	switch av := a.(type) {
	case *ast.Identifier:
		bv, ok := b.(*ast.Identifier)
		return ok && av.Value == bv.Value
	case *ast.IntegerLiteral:
		bv, ok := b.(*ast.IntegerLiteral)
		return ok && av.Value == bv.Value
	default:
		return false
	}
}
