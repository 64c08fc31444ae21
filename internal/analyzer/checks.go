package analyzer

import (
	"github.com/lppc/transpiler/internal/ast"
	"github.com/lppc/transpiler/internal/diagnostics"
)

// walkExpr recurses through an expression, running the six
// expression-level checks (null-deref, division-by-zero, uninitialized
// read, integer overflow, buffer overflow, zero range step) as it goes,
// grounded on StaticAnalyzer's
// checkNullDereference/checkDivisionByZero/checkUninitializedRead/
// checkIntegerOverflow visitor methods.
func walkExpr(w *walker, e ast.Expression, state map[string]SymbolicValue) {
	if e == nil {
		return
	}
	switch n := e.(type) {
	case *ast.Identifier:
		if sv, ok := state[n.Value]; ok && sv.State == StateUninitialized {
			w.add(diagnostics.New(diagnostics.CodeUninitRead, diagnostics.Error, diagnostics.PhaseAnalyzer, n.Tok, n.Value))
		}

	case *ast.BinaryExpr:
		walkExpr(w, n.Left, state)
		walkExpr(w, n.Right, state)
		checkDivisionByZero(w, n, state)
		checkIntegerOverflow(w, n)

	case *ast.UnaryExpr:
		walkExpr(w, n.Operand, state)

	case *ast.PostfixExpr:
		walkExpr(w, n.Operand, state)

	case *ast.IndexExpr:
		walkExpr(w, n.Object, state)
		if n.Index != nil {
			walkExpr(w, n.Index, state)
			checkBufferOverflow(w, n, state)
		}
		if n.IsDot {
			checkNullDeref(w, n, state)
		}

	case *ast.CallExpr:
		walkExpr(w, n.Callee, state)
		for _, a := range n.Args {
			walkExpr(w, a, state)
		}

	case *ast.LambdaExpr:
		inner := cloneState(state)
		for _, p := range n.Params {
			inner[p.Name] = SymbolicValue{State: StateInitialized}
		}
		switch body := n.Body.(type) {
		case *ast.BlockStmt:
			walkStatements(w, body.Statements, inner)
		case ast.Expression:
			walkExpr(w, body, inner)
		}

	case *ast.TernaryExpr:
		walkExpr(w, n.Cond, state)
		walkExpr(w, n.Then, state)
		walkExpr(w, n.Else, state)

	case *ast.PipelineExpr:
		walkExpr(w, n.Initial, state)
		for _, s := range n.Stages {
			walkExpr(w, s, state)
		}

	case *ast.CompositionExpr:
		for _, f := range n.Functions {
			walkExpr(w, f, state)
		}

	case *ast.ArrayLit:
		for _, el := range n.Elements {
			walkExpr(w, el, state)
		}

	case *ast.TupleLit:
		for _, el := range n.Elements {
			walkExpr(w, el, state)
		}

	case *ast.ListComprehension:
		walkExpr(w, n.Range, state)
		inner := cloneState(state)
		inner[n.Var] = SymbolicValue{State: StateInitialized}
		walkExpr(w, n.Expr, inner)
		for _, p := range n.Predicates {
			walkExpr(w, p, inner)
		}

	case *ast.SpreadExpr:
		walkExpr(w, n.Value, state)

	case *ast.ObjectLit:
		for _, p := range n.Props {
			walkExpr(w, p.Value, state)
		}

	case *ast.MatchExpr:
		walkExpr(w, n.Scrutinee, state)
		for _, c := range n.Cases {
			if c.Guard != nil {
				walkExpr(w, c.Guard, state)
			}
			walkExpr(w, c.Body, state)
		}

	case *ast.CastExpr:
		walkExpr(w, n.Expr, state)

	case *ast.AwaitExpr:
		walkExpr(w, n.Expr, state)

	case *ast.ThrowExpr:
		walkExpr(w, n.Expr, state)

	case *ast.YieldExpr:
		walkExpr(w, n.Expr, state)

	case *ast.TypeOfExpr:
		walkExpr(w, n.Expr, state)

	case *ast.InstanceOfExpr:
		walkExpr(w, n.Expr, state)

	case *ast.QuantumMethodCallExpr:
		walkExpr(w, n.VarRef, state)
		for _, a := range n.Args {
			walkExpr(w, a, state)
		}

	case *ast.RangeExpr:
		walkExpr(w, n.Start, state)
		walkExpr(w, n.End, state)
		if n.Step != nil {
			walkExpr(w, n.Step, state)
			checkRangeZeroStep(w, n)
		}

	case *ast.MapExpr:
		walkExpr(w, n.List, state)
		walkExpr(w, n.Fn, state)

	case *ast.FilterExpr:
		walkExpr(w, n.List, state)
		walkExpr(w, n.Predicate, state)

	case *ast.ReduceExpr:
		walkExpr(w, n.List, state)
		walkExpr(w, n.Fn, state)

	case *ast.IterateWhileExpr:
		walkExpr(w, n.Start, state)
		walkExpr(w, n.Cond, state)

	case *ast.AutoIterateExpr:
		walkExpr(w, n.Start, state)
		walkExpr(w, n.Fn, state)

	case *ast.IterateStepExpr:
		walkExpr(w, n.Start, state)
		walkExpr(w, n.Bound, state)
		walkExpr(w, n.Step, state)

	case *ast.TemplateLiteral:
		for _, ex := range n.Exprs {
			walkExpr(w, ex, state)
		}

	default:
		// Literals (Integer/Float/BigInt/Rational/String/Bool/Nil/Char) and
		// any future leaf expression kind carry no sub-expressions to walk.
	}
}

// checkNullDeref flags `obj.member` when obj's symbolic state says it may
// be null, grounded on StaticAnalyzer::checkNullDereference. A provably
// null receiver is an Error; a merely possibly-null one is a Warning
// (spec §4.5), so a nullable parameter's dereference never aborts the
// pipeline on its own.
func checkNullDeref(w *walker, n *ast.IndexExpr, state map[string]SymbolicValue) {
	ident, ok := n.Object.(*ast.Identifier)
	if !ok || n.IsOptional {
		return
	}
	sv, ok := state[ident.Value]
	if !ok || (!sv.MayBeNull && !sv.DefinitelyNull) {
		return
	}
	sev := diagnostics.Warning
	if sv.DefinitelyNull {
		sev = diagnostics.Error
	}
	w.add(diagnostics.New(diagnostics.CodeNullDeref, sev, diagnostics.PhaseAnalyzer, n.Tok, ident.Value))
}

// checkBufferOverflow flags indexing by a known-negative constant,
// grounded on StaticAnalyzer::checkBufferOverflow.
func checkBufferOverflow(w *walker, n *ast.IndexExpr, state map[string]SymbolicValue) {
	sv := evaluateExpr(state, n.Index)
	if sv.ConstantValue != nil && *sv.ConstantValue < 0 {
		ident, _ := n.Object.(*ast.Identifier)
		name := "index"
		if ident != nil {
			name = ident.Value
		}
		w.add(diagnostics.New(diagnostics.CodeBufferOverflow, diagnostics.Error, diagnostics.PhaseAnalyzer, n.Tok, name))
	}
}

// checkDivisionByZero flags `/` and `%` whose divisor is a known-zero
// constant, grounded on StaticAnalyzer::checkDivisionByZero /
// canBeZero.
func checkDivisionByZero(w *walker, n *ast.BinaryExpr, state map[string]SymbolicValue) {
	if n.Op != "/" && n.Op != "%" {
		return
	}
	sv := evaluateExpr(state, n.Right)
	if sv.ConstantValue != nil && *sv.ConstantValue == 0 {
		w.add(diagnostics.New(diagnostics.CodeDivByZero, diagnostics.Error, diagnostics.PhaseAnalyzer, n.Tok))
	}
}

// checkIntegerOverflow constant-folds `+`, `-`, `*` over two integer
// literals and flags results outside the signed-32-bit range, grounded on
// StaticAnalyzer::checkIntegerOverflow.
func checkIntegerOverflow(w *walker, n *ast.BinaryExpr) {
	left, ok1 := n.Left.(*ast.IntegerLiteral)
	right, ok2 := n.Right.(*ast.IntegerLiteral)
	if !ok1 || !ok2 {
		return
	}
	var result int64
	switch n.Op {
	case "+":
		result = left.Value + right.Value
	case "-":
		result = left.Value - right.Value
	case "*":
		result = left.Value * right.Value
	default:
		return
	}
	const int32Max = 1<<31 - 1
	const int32Min = -(1 << 31)
	if result > int32Max || result < int32Min {
		w.add(diagnostics.New(diagnostics.CodeIntOverflow, diagnostics.Warning, diagnostics.PhaseAnalyzer, n.Tok))
	}
}

// checkRangeZeroStep: Open Question resolved in SPEC_FULL.md §9 — a range
// with a literal step of 0 never terminates at runtime; flagged as a Note
// (allowed, but surfaced) rather than rejected outright.
func checkRangeZeroStep(w *walker, n *ast.RangeExpr) {
	lit, ok := n.Step.(*ast.IntegerLiteral)
	if ok && lit.Value == 0 {
		w.add(diagnostics.New(diagnostics.CodeRangeZeroStep, diagnostics.Note, diagnostics.PhaseAnalyzer, n.Tok))
	}
}
