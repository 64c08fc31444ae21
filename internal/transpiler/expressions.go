package transpiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lppc/transpiler/internal/ast"
	"github.com/lppc/transpiler/internal/config"
)

// expr renders e as a single C++ expression fragment with no trailing
// newline.
func (t *Transpiler) expr(e ast.Expression) string {
	return t.printExpr(e, 0)
}

func (t *Transpiler) printExpr(e ast.Expression, parentPrec int) string {
	if e == nil {
		return ""
	}
	switch n := e.(type) {
	case *ast.IntegerLiteral:
		return strconv.FormatInt(n.Value, 10)

	case *ast.FloatLiteral:
		return strconv.FormatFloat(n.Value, 'g', -1, 64)

	case *ast.BigIntLiteral:
		return fmt.Sprintf(`"%s"_bigint`, n.Digits)

	case *ast.RationalLiteral:
		return fmt.Sprintf("(%s.0/%s.0)", n.Num, n.Denom)

	case *ast.StringLiteral:
		return strconv.Quote(n.Value)

	case *ast.TemplateLiteral:
		return t.templateLiteral(n)

	case *ast.BoolLiteral:
		if n.Value {
			return "true"
		}
		return "false"

	case *ast.NilLiteral:
		return "std::nullopt"

	case *ast.CharLiteral:
		return "'" + string(n.Value) + "'"

	case *ast.Identifier:
		return n.Value

	case *ast.BinaryExpr:
		if n.Op == "??" {
			return t.nullishCoalesce(n)
		}
		op := cppBinaryOp(n.Op)
		return fmt.Sprintf("(%s %s %s)", t.printExpr(n.Left, 0), op, t.printExpr(n.Right, 0))

	case *ast.UnaryExpr:
		return n.Op + t.printExpr(n.Operand, 9)

	case *ast.PostfixExpr:
		return t.printExpr(n.Operand, 9) + n.Op

	case *ast.RangeExpr:
		// IIFE building a vector of ints, ported from Transpiler::visit(RangeExpr&):
		// a non-zero step is required at runtime or the loop never reaches end.
		step := "1"
		if n.Step != nil {
			step = t.expr(n.Step)
		}
		return fmt.Sprintf("([&]() { std::vector<int> __range; int __start = %s; int __end = %s; int __step = %s; "+
			"if (__step > 0) { for (int i = __start; i <= __end; i += __step) __range.push_back(i); } "+
			"else { for (int i = __start; i >= __end; i += __step) __range.push_back(i); } return __range; })()",
			t.expr(n.Start), t.expr(n.End), step)

	case *ast.MapExpr:
		return fmt.Sprintf("([&]() { std::vector<decltype((%s)(*std::begin(%s)))> __result; "+
			"for (auto& __item : %s) { __result.push_back((%s)(__item)); } return __result; })()",
			t.expr(n.Fn), t.expr(n.List), t.expr(n.List), t.expr(n.Fn))

	case *ast.FilterExpr:
		return fmt.Sprintf("([&]() { std::remove_reference_t<decltype(%s)> __result; "+
			"for (auto& __item : %s) { if ((%s)(__item)) { __result.push_back(__item); } } return __result; })()",
			t.expr(n.List), t.expr(n.List), t.expr(n.Predicate))

	case *ast.ReduceExpr:
		return fmt.Sprintf("([&]() { auto __it = std::begin(%s); auto __end = std::end(%s); "+
			"auto __acc = *__it; for (++__it; __it != __end; ++__it) { __acc = (%s)(__acc, *__it); } return __acc; })()",
			t.expr(n.List), t.expr(n.List), t.expr(n.Fn))

	case *ast.IterateWhileExpr:
		return fmt.Sprintf("([&]() { std::vector<decltype(%s)> __result; auto __current = %s; "+
			"while ((%s)(__current)) { __result.push_back(__current); ++__current; } return __result; })()",
			t.expr(n.Start), t.expr(n.Start), t.expr(n.Cond))

	case *ast.AutoIterateExpr:
		return fmt.Sprintf("([&]() { std::vector<decltype(%s)> __result; auto __current = %s; "+
			"for (int __guard = 0; __guard < 100000; ++__guard) { auto __next = (%s)(__current); "+
			"if (__next == __current) break; __result.push_back(__current); __current = __next; } return __result; })()",
			t.expr(n.Start), t.expr(n.Start), t.expr(n.Fn))

	case *ast.IterateStepExpr:
		return fmt.Sprintf("([&]() { std::vector<decltype(%s)> __result; auto __current = %s; auto __bound = %s; "+
			"while (__current < __bound) { __result.push_back(__current); __current = (%s)(__current); } return __result; })()",
			t.expr(n.Start), t.expr(n.Start), t.expr(n.Bound), t.expr(n.Step))

	case *ast.CallExpr:
		return fmt.Sprintf("%s(%s)", t.printExpr(n.Callee, 9), t.exprList(n.Args))

	case *ast.LambdaExpr:
		return t.lambda(n)

	case *ast.TernaryExpr:
		return fmt.Sprintf("(%s ? %s : %s)", t.expr(n.Cond), t.expr(n.Then), t.expr(n.Else))

	case *ast.PipelineExpr:
		s := t.expr(n.Initial)
		for _, stage := range n.Stages {
			s = fmt.Sprintf("%s(%s)", t.printExpr(stage, 9), s)
		}
		return s

	case *ast.CompositionExpr:
		return t.composition(n)

	case *ast.ArrayLit:
		return t.arrayLit(n)

	case *ast.TupleLit:
		return fmt.Sprintf("std::make_tuple(%s)", t.exprList(n.Elements))

	case *ast.ListComprehension:
		return t.listComprehension(n)

	case *ast.SpreadExpr:
		return "..." + t.expr(n.Value)

	case *ast.IndexExpr:
		if n.IsDot {
			if n.IsOptional {
				// `a?.b` guards the access behind a null check (spec §4.6).
				return fmt.Sprintf(
					"([&]() { auto __obj = %s; return __obj != nullptr ? __obj->%s : nullptr; })()",
					t.expr(n.Object), n.Member)
			}
			return t.printExpr(n.Object, 9) + "." + n.Member
		}
		return fmt.Sprintf("%s[%s]", t.printExpr(n.Object, 9), t.expr(n.Index))

	case *ast.ObjectLit:
		return t.objectLit(n)

	case *ast.MatchExpr:
		return t.matchExpr(n)

	case *ast.CastExpr:
		return fmt.Sprintf("static_cast<%s>(%s)", config.LowerFullType(n.TargetType), t.expr(n.Expr))

	case *ast.AwaitExpr:
		return t.expr(n.Expr) + ".get()"

	case *ast.ThrowExpr:
		return fmt.Sprintf("(throw std::runtime_error(%s), std::any{})", t.expr(n.Expr))

	case *ast.YieldExpr:
		return "co_yield " + t.expr(n.Expr)

	case *ast.TypeOfExpr:
		return fmt.Sprintf("typeid(%s).name()", t.expr(n.Expr))

	case *ast.InstanceOfExpr:
		return fmt.Sprintf("(dynamic_cast<const %s*>(&%s) != nullptr)", config.LowerTypeName(n.TargetType), t.expr(n.Expr))

	case *ast.QuantumMethodCallExpr:
		return fmt.Sprintf("%s.%s(%s)", t.expr(n.VarRef), n.Method, t.exprList(n.Args))

	default:
		return "/* unsupported expression */"
	}
}

// cppBinaryOp maps L's keyword operators to their C++ spellings; every
// symbolic operator already has a direct C++ equivalent.
func cppBinaryOp(op string) string {
	switch op {
	case "or":
		return "||"
	case "and":
		return "&&"
	default:
		return op
	}
}

// nullishCoalesce lowers `a ?? b` to the IIFE spec.md §4.6 names, ported
// from original_source/src/Transpiler.cpp's BinaryExpr "??" special case:
// the left operand is evaluated once into a temporary, and only a pointer
// result is tested against nullptr before falling back to the right
// operand.
func (t *Transpiler) nullishCoalesce(n *ast.BinaryExpr) string {
	return fmt.Sprintf(
		"([&]() { auto __tmp = %s; if constexpr (std::is_pointer_v<decltype(__tmp)>) return __tmp != nullptr ? __tmp : %s; else return __tmp; })()",
		t.expr(n.Left), t.expr(n.Right))
}

// templateLiteral lowers a template literal to the concatenation form
// spec.md §4.6 requires: `std::string("…")` pieces joined with interpolated
// expressions, each converted via `std::to_string` (arithmetic) or
// `std::string` (everything else), ported from
// original_source/src/Transpiler.cpp's TemplateLiteral visit. This avoids
// `std::ostringstream`, which the fixed, byte-identical preamble
// (internal/transpiler/preamble.go) does not `#include <sstream>` for.
func (t *Transpiler) templateLiteral(n *ast.TemplateLiteral) string {
	var pieces []string
	for i, part := range n.Parts {
		pieces = append(pieces, fmt.Sprintf("std::string(%s)", strconv.Quote(part)))
		if i < len(n.Exprs) {
			pieces = append(pieces, t.templateInterpolation(n.Exprs[i]))
		}
	}
	if len(pieces) == 0 {
		return `std::string("")`
	}
	return "(" + strings.Join(pieces, " + ") + ")"
}

// templateInterpolation renders one `${expr}` slot as an IIFE that
// stringifies an arithmetic value with std::to_string and falls back to
// std::string construction otherwise.
func (t *Transpiler) templateInterpolation(e ast.Expression) string {
	return fmt.Sprintf(
		"([&]() { auto __v = (%s); if constexpr (std::is_arithmetic_v<decltype(__v)>) return std::to_string(__v); else return std::string(__v); })()",
		t.expr(e))
}

// lambda lowers to an anonymous by-reference-capturing C++ lambda. It
// advances the per-Transpiler-instance lambdaCounter, which names the
// accumulators of list comprehensions.
func (t *Transpiler) lambda(n *ast.LambdaExpr) string {
	t.lambdaCounter++
	params := make([]string, len(n.Params))
	for i, p := range n.Params {
		typeName := p.TypeName
		if typeName == "" {
			typeName = "auto"
		}
		params[i] = typeName + " " + p.Name
	}
	var b strings.Builder
	b.WriteString("[&](" + strings.Join(params, ", ") + ") {")
	switch body := n.Body.(type) {
	case *ast.BlockStmt:
		sub := New()
		sub.indent = t.indent + 1
		sub.lambdaCounter = t.lambdaCounter
		sub.matchCounter = t.matchCounter
		sub.transpileStatements(body.Statements)
		b.WriteString("\n" + sub.buf.String())
		t.lambdaCounter = sub.lambdaCounter
		t.matchCounter = sub.matchCounter
		b.WriteString(strings.Repeat("    ", t.indent) + "}")
	case ast.Expression:
		b.WriteString(" return " + t.expr(body) + "; }")
	}
	return b.String()
}

func (t *Transpiler) composition(n *ast.CompositionExpr) string {
	if len(n.Functions) == 0 {
		return "[](auto x) { return x; }"
	}
	inner := fmt.Sprintf("%s(x)", t.printExpr(n.Functions[len(n.Functions)-1], 9))
	for i := len(n.Functions) - 2; i >= 0; i-- {
		inner = fmt.Sprintf("%s(%s)", t.printExpr(n.Functions[i], 9), inner)
	}
	return fmt.Sprintf("[=](auto&& x) { return %s; }", inner)
}

// arrayLit lowers an array literal, ported from Transpiler::visit(ArrayExpr&):
// a spread-free literal decltype()s its first element; one containing a
// SpreadExpr becomes an IIFE that inserts each spread range in turn.
func (t *Transpiler) arrayLit(n *ast.ArrayLit) string {
	hasSpread := false
	for _, el := range n.Elements {
		if _, ok := el.(*ast.SpreadExpr); ok {
			hasSpread = true
			break
		}
	}
	if !hasSpread {
		if len(n.Elements) == 0 {
			return "std::vector<int>{}"
		}
		return fmt.Sprintf("std::vector<decltype(%s)>{%s}", t.expr(n.Elements[0]), t.exprList(n.Elements))
	}
	var b strings.Builder
	b.WriteString("([&]() { std::vector<std::any> __arr; ")
	for _, el := range n.Elements {
		if sp, ok := el.(*ast.SpreadExpr); ok {
			fmt.Fprintf(&b, "__arr.insert(__arr.end(), (%s).begin(), (%s).end()); ", t.expr(sp.Value), t.expr(sp.Value))
		} else {
			fmt.Fprintf(&b, "__arr.push_back(%s); ", t.expr(el))
		}
	}
	b.WriteString("return __arr; })()")
	return b.String()
}

// listComprehension names its accumulator with the per-instance
// lambdaCounter, matching Transpiler::visit(ListComprehension&)'s
// "__comp_" + lambdaCounter++ naming.
func (t *Transpiler) listComprehension(n *ast.ListComprehension) string {
	t.lambdaCounter++
	tempVar := fmt.Sprintf("__comp_%d", t.lambdaCounter)
	var b strings.Builder
	fmt.Fprintf(&b, "([&]() { std::vector<decltype(%s)> %s; for (auto %s : %s) { ", t.expr(n.Expr), tempVar, n.Var, t.expr(n.Range))
	for _, p := range n.Predicates {
		fmt.Fprintf(&b, "if (!(%s)) continue; ", t.expr(p))
	}
	fmt.Fprintf(&b, "%s.push_back(%s); } return %s; })()", tempVar, t.expr(n.Expr), tempVar)
	return b.String()
}

func (t *Transpiler) objectLit(n *ast.ObjectLit) string {
	parts := make([]string, len(n.Props))
	for i, p := range n.Props {
		parts[i] = fmt.Sprintf("{%q, %s}", p.Key, t.expr(p.Value))
	}
	return fmt.Sprintf("std::map<std::string, std::any>{%s}", strings.Join(parts, ", "))
}

// matchExpr lowers to an immediately-invoked lambda containing an
// if/else-if chain over pattern equality, since C++ has no structural
// pattern matching. Each MatchExpr gets a distinct synthesized local name
// from the per-instance matchCounter.
func (t *Transpiler) matchExpr(n *ast.MatchExpr) string {
	t.matchCounter++
	scrutineeVar := fmt.Sprintf("lppc_match_%d", t.matchCounter)
	var b strings.Builder
	fmt.Fprintf(&b, "([&]{ auto %s = %s; ", scrutineeVar, t.expr(n.Scrutinee))
	for i, c := range n.Cases {
		kw := "if"
		if i > 0 {
			kw = "else if"
		}
		cond := fmt.Sprintf("%s == %s", scrutineeVar, t.expr(c.Pattern))
		if c.Guard != nil {
			cond = fmt.Sprintf("(%s) && (%s)", cond, t.expr(c.Guard))
		}
		fmt.Fprintf(&b, "%s (%s) { return %s; } ", kw, cond, t.expr(c.Body))
	}
	b.WriteString("throw std::runtime_error(\"no match arm satisfied\"); })()")
	return b.String()
}
