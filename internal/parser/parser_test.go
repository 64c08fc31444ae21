package parser

import (
	"testing"

	"github.com/lppc/transpiler/internal/ast"
	"github.com/lppc/transpiler/internal/diagnostics"
	"github.com/lppc/transpiler/internal/lexer"
)

func parseSrc(t *testing.T, src string) (*ast.Program, []*diagnostics.Diagnostic) {
	t.Helper()
	toks := lexer.New(src).Tokenize()
	p := New(toks, "test.l")
	return p.ParseProgram()
}

// Scenario A (spec §8): `2 + 3 * 4` parses respecting precedence.
func TestScenarioA_PrecedenceInInitializer(t *testing.T) {
	prog, diags := parseSrc(t, "#pragma paradigm hybrid\nfn main() -> int { let x = 2 + 3 * 4; return x; }")
	for _, d := range diags {
		if d.Severity == diagnostics.Error {
			t.Fatalf("unexpected error diagnostic: %s", d.String())
		}
	}
	if len(prog.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(prog.Functions))
	}
	body := prog.Functions[0].Body.Statements
	if len(body) == 0 {
		t.Fatal("empty function body")
	}
	varDecl, ok := body[0].(*ast.VarDeclStmt)
	if !ok {
		t.Fatalf("first statement is %T, want *ast.VarDeclStmt", body[0])
	}
	bin, ok := varDecl.Initializer.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("initializer is %T, want *ast.BinaryExpr", varDecl.Initializer)
	}
	if bin.Op != "+" {
		t.Fatalf("top operator = %q, want +", bin.Op)
	}
	rhs, ok := bin.Right.(*ast.BinaryExpr)
	if !ok || rhs.Op != "*" {
		t.Fatalf("right operand = %#v, want Binary(*)", bin.Right)
	}
}

// Testable property 5: a program without #pragma paradigm produces at
// least one Error diagnostic.
func TestParadigmRequired(t *testing.T) {
	_, diags := parseSrc(t, "fn f() -> int { let x: int; return x; }")
	foundParadigmError := false
	for _, d := range diags {
		if d.Code == diagnostics.CodeParadigmRequired && d.Severity == diagnostics.Error {
			foundParadigmError = true
		}
	}
	if !foundParadigmError {
		t.Fatal("expected a PARADIGM-REQUIRED error diagnostic when pragma is absent")
	}
}

// Scenario D: `0..5..1` parses to a RangeExpr with start/end/step.
func TestScenarioD_RangeExpression(t *testing.T) {
	prog, diags := parseSrc(t, "#pragma paradigm hybrid\nfn f() -> int { let r = 0..5..1; return 0; }")
	for _, d := range diags {
		if d.Severity == diagnostics.Error {
			t.Fatalf("unexpected error: %s", d.String())
		}
	}
	varDecl := prog.Functions[0].Body.Statements[0].(*ast.VarDeclStmt)
	rng, ok := varDecl.Initializer.(*ast.RangeExpr)
	if !ok {
		t.Fatalf("initializer is %T, want *ast.RangeExpr", varDecl.Initializer)
	}
	if rng.Start == nil || rng.End == nil || rng.Step == nil {
		t.Fatal("range is missing a start/end/step operand")
	}
}

// Scenario E: pipeline `5 |> inc |> double` parses as a PipelineExpr with
// two stages, preserving left-to-right order.
func TestScenarioE_Pipeline(t *testing.T) {
	prog, diags := parseSrc(t, "#pragma paradigm hybrid\nfn f() -> int { let r = 5 |> inc |> double; return 0; }")
	for _, d := range diags {
		if d.Severity == diagnostics.Error {
			t.Fatalf("unexpected error: %s", d.String())
		}
	}
	varDecl := prog.Functions[0].Body.Statements[0].(*ast.VarDeclStmt)
	pipe, ok := varDecl.Initializer.(*ast.PipelineExpr)
	if !ok {
		t.Fatalf("initializer is %T, want *ast.PipelineExpr", varDecl.Initializer)
	}
	if len(pipe.Stages) != 2 {
		t.Fatalf("expected 2 pipeline stages, got %d", len(pipe.Stages))
	}
	first, ok := pipe.Stages[0].(*ast.Identifier)
	if !ok || first.Value != "inc" {
		t.Fatalf("first stage = %#v, want Identifier(inc)", pipe.Stages[0])
	}
	second, ok := pipe.Stages[1].(*ast.Identifier)
	if !ok || second.Value != "double" {
		t.Fatalf("second stage = %#v, want Identifier(double)", pipe.Stages[1])
	}
}

// Testable property 10: implicit-return idempotence. A function whose last
// statement is an ExprStmt gets rewritten to a ReturnStmt of the same
// expression.
func TestImplicitReturnRewrite(t *testing.T) {
	prog, diags := parseSrc(t, "#pragma paradigm hybrid\nfn f() -> int { 1 + 1; }")
	for _, d := range diags {
		if d.Severity == diagnostics.Error {
			t.Fatalf("unexpected error: %s", d.String())
		}
	}
	body := prog.Functions[0].Body.Statements
	last := body[len(body)-1]
	ret, ok := last.(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("last statement is %T, want *ast.ReturnStmt (implicit return)", last)
	}
	if _, ok := ret.Value.(*ast.BinaryExpr); !ok {
		t.Fatalf("implicit return value is %T, want *ast.BinaryExpr", ret.Value)
	}
}

// Testable property 3: parser determinism — identical token streams yield
// byte-identical diagnostics (compared here by code/message/position,
// since *Diagnostic is a pointer type).
func TestParserDeterminism(t *testing.T) {
	src := "#pragma paradigm hybrid\nfn f() -> int { return n / (n - n); }"
	_, d1 := parseSrc(t, src)
	_, d2 := parseSrc(t, src)
	if len(d1) != len(d2) {
		t.Fatalf("diagnostic counts differ: %d vs %d", len(d1), len(d2))
	}
	for i := range d1 {
		if d1[i].Code != d2[i].Code || d1[i].Message != d2[i].Message ||
			d1[i].Line != d2[i].Line || d1[i].Column != d2[i].Column {
			t.Fatalf("diagnostic %d differs: %+v vs %+v", i, d1[i], d2[i])
		}
	}
}

// Auto-pattern expansion (spec §4.2, scenario F): `autopattern Observer
// News;` synthesizes a class carrying the resolved pattern name.
func TestAutoPatternExpansion(t *testing.T) {
	prog, diags := parseSrc(t, "#pragma paradigm hybrid\nautopattern Observer News;")
	for _, d := range diags {
		if d.Severity == diagnostics.Error {
			t.Fatalf("unexpected error: %s", d.String())
		}
	}
	if len(prog.Classes) != 1 {
		t.Fatalf("expected 1 synthesized class, got %d", len(prog.Classes))
	}
	cls := prog.Classes[0]
	if cls.Name != "News" || cls.DesignPattern != "Observer" {
		t.Fatalf("got class %q pattern %q, want News/Observer", cls.Name, cls.DesignPattern)
	}
	foundAttach, foundNotify := false, false
	for _, m := range cls.Methods {
		if m.Name == "attach" {
			foundAttach = true
		}
		if m.Name == "notify" {
			foundNotify = true
		}
	}
	if !foundAttach || !foundNotify {
		t.Fatalf("Observer class missing attach/notify methods: %+v", cls.Methods)
	}
}

// Unknown autopattern keyword defaults to Factory.
func TestAutoPatternDefaultsToFactory(t *testing.T) {
	prog, _ := parseSrc(t, "#pragma paradigm hybrid\nautopattern Nonsense Thing;")
	if len(prog.Classes) != 1 || prog.Classes[0].DesignPattern != "Factory" {
		t.Fatalf("expected default Factory pattern, got %+v", prog.Classes)
	}
}

// Testable property 7: `#pragma notation linear` flattens precedence so
// `1 + 2 * 3` parses as `(1 + 2) * 3`.
func TestLinearNotationFlattensPrecedence(t *testing.T) {
	prog, diags := parseSrc(t, "#pragma paradigm hybrid\n#pragma notation linear\nfn f() -> int { let x = 1 + 2 * 3; return x; }")
	for _, d := range diags {
		if d.Severity == diagnostics.Error {
			t.Fatalf("unexpected error: %s", d.String())
		}
	}
	varDecl := prog.Functions[0].Body.Statements[0].(*ast.VarDeclStmt)
	bin, ok := varDecl.Initializer.(*ast.BinaryExpr)
	if !ok || bin.Op != "*" {
		t.Fatalf("linear mode: top operator = %#v, want Binary(*)", varDecl.Initializer)
	}
	lhs, ok := bin.Left.(*ast.BinaryExpr)
	if !ok || lhs.Op != "+" {
		t.Fatalf("linear mode: left operand = %#v, want Binary(+)", bin.Left)
	}
}

// Custom notation (spec §4.3): overriding an operator's precedence on a
// custom table changes the shape of the parsed tree, not just a mode flag.
func TestCustomNotationOverrideChangesTree(t *testing.T) {
	prog, diags := parseSrc(t, "#pragma paradigm hybrid\n#pragma notation custom tight\n#pragma operator + 11 left\nfn f() -> int { let x = 1 + 2 * 3; return x; }")
	for _, d := range diags {
		if d.Severity == diagnostics.Error {
			t.Fatalf("unexpected error: %s", d.String())
		}
	}
	varDecl := prog.Functions[0].Body.Statements[0].(*ast.VarDeclStmt)
	bin, ok := varDecl.Initializer.(*ast.BinaryExpr)
	if !ok || bin.Op != "*" {
		t.Fatalf("custom override: top operator = %#v, want Binary(*)", varDecl.Initializer)
	}
	lhs, ok := bin.Left.(*ast.BinaryExpr)
	if !ok || lhs.Op != "+" {
		t.Fatalf("custom override: left operand = %#v, want Binary(+)", bin.Left)
	}
}

func TestCustomNotationRightAssocOverride(t *testing.T) {
	prog, diags := parseSrc(t, "#pragma paradigm hybrid\n#pragma notation custom ralg\n#pragma operator - 8 right\nfn f() -> int { let x = 10 - 3 - 2; return x; }")
	for _, d := range diags {
		if d.Severity == diagnostics.Error {
			t.Fatalf("unexpected error: %s", d.String())
		}
	}
	varDecl := prog.Functions[0].Body.Statements[0].(*ast.VarDeclStmt)
	bin := varDecl.Initializer.(*ast.BinaryExpr)
	if _, ok := bin.Left.(*ast.IntegerLiteral); !ok {
		t.Fatalf("right-assoc: left operand = %#v, want IntegerLiteral(10)", bin.Left)
	}
	rhs, ok := bin.Right.(*ast.BinaryExpr)
	if !ok || rhs.Op != "-" {
		t.Fatalf("right-assoc: right operand = %#v, want Binary(-)", bin.Right)
	}
}

// An operator pragma outside a custom table is ignored: the math table's
// core fixity stays authoritative.
func TestOperatorPragmaIgnoredOutsideCustomTable(t *testing.T) {
	prog, _ := parseSrc(t, "#pragma paradigm hybrid\n#pragma operator + 11 left\nfn f() -> int { let x = 1 + 2 * 3; return x; }")
	varDecl := prog.Functions[0].Body.Statements[0].(*ast.VarDeclStmt)
	bin := varDecl.Initializer.(*ast.BinaryExpr)
	if bin.Op != "+" {
		t.Fatalf("override outside custom mode must not apply; top operator = %q, want +", bin.Op)
	}
}

func TestInstanceOfParses(t *testing.T) {
	prog, diags := parseSrc(t, "#pragma paradigm hybrid\nfn f(s: Shape) -> bool { return s instanceof Circle; }")
	for _, d := range diags {
		if d.Severity == diagnostics.Error {
			t.Fatalf("unexpected error: %s", d.String())
		}
	}
	ret := prog.Functions[0].Body.Statements[0].(*ast.ReturnStmt)
	inst, ok := ret.Value.(*ast.InstanceOfExpr)
	if !ok {
		t.Fatalf("return value is %T, want *ast.InstanceOfExpr", ret.Value)
	}
	if inst.TargetType != "Circle" {
		t.Fatalf("instanceof target = %q, want Circle", inst.TargetType)
	}
}

func TestQuantumVarDeclAndObserve(t *testing.T) {
	prog, diags := parseSrc(t, "#pragma paradigm hybrid\nfn f() -> int { quantum q = [1, 2, 3]; let v = q.observe(); return v; }")
	for _, d := range diags {
		if d.Severity == diagnostics.Error {
			t.Fatalf("unexpected error: %s", d.String())
		}
	}
	body := prog.Functions[0].Body.Statements
	q, ok := body[0].(*ast.QuantumVarDeclStmt)
	if !ok || len(q.States) != 3 || len(q.Weights) != 0 {
		t.Fatalf("quantum decl = %#v, want 3 uniform states", body[0])
	}
	v := body[1].(*ast.VarDeclStmt)
	call, ok := v.Initializer.(*ast.QuantumMethodCallExpr)
	if !ok || call.Method != "observe" {
		t.Fatalf("initializer = %#v, want QuantumMethodCall(observe)", v.Initializer)
	}
}

func TestQuantumWeightsLengthMismatchIsError(t *testing.T) {
	_, diags := parseSrc(t, "#pragma paradigm hybrid\nfn f() -> int { quantum q = [1, 2, 3] weights [1, 2]; return 0; }")
	found := false
	for _, d := range diags {
		if d.Severity == diagnostics.Error {
			found = true
		}
	}
	if !found {
		t.Fatal("expected an error for a weight vector shorter than the state list")
	}
}

func TestExportedFunctionIsRegistered(t *testing.T) {
	prog, diags := parseSrc(t, "#pragma paradigm hybrid\nexport fn util() -> int { return 1; }")
	for _, d := range diags {
		if d.Severity == diagnostics.Error {
			t.Fatalf("unexpected error: %s", d.String())
		}
	}
	if len(prog.Exports) != 1 {
		t.Fatalf("expected 1 export, got %d", len(prog.Exports))
	}
	found := false
	for _, fn := range prog.Functions {
		if fn.Name == "util" {
			found = true
		}
	}
	if !found {
		t.Fatal("exported function missing from Program.Functions")
	}
}

// Recovery: a syntax error still yields a best-effort AST covering later
// declarations (spec §4.2 synchronize()).
func TestErrorRecoveryContinuesParsing(t *testing.T) {
	prog, diags := parseSrc(t, "#pragma paradigm hybrid\nfn bad( -> int { return 1; }\nfn good() -> int { return 2; }")
	if len(diags) == 0 {
		t.Fatal("expected at least one diagnostic from the malformed first function")
	}
	found := false
	for _, fn := range prog.Functions {
		if fn.Name == "good" {
			found = true
		}
	}
	if !found {
		t.Fatal("parser did not recover to parse the well-formed second function")
	}
}
