package transpiler

import (
	"strings"
	"testing"

	"github.com/lppc/transpiler/internal/lexer"
	"github.com/lppc/transpiler/internal/parser"
)

func transpileSrc(t *testing.T, src string) string {
	t.Helper()
	toks := lexer.New(src).Tokenize()
	p := parser.New(toks, "test.l")
	prog, diags := p.ParseProgram()
	for _, d := range diags {
		if d.Severity == "error" {
			t.Fatalf("unexpected parse error: %s", d.String())
		}
	}
	return Transpile(prog)
}

// Scenario A: the emitted text contains the exact binding-table form.
func TestScenarioA_EmitsBinaryExpression(t *testing.T) {
	out := transpileSrc(t, "#pragma paradigm hybrid\nfn main() -> int { let x = 2 + 3 * 4; return x; }")
	if !strings.Contains(out, "int x = (2 + (3 * 4));") {
		t.Fatalf("expected literal binding form in output, got:\n%s", out)
	}
}

// Scenario E: pipeline lowers to right-to-left nested calls.
func TestScenarioE_PipelineLowering(t *testing.T) {
	out := transpileSrc(t, "#pragma paradigm hybrid\nfn f() -> int { let r = 5 |> inc |> double; return 0; }")
	if !strings.Contains(out, "double(inc(5))") {
		t.Fatalf("expected double(inc(5)) in output, got:\n%s", out)
	}
}

// Scenario F: an auto-pattern class emits the resolved macro hook.
func TestScenarioF_AutoPatternMacroHook(t *testing.T) {
	out := transpileSrc(t, "#pragma paradigm hybrid\nautopattern Observer News;")
	if !strings.Contains(out, "class News") {
		t.Fatalf("expected class News in output, got:\n%s", out)
	}
	if !strings.Contains(out, "vector<Observer*> observers") && !strings.Contains(out, "observers") {
		t.Fatalf("expected observers field in output, got:\n%s", out)
	}
	if !strings.Contains(out, "LPP_PATTERN_OBSERVER(News);") {
		t.Fatalf("expected LPP_PATTERN_OBSERVER(News) macro hook, got:\n%s", out)
	}
	if !strings.Contains(out, `#include "lpp_patterns.hpp"`) {
		t.Fatalf("expected companion header include, got:\n%s", out)
	}
}

// Testable property 9: preamble invariance — the first N lines are
// byte-identical regardless of input.
func TestPreambleInvariance(t *testing.T) {
	out1 := transpileSrc(t, "#pragma paradigm hybrid\nfn f() -> int { return 1; }")
	out2 := transpileSrc(t, "#pragma paradigm functional\nfn g(n: int) -> int { return n * 2; }")

	lines1 := strings.Split(out1, "\n")
	lines2 := strings.Split(out2, "\n")
	preambleLines := strings.Count(preamble, "\n")
	if len(lines1) < preambleLines || len(lines2) < preambleLines {
		t.Fatal("output shorter than the fixed preamble")
	}
	for i := 0; i < preambleLines; i++ {
		if lines1[i] != lines2[i] {
			t.Fatalf("preamble line %d differs:\n%q\nvs\n%q", i, lines1[i], lines2[i])
		}
	}
}

func TestRangeSignLaw(t *testing.T) {
	out := transpileSrc(t, "#pragma paradigm hybrid\nfn f() -> int { let r = 0..5..1; return 0; }")
	if !strings.Contains(out, "__step > 0") {
		t.Fatalf("expected ascending/descending branch on step sign, got:\n%s", out)
	}
}

func TestNullishCoalesceLowersToIIFE(t *testing.T) {
	out := transpileSrc(t, "#pragma paradigm hybrid\nfn f(a: int?, b: int) -> int { return a ?? b; }")
	if !strings.Contains(out, "std::is_pointer_v") {
		t.Fatalf("expected nullish-coalescing IIFE in output, got:\n%s", out)
	}
}

func TestCastLowersToStaticCast(t *testing.T) {
	out := transpileSrc(t, "#pragma paradigm hybrid\nfn f(x: float) -> int { return x as int; }")
	if !strings.Contains(out, "static_cast<int>(x)") {
		t.Fatalf("expected static_cast<int>(x) in output, got:\n%s", out)
	}
}

func TestInterfaceLowersToAbstractClass(t *testing.T) {
	out := transpileSrc(t, "#pragma paradigm hybrid\ninterface Shape { area() -> float; }")
	if !strings.Contains(out, "class Shape") {
		t.Fatalf("expected abstract class, got:\n%s", out)
	}
	if !strings.Contains(out, "virtual double area() = 0;") {
		t.Fatalf("expected full pure-virtual method signature, got:\n%s", out)
	}
	if !strings.Contains(out, "virtual ~Shape() = default;") {
		t.Fatalf("expected virtual destructor, got:\n%s", out)
	}
}

func TestAsyncFunctionWrapsBodyInStdAsync(t *testing.T) {
	out := transpileSrc(t, "#pragma paradigm hybrid\nasync fn fetch(n: int) -> int { return n * 2; }")
	if !strings.Contains(out, "std::future<int> fetch(int n)") {
		t.Fatalf("expected std::future<int> return type, got:\n%s", out)
	}
	if !strings.Contains(out, "return std::async(std::launch::async, [&]() {") {
		t.Fatalf("expected body wrapped in std::async, got:\n%s", out)
	}
}

func TestOptionalChainingLowersToGuardedAccess(t *testing.T) {
	out := transpileSrc(t, "#pragma paradigm hybrid\nfn f(a: Node) -> int { let v = a?.next; return 0; }")
	if !strings.Contains(out, "__obj != nullptr ? __obj->next : nullptr") {
		t.Fatalf("expected null-guarded optional chain, got:\n%s", out)
	}
}

func TestThrowKeepsStatementForm(t *testing.T) {
	out := transpileSrc(t, "#pragma paradigm hybrid\nfn f() -> void { throw \"boom\"; return; }")
	if !strings.Contains(out, `throw std::runtime_error("boom");`) {
		t.Fatalf("expected statement-form throw, got:\n%s", out)
	}
}

func TestGenericTypeDeclLowersToTemplatedVariant(t *testing.T) {
	out := transpileSrc(t, "#pragma paradigm hybrid\ntype Option<T> = Some(T) | None;")
	if !strings.Contains(out, "template<typename T>") {
		t.Fatalf("expected template parameter on the ADT, got:\n%s", out)
	}
	if !strings.Contains(out, "struct Option_Some {") || !strings.Contains(out, "T field0;") {
		t.Fatalf("expected typed variant struct, got:\n%s", out)
	}
	if !strings.Contains(out, "using Option = std::variant<Option_Some<T>, Option_None<T>>;") {
		t.Fatalf("expected std::variant alias, got:\n%s", out)
	}
}

func TestRestParamLowersToVariadicPack(t *testing.T) {
	out := transpileSrc(t, "#pragma paradigm hybrid\nfn sum(...nums) -> int { return 0; }")
	if !strings.Contains(out, "template<typename... Args>") {
		t.Fatalf("expected variadic template, got:\n%s", out)
	}
	if !strings.Contains(out, "Args... __rest_args") {
		t.Fatalf("expected parameter pack, got:\n%s", out)
	}
	if !strings.Contains(out, "#define nums std::vector<std::any>{__rest_args...}") ||
		!strings.Contains(out, "#undef nums") {
		t.Fatalf("expected rest-name macro wrapper with matching #undef, got:\n%s", out)
	}
}

func TestExportedFunctionIsTranspiled(t *testing.T) {
	out := transpileSrc(t, "#pragma paradigm hybrid\nexport fn util() -> int { return 1; }")
	if !strings.Contains(out, "int util()") {
		t.Fatalf("expected exported function in output, got:\n%s", out)
	}
}

func TestInterfaceMethodWithParams(t *testing.T) {
	out := transpileSrc(t, "#pragma paradigm hybrid\ninterface Shape { scale(factor: float) -> void; }")
	if !strings.Contains(out, "virtual void scale(double) = 0;") {
		t.Fatalf("expected parameter types preserved in virtual method, got:\n%s", out)
	}
}
