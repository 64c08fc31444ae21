package pipeline

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultPipelineCompilesSimpleProgram(t *testing.T) {
	ctx := NewContext("#pragma paradigm hybrid\nfn main() -> int { return 1; }", "test.l")
	if _, err := Default().Run(ctx); err != nil {
		t.Fatalf("unexpected pipeline error: %v", err)
	}
	if ctx.HasErrors() {
		t.Fatalf("unexpected error diagnostics: %v", ctx.Diagnostics)
	}
	if !strings.Contains(ctx.CppOutput, "int main(") {
		t.Fatalf("expected transpiled main() in output, got:\n%s", ctx.CppOutput)
	}
}

func TestDefaultPipelineSkipsTranspileOnErrors(t *testing.T) {
	ctx := NewContext("fn main() -> int { return 1 }", "test.l") // missing semicolon, no pragma
	if _, err := Default().Run(ctx); err != nil {
		t.Fatalf("unexpected pipeline error: %v", err)
	}
	if !ctx.HasErrors() {
		t.Fatal("expected error diagnostics for malformed source")
	}
	if ctx.CppOutput != "" {
		t.Fatalf("expected no C++ output when errors are present, got:\n%s", ctx.CppOutput)
	}
}

func TestWithCachePersistsAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "cache.sqlite")

	p1, closer1 := WithCache(dbPath)
	ctx1 := NewContext("#pragma paradigm hybrid\nfn f(n: int) -> int { return n / (n - n); }", "test.l")
	if _, err := p1.Run(ctx1); err != nil {
		t.Fatalf("unexpected error on first run: %v", err)
	}
	closer1()

	p2, closer2 := WithCache(dbPath)
	defer closer2()
	ctx2 := NewContext("#pragma paradigm hybrid\nfn f(n: int) -> int { return n / (n - n); }", "test.l")
	if _, err := p2.Run(ctx2); err != nil {
		t.Fatalf("unexpected error on second run: %v", err)
	}

	if len(ctx1.Diagnostics) != len(ctx2.Diagnostics) {
		t.Fatalf("expected identical diagnostics from cache hit: %d vs %d", len(ctx1.Diagnostics), len(ctx2.Diagnostics))
	}
}
