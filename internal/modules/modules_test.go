package modules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lppc/transpiler/internal/diagnostics"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func TestResolveRelative(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "helper.l", "fn h() -> int { return 1; }")
	entry := writeFile(t, dir, "main.l", "")

	r := NewResolver()
	resolved, err := r.Resolve(entry, "./helper")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want, _ := filepath.Abs(filepath.Join(dir, "helper.l"))
	if resolved != want {
		t.Fatalf("resolved %q, want %q", resolved, want)
	}
}

func TestResolveAbsolute(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "lib.l", "")

	r := NewResolver()
	resolved, err := r.Resolve("/irrelevant/from.l", target[:len(target)-2]) // strip .l
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want, _ := filepath.Abs(target)
	if resolved != want {
		t.Fatalf("resolved %q, want %q", resolved, want)
	}
}

func TestResolveMissingModuleErrors(t *testing.T) {
	r := NewResolver()
	dir := t.TempDir()
	entry := writeFile(t, dir, "main.l", "")
	if _, err := r.Resolve(entry, "./nope"); err == nil {
		t.Fatal("expected an error for a missing relative module")
	}
}

func TestFindCycleDetectsCircularImports(t *testing.T) {
	r := NewResolver()
	r.AddDependency("a", "b")
	r.AddDependency("b", "c")
	r.AddDependency("c", "a")
	if cyc := r.FindCycle(); cyc == "" {
		t.Fatal("expected a cycle to be detected")
	}
}

func TestFindCycleReportsNoneOnAcyclicGraph(t *testing.T) {
	r := NewResolver()
	r.AddDependency("a", "b")
	r.AddDependency("b", "c")
	if cyc := r.FindCycle(); cyc != "" {
		t.Fatalf("expected no cycle, found %q", cyc)
	}
}

func TestEnterLeaveTracksInProgress(t *testing.T) {
	r := NewResolver()
	if err := r.Enter("x"); err != nil {
		t.Fatalf("unexpected error entering x: %v", err)
	}
	if err := r.Enter("x"); err == nil {
		t.Fatal("expected an error re-entering an in-progress module")
	}
	r.Leave("x")
	if err := r.Enter("x"); err != nil {
		t.Fatalf("unexpected error re-entering x after Leave: %v", err)
	}
}

func TestLoaderLoadsTransitiveImports(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "leaf.l", "#pragma paradigm hybrid\nfn leaf() -> int { return 1; }")
	writeFile(t, dir, "mid.l", "#pragma paradigm hybrid\nimport { leaf } from \"./leaf\";\nfn mid() -> int { return 1; }")
	entry := writeFile(t, dir, "main.l", "#pragma paradigm hybrid\nimport { mid } from \"./mid\";\nfn main() -> int { return 1; }")

	l := NewLoader()
	mod, diags := l.Load(entry)
	for _, d := range diags {
		if d.Severity == diagnostics.Error {
			t.Fatalf("unexpected error diagnostic: %s", d.String())
		}
	}
	if mod == nil {
		t.Fatal("expected a loaded entry module")
	}
	if len(l.Modules()) != 3 {
		t.Fatalf("expected 3 loaded modules (main, mid, leaf), got %d", len(l.Modules()))
	}
}

func TestLoaderReportsUnresolvedImport(t *testing.T) {
	dir := t.TempDir()
	entry := writeFile(t, dir, "main.l", "#pragma paradigm hybrid\nimport { x } from \"./missing\";\nfn main() -> int { return 1; }")

	l := NewLoader()
	_, diags := l.Load(entry)
	found := false
	for _, d := range diags {
		if d.Code == diagnostics.CodeModNotFound {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a MOD-NOT-FOUND diagnostic for an unresolved import")
	}
}

func TestLoaderReportsImportCycle(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.l", "#pragma paradigm hybrid\nimport { b } from \"./b\";\nfn a() -> int { return 1; }")
	writeFile(t, dir, "b.l", "#pragma paradigm hybrid\nimport { a } from \"./a\";\nfn b() -> int { return 1; }")
	entry := filepath.Join(dir, "a.l")

	l := NewLoader()
	_, diags := l.Load(entry)
	found := false
	for _, d := range diags {
		if d.Code == diagnostics.CodeModCycle {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a MOD-CYCLE diagnostic for a circular import")
	}
}
