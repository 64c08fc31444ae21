package cache

import (
	"path/filepath"
	"testing"

	"github.com/lppc/transpiler/internal/diagnostics"
	"github.com/lppc/transpiler/internal/token"
)

func TestKeyIsDeterministic(t *testing.T) {
	k1 := Key([]byte("fn f() -> int { return 1; }"))
	k2 := Key([]byte("fn f() -> int { return 1; }"))
	if k1 != k2 {
		t.Fatalf("expected identical content to yield identical keys, got %q vs %q", k1, k2)
	}
}

func TestKeyDiffersOnDifferentContent(t *testing.T) {
	k1 := Key([]byte("fn f() -> int { return 1; }"))
	k2 := Key([]byte("fn f() -> int { return 2; }"))
	if k1 == k2 {
		t.Fatal("expected different content to yield different keys")
	}
}

func TestStoreAndLookupRoundTrip(t *testing.T) {
	dir := t.TempDir()
	c := Open(filepath.Join(dir, "cache.sqlite"))
	defer c.Close()

	key := Key([]byte("module-a"))
	entry := Entry{
		Diagnostics: []*diagnostics.Diagnostic{
			diagnostics.New(diagnostics.CodeDivByZero, diagnostics.Warning, diagnostics.PhaseAnalyzer, token.Token{}),
		},
		Exports: []string{"f"},
	}
	c.Store(key, entry)

	got, ok := c.Lookup(key)
	if !ok {
		t.Fatal("expected a cache hit after Store")
	}
	if len(got.Exports) != 1 || got.Exports[0] != "f" {
		t.Fatalf("unexpected round-tripped entry: %+v", got)
	}
}

func TestLookupMissOnUnknownKey(t *testing.T) {
	dir := t.TempDir()
	c := Open(filepath.Join(dir, "cache.sqlite"))
	defer c.Close()

	if _, ok := c.Lookup("does-not-exist"); ok {
		t.Fatal("expected a cache miss for an unknown key")
	}
}

func TestOpenFailureYieldsInertCache(t *testing.T) {
	// A path inside a nonexistent directory: the sqlite driver fails to
	// open it, and Open must still return a usable, inert Cache rather
	// than nil or a panic.
	c := Open(filepath.Join(string([]byte{0}), "bad", "cache.sqlite"))
	if c == nil {
		t.Fatal("expected a non-nil Cache even on open failure")
	}
	if _, ok := c.Lookup("anything"); ok {
		t.Fatal("an inert cache must always miss")
	}
	c.Store("anything", Entry{})
	if err := c.Close(); err != nil {
		t.Fatalf("closing an inert cache should not error: %v", err)
	}
}
