package symbols

import (
	"testing"

	"github.com/lppc/transpiler/internal/ast"
)

func TestDefineAndResolveInInnermostScope(t *testing.T) {
	tbl := New()
	tbl.Define(Symbol{Name: "x", Kind: KindVar})
	if !tbl.IsDefined("x") {
		t.Fatal("expected x to resolve in the global scope")
	}
}

func TestShadowingInNestedScope(t *testing.T) {
	tbl := New()
	tbl.Define(Symbol{Name: "x", Kind: KindVar})
	tbl.Push()
	tbl.Define(Symbol{Name: "x", Kind: KindParam})
	sym, ok := tbl.Resolve("x")
	if !ok || sym.Kind != KindParam {
		t.Fatalf("expected inner x to shadow outer, got %+v, ok=%v", sym, ok)
	}
	tbl.Pop()
	sym, ok = tbl.Resolve("x")
	if !ok || sym.Kind != KindVar {
		t.Fatalf("expected outer x visible after Pop, got %+v, ok=%v", sym, ok)
	}
}

func TestPopNeverClosesGlobalScope(t *testing.T) {
	tbl := New()
	tbl.Define(Symbol{Name: "g", Kind: KindVar})
	tbl.Pop()
	tbl.Pop()
	if !tbl.IsDefined("g") {
		t.Fatal("popping more than pushed must not discard the global scope")
	}
}

func TestRegisterProgramSeedsTopLevelNames(t *testing.T) {
	prog := &ast.Program{
		Functions: []*ast.FunctionDecl{{Name: "main"}},
		Classes: []*ast.ClassDecl{{
			Name:    "Shape",
			Methods: []*ast.FunctionDecl{{Name: "area"}},
		}},
		Enums: []*ast.EnumDecl{{Name: "Color", Values: []string{"Red", "Blue"}}},
	}
	tbl := New()
	RegisterProgram(tbl, prog)

	for _, name := range []string{"main", "Shape", "Shape.area", "Color", "Color.Red", "Color.Blue"} {
		if !tbl.IsDefined(name) {
			t.Errorf("expected %q to be registered by RegisterProgram", name)
		}
	}
}

func TestRegisterProgramNilIsNoop(t *testing.T) {
	tbl := New()
	RegisterProgram(tbl, nil)
	if tbl.IsDefined("anything") {
		t.Fatal("expected no symbols registered for a nil program")
	}
}
