package notation

import (
	"testing"

	"github.com/lppc/transpiler/internal/config"
	"github.com/lppc/transpiler/internal/token"
)

// Testable property 7: with the default math table `+` binds looser than
// `*`; in linear mode every core operator shares one left-assoc level.
func TestMathTablePrecedence(t *testing.T) {
	ctx := NewContext()
	table := ctx.Current()

	plus, ok := table.Lookup(token.Token{Type: token.PLUS})
	if !ok {
		t.Fatal("+ not found in default table")
	}
	star, ok := table.Lookup(token.Token{Type: token.STAR})
	if !ok {
		t.Fatal("* not found in default table")
	}
	if !(plus.Precedence < star.Precedence) {
		t.Fatalf("+ precedence %d should be < * precedence %d", plus.Precedence, star.Precedence)
	}
}

func TestLinearModeFlattensPrecedence(t *testing.T) {
	ctx := NewContext()
	ctx.PushLinear()
	table := ctx.Current()

	plus, _ := table.Lookup(token.Token{Type: token.PLUS})
	star, _ := table.Lookup(token.Token{Type: token.STAR})
	if plus.Precedence != star.Precedence {
		t.Fatalf("linear mode: + (%d) and * (%d) should share one precedence level", plus.Precedence, star.Precedence)
	}
	if plus.Assoc != config.AssocLeft || star.Assoc != config.AssocLeft {
		t.Fatal("linear mode operators must be left-associative")
	}
}

func TestBaseTableNeverPopped(t *testing.T) {
	ctx := NewContext()
	ctx.Pop()
	ctx.Pop()
	ctx.Pop()
	if ctx.Current() == nil {
		t.Fatal("base table was popped off the stack")
	}
	if ctx.Current().Mode() != "math" {
		t.Fatalf("expected base table mode 'math', got %q", ctx.Current().Mode())
	}
}

func TestCustomOverrideClearsCoreFlag(t *testing.T) {
	ctx := NewContext()
	custom := ctx.PushCustom("myops")
	custom.Override("<=>", 5, config.AssocRight)

	f, ok := custom.Lookup(token.Token{Lexeme: "<=>"})
	if !ok {
		t.Fatal("custom operator not found after Override")
	}
	if f.IsCore {
		t.Fatal("overridden operator should not be flagged core")
	}
	if f.Precedence != 5 || f.Assoc != config.AssocRight {
		t.Fatalf("unexpected fixity after Override: %+v", f)
	}
}

func TestOverrideCoreOperatorRebindsTokenLookup(t *testing.T) {
	ctx := NewContext()
	custom := ctx.PushCustom("myops")
	custom.Override("+", 11, config.AssocRight)

	f, ok := custom.Lookup(token.Token{Type: token.PLUS, Lexeme: "+"})
	if !ok {
		t.Fatal("+ not found after Override")
	}
	if f.IsCore {
		t.Fatal("overridden core operator must lose its core flag")
	}
	if f.Precedence != 11 || f.Assoc != config.AssocRight {
		t.Fatalf("token-keyed lookup did not pick up the override: %+v", f)
	}
}

func TestPushMathRestoresDefaults(t *testing.T) {
	ctx := NewContext()
	ctx.PushLinear()
	ctx.PushMath()
	table := ctx.Current()
	plus, _ := table.Lookup(token.Token{Type: token.PLUS})
	star, _ := table.Lookup(token.Token{Type: token.STAR})
	if plus.Precedence >= star.Precedence {
		t.Fatal("PushMath should restore default (non-flattened) precedence ordering")
	}
}
