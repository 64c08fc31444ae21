package diagnostics

import (
	"strings"
	"testing"

	"github.com/lppc/transpiler/internal/token"
)

func TestStringFormat(t *testing.T) {
	d := New(CodeDivByZero, Error, PhaseAnalyzer, token.Token{Line: 3, Column: 14})
	d.WithFile("main.l")
	got := d.String()
	want := "main.l:3:14: error: [DIV-BY-ZERO] division by zero"
	if got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestStringDefaultsFileToInput(t *testing.T) {
	d := New(CodeDeadCode, Warning, PhaseAnalyzer, token.Token{Line: 1, Column: 1})
	if !strings.HasPrefix(d.String(), "<input>:1:1:") {
		t.Fatalf("expected <input> placeholder, got %q", d.String())
	}
}

func TestNotesAppendAsIndentedLines(t *testing.T) {
	d := New(CodeModCycle, Error, PhaseModules, token.Token{}, "a.l")
	d.WithNote("imported from b.l")
	got := d.String()
	if !strings.Contains(got, "\n  note: imported from b.l") {
		t.Fatalf("expected note line, got %q", got)
	}
}

func TestHasErrors(t *testing.T) {
	warn := New(CodeDeadCode, Warning, PhaseAnalyzer, token.Token{})
	if HasErrors([]*Diagnostic{warn}) {
		t.Fatal("a warning alone must not count as an error")
	}
	errd := New(CodeDivByZero, Error, PhaseAnalyzer, token.Token{})
	if !HasErrors([]*Diagnostic{warn, errd}) {
		t.Fatal("expected HasErrors to report the error diagnostic")
	}
}

func TestPrinterAppendsSourceLine(t *testing.T) {
	src := "#pragma paradigm hybrid\nfn f() -> int { return 1 / 0; }"
	d := New(CodeDivByZero, Error, PhaseAnalyzer, token.Token{Line: 2, Column: 24})
	p := NewPrinter(src, true)
	got := p.Format(d)
	if !strings.Contains(got, "note: fn f() -> int { return 1 / 0; }") {
		t.Fatalf("expected the offending source line appended, got %q", got)
	}
}

func TestPrinterOffByDefaultShape(t *testing.T) {
	src := "fn f() -> int { return 1; }"
	d := New(CodeDeadCode, Warning, PhaseAnalyzer, token.Token{Line: 1, Column: 1})
	p := NewPrinter(src, false)
	if p.Format(d) != d.String() {
		t.Fatal("a Printer without ShowSource must format identically to String()")
	}
}
