package lexer

import (
	"testing"

	"github.com/lppc/transpiler/internal/token"
)

func TestTokenizeEndsWithExactlyOneEOF(t *testing.T) {
	inputs := []string{
		"",
		"   \n\t",
		"// a comment\n",
		"/* unterminated",
		`"unterminated string`,
		"#pragma paradigm hybrid\nfn f() -> int { return 1; }",
		"\x00\x01 garbage \xff",
	}
	for _, in := range inputs {
		toks := New(in).Tokenize()
		if len(toks) == 0 {
			t.Fatalf("Tokenize(%q) produced no tokens", in)
		}
		eofCount := 0
		for i, tk := range toks {
			if tk.Type == token.EOF {
				eofCount++
				if i != len(toks)-1 {
					t.Errorf("Tokenize(%q): EOF not last token", in)
				}
			}
		}
		if eofCount != 1 {
			t.Errorf("Tokenize(%q): got %d EOF tokens, want exactly 1", in, eofCount)
		}
	}
}

func TestTokenColumnsMonotoneNondecreasing(t *testing.T) {
	toks := New("let x = 1 + 2;\nfn f() -> int { return x; }").Tokenize()
	prevLine, prevCol := 1, 0
	for _, tk := range toks {
		if tk.Column < 1 && tk.Type != token.EOF {
			t.Errorf("token %v has column < 1", tk)
		}
		if tk.Line < prevLine || (tk.Line == prevLine && tk.Column < prevCol) {
			t.Errorf("token %v out of (line,column) order after (%d,%d)", tk, prevLine, prevCol)
		}
		prevLine, prevCol = tk.Line, tk.Column
	}
}

func TestPragmaLexeme(t *testing.T) {
	toks := New("#pragma paradigm hybrid\n").Tokenize()
	if toks[0].Type != token.PRAGMA {
		t.Fatalf("expected PRAGMA, got %s", toks[0].Type)
	}
	if toks[0].Lexeme != "#pragma paradigm hybrid" {
		t.Errorf("unexpected pragma lexeme: %q", toks[0].Lexeme)
	}
}

func TestUnterminatedStringYieldsInvalidAndContinues(t *testing.T) {
	// The unterminated literal runs to the end of input; lexing continues
	// there and ends with EOF.
	toks := New(`"oops` + "\nlet x = 1;").Tokenize()
	if toks[0].Type != token.INVALID {
		t.Fatalf("expected first token INVALID, got %s", toks[0].Type)
	}
	if len(toks) != 2 || toks[1].Type != token.EOF {
		t.Errorf("expected INVALID followed by EOF, got %v", toks)
	}
}

func TestOperatorLongestMatch(t *testing.T) {
	tests := []struct {
		src  string
		want token.Type
	}{
		{"===", token.STRICT_EQ},
		{"!==", token.STRICT_NOT_EQ},
		{"...", token.SPREAD},
		{"!!<", token.QUANTUM_LT},
		{"!!>", token.QUANTUM_GT},
		{"??=", token.NULLISH_ASSIGN},
		{"==", token.EQ},
		{"!=", token.NOT_EQ},
		{"|>", token.PIPE_GT},
		{"~>", token.TILDE_GT},
		{"?.", token.OPT_CHAIN},
		{"??", token.NULLISH},
		{"..", token.DOT_DOT},
		{"!!", token.BANG_BANG},
		{"+", token.PLUS},
		{"?", token.QUESTION},
	}
	for _, tt := range tests {
		toks := New(tt.src).Tokenize()
		if toks[0].Type != tt.want {
			t.Errorf("Tokenize(%q)[0].Type = %s; want %s", tt.src, toks[0].Type, tt.want)
		}
	}
}

func TestKeywordPromotion(t *testing.T) {
	toks := New("let fn class quantum observe entangle notaword").Tokenize()
	want := []token.Type{token.LET, token.FN, token.CLASS, token.QUANTUM, token.OBSERVE, token.ENTANGLE, token.IDENT}
	for i, w := range want {
		if toks[i].Type != w {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, w)
		}
	}
}

func TestBacktickEmitsBacktickToken(t *testing.T) {
	toks := New("`hello`").Tokenize()
	if toks[0].Type != token.BACKTICK {
		t.Fatalf("expected BACKTICK, got %s", toks[0].Type)
	}
}

func TestPragmaAfterTrailingCommentLine(t *testing.T) {
	toks := New("let x = 1; // trailing\n#pragma notation linear\n").Tokenize()
	found := false
	for _, tk := range toks {
		if tk.Type == token.PRAGMA {
			found = true
			if tk.Lexeme != "#pragma notation linear" {
				t.Errorf("unexpected pragma lexeme: %q", tk.Lexeme)
			}
		}
	}
	if !found {
		t.Fatal("pragma on the line after a trailing comment was not recognized")
	}
}

func TestMidLineHashIsInvalid(t *testing.T) {
	toks := New("let x = 1 # not a pragma\n").Tokenize()
	for _, tk := range toks {
		if tk.Type == token.PRAGMA {
			t.Fatal("a '#' away from column start must not begin a pragma")
		}
	}
}

func TestNumericLiteral(t *testing.T) {
	toks := New("42 3.14").Tokenize()
	if toks[0].Type != token.INT || toks[0].Lexeme != "42" {
		t.Errorf("unexpected int token: %+v", toks[0])
	}
	if toks[1].Type != token.FLOAT || toks[1].Lexeme != "3.14" {
		t.Errorf("unexpected float token: %+v", toks[1])
	}
}
