// Package symbols implements the lightweight pre-pass declared-name table
// (spec §4.5), generalized from the teacher's Headers/Bodies two-pass symbol
// table to L's function/class/type/enum declaration set. The analyzer fills
// it through RegisterProgram before walking function bodies; none of its
// checks query it.
package symbols

import "github.com/lppc/transpiler/internal/ast"

// Kind classifies a declared name.
type Kind int

const (
	KindFunction Kind = iota
	KindClass
	KindType
	KindEnum
	KindVar
	KindParam
)

// Symbol is a declared name and what kind of declaration introduced it.
type Symbol struct {
	Name string
	Kind Kind
}

// Table is a chain of lexical scopes, innermost last.
type Table struct {
	scopes []map[string]Symbol
}

// New creates a Table with a single (global) scope.
func New() *Table {
	return &Table{scopes: []map[string]Symbol{make(map[string]Symbol)}}
}

// Push opens a nested scope (function body, block).
func (t *Table) Push() {
	t.scopes = append(t.scopes, make(map[string]Symbol))
}

// Pop closes the innermost scope. The global scope is never popped.
func (t *Table) Pop() {
	if len(t.scopes) > 1 {
		t.scopes = t.scopes[:len(t.scopes)-1]
	}
}

// Define registers a symbol in the innermost scope, shadowing any outer
// declaration of the same name.
func (t *Table) Define(sym Symbol) {
	t.scopes[len(t.scopes)-1][sym.Name] = sym
}

// Resolve looks a name up from the innermost scope outward.
func (t *Table) Resolve(name string) (Symbol, bool) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if s, ok := t.scopes[i][name]; ok {
			return s, true
		}
	}
	return Symbol{}, false
}

// IsDefined reports whether name resolves in any enclosing scope.
func (t *Table) IsDefined(name string) bool {
	_, ok := t.Resolve(name)
	return ok
}

// RegisterProgram performs the declaration-registration pre-pass: every
// top-level function, class, type, and enum name becomes resolvable before
// any function body is walked, mirroring the teacher's ModeHeaders pass.
func RegisterProgram(t *Table, prog *ast.Program) {
	if prog == nil {
		return
	}
	for _, fn := range prog.Functions {
		t.Define(Symbol{Name: fn.Name, Kind: KindFunction})
	}
	for _, cls := range prog.Classes {
		t.Define(Symbol{Name: cls.Name, Kind: KindClass})
		for _, m := range cls.Methods {
			t.Define(Symbol{Name: cls.Name + "." + m.Name, Kind: KindFunction})
		}
	}
	for _, td := range prog.Types {
		t.Define(Symbol{Name: td.Name, Kind: KindType})
		for _, variant := range td.Variants {
			t.Define(Symbol{Name: variant.Ctor, Kind: KindFunction})
		}
	}
	for _, en := range prog.Enums {
		t.Define(Symbol{Name: en.Name, Kind: KindEnum})
		for _, v := range en.Values {
			t.Define(Symbol{Name: en.Name + "." + v, Kind: KindVar})
		}
	}
}
