// Package notation implements the precedence/notation stack consulted by
// the parser (spec §4.3), grounded on original_source's NotationContext and
// on the teacher's single-source-of-truth operator table idiom
// (internal/config/operators.go).
package notation

import (
	"github.com/lppc/transpiler/internal/config"
	"github.com/lppc/transpiler/internal/token"
)

// Fixity is what the parser needs to Pratt-climb an operator.
type Fixity struct {
	Precedence int
	Assoc      config.Associativity
	IsCore     bool
}

// Table maps an operator identity to its fixity. Lookup is by token kind
// first (core operators); custom operators are looked up by string name.
type Table struct {
	byToken  map[token.Type]Fixity
	byName   map[string]Fixity
	mode     string // "math" | "linear" | "custom:<name>"
}

func newMathTable() *Table {
	t := &Table{
		byToken: make(map[token.Type]Fixity),
		byName:  make(map[string]Fixity),
		mode:    "math",
	}
	for _, op := range config.AllOperators {
		f := Fixity{Precedence: op.Precedence, Assoc: op.Assoc, IsCore: true}
		t.byToken[op.Token] = f
		t.byName[op.Symbol] = f
	}
	return t
}

// Mode reports the table's notation mode: "math", "linear", or
// "custom:<name>".
func (t *Table) Mode() string { return t.mode }

// Lookup returns the fixity for a token, falling back to its lexeme for
// custom-operator names.
func (t *Table) Lookup(tok token.Token) (Fixity, bool) {
	if f, ok := t.byToken[tok.Type]; ok {
		return f, true
	}
	if f, ok := t.byName[tok.Lexeme]; ok {
		return f, true
	}
	return Fixity{}, false
}

// Override registers or replaces a custom operator, clearing its core flag.
// Overriding a core operator's symbol also rebinds its token-keyed entry.
func (t *Table) Override(symbol string, precedence int, assoc config.Associativity) {
	f := Fixity{Precedence: precedence, Assoc: assoc, IsCore: false}
	t.byName[symbol] = f
	for _, op := range config.AllOperators {
		if op.Symbol == symbol {
			t.byToken[op.Token] = f
		}
	}
}

// linearize forces every entry in the table to a single precedence level,
// left-associative (the `linear` notation mode of spec §4.3).
func (t *Table) linearize() {
	for k, f := range t.byToken {
		f.Precedence = 0
		f.Assoc = config.AssocLeft
		t.byToken[k] = f
	}
	for k, f := range t.byName {
		f.Precedence = 0
		f.Assoc = config.AssocLeft
		t.byName[k] = f
	}
	t.mode = "linear"
}

// Context is a stack of precedence tables; the base ("math") table always
// remains at the bottom (spec §4.3: "the base table must remain").
type Context struct {
	stack []*Table
}

// NewContext creates a notation context seeded with the default math table.
func NewContext() *Context {
	return &Context{stack: []*Table{newMathTable()}}
}

// Current returns the table on top of the stack.
func (c *Context) Current() *Table {
	return c.stack[len(c.stack)-1]
}

// PushMath pushes a fresh copy of the default core-operator table.
func (c *Context) PushMath() {
	c.stack = append(c.stack, newMathTable())
}

// PushLinear pushes a table with every operator forced to one
// left-associative precedence level.
func (c *Context) PushLinear() {
	t := newMathTable()
	t.linearize()
	c.stack = append(c.stack, t)
}

// PushCustom pushes a clone of the math table that callers can Override;
// overridden entries lose their IsCore flag.
func (c *Context) PushCustom(name string) *Table {
	t := newMathTable()
	t.mode = "custom:" + name
	c.stack = append(c.stack, t)
	return t
}

// Pop removes the top table, unless it is the last (base) one.
func (c *Context) Pop() {
	if len(c.stack) > 1 {
		c.stack = c.stack[:len(c.stack)-1]
	}
}
