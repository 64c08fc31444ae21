// Package pipeline orchestrates the compiler stages — lex, parse, resolve
// modules, analyze, transpile — over a shared Context, grounded on the
// teacher's internal/pipeline stage-chaining idiom (spec §2).
package pipeline

import (
	"github.com/lppc/transpiler/internal/ast"
	"github.com/lppc/transpiler/internal/diagnostics"
	"github.com/lppc/transpiler/internal/modules"
	"github.com/lppc/transpiler/internal/token"
)

// Context carries the data every stage reads or produces. Stages append to
// Diagnostics rather than replacing it, so earlier stages' findings survive.
type Context struct {
	Source string
	File   string

	Tokens  []token.Token
	Program *ast.Program

	Resolver *modules.Resolver

	Diagnostics []*diagnostics.Diagnostic

	CppOutput string
}

// NewContext creates a Context for compiling a single source file.
func NewContext(source, file string) *Context {
	return &Context{
		Source:   source,
		File:     file,
		Resolver: modules.NewResolver(),
	}
}

// AddDiagnostics appends to the running diagnostic list.
func (c *Context) AddDiagnostics(ds ...*diagnostics.Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, ds...)
}

// HasErrors reports whether any accumulated diagnostic is Error severity.
func (c *Context) HasErrors() bool {
	return diagnostics.HasErrors(c.Diagnostics)
}
