package modules

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/lppc/transpiler/internal/ast"
	"github.com/lppc/transpiler/internal/diagnostics"
	"github.com/lppc/transpiler/internal/lexer"
	"github.com/lppc/transpiler/internal/parser"
	"github.com/lppc/transpiler/internal/token"
	"github.com/lppc/transpiler/internal/utils"
)

// LoadedModule pairs a resolved source file with the Program parsed from it.
type LoadedModule struct {
	Path    string
	Program *ast.Program
}

// Loader walks the import graph starting from an entry file, parsing every
// module it transitively depends on and reusing the Resolver's cycle
// tracking (spec §4.4). Grounded on the teacher's Loader.LoadedModules
// cache-by-absolute-path idiom, generalized from "one package per
// directory" to L's flat file-per-module imports.
type Loader struct {
	resolver *Resolver
	loaded   map[string]*LoadedModule
	order    []string // load order, for deterministic iteration
}

// NewLoader creates a Loader backed by a fresh Resolver.
func NewLoader() *Loader {
	return &Loader{
		resolver: NewResolver(),
		loaded:   make(map[string]*LoadedModule),
	}
}

// Modules returns every module loaded so far, in the order first visited.
func (l *Loader) Modules() []*LoadedModule {
	out := make([]*LoadedModule, 0, len(l.order))
	for _, path := range l.order {
		out = append(out, l.loaded[path])
	}
	return out
}

// Load parses entryFile and every module it (transitively) imports,
// returning the entry module and any diagnostics raised along the way
// (unresolved imports, circular dependencies, lex/parse errors). Load
// never returns a hard Go error for source-level problems — those surface
// as diagnostics, per the pipeline's error model.
func (l *Loader) Load(entryFile string) (*LoadedModule, []*diagnostics.Diagnostic) {
	absPath, err := filepath.Abs(entryFile)
	if err != nil {
		return nil, []*diagnostics.Diagnostic{fatalDiagnostic(entryFile, err)}
	}

	var diags []*diagnostics.Diagnostic
	mod := l.load(absPath, &diags)

	if cyc := l.resolver.FindCycle(); cyc != "" {
		d := diagnostics.New(diagnostics.CodeModCycle, diagnostics.Error, diagnostics.PhaseModules,
			token.Token{}, utils.ExtractModuleName(cyc))
		d.WithFile(cyc)
		diags = append(diags, d)
	}

	return mod, diags
}

func (l *Loader) load(absPath string, diags *[]*diagnostics.Diagnostic) *LoadedModule {
	if mod, ok := l.loaded[absPath]; ok {
		return mod
	}
	if err := l.resolver.Enter(absPath); err != nil {
		*diags = append(*diags, fatalDiagnostic(absPath, err))
		return nil
	}
	defer l.resolver.Leave(absPath)

	content, err := os.ReadFile(absPath)
	if err != nil {
		*diags = append(*diags, fatalDiagnostic(absPath, err))
		return nil
	}

	toks := lexer.New(string(content)).Tokenize()
	p := parser.New(toks, absPath)
	prog, perrs := p.ParseProgram()
	*diags = append(*diags, perrs...)

	mod := &LoadedModule{Path: absPath, Program: prog}
	l.loaded[absPath] = mod
	l.order = append(l.order, absPath)

	if prog == nil {
		return mod
	}

	deps := make([]string, 0, len(prog.Imports))
	for _, imp := range prog.Imports {
		resolved, err := l.resolver.Resolve(absPath, imp.Module)
		if err != nil {
			d := diagnostics.New(diagnostics.CodeModNotFound, diagnostics.Error, diagnostics.PhaseModules,
				imp.Tok, imp.Module)
			d.WithFile(absPath)
			*diags = append(*diags, d)
			continue
		}
		imp.ResolvedPath = resolved
		deps = append(deps, resolved)
	}

	sort.Strings(deps)
	for _, dep := range deps {
		l.resolver.AddDependency(absPath, dep)
		l.load(dep, diags)
	}

	return mod
}

func fatalDiagnostic(file string, err error) *diagnostics.Diagnostic {
	d := diagnostics.New(diagnostics.CodeModNotFound, diagnostics.Error, diagnostics.PhaseModules, token.Token{}, err.Error())
	d.WithFile(file)
	return d
}
