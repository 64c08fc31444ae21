// Package modules resolves import specifiers to source files and detects
// cyclic imports across the dependency graph, per spec §4.4.
package modules

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lppc/transpiler/internal/config"
	"github.com/lppc/transpiler/internal/utils"
)

// Resolver resolves import specifiers relative to an importing file and
// tracks the dependency graph for cycle detection.
type Resolver struct {
	graph      map[string][]string // module path -> imported module paths
	processing map[string]bool     // cycle detection, set before recursing into a dependency
	resolved   map[string]string   // cache: (fromDir + specifier) -> resolved path
}

// NewResolver creates an empty Resolver.
func NewResolver() *Resolver {
	return &Resolver{
		graph:      make(map[string][]string),
		processing: make(map[string]bool),
		resolved:   make(map[string]string),
	}
}

// Resolve maps an import specifier used inside fromFile to an absolute
// source path, applying the three rules of spec §4.4 in order: relative,
// absolute, stdlib. Returns "" and an error when nothing on disk matches.
func (r *Resolver) Resolve(fromFile, specifier string) (string, error) {
	switch {
	case strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../"):
		return r.resolveRelative(utils.GetModuleDir(fromFile), specifier)
	case isAbsoluteSpecifier(specifier):
		return r.resolveDirect(specifier)
	default:
		return r.resolveStdlib(specifier)
	}
}

func isAbsoluteSpecifier(path string) bool {
	if filepath.IsAbs(path) {
		return true
	}
	// Windows drive letter, e.g. "C:\..."
	return len(path) > 1 && path[1] == ':'
}

func (r *Resolver) resolveRelative(dir, specifier string) (string, error) {
	candidate := utils.ResolveImportPath(dir, specifier)
	return r.tryWithExtension(candidate, fmt.Sprintf("module not found: %s", specifier))
}

func (r *Resolver) resolveDirect(path string) (string, error) {
	return r.tryWithExtension(path, fmt.Sprintf("module not found: %s", path))
}

func (r *Resolver) resolveStdlib(name string) (string, error) {
	candidate := filepath.Join(config.StdlibDir, name)
	return r.tryWithExtension(candidate, fmt.Sprintf("cannot resolve module: %s", name))
}

func (r *Resolver) tryWithExtension(candidate, notFoundMsg string) (string, error) {
	withExt := candidate + config.SourceFileExt
	if fileExists(withExt) {
		abs, err := filepath.Abs(withExt)
		if err != nil {
			return "", err
		}
		return abs, nil
	}
	if fileExists(candidate) {
		abs, err := filepath.Abs(candidate)
		if err != nil {
			return "", err
		}
		return abs, nil
	}
	return "", fmt.Errorf("%s", notFoundMsg)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// AddDependency registers an edge of the import graph: from imports to.
func (r *Resolver) AddDependency(from, to string) {
	r.graph[from] = append(r.graph[from], to)
}

// Enter marks a module as currently being resolved (cycle detection,
// grounded on the teacher's Loader.Processing set-before-recurse idiom).
// The caller must defer Leave(path).
func (r *Resolver) Enter(path string) error {
	if r.processing[path] {
		return fmt.Errorf("circular dependency detected loading module: %s", path)
	}
	r.processing[path] = true
	return nil
}

// Leave clears the in-progress marker set by Enter.
func (r *Resolver) Leave(path string) {
	delete(r.processing, path)
}

// FindCycle runs DFS over the accumulated dependency graph and returns the
// first module name found on a cycle, or "" if the graph is acyclic.
func (r *Resolver) FindCycle() string {
	visited := make(map[string]int) // 0=unvisited, 1=in-stack, 2=done
	var dfs func(node string) string
	dfs = func(node string) string {
		visited[node] = 1
		for _, dep := range r.graph[node] {
			switch visited[dep] {
			case 1:
				return dep
			case 0:
				if back := dfs(dep); back != "" {
					return back
				}
			}
		}
		visited[node] = 2
		return ""
	}
	for node := range r.graph {
		if visited[node] == 0 {
			if back := dfs(node); back != "" {
				return back
			}
		}
	}
	return ""
}
