// Package utils holds small path-manipulation helpers shared by the module
// resolver and driver (spec §4.4), grounded on the teacher's
// internal/utils/path_utils.go idiom.
package utils

import (
	"path/filepath"
	"strings"

	"github.com/lppc/transpiler/internal/config"
)

// ResolveImportPath resolves an import path relative to a base directory if
// it starts with a dot. Otherwise returns the import path as is.
func ResolveImportPath(baseDir, importPath string) string {
	if len(importPath) > 0 && importPath[0] == '.' {
		if baseDir != "." && baseDir != "" {
			return filepath.Join(baseDir, importPath)
		}
	}
	return importPath
}

// ExtractModuleName derives a module name from a file path: the base
// filename with any recognized source extension stripped.
func ExtractModuleName(path string) string {
	name := filepath.Base(path)
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}

// GetModuleDir returns the directory context for a module path. If the path
// points to a file (ends with a recognized source extension), returns the
// file's directory. If the path points to a directory (no extension),
// returns the path itself.
func GetModuleDir(path string) string {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return filepath.Dir(path)
		}
	}
	return path
}
