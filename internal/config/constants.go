package config

import "strings"

// SourceFileExt is the canonical L source extension used for module
// resolution (internal/modules).
const SourceFileExt = ".l"

// SourceFileExtensions lists the recognized L source extensions, stripped
// or detected by internal/utils when deriving module names and directories.
// The CLI driver does not check its input file's extension against it.
var SourceFileExtensions = []string{".l", ".lpp"}

// StdlibDir is the directory searched for bare (non-relative, non-absolute)
// import specifiers, per the module resolver's rule 3.
const StdlibDir = "stdlib"

// TypeNameMap is the binding type-name lowering table (spec §4.6): unknown
// names pass through unchanged.
var TypeNameMap = map[string]string{
	"int":    "int",
	"float":  "double",
	"string": "std::string",
	"bool":   "bool",
	"void":   "void",
}

// LowerTypeName applies TypeNameMap, passing unknown names through.
func LowerTypeName(name string) string {
	if cpp, ok := TypeNameMap[name]; ok {
		return cpp
	}
	return name
}

// LowerFullType lowers a full type annotation string, including the
// structured suffixes the parser folds into one name: `T[]` becomes
// std::vector, `T?` std::optional, and `A|B` a std::variant (spec §4.6's
// VarDecl rows, applied uniformly to parameter and cast positions too).
func LowerFullType(name string) string {
	if strings.Contains(name, "|") {
		parts := strings.Split(name, "|")
		for i, p := range parts {
			parts[i] = LowerFullType(p)
		}
		return "std::variant<" + strings.Join(parts, ", ") + ">"
	}
	if strings.HasSuffix(name, "?") {
		return "std::optional<" + LowerFullType(strings.TrimSuffix(name, "?")) + ">"
	}
	if strings.HasSuffix(name, "[]") {
		return "std::vector<" + LowerFullType(strings.TrimSuffix(name, "[]")) + ">"
	}
	return LowerTypeName(name)
}

// AllocatingFunctions names call targets the analyzer treats as producing a
// freshly-allocated, must-free value for its memory-leak check.
var AllocatingFunctions = map[string]bool{
	"new":    true,
	"alloc":  true,
	"malloc": true,
}

// FreeingFunctions names call targets that discharge an allocation.
var FreeingFunctions = map[string]bool{
	"free":    true,
	"delete":  true,
	"release": true,
}

// ParadigmModes are the valid values of a `#pragma paradigm <mode>` line.
var ParadigmModes = []string{"hybrid", "functional", "imperative", "oop", "golfed"}
