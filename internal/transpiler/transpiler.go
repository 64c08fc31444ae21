// Package transpiler lowers a resolved program to C++17 source text (spec
// §4.6), grounded on original_source/src/Transpiler.cpp for the fixed
// runtime preamble and lowering rules, and on the teacher's
// internal/prettyprinter/code_printer.go for the writer idiom (buffer,
// indent tracking). Every binary expression is printed fully parenthesized.
package transpiler

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/lppc/transpiler/internal/ast"
	"github.com/lppc/transpiler/internal/config"
)

// Transpiler walks a Program and accumulates C++17 text. Counters for
// synthesized names are per-instance (not global) so concurrent
// transpilations of separate programs never collide (SPEC_FULL.md §9).
type Transpiler struct {
	buf           bytes.Buffer
	indent        int
	lambdaCounter int
	matchCounter  int
}

// New creates a Transpiler ready to lower one Program.
func New() *Transpiler {
	return &Transpiler{}
}

// Transpile renders prog as a complete C++17 translation unit, preamble
// included. Callers are expected to have already checked
// pipeline.Context.HasErrors() and skipped this stage on Error-severity
// diagnostics (spec §4.7) — Transpile does not re-check.
func Transpile(prog *ast.Program) string {
	t := New()
	t.buf.WriteString(preamble)
	t.transpileProgram(prog)
	return t.buf.String()
}

func (t *Transpiler) write(s string) {
	t.buf.WriteString(s)
}

func (t *Transpiler) writeIndent() {
	t.buf.WriteString(strings.Repeat("    ", t.indent))
}

func (t *Transpiler) writeLine(s string) {
	t.writeIndent()
	t.buf.WriteString(s)
	t.buf.WriteByte('\n')
}

func (t *Transpiler) transpileProgram(prog *ast.Program) {
	if prog == nil {
		return
	}
	if hasDesignPattern(prog) {
		t.write("#include \"lpp_patterns.hpp\"\n\n")
	}
	for _, en := range prog.Enums {
		t.transpileEnum(en)
	}
	for _, td := range prog.Types {
		t.transpileType(td)
	}
	for _, iface := range prog.Interfaces {
		t.transpileInterface(iface)
	}
	for _, cls := range prog.Classes {
		t.transpileClass(cls)
	}
	for _, fn := range prog.Functions {
		t.transpileFunction(fn)
	}
	if hasMain(prog) {
		return
	}
	t.write("int main() {\n")
	t.indent++
	for _, fn := range prog.Functions {
		if fn.Name == "run" || fn.Name == "start" {
			t.writeLine(fn.Name + "();")
		}
	}
	t.writeLine("return 0;")
	t.indent--
	t.write("}\n")
}

// hasDesignPattern reports whether any class in prog carries a resolved
// auto-pattern, gating the companion-header include (spec §4.6, §6).
func hasDesignPattern(prog *ast.Program) bool {
	for _, cls := range prog.Classes {
		if cls.DesignPattern != "" {
			return true
		}
	}
	return false
}

func hasMain(prog *ast.Program) bool {
	for _, fn := range prog.Functions {
		if fn.Name == "main" {
			return true
		}
	}
	return false
}

// transpileEnum lowers `enum Name { A, B }` to a C++ `enum class`.
func (t *Transpiler) transpileEnum(en *ast.EnumDecl) {
	t.writeLine(fmt.Sprintf("enum class %s {", en.Name))
	t.indent++
	for i, v := range en.Values {
		sep := ","
		if i == len(en.Values)-1 {
			sep = ""
		}
		t.writeLine(v + sep)
	}
	t.indent--
	t.writeLine("};")
	t.write("\n")
}

// transpileType lowers a closed-variant sum type to one struct per
// constructor plus a std::variant alias; a generic type becomes a
// template on every struct and on the alias (spec §4.6).
func (t *Transpiler) transpileType(td *ast.TypeDecl) {
	template := templateLine(td.TypeParams, false)
	args := ""
	if len(td.TypeParams) > 0 {
		args = "<" + strings.Join(td.TypeParams, ", ") + ">"
	}
	variantNames := make([]string, 0, len(td.Variants))
	for _, v := range td.Variants {
		structName := td.Name + "_" + v.Ctor
		variantNames = append(variantNames, structName+args)
		if template != "" {
			t.writeLine(template)
		}
		t.writeLine(fmt.Sprintf("struct %s {", structName))
		t.indent++
		for i, f := range v.Fields {
			t.writeLine(fmt.Sprintf("%s field%d;", config.LowerFullType(f), i))
		}
		t.indent--
		t.writeLine("};")
	}
	if template != "" {
		t.writeLine(template)
	}
	t.writeLine(fmt.Sprintf("using %s = std::variant<%s>;", td.Name, strings.Join(variantNames, ", ")))
	t.write("\n")
}

// templateLine renders `template<typename A, typename B>` for a generic
// parameter list, appending a trailing parameter pack when pack is true.
// Empty when there is nothing to parameterize.
func templateLine(params []string, pack bool) string {
	parts := make([]string, 0, len(params)+1)
	for _, p := range params {
		parts = append(parts, "typename "+p)
	}
	if pack {
		parts = append(parts, "typename... Args")
	}
	if len(parts) == 0 {
		return ""
	}
	return "template<" + strings.Join(parts, ", ") + ">"
}

func (t *Transpiler) transpileInterface(n *ast.InterfaceDecl) {
	t.writeLine(fmt.Sprintf("class %s {", n.Name))
	t.writeLine("public:")
	t.indent++
	t.writeLine(fmt.Sprintf("virtual ~%s() = default;", n.Name))
	for _, m := range n.Methods {
		t.writeLine(fmt.Sprintf("virtual %s %s(%s) = 0;", config.LowerTypeName(m.ReturnType), m.Name, t.interfaceParamList(m.ParamTypes)))
	}
	t.indent--
	t.writeLine("};")
	t.write("\n")
}

// interfaceParamList lowers an interface method's bare parameter types to a
// C++ parameter list; interface parameters carry no names in L's grammar,
// so each slot is rendered as an anonymous parameter.
func (t *Transpiler) interfaceParamList(paramTypes []string) string {
	parts := make([]string, len(paramTypes))
	for i, ty := range paramTypes {
		parts[i] = config.LowerFullType(ty)
	}
	return strings.Join(parts, ", ")
}

func (t *Transpiler) transpileClass(cls *ast.ClassDecl) {
	header := "class " + cls.Name
	if cls.Base != "" {
		header += " : public " + cls.Base
	}
	t.writeLine(header + " {")
	t.writeLine("public:")
	t.indent++
	for _, p := range cls.Properties {
		t.writeLine(config.LowerFullType(p.TypeName) + " " + p.Name + ";")
	}
	if cls.Constructor != nil {
		t.transpileMethodHeader(cls.Name, cls.Constructor, "")
	}
	for _, m := range cls.Methods {
		t.transpileMethodHeader(cls.Name, m, config.LowerTypeName(m.ReturnType))
	}
	t.indent--
	t.writeLine("};")
	if cls.DesignPattern != "" {
		t.writeLine(fmt.Sprintf("LPP_PATTERN_%s(%s);", strings.ToUpper(cls.DesignPattern), cls.Name))
	}
	t.write("\n")
}

func (t *Transpiler) transpileMethodHeader(className string, fn *ast.FunctionDecl, returnType string) {
	if tl := templateLine(fn.GenericParams, fn.RestParam != nil); tl != "" {
		t.writeLine(tl)
	}
	params := t.paramList(fn.Params, fn.RestParam)
	if returnType == "" {
		t.writeLine(fmt.Sprintf("%s(%s) {", fn.Name, params))
	} else {
		t.writeLine(fmt.Sprintf("%s %s(%s) {", returnType, fn.Name, params))
	}
	t.indent++
	t.transpileBody(fn)
	t.indent--
	t.writeLine("}")
}

func (t *Transpiler) transpileFunction(fn *ast.FunctionDecl) {
	ret := config.LowerFullType(fn.ReturnType)
	if ret == "" {
		ret = "auto"
	}
	if fn.IsAsync {
		ret = "std::future<" + ret + ">"
	}
	if tl := templateLine(fn.GenericParams, fn.RestParam != nil); tl != "" {
		t.writeLine(tl)
	}
	params := t.paramList(fn.Params, fn.RestParam)
	t.writeLine(fmt.Sprintf("%s %s(%s) {", ret, fn.Name, params))
	t.indent++
	t.transpileBody(fn)
	t.indent--
	t.writeLine("}")
	t.write("\n")
}

// transpileBody renders a function body, applying the rest-parameter macro
// wrapper and the async std::async wrapper when the declaration calls for
// them (spec §4.6: an async function's body runs inside
// std::async(std::launch::async, ...), and a rest parameter's pack is
// re-exposed under its declared name as a vector via a macro that is
// #undef'ed at function end).
func (t *Transpiler) transpileBody(fn *ast.FunctionDecl) {
	if fn.Body == nil {
		return
	}
	if fn.RestParam != nil {
		t.writeLine(fmt.Sprintf("#define %s std::vector<std::any>{__rest_args...}", fn.RestParam.Name))
	}
	if fn.IsAsync {
		t.writeLine("return std::async(std::launch::async, [&]() {")
		t.indent++
		t.transpileStatements(fn.Body.Statements)
		t.indent--
		t.writeLine("});")
	} else {
		t.transpileStatements(fn.Body.Statements)
	}
	if fn.RestParam != nil {
		t.writeLine(fmt.Sprintf("#undef %s", fn.RestParam.Name))
	}
}

func (t *Transpiler) paramList(params []ast.Param, rest *ast.Param) string {
	parts := make([]string, 0, len(params)+1)
	for _, p := range params {
		typeName := config.LowerFullType(p.TypeName)
		if typeName == "" {
			typeName = "auto"
		}
		parts = append(parts, typeName+" "+p.Name)
	}
	if rest != nil {
		parts = append(parts, "Args... __rest_args")
	}
	return strings.Join(parts, ", ")
}
