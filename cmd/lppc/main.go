// Command lppc is the thin CLI driver over the compiler core (spec §6).
// It owns exactly the external-collaborator contract the core pipeline
// needs to be exercised from a shell: reading the source file, running
// the pipeline, writing the C++ output, and formatting diagnostics. It
// never invokes a host C++ compiler — that remains an external
// collaborator per spec.md §1's non-goals.
//
// Grounded on mcgru-funxy/cmd/funxy/main.go's flag-parsing and
// file-extension-routing idiom, pared down to this module's narrower
// contract: `compile <input> [-o <output>] [-c]`.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/lppc/transpiler/internal/diagnostics"
	"github.com/lppc/transpiler/internal/pipeline"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: lppc compile <input> [-o <output>] [-c]")
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 2 || args[0] != "compile" {
		usage()
		return 1
	}
	input := args[1]
	output := ""
	suppressCompile := false

	for i := 2; i < len(args); i++ {
		switch args[i] {
		case "-o":
			if i+1 >= len(args) {
				usage()
				return 1
			}
			i++
			output = args[i]
		case "-c":
			suppressCompile = true
		default:
			usage()
			return 1
		}
	}

	src, err := os.ReadFile(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lppc: %s: %v\n", input, err)
		return 1
	}

	p, closeCache := pipeline.DefaultWithCache()
	defer closeCache()

	ctx, err := p.Run(pipeline.NewContext(string(src), input))
	if err != nil {
		fmt.Fprintf(os.Stderr, "lppc: %s: %v\n", input, err)
		return 1
	}

	printer := diagnostics.NewPrinter(string(src), true)
	for _, d := range ctx.Diagnostics {
		fmt.Fprintln(os.Stderr, printer.Format(d))
	}

	if ctx.HasErrors() {
		return 1
	}

	if output == "" {
		output = strings.TrimSuffix(input, ".l") + ".cpp"
		if output == input {
			output = input + ".cpp"
		}
	}
	if err := os.WriteFile(output, []byte(ctx.CppOutput), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "lppc: %s: %v\n", output, err)
		return 1
	}

	// Host compiler invocation is an external collaborator (spec.md §1);
	// -c only exists to document that this driver never performs it.
	_ = suppressCompile

	return 0
}
