// Command sealcheck is the CLI entry point for the Seal structural type
// checker: it reads a source file, parses it, runs the checker over the
// resulting program, and prints every diagnostic found.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/sealcheck/internal/checker"
	"github.com/funvibe/sealcheck/internal/config"
	"github.com/funvibe/sealcheck/internal/diagnostics"
	"github.com/funvibe/sealcheck/internal/parser"
	"github.com/funvibe/sealcheck/internal/token"
	"github.com/funvibe/sealcheck/internal/types"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "this is a bug in sealcheck, please report it")
			os.Exit(1)
		}
	}()

	if handleHelp() {
		return
	}
	if handleCheck() {
		return
	}

	fmt.Fprintf(os.Stderr, "Usage: %s check <file> [file2 ...]\n", os.Args[0])
	os.Exit(1)
}

func handleHelp() bool {
	if len(os.Args) < 2 {
		return false
	}
	switch os.Args[1] {
	case "-help", "--help", "help":
	default:
		return false
	}
	fmt.Println("sealcheck: a structural type checker for Seal")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  sealcheck check <file> [file2 ...]   check one or more source files")
	fmt.Println("  sealcheck help                        show this message")
	fmt.Println()
	fmt.Println("Project settings are read from the nearest .sealcheck.yaml, if one exists:")
	fmt.Println("  suppress: [\"SEAL2002\"]   diagnostic codes to never report")
	fmt.Println("  color: auto|always|never  when to colorize diagnostic output")
	return true
}

func handleCheck() bool {
	if len(os.Args) < 2 || os.Args[1] != "check" {
		return false
	}
	if len(os.Args) < 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s check <file> [file2 ...]\n", os.Args[0])
		os.Exit(1)
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	cfg, err := config.LoadNearest(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	anyFailed := false
	for _, path := range os.Args[2:] {
		if !checkFile(path, cfg) {
			anyFailed = true
		}
	}
	if anyFailed {
		os.Exit(1)
	}
	return true
}

// checkFile parses and checks one source file, printing its surviving
// diagnostics (after cfg's suppression list is applied). Returns false
// if the file had any parse error or surviving diagnostic.
func checkFile(path string, cfg *config.Config) bool {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", path, err)
		return false
	}

	prog, parseErrs := parser.ParseFile(string(src))
	sm := token.NewSourceMap(path, string(src))

	if len(parseErrs) > 0 {
		for _, pe := range parseErrs {
			fmt.Println(renderLine(path, pe.Render(sm), shouldColor(cfg)))
		}
		return false
	}

	ctx := types.NewContext()
	diags := checker.NewTopLevelChecker(ctx).CheckProgram(prog)

	ok := true
	for _, d := range diags {
		if cfg.Suppressed(string(d.Kind.Code())) {
			continue
		}
		ok = false
		fmt.Println(renderLine(path, d.Render(sm), shouldColor(cfg)))
	}
	if ok {
		fmt.Printf("%s: no errors\n", path)
	}
	return ok
}

// shouldColor resolves cfg.Color against whether stdout is a terminal,
// the same gate funxy's builtins_term.go applies to its own buffered
// terminal output.
func shouldColor(cfg *config.Config) bool {
	switch cfg.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
}

// renderLine prefixes rendered with the file path and, when color is
// enabled, wraps it in red.
func renderLine(path, rendered string, color bool) string {
	prefix := filepath.Clean(path) + ": "
	if !color {
		return prefix + rendered
	}
	const red = "\x1b[31m"
	const reset = "\x1b[0m"
	return prefix + red + rendered + reset
}
