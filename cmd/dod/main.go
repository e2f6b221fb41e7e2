// Package main provides the CLI tool and language server for the dod language.
//
// Usage:
//
//	dod                      Start the language server on stdio
//	dod check [path...]      Report syntax errors in .dod files
//	dod fmt [path...]        Format .dod files
//	dod dump [file]          Print the statement tree of a file
//	dod help                 Show help
//
// Examples:
//
//	dod check ./...          Recursively check all .dod files
//	dod check 'src/**/*.dod' Check files matching a glob
//	dod fmt --diff main.dod  Show formatting changes without writing
package main

import (
	"fmt"
	"io"
	"os"
)

const version = "0.1.0"

const usage = `dod - language server and tools for the dod language

Usage:
  dod [command] [options] [path...]

Commands:
  lsp         Start the language server on stdio (default with no command)
  check       Report syntax errors in .dod files
  fmt         Format .dod files
  dump        Print the statement tree of a .dod file
  version     Print version information
  help        Show this help message

Paths may be files, directories, dir/... for recursion, or glob patterns
such as 'src/**/*.dod'. With no paths the current directory is used.

Examples:
  dod check ./...                 Recursively check all .dod files
  dod check -v main.dod           Verbose output
  dod fmt ./...                   Format all .dod files recursively
  dod fmt --check ./...           Check formatting without modifying
  dod fmt --diff main.dod         Print a unified diff of formatting changes
  dod fmt --stdout main.dod       Print formatted output to stdout
  dod dump main.dod               Print the parsed statements
  dod lsp --log /tmp/dod-lsp.log  Start with debug logging
  dod lsp --config dod.yaml       Start with a config file
`

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run dispatches a subcommand. Editors usually launch the bare binary, so no
// command starts the language server.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return runLSP(nil, stdin, stdout, stderr)
	}

	command := args[0]
	args = args[1:]

	switch command {
	case "lsp":
		return runLSP(args, stdin, stdout, stderr)
	case "check":
		return runCheck(args, stdout, stderr)
	case "fmt":
		return runFmt(args, stdout, stderr)
	case "dump":
		return runDump(args, stdin, stdout, stderr)
	case "version":
		fmt.Fprintf(stdout, "dod version %s\n", version)
		return nil
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		fmt.Fprint(stderr, usage)
		return fmt.Errorf("unknown command: %s", command)
	}
}
