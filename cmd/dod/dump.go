package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dodlang/dod/pkg/dod"
)

// runDump implements the dump subcommand. It prints the statements parsed
// before the first error, then reports the error. With no file, or "-",
// source is read from stdin.
func runDump(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("dump takes at most one file, got %d", fs.NArg())
	}

	name := "<stdin>"
	var (
		source []byte
		err    error
	)
	if path := fs.Arg(0); path != "" && path != "-" {
		name = path
		source, err = os.ReadFile(path)
	} else {
		source, err = io.ReadAll(stdin)
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}

	prog, parseErr := dod.Parse(string(source))
	if err := dod.Dump(stdout, prog); err != nil {
		return fmt.Errorf("writing dump: %w", err)
	}
	if parseErr != nil {
		writeDiagnostic(stderr, name, string(source), parseErr)
		return fmt.Errorf("%s had errors", name)
	}
	return nil
}
