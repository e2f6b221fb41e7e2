package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/sync/errgroup"

	"github.com/dodlang/dod/pkg/dod"
)

// checkResult is the outcome of parsing one file.
type checkResult struct {
	path   string
	source string
	err    error
}

// runCheck implements the check subcommand.
// It parses .dod files and reports the first syntax error in each.
func runCheck(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "Verbose output")
	jobs := fs.Int("j", runtime.GOMAXPROCS(0), "Number of files to check in parallel")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Default to current directory if no paths specified
	paths := fs.Args()
	if len(paths) == 0 {
		paths = []string{"."}
	}

	files, err := collectDodFiles(paths)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no %s files found", sourceExt)
	}

	if *verbose {
		fmt.Fprintf(stdout, "Checking %d %s file(s)\n", len(files), sourceExt)
	}

	// Results are indexed by file so output order does not depend on scheduling.
	results := make([]checkResult, len(files))
	var g errgroup.Group
	g.SetLimit(max(*jobs, 1))
	for i, path := range files {
		g.Go(func() error {
			source, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			_, parseErr := dod.Parse(string(source))
			results[i] = checkResult{path: path, source: string(source), err: parseErr}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var errorCount int
	for _, res := range results {
		if res.err != nil {
			writeDiagnostic(stderr, res.path, res.source, res.err)
			errorCount++
			continue
		}
		if *verbose {
			fmt.Fprintf(stdout, "ok %s\n", res.path)
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("%d file(s) had errors", errorCount)
	}

	if *verbose {
		fmt.Fprintf(stdout, "All %d file(s) passed checks\n", len(files))
	}

	return nil
}

// writeDiagnostic prints err as "path:line:col: error: msg", followed by the
// offending source line with a caret under the error span.
func writeDiagnostic(w io.Writer, path, source string, err error) {
	var perr *dod.Error
	if !errors.As(err, &perr) {
		fmt.Fprintf(w, "%s: %v\n", path, err)
		return
	}

	fmt.Fprintf(w, "%s:%s: error: %s\n", path, perr.Pos, perr.Message)

	line, ok := sourceLine(source, perr.Pos.Line)
	if !ok {
		return
	}
	start := clamp(perr.Pos.Column-1, 0, len(line))
	end := len(line)
	if perr.End.Line == perr.Pos.Line {
		end = clamp(perr.End.Column-1, start, len(line))
	}

	fmt.Fprintf(w, "    %s\n", line)
	fmt.Fprintf(w, "    %s%s\n", caretPadding(line[:start]), strings.Repeat("^", max(uniseg.StringWidth(line[start:end]), 1)))
}

// sourceLine returns the 1-based line n of source without its line ending.
func sourceLine(source string, n int) (string, bool) {
	lines := strings.Split(source, "\n")
	if n < 1 || n > len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[n-1], "\r"), true
}

// caretPadding returns whitespace that occupies the same terminal columns as
// prefix. Tabs are kept so they expand the same way in both lines.
func caretPadding(prefix string) string {
	var sb strings.Builder
	for gs := uniseg.NewGraphemes(prefix); gs.Next(); {
		cluster := gs.Str()
		if cluster == "\t" {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", uniseg.StringWidth(cluster)))
	}
	return sb.String()
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
