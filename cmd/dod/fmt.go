package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/sync/errgroup"

	"github.com/dodlang/dod/pkg/formatter"
)

// fmtResult is the outcome of formatting one file.
type fmtResult struct {
	path   string
	source string
	res    formatter.FormatResult
	err    error
}

// runFmt implements the fmt subcommand.
// It formats .dod files in place or reports how they would change.
func runFmt(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	check := fs.Bool("check", false, "Report unformatted files without modifying them")
	diff := fs.Bool("diff", false, "Print a unified diff instead of rewriting files")
	toStdout := fs.Bool("stdout", false, "Print formatted output to stdout instead of rewriting files")
	jobs := fs.Int("j", runtime.GOMAXPROCS(0), "Number of files to format in parallel")

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

	results, err := formatFiles(formatter.New(), files, *jobs)
	if err != nil {
		return err
	}

	var errorCount, notFormattedCount int
	for _, r := range results {
		if r.err != nil {
			writeDiagnostic(stderr, r.path, r.source, r.err)
			errorCount++
			continue
		}

		switch {
		case *toStdout:
			if len(results) > 1 {
				fmt.Fprintf(stdout, "==> %s <==\n", r.path)
			}
			fmt.Fprint(stdout, r.res.Content)

		case *diff || *check:
			if !r.res.Changed {
				continue
			}
			notFormattedCount++
			if *diff {
				fmt.Fprint(stdout, unifiedDiff(r.path, r.source, r.res.Content))
			} else {
				fmt.Fprintf(stderr, "%s is not formatted\n", r.path)
			}

		default:
			if !r.res.Changed {
				continue
			}
			if err := os.WriteFile(r.path, []byte(r.res.Content), 0o644); err != nil {
				fmt.Fprintf(stderr, "%s: writing file: %v\n", r.path, err)
				errorCount++
				continue
			}
			fmt.Fprintf(stdout, "Formatted: %s\n", r.path)
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("%d file(s) had errors", errorCount)
	}

	if *check && notFormattedCount > 0 {
		return fmt.Errorf("%d file(s) not formatted", notFormattedCount)
	}

	return nil
}

// formatFiles reads and formats files in parallel. Parse errors are recorded
// per file; read errors abort.
func formatFiles(fmtr *formatter.Formatter, files []string, jobs int) ([]fmtResult, error) {
	results := make([]fmtResult, len(files))
	var g errgroup.Group
	g.SetLimit(max(jobs, 1))
	for i, path := range files {
		g.Go(func() error {
			source, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			res, err := fmtr.FormatWithResult(string(source))
			results[i] = fmtResult{path: path, source: string(source), res: res, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// unifiedDiff renders the change from before to after as a unified diff.
func unifiedDiff(path, before, after string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  3,
	})
	if err != nil {
		return fmt.Sprintf("%s: diff failed: %v\n", path, err)
	}
	return diff
}
