package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const sourceExt = ".dod"

// collectDodFiles expands command-line paths into a sorted list of .dod files.
// A path may be a file, a directory (non-recursive), dir/... (recursive), or
// a doublestar glob.
func collectDodFiles(paths []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		// Handle ./... recursive pattern
		if strings.HasSuffix(path, "/...") || path == "..." {
			root := strings.TrimSuffix(strings.TrimSuffix(path, "..."), "/")
			if root == "" {
				root = "."
			}

			err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() && strings.HasSuffix(p, sourceExt) {
					files = append(files, p)
				}
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("walking %s: %w", root, err)
			}
			continue
		}

		if strings.ContainsAny(path, "*?[{") {
			if !doublestar.ValidatePattern(filepath.ToSlash(path)) {
				return nil, fmt.Errorf("invalid glob pattern %q", path)
			}
			matches, err := doublestar.FilepathGlob(path, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("expanding %s: %w", path, err)
			}
			for _, m := range matches {
				if strings.HasSuffix(m, sourceExt) {
					files = append(files, m)
				}
			}
			continue
		}

		// Check if path exists
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}

		if info.IsDir() {
			// Collect all .dod files in directory (non-recursive)
			entries, err := os.ReadDir(path)
			if err != nil {
				return nil, fmt.Errorf("reading directory %s: %w", path, err)
			}
			for _, entry := range entries {
				if !entry.IsDir() && strings.HasSuffix(entry.Name(), sourceExt) {
					files = append(files, filepath.Join(path, entry.Name()))
				}
			}
		} else {
			// Explicitly named files are accepted whatever their extension.
			files = append(files, path)
		}
	}

	for i, f := range files {
		files[i] = filepath.Clean(f)
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}
