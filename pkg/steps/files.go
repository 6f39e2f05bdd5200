package steps

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// sourceFiles resolves include patterns against root, sorted and
// de-duplicated, directories excluded.
func sourceFiles(root string, include []string) ([]string, error) {
	fsys := os.DirFS(root)

	var result []string
	for _, pattern := range include {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		result = append(result, matches...)
	}
	slices.Sort(result)
	result = slices.Compact(result)

	files := result[:0]
	for _, f := range result {
		info, err := fs.Stat(fsys, f)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", f, err)
		}
		if !info.IsDir() {
			files = append(files, f)
		}
	}
	return files, nil
}

// copyTree mirrors src into dst, preserving file modes.
func copyTree(src, dst string) error {
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk error at %s: %w", path, err)
		}
		rel, relErr := filepath.Rel(src, path)
		if relErr != nil {
			return fmt.Errorf("computing relative path for %s: %w", path, relErr)
		}

		target := filepath.Join(dst, rel)
		if d.IsDir() {
			if mkErr := os.MkdirAll(target, 0o750); mkErr != nil {
				return fmt.Errorf("creating directory %s: %w", target, mkErr)
			}
			return nil
		}

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return fmt.Errorf("reading %s: %w", path, readErr)
		}
		info, infoErr := d.Info()
		if infoErr != nil {
			return fmt.Errorf("stat %s: %w", path, infoErr)
		}
		if writeErr := os.WriteFile(target, data, info.Mode()); writeErr != nil {
			return fmt.Errorf("writing %s: %w", target, writeErr)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("copying tree: %w", err)
	}
	return nil
}

// findSolution locates the companion solution file under dir, if any.
func findSolution(dir string) (string, bool) {
	matches, err := doublestar.Glob(os.DirFS(dir), "*.sln")
	if err != nil || len(matches) == 0 {
		return "", false
	}
	slices.Sort(matches)
	return filepath.Join(dir, matches[0]), true
}
