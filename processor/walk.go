package processor

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

// Walk lists regular files under root as sorted, slash separated relative
// paths. Hidden directories are skipped.
func Walk(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}

			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		files = append(files, filepath.ToSlash(rel))

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk template directory %s: %w", root, err)
	}

	slices.Sort(files)

	return files, nil
}
