package pipeline

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Discover matches pattern (doublestar syntax, e.g. "**/*.mkv") against the
// tree rooted at inputDir and returns the matching regular files as full
// paths, sorted lexicographically for deterministic processing order.
func Discover(inputDir, pattern string) ([]string, error) {
	fsys := os.DirFS(inputDir)

	matches, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}

	var files []string
	for _, m := range matches {
		info, err := fs.Stat(fsys, m)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, filepath.Join(inputDir, filepath.FromSlash(m)))
	}
	sort.Strings(files)
	return files, nil
}
