// Package discovery finds the input files of a batch run.
package discovery

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/user/gifatlas/pkg/ports"
)

// DefaultPattern matches GIF files.
const DefaultPattern = "*.gif"

// Discover lists the regular files below root whose base name matches
// pattern and returns them sorted lexicographically. Matching is
// case-sensitive, so "*.gif" does not select "WALK.GIF".
func Discover(fsys ports.FileSystem, root, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	// Reject malformed patterns up front.
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, err
	}

	all, err := fsys.ListFiles(root)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, path := range all {
		if ok, _ := filepath.Match(pattern, filepath.Base(path)); ok {
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files, nil
}

// Name returns the path of file relative to root without its extension,
// using forward slashes. It identifies an input in debug output.
func Name(root, file string) string {
	rel, err := filepath.Rel(root, file)
	if err != nil {
		rel = filepath.Base(file)
	}
	return filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))
}
