package filecheck

import (
	"fmt"
	"path/filepath"
)

// ExpandPaths resolves command-line arguments that may be shell-style
// patterns. Arguments keep their order; matches of one pattern come out
// sorted. An argument matching nothing is kept as-is so that validation can
// report it as missing. Duplicates are dropped.
func ExpandPaths(args []string) ([]string, error) {
	seen := make(map[string]bool, len(args))
	var paths []string

	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid path pattern %q: %w", arg, err)
		}

		if len(matches) == 0 {
			add(arg)
			continue
		}
		for _, m := range matches {
			add(m)
		}
	}

	return paths, nil
}
