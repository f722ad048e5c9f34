package main

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
)

// expandInputs resolves CLI file arguments and/or config-file glob
// patterns into a deduplicated list of regular file paths, in the order
// the arguments/patterns (and each pattern's matches) produce them.
// Arguments that name an existing file are taken literally; everything
// else is treated as a doublestar glob rooted at the current directory,
// since glob-based discovery is explicitly outer-CLI behavior, not
// something the core packages concern themselves with.
func expandInputs(args []string, configInputs []string) ([]string, error) {
	patterns := args
	if len(patterns) == 0 {
		patterns = configInputs
	}
	if len(patterns) == 0 {
		return nil, fmt.Errorf("no input files given and no inputs configured in .fsltool.yaml")
	}

	seen := make(map[string]bool)
	var out []string
	for _, p := range patterns {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
			continue
		}

		matches, err := doublestar.FilepathGlob(p)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", p, err)
		}
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil || info.IsDir() {
				continue
			}
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no files matched %v", patterns)
	}
	return out, nil
}
