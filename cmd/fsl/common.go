package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"

	"github.com/foursquare/fsltool/ast"
	"github.com/foursquare/fsltool/parser"
)

// parsedFile pairs a source path with its parsed tree, preserving input
// order for deterministic command output.
type parsedFile struct {
	path string
	src  []byte
	tree *ast.SchemaTree
}

// parseInputs parses every resolved input file, aggregating failures via
// go-multierror. With keepGoing unset the first parse error aborts the
// whole batch; with it set every file is attempted and all failures are
// reported together, mirroring the teacher's per-file handleFile loop in
// scala/main.go generalized to continue-on-error.
func parseInputs(paths []string, keepGoing bool) ([]parsedFile, error) {
	var result []parsedFile
	var errs *multierror.Error

	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", path, err))
			if !keepGoing {
				return nil, errs.ErrorOrNil()
			}
			continue
		}
		tree, err := parser.ParseFile(path, src)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", path, err))
			if !keepGoing {
				return nil, errs.ErrorOrNil()
			}
			continue
		}
		result = append(result, parsedFile{path: path, src: src, tree: tree})
	}
	return result, errs.ErrorOrNil()
}

// writeOutput sends content to outDir/name if outDir is non-empty,
// otherwise to stdout.
func writeOutput(outDir, name, content string) error {
	if outDir == "" {
		fmt.Println(content)
		return nil
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(outDir+string(os.PathSeparator)+name, []byte(content), 0o644)
}
