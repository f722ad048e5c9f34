package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/foursquare/fsltool/cache"
	"github.com/foursquare/fsltool/printer"
)

func newCanonicalCmd() *cobra.Command {
	var (
		sortDecls bool
		sourceMap string
		outDir    string
	)
	cmd := &cobra.Command{
		Use:   "canonical [files...]",
		Short: "print the canonical rendering of input files",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := expandInputs(args, a.cfg.Inputs)
			if err != nil {
				return err
			}
			files, err := parseInputs(paths, flagKeepGoing)
			if err != nil {
				return err
			}

			if !sortDecls {
				sortDecls = a.cfg.Sort
			}
			if sourceMap == "" {
				sourceMap = a.cfg.SourceMap
			}
			if outDir == "" {
				outDir = a.cfg.OutputDir
			}
			opts := printer.Options{Sort: sortDecls, SourceMapFile: sourceMap}

			for _, f := range files {
				key := cache.Key(append([]byte(opts.SourceMapFile+boolTag(opts.Sort)), f.src...))
				if cached, ok := a.cache.Get(key); ok {
					if err := writeOutput(outDir, filepath.Base(f.path), string(cached)); err != nil {
						return err
					}
					continue
				}

				text, err := printer.Print(f.tree, opts)
				if err != nil {
					return err
				}
				a.cache.Put(key, []byte(text))
				if err := writeOutput(outDir, filepath.Base(f.path), text); err != nil {
					return err
				}
			}
			return a.cache.Save()
		},
	}
	cmd.Flags().BoolVar(&sortDecls, "sort", false, "sort declarations by (kind, name) instead of source order")
	cmd.Flags().StringVar(&sourceMap, "source-map", "", "emit an inline base64 source map naming this destination file")
	cmd.Flags().StringVar(&outDir, "out", "", "write one file per input into this directory instead of stdout")
	return cmd
}

func boolTag(b bool) string {
	if b {
		return "\x01sort"
	}
	return ""
}
