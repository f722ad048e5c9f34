package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/foursquare/fsltool/treeops"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [files...]",
		Short: "parse input files and report declaration counts, or parse errors",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := expandInputs(args, a.cfg.Inputs)
			if err != nil {
				return err
			}
			files, err := parseInputs(paths, flagKeepGoing)
			if err != nil {
				return err
			}
			for _, f := range files {
				fmt.Printf("%s: %d declarations\n", f.path, treeops.GetLength(f.tree))
			}
			return nil
		},
	}
}
