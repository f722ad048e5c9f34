package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/foursquare/fsltool/treeops"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [files...]",
		Short: "print the JSON declaration listing (spec.md §6.4)",
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
				out, err := treeops.ListDeclarations(f.tree)
				if err != nil {
					return err
				}
				fmt.Println(string(out))
			}
			return nil
		},
	}
}
