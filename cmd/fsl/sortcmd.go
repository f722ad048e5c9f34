package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/foursquare/fsltool/printer"
	"github.com/foursquare/fsltool/treeops"
)

func newSortCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sort [files...]",
		Short: "sort declarations by (kind, name) in place and print the result",
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
				treeops.Sort(f.tree)
				text, err := printer.Print(f.tree, printer.Options{})
				if err != nil {
					return err
				}
				fmt.Println(text)
			}
			return nil
		},
	}
}
