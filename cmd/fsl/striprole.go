package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/foursquare/fsltool/printer"
	"github.com/foursquare/fsltool/treeops"
)

func newStripResourceCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "strip-resource [files...]",
		Short: "remove every role privilege on one resource name (memberships are kept)",
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
				treeops.StripRolesResource(f.tree, name)
				text, err := printer.Print(f.tree, printer.Options{})
				if err != nil {
					return err
				}
				fmt.Println(text)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "privilege resource name to strip (required)")
	cmd.MarkFlagRequired("name")
	return cmd
}
