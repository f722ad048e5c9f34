package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/foursquare/fsltool/ast"
	"github.com/foursquare/fsltool/printer"
	"github.com/foursquare/fsltool/treeops"
)

func newFilterCmd() *cobra.Command {
	var kindStr string
	cmd := &cobra.Command{
		Use:   "filter [files...]",
		Short: "keep only declarations of one kind",
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := ast.ParseDeclKind(kindStr)
			if !ok {
				return fmt.Errorf("invalid --kind %q: must be one of access_provider, collection, function, role", kindStr)
			}
			paths, err := expandInputs(args, a.cfg.Inputs)
			if err != nil {
				return err
			}
			files, err := parseInputs(paths, flagKeepGoing)
			if err != nil {
				return err
			}
			for _, f := range files {
				filtered := treeops.Filter(f.tree, kind)
				text, err := printer.Print(filtered, printer.Options{})
				if err != nil {
					return err
				}
				fmt.Println(text)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kindStr, "kind", "", "declaration kind to keep (required)")
	cmd.MarkFlagRequired("kind")
	return cmd
}
