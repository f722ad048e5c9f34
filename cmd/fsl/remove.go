package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/foursquare/fsltool/ast"
	"github.com/foursquare/fsltool/printer"
	"github.com/foursquare/fsltool/treeops"
)

func newRemoveCmd() *cobra.Command {
	var kindStr, name string
	cmd := &cobra.Command{
		Use:   "remove [files...]",
		Short: "remove one named declaration",
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
				if !treeops.Remove(f.tree, kind, name) {
					a.log.Warn("declaration not found", "file", f.path, "kind", kindStr, "name", name)
				}
				text, err := printer.Print(f.tree, printer.Options{})
				if err != nil {
					return err
				}
				fmt.Println(text)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kindStr, "kind", "", "declaration kind (required)")
	cmd.Flags().StringVar(&name, "name", "", "declaration name (required)")
	cmd.MarkFlagRequired("kind")
	cmd.MarkFlagRequired("name")
	return cmd
}
