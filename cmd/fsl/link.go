package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/foursquare/fsltool/linker"
	"github.com/foursquare/fsltool/printer"
)

func newLinkCmd() *cobra.Command {
	var printTree bool
	cmd := &cobra.Command{
		Use:   "link [files...]",
		Short: "content-address and mangle every user-defined function, printing the {original: mangled} map",
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
				mangled, err := linker.Link(f.tree)
				if err != nil {
					return fmt.Errorf("%s: %w", f.path, err)
				}
				if printTree {
					text, err := printer.Print(f.tree, printer.Options{})
					if err != nil {
						return err
					}
					fmt.Println(text)
					continue
				}
				out, err := json.MarshalIndent(mangled, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&printTree, "print", false, "print the linked tree in canonical form instead of the mangling map")
	return cmd
}
