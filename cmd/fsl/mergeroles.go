package main

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/foursquare/fsltool/printer"
	"github.com/foursquare/fsltool/rolemerge"
)

func newMergeRolesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge-roles [files...]",
		Short: "union same-named role blocks, failing on conflicting privileges or memberships",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := expandInputs(args, a.cfg.Inputs)
			if err != nil {
				return err
			}
			files, err := parseInputs(paths, flagKeepGoing)
			if err != nil {
				return err
			}

			var errs *multierror.Error
			for _, f := range files {
				merged, err := rolemerge.Merge(f.tree)
				if err != nil {
					errs = multierror.Append(errs, fmt.Errorf("%s: %w", f.path, err))
					if !flagKeepGoing {
						return errs.ErrorOrNil()
					}
					continue
				}
				f.tree.Declarations = merged
				text, err := printer.Print(f.tree, printer.Options{})
				if err != nil {
					return err
				}
				fmt.Println(text)
			}
			return errs.ErrorOrNil()
		},
	}
}
