package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/foursquare/fsltool/tsgen"
)

func newTSDefsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tsdefs [files...]",
		Short: "emit TypeScript interface declarations for every collection",
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
				out, err := tsgen.Generate(f.tree)
				if err != nil {
					return err
				}
				fmt.Print(out)
			}
			return nil
		},
	}
}
