package main

import (
	"fmt"
	"os"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/foursquare/fsltool/parser"
	"github.com/foursquare/fsltool/printer"
)

func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <old.fsl> <new.fsl>",
		Short: "unified diff between two files' canonical renderings",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldText, err := canonicalOf(args[0])
			if err != nil {
				return err
			}
			newText, err := canonicalOf(args[1])
			if err != nil {
				return err
			}

			diff := difflib.UnifiedDiff{
				A:        difflib.SplitLines(oldText),
				B:        difflib.SplitLines(newText),
				FromFile: args[0],
				ToFile:   args[1],
				Context:  3,
			}
			text, err := difflib.GetUnifiedDiffString(diff)
			if err != nil {
				return err
			}
			fmt.Print(text)
			return nil
		},
	}
}

func canonicalOf(path string) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	tree, err := parser.ParseFile(path, src)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return printer.Print(tree, printer.Options{})
}
