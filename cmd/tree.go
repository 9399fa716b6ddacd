package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTreeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tree <directory>",
		Short: "Print the directory structure that a transform would visit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine(cmd, opts)
			if err != nil {
				return err
			}
			diagram, err := engine.Tree(args[0])
			if err != nil {
				return fmt.Errorf("error building tree: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), diagram)
			return nil
		},
	}
}
