package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCountCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count <directory>",
		Short: "Count code files under a directory, up to a ceiling",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine(cmd, opts)
			if err != nil {
				return err
			}

			ceiling, err := cmd.Flags().GetInt("max")
			if err != nil {
				return fmt.Errorf("error reading flags: %w", err)
			}
			if !cmd.Flags().Changed("max") {
				ceiling = engine.Config().MaxFilesThreshold + 1
			}

			count, err := engine.CountCodeFiles(args[0], ceiling)
			if err != nil {
				return fmt.Errorf("error counting code files: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), count)
			return nil
		},
	}
	cmd.Flags().Int("max", 0, "Stop counting at this many files (default threshold+1)")
	return cmd
}
