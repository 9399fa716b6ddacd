package cmd

import (
	"fmt"

	"codeonly/pkg/logging"
	"codeonly/pkg/transform"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newTransformCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transform <directory>",
		Short: "Write the code-only text file for a directory",
		Long: `Transform renders every code file under <directory> into one annotated text
file. Trees holding more code files than --threshold need confirmation
on a terminal, and are refused otherwise unless --force is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			force, err := cmd.Flags().GetBool("force")
			if err != nil {
				return fmt.Errorf("error reading flags: %w", err)
			}

			engine, err := newEngine(cmd, opts)
			if err != nil {
				return err
			}
			dir := args[0]

			if !force {
				exceeds, count, err := engine.ExceedsThreshold(dir)
				if err != nil {
					return fmt.Errorf("error counting code files: %w", err)
				}
				if exceeds {
					threshold := engine.Config().MaxFilesThreshold
					logging.Logger.Warn("Directory exceeds file threshold",
						zap.String("directory", dir),
						zap.Int("threshold", threshold))
					proceed := false
					if isInteractive() {
						proceed, err = promptUser(cmd, fmt.Sprintf(
							"%s contains more than %d code files, which may produce a very large output. Continue? (y/n): ",
							dir, threshold))
						if err != nil {
							return fmt.Errorf("error reading confirmation: %w", err)
						}
					}
					if !proceed {
						return fmt.Errorf("%s contains more than %d code files (counted %d); rerun with --force to transform it anyway",
							dir, threshold, count)
					}
				}
			}

			result := engine.Transform(dir)
			if !result.Success {
				return fmt.Errorf("error processing directory: %w", result.Err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Output written to %s\n", result.OutputPath)
			fmt.Fprintf(out, "Files processed: %d\n", result.FilesProcessed)
			if result.LimitReached {
				fmt.Fprintln(out, transform.LimitReachedNote(engine.Config().MaxTotalFiles))
			}
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "", "Output file path (default <parent>/<name>_code_only.txt)")
	cmd.Flags().BoolP("force", "f", false, "Transform even when the file threshold is exceeded")
	cmd.Flags().Bool("no-summary", false, "Omit the summary header")
	cmd.Flags().Bool("allow-empty", false, "Write a summary-only file when no code files are found")
	return cmd
}
