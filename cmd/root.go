package cmd

import (
	"codeonly/pkg/config"
	"codeonly/pkg/logging"
	"codeonly/pkg/transform"
	"codeonly/pkg/version"

	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	cfgFile string
	debug   bool
}

// NewRootCmd builds the base command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   version.AppName,
		Short: "codeonly flattens a source tree into a single code-only text file",
		Long: `codeonly walks a source directory, keeps only recognized code files and
writes their content, annotated with directory and file markers, into
<parent>/<name>_code_only.txt. The result is sized for pasting into
review tools or language-model prompts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.Setup(opts.debug, version.AppName, version.Version)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "Config file (default is ./codeonly.yaml or $HOME/.config/codeonly/codeonly.yaml)")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	config.RegisterFlags(flags)

	root.AddCommand(
		newTransformCmd(opts),
		newCountCmd(opts),
		newTreeCmd(opts),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command against os.Args.
func Execute() error {
	return run(NewRootCmd())
}

// run executes root and reports a failure once on its error stream.
func run(root *cobra.Command) error {
	err := root.Execute()
	if err != nil {
		root.PrintErrln("Error:", err)
	}
	return err
}

// newEngine loads the layered configuration for cmd and builds an engine.
func newEngine(cmd *cobra.Command, opts *rootOptions) (*transform.Engine, error) {
	cfg, err := config.Load(opts.cfgFile, cmd.Flags(), logging.Logger)
	if err != nil {
		return nil, err
	}
	return transform.New(cfg, nil, logging.Logger)
}
