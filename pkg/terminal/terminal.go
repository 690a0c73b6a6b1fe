package terminal

import (
	"github.com/de-tools/price-atlas/pkg/terminal/commands"
	"github.com/de-tools/price-atlas/pkg/terminal/export"

	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	reporter *export.CSVReporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	// OutputDir is where CSV exports land; defaults to the working directory.
	OutputDir string
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	cli := &CLI{
		reporter: export.NewCSVReporter(opts.OutputDir),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price-atlas",
		Short: "Daily price series extraction tool",
	}

	cmd.AddCommand(commands.NewExtractCmd(cli.reporter))

	return cmd
}
