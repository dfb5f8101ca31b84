// Package commands implements the CLI commands for the tago build
// orchestrator.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/tago/internal/app"
	"go.trai.ch/tago/internal/build"
	"go.trai.ch/tago/internal/core/domain"
)

// CLI represents the command line interface for tago.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Build(ctx context.Context, opts app.Options) error
	Run(ctx context.Context, opts app.Options) error
	Remove(ctx context.Context, opts app.Options) error
	Query(ctx context.Context, opts app.Options) error
	List(ctx context.Context, opts app.Options) error
	Init(ctx context.Context, opts app.Options) error
	Purge(ctx context.Context, opts app.Options) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "tago",
		Short:         "A tag-indexed build orchestrator",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("file", "f", "", "Descriptor file (default "+domain.DescriptorFileName+")")
	rootCmd.PersistentFlags().String("builds-dir", "", "Override the descriptor's builds directory")
	rootCmd.PersistentFlags().BoolP("local", "l", false, "Operate on the in-place version table instead of the checkout one")
	rootCmd.PersistentFlags().Bool("strict", false, "Refuse experimental kernels below their stable schema version")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newRmCmd())
	rootCmd.AddCommand(c.newQueryCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newInitCmd())
	rootCmd.AddCommand(c.newPurgeCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// options assembles the app options shared by every subcommand from the
// persistent flags.
func (c *CLI) options(cmd *cobra.Command) app.Options {
	file, _ := cmd.Flags().GetString("file")
	buildsDir, _ := cmd.Flags().GetString("builds-dir")
	local, _ := cmd.Flags().GetBool("local")
	strict, _ := cmd.Flags().GetBool("strict")

	return app.Options{
		Descriptor: file,
		BuildsDir:  buildsDir,
		Request: domain.Request{
			InPlace: local,
			Strict:  strict,
		},
	}
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
