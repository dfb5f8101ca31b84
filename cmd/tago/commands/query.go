package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query [tag]",
		Short: "Inspect build state or run tests",
		Long: "Without arguments, invoke the backend's default build. With a tag, " +
			"report the tag's artifact state. With --test or --suite, run recorded tests.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd)
			if len(args) == 1 {
				opts.Request.Tag = args[0]
			}
			opts.Request.Test, _ = cmd.Flags().GetString("test")
			opts.Request.Suite, _ = cmd.Flags().GetBool("suite")
			opts.Request.Record, _ = cmd.Flags().GetBool("record")

			return c.app.Query(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringP("test", "t", "", "Run exactly the named recorded test")
	cmd.Flags().BoolP("suite", "s", false, "Run every recorded test")
	cmd.Flags().Bool("record", false, "Refresh recorded baselines instead of comparing against them")
	return cmd
}

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the active version table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.List(cmd.Context(), c.options(cmd))
		},
	}
}

func (c *CLI) newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Build every tag of the active version table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := c.options(cmd)
			opts.Request.Force, _ = cmd.Flags().GetBool("force")
			opts.Request.AllowDirty, _ = cmd.Flags().GetBool("allow-dirty")

			return c.app.Init(cmd.Context(), opts)
		},
	}
	cmd.Flags().Bool("force", false, "Rebuild tags whose artifacts already exist")
	cmd.Flags().Bool("allow-dirty", false, "Skip the clean working tree check before checkout operations")
	return cmd
}

func (c *CLI) newPurgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Delete every tag of the active version table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Purge(cmd.Context(), c.options(cmd))
		},
	}
}
