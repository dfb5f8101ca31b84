package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <tag>",
		Short: "Build one tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd)
			opts.Request.Tag = args[0]
			opts.Request.Force, _ = cmd.Flags().GetBool("force")
			opts.Request.AllowDirty, _ = cmd.Flags().GetBool("allow-dirty")
			opts.Request.SkipRebuild, _ = cmd.Flags().GetBool("skip-rebuild")

			return c.app.Build(cmd.Context(), opts)
		},
	}
	cmd.Flags().Bool("force", false, "Rebuild even when the artifact already exists")
	cmd.Flags().Bool("allow-dirty", false, "Skip the clean working tree check before checkout operations")
	cmd.Flags().Bool("skip-rebuild", false, "Invoke the backend without its forced-rebuild target")
	return cmd
}

func (c *CLI) newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <tag>",
		Short: "Execute one tag's built artifact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd)
			opts.Request.Tag = args[0]

			return c.app.Run(cmd.Context(), opts)
		},
	}
}

func (c *CLI) newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <tag>",
		Short: "Delete one tag's build",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd)
			opts.Request.Tag = args[0]

			return c.app.Remove(cmd.Context(), opts)
		},
	}
}
