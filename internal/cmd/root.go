// Package cmd wires the mirror CLI together: flag parsing, settings loading,
// logging setup and process lifecycle around the mirror core.
package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for mirror
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mirror",
		Short: "One-way directory mirroring into a single flat folder",
		Long: `Mirror flattens a directory tree into a single flat folder.

Every qualifying file under the configured root is copied into a hidden
.Mirror folder under a name that encodes where it came from. The mirror is
fully erased and rebuilt on every run, so it is always a faithful flat view
of the tree — handy for browsing images scattered across nested folders.

Settings live in mirror_config.toml in the working directory; a commented
default is generated on first run.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewInitCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
