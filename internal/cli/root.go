// Package cli provides the command-line interface for silcolour.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/silcolour/internal/version"
)

// NewRootCmd builds the command tree. Each call returns an independent tree
// with its own flag state.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "silcolour",
		Short: "Recolour cell silhouettes by catalog cluster colour",
		Long: `Silcolour recolours batches of silhouette images using a catalog that maps
each image to a cluster and a target colour.

Every silhouette is drawn with two base colours, a light fill and a dark
edge. The light colour is replaced with the catalog colour and the dark
colour with a darkened variant of it, so each cluster can be told apart
at a glance.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newRecolourCmd())
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the silcolour version, the commit and date of release builds, and the Go toolchain and platform.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
