package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the jarstage CLI.
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jarstage",
		Short: "jarstage - archive staging and JVM launch pipeline",
		Long: `jarstage stages a primary application archive, optional side-loaded
archives, and dependency archives into a staging filesystem, assembles an
ordered classpath from them, and launches a JVM entry point with that
classpath.

Progress for network downloads is reported live, and a launch sequence
cannot be started twice concurrently on the same instance.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.AddCommand(newLaunchCommand())

	return rootCmd
}
