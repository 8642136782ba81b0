package cmd

import (
	"runtime"

	"github.com/spf13/cobra"
)

// versionCmd prints the build identity baked in at link time.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the qualens build version.",
	Long: `Report the release version, git commit, build timestamp and Go
runtime this binary was built with.

Include this output when filing a bug or checking that a deployed
binary matches the release you expect.

Examples:
  qualens version`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("qualens %s\n", version)
		cmd.Printf("  commit:  %s\n", commit)
		cmd.Printf("  built:   %s\n", date)
		cmd.Printf("  runtime: %s\n", runtime.Version())
	},
}
