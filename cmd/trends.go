package cmd

import (
	"github.com/spf13/cobra"
)

// trendsCmd reports the day-over-day quality direction.
var trendsCmd = &cobra.Command{
	Use:   "trends [owner-id]",
	Short: "Show daily quality buckets and the overall trend direction.",
	Long: `Bucket evaluation records by day and classify the quality trend.

Compares the average rating of the first and second half of the window
to label the trend improving, declining or stable. Days without data
are skipped rather than treated as zero.

Examples:
  # Trend over the default 30-day window
  qualens trends team-answers

  # Require a week of data before reporting a direction
  qualens trends team-answers --min-days 7

  # Treat anything under a 5% swing as stable
  qualens trends team-answers --threshold 0.05`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runAnalysis("Cannot compute trends"),
}
