package cmd

import (
	"github.com/spf13/cobra"
)

// metricsCmd summarizes quality for one owner's analysis window.
var metricsCmd = &cobra.Command{
	Use:   "metrics [owner-id]",
	Short: "Show aggregate quality metrics for the analysis window.",
	Long: `Summarize one owner's evaluation records over the analysis window.

Computes the headline numbers for the window, helping you:
- See the average rating and success rate at a glance
- Check how ratings distribute across the 1-5 scale
- Spot heavy error types, fallback usage and unrated interactions
- Track token spend and latency alongside quality

Examples:
  # Summarize the default 30-day window
  qualens metrics team-answers

  # Focus on one model over the last week
  qualens metrics team-answers --period 7d --model gpt-4o

  # Export the summary as JSON for dashboards
  qualens metrics team-answers --output json --output-file metrics.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runAnalysis("Cannot compute metrics"),
}
