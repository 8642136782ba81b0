package cmd

import (
	"github.com/spf13/cobra"
)

// comparePeriodsCmd compares the window against the one before it.
var comparePeriodsCmd = &cobra.Command{
	Use:   "compare-periods [owner-id]",
	Short: "Compare the analysis window against the preceding window.",
	Long: `Compare quality in the analysis window against the equal-length
window immediately before it.

Reports per-metric deltas with significance labels, helping you:
- Confirm whether a model or prompt change actually moved quality
- Catch regressions that creep in between releases
- Separate real movement from noise on small samples

Examples:
  # This week versus last week
  qualens compare-periods team-answers --period 7d

  # Compare explicit windows
  qualens compare-periods team-answers --start "2 months ago" --end "1 month ago"`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runAnalysis("Cannot compare periods"),
}

// compareModelsCmd ranks models against each other on the same window.
var compareModelsCmd = &cobra.Command{
	Use:   "compare-models [owner-id]",
	Short: "Rank models by quality, cost and latency over the window.",
	Long: `Group evaluation records by model and rank the models against
each other.

Includes per-model cost from the price table and quality-per-dollar,
helping you:
- Pick the cheapest model that clears your quality bar
- Find models with quality that lags their spend
- Spot models leaning on fallbacks or erroring often

Examples:
  # Rank all models seen in the window
  qualens compare-models team-answers

  # Use a custom price table
  qualens compare-models team-answers --price-table prices.yaml`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runAnalysis("Cannot compare models"),
}
