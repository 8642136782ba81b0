package cmd

import (
	"github.com/spf13/cobra"
)

// predictCmd forecasts near-term quality from the window's trend line.
var predictCmd = &cobra.Command{
	Use:   "predict [owner-id]",
	Short: "Forecast quality over the next days from the current trend.",
	Long: `Fit a linear trend to the window's daily quality and project it
forward over the requested horizons.

Each forecast carries a confidence that decays with horizon length and
data sparsity. The composite risk score is included alongside.

Examples:
  # Default 7, 14 and 30 day forecasts
  qualens predict team-answers

  # Custom horizons
  qualens predict team-answers --horizons 3,7,21`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runAnalysis("Cannot predict quality"),
}

// riskCmd distills the window into a single 0-100 risk score.
var riskCmd = &cobra.Command{
	Use:   "risk [owner-id]",
	Short: "Score the window's quality risk from 0 (healthy) to 100.",
	Long: `Combine declining trend, low quality, high error rate and low
sample volume into one weighted risk score with a discrete level.

Useful for:
- A single number to alert on in CI or cron checks
- Triaging which owners need attention first
- Tracking risk week over week

Examples:
  # Risk for the default window
  qualens risk team-answers

  # Machine-readable risk for alerting
  qualens risk team-answers --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runAnalysis("Cannot score risk"),
}
