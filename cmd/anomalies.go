package cmd

import (
	"github.com/spf13/cobra"
)

// anomaliesCmd flags statistically unusual quality movements.
var anomaliesCmd = &cobra.Command{
	Use:   "anomalies [owner-id]",
	Short: "Detect unusual drops, spikes and outliers in quality.",
	Long: `Run the anomaly detectors over the window's daily quality series.

Detectors cover statistical outliers (z-score and IQR), sudden drops,
sudden spikes and sustained degradation, each tagged with a severity.

Use this to:
- Get ahead of quality incidents before users report them
- Pin a regression to the day it started
- Separate one-off bad days from a real decline

Examples:
  # Scan the default 30-day window
  qualens anomalies team-answers

  # Export findings for the incident channel
  qualens anomalies team-answers --output parquet --output-file anomalies.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runAnalysis("Cannot detect anomalies"),
}
