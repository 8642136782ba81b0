package cmd

import (
	"github.com/spf13/cobra"
)

// errorPatternsCmd breaks failures down by error type.
var errorPatternsCmd = &cobra.Command{
	Use:   "error-patterns [owner-id]",
	Short: "Break down failures by error type and fallback usage.",
	Long: `Group failed evaluations by error type and rank the patterns.

Reports each error type's share of failures, fallback usage and the
models it concentrates in, helping you:
- Find the error type causing the most damage
- See whether fallbacks actually rescue failed calls
- Attribute recurring failures to a specific model

Examples:
  # Error patterns for the window
  qualens error-patterns team-answers

  # Zoom in on one model's failures
  qualens error-patterns team-answers --model gpt-4o-mini`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runAnalysis("Cannot analyze error patterns"),
}

// temporalCmd shows when quality is best and worst.
var temporalCmd = &cobra.Command{
	Use:   "temporal [owner-id]",
	Short: "Break down quality by hour of day and day of week.",
	Long: `Bucket evaluation records by hour of day and day of week.

Reveals time-of-day and day-of-week quality patterns, helping you:
- Catch off-hours degradation nobody is watching for
- Correlate quality dips with traffic peaks
- Schedule risky rollouts into the strongest hours

Examples:
  # Temporal breakdown for the window
  qualens temporal team-answers

  # Wider window for steadier buckets
  qualens temporal team-answers --period 12w`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runAnalysis("Cannot analyze temporal patterns"),
}
