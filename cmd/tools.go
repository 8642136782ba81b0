package cmd

import (
	"github.com/spf13/cobra"
)

// toolImpactCmd measures how tool usage correlates with quality.
var toolImpactCmd = &cobra.Command{
	Use:   "tool-impact [owner-id]",
	Short: "Measure how tool usage correlates with answer quality.",
	Long: `Split evaluation records by the tools they invoked and compare
each tool group against the no-tool baseline.

Helps you:
- See which tools lift quality and which drag it down
- Catch tools that add latency without adding rating
- Decide where tool budgets are worth spending

Examples:
  # Tool impact over the default window
  qualens tool-impact team-answers

  # Narrow to one model's tool usage
  qualens tool-impact team-answers --model claude-sonnet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runAnalysis("Cannot analyze tool impact"),
}
