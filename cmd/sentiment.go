package cmd

import (
	"github.com/spf13/cobra"
)

// sentimentCmd classifies free-text feedback notes.
var sentimentCmd = &cobra.Command{
	Use:   "sentiment [owner-id]",
	Short: "Classify feedback notes as positive, negative or neutral.",
	Long: `Run keyword sentiment analysis over the window's feedback notes.

Buckets each note as positive, negative or neutral and reports the
distribution. Pass --detail to include the classified notes themselves.

Examples:
  # Sentiment distribution for the window
  qualens sentiment team-answers

  # Include the individual classified notes
  qualens sentiment team-answers --detail`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runAnalysis("Cannot analyze sentiment"),
}

// categoriesCmd groups feedback notes into recurring themes.
var categoriesCmd = &cobra.Command{
	Use:   "categories [owner-id]",
	Short: "Group feedback notes into recurring themes.",
	Long: `Match feedback notes against the theme keyword sets and rank the
themes by frequency.

Surfaces what reviewers keep writing about, helping you:
- Find the most common complaint categories
- See each theme's average rating and example notes
- Decide which feedback theme to fix first

Examples:
  # Top feedback themes for the window
  qualens categories team-answers

  # Limit to the top 5 themes
  qualens categories team-answers --limit 5`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runAnalysis("Cannot analyze feedback categories"),
}
