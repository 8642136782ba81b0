package outwriter

import (
	"os"

	"github.com/qualens/qualens/internal/contract"
	"golang.org/x/term"
)

// GetMaxTextWidth calculates the maximum width for free-text table columns
// (factors, recommendations, insights) based on terminal width and the
// fixed columns each report renders.
func GetMaxTextWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed numeric columns with borders and padding.
	baseWidth := 45
	if cfg.Detail {
		baseWidth += 20
	}

	available := termWidth - baseWidth
	if available < 20 {
		return 20
	}
	if available > 90 {
		return 90
	}
	return available
}
