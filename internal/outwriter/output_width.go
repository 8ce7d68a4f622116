package outwriter

import (
	"os"

	"github.com/huangsam/clio/internal/contract"
	"golang.org/x/term"
)

// Bounds for the free-text column of tables.
const (
	minTextWidth = 20
	maxTextWidth = 90
)

// GetMaxTextWidth returns how wide the free-text column of a table may be
// once reserved columns are accounted for.
func GetMaxTextWidth(cfg *contract.Config, reserved int) int {
	termWidth := cfg.Width
	if termWidth <= 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // CI and pipes
		} else {
			termWidth = detectedWidth
		}
	}

	// Borders, separators and padding
	available := termWidth - reserved - 10
	if available < minTextWidth {
		return minTextWidth
	}
	if available > maxTextWidth {
		return maxTextWidth
	}
	return available
}
