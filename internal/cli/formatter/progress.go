package formatter

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░] 45%.
// The bar is colored based on percentage: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	if pct < 0 || math.IsNaN(pct) {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 2 {
		width = 2
	}

	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	empty := width - filled

	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, empty)

	var style = StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}

	pctStr := fmt.Sprintf("%3.0f%%", pct*100)
	return fmt.Sprintf("[%s] %s", style.Render(bar), pctStr)
}

// RenderBar renders value as a run of filled blocks scaled so full spans
// width cells. A non-zero value always shows at least one block.
func RenderBar(value, full float64, width int, style lipgloss.Style) string {
	if width < 1 {
		width = 1
	}
	if full <= 0 || value <= 0 || math.IsNaN(value) {
		return ""
	}
	n := int(math.Round(value / full * float64(width)))
	if n < 1 {
		n = 1
	}
	if n > width {
		n = width
	}
	return style.Render(strings.Repeat(filledBlock, n))
}
