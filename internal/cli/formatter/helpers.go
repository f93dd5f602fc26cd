package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// FormatHours renders an hour figure with the given number of decimals and
// an "h" suffix, e.g. "6.7h".
func FormatHours(h float64, decimals int) string {
	if h < 0 {
		h = 0
	}
	return fmt.Sprintf("%.*fh", decimals, h)
}

// FormatOptionalHours renders nil as a dimmed dash.
func FormatOptionalHours(h *float64, decimals int) string {
	if h == nil {
		return Dim("--")
	}
	return FormatHours(*h, decimals)
}

// HumanTimestamp returns a short absolute timestamp such as
// "Mon Jan 5, 09:00".
func HumanTimestamp(t time.Time) string {
	if t.IsZero() {
		return "--"
	}
	return t.Format("Mon Jan 2, 15:04")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}
