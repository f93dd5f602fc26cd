package export

import (
	"strconv"

	"github.com/alexanderramin/studyplan/internal/domain"
)

// severityFill is the row highlight used by the PDF and spreadsheet
// exporters, keyed by severity.
var severityFill = map[domain.Severity]string{
	domain.SeverityHigh:   "#FFB6B9",
	domain.SeverityMedium: "#FAE3D9",
	domain.SeverityLow:    "#BBDED6",
}

func fillFor(s domain.Severity) string {
	if c, ok := severityFill[s]; ok {
		return c
	}
	return severityFill[domain.SeverityLow]
}

// hexRGB parses "#RRGGBB". Malformed input yields white.
func hexRGB(hex string) (r, g, b int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 255, 255, 255
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 255, 255, 255
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}

func hours(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

func optionalHours(v *float64, decimals int) string {
	if v == nil {
		return "-"
	}
	return hours(*v, decimals)
}
