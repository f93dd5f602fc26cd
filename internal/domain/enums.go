package domain

import (
	"fmt"
	"strings"
)

type Variant string

const (
	VariantSimple   Variant = "simple"
	VariantAdvanced Variant = "advanced"
)

// ParseVariant accepts "simple" or "advanced" in any case. Empty means simple.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(VariantSimple):
		return VariantSimple, nil
	case string(VariantAdvanced):
		return VariantAdvanced, nil
	default:
		return "", NewInvalidInput("variant", fmt.Sprintf("unknown variant %q (expected simple or advanced)", s))
	}
}

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

type WarningKind string

const (
	WarningBreak    WarningKind = "BREAK"
	WarningOverload WarningKind = "OVERLOAD"
)

// Difficulty bounds for the advanced variant. Subjects without a weight get
// DefaultWeight in either variant.
const (
	MinDifficulty = 1
	MaxDifficulty = 5
	DefaultWeight = 3
)
