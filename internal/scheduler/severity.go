package scheduler

import "github.com/alexanderramin/studyplan/internal/domain"

// SeverityOf buckets a subject for display. The simple variant looks at
// allocated weekly hours, the advanced variant at difficulty.
func SeverityOf(s domain.Subject, variant domain.Variant) domain.Severity {
	if variant == domain.VariantAdvanced {
		switch {
		case s.Weight >= 4:
			return domain.SeverityHigh
		case s.Weight == 3:
			return domain.SeverityMedium
		default:
			return domain.SeverityLow
		}
	}

	switch {
	case s.AllocatedHours >= 10:
		return domain.SeverityHigh
	case s.AllocatedHours >= 5:
		return domain.SeverityMedium
	default:
		return domain.SeverityLow
	}
}
