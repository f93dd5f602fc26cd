package export

import (
	"time"

	"github.com/alexanderramin/studyplan/internal/domain"
)

// Row is one subject line of an exported plan.
type Row struct {
	Subject        string          `json:"subject"`
	AllocatedHours float64         `json:"allocated_hours"`
	WeeklyHours    float64         `json:"weekly_hours"`
	DailyHours     float64         `json:"daily_hours"`
	Goal           *float64        `json:"goal,omitempty"`
	Progress       float64         `json:"progress"`
	Remaining      *float64        `json:"remaining_hours,omitempty"`
	ProgressPct    float64         `json:"progress_percent"`
	Severity       domain.Severity `json:"severity"`
	Overridden     bool            `json:"overridden,omitempty"`
}

// Document is everything an exporter needs. Rows and Days keep plan order.
type Document struct {
	Title            string    `json:"title"`
	PlanID           string    `json:"plan_id"`
	GeneratedAt      time.Time `json:"generated_at"`
	BudgetHours      float64   `json:"budget_hours"`
	TotalWeeklyHours float64   `json:"total_weekly_hours"`
	Days             []string  `json:"days"`
	Rows             []Row     `json:"rows"`
	Warnings         []string  `json:"warnings,omitempty"`
}

// DefaultTitle heads every exported document unless the caller sets one.
const DefaultTitle = "Study Schedule"

func (d Document) title() string {
	return domain.CoalesceStr(d.Title, DefaultTitle)
}
