package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alexanderramin/studyplan/internal/cli/formatter"
	"github.com/alexanderramin/studyplan/internal/contract"
	"github.com/alexanderramin/studyplan/internal/service"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// overrideAppliedMsg carries the re-evaluated plan after a manual daily
// figure was applied.
type overrideAppliedMsg struct {
	plan *contract.PlanResponse
	err  error
}

// overrideEditor lists subjects in a table and lets the user type a manual
// daily figure for the selected one. Enter edits, enter again applies, esc
// cancels the edit, q accepts the plan and ctrl+c discards every override.
type overrideEditor struct {
	ctx      context.Context
	plans    service.PlanService
	original *contract.PlanResponse
	plan     *contract.PlanResponse

	table   table.Model
	input   textinput.Model
	editing bool
	status  string
	errMsg  string

	done      bool
	cancelled bool
}

func newOverrideEditor(ctx context.Context, plans service.PlanService, plan *contract.PlanResponse) overrideEditor {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Subject", Width: 18},
			{Title: "Weekly", Width: 8},
			{Title: "Daily", Width: 8},
			{Title: "Set", Width: 4},
		}),
		table.WithFocused(true),
		table.WithHeight(len(plan.Subjects)+1),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(formatter.ColorDim).
		BorderBottom(true).
		Foreground(formatter.ColorHeader).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(formatter.ColorFg).
		Background(formatter.ColorPurple).
		Bold(false)
	t.SetStyles(styles)

	ti := textinput.New()
	ti.Prompt = "hours/day › "
	ti.Placeholder = "e.g. 1.5"
	ti.CharLimit = 8

	m := overrideEditor{
		ctx:      ctx,
		plans:    plans,
		original: plan,
		plan:     plan,
		table:    t,
		input:    ti,
	}
	m.refreshRows()
	return m
}

func (m *overrideEditor) refreshRows() {
	rows := make([]table.Row, 0, len(m.plan.Subjects))
	for _, s := range m.plan.Subjects {
		mark := ""
		if s.Overridden {
			mark = "*"
		}
		rows = append(rows, table.Row{
			s.Name,
			formatter.FormatHours(s.WeeklyHours, 1),
			formatter.FormatHours(s.DailyHours, 2),
			mark,
		})
	}
	m.table.SetRows(rows)
}

// Result is the plan to print: the edited one, or the original when the
// editor was cancelled.
func (m overrideEditor) Result() *contract.PlanResponse {
	if m.cancelled {
		return m.original
	}
	return m.plan
}

func (m overrideEditor) Init() tea.Cmd {
	return nil
}

func (m overrideEditor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case overrideAppliedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.plan = msg.plan
		m.errMsg = ""
		m.refreshRows()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
		if m.editing {
			return m.updateEditing(msg)
		}
		switch msg.String() {
		case "q", "esc":
			m.done = true
			return m, tea.Quit
		case "enter", "e":
			return m.startEditing()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m overrideEditor) startEditing() (tea.Model, tea.Cmd) {
	row := m.table.SelectedRow()
	if row == nil {
		return m, nil
	}
	m.editing = true
	m.errMsg = ""
	m.status = ""
	m.input.SetValue(strings.TrimSuffix(row[2], "h"))
	m.input.CursorEnd()
	m.table.Blur()
	return m, m.input.Focus()
}

func (m overrideEditor) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editing = false
		m.input.Blur()
		m.table.Focus()
		return m, nil
	case tea.KeyEnter:
		raw := strings.TrimSpace(m.input.Value())
		if err := validateDailyHours(raw); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		hours, _ := strconv.ParseFloat(raw, 64)
		name := m.table.SelectedRow()[0]
		m.editing = false
		m.input.Blur()
		m.table.Focus()
		m.status = fmt.Sprintf("%s set to %s/day", name, formatter.FormatHours(hours, 2))
		return m, m.applyOverride(name, hours)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m overrideEditor) applyOverride(name string, hours float64) tea.Cmd {
	ctx, plans, plan := m.ctx, m.plans, m.plan
	return func() tea.Msg {
		next, err := plans.Override(ctx, plan, map[string]float64{name: hours})
		return overrideAppliedMsg{plan: next, err: err}
	}
}

func (m overrideEditor) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(formatter.Header("Adjust daily hours"))
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")

	if m.editing {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString(formatter.StyleRed.Render(m.errMsg))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(formatter.StyleGreen.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(formatter.FormatWarnings(m.plan))
	if m.editing {
		b.WriteString(formatter.Dim("enter apply · esc cancel"))
	} else {
		b.WriteString(formatter.Dim("↑/↓ select · enter edit · q done · ctrl+c discard"))
	}
	b.WriteString("\n")
	return b.String()
}

// runOverrideEditor runs the editor on the terminal and returns the plan to
// print.
func runOverrideEditor(ctx context.Context, plans service.PlanService, plan *contract.PlanResponse) (*contract.PlanResponse, error) {
	p := tea.NewProgram(
		newOverrideEditor(ctx, plans, plan),
		tea.WithContext(ctx),
		tea.WithOutput(os.Stderr),
	)
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("running override editor: %w", err)
	}
	return final.(overrideEditor).Result(), nil
}
