package habits

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	habitdto "mindful/internal/modules/habit/dto"
	"mindful/internal/ui/theme"
)

type Port interface {
	Analyze(ctx context.Context, estimate bool) (habitdto.ReportOutput, error)
}

type LoadedMsg struct {
	Report habitdto.ReportOutput
	Err    error
}

type Model struct {
	port     Port
	estimate bool
	detail   viewport.Model
	err      error
	loaded   bool
}

func New(port Port) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Foreground(theme.Text)
	return Model{port: port, detail: vp}
}

func (m Model) Init() tea.Cmd { return m.Reload() }

// ToggleEstimate switches between logged sessions and estimates only.
func (m *Model) ToggleEstimate() tea.Cmd {
	m.estimate = !m.estimate
	return m.Reload()
}

func (m Model) Reload() tea.Cmd {
	port, estimate := m.port, m.estimate
	return func() tea.Msg {
		if port == nil {
			return LoadedMsg{Err: fmt.Errorf("habits are not configured")}
		}
		out, err := port.Analyze(context.Background(), estimate)
		return LoadedMsg{Report: out, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.detail.Width = msg.Width
		m.detail.Height = max(msg.Height-2, 1)
	case LoadedMsg:
		m.loaded = true
		m.err = msg.Err
		if msg.Err == nil {
			m.detail.SetContent(Render(msg.Report, m.estimate))
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "e" {
			return m, m.ToggleEstimate()
		}
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	switch {
	case !m.loaded:
		return theme.Muted.Render("analyzing habits…")
	case m.err != nil:
		return theme.Bad.Render("habits: " + m.err.Error())
	}
	return m.detail.View()
}

func Render(r habitdto.ReportOutput, estimate bool) string {
	var sb strings.Builder
	in := r.Insights
	source := fmt.Sprintf("%d logged sessions", r.LoggedSessions)
	if estimate {
		source = "estimated from daily totals"
	}
	sb.WriteString(theme.Title.Render(in.Personality) + theme.Muted.Render("  "+source+"  e: toggle") + "\n\n")
	fmt.Fprintf(&sb, "%s%s %d\n", theme.Label.Render("Habit score"), theme.Bar(float64(in.HabitScore), 20), in.HabitScore)
	fmt.Fprintf(&sb, "%s%s\n", theme.Label.Render("Motivation"), in.Motivation)
	fmt.Fprintf(&sb, "%s%s, every %.1f days (longest gap %d), %s\n", theme.Label.Render("Rhythm"),
		r.Consistency.PreferredFrequency, r.Consistency.AverageGap, r.Consistency.LongestGap, r.Consistency.Trend)
	fmt.Fprintf(&sb, "%s%s sessions, avg %.0fs, %s\n", theme.Label.Render("Length"),
		r.Durations.PreferredDuration, r.Durations.AverageSeconds, r.Durations.Trend)
	fmt.Fprintf(&sb, "%s%.0f%% meditation / %.0f%% breathing (%s)\n", theme.Label.Render("Balance"),
		r.Balance.MeditationPercent, r.Balance.BreathingPercent, r.Balance.PreferredType)

	sb.WriteString("\n" + theme.Title.Render("Time of day") + "\n")
	for _, slot := range r.TimeOfDay {
		marker := "  "
		if slot.Slot == r.MostPreferred {
			marker = theme.Hot.Render("● ")
		}
		fmt.Fprintf(&sb, "%s%-14s %s %3.0f%%\n", marker, slot.Slot, theme.Bar(slot.Percent, 20), slot.Percent)
	}

	sb.WriteString("\n" + theme.Title.Render("Week") + theme.Muted.Render("  "+r.Weekly.Trend) + "\n")
	for _, d := range r.Weekly.DayOfWeek {
		fmt.Fprintf(&sb, "%s %s %d\n", d.Label, strings.Repeat("▪", min(d.ActiveDays, 30)), d.ActiveDays)
	}

	list := func(title string, items []string, style lipgloss.Style) {
		if len(items) == 0 {
			return
		}
		sb.WriteString("\n" + theme.Title.Render(title) + "\n")
		for _, item := range items {
			sb.WriteString(style.Render("  • "+item) + "\n")
		}
	}
	list("Strengths", in.Strengths, theme.Good)
	list("To work on", in.Improvements, theme.Warn)
	list("Try next", in.Recommendations, lipgloss.NewStyle().Foreground(theme.Text))
	return sb.String()
}
