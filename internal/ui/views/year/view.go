package year

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	statsdto "mindful/internal/modules/stats/dto"
	"mindful/internal/ui/theme"
)

type Port interface {
	YearlyReport(ctx context.Context, year, goalMinutes int) (statsdto.YearlyOutput, error)
}

type LoadedMsg struct {
	Report statsdto.YearlyOutput
	Err    error
}

type Model struct {
	port   Port
	year   int
	goal   int
	detail viewport.Model
	report statsdto.YearlyOutput
	err    error
	loaded bool
}

// New starts on year; zero means the current year.
func New(port Port, year, goal int) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Foreground(theme.Text)
	return Model{port: port, year: year, goal: goal, detail: vp}
}

func (m Model) Init() tea.Cmd { return m.Reload() }

func (m *Model) SetYear(year int) tea.Cmd {
	m.year = year
	return m.Reload()
}

func (m *Model) SetGoal(goal int) tea.Cmd {
	m.goal = goal
	return m.Reload()
}

func (m Model) Reload() tea.Cmd {
	port, year, goal := m.port, m.year, m.goal
	return func() tea.Msg {
		if port == nil {
			return LoadedMsg{Err: fmt.Errorf("stats are not configured")}
		}
		out, err := port.YearlyReport(context.Background(), year, goal)
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
		m.report, m.err = msg.Report, msg.Err
		if msg.Err == nil {
			m.year = msg.Report.Year
			m.detail.SetContent(Render(msg.Report))
			m.detail.GotoTop()
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			if m.loaded && m.year > 1 {
				return m, m.SetYear(m.year - 1)
			}
		case "right", "l":
			if m.loaded {
				return m, m.SetYear(m.year + 1)
			}
		}
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	switch {
	case !m.loaded:
		return theme.Muted.Render("loading year…")
	case m.err != nil:
		return theme.Bad.Render("year: " + m.err.Error())
	}
	return m.detail.View()
}

func Render(r statsdto.YearlyOutput) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(fmt.Sprintf("%d in review", r.Year)) + theme.Muted.Render("  ←/→ year") + "\n\n")
	fmt.Fprintf(&sb, "%s%d min over %d of %d days\n", theme.Label.Render("Practice"), r.TotalMinutes, r.ActiveDays, r.TotalDays)
	fmt.Fprintf(&sb, "%s%d days (longest %d)\n", theme.Label.Render("Current streak"), r.CurrentStreak, r.LongestStreak)
	fmt.Fprintf(&sb, "%s%d%% of days at %d min\n", theme.Label.Render("Goal"), r.GoalAchievementRate, r.GoalMinutes)
	if r.BestMonth != nil {
		fmt.Fprintf(&sb, "%s%s (score %.1f)\n", theme.Label.Render("Best month"), r.BestMonth.Month, r.BestMonth.Score)
	}
	if r.WorstMonth != nil {
		fmt.Fprintf(&sb, "%s%s (score %.1f)\n", theme.Label.Render("Quietest month"), r.WorstMonth.Month, r.WorstMonth.Score)
	}

	sb.WriteString("\n" + theme.Title.Render("Months") + "\n")
	for _, m := range r.Months {
		pct := 0.0
		if m.DaysElapsed > 0 {
			pct = float64(m.ActiveDays) / float64(m.DaysElapsed) * 100
		}
		fmt.Fprintf(&sb, "%-10s %s %2d/%-2d days %4d min  goal %3d%%\n", m.Month, theme.Bar(pct, 15), m.ActiveDays, m.DaysElapsed, m.TotalMinutes, m.GoalAchievementRate)
	}

	sb.WriteString("\n" + theme.Title.Render("Achievements") + "\n")
	if len(r.Achievements) == 0 {
		sb.WriteString(theme.Muted.Render("none yet") + "\n")
	}
	for _, a := range r.Achievements {
		fmt.Fprintf(&sb, "%s %s  %s %s\n", a.Icon, theme.Hot.Render(a.Title), theme.Muted.Render(a.Description), theme.Muted.Render("("+a.Date+")"))
	}
	return sb.String()
}
