package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	statsdto "mindful/internal/modules/stats/dto"
	"mindful/internal/ui/theme"
)

const sparklineHeight = 4

type Port interface {
	Summarize(ctx context.Context, rangeName string, goalMinutes int) (statsdto.SummaryOutput, error)
}

type LoadedMsg struct {
	Summary statsdto.SummaryOutput
	Err     error
}

var rangeOrder = []string{"today", "week", "month", "quarter", "year", "all"}

type Model struct {
	port      Port
	rangeName string
	goal      int
	spinner   spinner.Model
	summary   statsdto.SummaryOutput
	err       error
	loading   bool
	width     int
	height    int
}

func New(port Port, rangeName string, goal int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Green)
	if rangeName == "" {
		rangeName = "week"
	}
	return Model{port: port, rangeName: rangeName, goal: goal, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

func (m Model) Range() string { return m.rangeName }

// SetRange switches the range and reloads.
func (m *Model) SetRange(name string) tea.Cmd {
	m.rangeName = name
	m.loading = true
	return m.Reload()
}

func (m *Model) SetGoal(goal int) tea.Cmd {
	m.goal = goal
	m.loading = true
	return m.Reload()
}

func (m Model) Reload() tea.Cmd {
	port, rangeName, goal := m.port, m.rangeName, m.goal
	return func() tea.Msg {
		if port == nil {
			return LoadedMsg{Err: fmt.Errorf("stats are not configured")}
		}
		out, err := port.Summarize(context.Background(), rangeName, goal)
		return LoadedMsg{Summary: out, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case LoadedMsg:
		m.loading = false
		m.summary, m.err = msg.Summary, msg.Err
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.String() == "r" {
			return m, m.SetRange(nextRange(m.rangeName))
		}
	}
	return m, nil
}

func nextRange(current string) string {
	for i, r := range rangeOrder {
		if r == current {
			return rangeOrder[(i+1)%len(rangeOrder)]
		}
	}
	return rangeOrder[0]
}

func (m Model) View() string {
	if m.loading {
		return m.spinner.View() + " loading summary…"
	}
	if m.err != nil {
		return theme.Bad.Render("summary: " + m.err.Error())
	}
	return Render(m.summary, m.width)
}

// Render draws a summary without any model state.
func Render(s statsdto.SummaryOutput, width int) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(fmt.Sprintf("%s  %s → %s", strings.ToUpper(s.Range), s.Start, s.End)) + "\n\n")
	line := func(label, value string) {
		sb.WriteString(theme.Label.Render(label) + value + "\n")
	}
	line("Meditation", formatSeconds(s.TotalMeditationSeconds))
	line("Breathing sessions", fmt.Sprintf("%d (%s)", s.TotalBreathingSessions, formatSeconds(s.TotalBreathingSeconds)))
	line("Total practice", fmt.Sprintf("%d min", s.TotalMinutes))
	line("Active days", fmt.Sprintf("%d / %d", s.ActiveDays, s.TotalDays))
	line("Avg per active day", fmt.Sprintf("%s, %.1f breathing", formatSeconds(int(s.AverageMeditationSeconds)), s.AverageBreathingSessions))
	line(fmt.Sprintf("Goal (%d min)", s.GoalMinutes), fmt.Sprintf("%s %d%%", theme.Bar(float64(s.GoalAchievementRate), 20), s.GoalAchievementRate))
	if s.BestDay != nil {
		line("Best day", fmt.Sprintf("%s  %d min", s.BestDay.Date, s.BestDay.TotalMinutes))
	}
	if s.WorstDay != nil {
		line("Lightest day", fmt.Sprintf("%s  %d min", s.WorstDay.Date, s.WorstDay.TotalMinutes))
	}
	sb.WriteString("\n" + theme.Muted.Render("daily minutes") + "\n")
	sb.WriteString(trendSparkline(s.Trend, width))
	return sb.String()
}

func trendSparkline(trend []statsdto.DayPointOutput, width int) string {
	if len(trend) == 0 {
		return theme.Muted.Render("no data")
	}
	w := len(trend)
	if width > 4 && w > width-4 {
		w = width - 4
	}
	spark := sparkline.New(w, sparklineHeight)
	for _, p := range trend {
		spark.Push(float64(p.TotalMinutes))
	}
	spark.Draw()
	return theme.Spark.Render(spark.View())
}

func formatSeconds(sec int) string {
	if sec < 60 {
		return fmt.Sprintf("%ds", sec)
	}
	h, m := sec/3600, (sec%3600)/60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh%02dm", h, m)
}
