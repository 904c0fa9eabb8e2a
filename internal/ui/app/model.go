package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	habitdto "mindful/internal/modules/habit/dto"
	practicedto "mindful/internal/modules/practice/dto"
	statsdto "mindful/internal/modules/stats/dto"
	apperrors "mindful/internal/platform/errors"
	"mindful/internal/ui/components"
	"mindful/internal/ui/theme"
	habitsview "mindful/internal/ui/views/habits"
	summaryview "mindful/internal/ui/views/summary"
	yearview "mindful/internal/ui/views/year"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type PracticePort interface {
	Start(ctx context.Context, kind, technique, intention string) (practicedto.StartOutput, error)
	End(ctx context.Context, sessionID string) (practicedto.EndOutput, error)
	GetActive(ctx context.Context) (practicedto.ActiveSessionOutput, error)
	LogMeditation(ctx context.Context, date string, seconds int) (practicedto.DayOutput, error)
	LogBreathing(ctx context.Context, date, technique string, count int) (practicedto.DayOutput, error)
}

type StatsPort interface {
	Summarize(ctx context.Context, rangeName string, goalMinutes int) (statsdto.SummaryOutput, error)
	YearlyReport(ctx context.Context, year, goalMinutes int) (statsdto.YearlyOutput, error)
}

type HabitPort interface {
	Analyze(ctx context.Context, estimate bool) (habitdto.ReportOutput, error)
}

// Options seeds the dashboard from configuration.
type Options struct {
	Range       string
	GoalMinutes int
}

// ─── tabs ────────────────────────────────────────────────────────────────────

type tabID int

const (
	tabSummary tabID = iota
	tabYear
	tabHabits
	tabCount
)

var tabLabels = [tabCount]string{"Summary", "Year", "Habits"}

// ─── async messages ──────────────────────────────────────────────────────────

type activeLoadedMsg struct {
	active practicedto.ActiveSessionOutput
	err    error
}

type sessionStartedMsg struct {
	out practicedto.StartOutput
	err error
}

type sessionEndedMsg struct {
	out practicedto.EndOutput
	err error
}

type loggedMsg struct {
	day practicedto.DayOutput
	err error
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Range   key.Binding
	Year    key.Binding
	Toggle  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Range:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "next range")),
		Year:    key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "year")),
		Toggle:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "estimate only")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Range, k.Year, k.Toggle},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It routes tabs, runs palette commands
// and tracks the active session; rendering is left to the views.
type Model struct {
	practice PracticePort

	summaryView summaryview.Model
	yearView    yearview.Model
	habitsView  habitsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	active    practicedto.ActiveSessionOutput
	hasActive bool
	status    string
	width     int
	height    int
}

func NewModel(practice PracticePort, stats StatsPort, habits HabitPort, opts Options) Model {
	var summaryPort summaryview.Port
	var yearPort yearview.Port
	if stats != nil {
		summaryPort, yearPort = stats, stats
	}
	var habitPort habitsview.Port
	if habits != nil {
		habitPort = habits
	}
	return Model{
		practice:    practice,
		summaryView: summaryview.New(summaryPort, opts.Range, opts.GoalMinutes),
		yearView:    yearview.New(yearPort, 0, opts.GoalMinutes),
		habitsView:  habitsview.New(habitPort),
		activeTab:   tabSummary,
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(),
		status:      "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.summaryView.Init(),
		m.yearView.Init(),
		m.habitsView.Init(),
		m.loadActiveCmd(),
	)
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.palette.SetWidth(min(m.width-4, 72))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	// View results are routed to their owner whichever tab is showing.
	case summaryview.LoadedMsg:
		var cmd tea.Cmd
		m.summaryView, cmd = m.summaryView.Update(msg)
		return m, cmd
	case yearview.LoadedMsg:
		var cmd tea.Cmd
		m.yearView, cmd = m.yearView.Update(msg)
		return m, cmd
	case habitsview.LoadedMsg:
		var cmd tea.Cmd
		m.habitsView, cmd = m.habitsView.Update(msg)
		return m, cmd

	case activeLoadedMsg:
		switch {
		case msg.err == nil:
			m.active, m.hasActive = msg.active, true
			m.status = "session in progress: " + msg.active.Kind
		case !errors.Is(msg.err, apperrors.ErrNoActiveSession):
			m.status = "active session check: " + msg.err.Error()
		}
		return m, nil

	case sessionStartedMsg:
		if msg.err != nil {
			m.status = "start failed: " + msg.err.Error()
			return m, nil
		}
		m.hasActive = true
		m.active = practicedto.ActiveSessionOutput{
			SessionID: msg.out.SessionID,
			Kind:      msg.out.Kind,
			Technique: msg.out.Technique,
			StartedAt: msg.out.StartedAt,
		}
		m.status = "started " + describe(msg.out.Kind, msg.out.Technique)
		return m, nil

	case sessionEndedMsg:
		if msg.err != nil {
			m.status = "end failed: " + msg.err.Error()
			return m, nil
		}
		m.hasActive = false
		m.active = practicedto.ActiveSessionOutput{}
		m.status = fmt.Sprintf("ended %s after %s, %d min today", describe(msg.out.Kind, msg.out.Technique),
			time.Duration(msg.out.DurationSeconds)*time.Second, msg.out.Day.TotalMinutes)
		return m, m.reloadAll()

	case loggedMsg:
		if msg.err != nil {
			m.status = "log failed: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("logged %s: %d min total", msg.day.Date, msg.day.TotalMinutes)
		return m, m.reloadAll()

	case components.PaletteSubmitMsg:
		return m.runCommand(msg.Name, msg.Args)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = true
			return m, nil
		case ":":
			return m, m.palette.Open()
		}
	}

	var cmd tea.Cmd
	switch m.activeTab {
	case tabSummary:
		m.summaryView, cmd = m.summaryView.Update(msg)
	case tabYear:
		m.yearView, cmd = m.yearView.Update(msg)
	case tabHabits:
		m.habitsView, cmd = m.habitsView.Update(msg)
	}
	return m, cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = lipgloss.NewStyle().Height(contentH).Render(m.activeView())
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabSummary:
		return m.summaryView.View()
	case tabYear:
		return m.yearView.View()
	case tabHabits:
		return m.habitsView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := " " + tabLabels[i] + " "
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(label)
		} else {
			parts[i] = theme.Muted.Render(label)
		}
	}
	bar := "mindful  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.hasActive {
		left = theme.Hot.Render("● "+describe(m.active.Kind, m.active.Technique)+" since "+m.active.StartedAt.Format("15:04")) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  ::command  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── commands ────────────────────────────────────────────────────────────────

func (m Model) runCommand(name string, args []string) (tea.Model, tea.Cmd) {
	switch name {
	case "start":
		if len(args) == 0 {
			m.status = "usage: start <meditation|breathing> [technique|intention]"
			return m, nil
		}
		kind, rest := args[0], strings.Join(args[1:], " ")
		technique, intention := "", rest
		if kind == "breathing" {
			technique, intention = rest, ""
		}
		return m, m.startCmd(kind, technique, intention)

	case "end":
		return m, m.endCmd()

	case "log":
		return m.runLog(args)

	case "range":
		if len(args) != 1 {
			m.status = "usage: range <name>"
			return m, nil
		}
		m.activeTab = tabSummary
		return m, m.summaryView.SetRange(strings.ToLower(args[0]))

	case "goal":
		goal, err := positiveArg(args)
		if err != nil {
			m.status = "usage: goal <minutes>"
			return m, nil
		}
		return m, tea.Batch(m.summaryView.SetGoal(goal), m.yearView.SetGoal(goal))

	case "year":
		year, err := positiveArg(args)
		if err != nil {
			m.status = "usage: year <yyyy>"
			return m, nil
		}
		m.activeTab = tabYear
		return m, m.yearView.SetYear(year)

	case "estimate":
		m.activeTab = tabHabits
		return m, m.habitsView.ToggleEstimate()

	case "refresh":
		return m, m.reloadAll()
	}
	m.status = "unknown command: " + name
	return m, nil
}

// runLog handles "log meditation <minutes> [date]" and
// "log breathing <count> [technique] [date]".
func (m Model) runLog(args []string) (tea.Model, tea.Cmd) {
	if len(args) < 2 {
		m.status = "usage: log <meditation|breathing> <amount> ..."
		return m, nil
	}
	amount, err := strconv.Atoi(args[1])
	if err != nil || amount < 0 {
		m.status = "amount must be a non-negative number"
		return m, nil
	}
	rest := args[2:]
	switch args[0] {
	case "meditation":
		date := ""
		if len(rest) > 0 {
			date = rest[0]
		}
		return m, m.logCmd(func(ctx context.Context) (practicedto.DayOutput, error) {
			return m.practice.LogMeditation(ctx, date, amount*60)
		})
	case "breathing":
		technique, date := "", ""
		if len(rest) > 0 {
			technique = rest[0]
		}
		if len(rest) > 1 {
			date = rest[1]
		}
		return m, m.logCmd(func(ctx context.Context) (practicedto.DayOutput, error) {
			return m.practice.LogBreathing(ctx, date, technique, amount)
		})
	}
	m.status = "log: unknown practice " + args[0]
	return m, nil
}

func positiveArg(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected one argument")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("expected a positive number")
	}
	return n, nil
}

func describe(kind, technique string) string {
	if technique == "" {
		return kind
	}
	return kind + " (" + technique + ")"
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.summaryView, _ = m.summaryView.Update(sz)
	m.yearView, _ = m.yearView.Update(sz)
	m.habitsView, _ = m.habitsView.Update(sz)
}

func (m Model) reloadAll() tea.Cmd {
	return tea.Batch(m.summaryView.Reload(), m.yearView.Reload(), m.habitsView.Reload())
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) loadActiveCmd() tea.Cmd {
	return func() tea.Msg {
		if m.practice == nil {
			return activeLoadedMsg{err: apperrors.ErrNoActiveSession}
		}
		active, err := m.practice.GetActive(context.Background())
		return activeLoadedMsg{active: active, err: err}
	}
}

func (m Model) startCmd(kind, technique, intention string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.practice.Start(context.Background(), kind, technique, intention)
		return sessionStartedMsg{out: out, err: err}
	}
}

func (m Model) endCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.practice.End(context.Background(), m.active.SessionID)
		return sessionEndedMsg{out: out, err: err}
	}
}

func (m Model) logCmd(run func(context.Context) (practicedto.DayOutput, error)) tea.Cmd {
	return func() tea.Msg {
		day, err := run(context.Background())
		return loggedMsg{day: day, err: err}
	}
}
