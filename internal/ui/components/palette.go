package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mindful/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct {
	Name string
	Args []string
}

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().Foreground(theme.Subtext0)
)

// hints must stay in sync with the switch in app/model.go runCommand.
var paletteHints = []string{
	"start meditation [intention]",
	"start breathing [technique]",
	"end",
	"log meditation <minutes> [date]",
	"log breathing <count> [technique] [date]",
	"range <today|week|month|quarter|year|all>",
	"goal <minutes>",
	"year <yyyy>",
	"estimate",
	"refresh",
}

// Palette is a command-palette overlay backed by bubbles/textinput.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "start breathing box"
	ti.CharLimit = 128
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

// Open shows the palette with an empty input and focuses it.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			name, args := ParseCommand(p.input.Value())
			p.close()
			if name == "" {
				return p, func() tea.Msg { return PaletteCancelMsg{} }
			}
			return p, func() tea.Msg { return PaletteSubmitMsg{Name: name, Args: args} }
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

// ParseCommand splits input into a lower-cased command name and its
// arguments.
func ParseCommand(input string) (string, []string) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	prefix := strings.ToLower(strings.TrimSpace(p.input.Value()))
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	shown := 0
	for _, h := range paletteHints {
		if prefix != "" && !strings.HasPrefix(h, prefix) {
			continue
		}
		if shown == 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(hintStyle.Render("  "+h) + "\n")
		if shown++; shown == 6 {
			break
		}
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}
