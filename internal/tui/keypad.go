// Package tui is an interactive terminal keypad for a calcpad.Editor.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zephyrtronium/calcpad"
)

var (
	screenStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1).
			Width(34).
			Align(lipgloss.Right)

	exprStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	resultStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Italic(true)

	keyStyle = lipgloss.NewStyle().
			Width(6).
			Align(lipgloss.Center).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
	selectedKeyStyle = keyStyle.
				BorderForeground(lipgloss.Color("170")).
				Foreground(lipgloss.Color("170")).
				Bold(true)
)

// keyMap holds the bindings that are not typed expression symbols.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Press    key.Binding
	Evaluate key.Binding
	Delete   key.Binding
	Clear    key.Binding
	Quit     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Press, k.Evaluate, k.Delete, k.Clear, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Press, k.Evaluate, k.Delete, k.Clear, k.Quit},
	}
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
	Down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
	Left:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
	Right:    key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
	Press:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "press key")),
	Evaluate: key.NewBinding(key.WithKeys("="), key.WithHelp("=", "evaluate")),
	Delete:   key.NewBinding(key.WithKeys("backspace", "delete"), key.WithHelp("⌫", "delete")),
	Clear:    key.NewBinding(key.WithKeys("esc", "C"), key.WithHelp("esc", "clear")),
	Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
}

// shortcuts maps typed runes to function keys.
var shortcuts = map[string]string{
	"s": "sin",
	"c": "cos",
	"t": "tg",
	"g": "ctg",
	"r": "√",
	"x": "*",
}

// Model is a bubbletea model showing an editor above a keypad.
type Model struct {
	ed       *calcpad.Editor
	layout   [][]string
	row, col int
	help     help.Model
	quitting bool
}

// New creates a keypad model driving ed. If layout is empty, the layout is
// calcpad.Keypad.
func New(ed *calcpad.Editor, layout [][]string) Model {
	if len(layout) == 0 {
		layout = calcpad.Keypad
	}
	return Model{
		ed:     ed,
		layout: layout,
		help:   help.New(),
	}
}

// Editor returns the editor the model drives.
func (m Model) Editor() *calcpad.Editor {
	return m.ed
}

// Selected returns the keypad key under the cursor.
func (m Model) Selected() string {
	return m.layout[m.row][m.col]
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			m.move(-1, 0)
		case key.Matches(msg, keys.Down):
			m.move(1, 0)
		case key.Matches(msg, keys.Left):
			m.move(0, -1)
		case key.Matches(msg, keys.Right):
			m.move(0, 1)
		case key.Matches(msg, keys.Press):
			m.ed.Press(m.Selected())
		case key.Matches(msg, keys.Evaluate):
			m.ed.Press(calcpad.KeyEvaluate)
		case key.Matches(msg, keys.Delete):
			m.ed.Press(calcpad.KeyDelete)
		case key.Matches(msg, keys.Clear):
			m.ed.Press(calcpad.KeyClear)
		case msg.Type == tea.KeyRunes:
			s := string(msg.Runes)
			if f, ok := shortcuts[s]; ok {
				s = f
			}
			m.ed.Press(s)
		}
	}
	return m, nil
}

// move moves the cursor, clamping it to the layout.
func (m *Model) move(dr, dc int) {
	m.row = clamp(m.row+dr, len(m.layout)-1)
	m.col = clamp(m.col+dc, len(m.layout[m.row])-1)
}

func clamp(x, hi int) int {
	if x < 0 {
		return 0
	}
	if x > hi {
		return hi
	}
	return x
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	expr := m.ed.Display()
	if expr == "" {
		expr = " "
	}
	out := m.ed.Result()
	outStyle := resultStyle
	if m.ed.Err() != nil {
		outStyle = errorStyle
	}
	if out == "" {
		out = " "
	}
	screen := screenStyle.Render(exprStyle.Render(expr) + "\n" + outStyle.Render(out))

	rows := make([]string, 0, len(m.layout))
	for r, line := range m.layout {
		cells := make([]string, 0, len(line))
		for c, k := range line {
			st := keyStyle
			if r == m.row && c == m.col {
				st = selectedKeyStyle
			}
			cells = append(cells, st.Render(k))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	var b strings.Builder
	b.WriteString(screen)
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	b.WriteString("\n")
	b.WriteString(m.help.View(keys))
	return b.String()
}

// Run runs the keypad on the terminal until the user quits.
func Run(ed *calcpad.Editor, layout [][]string, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(New(ed, layout), opts...).Run()
	return err
}
