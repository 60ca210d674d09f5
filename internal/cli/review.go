package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// reviewModel is the bubbletea model for interactive dependency
// selection: a scrollable checkbox list over the discovered names.
type reviewModel struct {
	Names     []string
	Checked   []bool
	Cursor    int
	Height    int
	Offset    int
	Confirmed bool
}

func newReviewModel(names []string) reviewModel {
	checked := make([]bool, len(names))
	for i := range checked {
		checked[i] = true
	}
	return reviewModel{
		Names:   names,
		Checked: checked,
		Height:  15,
	}
}

func (m reviewModel) Init() tea.Cmd {
	return nil
}

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Names)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ":
			m.Checked[m.Cursor] = !m.Checked[m.Cursor]
		case "a":
			for i := range m.Checked {
				m.Checked[i] = true
			}
		case "n":
			for i := range m.Checked {
				m.Checked[i] = false
			}
		case "enter":
			m.Confirmed = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m reviewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Dependencies"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all  n none  ⏎ confirm  q cancel"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Names) {
		end = len(m.Names)
	}

	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		box := "[ ]"
		if m.Checked[i] {
			box = "[x]"
		}
		style := listNormalStyle
		if i == m.Cursor {
			style = listSelectedStyle
		}
		b.WriteString(cursor + style.Render(box+" "+m.Names[i]) + "\n")
	}

	if len(m.Names) > m.Height {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("…"))
	}
	return b.String()
}

// selected returns the checked names in their original order.
func (m reviewModel) selected() []string {
	var out []string
	for i, ok := range m.Checked {
		if ok {
			out = append(out, m.Names[i])
		}
	}
	return out
}

// reviewNames runs the interactive selection. The second return value is
// false when the user cancelled instead of confirming.
func reviewNames(names []string) ([]string, bool, error) {
	p := tea.NewProgram(newReviewModel(names))
	final, err := p.Run()
	if err != nil {
		return nil, false, err
	}
	m, ok := final.(reviewModel)
	if !ok || !m.Confirmed {
		return nil, false, nil
	}
	return m.selected(), true, nil
}
