// Package tui renders the interactive slot selector shown when wt is
// invoked without a subcommand.
package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/haldane/wt/internal/engine"
)

// selectorModel is a single-select list over occupied slots.
type selectorModel struct {
	items    []engine.SlotInfo
	cursor   int
	selected *engine.SlotInfo // nil = cancelled
	done     bool
	width    int
	height   int
}

// NewSelector creates a selector model from the slot table.
func NewSelector(infos []engine.SlotInfo) selectorModel {
	return selectorModel{items: infos}
}

// RunSlotSelector launches the selector on stderr and returns the
// chosen slot, or nil if the user cancelled. stderr is used for
// rendering so stdout stays clean.
func RunSlotSelector(infos []engine.SlotInfo) (*engine.SlotInfo, error) {
	m := NewSelector(infos)
	p := tea.NewProgram(m, tea.WithOutput(os.Stderr))
	result, err := p.Run()
	if err != nil {
		return nil, err
	}
	final := result.(selectorModel)
	return final.selected, nil
}

func (m selectorModel) Init() tea.Cmd {
	return nil
}

func (m selectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.done = true
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}

		case "enter":
			if len(m.items) > 0 {
				info := m.items[m.cursor]
				m.selected = &info
			}
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m selectorModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(" Slots "))
	b.WriteString("\n\n")

	for i, info := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		var branchStr string
		switch {
		case i == m.cursor:
			branchStr = selectedStyle.Render(info.Branch)
		case info.Current:
			branchStr = currentStyle.Render(info.Branch)
		default:
			branchStr = normalStyle.Render(info.Branch)
		}

		line := fmt.Sprintf("%s%s %s", cursor, branchStr, buildTags(info))
		b.WriteString(line)
		b.WriteString("\n")

		if i == m.cursor {
			b.WriteString(dimStyle.Render(fmt.Sprintf("    slot %s", info.Name)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑↓/jk move  enter select  q/esc cancel"))
	b.WriteString("\n")

	return b.String()
}

// buildTags formats the status tags for a slot row.
func buildTags(info engine.SlotInfo) string {
	var tags []string

	if info.Current {
		tags = append(tags, currentStyle.Render("current"))
	}
	if info.Pinned {
		tags = append(tags, pinnedStyle.Render("pinned"))
	}
	if age := relAge(info.LastUsedAt); age != "" {
		tags = append(tags, dimStyle.Render(age))
	}

	if len(tags) == 0 {
		return ""
	}
	return dimStyle.Render("[") + strings.Join(tags, dimStyle.Render(", ")) + dimStyle.Render("]")
}

func relAge(t time.Time) string {
	if t.Unix() <= 0 {
		return ""
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}
