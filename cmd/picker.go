package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const pickerListHeight = 12

// optionPicker is a filterable single-choice list. Typing "/" filters the
// options; when nothing matches, Enter accepts the typed text as-is.
type optionPicker struct {
	title   string
	options []string

	filtered []int
	cursor   int

	filterInput textinput.Model
	filtering   bool

	choice  string
	done    bool
	aborted bool
}

func newOptionPicker(title string, options []string) *optionPicker {
	filter := textinput.New()
	filter.Prompt = "/"

	m := &optionPicker{
		title:       title,
		options:     append([]string{randomOption}, options...),
		filterInput: filter,
	}
	m.rebuildFiltered()
	return m
}

// pickOption runs the picker and returns the chosen option, "" for random.
func pickOption(title string, options []string) (string, error) {
	if err := requireTerminal(); err != nil {
		return "", err
	}

	final, err := tea.NewProgram(newOptionPicker(title, options)).Run()
	if err != nil {
		return "", fmt.Errorf("run picker: %w", err)
	}
	m := final.(*optionPicker)
	if m.aborted {
		return "", errAborted
	}
	return m.value(), nil
}

func (m *optionPicker) Init() tea.Cmd {
	return textinput.Blink
}

func (m *optionPicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.String() == "ctrl+c" {
		m.aborted = true
		return m, tea.Quit
	}

	if m.filtering {
		switch key.String() {
		case "enter":
			m.filtering = false
			m.filterInput.Blur()
			if len(m.filtered) == 0 {
				return m.accept()
			}
			return m, nil
		case "esc":
			m.filtering = false
			m.filterInput.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.filterInput, cmd = m.filterInput.Update(msg)
			m.rebuildFiltered()
			return m, cmd
		}
	}

	switch key.String() {
	case "/":
		m.filtering = true
		m.filterInput.Focus()
	case "esc":
		if strings.TrimSpace(m.filterInput.Value()) != "" {
			m.filterInput.SetValue("")
			m.rebuildFiltered()
		}
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
	case "ctrl+u", "pgup":
		m.cursor = max(0, m.cursor-pickerListHeight/2)
	case "ctrl+d", "pgdown":
		if len(m.filtered) > 0 {
			m.cursor = min(len(m.filtered)-1, m.cursor+pickerListHeight/2)
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		if len(m.filtered) > 0 {
			m.cursor = len(m.filtered) - 1
		}
	case "enter":
		return m.accept()
	}
	return m, nil
}

func (m *optionPicker) accept() (tea.Model, tea.Cmd) {
	if idx, ok := m.currentIndex(); ok {
		m.choice = m.options[idx]
	} else {
		m.choice = strings.TrimSpace(m.filterInput.Value())
	}
	m.done = true
	return m, tea.Quit
}

// value maps the random row back to an empty facet.
func (m *optionPicker) value() string {
	if m.choice == randomOption {
		return ""
	}
	return m.choice
}

func (m *optionPicker) rebuildFiltered() {
	query := strings.ToLower(strings.TrimSpace(m.filterInput.Value()))
	m.filtered = m.filtered[:0]
	for idx, opt := range m.options {
		if query == "" || strings.Contains(strings.ToLower(opt), query) {
			m.filtered = append(m.filtered, idx)
		}
	}
	if len(m.filtered) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = max(0, min(m.cursor, len(m.filtered)-1))
}

func (m *optionPicker) currentIndex() (int, bool) {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return 0, false
	}
	return m.filtered[m.cursor], true
}

func (m *optionPicker) View() string {
	lines := []string{m.title}

	if m.filtering {
		lines = append(lines, "Type to filter, Enter or Esc to apply.", m.filterInput.View())
	} else if q := strings.TrimSpace(m.filterInput.Value()); q != "" {
		lines = append(lines, fmt.Sprintf("Active filter: /%s (press / to edit, Esc to clear)", q))
	} else {
		lines = append(lines, "Press / to search")
	}

	lines = append(lines, "")
	if len(m.filtered) == 0 {
		lines = append(lines, fmt.Sprintf("No option matches. Enter uses %q as typed.", strings.TrimSpace(m.filterInput.Value())))
	} else {
		start, end := listWindow(len(m.filtered), m.cursor, pickerListHeight)
		for pos := start; pos < end; pos++ {
			cursor := " "
			if pos == m.cursor {
				cursor = ">"
			}
			lines = append(lines, fmt.Sprintf("%s %s", cursor, m.options[m.filtered[pos]]))
		}
		if end < len(m.filtered) {
			lines = append(lines, fmt.Sprintf("... %d more", len(m.filtered)-end))
		}
	}

	lines = append(lines, "")
	if m.filtering {
		lines = append(lines, "Keys: type filter | Enter/Esc apply | Ctrl+C exit")
	} else {
		lines = append(lines, "Keys: j/k move | / filter | Enter choose | Ctrl+C exit")
	}
	return strings.Join(lines, "\n")
}

func listWindow(total, cursor, size int) (int, int) {
	if total <= 0 {
		return 0, 0
	}
	if size <= 0 || total <= size {
		return 0, total
	}

	start := cursor - size/2
	if start < 0 {
		start = 0
	}
	if start+size > total {
		start = total - size
	}
	return start, start + size
}

func requireTerminal() error {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return fmt.Errorf("inspect stdin: %w", err)
	}
	if stat.Mode()&os.ModeCharDevice == 0 {
		return fmt.Errorf("interactive mode requires a terminal; pass a category argument instead")
	}
	return nil
}
