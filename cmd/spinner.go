package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type loadedMsg[T any] struct {
	value T
	err   error
}

// spinnerModel shows a spinner until work returns.
type spinnerModel[T any] struct {
	spin    spinner.Model
	label   string
	work    func() (T, error)
	cancel  context.CancelFunc
	result  loadedMsg[T]
	done    bool
	aborted bool
}

func (m *spinnerModel[T]) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		v, err := m.work()
		return loadedMsg[T]{value: v, err: err}
	})
}

func (m *spinnerModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg[T]:
		m.result = msg
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "esc" {
			m.aborted = true
			m.cancel()
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *spinnerModel[T]) View() string {
	if m.done || m.aborted {
		return ""
	}
	return fmt.Sprintf("%s %s\n", m.spin.View(), m.label)
}

// withSpinner runs fn while drawing a spinner on stderr. Ctrl+C cancels fn's context.
func withSpinner[T any](ctx context.Context, label string, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = accentStyle

	m := &spinnerModel[T]{
		spin:   s,
		label:  label,
		work:   func() (T, error) { return fn(ctx) },
		cancel: cancel,
	}

	final, err := tea.NewProgram(m, tea.WithOutput(os.Stderr), tea.WithContext(ctx)).Run()
	if err != nil {
		var zero T
		if ctx.Err() != nil {
			return zero, errAborted
		}
		return zero, fmt.Errorf("run spinner: %w", err)
	}
	fm := final.(*spinnerModel[T])
	if fm.aborted {
		var zero T
		return zero, errAborted
	}
	return fm.result.value, fm.result.err
}
