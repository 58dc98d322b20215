// SPDX-License-Identifier: EPL-2.0

package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestModel() *Model {
	m := NewModel("track.dsf")
	start := m.start
	m.now = func() time.Time { return start.Add(1500 * time.Millisecond) }
	return m
}

func TestModel_Progress(t *testing.T) {
	t.Parallel()

	m := newTestModel()
	if _, cmd := m.Update(Progress{Done: 250, Total: 1000, Frames: 250}); cmd != nil {
		t.Error("Update(Progress) returned a command")
	}

	if got := m.Percent(); got != 0.25 {
		t.Errorf("Percent() = %v, want 0.25", got)
	}

	view := m.View()
	for _, want := range []string{"track.dsf", " 25%", "250", "1.5s"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() = %q, missing %q", view, want)
		}
	}
}

func TestModel_Complete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"success", nil, "Conversion complete"},
		{"failure", errors.New("short read"), "Conversion failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newTestModel()
			_, cmd := m.Update(Complete{Err: tt.err})
			if cmd == nil {
				t.Fatal("Update(Complete) did not quit")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Error("Update(Complete) command is not tea.Quit")
			}
			if !strings.Contains(m.View(), tt.want) {
				t.Errorf("View() = %q, missing %q", m.View(), tt.want)
			}
		})
	}
}

func TestModel_Percent(t *testing.T) {
	t.Parallel()

	m := newTestModel()
	if got := m.Percent(); got != 0 {
		t.Errorf("Percent() before any progress = %v, want 0", got)
	}

	m.Update(Progress{Done: 1200, Total: 1000})
	if got := m.Percent(); got != 1 {
		t.Errorf("Percent() past the end = %v, want 1", got)
	}

	empty := newTestModel()
	empty.Update(Complete{})
	if got := empty.Percent(); got != 1 {
		t.Errorf("Percent() of an empty range = %v, want 1", got)
	}
}

func TestModel_WindowSize(t *testing.T) {
	t.Parallel()

	m := newTestModel()
	m.Update(tea.WindowSizeMsg{Width: 200, Height: 40})
	if m.bar.Width != 50 {
		t.Errorf("bar width = %d, want 50", m.bar.Width)
	}
	m.Update(tea.WindowSizeMsg{Width: 15, Height: 40})
	if m.bar.Width != 10 {
		t.Errorf("bar width = %d, want 10", m.bar.Width)
	}
}
