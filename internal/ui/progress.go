// SPDX-License-Identifier: EPL-2.0

package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ik5/dsdplay/internal/cli"
)

// Progress reports how far the conversion got. Counts are byte-samples per
// channel, as read from the container.
type Progress struct {
	Done   uint64
	Total  uint64
	Frames uint64
}

// Complete signals the end of the conversion, successful or not.
type Complete struct {
	Err error
}

// Model renders a progress bar for one conversion.
type Model struct {
	bar   progress.Model
	title string

	last     Progress
	complete *Complete
	start    time.Time
	now      func() time.Time
}

// NewModel creates a progress model headed by title.
func NewModel(title string) *Model {
	return &Model{
		bar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(40),
			progress.WithoutPercentage(),
		),
		title: title,
		start: time.Now(),
		now:   time.Now,
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = max(min(msg.Width-20, 50), 10)
		return m, nil

	case Progress:
		m.last = msg
		return m, nil

	case Complete:
		m.complete = &msg
		return m, tea.Quit

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	return m, nil
}

// Percent returns the completed fraction in [0, 1].
func (m *Model) Percent() float64 {
	if m.last.Total == 0 {
		if m.complete != nil && m.complete.Err == nil {
			return 1
		}
		return 0
	}
	return min(float64(m.last.Done)/float64(m.last.Total), 1)
}

// View renders the UI
func (m *Model) View() string {
	var s strings.Builder

	s.WriteString(cli.TitleStyle.Render("dsdplay"))
	s.WriteString(" ")
	s.WriteString(cli.SubtitleStyle.Render(m.title))
	s.WriteString("\n\n")

	pct := m.Percent()
	s.WriteString(m.bar.ViewAs(pct))
	s.WriteString(fmt.Sprintf(" %3.0f%%\n", pct*100))

	s.WriteString(cli.KeyStyle.Render("Frames:  "))
	s.WriteString(cli.ValueStyle.Render(fmt.Sprint(m.last.Frames)))
	s.WriteString("\n")
	s.WriteString(cli.KeyStyle.Render("Elapsed: "))
	s.WriteString(cli.ValueStyle.Render(m.now().Sub(m.start).Round(100 * time.Millisecond).String()))
	s.WriteString("\n")

	if m.complete != nil {
		if m.complete.Err != nil {
			s.WriteString(cli.ErrorStyle.Render("✗ Conversion failed"))
		} else {
			s.WriteString(cli.SuccessStyle.Render("✓ Conversion complete"))
		}
		s.WriteString("\n")
	}

	return s.String()
}
