// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Yago Lizarribar

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yagoliz/tpms-tools/pkg/fuzz"
)

// Rejection log entry
type rejectionLogEntry struct {
	timestamp time.Time
	message   string
}

// Messages
type fuzzCaseMsg fuzz.Case
type fuzzDoneMsg struct{}
type fuzzTickMsg time.Time

// TUI model for a running fuzz campaign
type fuzzModel struct {
	protocol      string
	strategy      fuzz.Strategy
	seed          int64
	total         int
	stats         *fuzz.Stats
	prog          progress.Model
	rejectionLog  []rejectionLogEntry
	maxLogEntries int
	width         int
	done          bool
	quitting      bool
}

func initialFuzzModel(gen fuzz.Generator, total int, stats *fuzz.Stats) fuzzModel {
	return fuzzModel{
		protocol:      gen.Encoder.Name(),
		strategy:      gen.Strategy,
		seed:          gen.Seed,
		total:         total,
		stats:         stats,
		prog:          progress.New(progress.WithDefaultGradient()),
		rejectionLog:  make([]rejectionLogEntry, 0),
		maxLogEntries: 8,
		width:         80,
	}
}

func (m fuzzModel) Init() tea.Cmd {
	return fuzzTickCmd()
}

func fuzzTickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return fuzzTickMsg(t)
	})
}

func (m fuzzModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.prog.Width = msg.Width - 8
		if m.prog.Width > 60 {
			m.prog.Width = 60
		}

	case fuzzTickMsg:
		m.stats.CalculateRates()
		if m.done {
			return m, tea.Quit
		}
		return m, fuzzTickCmd()

	case fuzzCaseMsg:
		c := fuzz.Case(msg)
		m.stats.Update(c)
		if c.Rejected() {
			m.addLogEntry(fmt.Sprintf("#%04d %s: %v", c.Index, c.Field, c.Err))
		}

	case fuzzDoneMsg:
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *fuzzModel) addLogEntry(message string) {
	m.rejectionLog = append(m.rejectionLog, rejectionLogEntry{
		timestamp: time.Now(),
		message:   message,
	})
	if len(m.rejectionLog) > m.maxLogEntries {
		m.rejectionLog = m.rejectionLog[len(m.rejectionLog)-m.maxLogEntries:]
	}
}

func (m fuzzModel) View() string {
	if m.quitting {
		return "Campaign aborted.\n"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Background(lipgloss.Color("235")).
		Padding(0, 1)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	statsLabelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true)

	statsValueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")).
		Bold(true)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var s strings.Builder
	s.WriteString(titleStyle.Render("TPMS FUZZ CAMPAIGN"))
	s.WriteString("\n")
	s.WriteString(headerStyle.Render(fmt.Sprintf("Protocol: %s | Strategy: %s | Seed: %d | Press 'q' to abort",
		m.protocol, m.strategy, m.seed)))
	s.WriteString("\n\n")

	ratio := 0.0
	if m.total > 0 {
		ratio = float64(m.stats.TotalCases) / float64(m.total)
	}
	s.WriteString(m.prog.ViewAs(ratio))
	s.WriteString(headerStyle.Render(fmt.Sprintf("  %d/%d", m.stats.TotalCases, m.total)))
	s.WriteString("\n\n")

	var acceptedPercent float64
	if m.stats.TotalCases > 0 {
		acceptedPercent = float64(m.stats.AcceptedCases) * 100.0 / float64(m.stats.TotalCases)
	}

	statsContent := strings.Builder{}
	statsContent.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n",
		statsLabelStyle.Render("Total:"), statsValueStyle.Render(fmt.Sprintf("%d", m.stats.TotalCases)),
		statsLabelStyle.Render("Accepted:"), statsValueStyle.Render(fmt.Sprintf("%d (%.1f%%)", m.stats.AcceptedCases, acceptedPercent)),
		statsLabelStyle.Render("Rejected:"), errorStyle.Render(fmt.Sprintf("%d", m.stats.RejectedCases)),
	))
	statsContent.WriteString(fmt.Sprintf("%s %s",
		statsLabelStyle.Render("Case Rate:"), statsValueStyle.Render(fmt.Sprintf("%.1f cases/s", m.stats.CaseRate)),
	))
	s.WriteString(boxStyle.Render(statsContent.String()))
	s.WriteString("\n\n")

	if len(m.rejectionLog) > 0 {
		s.WriteString(statsLabelStyle.Render("Recent Rejections:"))
		s.WriteString("\n")
		for _, entry := range m.rejectionLog {
			s.WriteString(fmt.Sprintf("  %s %s\n",
				headerStyle.Render(entry.timestamp.Format("15:04:05.000")),
				errorStyle.Render(entry.message)))
		}
	}

	return s.String()
}

// runFuzzTUI drives the campaign through a live terminal view. Cases are
// encoded in a background goroutine and streamed into the model one at a
// time so rejections show up as they happen.
func runFuzzTUI(gen fuzz.Generator, stats *fuzz.Stats) ([]fuzz.Case, error) {
	it, err := gen.Cases()
	if err != nil {
		return nil, err
	}

	p := tea.NewProgram(initialFuzzModel(gen, it.Len(), stats))

	cases := make([]fuzz.Case, 0, it.Len())
	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for {
			c, ok := it.Next()
			if !ok {
				break
			}
			cases = append(cases, c)
			p.Send(fuzzCaseMsg(c))
		}
		p.Send(fuzzDoneMsg{})
	}()

	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	<-collected

	// Sends racing the shutdown are dropped by the program, so the streamed
	// counters can run behind the collected cases. Rebuild them from the
	// full list before anything is printed.
	stats.Tally(cases)

	if fm, ok := final.(fuzzModel); ok && fm.quitting {
		return cases, fmt.Errorf("campaign aborted")
	}
	return cases, nil
}
