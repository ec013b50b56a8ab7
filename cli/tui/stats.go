package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justapithecus/faultline/cli/reader"
	"github.com/justapithecus/faultline/store"
)

// StatsModel is a Bubble Tea model for stats views.
type StatsModel struct {
	viewType string
	data     any
	width    int
	height   int
	quitting bool
}

// NewStatsModel creates a new stats model.
func NewStatsModel(viewType string, data any) StatsModel {
	return StatsModel{
		viewType: viewType,
		data:     data,
	}
}

// Init implements tea.Model.
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m StatsModel) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.viewType {
	case "stats_crashes":
		content = m.renderStatsCrashes()
	case "stats_archive":
		content = m.renderStatsArchive()
	default:
		content = fmt.Sprintf("Unknown view type: %s", m.viewType)
	}

	help := HelpStyle.Render("Press q or Ctrl+C to quit")
	return content + "\n" + help
}

func (m StatsModel) renderStatsCrashes() string {
	data, ok := m.data.(*reader.CrashStats)
	if !ok {
		return "Invalid data type for stats_crashes"
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Crash Statistics"))
	b.WriteString("\n\n")

	// Create stat boxes
	boxes := []string{
		m.renderStatBox("Total", data.Total, highlightColor),
		m.renderStatBox("Captured", data.Captured, successColor),
		m.renderStatBox("Partial", data.Partial, warningColor),
		m.renderStatBox("Skipped", data.Skipped, errorColor),
	}

	// Join boxes horizontally
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxes...))

	if data.TruncatedReports > 0 {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%s %s",
			LabelStyle.Render("Truncated:"),
			WarningStyle.Render(fmt.Sprintf("%d reports", data.TruncatedReports))))
	}

	b.WriteString(m.renderBreakdown("By Signal", data.BySignal))
	b.WriteString(m.renderBreakdown("By Binary", data.ByBinary))

	return b.String()
}

func (m StatsModel) renderStatsArchive() string {
	data, ok := m.data.(*store.Stats)
	if !ok {
		return "Invalid data type for stats_archive"
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Archive Statistics"))
	b.WriteString("\n\n")

	boxes := []string{
		m.renderStatBox("Total", data.Total, highlightColor),
		m.renderStatBox("Captured", data.ByOutcome["captured"], successColor),
		m.renderStatBox("Partial", data.ByOutcome["partial"], warningColor),
		m.renderStatBox("Skipped", data.ByOutcome["skipped"], errorColor),
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxes...))

	if data.TruncatedReports > 0 {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%s %s",
			LabelStyle.Render("Truncated:"),
			WarningStyle.Render(fmt.Sprintf("%d reports", data.TruncatedReports))))
	}

	b.WriteString(m.renderBreakdown("By Signal", data.BySignal))
	b.WriteString(m.renderBreakdown("By Binary", data.ByBinary))

	return b.String()
}

// renderBreakdown renders a sorted key/count section, empty maps render nothing.
func (m StatsModel) renderBreakdown(title string, counts map[string]int) string {
	if len(counts) == 0 {
		return ""
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Bold(true).
		Foreground(highlightColor).
		Render(title))
	b.WriteString("\n")
	for _, name := range names {
		b.WriteString(fmt.Sprintf("%s %s\n",
			LabelStyle.Render(name+":"),
			ValueStyle.Render(fmt.Sprintf("%d", counts[name]))))
	}
	return b.String()
}

func (m StatsModel) renderStatBox(label string, value int, color lipgloss.Color) string {
	boxStyle := StatBoxStyle.BorderForeground(color)

	valueStr := StatValueStyle.Foreground(color).Render(fmt.Sprintf("%d", value))
	labelStr := StatLabelStyle.Render(label)

	content := lipgloss.JoinVertical(lipgloss.Center, valueStr, labelStr)

	return boxStyle.Render(content)
}

// RunStatsTUI runs the stats TUI.
func RunStatsTUI(viewType string, data any) error {
	model := NewStatsModel(viewType, data)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// RenderStatsStatic renders stats data without full TUI (for fallback).
func RenderStatsStatic(viewType string, data any) string {
	model := NewStatsModel(viewType, data)
	model.width = 80
	model.height = 24
	return lipgloss.NewStyle().Padding(1, 2).Render(model.View())
}
