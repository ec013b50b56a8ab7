package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justapithecus/faultline/cli/reader"
)

// InspectModel is a Bubble Tea model for inspect views.
type InspectModel struct {
	viewType string
	data     any
	width    int
	height   int
	quitting bool
}

// NewInspectModel creates a new inspect model.
func NewInspectModel(viewType string, data any) InspectModel {
	return InspectModel{
		viewType: viewType,
		data:     data,
	}
}

// Init implements tea.Model.
func (m InspectModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m InspectModel) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.viewType {
	case "inspect_crash":
		content = m.renderInspectCrash()
	default:
		content = fmt.Sprintf("Unknown view type: %s", m.viewType)
	}

	help := HelpStyle.Render("Press q or Ctrl+C to quit")
	return content + "\n" + help
}

func (m InspectModel) renderInspectCrash() string {
	data, ok := m.data.(*reader.InspectCrashResponse)
	if !ok {
		return "Invalid data type for inspect_crash"
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Crash Details"))
	b.WriteString("\n\n")

	rows := [][]string{
		{"Bundle ID", data.BundleID},
		{"Binary", data.Binary},
		{"PID", fmt.Sprintf("%d", data.PID)},
		{"Signal", fmt.Sprintf("%s (%d)", data.SignalName, data.SignalNumber)},
		{"Outcome", data.Outcome},
		{"Captured At", data.Timestamp},
	}

	if data.Message != "" {
		rows = append(rows, []string{"Message", data.Message})
	}
	if data.SkipReason != "" {
		rows = append(rows, []string{"Skip Reason", data.SkipReason})
	}
	if data.TruncatedReport {
		rows = append(rows, []string{"Report", "truncated"})
	}

	for _, row := range rows {
		label := LabelStyle.Render(row[0] + ":")
		value := row[1]
		if row[0] == "Outcome" {
			value = OutcomeStyle(data.Outcome).Render(value)
		} else {
			value = ValueStyle.Render(value)
		}
		b.WriteString(fmt.Sprintf("%s %s\n", label, value))
	}

	if len(data.Frames) > 0 {
		b.WriteString("\n")
		b.WriteString(TitleStyle.Render("Stacktrace"))
		b.WriteString("\n")
		for _, frame := range data.Frames {
			b.WriteString(fmt.Sprintf("  %s %s\n",
				LabelStyle.Render(fmt.Sprintf("#%d %s", frame.Index, frame.PC)),
				ValueStyle.Render(frameLine(frame))))
		}
	}

	if len(data.Artifacts) > 0 {
		b.WriteString("\n")
		b.WriteString(TitleStyle.Render("Artifacts"))
		b.WriteString("\n")
		for _, a := range data.Artifacts {
			b.WriteString(fmt.Sprintf("  %s %s\n",
				LabelStyle.Render(a.Kind+":"),
				artifactLine(a)))
		}
	}

	return BoxStyle.Render(b.String())
}

// frameLine renders one frame's symbol portion.
func frameLine(frame reader.FrameView) string {
	if frame.Symbol == "" {
		return "(unknown)"
	}
	line := fmt.Sprintf("%s + %d", frame.Symbol, frame.Offset)
	if frame.Module != "" {
		line += " [" + frame.Module + "]"
	}
	return line
}

// artifactLine renders one artifact's state with outcome coloring.
func artifactLine(a reader.ArtifactView) string {
	switch {
	case a.OK:
		return SuccessStyle.Render("written") + " " + ValueStyle.Render(a.Path)
	case a.Attempted:
		return ErrorStyle.Render("failed")
	default:
		return WarningStyle.Render("not attempted")
	}
}

// keyMap defines key bindings.
type keyMap struct {
	Quit key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// RunInspectTUI runs the inspect TUI.
func RunInspectTUI(viewType string, data any) error {
	model := NewInspectModel(viewType, data)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// RenderInspectStatic renders inspect data without full TUI (for fallback).
func RenderInspectStatic(viewType string, data any) string {
	model := NewInspectModel(viewType, data)
	model.width = 80
	model.height = 24
	return lipgloss.NewStyle().Padding(1, 2).Render(model.View())
}
