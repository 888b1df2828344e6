package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/4thel00z/timelog/internal"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func NewUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Live dashboard of open sessions",
		Long: `Run a full-screen dashboard that reloads the logfile every second and
shows the open sessions with their running durations.`,
		Args: cobra.NoArgs,
		RunE: runUI,
	}
}

func runUI(cmd *cobra.Command, _ []string) error {
	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}

	m := newUIModel(ws)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithOutput(cmd.OutOrStdout()),
		tea.WithInput(cmd.InOrStdin()),
	)
	_, err = p.Run()
	return err
}

var (
	uiTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Padding(0, 1)
	uiTagStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	uiDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	uiErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type uiTickMsg time.Time

type uiModel struct {
	ws      *workspace
	entries []internal.Entry
	now     time.Time
	err     error
}

func newUIModel(ws *workspace) uiModel {
	return uiModel{ws: ws, now: time.Now().UTC()}
}

func uiTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return uiTickMsg(t)
	})
}

func (m uiModel) Init() tea.Cmd {
	return tea.Batch(m.reload, uiTick())
}

func (m uiModel) reload() tea.Msg {
	log, err := m.ws.store.Load()
	if err != nil {
		return err
	}
	return internal.Entries(log, internal.StatusFilter(log, nil))
}

func (m uiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case uiTickMsg:
		m.now = time.Time(msg).UTC()
		return m, tea.Batch(m.reload, uiTick())
	case []internal.Entry:
		m.entries = msg
		m.err = nil
	case error:
		m.err = msg
	}
	return m, nil
}

func (m uiModel) View() string {
	var b strings.Builder

	b.WriteString(uiTitleStyle.Render("timelog"))
	b.WriteString(uiDimStyle.Render("  " + m.now.Local().Format(internal.TimeLayout)))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(uiErrStyle.Render(m.err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	if len(m.entries) == 0 {
		b.WriteString(uiDimStyle.Render("No open sessions."))
		b.WriteString("\n")
	} else {
		width := 0
		for _, e := range m.entries {
			if len(e.Tag) > width {
				width = len(e.Tag)
			}
		}
		for _, e := range m.entries {
			b.WriteString(fmt.Sprintf("%s  since %s  %s\n",
				uiTagStyle.Render(fmt.Sprintf("%-*s", width, e.Tag)),
				e.Start().Local().Format(internal.TimeLayout),
				internal.FormatDuration(e.DurationAt(m.now))))
		}
	}

	b.WriteString("\n")
	b.WriteString(uiDimStyle.Render("q to quit"))
	b.WriteString("\n")
	return b.String()
}
