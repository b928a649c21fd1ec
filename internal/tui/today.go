package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sujink1999/vanta-society-sub000/internal/engine"
	"github.com/sujink1999/vanta-society-sub000/internal/storage"
	"github.com/sujink1999/vanta-society-sub000/internal/ui"
)

type todayModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	scores *storage.Vitals
	due    []engine.DueItem
	stats  engine.Stats

	selected int
	lastLog  string
	loading  bool
	err      error
}

type loadedMsg struct {
	scores *storage.Vitals
	due    []engine.DueItem
	stats  engine.Stats
	err    error
}

type resolvedMsg struct {
	itemID string
	status engine.Status
	err    error
}

func newTodayModel(ctx context.Context, svc *engine.Service) todayModel {
	return todayModel{
		ctx:     ctx,
		svc:     svc,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m todayModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m todayModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		due, err := m.svc.DueToday(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		stats, err := m.svc.Stats(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{scores: m.svc.Scores().Get(), due: due, stats: stats}
	}
}

func (m todayModel) resolveCmd(itemID string, status engine.Status) tea.Cmd {
	return func() tea.Msg {
		err := m.svc.ResolveItem(m.ctx, itemID, status)
		return resolvedMsg{itemID: itemID, status: status, err: err}
	}
}

func (m todayModel) undoCmd(itemID string) tea.Cmd {
	return func() tea.Msg {
		m.svc.UndoItem(m.ctx, itemID)
		return resolvedMsg{itemID: itemID}
	}
}

func (m todayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.scores = msg.scores
		m.due = msg.due
		m.stats = msg.stats
		if m.selected >= len(m.due) {
			m.selected = 0
		}
		return m, nil

	case resolvedMsg:
		if msg.err != nil {
			m.lastLog = "Error: " + msg.err.Error()
			return m, nil
		}
		switch msg.status {
		case engine.StatusDone:
			m.lastLog = fmt.Sprintf("Completed %s.", msg.itemID)
		case engine.StatusSkipped:
			m.lastLog = fmt.Sprintf("Skipped %s.", msg.itemID)
		default:
			m.lastLog = fmt.Sprintf("Reset %s.", msg.itemID)
		}
		return m, m.loadCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "j", "down":
			if m.selected < len(m.due)-1 {
				m.selected++
			}
		case "k", "up":
			if m.selected > 0 {
				m.selected--
			}
		case "d", "enter":
			if item, ok := m.selectedItem(); ok {
				return m, m.resolveCmd(item.Item.ID, engine.StatusDone)
			}
		case "s":
			if item, ok := m.selectedItem(); ok {
				return m, m.resolveCmd(item.Item.ID, engine.StatusSkipped)
			}
		case "u":
			if item, ok := m.selectedItem(); ok {
				return m, m.undoCmd(item.Item.ID)
			}
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}
	return m, nil
}

func (m todayModel) selectedItem() (engine.DueItem, bool) {
	if m.selected < 0 || m.selected >= len(m.due) {
		return engine.DueItem{}, false
	}
	return m.due[m.selected], true
}

func (m todayModel) View() string {
	if m.loading {
		return ui.Muted.Render("Loading…")
	}
	if m.err != nil {
		return ui.Bad.Render(ui.IconError + " " + m.err.Error())
	}

	var b strings.Builder
	b.WriteString(ui.Heading(ui.IconVital, "Today") + "\n\n")

	if m.scores != nil {
		b.WriteString(ui.PanelTitle.Render("Vitals") + "\n")
		rows := []struct {
			name  string
			value float64
		}{
			{"discipline", m.scores.Discipline},
			{"mindset", m.scores.Mindset},
			{"strength", m.scores.Strength},
			{"momentum", m.scores.Momentum},
			{"confidence", m.scores.Confidence},
			{"society", m.scores.Society},
		}
		for _, row := range rows {
			b.WriteString(fmt.Sprintf("  %-11s %s %5.1f\n", row.name, ui.ScoreBar(row.value, 20), row.value))
		}
		b.WriteString("\n")
	}

	if m.stats.CurrentStreak > 0 {
		b.WriteString(ui.LabelValue("Streak", fmt.Sprintf("%s %d days", ui.IconFlame, m.stats.CurrentStreak)) + "\n\n")
	}

	if len(m.due) == 0 {
		b.WriteString(ui.Muted.Render("Nothing due today.") + "\n")
	}
	for i, due := range m.due {
		cursor := "  "
		title := fmt.Sprintf("%s  %s", due.Item.Title, ui.StatusText(string(due.Status)))
		if i == m.selected {
			cursor = ui.Gold.Render("> ")
			title = ui.SelectedRow.Render(due.Item.Title) + "  " + ui.StatusText(string(due.Status))
		}
		b.WriteString(cursor + title + "\n")
	}

	b.WriteString("\n" + ui.Muted.Render(m.lastLog) + "\n")
	b.WriteString(ui.Dim.Render("j/k move · d done · s skip · u undo · r reload · q quit"))
	return b.String()
}

// RunToday starts the interactive today board.
func RunToday(ctx context.Context, svc *engine.Service) error {
	p := tea.NewProgram(newTodayModel(ctx, svc), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
