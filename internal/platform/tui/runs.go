package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// Runs board layout constants
const (
	boardChrome   = 8  // Title, tabs, borders and help bar
	boardMinRows  = 3  // Never shrink the table below this
	maxBoardRuns  = 50 // Rows loaded per view
	journalBudget = time.Second
)

// Journal is the part of the run store the terminal front end uses.
type Journal interface {
	SaveRun(ctx context.Context, run storage.Run) (storage.Run, error)
	TopRuns(ctx context.Context, limit int) ([]storage.Run, error)
	RecentRuns(ctx context.Context, limit int) ([]storage.Run, error)
}

// BoardView selects which list the runs board shows.
type BoardView int

const (
	BoardRecent BoardView = iota
	BoardTop
)

// String returns the tab title.
func (v BoardView) String() string {
	if v == BoardTop {
		return "Top"
	}
	return "Recent"
}

// BoardKeyMap defines the key bindings for the runs board.
type BoardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Switch key.Binding
	Back   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BoardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Switch, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k BoardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Switch, k.Back}}
}

// DefaultBoardKeyMap returns default key bindings.
func DefaultBoardKeyMap() BoardKeyMap {
	return BoardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Switch: key.NewBinding(
			key.WithKeys("left", "right", "h", "l"),
			key.WithHelp("left/right", "recent/top"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "tab"),
			key.WithHelp("esc/b", "back"),
		),
	}
}

// RunsBoard lists journaled runs in a table. It lives inside Model and is
// only drawn while the player is not in a run.
type RunsBoard struct {
	journal Journal
	view    BoardView
	runs    []storage.Run
	err     error
	table   table.Model
	help    help.Model
	keys    BoardKeyMap
	width   int
	height  int
}

// NewRunsBoard creates a board sized for a width x height terminal.
func NewRunsBoard(journal Journal, width, height int) RunsBoard {
	b := RunsBoard{
		journal: journal,
		keys:    DefaultBoardKeyMap(),
		help:    help.New(),
		width:   width,
		height:  height,
	}
	b.table = b.createTable()
	return b
}

// createTable creates a new table with columns fitted to the width.
func (b *RunsBoard) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Player", Width: 12},
		{Title: "Score", Width: 7},
		{Title: "Flaps", Width: 7},
		{Title: "Time", Width: 8},
		{Title: "Ended", Width: 14},
	}

	// Give spare width to the player column
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if spare := b.width - 6 - used; spare > 0 {
		columns[1].Width += min(spare, 12)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(b.height-boardChrome, boardMinRows)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Reload fetches the current view from the journal.
func (b *RunsBoard) Reload() {
	b.runs, b.err = nil, nil
	if b.journal != nil {
		ctx, cancel := context.WithTimeout(context.Background(), journalBudget)
		defer cancel()
		if b.view == BoardTop {
			b.runs, b.err = b.journal.TopRuns(ctx, maxBoardRuns)
		} else {
			b.runs, b.err = b.journal.RecentRuns(ctx, maxBoardRuns)
		}
	}
	b.updateTableRows()
}

// updateTableRows updates the table with the loaded runs.
func (b *RunsBoard) updateTableRows() {
	rows := make([]table.Row, len(b.runs))
	for i, r := range b.runs {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			r.Player,
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Flaps),
			formatTicks(r.Ticks),
			r.EndedAt.Format("Jan 02 15:04"),
		}
	}
	b.table.SetRows(rows)
	b.table.GotoTop()
}

// formatTicks renders a run length assuming the standard 60 ticks/s.
func formatTicks(ticks int64) string {
	d := time.Duration(ticks) * time.Second / 60
	return d.Round(100 * time.Millisecond).String()
}

// Resize refits the table to the terminal.
func (b *RunsBoard) Resize(width, height int) {
	b.width = width
	b.height = height
	b.table = b.createTable()
	b.updateTableRows()
	b.help.Width = width
}

// Update handles a key while the board is open. It returns true when the
// board should close.
func (b *RunsBoard) Update(msg tea.KeyMsg) (closed bool, cmd tea.Cmd) {
	switch {
	case key.Matches(msg, b.keys.Back):
		return true, nil
	case key.Matches(msg, b.keys.Switch):
		b.view = 1 - b.view
		b.Reload()
		return false, nil
	}
	b.table, cmd = b.table.Update(msg)
	return false, cmd
}

// View renders the board.
func (b RunsBoard) View() string {
	var sb strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	sb.WriteString(titleStyle.Render(centerText("RECENT RUNS", b.width)))
	sb.WriteString("\n\n")

	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	tabs := make([]string, 0, 2)
	for _, v := range []BoardView{BoardRecent, BoardTop} {
		if v == b.view {
			tabs = append(tabs, activeTabStyle.Render(v.String()))
		} else {
			tabs = append(tabs, tabStyle.Render(v.String()))
		}
	}
	sb.WriteString(centerText(strings.Join(tabs, " "), b.width))
	sb.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	sb.WriteString(tableStyle.Render(b.tableContent()))

	sb.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	sb.WriteString(helpStyle.Render(b.help.View(b.keys)))

	return sb.String()
}

// tableContent renders the table or an empty message.
func (b RunsBoard) tableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)
	switch {
	case b.journal == nil:
		return emptyStyle.Render("The run journal is not available.")
	case b.err != nil:
		return emptyStyle.Render("Could not load runs.")
	case len(b.runs) == 0:
		return emptyStyle.Render("No runs recorded yet.\nCrash into a pipe to log one!")
	}
	return b.table.View()
}

// centerText pads text so it sits in the middle of width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
