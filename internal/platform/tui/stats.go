package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/hextrap/internal/stats"
	"github.com/vovakirdan/hextrap/internal/storage"
)

// Stats screen layout constants
const (
	minWidthForPanel = 90 // Minimum width to show the record beside the table
	panelWidth       = 28
	maxHistoryRows   = 100
)

// Tabs of the history table.
const (
	tabRuns = iota
	tabLevels
	tabCount
)

var tabTitles = [tabCount]string{
	tabRuns:   "Best runs",
	tabLevels: "Recent levels",
}

// StatsKeyMap defines the key bindings for the stats screen.
type StatsKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Copy    key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k StatsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.Copy, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k StatsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Copy, k.Back, k.Quit},
	}
}

// DefaultStatsKeyMap returns default key bindings.
func DefaultStatsKeyMap() StatsKeyMap {
	return StatsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next table"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev table"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy json"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// StatsModel is the Bubble Tea model for the stats screen: the lifetime
// record next to the run history.
type StatsModel struct {
	record    stats.TotalGameStats
	history   *storage.Store
	player    string
	tab       int
	runs      []storage.Run
	levels    []storage.LevelResult
	loadErr   error
	table     table.Model
	help      help.Model
	keys      StatsKeyMap
	copyText  func(string) error
	status    string
	width     int
	height    int
	quitting  bool
	goingBack bool
	showPanel bool
}

// NewStatsModel creates the stats screen. history may be nil; recent
// levels are filtered by player unless it is empty.
func NewStatsModel(record stats.TotalGameStats, history *storage.Store, player string, width, height int) StatsModel {
	h := help.New()
	h.Width = width

	m := StatsModel{
		record:    record,
		history:   history,
		player:    player,
		keys:      DefaultStatsKeyMap(),
		help:      h,
		copyText:  clipboard.WriteAll,
		width:     width,
		height:    height,
		showPanel: width >= minWidthForPanel,
	}
	m.load()
	m.table = m.createTable()
	return m
}

// WithClipboard replaces the clipboard writer. A nil writer disables the
// copy binding, as on SSH sessions where the server clipboard is useless.
func (m StatsModel) WithClipboard(write func(string) error) StatsModel {
	m.copyText = write
	m.keys.Copy.SetEnabled(write != nil)
	return m
}

// load reads both history tables.
func (m *StatsModel) load() {
	m.runs, m.levels, m.loadErr = nil, nil, nil
	if m.history == nil {
		return
	}
	runs, err := m.history.TopRuns("", maxHistoryRows)
	if err != nil {
		m.loadErr = err
		return
	}
	levels, err := m.history.RecentLevelResults(m.player, maxHistoryRows)
	if err != nil {
		m.loadErr = err
		return
	}
	m.runs, m.levels = runs, levels
}

// createTable builds the table of the current tab.
func (m *StatsModel) createTable() table.Model {
	var columns []table.Column
	var rows []table.Row

	switch m.tab {
	case tabRuns:
		columns = []table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Board", Width: 9},
			{Title: "Player", Width: 12},
			{Title: "Level", Width: 6},
			{Title: "Taps", Width: 6},
			{Title: "Date", Width: 13},
		}
		rows = make([]table.Row, len(m.runs))
		for i, r := range m.runs {
			rows[i] = table.Row{
				fmt.Sprintf("#%d", i+1),
				r.Variant,
				r.Player,
				strconv.Itoa(r.LevelReached),
				strconv.Itoa(r.Taps),
				r.CreatedAt.Format("Jan 02 15:04"),
			}
		}
	case tabLevels:
		columns = []table.Column{
			{Title: "Board", Width: 9},
			{Title: "Level", Width: 6},
			{Title: "Outcome", Width: 8},
			{Title: "Taps", Width: 5},
			{Title: "Moves", Width: 6},
			{Title: "Time", Width: 7},
			{Title: "Date", Width: 13},
		}
		rows = make([]table.Row, len(m.levels))
		for i, r := range m.levels {
			rows[i] = table.Row{
				r.Variant,
				strconv.Itoa(r.Level),
				r.Outcome,
				strconv.Itoa(r.Taps),
				strconv.Itoa(r.Moves),
				fmt.Sprintf("%.1fs", r.Duration.Seconds()),
				r.CreatedAt.Format("Jan 02 15:04"),
			}
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("130")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Init initializes the stats model.
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the stats screen.
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % tabCount
			m.table = m.createTable()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.tab = (m.tab + tabCount - 1) % tabCount
			m.table = m.createTable()
			return m, nil

		case key.Matches(msg, m.keys.Copy):
			m.status = m.copyRecord()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showPanel = m.width >= minWidthForPanel
		m.table = m.createTable()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// copyRecord puts the record on the clipboard in its file format.
func (m StatsModel) copyRecord() string {
	if m.copyText == nil {
		return ""
	}
	data, err := stats.Encode(m.record)
	if err != nil {
		return "Copy failed: " + err.Error()
	}
	if err := m.copyText(string(data)); err != nil {
		return "Copy failed: " + err.Error()
	}
	return "Stats copied to clipboard"
}

// View renders the stats screen.
func (m StatsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("208"))
	b.WriteString(centerText(titleStyle.Render("STATISTICS"), m.width))
	b.WriteString("\n\n")

	history := m.renderHistory()
	if m.showPanel {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderRecord(), "  ", history))
	} else {
		b.WriteString(m.renderRecord())
		b.WriteString("\n")
		b.WriteString(history)
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status))
		b.WriteString("\n")
	}
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderRecord renders the lifetime counters in a bordered panel.
func (m StatsModel) renderRecord() string {
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(panelWidth).
		Padding(0, 1)
	label := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	value := lipgloss.NewStyle().Bold(true)

	lines := []struct {
		name string
		n    uint64
	}{
		{"Record level", m.record.RecordLevel},
		{"Games played", m.record.GamesPlayed},
		{"Tiles tapped", m.record.TilesTapped},
		{"Trapped", m.record.TigersTrapped},
		{"Escaped", m.record.TigersEscaped},
	}

	var sb strings.Builder
	sb.WriteString("Lifetime\n")
	sb.WriteString(strings.Repeat("-", panelWidth-4))
	for _, l := range lines {
		sb.WriteString("\n")
		sb.WriteString(label.Render(fmt.Sprintf("%-14s", l.name)))
		sb.WriteString(value.Render(strconv.FormatUint(l.n, 10)))
	}
	return panel.Render(sb.String())
}

// renderHistory renders the tab bar and the table or an empty message.
func (m StatsModel) renderHistory() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("130")).
		Padding(0, 1)

	tabs := make([]string, tabCount)
	for i, title := range tabTitles {
		if i == m.tab {
			tabs[i] = activeTabStyle.Render(title)
		} else {
			tabs[i] = tabStyle.Render(title)
		}
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(tabs, " "),
		box.Render(m.renderTableContent()),
	)
}

// renderTableContent renders the table or empty message.
func (m StatsModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(1, 2)

	switch {
	case m.history == nil:
		return emptyStyle.Render("History is not available.")
	case m.loadErr != nil:
		return emptyStyle.Render("Cannot read history:\n" + m.loadErr.Error())
	case len(m.table.Rows()) == 0:
		return emptyStyle.Render("Nothing recorded yet.\nPlay a game to fill this table!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m StatsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m StatsModel) IsQuitting() bool {
	return m.quitting
}

// RunStats runs the stats screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunStats(record stats.TotalGameStats, history *storage.Store, player string, width, height int) (goBack bool, err error) {
	model := NewStatsModel(record, history, player, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(StatsModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
