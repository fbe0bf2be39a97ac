package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/hextrap/internal/core"
	"github.com/vovakirdan/hextrap/internal/registry"
	"github.com/vovakirdan/hextrap/internal/stats"
)

// Main menu entries, top to bottom.
const (
	itemNewGame = iota
	itemStats
	itemQuit
	itemCount
)

var (
	menuTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("208"))
	menuSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))
	menuSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("229"))
	menuHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	variants []registry.GameInfo
	variant  int
	cursor   int
	width    int
	height   int
	config   core.RuntimeConfig
	record   stats.TotalGameStats
	keys     MenuKeyMap
	help     help.Model
	quitting bool
	selected string // variant ID, set when a game is started
	stats    bool   // set when the stats screen was requested
}

// NewMenuModel creates the main menu. variantID preselects a board; an
// unknown ID selects the first registered one.
func NewMenuModel(cfg core.RuntimeConfig, record stats.TotalGameStats, variantID string) MenuModel {
	variants := registry.List()
	m := MenuModel{
		variants: variants,
		width:    cfg.ScreenW,
		height:   cfg.ScreenH,
		config:   cfg,
		record:   record,
		keys:     DefaultMenuKeyMap(),
		help:     help.New(),
	}
	for i, v := range variants {
		if v.ID == variantID {
			m.variant = i
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < itemCount-1 {
			m.cursor++
		}

	case MenuActionLeft:
		m.cycleVariant(-1)

	case MenuActionRight:
		m.cycleVariant(1)

	case MenuActionNewGame:
		return m.startGame()

	case MenuActionStats:
		m.stats = true
		return m, tea.Quit

	case MenuActionSelect:
		switch m.cursor {
		case itemNewGame:
			return m.startGame()
		case itemStats:
			m.stats = true
			return m, tea.Quit
		case itemQuit:
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m *MenuModel) cycleVariant(delta int) {
	if len(m.variants) == 0 {
		return
	}
	m.variant = (m.variant + delta + len(m.variants)) % len(m.variants)
}

func (m MenuModel) startGame() (tea.Model, tea.Cmd) {
	if len(m.variants) == 0 {
		return m, nil
	}
	m.selected = m.variants[m.variant].ID
	return m, tea.Quit
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("H E X T R A P"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(menuSubtitleStyle.Render("Trap the rustacean before it reaches the edge"), m.width))
	b.WriteString("\n\n")

	board := "none"
	if len(m.variants) > 0 {
		board = m.variants[m.variant].Title
	}
	labels := [itemCount]string{
		itemNewGame: fmt.Sprintf("New Game   < %s >", board),
		itemStats:   "Stats",
		itemQuit:    "Quit",
	}
	for i, label := range labels {
		line := "  " + label
		if i == m.cursor {
			line = menuSelectedStyle.Render("> " + label)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	record := fmt.Sprintf("Record level %d   Trapped %d   Escaped %d",
		m.record.RecordLevel, m.record.TigersTrapped, m.record.TigersEscaped)
	b.WriteString(centerText(menuSubtitleStyle.Render(record), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(menuHelpStyle.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen variant ID, or "" if no game was started.
func (m MenuModel) Selected() string {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsStats returns true if the stats screen was requested.
func (m MenuModel) WantsStats() bool {
	return m.stats
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within width, measuring its printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Variant    string
	Config     core.RuntimeConfig
	WantsStats bool
	Quit       bool
}

// RunMenu runs the main menu and returns the player's choice.
func RunMenu(cfg core.RuntimeConfig, record stats.TotalGameStats, variantID string) (MenuResult, error) {
	model := NewMenuModel(cfg, record, variantID)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsStats():
		result.WantsStats = true
	case m.Selected() != "":
		result.Variant = m.Selected()
	default:
		result.Quit = true
	}
	return result, nil
}
