package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/hextrap/internal/core"
	_ "github.com/vovakirdan/hextrap/internal/games/hextrap"
	"github.com/vovakirdan/hextrap/internal/stats"
)

func updateMenu(t *testing.T, m MenuModel, msg tea.Msg) (MenuModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(MenuModel)
	require.True(t, ok)
	return model, cmd
}

func newTestMenu(variant string) MenuModel {
	return NewMenuModel(core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, stats.Default(), variant)
}

func TestMenuNewGameUsesSelectedVariant(t *testing.T) {
	m := newTestMenu("classic")

	m, _ = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, cmd := updateMenu(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, isQuit(cmd))
	assert.Equal(t, "wide", m.Selected())
	assert.False(t, m.WantsStats())
}

func TestMenuVariantWraps(t *testing.T) {
	m := newTestMenu("classic")

	m, _ = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = updateMenu(t, m, runeKey('n'))

	assert.Equal(t, m.variants[len(m.variants)-1].ID, m.Selected())
}

func TestMenuStatsAndQuit(t *testing.T) {
	m := newTestMenu("classic")
	m, _ = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := updateMenu(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, isQuit(cmd))
	assert.True(t, m.WantsStats())
	assert.Empty(t, m.Selected())

	m = newTestMenu("classic")
	m, _ = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, isQuit(cmd))
	assert.True(t, m.IsQuitting())
}

func TestMenuView(t *testing.T) {
	m := newTestMenu("wide")
	view := ansi.Strip(m.View())

	assert.Contains(t, view, "H E X T R A P")
	assert.Contains(t, view, "New Game   < Wide 11x12 >")
	assert.Contains(t, view, "Record level 1")
}

func TestMenuResize(t *testing.T) {
	m := newTestMenu("classic")
	m, _ = updateMenu(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 120, m.Config().ScreenW)
	assert.Equal(t, 40, m.Config().ScreenH)
}
