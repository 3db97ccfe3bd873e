package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		m.toggleFocus()
		return m, nil
	case key.Matches(msg, m.keys.ToggleFavorite):
		m.toggleFavorite()
		return m, nil
	}

	if m.focus == focusFavorites {
		return m.handleFavoritesKey(msg)
	}
	return m.handleInputKey(msg)
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		return m, m.startSearch(m.input.Value())
	case key.Matches(msg, m.keys.Escape):
		m.input.Reset()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleFavoritesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := m.favs.Len()

	switch {
	case key.Matches(msg, m.keys.Escape):
		m.toggleFocus()
	case key.Matches(msg, m.keys.QuitQ):
		return m, tea.Quit
	case key.Matches(msg, m.keys.HelpQ):
		m.showHelp = true
	case key.Matches(msg, m.keys.ThemeT):
		m.cycleTheme()
	case key.Matches(msg, m.keys.Down):
		if m.selected < count-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selected = max(count-1, 0)
	case key.Matches(msg, m.keys.Remove):
		m.removeSelected()
	case key.Matches(msg, m.keys.Open):
		city, ok := m.selectedCity()
		if !ok {
			return m, nil
		}
		m.input.SetValue(city)
		return m, m.startSearch(city)
	}

	return m, nil
}
