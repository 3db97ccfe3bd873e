package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	minSplitWidth = 72
	appName       = "meteo"
)

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	weather := m.theme.Panel(m.focus == focusInput).
		Width(max(m.weatherWidth()-2, 10)).
		Render(m.renderWeather())
	favs := m.theme.Panel(m.focus == focusFavorites).
		Width(max(m.favoritesWidth()-2, 10)).
		Render(m.renderFavorites())

	if m.width >= minSplitWidth {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, weather, favs))
	} else {
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, weather, favs))
	}
	b.WriteString("\n")

	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) weatherWidth() int {
	if m.width < minSplitWidth {
		return m.width
	}
	return m.width * 2 / 3
}

func (m Model) favoritesWidth() int {
	if m.width < minSplitWidth {
		return m.width
	}
	return m.width - m.weatherWidth()
}

// renderHeader renders the status bar with the app name, theme and freshness.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{
		styles.Logo.Render(appName),
		bg.Render(m.theme.Name, styles.FaintText),
	}

	switch {
	case m.display.Loading:
		parts = append(parts, bg.Render("loading", styles.InfoText))
	case !m.lastUpdated.IsZero():
		parts = append(parts, bg.Render("updated "+m.lastUpdated.Format("15:04"), styles.MutedText))
	}
	if n := m.favs.Len(); n > 0 {
		parts = append(parts, bg.Render(fmt.Sprintf("%d favorites", n), styles.MutedText))
	}

	content := bg.Spaces(1) + bg.Join(parts, "  ")
	return bg.FillLine(content, m.width)
}

// renderWeather renders the city input and the current lookup state.
func (m Model) renderWeather() string {
	styles := m.theme.Styles()
	d := m.display

	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if d.Loading {
		query := strings.TrimSpace(m.input.Value())
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("Looking up %s...", query)))
		b.WriteString("\n")
	}

	if d.Err != "" {
		b.WriteString(styles.DangerText.Render(d.Err))
		b.WriteString("\n")
	}

	if d.Loading || d.City == "" || d.Temperature == nil {
		if d.Err == "" && !d.Loading {
			b.WriteString(styles.FaintText.Render("Type a city and press enter."))
			b.WriteString("\n")
		}
		return strings.TrimRight(b.String(), "\n")
	}

	if d.Err != "" {
		b.WriteString("\n")
	}

	title := d.City
	if d.Country != "" {
		title += ", " + d.Country
	}
	b.WriteString(styles.Text.Bold(true).Render(title))
	b.WriteString("  ")
	if d.IsFavorite(m.favs) {
		b.WriteString(styles.StarText.Render("★ favorite"))
	} else {
		b.WriteString(styles.FaintText.Render("☆ ctrl+f to save"))
	}
	b.WriteString("\n")

	b.WriteString(styles.Temperature.Render(formatTemperature(*d.Temperature, m.units)))
	b.WriteString("  ")
	b.WriteString(styles.Text.Render(d.Condition))
	b.WriteString("\n")

	if details := m.formatDetails(); details != "" {
		b.WriteString(styles.MutedText.Render(details))
		b.WriteString("\n")
	}
	if d.IconURL != "" {
		b.WriteString(styles.FaintText.Render(d.IconURL))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderFavorites renders the saved cities list.
func (m Model) renderFavorites() string {
	styles := m.theme.Styles()
	list := m.favs.List()

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(fmt.Sprintf("Favorites (%d)", len(list))))
	b.WriteString("\n")

	if len(list) == 0 {
		b.WriteString(styles.FaintText.Render("No favorites yet."))
		return b.String()
	}

	width := max(m.favoritesWidth()-6, 4)
	for i, city := range list {
		marker := "  "
		if city == m.display.City && !m.display.Loading {
			marker = "★ "
		}
		line := truncate(marker+city, width)
		if i == m.selected && m.focus == focusFavorites {
			b.WriteString(styles.Selected.Width(width).Render(line))
		} else {
			b.WriteString(styles.Text.Render(line))
		}
		if i < len(list)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderFooter renders the key hints for the focused pane.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()

	var hints []string
	if m.focus == focusFavorites {
		hints = []string{"enter show", "d remove", "j/k move", "esc input", "? help", "q quit"}
	} else {
		hints = []string{"enter search", "ctrl+f favorite", "tab favorites", "f1 help", "ctrl+c quit"}
	}
	return styles.Footer.Width(m.width).Render(strings.Join(hints, " · "))
}

func (m Model) formatDetails() string {
	d := m.display
	var parts []string
	if d.Humidity != nil {
		parts = append(parts, fmt.Sprintf("humidity %d%%", *d.Humidity))
	}
	if d.Pressure != nil {
		parts = append(parts, fmt.Sprintf("pressure %d hPa", *d.Pressure))
	}
	if d.WindSpeed != nil {
		parts = append(parts, fmt.Sprintf("wind %.1f %s", *d.WindSpeed, windUnit(m.units)))
	}
	return strings.Join(parts, " · ")
}

func formatTemperature(temp int, units string) string {
	return fmt.Sprintf("%d%s", temp, temperatureUnit(units))
}

func temperatureUnit(units string) string {
	switch strings.ToLower(strings.TrimSpace(units)) {
	case "imperial":
		return "°F"
	case "standard":
		return "K"
	default:
		return "°C"
	}
}

func windUnit(units string) string {
	if strings.EqualFold(strings.TrimSpace(units), "imperial") {
		return "mph"
	}
	return "m/s"
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
