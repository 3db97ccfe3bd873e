package ui

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/five82/meteo/internal/favorites"
	"github.com/five82/meteo/internal/kv"
	"github.com/five82/meteo/internal/prefs"
	"github.com/five82/meteo/internal/search"
	"github.com/five82/meteo/internal/state"
)

// focusArea identifies which pane receives keys.
type focusArea int

const (
	focusInput focusArea = iota
	focusFavorites
)

// Options configures the UI.
type Options struct {
	Context      context.Context
	Controller   *search.Controller
	Favorites    *favorites.Store
	Log          *logrus.Entry
	Units        string
	ThemeName    string
	PrefsPath    string
	LastCity     string
	RefreshEvery time.Duration

	// FavoritesChanged receives a value whenever the stored favorites were
	// rewritten by someone else. Optional.
	FavoritesChanged <-chan struct{}
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx          context.Context
	controller   *search.Controller
	favs         *favorites.Store
	log          *logrus.Entry
	units        string
	prefsPath    string
	refreshEvery time.Duration
	changes      <-chan struct{}
	initialCity  string

	// UI state
	theme    Theme
	keys     keyMap
	width    int
	height   int
	ready    bool
	focus    focusArea
	showHelp bool

	input    textinput.Model
	spinner  spinner.Model
	selected int

	// Data state
	display     state.Display
	lastCity    string
	lastUpdated time.Time
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	log := opts.Log
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = logrus.NewEntry(discard)
	}

	favs := opts.Favorites
	if favs == nil {
		favs = favorites.New(kv.NewMemory(), log)
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	input := textinput.New()
	input.Placeholder = "City name"
	input.Prompt = "City › "
	input.CharLimit = 80
	input.Focus()

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))

	lastCity := strings.TrimSpace(opts.LastCity)

	return Model{
		ctx:          ctx,
		controller:   opts.Controller,
		favs:         favs,
		log:          log,
		units:        opts.Units,
		prefsPath:    opts.PrefsPath,
		refreshEvery: opts.RefreshEvery,
		changes:      opts.FavoritesChanged,
		initialCity:  lastCity,
		theme:        GetTheme(themeName),
		keys:         DefaultKeyMap(),
		input:        input,
		spinner:      spin,
		lastCity:     lastCity,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.initialCity != "" {
		cmds = append(cmds, searchCityCmd(m.initialCity))
	}
	if m.refreshEvery > 0 {
		cmds = append(cmds, tickCmd(m.refreshEvery))
	}
	if m.changes != nil {
		cmds = append(cmds, waitForFavoritesChange(m.changes))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.input.Width = max(m.weatherWidth()-len(m.input.Prompt)-6, 10)
		return m, nil

	case searchCityMsg:
		m.input.SetValue(msg.city)
		return m, m.startSearch(msg.city)

	case lookupResultMsg:
		m.applyResult(search.Result(msg))
		return m, nil

	case spinner.TickMsg:
		if !m.display.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tickMsg:
		return m.handleTick()

	case favoritesChangedMsg:
		m.favs.Load()
		m.clampSelection()
		return m, waitForFavoritesChange(m.changes)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// startSearch validates raw and, when a request is due, returns the command
// that performs it. The display is updated either way.
func (m *Model) startSearch(raw string) tea.Cmd {
	if m.controller == nil {
		return nil
	}
	d, q, ok := m.controller.Begin(m.display, raw)
	m.display = d
	if !ok {
		return nil
	}
	return tea.Batch(lookupCmd(m.ctx, m.controller, q), m.spinner.Tick)
}

// applyResult folds a finished lookup into the display. Results are applied
// in arrival order, so the last one to complete wins.
func (m *Model) applyResult(r search.Result) {
	m.display = search.Apply(m.display, r)
	if !m.display.HasResult() {
		return
	}
	m.lastUpdated = time.Now()
	if m.display.City != m.lastCity {
		m.lastCity = m.display.City
		m.savePrefs()
	}
}

// toggleFavorite flips membership of the displayed city. Nothing happens
// without a city or while a lookup is pending.
func (m *Model) toggleFavorite() {
	if m.display.City == "" || m.display.Loading {
		return
	}
	m.favs.Toggle(m.display.City)
	m.clampSelection()
}

func (m *Model) removeSelected() {
	list := m.favs.List()
	if m.selected < 0 || m.selected >= len(list) {
		return
	}
	m.favs.Remove(list[m.selected])
	m.clampSelection()
}

func (m *Model) selectedCity() (string, bool) {
	list := m.favs.List()
	if m.selected < 0 || m.selected >= len(list) {
		return "", false
	}
	return list[m.selected], true
}

func (m *Model) clampSelection() {
	n := m.favs.Len()
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.savePrefs()
}

func (m *Model) toggleFocus() {
	if m.focus == focusInput {
		m.focus = focusFavorites
		m.input.Blur()
		m.clampSelection()
		return
	}
	m.focus = focusInput
	m.input.Focus()
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, LastCity: m.lastCity}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.log.WithError(err).Warn("save prefs failed")
	}
}

// handleTick refreshes the displayed city without entering the loading
// state, so the current reading stays on screen until the new one lands.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd(m.refreshEvery)}
	if m.controller != nil && m.display.HasResult() {
		cmds = append(cmds, lookupCmd(m.ctx, m.controller, search.Query{City: m.display.City}))
	}
	return m, tea.Batch(cmds...)
}

// Messages

type tickMsg time.Time

type lookupResultMsg search.Result

type searchCityMsg struct {
	city string
}

type favoritesChangedMsg struct{}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func lookupCmd(ctx context.Context, c *search.Controller, q search.Query) tea.Cmd {
	return func() tea.Msg {
		return lookupResultMsg(c.Fetch(ctx, q))
	}
}

func searchCityCmd(city string) tea.Cmd {
	return func() tea.Msg {
		return searchCityMsg{city: city}
	}
}

func waitForFavoritesChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return favoritesChangedMsg{}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	_, err := p.Run()
	return err
}
