package ui

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/meteo/internal/favorites"
	"github.com/five82/meteo/internal/kv"
	"github.com/five82/meteo/internal/openweather"
	"github.com/five82/meteo/internal/prefs"
	"github.com/five82/meteo/internal/search"
	"github.com/five82/meteo/internal/state"
)

type fakeFetcher struct {
	mu    sync.Mutex
	temps map[string]float64
	calls []string
}

func (f *fakeFetcher) FetchCurrent(_ context.Context, city string) (*openweather.CurrentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, city)

	temp, ok := f.temps[city]
	if !ok {
		return nil, &openweather.StatusError{StatusCode: 404, Message: "city not found"}
	}
	return &openweather.CurrentResponse{
		Name: city,
		Main: openweather.MainReading{Temp: temp},
		Weather: []openweather.Condition{
			{ID: 800, Main: "Clear", Description: "clear sky", Icon: "01d"},
		},
	}, nil
}

type harness struct {
	fetcher   *fakeFetcher
	storage   *kv.Memory
	favs      *favorites.Store
	prefsPath string
}

func newHarness(t *testing.T, apiKey string) (*harness, Model) {
	t.Helper()

	logger, _ := test.NewNullLogger()
	log := logrus.NewEntry(logger)

	h := &harness{
		fetcher:   &fakeFetcher{temps: map[string]float64{"Rome": 21.6, "Oslo": -2.5, "Milan": 18.2}},
		storage:   kv.NewMemory(),
		prefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	}
	h.favs = favorites.New(h.storage, log)

	m := New(Options{
		Controller: search.New(h.fetcher, apiKey, log),
		Favorites:  h.favs,
		Log:        log,
		Units:      "metric",
		PrefsPath:  h.prefsPath,
	})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return h, m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func updateCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// collect runs cmd and flattens batches into the messages they produce.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func lookupResults(cmd tea.Cmd) []lookupResultMsg {
	var out []lookupResultMsg
	for _, msg := range collect(cmd) {
		if r, ok := msg.(lookupResultMsg); ok {
			out = append(out, r)
		}
	}
	return out
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// searchFor types city, presses enter and applies the lookup result.
func searchFor(t *testing.T, m Model, city string) Model {
	t.Helper()
	m.input.Reset()
	m = typeText(t, m, city)
	m, cmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	results := lookupResults(cmd)
	require.Len(t, results, 1)
	return update(t, m, results[0])
}

func TestSearch_EnterShowsResult(t *testing.T) {
	h, m := newHarness(t, "key")

	m = typeText(t, m, "  Rome ")
	m, cmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.display.Loading)
	assert.Contains(t, m.View(), "Looking up Rome")

	results := lookupResults(cmd)
	require.Len(t, results, 1)
	assert.Equal(t, []string{"Rome"}, h.fetcher.calls)

	m = update(t, m, results[0])
	assert.False(t, m.display.Loading)
	assert.Equal(t, "Rome", m.display.City)
	require.NotNil(t, m.display.Temperature)
	assert.Equal(t, 22, *m.display.Temperature)

	view := m.View()
	assert.Contains(t, view, "Rome")
	assert.Contains(t, view, "22°C")
	assert.Contains(t, view, "clear sky")
	assert.Contains(t, view, "https://openweathermap.org/img/wn/01d@2x.png")
}

func TestSearch_EmptyInputShowsErrorWithoutRequest(t *testing.T) {
	h, m := newHarness(t, "key")

	m = typeText(t, m, "   ")
	m, cmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Empty(t, h.fetcher.calls)
	assert.Equal(t, state.MsgEmptyInput, m.display.Err)
	assert.Contains(t, m.View(), state.MsgEmptyInput)
}

func TestSearch_MissingAPIKey(t *testing.T) {
	h, m := newHarness(t, "")

	m = typeText(t, m, "Rome")
	m, cmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Empty(t, h.fetcher.calls)
	assert.False(t, m.display.Loading)
	assert.Equal(t, state.MsgMissingAPIKey, m.display.Err)
}

func TestSearch_NotFoundShowsMessage(t *testing.T) {
	_, m := newHarness(t, "key")

	m = searchFor(t, m, "Atlantis")

	assert.Empty(t, m.display.City)
	assert.Equal(t, `city "Atlantis" not found`, m.display.Err)
	assert.Contains(t, m.View(), "Atlantis")
}

func TestSearch_LastResultWins(t *testing.T) {
	_, m := newHarness(t, "key")

	m = typeText(t, m, "Rome")
	m, first := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m.input.Reset()
	m = typeText(t, m, "Oslo")
	m, second := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	oslo := lookupResults(second)
	rome := lookupResults(first)
	require.Len(t, oslo, 1)
	require.Len(t, rome, 1)

	m = update(t, m, oslo[0])
	m = update(t, m, rome[0])

	assert.Equal(t, "Rome", m.display.City)
	require.NotNil(t, m.display.Temperature)
	assert.Equal(t, 22, *m.display.Temperature)
}

func TestToggleFavorite_FlipsMembership(t *testing.T) {
	h, m := newHarness(t, "key")
	m = searchFor(t, m, "Rome")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlF})
	assert.True(t, h.favs.Contains("Rome"))
	assert.True(t, m.display.IsFavorite(h.favs))
	assert.Contains(t, m.View(), "★ favorite")

	raw, ok, err := h.storage.Get(favorites.StorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `["Rome"]`, string(raw))

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlF})
	assert.False(t, h.favs.Contains("Rome"))
	assert.False(t, m.display.IsFavorite(h.favs))
}

func TestToggleFavorite_WithoutCityIsNoop(t *testing.T) {
	h, m := newHarness(t, "key")

	update(t, m, tea.KeyMsg{Type: tea.KeyCtrlF})

	assert.Equal(t, 0, h.favs.Len())
	_, ok, err := h.storage.Get(favorites.StorageKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestToggleFavorite_IgnoredWhileLoading(t *testing.T) {
	h, m := newHarness(t, "key")
	m = searchFor(t, m, "Rome")

	m.input.Reset()
	m = typeText(t, m, "Oslo")
	m, _ = updateCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.display.Loading)

	update(t, m, tea.KeyMsg{Type: tea.KeyCtrlF})
	assert.Equal(t, 0, h.favs.Len())
}

func TestFavoritesPane_EnterSearchesSelected(t *testing.T) {
	h, m := newHarness(t, "key")
	h.favs.Add("Rome")
	h.favs.Add("Oslo")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, focusFavorites, m.focus)

	m = update(t, m, runes("j"))
	assert.Equal(t, 1, m.selected)

	m, cmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "Oslo", m.input.Value())
	results := lookupResults(cmd)
	require.Len(t, results, 1)

	m = update(t, m, results[0])
	assert.Equal(t, "Oslo", m.display.City)
	require.NotNil(t, m.display.Temperature)
	assert.Equal(t, -2, *m.display.Temperature)
	assert.True(t, m.display.IsFavorite(h.favs))
}

func TestFavoritesPane_RemoveSelected(t *testing.T) {
	h, m := newHarness(t, "key")
	h.favs.Add("Rome")
	h.favs.Add("Oslo")
	m = searchFor(t, m, "Oslo")
	require.True(t, m.display.IsFavorite(h.favs))

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = update(t, m, runes("G"))
	m = update(t, m, runes("d"))

	assert.Equal(t, []string{"Rome"}, h.favs.List())
	assert.Equal(t, 0, m.selected)
	assert.False(t, m.display.IsFavorite(h.favs))
}

func TestFavoritesPane_QuitKeyOnlyOutsideInput(t *testing.T) {
	_, m := newHarness(t, "key")

	m = typeText(t, m, "q")
	assert.Equal(t, "q", m.input.Value())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	_, cmd := updateCmd(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestFavoritesChanged_ReloadsStore(t *testing.T) {
	h, m := newHarness(t, "key")

	logger, _ := test.NewNullLogger()
	other := favorites.New(h.storage, logrus.NewEntry(logger))
	other.Add("Milan")

	m = update(t, m, favoritesChangedMsg{})
	assert.Equal(t, []string{"Milan"}, h.favs.List())
	assert.Contains(t, m.View(), "Milan")
}

func TestCycleTheme_PersistsPrefs(t *testing.T) {
	h, m := newHarness(t, "key")
	require.Equal(t, "Nightfox", m.theme.Name)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Equal(t, "Kanagawa", m.theme.Name)
	assert.Equal(t, "Kanagawa", prefs.Load(h.prefsPath).Theme)
}

func TestResult_SavesLastCity(t *testing.T) {
	h, m := newHarness(t, "key")
	searchFor(t, m, "Milan")

	assert.Equal(t, "Milan", prefs.Load(h.prefsPath).LastCity)
}

func TestInit_RestoresLastCity(t *testing.T) {
	m := New(Options{LastCity: " Rome "})

	var found bool
	for _, msg := range collect(m.Init()) {
		if req, ok := msg.(searchCityMsg); ok {
			found = true
			assert.Equal(t, "Rome", req.city)
		}
	}
	assert.True(t, found)
}

func TestHelp_AnyKeyCloses(t *testing.T) {
	_, m := newHarness(t, "key")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyF1})
	require.True(t, m.showHelp)
	assert.Contains(t, m.View(), "Keyboard Shortcuts")

	m = update(t, m, runes("x"))
	assert.False(t, m.showHelp)
	assert.Empty(t, m.input.Value())
}

func TestTick_RefreshesDisplayedCity(t *testing.T) {
	h, m := newHarness(t, "key")
	m = searchFor(t, m, "Rome")
	h.fetcher.temps["Rome"] = 25.4

	m, cmd := updateCmd(t, m, tickMsg{})
	assert.False(t, m.display.Loading)

	var results []lookupResultMsg
	for _, msg := range collect(cmd) {
		if r, ok := msg.(lookupResultMsg); ok {
			results = append(results, r)
		}
	}
	require.Len(t, results, 1)

	m = update(t, m, results[0])
	require.NotNil(t, m.display.Temperature)
	assert.Equal(t, 25, *m.display.Temperature)
}

func TestWaitForFavoritesChange(t *testing.T) {
	assert.Nil(t, waitForFavoritesChange(nil))

	ch := make(chan struct{}, 1)
	ch <- struct{}{}
	assert.Equal(t, favoritesChangedMsg{}, waitForFavoritesChange(ch)())

	close(ch)
	assert.Nil(t, waitForFavoritesChange(ch)())
}

func TestFormatTemperature(t *testing.T) {
	assert.Equal(t, "22°C", formatTemperature(22, "metric"))
	assert.Equal(t, "72°F", formatTemperature(72, "imperial"))
	assert.Equal(t, "295K", formatTemperature(295, "standard"))
	assert.Equal(t, "-2°C", formatTemperature(-2, ""))
}

func TestThemeCycle(t *testing.T) {
	names := ThemeNames()
	require.Equal(t, []string{"Nightfox", "Kanagawa", "Slate"}, names)
	assert.Equal(t, "Kanagawa", NextTheme("Nightfox"))
	assert.Equal(t, "Nightfox", NextTheme("Slate"))
	assert.Equal(t, "Nightfox", NextTheme("unknown"))
	assert.Equal(t, "Nightfox", GetTheme("missing").Name)
}
