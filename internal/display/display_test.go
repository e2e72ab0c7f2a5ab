package display

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/recipebox/internal/domain"
)

func testModel(st *Status) (model, chan string) {
	ch := make(chan string, 4)
	m := newModel(func() Status { return *st }, ch, make(chan struct{}))
	return m, ch
}

func press(t *testing.T, m model, k tea.KeyType) model {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: k})
	return next.(model)
}

func TestShortcutsNeedKeyboardNavigation(t *testing.T) {
	st := &Status{}
	m, ch := testModel(st)

	press(t, m, tea.KeyCtrlR)
	assert.Empty(t, ch)

	st.KeyboardNavigation = true
	next, _ := m.Update(refreshMsg{})
	m = next.(model)

	m = press(t, m, tea.KeyCtrlR)
	m = press(t, m, tea.KeyCtrlT)
	m = press(t, m, tea.KeyEsc)
	require.Len(t, ch, 3)
	assert.Equal(t, ShortcutRandom, <-ch)
	assert.Equal(t, ShortcutTheme, <-ch)
	assert.Equal(t, ShortcutHome, <-ch)

	m = press(t, m, tea.KeyCtrlF)
	assert.Equal(t, searchPrefill, m.input.Value())
	assert.Empty(t, ch)
}

func TestEnterSubmitsInput(t *testing.T) {
	m, ch := testModel(&Status{})
	m.input.SetValue("search pie")
	m = press(t, m, tea.KeyEnter)
	assert.Equal(t, "search pie", <-ch)
	assert.Equal(t, "", m.input.Value())

	press(t, m, tea.KeyEnter)
	assert.Empty(t, ch)
}

func TestStatusBarShowsCountsAndTimers(t *testing.T) {
	st := Status{
		Favorites:   2,
		Shopping:    7,
		Collections: 1,
		Timers: []domain.Timer{
			{ID: 1, Label: "Eggs", Remaining: 125, State: domain.TimerRunning},
			{ID: 2, Label: "Rice", Remaining: 0, State: domain.TimerFinished},
			{ID: 3, Label: "Rest", Remaining: 60, State: domain.TimerPaused},
		},
	}
	bar := renderBar(st, 120)
	for _, want := range []string{"2", "7", "Eggs:", "02:05", "Rice: DONE", "01:00 paused"} {
		assert.Contains(t, bar, want)
	}
	assert.NotContains(t, bar, "^F")

	title := windowTitle(st)
	assert.Equal(t, "Recipe Box - Eggs: 02:05 | Rice: DONE!", title)
	assert.Equal(t, "Recipe Box", windowTitle(Status{}))
}

func TestRefreshReadsStatus(t *testing.T) {
	st := &Status{}
	m, _ := testModel(st)
	st.Favorites = 9
	next, _ := m.Update(refreshMsg{})
	assert.True(t, strings.Contains(next.View(), "9"))
}

func TestBannerCentres(t *testing.T) {
	out := RenderBanner(200)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], "      "))
}
