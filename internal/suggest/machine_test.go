package suggest

import (
	"math/rand"
	"testing"

	"github.com/ngmaloney/warehouse-map/internal/models"
	"github.com/ngmaloney/warehouse-map/internal/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hits = []models.GeocodeHit{
	{DisplayName: "Newark, Essex County, New Jersey, United States", Lat: 40.7357, Lon: -74.1724},
	{DisplayName: "Newark, Licking County, Ohio, United States", Lat: 40.0581, Lon: -82.4013},
	{DisplayName: "Newark, New Castle County, Delaware, United States", Lat: 39.6837, Lon: -75.7497},
}

// listing drives a fresh machine to Listing with hits
func listing(t *testing.T) Machine {
	t.Helper()
	m, eff := New().QueryChanged("Newark")
	sched, ok := eff.(ScheduleQuery)
	require.True(t, ok)
	m, eff = m.QueryDue(sched.Seq)
	fetch, ok := eff.(FetchSuggestions)
	require.True(t, ok)
	m = m.SuggestionsLoaded(fetch.Seq, hits)
	require.Equal(t, Listing, m.Phase)
	return m
}

func TestQueryChanged_ShortQueryStaysIdle(t *testing.T) {
	for _, q := range []string{"", "N", "NY", "  NY  ", "é1"} {
		m, eff := New().QueryChanged(q)
		assert.Nil(t, eff, "query %q", q)
		assert.Equal(t, Idle, m.Phase)
		assert.False(t, m.Visible())
	}
}

func TestQueryChanged_ShortQueryHidesList(t *testing.T) {
	m := listing(t)
	m, eff := m.QueryChanged("Ne")
	assert.Nil(t, eff)
	assert.Equal(t, Idle, m.Phase)
	assert.Empty(t, m.Items)
	assert.Equal(t, -1, m.Highlighted)
}

func TestQueryChanged_SchedulesDebouncedLookup(t *testing.T) {
	m, eff := New().QueryChanged("  Newark ")
	sched, ok := eff.(ScheduleQuery)
	require.True(t, ok)
	assert.Equal(t, "Newark", sched.Query)
	assert.Equal(t, DebounceDelay, sched.Delay)
	assert.Equal(t, m.Seq(), sched.Seq)

	m, eff = m.QueryDue(sched.Seq)
	fetch, ok := eff.(FetchSuggestions)
	require.True(t, ok)
	assert.Equal(t, Loading, m.Phase)
	assert.Equal(t, "Newark", fetch.Query)
	assert.Equal(t, 5, fetch.Limit)
}

func TestQueryDue_StaleIsIgnored(t *testing.T) {
	m, eff := New().QueryChanged("Newa")
	first := eff.(ScheduleQuery)
	m, _ = m.QueryChanged("Newar")

	m2, eff := m.QueryDue(first.Seq)
	assert.Nil(t, eff)
	assert.Equal(t, m, m2)
}

func TestSuggestionsLoaded_LastQueryWins(t *testing.T) {
	m, eff := New().QueryChanged("Newark")
	m, eff = m.QueryDue(eff.(ScheduleQuery).Seq)
	old := eff.(FetchSuggestions)

	// User keeps typing and a second lookup starts before the first returns
	m, eff = m.QueryChanged("Newark NJ")
	m, eff = m.QueryDue(eff.(ScheduleQuery).Seq)
	current := eff.(FetchSuggestions)

	m = m.SuggestionsLoaded(old.Seq, hits)
	assert.Equal(t, Loading, m.Phase)
	assert.Empty(t, m.Items)

	m = m.SuggestionsLoaded(current.Seq, hits[:1])
	assert.Equal(t, Listing, m.Phase)
	assert.Len(t, m.Items, 1)

	// A late response for the old query changes nothing
	again := m.SuggestionsLoaded(old.Seq, hits)
	assert.Equal(t, m, again)
}

func TestSuggestionsLoaded_EmptyGoesIdle(t *testing.T) {
	m, eff := New().QueryChanged("zzzzqqq")
	m, eff = m.QueryDue(eff.(ScheduleQuery).Seq)
	m = m.SuggestionsLoaded(eff.(FetchSuggestions).Seq, nil)
	assert.Equal(t, Idle, m.Phase)
	assert.False(t, m.Visible())
}

func TestArrows_MoveAndLabel(t *testing.T) {
	m := listing(t)

	m, label, ok := m.ArrowDown()
	require.True(t, ok)
	assert.Equal(t, 0, m.Highlighted)
	assert.Equal(t, Highlighted, m.Phase)
	assert.Equal(t, hits[0].DisplayName, label)

	m, label, _ = m.ArrowDown()
	assert.Equal(t, 1, m.Highlighted)
	assert.Equal(t, hits[1].DisplayName, label)

	m, _, _ = m.ArrowDown()
	m, label, _ = m.ArrowDown()
	assert.Equal(t, 2, m.Highlighted, "stays on the last item")
	assert.Equal(t, hits[2].DisplayName, label)

	m, _, _ = m.ArrowUp()
	m, _, _ = m.ArrowUp()
	m, label, _ = m.ArrowUp()
	assert.Equal(t, -1, m.Highlighted)
	assert.Equal(t, Listing, m.Phase)
	assert.Equal(t, "Newark", label, "back to the typed query")

	m, _, _ = m.ArrowUp()
	assert.Equal(t, -1, m.Highlighted, "stays at -1")
}

func TestArrows_HiddenListIsNoop(t *testing.T) {
	m := New()
	m2, _, ok := m.ArrowDown()
	assert.False(t, ok)
	assert.Equal(t, m, m2)
	_, _, ok = m.ArrowUp()
	assert.False(t, ok)
}

func TestArrows_IndexStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	m := listing(t)

	for i := 0; i < 1000; i++ {
		if rng.Intn(2) == 0 {
			m, _, _ = m.ArrowDown()
		} else {
			m, _, _ = m.ArrowUp()
		}
		require.GreaterOrEqual(t, m.Highlighted, -1)
		require.Less(t, m.Highlighted, len(m.Items))
	}
}

func TestEnter_CommitsHighlighted(t *testing.T) {
	m := listing(t)
	m, _, _ = m.ArrowDown()
	m, _, _ = m.ArrowDown()

	m, eff := m.Enter(hits[1].DisplayName)
	commit, ok := eff.(Commit)
	require.True(t, ok)
	assert.Equal(t, hits[1], commit.Hit)
	assert.Equal(t, Idle, m.Phase)
	assert.Equal(t, -1, m.Highlighted)
	assert.Empty(t, m.Items)
	assert.Equal(t, hits[1].DisplayName, m.Query)
}

func TestEnter_DirectSearch(t *testing.T) {
	m := listing(t)

	m, eff := m.Enter("  10001 ")
	search, ok := eff.(DirectSearch)
	require.True(t, ok)
	assert.Equal(t, "10001", search.Query)
	assert.Equal(t, 1, search.Limit)
	assert.Equal(t, Idle, m.Phase)
	assert.False(t, m.Visible())

	m, eff = m.DirectSearchLoaded(search.Seq, hits[:1])
	commit, ok := eff.(Commit)
	require.True(t, ok)
	assert.Equal(t, hits[0], commit.Hit)
	assert.Equal(t, Idle, m.Phase)
}

func TestEnter_EmptyInput(t *testing.T) {
	m, eff := New().Enter("   ")
	assert.Equal(t, ShowMessage{Kind: status.EmptyQuery}, eff)
	assert.Equal(t, Idle, m.Phase)
}

func TestDirectSearchLoaded_NotFoundLeavesState(t *testing.T) {
	m, eff := New().Enter("nowhere at all")
	search := eff.(DirectSearch)

	m2, eff := m.DirectSearchLoaded(search.Seq, []models.GeocodeHit{})
	assert.Equal(t, ShowMessage{Kind: status.NotFound}, eff)
	assert.Equal(t, m, m2)
}

func TestDirectSearchLoaded_Superseded(t *testing.T) {
	m, eff := New().Enter("first")
	first := eff.(DirectSearch)
	m, eff = m.Enter("second")
	second := eff.(DirectSearch)

	_, eff = m.DirectSearchLoaded(first.Seq, hits)
	assert.Nil(t, eff)

	_, eff = m.DirectSearchLoaded(second.Seq, hits[2:])
	assert.Equal(t, Commit{Hit: hits[2]}, eff)
}

func TestClick(t *testing.T) {
	m := listing(t)

	_, eff := m.Click(5)
	assert.Nil(t, eff)
	_, eff = m.Click(-1)
	assert.Nil(t, eff)

	m, eff = m.Click(2)
	assert.Equal(t, Commit{Hit: hits[2]}, eff)
	assert.Equal(t, Idle, m.Phase)
	assert.Equal(t, hits[2].DisplayName, m.Query)
}

func TestHide_DiscardsPendingSuggestions(t *testing.T) {
	m, eff := New().QueryChanged("Newark")
	m, eff = m.QueryDue(eff.(ScheduleQuery).Seq)
	fetch := eff.(FetchSuggestions)

	m = m.Hide()
	assert.Equal(t, Idle, m.Phase)

	m = m.SuggestionsLoaded(fetch.Seq, hits)
	assert.False(t, m.Visible())
}

func TestHide_KeepsDirectSearch(t *testing.T) {
	m, eff := New().Enter("Ponce")
	search := eff.(DirectSearch)

	m = m.Hide()
	_, eff = m.DirectSearchLoaded(search.Seq, hits[:1])
	assert.Equal(t, Commit{Hit: hits[0]}, eff)
}

func TestReset(t *testing.T) {
	m, eff := New().Enter("Ponce")
	search := eff.(DirectSearch)

	m = m.Reset()
	assert.Equal(t, "", m.Query)
	assert.Equal(t, Idle, m.Phase)

	_, eff = m.DirectSearchLoaded(search.Seq, hits[:1])
	assert.Nil(t, eff)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "highlighted", Highlighted.String())
	assert.Equal(t, "unknown", Phase(9).String())
}
