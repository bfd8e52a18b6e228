// Package suggest implements the address autocomplete state machine.
//
// The machine is a plain value. Every event method returns the next machine
// and, when the caller has work to do, an Effect describing it. Network
// results are tagged with the sequence number of the request that produced
// them, and a result whose sequence is no longer current is ignored, so only
// the most recently started query can change the list or commit a location.
package suggest

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ngmaloney/warehouse-map/internal/models"
	"github.com/ngmaloney/warehouse-map/internal/status"
)

const (
	// MinQueryLength is the shortest query that triggers suggestions
	MinQueryLength = 3

	// DebounceDelay is the quiet period after typing before a lookup
	DebounceDelay = 400 * time.Millisecond

	SuggestionLimit   = 5
	DirectSearchLimit = 1
)

// Phase of the suggestion list
type Phase int

const (
	Idle Phase = iota
	Loading
	Listing
	Highlighted
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Listing:
		return "listing"
	case Highlighted:
		return "highlighted"
	}
	return "unknown"
}

// Effect is work the caller performs on behalf of the machine
type Effect interface {
	isEffect()
}

// ScheduleQuery asks the caller to wait Delay and then call QueryDue(Seq)
type ScheduleQuery struct {
	Seq   uint64
	Query string
	Delay time.Duration
}

// FetchSuggestions asks for a geocode lookup whose result goes to
// SuggestionsLoaded(Seq, ...)
type FetchSuggestions struct {
	Seq   uint64
	Query string
	Limit int
}

// DirectSearch asks for a single-result lookup whose result goes to
// DirectSearchLoaded(Seq, ...)
type DirectSearch struct {
	Seq   uint64
	Query string
	Limit int
}

// Commit hands a chosen location to the selection pipeline. The input box
// should show Hit.DisplayName.
type Commit struct {
	Hit models.GeocodeHit
}

// ShowMessage asks the caller to display a status message
type ShowMessage struct {
	Kind status.Kind
}

func (ScheduleQuery) isEffect()    {}
func (FetchSuggestions) isEffect() {}
func (DirectSearch) isEffect()     {}
func (Commit) isEffect()           {}
func (ShowMessage) isEffect()      {}

// Machine is the autocomplete state. The zero value is not ready; use New.
type Machine struct {
	Phase       Phase
	Items       []models.GeocodeHit
	Highlighted int    // -1 when nothing is highlighted
	Query       string // last text typed by the user, trimmed

	seq       uint64 // current suggestion request
	searchSeq uint64 // current direct search
}

// New returns an idle machine
func New() Machine {
	return Machine{Phase: Idle, Highlighted: -1}
}

// Visible reports whether the list should be drawn
func (m Machine) Visible() bool {
	return (m.Phase == Listing || m.Phase == Highlighted) && len(m.Items) > 0
}

// Seq is the sequence number of the current suggestion request
func (m Machine) Seq() uint64 {
	return m.seq
}

// SearchSeq is the sequence number of the current direct search
func (m Machine) SearchSeq() uint64 {
	return m.searchSeq
}

func (m Machine) hide() Machine {
	m.Phase = Idle
	m.Items = nil
	m.Highlighted = -1
	return m
}

// QueryChanged handles an edit of the search box. Short queries hide the
// list immediately; longer ones are debounced.
func (m Machine) QueryChanged(text string) (Machine, Effect) {
	q := strings.TrimSpace(text)
	m.Query = q
	m.seq++
	m = m.hide()

	if utf8.RuneCountInString(q) < MinQueryLength {
		return m, nil
	}
	return m, ScheduleQuery{Seq: m.seq, Query: q, Delay: DebounceDelay}
}

// QueryDue fires when the debounce delay for seq has elapsed
func (m Machine) QueryDue(seq uint64) (Machine, Effect) {
	if seq != m.seq {
		return m, nil
	}
	m.Phase = Loading
	return m, FetchSuggestions{Seq: seq, Query: m.Query, Limit: SuggestionLimit}
}

// SuggestionsLoaded applies the result of a suggestion lookup
func (m Machine) SuggestionsLoaded(seq uint64, hits []models.GeocodeHit) Machine {
	if seq != m.seq || m.Phase != Loading {
		return m
	}
	if len(hits) == 0 {
		return m.hide()
	}
	m.Phase = Listing
	m.Items = hits
	m.Highlighted = -1
	return m
}

// ArrowDown moves the highlight one item down, stopping at the last item.
// It returns the text the input should display; ok is false when the list
// is hidden and nothing changed.
func (m Machine) ArrowDown() (next Machine, label string, ok bool) {
	if !m.Visible() {
		return m, "", false
	}
	m.Highlighted = min(m.Highlighted+1, len(m.Items)-1)
	return m.settle()
}

// ArrowUp moves the highlight one item up. At -1 the input shows the typed
// query again.
func (m Machine) ArrowUp() (next Machine, label string, ok bool) {
	if !m.Visible() {
		return m, "", false
	}
	m.Highlighted = max(m.Highlighted-1, -1)
	return m.settle()
}

func (m Machine) settle() (Machine, string, bool) {
	if m.Highlighted < 0 {
		m.Phase = Listing
		return m, m.Query, true
	}
	m.Phase = Highlighted
	return m, m.Items[m.Highlighted].DisplayName, true
}

// Enter commits the highlighted item, or else starts a direct single-result
// search for the raw input text.
func (m Machine) Enter(input string) (Machine, Effect) {
	if m.Visible() && m.Highlighted >= 0 {
		return m.commit(m.Items[m.Highlighted])
	}

	q := strings.TrimSpace(input)
	m.seq++
	m = m.hide()
	if q == "" {
		return m, ShowMessage{Kind: status.EmptyQuery}
	}

	m.Query = q
	m.searchSeq++
	return m, DirectSearch{Seq: m.searchSeq, Query: q, Limit: DirectSearchLimit}
}

// Click commits item i of the visible list
func (m Machine) Click(i int) (Machine, Effect) {
	if !m.Visible() || i < 0 || i >= len(m.Items) {
		return m, nil
	}
	return m.commit(m.Items[i])
}

// DirectSearchLoaded applies the result of a direct search
func (m Machine) DirectSearchLoaded(seq uint64, hits []models.GeocodeHit) (Machine, Effect) {
	if seq != m.searchSeq {
		return m, nil
	}
	if len(hits) == 0 {
		return m, ShowMessage{Kind: status.NotFound}
	}
	return m.commit(hits[0])
}

// Hide closes the list without committing, as for a click outside the
// input and the list. Pending suggestion lookups are discarded.
func (m Machine) Hide() Machine {
	m.seq++
	return m.hide()
}

// Reset discards everything, including a pending direct search
func (m Machine) Reset() Machine {
	m.seq++
	m.searchSeq++
	m.Query = ""
	return m.hide()
}

func (m Machine) commit(hit models.GeocodeHit) (Machine, Effect) {
	m.seq++
	m.searchSeq++
	m = m.hide()
	m.Query = hit.DisplayName
	return m, Commit{Hit: hit}
}
