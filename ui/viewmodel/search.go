package viewmodel

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// Delays after a list response at which the search input is focused again. A
// response re-renders the table and the view may have moved focus to it.
var refocusCheckpoints = []time.Duration{
	0,
	10 * time.Millisecond,
	75 * time.Millisecond,
}

type SearchState struct {
	// DisplayValue is the last keystroke, shown in the input.
	DisplayValue string
	// CommittedTerm is the value that drives list requests.
	CommittedTerm string
}

func (m *Model[T, C, U]) Search() SearchState {
	return m.search
}

// HandleSearchChange records a keystroke. The term is committed once no other
// keystroke arrives within the debounce window.
func (m *Model[T, C, U]) HandleSearchChange(value string) tea.Cmd {
	m.search.DisplayValue = value
	m.searchSeq++

	owner, seq := m.id, m.searchSeq
	return tea.Tick(m.opts.Debounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{owner: owner, seq: seq, value: value}
	})
}

func (m *Model[T, C, U]) commitSearch(msg searchDebounceMsg) tea.Cmd {
	if msg.seq != m.searchSeq || !m.mounted.Load() {
		return nil
	}

	changed := msg.value != m.search.CommittedTerm || m.pagination.Page != 1
	m.pagination.Page = 1
	m.search.CommittedTerm = msg.value
	if !changed {
		return nil
	}

	log.Debug("Search committed", "resource", m.opts.Resource, "term", msg.value)
	return m.List()
}

// SetSearchFocused tells the view-model whether the search input has focus.
// It is sampled when a request starts. Blurring the input also cancels the
// refocus of a request that is still in flight.
func (m *Model[T, C, U]) SetSearchFocused(focused bool) {
	m.searchFocused = focused
	if !focused {
		m.refocus = false
	}
}

func (m *Model[T, C, U]) SearchFocused() bool {
	return m.searchFocused
}

func (m *Model[T, C, U]) refocusCmd() tea.Cmd {
	if !m.refocus {
		return nil
	}
	m.refocus = false

	owner := m.id
	cmds := make([]tea.Cmd, 0, len(refocusCheckpoints))
	for _, d := range refocusCheckpoints {
		if d == 0 {
			cmds = append(cmds, func() tea.Msg { return RefocusMsg{Owner: owner} })
			continue
		}
		cmds = append(cmds, tea.Tick(d, func(time.Time) tea.Msg { return RefocusMsg{Owner: owner} }))
	}
	return tea.Batch(cmds...)
}
