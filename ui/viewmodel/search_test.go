package viewmodel

import (
	"testing"
	"time"

	"admin-dash/data"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_DebounceCommitsOnlyTheLastKeystroke(t *testing.T) {
	svc := newFakeService(25)
	m := New[testItem, data.Payload, data.Payload](svc, testOptions(nil))
	drain(m, m.Init())
	drain(m, m.ChangePage(2))
	calls := len(svc.listCalls)

	first := m.HandleSearchChange("I")
	second := m.HandleSearchChange("It")
	last := m.HandleSearchChange("Item 2")

	assert.Equal(t, SearchState{DisplayValue: "Item 2", CommittedTerm: ""}, m.Search())

	drain(m, first)
	drain(m, second)
	assert.Len(t, svc.listCalls, calls)
	assert.Empty(t, m.Search().CommittedTerm)

	drain(m, last)

	require.Len(t, svc.listCalls, calls+1)
	params := svc.listCalls[calls]
	assert.Equal(t, "Item 2", params.String("search"))
	assert.Equal(t, 1, params.Page())
	assert.Equal(t, "Item 2", m.Search().CommittedTerm)
	assert.Equal(t, 1, m.Pagination().Page)
	assert.Equal(t, []string{"Item 20", "Item 21", "Item 22", "Item 23", "Item 24", "Item 25"}, itemNames(m.Items()))
}

func TestSearch_UnchangedTermDoesNotRefetch(t *testing.T) {
	svc := newFakeService(25)
	m := New[testItem, data.Payload, data.Payload](svc, testOptions(nil))
	drain(m, m.Init())
	drain(m, m.HandleSearchChange("Item 1"))
	calls := len(svc.listCalls)

	drain(m, m.HandleSearchChange("Item 1"))

	assert.Len(t, svc.listCalls, calls)
}

func TestSearch_DefaultDebounce(t *testing.T) {
	opts := testOptions(nil)
	opts.Debounce = 0
	m := New[testItem, data.Payload, data.Payload](newFakeService(1), opts)

	assert.Equal(t, 300*time.Millisecond, m.Options().Debounce)
}

func TestSearch_IgnoredAfterUnmount(t *testing.T) {
	svc := newFakeService(5)
	m := New[testItem, data.Payload, data.Payload](svc, testOptions(nil))
	drain(m, m.Init())
	calls := len(svc.listCalls)

	cmd := m.HandleSearchChange("Item")
	m.Unmount()
	drain(m, cmd)

	assert.Len(t, svc.listCalls, calls)
	assert.Empty(t, m.Search().CommittedTerm)
}

func TestSearch_RefocusCheckpoints(t *testing.T) {
	t.Run("focused input gets three refocus messages", func(t *testing.T) {
		m := New[testItem, data.Payload, data.Payload](newFakeService(5), testOptions(nil))
		drain(m, m.Init())

		m.SetSearchFocused(true)
		msgs := drain(m, m.Refresh())

		assert.Equal(t, 3, countRefocus(msgs))
	})

	t.Run("unfocused input is left alone", func(t *testing.T) {
		m := New[testItem, data.Payload, data.Payload](newFakeService(5), testOptions(nil))
		drain(m, m.Init())

		m.SetSearchFocused(false)
		msgs := drain(m, m.Refresh())

		assert.Zero(t, countRefocus(msgs))
	})

	t.Run("focus is sampled when the request starts", func(t *testing.T) {
		m := New[testItem, data.Payload, data.Payload](newFakeService(5), testOptions(nil))
		drain(m, m.Init())

		cmd := m.Refresh()
		m.SetSearchFocused(true)
		msgs := drain(m, cmd)

		assert.Zero(t, countRefocus(msgs))
	})

	t.Run("blurring during the request cancels the refocus", func(t *testing.T) {
		m := New[testItem, data.Payload, data.Payload](newFakeService(5), testOptions(nil))
		drain(m, m.Init())

		m.SetSearchFocused(true)
		cmd := m.Refresh()
		m.SetSearchFocused(false)
		msgs := drain(m, cmd)

		assert.Zero(t, countRefocus(msgs))
		assert.False(t, m.SearchFocused())
	})
}
