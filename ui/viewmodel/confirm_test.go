package viewmodel

import (
	"testing"

	"admin-dash/data"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLoaded(t *testing.T, n int) (*Model[testItem, data.Payload, data.Payload], *fakeService, *recordingNotifier) {
	t.Helper()

	svc := newFakeService(n)
	notifier := &recordingNotifier{}
	m := New[testItem, data.Payload, data.Payload](svc, testOptions(notifier))
	drain(m, m.Init())
	require.Len(t, svc.listCalls, 1)
	return m, svc, notifier
}

func TestDelete_RequiresConfirmation(t *testing.T) {
	m, svc, notifier := setupLoaded(t, 5)
	item := m.Items()[1]

	m.DeleteItem(item)

	assert.Equal(t, Confirming, m.ConfirmState())
	pending, ok := m.Pending()
	require.True(t, ok)
	assert.Equal(t, "Item 02", pending.Name)
	assert.Equal(t, "item", pending.TypeLabel)
	assert.Empty(t, svc.deleted)

	m.CancelDelete()

	assert.Equal(t, Idle, m.ConfirmState())
	_, ok = m.Pending()
	assert.False(t, ok)
	assert.Empty(t, svc.deleted)
	assert.Empty(t, notifier.toasts)
	assert.Len(t, svc.listCalls, 1)
}

func TestDelete_ExecuteSucceeds(t *testing.T) {
	m, svc, notifier := setupLoaded(t, 5)
	m.ToggleItemSelection("2")
	m.DeleteItem(m.Items()[1])

	cmd := m.ExecuteDelete()
	assert.Equal(t, Executing, m.ConfirmState())
	drain(m, cmd)

	assert.Equal(t, []string{"2"}, svc.deleted)
	assert.Equal(t, Idle, m.ConfirmState())
	_, ok := m.Pending()
	assert.False(t, ok)
	assert.Len(t, svc.listCalls, 2)
	assert.Len(t, m.Items(), 4)
	assert.False(t, m.IsSelected("2"))
	require.Len(t, notifier.toasts, 1)
	assert.Equal(t, "success", notifier.toasts[0].kind)
	assert.Contains(t, notifier.toasts[0].description, "Item 02")
}

func TestDelete_FailureDoesNotRefresh(t *testing.T) {
	m, svc, notifier := setupLoaded(t, 5)
	svc.deleteErrs["3"] = errBoom
	m.DeleteItem(m.Items()[2])

	drain(m, m.ExecuteDelete())

	assert.Equal(t, Idle, m.ConfirmState())
	assert.Len(t, svc.listCalls, 1)
	assert.Len(t, m.Items(), 5)
	require.Len(t, notifier.toasts, 1)
	assert.Equal(t, "error", notifier.toasts[0].kind)
	assert.Equal(t, "boom", notifier.toasts[0].description)
}

func TestDelete_ExecuteWithoutRequestDoesNothing(t *testing.T) {
	m, svc, _ := setupLoaded(t, 5)

	assert.Nil(t, m.ExecuteDelete())
	assert.Empty(t, svc.deleted)
}

func TestDelete_LastRequestWins(t *testing.T) {
	m, svc, notifier := setupLoaded(t, 5)

	m.DeleteItem(m.Items()[0])
	m.DeleteItem(m.Items()[1])

	pending, ok := m.Pending()
	require.True(t, ok)
	assert.Equal(t, []string{"2"}, pending.IDs)

	// a new request arrives while the first one is executing
	cmd := m.ExecuteDelete()
	m.DeleteItem(m.Items()[3])
	drain(m, cmd)

	assert.Equal(t, []string{"2"}, svc.deleted)
	require.Len(t, notifier.toasts, 1)
	assert.Equal(t, Confirming, m.ConfirmState())
	pending, ok = m.Pending()
	require.True(t, ok)
	assert.Equal(t, "Item 04", pending.Name)
}

func TestDeleteSelectedItems_DeletesSequentiallyAndRefreshesOnce(t *testing.T) {
	m, svc, notifier := setupLoaded(t, 5)
	m.ToggleItemSelection("4")
	m.ToggleItemSelection("1")
	m.ToggleItemSelection("3")

	drain(m, m.DeleteSelectedItems())

	assert.Equal(t, []string{"4", "1", "3"}, svc.deleted)
	assert.Zero(t, m.SelectedCount())
	assert.Len(t, svc.listCalls, 2)
	assert.Equal(t, []string{"Item 02", "Item 05"}, itemNames(m.Items()))
	require.Len(t, notifier.toasts, 1)
	assert.Equal(t, "success", notifier.toasts[0].kind)
}

func TestDeleteSelectedItems_StopsAtFirstFailure(t *testing.T) {
	m, svc, notifier := setupLoaded(t, 5)
	svc.deleteErrs["2"] = errBoom
	m.ToggleItemSelection("1")
	m.ToggleItemSelection("2")
	m.ToggleItemSelection("3")

	cmd := m.DeleteSelectedItems()
	msg := cmd()
	result := msg.(bulkDeletedMsg).result
	drain(m, func() tea.Msg { return msg })

	assert.Equal(t, []string{"1"}, result.Deleted)
	assert.Equal(t, "2", result.Failed)
	assert.Equal(t, []string{"3"}, result.Skipped)
	assert.ErrorIs(t, result.Err, errBoom)

	assert.Equal(t, []string{"1"}, svc.deleted)
	assert.Zero(t, m.SelectedCount())
	assert.Len(t, svc.listCalls, 2)
	require.Len(t, notifier.toasts, 1)
	assert.Equal(t, "error", notifier.toasts[0].kind)
}

func TestDeleteSelectedItems_EmptySelection(t *testing.T) {
	m, _, _ := setupLoaded(t, 5)

	assert.Nil(t, m.DeleteSelectedItems())
	m.RequestDeleteSelected()
	assert.Equal(t, Idle, m.ConfirmState())
}

func TestRequestDeleteSelected_GoesThroughConfirmation(t *testing.T) {
	m, svc, _ := setupLoaded(t, 5)
	m.ToggleItemSelection("1")
	m.ToggleItemSelection("5")

	m.RequestDeleteSelected()

	pending, ok := m.Pending()
	require.True(t, ok)
	assert.True(t, pending.Bulk)
	assert.Nil(t, pending.Item)
	assert.Empty(t, svc.deleted)

	drain(m, m.ExecuteDelete())

	assert.Equal(t, []string{"1", "5"}, svc.deleted)
	assert.Equal(t, Idle, m.ConfirmState())
	assert.Zero(t, m.SelectedCount())
	assert.Len(t, svc.listCalls, 2)
}
