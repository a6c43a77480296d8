package viewmodel

import (
	"context"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type ConfirmState int

const (
	Idle ConfirmState = iota
	Confirming
	Executing
)

func (s ConfirmState) String() string {
	switch s {
	case Confirming:
		return "confirming"
	case Executing:
		return "executing"
	default:
		return "idle"
	}
}

// PendingDeletion describes the delete waiting for the user's answer.
type PendingDeletion[T any] struct {
	// Item is nil for a bulk deletion.
	Item      *T
	IDs       []string
	Name      string
	TypeLabel string
	Bulk      bool

	token int
}

// BulkDeleteResult lists what a bulk delete did. Deletion stops at the first
// failure, the ids after it are skipped.
type BulkDeleteResult struct {
	Deleted []string
	Failed  string
	Err     error
	Skipped []string
}

func (r BulkDeleteResult) Ok() bool {
	return r.Err == nil
}

// DeleteItem asks for confirmation before deleting item. Nothing is deleted
// until ExecuteDelete is called. A pending request is replaced.
func (m *Model[T, C, U]) DeleteItem(item T) {
	m.lastToken++
	m.pending = &PendingDeletion[T]{
		Item:      &item,
		IDs:       []string{item.GetId()},
		Name:      m.opts.DisplayName(item),
		TypeLabel: m.opts.TypeLabel,
		token:     m.lastToken,
	}
	m.confirm = Confirming
}

// RequestDeleteSelected asks for confirmation before deleting the selection.
func (m *Model[T, C, U]) RequestDeleteSelected() {
	if m.selection.Len() == 0 {
		return
	}
	m.lastToken++
	m.pending = &PendingDeletion[T]{
		IDs:       m.selection.IDs(),
		TypeLabel: m.opts.TypeLabel,
		Bulk:      true,
		token:     m.lastToken,
	}
	m.confirm = Confirming
}

func (m *Model[T, C, U]) CancelDelete() {
	if m.confirm != Confirming {
		return
	}
	m.pending = nil
	m.confirm = Idle
}

// ExecuteDelete runs the confirmed deletion.
func (m *Model[T, C, U]) ExecuteDelete() tea.Cmd {
	if m.confirm != Confirming || m.pending == nil {
		return nil
	}
	m.confirm = Executing

	p := m.pending
	if p.Bulk {
		return m.bulkDelete(p.token, p.IDs)
	}

	owner, service, timeout, token, id := m.id, m.service, m.opts.RequestTimeout, p.token, p.IDs[0]
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		err := service.Delete(ctx, id)
		return deletedMsg{owner: owner, token: token, id: id, err: err}
	}
}

// DeleteSelectedItems deletes the selection without asking.
func (m *Model[T, C, U]) DeleteSelectedItems() tea.Cmd {
	if m.selection.Len() == 0 {
		return nil
	}
	return m.bulkDelete(0, m.selection.IDs())
}

func (m *Model[T, C, U]) bulkDelete(token int, ids []string) tea.Cmd {
	owner, service, timeout := m.id, m.service, m.opts.RequestTimeout
	return func() tea.Msg {
		result := BulkDeleteResult{}
		for i, id := range ids {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			err := service.Delete(ctx, id)
			cancel()

			if err != nil {
				result.Failed = id
				result.Err = err
				result.Skipped = append([]string{}, ids[i+1:]...)
				break
			}
			result.Deleted = append(result.Deleted, id)
		}
		return bulkDeletedMsg{owner: owner, token: token, result: result}
	}
}

func (m *Model[T, C, U]) applyDelete(msg deletedMsg) tea.Cmd {
	if !m.mounted.Load() {
		return nil
	}

	name, typeLabel := msg.id, m.opts.TypeLabel
	current := m.pending != nil && m.pending.token == msg.token
	if current {
		name = m.pending.Name
		m.pending = nil
		m.confirm = Idle
	}

	t := m.opts.Translator
	if msg.err != nil {
		log.Error("Delete failed", "resource", m.opts.Resource, "id", msg.id, "err", msg.err)
		return m.opts.Notifier.Error(t.T("crud.delete_failed", typeLabel), msg.err.Error())
	}

	log.Info("Deleted", "resource", m.opts.Resource, "id", msg.id)
	m.selection.remove(msg.id)
	return tea.Batch(
		m.opts.Notifier.Success(t.T("crud.deleted", typeLabel), t.T("crud.deleted_named", typeLabel, name)),
		m.List(),
	)
}

func (m *Model[T, C, U]) applyBulkDelete(msg bulkDeletedMsg) tea.Cmd {
	if !m.mounted.Load() {
		return nil
	}

	m.selection.Clear()
	if msg.token != 0 && m.pending != nil && m.pending.token == msg.token {
		m.pending = nil
		m.confirm = Idle
	}

	r, t := msg.result, m.opts.Translator
	label := m.opts.Resource
	var notify tea.Cmd
	if r.Ok() {
		log.Info("Bulk deleted", "resource", label, "count", len(r.Deleted))
		notify = m.opts.Notifier.Success(t.T("crud.bulk_deleted", strconv.Itoa(len(r.Deleted)), label), "")
	} else {
		log.Error("Bulk delete stopped", "resource", label, "deleted", len(r.Deleted),
			"failed", r.Failed, "skipped", len(r.Skipped), "err", r.Err)
		notify = m.opts.Notifier.Error(
			t.T("crud.bulk_partial", strconv.Itoa(len(r.Deleted)), r.Failed, strconv.Itoa(len(r.Skipped))),
			r.Err.Error(),
		)
	}

	return tea.Batch(notify, m.List())
}

func (m *Model[T, C, U]) ConfirmState() ConfirmState {
	return m.confirm
}

// Pending returns the deletion waiting for confirmation, if any.
func (m *Model[T, C, U]) Pending() (PendingDeletion[T], bool) {
	if m.pending == nil {
		return PendingDeletion[T]{}, false
	}
	return *m.pending, true
}
