package viewmodel

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// CreateItem creates an item and refreshes the list. On failure the create
// modal stays open and the error reaches the form via MutationResultMsg.
func (m *Model[T, C, U]) CreateItem(data C) tea.Cmd {
	owner, service, timeout := m.id, m.service, m.opts.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		item, err := service.Create(ctx, data)
		if err != nil {
			return MutationResultMsg{Owner: owner, Op: OpCreate, Err: err}
		}
		return MutationResultMsg{Owner: owner, Op: OpCreate, Id: item.GetId()}
	}
}

func (m *Model[T, C, U]) UpdateItem(id string, data U) tea.Cmd {
	owner, service, timeout := m.id, m.service, m.opts.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		_, err := service.Update(ctx, id, data)
		return MutationResultMsg{Owner: owner, Op: OpUpdate, Id: id, Err: err}
	}
}

func (m *Model[T, C, U]) applyMutation(msg MutationResultMsg) tea.Cmd {
	if !m.mounted.Load() {
		return nil
	}
	if msg.Err != nil {
		log.Error("Mutation failed", "resource", m.opts.Resource, "op", msg.Op, "id", msg.Id, "err", msg.Err)
		return nil
	}

	var toastKey string
	switch msg.Op {
	case OpCreate:
		m.createOpen = false
		toastKey = "crud.created"
	case OpUpdate:
		m.editOpen = false
		m.editing = nil
		toastKey = "crud.updated"
	}

	log.Info("Mutation done", "resource", m.opts.Resource, "op", msg.Op, "id", msg.Id)
	return tea.Batch(
		m.List(),
		m.opts.Notifier.Success(m.opts.Translator.T(toastKey, m.opts.TypeLabel), ""),
	)
}

func (m *Model[T, C, U]) OpenCreate() {
	m.editOpen = false
	m.editing = nil
	m.createOpen = true
}

func (m *Model[T, C, U]) CloseCreate() {
	m.createOpen = false
}

func (m *Model[T, C, U]) OpenEdit(item T) {
	m.createOpen = false
	m.editing = &item
	m.editOpen = true
}

func (m *Model[T, C, U]) CloseEdit() {
	m.editOpen = false
	m.editing = nil
}

func (m *Model[T, C, U]) CreateOpen() bool {
	return m.createOpen
}

func (m *Model[T, C, U]) EditOpen() bool {
	return m.editOpen
}

// Editing returns the item of the open edit modal.
func (m *Model[T, C, U]) Editing() (T, bool) {
	if m.editing == nil {
		var zero T
		return zero, false
	}
	return *m.editing, true
}

func (m *Model[T, C, U]) ToggleItemSelection(id string) {
	m.selection.Toggle(id)
}

// ToggleAllItems selects every loaded item, or clears the selection when all
// of them are already selected.
func (m *Model[T, C, U]) ToggleAllItems() {
	ids := make([]string, 0, len(m.items))
	all := len(m.items) > 0
	for _, item := range m.items {
		ids = append(ids, item.GetId())
		if !m.selection.Has(item.GetId()) {
			all = false
		}
	}

	if all {
		m.selection.Clear()
		return
	}
	m.selection.Set(ids)
}

func (m *Model[T, C, U]) IsSelected(id string) bool {
	return m.selection.Has(id)
}

func (m *Model[T, C, U]) SelectedIDs() []string {
	return m.selection.IDs()
}

func (m *Model[T, C, U]) SelectedCount() int {
	return m.selection.Len()
}

func (m *Model[T, C, U]) ClearSelection() {
	m.selection.Clear()
}
