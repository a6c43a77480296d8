package viewmodel

import (
	"admin-dash/data"

	tea "github.com/charmbracelet/bubbletea"
)

const DefaultParentField = "parentId"

type TreeOptions[T any, C any] struct {
	Options[T]
	// ParentField is the payload key set to the parent id when a child is
	// created. Used when AttachParent is nil and C is data.Payload.
	ParentField string
	// AttachParent returns the create payload with the parent id set. A nil
	// parent means a root node.
	AttachParent func(C, *string) C
}

// TreeModel is a Model whose list is a forest fetched with GetDataTree. It
// adds the parent context of the create modal.
type TreeModel[T data.TreeItem[T], C any, U any] struct {
	*Model[T, C, U]

	attach func(C, *string) C
	parent *T
}

func NewTree[T data.TreeItem[T], C any, U any](service data.TreeService[T, C, U], opts TreeOptions[T, C]) *TreeModel[T, C, U] {
	if opts.ParentField == "" {
		opts.ParentField = DefaultParentField
	}
	attach := opts.AttachParent
	if attach == nil {
		attach = attachPayloadParent[C](opts.ParentField)
	}

	return &TreeModel[T, C, U]{
		Model:  newModel[T, C, U](service, opts.Options, service.GetDataTree),
		attach: attach,
	}
}

// ListTree fetches the forest and replaces the current one.
func (m *TreeModel[T, C, U]) ListTree() tea.Cmd {
	return m.List()
}

// OpenAddChild opens the create modal for a child of parent, or for a root
// node when parent is nil.
func (m *TreeModel[T, C, U]) OpenAddChild(parent *T) {
	m.Model.OpenCreate()
	if parent == nil {
		m.parent = nil
		return
	}
	p := *parent
	m.parent = &p
}

func (m *TreeModel[T, C, U]) OpenCreate() {
	m.OpenAddChild(nil)
}

func (m *TreeModel[T, C, U]) CloseCreate() {
	m.Model.CloseCreate()
	m.parent = nil
}

// Parent returns the node a new child will be added to.
func (m *TreeModel[T, C, U]) Parent() (T, bool) {
	if m.parent == nil {
		var zero T
		return zero, false
	}
	return *m.parent, true
}

func (m *TreeModel[T, C, U]) CreateItem(payload C) tea.Cmd {
	var parentId *string
	if m.parent != nil {
		id := (*m.parent).GetId()
		parentId = &id
	}
	return m.Model.CreateItem(m.attach(payload, parentId))
}

func (m *TreeModel[T, C, U]) Update(msg tea.Msg) tea.Cmd {
	cmd := m.Model.Update(msg)
	if !m.CreateOpen() {
		m.parent = nil
	}
	return cmd
}

// Walk visits nodes depth first. Children of a node are only visited when
// descend returns true for it.
func Walk[T data.TreeItem[T]](nodes []T, visit func(node T, depth int) (descend bool)) {
	walk(nodes, 0, visit)
}

func walk[T data.TreeItem[T]](nodes []T, depth int, visit func(T, int) bool) {
	for _, node := range nodes {
		if visit(node, depth) {
			walk(node.GetChildren(), depth+1, visit)
		}
	}
}

func attachPayloadParent[C any](field string) func(C, *string) C {
	return func(c C, parentId *string) C {
		payload, ok := any(c).(data.Payload)
		if !ok {
			return c
		}
		out := make(data.Payload, len(payload)+1)
		for k, v := range payload {
			out[k] = v
		}
		if parentId == nil {
			out[field] = nil
		} else {
			out[field] = *parentId
		}
		return any(out).(C)
	}
}
