// Package treesection renders a hierarchical resource as a collapsible tree
// backed by a viewmodel.TreeModel.
package treesection

import (
	"strconv"
	"strings"

	"admin-dash/config"
	"admin-dash/context"
	"admin-dash/data"
	"admin-dash/ui/form"
	"admin-dash/ui/section"
	"admin-dash/ui/viewmodel"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"
)

const SectionType = "tree"

type Config[T data.TreeItem[T]] struct {
	Resource    config.ConfigResource
	Singular    string
	Plural      string
	Label       func(T) string
	Fields      func(item *T) []form.Field
	DisplayName func(T) string
	ParentField string
}

// Row is one visible line of the tree.
type Row[T any] struct {
	Node        T
	Depth       int
	HasChildren bool
	Expanded    bool
}

// Flatten lists the visible nodes: roots, and the children of expanded nodes.
func Flatten[T data.TreeItem[T]](forest []T, expanded map[string]bool) []Row[T] {
	rows := []Row[T]{}
	viewmodel.Walk(forest, func(node T, depth int) bool {
		open := expanded[node.GetId()]
		rows = append(rows, Row[T]{
			Node:        node,
			Depth:       depth,
			HasChildren: len(node.GetChildren()) > 0,
			Expanded:    open,
		})
		return open
	})
	return rows
}

type Model[T data.TreeItem[T]] struct {
	section.Model
	vm       *viewmodel.TreeModel[T, data.Payload, data.Payload]
	cfg      Config[T]
	expanded map[string]bool
	cursor   int
	rows     []Row[T]
}

func NewModel[T data.TreeItem[T]](
	id int,
	ctx *context.ProgramContext,
	service data.TreeService[T, data.Payload, data.Payload],
	cfg Config[T],
) *Model[T] {
	m := &Model[T]{cfg: cfg, expanded: map[string]bool{}}
	m.Model = section.NewModel(id, ctx, SectionType, cfg.Singular, cfg.Plural)
	m.vm = viewmodel.NewTree(service, viewmodel.TreeOptions[T, data.Payload]{
		Options:     section.ViewModelOptions(ctx, cfg.Resource, cfg.Singular, cfg.DisplayName),
		ParentField: cfg.ParentField,
	})
	return m
}

func (m *Model[T]) ViewModel() *viewmodel.TreeModel[T, data.Payload, data.Payload] {
	return m.vm
}

func (m *Model[T]) Init() tea.Cmd {
	cmd := m.vm.Init()
	return tea.Batch(cmd, m.sync())
}

func (m *Model[T]) Unmount() {
	m.vm.Unmount()
	m.CloseForm()
	m.BlurSearch()
}

func (m *Model[T]) Expanded(id string) bool {
	return m.expanded[id]
}

func (m *Model[T]) Rows() []Row[T] {
	return m.rows
}

func (m *Model[T]) Cursor() int {
	return m.cursor
}

func (m *Model[T]) Update(msg tea.Msg) (section.Section, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	case form.SubmitMsg:
		if msg.FormId != m.vm.Id() {
			break
		}
		if item, ok := m.vm.Editing(); ok && m.vm.EditOpen() {
			cmds = append(cmds, m.vm.UpdateItem(item.GetId(), msg.Values))
		} else if m.vm.CreateOpen() {
			if parent, ok := m.vm.Parent(); ok {
				m.expanded[parent.GetId()] = true
			}
			cmds = append(cmds, m.vm.CreateItem(msg.Values))
		}

	case form.CancelMsg:
		if msg.FormId != m.vm.Id() {
			break
		}
		m.vm.CloseCreate()
		m.vm.CloseEdit()
		m.CloseForm()

	case viewmodel.MutationResultMsg:
		if msg.Owner != m.vm.Id() {
			break
		}
		cmds = append(cmds, m.vm.Update(msg))
		if msg.Err != nil && m.Form != nil {
			m.Form.SetError(msg.Err)
		}
		if !m.vm.CreateOpen() && !m.vm.EditOpen() {
			m.CloseForm()
		}

	case viewmodel.RefocusMsg:
		if msg.Owner == m.vm.Id() && m.vm.SearchFocused() && m.Form == nil && m.vm.ConfirmState() == viewmodel.Idle {
			cmds = append(cmds, m.FocusSearch())
		}

	case spinner.TickMsg:
		cmds = append(cmds, m.UpdateSpinner(msg, m.vm.Loading()))

	default:
		cmds = append(cmds, m.vm.Update(msg))
	}

	cmds = append(cmds, m.sync())
	return m, tea.Batch(cmds...)
}

func (m *Model[T]) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.Form != nil {
		return m.UpdateForm(msg)
	}

	switch m.vm.ConfirmState() {
	case viewmodel.Confirming:
		if key.Matches(msg, m.Keys.Confirm) {
			return m.vm.ExecuteDelete()
		}
		m.vm.CancelDelete()
		return nil
	case viewmodel.Executing:
		return nil
	}

	if m.IsSearching {
		if key.Matches(msg, m.Keys.ExitSearch) {
			m.BlurSearch()
			m.vm.SetSearchFocused(false)
			return nil
		}
		before := m.SearchBar.Value()
		var cmd tea.Cmd
		m.SearchBar, cmd = m.SearchBar.Update(msg)
		if value := m.SearchBar.Value(); value != before {
			return tea.Batch(cmd, m.vm.HandleSearchChange(value))
		}
		return cmd
	}

	row, hasRow := m.current()
	p := m.vm.Pagination()
	switch {
	case key.Matches(msg, m.Keys.Up):
		m.cursor = max(m.cursor-1, 0)

	case key.Matches(msg, m.Keys.Down):
		m.cursor = min(m.cursor+1, max(len(m.rows)-1, 0))

	case key.Matches(msg, m.Keys.Expand):
		if hasRow && row.HasChildren {
			m.expanded[row.Node.GetId()] = true
		}

	case key.Matches(msg, m.Keys.Collapse):
		if hasRow && row.Expanded {
			delete(m.expanded, row.Node.GetId())
		}

	case key.Matches(msg, m.Keys.ExpandAll):
		viewmodel.Walk(m.vm.Items(), func(node T, _ int) bool {
			if len(node.GetChildren()) > 0 {
				m.expanded[node.GetId()] = true
			}
			return true
		})

	case key.Matches(msg, m.Keys.CollapseAll):
		m.expanded = map[string]bool{}

	case key.Matches(msg, m.Keys.Search):
		m.vm.SetSearchFocused(true)
		return m.FocusSearch()

	case key.Matches(msg, m.Keys.Refresh):
		return m.vm.ListTree()

	case key.Matches(msg, m.Keys.NextPage):
		if p.Page < p.PagesCount {
			return m.vm.ChangePage(p.Page + 1)
		}

	case key.Matches(msg, m.Keys.PrevPage):
		if p.Page > 1 {
			return m.vm.ChangePage(p.Page - 1)
		}

	case key.Matches(msg, m.Keys.Create):
		m.vm.OpenCreate()
		m.OpenForm(m.vm.Id(), m.Ctx.T("crud.create_title", m.SingularForm), m.cfg.Fields(nil))

	case key.Matches(msg, m.Keys.AddChild):
		if hasRow {
			parent := row.Node
			m.vm.OpenAddChild(&parent)
			title := m.Ctx.T("crud.add_child_title", m.SingularForm, m.vm.DisplayName(parent))
			m.OpenForm(m.vm.Id(), title, m.cfg.Fields(nil))
		}

	case key.Matches(msg, m.Keys.Edit):
		if hasRow {
			item := row.Node
			m.vm.OpenEdit(item)
			m.OpenForm(m.vm.Id(), m.Ctx.T("crud.edit_title", m.SingularForm), m.cfg.Fields(&item))
		}

	case key.Matches(msg, m.Keys.Delete):
		if hasRow {
			m.vm.DeleteItem(row.Node)
		}

	case key.Matches(msg, m.Keys.Help):
		m.Help.ShowAll = !m.Help.ShowAll
	}

	return nil
}

func (m *Model[T]) current() (Row[T], bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return Row[T]{}, false
	}
	return m.rows[m.cursor], true
}

func (m *Model[T]) sync() tea.Cmd {
	// keep the cursor on the same node when rows shift
	var currentId string
	if row, ok := m.current(); ok {
		currentId = row.Node.GetId()
	}

	m.rows = Flatten(m.vm.Items(), m.expanded)
	m.cursor = min(m.cursor, max(len(m.rows)-1, 0))
	for i, row := range m.rows {
		if row.Node.GetId() == currentId {
			m.cursor = i
			break
		}
	}

	return m.TrackFetch(m.vm.Loading(), m.vm.Err())
}

func (m *Model[T]) View() string {
	if m.Form != nil {
		return m.Align(m.Form.View())
	}

	styles := m.Ctx.Styles
	s := strings.Builder{}

	header := m.SearchView()
	if m.vm.Loading() {
		header += "  " + m.Spinner.View()
	}
	s.WriteString(header)
	s.WriteString("\n\n")

	switch {
	case !m.vm.Loaded() && m.vm.Err() != "":
		s.WriteString(m.ErrorView(m.vm.Err()))
	case !m.vm.Loaded():
		s.WriteString(m.Spinner.View() + " " + m.Ctx.T("app.loading"))
	default:
		if err := m.vm.Err(); err != "" {
			s.WriteString(m.ErrorBanner(err))
			s.WriteString("\n")
		}
		if len(m.rows) == 0 {
			s.WriteString(styles.Faint.Render(m.Ctx.T("crud.empty")))
		}
		for i, row := range m.rows {
			s.WriteString(m.rowView(row, i == m.cursor))
			s.WriteString("\n")
		}
		p := m.vm.Pagination()
		s.WriteString(styles.StatusBar.Render(m.Ctx.T(
			"crud.page",
			strconv.Itoa(p.Page),
			strconv.Itoa(max(p.PagesCount, 1)),
			strconv.Itoa(p.ItemsCount),
		)))
	}

	if prompt := m.promptView(); prompt != "" {
		s.WriteString("\n")
		s.WriteString(prompt)
	}

	s.WriteString("\n")
	s.WriteString(m.HelpView(section.TreeHelp{KeyMap: m.Keys}))

	return m.Align(s.String())
}

func (m *Model[T]) rowView(row Row[T], selected bool) string {
	marker := "  "
	switch {
	case row.HasChildren && row.Expanded:
		marker = "▾ "
	case row.HasChildren:
		marker = "▸ "
	}

	indent := strings.Repeat("  ", row.Depth)
	label := m.cfg.Label(row.Node)
	if m.Width > 0 {
		label = truncate.StringWithTail(label, uint(max(m.Width-len(indent)-4, 8)), "…")
	}

	line := m.Ctx.Styles.TreeBranch.Render(indent+marker) + label
	if selected {
		return m.Ctx.Styles.TableCursor.Render(indent + marker + label)
	}
	return line
}

func (m *Model[T]) promptView() string {
	pending, ok := m.vm.Pending()
	if !ok {
		return ""
	}
	if m.vm.ConfirmState() == viewmodel.Executing {
		return m.Ctx.Styles.Faint.Render(m.Ctx.T("crud.deleting"))
	}
	return m.PromptView(m.Ctx.T("crud.delete_confirm", pending.TypeLabel, pending.Name))
}
