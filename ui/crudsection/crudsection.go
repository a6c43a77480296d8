// Package crudsection renders a flat resource as a paged, searchable table
// backed by a viewmodel.Model.
package crudsection

import (
	"slices"
	"strconv"
	"strings"

	"admin-dash/config"
	"admin-dash/context"
	"admin-dash/data"
	"admin-dash/ui/form"
	"admin-dash/ui/section"
	"admin-dash/ui/viewmodel"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const SectionType = "crud"

var pageSizes = []int{10, 20, 50}

// Config describes how a resource is shown and edited.
type Config[T data.Item] struct {
	Resource    config.ConfigResource
	Singular    string
	Plural      string
	Columns     []table.Column
	Row         func(T) table.Row
	Fields      func(item *T) []form.Field
	DisplayName func(T) string
}

type Model[T data.Item] struct {
	section.Model
	vm        *viewmodel.Model[T, data.Payload, data.Payload]
	cfg       Config[T]
	table     table.Model
	paginator paginator.Model
}

func NewModel[T data.Item](
	id int,
	ctx *context.ProgramContext,
	service data.CrudService[T, data.Payload, data.Payload],
	cfg Config[T],
) *Model[T] {
	m := &Model[T]{cfg: cfg}
	m.Model = section.NewModel(id, ctx, SectionType, cfg.Singular, cfg.Plural)
	m.vm = viewmodel.New(service, section.ViewModelOptions(ctx, cfg.Resource, cfg.Singular, cfg.DisplayName))

	keys := table.DefaultKeyMap()
	keys.PageUp.SetEnabled(false)
	keys.PageDown.SetEnabled(false)
	keys.HalfPageUp.SetEnabled(false)
	keys.HalfPageDown.SetEnabled(false)

	styles := table.DefaultStyles()
	styles.Header = ctx.Styles.TableHeader
	styles.Selected = ctx.Styles.TableCursor

	m.table = table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithKeyMap(keys),
		table.WithStyles(styles),
		table.WithHeight(cfg.Resource.PageSize+1),
	)

	m.paginator = paginator.New()
	m.paginator.Type = paginator.Dots

	return m
}

func (m *Model[T]) ViewModel() *viewmodel.Model[T, data.Payload, data.Payload] {
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

func (m *Model[T]) SetDimensions(width int, height int) {
	m.Model.SetDimensions(width, height)
	m.table.SetWidth(width)
	m.table.SetHeight(max(min(height-8, m.vm.Pagination().PageSize+1), 3))
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

	p := m.vm.Pagination()
	switch {
	case key.Matches(msg, m.Keys.Search):
		m.vm.SetSearchFocused(true)
		return m.FocusSearch()

	case key.Matches(msg, m.Keys.Refresh):
		return m.vm.Refresh()

	case key.Matches(msg, m.Keys.NextPage):
		if p.Page < p.PagesCount {
			return m.vm.ChangePage(p.Page + 1)
		}

	case key.Matches(msg, m.Keys.PrevPage):
		if p.Page > 1 {
			return m.vm.ChangePage(p.Page - 1)
		}

	case key.Matches(msg, m.Keys.PageSize):
		next := pageSizes[(slices.Index(pageSizes, p.PageSize)+1)%len(pageSizes)]
		cmd := m.vm.ChangePageSize(next)
		m.SetDimensions(m.Width, m.Height)
		return cmd

	case key.Matches(msg, m.Keys.Create):
		m.vm.OpenCreate()
		m.OpenForm(m.vm.Id(), m.Ctx.T("crud.create_title", m.SingularForm), m.cfg.Fields(nil))

	case key.Matches(msg, m.Keys.Edit):
		if item, ok := m.current(); ok {
			m.vm.OpenEdit(item)
			m.OpenForm(m.vm.Id(), m.Ctx.T("crud.edit_title", m.SingularForm), m.cfg.Fields(&item))
		}

	case key.Matches(msg, m.Keys.Delete):
		if item, ok := m.current(); ok {
			m.vm.DeleteItem(item)
		}

	case key.Matches(msg, m.Keys.Select):
		if item, ok := m.current(); ok {
			m.vm.ToggleItemSelection(item.GetId())
		}

	case key.Matches(msg, m.Keys.SelectAll):
		m.vm.ToggleAllItems()

	case key.Matches(msg, m.Keys.DeleteSelected):
		m.vm.RequestDeleteSelected()

	case key.Matches(msg, m.Keys.Help):
		m.Help.ShowAll = !m.Help.ShowAll

	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return cmd
	}

	return nil
}

func (m *Model[T]) current() (T, bool) {
	items := m.vm.Items()
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(items) {
		var zero T
		return zero, false
	}
	return items[cursor], true
}

func (m *Model[T]) columns() []table.Column {
	return append([]table.Column{{Title: " ", Width: 3}}, m.cfg.Columns...)
}

// sync copies the view-model state into the table and paginator.
func (m *Model[T]) sync() tea.Cmd {
	items := m.vm.Items()
	rows := make([]table.Row, 0, len(items))
	for _, item := range items {
		mark := "[ ]"
		if m.vm.IsSelected(item.GetId()) {
			mark = "[x]"
		}
		rows = append(rows, append(table.Row{mark}, m.cfg.Row(item)...))
	}
	m.table.SetRows(rows)
	// SetCursor on an empty table leaves the cursor at -1
	if c := m.table.Cursor(); c < 0 || c >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}

	p := m.vm.Pagination()
	m.paginator.PerPage = max(p.PageSize, 1)
	m.paginator.TotalPages = max(p.PagesCount, 1)
	m.paginator.Page = min(max(p.Page-1, 0), m.paginator.TotalPages-1)

	return m.TrackFetch(m.vm.Loading(), m.vm.Err())
}

func (m *Model[T]) View() string {
	if m.Form != nil {
		return m.Align(m.Form.View())
	}

	styles := m.Ctx.Styles
	s := strings.Builder{}

	header := m.SearchView()
	if n := m.vm.SelectedCount(); n > 0 {
		header += "  " + styles.Selected.Render(m.Ctx.T("crud.selected", strconv.Itoa(n)))
	}
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
		if len(m.vm.Items()) == 0 {
			s.WriteString(styles.Faint.Render(m.Ctx.T("crud.empty")))
		} else {
			s.WriteString(m.table.View())
		}
		s.WriteString("\n")
		s.WriteString(m.footerView())
	}

	if prompt := m.promptView(); prompt != "" {
		s.WriteString("\n")
		s.WriteString(prompt)
	}

	s.WriteString("\n")
	s.WriteString(m.HelpView(section.TableHelp{KeyMap: m.Keys}))

	return m.Align(s.String())
}

func (m *Model[T]) footerView() string {
	p := m.vm.Pagination()
	text := m.Ctx.T("crud.page", strconv.Itoa(p.Page), strconv.Itoa(max(p.PagesCount, 1)), strconv.Itoa(p.ItemsCount))
	return lipgloss.JoinHorizontal(
		lipgloss.Center,
		m.paginator.View(),
		"  ",
		m.Ctx.Styles.StatusBar.Render(text),
	)
}

func (m *Model[T]) promptView() string {
	pending, ok := m.vm.Pending()
	if !ok {
		return ""
	}
	if m.vm.ConfirmState() == viewmodel.Executing {
		return m.Ctx.Styles.Faint.Render(m.Ctx.T("crud.deleting"))
	}
	if pending.Bulk {
		return m.PromptView(m.Ctx.T("crud.delete_many", strconv.Itoa(len(pending.IDs)), m.PluralForm))
	}
	return m.PromptView(m.Ctx.T("crud.delete_confirm", pending.TypeLabel, pending.Name))
}
