package section

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"admin-dash/constants"
	"admin-dash/context"
	"admin-dash/ui/form"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model holds what every resource section shares: the search bar, the modal
// form, the fetch task and the key bindings.
type Model struct {
	Id              int
	Ctx             *context.ProgramContext
	Spinner         spinner.Model
	IsSearching     bool
	SearchBar       textinput.Model
	Type            string
	SingularForm    string
	PluralForm      string
	Form            *form.Model
	Keys            KeyMap
	Help            help.Model
	Width           int
	Height          int
	LastFetchTaskId string
}

func NewModel(
	id int,
	ctx *context.ProgramContext,
	sType string,
	singular string,
	plural string,
) Model {
	search := textinput.New()
	search.Prompt = ctx.T("crud.search")
	search.CharLimit = 100

	m := Model{
		Id:           id,
		Type:         sType,
		Ctx:          ctx,
		Spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		SearchBar:    search,
		SingularForm: singular,
		PluralForm:   plural,
		Keys:         DefaultKeyMap(),
		Help:         help.New(),
	}

	return m
}

type Section interface {
	Identifier
	Component
}

type Identifier interface {
	GetId() int
	GetType() string
	Title() string
}

type Component interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Section, tea.Cmd)
	View() string
	// Unmount drops every pending response of the section.
	Unmount()
	SetDimensions(width int, height int)
	// IsCapturingInput reports whether keys are being typed into an input.
	IsCapturingInput() bool
}

func (m *Model) GetId() int {
	return m.Id
}

func (m *Model) GetType() string {
	return m.Type
}

func (m *Model) Title() string {
	return m.PluralForm
}

func (m *Model) SetDimensions(width int, height int) {
	m.Width = width
	m.Height = height
	m.Help.Width = width
	m.SearchBar.Width = max(width/3, 20)
	if m.Form != nil {
		m.Form.SetWidth(min(width-10, 60))
	}
}

func (m *Model) IsCapturingInput() bool {
	return m.IsSearching || m.Form != nil
}

// FocusSearch focuses the search bar. The returned command blinks the cursor.
func (m *Model) FocusSearch() tea.Cmd {
	m.IsSearching = true
	return m.SearchBar.Focus()
}

func (m *Model) BlurSearch() {
	m.IsSearching = false
	m.SearchBar.Blur()
}

// OpenForm shows a modal form owned by formId.
func (m *Model) OpenForm(formId int64, title string, fields []form.Field) {
	f := form.New(formId, title, fields, m.Ctx).WithSubject(m.SingularForm)
	if m.Width > 0 {
		f.SetWidth(min(m.Width-10, 60))
	}
	m.Form = &f
	m.BlurSearch()
}

func (m *Model) CloseForm() {
	m.Form = nil
}

// UpdateForm passes msg to the open form.
func (m *Model) UpdateForm(msg tea.Msg) tea.Cmd {
	if m.Form == nil {
		return nil
	}
	f, cmd := m.Form.Update(msg)
	m.Form = &f
	return cmd
}

// TrackFetch turns the loading flag of the view-model into a task shown by the
// shell: a task starts when loading begins and finishes when it ends.
func (m *Model) TrackFetch(loading bool, fetchErr string) tea.Cmd {
	if loading && m.LastFetchTaskId == "" {
		taskId := fmt.Sprintf("fetching_%s_%d_%s", m.Type, m.Id, time.Now().String())
		m.LastFetchTaskId = taskId
		if m.Ctx.StartTask == nil {
			return m.Spinner.Tick
		}
		return tea.Batch(m.Spinner.Tick, m.Ctx.StartTask(context.Task{
			Id:           taskId,
			StartText:    m.Ctx.T("crud.fetching", m.PluralForm),
			FinishedText: m.Ctx.T("crud.fetched", m.PluralForm),
			State:        context.TaskStart,
		}))
	}

	if !loading && m.LastFetchTaskId != "" {
		taskId := m.LastFetchTaskId
		m.LastFetchTaskId = ""

		var err error
		if fetchErr != "" {
			err = errors.New(fetchErr)
		}
		id, sType := m.Id, m.Type
		return func() tea.Msg {
			return constants.TaskFinishedMsg{
				SectionId:   id,
				SectionType: sType,
				TaskId:      taskId,
				Err:         err,
			}
		}
	}

	return nil
}

// UpdateSpinner advances the loading spinner while loading is true.
func (m *Model) UpdateSpinner(msg spinner.TickMsg, loading bool) tea.Cmd {
	if !loading {
		return nil
	}
	var cmd tea.Cmd
	m.Spinner, cmd = m.Spinner.Update(msg)
	return cmd
}

func (m *Model) SearchView() string {
	return m.SearchBar.View()
}

// ErrorView is shown in place of the list when nothing was ever loaded.
func (m *Model) ErrorView(err string) string {
	body := lipgloss.JoinVertical(
		lipgloss.Left,
		m.Ctx.Styles.Error.Render(err),
		"",
		m.Ctx.Styles.Faint.Render(m.Ctx.T("crud.retry")),
	)
	return m.Ctx.Styles.ErrorPanel.Render(body)
}

// ErrorBanner is shown above a list that is still displayed.
func (m *Model) ErrorBanner(err string) string {
	return m.Ctx.Styles.Error.Render("! "+err) + "  " + m.Ctx.Styles.Faint.Render(m.Ctx.T("crud.retry"))
}

func (m *Model) PromptView(prompt string) string {
	return m.Ctx.Styles.Prompt.Render(prompt)
}

func (m *Model) HelpView(keys help.KeyMap) string {
	return m.Help.View(keys)
}

// Align right-aligns lines for right-to-left languages.
func (m *Model) Align(s string) string {
	if !m.Ctx.IsRTL() || m.Width == 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = lipgloss.PlaceHorizontal(m.Width, lipgloss.Right, l)
	}
	return strings.Join(lines, "\n")
}
