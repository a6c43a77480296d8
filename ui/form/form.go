// Package form is a small modal form of text inputs. Field rules use the
// go-playground/validator tag syntax.
package form

import (
	"errors"
	"strings"

	"admin-dash/data"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type Translator interface {
	T(key string, params ...string) string
}

type Field struct {
	Key         string
	Label       string
	Rules       string
	Value       string
	Placeholder string
	Secret      bool
}

// SubmitMsg carries the values of a valid form.
type SubmitMsg struct {
	FormId int64
	Values data.Payload
}

type CancelMsg struct {
	FormId int64
}

type KeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Cancel key.Binding
}

var DefaultKeyMap = KeyMap{
	Next:   key.NewBinding(key.WithKeys("tab", "down")),
	Prev:   key.NewBinding(key.WithKeys("shift+tab", "up")),
	Submit: key.NewBinding(key.WithKeys("enter")),
	Cancel: key.NewBinding(key.WithKeys("esc")),
}

type Model struct {
	id         int64
	title      string
	subject    string
	fields     []Field
	inputs     []textinput.Model
	focused    int
	errs       map[string]string
	err        string
	submitting bool
	keys       KeyMap
	translator Translator
	width      int
}

func New(id int64, title string, fields []Field, translator Translator) Model {
	m := Model{
		id:         id,
		title:      title,
		subject:    title,
		fields:     fields,
		errs:       map[string]string{},
		keys:       DefaultKeyMap,
		translator: translator,
		width:      40,
	}

	for _, f := range fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = f.Placeholder
		ti.SetValue(f.Value)
		ti.CharLimit = 255
		if f.Secret {
			ti.EchoMode = textinput.EchoPassword
		}
		m.inputs = append(m.inputs, ti)
	}
	if len(m.inputs) > 0 {
		m.inputs[0].Focus()
	}

	return m
}

// WithSubject names what the form edits ("user") in error messages.
func (m Model) WithSubject(subject string) Model {
	m.subject = subject
	return m
}

func (m Model) Id() int64 {
	return m.id
}

func (m Model) Submitting() bool {
	return m.submitting
}

// SetError shows err under the form and allows another submit.
func (m *Model) SetError(err error) {
	m.submitting = false
	if err == nil {
		m.err = ""
		return
	}
	if errors.Is(err, data.ErrConflict) {
		m.err = m.translator.T("form.conflict", m.subject)
		return
	}
	m.err = err.Error()
}

func (m *Model) SetWidth(w int) {
	m.width = w
	for i := range m.inputs {
		m.inputs[i].Width = w
	}
}

// Values returns the trimmed input values keyed by field.
func (m Model) Values() data.Payload {
	values := data.Payload{}
	for i, f := range m.fields {
		values[f.Key] = strings.TrimSpace(m.inputs[i].Value())
	}
	return values
}

// Validate checks every field and records the messages to show.
func (m *Model) Validate() bool {
	m.errs = map[string]string{}
	for i, f := range m.fields {
		if f.Rules == "" {
			continue
		}
		err := validate.Var(strings.TrimSpace(m.inputs[i].Value()), f.Rules)
		if err == nil {
			continue
		}

		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "required" {
			m.errs[f.Key] = m.translator.T("form.required", f.Label)
		} else {
			m.errs[f.Key] = m.translator.T("form.invalid", f.Label)
		}
	}
	return len(m.errs) == 0
}

func (m Model) FieldError(key string) string {
	return m.errs[key]
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.submitting {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Cancel):
		id := m.id
		return m, func() tea.Msg { return CancelMsg{FormId: id} }

	case key.Matches(keyMsg, m.keys.Next):
		m.focus(m.focused + 1)
		return m, nil

	case key.Matches(keyMsg, m.keys.Prev):
		m.focus(m.focused - 1)
		return m, nil

	case key.Matches(keyMsg, m.keys.Submit):
		if m.focused < len(m.inputs)-1 {
			m.focus(m.focused + 1)
			return m, nil
		}
		return m.submit()
	}

	if len(m.inputs) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m Model) submit() (Model, tea.Cmd) {
	if !m.Validate() {
		return m, nil
	}
	m.err = ""
	m.submitting = true

	id, values := m.id, m.Values()
	return m, func() tea.Msg { return SubmitMsg{FormId: id, Values: values} }
}

func (m *Model) focus(i int) {
	if len(m.inputs) == 0 {
		return
	}
	i = (i + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focused].Blur()
	m.focused = i
	m.inputs[m.focused].Focus()
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle = lipgloss.NewStyle().Faint(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle  = lipgloss.NewStyle().Faint(true).MarginTop(1)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
)

func (m Model) View() string {
	s := strings.Builder{}
	s.WriteString(titleStyle.Render(m.title))
	s.WriteString("\n")

	for i, f := range m.fields {
		label := f.Label
		if i == m.focused {
			label = "> " + label
		}
		s.WriteString(labelStyle.Render(label))
		s.WriteString("\n")
		s.WriteString(m.inputs[i].View())
		s.WriteString("\n")
		if e, ok := m.errs[f.Key]; ok {
			s.WriteString(errorStyle.Render(e))
			s.WriteString("\n")
		}
	}

	if m.err != "" {
		s.WriteString(errorStyle.Render(m.err))
		s.WriteString("\n")
	}
	if m.submitting {
		s.WriteString(hintStyle.Render(m.translator.T("form.saving")))
	} else {
		s.WriteString(hintStyle.Render(m.translator.T("form.submit_hint")))
	}

	return boxStyle.Width(m.width + 6).Render(s.String())
}
