// Package toast shows short lived notifications in the corner of the screen.
package toast

import (
	"strings"
	"time"

	"admin-dash/constants"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type Kind int

const (
	KindSuccess Kind = iota
	KindError
)

// Msg asks the shell to show a toast.
type Msg struct {
	Kind        Kind
	Title       string
	Description string
}

type clearMsg struct {
	id int
}

// Notifier sends toasts as messages. It satisfies viewmodel.Notifier.
type Notifier struct{}

func (Notifier) Success(title string, description string) tea.Cmd {
	return send(KindSuccess, title, description)
}

func (Notifier) Error(title string, description string) tea.Cmd {
	return send(KindError, title, description)
}

func send(kind Kind, title string, description string) tea.Cmd {
	return func() tea.Msg {
		return Msg{Kind: kind, Title: title, Description: description}
	}
}

type entry struct {
	id int
	Msg
}

type Styles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Title   lipgloss.Style
}

func DefaultStyles() Styles {
	base := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		MaxWidth(60)

	return Styles{
		Success: base.BorderForeground(lipgloss.Color("2")),
		Error:   base.BorderForeground(lipgloss.Color("1")),
		Title:   lipgloss.NewStyle().Bold(true),
	}
}

type Model struct {
	entries []entry
	lastId  int
	timeout time.Duration
	styles  Styles
}

func NewModel() Model {
	return Model{
		timeout: constants.ToastTimeout,
		styles:  DefaultStyles(),
	}
}

func (m Model) WithTimeout(d time.Duration) Model {
	m.timeout = d
	return m
}

func (m Model) WithStyles(s Styles) Model {
	m.styles = s
	return m
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case Msg:
		m.lastId++
		id := m.lastId
		m.entries = append(m.entries, entry{id: id, Msg: msg})
		return m, tea.Tick(m.timeout, func(time.Time) tea.Msg {
			return clearMsg{id: id}
		})

	case clearMsg:
		for i, e := range m.entries {
			if e.id == msg.id {
				m.entries = append(m.entries[:i:i], m.entries[i+1:]...)
				break
			}
		}
	}

	return m, nil
}

// Visible returns the toasts currently on screen, oldest first.
func (m Model) Visible() []Msg {
	out := make([]Msg, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.Msg)
	}
	return out
}

func (m Model) View() string {
	if len(m.entries) == 0 {
		return ""
	}

	boxes := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		style := m.styles.Success
		if e.Kind == KindError {
			style = m.styles.Error
		}

		content := m.styles.Title.Render(e.Title)
		if e.Description != "" {
			content = strings.Join([]string{content, e.Description}, "\n")
		}
		boxes = append(boxes, style.Render(content))
	}

	return lipgloss.JoinVertical(lipgloss.Right, boxes...)
}
