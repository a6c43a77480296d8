package section

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyMap struct {
	Up             key.Binding
	Down           key.Binding
	NextPage       key.Binding
	PrevPage       key.Binding
	PageSize       key.Binding
	Search         key.Binding
	ExitSearch     key.Binding
	Create         key.Binding
	AddChild       key.Binding
	Edit           key.Binding
	Delete         key.Binding
	Select         key.Binding
	SelectAll      key.Binding
	DeleteSelected key.Binding
	Refresh        key.Binding
	Expand         key.Binding
	Collapse       key.Binding
	ExpandAll      key.Binding
	CollapseAll    key.Binding
	Confirm        key.Binding
	Help           key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "l", "pgdown"),
			key.WithHelp("→/l", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "h", "pgup"),
			key.WithHelp("←/h", "prev page"),
		),
		PageSize: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "page size"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		ExitSearch: key.NewBinding(
			key.WithKeys("esc", "enter"),
			key.WithHelp("esc", "done"),
		),
		Create: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new"),
		),
		AddChild: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "add child"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Select: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "select"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "select all"),
		),
		DeleteSelected: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete selected"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Expand: key.NewBinding(
			key.WithKeys("right", "l", "enter"),
			key.WithHelp("→/l", "expand"),
		),
		Collapse: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "collapse"),
		),
		ExpandAll: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "expand all"),
		),
		CollapseAll: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "collapse all"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
	}
}

// TableHelp is the help of a flat resource section.
type TableHelp struct {
	KeyMap
}

func (k TableHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Create, k.Edit, k.Delete, k.NextPage, k.PrevPage, k.Help}
}

func (k TableHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPage, k.PrevPage, k.PageSize},
		{k.Search, k.Refresh},
		{k.Create, k.Edit, k.Delete},
		{k.Select, k.SelectAll, k.DeleteSelected, k.Help},
	}
}

// TreeHelp is the help of a tree section.
type TreeHelp struct {
	KeyMap
}

func (k TreeHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Create, k.AddChild, k.Edit, k.Delete, k.Expand, k.Collapse, k.Help}
}

func (k TreeHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Expand, k.Collapse, k.ExpandAll, k.CollapseAll},
		{k.Search, k.Refresh},
		{k.Create, k.AddChild, k.Edit, k.Delete},
		{k.Help},
	}
}
