package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Open        key.Binding
	Back        key.Binding
	Quit        key.Binding
	Reload      key.Binding
	Add         key.Binding
	Edit        key.Binding
	Delete      key.Binding
	Search      key.Binding
	UserPosts   key.Binding
	Filter      key.Binding
	ClearFilter key.Binding

	NextField key.Binding
	PrevField key.Binding
	Save      key.Binding
	Cancel    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Reload:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Add:         key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:        key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		UserPosts:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "posts")),
		Filter:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "next user")),
		ClearFilter: key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "all users")),

		NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (k keyMap) home() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Quit}
}

func (k keyMap) users() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Delete, k.Search, k.UserPosts, k.Reload, k.Back, k.Quit}
}

func (k keyMap) posts() []key.Binding {
	return []key.Binding{k.Open, k.Add, k.Edit, k.Delete, k.Search, k.Filter, k.ClearFilter, k.Reload, k.Back, k.Quit}
}

func (k keyMap) detail() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Delete, k.Back, k.Quit}
}

func (k keyMap) form() []key.Binding {
	return []key.Binding{k.NextField, k.PrevField, k.Save, k.Cancel}
}
