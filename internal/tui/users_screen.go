package tui

import (
	"errors"
	"fmt"
	"strconv"

	"crudconsole/internal/form"
	"crudconsole/internal/model"
	"crudconsole/internal/projection"
	"crudconsole/internal/route"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

// syncUsers rebuilds the table rows from the current projection.
func (m *appModel) syncUsers() {
	res := m.users.Rows()
	m.userRows = res.Rows
	rows := make([]table.Row, 0, len(res.Rows))
	for _, u := range res.Rows {
		rows = append(rows, table.Row{
			m.idCell(u.ID, u.IsLocal, m.users.Form().IsEditing(u.ID)),
			u.Name,
			u.Username,
			u.Email,
			strconv.Itoa(m.users.PostCount(u.ID)),
		})
	}
	m.usersTable.SetRows(rows)
	m.usersTable.SetCursor(clamp(m.usersTable.Cursor(), 0, len(rows)-1))
}

// idCell marks local rows with * and the row in edit mode with a pencil.
func (m appModel) idCell(id int, local, editing bool) string {
	s := strconv.Itoa(id)
	if local {
		s += "*"
	}
	if editing {
		s = "✎ " + s
	}
	return s
}

func (m appModel) selectedUser() (model.User, bool) {
	i := m.usersTable.Cursor()
	if i < 0 || i >= len(m.userRows) {
		return model.User{}, false
	}
	return m.userRows[i], true
}

func (m appModel) updateUsers(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if _, ok := m.users.PendingDelete(); ok {
		return m.updateConfirm(msg, (*appModel).confirmUserDelete, m.users.CancelDelete)
	}
	if m.form != nil {
		return m.updateUserForm(msg)
	}
	if m.searching {
		return m.updateSearch(msg, m.users.SetSearch, (*appModel).syncUsers)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case msg.String() == "esc" && m.hasNotice(screenUsers):
		m.users.Notices().DismissCurrent()
		return m, nil
	case key.Matches(msg, m.keys.Back):
		return m, m.navigate(route.Route{Kind: route.Home})
	case key.Matches(msg, m.keys.Reload):
		return m, tea.Batch(m.loadUsers(), m.spinner.Tick)
	}
	if m.users.Loading() || m.users.LoadError() != "" || m.busy {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Add):
		m.users.StartAdd()
		m.form = newUserForm("Add user", model.UserDraft{}, true)
		m.form.resize(m.width)
		m.resizeTables()
		m.syncUsers()
		return m, m.form.setFocus(0)
	case key.Matches(msg, m.keys.Edit):
		u, ok := m.selectedUser()
		if !ok || !m.users.StartEdit(u.ID) {
			return m, nil
		}
		m.form = newUserForm(fmt.Sprintf("Edit user #%d", u.ID), m.users.Form().Draft(), false)
		m.form.resize(m.width)
		m.resizeTables()
		m.syncUsers()
		return m, m.form.setFocus(0)
	case key.Matches(msg, m.keys.Delete):
		if u, ok := m.selectedUser(); ok && m.users.RequestDelete(u.ID) {
			m.confirmFocus = confirmFocusCancel
		}
		return m, nil
	case key.Matches(msg, m.keys.Search):
		return m, m.startSearch(m.users.Search())
	case key.Matches(msg, m.keys.UserPosts):
		if u, ok := m.selectedUser(); ok {
			return m, m.navigate(route.PostsOf(u.ID))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.usersTable, cmd = m.usersTable.Update(msg)
	return m, cmd
}

func (m appModel) updateUserForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.users.Cancel()
		m.closeForm()
		m.syncUsers()
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		return m, m.form.setFocus(m.form.focus + 1)
	case key.Matches(msg, m.keys.PrevField):
		return m, m.form.setFocus(m.form.focus - 1)
	case key.Matches(msg, m.keys.Save), msg.String() == "enter":
		return m.commitUser()
	}
	field, value, cmd := m.form.update(msg)
	if field != "" {
		if err := m.users.SetField(field, value); err != nil {
			m.log.Warn("set user field", "field", field, "err", err)
		}
	}
	return m, cmd
}

// commitUser validates the form locally and, if it passes, sends it.
func (m appModel) commitUser() (tea.Model, tea.Cmd) {
	mut, err := m.users.PlanCommit()
	if err != nil {
		var fe *form.FieldError
		if errors.As(err, &fe) {
			return m, nil
		}
		return m, m.noticeTimer(screenUsers)
	}
	m.busy = true
	return m, tea.Batch(m.executeUser(mut), m.spinner.Tick)
}

func (m *appModel) confirmUserDelete() tea.Cmd {
	mut, err := m.users.PlanDelete()
	if err != nil {
		m.log.Warn("plan delete", "err", err)
		return nil
	}
	m.busy = true
	return tea.Batch(m.executeUser(mut), m.spinner.Tick)
}

func (m *appModel) closeForm() {
	m.form = nil
	m.resizeTables()
}

func (m appModel) hasNotice(s screen) bool {
	_, ok := m.notifier(s).Current()
	return ok
}

func (m appModel) viewUsers() string {
	if s := m.viewLoadState(m.users.Loading() && !m.users.Loaded(), m.users.LoadError()); s != "" {
		return s
	}
	res := m.users.Rows()

	var out string
	if res.Empty != projection.NotEmpty {
		out = styleMuted().Render(projection.EmptyMessage(res.Empty, "users"))
	} else {
		out = m.usersTable.View()
	}
	if s := m.viewSearch(m.users.Search(), len(res.Rows), "user"); s != "" {
		out = s + "\n" + out
	}
	if m.form != nil {
		out += "\n\n" + m.form.view(m.width, m.users.Form().FieldError, func(string, string) string { return "" })
	}
	if m.busy {
		out += "\n" + m.spinner.View() + " Saving..."
	}
	return out
}
