package tui

import (
	"fmt"
	"strconv"
	"strings"

	"crudconsole/internal/form"
	"crudconsole/internal/model"
	"crudconsole/internal/projection"
	"crudconsole/internal/route"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *appModel) syncPosts() {
	res := m.posts.Rows()
	m.postRows = res.Rows
	rows := make([]table.Row, 0, len(res.Rows))
	for _, p := range res.Rows {
		rows = append(rows, table.Row{
			m.idCell(p.ID, p.IsLocal, m.posts.Form().IsEditing(p.ID)),
			m.posts.UserName(p.UserID),
			p.Title,
		})
	}
	m.postsTable.SetRows(rows)
	m.postsTable.SetCursor(clamp(m.postsTable.Cursor(), 0, len(rows)-1))
}

func (m appModel) selectedPost() (model.Post, bool) {
	i := m.postsTable.Cursor()
	if i < 0 || i >= len(m.postRows) {
		return model.Post{}, false
	}
	return m.postRows[i], true
}

// nextUserFilter is the user after the current filter in fetched order,
// wrapping back to "all users".
func (m appModel) nextUserFilter() int {
	users := m.posts.Users()
	if len(users) == 0 {
		return 0
	}
	cur := m.posts.UserFilter()
	for i, u := range users {
		if u.ID == cur {
			if i+1 < len(users) {
				return users[i+1].ID
			}
			return 0
		}
	}
	return users[0].ID
}

// setUserFilter applies a filter change, keeps the route in sync and
// refetches when needed.
func (m *appModel) setUserFilter(id int) tea.Cmd {
	if !m.posts.SetUserFilter(id) {
		return nil
	}
	m.saveRoute()
	return tea.Batch(m.loadPosts(), m.spinner.Tick)
}

func (m appModel) updatePosts(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if _, ok := m.posts.PendingDelete(); ok {
		return m.updateConfirm(msg, (*appModel).confirmPostDelete, m.posts.CancelDelete)
	}
	if m.form != nil {
		return m.updatePostForm(msg)
	}
	if m.searching {
		return m.updateSearch(msg, m.posts.SetSearch, (*appModel).syncPosts)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case msg.String() == "esc" && m.hasNotice(screenPosts):
		m.posts.Notices().DismissCurrent()
		return m, nil
	case key.Matches(msg, m.keys.Back):
		return m, m.navigate(route.Route{Kind: route.Home})
	case key.Matches(msg, m.keys.Reload):
		return m, tea.Batch(m.loadPosts(), m.spinner.Tick)
	}
	if m.posts.Loading() || m.posts.LoadError() != "" || m.busy {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Open):
		if p, ok := m.selectedPost(); ok {
			m.openDetail(p.ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.Add):
		m.posts.StartAdd()
		m.form = newPostForm("Add post", m.posts.Form().Draft(), true)
		m.form.resize(m.width)
		m.resizeTables()
		m.syncPosts()
		return m, m.form.setFocus(0)
	case key.Matches(msg, m.keys.Edit):
		p, ok := m.selectedPost()
		if !ok || !m.posts.StartEdit(p.ID) {
			return m, nil
		}
		m.form = newPostForm(fmt.Sprintf("Edit post #%d", p.ID), m.posts.Form().Draft(), false)
		m.form.resize(m.width)
		m.resizeTables()
		m.syncPosts()
		return m, m.form.setFocus(0)
	case key.Matches(msg, m.keys.Delete):
		if p, ok := m.selectedPost(); ok && m.posts.RequestDelete(p.ID) {
			m.confirmFocus = confirmFocusCancel
		}
		return m, nil
	case key.Matches(msg, m.keys.Search):
		return m, m.startSearch(m.posts.Search())
	case key.Matches(msg, m.keys.Filter):
		return m, m.setUserFilter(m.nextUserFilter())
	case key.Matches(msg, m.keys.ClearFilter):
		return m, m.setUserFilter(0)
	}

	var cmd tea.Cmd
	m.postsTable, cmd = m.postsTable.Update(msg)
	return m, cmd
}

func (m appModel) updatePostForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.posts.Cancel()
		m.closeForm()
		m.syncPosts()
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		return m, m.form.setFocus(m.form.focus + 1)
	case key.Matches(msg, m.keys.PrevField):
		return m, m.form.setFocus(m.form.focus - 1)
	case key.Matches(msg, m.keys.Save), msg.String() == "enter" && !m.form.bodyFocused():
		return m.commitPost()
	}
	field, value, cmd := m.form.update(msg)
	if field != "" {
		if err := m.posts.SetField(field, value); err != nil {
			m.posts.Form().SetFieldError(field, "Enter a numeric user id")
		}
	}
	return m, cmd
}

func (m appModel) commitPost() (tea.Model, tea.Cmd) {
	mut, err := m.posts.PlanCommit()
	if err != nil {
		return m, m.noticeTimer(screenPosts)
	}
	m.busy = true
	return m, tea.Batch(m.executePost(mut), m.spinner.Tick)
}

func (m *appModel) confirmPostDelete() tea.Cmd {
	mut, err := m.posts.PlanDelete()
	if err != nil {
		m.log.Warn("plan delete", "err", err)
		return nil
	}
	m.busy = true
	if m.screen == screenPostDetail {
		m.screen = screenPosts
	}
	return tea.Batch(m.executePost(mut), m.spinner.Tick)
}

// userHint names the user an id field refers to.
func (m appModel) userHint(field, value string) string {
	if field != form.FieldUserID {
		return ""
	}
	id, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || id <= 0 {
		return ""
	}
	return "→ " + m.posts.UserName(id)
}

func (m appModel) viewPosts() string {
	if s := m.viewLoadState(m.posts.Loading() && !m.posts.Loaded(), m.posts.LoadError()); s != "" {
		return s
	}
	res := m.posts.Rows()

	var lines []string
	if id := m.posts.UserFilter(); id > 0 {
		lines = append(lines, styleMuted().Render("user: "+m.posts.UserName(id)+"   (f: next, F: all)"))
	}
	if s := m.viewSearch(m.posts.Search(), len(res.Rows), "post"); s != "" {
		lines = append(lines, s)
	}
	if m.posts.Loading() {
		lines = append(lines, m.spinner.View()+" Loading...")
	}
	if res.Empty != projection.NotEmpty {
		lines = append(lines, styleMuted().Render(projection.EmptyMessage(res.Empty, "posts")))
	} else {
		lines = append(lines, m.postsTable.View())
	}
	out := strings.Join(lines, "\n")
	if m.form != nil {
		out += "\n\n" + m.form.view(m.width, m.posts.Form().FieldError, m.userHint)
	}
	if m.busy {
		out += "\n" + m.spinner.View() + " Saving..."
	}
	return out
}
