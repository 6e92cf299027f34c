package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *appModel) openDetail(id int) {
	m.screen = screenPostDetail
	m.detailID = id
	m.refreshDetail()
	m.detail.GotoTop()
}

// refreshDetail renders the post into the viewport. The post comes from the
// view's collection, so local posts open like any other.
func (m *appModel) refreshDetail() {
	p, ok := m.posts.Find(m.detailID)
	if !ok {
		m.detail.SetContent(styleMuted().Render(fmt.Sprintf("Post %d is no longer in this view.", m.detailID)))
		return
	}
	meta := fmt.Sprintf("by %s  ·  post #%d", m.posts.UserName(p.UserID), p.ID)
	if p.IsLocal {
		meta += "  ·  local only"
	}
	body := renderMarkdown(p.Body, m.width-2)
	if body == "" {
		body = styleMuted().Render("(no body)")
	}
	m.detail.SetContent(strings.Join([]string{
		styleTitle().Render(p.Title),
		styleMuted().Render(meta),
		"",
		body,
	}, "\n"))
}

func (m appModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if _, ok := m.posts.PendingDelete(); ok {
		return m.updateConfirm(msg, (*appModel).confirmPostDelete, m.posts.CancelDelete)
	}
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.screen = screenPosts
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		if !m.busy && m.posts.RequestDelete(m.detailID) {
			m.confirmFocus = confirmFocusCancel
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m appModel) viewDetail() string {
	return m.detail.View()
}
