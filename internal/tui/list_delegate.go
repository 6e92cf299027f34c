package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// menuItemDelegate draws a list entry as one line: the title, then its
// description in a muted color.
type menuItemDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
}

func newMenuItemDelegate() menuItemDelegate {
	return menuItemDelegate{
		normal: lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
	}
}

func (d menuItemDelegate) Height() int  { return 1 }
func (d menuItemDelegate) Spacing() int { return 1 }
func (d menuItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d menuItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		return
	}

	style := d.normal
	marker := "  "
	if index == m.Index() {
		style = d.selected
		marker = "> "
	}

	title, desc := fmt.Sprint(item), ""
	if t, ok := item.(list.DefaultItem); ok {
		title, desc = t.Title(), t.Description()
	}

	line := style.Render(marker + title)
	if desc != "" {
		line += "  " + styleMuted().Render(desc)
	}
	line = fit(line, contentW)
	if lineW := xansi.StringWidth(line); lineW < contentW {
		line += strings.Repeat(" ", contentW-lineW)
	}
	fmt.Fprint(w, line)
}
