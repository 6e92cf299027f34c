package tui

import (
	"strings"

	"crudconsole/internal/confirm"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

func (f confirmModalFocus) toggle() confirmModalFocus {
	if f == confirmFocusConfirm {
		return confirmFocusCancel
	}
	return confirmFocusConfirm
}

const (
	modalMaxWidth = 64
	modalPadX     = 2
)

// modalWidth is the outer width of a modal on a screen width columns wide.
func modalWidth(width int) int {
	w := width - 8
	if w > modalMaxWidth {
		w = modalMaxWidth
	}
	if w < 24 {
		w = 24
	}
	return w
}

// modalBodyWidth is the usable content width inside a modal.
func modalBodyWidth(width int) int {
	return modalWidth(width) - 2*modalPadX
}

// renderModalBox draws title and content on the modal surface. No border:
// nested borders on a colored background leave artifacts on some terminals.
func renderModalBox(width int, title, content string) string {
	w := modalWidth(width)
	bodyW := modalBodyWidth(width)

	header := lipgloss.NewStyle().
		Width(w).
		Padding(0, modalPadX).
		Bold(true).
		Foreground(colorSurfaceFg).
		Background(colorControlBg).
		Render(fit(title, bodyW))

	body := lipgloss.NewStyle().
		Width(w).
		Padding(1, modalPadX).
		Foreground(colorSurfaceFg).
		Background(colorSurfaceBg).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

func renderConfirmModal(width int, d confirm.Dialog, focus confirmModalFocus) string {
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	ok := btnBase.Render(d.ConfirmLabel)
	cancel := btnBase.Render(d.CancelLabel)
	if focus == confirmFocusConfirm {
		ok = btnActive.Render(d.ConfirmLabel)
	} else {
		cancel = btnActive.Render(d.CancelLabel)
	}

	sep := lipgloss.NewStyle().Background(colorSurfaceBg).Render(" ")
	controls := lipgloss.JoinHorizontal(lipgloss.Top, ok, sep, cancel)

	bodyW := modalBodyWidth(width)
	help := styleMuted().Width(bodyW).Render("tab: focus   enter: select   esc: cancel")

	content := strings.Join([]string{
		lipgloss.NewStyle().Width(bodyW).Render(d.Message),
		"",
		controls,
		"",
		help,
	}, "\n")
	return renderModalBox(width, d.Title, content)
}

// renderInputLine draws a text input as exactly one line of bodyW columns.
func renderInputLine(bodyW int, inputView string) string {
	if bodyW < 10 {
		bodyW = 10
	}
	inputView = strings.ReplaceAll(inputView, "\n", " ")
	inputView = strings.ReplaceAll(inputView, "\r", " ")

	line := lipgloss.PlaceHorizontal(
		bodyW,
		lipgloss.Left,
		" "+inputView+" ",
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(colorInputBg),
	)
	if xansi.StringWidth(line) > bodyW {
		line = xansi.Cut(line, 0, bodyW) + "\x1b[0m"
	}
	return line
}
