package tui

import (
	"strconv"
	"strings"

	"crudconsole/internal/form"
	"crudconsole/internal/model"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type formInput struct {
	field    string
	label    string
	required bool
	input    textinput.Model
}

// formModel is the add/edit panel. It only holds widgets; the draft itself
// lives in the view's form controller and is updated on every keystroke.
type formModel struct {
	title   string
	inputs  []formInput
	body    textarea.Model
	hasBody bool
	focus   int
}

func newInput(field, label, value string, required bool) formInput {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 200
	in.SetValue(value)
	return formInput{field: field, label: label, required: required, input: in}
}

func newUserForm(title string, d model.UserDraft, adding bool) *formModel {
	f := &formModel{
		title: title,
		inputs: []formInput{
			newInput(form.FieldName, "Name", d.Name, adding),
			newInput(form.FieldUsername, "Username", d.Username, adding),
			newInput(form.FieldEmail, "Email", d.Email, adding),
			newInput(form.FieldPhone, "Phone", d.Phone, false),
			newInput(form.FieldWebsite, "Website", d.Website, false),
		},
	}
	f.setFocus(0)
	return f
}

func newPostForm(title string, d model.PostDraft, adding bool) *formModel {
	uid := ""
	if d.UserID > 0 {
		uid = strconv.Itoa(d.UserID)
	}
	f := &formModel{
		title: title,
		inputs: []formInput{
			newInput(form.FieldTitle, "Title", d.Title, adding),
			newInput(form.FieldUserID, "User ID", uid, adding),
		},
	}
	if adding {
		ta := textarea.New()
		ta.ShowLineNumbers = false
		ta.Placeholder = "Markdown body"
		ta.SetHeight(4)
		ta.SetValue(d.Body)
		f.body = ta
		f.hasBody = true
	}
	f.setFocus(0)
	return f
}

func (f *formModel) focusCount() int {
	if f.hasBody {
		return len(f.inputs) + 1
	}
	return len(f.inputs)
}

func (f *formModel) bodyFocused() bool { return f.hasBody && f.focus == len(f.inputs) }

func (f *formModel) setFocus(i int) tea.Cmd {
	n := f.focusCount()
	f.focus = ((i % n) + n) % n
	for j := range f.inputs {
		f.inputs[j].input.Blur()
	}
	if f.hasBody {
		f.body.Blur()
	}
	if f.bodyFocused() {
		return f.body.Focus()
	}
	return f.inputs[f.focus].input.Focus()
}

// update forwards msg to the focused widget and reports the field that
// changed and its new value.
func (f *formModel) update(msg tea.Msg) (field, value string, cmd tea.Cmd) {
	if f.bodyFocused() {
		before := f.body.Value()
		f.body, cmd = f.body.Update(msg)
		if f.body.Value() != before {
			return form.FieldBody, f.body.Value(), cmd
		}
		return "", "", cmd
	}
	in := &f.inputs[f.focus]
	before := in.input.Value()
	in.input, cmd = in.input.Update(msg)
	if in.input.Value() != before {
		return in.field, in.input.Value(), cmd
	}
	return "", "", cmd
}

func (f *formModel) resize(width int) {
	w := width - 20
	if w < 20 {
		w = 20
	}
	for i := range f.inputs {
		f.inputs[i].input.Width = w
	}
	if f.hasBody {
		f.body.SetWidth(w)
	}
}

// view renders the panel. fieldErr returns the inline error of a field;
// hint returns an optional note shown after a field's input.
func (f *formModel) view(width int, fieldErr func(string) string, hint func(field, value string) string) string {
	labelW := 10
	inputW := width - labelW - 4
	if inputW < 12 {
		inputW = 12
	}
	labelStyle := lipgloss.NewStyle().Width(labelW)
	focusedLabel := labelStyle.Bold(true).Foreground(colorAccent)

	lines := []string{styleTitle().Render(f.title), ""}
	for i, in := range f.inputs {
		label := in.label
		if in.required {
			label += "*"
		}
		ls := labelStyle
		if i == f.focus {
			ls = focusedLabel
		}
		line := ls.Render(label) + " " + renderInputLine(inputW, in.input.View())
		if h := hint(in.field, in.input.Value()); h != "" {
			line += " " + styleMuted().Render(h)
		}
		lines = append(lines, line)
		if msg := fieldErr(in.field); msg != "" {
			lines = append(lines, strings.Repeat(" ", labelW+1)+styleError().Render(msg))
		}
	}
	if f.hasBody {
		ls := labelStyle
		if f.bodyFocused() {
			ls = focusedLabel
		}
		lines = append(lines, ls.Render("Body"))
		lines = append(lines, f.body.View())
	}
	return strings.Join(lines, "\n")
}
