package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"crudconsole/internal/confirm"
	"crudconsole/internal/console"
	"crudconsole/internal/form"
	"crudconsole/internal/logging"
	"crudconsole/internal/model"
	"crudconsole/internal/projection"
	"crudconsole/internal/route"
	"crudconsole/internal/store"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// API is the remote the console talks to.
type API interface {
	console.UsersAPI
	console.PostsAPI
}

// Options configure a console session.
type Options struct {
	API    API
	Store  store.Store
	Logger *slog.Logger
	// Route is the first screen shown.
	Route route.Route
}

const activityTimeout = 5 * time.Second

type appModel struct {
	api   API
	store store.Store
	log   *slog.Logger

	width  int
	height int

	screen screen

	home  list.Model
	users *console.UsersView
	posts *console.PostsView

	usersTable table.Model
	postsTable table.Model
	userRows   []model.User
	postRows   []model.Post

	// form is the open add/edit panel of the current screen, if any.
	form *formModel
	// busy is set while a mutation is in flight.
	busy bool

	searching bool
	search    textinput.Model

	confirmFocus confirmModalFocus

	detail   viewport.Model
	detailID int

	spinner spinner.Model
	help    help.Model
	keys    keyMap

	// fetches is shared by every copy of the model, so Init can start a
	// fetch that Update later cancels.
	fetches *inflight
}

// inflight holds the cancel funcs of the running fetches.
type inflight struct {
	users context.CancelFunc
	posts context.CancelFunc
}

func (f *inflight) cancelUsers() {
	if f.users != nil {
		f.users()
		f.users = nil
	}
}

func (f *inflight) cancelPosts() {
	if f.posts != nil {
		f.posts()
		f.posts = nil
	}
}

type homeItem struct {
	title string
	desc  string
	route route.Route
}

func (i homeItem) Title() string       { return i.title }
func (i homeItem) Description() string { return i.desc }
func (i homeItem) FilterValue() string { return i.title }

func newAppModel(opts Options) appModel {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	m := appModel{
		api:     opts.API,
		store:   opts.Store,
		log:     log.With("component", "tui"),
		users:   console.NewUsersView(log),
		posts:   console.NewPostsView(log),
		keys:    defaultKeyMap(),
		help:    help.New(),
		fetches: &inflight{},
	}

	m.home = list.New([]list.Item{
		homeItem{title: "Users", desc: "Browse, add, edit and delete users", route: route.Route{Kind: route.Users}},
		homeItem{title: "Posts", desc: "Browse posts by user, search titles, read and edit posts", route: route.Route{Kind: route.Posts}},
	}, newMenuItemDelegate(), 0, 0)
	m.home.Title = "CRUD console"
	m.home.SetShowStatusBar(false)
	m.home.SetFilteringEnabled(false)
	m.home.SetShowHelp(false)

	m.usersTable = newTable([]table.Column{{Title: "ID"}, {Title: "Name"}, {Title: "Username"}, {Title: "Email"}, {Title: "Posts"}})
	m.postsTable = newTable([]table.Column{{Title: "ID"}, {Title: "User"}, {Title: "Title"}})

	m.search = textinput.New()
	m.search.Prompt = "/ "
	m.search.Placeholder = "search"

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot

	m.detail = viewport.New(0, 0)

	m.screen = screenFor(opts.Route)
	if opts.Route.Kind == route.Posts {
		m.posts.SetUserFilter(opts.Route.UserID)
	}
	return m
}

func newTable(cols []table.Column) table.Model {
	t := table.New(table.WithColumns(cols), table.WithFocused(true))
	st := table.DefaultStyles()
	st.Header = st.Header.Bold(true).Foreground(colorSurfaceFg)
	st.Selected = st.Selected.Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
	t.SetStyles(st)
	return t
}

func screenFor(r route.Route) screen {
	switch r.Kind {
	case route.Users:
		return screenUsers
	case route.Posts:
		return screenPosts
	default:
		return screenHome
	}
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.mount())
}

// currentRoute is the route of the screen on display.
func (m appModel) currentRoute() route.Route {
	switch m.screen {
	case screenUsers:
		return route.Route{Kind: route.Users}
	case screenPosts, screenPostDetail:
		return route.PostsOf(m.posts.UserFilter())
	default:
		return route.Route{Kind: route.Home}
	}
}

// navigate shows the screen of r and fetches its data.
func (m *appModel) navigate(r route.Route) tea.Cmd {
	m.leave()
	m.screen = screenFor(r)
	if r.Kind == route.Posts {
		m.posts.SetUserFilter(r.UserID)
	}
	m.saveRoute()
	return m.mount()
}

// leave drops transient UI state and cancels the fetch of the screen being
// left.
func (m *appModel) leave() {
	m.form = nil
	m.searching = false
	m.search.Blur()
	switch m.screen {
	case screenUsers:
		m.users.Cancel()
		m.users.CancelDelete()
		m.fetches.cancelUsers()
	case screenPosts, screenPostDetail:
		m.posts.Cancel()
		m.posts.CancelDelete()
		m.fetches.cancelPosts()
	}
}

// mount starts the fetch a screen needs when it is shown.
func (m *appModel) mount() tea.Cmd {
	switch m.screen {
	case screenUsers:
		return tea.Batch(m.loadUsers(), m.spinner.Tick)
	case screenPosts:
		return tea.Batch(m.loadPosts(), m.spinner.Tick)
	default:
		return nil
	}
}

func (m *appModel) saveRoute() {
	st := &store.TUIState{Route: m.currentRoute().String()}
	if err := m.store.SaveTUIState(st); err != nil {
		m.log.Warn("save tui state", "err", err)
	}
}

func (m *appModel) loadUsers() tea.Cmd {
	m.fetches.cancelUsers()
	ctx, cancel := context.WithCancel(context.Background())
	m.fetches.users = cancel
	gen := m.users.BeginLoad()
	api := m.api
	return func() tea.Msg {
		return usersLoadedMsg{res: console.FetchUsers(ctx, api, gen)}
	}
}

func (m *appModel) loadPosts() tea.Cmd {
	m.fetches.cancelPosts()
	ctx, cancel := context.WithCancel(context.Background())
	m.fetches.posts = cancel
	req := m.posts.BeginLoad()
	api := m.api
	return func() tea.Msg {
		return postsLoadedMsg{res: console.FetchPosts(ctx, api, req)}
	}
}

func (m appModel) executeUser(mut console.UserMutation) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		return userOutcomeMsg{out: console.ExecuteUser(context.Background(), api, mut)}
	}
}

func (m appModel) executePost(mut console.PostMutation) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		return postOutcomeMsg{out: console.ExecutePost(context.Background(), api, mut)}
	}
}

// record appends a to the activity log off the UI loop.
func (m appModel) record(a store.Activity) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), activityTimeout)
		defer cancel()
		_, err := s.AppendActivity(ctx, a)
		return activityRecordedMsg{err: err}
	}
}

func (m appModel) notifier(s screen) *confirm.Notifier {
	if s == screenUsers {
		return m.users.Notices()
	}
	return m.posts.Notices()
}

// noticeTimer schedules the dismissal of the notice now visible on s.
func (m appModel) noticeTimer(s screen) tea.Cmd {
	nt, ok := m.notifier(s).Current()
	if !ok {
		return nil
	}
	return tea.Tick(confirm.DismissAfter, func(time.Time) tea.Msg {
		return noticeDoneMsg{s: s, seq: nt.Seq}
	})
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if !m.users.Loading() && !m.posts.Loading() && !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case usersLoadedMsg:
		if errors.Is(msg.res.Err, context.Canceled) {
			m.users.AbandonLoad(msg.res.Gen)
			return m, nil
		}
		m.users.ApplyLoad(msg.res)
		m.syncUsers()
		return m, nil

	case postsLoadedMsg:
		if errors.Is(msg.res.Err, context.Canceled) {
			m.posts.AbandonLoad(msg.res.Gen)
			return m, nil
		}
		m.posts.ApplyLoad(msg.res)
		m.syncPosts()
		return m, nil

	case userOutcomeMsg:
		m.busy = false
		a := m.users.ApplyOutcome(msg.out)
		if m.users.Form().Mode() == form.Idle {
			m.closeForm()
		}
		m.syncUsers()
		return m, tea.Batch(m.record(a), m.noticeTimer(screenUsers))

	case postOutcomeMsg:
		m.busy = false
		a := m.posts.ApplyOutcome(msg.out)
		if m.posts.Form().Mode() == form.Idle {
			m.closeForm()
		}
		m.syncPosts()
		return m, tea.Batch(m.record(a), m.noticeTimer(screenPosts))

	case noticeDoneMsg:
		m.notifier(msg.s).Dismiss(msg.seq)
		return m, nil

	case activityRecordedMsg:
		if msg.err != nil {
			m.log.Warn("record activity", "err", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.screen {
		case screenUsers:
			return m.updateUsers(msg)
		case screenPosts:
			return m.updatePosts(msg)
		case screenPostDetail:
			return m.updateDetail(msg)
		default:
			return m.updateHome(msg)
		}
	}
	return m, nil
}

func (m appModel) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Open):
		if it, ok := m.home.SelectedItem().(homeItem); ok {
			return m, m.navigate(it.route)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.home, cmd = m.home.Update(msg)
	return m, cmd
}

// bodyHeight is the height left for the screen body.
func (m appModel) bodyHeight() int {
	return m.height - 4
}

func (m *appModel) resize() {
	h := m.bodyHeight()
	m.home.SetSize(m.width, h)
	m.detail.Width = m.width
	m.detail.Height = h - 2
	m.help.Width = m.width
	m.search.Width = m.width - 4
	m.resizeTables()
	if m.form != nil {
		m.form.resize(m.width)
	}
	if m.screen == screenPostDetail {
		m.refreshDetail()
	}
}

func (m *appModel) resizeTables() {
	h := m.bodyHeight() - 2
	if m.form != nil {
		h -= 12
	}
	if h < 3 {
		h = 3
	}
	m.usersTable.SetHeight(h)
	m.postsTable.SetHeight(h)

	w := m.width - 2
	if w < 40 {
		w = 40
	}
	rest := w - 6 - 7
	m.usersTable.SetColumns([]table.Column{
		{Title: "ID", Width: 6},
		{Title: "Name", Width: rest * 3 / 10},
		{Title: "Username", Width: rest * 2 / 10},
		{Title: "Email", Width: rest - rest*3/10 - rest*2/10},
		{Title: "Posts", Width: 7},
	})
	m.postsTable.SetColumns([]table.Column{
		{Title: "ID", Width: 6},
		{Title: "User", Width: 20},
		{Title: "Title", Width: w - 6 - 20},
	})
}

func (m appModel) View() string {
	if m.width == 0 {
		return ""
	}
	header := m.viewHeader()

	var body string
	switch m.screen {
	case screenUsers:
		body = m.viewUsers()
	case screenPosts:
		body = m.viewPosts()
	case screenPostDetail:
		body = m.viewDetail()
	default:
		body = m.home.View()
	}
	body = normalizePane(body, m.width, m.bodyHeight())
	if modal := m.viewModal(); modal != "" {
		body = lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center, modal)
	}

	return strings.Join([]string{header, body, m.viewToast(), m.viewHelp()}, "\n")
}

func (m appModel) viewHeader() string {
	crumbs := []string{"Home"}
	switch m.screen {
	case screenUsers:
		crumbs = append(crumbs, "Users")
	case screenPosts:
		crumbs = append(crumbs, "Posts")
		if id := m.posts.UserFilter(); id > 0 {
			crumbs = append(crumbs, m.posts.UserName(id))
		}
	case screenPostDetail:
		crumbs = append(crumbs, "Posts", fmt.Sprintf("#%d", m.detailID))
	}
	left := styleTitle().Render(strings.Join(crumbs, " / "))
	right := styleMuted().Render(m.currentRoute().String())
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m appModel) viewHelp() string {
	var keys []key.Binding
	switch {
	case m.form != nil:
		keys = m.keys.form()
	case m.screen == screenUsers:
		keys = m.keys.users()
	case m.screen == screenPosts:
		keys = m.keys.posts()
	case m.screen == screenPostDetail:
		keys = m.keys.detail()
	default:
		keys = m.keys.home()
	}
	return m.help.ShortHelpView(keys)
}

func (m appModel) viewToast() string {
	if m.screen == screenHome {
		return ""
	}
	nt, ok := m.notifier(m.screen).Current()
	if !ok {
		return ""
	}
	bg := colorInfoBg
	switch nt.Severity {
	case confirm.SeveritySuccess:
		bg = colorSuccessBg
	case confirm.SeverityError:
		bg = colorErrorBg
	}
	return lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorAccentFg).
		Background(bg).
		Render(fit(nt.Message, m.width-2))
}

// viewModal is the confirm dialog of a pending delete, or "".
func (m appModel) viewModal() string {
	switch m.screen {
	case screenUsers:
		if _, ok := m.users.PendingDelete(); ok {
			return renderConfirmModal(m.width, m.users.DeleteDialog(), m.confirmFocus)
		}
	case screenPosts, screenPostDetail:
		if _, ok := m.posts.PendingDelete(); ok {
			return renderConfirmModal(m.width, m.posts.DeleteDialog(), m.confirmFocus)
		}
	}
	return ""
}

// viewLoadState is the loading or error view that replaces a table, or "".
func (m appModel) viewLoadState(loading bool, loadErr string) string {
	switch {
	case loadErr != "":
		return styleError().Render(loadErr) + "\n\n" + styleMuted().Render("r: retry   esc: back")
	case loading:
		return m.spinner.View() + " Loading..."
	default:
		return ""
	}
}

// updateConfirm drives the confirm modal. onConfirm runs when the confirm
// button is chosen; cancel closes the modal.
func (m appModel) updateConfirm(msg tea.KeyMsg, onConfirm func(*appModel) tea.Cmd, cancel func()) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "left", "right", "h", "l":
		m.confirmFocus = m.confirmFocus.toggle()
	case "enter":
		if m.confirmFocus == confirmFocusConfirm {
			cmd := onConfirm(&m)
			return m, cmd
		}
		cancel()
	case "esc", "ctrl+g", "n":
		cancel()
	case "y":
		cmd := onConfirm(&m)
		return m, cmd
	}
	return m, nil
}

// updateSearch edits the search term of a screen, filtering as it is typed.
// enter keeps the term; esc clears it.
func (m appModel) updateSearch(msg tea.KeyMsg, set func(string), sync func(*appModel)) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		set("")
		sync(&m)
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	set(m.search.Value())
	sync(&m)
	return m, cmd
}

func (m *appModel) startSearch(term string) tea.Cmd {
	m.searching = true
	m.search.SetValue(term)
	m.search.CursorEnd()
	return m.search.Focus()
}

func (m appModel) viewSearch(term string, n int, singular string) string {
	if m.searching {
		return m.search.View()
	}
	if term == "" {
		return ""
	}
	return styleMuted().Render(fmt.Sprintf("search: %q   %s", term, projection.Summary(n, singular)))
}
