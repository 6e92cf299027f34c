package console

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"crudconsole/internal/form"
	"crudconsole/internal/model"
	"crudconsole/internal/projection"
	"crudconsole/internal/store"

	"golang.org/x/sync/errgroup"
)

// PostsAPI is the part of the remote client the posts view needs.
type PostsAPI interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	ListPosts(ctx context.Context) ([]model.Post, error)
	ListPostsByUser(ctx context.Context, userID int) ([]model.Post, error)
	CreatePost(ctx context.Context, d model.PostDraft) (model.Post, error)
	UpdatePost(ctx context.Context, id int, d model.PostDraft) (model.Post, error)
	DeletePost(ctx context.Context, id int) error
}

const MsgFetchPostsFailed = "Failed to fetch data"

type (
	PostMutation = Mutation[model.PostDraft]
	PostOutcome  = Outcome[model.Post, model.PostDraft]
)

// PostsRequest is a fetch as issued: its generation and the user filter in
// effect at the time.
type PostsRequest struct {
	Gen    uint64
	UserID int
}

// PostsLoad is the result of one joint fetch of posts and users.
type PostsLoad struct {
	PostsRequest
	Posts []model.Post
	Users []model.User
	Err   error
}

// PostsView is the posts table with its user filter. Like UsersView it
// is owned by one goroutine.
type PostsView struct {
	base[model.Post, model.PostDraft]
	userFilter int
	users      []model.User
}

func NewPostsView(log *slog.Logger) *PostsView {
	return &PostsView{base: newBase[model.Post, model.PostDraft]("posts", "post", "Post", log)}
}

func (v *PostsView) UserFilter() int { return v.userFilter }

// SetUserFilter changes the user filter; 0 shows every user. It reports
// whether the posts must be fetched again.
func (v *PostsView) SetUserFilter(id int) bool {
	if id < 0 {
		id = 0
	}
	if id == v.userFilter {
		return false
	}
	v.userFilter = id
	return true
}

// Users are the users fetched with the posts, for names and the filter picker.
func (v *PostsView) Users() []model.User { return append([]model.User(nil), v.users...) }

// UserName is the name of user id, or "User N" when unknown.
func (v *PostsView) UserName(id int) string {
	for _, u := range v.users {
		if u.ID == id {
			return UserLabel(u)
		}
	}
	return fmt.Sprintf("User %d", id)
}

// BeginLoad starts a fetch for the current user filter.
func (v *PostsView) BeginLoad() PostsRequest {
	return PostsRequest{Gen: v.beginLoad(), UserID: v.userFilter}
}

// FetchPosts lists posts (filtered server-side by req.UserID) and users
// concurrently. Either failing fails both.
func FetchPosts(ctx context.Context, api PostsAPI, req PostsRequest) PostsLoad {
	res := PostsLoad{PostsRequest: req}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if req.UserID > 0 {
			res.Posts, err = api.ListPostsByUser(gctx, req.UserID)
		} else {
			res.Posts, err = api.ListPosts(gctx)
		}
		return err
	})
	g.Go(func() error {
		var err error
		res.Users, err = api.ListUsers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return PostsLoad{PostsRequest: req, Err: err}
	}
	return res
}

// ApplyLoad installs a fetch result unless a newer fetch was issued since.
func (v *PostsView) ApplyLoad(res PostsLoad) bool {
	if !v.acceptLoad(res.Gen) {
		return false
	}
	if res.Err != nil {
		v.failLoad(MsgFetchPostsFailed, res.Err)
		return true
	}
	v.finishLoad(res.Posts)
	v.users = res.Users
	return true
}

func (v *PostsView) Load(ctx context.Context, api PostsAPI) error {
	res := FetchPosts(ctx, api, v.BeginLoad())
	v.ApplyLoad(res)
	if res.Err != nil {
		return fmt.Errorf("fetch posts: %w", res.Err)
	}
	return nil
}

// Rows is what the table renders right now.
func (v *PostsView) Rows() projection.Result[model.Post] {
	return projection.Project(v.items.Items(), v.search, v.userFilter > 0, projection.PostFields)
}

// StartEdit puts row id into edit mode. It reports false for unknown ids.
func (v *PostsView) StartEdit(id int) bool {
	p, ok := v.items.Find(id)
	if !ok {
		return false
	}
	v.form.StartEdit(id, model.PostDraftFrom(p))
	return true
}

// StartAdd opens the add form preselecting the filtered user, if any.
func (v *PostsView) StartAdd() {
	v.form.StartAdd()
	if v.userFilter > 0 {
		uid := v.userFilter
		v.form.Update(func(d model.PostDraft) model.PostDraft { d.UserID = uid; return d })
	}
}

// SetField sets one field of the open form by name. userId takes a decimal
// id; an empty value clears it.
func (v *PostsView) SetField(name, value string) error {
	var set func(*model.PostDraft)
	switch name {
	case form.FieldTitle:
		set = func(d *model.PostDraft) { d.Title = value }
	case form.FieldBody:
		set = func(d *model.PostDraft) { d.Body = value }
	case form.FieldUserID:
		id := 0
		if s := strings.TrimSpace(value); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 {
				return fmt.Errorf("invalid user id %q", value)
			}
			id = n
		}
		set = func(d *model.PostDraft) { d.UserID = id }
	default:
		return fmt.Errorf("unknown post field %q", name)
	}
	v.form.Update(func(d model.PostDraft) model.PostDraft { set(&d); return d })
	return nil
}

// PlanCommit validates the open form. Adding requires a title and a user;
// edits are sent as they are.
func (v *PostsView) PlanCommit() (PostMutation, error) {
	draft := v.form.Draft().Normalized()
	switch v.form.Mode() {
	case form.Adding:
		if err := form.ValidatePost(draft); err != nil {
			return PostMutation{}, v.rejectRequired(err)
		}
		return PostMutation{Action: ActionCreate, Draft: draft}, nil
	case form.Editing:
		return v.planEdit(draft)
	default:
		return PostMutation{}, ErrNothingToCommit
	}
}

// ExecutePost performs m against the remote API. Local targets are never
// sent. It touches no view state.
func ExecutePost(ctx context.Context, api PostsAPI, m PostMutation) PostOutcome {
	out := PostOutcome{Mutation: m}
	switch m.Action {
	case ActionCreate:
		out.Result, out.Err = api.CreatePost(ctx, m.Draft)
	case ActionUpdate:
		if !m.Local {
			out.Result, out.Err = api.UpdatePost(ctx, m.ID, m.Draft)
		}
	case ActionDelete:
		if !m.Local {
			out.Err = api.DeletePost(ctx, m.ID)
		}
	default:
		out.Err = fmt.Errorf("unknown action %q", m.Action)
	}
	return out
}

func (v *PostsView) Commit(ctx context.Context, api PostsAPI) (store.Activity, error) {
	m, err := v.PlanCommit()
	if err != nil {
		return store.Activity{}, err
	}
	return v.run(ctx, api, m)
}

func (v *PostsView) ConfirmDelete(ctx context.Context, api PostsAPI) (store.Activity, error) {
	m, err := v.PlanDelete()
	if err != nil {
		return store.Activity{}, err
	}
	return v.run(ctx, api, m)
}

func (v *PostsView) run(ctx context.Context, api PostsAPI, m PostMutation) (store.Activity, error) {
	out := ExecutePost(ctx, api, m)
	a := v.ApplyOutcome(out)
	if out.Err != nil {
		return a, fmt.Errorf("%s post: %w", m.Action, out.Err)
	}
	return a, nil
}
