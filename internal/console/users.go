package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"crudconsole/internal/form"
	"crudconsole/internal/model"
	"crudconsole/internal/projection"
	"crudconsole/internal/store"

	"golang.org/x/sync/errgroup"
)

// UsersAPI is the part of the remote client the users view needs.
type UsersAPI interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	ListPosts(ctx context.Context) ([]model.Post, error)
	CreateUser(ctx context.Context, d model.UserDraft) (model.User, error)
	UpdateUser(ctx context.Context, id int, d model.UserDraft) (model.User, error)
	DeleteUser(ctx context.Context, id int) error
}

const MsgFetchUsersFailed = "Failed to fetch users"

type (
	UserMutation = Mutation[model.UserDraft]
	UserOutcome  = Outcome[model.User, model.UserDraft]
)

// UsersLoad is the result of one joint fetch of users and posts.
type UsersLoad struct {
	Gen   uint64
	Users []model.User
	// PostCounts maps a user id to the number of posts by that user.
	PostCounts map[int]int
	Err        error
}

// UsersView is the users table: its rows, the open form, the pending delete
// and the current notice. It is not safe for concurrent use; run FetchUsers
// and ExecuteUser elsewhere and feed their results back.
type UsersView struct {
	base[model.User, model.UserDraft]
	counts map[int]int
}

func NewUsersView(log *slog.Logger) *UsersView {
	return &UsersView{base: newBase[model.User, model.UserDraft]("users", "user", "User", log)}
}

// BeginLoad starts a fetch and returns its generation.
func (v *UsersView) BeginLoad() uint64 { return v.beginLoad() }

// FetchUsers lists users and posts concurrently. Either failing fails both.
func FetchUsers(ctx context.Context, api UsersAPI, gen uint64) UsersLoad {
	res := UsersLoad{Gen: gen}
	var posts []model.Post
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		res.Users, err = api.ListUsers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		posts, err = api.ListPosts(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return UsersLoad{Gen: gen, Err: err}
	}
	res.PostCounts = make(map[int]int, len(res.Users))
	for _, p := range posts {
		res.PostCounts[p.UserID]++
	}
	return res
}

// ApplyLoad installs a fetch result. It reports false when a newer fetch
// was issued since, in which case res is dropped.
func (v *UsersView) ApplyLoad(res UsersLoad) bool {
	if !v.acceptLoad(res.Gen) {
		return false
	}
	if res.Err != nil {
		v.failLoad(MsgFetchUsersFailed, res.Err)
		return true
	}
	v.finishLoad(res.Users)
	v.counts = res.PostCounts
	return true
}

// Load fetches and applies in one step.
func (v *UsersView) Load(ctx context.Context, api UsersAPI) error {
	res := FetchUsers(ctx, api, v.BeginLoad())
	v.ApplyLoad(res)
	if res.Err != nil {
		return fmt.Errorf("fetch users: %w", res.Err)
	}
	return nil
}

// PostCount is the number of fetched posts by user id.
func (v *UsersView) PostCount(id int) int { return v.counts[id] }

// Rows is what the table renders right now.
func (v *UsersView) Rows() projection.Result[model.User] {
	return projection.Project(v.items.Items(), v.search, false, projection.UserFields)
}

// StartEdit puts row id into edit mode. It reports false for unknown ids.
func (v *UsersView) StartEdit(id int) bool {
	u, ok := v.items.Find(id)
	if !ok {
		return false
	}
	v.form.StartEdit(id, model.UserDraftFrom(u))
	return true
}

// SetField sets one field of the open form by name.
func (v *UsersView) SetField(name, value string) error {
	return setUserField(&v.form, name, value)
}

func setUserField(c *form.Controller[model.UserDraft], name, value string) error {
	var set func(*model.UserDraft)
	switch name {
	case form.FieldName:
		set = func(d *model.UserDraft) { d.Name = value }
	case form.FieldUsername:
		set = func(d *model.UserDraft) { d.Username = value }
	case form.FieldEmail:
		set = func(d *model.UserDraft) { d.Email = value }
	case form.FieldPhone:
		set = func(d *model.UserDraft) { d.Phone = value }
	case form.FieldWebsite:
		set = func(d *model.UserDraft) { d.Website = value }
	default:
		return fmt.Errorf("unknown user field %q", name)
	}
	c.Update(func(d model.UserDraft) model.UserDraft { set(&d); return d })
	return nil
}

// PlanCommit validates the open form. Nothing is sent; on failure the form
// stays open with a notice or an inline field error.
func (v *UsersView) PlanCommit() (UserMutation, error) {
	draft := v.form.Draft().Normalized()
	switch v.form.Mode() {
	case form.Adding:
		if err := form.ValidateUser(draft); err != nil {
			return UserMutation{}, v.reject(err)
		}
		return UserMutation{Action: ActionCreate, Draft: draft}, nil
	case form.Editing:
		if err := form.ValidateUserEmail(draft); err != nil {
			return UserMutation{}, v.reject(err)
		}
		return v.planEdit(draft)
	default:
		return UserMutation{}, ErrNothingToCommit
	}
}

func (v *UsersView) reject(err error) error {
	var fe *form.FieldError
	if errors.As(err, &fe) {
		return v.rejectField(fe)
	}
	return v.rejectRequired(err)
}

// ExecuteUser performs m against the remote API. Local targets are never
// sent. It touches no view state.
func ExecuteUser(ctx context.Context, api UsersAPI, m UserMutation) UserOutcome {
	out := UserOutcome{Mutation: m}
	switch m.Action {
	case ActionCreate:
		out.Result, out.Err = api.CreateUser(ctx, m.Draft)
	case ActionUpdate:
		if !m.Local {
			out.Result, out.Err = api.UpdateUser(ctx, m.ID, m.Draft)
		}
	case ActionDelete:
		if !m.Local {
			out.Err = api.DeleteUser(ctx, m.ID)
		}
	default:
		out.Err = fmt.Errorf("unknown action %q", m.Action)
	}
	return out
}

// Commit validates, sends and reconciles the open form.
func (v *UsersView) Commit(ctx context.Context, api UsersAPI) (store.Activity, error) {
	m, err := v.PlanCommit()
	if err != nil {
		return store.Activity{}, err
	}
	return v.run(ctx, api, m)
}

// ConfirmDelete deletes the pending target.
func (v *UsersView) ConfirmDelete(ctx context.Context, api UsersAPI) (store.Activity, error) {
	m, err := v.PlanDelete()
	if err != nil {
		return store.Activity{}, err
	}
	return v.run(ctx, api, m)
}

func (v *UsersView) run(ctx context.Context, api UsersAPI, m UserMutation) (store.Activity, error) {
	out := ExecuteUser(ctx, api, m)
	a := v.ApplyOutcome(out)
	if out.Err != nil {
		return a, fmt.Errorf("%s user: %w", m.Action, out.Err)
	}
	return a, nil
}

// UserLabel is how a user is named in pickers and headers.
func UserLabel(u model.User) string {
	if name := strings.TrimSpace(u.Name); name != "" {
		return name
	}
	return fmt.Sprintf("User %d", u.ID)
}
