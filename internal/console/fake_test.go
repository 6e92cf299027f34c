package console

import (
	"context"
	"errors"
	"sync"

	"crudconsole/internal/model"
)

var errBoom = errors.New("boom")

// fakeAPI is an in-memory remote that counts calls. Like the demo API it
// echoes a fixed id for every create.
type fakeAPI struct {
	mu    sync.Mutex
	users []model.User
	posts []model.Post
	calls map[string]int
	fail  map[string]error
}

func newFakeAPI() *fakeAPI {
	f := &fakeAPI{calls: map[string]int{}, fail: map[string]error{}}
	for i := 1; i <= 3; i++ {
		f.users = append(f.users, model.User{ID: i, Name: "user " + string(rune('a'+i-1)), Username: "u" + string(rune('a'+i-1)), Email: "u@example.com"})
		for j := 0; j < i; j++ {
			f.posts = append(f.posts, model.Post{ID: len(f.posts) + 1, UserID: i, Title: "post by " + string(rune('a'+i-1))})
		}
	}
	return f
}

func (f *fakeAPI) hit(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
	return f.fail[name]
}

func (f *fakeAPI) failOn(name string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[name] = err
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) ListUsers(context.Context) ([]model.User, error) {
	if err := f.hit("ListUsers"); err != nil {
		return nil, err
	}
	return append([]model.User(nil), f.users...), nil
}

func (f *fakeAPI) ListPosts(context.Context) ([]model.Post, error) {
	if err := f.hit("ListPosts"); err != nil {
		return nil, err
	}
	return append([]model.Post(nil), f.posts...), nil
}

func (f *fakeAPI) ListPostsByUser(_ context.Context, userID int) ([]model.Post, error) {
	if err := f.hit("ListPostsByUser"); err != nil {
		return nil, err
	}
	var out []model.Post
	for _, p := range f.posts {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeAPI) CreateUser(_ context.Context, d model.UserDraft) (model.User, error) {
	if err := f.hit("CreateUser"); err != nil {
		return model.User{}, err
	}
	return d.ApplyTo(model.User{ID: 11}), nil
}

func (f *fakeAPI) UpdateUser(_ context.Context, id int, d model.UserDraft) (model.User, error) {
	if err := f.hit("UpdateUser"); err != nil {
		return model.User{}, err
	}
	return d.ApplyTo(model.User{ID: id}), nil
}

func (f *fakeAPI) DeleteUser(context.Context, int) error { return f.hit("DeleteUser") }

func (f *fakeAPI) CreatePost(_ context.Context, d model.PostDraft) (model.Post, error) {
	if err := f.hit("CreatePost"); err != nil {
		return model.Post{}, err
	}
	return d.ApplyTo(model.Post{ID: 101}), nil
}

func (f *fakeAPI) UpdatePost(_ context.Context, id int, d model.PostDraft) (model.Post, error) {
	if err := f.hit("UpdatePost"); err != nil {
		return model.Post{}, err
	}
	return d.ApplyTo(model.Post{ID: id}), nil
}

func (f *fakeAPI) DeletePost(context.Context, int) error { return f.hit("DeletePost") }
