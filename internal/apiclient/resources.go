package apiclient

import (
	"context"
	"net/http"

	"crudconsole/internal/model"
)

const (
	usersResource = "users"
	postsResource = "posts"
)

func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var out []model.User
	if err := c.do(ctx, http.MethodGet, "/"+usersResource, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetUser(ctx context.Context, id int) (model.User, error) {
	var out model.User
	err := c.do(ctx, http.MethodGet, resourcePath(usersResource, id), nil, &out)
	return out, err
}

func (c *Client) CreateUser(ctx context.Context, d model.UserDraft) (model.User, error) {
	var out model.User
	err := c.do(ctx, http.MethodPost, "/"+usersResource, d, &out)
	return out, err
}

func (c *Client) UpdateUser(ctx context.Context, id int, d model.UserDraft) (model.User, error) {
	var out model.User
	err := c.do(ctx, http.MethodPut, resourcePath(usersResource, id), d, &out)
	return out, err
}

func (c *Client) DeleteUser(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, resourcePath(usersResource, id), nil, nil)
}

func (c *Client) ListPosts(ctx context.Context) ([]model.Post, error) {
	var out []model.Post
	if err := c.do(ctx, http.MethodGet, "/"+postsResource, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPostsByUser filters on the server side via the userId query parameter.
func (c *Client) ListPostsByUser(ctx context.Context, userID int) ([]model.Post, error) {
	var out []model.Post
	if err := c.do(ctx, http.MethodGet, withQuery("/"+postsResource, "userId", userID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetPost(ctx context.Context, id int) (model.Post, error) {
	var out model.Post
	err := c.do(ctx, http.MethodGet, resourcePath(postsResource, id), nil, &out)
	return out, err
}

func (c *Client) CreatePost(ctx context.Context, d model.PostDraft) (model.Post, error) {
	var out model.Post
	err := c.do(ctx, http.MethodPost, "/"+postsResource, d, &out)
	return out, err
}

func (c *Client) UpdatePost(ctx context.Context, id int, d model.PostDraft) (model.Post, error) {
	var out model.Post
	err := c.do(ctx, http.MethodPut, resourcePath(postsResource, id), d, &out)
	return out, err
}

func (c *Client) DeletePost(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, resourcePath(postsResource, id), nil, nil)
}
