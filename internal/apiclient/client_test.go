package apiclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"crudconsole/internal/apiclient"
	"crudconsole/internal/mockapi"
	"crudconsole/internal/model"

	"github.com/stretchr/testify/require"
)

func newMockClient(t *testing.T) (*apiclient.Client, *mockapi.Server) {
	t.Helper()
	srv := mockapi.New(mockapi.Options{})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return apiclient.New(ts.URL, apiclient.WithHTTPClient(ts.Client())), srv
}

func TestClient_Users(t *testing.T) {
	t.Parallel()
	c, srv := newMockClient(t)
	ctx := context.Background()

	users, err := c.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 10)
	require.Equal(t, "Leanne Graham", users[0].Name)
	require.NotNil(t, users[0].Company)

	u, err := c.GetUser(ctx, 3)
	require.NoError(t, err)
	require.Equal(t, 3, u.ID)
	require.False(t, u.IsLocal)

	created, err := c.CreateUser(ctx, model.UserDraft{Name: "Ada", Username: "ada", Email: "ada@example.org"})
	require.NoError(t, err)
	require.Equal(t, srv.CreatedUserID(), created.ID)
	require.Equal(t, "Ada", created.Name)

	updated, err := c.UpdateUser(ctx, 3, model.UserDraft{Name: "Clem", Username: "clem", Email: "clem@example.org"})
	require.NoError(t, err)
	require.Equal(t, 3, updated.ID)
	require.Equal(t, "clem@example.org", updated.Email)

	require.NoError(t, c.DeleteUser(ctx, 3))
}

func TestClient_Posts(t *testing.T) {
	t.Parallel()
	c, srv := newMockClient(t)
	ctx := context.Background()

	all, err := c.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 100)

	mine, err := c.ListPostsByUser(ctx, 2)
	require.NoError(t, err)
	require.Len(t, mine, 10)
	for _, p := range mine {
		require.Equal(t, 2, p.UserID)
	}

	p, err := c.GetPost(ctx, 11)
	require.NoError(t, err)
	require.Equal(t, 2, p.UserID)

	created, err := c.CreatePost(ctx, model.PostDraft{UserID: 4, Title: "hello"})
	require.NoError(t, err)
	require.Equal(t, srv.CreatedPostID(), created.ID)
	require.Equal(t, 4, created.UserID)

	updated, err := c.UpdatePost(ctx, 11, model.PostDraft{UserID: 2, Title: "renamed"})
	require.NoError(t, err)
	require.Equal(t, "renamed", updated.Title)

	require.NoError(t, c.DeletePost(ctx, 11))
}

func TestClient_NotFoundIsStatusError(t *testing.T) {
	t.Parallel()
	c, _ := newMockClient(t)

	_, err := c.GetPost(context.Background(), 9999)
	require.Error(t, err)
	require.True(t, apiclient.IsNotFound(err))

	var se *apiclient.StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.MethodGet, se.Method)
	require.Equal(t, "/posts/9999", se.Path)
}

func TestClient_SendsJSONHeadersAndBody(t *testing.T) {
	t.Parallel()

	var gotCT, gotMethod, gotPath string
	var gotBody map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCT = r.Header.Get("Content-Type")
		gotMethod = r.Method
		gotPath = r.URL.RequestURI()
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 101, "userId": 7, "title": "t"}`))
	}))
	t.Cleanup(ts.Close)

	c := apiclient.New(ts.URL+"/", apiclient.WithHTTPClient(ts.Client()))
	_, err := c.UpdatePost(context.Background(), 5, model.PostDraft{UserID: 7, Title: "t"})
	require.NoError(t, err)
	require.Equal(t, "application/json", gotCT)
	require.Equal(t, http.MethodPut, gotMethod)
	require.Equal(t, "/posts/5", gotPath)
	require.Equal(t, map[string]any{"userId": float64(7), "title": "t"}, gotBody)
}

func TestClient_ServerErrorPropagates(t *testing.T) {
	t.Parallel()

	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(ts.Close)

	c := apiclient.New(ts.URL, apiclient.WithHTTPClient(ts.Client()), apiclient.WithTimeout(2*time.Second))
	_, err := c.ListUsers(context.Background())
	require.Error(t, err)
	require.Equal(t, 1, calls, "client must not retry")

	var se *apiclient.StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusInternalServerError, se.StatusCode)
}

func TestClient_QueryFilterPath(t *testing.T) {
	t.Parallel()

	var gotURI string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURI = r.URL.RequestURI()
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(ts.Close)

	c := apiclient.New(ts.URL, apiclient.WithHTTPClient(ts.Client()))
	posts, err := c.ListPostsByUser(context.Background(), 3)
	require.NoError(t, err)
	require.Empty(t, posts)
	require.Equal(t, "/posts?userId=3", gotURI)
}

func TestNew_DefaultBaseURL(t *testing.T) {
	t.Parallel()
	require.Equal(t, apiclient.DefaultBaseURL, apiclient.New("  ").BaseURL())
}
