package mockapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"crudconsole/internal/model"

	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestServer_CreateAlwaysEchoesFixedID(t *testing.T) {
	t.Parallel()
	s := New(Options{})

	for i := 0; i < 2; i++ {
		rec := serve(t, s, http.MethodPost, "/posts", `{"userId":1,"title":"x"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
		var p model.Post
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
		require.Equal(t, 101, p.ID)
		require.Equal(t, "x", p.Title)
	}

	rec := serve(t, s, http.MethodGet, "/posts", "")
	var all []model.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	require.Len(t, all, 100, "creates are not stored")
}

func TestServer_FilterAndNotFound(t *testing.T) {
	t.Parallel()
	s := New(Options{})

	rec := serve(t, s, http.MethodGet, "/posts?userId=10", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var posts []model.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &posts))
	require.Len(t, posts, 10)
	require.Equal(t, 91, posts[0].ID)

	rec = serve(t, s, http.MethodGet, "/posts?userId=abc", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())

	require.Equal(t, http.StatusNotFound, serve(t, s, http.MethodGet, "/users/42", "").Code)
	require.Equal(t, http.StatusNotFound, serve(t, s, http.MethodPut, "/users/42", `{"name":"x"}`).Code)
	require.Equal(t, http.StatusNotFound, serve(t, s, http.MethodDelete, "/posts/0", "").Code)
}

func TestServer_UpdateMergesDraft(t *testing.T) {
	t.Parallel()
	s := New(Options{})

	rec := serve(t, s, http.MethodPut, "/users/1", `{"name":"L","username":"l","email":"l@x.io"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var u model.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &u))
	require.Equal(t, 1, u.ID)
	require.Equal(t, "L", u.Name)
	require.NotNil(t, u.Address, "fields outside the draft are kept")
}

func TestServer_RateLimit(t *testing.T) {
	t.Parallel()
	s := New(Options{RateLimit: 0.001})

	codes := map[int]int{}
	for i := 0; i < 10; i++ {
		codes[serve(t, s, http.MethodGet, "/users/1", "").Code]++
	}
	require.Greater(t, codes[http.StatusTooManyRequests], 0)
}
