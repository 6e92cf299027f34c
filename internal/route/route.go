package route

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

type Kind int

const (
	Home Kind = iota
	Users
	Posts
)

func (k Kind) String() string {
	switch k {
	case Users:
		return "users"
	case Posts:
		return "posts"
	default:
		return "home"
	}
}

// Route is a place in the console. UserID only applies to Posts, where it
// seeds the user filter; 0 means all users.
type Route struct {
	Kind   Kind
	UserID int
}

func PostsOf(userID int) Route { return Route{Kind: Posts, UserID: userID} }

// Parse accepts "/", "/users" and "/posts" with an optional userId query.
// An unusable userId is dropped rather than rejected.
func Parse(s string) (Route, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Route{Kind: Home}, nil
	}
	u, err := url.Parse(s)
	if err != nil {
		return Route{}, fmt.Errorf("parse route %q: %w", s, err)
	}
	switch strings.TrimRight(u.Path, "/") {
	case "":
		return Route{Kind: Home}, nil
	case "/users":
		return Route{Kind: Users}, nil
	case "/posts":
		r := Route{Kind: Posts}
		if v := u.Query().Get("userId"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				r.UserID = n
			}
		}
		return r, nil
	default:
		return Route{}, fmt.Errorf("unknown route: %s", s)
	}
}

func (r Route) String() string {
	switch r.Kind {
	case Users:
		return "/users"
	case Posts:
		if r.UserID > 0 {
			return fmt.Sprintf("/posts?userId=%d", r.UserID)
		}
		return "/posts"
	default:
		return "/"
	}
}

// LooksLikeRoute reports whether a command-line token is meant as a route.
func LooksLikeRoute(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), "/")
}
