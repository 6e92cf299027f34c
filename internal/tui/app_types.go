package tui

import (
	"crudconsole/internal/console"
)

type screen int

const (
	screenHome screen = iota
	screenUsers
	screenPosts
	screenPostDetail
)

func (s screen) String() string {
	switch s {
	case screenUsers:
		return "users"
	case screenPosts:
		return "posts"
	case screenPostDetail:
		return "post"
	default:
		return "home"
	}
}

type usersLoadedMsg struct{ res console.UsersLoad }

type postsLoadedMsg struct{ res console.PostsLoad }

type userOutcomeMsg struct{ out console.UserOutcome }

type postOutcomeMsg struct{ out console.PostOutcome }

// noticeDoneMsg dismisses the notice with seq on screen s, unless a newer
// notice replaced it.
type noticeDoneMsg struct {
	s   screen
	seq int
}

type activityRecordedMsg struct{ err error }
