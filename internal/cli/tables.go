package cli

import (
	"encoding/json"
	"strconv"
	"time"

	"crudconsole/internal/model"
	"crudconsole/internal/store"
)

// The list types below marshal as plain arrays and also render as tables.

type userRows struct {
	users  []model.User
	counts func(id int) int
}

func (r userRows) MarshalJSON() ([]byte, error) { return marshalList(r.users) }

func (r userRows) Header() []string {
	return []string{"ID", "Name", "Username", "Email", "Posts"}
}

func (r userRows) Rows() [][]string {
	out := make([][]string, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, []string{idCell(u.ID, u.IsLocal), u.Name, u.Username, u.Email, strconv.Itoa(r.counts(u.ID))})
	}
	return out
}

type postRows struct {
	posts    []model.Post
	userName func(id int) string
}

func (r postRows) MarshalJSON() ([]byte, error) { return marshalList(r.posts) }

func (r postRows) Header() []string { return []string{"ID", "User", "Title"} }

func (r postRows) Rows() [][]string {
	out := make([][]string, 0, len(r.posts))
	for _, p := range r.posts {
		out = append(out, []string{idCell(p.ID, p.IsLocal), r.userName(p.UserID), p.Title})
	}
	return out
}

type activityRows []store.Activity

func (r activityRows) Header() []string {
	return []string{"At", "Resource", "Action", "ID", "Severity", "Message"}
}

func (r activityRows) Rows() [][]string {
	out := make([][]string, 0, len(r))
	for _, a := range r {
		out = append(out, []string{
			a.At.Local().Format(time.DateTime),
			a.Resource,
			a.Action,
			idCell(a.EntityID, a.Local),
			a.Severity,
			a.Message,
		})
	}
	return out
}

// detail is one entity: its JSON form, or a field/value table.
type detail struct {
	v    any
	rows [][]string
}

func (d detail) MarshalJSON() ([]byte, error) { return json.Marshal(d.v) }
func (d detail) Header() []string             { return []string{"Field", "Value"} }
func (d detail) Rows() [][]string             { return d.rows }

func userDetail(u model.User) detail {
	return detail{v: u, rows: [][]string{
		{"ID", idCell(u.ID, u.IsLocal)},
		{"Name", u.Name},
		{"Username", u.Username},
		{"Email", u.Email},
		{"Phone", u.Phone},
		{"Website", u.Website},
	}}
}

func postDetail(p model.Post, userName string) detail {
	return detail{v: p, rows: [][]string{
		{"ID", idCell(p.ID, p.IsLocal)},
		{"User", userName},
		{"Title", p.Title},
		{"Body", p.Body},
	}}
}

func deletedDetail(id int, local bool) detail {
	return detail{
		v:    map[string]any{"id": id, "deleted": true},
		rows: [][]string{{"ID", idCell(id, local)}, {"Deleted", "true"}},
	}
}

func idCell(id int, local bool) string {
	s := strconv.Itoa(id)
	if local {
		s += "*"
	}
	return s
}

// marshalList encodes an empty list as [] rather than null.
func marshalList[T any](xs []T) ([]byte, error) {
	if xs == nil {
		xs = []T{}
	}
	return json.Marshal(xs)
}
