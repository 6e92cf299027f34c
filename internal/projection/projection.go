package projection

import (
	"fmt"
	"strings"

	"crudconsole/internal/model"
)

// Empty explains why a projection has no rows.
type Empty int

const (
	// NotEmpty means the projection has rows.
	NotEmpty Empty = iota
	// NoData means nothing was fetched and no filter is active.
	NoData
	// NoMatch means a search term or foreign-key filter excluded every row.
	NoMatch
)

// Result is the subset of a collection a view actually renders.
type Result[T any] struct {
	Rows  []T
	Empty Empty
}

// Filter keeps the items where at least one of fields(item) contains term,
// ignoring case. An empty term keeps everything. Order is preserved.
func Filter[T any](items []T, term string, fields func(T) []string) []T {
	if term == "" {
		return append([]T(nil), items...)
	}
	needle := strings.ToLower(term)
	out := make([]T, 0, len(items))
	for _, it := range items {
		for _, f := range fields(it) {
			if strings.Contains(strings.ToLower(f), needle) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// Project filters items by term and classifies an empty outcome.
// filterActive reports a foreign-key filter applied upstream (server-side).
func Project[T any](items []T, term string, filterActive bool, fields func(T) []string) Result[T] {
	rows := Filter(items, term, fields)
	r := Result[T]{Rows: rows}
	if len(rows) == 0 {
		if term != "" || filterActive {
			r.Empty = NoMatch
		} else {
			r.Empty = NoData
		}
	}
	return r
}

// PostFields are the searchable fields of a post.
func PostFields(p model.Post) []string { return []string{p.Title} }

// UserFields are the searchable fields of a user.
func UserFields(u model.User) []string { return []string{u.Name, u.Username, u.Email} }

// EmptyMessage is the text of the placeholder row shown for an empty result.
func EmptyMessage(e Empty, plural string) string {
	switch e {
	case NoMatch:
		return fmt.Sprintf("No %s found matching your filters", plural)
	case NoData:
		return fmt.Sprintf("No %s available", plural)
	default:
		return ""
	}
}

// Summary is the line shown under an active search box.
func Summary(n int, singular string) string {
	s := fmt.Sprintf("Found %d %s", n, singular)
	if n != 1 {
		s += "s"
	}
	if n == 0 {
		s += " - Try different keywords"
	}
	return s
}
