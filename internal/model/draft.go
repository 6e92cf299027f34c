package model

import "strings"

// UserDraft holds the fields of a user form that has not been committed yet.
// It is also the request body for create and update calls.
type UserDraft struct {
	Name     string `json:"name,omitempty"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone"`
	Website  string `json:"website"`
}

// UserDraftFrom seeds an edit form with the editable fields of u.
func UserDraftFrom(u User) UserDraft {
	return UserDraft{
		Name:     u.Name,
		Username: u.Username,
		Email:    u.Email,
		Phone:    u.Phone,
		Website:  u.Website,
	}
}

// Normalized trims surrounding whitespace from every field.
func (d UserDraft) Normalized() UserDraft {
	return UserDraft{
		Name:     strings.TrimSpace(d.Name),
		Username: strings.TrimSpace(d.Username),
		Email:    strings.TrimSpace(d.Email),
		Phone:    strings.TrimSpace(d.Phone),
		Website:  strings.TrimSpace(d.Website),
	}
}

// ApplyTo merges the draft into u. Every form field wins, so a cleared
// phone or website is cleared on u too; address and company are kept.
func (d UserDraft) ApplyTo(u User) User {
	u.Name = d.Name
	u.Username = d.Username
	u.Email = d.Email
	u.Phone = d.Phone
	u.Website = d.Website
	return u
}

// PostDraft holds the fields of a post form that has not been committed yet.
type PostDraft struct {
	UserID int    `json:"userId,omitempty"`
	Title  string `json:"title,omitempty"`
	Body   string `json:"body,omitempty"`
}

func PostDraftFrom(p Post) PostDraft {
	return PostDraft{UserID: p.UserID, Title: p.Title, Body: p.Body}
}

func (d PostDraft) Normalized() PostDraft {
	return PostDraft{
		UserID: d.UserID,
		Title:  strings.TrimSpace(d.Title),
		Body:   strings.TrimSpace(d.Body),
	}
}

func (d PostDraft) ApplyTo(p Post) Post {
	p.Title = d.Title
	p.Body = d.Body
	if d.UserID != 0 {
		p.UserID = d.UserID
	}
	return p
}
