package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestUserDraft_ApplyToClearsOptionalFields(t *testing.T) {
	t.Parallel()

	u := User{ID: 1, Name: "Leanne", Phone: "1-770", Website: "x.org", Company: &Company{Name: "Acme"}}
	got := UserDraft{Name: "Leanne", Username: "Bret", Email: "l@x.org"}.ApplyTo(u)
	if got.Phone != "" || got.Website != "" {
		t.Fatalf("cleared fields kept: %#v", got)
	}
	if got.Company == nil || got.Company.Name != "Acme" {
		t.Fatalf("fields outside the form must survive: %#v", got)
	}
}

func TestUserDraft_BodySendsClearedFields(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(UserDraft{Name: "Leanne"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, want := range []string{`"phone":""`, `"website":""`} {
		if !strings.Contains(string(b), want) {
			t.Fatalf("body %s missing %s", b, want)
		}
	}
}
