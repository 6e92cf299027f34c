package store

import (
	"context"
	"testing"
	"time"
)

func TestActivity_AppendRead_NewestFirst(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := Store{Dir: t.TempDir()}
	base := time.Date(2025, 12, 21, 10, 0, 0, 0, time.UTC)

	seed := []Activity{
		{At: base, Resource: "posts", Action: "create", EntityID: 101, Local: true, Severity: "success", Message: "Post added successfully!"},
		{At: base.Add(time.Minute), Resource: "posts", Action: "delete", EntityID: 5, Severity: "error", Message: "Failed to delete post", Detail: "DELETE /posts/5: unexpected status 500"},
		{At: base.Add(2 * time.Minute), Resource: "users", Action: "update", EntityID: 2, Severity: "success", Message: "User updated successfully!"},
	}
	for _, a := range seed {
		stored, err := s.AppendActivity(ctx, a)
		if err != nil {
			t.Fatalf("AppendActivity: %v", err)
		}
		if stored.ID == "" {
			t.Fatalf("expected an id to be assigned")
		}
	}

	got, err := s.ReadActivity(ctx, 2)
	if err != nil {
		t.Fatalf("ReadActivity: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records; got %d", len(got))
	}
	if got[0].Action != "update" || got[1].Action != "delete" {
		t.Fatalf("expected newest first; got %q then %q", got[0].Action, got[1].Action)
	}
	if got[1].Detail == "" || got[1].EntityID != 5 {
		t.Fatalf("detail/entity lost: %#v", got[1])
	}
	if !got[0].At.Equal(base.Add(2 * time.Minute)) {
		t.Fatalf("timestamp: got %v", got[0].At)
	}

	all, err := s.ReadActivity(ctx, 0)
	if err != nil {
		t.Fatalf("ReadActivity(all): %v", err)
	}
	if len(all) != 3 || !all[2].Local {
		t.Fatalf("expected 3 records with the oldest local; got %#v", all)
	}
}

func TestActivity_DisabledStoreIsNoop(t *testing.T) {
	t.Parallel()

	s := Store{}
	if _, err := s.AppendActivity(context.Background(), Activity{Message: "x"}); err != nil {
		t.Fatalf("AppendActivity: %v", err)
	}
	got, err := s.ReadActivity(context.Background(), 10)
	if err != nil || len(got) != 0 {
		t.Fatalf("expected nothing; got %v %v", got, err)
	}
}
