package docs

import (
	"reflect"
	"testing"
)

func TestTopics_Sorted(t *testing.T) {
	t.Parallel()

	got := Topics()
	want := []string{"config", "keys", "routes"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Topics: got %v want %v", got, want)
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	if body, ok := Get(" Keys "); !ok || body == "" {
		t.Fatalf("expected keys topic")
	}
	for _, topic := range []string{"", "nope", "../docs", "content/keys"} {
		if _, ok := Get(topic); ok {
			t.Fatalf("Get(%q) should fail", topic)
		}
	}
}
