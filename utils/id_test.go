package utils

import (
	"strings"
	"testing"
)

func TestRandomID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := RandomID(12)
		if err != nil {
			t.Fatalf("RandomID failed: %v", err)
		}
		if len(id) != 12 {
			t.Fatalf("id length = %d, want 12", len(id))
		}
		for _, c := range id {
			if !strings.ContainsRune(idCharset, c) {
				t.Fatalf("id %q contains character outside charset", id)
			}
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}
