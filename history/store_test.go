package history

import (
	"path/filepath"
	"testing"
	"time"
)

func initTestStore(t *testing.T) {
	t.Helper()
	if err := Init(filepath.Join(t.TempDir(), "history.db")); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { Close() })
}

func TestStoreAndGet(t *testing.T) {
	initTestStore(t)

	rec := Record{
		ID:     "abc123",
		Kinds:  []string{"animation", "document"},
		Frames: 3,
		Pages:  3,
		Bytes:  1024,
	}
	if err := Store(rec); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	got, err := Get("abc123")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("record not found")
	}
	if got.Frames != 3 || got.Pages != 3 || got.Bytes != 1024 {
		t.Errorf("record = %+v", got)
	}
	if got.Timestamp.IsZero() {
		t.Error("zero timestamp was not filled in")
	}
	if got.Failed() {
		t.Error("success record reports failed")
	}
}

func TestGetMissingIsNotAnError(t *testing.T) {
	initTestStore(t)

	got, err := Get("does-not-exist")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil record, got %+v", got)
	}
}

func TestFailureRecord(t *testing.T) {
	initTestStore(t)

	if err := Store(Record{ID: "bad1", Kinds: []string{"animation"}, Error: "encoding failed"}); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	got, err := Get("bad1")
	if err != nil || got == nil {
		t.Fatalf("Get failed: %v %v", got, err)
	}
	if !got.Failed() {
		t.Error("failure record does not report failed")
	}
}

func TestListAndCleanup(t *testing.T) {
	initTestStore(t)

	old := Record{ID: "old1", Timestamp: time.Now().Add(-48 * time.Hour)}
	recent := Record{ID: "new1", Timestamp: time.Now()}
	for _, rec := range []Record{old, recent} {
		if err := Store(rec); err != nil {
			t.Fatalf("Store failed: %v", err)
		}
	}

	records, err := List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("List returned %d records, want 2", len(records))
	}

	if err := CleanupOldRecords(24 * time.Hour); err != nil {
		t.Fatalf("CleanupOldRecords failed: %v", err)
	}

	records, err = List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 1 || records[0].ID != "new1" {
		t.Errorf("after cleanup: %+v", records)
	}
}

func TestCheckHealth(t *testing.T) {
	initTestStore(t)
	if err := CheckHealth(); err != nil {
		t.Errorf("CheckHealth failed: %v", err)
	}
}
