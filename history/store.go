// Package history records conversion outcomes, success and failure alike,
// in a pebble store keyed by conversion id.
package history

import (
	"encoding/json"
	"fmt"
	"time"

	pebble "github.com/cockroachdb/pebble"
)

// Record captures one finished conversion.
type Record struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Kinds     []string  `json:"kinds"`
	Frames    int       `json:"frames,omitempty"` // animation frame count
	Pages     int       `json:"pages,omitempty"`  // document page count
	Bytes     int       `json:"bytes,omitempty"`  // total artifact bytes
	Error     string    `json:"error,omitempty"`
}

// Failed reports whether the conversion ended in error.
func (r Record) Failed() bool { return r.Error != "" }

var db *pebble.DB

// Init opens (or creates) the history store at dbPath.
func Init(dbPath string) error {
	var err error
	db, err = pebble.Open(dbPath, &pebble.Options{})
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	return nil
}

// Close closes the history store.
func Close() error {
	if db != nil {
		return db.Close()
	}
	return nil
}

// Store persists one conversion record. A zero timestamp is filled in.
func Store(rec Record) error {
	if db == nil {
		return fmt.Errorf("history store not initialized")
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal history record: %w", err)
	}
	return db.Set([]byte(rec.ID), data, pebble.Sync)
}

// Get retrieves a record by conversion id. A missing record returns
// (nil, nil), not an error.
func Get(id string) (*Record, error) {
	if db == nil {
		return nil, fmt.Errorf("history store not initialized")
	}
	data, closer, err := db.Get([]byte(id))
	if err != nil {
		if err == pebble.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	defer closer.Close()

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history record: %w", err)
	}
	return &rec, nil
}

// List returns all stored records.
func List() ([]Record, error) {
	if db == nil {
		return nil, fmt.Errorf("history store not initialized")
	}
	iter, err := db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var records []Record
	for iter.First(); iter.Valid(); iter.Next() {
		var rec Record
		if err := json.Unmarshal(iter.Value(), &rec); err != nil {
			continue // skip invalid records
		}
		records = append(records, rec)
	}
	return records, nil
}

// CleanupOldRecords removes records older than maxAge.
func CleanupOldRecords(maxAge time.Duration) error {
	if db == nil {
		return fmt.Errorf("history store not initialized")
	}
	cutoff := time.Now().Add(-maxAge)
	iter, err := db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return err
	}
	defer iter.Close()

	var stale [][]byte
	for iter.First(); iter.Valid(); iter.Next() {
		var rec Record
		if err := json.Unmarshal(iter.Value(), &rec); err != nil {
			continue
		}
		if rec.Timestamp.Before(cutoff) {
			key := make([]byte, len(iter.Key()))
			copy(key, iter.Key())
			stale = append(stale, key)
		}
	}

	for _, key := range stale {
		if err := db.Delete(key, pebble.Sync); err != nil {
			return fmt.Errorf("failed to delete old history record: %w", err)
		}
	}
	return nil
}

// CheckHealth verifies the store is open and answering reads.
func CheckHealth() error {
	if db == nil {
		return fmt.Errorf("history store not initialized")
	}
	_, closer, err := db.Get([]byte("__health_check__"))
	if err != nil && err != pebble.ErrNotFound {
		return fmt.Errorf("history store health check failed: %w", err)
	}
	if closer != nil {
		closer.Close()
	}
	return nil
}
