package routes

import (
	"encoding/json"
	"net/http"

	"flipbook/history"
	"flipbook/logger"
)

// HistoryHandler serves conversion outcome records: ?id=<id> returns one
// record, no id lists everything.
func HistoryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if id := r.URL.Query().Get("id"); id != "" {
		rec, err := history.Get(id)
		if err != nil {
			http.Error(w, "Failed to query history", http.StatusInternalServerError)
			return
		}
		if rec == nil {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		if err := json.NewEncoder(w).Encode(rec); err != nil {
			logger.Errorf("Failed to encode history record: %v", err)
		}
		return
	}

	records, err := history.List()
	if err != nil {
		http.Error(w, "Failed to list history", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []history.Record{}
	}
	if err := json.NewEncoder(w).Encode(records); err != nil {
		logger.Errorf("Failed to encode history records: %v", err)
	}
}
