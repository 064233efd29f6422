package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"flipbook/encoder"
	"flipbook/history"
	"flipbook/logger"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	GoVersion string    `json:"go_version"`
	Uptime    string    `json:"uptime"`
	StartTime string    `json:"start_time"`
	FFmpeg    bool      `json:"ffmpeg"`
	Magick    bool      `json:"magick"`
	History   string    `json:"history"`
}

// Global start time for uptime calculation
var startTime = time.Now()

// formatUptime formats a duration into days, hours, minutes, seconds
func formatUptime(d time.Duration) string {
	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
}

// HealthHandler provides a health check endpoint for load balancers and
// monitoring, reporting external tool availability and store health.
func HealthHandler(tools encoder.Tools) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		historyStatus := "ok"
		status := "healthy"
		if err := history.CheckHealth(); err != nil {
			historyStatus = err.Error()
			status = "degraded"
		}

		response := HealthResponse{
			Status:    status,
			Timestamp: time.Now(),
			GoVersion: runtime.Version(),
			Uptime:    formatUptime(time.Since(startTime)),
			StartTime: startTime.Format("2006-01-02 15:04:05 MST"),
			FFmpeg:    tools.FFmpeg,
			Magick:    tools.Magick,
			History:   historyStatus,
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.Errorf("Failed to encode health response: %v", err)
		}
	}
}
