package main

import (
	"context"
	"net/http"
	"time"

	"flipbook/config"
	"flipbook/convert"
	"flipbook/encoder"
	"flipbook/history"
	"flipbook/logger"
	"flipbook/routes"
)

func main() {
	logger.Info("Starting Flipbook server initialization")

	logger.Debug("Initializing history database")
	if err := history.Init(config.GetHistoryDBPath()); err != nil {
		logger.Fatalf("Failed to initialize history store: %v", err)
	}
	defer history.Close()
	logger.Info("History database initialized successfully")

	// External tool availability is probed once here and injected; it is
	// never re-checked per job.
	logger.Info("Probing external encoder tools")
	tools := encoder.Probe()
	converter := convert.New(encoder.NewChain(tools), config.GetTempRoot())

	logger.Info("Starting cleanup routine (runs every 24 hours)")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go cleanupRoutine(ctx)

	logger.Info("Registering HTTP routes")
	http.HandleFunc("/convert", routes.ConvertHandler(converter))
	http.HandleFunc("/health", routes.HealthHandler(tools))
	http.HandleFunc("/version", routes.VersionHandler)
	http.HandleFunc("/history", routes.HistoryHandler)
	http.Handle("/serve/", http.StripPrefix("/serve/",
		http.FileServer(http.Dir(config.GetDirectServeBaseDir()))))

	addr := config.GetListenAddr()
	logger.Infof("Flipbook server starting on %s", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Fatalf("Server failed to start: %v", err)
	}
}

// cleanupRoutine periodically removes old conversion history records.
func cleanupRoutine(ctx context.Context) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Cleanup routine stopped due to context cancellation")
			return
		case <-ticker.C:
			maxAge := 30 * 24 * time.Hour
			logger.Debugf("Cleaning up history records older than %v", maxAge)
			if err := history.CleanupOldRecords(maxAge); err != nil {
				logger.Errorf("Failed to cleanup old history records: %v", err)
			} else {
				logger.Info("Successfully cleaned up old history records")
			}
		}
	}
}
