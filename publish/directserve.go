package publish

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"flipbook/logger"
)

// ToDirectServe writes the artifact into the local serve tree, where the
// HTTP server exposes it directly. accessInfo keys: baseDir, folder,
// filename, and optionally baseURL for the returned link.
func ToDirectServe(ctx context.Context, accessInfo map[string]string, reader io.Reader) (string, error) {
	baseDir := accessInfo["baseDir"]
	folder := accessInfo["folder"]
	filename := accessInfo["filename"]

	fullDir := filepath.Join(baseDir, folder)
	fullPath := filepath.Join(fullDir, filename)

	if err := os.MkdirAll(fullDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create directories: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", fullPath, err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return "", fmt.Errorf("failed to write to file %s: %w", fullPath, err)
	}

	logger.Infof("Published '%s' to '%s'", filename, fullPath)

	baseURL := accessInfo["baseURL"]
	if baseURL == "" {
		baseURL = "/serve"
	}
	return baseURL + "/" + path.Join(folder, filename), nil
}
