package config

import (
	"os"
	"path/filepath"
)

// GetDataDir returns the directory where Flipbook keeps its databases.
// Priority: FLIPBOOK_DATA_DIR environment variable > "./data" default.
func GetDataDir() string {
	if dir := os.Getenv("FLIPBOOK_DATA_DIR"); dir != "" {
		return dir
	}
	return "./data"
}

// GetHistoryDBPath returns the full path to the conversion history database.
// Path: {DATA_DIR}/history.db
func GetHistoryDBPath() string {
	return filepath.Join(GetDataDir(), "history.db")
}

// GetTempRoot returns the root directory under which per-job workspaces are
// created. Configurable via FLIPBOOK_TMP_DIR; defaults to the OS temp dir.
func GetTempRoot() string {
	if dir := os.Getenv("FLIPBOOK_TMP_DIR"); dir != "" {
		return dir
	}
	return os.TempDir()
}

// GetDirectServeBaseDir returns the base directory for directly served
// artifacts. Configurable via FLIPBOOK_SERVE_DIR by server administrators,
// not by end users. Defaults to "./serve" relative to the executable.
func GetDirectServeBaseDir() string {
	if dir := os.Getenv("FLIPBOOK_SERVE_DIR"); dir != "" {
		return dir
	}
	return "./serve"
}

// GetPublishBackend returns the storage backend finished artifacts are
// published to: directServe, s3, gcs or sftp. Configurable via
// FLIPBOOK_PUBLISH_BACKEND; defaults to directServe.
func GetPublishBackend() string {
	if backend := os.Getenv("FLIPBOOK_PUBLISH_BACKEND"); backend != "" {
		return backend
	}
	return "directServe"
}

// GetPublishAccessInfo returns the static access info for the configured
// publish backend, read from environment variables. Per-artifact keys
// (filename, key, object, remotePath) are filled in by the publisher.
func GetPublishAccessInfo() map[string]string {
	switch GetPublishBackend() {
	case "s3":
		return map[string]string{
			"accessKey": os.Getenv("FLIPBOOK_S3_ACCESS_KEY"),
			"secretKey": os.Getenv("FLIPBOOK_S3_SECRET_KEY"),
			"region":    os.Getenv("FLIPBOOK_S3_REGION"),
			"bucket":    os.Getenv("FLIPBOOK_S3_BUCKET"),
		}
	case "gcs":
		return map[string]string{
			"credentialsJSON": os.Getenv("FLIPBOOK_GCS_CREDENTIALS"),
			"bucket":          os.Getenv("FLIPBOOK_GCS_BUCKET"),
		}
	case "sftp":
		return map[string]string{
			"host":          os.Getenv("FLIPBOOK_SFTP_HOST"),
			"port":          os.Getenv("FLIPBOOK_SFTP_PORT"),
			"user":          os.Getenv("FLIPBOOK_SFTP_USER"),
			"password":      os.Getenv("FLIPBOOK_SFTP_PASSWORD"),
			"privateKey":    os.Getenv("FLIPBOOK_SFTP_KEY"),
			"remoteDir":     os.Getenv("FLIPBOOK_SFTP_DIR"),
			"publicBaseURL": os.Getenv("FLIPBOOK_SFTP_BASE_URL"),
		}
	default:
		return map[string]string{
			"baseDir": GetDirectServeBaseDir(),
		}
	}
}

// GetListenAddr returns the HTTP listen address.
// Configurable via FLIPBOOK_ADDR; defaults to ":8080".
func GetListenAddr() string {
	if addr := os.Getenv("FLIPBOOK_ADDR"); addr != "" {
		return addr
	}
	return ":8080"
}
