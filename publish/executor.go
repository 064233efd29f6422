// Package publish persists finished artifacts to a storage backend and
// returns the URL they can be retrieved from.
package publish

import (
	"context"
	"fmt"
	"io"
)

// Publish writes the artifact carried by reader to the backend named by
// backendType and returns a retrieval URL. Each artifact is published at
// most once; the write is idempotent-safe per destination path.
func Publish(ctx context.Context, accessInfo map[string]string, reader io.Reader, backendType string) (string, error) {
	switch backendType {
	case "directServe":
		url, err := ToDirectServe(ctx, accessInfo, reader)
		if err != nil {
			return "", fmt.Errorf("failed to publish to direct serve: %w", err)
		}
		return url, nil
	case "s3":
		url, err := ToS3(ctx, accessInfo, reader)
		if err != nil {
			return "", fmt.Errorf("failed to publish to S3: %w", err)
		}
		return url, nil
	case "gcs":
		url, err := ToGCS(ctx, accessInfo, reader)
		if err != nil {
			return "", fmt.Errorf("failed to publish to GCS: %w", err)
		}
		return url, nil
	case "sftp":
		url, err := ToSFTP(ctx, accessInfo, reader)
		if err != nil {
			return "", fmt.Errorf("failed to publish to SFTP: %w", err)
		}
		return url, nil
	default:
		return "", fmt.Errorf("unknown backend type: %s", backendType)
	}
}
