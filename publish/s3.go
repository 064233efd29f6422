package publish

import (
	"context"
	"fmt"
	"io"

	"flipbook/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ToS3 uploads the artifact to an S3 object and is fully self-contained,
// initializing its own client from the access info. accessInfo keys:
// accessKey, secretKey, region, bucket, key.
func ToS3(ctx context.Context, accessInfo map[string]string, reader io.Reader) (string, error) {
	creds := credentials.NewStaticCredentialsProvider(accessInfo["accessKey"], accessInfo["secretKey"], "")
	key := accessInfo["key"]
	bucket := accessInfo["bucket"]
	region := accessInfo["region"]

	s3Client := s3.New(s3.Options{
		Region:      region,
		Credentials: creds,
	})
	uploader := manager.NewUploader(s3Client)

	_, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   reader,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s to bucket %s: %w", key, bucket, err)
	}

	logger.Infof("Published object '%s' to bucket '%s'", key, bucket)
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, key), nil
}
