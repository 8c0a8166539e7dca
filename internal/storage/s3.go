package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Uploader stores objects in an S3 bucket and derives public URLs from
// the configured bucket URL.
type S3Uploader struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewS3Uploader(ctx context.Context, bucket, region, baseURL string) (*S3Uploader, error) {
	cfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3Uploader{
		client:  s3.NewFromConfig(cfg),
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

func (u *S3Uploader) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return key, nil
}

func (u *S3Uploader) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	_, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// PublicURL returns the bucket URL with the key URL-encoded, matching how
// stored paths are exposed to clients. Path separators stay intact.
func (u *S3Uploader) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	return u.baseURL + (&url.URL{Path: key}).EscapedPath()
}
