package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/ellery/crewdesk/pkg/config"
)

const (
	// AvatarBucket holds profile pictures; InspirationBucket holds idea
	// reference media. Both are public-read.
	AvatarBucket      = "avatars"
	InspirationBucket = "inspirations"
)

var ErrUnsupportedType = errors.New("unsupported content type")

var imageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var videoTypes = map[string]bool{
	"video/mp4":       true,
	"video/quicktime": true,
	"video/x-msvideo": true,
}

// ValidAvatarType reports whether a content type is acceptable for
// avatar uploads (images only).
func ValidAvatarType(contentType string) bool {
	return imageTypes[contentType]
}

// ValidInspirationType reports whether a content type is acceptable for
// inspiration uploads (images or video).
func ValidInspirationType(contentType string) bool {
	return imageTypes[contentType] || videoTypes[contentType]
}

// Client wraps an S3-compatible object store and builds public URLs for
// uploaded objects.
type Client struct {
	s3            *s3.Client
	publicBaseURL string
	logger        *slog.Logger
}

func New(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("loading storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		// Path-style addressing works with MinIO and other self-hosted
		// S3-compatible stores.
		o.UsePathStyle = true
	})

	return &Client{
		s3:            client,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		logger:        logger,
	}, nil
}

// EnsureBucket creates the bucket public-read if it does not exist yet.
func (c *Client) EnsureBucket(ctx context.Context, name string) error {
	_, err := c.s3.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(name),
		ACL:    types.BucketCannedACLPublicRead,
	})
	if err != nil {
		var owned *types.BucketAlreadyOwnedByYou
		var exists *types.BucketAlreadyExists
		if errors.As(err, &owned) || errors.As(err, &exists) {
			return nil
		}
		return fmt.Errorf("creating bucket %s: %w", name, err)
	}
	c.logger.Info("created storage bucket", "bucket", name)
	return nil
}

// Upload stores the object and returns its public URL.
func (c *Client) Upload(ctx context.Context, bucket, key, contentType string, body io.Reader) (string, error) {
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s/%s: %w", bucket, key, err)
	}
	return c.PublicURL(bucket, key), nil
}

// PublicURL builds the public URL for an object without touching the
// store.
func (c *Client) PublicURL(bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", c.publicBaseURL, bucket, key)
}
