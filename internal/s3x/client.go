package s3x

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectStore is the subset of S3 the upload service needs. *Client is the
// real implementation; tests substitute a fake.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte) (*ObjectRef, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// ObjectRef identifies a stored object.
type ObjectRef struct {
	Bucket   string
	Key      string
	Location string
	ETag     string
}

type Client struct {
	s3     *s3.Client
	bucket string
}

// NewClient loads the default AWS config (credentials and region come from
// the environment) and wraps an S3 client bound to one bucket.
func NewClient(ctx context.Context, bucket, region string) (*Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return &Client{
		s3:     s3.NewFromConfig(cfg),
		bucket: bucket,
	}, nil
}

func (c *Client) Put(ctx context.Context, key string, body []byte) (*ObjectRef, error) {
	out, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(body),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to put object %s: %w", key, err)
	}
	ref := &ObjectRef{
		Bucket:   c.bucket,
		Key:      key,
		Location: fmt.Sprintf("s3://%s/%s", c.bucket, key),
	}
	if out.ETag != nil {
		ref.ETag = *out.ETag
	}
	return ref, nil
}

func (c *Client) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", key, err)
	}
	return out.Body, nil
}

func (c *Client) Delete(ctx context.Context, key string) error {
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}
