package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"distill/internal/logger"
)

const defaultRegion = "us-east-1"

// s3API is the subset of the S3 client the gateway needs; tests provide fakes.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetBucketLocation(ctx context.Context, params *s3.GetBucketLocationInput, optFns ...func(*s3.Options)) (*s3.GetBucketLocationOutput, error)
	ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
}

type implGateway struct {
	client s3API
	bucket string
	region string
	logger logger.Logger
}

// New creates a Gateway uploading into the given bucket. The region is the
// bucket's resolved region, recorded on every returned Reference.
func New(client s3API, bucket, region string, log logger.Logger) Gateway {
	return &implGateway{
		client: client,
		bucket: bucket,
		region: region,
		logger: log,
	}
}

// Upload stores the local file under its base name and returns the durable
// reference. The file is streamed, not read into memory.
func (g *implGateway) Upload(ctx context.Context, localPath string) (Reference, error) {
	key := filepath.Base(localPath)

	f, err := os.Open(localPath)
	if err != nil {
		return Reference{}, &UploadError{Bucket: g.bucket, Key: key, Err: err}
	}
	defer f.Close()

	g.logger.Info(ctx, "Uploading %s to s3://%s/%s", localPath, g.bucket, key)

	_, err = g.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(key),
		Body:   f,
	})
	if err != nil {
		return Reference{}, &UploadError{Bucket: g.bucket, Key: key, Err: err}
	}

	return Reference{Bucket: g.bucket, Key: key, Region: g.region}, nil
}

// ResolveRegion returns the region a bucket lives in. S3 reports us-east-1
// buckets with an empty location constraint.
func (g *implGateway) ResolveRegion(ctx context.Context, bucket string) (string, error) {
	out, err := g.client.GetBucketLocation(ctx, &s3.GetBucketLocationInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return "", fmt.Errorf("get bucket location for %s: %w", bucket, err)
	}

	if out.LocationConstraint == "" {
		return defaultRegion, nil
	}
	return string(out.LocationConstraint), nil
}

// ListBuckets returns the names of all buckets visible to the caller.
func (g *implGateway) ListBuckets(ctx context.Context) ([]string, error) {
	out, err := g.client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, fmt.Errorf("list buckets: %w", err)
	}

	names := make([]string, 0, len(out.Buckets))
	for _, b := range out.Buckets {
		names = append(names, aws.ToString(b.Name))
	}
	return names, nil
}
