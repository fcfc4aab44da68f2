package storage

import (
	"context"
	"fmt"
)

// Reference is the durable handle to an uploaded object. Immutable once
// returned by Upload.
type Reference struct {
	Bucket string
	Key    string
	Region string
}

// URI returns the s3:// form the transcription service expects as input.
func (r Reference) URI() string {
	return fmt.Sprintf("s3://%s/%s", r.Bucket, r.Key)
}

// Gateway uploads local files to object storage and resolves bucket metadata.
type Gateway interface {
	Upload(ctx context.Context, localPath string) (Reference, error)
	ResolveRegion(ctx context.Context, bucket string) (string, error)
	ListBuckets(ctx context.Context) ([]string, error)
}

// UploadError reports a failed object upload.
type UploadError struct {
	Bucket string
	Key    string
	Err    error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload s3://%s/%s: %v", e.Bucket, e.Key, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }
