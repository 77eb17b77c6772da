// Package storage provides the object-upload service backing the media
// library. Bytes live in an S3-compatible bucket; the database only holds
// the object key and metadata.
package storage

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrTooLarge is returned when an upload exceeds the configured limit.
var ErrTooLarge = fmt.Errorf("file too large")

// S3Store uploads media objects to a bucket and hands back public URLs.
type S3Store struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewS3Store builds a store from the ambient AWS configuration (env vars,
// shared config). Returns nil when no bucket is configured; callers treat
// a nil store as "uploads disabled".
func NewS3Store(ctx context.Context, bucket, region, publicURL string) (*S3Store, error) {
	if bucket == "" {
		return nil, nil
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &S3Store{
		client:    s3.NewFromConfig(cfg),
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// Put stores an object under a generated key and returns the key and the
// public URL. The reader is buffered up to maxSize+1 bytes so oversized
// uploads are rejected without trusting the declared size.
func (s *S3Store) Put(ctx context.Context, filename, contentType string, maxSize int64, r io.Reader) (key, url string, err error) {
	suffix, err := randomHex(8)
	if err != nil {
		return "", "", err
	}
	ext := path.Ext(filename)
	key = fmt.Sprintf("media/%s/%s%s", time.Now().UTC().Format("2006/01"), suffix, ext)

	var buf bytes.Buffer
	limited := io.LimitReader(r, maxSize+1)
	n, err := io.Copy(&buf, limited)
	if err != nil {
		return "", "", err
	}
	if n > maxSize {
		return "", "", ErrTooLarge
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(contentType),
		Metadata: map[string]string{
			"original-filename": filename,
		},
	})
	if err != nil {
		return "", "", fmt.Errorf("s3 upload failed: %w", err)
	}
	return key, s.publicURL + "/" + key, nil
}

// Delete removes an object; a missing object is not an error.
func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
