// Package storage wraps an S3-compatible object store for course media.
// Cover images go to a public bucket and are served by URL; lesson videos go
// to a private bucket and are only reachable through presigned URLs.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

type MediaStore struct {
	s3            *s3.Client
	presigner     *s3.PresignClient
	publicBucket  string
	privateBucket string
	endpoint      string
	publicURL     string
}

// NewMediaStore builds a client with static credentials and path-style
// addressing, which most self-hosted S3 backends require.
func NewMediaStore(endpoint, region, accessKey, secretKey, publicBucket, privateBucket, publicURL string) *MediaStore {
	endpoint = strings.TrimRight(endpoint, "/")

	client := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		UsePathStyle: true,
	})

	return &MediaStore{
		s3:            client,
		presigner:     s3.NewPresignClient(client),
		publicBucket:  publicBucket,
		privateBucket: privateBucket,
		endpoint:      endpoint,
		publicURL:     strings.TrimRight(publicURL, "/"),
	}
}

// UploadPublic stores an object under folder/<uuid> in the public bucket with
// a public-read ACL and returns the generated key.
func (m *MediaStore) UploadPublic(ctx context.Context, folder, contentType string, data []byte) (string, error) {
	key := folder + "/" + uuid.NewString()
	_, err := m.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(m.publicBucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
		ACL:           s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload %s/%s: %w", m.publicBucket, key, err)
	}
	return key, nil
}

// UploadPrivate stores an object under folder/<uuid> in the private bucket
// and returns the generated key.
func (m *MediaStore) UploadPrivate(ctx context.Context, folder, contentType string, data []byte) (string, error) {
	key := folder + "/" + uuid.NewString()
	_, err := m.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(m.privateBucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload %s/%s: %w", m.privateBucket, key, err)
	}
	return key, nil
}

// Delete removes an object. Used to clean up orphaned uploads when a later
// step of the authoring flow fails.
func (m *MediaStore) Delete(ctx context.Context, key string, private bool) error {
	bucket := m.publicBucket
	if private {
		bucket = m.privateBucket
	}
	_, err := m.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s/%s: %w", bucket, key, err)
	}
	return nil
}

// PublicURL returns the display URL for a public-bucket key. Uses the
// configured CDN URL when set, otherwise a path-style URL on the endpoint.
func (m *MediaStore) PublicURL(key string) string {
	if m.publicURL != "" {
		return m.publicURL + "/" + key
	}
	return m.endpoint + "/" + m.publicBucket + "/" + key
}

// PresignedURL generates a time-limited GET URL for a private-bucket key.
func (m *MediaStore) PresignedURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	req, err := m.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(m.privateBucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", fmt.Errorf("s3 presign %s/%s: %w", m.privateBucket, key, err)
	}
	return req.URL, nil
}
