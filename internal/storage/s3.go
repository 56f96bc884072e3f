package storage

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// objectAPI is the subset of *minio.Client used by S3.
type objectAPI interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// S3Options configures NewS3.
type S3Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	PublicURL string // defaults to <scheme>://<endpoint>/<bucket>
	Prefix    string // optional key prefix, e.g. "uploads"
}

// S3 stores files in an S3-compatible bucket.
type S3 struct {
	client    objectAPI
	bucket    string
	prefix    string
	publicURL string
}

// NewS3 builds a minio client for opts. It does not contact the server.
func NewS3(opts S3Options) (*S3, error) {
	if opts.Endpoint == "" || opts.Bucket == "" {
		return nil, errors.New("s3: endpoint and bucket are required")
	}
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, err
	}
	public := strings.TrimRight(opts.PublicURL, "/")
	if public == "" {
		scheme := "http"
		if opts.UseSSL {
			scheme = "https"
		}
		public = scheme + "://" + opts.Endpoint + "/" + opts.Bucket
	}
	return newS3(client, opts.Bucket, opts.Prefix, public), nil
}

func newS3(client objectAPI, bucket, prefix, publicURL string) *S3 {
	return &S3{
		client:    client,
		bucket:    bucket,
		prefix:    strings.Trim(prefix, "/"),
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

func (s *S3) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return s.prefix + "/" + name
}

// Save uploads r and returns the object's public URL.
func (s *S3) Save(ctx context.Context, dir, name string, r io.Reader, size int64, contentType string) (string, error) {
	rel, err := joinKey(dir, name)
	if err != nil {
		return "", err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := s.key(rel)
	if _, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return "", err
	}
	return s.publicURL + "/" + key, nil
}

// Remove deletes the object behind publicPath when it belongs to this bucket.
func (s *S3) Remove(ctx context.Context, publicPath string) error {
	key, ok := s.objectKey(publicPath)
	if !ok {
		return nil
	}
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

// Manages reports whether publicPath is an object URL of this store.
func (s *S3) Manages(publicPath string) bool {
	_, ok := s.objectKey(publicPath)
	return ok
}

func (s *S3) objectKey(publicPath string) (string, bool) {
	base := s.publicURL + "/"
	if s.prefix != "" {
		base += s.prefix + "/"
	}
	if !strings.HasPrefix(publicPath, base) {
		return "", false
	}
	rel := strings.TrimPrefix(publicPath, base)
	if _, ok := splitKey(rel); !ok {
		return "", false
	}
	return s.key(rel), true
}
