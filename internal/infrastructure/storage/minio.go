package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"certificates-backend/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// BlobStore is the binary asset store for certificate backgrounds. Paths are
// relative to the store root and use forward slashes regardless of platform.
type BlobStore interface {
	Save(ctx context.Context, name string, data []byte, contentType string) (string, error)
	Read(ctx context.Context, storedPath string) ([]byte, error)
	// Delete is a no-op for a path that no longer exists; a reconciliation
	// pass may race another deletion.
	Delete(ctx context.Context, storedPath string) error
	ListAll(ctx context.Context) ([]string, error)
}

// MinIOStorage implements BlobStore on a MinIO bucket.
type MinIOStorage struct {
	client *minio.Client
	bucket string
	prefix string
}

func NewMinIOStorage(cfg config.MinIOConfig) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinIOStorage{
		client: client,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
	}, nil
}

func (s *MinIOStorage) Save(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	key := s.key(name)
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload to minio: %w", err)
	}
	return s.relative(key), nil
}

func (s *MinIOStorage) Read(ctx context.Context, storedPath string) ([]byte, error) {
	object, err := s.client.GetObject(ctx, s.bucket, s.key(storedPath), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", storedPath, err)
	}
	return data, nil
}

func (s *MinIOStorage) Delete(ctx context.Context, storedPath string) error {
	err := s.client.RemoveObject(ctx, s.bucket, s.key(storedPath), minio.RemoveObjectOptions{})
	if err != nil {
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			return nil
		}
		return fmt.Errorf("failed to delete object %s: %w", storedPath, err)
	}
	return nil
}

func (s *MinIOStorage) ListAll(ctx context.Context) ([]string, error) {
	opts := minio.ListObjectsOptions{Recursive: true}
	if s.prefix != "" {
		opts.Prefix = s.prefix + "/"
	}

	var paths []string
	for object := range s.client.ListObjects(ctx, s.bucket, opts) {
		if object.Err != nil {
			return nil, fmt.Errorf("error listing objects: %w", object.Err)
		}
		paths = append(paths, s.relative(object.Key))
	}
	return paths, nil
}

func (s *MinIOStorage) key(name string) string {
	name = strings.TrimPrefix(path.Clean("/"+name), "/")
	if s.prefix == "" {
		return name
	}
	if strings.HasPrefix(name, s.prefix+"/") {
		return name
	}
	return s.prefix + "/" + name
}

func (s *MinIOStorage) relative(key string) string {
	if s.prefix == "" {
		return key
	}
	return strings.TrimPrefix(key, s.prefix+"/")
}
