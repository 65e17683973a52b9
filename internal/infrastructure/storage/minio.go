package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"speakers-backend/internal/config"
)

// MinIOStore keeps assets in an S3-compatible bucket. Used when
// STORAGE_DRIVER=minio; the default deployment uses LocalStore.
type MinIOStore struct {
	client *minio.Client
	bucket string
}

// NewMinIOStore connects and ensures the bucket exists.
func NewMinIOStore(cfg config.StorageConfig) (*MinIOStore, error) {
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

	return &MinIOStore{client: client, bucket: cfg.Bucket}, nil
}

// Save uploads under a fresh key. MinIO object writes are atomic, so a
// failed upload never leaves a partial object behind.
func (s *MinIOStore) Save(ctx context.Context, originalName string, content io.Reader) (string, error) {
	key := newAssetKey(originalName)

	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, s.bucket, key, content, -1, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload asset %s: %w", key, err)
	}

	return key, nil
}

func (s *MinIOStore) Delete(ctx context.Context, key string) (bool, error) {
	// RemoveObject succeeds on missing keys, so stat first to report
	// whether anything was actually removed.
	exists, err := s.Exists(ctx, key)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return false, fmt.Errorf("failed to delete asset %s: %w", key, err)
	}
	return true, nil
}

func (s *MinIOStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		var respErr minio.ErrorResponse
		if errors.As(err, &respErr) && respErr.Code == "NoSuchKey" {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat asset %s: %w", key, err)
	}
	return true, nil
}

func (s *MinIOStore) List(ctx context.Context) ([]AssetInfo, error) {
	var assets []AssetInfo

	for object := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Recursive: true}) {
		if object.Err != nil {
			return nil, fmt.Errorf("failed to list assets: %w", object.Err)
		}
		assets = append(assets, AssetInfo{Key: object.Key, ModTime: object.LastModified})
	}

	return assets, nil
}

var _ AssetStore = (*MinIOStore)(nil)
