// Package storage publishes built artifacts to S3-compatible object storage.
package storage

import (
	"context"
	"path"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/cities-cli/internal/config"
)

// objectStore is the subset of *minio.Client the publisher uses.
type objectStore interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	FPutObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// Publisher uploads artifact files to a bucket under a key prefix.
type Publisher struct {
	client objectStore
	bucket string
	prefix string
	region string
}

// Upload describes one published object.
type Upload struct {
	Key  string
	Size int64
}

// NewPublisher creates a MinIO-backed publisher from storage config.
func NewPublisher(cfg config.StorageConfig) (*Publisher, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, eris.New("storage: endpoint, access key and secret key are required")
	}
	if cfg.Bucket == "" {
		return nil, eris.New("storage: bucket is required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, eris.Wrap(err, "storage: create client")
	}

	return newPublisher(client, cfg), nil
}

func newPublisher(client objectStore, cfg config.StorageConfig) *Publisher {
	return &Publisher{
		client: client,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
		region: cfg.Region,
	}
}

// EnsureBucket creates the bucket if it does not exist.
func (p *Publisher) EnsureBucket(ctx context.Context) error {
	exists, err := p.client.BucketExists(ctx, p.bucket)
	if err != nil {
		return eris.Wrapf(err, "storage: check bucket %s", p.bucket)
	}
	if exists {
		return nil
	}
	if err := p.client.MakeBucket(ctx, p.bucket, minio.MakeBucketOptions{Region: p.region}); err != nil {
		return eris.Wrapf(err, "storage: make bucket %s", p.bucket)
	}
	zap.L().Info("storage: bucket created", zap.String("bucket", p.bucket))
	return nil
}

// ObjectKey returns the key a local file is published under.
func (p *Publisher) ObjectKey(file string) string {
	base := filepath.Base(file)
	if p.prefix == "" {
		return base
	}
	return path.Join(p.prefix, base)
}

// Publish uploads files concurrently. Results follow the order of files.
func (p *Publisher) Publish(ctx context.Context, files ...string) ([]Upload, error) {
	log := zap.L().With(
		zap.String("component", "storage.publish"),
		zap.String("bucket", p.bucket),
	)

	uploads := make([]Upload, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		key := p.ObjectKey(file)
		g.Go(func() error {
			info, err := p.client.FPutObject(gctx, p.bucket, key, file, minio.PutObjectOptions{
				ContentType: "application/json",
			})
			if err != nil {
				return eris.Wrapf(err, "storage: put %s", key)
			}
			uploads[i] = Upload{Key: key, Size: info.Size}
			log.Info("artifact published", zap.String("key", key), zap.Int64("bytes", info.Size))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return uploads, nil
}
