package storage

import (
	"context"
	"fmt"

	"medrecords/internal/domain/blob"
	"medrecords/internal/shared/config"
	"medrecords/internal/shared/logger"
)

// NewStore builds the blob backend selected by cfg.Driver.
func NewStore(ctx context.Context, cfg config.StorageConfig, log logger.Interface) (blob.Store, error) {
	switch cfg.Driver {
	case "", config.StorageDriverLocal:
		return NewLocalStore(cfg.BasePath, log)
	case config.StorageDriverS3:
		if cfg.S3.Bucket == "" {
			return nil, fmt.Errorf("storage.s3.bucket is required for the s3 driver")
		}
		client, err := NewS3Client(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return NewS3Store(client, cfg.S3.Bucket, cfg.S3.Prefix, log), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}
