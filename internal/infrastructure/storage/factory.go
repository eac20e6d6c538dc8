package storage

import (
	"context"
	"fmt"
	"net/http"

	catalogapp "github.com/retailpos/backend/internal/application/catalog"
	"github.com/retailpos/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewImageUploader builds the uploader selected by storage.uploader.
// It returns a nil uploader for "none", which disables image handling.
func NewImageUploader(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (catalogapp.ImageUploader, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	httpClient := &http.Client{}

	var publisher Publisher
	switch cfg.Uploader {
	case config.UploaderNone, "":
		logger.Info("Image uploads disabled")
		return nil, nil
	case config.UploaderTelegram:
		p, err := NewTelegramPublisher(cfg, httpClient)
		if err != nil {
			return nil, err
		}
		publisher = p
	case config.UploaderS3:
		p, err := NewS3Publisher(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		if cfg.S3CreateBucket {
			if err := p.EnsureBucket(ctx); err != nil {
				return nil, err
			}
		}
		logger.Info("S3 image storage ready", zap.String("bucket", p.Bucket()))
		publisher = p
	default:
		return nil, fmt.Errorf("unknown image uploader %q", cfg.Uploader)
	}

	logger.Info("Image uploader configured", zap.String("uploader", cfg.Uploader))
	return NewUploader(publisher,
		WithMaxSize(cfg.MaxImageSize),
		WithTimeout(cfg.UploadTimeout),
		WithHTTPClient(httpClient),
		WithLogger(logger.Named("uploader")),
	), nil
}
