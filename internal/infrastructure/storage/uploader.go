// Package storage publishes product images to an external host and returns
// their public URL.
package storage

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	catalogapp "github.com/retailpos/backend/internal/application/catalog"
	"github.com/retailpos/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Upload errors
var (
	ErrEmptyImage        = errors.New("storage: image is empty")
	ErrImageTooLarge     = errors.New("storage: image exceeds size limit")
	ErrNotAnImage        = errors.New("storage: content is not an image")
	ErrInvalidBase64     = errors.New("storage: invalid base64 image")
	ErrSourceUnavailable = errors.New("storage: image source unavailable")
)

const (
	defaultMaxImageSize  = 5 << 20
	defaultUploadTimeout = 30 * time.Second
)

// Publisher stores validated image bytes and returns a public URL
type Publisher interface {
	Publish(ctx context.Context, data []byte, filename, contentType string) (string, error)
}

// Uploader implements catalog.ImageUploader on top of a Publisher. It
// enforces the size limit and upload timeout and resolves URL and base64
// sources to bytes before publishing.
type Uploader struct {
	publisher  Publisher
	httpClient *http.Client
	maxSize    int64
	timeout    time.Duration
	logger     *zap.Logger
}

// UploaderOption configures an Uploader
type UploaderOption func(*Uploader)

// WithMaxSize sets the largest accepted image in bytes
func WithMaxSize(n int64) UploaderOption {
	return func(u *Uploader) {
		if n > 0 {
			u.maxSize = n
		}
	}
}

// WithTimeout bounds each upload, including fetching a source URL
func WithTimeout(d time.Duration) UploaderOption {
	return func(u *Uploader) {
		if d > 0 {
			u.timeout = d
		}
	}
}

// WithHTTPClient sets the client used to fetch source URLs
func WithHTTPClient(c *http.Client) UploaderOption {
	return func(u *Uploader) {
		u.httpClient = c
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) UploaderOption {
	return func(u *Uploader) {
		u.logger = logger
	}
}

// NewUploader wraps a publisher
func NewUploader(publisher Publisher, opts ...UploaderOption) *Uploader {
	u := &Uploader{
		publisher:  publisher,
		httpClient: &http.Client{},
		maxSize:    defaultMaxImageSize,
		timeout:    defaultUploadTimeout,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Upload publishes raw image bytes
func (u *Uploader) Upload(ctx context.Context, data []byte, filename string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()
	return u.publish(ctx, data, filename)
}

// UploadFromURL downloads an image and publishes it
func (u *Uploader) UploadFromURL(ctx context.Context, sourceURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: HTTP %d", ErrSourceUnavailable, resp.StatusCode)
	}
	if resp.ContentLength > u.maxSize {
		return "", ErrImageTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, u.maxSize+1))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return u.publish(ctx, data, filenameFromURL(req.URL.Path))
}

// UploadFromBase64 decodes a base64 image, with or without a data URI
// prefix, and publishes it
func (u *Uploader) UploadFromBase64(ctx context.Context, encoded string) (string, error) {
	data, err := decodeBase64Image(encoded)
	if err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()
	return u.publish(ctx, data, "")
}

func (u *Uploader) publish(ctx context.Context, data []byte, filename string) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyImage
	}
	if int64(len(data)) > u.maxSize {
		return "", ErrImageTooLarge
	}
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: %s", ErrNotAnImage, contentType)
	}
	if filename == "" {
		filename = "image" + extensionFor(contentType)
	}

	ctx, span := telemetry.StartSpan(ctx, "image.upload",
		telemetry.SpanAttrUploader, publisherName(u.publisher),
		telemetry.SpanAttrImageBytes, len(data),
	)
	defer span.End()

	start := time.Now()
	url, err := u.publisher.Publish(ctx, data, filename, contentType)
	if err != nil {
		telemetry.RecordError(span, err)
		return "", err
	}
	u.logger.Info("Image uploaded",
		zap.String("filename", filename),
		zap.Int("size", len(data)),
		zap.Duration("duration", time.Since(start)),
	)
	return url, nil
}

func publisherName(p Publisher) string {
	switch p.(type) {
	case *TelegramPublisher:
		return "telegram"
	case *S3Publisher:
		return "s3"
	default:
		return fmt.Sprintf("%T", p)
	}
}

// decodeBase64Image accepts standard or unpadded base64, optionally
// prefixed with a data URI header such as "data:image/png;base64,"
func decodeBase64Image(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if strings.HasPrefix(encoded, "data:") {
		i := strings.Index(encoded, ",")
		if i < 0 {
			return nil, ErrInvalidBase64
		}
		encoded = encoded[i+1:]
	}
	if encoded == "" {
		return nil, ErrEmptyImage
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(encoded, "="))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBase64, err)
		}
	}
	return data, nil
}

func filenameFromURL(p string) string {
	name := path.Base(p)
	if name == "." || name == "/" {
		return ""
	}
	return name
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/bmp":
		return ".bmp"
	default:
		return ".jpg"
	}
}

var _ catalogapp.ImageUploader = (*Uploader)(nil)
