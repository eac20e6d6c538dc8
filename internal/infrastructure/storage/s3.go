package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const productImagePrefix = "products"

// S3Publisher stores images in an S3-compatible bucket (AWS S3, MinIO,
// RustFS) and returns a URL under the configured public base
type S3Publisher struct {
	client        *s3.Client
	bucket        string
	endpoint      string
	region        string
	usePathStyle  bool
	publicBaseURL string
	logger        *zap.Logger
}

// NewS3Publisher creates an S3 publisher from the storage configuration.
// Credentials fall back to the default AWS chain when no static keys are set.
func NewS3Publisher(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (*S3Publisher, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.S3Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if (cfg.S3AccessKey == "") != (cfg.S3SecretKey == "") {
		return nil, errors.New("storage access key and secret key must be set together")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	region := cfg.S3Region
	if region == "" {
		region = "us-east-1"
	}

	endpoint := strings.TrimRight(cfg.S3Endpoint, "/")
	if endpoint != "" {
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "https://" + endpoint
		}
		if _, err := url.Parse(endpoint); err != nil {
			return nil, fmt.Errorf("invalid storage endpoint: %w", err)
		}
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.S3AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.S3UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			// S3-compatible stores reject aws-chunked trailers
			o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		}
	})

	return &S3Publisher{
		client:        client,
		bucket:        cfg.S3Bucket,
		endpoint:      endpoint,
		region:        region,
		usePathStyle:  cfg.S3UsePathStyle,
		publicBaseURL: strings.TrimRight(cfg.S3PublicBaseURL, "/"),
		logger:        logger,
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist
func (p *S3Publisher) EnsureBucket(ctx context.Context) error {
	_, err := p.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(p.bucket)})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	p.logger.Info("Creating storage bucket", zap.String("bucket", p.bucket))
	_, err = p.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(p.bucket)})
	if err != nil {
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Publish writes the image under products/<uuid><ext>
func (p *S3Publisher) Publish(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	key := objectKey(filename, contentType)
	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}
	return p.objectURL(key), nil
}

// objectURL builds the public URL of a stored key
func (p *S3Publisher) objectURL(key string) string {
	switch {
	case p.publicBaseURL != "":
		return p.publicBaseURL + "/" + key
	case p.endpoint != "" && p.usePathStyle:
		return fmt.Sprintf("%s/%s/%s", p.endpoint, p.bucket, key)
	case p.endpoint != "":
		u, _ := url.Parse(p.endpoint)
		return fmt.Sprintf("%s://%s.%s/%s", u.Scheme, p.bucket, u.Host, key)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", p.bucket, p.region, key)
	}
}

// Bucket returns the bucket name
func (p *S3Publisher) Bucket() string {
	return p.bucket
}

func objectKey(filename, contentType string) string {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = extensionFor(contentType)
	}
	return path.Join(productImagePrefix, uuid.New().String()+ext)
}
