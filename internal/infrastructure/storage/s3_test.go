package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/retailpos/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewS3Publisher_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("nil config returns error", func(t *testing.T) {
		_, err := NewS3Publisher(ctx, nil, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration is required")
	})

	t.Run("missing bucket returns error", func(t *testing.T) {
		_, err := NewS3Publisher(ctx, &config.StorageConfig{}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("half a key pair returns error", func(t *testing.T) {
		_, err := NewS3Publisher(ctx, &config.StorageConfig{S3Bucket: "images", S3AccessKey: "key"}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be set together")
	})

	t.Run("valid config", func(t *testing.T) {
		p, err := NewS3Publisher(ctx, &config.StorageConfig{
			S3Bucket:    "images",
			S3AccessKey: "key",
			S3SecretKey: "secret",
			S3Endpoint:  "localhost:9000",
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, "images", p.Bucket())
		assert.Equal(t, "us-east-1", p.region)
		assert.Equal(t, "https://localhost:9000", p.endpoint)
	})
}

func TestS3Publisher_ObjectURL(t *testing.T) {
	tests := []struct {
		name     string
		pub      S3Publisher
		expected string
	}{
		{
			name:     "public base url wins",
			pub:      S3Publisher{bucket: "b", endpoint: "http://minio:9000", publicBaseURL: "https://cdn.example.com"},
			expected: "https://cdn.example.com/products/a.png",
		},
		{
			name:     "path style endpoint",
			pub:      S3Publisher{bucket: "b", endpoint: "http://minio:9000", usePathStyle: true},
			expected: "http://minio:9000/b/products/a.png",
		},
		{
			name:     "virtual hosted endpoint",
			pub:      S3Publisher{bucket: "b", endpoint: "https://storage.example.com"},
			expected: "https://b.storage.example.com/products/a.png",
		},
		{
			name:     "aws default",
			pub:      S3Publisher{bucket: "b", region: "eu-west-1"},
			expected: "https://b.s3.eu-west-1.amazonaws.com/products/a.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.pub.objectURL("products/a.png"))
		})
	}
}

func TestObjectKey(t *testing.T) {
	assert.True(t, strings.HasSuffix(objectKey("photo.JPEG", "image/jpeg"), ".jpeg"))
	key := objectKey("", "image/png")
	assert.True(t, strings.HasPrefix(key, "products/"))
	assert.True(t, strings.HasSuffix(key, ".png"))
	assert.NotEqual(t, key, objectKey("", "image/png"))
}

func TestS3Publisher_Publish(t *testing.T) {
	var (
		mu          sync.Mutex
		gotPath     string
		gotType     string
		gotBodySize int
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		gotBodySize = len(body)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	p, err := NewS3Publisher(context.Background(), &config.StorageConfig{
		S3Bucket:       "images",
		S3AccessKey:    "key",
		S3SecretKey:    "secret",
		S3Endpoint:     server.URL,
		S3UsePathStyle: true,
	}, nil)
	require.NoError(t, err)

	data := pngBytes()
	url, err := p.Publish(context.Background(), data, "latte.png", "image/png")
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.True(t, strings.HasPrefix(gotPath, "/images/products/"), gotPath)
	assert.True(t, strings.HasSuffix(gotPath, ".png"))
	assert.Equal(t, "image/png", gotType)
	assert.Equal(t, len(data), gotBodySize)
	assert.Equal(t, server.URL+gotPath, url)
}
