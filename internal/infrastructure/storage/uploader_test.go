package storage

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/retailpos/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// pngBytes returns the 8 byte PNG signature followed by padding, enough for
// content sniffing
func pngBytes() []byte {
	return append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	args := m.Called(ctx, data, filename, contentType)
	return args.String(0), args.Error(1)
}

func TestUploader_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes sniffed images", func(t *testing.T) {
		pub := new(mockPublisher)
		pub.On("Publish", mock.Anything, pngBytes(), "a.png", "image/png").Return("https://img/a.png", nil)

		url, err := NewUploader(pub).Upload(ctx, pngBytes(), "a.png")
		require.NoError(t, err)
		assert.Equal(t, "https://img/a.png", url)
		pub.AssertExpectations(t)
	})

	t.Run("names unnamed images by content type", func(t *testing.T) {
		pub := new(mockPublisher)
		pub.On("Publish", mock.Anything, mock.Anything, "image.png", "image/png").Return("u", nil)

		_, err := NewUploader(pub).Upload(ctx, pngBytes(), "")
		require.NoError(t, err)
		pub.AssertExpectations(t)
	})

	t.Run("rejects empty, oversized and non-image data", func(t *testing.T) {
		pub := new(mockPublisher)
		u := NewUploader(pub, WithMaxSize(16))

		_, err := u.Upload(ctx, nil, "a.png")
		assert.ErrorIs(t, err, ErrEmptyImage)

		_, err = u.Upload(ctx, pngBytes(), "a.png")
		assert.ErrorIs(t, err, ErrImageTooLarge)

		_, err = NewUploader(pub).Upload(ctx, []byte("hello, plain text"), "a.txt")
		assert.ErrorIs(t, err, ErrNotAnImage)

		pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("applies the timeout to the publish context", func(t *testing.T) {
		pub := new(mockPublisher)
		pub.On("Publish", mock.MatchedBy(func(c context.Context) bool {
			deadline, ok := c.Deadline()
			return ok && time.Until(deadline) <= time.Second
		}), mock.Anything, mock.Anything, mock.Anything).Return("u", nil)

		_, err := NewUploader(pub, WithTimeout(time.Second)).Upload(ctx, pngBytes(), "a.png")
		require.NoError(t, err)
		pub.AssertExpectations(t)
	})
}

func TestUploader_UploadFromBase64(t *testing.T) {
	ctx := context.Background()
	encoded := base64.StdEncoding.EncodeToString(pngBytes())

	tests := []struct {
		name  string
		input string
	}{
		{"plain", encoded},
		{"data uri", "data:image/png;base64," + encoded},
		{"unpadded", base64.RawStdEncoding.EncodeToString(pngBytes())},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := new(mockPublisher)
			pub.On("Publish", mock.Anything, pngBytes(), "image.png", "image/png").Return("u", nil)

			url, err := NewUploader(pub).UploadFromBase64(ctx, tt.input)
			require.NoError(t, err)
			assert.Equal(t, "u", url)
		})
	}

	t.Run("invalid input", func(t *testing.T) {
		_, err := NewUploader(new(mockPublisher)).UploadFromBase64(ctx, "***not base64***")
		assert.ErrorIs(t, err, ErrInvalidBase64)

		_, err = NewUploader(new(mockPublisher)).UploadFromBase64(ctx, "data:image/png;base64,")
		assert.ErrorIs(t, err, ErrEmptyImage)
	})
}

func TestUploader_UploadFromURL(t *testing.T) {
	ctx := context.Background()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/img/latte.png":
			_, _ = w.Write(pngBytes())
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	t.Run("downloads and publishes", func(t *testing.T) {
		pub := new(mockPublisher)
		pub.On("Publish", mock.Anything, pngBytes(), "latte.png", "image/png").Return("https://img/latte.png", nil)

		url, err := NewUploader(pub).UploadFromURL(ctx, server.URL+"/img/latte.png")
		require.NoError(t, err)
		assert.Equal(t, "https://img/latte.png", url)
	})

	t.Run("missing source", func(t *testing.T) {
		_, err := NewUploader(new(mockPublisher)).UploadFromURL(ctx, server.URL+"/missing.png")
		assert.ErrorIs(t, err, ErrSourceUnavailable)
	})

	t.Run("oversized source", func(t *testing.T) {
		_, err := NewUploader(new(mockPublisher), WithMaxSize(10)).UploadFromURL(ctx, server.URL+"/img/latte.png")
		assert.ErrorIs(t, err, ErrImageTooLarge)
	})
}

func TestNewImageUploader(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("none disables uploads", func(t *testing.T) {
		u, err := NewImageUploader(ctx, &config.StorageConfig{Uploader: config.UploaderNone}, logger)
		require.NoError(t, err)
		assert.Nil(t, u)
	})

	t.Run("telegram", func(t *testing.T) {
		u, err := NewImageUploader(ctx, &config.StorageConfig{
			Uploader:         config.UploaderTelegram,
			TelegramBotToken: "t",
			TelegramChatID:   "@c",
		}, logger)
		require.NoError(t, err)
		assert.IsType(t, &Uploader{}, u)
	})

	t.Run("telegram without token fails", func(t *testing.T) {
		_, err := NewImageUploader(ctx, &config.StorageConfig{Uploader: config.UploaderTelegram}, logger)
		assert.Error(t, err)
	})

	t.Run("s3", func(t *testing.T) {
		u, err := NewImageUploader(ctx, &config.StorageConfig{
			Uploader:    config.UploaderS3,
			S3Bucket:    "images",
			S3AccessKey: "k",
			S3SecretKey: "s",
		}, logger)
		require.NoError(t, err)
		assert.NotNil(t, u)
	})

	t.Run("unknown uploader", func(t *testing.T) {
		_, err := NewImageUploader(ctx, &config.StorageConfig{Uploader: "ftp"}, logger)
		assert.Error(t, err)
	})
}
