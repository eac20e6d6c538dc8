package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/retailpos/backend/internal/infrastructure/config"
)

// ErrTelegramRequestFailed is returned when the Bot API rejects a call
var ErrTelegramRequestFailed = errors.New("storage: telegram request failed")

const telegramPhotoCaption = "Product image"

// TelegramPublisher stores images by posting them to a Telegram chat and
// resolving the largest photo size to a file download URL
type TelegramPublisher struct {
	apiURL     string
	token      string
	chatID     string
	httpClient *http.Client
}

type telegramResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description"`
	Result      json.RawMessage `json:"result"`
}

type telegramMessage struct {
	Photo []struct {
		FileID   string `json:"file_id"`
		FileSize int    `json:"file_size"`
	} `json:"photo"`
}

type telegramFile struct {
	FilePath string `json:"file_path"`
}

// NewTelegramPublisher creates a publisher from the storage configuration
func NewTelegramPublisher(cfg *config.StorageConfig, httpClient *http.Client) (*TelegramPublisher, error) {
	if cfg.TelegramBotToken == "" {
		return nil, errors.New("telegram bot token is required")
	}
	if cfg.TelegramChatID == "" {
		return nil, errors.New("telegram chat id is required")
	}
	apiURL := strings.TrimRight(cfg.TelegramAPIURL, "/")
	if apiURL == "" {
		apiURL = "https://api.telegram.org"
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &TelegramPublisher{
		apiURL:     apiURL,
		token:      cfg.TelegramBotToken,
		chatID:     cfg.TelegramChatID,
		httpClient: httpClient,
	}, nil
}

// Publish sends the photo and returns the URL of the stored file
func (p *TelegramPublisher) Publish(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	fileID, err := p.sendPhoto(ctx, data, filename)
	if err != nil {
		return "", err
	}
	filePath, err := p.getFile(ctx, fileID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/file/bot%s/%s", p.apiURL, p.token, filePath), nil
}

func (p *TelegramPublisher) sendPhoto(ctx context.Context, data []byte, filename string) (string, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if err := w.WriteField("chat_id", p.chatID); err != nil {
		return "", err
	}
	if err := w.WriteField("caption", telegramPhotoCaption); err != nil {
		return "", err
	}
	part, err := w.CreateFormFile("photo", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.methodURL("sendPhoto"), &body)
	if err != nil {
		return "", fmt.Errorf("telegram: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var msg telegramMessage
	if err := p.do(req, &msg); err != nil {
		return "", err
	}
	if len(msg.Photo) == 0 {
		return "", fmt.Errorf("%w: response has no photo sizes", ErrTelegramRequestFailed)
	}
	// sizes are ordered smallest first
	return msg.Photo[len(msg.Photo)-1].FileID, nil
}

func (p *TelegramPublisher) getFile(ctx context.Context, fileID string) (string, error) {
	endpoint := p.methodURL("getFile") + "?file_id=" + url.QueryEscape(fileID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("telegram: failed to create request: %w", err)
	}

	var file telegramFile
	if err := p.do(req, &file); err != nil {
		return "", err
	}
	if file.FilePath == "" {
		return "", fmt.Errorf("%w: response has no file path", ErrTelegramRequestFailed)
	}
	return file.FilePath, nil
}

func (p *TelegramPublisher) do(req *http.Request, result any) error {
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTelegramRequestFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("telegram: failed to read response: %w", err)
	}

	var envelope telegramResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("%w: HTTP %d", ErrTelegramRequestFailed, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK || !envelope.OK {
		return fmt.Errorf("%w: HTTP %d %s", ErrTelegramRequestFailed, resp.StatusCode, envelope.Description)
	}
	return json.Unmarshal(envelope.Result, result)
}

func (p *TelegramPublisher) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", p.apiURL, p.token, method)
}
