package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/require"
)

// Response mirrors dto.Response with the payload left undecoded
type Response struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

// Request sends a request with an optional JSON body through the engine.
// A string body is sent as-is so malformed payloads can be tested.
func Request(engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		payload, err := json.Marshal(b)
		if err != nil {
			panic(err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

// DecodeResponse parses the response envelope
func DecodeResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return resp
}

// DecodeData parses the data field of a successful response into T
func DecodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	resp := DecodeResponse(t, w)
	require.True(t, resp.Success, "expected success, got %s", w.Body.String())

	var data T
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	return data
}

// RequireStatus fails the test when the response code differs from want
func RequireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, "%s %s", http.StatusText(w.Code), w.Body.String())
}
