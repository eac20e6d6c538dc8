package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeUnknown, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeRequestTooLarge, http.StatusRequestEntityTooLarge},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeConcurrencyConflict, http.StatusConflict},
		{ErrCodeInvalidState, http.StatusBadRequest},
		{ErrCodeInsufficientStock, http.StatusBadRequest},
		{ErrCodePaymentFailed, http.StatusBadRequest},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"NOT_FOUND", ErrCodeNotFound},
		{"ALREADY_EXISTS", ErrCodeAlreadyExists},
		{"INVALID_STATE", ErrCodeInvalidState},
		{"INSUFFICIENT_STOCK", ErrCodeInsufficientStock},
		{"CONCURRENCY_CONFLICT", ErrCodeConcurrencyConflict},
		{"INVALID_PRICE", ErrCodeValidation},
		{"INVALID_EMAIL", ErrCodeValidation},
		{ErrCodeNotFound, ErrCodeNotFound},
		{"SOMETHING_ELSE", "SOMETHING_ELSE"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.input))
		})
	}
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a"}, 41, 2, 20)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 3, resp.Meta.TotalPages)
	assert.Equal(t, 2, resp.Meta.Page)

	resp = NewSuccessResponseWithMeta(nil, 0, 0, 0)
	assert.Equal(t, DefaultPageSize, resp.Meta.PageSize)
	assert.Equal(t, 1, resp.Meta.Page)
	assert.Equal(t, 0, resp.Meta.TotalPages)
}

func TestErrorResponse_JSON(t *testing.T) {
	resp := NewValidationErrorResponse("Request validation failed", "req-1", []ValidationDetail{
		{Field: "price", Message: "This field is required"},
	})

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"success": false,
		"error": {
			"code": "ERR_VALIDATION",
			"message": "Request validation failed",
			"request_id": "req-1",
			"details": [{"field": "price", "message": "This field is required"}]
		}
	}`, string(raw))
}
