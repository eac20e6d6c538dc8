package handler

import (
	"errors"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
	"github.com/retailpos/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the given status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponse(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// HandleError converts service errors to HTTP responses.
// Domain errors keep their message and field details; anything else is a
// generic 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		requestID := middleware.GetRequestID(c)
		if len(domainErr.Details) > 0 {
			c.JSON(dto.GetHTTPStatus(code), dto.Response{
				Success: false,
				Error: &dto.ErrorInfo{
					Code:      code,
					Message:   domainErr.Message,
					RequestID: requestID,
					Details:   detailsOf(domainErr),
				},
			})
			return
		}
		c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponse(code, domainErr.Message, requestID))
		return
	}

	h.InternalError(c, "An unexpected error occurred")
}

// bindError answers a failed ShouldBind call
func (h *BaseHandler) bindError(c *gin.Context, err error) {
	middleware.HandleValidationError(c, err)
}

// parseID reads the :id path parameter. A malformed id can never match a
// row, so it is answered like a missing one.
func (h *BaseHandler) parseID(c *gin.Context, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.NotFound(c, resource+" not found")
		return uuid.Nil, false
	}
	return id, true
}

func detailsOf(err *shared.DomainError) []dto.ValidationDetail {
	fields := make([]string, 0, len(err.Details))
	for field := range err.Details {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	details := make([]dto.ValidationDetail, 0, len(fields))
	for _, field := range fields {
		details = append(details, dto.ValidationDetail{Field: field, Message: err.Details[field]})
	}
	return details
}
