package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
)

var setupOnce sync.Once

// SetupValidator names fields by their json/form tag in validation errors
// and registers the payment_method and payment_status tags
func SetupValidator() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
		_ = v.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
			return finance.PaymentMethod(fl.Field().String()).IsValid()
		})
		_ = v.RegisterValidation("payment_status", func(fl validator.FieldLevel) bool {
			return finance.PaymentStatus(fl.Field().String()).IsValid()
		})
	})
}

// ValidationDetails converts validator errors into response details.
// It returns nil for errors that are not validation errors.
func ValidationDetails(err error) []dto.ValidationDetail {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}
	details := make([]dto.ValidationDetail, 0, len(validationErrors))
	for _, e := range validationErrors {
		details = append(details, dto.ValidationDetail{
			Field:   e.Field(),
			Message: validationMessage(e),
		})
	}
	return details
}

// HandleValidationError writes a 400 response for a binding error
func HandleValidationError(c *gin.Context, err error) {
	requestID := GetRequestID(c)
	if details := ValidationDetails(err); details != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse("Request validation failed", requestID, details))
		return
	}
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrCodeInvalidJSON, "Invalid request body: "+err.Error(), requestID))
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Enter a valid email address"
	case "min":
		if e.Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "uuid":
		return "Invalid UUID format"
	case "oneof":
		return "Must be one of: " + e.Param()
	case "url":
		return "Enter a valid URL"
	case "payment_method":
		return "\"" + valueString(e) + "\" is not a valid choice. Use cash, card or mobile"
	case "payment_status":
		return "\"" + valueString(e) + "\" is not a valid choice"
	default:
		return "Invalid value"
	}
}

func valueString(e validator.FieldError) string {
	v := reflect.ValueOf(e.Value())
	for v.Kind() == reflect.Pointer && !v.IsNil() {
		v = v.Elem()
	}
	if v.Kind() == reflect.String {
		return v.String()
	}
	return ""
}
