package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutBody struct {
	Quantity      int     `json:"quantity" binding:"required,min=1"`
	PaymentMethod *string `json:"payment_method" binding:"omitempty,payment_method"`
	Status        string  `json:"status" binding:"omitempty,payment_status"`
	Email         string  `json:"email" binding:"omitempty,email"`
}

func bindCheckout(t *testing.T, body string) (int, dto.Response) {
	t.Helper()
	SetupValidator()

	r := gin.New()
	r.Use(RequestID())
	r.POST("/checkout", func(c *gin.Context) {
		var req checkoutBody
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(body)))
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestSetupValidator_PaymentTags(t *testing.T) {
	code, _ := bindCheckout(t, `{"quantity":1,"payment_method":"card","status":"pending"}`)
	assert.Equal(t, http.StatusOK, code)

	code, _ = bindCheckout(t, `{"quantity":1}`)
	assert.Equal(t, http.StatusOK, code)

	code, resp := bindCheckout(t, `{"quantity":1,"payment_method":"bitcoin"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "payment_method", resp.Error.Details[0].Field)
	assert.Contains(t, resp.Error.Details[0].Message, `"bitcoin" is not a valid choice`)

	_, resp = bindCheckout(t, `{"quantity":1,"status":"refunded"}`)
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "status", resp.Error.Details[0].Field)
}

func TestHandleValidationError(t *testing.T) {
	code, resp := bindCheckout(t, `{"quantity":0,"email":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.NotEmpty(t, resp.Error.RequestID)

	fields := map[string]string{}
	for _, d := range resp.Error.Details {
		fields[d.Field] = d.Message
	}
	assert.Equal(t, "This field is required", fields["quantity"])
	assert.Equal(t, "Enter a valid email address", fields["email"])

	code, resp = bindCheckout(t, `{"quantity":`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, dto.ErrCodeInvalidJSON, resp.Error.Code)
}
