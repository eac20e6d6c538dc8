package testutil

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMockDB(t *testing.T) {
	mdb := NewMockDB(t)
	mdb.Mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	var n int
	require.NoError(t, mdb.DB.Raw("SELECT 1").Scan(&n).Error)
	assert.Equal(t, 1, n)
	mdb.ExpectationsWereMet(t)
}

func TestRequestAndDecode(t *testing.T) {
	engine := gin.New()
	engine.POST("/echo", func(c *gin.Context) {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrCodeInvalidJSON, "Invalid JSON", ""))
			return
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(body, 1, 1, 20))
	})

	w := Request(engine, http.MethodPost, "/echo", map[string]any{"name": "Widget"})
	RequireStatus(t, w, http.StatusOK)
	data := DecodeData[map[string]string](t, w)
	assert.Equal(t, "Widget", data["name"])
	assert.Equal(t, int64(1), DecodeResponse(t, w).Meta.Total)

	w = Request(engine, http.MethodPost, "/echo", "{not json")
	RequireStatus(t, w, http.StatusBadRequest)
	resp := DecodeResponse(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeInvalidJSON, resp.Error.Code)
}

func TestFixtures(t *testing.T) {
	product := NewProduct(t, "Widget", "2.50", 10, 3)
	customer := NewCustomer(t, "Ada", "ada@example.com")
	sale := NewSale(t, customer, product, 4)

	assert.Equal(t, 10, product.Stock)
	assert.True(t, customer.IsActive())
	assert.True(t, sale.IsPending())
	assert.Equal(t, "10.00", sale.TotalPrice.StringFixed(2))
}
