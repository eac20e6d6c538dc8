package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	tradeapp "github.com/retailpos/backend/internal/application/trade"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
)

const (
	msgPaymentFailed     = "Payment processing failed. Insufficient stock or other error."
	msgPaymentNotPending = "Payment already processed or cancelled"
)

// SaleHandler handles sale endpoints, including payment processing
type SaleHandler struct {
	BaseHandler
	saleService SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// Create godoc
// @ID           createSale
// @Summary      Record a sale
// @Description  Inserts a pending sale priced at the product's current price, then processes payment with payment_method (cash when omitted, skipped when empty). If payment fails the sale stays recorded as failed and 400 is returned.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        request body tradeapp.CreateSaleRequest true "Sale creation request"
// @Success      201 {object} APIResponse[tradeapp.SaleResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /sales [post]
func (h *SaleHandler) Create(c *gin.Context) {
	var req tradeapp.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	sale, err := h.saleService.Create(c.Request.Context(), req)
	if err != nil {
		if _, ok := tradeapp.AsPaymentError(err); ok {
			_ = c.Error(err)
			h.Error(c, http.StatusBadRequest, dto.ErrCodePaymentFailed, msgPaymentFailed)
			return
		}
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}

// ProcessPayment godoc
// @ID           processSalePayment
// @Summary      Process payment for a pending sale
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id path string true "Sale ID" format(uuid)
// @Param        request body tradeapp.ProcessPaymentRequest false "Payment method, cash when omitted"
// @Success      200 {object} APIResponse[tradeapp.SaleResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /sales/{id}/process_payment [post]
func (h *SaleHandler) ProcessPayment(c *gin.Context) {
	id, ok := h.parseID(c, "Sale")
	if !ok {
		return
	}

	// An empty body, sized or chunked, means cash
	var req tradeapp.ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.bindError(c, err)
		return
	}

	sale, err := h.saleService.ProcessPayment(c.Request.Context(), id, req)
	if err == nil {
		h.Success(c, sale)
		return
	}

	if pe, ok := tradeapp.AsPaymentError(err); ok {
		_ = c.Error(err)
		message := msgPaymentFailed
		if pe.Kind == tradeapp.PaymentErrorInvalidState {
			message = msgPaymentNotPending
		}
		h.Error(c, http.StatusBadRequest, dto.ErrCodePaymentFailed, message)
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.HandleError(c, err)
		return
	}
	_ = c.Error(err)
	h.InternalError(c, err.Error())
}

// GetByID godoc
// @ID           getSaleById
// @Summary      Get sale by ID
// @Tags         sales
// @Produce      json
// @Param        id path string true "Sale ID" format(uuid)
// @Success      200 {object} APIResponse[tradeapp.SaleResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /sales/{id} [get]
func (h *SaleHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "Sale")
	if !ok {
		return
	}
	sale, err := h.saleService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// List godoc
// @ID           listSales
// @Summary      List sales
// @Description  Newest first
// @Tags         sales
// @Produce      json
// @Param        customer query string false "Customer ID" format(uuid)
// @Param        product query string false "Product ID" format(uuid)
// @Param        payment_status query string false "Payment status" Enums(pending, completed, failed, cancelled)
// @Param        payment_method query string false "Payment method" Enums(cash, card, mobile)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]tradeapp.SaleResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /sales [get]
func (h *SaleHandler) List(c *gin.Context) {
	var filter tradeapp.SaleListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.bindError(c, err)
		return
	}

	sales, total, err := h.saleService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, sales, total, filter.Page, filter.PageSize)
}

// Replace godoc
// @ID           replaceSale
// @Summary      Replace a pending sale
// @Description  Only pending sales can change. The total is recomputed from the product price.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id path string true "Sale ID" format(uuid)
// @Param        request body tradeapp.CreateSaleRequest true "Sale"
// @Success      200 {object} APIResponse[tradeapp.SaleResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /sales/{id} [put]
func (h *SaleHandler) Replace(c *gin.Context) {
	id, ok := h.parseID(c, "Sale")
	if !ok {
		return
	}
	var req tradeapp.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	sale, err := h.saleService.Update(c.Request.Context(), id, req.ToUpdate())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// Update godoc
// @ID           updateSale
// @Summary      Partially update a pending sale
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id path string true "Sale ID" format(uuid)
// @Param        request body tradeapp.UpdateSaleRequest true "Fields to change"
// @Success      200 {object} APIResponse[tradeapp.SaleResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /sales/{id} [patch]
func (h *SaleHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "Sale")
	if !ok {
		return
	}
	var req tradeapp.UpdateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	sale, err := h.saleService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// Delete godoc
// @ID           deleteSale
// @Summary      Delete a sale
// @Tags         sales
// @Param        id path string true "Sale ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Router       /sales/{id} [delete]
func (h *SaleHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "Sale")
	if !ok {
		return
	}
	if err := h.saleService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
