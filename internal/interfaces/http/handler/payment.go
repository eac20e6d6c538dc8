package handler

import (
	"github.com/gin-gonic/gin"
	financeapp "github.com/retailpos/backend/internal/application/finance"
)

// PaymentHandler handles payment record endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Create godoc
// @ID           createPayment
// @Summary      Create a new payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body financeapp.CreatePaymentRequest true "Payment creation request"
// @Success      201 {object} APIResponse[financeapp.PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /payments [post]
func (h *PaymentHandler) Create(c *gin.Context) {
	var req financeapp.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	item, err := h.paymentService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// GetByID godoc
// @ID           getPaymentById
// @Summary      Get payment by ID
// @Tags         payments
// @Produce      json
// @Param        id path string true "Payment ID" format(uuid)
// @Success      200 {object} APIResponse[financeapp.PaymentResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /payments/{id} [get]
func (h *PaymentHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "Payment")
	if !ok {
		return
	}
	item, err := h.paymentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// List godoc
// @ID           listPayments
// @Summary      List payments
// @Tags         payments
// @Produce      json
// @Param        customer query string false "Customer ID" format(uuid)
// @Param        method query string false "Payment method" Enums(cash, card, mobile)
// @Param        status query string false "Payment status" Enums(pending, completed, failed, cancelled)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        order_by query string false "Order by field"
// @Param        order_dir query string false "Order direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]financeapp.PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	var filter financeapp.PaymentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.bindError(c, err)
		return
	}

	items, total, err := h.paymentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Replace godoc
// @ID           replacePayment
// @Summary      Replace a payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id path string true "Payment ID" format(uuid)
// @Param        request body financeapp.CreatePaymentRequest true "Payment"
// @Success      200 {object} APIResponse[financeapp.PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /payments/{id} [put]
func (h *PaymentHandler) Replace(c *gin.Context) {
	id, ok := h.parseID(c, "Payment")
	if !ok {
		return
	}
	var req financeapp.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	item, err := h.paymentService.Update(c.Request.Context(), id, req.ToUpdate())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Update godoc
// @ID           updatePayment
// @Summary      Partially update a payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id path string true "Payment ID" format(uuid)
// @Param        request body financeapp.UpdatePaymentRequest true "Fields to change"
// @Success      200 {object} APIResponse[financeapp.PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /payments/{id} [patch]
func (h *PaymentHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "Payment")
	if !ok {
		return
	}
	var req financeapp.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	item, err := h.paymentService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Delete godoc
// @ID           deletePayment
// @Summary      Delete a payment
// @Tags         payments
// @Param        id path string true "Payment ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Router       /payments/{id} [delete]
func (h *PaymentHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "Payment")
	if !ok {
		return
	}
	if err := h.paymentService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
