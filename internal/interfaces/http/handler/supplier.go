package handler

import (
	"github.com/gin-gonic/gin"
	partnerapp "github.com/retailpos/backend/internal/application/partner"
)

// SupplierHandler handles supplier-related API endpoints
type SupplierHandler struct {
	BaseHandler
	supplierService SupplierService
}

// NewSupplierHandler creates a new SupplierHandler
func NewSupplierHandler(supplierService SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

// Create godoc
// @ID           createSupplier
// @Summary      Create a new supplier
// @Tags         suppliers
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.CreateSupplierRequest true "Supplier creation request"
// @Success      201 {object} APIResponse[partnerapp.SupplierResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /suppliers [post]
func (h *SupplierHandler) Create(c *gin.Context) {
	var req partnerapp.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	item, err := h.supplierService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// GetByID godoc
// @ID           getSupplierById
// @Summary      Get supplier by ID
// @Tags         suppliers
// @Produce      json
// @Param        id path string true "Supplier ID" format(uuid)
// @Success      200 {object} APIResponse[partnerapp.SupplierResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /suppliers/{id} [get]
func (h *SupplierHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "Supplier")
	if !ok {
		return
	}
	item, err := h.supplierService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// List godoc
// @ID           listSuppliers
// @Summary      List suppliers
// @Tags         suppliers
// @Produce      json
// @Param        search query string false "Search by name, contact person or email"
// @Param        status query string false "Status" Enums(active, pending, inactive)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        order_by query string false "Order by field"
// @Param        order_dir query string false "Order direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]partnerapp.SupplierResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /suppliers [get]
func (h *SupplierHandler) List(c *gin.Context) {
	var filter partnerapp.SupplierListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.bindError(c, err)
		return
	}

	items, total, err := h.supplierService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Replace godoc
// @ID           replaceSupplier
// @Summary      Replace a supplier
// @Tags         suppliers
// @Accept       json
// @Produce      json
// @Param        id path string true "Supplier ID" format(uuid)
// @Param        request body partnerapp.CreateSupplierRequest true "Supplier"
// @Success      200 {object} APIResponse[partnerapp.SupplierResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /suppliers/{id} [put]
func (h *SupplierHandler) Replace(c *gin.Context) {
	id, ok := h.parseID(c, "Supplier")
	if !ok {
		return
	}
	var req partnerapp.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	item, err := h.supplierService.Update(c.Request.Context(), id, req.ToUpdate())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Update godoc
// @ID           updateSupplier
// @Summary      Partially update a supplier
// @Tags         suppliers
// @Accept       json
// @Produce      json
// @Param        id path string true "Supplier ID" format(uuid)
// @Param        request body partnerapp.UpdateSupplierRequest true "Fields to change"
// @Success      200 {object} APIResponse[partnerapp.SupplierResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /suppliers/{id} [patch]
func (h *SupplierHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "Supplier")
	if !ok {
		return
	}
	var req partnerapp.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	item, err := h.supplierService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Delete godoc
// @ID           deleteSupplier
// @Summary      Delete a supplier
// @Tags         suppliers
// @Param        id path string true "Supplier ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Router       /suppliers/{id} [delete]
func (h *SupplierHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "Supplier")
	if !ok {
		return
	}
	if err := h.supplierService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
