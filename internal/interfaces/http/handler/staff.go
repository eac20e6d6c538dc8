package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/retailpos/backend/internal/application/identity"
)

// StaffHandler handles staff-related API endpoints
type StaffHandler struct {
	BaseHandler
	staffService StaffService
}

// NewStaffHandler creates a new StaffHandler
func NewStaffHandler(staffService StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService}
}

// Create godoc
// @ID           createStaff
// @Summary      Create a new staff member
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        request body identityapp.CreateStaffRequest true "Staff creation request"
// @Success      201 {object} APIResponse[identityapp.StaffResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /staff [post]
func (h *StaffHandler) Create(c *gin.Context) {
	var req identityapp.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	item, err := h.staffService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// GetByID godoc
// @ID           getStaffById
// @Summary      Get a staff member by ID
// @Tags         staff
// @Produce      json
// @Param        id path string true "Staff ID" format(uuid)
// @Success      200 {object} APIResponse[identityapp.StaffResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /staff/{id} [get]
func (h *StaffHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "Staff")
	if !ok {
		return
	}
	item, err := h.staffService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// List godoc
// @ID           listStaff
// @Summary      List staff
// @Tags         staff
// @Produce      json
// @Param        search query string false "Search by name, email or department"
// @Param        role query string false "Role" Enums(manager, cashier, inventory, accountant)
// @Param        status query string false "Status" Enums(active, inactive)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        order_by query string false "Order by field"
// @Param        order_dir query string false "Order direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]identityapp.StaffResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /staff [get]
func (h *StaffHandler) List(c *gin.Context) {
	var filter identityapp.StaffListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.bindError(c, err)
		return
	}

	items, total, err := h.staffService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Replace godoc
// @ID           replaceStaff
// @Summary      Replace a staff member
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        id path string true "Staff ID" format(uuid)
// @Param        request body identityapp.CreateStaffRequest true "Staff"
// @Success      200 {object} APIResponse[identityapp.StaffResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /staff/{id} [put]
func (h *StaffHandler) Replace(c *gin.Context) {
	id, ok := h.parseID(c, "Staff")
	if !ok {
		return
	}
	var req identityapp.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	item, err := h.staffService.Update(c.Request.Context(), id, req.ToUpdate())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Update godoc
// @ID           updateStaff
// @Summary      Partially update a staff member
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        id path string true "Staff ID" format(uuid)
// @Param        request body identityapp.UpdateStaffRequest true "Fields to change"
// @Success      200 {object} APIResponse[identityapp.StaffResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /staff/{id} [patch]
func (h *StaffHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "Staff")
	if !ok {
		return
	}
	var req identityapp.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	item, err := h.staffService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Delete godoc
// @ID           deleteStaff
// @Summary      Delete a staff member
// @Tags         staff
// @Param        id path string true "Staff ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Router       /staff/{id} [delete]
func (h *StaffHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "Staff")
	if !ok {
		return
	}
	if err := h.staffService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
