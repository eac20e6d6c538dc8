package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/retailpos/backend/internal/application/catalog"
)

// imageFormField is the multipart part carrying an uploaded product image
const imageFormField = "image_upload"

// ProductHandler handles product-related API endpoints
type ProductHandler struct {
	BaseHandler
	productService ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create godoc
// @ID           createProduct
// @Summary      Create a new product
// @Description  Create a product. Accepts JSON (with optional image_base64 or image_source_url) or multipart/form-data with an optional image_upload file.
// @Tags         products
// @Accept       json,mpfd
// @Produce      json
// @Param        request body catalogapp.CreateProductRequest true "Product creation request"
// @Param        image_upload formData file false "Product image"
// @Success      201 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		h.bindError(c, err)
		return
	}
	image, ok := h.imageInput(c)
	if !ok {
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req, image)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// GetByID godoc
// @ID           getProductById
// @Summary      Get product by ID
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "Product")
	if !ok {
		return
	}
	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// List godoc
// @ID           listProducts
// @Summary      List products
// @Description  Paginated product list with optional search, category and low stock filters
// @Tags         products
// @Produce      json
// @Param        search query string false "Search by name, SKU or category"
// @Param        category query string false "Category"
// @Param        low_stock query bool false "Only products at or below their minimum stock"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        order_by query string false "Order by field"
// @Param        order_dir query string false "Order direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var filter catalogapp.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.bindError(c, err)
		return
	}

	products, total, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, products, total, filter.Page, filter.PageSize)
}

// Replace godoc
// @ID           replaceProduct
// @Summary      Replace a product
// @Description  Full update. Takes the same body as create.
// @Tags         products
// @Accept       json,mpfd
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body catalogapp.CreateProductRequest true "Product"
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /products/{id} [put]
func (h *ProductHandler) Replace(c *gin.Context) {
	id, ok := h.parseID(c, "Product")
	if !ok {
		return
	}
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		h.bindError(c, err)
		return
	}
	h.update(c, id, req.ToUpdate())
}

// Update godoc
// @ID           updateProduct
// @Summary      Partially update a product
// @Tags         products
// @Accept       json,mpfd
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body catalogapp.UpdateProductRequest true "Fields to change"
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /products/{id} [patch]
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "Product")
	if !ok {
		return
	}
	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		h.bindError(c, err)
		return
	}
	h.update(c, id, req)
}

func (h *ProductHandler) update(c *gin.Context, id uuid.UUID, req catalogapp.UpdateProductRequest) {
	image, ok := h.imageInput(c)
	if !ok {
		return
	}
	product, err := h.productService.Update(c.Request.Context(), id, req, image)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete godoc
// @ID           deleteProduct
// @Summary      Delete a product
// @Description  Deletes the product and every sale that references it
// @Tags         products
// @Param        id path string true "Product ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "Product")
	if !ok {
		return
	}
	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// imageInput reads the optional image_upload part of a multipart request.
// JSON image fields travel in the request body and are merged by the service.
func (h *ProductHandler) imageInput(c *gin.Context) (catalogapp.ImageInput, bool) {
	header, err := c.FormFile(imageFormField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return catalogapp.ImageInput{}, true
		}
		h.BadRequest(c, "Invalid image upload")
		return catalogapp.ImageInput{}, false
	}

	file, err := header.Open()
	if err != nil {
		h.BadRequest(c, "Invalid image upload")
		return catalogapp.ImageInput{}, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.BadRequest(c, "Invalid image upload")
		return catalogapp.ImageInput{}, false
	}
	return catalogapp.ImageInput{
		File: &catalogapp.ImageFile{Data: data, Filename: header.Filename},
	}, true
}
