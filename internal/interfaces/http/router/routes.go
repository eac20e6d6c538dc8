package router

import (
	"github.com/gin-gonic/gin"
	"github.com/retailpos/backend/internal/interfaces/http/handler"
)

// Resource is a handler exposing the standard CRUD endpoints
type Resource interface {
	Create(c *gin.Context)
	List(c *gin.Context)
	GetByID(c *gin.Context)
	Replace(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// Handlers holds every API handler
type Handlers struct {
	Product  *handler.ProductHandler
	Customer *handler.CustomerHandler
	Staff    *handler.StaffHandler
	Supplier *handler.SupplierHandler
	Sale     *handler.SaleHandler
	Payment  *handler.PaymentHandler
	Report   *handler.ReportHandler
	System   *handler.SystemHandler
}

// ResourceGroup registers list/create on the prefix and
// retrieve/replace/update/delete on prefix/:id
func ResourceGroup(name, prefix string, r Resource) *DomainGroup {
	return NewDomainGroup(name, prefix).
		GET("", r.List).
		POST("", r.Create).
		GET("/:id", r.GetByID).
		PUT("/:id", r.Replace).
		PATCH("/:id", r.Update).
		DELETE("/:id", r.Delete)
}

// APIGroups returns the route groups of the versioned API
func APIGroups(h Handlers) []RouteRegistrar {
	// dashboard and reports go first so they are never read as a sale id
	sales := NewDomainGroup("sales", "/sales").
		GET("/dashboard", h.Report.Dashboard).
		GET("/reports", h.Report.Reports).
		POST("/:id/process_payment", h.Sale.ProcessPayment)
	sales.routes = append(sales.routes, ResourceGroup("sales", "/sales", h.Sale).routes...)

	return []RouteRegistrar{
		ResourceGroup("products", "/products", h.Product),
		ResourceGroup("customers", "/customers", h.Customer),
		ResourceGroup("staff", "/staff", h.Staff),
		ResourceGroup("suppliers", "/suppliers", h.Supplier),
		sales,
		ResourceGroup("payments", "/payments", h.Payment),
		NewDomainGroup("system", "/system").GET("/info", h.System.Info),
	}
}
