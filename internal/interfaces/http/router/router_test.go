package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/retailpos/backend/internal/interfaces/http/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	group := NewDomainGroup("test", "/test").
		GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	NewRouter(engine).Register(group).Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/test/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestDomainGroupMiddleware(t *testing.T) {
	engine := gin.New()
	group := NewDomainGroup("test", "/test").
		Use(func(c *gin.Context) {
			c.Header("X-Group", "test")
			c.Next()
		}).
		DELETE("/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	NewRouter(engine).Register(group).Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/test/7", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "test", w.Header().Get("X-Group"))
	assert.Equal(t, "test", group.Name())
	assert.Equal(t, "/test", group.Prefix())
}

type recordingResource struct{}

func (recordingResource) reply(name string) gin.HandlerFunc {
	return func(c *gin.Context) { c.String(http.StatusOK, name) }
}

func (r recordingResource) Create(c *gin.Context)  { r.reply("create")(c) }
func (r recordingResource) List(c *gin.Context)    { r.reply("list")(c) }
func (r recordingResource) GetByID(c *gin.Context) { r.reply("get")(c) }
func (r recordingResource) Replace(c *gin.Context) { r.reply("replace")(c) }
func (r recordingResource) Update(c *gin.Context)  { r.reply("update")(c) }
func (r recordingResource) Delete(c *gin.Context)  { r.reply("delete")(c) }

func TestResourceGroup(t *testing.T) {
	engine := gin.New()
	NewRouter(engine).Register(ResourceGroup("widgets", "/widgets", recordingResource{})).Setup()

	tests := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodGet, "/api/v1/widgets", "list"},
		{http.MethodPost, "/api/v1/widgets", "create"},
		{http.MethodGet, "/api/v1/widgets/1", "get"},
		{http.MethodPut, "/api/v1/widgets/1", "replace"},
		{http.MethodPatch, "/api/v1/widgets/1", "update"},
		{http.MethodDelete, "/api/v1/widgets/1", "delete"},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
		assert.Equal(t, tt.want, w.Body.String(), "%s %s", tt.method, tt.path)
	}
}

func TestAPIGroups(t *testing.T) {
	groups := APIGroups(Handlers{
		Product:  handler.NewProductHandler(nil),
		Customer: handler.NewCustomerHandler(nil),
		Staff:    handler.NewStaffHandler(nil),
		Supplier: handler.NewSupplierHandler(nil),
		Sale:     handler.NewSaleHandler(nil),
		Payment:  handler.NewPaymentHandler(nil),
		Report:   handler.NewReportHandler(nil),
		System:   handler.NewSystemHandler("pos", "test", nil),
	})
	require.Len(t, groups, 7)

	sales := groups[4].(*DomainGroup)
	routes := sales.Routes()
	assert.Equal(t, []string{
		"GET /sales/dashboard",
		"GET /sales/reports",
		"POST /sales/:id/process_payment",
		"GET /sales",
		"POST /sales",
		"GET /sales/:id",
		"PUT /sales/:id",
		"PATCH /sales/:id",
		"DELETE /sales/:id",
	}, routes)

	engine := gin.New()
	assert.NotPanics(t, func() { NewRouter(engine).Register(groups...).Setup() })
	assert.Len(t, engine.Routes(), 6*6+3+1)
}
