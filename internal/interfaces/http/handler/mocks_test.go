package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/retailpos/backend/internal/application/catalog"
	partnerapp "github.com/retailpos/backend/internal/application/partner"
	reportapp "github.com/retailpos/backend/internal/application/report"
	tradeapp "github.com/retailpos/backend/internal/application/trade"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
	"github.com/retailpos/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

type testResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

func newTestEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.RequestID())
	return engine
}

func doRequest(engine *gin.Engine, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func doJSON(engine *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	if payload == nil {
		return doRequest(engine, method, path, nil, "")
	}
	var buf bytes.Buffer
	if s, ok := payload.(string); ok {
		buf.WriteString(s)
	} else {
		_ = json.NewEncoder(&buf).Encode(payload)
	}
	return doRequest(engine, method, path, &buf, "application/json")
}

func decode(t *testing.T, w *httptest.ResponseRecorder) testResponse {
	t.Helper()
	var resp testResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

type mockProductService struct {
	mock.Mock
}

func (m *mockProductService) Create(ctx context.Context, req catalogapp.CreateProductRequest, image catalogapp.ImageInput) (*catalogapp.ProductResponse, error) {
	args := m.Called(ctx, req, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ProductResponse), args.Error(1)
}

func (m *mockProductService) GetByID(ctx context.Context, id uuid.UUID) (*catalogapp.ProductResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ProductResponse), args.Error(1)
}

func (m *mockProductService) List(ctx context.Context, filter catalogapp.ProductListFilter) ([]catalogapp.ProductResponse, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalogapp.ProductResponse), args.Get(1).(int64), args.Error(2)
}

func (m *mockProductService) Update(ctx context.Context, id uuid.UUID, req catalogapp.UpdateProductRequest, image catalogapp.ImageInput) (*catalogapp.ProductResponse, error) {
	args := m.Called(ctx, id, req, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ProductResponse), args.Error(1)
}

func (m *mockProductService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockCustomerService struct {
	mock.Mock
}

func (m *mockCustomerService) Create(ctx context.Context, req partnerapp.CreateCustomerRequest) (*partnerapp.CustomerResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partnerapp.CustomerResponse), args.Error(1)
}

func (m *mockCustomerService) GetByID(ctx context.Context, id uuid.UUID) (*partnerapp.CustomerResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partnerapp.CustomerResponse), args.Error(1)
}

func (m *mockCustomerService) List(ctx context.Context, filter partnerapp.CustomerListFilter) ([]partnerapp.CustomerResponse, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partnerapp.CustomerResponse), args.Get(1).(int64), args.Error(2)
}

func (m *mockCustomerService) Update(ctx context.Context, id uuid.UUID, req partnerapp.UpdateCustomerRequest) (*partnerapp.CustomerResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partnerapp.CustomerResponse), args.Error(1)
}

func (m *mockCustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockSaleService struct {
	mock.Mock
}

func (m *mockSaleService) Create(ctx context.Context, req tradeapp.CreateSaleRequest) (*tradeapp.SaleResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tradeapp.SaleResponse), args.Error(1)
}

func (m *mockSaleService) ProcessPayment(ctx context.Context, id uuid.UUID, req tradeapp.ProcessPaymentRequest) (*tradeapp.SaleResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tradeapp.SaleResponse), args.Error(1)
}

func (m *mockSaleService) GetByID(ctx context.Context, id uuid.UUID) (*tradeapp.SaleResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tradeapp.SaleResponse), args.Error(1)
}

func (m *mockSaleService) List(ctx context.Context, filter tradeapp.SaleListFilter) ([]tradeapp.SaleResponse, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]tradeapp.SaleResponse), args.Get(1).(int64), args.Error(2)
}

func (m *mockSaleService) Update(ctx context.Context, id uuid.UUID, req tradeapp.UpdateSaleRequest) (*tradeapp.SaleResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tradeapp.SaleResponse), args.Error(1)
}

func (m *mockSaleService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockReportService struct {
	mock.Mock
}

func (m *mockReportService) Dashboard(ctx context.Context) (*reportapp.DashboardResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reportapp.DashboardResponse), args.Error(1)
}

func (m *mockReportService) Reports(ctx context.Context) (*reportapp.ReportsResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reportapp.ReportsResponse), args.Error(1)
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error {
	return p.err
}
