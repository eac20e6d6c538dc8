//go:build integration

package integration

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/retailpos/backend/internal/application/catalog"
	financeapp "github.com/retailpos/backend/internal/application/finance"
	identityapp "github.com/retailpos/backend/internal/application/identity"
	partnerapp "github.com/retailpos/backend/internal/application/partner"
	reportapp "github.com/retailpos/backend/internal/application/report"
	tradeapp "github.com/retailpos/backend/internal/application/trade"
	"github.com/retailpos/backend/internal/infrastructure/cache"
	"github.com/retailpos/backend/internal/infrastructure/persistence"
	"github.com/retailpos/backend/internal/interfaces/http/handler"
	"github.com/retailpos/backend/internal/interfaces/http/middleware"
	"github.com/retailpos/backend/internal/interfaces/http/router"
	"github.com/retailpos/backend/tests/testutil"
)

// TestServer wires the full API over a real database
type TestServer struct {
	DB        *TestDB
	Engine    *gin.Engine
	Processor *tradeapp.PaymentProcessor

	Products  *persistence.GormProductRepository
	Customers *persistence.GormCustomerRepository
	Sales     *persistence.GormSaleRepository
}

// NewTestServer starts a database and builds the API the way cmd/server does,
// with an in-memory report cache
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	testDB := NewTestDB(t)
	log := testutil.Logger(t)
	db := testDB.DB

	productRepo := persistence.NewGormProductRepository(db)
	customerRepo := persistence.NewGormCustomerRepository(db)
	saleRepo := persistence.NewGormSaleRepository(db)
	paymentRepo := persistence.NewGormPaymentRepository(db)
	reportQueryRepo := persistence.NewGormReportQueryRepository(db)

	reportCache := cache.NewInMemoryReportCache()
	t.Cleanup(func() { _ = reportCache.Close() })
	reportService := reportapp.NewReportService(reportQueryRepo, saleRepo, log,
		reportapp.WithCache(reportCache, time.Minute),
	)

	processor := tradeapp.NewPaymentProcessor(persistence.NewGormTransactionScope(db), saleRepo, log,
		tradeapp.WithPaymentListener(reportService),
	)

	middleware.SetupValidator()
	engine := gin.New()
	engine.Use(middleware.RequestID())

	router.NewRouter(engine).Register(router.APIGroups(router.Handlers{
		Product:  handler.NewProductHandler(catalogapp.NewProductService(productRepo, nil, log)),
		Customer: handler.NewCustomerHandler(partnerapp.NewCustomerService(customerRepo, log)),
		Staff:    handler.NewStaffHandler(identityapp.NewStaffService(persistence.NewGormStaffRepository(db), log)),
		Supplier: handler.NewSupplierHandler(partnerapp.NewSupplierService(persistence.NewGormSupplierRepository(db), log)),
		Sale:     handler.NewSaleHandler(tradeapp.NewSaleService(saleRepo, productRepo, customerRepo, processor, log)),
		Payment:  handler.NewPaymentHandler(financeapp.NewPaymentService(paymentRepo, customerRepo, log)),
		Report:   handler.NewReportHandler(reportService),
		System:   handler.NewSystemHandler("pos-integration", "test", nil),
	})...).Setup()

	return &TestServer{
		DB:        testDB,
		Engine:    engine,
		Processor: processor,
		Products:  productRepo,
		Customers: customerRepo,
		Sales:     saleRepo,
	}
}
