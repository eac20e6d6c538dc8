package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

var productOrderFields = []string{"name", "price", "stock", "category", "created_at", "updated_at"}

// ProductService handles product-related business operations
type ProductService struct {
	productRepo catalog.ProductRepository
	uploader    ImageUploader
	logger      *zap.Logger
}

// NewProductService creates a new ProductService.
// uploader may be nil, in which case image sources are ignored.
func NewProductService(productRepo catalog.ProductRepository, uploader ImageUploader, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		productRepo: productRepo,
		uploader:    uploader,
		logger:      logger,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest, image ImageInput) (*ProductResponse, error) {
	if err := s.ensureSKUAvailable(ctx, req.SKU, uuid.Nil); err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(req.Name, *req.Price)
	if err != nil {
		return nil, err
	}
	if err := product.Update(req.Name, req.Category, req.Supplier, req.Description); err != nil {
		return nil, err
	}
	if err := product.SetSKU(req.SKU); err != nil {
		return nil, err
	}

	stock, minStock := 0, 0
	if req.Stock != nil {
		stock = *req.Stock
	}
	if req.MinStock != nil {
		minStock = *req.MinStock
	}
	if err := product.SetStockLevels(stock, minStock); err != nil {
		return nil, err
	}

	if req.Image != "" {
		product.SetImageURL(req.Image)
	}
	image = mergeImageInput(image, req.ImageBase64, req.ImageSourceURL)
	if url := s.resolveImage(ctx, image); url != "" {
		product.SetImageURL(url)
	}

	// persisted rows start at version 1
	product.Version = 1
	if err := s.productRepo.Save(ctx, product); err != nil {
		s.logger.Error("failed to create product", zap.String("name", product.Name), zap.Error(err))
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name),
	)

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves a paginated list of products
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	sf := shared.NewListFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search,
		"created_at", productOrderFields...)
	if filter.Category != "" {
		sf.Filters["category"] = filter.Category
	}
	if filter.LowStock != nil {
		sf.Filters["low_stock"] = *filter.LowStock
	}

	products, err := s.productRepo.FindAll(ctx, sf)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, sf)
	if err != nil {
		return nil, 0, err
	}

	return ToProductResponses(products), total, nil
}

// Update applies a partial update to a product.
// The write is rejected with CONCURRENCY_CONFLICT if the product changed
// since it was read.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest, image ImageInput) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	loadedVersion := product.Version

	name, category, supplier, description := product.Name, product.Category, product.Supplier, product.Description
	if req.Name != nil {
		name = *req.Name
	}
	if req.Category != nil {
		category = *req.Category
	}
	if req.Supplier != nil {
		supplier = *req.Supplier
	}
	if req.Description != nil {
		description = *req.Description
	}
	if err := product.Update(name, category, supplier, description); err != nil {
		return nil, err
	}

	if req.SKU != nil && *req.SKU != product.SKU {
		if err := s.ensureSKUAvailable(ctx, *req.SKU, product.ID); err != nil {
			return nil, err
		}
		if err := product.SetSKU(*req.SKU); err != nil {
			return nil, err
		}
	}

	if req.Price != nil {
		if err := product.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}

	stock, minStock := product.Stock, product.MinStock
	if req.Stock != nil {
		stock = *req.Stock
	}
	if req.MinStock != nil {
		minStock = *req.MinStock
	}
	if err := product.SetStockLevels(stock, minStock); err != nil {
		return nil, err
	}

	if req.Image != nil {
		product.SetImageURL(*req.Image)
	}
	image = mergeImageInput(image, req.ImageBase64, req.ImageSourceURL)
	if url := s.resolveImage(ctx, image); url != "" {
		product.SetImageURL(url)
	}

	product.Version = loadedVersion + 1
	if err := s.productRepo.SaveWithLock(ctx, product, loadedVersion); err != nil {
		s.logger.Warn("failed to update product",
			zap.String("product_id", id.String()),
			zap.Int("loaded_version", loadedVersion),
			zap.Error(err),
		)
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete deletes a product together with its sales
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("product deleted", zap.String("product_id", id.String()))
	return nil
}

func (s *ProductService) ensureSKUAvailable(ctx context.Context, sku string, excludeID uuid.UUID) error {
	if sku == "" {
		return nil
	}
	exists, err := s.productRepo.ExistsBySKU(ctx, sku, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists").
			WithDetail("sku", "product with this sku already exists.")
	}
	return nil
}

// resolveImage publishes the highest priority image source and returns its
// URL. Upload failures are logged and yield an empty URL.
func (s *ProductService) resolveImage(ctx context.Context, in ImageInput) string {
	if s.uploader == nil || in.IsEmpty() {
		return ""
	}

	var (
		url    string
		err    error
		source string
	)
	switch {
	case in.File != nil && len(in.File.Data) > 0:
		source = "file"
		url, err = s.uploader.Upload(ctx, in.File.Data, in.File.Filename)
	case in.Base64 != "":
		source = "base64"
		url, err = s.uploader.UploadFromBase64(ctx, in.Base64)
	default:
		source = "url"
		url, err = s.uploader.UploadFromURL(ctx, in.SourceURL)
	}

	if err != nil {
		s.logger.Warn("product image upload failed", zap.String("source", source), zap.Error(err))
		return ""
	}
	return url
}

func mergeImageInput(in ImageInput, base64, sourceURL string) ImageInput {
	if in.Base64 == "" {
		in.Base64 = base64
	}
	if in.SourceURL == "" {
		in.SourceURL = sourceURL
	}
	return in
}
