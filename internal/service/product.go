package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/producthub/producthub/internal/cache"
	"github.com/producthub/producthub/internal/metrics"
	"github.com/producthub/producthub/internal/model"
	"github.com/producthub/producthub/internal/repository"
	"github.com/producthub/producthub/internal/upload"
)

// Product service errors.
var (
	ErrMissingName     = errors.New("product name is required")
	ErrInvalidPrice    = errors.New("price must be non-negative")
	ErrProductNotFound = errors.New("product not found")
)

// ProductService handles product business logic. All operations are
// scoped to the owning user; there is no path that reads or writes
// another owner's rows.
type ProductService struct {
	repo    *repository.Repository
	cache   *cache.Cache // nil when caching is disabled
	uploads *upload.Store
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewProductService creates a new ProductService. cacheClient may be nil
// to disable the product list cache.
func NewProductService(repo *repository.Repository, cacheClient *cache.Cache, uploads *upload.Store, logger *slog.Logger, recorder metrics.Recorder) *ProductService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ProductService{
		repo:    repo,
		cache:   cacheClient,
		uploads: uploads,
		logger:  logger,
		metrics: recorder,
	}
}

// CreateProductInput defines input for creating a product.
type CreateProductInput struct {
	Name        string
	Description string
	Price       *float64
	SKU         string
	ImageRef    string // reference returned by the upload store, optional
}

// Create validates input and persists a product for the owner.
// If the insert fails after an image was stored, the orphaned file is
// removed best-effort so disk and database stay consistent.
func (s *ProductService) Create(ctx context.Context, ownerID int64, input CreateProductInput) (*model.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrMissingName
	}

	if input.Price != nil && *input.Price < 0 {
		return nil, ErrInvalidPrice
	}

	product := &model.Product{
		OwnerID: ownerID,
		Name:    name,
		Price:   input.Price,
	}
	if desc := strings.TrimSpace(input.Description); desc != "" {
		product.Description = &desc
	}
	if sku := strings.TrimSpace(input.SKU); sku != "" {
		product.SKU = &sku
	}
	if input.ImageRef != "" {
		product.ImageURL = &input.ImageRef
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		if input.ImageRef != "" && s.uploads != nil {
			if rmErr := s.uploads.Remove(input.ImageRef); rmErr != nil {
				s.logger.Warn("failed to clean up orphaned upload",
					"image_ref", input.ImageRef,
					"error", rmErr,
				)
			}
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.invalidateListCache(ctx, ownerID)
	s.metrics.IncProductCreated()

	return product, nil
}

// List returns all of the owner's products, newest first.
// Reads through the cache when one is configured; cache failures fall
// back to the database and never fail the request.
func (s *ProductService) List(ctx context.Context, ownerID int64) ([]*model.Product, error) {
	if s.cache != nil {
		products, err := s.cache.GetProductList(ctx, ownerID)
		if err == nil {
			s.metrics.IncProductListCacheHit()
			return products, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("product list cache read failed", "error", err)
		}
		s.metrics.IncProductListCacheMiss()
	}

	products, err := s.repo.ListProductsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetProductList(ctx, ownerID, products); err != nil {
			s.logger.Warn("product list cache write failed", "error", err)
		}
	}

	return products, nil
}

// Get returns a single product scoped to its owner. Products that do not
// exist and products owned by someone else both return ErrProductNotFound.
func (s *ProductService) Get(ctx context.Context, id, ownerID int64) (*model.Product, error) {
	product, err := s.repo.GetProductByIDForOwner(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

// invalidateListCache drops the owner's cached list after a write.
func (s *ProductService) invalidateListCache(ctx context.Context, ownerID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateProductList(ctx, ownerID); err != nil {
		s.logger.Warn("product list cache invalidation failed",
			"owner_id", ownerID,
			"error", err,
		)
	}
}
