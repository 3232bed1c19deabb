package services

import (
	"context"

	"github.com/trendora/storefront-api/models"
	"github.com/trendora/storefront-api/store"
)

// CatalogService is plain product CRUD. Input shape validation happens at the
// HTTP boundary; missing rows surface as store.ErrNotFound.
type CatalogService struct {
	store store.Store
}

func NewCatalogService(s store.Store) *CatalogService {
	return &CatalogService{store: s}
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.store.Products().List(ctx)
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (models.Product, error) {
	return s.store.Products().Get(ctx, id)
}

func (s *CatalogService) CreateProduct(ctx context.Context, p *models.Product) error {
	return s.store.Products().Create(ctx, p)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, update models.Product) (models.Product, error) {
	p, err := s.store.Products().Get(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	p.Name = update.Name
	p.Description = update.Description
	p.Price = update.Price
	p.StockQuantity = update.StockQuantity
	if err := s.store.Products().Save(ctx, &p); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	return s.store.Products().Delete(ctx, id)
}
