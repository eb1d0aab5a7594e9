package catalog

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/rampurgold/storefront/internal/logging"
	"github.com/rampurgold/storefront/internal/models"
)

// Indexer receives the catalog after seeding, for search. May be nil.
type Indexer interface {
	IndexProducts(ctx context.Context, products []models.Product) error
}

type Service struct {
	DB      *gorm.DB
	Indexer Indexer
}

var seedProducts = []models.Product{
	{Name: "Rampur Gold Tea,1 Kg", Price: 380, Image: "/img/tea-1kg.jpeg", Description: "Premium strong tea", Reviews: 120},
	{Name: "Rampur Gold Tea,500 g", Price: 190, Image: "/img/teab-500.jpeg", Description: "Refreshing flavor", Reviews: 85},
	{Name: "Rampur Gold Tea,250 g", Price: 100, Image: "/img/tea-all.png", Description: "Everyday pack", Reviews: 40},
	{Name: "Rampur Gold Tea,100 g", Price: 40, Image: "/img/tea-all.png", Description: "Trial pack", Reviews: 20},
	{Name: "Rampur Gold Tea,50 g", Price: 20, Image: "/img/tea-all.png", Description: "Pocket friendly", Reviews: 12},
	{Name: "Rampur Gold Tea,10 g", Price: 10, Image: "/img/tea-all.png", Description: "Sample size", Reviews: 5},
}

// List returns the full catalog, seeding the fixed product set when the table
// is empty. The emptiness check is the only guard: two concurrent first loads
// can double-seed.
func (s *Service) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if len(products) > 0 {
		return products, nil
	}

	seed := make([]models.Product, len(seedProducts))
	copy(seed, seedProducts)
	if err := s.DB.WithContext(ctx).Create(&seed).Error; err != nil {
		return nil, fmt.Errorf("seed products: %w", err)
	}

	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products after seed: %w", err)
	}

	if s.Indexer != nil {
		if err := s.Indexer.IndexProducts(ctx, products); err != nil {
			logging.FromContext(ctx).Error("product indexing failed", "error", err)
		}
	}

	return products, nil
}
