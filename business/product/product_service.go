package product

import (
	"context"
	"fmt"

	"krishiCMS/domain"
	"krishiCMS/pkg/logger"
)

// ProductRepository contract interface
type ProductRepository interface {
	FindByCategories(ctx context.Context, categoryIDs []uint64) ([]domain.Product, error)
}

// CategoryProducts is one group of the products-by-categories response.
type CategoryProducts struct {
	CategoryID uint64           `json:"category_id"`
	Products   []domain.Product `json:"products"`
}

type productService struct {
	productRepo ProductRepository
}

func NewProductService(productRepo ProductRepository) *productService {
	return &productService{
		productRepo: productRepo,
	}
}

// GetProductsByCategories loads the active products of every category with
// one query and groups them in the requested category order. Duplicate ids
// are collapsed; categories without products yield an empty group.
func (s *productService) GetProductsByCategories(ctx context.Context, categoryIDs []uint64) ([]CategoryProducts, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get products by categories")
		return nil, fmt.Errorf("context error: %w", err)
	}

	ids := make([]uint64, 0, len(categoryIDs))
	seen := make(map[uint64]bool, len(categoryIDs))
	for _, id := range categoryIDs {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return []CategoryProducts{}, nil
	}

	products, err := s.productRepo.FindByCategories(ctx, ids)
	if err != nil {
		logger.Error("Failed to find products by categories", err)
		return nil, err
	}

	byCategory := make(map[uint64][]domain.Product, len(ids))
	for _, p := range products {
		byCategory[p.CategoryID] = append(byCategory[p.CategoryID], p)
	}

	out := make([]CategoryProducts, 0, len(ids))
	for _, id := range ids {
		group := byCategory[id]
		if group == nil {
			group = []domain.Product{}
		}
		out = append(out, CategoryProducts{CategoryID: id, Products: group})
	}

	return out, nil
}
