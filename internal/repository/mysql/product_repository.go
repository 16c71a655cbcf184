package mysql

import (
	"context"
	"fmt"

	"krishiCMS/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository struct {
	*EntityRepository[domain.Product]
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		EntityRepository: NewEntityRepository[domain.Product](db, domain.ProductDescriptor),
	}
}

// FindByID also loads the visible innovations of the product.
func (r *ProductRepository) FindByID(ctx context.Context, id uint64) (domain.Product, error) {
	product, err := r.EntityRepository.FindByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	var innovations []domain.Innovation
	err = r.DB.WithContext(ctx).
		Where("product_id = ? AND is_deleted = ?", id, domain.FlagOff).
		Order("id ASC").
		Find(&innovations).Error
	if err != nil {
		return domain.Product{}, fmt.Errorf("failed to find product innovations: %w", err)
	}
	product.Innovations = innovations

	return product, nil
}

// Create inserts the product and its innovations in one transaction.
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	innovations := product.Innovations

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(product).Error; err != nil {
			return r.translate("create", err)
		}

		for i := range innovations {
			innovations[i].ProductID = product.ID
			if err := tx.Create(&innovations[i]).Error; err != nil {
				return fmt.Errorf("failed to create product innovation: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	product.Innovations = innovations
	return nil
}

// FindByCategories loads the visible, active products of several categories
// with a single query.
func (r *ProductRepository) FindByCategories(ctx context.Context, categoryIDs []uint64) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if len(categoryIDs) == 0 {
		return []domain.Product{}, nil
	}

	var products []domain.Product
	err := r.DB.WithContext(ctx).
		Where("category_id IN ?", categoryIDs).
		Where("is_deleted = ? AND status = ?", domain.FlagOff, domain.FlagOn).
		Order("category_id ASC, id DESC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find products by categories: %w", err)
	}

	return products, nil
}
