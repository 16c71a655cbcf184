package mysql

import (
	"context"
	"errors"
	"fmt"

	"krishiCMS/domain"

	"gorm.io/gorm"
)

type AdminUserRepository struct {
	*EntityRepository[domain.AdminUser]
}

func NewAdminUserRepository(db *gorm.DB) *AdminUserRepository {
	return &AdminUserRepository{
		EntityRepository: NewEntityRepository[domain.AdminUser](db, domain.AdminUserDescriptor),
	}
}

// FindByEmail returns a visible, active admin.
func (r *AdminUserRepository) FindByEmail(ctx context.Context, email string) (domain.AdminUser, error) {
	var user domain.AdminUser

	err := r.DB.WithContext(ctx).
		Where("email = ? AND is_deleted = ? AND status = ?", email, domain.FlagOff, domain.FlagOn).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.AdminUser{}, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
		}
		return domain.AdminUser{}, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

func (r *AdminUserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&domain.AdminUser{}).Where("is_deleted = ?", domain.FlagOff).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}
