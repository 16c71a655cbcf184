package mysql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"krishiCMS/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EntityRepository is the gorm row store shared by every managed table.
type EntityRepository[T domain.Record] struct {
	DB   *gorm.DB
	desc domain.Descriptor
}

func NewEntityRepository[T domain.Record](db *gorm.DB, desc domain.Descriptor) *EntityRepository[T] {
	return &EntityRepository[T]{
		DB:   db,
		desc: desc,
	}
}

func (r *EntityRepository[T]) Descriptor() domain.Descriptor {
	return r.desc
}

func (r *EntityRepository[T]) withPreloads(db *gorm.DB) *gorm.DB {
	for _, p := range r.desc.Preloads {
		db = db.Preload(p, visible)
	}
	return db
}

func visible(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", domain.FlagOff)
}

// FindAll returns visible, active rows.
func (r *EntityRepository[T]) FindAll(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []T
	err := r.withPreloads(r.DB.WithContext(ctx)).
		Where("is_deleted = ? AND status = ?", domain.FlagOff, domain.FlagOn).
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find %s rows: %w", r.desc.Label, err)
	}

	return rows, nil
}

// FindByID returns a visible row.
func (r *EntityRepository[T]) FindByID(ctx context.Context, id uint64) (T, error) {
	var rec T
	if err := ctx.Err(); err != nil {
		return rec, fmt.Errorf("context error: %w", err)
	}

	err := r.withPreloads(r.DB.WithContext(ctx)).
		Where("id = ? AND is_deleted = ?", id, domain.FlagOff).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return rec, fmt.Errorf("%s %d: %w", r.desc.Label, id, domain.ErrNotFound)
		}
		return rec, fmt.Errorf("failed to find %s: %w", r.desc.Label, err)
	}

	return rec, nil
}

// FindByPK returns a row regardless of its deletion flag.
func (r *EntityRepository[T]) FindByPK(ctx context.Context, id uint64) (T, error) {
	var rec T
	if err := ctx.Err(); err != nil {
		return rec, fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return rec, fmt.Errorf("%s %d: %w", r.desc.Label, id, domain.ErrNotFound)
		}
		return rec, fmt.Errorf("failed to find %s: %w", r.desc.Label, err)
	}

	return rec, nil
}

func (r *EntityRepository[T]) Create(ctx context.Context, rec *T) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Omit(clause.Associations).Create(rec).Error; err != nil {
		return r.translate("create", err)
	}

	return nil
}

// Save writes every column of an existing row.
func (r *EntityRepository[T]) Save(ctx context.Context, rec *T) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Omit(clause.Associations).Save(rec).Error; err != nil {
		return r.translate("update", err)
	}

	return nil
}

// Destroy physically removes the row.
func (r *EntityRepository[T]) Destroy(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return fmt.Errorf("failed to delete %s: %w", r.desc.Label, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%s %d: %w", r.desc.Label, id, domain.ErrNotFound)
	}

	return nil
}

// NameTaken reports whether another visible row already uses name. The
// comparison is exact after trimming, whatever the column collation.
func (r *EntityRepository[T]) NameTaken(ctx context.Context, name string, excludeID uint64) (bool, error) {
	if r.desc.NameColumn == "" {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("context error: %w", err)
	}

	name = strings.TrimSpace(name)

	var candidates []string
	err := r.DB.WithContext(ctx).Model(new(T)).
		Where(fmt.Sprintf("LOWER(%s) = ?", r.desc.NameColumn), strings.ToLower(name)).
		Where("is_deleted = ? AND id <> ?", domain.FlagOff, excludeID).
		Pluck(r.desc.NameColumn, &candidates).Error
	if err != nil {
		return false, fmt.Errorf("failed to check %s uniqueness: %w", r.desc.Label, err)
	}

	for _, c := range candidates {
		if strings.TrimSpace(c) == name {
			return true, nil
		}
	}

	return false, nil
}

// SoftDelete flags the row as deleted. Deleting twice succeeds.
func (r *EntityRepository[T]) SoftDelete(ctx context.Context, id uint64) error {
	return r.setFlag(ctx, id, "is_deleted", domain.FlagOn)
}

func (r *EntityRepository[T]) SetStatus(ctx context.Context, id uint64, status domain.Flag) error {
	return r.setFlag(ctx, id, "status", status)
}

func (r *EntityRepository[T]) setFlag(ctx context.Context, id uint64, column string, value domain.Flag) error {
	if _, err := r.FindByPK(ctx, id); err != nil {
		return err
	}

	err := r.DB.WithContext(ctx).Model(new(T)).Where("id = ?", id).Update(column, value).Error
	if err != nil {
		return fmt.Errorf("failed to update %s %s: %w", r.desc.Label, column, err)
	}

	return nil
}

func (r *EntityRepository[T]) translate(op string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%s: %w", r.desc.Label, domain.ErrDuplicate)
	}
	return fmt.Errorf("failed to %s %s: %w", op, r.desc.Label, err)
}
