package database

import (
	"fmt"

	"krishiCMS/domain"
	"krishiCMS/pkg/logger"

	"gorm.io/gorm"
)

// Models lists every table owned by the CMS, in dependency order.
func Models() []any {
	return []any{
		&domain.Category{},
		&domain.SKU{},
		&domain.Product{},
		&domain.Innovation{},
		&domain.MediaCategory{},
		&domain.MediaModule{},
		&domain.Banner{},
		&domain.Department{},
		&domain.Designation{},
		&domain.AdminUser{},
		&domain.ContactMessage{},
	}
}

var descriptors = []domain.Descriptor{
	domain.CategoryDescriptor,
	domain.SKUDescriptor,
	domain.ProductDescriptor,
	domain.InnovationDescriptor,
	domain.MediaCategoryDescriptor,
	domain.MediaModuleDescriptor,
	domain.BannerDescriptor,
	domain.DepartmentDescriptor,
	domain.DesignationDescriptor,
	domain.AdminUserDescriptor,
	domain.ContactMessageDescriptor,
}

// Migrate creates missing tables and columns, then the live-name unique
// indexes. An index that cannot be built (older engine, existing
// duplicates) is logged and skipped; the service pre-check still applies.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	for _, desc := range descriptors {
		if desc.NameColumn == "" {
			continue
		}
		if err := ensureLiveNameIndex(db, desc); err != nil {
			logger.Warn("Skipping live name index", "table", desc.Table, "error", err)
		}
	}

	return nil
}

func LiveNameIndex(desc domain.Descriptor) string {
	return fmt.Sprintf("uq_%s_live_%s", desc.Table, desc.NameColumn)
}

func ensureLiveNameIndex(db *gorm.DB, desc domain.Descriptor) error {
	name := LiveNameIndex(desc)
	if db.Migrator().HasIndex(desc.Table, name) {
		return nil
	}
	return db.Exec(LiveNameIndexSQL(db.Dialector.Name(), desc)).Error
}

// LiveNameIndexSQL only constrains rows with is_deleted = '0' and compares
// the trimmed name byte for byte.
func LiveNameIndexSQL(dialect string, desc domain.Descriptor) string {
	name := LiveNameIndex(desc)
	if dialect == "postgres" {
		return fmt.Sprintf(
			"CREATE UNIQUE INDEX %s ON %s (TRIM(%s)) WHERE is_deleted = '0'",
			name, desc.Table, desc.NameColumn,
		)
	}
	return fmt.Sprintf(
		"CREATE UNIQUE INDEX %s ON %s ((CAST(CASE WHEN is_deleted = '0' THEN TRIM(%s) END AS BINARY(255))))",
		name, desc.Table, desc.NameColumn,
	)
}
