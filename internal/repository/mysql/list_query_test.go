package mysql

import (
	"encoding/json"
	"testing"

	"krishiCMS/domain"
	"krishiCMS/pkg/datatable"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func pageSQL(t *testing.T, desc domain.Descriptor, req datatable.Request, filters map[string]string) string {
	t.Helper()

	db, _ := newMockDB(t)
	q := req.Normalize(filters)

	return db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []map[string]any
		return pageQuery(tx.Table(desc.Table), desc, q).Find(&rows)
	})
}

func TestPageQuerySearchAndFiltersAreAnded(t *testing.T) {
	sql := pageSQL(t, domain.ProductDescriptor,
		datatable.Request{Search: datatable.Search{Value: "Seed"}, Length: "5", Start: "10"},
		map[string]string{"sku": "2", "category_id": "4", "status": "all"},
	)

	assert.Contains(t, sql, "is_deleted = ")
	assert.Contains(t, sql, "(LOWER(name_english) LIKE ")
	assert.Contains(t, sql, "OR LOWER(name_hindi) LIKE ")
	assert.Contains(t, sql, "%seed%")
	assert.Contains(t, sql, ") AND ")
	assert.Contains(t, sql, "CONCAT(',', sku_id, ',') LIKE ")
	assert.Contains(t, sql, "%,2,%")
	assert.Contains(t, sql, "category_id = ")
	assert.NotContains(t, sql, "status = ")
	assert.Contains(t, sql, "LIMIT 5 OFFSET 10")
}

func TestPageQueryUnknownSortFallsBackToID(t *testing.T) {
	sql := pageSQL(t, domain.CategoryDescriptor,
		datatable.Request{Order: []datatable.Order{{Column: json.Number("99"), Dir: "asc"}}},
		nil,
	)

	assert.Contains(t, sql, "ORDER BY tbl_category_master.id DESC")
	assert.NotContains(t, sql, "ASC")
}

func TestPageQueryKnownSort(t *testing.T) {
	sql := pageSQL(t, domain.CategoryDescriptor,
		datatable.Request{Order: []datatable.Order{{Column: json.Number("2"), Dir: "asc"}}},
		nil,
	)

	assert.Contains(t, sql, "ORDER BY tbl_category_master.title_english ASC,tbl_category_master.id DESC")
}

func TestSearchNumericBranch(t *testing.T) {
	sql := pageSQL(t, domain.SKUDescriptor, datatable.Request{Search: datatable.Search{Value: "5"}}, nil)
	assert.Contains(t, sql, "OR quantity = 5")

	sql = pageSQL(t, domain.SKUDescriptor, datatable.Request{Search: datatable.Search{Value: "kg"}}, nil)
	assert.NotContains(t, sql, "quantity =")
	assert.Contains(t, sql, "LOWER(unit_english) LIKE ")
}

func TestSearchNonFiniteTextStaysTextual(t *testing.T) {
	for _, search := range []string{"inf", "Infinity", "NaN", "-inf"} {
		sql := pageSQL(t, domain.SKUDescriptor, datatable.Request{Search: datatable.Search{Value: search}}, nil)
		assert.NotContains(t, sql, "quantity =", search)
		assert.Contains(t, sql, "LOWER(unit_english) LIKE ", search)
	}
}

func TestEmptySearchAddsNoGroup(t *testing.T) {
	sql := pageSQL(t, domain.CategoryDescriptor, datatable.Request{Search: datatable.Search{Value: "   "}}, nil)
	assert.NotContains(t, sql, "LIKE")
}

func TestRequireActive(t *testing.T) {
	sql := pageSQL(t, domain.MediaModuleDescriptor.WithActiveOnly(), datatable.Request{}, nil)
	assert.Contains(t, sql, "status = ")
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%\_a\\b`, escapeLike(`50%_a\b`))
}
