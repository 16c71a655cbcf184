package product

import (
	"context"
	"testing"

	"krishiCMS/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProducts struct {
	calls    int
	lastIDs  []uint64
	products []domain.Product
}

func (f *fakeProducts) FindByCategories(_ context.Context, ids []uint64) ([]domain.Product, error) {
	f.calls++
	f.lastIDs = ids
	return f.products, nil
}

func TestGetProductsByCategoriesBatchesAndGroups(t *testing.T) {
	repo := &fakeProducts{products: []domain.Product{
		{ID: 1, CategoryID: 2, NameEnglish: "Urea"},
		{ID: 2, CategoryID: 5, NameEnglish: "Hybrid Maize"},
		{ID: 3, CategoryID: 2, NameEnglish: "DAP"},
	}}
	svc := NewProductService(repo)

	groups, err := svc.GetProductsByCategories(context.Background(), []uint64{5, 2, 5, 0, 9})
	require.NoError(t, err)

	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, []uint64{5, 2, 9}, repo.lastIDs)

	require.Len(t, groups, 3)
	assert.Equal(t, uint64(5), groups[0].CategoryID)
	assert.Len(t, groups[0].Products, 1)
	assert.Equal(t, uint64(2), groups[1].CategoryID)
	assert.Len(t, groups[1].Products, 2)
	assert.Empty(t, groups[2].Products)
	assert.NotNil(t, groups[2].Products)
}

func TestGetProductsByCategoriesEmpty(t *testing.T) {
	repo := &fakeProducts{}
	svc := NewProductService(repo)

	groups, err := svc.GetProductsByCategories(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, groups)
	assert.Zero(t, repo.calls)
}
