package common_test

import (
	"context"
	"testing"

	"krishiCMS/business/common"
	"krishiCMS/business/entity/entitytest"
	"krishiCMS/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*common.Service, *entitytest.Repo[domain.Category], uint64) {
	t.Helper()

	repo := entitytest.NewRepo[domain.Category](domain.CategoryDescriptor)
	rec := &domain.Category{TitleEnglish: "Seeds"}
	require.NoError(t, repo.Create(context.Background(), rec))

	svc := common.NewService(map[string]common.StatusStore{
		domain.CategoryDescriptor.Table: repo,
	})
	return svc, repo, rec.ID
}

func TestUnknownModelIsRejected(t *testing.T) {
	svc, _, id := setup(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.DeleteItem(ctx, "users; DROP TABLE x", id), domain.ErrUnknownModel)
	assert.ErrorIs(t, svc.ActivateItem(ctx, "tbl_unknown", id), domain.ErrUnknownModel)
	assert.ErrorIs(t, svc.DeactivateItem(ctx, "", id), domain.ErrUnknownModel)
}

func TestDeleteItemHidesRowButKeepsIt(t *testing.T) {
	svc, repo, id := setup(t)
	ctx := context.Background()

	require.NoError(t, svc.DeleteItem(ctx, "tbl_category_master", id))
	require.NoError(t, svc.DeleteItem(ctx, "tbl_category_master", id))

	_, err := repo.FindByID(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	rec, err := repo.FindByPK(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.FlagOn, rec.IsDeleted)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestStatusToggleIsIdempotent(t *testing.T) {
	svc, repo, id := setup(t)
	ctx := context.Background()

	require.NoError(t, svc.ActivateItem(ctx, "tbl_category_master", id))
	require.NoError(t, svc.ActivateItem(ctx, "tbl_category_master", id))
	rec, _ := repo.FindByPK(ctx, id)
	assert.Equal(t, domain.FlagOn, rec.Status)

	require.NoError(t, svc.DeactivateItem(ctx, "tbl_category_master", id))
	require.NoError(t, svc.DeactivateItem(ctx, "tbl_category_master", id))
	rec, _ = repo.FindByPK(ctx, id)
	assert.Equal(t, domain.FlagOff, rec.Status)
}

func TestMissingRow(t *testing.T) {
	svc, _, _ := setup(t)

	assert.ErrorIs(t, svc.DeleteItem(context.Background(), "tbl_category_master", 404), domain.ErrNotFound)
	assert.ErrorIs(t, svc.ActivateItem(context.Background(), "tbl_category_master", 404), domain.ErrNotFound)
}

func TestModels(t *testing.T) {
	svc, _, _ := setup(t)
	assert.Equal(t, []string{"tbl_category_master"}, svc.Models())
}
