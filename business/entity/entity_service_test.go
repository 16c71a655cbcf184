package entity_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"krishiCMS/business/entity"
	"krishiCMS/business/entity/entitytest"
	"krishiCMS/domain"
	"krishiCMS/pkg/datatable"
	"krishiCMS/pkg/filestore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCategoryService() (*entity.Service[domain.Category], *entitytest.Repo[domain.Category], *entitytest.Files) {
	repo := entitytest.NewRepo[domain.Category](domain.CategoryDescriptor)
	files := &entitytest.Files{}
	return entity.NewService[domain.Category](repo, files), repo, files
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	svc, _, _ := newCategoryService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "1", &domain.Category{TitleEnglish: "Foo", TitleHindi: "फू"}, nil)
	require.NoError(t, err)

	_, err = svc.Create(ctx, "1", &domain.Category{TitleEnglish: "Foo", TitleHindi: "फू"}, nil)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = svc.Create(ctx, "1", &domain.Category{TitleEnglish: "foo ", TitleHindi: "फू"}, nil)
	assert.NoError(t, err, "comparison is case sensitive")

	_, err = svc.Create(ctx, "1", &domain.Category{TitleEnglish: "FOO", TitleHindi: "फू"}, nil)
	assert.NoError(t, err)

	_, err = svc.Create(ctx, "1", &domain.Category{TitleEnglish: " Foo ", TitleHindi: "फू"}, nil)
	assert.ErrorIs(t, err, domain.ErrDuplicate, "comparison trims whitespace")
}

func TestUniquenessIgnoresDeletedRowsAndSelf(t *testing.T) {
	svc, repo, _ := newCategoryService()
	ctx := context.Background()

	first, err := svc.Create(ctx, "1", &domain.Category{TitleEnglish: "Seeds"}, nil)
	require.NoError(t, err)

	taken, err := svc.CheckUnique(ctx, "Seeds", first.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	_, err = svc.Update(ctx, "1", first.ID, func(c *domain.Category) error {
		c.TitleHindi = "बीज"
		return nil
	}, nil)
	require.NoError(t, err)

	require.NoError(t, repo.SoftDelete(ctx, first.ID))

	_, err = svc.Create(ctx, "1", &domain.Category{TitleEnglish: "Seeds"}, nil)
	assert.NoError(t, err)
}

func TestCreateStoresUploads(t *testing.T) {
	svc, repo, files := newCategoryService()

	created, err := svc.Create(context.Background(), "7", &domain.Category{TitleEnglish: "Seeds"}, []filestore.Upload{
		{Field: "upload_img", Header: entitytest.FileHeader(t, "upload_img", "Seed Pack.png", entitytest.PNG)},
	})
	require.NoError(t, err)

	require.Len(t, files.Saved, 1)
	assert.Equal(t, files.Saved[0], created.UploadImg)
	assert.Equal(t, domain.FlagOn, created.Status)
	assert.Equal(t, domain.FlagOff, created.IsDeleted)
	assert.Len(t, repo.Rows(), 1)
}

func TestCreateRemovesFilesWhenRowFails(t *testing.T) {
	svc, repo, files := newCategoryService()
	repo.Err = errors.New("connection reset")

	_, err := svc.Create(context.Background(), "7", &domain.Category{TitleEnglish: "Seeds"}, []filestore.Upload{
		{Field: "upload_img", Header: entitytest.FileHeader(t, "upload_img", "a.png", entitytest.PNG)},
	})
	require.Error(t, err)

	assert.Equal(t, files.Saved, files.Removed)
}

func TestCreateRejectsUnknownFileField(t *testing.T) {
	svc, _, _ := newCategoryService()

	_, err := svc.Create(context.Background(), "7", &domain.Category{TitleEnglish: "Seeds"}, []filestore.Upload{
		{Field: "brochure", Header: entitytest.FileHeader(t, "brochure", "a.png", entitytest.PNG)},
	})
	assert.Error(t, err)
}

func TestUpdateRemovesReplacedFileAfterSave(t *testing.T) {
	svc, _, files := newCategoryService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "7", &domain.Category{TitleEnglish: "Seeds"}, []filestore.Upload{
		{Field: "upload_img", Header: entitytest.FileHeader(t, "upload_img", "old.png", entitytest.PNG)},
	})
	require.NoError(t, err)
	oldName := created.UploadImg

	updated, err := svc.Update(ctx, "7", created.ID, nil, []filestore.Upload{
		{Field: "upload_img", Header: entitytest.FileHeader(t, "upload_img", "new.png", entitytest.PNG)},
	})
	require.NoError(t, err)

	assert.NotEqual(t, oldName, updated.UploadImg)
	assert.Equal(t, []string{oldName}, files.Removed)
}

func TestUpdateKeepsOldFileWhenSaveFails(t *testing.T) {
	svc, repo, files := newCategoryService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "7", &domain.Category{TitleEnglish: "Seeds"}, []filestore.Upload{
		{Field: "upload_img", Header: entitytest.FileHeader(t, "upload_img", "old.png", entitytest.PNG)},
	})
	require.NoError(t, err)

	repo.Err = errors.New("deadlock")
	_, err = svc.Update(ctx, "7", created.ID, nil, []filestore.Upload{
		{Field: "upload_img", Header: entitytest.FileHeader(t, "upload_img", "new.png", entitytest.PNG)},
	})
	require.Error(t, err)

	require.Len(t, files.Saved, 2)
	assert.Equal(t, []string{files.Saved[1]}, files.Removed)

	repo.Err = nil
	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.UploadImg, got.UploadImg)
}

func TestUpdateReplacesGallery(t *testing.T) {
	repo := entitytest.NewRepo[domain.Product](domain.ProductDescriptor)
	files := &entitytest.Files{}
	svc := entity.NewService[domain.Product](repo, files)
	ctx := context.Background()

	created, err := svc.Create(ctx, "1", &domain.Product{NameEnglish: "Urea"}, []filestore.Upload{
		{Field: "upload_multiple_img", Header: entitytest.FileHeader(t, "upload_multiple_img", "a.png", entitytest.PNG)},
		{Field: "upload_multiple_img", Header: entitytest.FileHeader(t, "upload_multiple_img", "b.png", entitytest.PNG)},
	})
	require.NoError(t, err)
	require.Len(t, created.UploadMultipleImg, 2)

	updated, err := svc.Update(ctx, "1", created.ID, nil, []filestore.Upload{
		{Field: "upload_multiple_img", Header: entitytest.FileHeader(t, "upload_multiple_img", "c.png", entitytest.PNG)},
	})
	require.NoError(t, err)

	assert.Len(t, updated.UploadMultipleImg, 1)
	assert.ElementsMatch(t, []string(created.UploadMultipleImg), files.Removed)
}

func TestGetByIDInvalid(t *testing.T) {
	svc, _, _ := newCategoryService()

	_, err := svc.GetByID(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDestroyRemovesRowAndFiles(t *testing.T) {
	svc, repo, files := newCategoryService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "7", &domain.Category{TitleEnglish: "Seeds"}, []filestore.Upload{
		{Field: "upload_img", Header: entitytest.FileHeader(t, "upload_img", "a.png", entitytest.PNG)},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Destroy(ctx, created.ID))
	assert.Empty(t, repo.Rows())
	assert.Equal(t, []string{created.UploadImg}, files.Removed)

	assert.ErrorIs(t, svc.Destroy(ctx, created.ID), domain.ErrNotFound)
}

func TestListShapesRows(t *testing.T) {
	svc, repo, _ := newCategoryService()
	ctx := context.Background()

	for _, title := range []string{"Seeds", "Fertilizer", "Seed Drills", "Tools"} {
		_, err := svc.Create(ctx, "1", &domain.Category{TitleEnglish: title}, nil)
		require.NoError(t, err)
	}
	require.NoError(t, repo.SoftDelete(ctx, 4))

	resp, err := svc.List(ctx, datatable.Request{
		Draw:   "3",
		Length: "1",
		Start:  "1",
		Search: datatable.Search{Value: "seed"},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Draw)
	assert.Equal(t, int64(3), resp.RecordsTotal)
	assert.Equal(t, int64(2), resp.RecordsFiltered)
	require.Len(t, resp.Data, 1)

	row := resp.Data[0]
	assert.Equal(t, 2, row[0])
	assert.Equal(t, uint64(1), row[1])
	assert.Equal(t, "Seeds", row[2])
	assert.Equal(t, domain.FlagOn, row[len(row)-1])
}

func TestListUnknownSortFallsBackToIDDesc(t *testing.T) {
	svc, _, _ := newCategoryService()
	ctx := context.Background()

	for _, title := range []string{"A", "B", "C"} {
		_, err := svc.Create(ctx, "1", &domain.Category{TitleEnglish: title}, nil)
		require.NoError(t, err)
	}

	resp, err := svc.List(ctx, datatable.Request{
		Order: []datatable.Order{{Column: json.Number("42"), Dir: "asc"}},
	}, nil)
	require.NoError(t, err)

	require.Len(t, resp.Data, 3)
	assert.Equal(t, uint64(3), resp.Data[0][1])
	assert.Equal(t, uint64(1), resp.Data[2][1])
}

type countingObserver struct {
	lists   int
	uploads int
}

func (o *countingObserver) ObserveList(string, time.Time, error) { o.lists++ }
func (o *countingObserver) ObserveUpload(string, int64)          { o.uploads++ }

func TestObserverIsNotified(t *testing.T) {
	repo := entitytest.NewRepo[domain.Category](domain.CategoryDescriptor)
	obs := &countingObserver{}
	svc := entity.NewService[domain.Category](repo, &entitytest.Files{}, entity.WithObserver[domain.Category](obs))
	ctx := context.Background()

	_, err := svc.Create(ctx, "1", &domain.Category{TitleEnglish: "Seeds"}, []filestore.Upload{
		{Field: "upload_img", Header: entitytest.FileHeader(t, "upload_img", "a.png", entitytest.PNG)},
	})
	require.NoError(t, err)
	_, err = svc.List(ctx, datatable.Request{}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, obs.lists)
	assert.Equal(t, 1, obs.uploads)
}
