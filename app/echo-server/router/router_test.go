package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"krishiCMS/business/common"
	"krishiCMS/business/entity"
	"krishiCMS/business/entity/entitytest"
	"krishiCMS/domain"
	"krishiCMS/internal/middleware"
	"krishiCMS/internal/rest"
	"krishiCMS/pkg/filestore"
	"krishiCMS/pkg/utils"
	"krishiCMS/pkg/validation"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sessionToken = "session-7"

type staticSessions struct{}

func (staticSessions) Authenticate(_ context.Context, token string) (*utils.Claims, error) {
	if token != sessionToken {
		return nil, errors.New("unknown session")
	}
	return &utils.Claims{UserID: "7", Role: domain.RoleAdmin}, nil
}

type testApp struct {
	e          *echo.Echo
	root       string
	categories *entitytest.Repo[domain.Category]
	products   *entitytest.Repo[domain.Product]
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	app := &testApp{
		e:          echo.New(),
		root:       t.TempDir(),
		categories: entitytest.NewRepo[domain.Category](domain.CategoryDescriptor),
		products:   entitytest.NewRepo[domain.Product](domain.ProductDescriptor),
	}
	app.e.HTTPErrorHandler = middleware.ErrorHandler(false)

	files := filestore.New(app.root, 5)
	v := validation.New()
	authRequired := middleware.AuthMiddleware(staticSessions{}, "token")

	categoryHandler := rest.NewEntityHandler[domain.Category](
		entity.NewService[domain.Category](app.categories, files),
		rest.FormBinder(v, rest.ApplyCategory), "category", "categories")
	productHandler := rest.NewEntityHandler[domain.Product](
		entity.NewService[domain.Product](app.products, files),
		rest.FormBinder(v, rest.ApplyProduct), "product", "products")
	commonHandler := rest.NewCommonHandler(common.NewService(map[string]common.StatusStore{
		domain.CategoryDescriptor.Table: app.categories,
		domain.ProductDescriptor.Table:  app.products,
	}))

	api := app.e.Group("/api")
	SetupEntityRoutes(api, "categories", categoryHandler, authRequired, RouteOptions{})
	SetupEntityRoutes(api, "products", productHandler, authRequired, RouteOptions{})
	SetupCommonRoutes(api, commonHandler, authRequired)

	return app
}

func (a *testApp) do(t *testing.T, req *http.Request, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	if authed {
		req.AddCookie(&http.Cookie{Name: "token", Value: sessionToken})
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func multipartRequest(t *testing.T, path string, fields map[string]string, fileField, filename string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		part, err := w.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func (a *testApp) createSeeds(t *testing.T) domain.Category {
	t.Helper()

	req := multipartRequest(t, "/api/categories/add-category",
		map[string]string{"title_english": "Seeds", "title_hindi": "बीज"},
		"upload_img", "Seeds Photo.png", entitytest.PNG)
	rec := a.do(t, req, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	env := decode(t, rec)
	require.True(t, env.Success)

	var created domain.Category
	require.NoError(t, json.Unmarshal(env.Data, &created))
	return created
}

func TestCategoryLifecycle(t *testing.T) {
	app := newTestApp(t)

	// create with an image
	created := app.createSeeds(t)
	assert.NotZero(t, created.ID)
	assert.Equal(t, domain.FlagOn, created.Status)
	assert.Equal(t, domain.FlagOff, created.IsDeleted)
	assert.Regexp(t, regexp.MustCompile(`^7-seeds-photo-\d+-[0-9a-f-]{36}\.png$`), created.UploadImg)

	_, err := os.Stat(filepath.Join(app.root, filestore.BucketImages, created.UploadImg))
	assert.NoError(t, err)

	stored := app.categories.Rows()
	require.Len(t, stored, 1)
	assert.Equal(t, created.UploadImg, stored[0].UploadImg)

	// search through the list protocol
	rec := app.do(t, jsonRequest(t, http.MethodPost, "/api/categories/ajax/category-list", map[string]any{
		"draw": 1, "start": 0, "length": 5, "search": map[string]string{"value": "Seeds"},
	}), false)
	require.Equal(t, http.StatusOK, rec.Code)

	var list struct {
		Draw            int     `json:"draw"`
		RecordsTotal    int64   `json:"recordsTotal"`
		RecordsFiltered int64   `json:"recordsFiltered"`
		Data            [][]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Draw)
	assert.Equal(t, int64(1), list.RecordsFiltered)
	assert.GreaterOrEqual(t, list.RecordsTotal, list.RecordsFiltered)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "Seeds", list.Data[0][2])

	// soft delete through the common route
	id := strconv.FormatUint(created.ID, 10)
	rec = app.do(t, httptest.NewRequest(http.MethodDelete, "/api/delete/tbl_category_master/"+id, nil), true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = app.do(t, httptest.NewRequest(http.MethodGet, "/api/categories/categories", nil), false)
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []domain.Category
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &rows))
	for _, row := range rows {
		assert.NotEqual(t, created.ID, row.ID)
	}

	rec = app.do(t, httptest.NewRequest(http.MethodGet, "/api/categories/get-category/"+id, nil), false)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	kept, err := app.categories.FindByPK(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FlagOn, kept.IsDeleted)
}

func TestCategoryDuplicateName(t *testing.T) {
	app := newTestApp(t)
	app.createSeeds(t)

	rec := app.do(t, jsonRequest(t, http.MethodPost, "/api/categories/add-category", map[string]string{
		"title_english": " Seeds ", "title_hindi": "बीज",
	}), true)
	assert.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "Category already exists", env.Message)

	rec = app.do(t, jsonRequest(t, http.MethodPost, "/api/categories/add-category", map[string]string{
		"title_english": "SEEDS", "title_hindi": "बीज",
	}), true)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = app.do(t, httptest.NewRequest(http.MethodGet, "/api/categories/check-unique?name=Seeds", nil), false)
	env = decode(t, rec)
	assert.False(t, env.Success)
	assert.JSONEq(t, `{"exists":true}`, string(env.Data))

	rec = app.do(t, httptest.NewRequest(http.MethodGet, "/api/categories/check-unique?name=Fertiliser", nil), false)
	env = decode(t, rec)
	assert.True(t, env.Success)
	assert.JSONEq(t, `{"exists":false}`, string(env.Data))
}

func TestCategoryValidationAndAuth(t *testing.T) {
	app := newTestApp(t)

	body := map[string]string{"title_english": "Seeds", "title_hindi": "Seeds"}

	rec := app.do(t, jsonRequest(t, http.MethodPost, "/api/categories/add-category", body), false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(t, jsonRequest(t, http.MethodPost, "/api/categories/add-category", body), true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	assert.False(t, env.Success)
	assert.Contains(t, string(env.Error), `"field":"title_hindi"`)
	assert.Empty(t, app.categories.Rows())
}

func TestCategoryUpdateReplacesImage(t *testing.T) {
	app := newTestApp(t)
	created := app.createSeeds(t)
	id := strconv.FormatUint(created.ID, 10)

	req := multipartRequest(t, "/api/categories/add-category/"+id,
		map[string]string{"title_english": "Seeds", "title_hindi": "बीज"},
		"upload_img", "new.png", entitytest.PNG)
	req.Method = http.MethodPut
	rec := app.do(t, req, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated domain.Category
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &updated))
	assert.NotEqual(t, created.UploadImg, updated.UploadImg)
	assert.True(t, strings.HasPrefix(updated.UploadImg, "7-new-"))

	_, err := os.Stat(filepath.Join(app.root, filestore.BucketImages, created.UploadImg))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(app.root, filestore.BucketImages, updated.UploadImg))
	assert.NoError(t, err)
}

func TestCommonRoutes(t *testing.T) {
	app := newTestApp(t)
	created := app.createSeeds(t)
	id := strconv.FormatUint(created.ID, 10)

	rec := app.do(t, httptest.NewRequest(http.MethodPut, "/api/inactive/tbl_category_master/"+id, nil), true)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = app.do(t, httptest.NewRequest(http.MethodGet, "/api/inactive/tbl_category_master/"+id, nil), true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.FlagOff, app.categories.Rows()[0].Status)

	rec = app.do(t, httptest.NewRequest(http.MethodPut, "/api/active/tbl_category_master/"+id, nil), true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.FlagOn, app.categories.Rows()[0].Status)

	rec = app.do(t, httptest.NewRequest(http.MethodPut, "/api/active/tbl_secret/"+id, nil), true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(t, httptest.NewRequest(http.MethodPut, "/api/active/tbl_category_master/999", nil), true)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(t, httptest.NewRequest(http.MethodPut, "/api/active/tbl_category_master/"+id, nil), false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProductSKUList(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, jsonRequest(t, http.MethodPost, "/api/products/add-product", map[string]any{
		"category_id":  1,
		"name_english": "Hybrid Maize",
		"name_hindi":   "संकर मक्का",
		"sku_id":       []string{"1", "2"},
	}), true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created domain.Product
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &created))

	rec = app.do(t, httptest.NewRequest(http.MethodGet, "/api/products/get-product/"+strconv.FormatUint(created.ID, 10), nil), false)
	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.Product
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &got))
	assert.Equal(t, domain.IDList{"1", "2"}, got.SKUIDs)

	stored, err := got.SKUIDs.Value()
	require.NoError(t, err)
	assert.Equal(t, "1,2", stored)

	rec = app.do(t, jsonRequest(t, http.MethodPost, "/api/products/add-product", map[string]any{
		"category_id":  1,
		"name_english": "Hybrid Wheat",
		"name_hindi":   "संकर गेहूं",
		"sku_id":       []string{"1,2"},
	}), true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, app.products.Rows(), 1)
}

func TestCategoryPartialUpdateKeepsUnsentFields(t *testing.T) {
	app := newTestApp(t)
	created := app.createSeeds(t)
	id := strconv.FormatUint(created.ID, 10)

	rec := app.do(t, jsonRequest(t, http.MethodPut, "/api/categories/add-category/"+id, map[string]string{
		"status": "0",
	}), true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	stored := app.categories.Rows()
	require.Len(t, stored, 1)
	assert.Equal(t, "Seeds", stored[0].TitleEnglish)
	assert.Equal(t, "बीज", stored[0].TitleHindi)
	assert.Equal(t, created.UploadImg, stored[0].UploadImg)
	assert.Equal(t, domain.FlagOff, stored[0].Status)
}

func TestProductPartialUpdateKeepsUnsentFields(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, jsonRequest(t, http.MethodPost, "/api/products/add-product", map[string]any{
		"category_id":         1,
		"name_english":        "Hybrid Maize",
		"name_hindi":          "संकर मक्का",
		"description_english": "Tall stalks",
		"description_hindi":   "लंबे डंठल",
		"sku_id":              []string{"1", "2"},
	}), true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created domain.Product
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &created))
	id := strconv.FormatUint(created.ID, 10)

	rec = app.do(t, jsonRequest(t, http.MethodPut, "/api/products/add-product/"+id, map[string]any{
		"category_id":  3,
		"name_english": "Hybrid Maize Gold",
	}), true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got, err := app.products.FindByPK(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), got.CategoryID)
	assert.Equal(t, "Hybrid Maize Gold", got.NameEnglish)
	assert.Equal(t, "संकर मक्का", got.NameHindi)
	assert.Equal(t, "Tall stalks", got.DescriptionEnglish)
	assert.Equal(t, "लंबे डंठल", got.DescriptionHindi)
	assert.Equal(t, domain.IDList{"1", "2"}, got.SKUIDs)

	// multipart updates merge the same way
	req := multipartRequest(t, "/api/products/add-product/"+id,
		map[string]string{"description_english": "Short season"}, "", "", nil)
	req.Method = http.MethodPut
	rec = app.do(t, req, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got, err = app.products.FindByPK(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Short season", got.DescriptionEnglish)
	assert.Equal(t, "Hybrid Maize Gold", got.NameEnglish)
	assert.Equal(t, domain.IDList{"1", "2"}, got.SKUIDs)
}
