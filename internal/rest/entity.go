package rest

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"krishiCMS/domain"
	"krishiCMS/internal/middleware"
	"krishiCMS/pkg/datatable"
	"krishiCMS/pkg/filestore"
	"krishiCMS/pkg/logger"
	jsonres "krishiCMS/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type EntityService[T domain.Record] interface {
	Descriptor() domain.Descriptor
	GetAll(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id uint64) (T, error)
	Create(ctx context.Context, owner string, rec *T, uploads []filestore.Upload) (T, error)
	Update(ctx context.Context, owner string, id uint64, mutate func(*T) error, uploads []filestore.Upload) (T, error)
	Destroy(ctx context.Context, id uint64) error
	CheckUnique(ctx context.Context, name string, excludeID uint64) (bool, error)
	List(ctx context.Context, req datatable.Request, filters map[string]string) (datatable.Response, error)
}

// Binder reads and validates a create/update body into rec.
type Binder[T any] func(c echo.Context, rec *T) error

// preparer is implemented by forms that decode nested values before
// validation.
type preparer interface {
	prepare() error
}

// filler is implemented by forms that start from the stored record, so an
// update only changes the fields present in the request.
type filler[T any] interface {
	fill(rec *T)
}

// FormBinder seeds F from rec, binds the request over it, validates the
// merged form and applies it.
func FormBinder[F any, T any](v *validator.Validate, apply func(*F, *T) error) Binder[T] {
	return func(c echo.Context, rec *T) error {
		var form F
		if f, ok := any(&form).(filler[T]); ok {
			f.fill(rec)
		}

		if err := c.Bind(&form); err != nil {
			logger.Error("Failed to bind request", err)
			return err
		}

		if p, ok := any(&form).(preparer); ok {
			if err := p.prepare(); err != nil {
				return err
			}
		}

		if err := v.Struct(&form); err != nil {
			return err
		}

		return apply(&form, rec)
	}
}

// EntityHandler serves the admin endpoints of one table.
type EntityHandler[T domain.Record] struct {
	service EntityService[T]
	bind    Binder[T]
	timeout time.Duration

	// Singular and Plural name the routes, e.g. add-category and categories.
	Singular string
	Plural   string
}

func NewEntityHandler[T domain.Record](service EntityService[T], bind Binder[T], singular, plural string) *EntityHandler[T] {
	return &EntityHandler[T]{
		service:  service,
		bind:     bind,
		timeout:  10 * time.Second,
		Singular: singular,
		Plural:   plural,
	}
}

func (h *EntityHandler[T]) label() string {
	return h.service.Descriptor().Label
}

func (h *EntityHandler[T]) GetAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	rows, err := h.service.GetAll(ctx)
	if err != nil {
		return respondError(c, h.label(), err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("successfully get all "+h.Plural, rows))
}

func (h *EntityHandler[T]) GetByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, h.label(), err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	rec, err := h.service.GetByID(ctx, id)
	if err != nil {
		return respondError(c, h.label(), err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("successfully get "+h.label(), rec))
}

func (h *EntityHandler[T]) Create(c echo.Context) error {
	var rec T
	if err := h.bind(c, &rec); err != nil {
		return respondError(c, h.label(), err)
	}

	uploads, err := uploadsFor[T](c)
	if err != nil {
		return respondError(c, h.label(), err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	created, err := h.service.Create(ctx, owner(c), &rec, uploads)
	if err != nil {
		return respondError(c, h.label(), err)
	}

	return c.JSON(http.StatusCreated, jsonres.Success(h.label()+" successfully created", created))
}

func (h *EntityHandler[T]) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, h.label(), err)
	}

	uploads, err := uploadsFor[T](c)
	if err != nil {
		return respondError(c, h.label(), err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.service.Update(ctx, owner(c), id, func(rec *T) error {
		return h.bind(c, rec)
	}, uploads)
	if err != nil {
		return respondError(c, h.label(), err)
	}

	return c.JSON(http.StatusOK, jsonres.Success(h.label()+" successfully updated", updated))
}

// Destroy is the legacy hard delete. The admin UI uses the common soft
// delete route instead.
func (h *EntityHandler[T]) Destroy(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, h.label(), err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.service.Destroy(ctx, id); err != nil {
		return respondError(c, h.label(), err)
	}

	return c.JSON(http.StatusOK, jsonres.Success(h.label()+" successfully deleted", nil))
}

// AjaxList serves the admin table protocol. The body may be JSON or a form;
// filters come from the query string, or the form when absent there.
func (h *EntityHandler[T]) AjaxList(c echo.Context) error {
	var req datatable.Request

	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		if err := c.Bind(&req); err != nil {
			return respondError(c, h.label(), err)
		}
	} else {
		form, err := c.FormParams()
		if err != nil {
			return respondError(c, h.label(), err)
		}
		req = datatable.FromForm(form)
	}

	filters := map[string]string{}
	for _, f := range h.service.Descriptor().Filters {
		v := c.QueryParam(f.Param)
		if v == "" {
			v = c.FormValue(f.Param)
		}
		filters[f.Param] = v
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	resp, err := h.service.List(ctx, req, filters)
	if err != nil {
		return respondError(c, h.label(), err)
	}

	return c.JSON(http.StatusOK, resp)
}

type uniqueResult struct {
	Exists bool `json:"exists"`
}

// CheckUnique answers the form's name availability probe.
func (h *EntityHandler[T]) CheckUnique(c echo.Context) error {
	name := c.QueryParam("name")

	var excludeID uint64
	if raw := strings.TrimSpace(c.QueryParam("id")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return respondError(c, h.label(), domain.ErrInvalidID)
		}
		excludeID = id
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	taken, err := h.service.CheckUnique(ctx, name, excludeID)
	if err != nil {
		return respondError(c, h.label(), err)
	}

	if taken {
		return c.JSON(http.StatusOK, jsonres.Envelope{
			Success: false,
			Message: titleCase.String(h.label()) + " already exists",
			Data:    uniqueResult{Exists: true},
		})
	}
	return c.JSON(http.StatusOK, jsonres.Success("available", uniqueResult{Exists: false}))
}

func owner(c echo.Context) string {
	if id := middleware.UserID(c); id != 0 {
		return strconv.FormatUint(id, 10)
	}
	return "0"
}

// uploadsFor collects the files posted for T's file columns. Single file
// columns take the first file only.
func uploadsFor[T any](c echo.Context) ([]filestore.Upload, error) {
	if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		return nil, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid multipart form")
	}

	var zero T
	var uploads []filestore.Upload

	if fo, ok := any(&zero).(domain.FileOwner); ok {
		for field := range fo.FileFields() {
			if files := form.File[field]; len(files) > 0 {
				uploads = append(uploads, filestore.Upload{Field: field, Header: files[0]})
			}
		}
	}

	if g, ok := any(&zero).(domain.GalleryOwner); ok {
		for field := range g.GalleryFields() {
			for _, fh := range form.File[field] {
				uploads = append(uploads, filestore.Upload{Field: field, Header: fh})
			}
		}
	}

	return uploads, nil
}
