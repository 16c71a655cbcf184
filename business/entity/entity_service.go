package entity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"krishiCMS/domain"
	"krishiCMS/pkg/datatable"
	"krishiCMS/pkg/filestore"
	"krishiCMS/pkg/logger"

	"gorm.io/datatypes"
)

// Repository is the row store contract for one managed table.
type Repository[T domain.Record] interface {
	Descriptor() domain.Descriptor
	FindAll(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id uint64) (T, error)
	Create(ctx context.Context, rec *T) error
	Save(ctx context.Context, rec *T) error
	Destroy(ctx context.Context, id uint64) error
	NameTaken(ctx context.Context, name string, excludeID uint64) (bool, error)
	List(ctx context.Context, q datatable.Query) (datatable.Page[T], error)
}

type FileStore interface {
	Save(owner string, up filestore.Upload) (filestore.Stored, error)
	Remove(name string) error
}

// Observer receives list and upload measurements.
type Observer interface {
	ObserveList(table string, start time.Time, err error)
	ObserveUpload(bucket string, size int64)
}

type nopObserver struct{}

func (nopObserver) ObserveList(string, time.Time, error) {}
func (nopObserver) ObserveUpload(string, int64)          {}

// Service is the CRUD and list capability shared by every managed table.
type Service[T domain.Record] struct {
	repo     Repository[T]
	files    FileStore
	observer Observer
	desc     domain.Descriptor
}

type Option[T domain.Record] func(*Service[T])

func WithObserver[T domain.Record](o Observer) Option[T] {
	return func(s *Service[T]) {
		if o != nil {
			s.observer = o
		}
	}
}

func NewService[T domain.Record](repo Repository[T], files FileStore, opts ...Option[T]) *Service[T] {
	s := &Service[T]{
		repo:     repo,
		files:    files,
		observer: nopObserver{},
		desc:     repo.Descriptor(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service[T]) Descriptor() domain.Descriptor {
	return s.desc
}

func (s *Service[T]) GetAll(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all", "table", s.desc.Table)
		return nil, fmt.Errorf("context error: %w", err)
	}

	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all rows", "table", s.desc.Table, err)
		return nil, err
	}

	return rows, nil
}

func (s *Service[T]) GetByID(ctx context.Context, id uint64) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, fmt.Errorf("context error: %w", err)
	}
	if id == 0 {
		return zero, fmt.Errorf("%s id: %w", s.desc.Label, domain.ErrInvalidID)
	}

	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Error("Failed to find row", "table", s.desc.Table, err)
		}
		return zero, err
	}

	return rec, nil
}

// Create checks the name, stores the uploads and inserts the row. Files
// written for a row that fails to insert are removed again.
func (s *Service[T]) Create(ctx context.Context, owner string, rec *T, uploads []filestore.Upload) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, fmt.Errorf("context error: %w", err)
	}

	if err := s.ensureUnique(ctx, *rec, 0); err != nil {
		return zero, err
	}

	written, _, err := s.attach(owner, rec, uploads)
	if err != nil {
		s.removeAll(written)
		return zero, err
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		s.removeAll(written)
		if !errors.Is(err, domain.ErrDuplicate) {
			logger.Error("Failed to create row", "table", s.desc.Table, err)
		}
		return zero, err
	}

	return *rec, nil
}

// Update loads the row, applies mutate, re-checks the name and saves. Files
// replaced by new uploads are removed only after the row is saved.
func (s *Service[T]) Update(ctx context.Context, owner string, id uint64, mutate func(*T) error, uploads []filestore.Upload) (T, error) {
	var zero T

	rec, err := s.GetByID(ctx, id)
	if err != nil {
		return zero, err
	}

	if mutate != nil {
		if err := mutate(&rec); err != nil {
			return zero, err
		}
	}

	if err := s.ensureUnique(ctx, rec, id); err != nil {
		return zero, err
	}

	written, replaced, err := s.attach(owner, &rec, uploads)
	if err != nil {
		s.removeAll(written)
		return zero, err
	}

	if err := s.repo.Save(ctx, &rec); err != nil {
		s.removeAll(written)
		if !errors.Is(err, domain.ErrDuplicate) {
			logger.Error("Failed to update row", "table", s.desc.Table, err)
		}
		return zero, err
	}

	s.removeAll(replaced)

	return rec, nil
}

// Destroy removes the row physically, then its files.
func (s *Service[T]) Destroy(ctx context.Context, id uint64) error {
	rec, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Destroy(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Error("Failed to delete row", "table", s.desc.Table, err)
		}
		return err
	}

	s.removeAll(fileNames(&rec))

	return nil
}

// CheckUnique reports whether name is already used by another visible row.
func (s *Service[T]) CheckUnique(ctx context.Context, name string, excludeID uint64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("context error: %w", err)
	}
	if strings.TrimSpace(name) == "" {
		return false, nil
	}

	taken, err := s.repo.NameTaken(ctx, name, excludeID)
	if err != nil {
		logger.Error("Failed to check uniqueness", "table", s.desc.Table, err)
		return false, err
	}

	return taken, nil
}

func (s *Service[T]) List(ctx context.Context, req datatable.Request, filters map[string]string) (datatable.Response, error) {
	if err := ctx.Err(); err != nil {
		return datatable.Response{}, fmt.Errorf("context error: %w", err)
	}

	q := req.Normalize(filters)

	start := time.Now()
	page, err := s.repo.List(ctx, q)
	s.observer.ObserveList(s.desc.Table, start, err)
	if err != nil {
		logger.Error("Failed to list rows", "table", s.desc.Table, err)
		return datatable.Response{}, err
	}

	return datatable.Shape(q, page, func(rec T) any { return rec.StatusFlag() }), nil
}

func (s *Service[T]) ensureUnique(ctx context.Context, rec T, excludeID uint64) error {
	named, ok := any(rec).(domain.Named)
	if !ok || s.desc.NameColumn == "" {
		return nil
	}

	name := strings.TrimSpace(named.UniqueName())
	taken, err := s.CheckUnique(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%s %q: %w", s.desc.Label, name, domain.ErrDuplicate)
	}

	return nil
}

// attach saves each upload and points the matching column at it. It returns
// the names it wrote and the names they replaced.
func (s *Service[T]) attach(owner string, rec *T, uploads []filestore.Upload) (written, replaced []string, err error) {
	if len(uploads) == 0 {
		return nil, nil, nil
	}

	var single map[string]*string
	if fo, ok := any(rec).(domain.FileOwner); ok {
		single = fo.FileFields()
	}
	var gallery map[string]*datatypes.JSONSlice[string]
	if g, ok := any(rec).(domain.GalleryOwner); ok {
		gallery = g.GalleryFields()
	}

	fresh := map[string]datatypes.JSONSlice[string]{}

	for _, up := range uploads {
		target, isSingle := single[up.Field]
		_, isGallery := gallery[up.Field]
		if !isSingle && !isGallery {
			return written, nil, fmt.Errorf("unexpected file field %q", up.Field)
		}

		if up.Bucket == "" {
			up.Bucket = s.desc.Bucket
		}

		stored, err := s.files.Save(owner, up)
		if err != nil {
			return written, nil, fmt.Errorf("failed to store %s: %w", up.Field, err)
		}
		written = append(written, stored.Name)
		s.observer.ObserveUpload(stored.Bucket, up.Header.Size)

		if isSingle {
			if *target != "" && *target != stored.Name {
				replaced = append(replaced, *target)
			}
			*target = stored.Name
			continue
		}
		fresh[up.Field] = append(fresh[up.Field], stored.Name)
	}

	for field, names := range fresh {
		target := gallery[field]
		replaced = append(replaced, (*target)...)
		*target = names
	}

	return written, replaced, nil
}

func (s *Service[T]) removeAll(names []string) {
	for _, name := range names {
		if err := s.files.Remove(name); err != nil {
			logger.Warn("Failed to remove file", "name", name, err)
		}
	}
}

func fileNames[T any](rec *T) []string {
	var names []string
	if fo, ok := any(rec).(domain.FileOwner); ok {
		for _, name := range fo.FileFields() {
			if *name != "" {
				names = append(names, *name)
			}
		}
	}
	if g, ok := any(rec).(domain.GalleryOwner); ok {
		for _, list := range g.GalleryFields() {
			names = append(names, (*list)...)
		}
	}
	return names
}
