package common

import (
	"context"
	"errors"
	"fmt"

	"krishiCMS/domain"
	"krishiCMS/pkg/logger"
)

// StatusStore flips the deletion and status flags of one table.
type StatusStore interface {
	SoftDelete(ctx context.Context, id uint64) error
	SetStatus(ctx context.Context, id uint64, status domain.Flag) error
}

// Service runs the generic delete/activate/deactivate routes against an
// explicit table allow-list.
type Service struct {
	stores map[string]StatusStore
}

func NewService(stores map[string]StatusStore) *Service {
	registry := make(map[string]StatusStore, len(stores))
	for table, store := range stores {
		registry[table] = store
	}
	return &Service{stores: registry}
}

// Models lists the accepted table names.
func (s *Service) Models() []string {
	out := make([]string, 0, len(s.stores))
	for table := range s.stores {
		out = append(out, table)
	}
	return out
}

func (s *Service) lookup(model string) (StatusStore, error) {
	store, ok := s.stores[model]
	if !ok {
		return nil, fmt.Errorf("%q: %w", model, domain.ErrUnknownModel)
	}
	return store, nil
}

// DeleteItem soft deletes the row. Deleting an already deleted row succeeds.
func (s *Service) DeleteItem(ctx context.Context, model string, id uint64) error {
	store, err := s.lookup(model)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return s.report("delete", model, store.SoftDelete(ctx, id))
}

func (s *Service) ActivateItem(ctx context.Context, model string, id uint64) error {
	return s.setStatus(ctx, model, id, domain.FlagOn)
}

func (s *Service) DeactivateItem(ctx context.Context, model string, id uint64) error {
	return s.setStatus(ctx, model, id, domain.FlagOff)
}

func (s *Service) setStatus(ctx context.Context, model string, id uint64, status domain.Flag) error {
	store, err := s.lookup(model)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return s.report("set status", model, store.SetStatus(ctx, id, status))
}

func (s *Service) report(op, model string, err error) error {
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		logger.Error("Failed to "+op, "model", model, err)
	}
	return err
}
