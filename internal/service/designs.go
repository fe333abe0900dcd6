// Package service wires the in-memory design catalog to persistence and
// export surfaces.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/qnl/chipsmith/internal/database/repository"
	"github.com/qnl/chipsmith/internal/design"
)

// DesignService opens, saves and lists designs.
type DesignService struct {
	Designs *repository.DesignRepo
}

// Open loads the named design, creating it when absent.
func (s *DesignService) Open(ctx context.Context, name string) (*design.Design, error) {
	if name == "" {
		return nil, fmt.Errorf("service: design name required")
	}
	d, err := s.Designs.LoadByName(ctx, name)
	if errors.Is(err, repository.ErrNoDesign) {
		d = design.New(name)
		if err := s.Designs.Save(ctx, d); err != nil {
			return nil, fmt.Errorf("create design %q: %w", name, err)
		}
		return d, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open design %q: %w", name, err)
	}
	return d, nil
}

// Create persists a fresh empty design, failing if the name is taken.
func (s *DesignService) Create(ctx context.Context, name string) (*design.Design, error) {
	if name == "" {
		return nil, fmt.Errorf("service: design name required")
	}
	_, err := s.Designs.LoadByName(ctx, name)
	if err == nil {
		return nil, fmt.Errorf("design %q already exists", name)
	}
	if !errors.Is(err, repository.ErrNoDesign) {
		return nil, fmt.Errorf("create design %q: %w", name, err)
	}
	d := design.New(name)
	if err := s.Designs.Save(ctx, d); err != nil {
		return nil, fmt.Errorf("create design %q: %w", name, err)
	}
	return d, nil
}

// Save snapshots the design.
func (s *DesignService) Save(ctx context.Context, d *design.Design) error {
	return s.Designs.Save(ctx, d)
}

// List returns summaries of all persisted designs.
func (s *DesignService) List(ctx context.Context) ([]repository.DesignInfo, error) {
	return s.Designs.List(ctx)
}

// Delete removes a persisted design by name.
func (s *DesignService) Delete(ctx context.Context, name string) error {
	d, err := s.Designs.LoadByName(ctx, name)
	if err != nil {
		return err
	}
	return s.Designs.Delete(ctx, d.UUID)
}
