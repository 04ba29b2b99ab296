package catalog

import (
	"context"
	"fmt"

	"github.com/TemperedKirin/fullstack-proyecto/internal/domain/catalog"
)

type CatalogServiceImpl struct {
	catalogRepo catalog.Repository
}

func NewCatalogService(catalogRepo catalog.Repository) catalog.Service {
	return &CatalogServiceImpl{
		catalogRepo: catalogRepo,
	}
}

// ListDepartments implements catalog.Service.
func (s *CatalogServiceImpl) ListDepartments(ctx context.Context) ([]catalog.Department, error) {
	departments, err := s.catalogRepo.ListDepartments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	if departments == nil {
		departments = []catalog.Department{}
	}
	return departments, nil
}

// ListTitles implements catalog.Service.
func (s *CatalogServiceImpl) ListTitles(ctx context.Context) ([]catalog.Title, error) {
	titles, err := s.catalogRepo.ListTitles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list titles: %w", err)
	}
	if titles == nil {
		titles = []catalog.Title{}
	}
	return titles, nil
}
