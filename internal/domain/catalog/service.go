package catalog

import "context"

// Service exposes the read-only reference catalogs.
type Service interface {
	ListDepartments(ctx context.Context) ([]Department, error)
	ListTitles(ctx context.Context) ([]Title, error)
}
