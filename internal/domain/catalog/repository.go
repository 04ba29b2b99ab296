package catalog

import "context"

type Repository interface {
	ListDepartments(ctx context.Context) ([]Department, error)
	ListTitles(ctx context.Context) ([]Title, error)
}
