package postgresql

import (
	"context"
	"fmt"

	"github.com/TemperedKirin/fullstack-proyecto/internal/domain/catalog"
	"github.com/TemperedKirin/fullstack-proyecto/internal/pkg/database"
)

type catalogRepositoryImpl struct {
	db *database.DB
}

func NewCatalogRepository(db *database.DB) catalog.Repository {
	return &catalogRepositoryImpl{db: db}
}

// ListDepartments implements catalog.Repository.
func (c *catalogRepositoryImpl) ListDepartments(ctx context.Context) ([]catalog.Department, error) {
	q := GetQuerier(ctx, c.db)

	rows, err := q.Query(ctx, `SELECT dept_no, dept_name FROM departments ORDER BY dept_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	var departments []catalog.Department
	for rows.Next() {
		var d catalog.Department
		if err := rows.Scan(&d.DeptNo, &d.DeptName); err != nil {
			return nil, fmt.Errorf("failed to scan department row: %w", err)
		}
		departments = append(departments, d)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return departments, nil
}

// ListTitles implements catalog.Repository. The catalog is every title ever
// assigned, deduplicated.
func (c *catalogRepositoryImpl) ListTitles(ctx context.Context) ([]catalog.Title, error) {
	q := GetQuerier(ctx, c.db)

	rows, err := q.Query(ctx, `SELECT DISTINCT title FROM titles ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("failed to list titles: %w", err)
	}
	defer rows.Close()

	var titles []catalog.Title
	for rows.Next() {
		var t catalog.Title
		if err := rows.Scan(&t.Title); err != nil {
			return nil, fmt.Errorf("failed to scan title row: %w", err)
		}
		titles = append(titles, t)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return titles, nil
}
