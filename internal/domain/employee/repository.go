package employee

import (
	"context"
	"time"
)

type Repository interface {
	// NextEmpNo computes max(emp_no)+1. The table carries no sequence, so two
	// concurrent callers can read the same value; the unique constraint on
	// emp_no is the conflict signal at insert time.
	NextEmpNo(ctx context.Context) (int, error)
	Exists(ctx context.Context, empNo int) (bool, error)
	Insert(ctx context.Context, emp Employee) error
	UpdateIdentity(ctx context.Context, empNo int, req UpdateEmployeeRequest) error

	CloseOpenTitles(ctx context.Context, empNo int, on time.Time) error
	InsertTitle(ctx context.Context, empNo int, title string, from time.Time) error

	HasSalaryOn(ctx context.Context, empNo int, on time.Time) (bool, error)
	UpdateSalaryOn(ctx context.Context, empNo int, on time.Time, salary int) error
	CloseOpenSalaries(ctx context.Context, empNo int, on time.Time) error
	InsertSalary(ctx context.Context, empNo int, salary int, from time.Time) error

	CloseAllDepartments(ctx context.Context, empNo int, on time.Time) error
	InsertDepartment(ctx context.Context, empNo int, deptNo string, from time.Time) error

	// DeleteByEmpNo removes the employee row and every owned assignment row
	// (dept_manager, dept_emp, titles, salaries). It returns the number of
	// employees rows deleted.
	DeleteByEmpNo(ctx context.Context, empNo int) (int64, error)

	GetView(ctx context.Context, empNo int) (View, error)
	ListViews(ctx context.Context, filter ListEmployeesFilter) ([]View, int64, error)
}
