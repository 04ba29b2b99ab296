package employee

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/TemperedKirin/fullstack-proyecto/internal/domain/employee"
	"github.com/TemperedKirin/fullstack-proyecto/internal/pkg/database"
	"github.com/TemperedKirin/fullstack-proyecto/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

type EmployeeServiceImpl struct {
	db           *database.DB
	employeeRepo employee.Repository
}

func NewEmployeeService(db *database.DB, employeeRepo employee.Repository) employee.Service {
	return &EmployeeServiceImpl{
		db:           db,
		employeeRepo: employeeRepo,
	}
}

// today returns the current date truncated to midnight UTC, the effective
// date stamped on every assignment row written by this service.
func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func mapViewToResponse(v employee.View) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		EmpNo:     v.EmpNo,
		BirthDate: v.BirthDate.Format(employee.DateLayout),
		FirstName: v.FirstName,
		LastName:  v.LastName,
		Gender:    string(v.Gender),
		HireDate:  v.HireDate.Format(employee.DateLayout),
		Title:     v.Title,
		Salary:    v.Salary,
		DeptName:  v.DeptName,
	}
}

// List implements employee.Service.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.ListEmployeesFilter) (employee.ListEmployeesResponse, error) {
	filter.Normalize()

	views, total, err := s.employeeRepo.ListViews(ctx, filter)
	if err != nil {
		return employee.ListEmployeesResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	data := make([]employee.EmployeeResponse, 0, len(views))
	for _, v := range views {
		data = append(data, mapViewToResponse(v))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.PageSize)))

	return employee.ListEmployeesResponse{
		Data: data,
		Pagination: employee.Pagination{
			Page:       filter.Page,
			PageSize:   filter.PageSize,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// Get implements employee.Service.
func (s *EmployeeServiceImpl) Get(ctx context.Context, empNo int) (employee.EmployeeResponse, error) {
	view, err := s.employeeRepo.GetView(ctx, empNo)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return mapViewToResponse(view), nil
}

// Create implements employee.Service. The emp_no is computed as
// max(emp_no)+1 inside the transaction; two concurrent creates can read the
// same value, in which case the unique constraint rejects the second insert
// and the caller sees ErrEmployeeConflict.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.CreatedEmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.CreatedEmployeeResponse{}, err
	}

	birthDate, _ := time.Parse(employee.DateLayout, req.BirthDate)
	hireDate := today()

	var created employee.Employee

	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		empNo, err := s.employeeRepo.NextEmpNo(txCtx)
		if err != nil {
			return err
		}

		emp := employee.Employee{
			EmpNo:     empNo,
			BirthDate: birthDate,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Gender:    employee.Gender(req.Gender),
			HireDate:  hireDate,
		}

		if err := s.employeeRepo.Insert(txCtx, emp); err != nil {
			return err
		}
		if err := s.employeeRepo.InsertTitle(txCtx, empNo, req.Title, hireDate); err != nil {
			return err
		}
		if err := s.employeeRepo.InsertSalary(txCtx, empNo, *req.Salary, hireDate); err != nil {
			return err
		}
		if err := s.employeeRepo.InsertDepartment(txCtx, empNo, req.DeptNo, hireDate); err != nil {
			return err
		}

		created = emp
		return nil
	})
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeConflict) {
			return employee.CreatedEmployeeResponse{}, employee.ErrEmployeeConflict
		}
		return employee.CreatedEmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return employee.CreatedEmployeeResponse{
		EmpNo:     created.EmpNo,
		BirthDate: created.BirthDate.Format(employee.DateLayout),
		FirstName: created.FirstName,
		LastName:  created.LastName,
		Gender:    string(created.Gender),
		HireDate:  created.HireDate.Format(employee.DateLayout),
	}, nil
}

// Update implements employee.Service. Identity fields are patched in place;
// each supplied assignment rolls its history forward effective today. Titles
// are additive even on same-day changes, salaries collapse same-day changes
// into one row, and a department change closes every prior dept_emp row.
func (s *EmployeeServiceImpl) Update(ctx context.Context, empNo int, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	effective := today()

	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		exists, err := s.employeeRepo.Exists(txCtx, empNo)
		if err != nil {
			return err
		}
		if !exists {
			return employee.ErrEmployeeNotFound
		}

		if err := s.employeeRepo.UpdateIdentity(txCtx, empNo, req); err != nil {
			return err
		}

		if req.Title != nil {
			if err := s.employeeRepo.CloseOpenTitles(txCtx, empNo, effective); err != nil {
				return err
			}
			if err := s.employeeRepo.InsertTitle(txCtx, empNo, *req.Title, effective); err != nil {
				return err
			}
		}

		if req.Salary != nil {
			hasToday, err := s.employeeRepo.HasSalaryOn(txCtx, empNo, effective)
			if err != nil {
				return err
			}
			if hasToday {
				if err := s.employeeRepo.UpdateSalaryOn(txCtx, empNo, effective, *req.Salary); err != nil {
					return err
				}
			} else {
				if err := s.employeeRepo.CloseOpenSalaries(txCtx, empNo, effective); err != nil {
					return err
				}
				if err := s.employeeRepo.InsertSalary(txCtx, empNo, *req.Salary, effective); err != nil {
					return err
				}
			}
		}

		if req.DeptNo != nil {
			if err := s.employeeRepo.CloseAllDepartments(txCtx, empNo, effective); err != nil {
				return err
			}
			if err := s.employeeRepo.InsertDepartment(txCtx, empNo, *req.DeptNo, effective); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}

	view, err := s.employeeRepo.GetView(ctx, empNo)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to reload employee: %w", err)
	}
	return mapViewToResponse(view), nil
}

// Delete implements employee.Service.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, empNo int) error {
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		exists, err := s.employeeRepo.Exists(txCtx, empNo)
		if err != nil {
			return err
		}
		if !exists {
			return employee.ErrEmployeeNotFound
		}

		affected, err := s.employeeRepo.DeleteByEmpNo(txCtx, empNo)
		if err != nil {
			return err
		}
		// The existence check and the delete run in the same transaction, so
		// a zero count should not happen; treat it as not found anyway.
		if affected == 0 {
			return employee.ErrEmployeeNotFound
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	return nil
}
