package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/TemperedKirin/fullstack-proyecto/internal/domain/employee"
	"github.com/TemperedKirin/fullstack-proyecto/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepositoryImpl{db: db}
}

// viewSelect joins each employee with the current row of each assignment
// history: the row carrying the open-ended sentinel to_date, or the most
// recent one by from_date when more than one open row exists.
const viewSelect = `
	SELECT e.emp_no, e.birth_date, e.first_name, e.last_name, e.gender, e.hire_date,
		t.title, s.salary, d.dept_name
	FROM employees e
	LEFT JOIN LATERAL (
		SELECT title FROM titles
		WHERE emp_no = e.emp_no
		ORDER BY to_date DESC, from_date DESC
		LIMIT 1
	) t ON true
	LEFT JOIN LATERAL (
		SELECT salary FROM salaries
		WHERE emp_no = e.emp_no
		ORDER BY to_date DESC, from_date DESC
		LIMIT 1
	) s ON true
	LEFT JOIN LATERAL (
		SELECT dp.dept_name FROM dept_emp de
		JOIN departments dp ON dp.dept_no = de.dept_no
		WHERE de.emp_no = e.emp_no
		ORDER BY de.to_date DESC, de.from_date DESC
		LIMIT 1
	) d ON true
`

// NextEmpNo implements employee.Repository.
func (e *employeeRepositoryImpl) NextEmpNo(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, e.db)

	var next int
	err := q.QueryRow(ctx, `SELECT COALESCE(MAX(emp_no), 0) + 1 FROM employees`).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("failed to compute next emp_no: %w", err)
	}
	return next, nil
}

// Exists implements employee.Repository.
func (e *employeeRepositoryImpl) Exists(ctx context.Context, empNo int) (bool, error) {
	q := GetQuerier(ctx, e.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM employees WHERE emp_no = $1)`, empNo).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check employee existence: %w", err)
	}
	return exists, nil
}

// Insert implements employee.Repository.
func (e *employeeRepositoryImpl) Insert(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (emp_no, birth_date, first_name, last_name, gender, hire_date)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := q.Exec(ctx, query, emp.EmpNo, emp.BirthDate, emp.FirstName, emp.LastName, emp.Gender, emp.HireDate)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return employee.ErrEmployeeConflict
		}
		return fmt.Errorf("failed to insert employee %d: %w", emp.EmpNo, err)
	}
	return nil
}

// UpdateIdentity implements employee.Repository. Only supplied identity
// fields are written; assignment fields on the patch are ignored here.
func (e *employeeRepositoryImpl) UpdateIdentity(ctx context.Context, empNo int, req employee.UpdateEmployeeRequest) error {
	q := GetQuerier(ctx, e.db)

	var setClauses []string
	var args []interface{}
	i := 1

	if req.BirthDate != nil {
		parsed, _ := time.Parse(employee.DateLayout, *req.BirthDate)
		setClauses = append(setClauses, fmt.Sprintf("birth_date = $%d", i))
		args = append(args, parsed)
		i++
	}
	if req.FirstName != nil {
		setClauses = append(setClauses, fmt.Sprintf("first_name = $%d", i))
		args = append(args, *req.FirstName)
		i++
	}
	if req.LastName != nil {
		setClauses = append(setClauses, fmt.Sprintf("last_name = $%d", i))
		args = append(args, *req.LastName)
		i++
	}
	if req.Gender != nil {
		setClauses = append(setClauses, fmt.Sprintf("gender = $%d", i))
		args = append(args, *req.Gender)
		i++
	}
	if req.HireDate != nil {
		parsed, _ := time.Parse(employee.DateLayout, *req.HireDate)
		setClauses = append(setClauses, fmt.Sprintf("hire_date = $%d", i))
		args = append(args, parsed)
		i++
	}

	if len(setClauses) == 0 {
		return nil
	}

	sql := fmt.Sprintf("UPDATE employees SET %s WHERE emp_no = $%d", strings.Join(setClauses, ", "), i)
	args = append(args, empNo)

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to update employee %d: %w", empNo, err)
	}
	return nil
}

// CloseOpenTitles implements employee.Repository.
func (e *employeeRepositoryImpl) CloseOpenTitles(ctx context.Context, empNo int, on time.Time) error {
	q := GetQuerier(ctx, e.db)

	_, err := q.Exec(ctx, `UPDATE titles SET to_date = $1 WHERE emp_no = $2 AND to_date > $1`, on, empNo)
	if err != nil {
		return fmt.Errorf("failed to close open titles for employee %d: %w", empNo, err)
	}
	return nil
}

// InsertTitle implements employee.Repository.
func (e *employeeRepositoryImpl) InsertTitle(ctx context.Context, empNo int, title string, from time.Time) error {
	q := GetQuerier(ctx, e.db)

	_, err := q.Exec(ctx,
		`INSERT INTO titles (emp_no, title, from_date, to_date) VALUES ($1, $2, $3, $4)`,
		empNo, title, from, employee.OpenEndedDate,
	)
	if err != nil {
		return fmt.Errorf("failed to insert title for employee %d: %w", empNo, err)
	}
	return nil
}

// HasSalaryOn implements employee.Repository.
func (e *employeeRepositoryImpl) HasSalaryOn(ctx context.Context, empNo int, on time.Time) (bool, error) {
	q := GetQuerier(ctx, e.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM salaries WHERE emp_no = $1 AND from_date = $2)`,
		empNo, on,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check salary row for employee %d: %w", empNo, err)
	}
	return exists, nil
}

// UpdateSalaryOn implements employee.Repository. Same-day salary changes
// update the existing row in place instead of stacking a second one.
func (e *employeeRepositoryImpl) UpdateSalaryOn(ctx context.Context, empNo int, on time.Time, salary int) error {
	q := GetQuerier(ctx, e.db)

	_, err := q.Exec(ctx,
		`UPDATE salaries SET salary = $1 WHERE emp_no = $2 AND from_date = $3`,
		salary, empNo, on,
	)
	if err != nil {
		return fmt.Errorf("failed to update salary for employee %d: %w", empNo, err)
	}
	return nil
}

// CloseOpenSalaries implements employee.Repository.
func (e *employeeRepositoryImpl) CloseOpenSalaries(ctx context.Context, empNo int, on time.Time) error {
	q := GetQuerier(ctx, e.db)

	_, err := q.Exec(ctx, `UPDATE salaries SET to_date = $1 WHERE emp_no = $2 AND to_date > $1`, on, empNo)
	if err != nil {
		return fmt.Errorf("failed to close open salaries for employee %d: %w", empNo, err)
	}
	return nil
}

// InsertSalary implements employee.Repository.
func (e *employeeRepositoryImpl) InsertSalary(ctx context.Context, empNo int, salary int, from time.Time) error {
	q := GetQuerier(ctx, e.db)

	_, err := q.Exec(ctx,
		`INSERT INTO salaries (emp_no, salary, from_date, to_date) VALUES ($1, $2, $3, $4)`,
		empNo, salary, from, employee.OpenEndedDate,
	)
	if err != nil {
		return fmt.Errorf("failed to insert salary for employee %d: %w", empNo, err)
	}
	return nil
}

// CloseAllDepartments implements employee.Repository. Department
// reassignment is a hard cutover: every dept_emp row for the employee gets
// to_date stamped, not only the open-ended one.
func (e *employeeRepositoryImpl) CloseAllDepartments(ctx context.Context, empNo int, on time.Time) error {
	q := GetQuerier(ctx, e.db)

	_, err := q.Exec(ctx, `UPDATE dept_emp SET to_date = $1 WHERE emp_no = $2`, on, empNo)
	if err != nil {
		return fmt.Errorf("failed to close department assignments for employee %d: %w", empNo, err)
	}
	return nil
}

// InsertDepartment implements employee.Repository.
func (e *employeeRepositoryImpl) InsertDepartment(ctx context.Context, empNo int, deptNo string, from time.Time) error {
	q := GetQuerier(ctx, e.db)

	_, err := q.Exec(ctx,
		`INSERT INTO dept_emp (emp_no, dept_no, from_date, to_date) VALUES ($1, $2, $3, $4)`,
		empNo, deptNo, from, employee.OpenEndedDate,
	)
	if err != nil {
		return fmt.Errorf("failed to insert department assignment for employee %d: %w", empNo, err)
	}
	return nil
}

// DeleteByEmpNo implements employee.Repository.
func (e *employeeRepositoryImpl) DeleteByEmpNo(ctx context.Context, empNo int) (int64, error) {
	q := GetQuerier(ctx, e.db)

	owned := []string{"dept_manager", "dept_emp", "titles", "salaries"}
	for _, table := range owned {
		if _, err := q.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE emp_no = $1", table), empNo); err != nil {
			return 0, fmt.Errorf("failed to delete %s rows for employee %d: %w", table, empNo, err)
		}
	}

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE emp_no = $1`, empNo)
	if err != nil {
		return 0, fmt.Errorf("failed to delete employee %d: %w", empNo, err)
	}
	return tag.RowsAffected(), nil
}

// GetView implements employee.Repository.
func (e *employeeRepositoryImpl) GetView(ctx context.Context, empNo int) (employee.View, error) {
	q := GetQuerier(ctx, e.db)

	var v employee.View
	err := q.QueryRow(ctx, viewSelect+` WHERE e.emp_no = $1`, empNo).Scan(
		&v.EmpNo, &v.BirthDate, &v.FirstName, &v.LastName, &v.Gender, &v.HireDate,
		&v.Title, &v.Salary, &v.DeptName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.View{}, employee.ErrEmployeeNotFound
		}
		return employee.View{}, fmt.Errorf("failed to get employee %d: %w", empNo, err)
	}
	return v, nil
}

// ListViews implements employee.Repository. The count and the page share the
// same predicate so the pagination metadata stays consistent with the rows.
func (e *employeeRepositoryImpl) ListViews(ctx context.Context, filter employee.ListEmployeesFilter) ([]employee.View, int64, error) {
	q := GetQuerier(ctx, e.db)

	where := ""
	var args []interface{}
	if filter.Query != "" {
		where = "WHERE e.first_name ILIKE $1 OR e.last_name ILIKE $1"
		args = append(args, "%"+filter.Query+"%")
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM employees e " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	limitPos := len(args) + 1
	pageQuery := fmt.Sprintf("%s %s ORDER BY e.emp_no DESC LIMIT $%d OFFSET $%d",
		viewSelect, where, limitPos, limitPos+1)
	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)

	rows, err := q.Query(ctx, pageQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var views []employee.View
	for rows.Next() {
		var v employee.View
		err := rows.Scan(
			&v.EmpNo, &v.BirthDate, &v.FirstName, &v.LastName, &v.Gender, &v.HireDate,
			&v.Title, &v.Salary, &v.DeptName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee row: %w", err)
		}
		views = append(views, v)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return views, total, nil
}
