package employee

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/TemperedKirin/fullstack-proyecto/internal/domain/employee"
	"github.com/TemperedKirin/fullstack-proyecto/internal/pkg/database"
	"github.com/TemperedKirin/fullstack-proyecto/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDB *database.DB

var testSchema = []string{
	`CREATE TABLE IF NOT EXISTS employees (
		emp_no INT PRIMARY KEY,
		birth_date DATE NOT NULL,
		first_name VARCHAR(14) NOT NULL,
		last_name VARCHAR(16) NOT NULL,
		gender CHAR(1) NOT NULL,
		hire_date DATE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS titles (
		emp_no INT NOT NULL,
		title VARCHAR(50) NOT NULL,
		from_date DATE NOT NULL,
		to_date DATE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS salaries (
		emp_no INT NOT NULL,
		salary INT NOT NULL,
		from_date DATE NOT NULL,
		to_date DATE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS dept_emp (
		emp_no INT NOT NULL,
		dept_no CHAR(4) NOT NULL,
		from_date DATE NOT NULL,
		to_date DATE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS dept_manager (
		emp_no INT NOT NULL,
		dept_no CHAR(4) NOT NULL,
		from_date DATE NOT NULL,
		to_date DATE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS departments (
		dept_no CHAR(4) PRIMARY KEY,
		dept_name VARCHAR(40) NOT NULL
	)`,
}

func serviceTestInit(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database-backed tests")
	}

	if testDB == nil {
		var err error
		testDB, err = database.NewPostgreSQLDB(dsn)
		require.NoError(t, err, "failed to connect to test database")
	}

	ctx := context.Background()
	for _, stmt := range testSchema {
		_, err := testDB.Exec(ctx, stmt)
		require.NoError(t, err)
	}

	return testDB
}

func truncateEmployeeTables(t *testing.T, ctx context.Context, db *database.DB) {
	t.Helper()
	tables := []string{"employees", "titles", "salaries", "dept_emp", "dept_manager", "departments"}
	for _, table := range tables {
		_, err := db.Exec(ctx, "TRUNCATE TABLE "+table)
		require.NoError(t, err)
	}

	_, err := db.Exec(ctx, `INSERT INTO departments (dept_no, dept_name) VALUES
		('d004', 'Production'), ('d005', 'Development'), ('d007', 'Sales')`)
	require.NoError(t, err)
}

func newTestService(db *database.DB) employee.Service {
	return NewEmployeeService(db, postgresql.NewEmployeeRepository(db))
}

func seedEmployee(t *testing.T, ctx context.Context, db *database.DB, empNo int) {
	t.Helper()
	_, err := db.Exec(ctx, `INSERT INTO employees (emp_no, birth_date, first_name, last_name, gender, hire_date)
		VALUES ($1, '1985-02-10', 'Georgi', 'Facello', 'M', '2010-06-26')`, empNo)
	require.NoError(t, err)
}

func countRows(t *testing.T, ctx context.Context, db *database.DB, table string, empNo int) int {
	t.Helper()
	var n int
	err := db.QueryRow(ctx, "SELECT COUNT(*) FROM "+table+" WHERE emp_no = $1", empNo).Scan(&n)
	require.NoError(t, err)
	return n
}

func validCreate() employee.CreateEmployeeRequest {
	salary := 75000
	return employee.CreateEmployeeRequest{
		BirthDate: "1990-05-21",
		FirstName: "Maria",
		LastName:  "Lopez",
		Gender:    "F",
		Title:     "Engineer",
		Salary:    &salary,
		DeptNo:    "d005",
	}
}

func TestEmployeeService_Create_AssignsNextEmpNo(t *testing.T) {
	db := serviceTestInit(t)
	ctx := context.Background()
	truncateEmployeeTables(t, ctx, db)
	svc := newTestService(db)

	seedEmployee(t, ctx, db, 10001)

	created, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	today := time.Now().Format(employee.DateLayout)
	assert.Equal(t, 10002, created.EmpNo)
	assert.Equal(t, "Maria", created.FirstName)
	assert.Equal(t, "Lopez", created.LastName)
	assert.Equal(t, "F", created.Gender)
	assert.Equal(t, "1990-05-21", created.BirthDate)
	assert.Equal(t, today, created.HireDate)

	// One open-ended row in each assignment history.
	assert.Equal(t, 1, countRows(t, ctx, db, "titles", created.EmpNo))
	assert.Equal(t, 1, countRows(t, ctx, db, "salaries", created.EmpNo))
	assert.Equal(t, 1, countRows(t, ctx, db, "dept_emp", created.EmpNo))

	got, err := svc.Get(ctx, created.EmpNo)
	require.NoError(t, err)
	require.NotNil(t, got.Title)
	require.NotNil(t, got.Salary)
	require.NotNil(t, got.DeptName)
	assert.Equal(t, "Engineer", *got.Title)
	assert.Equal(t, 75000, *got.Salary)
	assert.Equal(t, "Development", *got.DeptName)
}

func TestEmployeeService_Create_InvalidRequestWritesNothing(t *testing.T) {
	db := serviceTestInit(t)
	ctx := context.Background()
	truncateEmployeeTables(t, ctx, db)
	svc := newTestService(db)

	req := validCreate()
	req.Salary = nil

	_, err := svc.Create(ctx, req)
	require.Error(t, err)

	var n int
	require.NoError(t, db.QueryRow(ctx, "SELECT COUNT(*) FROM employees").Scan(&n))
	assert.Zero(t, n)
	require.NoError(t, db.QueryRow(ctx, "SELECT COUNT(*) FROM titles").Scan(&n))
	assert.Zero(t, n)
	require.NoError(t, db.QueryRow(ctx, "SELECT COUNT(*) FROM salaries").Scan(&n))
	assert.Zero(t, n)
	require.NoError(t, db.QueryRow(ctx, "SELECT COUNT(*) FROM dept_emp").Scan(&n))
	assert.Zero(t, n)
}

func TestEmployeeService_Update_SameDaySalaryIsIdempotent(t *testing.T) {
	db := serviceTestInit(t)
	ctx := context.Background()
	truncateEmployeeTables(t, ctx, db)
	svc := newTestService(db)

	created, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	first := 78000
	_, err = svc.Update(ctx, created.EmpNo, employee.UpdateEmployeeRequest{Salary: &first})
	require.NoError(t, err)

	second := 80000
	updated, err := svc.Update(ctx, created.EmpNo, employee.UpdateEmployeeRequest{Salary: &second})
	require.NoError(t, err)

	require.NotNil(t, updated.Salary)
	assert.Equal(t, 80000, *updated.Salary)

	// Both changes happened today, so the row created at hire time was
	// updated in place: still exactly one salaries row.
	var n, salary int
	today := time.Now().Format(employee.DateLayout)
	require.NoError(t, db.QueryRow(ctx,
		`SELECT COUNT(*) FROM salaries WHERE emp_no = $1 AND from_date = $2`,
		created.EmpNo, today).Scan(&n))
	assert.Equal(t, 1, n)
	require.NoError(t, db.QueryRow(ctx,
		`SELECT salary FROM salaries WHERE emp_no = $1 AND from_date = $2`,
		created.EmpNo, today).Scan(&salary))
	assert.Equal(t, 80000, salary)
}

func TestEmployeeService_Update_TitleHistoryIsAdditive(t *testing.T) {
	db := serviceTestInit(t)
	ctx := context.Background()
	truncateEmployeeTables(t, ctx, db)
	svc := newTestService(db)

	created, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	newTitle := "Senior Engineer"
	updated, err := svc.Update(ctx, created.EmpNo, employee.UpdateEmployeeRequest{Title: &newTitle})
	require.NoError(t, err)

	require.NotNil(t, updated.Title)
	assert.Equal(t, "Senior Engineer", *updated.Title)

	// Two rows total, exactly one of them still open-ended.
	assert.Equal(t, 2, countRows(t, ctx, db, "titles", created.EmpNo))
	var open int
	require.NoError(t, db.QueryRow(ctx,
		`SELECT COUNT(*) FROM titles WHERE emp_no = $1 AND to_date = $2`,
		created.EmpNo, employee.OpenEndedDate).Scan(&open))
	assert.Equal(t, 1, open)
}

func TestEmployeeService_Update_DepartmentChangeClosesAllRows(t *testing.T) {
	db := serviceTestInit(t)
	ctx := context.Background()
	truncateEmployeeTables(t, ctx, db)
	svc := newTestService(db)

	created, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	// Simulate a stale second open-ended assignment left behind by history.
	_, err = db.Exec(ctx, `INSERT INTO dept_emp (emp_no, dept_no, from_date, to_date)
		VALUES ($1, 'd004', '2015-01-01', '9999-01-01')`, created.EmpNo)
	require.NoError(t, err)

	newDept := "d007"
	updated, err := svc.Update(ctx, created.EmpNo, employee.UpdateEmployeeRequest{DeptNo: &newDept})
	require.NoError(t, err)

	require.NotNil(t, updated.DeptName)
	assert.Equal(t, "Sales", *updated.DeptName)

	var open int
	require.NoError(t, db.QueryRow(ctx,
		`SELECT COUNT(*) FROM dept_emp WHERE emp_no = $1 AND to_date = $2`,
		created.EmpNo, employee.OpenEndedDate).Scan(&open))
	assert.Equal(t, 1, open, "department reassignment must leave exactly one open-ended row")
}

func TestEmployeeService_Update_IdentityFieldsPartialPatch(t *testing.T) {
	db := serviceTestInit(t)
	ctx := context.Background()
	truncateEmployeeTables(t, ctx, db)
	svc := newTestService(db)

	created, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	newName := "Ana"
	updated, err := svc.Update(ctx, created.EmpNo, employee.UpdateEmployeeRequest{FirstName: &newName})
	require.NoError(t, err)

	assert.Equal(t, "Ana", updated.FirstName)
	assert.Equal(t, "Lopez", updated.LastName, "absent fields must stay untouched")
	assert.Equal(t, "1990-05-21", updated.BirthDate)
}

func TestEmployeeService_Update_NotFound(t *testing.T) {
	db := serviceTestInit(t)
	ctx := context.Background()
	truncateEmployeeTables(t, ctx, db)
	svc := newTestService(db)

	salary := 80000
	_, err := svc.Update(ctx, 999999, employee.UpdateEmployeeRequest{Salary: &salary})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeService_Delete_RemovesAggregateAtomically(t *testing.T) {
	db := serviceTestInit(t)
	ctx := context.Background()
	truncateEmployeeTables(t, ctx, db)
	svc := newTestService(db)

	created, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	_, err = db.Exec(ctx, `INSERT INTO dept_manager (emp_no, dept_no, from_date, to_date)
		VALUES ($1, 'd005', '2020-01-01', '9999-01-01')`, created.EmpNo)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.EmpNo))

	assert.Zero(t, countRows(t, ctx, db, "employees", created.EmpNo))
	assert.Zero(t, countRows(t, ctx, db, "titles", created.EmpNo))
	assert.Zero(t, countRows(t, ctx, db, "salaries", created.EmpNo))
	assert.Zero(t, countRows(t, ctx, db, "dept_emp", created.EmpNo))
	assert.Zero(t, countRows(t, ctx, db, "dept_manager", created.EmpNo))

	_, err = svc.Get(ctx, created.EmpNo)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	// Reference catalogs are unaffected.
	var departments int
	require.NoError(t, db.QueryRow(ctx, "SELECT COUNT(*) FROM departments").Scan(&departments))
	assert.Equal(t, 3, departments)
}

func TestEmployeeService_Delete_NotFound(t *testing.T) {
	db := serviceTestInit(t)
	ctx := context.Background()
	truncateEmployeeTables(t, ctx, db)
	svc := newTestService(db)

	seedEmployee(t, ctx, db, 10001)

	err := svc.Delete(ctx, 999999)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	assert.Equal(t, 1, countRows(t, ctx, db, "employees", 10001))
}

func TestEmployeeService_List_PaginationAndSearch(t *testing.T) {
	db := serviceTestInit(t)
	ctx := context.Background()
	truncateEmployeeTables(t, ctx, db)
	svc := newTestService(db)

	names := []struct {
		first, last string
	}{
		{"Maria", "Lopez"},
		{"Georgi", "Facello"},
		{"Mario", "Rossi"},
	}
	for i, n := range names {
		_, err := db.Exec(ctx, `INSERT INTO employees (emp_no, birth_date, first_name, last_name, gender, hire_date)
			VALUES ($1, '1990-01-01', $2, $3, 'M', '2020-01-01')`, 10001+i, n.first, n.last)
		require.NoError(t, err)
	}

	// Case-insensitive substring over first or last name.
	result, err := svc.List(ctx, employee.ListEmployeesFilter{Query: "mari"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Pagination.Total)
	assert.Equal(t, 1, result.Pagination.TotalPages)
	require.Len(t, result.Data, 2)
	// Ordered by emp_no descending.
	assert.Equal(t, 10003, result.Data[0].EmpNo)
	assert.Equal(t, 10001, result.Data[1].EmpNo)

	// Page beyond the result set.
	result, err = svc.List(ctx, employee.ListEmployeesFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.Pagination.Total)
	assert.Equal(t, 2, result.Pagination.TotalPages)
	require.Len(t, result.Data, 1)

	// Empty matching set keeps the metadata shape.
	result, err = svc.List(ctx, employee.ListEmployeesFilter{Query: "zzz"})
	require.NoError(t, err)
	assert.Equal(t, employee.Pagination{Page: 1, PageSize: 10, Total: 0, TotalPages: 0}, result.Pagination)
	assert.NotNil(t, result.Data)
	assert.Empty(t, result.Data)
}
