package employee

import (
	"github.com/TemperedKirin/fullstack-proyecto/internal/pkg/validator"
)

var genders = []string{string(GenderMale), string(GenderFemale)}

type CreateEmployeeRequest struct {
	BirthDate string `json:"birth_date"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Gender    string `json:"gender"`
	Title     string `json:"title"`
	Salary    *int   `json:"salary"`
	DeptNo    string `json:"dept_no"`
}

func (r CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.BirthDate) {
		errs = append(errs, validator.ValidationError{Field: "birth_date", Message: "is required"})
	} else if _, ok := validator.IsValidDate(r.BirthDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "birth_date", Message: "must be a date in YYYY-MM-DD format"})
	}
	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "is required"})
	}
	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "is required"})
	}
	if validator.IsEmpty(r.Gender) {
		errs = append(errs, validator.ValidationError{Field: "gender", Message: "is required"})
	} else if !validator.IsInSlice(r.Gender, genders) {
		errs = append(errs, validator.ValidationError{Field: "gender", Message: "must be M or F"})
	}
	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "is required"})
	}
	if r.Salary == nil || *r.Salary <= 0 {
		errs = append(errs, validator.ValidationError{Field: "salary", Message: "must be a positive number"})
	}
	if validator.IsEmpty(r.DeptNo) {
		errs = append(errs, validator.ValidationError{Field: "dept_no", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateEmployeeRequest is a partial patch. Absent fields are left untouched.
type UpdateEmployeeRequest struct {
	BirthDate *string `json:"birth_date,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Gender    *string `json:"gender,omitempty"`
	HireDate  *string `json:"hire_date,omitempty"`
	Title     *string `json:"title,omitempty"`
	Salary    *int    `json:"salary,omitempty"`
	DeptNo    *string `json:"dept_no,omitempty"`
}

// IsEmpty reports whether the patch carries no field at all.
func (r UpdateEmployeeRequest) IsEmpty() bool {
	return r.BirthDate == nil && r.FirstName == nil && r.LastName == nil &&
		r.Gender == nil && r.HireDate == nil &&
		r.Title == nil && r.Salary == nil && r.DeptNo == nil
}

func (r UpdateEmployeeRequest) Validate() error {
	if r.IsEmpty() {
		return ErrEmptyPatch
	}

	var errs validator.ValidationErrors

	if r.BirthDate != nil {
		if _, ok := validator.IsValidDate(*r.BirthDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "birth_date", Message: "must be a date in YYYY-MM-DD format"})
		}
	}
	if r.HireDate != nil {
		if _, ok := validator.IsValidDate(*r.HireDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "must be a date in YYYY-MM-DD format"})
		}
	}
	if r.Gender != nil && !validator.IsInSlice(*r.Gender, genders) {
		errs = append(errs, validator.ValidationError{Field: "gender", Message: "must be M or F"})
	}
	if r.FirstName != nil && validator.IsEmpty(*r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "must not be empty"})
	}
	if r.LastName != nil && validator.IsEmpty(*r.LastName) {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "must not be empty"})
	}
	if r.Title != nil && validator.IsEmpty(*r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "must not be empty"})
	}
	if r.Salary != nil && *r.Salary <= 0 {
		errs = append(errs, validator.ValidationError{Field: "salary", Message: "must be a positive number"})
	}
	if r.DeptNo != nil && validator.IsEmpty(*r.DeptNo) {
		errs = append(errs, validator.ValidationError{Field: "dept_no", Message: "must not be empty"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 100
)

// ListEmployeesFilter carries pagination and search parameters.
type ListEmployeesFilter struct {
	Page     int
	PageSize int
	Query    string
}

// Normalize clamps the filter to its valid ranges: page >= 1, pageSize in [1, 100].
func (f *ListEmployeesFilter) Normalize() {
	if f.Page < 1 {
		f.Page = defaultPage
	}
	if f.PageSize < 1 {
		f.PageSize = defaultPageSize
	}
	if f.PageSize > maxPageSize {
		f.PageSize = maxPageSize
	}
}

type EmployeeResponse struct {
	EmpNo     int     `json:"emp_no"`
	BirthDate string  `json:"birth_date"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Gender    string  `json:"gender"`
	HireDate  string  `json:"hire_date"`
	Title     *string `json:"title"`
	Salary    *int    `json:"salary"`
	DeptName  *string `json:"dept_name"`
}

type CreatedEmployeeResponse struct {
	EmpNo     int    `json:"emp_no"`
	BirthDate string `json:"birth_date"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Gender    string `json:"gender"`
	HireDate  string `json:"hire_date"`
}

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type ListEmployeesResponse struct {
	Data       []EmployeeResponse `json:"data"`
	Pagination Pagination         `json:"pagination"`
}
