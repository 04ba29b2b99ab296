package employee

import "time"

// DateLayout is the wire format for all date fields.
const DateLayout = "2006-01-02"

// OpenEndedDate is the to_date sentinel carried by the current row of each
// assignment history. A history row is valid over [from_date, to_date).
var OpenEndedDate = time.Date(9999, time.January, 1, 0, 0, 0, 0, time.UTC)

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

// Employee is the aggregate root. The titles, salaries and dept_emp histories
// are owned by it and live and die with the emp_no.
type Employee struct {
	EmpNo     int
	BirthDate time.Time
	FirstName string
	LastName  string
	Gender    Gender
	HireDate  time.Time
}

// View is the denormalized read row joining an employee with its current
// title, salary and department name. The joined columns are nil when the
// employee has no assignment rows at all.
type View struct {
	EmpNo     int
	BirthDate time.Time
	FirstName string
	LastName  string
	Gender    Gender
	HireDate  time.Time
	Title     *string
	Salary    *int
	DeptName  *string
}
