package employee

import "context"

// Service defines business logic for employee operations
type Service interface {
	// List returns a page of employee projections with pagination metadata.
	List(ctx context.Context, filter ListEmployeesFilter) (ListEmployeesResponse, error)

	// Get retrieves a single employee projection by emp_no.
	Get(ctx context.Context, empNo int) (EmployeeResponse, error)

	// Create inserts the employee identity row plus one open-ended title,
	// salary and department assignment, all in one transaction.
	Create(ctx context.Context, req CreateEmployeeRequest) (CreatedEmployeeResponse, error)

	// Update applies a partial patch to the identity row and rolls the
	// assignment histories forward, all in one transaction.
	Update(ctx context.Context, empNo int, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// Delete removes the employee and every owned assignment row atomically.
	Delete(ctx context.Context, empNo int) error
}
