package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/TemperedKirin/fullstack-proyecto/internal/domain/employee"
	"github.com/TemperedKirin/fullstack-proyecto/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		BadRequest(w, validationErrs.Error())
		return
	}

	switch {
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmptyPatch):
		BadRequest(w, "Nothing to update")
	case errors.Is(err, employee.ErrInvalidEmpNo):
		BadRequest(w, "Invalid employee number")
	case errors.Is(err, employee.ErrEmployeeConflict):
		Conflict(w, "Employee number already assigned")

	// Default: detail goes to the log, the caller gets a generic message.
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
