package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmployeeConflict = errors.New("employee number already assigned")
	ErrEmptyPatch       = errors.New("nothing to update")
	ErrInvalidEmpNo     = errors.New("invalid employee number")
)
