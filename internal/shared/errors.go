package shared

import "fmt"

var (
	// Run lifecycle errors
	ErrBusy    = fmt.Errorf("a sort is already running")
	ErrNoData  = fmt.Errorf("no records to sort")
	ErrStopped = fmt.Errorf("sort cancelled")

	// Programming-error class: index access outside the loaded sequence
	ErrIndexOutOfRange = fmt.Errorf("index out of range")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Record errors
	ErrStudentNotFound = fmt.Errorf("student not found")
	ErrDuplicateRoll   = fmt.Errorf("roll number already exists")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
