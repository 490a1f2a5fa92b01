package service

import "errors"

// Common service errors
var (
	// ErrPermissionDenied is returned when a user doesn't have permission for an action
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict (e.g., duplicate)
	ErrConflict = errors.New("resource conflict")

	// ErrUnauthorized is returned when user is not authenticated
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnitBrandMismatch is returned when an opportunity references a
	// business unit that belongs to a different brand
	ErrUnitBrandMismatch = errors.New("business unit does not belong to the opportunity's brand")

	// ErrNoCurrentFiscalYear is returned when an operation needs the current
	// fiscal year and none is flagged
	ErrNoCurrentFiscalYear = errors.New("no current fiscal year configured")

	// ErrInvalidPeriod is returned when a fiscal period is outside 1-12
	ErrInvalidPeriod = errors.New("fiscal period must be between 1 and 12")

	// ErrManagerRole is returned when an org business unit manager lacks the
	// required role
	ErrManagerRole = errors.New("manager must be a business unit head or sales director")
)
