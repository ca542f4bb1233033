package domain

import "errors"

var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrEmailTaken         = errors.New("email already exists")

	ErrPrincipalNotFound    = errors.New("principal not found")
	ErrBranchNotFound       = errors.New("branch not found")
	ErrBranchExists         = errors.New("branch already exists")
	ErrEventNotFound        = errors.New("event not found")
	ErrAttendanceNotFound   = errors.New("attendance record not found")
	ErrFinancialNotFound    = errors.New("financial record not found")
	ErrNotificationNotFound = errors.New("notification not found")

	ErrInvalidInput = errors.New("invalid input")
)
