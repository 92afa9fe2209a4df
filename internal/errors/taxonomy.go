package errors

import stderrors "errors"

// Core error taxonomy. Services wrap these with context; handlers map them
// to status codes with errors.Is.
var (
	// ErrNotFound: the referenced entity key does not exist. Always checked
	// before authorization.
	ErrNotFound = stderrors.New("not found")

	// ErrAccessDenied: the principal has no membership on the owning project.
	ErrAccessDenied = stderrors.New("access denied")

	// ErrValidation: malformed enum values, invalid date ranges and the like.
	ErrValidation = stderrors.New("validation failed")

	// ErrInvalidCredentials: unknown username or wrong password. Deliberately
	// a single error so responses cannot be used for user enumeration.
	ErrInvalidCredentials = stderrors.New("invalid username or password")
)
