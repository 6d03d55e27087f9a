package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the authenticated user may not perform the requested action.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidState indicates an operation was attempted against a resource whose
// current status does not permit it (e.g. deciding an already-decided approval).
var ErrInvalidState = errors.New("invalid state for operation")

// ErrRateUnavailable indicates the upstream rate table was fetched successfully
// but does not contain the requested target currency. Not retryable.
var ErrRateUnavailable = errors.New("exchange rate unavailable for currency")

// ErrUpstreamUnavailable indicates an external source (rate or country lookup)
// was unreachable or returned a non-success status. Safe to retry.
var ErrUpstreamUnavailable = errors.New("upstream service unavailable")
