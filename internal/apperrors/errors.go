package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrSourceUnavailable indicates that the external rate source could not be reached
// or returned an unusable response. It aborts the synchronization stage only.
var ErrSourceUnavailable = errors.New("rate source unavailable")
