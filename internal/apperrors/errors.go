package apperrors

import (
	"errors"
	"fmt"
)

// QueryError indicates the search API failed to produce a result tree, either
// because the endpoint reported errors or because the request itself failed.
type QueryError struct {
	Err error
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	return fmt.Sprintf("query: %v", e.Err)
}

// Unwrap returns the wrapped error.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// NewQuery wraps the given error as a QueryError, adding a message.
// It uses fmt.Errorf with %w to maintain the error chain.
func NewQuery(err error, message string, args ...interface{}) error {
	format := message + ": %w"
	allArgs := append(args, err)
	return &QueryError{Err: fmt.Errorf(format, allArgs...)}
}

// StorageError indicates a schema operation or row write was rejected by the
// storage engine.
type StorageError struct {
	Err error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %v", e.Err)
}

// Unwrap returns the wrapped error.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorage wraps the given error as a StorageError, adding a message.
// It uses fmt.Errorf with %w to maintain the error chain.
func NewStorage(err error, message string, args ...interface{}) error {
	format := message + ": %w"
	allArgs := append(args, err)
	return &StorageError{Err: fmt.Errorf(format, allArgs...)}
}

// --- Standard Error Definitions ---

// These sentinel errors define common failure conditions. They can be checked
// with errors.Is and are typically wrapped by QueryError or StorageError
// depending on where they surface.
var (
	// ErrGraphQL indicates the search endpoint returned a structured errors array.
	ErrGraphQL = errors.New("graphql query failed")
	// ErrTransport indicates a non-2xx status, connection failure or timeout.
	ErrTransport = errors.New("transport failure")
	// ErrDatabase indicates a general database interaction error.
	ErrDatabase = errors.New("database error")
	// ErrValidation indicates failure during data validation.
	ErrValidation = errors.New("validation failed")
)

// --- Helper functions for checking ---

// IsQuery checks if the error is a QueryError or wraps one.
func IsQuery(err error) bool {
	var target *QueryError
	return errors.As(err, &target)
}

// IsStorage checks if the error is a StorageError or wraps one.
func IsStorage(err error) bool {
	var target *StorageError
	return errors.As(err, &target)
}

// IsGraphQLError checks if the error is or wraps ErrGraphQL.
func IsGraphQLError(err error) bool {
	return errors.Is(err, ErrGraphQL)
}

// IsTransportError checks if the error is or wraps ErrTransport.
func IsTransportError(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsDatabaseError checks if the error is or wraps ErrDatabase.
func IsDatabaseError(err error) bool {
	return errors.Is(err, ErrDatabase)
}

// IsValidationError checks if the error is or wraps ErrValidation.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}
