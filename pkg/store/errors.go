package store

import "fmt"

// StoreError represents errors that occur while loading or saving the
// profile store file
type StoreError struct {
	Type    string // Type of error (decode_error, io_error, invalid_record)
	Message string // Human-readable error message
	Path    string // Store file the error refers to
	Err     error  // Underlying error
}

func (e *StoreError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("store error (%s) for %s: %s", e.Type, e.Path, e.Message)
	}
	return fmt.Sprintf("store error (%s): %s", e.Type, e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Error type constants
const (
	ErrorTypeDecodeError   = "decode_error"
	ErrorTypeIOError       = "io_error"
	ErrorTypeInvalidRecord = "invalid_record"
)

// NewDecodeError creates an error for store content that cannot be parsed
func NewDecodeError(message, path string, err error) *StoreError {
	return &StoreError{
		Type:    ErrorTypeDecodeError,
		Message: message,
		Path:    path,
		Err:     err,
	}
}

// NewIOError creates an error for a failed filesystem operation
func NewIOError(message, path string, err error) *StoreError {
	return &StoreError{
		Type:    ErrorTypeIOError,
		Message: message,
		Path:    path,
		Err:     err,
	}
}

// NewInvalidRecordError creates an error for a well-formed store entry
// that fails record validation. The whole load fails: the store is the
// user's source of truth and silently dropping an entry would corrupt
// every sync built on it.
func NewInvalidRecordError(path string, index int, ssid string, err error) *StoreError {
	return &StoreError{
		Type:    ErrorTypeInvalidRecord,
		Message: fmt.Sprintf("record %d (ssid '%s') is invalid: %v", index, ssid, err),
		Path:    path,
		Err:     err,
	}
}

// IsDecodeError checks if the error reports unparseable store content
func IsDecodeError(err error) bool {
	if storeErr, ok := err.(*StoreError); ok {
		return storeErr.Type == ErrorTypeDecodeError
	}
	return false
}

// IsIOError checks if the error reports a failed filesystem operation
func IsIOError(err error) bool {
	if storeErr, ok := err.(*StoreError); ok {
		return storeErr.Type == ErrorTypeIOError
	}
	return false
}

// IsInvalidRecordError checks if the error reports a store entry that
// failed record validation
func IsInvalidRecordError(err error) bool {
	if storeErr, ok := err.(*StoreError); ok {
		return storeErr.Type == ErrorTypeInvalidRecord
	}
	return false
}
