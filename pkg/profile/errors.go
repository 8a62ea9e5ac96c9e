package profile

import "fmt"

// ProfileError represents a profile validation error
type ProfileError struct {
	Type    string // Type of error (missing_field, invalid_credential, etc.)
	Profile string // Profile name or SSID the error refers to
	Field   string // Offending field, when one can be named
	Message string // Human-readable error message
	Cause   error  // Underlying error
}

func (e *ProfileError) Error() string {
	if e.Profile != "" && e.Field != "" {
		return fmt.Sprintf("%s: profile '%s', field '%s': %s", e.Type, e.Profile, e.Field, e.Message)
	} else if e.Profile != "" {
		return fmt.Sprintf("%s: profile '%s': %s", e.Type, e.Profile, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *ProfileError) Unwrap() error {
	return e.Cause
}

// IsProfileError checks if an error is a ProfileError
func IsProfileError(err error) bool {
	_, ok := err.(*ProfileError)
	return ok
}

// Error type constants
const (
	ErrorTypeMissingField          = "missing_field"
	ErrorTypeInvalidCredential     = "invalid_credential"
	ErrorTypeUnsupportedCredential = "unsupported_credential"
	ErrorTypeUnknownCredentialType = "unknown_credential_type"
)

// NewMissingFieldError creates an error for a required field that is absent
func NewMissingFieldError(profile, field string) *ProfileError {
	return &ProfileError{
		Type:    ErrorTypeMissingField,
		Profile: profile,
		Field:   field,
		Message: "required field is missing",
	}
}

// NewInvalidCredentialError creates an error for a credential combination
// that violates the record invariants
func NewInvalidCredentialError(profile, message string) *ProfileError {
	return &ProfileError{
		Type:    ErrorTypeInvalidCredential,
		Profile: profile,
		Message: message,
	}
}

// NewUnsupportedCredentialError creates an error for the WEP scheme, which
// is recognized but never synced
func NewUnsupportedCredentialError(profile string) *ProfileError {
	return &ProfileError{
		Type:    ErrorTypeUnsupportedCredential,
		Profile: profile,
		Message: "wep networks are not supported",
	}
}

// NewUnknownCredentialTypeError creates an error for a credential type
// outside the known set
func NewUnknownCredentialTypeError(profile, value string) *ProfileError {
	return &ProfileError{
		Type:    ErrorTypeUnknownCredentialType,
		Profile: profile,
		Message: fmt.Sprintf("unknown credential type '%s'", value),
	}
}

// IsMissingFieldError checks if the error reports an absent required field
func IsMissingFieldError(err error) bool {
	if profileErr, ok := err.(*ProfileError); ok {
		return profileErr.Type == ErrorTypeMissingField
	}
	return false
}

// IsInvalidCredentialError checks if the error reports an invalid
// credential combination
func IsInvalidCredentialError(err error) bool {
	if profileErr, ok := err.(*ProfileError); ok {
		return profileErr.Type == ErrorTypeInvalidCredential
	}
	return false
}

// IsUnsupportedCredentialError checks if the error reports a recognized but
// unsupported scheme (WEP)
func IsUnsupportedCredentialError(err error) bool {
	if profileErr, ok := err.(*ProfileError); ok {
		return profileErr.Type == ErrorTypeUnsupportedCredential
	}
	return false
}

// IsUnknownCredentialTypeError checks if the error reports a credential
// type outside the known set
func IsUnknownCredentialTypeError(err error) bool {
	if profileErr, ok := err.(*ProfileError); ok {
		return profileErr.Type == ErrorTypeUnknownCredentialType
	}
	return false
}
