package nmcli

import (
	"fmt"
	"strings"
)

// ToolError represents errors that occur at the nmcli subprocess boundary
type ToolError struct {
	Type     string   // Type of error (tool_unavailable, tool_error, count_mismatch)
	Message  string   // Human-readable error message
	Args     []string // Arguments nmcli was invoked with
	Stdout   string   // Captured standard output, kept for diagnostics
	Stderr   string   // Captured standard error
	ExitCode int      // Process exit code, -1 when the process never ran
	Err      error    // Underlying error
}

func (e *ToolError) Error() string {
	if len(e.Args) > 0 {
		return fmt.Sprintf("nmcli error (%s) for 'nmcli %s': %s", e.Type, strings.Join(e.Args, " "), e.Message)
	}
	return fmt.Sprintf("nmcli error (%s): %s", e.Type, e.Message)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// ExtractError represents a failure to pull a profile's fields out of a
// raw nmcli dump
type ExtractError struct {
	Type    string // Type of error (ambiguous_ssid, unknown_key_management, etc.)
	Profile string // Profile name the dump belongs to
	Message string // Human-readable error message
}

func (e *ExtractError) Error() string {
	if e.Profile != "" {
		return fmt.Sprintf("extract error (%s) for profile '%s': %s", e.Type, e.Profile, e.Message)
	}
	return fmt.Sprintf("extract error (%s): %s", e.Type, e.Message)
}

// Error type constants
const (
	ErrorTypeToolUnavailable        = "tool_unavailable"
	ErrorTypeToolError              = "tool_error"
	ErrorTypeCountMismatch          = "count_mismatch"
	ErrorTypeAmbiguousSSID          = "ambiguous_ssid"
	ErrorTypeAmbiguousPassphrase    = "ambiguous_passphrase"
	ErrorTypeAmbiguousKeyManagement = "ambiguous_key_management"
	ErrorTypeUnknownKeyManagement   = "unknown_key_management"
)

// NewToolUnavailableError creates an error for an nmcli binary that cannot
// be invoked at all
func NewToolUnavailableError(binPath string, err error) *ToolError {
	return &ToolError{
		Type:     ErrorTypeToolUnavailable,
		Message:  fmt.Sprintf("nmcli is not available at '%s' (is NetworkManager installed?)", binPath),
		ExitCode: -1,
		Err:      err,
	}
}

// NewToolExitError creates an error for an nmcli invocation that ran but
// failed. nmcli writes some failures to stdout rather than stderr, so both
// streams are kept.
func NewToolExitError(args []string, stdout, stderr string, exitCode int, err error) *ToolError {
	message := fmt.Sprintf("exited with status %d", exitCode)
	if line := firstLine(stderr); line != "" {
		message = fmt.Sprintf("%s: %s", message, line)
	} else if line := firstLine(stdout); line != "" {
		message = fmt.Sprintf("%s: %s", message, line)
	}
	return &ToolError{
		Type:     ErrorTypeToolError,
		Message:  message,
		Args:     args,
		Stdout:   stdout,
		Stderr:   stderr,
		ExitCode: exitCode,
		Err:      err,
	}
}

// NewCountMismatchError creates an error for a batched query whose output
// did not split into one block per requested profile
func NewCountMismatchError(args []string, expected, got int) *ToolError {
	return &ToolError{
		Type:    ErrorTypeCountMismatch,
		Message: fmt.Sprintf("expected %d profile blocks in batched output, got %d", expected, got),
		Args:    args,
	}
}

// NewAmbiguousSSIDError creates an error for a dump without exactly one
// ssid field
func NewAmbiguousSSIDError(profile string, matches int) *ExtractError {
	return &ExtractError{
		Type:    ErrorTypeAmbiguousSSID,
		Profile: profile,
		Message: fmt.Sprintf("expected exactly one ssid field, found %d", matches),
	}
}

// NewAmbiguousPassphraseError creates an error for a dump with more than
// one passphrase field
func NewAmbiguousPassphraseError(profile string, matches int) *ExtractError {
	return &ExtractError{
		Type:    ErrorTypeAmbiguousPassphrase,
		Profile: profile,
		Message: fmt.Sprintf("expected at most one passphrase field, found %d", matches),
	}
}

// NewAmbiguousKeyManagementError creates an error for a dump with more
// than one key management field
func NewAmbiguousKeyManagementError(profile string, matches int) *ExtractError {
	return &ExtractError{
		Type:    ErrorTypeAmbiguousKeyManagement,
		Profile: profile,
		Message: fmt.Sprintf("expected at most one key management field, found %d", matches),
	}
}

// NewUnknownKeyManagementError creates an error for a key management
// scheme outside the known set
func NewUnknownKeyManagementError(profile, value string) *ExtractError {
	return &ExtractError{
		Type:    ErrorTypeUnknownKeyManagement,
		Profile: profile,
		Message: fmt.Sprintf("unknown key management scheme '%s'", value),
	}
}

// IsToolUnavailableError checks if the error means nmcli cannot be invoked
func IsToolUnavailableError(err error) bool {
	if toolErr, ok := err.(*ToolError); ok {
		return toolErr.Type == ErrorTypeToolUnavailable
	}
	return false
}

// IsToolExitError checks if the error is a failed nmcli invocation
func IsToolExitError(err error) bool {
	if toolErr, ok := err.(*ToolError); ok {
		return toolErr.Type == ErrorTypeToolError
	}
	return false
}

// IsCountMismatchError checks if the error is a batched-output split that
// produced the wrong number of blocks
func IsCountMismatchError(err error) bool {
	if toolErr, ok := err.(*ToolError); ok {
		return toolErr.Type == ErrorTypeCountMismatch
	}
	return false
}

// IsAmbiguousSSIDError checks if the error reports an ambiguous ssid field
func IsAmbiguousSSIDError(err error) bool {
	if extractErr, ok := err.(*ExtractError); ok {
		return extractErr.Type == ErrorTypeAmbiguousSSID
	}
	return false
}

// IsAmbiguousPassphraseError checks if the error reports an ambiguous
// passphrase field
func IsAmbiguousPassphraseError(err error) bool {
	if extractErr, ok := err.(*ExtractError); ok {
		return extractErr.Type == ErrorTypeAmbiguousPassphrase
	}
	return false
}

// IsAmbiguousKeyManagementError checks if the error reports an ambiguous
// key management field
func IsAmbiguousKeyManagementError(err error) bool {
	if extractErr, ok := err.(*ExtractError); ok {
		return extractErr.Type == ErrorTypeAmbiguousKeyManagement
	}
	return false
}

// IsUnknownKeyManagementError checks if the error reports an unrecognized
// key management scheme
func IsUnknownKeyManagementError(err error) bool {
	if extractErr, ok := err.(*ExtractError); ok {
		return extractErr.Type == ErrorTypeUnknownKeyManagement
	}
	return false
}

// firstLine trims output down to its first non-empty line for use in
// one-line error messages.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
