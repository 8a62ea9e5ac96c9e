package history

import "fmt"

// HistoryError represents errors that occur while recording store history
type HistoryError struct {
	Type    string // Type of error (invalid_input, repository_not_found, git_operation_error, etc.)
	Message string // Human-readable error message
	Err     error  // Underlying error
	Context string // Additional context (repository path, store file path, etc.)
}

func (e *HistoryError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("history error (%s) for %s: %s", e.Type, e.Context, e.Message)
	}
	return fmt.Sprintf("history error (%s): %s", e.Type, e.Message)
}

func (e *HistoryError) Unwrap() error {
	return e.Err
}

// IsRepositoryNotFoundError checks if the error is related to the repository not being found
func IsRepositoryNotFoundError(err error) bool {
	if historyErr, ok := err.(*HistoryError); ok {
		return historyErr.Type == "repository_not_found"
	}
	return false
}

// IsGitOperationError checks if the error is related to Git operations
func IsGitOperationError(err error) bool {
	if historyErr, ok := err.(*HistoryError); ok {
		return historyErr.Type == "git_operation_error"
	}
	return false
}

// IsFilesystemError checks if the error is related to filesystem operations
func IsFilesystemError(err error) bool {
	if historyErr, ok := err.(*HistoryError); ok {
		return historyErr.Type == "filesystem_error"
	}
	return false
}

// IsInvalidInputError checks if the error is related to invalid input
func IsInvalidInputError(err error) bool {
	if historyErr, ok := err.(*HistoryError); ok {
		return historyErr.Type == "invalid_input"
	}
	return false
}
