package history

import (
	"github.com/wmww/wifi-sync/pkg/profile"
)

// MockTracker implements Tracker for testing
type MockTracker struct {
	// Repositories tracks which paths are considered Git repositories
	Repositories map[string]bool

	// Commits tracks every recorded store change
	Commits []*CommitInfo

	// InitializeError simulates initialization failures when set
	InitializeError error

	// RecordError simulates commit failures when set
	RecordError error

	// CallCounts track method invocations
	InitializeCallCount   int
	IsRepositoryCallCount int
	RecordCallCount       int
}

// CommitInfo represents one recorded store change
type CommitInfo struct {
	StorePath string
	Added     []profile.Record
	Message   string
}

// NewMockTracker creates a new mock history tracker for testing
func NewMockTracker() *MockTracker {
	return &MockTracker{
		Repositories: make(map[string]bool),
		Commits:      make([]*CommitInfo, 0),
	}
}

// Initialize simulates Git repository initialization
func (m *MockTracker) Initialize(repoPath string) error {
	m.InitializeCallCount++

	if m.InitializeError != nil {
		return m.InitializeError
	}

	if repoPath == "" {
		return &HistoryError{
			Type:    "invalid_input",
			Message: "repository path cannot be empty",
		}
	}

	m.Repositories[repoPath] = true
	return nil
}

// IsRepository simulates checking if a path is a Git repository
func (m *MockTracker) IsRepository(repoPath string) bool {
	m.IsRepositoryCallCount++
	return m.Repositories[repoPath]
}

// Record simulates committing the store file
func (m *MockTracker) Record(storePath string, added []profile.Record) error {
	m.RecordCallCount++

	if m.RecordError != nil {
		return m.RecordError
	}

	if storePath == "" {
		return &HistoryError{
			Type:    "invalid_input",
			Message: "store path cannot be empty",
		}
	}
	if len(added) == 0 {
		return &HistoryError{
			Type:    "invalid_input",
			Message: "no added networks to record",
			Context: storePath,
		}
	}

	m.Commits = append(m.Commits, &CommitInfo{
		StorePath: storePath,
		Added:     added,
		Message:   formatCommitMessage(added),
	})

	return nil
}

// Helper methods for testing

// SetRecordError configures the mock to return a commit error
func (m *MockTracker) SetRecordError(err error) {
	m.RecordError = err
}

// VerifyRecorded checks if a store path has at least one recorded commit
func (m *MockTracker) VerifyRecorded(storePath string) bool {
	for _, commit := range m.Commits {
		if commit.StorePath == storePath {
			return true
		}
	}
	return false
}

// Reset clears all mock state for clean test setup
func (m *MockTracker) Reset() {
	m.Repositories = make(map[string]bool)
	m.Commits = make([]*CommitInfo, 0)
	m.InitializeError = nil
	m.RecordError = nil
	m.InitializeCallCount = 0
	m.IsRepositoryCallCount = 0
	m.RecordCallCount = 0
}
