package store

import "github.com/wmww/wifi-sync/pkg/profile"

// MockStore is a mock implementation of Store for testing
type MockStore struct {
	LoadFunc func(path string) ([]profile.Record, error)
	SaveFunc func(path string, records []profile.Record) error

	// Call tracking
	LoadCalls []string
	SaveCalls []SaveCall

	// Mock file storage
	Files map[string][]profile.Record
}

// SaveCall captures the arguments of one Save invocation
type SaveCall struct {
	Path    string
	Records []profile.Record
}

// NewMockStore creates a new mock store
func NewMockStore() *MockStore {
	return &MockStore{
		Files: make(map[string][]profile.Record),
	}
}

// Load mock implementation
func (m *MockStore) Load(path string) ([]profile.Record, error) {
	m.LoadCalls = append(m.LoadCalls, path)

	if m.LoadFunc != nil {
		return m.LoadFunc(path)
	}

	// Default behavior: a missing path is an empty store
	if records, exists := m.Files[path]; exists {
		return records, nil
	}
	return []profile.Record{}, nil
}

// Save mock implementation
func (m *MockStore) Save(path string, records []profile.Record) error {
	m.SaveCalls = append(m.SaveCalls, SaveCall{Path: path, Records: records})

	if m.SaveFunc != nil {
		return m.SaveFunc(path, records)
	}

	// Default behavior: store the records
	m.Files[path] = records
	return nil
}
