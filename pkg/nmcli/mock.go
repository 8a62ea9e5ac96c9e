package nmcli

import (
	"context"

	"github.com/wmww/wifi-sync/pkg/profile"
)

// MockClient is a mock implementation of Client for testing
type MockClient struct {
	ListProfileNamesFunc func(ctx context.Context) ([]string, error)
	FetchAndParseFunc    func(ctx context.Context, names []string) (*FetchResult, error)
	GetAllProfilesFunc   func(ctx context.Context) (*FetchResult, error)
	ApplyFunc            func(ctx context.Context, record profile.Record) error

	// Call tracking
	ListProfileNamesCalls int
	FetchAndParseCalls    [][]string
	GetAllProfilesCalls   int
	ApplyCalls            []profile.Record

	// Mock system state: records returned by default implementations and
	// appended to by Apply
	Profiles []profile.Record
	// Skips returned alongside Profiles by the default fetch implementations
	Skips []Skip
}

// NewMockClient creates a new mock client
func NewMockClient() *MockClient {
	return &MockClient{}
}

// ListProfileNames mock implementation
func (m *MockClient) ListProfileNames(ctx context.Context) ([]string, error) {
	m.ListProfileNamesCalls++

	if m.ListProfileNamesFunc != nil {
		return m.ListProfileNamesFunc(ctx)
	}

	// Default behavior: names of the stored profiles
	var names []string
	for _, record := range m.Profiles {
		names = append(names, record.Name)
	}
	return names, nil
}

// FetchAndParse mock implementation
func (m *MockClient) FetchAndParse(ctx context.Context, names []string) (*FetchResult, error) {
	m.FetchAndParseCalls = append(m.FetchAndParseCalls, names)

	if m.FetchAndParseFunc != nil {
		return m.FetchAndParseFunc(ctx, names)
	}

	// Default behavior: return stored profiles matching the requested names
	result := &FetchResult{}
	for _, name := range names {
		for _, record := range m.Profiles {
			if record.Name == name {
				result.Records = append(result.Records, record)
			}
		}
	}
	return result, nil
}

// GetAllProfiles mock implementation
func (m *MockClient) GetAllProfiles(ctx context.Context) (*FetchResult, error) {
	m.GetAllProfilesCalls++

	if m.GetAllProfilesFunc != nil {
		return m.GetAllProfilesFunc(ctx)
	}

	// Default behavior: return all stored profiles plus configured skips
	result := &FetchResult{Skipped: m.Skips}
	result.Records = append(result.Records, m.Profiles...)
	return result, nil
}

// Apply mock implementation
func (m *MockClient) Apply(ctx context.Context, record profile.Record) error {
	m.ApplyCalls = append(m.ApplyCalls, record)

	if m.ApplyFunc != nil {
		return m.ApplyFunc(ctx, record)
	}

	// Default behavior: store the record like the system would
	m.Profiles = append(m.Profiles, record)
	return nil
}

// MockRunner is a mock implementation of Runner for testing the client's
// command construction and output handling without a real nmcli
type MockRunner struct {
	RunFunc func(ctx context.Context, args ...string) ([]byte, error)

	// Call tracking
	RunCalls [][]string

	// Responses consumed in order when RunFunc is not set; once exhausted
	// the last response repeats
	Responses []MockResponse
}

// MockResponse is one canned subprocess result
type MockResponse struct {
	Output []byte
	Err    error
}

// NewMockRunner creates a mock runner that replays the given responses
func NewMockRunner(responses ...MockResponse) *MockRunner {
	return &MockRunner{Responses: responses}
}

// Run mock implementation
func (m *MockRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	m.RunCalls = append(m.RunCalls, args)

	if m.RunFunc != nil {
		return m.RunFunc(ctx, args...)
	}

	if len(m.Responses) == 0 {
		return nil, nil
	}
	index := len(m.RunCalls) - 1
	if index >= len(m.Responses) {
		index = len(m.Responses) - 1
	}
	response := m.Responses[index]
	return response.Output, response.Err
}
