package sync

import (
	"context"
)

// MockOrchestrator provides a mock implementation for testing
type MockOrchestrator struct {
	ImportFunc func(ctx context.Context, storePath string, opts Options) (*ImportResult, error)
	SaveFunc   func(ctx context.Context, storePath string, opts Options) (*SaveResult, error)
	ShowFunc   func(ctx context.Context, storePath string) (*ShowResult, error)

	// Call tracking
	ImportCalls []OperationCall
	SaveCalls   []OperationCall
	ShowCalls   []OperationCall
}

// OperationCall tracks one orchestrator invocation
type OperationCall struct {
	StorePath string
	Opts      Options
}

// NewMockOrchestrator creates a new mock sync orchestrator
func NewMockOrchestrator() *MockOrchestrator {
	return &MockOrchestrator{
		ImportCalls: make([]OperationCall, 0),
		SaveCalls:   make([]OperationCall, 0),
		ShowCalls:   make([]OperationCall, 0),
	}
}

// Import implements the Orchestrator interface
func (m *MockOrchestrator) Import(ctx context.Context, storePath string, opts Options) (*ImportResult, error) {
	m.ImportCalls = append(m.ImportCalls, OperationCall{StorePath: storePath, Opts: opts})

	if m.ImportFunc != nil {
		return m.ImportFunc(ctx, storePath, opts)
	}

	// Default mock behavior - nothing missing, nothing applied
	return &ImportResult{DryRun: opts.DryRun}, nil
}

// Save implements the Orchestrator interface
func (m *MockOrchestrator) Save(ctx context.Context, storePath string, opts Options) (*SaveResult, error) {
	m.SaveCalls = append(m.SaveCalls, OperationCall{StorePath: storePath, Opts: opts})

	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, storePath, opts)
	}

	// Default mock behavior - nothing added
	return &SaveResult{DryRun: opts.DryRun}, nil
}

// Show implements the Orchestrator interface
func (m *MockOrchestrator) Show(ctx context.Context, storePath string) (*ShowResult, error) {
	m.ShowCalls = append(m.ShowCalls, OperationCall{StorePath: storePath})

	if m.ShowFunc != nil {
		return m.ShowFunc(ctx, storePath)
	}

	// Default mock behavior - both sides empty
	return &ShowResult{}, nil
}

// Reset clears all recorded calls
func (m *MockOrchestrator) Reset() {
	m.ImportCalls = make([]OperationCall, 0)
	m.SaveCalls = make([]OperationCall, 0)
	m.ShowCalls = make([]OperationCall, 0)
}
