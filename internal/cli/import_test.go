package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/wmww/wifi-sync/internal/sync"
)

// newTestImportCommand builds an isolated import command so package-level
// flag state never leaks between tests.
func newTestImportCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "import", RunE: runImport}
	cmd.Flags().Bool("dry-run", false, "Show what would be imported without making changes")
	cmd.Flags().StringP("file", "f", "", "Store file path")
	cmd.Flags().StringP("log-level", "l", "", "Log level")
	cmd.Flags().String("log-format", "", "Log format")
	return cmd
}

func TestImportCommand_Flags(t *testing.T) {
	if importCmd.Flags().Lookup("dry-run") == nil {
		t.Error("Expected --dry-run flag to exist")
	}
}

func TestImportCommand_InvokesOrchestrator(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "networks.json")
	t.Setenv("WIFI_SYNC_FILE", storePath)

	mock := sync.NewMockOrchestrator()
	call := swapOrchestrator(t, mock)

	cmd := newTestImportCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v, want nil", err)
	}

	if !call.invoked {
		t.Fatal("Expected the engine factory to be invoked")
	}
	if call.gitHistory {
		t.Error("Expected import to run without history recording")
	}
	if len(mock.ImportCalls) != 1 {
		t.Fatalf("Import called %d times, want 1", len(mock.ImportCalls))
	}
	if mock.ImportCalls[0].StorePath != storePath {
		t.Errorf("Import store path = %s, want %s", mock.ImportCalls[0].StorePath, storePath)
	}
	if mock.ImportCalls[0].Opts.DryRun {
		t.Error("Import DryRun = true, want false")
	}
}

func TestImportCommand_DryRun(t *testing.T) {
	t.Setenv("WIFI_SYNC_FILE", filepath.Join(t.TempDir(), "networks.json"))

	mock := sync.NewMockOrchestrator()
	swapOrchestrator(t, mock)

	cmd := newTestImportCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"--dry-run"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v, want nil", err)
	}

	if len(mock.ImportCalls) != 1 {
		t.Fatalf("Import called %d times, want 1", len(mock.ImportCalls))
	}
	if !mock.ImportCalls[0].Opts.DryRun {
		t.Error("Import DryRun = false, want true")
	}
}

func TestImportCommand_FileFlag(t *testing.T) {
	t.Setenv("WIFI_SYNC_FILE", "/from/env/networks.json")
	flagPath := filepath.Join(t.TempDir(), "networks.yaml")

	mock := sync.NewMockOrchestrator()
	swapOrchestrator(t, mock)

	cmd := newTestImportCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"--file", flagPath})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v, want nil", err)
	}

	if len(mock.ImportCalls) != 1 {
		t.Fatalf("Import called %d times, want 1", len(mock.ImportCalls))
	}
	if mock.ImportCalls[0].StorePath != flagPath {
		t.Errorf("Import store path = %s, want flag value %s", mock.ImportCalls[0].StorePath, flagPath)
	}
}

func TestImportCommand_FailurePropagates(t *testing.T) {
	t.Setenv("WIFI_SYNC_FILE", filepath.Join(t.TempDir(), "networks.json"))

	mock := sync.NewMockOrchestrator()
	mock.ImportFunc = func(ctx context.Context, storePath string, opts sync.Options) (*sync.ImportResult, error) {
		return nil, errors.New("nmcli is not available at '/usr/bin/nmcli'")
	}
	swapOrchestrator(t, mock)

	cmd := newTestImportCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("Expected error when the orchestrator fails")
	}
	if !strings.Contains(err.Error(), "import failed") {
		t.Errorf("Expected wrapped import error, got: %v", err)
	}
	if !strings.Contains(err.Error(), "nmcli is not available") {
		t.Errorf("Expected underlying cause in error, got: %v", err)
	}
}
