package test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-logr/logr"

	"github.com/wmww/wifi-sync/internal/sync"
	"github.com/wmww/wifi-sync/pkg/history"
	"github.com/wmww/wifi-sync/pkg/nmcli"
	"github.com/wmww/wifi-sync/pkg/profile"
	"github.com/wmww/wifi-sync/pkg/store"
)

func mustRecord(t *testing.T, name, ssid string, credential profile.CredentialType, passphrase string, autoconnect bool) profile.Record {
	t.Helper()

	record, err := profile.New(name, ssid, credential, passphrase, autoconnect)
	if err != nil {
		t.Fatalf("Failed to build record for %s: %v", ssid, err)
	}
	return record
}

func headHash(t *testing.T, repoPath string) string {
	t.Helper()

	repo, err := gogit.PlainOpen(repoPath)
	if err != nil {
		t.Fatalf("Failed to open git repository: %v", err)
	}
	head, err := repo.Head()
	if err != nil {
		t.Fatalf("Failed to read repository head: %v", err)
	}
	return head.Hash().String()
}

func headMessage(t *testing.T, repoPath string) string {
	t.Helper()

	repo, err := gogit.PlainOpen(repoPath)
	if err != nil {
		t.Fatalf("Failed to open git repository: %v", err)
	}
	head, err := repo.Head()
	if err != nil {
		t.Fatalf("Failed to read repository head: %v", err)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		t.Fatalf("Failed to read head commit: %v", err)
	}
	return commit.Message
}

// TestEndToEndWorkflow_TwoMachines walks the full workflow the tool exists
// for: machine A saves its networks to a shared store file, machine B
// imports them, saves its own network back, and machine A picks that up.
func TestEndToEndWorkflow_TwoMachines(t *testing.T) {
	tempDir := t.TempDir()
	storePath := filepath.Join(tempDir, "networks.json")
	ctx := context.Background()

	fileStore := store.NewFileStore(store.FormatJSON)
	tracker := history.NewGitTracker("E2E Test User", "e2e-test@automated.local")

	// Machine A knows two networks
	machineA := nmcli.NewMockClient()
	machineA.Profiles = []profile.Record{
		mustRecord(t, "HomeWifi", "HomeNet", profile.CredentialWPA, "hunter22!", true),
		mustRecord(t, "CafeWifi", "CafeNet", profile.CredentialOpen, "", false),
	}
	engineA := sync.NewEngine(machineA, fileStore, tracker, logr.Discard())

	// Step 1: machine A saves into an empty store
	t.Log("💾 Step 1: Saving machine A networks to the store file...")
	saveResult, err := engineA.Save(ctx, storePath, sync.Options{})
	if err != nil {
		t.Fatalf("Save on machine A failed: %v", err)
	}
	if len(saveResult.Added) != 2 {
		t.Fatalf("Expected 2 networks saved, got %d", len(saveResult.Added))
	}

	contents, err := os.ReadFile(storePath)
	if err != nil {
		t.Fatalf("Store file was not written: %v", err)
	}
	if !strings.Contains(string(contents), "HomeNet") || !strings.Contains(string(contents), "CafeNet") {
		t.Errorf("Store file missing saved networks:\n%s", contents)
	}

	firstHead := headHash(t, tempDir)
	if message := headMessage(t, tempDir); !strings.HasPrefix(message, "sync: add 2 networks") {
		t.Errorf("Unexpected history commit message: %q", message)
	}
	t.Log("✅ Store file written and history recorded")

	// Machine B starts out knowing only its own network
	machineB := nmcli.NewMockClient()
	machineB.Profiles = []profile.Record{
		mustRecord(t, "OfficeWifi", "OfficeNet", profile.CredentialWPA, "office-pass", true),
	}
	engineB := sync.NewEngine(machineB, fileStore, tracker, logr.Discard())

	// Step 2: machine B imports what machine A saved
	t.Log("📥 Step 2: Importing the store file on machine B...")
	importResult, err := engineB.Import(ctx, storePath, sync.Options{})
	if err != nil {
		t.Fatalf("Import on machine B failed: %v", err)
	}
	if len(importResult.Applied) != 2 {
		t.Fatalf("Expected 2 networks imported, got %d", len(importResult.Applied))
	}
	if len(machineB.ApplyCalls) != 2 {
		t.Fatalf("Expected 2 nmcli apply calls, got %d", len(machineB.ApplyCalls))
	}

	// Import never rewrites the store file
	afterImport, err := os.ReadFile(storePath)
	if err != nil {
		t.Fatalf("Failed to re-read store file: %v", err)
	}
	if string(afterImport) != string(contents) {
		t.Error("Import modified the store file")
	}
	t.Log("✅ Machine B now knows machine A's networks")

	// Step 3: machine B saves its own network back
	t.Log("💾 Step 3: Saving machine B networks to the store file...")
	saveResult, err = engineB.Save(ctx, storePath, sync.Options{})
	if err != nil {
		t.Fatalf("Save on machine B failed: %v", err)
	}
	if len(saveResult.Added) != 1 || saveResult.Added[0].SSID != "OfficeNet" {
		t.Fatalf("Expected OfficeNet to be saved, got %+v", saveResult.Added)
	}

	records, err := fileStore.Load(storePath)
	if err != nil {
		t.Fatalf("Failed to load store file: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 networks in store, got %d", len(records))
	}
	// Existing entries keep their position; new ones are appended
	if records[0].SSID != "HomeNet" || records[1].SSID != "CafeNet" || records[2].SSID != "OfficeNet" {
		t.Errorf("Store order changed: %s, %s, %s", records[0].SSID, records[1].SSID, records[2].SSID)
	}

	secondHead := headHash(t, tempDir)
	if secondHead == firstHead {
		t.Error("Expected a second history commit after machine B's save")
	}
	if message := headMessage(t, tempDir); !strings.HasPrefix(message, "sync: add 1 network\n") {
		t.Errorf("Unexpected history commit message: %q", message)
	}
	t.Log("✅ Store file grew to 3 networks with a second commit")

	// Step 4: a repeated save changes nothing
	t.Log("🔁 Step 4: Re-running save on machine B...")
	saveResult, err = engineB.Save(ctx, storePath, sync.Options{})
	if err != nil {
		t.Fatalf("Repeated save failed: %v", err)
	}
	if len(saveResult.Added) != 0 {
		t.Fatalf("Repeated save added %d networks, want 0", len(saveResult.Added))
	}

	afterRepeat, err := os.ReadFile(storePath)
	if err != nil {
		t.Fatalf("Failed to re-read store file: %v", err)
	}
	loaded, err := fileStore.Load(storePath)
	if err != nil {
		t.Fatalf("Failed to load store file after repeat: %v", err)
	}
	if len(loaded) != 3 {
		t.Errorf("Repeated save changed record count to %d", len(loaded))
	}
	if headHash(t, tempDir) != secondHead {
		t.Error("Repeated save created a history commit")
	}
	if len(afterRepeat) == 0 {
		t.Error("Store file emptied by repeated save")
	}
	t.Log("✅ Save is idempotent")

	// Step 5: machine A imports machine B's network and ends up in sync
	t.Log("📥 Step 5: Importing the store file back on machine A...")
	importResult, err = engineA.Import(ctx, storePath, sync.Options{})
	if err != nil {
		t.Fatalf("Import on machine A failed: %v", err)
	}
	if len(importResult.Applied) != 1 || importResult.Applied[0].SSID != "OfficeNet" {
		t.Fatalf("Expected OfficeNet to be imported, got %+v", importResult.Applied)
	}

	showResult, err := engineA.Show(ctx, storePath)
	if err != nil {
		t.Fatalf("Show on machine A failed: %v", err)
	}
	if len(showResult.OnlySystem) != 0 || len(showResult.OnlyStore) != 0 {
		t.Errorf("Expected machine A and store to be in sync, got %d system-only and %d store-only",
			len(showResult.OnlySystem), len(showResult.OnlyStore))
	}
	t.Log("✅ Both machines and the store file are in sync")
}

// TestEndToEndWorkflow_YAMLStore runs a save/import round trip against a
// YAML store file.
func TestEndToEndWorkflow_YAMLStore(t *testing.T) {
	tempDir := t.TempDir()
	storePath := filepath.Join(tempDir, "networks.yaml")
	ctx := context.Background()

	fileStore := store.NewFileStore(store.DetectFormat(storePath, store.FormatJSON))

	machine := nmcli.NewMockClient()
	machine.Profiles = []profile.Record{
		mustRecord(t, "HomeWifi", "HomeNet", profile.CredentialWPA, "hunter22!", true),
	}
	engine := sync.NewEngine(machine, fileStore, nil, logr.Discard())

	if _, err := engine.Save(ctx, storePath, sync.Options{}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	contents, err := os.ReadFile(storePath)
	if err != nil {
		t.Fatalf("Store file was not written: %v", err)
	}
	if !strings.Contains(string(contents), "ssid: HomeNet") {
		t.Errorf("Expected YAML store contents, got:\n%s", contents)
	}

	// A fresh machine imports the YAML store
	fresh := nmcli.NewMockClient()
	freshEngine := sync.NewEngine(fresh, fileStore, nil, logr.Discard())

	result, err := freshEngine.Import(ctx, storePath, sync.Options{})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(result.Applied) != 1 || result.Applied[0].SSID != "HomeNet" {
		t.Fatalf("Expected HomeNet to be imported, got %+v", result.Applied)
	}
	if result.Applied[0].Passphrase != "hunter22!" {
		t.Error("Passphrase did not survive the YAML round trip")
	}
}
