package sync

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/wmww/wifi-sync/pkg/history"
	"github.com/wmww/wifi-sync/pkg/nmcli"
	"github.com/wmww/wifi-sync/pkg/profile"
	"github.com/wmww/wifi-sync/pkg/store"
)

// Orchestrator defines the interface for sync operations between the
// system's saved Wi-Fi profiles and the portable store file
type Orchestrator interface {
	Import(ctx context.Context, storePath string, opts Options) (*ImportResult, error)
	Save(ctx context.Context, storePath string, opts Options) (*SaveResult, error)
	Show(ctx context.Context, storePath string) (*ShowResult, error)
}

// Options control a sync run
type Options struct {
	// DryRun reports what would change without touching the system or
	// the store file
	DryRun bool
}

// Engine implements the Orchestrator interface. Networks are processed
// sequentially: nmcli serializes profile changes anyway, and a sync run
// touches at most a few dozen networks.
type Engine struct {
	system  nmcli.Client
	store   store.Store
	tracker history.Tracker
	log     logr.Logger
}

// ImportResult contains the results of an import run
type ImportResult struct {
	SystemProfiles int              // Wi-Fi profiles readable on the system before the run
	StoreProfiles  int              // records in the store file
	Missing        []profile.Record // store records absent from the system
	Applied        []profile.Record // records actually handed to nmcli
	Skipped        []nmcli.Skip     // system connections that could not be read
	Errors         []RecordError    // per-network apply failures
	DryRun         bool
}

// SaveResult contains the results of a save run
type SaveResult struct {
	SystemProfiles int              // Wi-Fi profiles readable on the system
	StoreProfiles  int              // records in the store file before the run
	Added          []profile.Record // system records appended to the store
	Skipped        []nmcli.Skip     // system connections that could not be read
	DryRun         bool
}

// ShowResult contains both sides of the comparison without changing either
type ShowResult struct {
	System     []profile.Record // Wi-Fi profiles readable on the system
	Store      []profile.Record // records in the store file
	OnlySystem []profile.Record // on the system but not in the store (save candidates)
	OnlyStore  []profile.Record // in the store but not on the system (import candidates)
	Skipped    []nmcli.Skip     // system connections that could not be read
}

// RecordError represents an error that occurred while applying one network
type RecordError struct {
	SSID    string `json:"ssid"`
	Step    string `json:"step"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// NewEngine creates a sync engine. A nil tracker disables history
// recording.
func NewEngine(system nmcli.Client, fileStore store.Store, tracker history.Tracker, log logr.Logger) *Engine {
	if tracker == nil {
		tracker = history.NewNoopTracker()
	}
	return &Engine{
		system:  system,
		store:   fileStore,
		tracker: tracker,
		log:     log,
	}
}

// Diff returns the records in candidate whose SSID does not appear in
// base. The SSID is the identity of a network: two profiles with the same
// SSID are the same network even when their profile names differ. Each
// candidate record is checked against base alone, so a duplicated SSID
// within candidate comes back as often as it appears.
func Diff(base, candidate []profile.Record) []profile.Record {
	known := make(map[string]struct{}, len(base))
	for _, record := range base {
		known[record.SSID] = struct{}{}
	}

	missing := make([]profile.Record, 0)
	for _, record := range candidate {
		if _, ok := known[record.SSID]; ok {
			continue
		}
		missing = append(missing, record)
	}

	return missing
}

// Import applies store records missing from the system via nmcli. A
// malformed store file aborts the run before the system is touched;
// individual apply failures are collected and the remaining networks
// still get their chance.
func (e *Engine) Import(ctx context.Context, storePath string, opts Options) (*ImportResult, error) {
	storeRecords, err := e.store.Load(storePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load store file: %w", err)
	}

	systemResult, err := e.system.GetAllProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read system profiles: %w", err)
	}

	missing := Diff(systemResult.Records, storeRecords)

	result := &ImportResult{
		SystemProfiles: len(systemResult.Records),
		StoreProfiles:  len(storeRecords),
		Missing:        missing,
		Applied:        make([]profile.Record, 0, len(missing)),
		Skipped:        systemResult.Skipped,
		Errors:         make([]RecordError, 0),
		DryRun:         opts.DryRun,
	}

	e.log.Info("computed import set",
		"system", result.SystemProfiles,
		"store", result.StoreProfiles,
		"missing", len(missing),
		"dryRun", opts.DryRun)

	if opts.DryRun {
		return result, nil
	}

	for _, record := range missing {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := e.system.Apply(ctx, record); err != nil {
			e.log.Error(err, "failed to apply network", "ssid", record.SSID)
			result.Errors = append(result.Errors, RecordError{
				SSID:    record.SSID,
				Step:    "apply",
				Message: err.Error(),
				Err:     err,
			})
			continue
		}

		e.log.V(1).Info("applied network", "ssid", record.SSID, "name", record.Name)
		result.Applied = append(result.Applied, record)
	}

	return result, nil
}

// Save appends system records missing from the store file and writes it
// back. The store file is never rewritten when nothing is missing, so
// repeated runs leave it byte-identical.
func (e *Engine) Save(ctx context.Context, storePath string, opts Options) (*SaveResult, error) {
	storeRecords, err := e.store.Load(storePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load store file: %w", err)
	}

	systemResult, err := e.system.GetAllProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read system profiles: %w", err)
	}

	added := Diff(storeRecords, systemResult.Records)

	result := &SaveResult{
		SystemProfiles: len(systemResult.Records),
		StoreProfiles:  len(storeRecords),
		Added:          added,
		Skipped:        systemResult.Skipped,
		DryRun:         opts.DryRun,
	}

	e.log.Info("computed save set",
		"system", result.SystemProfiles,
		"store", result.StoreProfiles,
		"added", len(added),
		"dryRun", opts.DryRun)

	if opts.DryRun || len(added) == 0 {
		return result, nil
	}

	merged := append(storeRecords, added...)
	if err := e.store.Save(storePath, merged); err != nil {
		return result, fmt.Errorf("failed to write store file: %w", err)
	}

	if err := e.tracker.Record(storePath, added); err != nil {
		return result, fmt.Errorf("store file updated but history recording failed: %w", err)
	}

	return result, nil
}

// Show compares both sides without changing either
func (e *Engine) Show(ctx context.Context, storePath string) (*ShowResult, error) {
	storeRecords, err := e.store.Load(storePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load store file: %w", err)
	}

	systemResult, err := e.system.GetAllProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read system profiles: %w", err)
	}

	return &ShowResult{
		System:     systemResult.Records,
		Store:      storeRecords,
		OnlySystem: Diff(storeRecords, systemResult.Records),
		OnlyStore:  Diff(systemResult.Records, storeRecords),
		Skipped:    systemResult.Skipped,
	}, nil
}
