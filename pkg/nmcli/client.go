package nmcli

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"github.com/wmww/wifi-sync/pkg/profile"
)

// DefaultBinPath is where distributions install nmcli.
const DefaultBinPath = "/usr/bin/nmcli"

// DefaultTimeout bounds a single nmcli invocation.
const DefaultTimeout = 30 * time.Second

// Client defines the interface for NetworkManager profile operations
// This enables dependency injection and testing with mock implementations
type Client interface {
	// ListProfileNames returns the names of every saved connection profile,
	// Wi-Fi or not.
	ListProfileNames(ctx context.Context) ([]string, error)

	// FetchAndParse retrieves the named profiles in one batched query and
	// extracts a record from each. Per-profile extraction failures land in
	// the result's Skipped list; batch-level failures (count mismatch, tool
	// failure) are returned as an error.
	FetchAndParse(ctx context.Context, names []string) (*FetchResult, error)

	// GetAllProfiles lists and fetches every profile on the system, falling
	// back to per-name fetches when the batched query fails structurally.
	GetAllProfiles(ctx context.Context) (*FetchResult, error)

	// Apply re-creates a profile on the system from scratch (connection
	// add, never modify).
	Apply(ctx context.Context, record profile.Record) error
}

// FetchResult carries the successfully parsed records plus the reason each
// skipped profile was left out.
type FetchResult struct {
	Records []profile.Record
	Skipped []Skip
}

// Skip names one profile a fetch could not turn into a record.
type Skip struct {
	Name   string
	Reason error
}

// NMCLIClient implements Client by driving the nmcli binary.
type NMCLIClient struct {
	runner Runner
	log    logr.Logger
}

// NewClient resolves the nmcli binary and returns a client bound to it.
// Relative paths are resolved through PATH. A missing binary fails with
// tool_unavailable right away rather than on first use.
func NewClient(binPath string, timeout time.Duration, log logr.Logger) (*NMCLIClient, error) {
	if binPath == "" {
		binPath = DefaultBinPath
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	resolved := binPath
	if !filepath.IsAbs(binPath) {
		path, err := exec.LookPath(binPath)
		if err != nil {
			return nil, NewToolUnavailableError(binPath, err)
		}
		resolved = path
	}
	if _, err := os.Stat(resolved); err != nil {
		return nil, NewToolUnavailableError(resolved, err)
	}

	return &NMCLIClient{
		runner: newExecRunner(resolved, timeout, log),
		log:    log,
	}, nil
}

// NewClientWithRunner wires a custom runner; tests use it with mocks.
func NewClientWithRunner(runner Runner, log logr.Logger) *NMCLIClient {
	return &NMCLIClient{runner: runner, log: log}
}

// ListProfileNames returns the names of all saved connection profiles
// using terse output, which is stable across nmcli versions and locales.
func (c *NMCLIClient) ListProfileNames(ctx context.Context) ([]string, error) {
	out, err := c.runner.Run(ctx, "-t", "-f", "NAME", "connection", "show")
	if err != nil {
		return nil, err
	}

	var names []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		names = append(names, unescapeTerse(line))
	}
	c.log.V(1).Info("listed connection profiles", "count", len(names))
	return names, nil
}

// FetchAndParse retrieves the named profiles with one batched invocation.
func (c *NMCLIClient) FetchAndParse(ctx context.Context, names []string) (*FetchResult, error) {
	result := &FetchResult{}
	if len(names) == 0 {
		// nmcli with no names would dump every profile on the system
		return result, nil
	}

	args := append([]string{"--show-secrets", "connection", "show"}, names...)
	out, err := c.runner.Run(ctx, args...)
	if err != nil {
		return nil, err
	}

	blocks := splitBlocks(string(out))
	if len(blocks) != len(names) {
		return nil, NewCountMismatchError(args, len(names), len(blocks))
	}

	for i, name := range names {
		record, err := ExtractProfile(name, blocks[i])
		if err != nil {
			c.log.Info("skipping profile", "profile", name, "reason", err.Error())
			result.Skipped = append(result.Skipped, Skip{Name: name, Reason: err})
			continue
		}
		result.Records = append(result.Records, record)
	}
	return result, nil
}

// GetAllProfiles retrieves every profile on the system. The batched fetch
// is tried first; when it fails structurally the profiles are fetched one
// by one, and even a per-name structural failure only skips that profile.
func (c *NMCLIClient) GetAllProfiles(ctx context.Context) (*FetchResult, error) {
	names, err := c.ListProfileNames(ctx)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return &FetchResult{}, nil
	}

	result, err := c.FetchAndParse(ctx, names)
	if err == nil {
		return result, nil
	}
	if IsToolUnavailableError(err) {
		// a missing binary will not get better one name at a time
		return nil, err
	}

	c.log.Info("batched fetch failed, retrying profiles individually",
		"profiles", len(names), "reason", err.Error())

	result = &FetchResult{}
	for _, name := range names {
		single, err := c.FetchAndParse(ctx, []string{name})
		if err != nil {
			c.log.Info("skipping profile", "profile", name, "reason", err.Error())
			result.Skipped = append(result.Skipped, Skip{Name: name, Reason: err})
			continue
		}
		result.Records = append(result.Records, single.Records...)
		result.Skipped = append(result.Skipped, single.Skipped...)
	}
	return result, nil
}

// Apply re-creates one profile on the system. The record is re-validated
// first so hand-assembled records hit the same credential rules as
// everything else.
func (c *NMCLIClient) Apply(ctx context.Context, record profile.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	autoconnect := "yes"
	if !record.Autoconnect {
		autoconnect = "no"
	}
	args := []string{
		"connection", "add",
		"type", "wifi",
		"con-name", record.Name,
		"ifname", "*",
		"ssid", record.SSID,
		"autoconnect", autoconnect,
	}
	if record.Credential == profile.CredentialWPA {
		args = append(args, "wifi-sec.key-mgmt", keyMgmtWPA)
		if record.HasPassphrase() {
			args = append(args, "wifi-sec.psk", record.Passphrase)
		}
	}

	if _, err := c.runner.Run(ctx, args...); err != nil {
		return err
	}
	c.log.Info("created connection profile", "profile", record.Name, "ssid", record.SSID)
	return nil
}

// blankLinePattern separates per-profile blocks in batched nmcli output.
var blankLinePattern = regexp.MustCompile(`\n[ \t]*\n`)

// splitBlocks divides batched dump output into per-profile chunks on
// blank-line boundaries, dropping whitespace-only chunks.
func splitBlocks(out string) []string {
	var blocks []string
	for _, block := range blankLinePattern.Split(out, -1) {
		if strings.TrimSpace(block) == "" {
			continue
		}
		blocks = append(blocks, block)
	}
	return blocks
}

// unescapeTerse reverses nmcli's terse-mode escaping of ':' and '\'.
func unescapeTerse(s string) string {
	var b strings.Builder
	escaped := false
	for _, r := range s {
		if escaped {
			b.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(r)
	}
	if escaped {
		b.WriteRune('\\')
	}
	return b.String()
}
