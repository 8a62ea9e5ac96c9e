package history

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/wmww/wifi-sync/pkg/profile"
)

// Default commit author used when none is configured.
const (
	DefaultAuthorName  = "wifi-sync"
	DefaultAuthorEmail = "wifi-sync@localhost"
)

// Tracker defines the interface for recording store file history
// This enables dependency injection and testing with mock implementations
type Tracker interface {
	// Initialize creates a new Git repository if one doesn't exist
	Initialize(repoPath string) error

	// IsRepository checks if the given path is a Git repository
	IsRepository(repoPath string) bool

	// Record commits the store file after new networks were appended
	Record(storePath string, added []profile.Record) error
}

// GitTracker implements Tracker using the go-git library. The repository
// lives in the store file's directory and is created on first use.
type GitTracker struct {
	// Author information for commits
	AuthorName  string
	AuthorEmail string
}

// NewGitTracker creates a new Git-backed history tracker
func NewGitTracker(authorName, authorEmail string) Tracker {
	if authorName == "" {
		authorName = DefaultAuthorName
	}
	if authorEmail == "" {
		authorEmail = DefaultAuthorEmail
	}
	return &GitTracker{
		AuthorName:  authorName,
		AuthorEmail: authorEmail,
	}
}

// Initialize creates a new Git repository if one doesn't exist
func (g *GitTracker) Initialize(repoPath string) error {
	if repoPath == "" {
		return &HistoryError{
			Type:    "invalid_input",
			Message: "repository path cannot be empty",
		}
	}

	// Already initialized, nothing to do
	if g.IsRepository(repoPath) {
		return nil
	}

	_, err := git.PlainInit(repoPath, false)
	if err != nil {
		return &HistoryError{
			Type:    "git_operation_error",
			Message: "failed to initialize Git repository",
			Err:     err,
			Context: repoPath,
		}
	}

	return nil
}

// IsRepository checks if the given path is a Git repository
func (g *GitTracker) IsRepository(repoPath string) bool {
	_, err := git.PlainOpen(repoPath)
	return err == nil
}

// Record commits the store file after new networks were appended. The
// repository is the store file's directory and is initialized on demand.
func (g *GitTracker) Record(storePath string, added []profile.Record) error {
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

	repoPath := filepath.Dir(storePath)
	if err := g.Initialize(repoPath); err != nil {
		return err
	}

	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return &HistoryError{
			Type:    "repository_not_found",
			Message: "failed to open Git repository",
			Err:     err,
			Context: repoPath,
		}
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return &HistoryError{
			Type:    "git_operation_error",
			Message: "failed to get working tree",
			Err:     err,
			Context: repoPath,
		}
	}

	// Git wants the store file path relative to the repository root
	relativePath, err := filepath.Rel(repoPath, storePath)
	if err != nil {
		return &HistoryError{
			Type:    "filesystem_error",
			Message: "failed to convert store path to relative path",
			Err:     err,
			Context: storePath,
		}
	}

	if _, err := worktree.Add(relativePath); err != nil {
		return &HistoryError{
			Type:    "git_operation_error",
			Message: fmt.Sprintf("failed to add file to staging area: %s", relativePath),
			Err:     err,
			Context: repoPath,
		}
	}

	commitMessage := formatCommitMessage(added)

	commit := &git.CommitOptions{
		Author: &object.Signature{
			Name:  g.AuthorName,
			Email: g.AuthorEmail,
			When:  time.Now(),
		},
	}

	if _, err := worktree.Commit(commitMessage, commit); err != nil {
		return &HistoryError{
			Type:    "git_operation_error",
			Message: "failed to create commit",
			Err:     err,
			Context: repoPath,
		}
	}

	return nil
}

// formatCommitMessage creates a commit message describing the sync run
// Format: sync: add 2 networks
//
// Body lists each added network with its credential type
func formatCommitMessage(added []profile.Record) string {
	subject := fmt.Sprintf("sync: add %d network", len(added))
	if len(added) != 1 {
		subject += "s"
	}

	var body strings.Builder
	body.WriteString("\n\nNetworks added:\n")
	for _, record := range added {
		body.WriteString(fmt.Sprintf("- %s (%s)\n", record.SSID, record.Credential))
	}

	return subject + body.String()
}

// NoopTracker implements Tracker without recording anything. It is the
// default when Git history is disabled.
type NoopTracker struct{}

// NewNoopTracker creates a tracker that silently accepts every call
func NewNoopTracker() Tracker {
	return &NoopTracker{}
}

func (n *NoopTracker) Initialize(repoPath string) error {
	return nil
}

func (n *NoopTracker) IsRepository(repoPath string) bool {
	return false
}

func (n *NoopTracker) Record(storePath string, added []profile.Record) error {
	return nil
}
