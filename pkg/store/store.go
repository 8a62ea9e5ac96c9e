package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wmww/wifi-sync/pkg/profile"
)

// Format represents the on-disk encoding of the profile store
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Store defines the interface for loading and saving profile records
// This enables dependency injection and testing with mock implementations
type Store interface {
	// Load reads every record from the store file. A missing file is an
	// empty store, not an error; any malformed or invalid content is.
	Load(path string) ([]profile.Record, error)
	// Save writes the complete record sequence to the store file,
	// replacing previous content atomically.
	Save(path string, records []profile.Record) error
}

// FileStore implements Store on a single JSON or YAML file
type FileStore struct {
	format Format
}

// NewFileStore creates a file-backed store in the given format
func NewFileStore(format Format) *FileStore {
	if format != FormatJSON && format != FormatYAML {
		format = FormatJSON // Default to JSON
	}
	return &FileStore{format: format}
}

// DetectFormat picks the store format from the file extension, falling
// back to the given default when the extension decides nothing.
func DetectFormat(path string, fallback Format) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	}
	if fallback != FormatJSON && fallback != FormatYAML {
		return FormatJSON
	}
	return fallback
}

// storedProfile is the persisted schema. The passphrase key appears only
// when the passphrase is known, and autoconnect only when false (absent
// means true), so files stay minimal and hand-editable.
type storedProfile struct {
	Name        string `json:"name" yaml:"name"`
	SSID        string `json:"ssid" yaml:"ssid"`
	PswdType    string `json:"pswd_type" yaml:"pswd_type"`
	Pswd        string `json:"pswd,omitempty" yaml:"pswd,omitempty"`
	Autoconnect *bool  `json:"autoconnect,omitempty" yaml:"autoconnect,omitempty"`
}

func toStored(record profile.Record) storedProfile {
	stored := storedProfile{
		Name:     record.Name,
		SSID:     record.SSID,
		PswdType: string(record.Credential),
		Pswd:     record.Passphrase,
	}
	if !record.Autoconnect {
		autoconnect := false
		stored.Autoconnect = &autoconnect
	}
	return stored
}

func (s storedProfile) toRecord() (profile.Record, error) {
	autoconnect := true
	if s.Autoconnect != nil {
		autoconnect = *s.Autoconnect
	}
	return profile.New(s.Name, s.SSID, profile.CredentialType(s.PswdType), s.Pswd, autoconnect)
}

// Load reads and validates the store file. Every entry must construct a
// valid record; one bad entry fails the whole load.
func (s *FileStore) Load(path string) ([]profile.Record, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return []profile.Record{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewIOError("failed to read store file", path, err)
	}

	var stored []storedProfile
	if s.format == FormatYAML {
		if err := yaml.Unmarshal(data, &stored); err != nil {
			return nil, NewDecodeError("failed to parse YAML store file", path, err)
		}
	} else {
		if err := json.Unmarshal(data, &stored); err != nil {
			return nil, NewDecodeError("failed to parse JSON store file", path, err)
		}
	}

	records := make([]profile.Record, 0, len(stored))
	for i, entry := range stored {
		record, err := entry.toRecord()
		if err != nil {
			return nil, NewInvalidRecordError(path, i, entry.SSID, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// Save writes records to the store file through a temp file and an atomic
// rename, so a failed write never leaves a truncated store behind. The
// file is created user-only: it carries plaintext passphrases.
func (s *FileStore) Save(path string, records []profile.Record) error {
	stored := make([]storedProfile, 0, len(records))
	for _, record := range records {
		stored = append(stored, toStored(record))
	}

	var data []byte
	var err error
	if s.format == FormatYAML {
		data, err = yaml.Marshal(stored)
	} else {
		data, err = json.MarshalIndent(stored, "", "  ")
	}
	if err != nil {
		return NewIOError("failed to encode store content", path, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return NewIOError("failed to create store directory", dir, err)
		}
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o600); err != nil {
		return NewIOError("failed to write temp store file", tempPath, err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return NewIOError("failed to replace store file", path, err)
	}
	return nil
}
