package expiry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"

	"github.com/rs/zerolog"

	"github.com/agentstation/dupap/pkg/constants"
	"github.com/agentstation/dupap/pkg/errors"
	"github.com/agentstation/dupap/pkg/logging"
)

// Store loads and saves the complete set of quarantine records.
type Store interface {
	Load() (Records, error)
	Save(records Records) error
}

// FileStore keeps records in a JSON array on disk.
type FileStore struct {
	path   string
	logger *zerolog.Logger
}

// NewFileStore returns a store backed by the JSON file at path.
func NewFileStore(path string, logger *zerolog.Logger) *FileStore {
	if logger == nil {
		logger = logging.Default()
	}
	return &FileStore{path: path, logger: logger}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the store as written. A missing file is an empty store.
// Repeated device ids are returned as found; see Records.Unique.
func (s *FileStore) Load() (Records, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Info().Str("path", s.path).Msg("Store file not found, starting empty")
			return Records{}, nil
		}
		return nil, errors.WrapIO("read", s.path, err)
	}

	var records Records
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.WrapParse("json", s.path, err)
	}

	if records == nil {
		records = Records{}
	}
	return records, nil
}

// Save replaces the file contents with records. The write goes through a
// temp file in the same directory and a rename.
func (s *FileStore) Save(records Records) error {
	if records == nil {
		records = Records{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return errors.WrapParse("json", s.path, err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".store_*.json")
	if err != nil {
		return errors.WrapIO("create", "temp file", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return errors.WrapIO("write", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("close", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, constants.FilePermissions); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("chmod", tmpPath, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("rename", s.path, err)
	}

	s.logger.Debug().Str("path", s.path).Int("records", len(records)).Msg("Store saved")
	return nil
}

// MemoryStore is an in-memory Store. Saves counts the number of Save calls.
type MemoryStore struct {
	Records Records
	Saves   int
}

// Load returns a copy of the held records.
func (m *MemoryStore) Load() (Records, error) {
	return slices.Clone(m.Records), nil
}

// Save replaces the held records.
func (m *MemoryStore) Save(records Records) error {
	m.Records = slices.Clone(records)
	m.Saves++
	return nil
}

var (
	_ Store = (*FileStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
