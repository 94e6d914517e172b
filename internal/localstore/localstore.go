// Package localstore is the local persistence adapter: one JSON file per key
// inside a data directory. Writes are best-effort and never fail the caller,
// mirroring how the dashboard treats browser storage.
package localstore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Keys used by the application
const (
	KeyData        = "khs_data"
	KeyGitHubToken = "github_token"
)

// Store reads and writes JSON blobs under a directory
type Store struct {
	dir    string
	logger *logrus.Logger
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string, logger *logrus.Logger) *Store {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.WithError(err).WithField("dir", dir).Error("localstore: create data dir")
	}
	return &Store{dir: dir, logger: logger}
}

// Save serializes value under key. On any failure it logs and returns,
// never surfacing the error.
func (s *Store) Save(key string, value interface{}) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		s.logger.WithError(err).WithField("key", key).Error("localstore: marshal")
		return
	}
	if err := os.WriteFile(s.path(key), data, 0o644); err != nil {
		s.logger.WithError(err).WithField("key", key).Error("localstore: write")
	}
}

// Load deserializes key into out. Returns false if the key is missing or the
// stored blob does not parse; out is left untouched in that case so callers
// keep their default.
func (s *Store) Load(key string, out interface{}) bool {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.logger.WithError(err).WithField("key", key).Error("localstore: parse")
		return false
	}
	return true
}

// Delete removes the blob stored under key.
func (s *Store) Delete(key string) {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		s.logger.WithError(err).WithField("key", key).Error("localstore: delete")
	}
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
