package tokenstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

const storeFileName = "credentials.json"

// FileStore keeps the credential map as a JSON document on disk, so a
// session survives console restarts. Every read goes back to the file; the
// file itself is the only cache.
type FileStore struct {
	mu   sync.Mutex
	path string
	log  zerolog.Logger
}

// NewFileStore creates a file-backed store inside dataFolder. A missing
// folder is created; if that fails the store still works, it just reports
// every key as absent until the folder becomes writable.
func NewFileStore(dataFolder string, log zerolog.Logger) *FileStore {
	if err := os.MkdirAll(dataFolder, 0o700); err != nil {
		log.Warn().Err(err).Str("folder", dataFolder).Msg("tokenstore: cannot create data folder")
	}
	return &FileStore{
		path: filepath.Join(dataFolder, storeFileName),
		log:  log,
	}
}

func (s *FileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.read()
	value, ok := entries[key]
	return value, ok
}

func (s *FileStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.read()
	entries[key] = value
	s.write(entries)
}

func (s *FileStore) Delete(keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.read()
	for _, key := range keys {
		delete(entries, key)
	}
	s.write(entries)
}

func (s *FileStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		s.log.Warn().Err(err).Msg("tokenstore: clear failed")
	}
}

// read loads the credential map, treating any failure as an empty store.
func (s *FileStore) read() map[string]string {
	entries := map[string]string{}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn().Err(err).Msg("tokenstore: read failed")
		}
		return entries
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		s.log.Warn().Err(err).Msg("tokenstore: corrupt credential file")
		return map[string]string{}
	}
	return entries
}

// write persists the map atomically via a temp file and rename.
func (s *FileStore) write(entries map[string]string) {
	data, err := json.Marshal(entries)
	if err != nil {
		s.log.Warn().Err(err).Msg("tokenstore: marshal failed")
		return
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		s.log.Warn().Err(err).Msg("tokenstore: write failed")
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		s.log.Warn().Err(err).Msg("tokenstore: rename failed")
	}
}
