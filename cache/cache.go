// Package cache implements a gzip+JSON result cache keyed by source
// content hash, letting cmd/fsl's canonical command skip re-printing
// files it has already rendered with the same options and binary (the
// files are still parsed).
// Adapted from the teacher's per-file parse cache
// (parse/caching.go's ParsingCache), generalized from a typed
// ParseResult cache to an opaque []byte payload cache since fsltool's
// CLI caches final canonical output rather than an intermediate AST.
package cache

import (
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

// diskFormat is the on-disk (optionally gzipped) JSON representation.
type diskFormat struct {
	BinaryChecksum string            `json:"binary_checksum"`
	Entries        map[string]string `json:"entries"` // content hash -> base64-free JSON payload, stored as raw string
}

// Store is a content-addressed cache of arbitrary byte payloads,
// invalidated whole when the running binary's checksum changes.
type Store struct {
	path     string
	checksum string
	log      hclog.Logger

	mu      sync.RWMutex
	entries map[string]string
	dirty   bool
}

// Key returns the cache key for a source byte slice: its hex SHA-256.
func Key(src []byte) string {
	sum := sha256.Sum256(src)
	return hex.EncodeToString(sum[:])
}

// Load opens (or initializes) a Store backed by path. A ".gz" extension
// transparently gzip-compresses the file. A missing file, a corrupt
// file, or a checksum mismatch against the running binary all result in
// an empty, freshly initialized Store rather than an error: the cache is
// an optimization, never a correctness requirement.
func Load(path string, log hclog.Logger) (*Store, error) {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	checksum, err := binaryChecksum()
	if err != nil {
		return nil, err
	}
	s := &Store{path: path, checksum: checksum, log: log, entries: make(map[string]string)}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug("cache file does not exist, starting empty", "path", path)
			return s, nil
		}
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if filepath.Ext(path) == ".gz" {
		gz, err := gzip.NewReader(f)
		if err != nil {
			log.Warn("cache file is not valid gzip, discarding", "path", path, "error", err)
			return s, nil
		}
		defer gz.Close()
		r = gz
	}

	var disk diskFormat
	if err := json.NewDecoder(r).Decode(&disk); err != nil {
		log.Warn("cache file is not valid JSON, discarding", "path", path, "error", err)
		return s, nil
	}
	if disk.BinaryChecksum != checksum {
		log.Info("binary checksum changed, discarding cache", "path", path)
		return s, nil
	}
	s.entries = disk.Entries
	return s, nil
}

// Get returns the cached payload for key, if present.
func (s *Store) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	return []byte(v), true
}

// Put records payload under key.
func (s *Store) Put(key string, payload []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = string(payload)
	s.dirty = true
}

// Save persists the store to disk if anything changed, writing through
// a uuid-suffixed temp file in the same directory and renaming it into
// place so a crash mid-write never corrupts the existing cache.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.dirty {
		return nil
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmpPath := filepath.Join(dir, "."+filepath.Base(s.path)+"."+uuid.NewString()+".tmp")

	f, err := os.Create(tmpPath)
	if err != nil {
		return err
	}
	defer os.Remove(tmpPath)

	var w io.Writer = f
	var gz *gzip.Writer
	if filepath.Ext(s.path) == ".gz" {
		gz = gzip.NewWriter(f)
		w = gz
	}

	enc := json.NewEncoder(w)
	disk := diskFormat{BinaryChecksum: s.checksum, Entries: s.entries}
	if err := enc.Encode(disk); err != nil {
		f.Close()
		return err
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			f.Close()
			return err
		}
	}
	if err := f.Close(); err != nil {
		return err
	}
	s.log.Debug("wrote cache file", "path", s.path, "entries", len(s.entries))
	return os.Rename(tmpPath, s.path)
}

var cachedChecksum string

func binaryChecksum() (string, error) {
	if cachedChecksum != "" {
		return cachedChecksum, nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	data, err := os.ReadFile(exe)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	cachedChecksum = hex.EncodeToString(sum[:])
	return cachedChecksum, nil
}
