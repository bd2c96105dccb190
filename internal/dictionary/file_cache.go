package dictionary

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// CacheVersion tags on-disk records so a schema or page-format change
// invalidates stale entries by changing every cache key. Bumped by operators,
// never automatically.
const CacheVersion = "v1"

// FileCache is a content-addressed store of fully parsed entry lists, one JSON
// file per word. Cache failures never fail a lookup: a read error is a miss, a
// write error is a warning.
type FileCache struct {
	rootDir string
	version string
}

func NewFileCache(cacheDirectory string) *FileCache {
	return &FileCache{
		rootDir: cacheDirectory,
		version: CacheVersion,
	}
}

// KeyFor hashes the normalized word together with the cache version.
func (cache *FileCache) KeyFor(word string) string {
	sum := sha256.Sum256([]byte(word + "_" + cache.version))
	return hex.EncodeToString(sum[:])
}

func (cache *FileCache) filePath(word string) string {
	return filepath.Join(cache.rootDir, cache.KeyFor(word)+".json")
}

// Get returns the cached entries for a word, or reports a miss. IO and decode
// errors degrade to a miss so a corrupted record only costs a refetch.
func (cache *FileCache) Get(word string) ([]Entry, bool) {
	path := cache.filePath(word)
	contents, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Default().Warn("failed to read cached entries, treating as miss",
				"word", word,
				"path", path,
				"error", err)
		}
		return nil, false
	}

	var entries []Entry
	if err := json.Unmarshal(contents, &entries); err != nil {
		slog.Default().Warn("failed to decode cached entries, treating as miss",
			"word", word,
			"path", path,
			"error", err)
		return nil, false
	}
	return entries, true
}

// Put writes the full entry list atomically: serialize in memory, write a
// temporary file, then rename. An interrupted run never leaves a partial
// record behind. Failures are logged and swallowed since losing a cache write
// only costs performance.
func (cache *FileCache) Put(word string, entries []Entry) {
	if err := cache.put(word, entries); err != nil {
		slog.Default().Warn("failed to cache entries",
			"word", word,
			"error", err)
	}
}

func (cache *FileCache) put(word string, entries []Entry) error {
	contents, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("json.Marshal > %w", err)
	}

	if err := os.MkdirAll(cache.rootDir, 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll > %w", err)
	}

	path := cache.filePath(word)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, contents, 0o644); err != nil {
		return fmt.Errorf("os.WriteFile > %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("os.Rename > %w", err)
	}
	return nil
}
