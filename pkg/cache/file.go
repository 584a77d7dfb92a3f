package cache

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"time"
)

// FileCache stores rendered documents on disk for single-machine use.
//
// Cached values are SVG, PDF, or PNG bytes, so each entry is written as
// raw document data behind a fixed-size header instead of a JSON
// envelope, which would base64-inflate the binary formats. The header
// is the expiry timestamp in big-endian unix nanoseconds; zero means
// the entry never expires.
type FileCache struct {
	dir string
}

// entryHeaderSize is the fixed byte length of the expiry header.
const entryHeaderSize = 8

// NewFileCache creates a file-based cache in the given directory.
// The directory will be created if it doesn't exist.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// Get retrieves a document from the cache.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if len(raw) < entryHeaderSize {
		// Truncated entry - treat as miss
		_ = os.Remove(path)
		return nil, false, nil
	}

	expiry := int64(binary.BigEndian.Uint64(raw[:entryHeaderSize]))
	if expiry != 0 && time.Now().UnixNano() > expiry {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return raw[entryHeaderSize:], true, nil
}

// Set stores a document in the cache.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := make([]byte, entryHeaderSize+len(data))
	if ttl > 0 {
		binary.BigEndian.PutUint64(entry[:entryHeaderSize], uint64(time.Now().Add(ttl).UnixNano()))
	}
	copy(entry[entryHeaderSize:], data)

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, entry, 0o644)
}

// Delete removes a document from the cache.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for file cache.
func (c *FileCache) Close() error {
	return nil
}

// path converts a cache key to a file path.
// Uses a hash-based directory structure to avoid too many files in one dir.
func (c *FileCache) path(key string) string {
	hash := Hash([]byte(key))
	return filepath.Join(c.dir, hash[:2], hash[2:]+".doc")
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
