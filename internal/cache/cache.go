package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/xoseperez/platformio/internal/fsutil"
	"github.com/xoseperez/platformio/internal/logging"
)

// IndexFileName is the flat expiry index at the cache root.
const IndexFileName = "db.data"

// ErrKeyTooShort reports a key short enough to collide with the two-character
// shard directory names. Keys from KeyFromArgs are always long enough; a
// short key is a caller bug.
var ErrKeyTooShort = errors.New("cache key must be longer than three characters")

// Cache is a directory of content-addressed blobs plus the expiry index.
// It has no locking; concurrent writers to the same key race and the last
// write wins, which is acceptable for a local download/API cache.
type Cache struct {
	dir       string
	indexPath string
}

// Open returns a Cache rooted at dir (empty means the default cache root)
// and runs the lazy expiry sweep once. Structure on disk is created lazily
// by Set, so opening a cache that was never written to touches nothing.
func Open(ctx context.Context, dir string) (*Cache, error) {
	if dir == "" {
		var err error
		dir, err = fsutil.CacheDir()
		if err != nil {
			return nil, err
		}
	}

	c := &Cache{
		dir:       dir,
		indexPath: filepath.Join(dir, IndexFileName),
	}
	if err := c.sweep(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Dir returns the cache root directory.
func (c *Cache) Dir() string {
	return c.dir
}

// BlobPath returns the sharded on-disk path for key:
// <root>/<last two key chars>/<key>.
func (c *Cache) BlobPath(key string) (string, error) {
	if len(key) <= 3 {
		return "", fmt.Errorf("%w: %q", ErrKeyTooShort, key)
	}
	return filepath.Join(c.dir, key[len(key)-2:], key), nil
}

// Get reads the blob for key. A missing blob yields (nil, nil). Expiry is
// not checked here: an entry the sweep already removed is simply absent,
// and a logically expired entry not yet swept is still returned.
func (c *Cache) Get(key string) (*Value, error) {
	path, err := c.BlobPath(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading cache blob: %w", err)
	}
	return newValue(data), nil
}

// Set writes data under key with a validity like "2s", "10m", "1h" or
// "7d". Empty data is a no-op. Maps, slices and raw JSON are stored
// JSON-encoded; everything else is stored as its string form.
func (c *Cache) Set(key string, data any, valid string) error {
	payload, err := encodePayload(data)
	if err != nil {
		return err
	}
	if len(payload) == 0 {
		return nil
	}

	ttlSeconds, err := parseValid(valid)
	if err != nil {
		return err
	}

	path, err := c.BlobPath(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating shard directory: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o600); err != nil {
		return fmt.Errorf("writing cache blob: %w", err)
	}

	expiry := time.Now().Unix() + ttlSeconds
	return c.updateIndex(path, expiry)
}

// Clean removes the whole cache tree. Later operations recreate structure
// lazily.
func (c *Cache) Clean() error {
	if err := os.RemoveAll(c.dir); err != nil {
		return fmt.Errorf("removing cache directory: %w", err)
	}
	return nil
}

// updateIndex rewrites the index as the surviving entries plus the new one.
// Any prior line for the same blob path is replaced rather than duplicated.
func (c *Cache) updateIndex(blobPath string, expiry int64) error {
	lines := make([]string, 0, 8)
	for _, entry := range c.readIndex() {
		if entry.path == blobPath {
			continue
		}
		lines = append(lines, entry.line)
	}
	lines = append(lines, strconv.FormatInt(expiry, 10)+"="+blobPath)
	return c.writeIndex(lines)
}

// sweep drops expired index entries, removing their blobs and any shard
// directory that empties out. The index is rewritten only when something
// was dropped.
func (c *Cache) sweep(ctx context.Context) error {
	entries := c.readIndex()
	if len(entries) == 0 {
		return nil
	}

	now := time.Now().Unix()
	kept := make([]string, 0, len(entries))
	dropped := 0

	for _, entry := range entries {
		if now < entry.expiry {
			kept = append(kept, entry.line)
			continue
		}
		dropped++
		if err := removeBlob(entry.path); err != nil {
			return err
		}
	}

	if dropped == 0 {
		return nil
	}

	logger := logging.FromContext(ctx)
	logger.Debug().
		Str("component", "cache").
		Int("expired", dropped).
		Msg("swept expired cache entries")

	return c.writeIndex(kept)
}

// indexEntry is one parsed db.data line.
type indexEntry struct {
	line   string
	expiry int64
	path   string
}

// readIndex parses db.data, skipping malformed lines. A missing index means
// an empty cache.
func (c *Cache) readIndex() []indexEntry {
	data, err := os.ReadFile(c.indexPath)
	if err != nil {
		return nil
	}

	var entries []indexEntry
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		expiryStr, path, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		expiry, err := strconv.ParseInt(expiryStr, 10, 64)
		if err != nil {
			continue
		}
		entries = append(entries, indexEntry{line: line, expiry: expiry, path: path})
	}
	return entries
}

func (c *Cache) writeIndex(lines []string) error {
	if err := os.MkdirAll(c.dir, 0o750); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(c.indexPath, []byte(content), 0o600); err != nil {
		return fmt.Errorf("writing cache index: %w", err)
	}
	return nil
}

// removeBlob deletes an expired blob and its shard directory when the shard
// empties. Existence checks guard against a concurrent sweep having already
// deleted either.
func removeBlob(path string) error {
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("removing expired blob: %w", err)
	}

	shard := filepath.Dir(path)
	remaining, err := os.ReadDir(shard)
	if err == nil && len(remaining) == 0 {
		if err := os.Remove(shard); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing empty shard directory: %w", err)
		}
	}
	return nil
}

// encodePayload converts data to its stored byte form. Maps, slices and
// raw JSON become JSON; nil and empty values collapse to nothing so Set
// can no-op; anything else is stringified.
func encodePayload(data any) ([]byte, error) {
	switch v := data.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case json.RawMessage:
		return v, nil
	case string:
		return []byte(v), nil
	}

	switch reflect.ValueOf(data).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct, reflect.Pointer:
		encoded, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("encoding cache payload: %w", err)
		}
		return encoded, nil
	default:
		return []byte(fmt.Sprint(data)), nil
	}
}
