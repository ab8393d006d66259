package thumbnail

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/adrg/xdg"
)

// DefaultCacheAge is how long an unread thumbnail survives on disk.
const DefaultCacheAge = 30 * 24 * time.Hour

// Cache keeps resized PNG thumbnails on disk, fanned out by the first byte
// of the entry hash. Reading an entry refreshes its age. A nil *Cache
// caches nothing.
type Cache struct {
	dir    string
	maxAge time.Duration
	prune  sync.Once
}

// NewCache opens the cache rooted at dir, defaulting to
// $XDG_CACHE_HOME/hifi/thumbnails, and starts pruning stale entries in the
// background.
func NewCache(dir string) (*Cache, error) {
	if dir == "" {
		dir = filepath.Join(xdg.CacheHome, "hifi", "thumbnails")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("thumbnail cache: %w", err)
	}
	c := &Cache{dir: dir, maxAge: DefaultCacheAge}
	go c.Prune()
	return c, nil
}

func entryName(url string, width, height uint) string {
	h := sha256.New()
	h.Write([]byte(url))
	h.Write([]byte{0})
	h.Write(strconv.AppendUint(nil, uint64(width), 10))
	h.Write([]byte{'x'})
	h.Write(strconv.AppendUint(nil, uint64(height), 10))
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Cache) entryPath(url string, width, height uint) string {
	name := entryName(url, width, height)
	return filepath.Join(c.dir, name[:2], name+".png")
}

// Get returns the cached thumbnail, or nil on a miss.
func (c *Cache) Get(url string, width, height uint) []byte {
	if c == nil {
		return nil
	}
	p := c.entryPath(url, width, height)
	data, err := os.ReadFile(p)
	if err != nil {
		return nil
	}
	now := time.Now()
	_ = os.Chtimes(p, now, now) //nolint:errcheck // age refresh only
	return data
}

// Put writes a thumbnail through a temp file so readers never see a
// partial entry.
func (c *Cache) Put(url string, width, height uint, data []byte) error {
	if c == nil {
		return nil
	}
	p := c.entryPath(url, width, height)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(p), ".put-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), p)
}

// Prune deletes entries not read or written within the cache age. It runs
// once per Cache.
func (c *Cache) Prune() {
	if c == nil {
		return
	}
	c.prune.Do(func() {
		cutoff := time.Now().Add(-c.maxAge)
		_ = filepath.WalkDir(c.dir, func(p string, d fs.DirEntry, err error) error { //nolint:errcheck // best-effort
			if err != nil || d.IsDir() {
				return nil
			}
			if info, err := d.Info(); err == nil && info.ModTime().Before(cutoff) {
				_ = os.Remove(p) //nolint:errcheck // best-effort
			}
			return nil
		})
	})
}
