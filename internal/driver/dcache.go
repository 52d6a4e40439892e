package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"fern/internal/diag"
	"fern/internal/source"
	"fern/internal/tree"
	"fern/internal/version"
)

// Current schema version - increment when CachedResult format changes
const diskCacheSchemaVersion uint16 = 2

// Digest identifies cached content.
type Digest [32]byte

// DiskCache хранит результаты check по хэшу содержимого файла на диске.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedDiagnostic is a diagnostic without its FileID; spans are byte offsets in
// the cached file.
type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
	Notes    []CachedNote
}

type CachedNote struct {
	Start uint32
	End   uint32
	Msg   string
}

// CachedResult is the on-disk form of a CheckResult.
type CachedResult struct {
	Schema      uint16
	Tokens      int
	Rules       int
	Terminals   int
	ErrorNodes  int
	Missing     int
	Depth       int
	Dropped     int
	Diagnostics []CachedDiagnostic
}

// OpenDiskCache opens (creating if needed) the cache under $XDG_CACHE_HOME/<app>.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// CacheKey: H(version || content hash || limit). Результат с другим лимитом
// диагностик хранится отдельно.
func CacheKey(file *source.File, maxDiagnostics int) Digest {
	h := sha256.New()
	_, _ = h.Write([]byte(version.Version))
	_, _ = h.Write(file.Hash[:])
	var limit [8]byte
	binary.LittleEndian.PutUint64(limit[:], uint64(max(maxDiagnostics, 0)))
	_, _ = h.Write(limit[:])
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func (c *DiskCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "check", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *CachedResult) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		// после успешного Rename временного файла уже нет
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
func (c *DiskCache) Get(key Digest, out *CachedResult) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "check"))
}

func toCached(r *CheckResult) *CachedResult {
	payload := &CachedResult{
		Schema:     diskCacheSchemaVersion,
		Tokens:     r.Tokens,
		Rules:      r.Stats.Rules,
		Terminals:  r.Stats.Terminals,
		ErrorNodes: r.Stats.Errors,
		Missing:    r.Stats.Missing,
		Depth:      r.Stats.Depth,
		Dropped:    r.Bag.Dropped(),
	}
	for _, d := range r.Bag.Items() {
		cd := CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		payload.Diagnostics = append(payload.Diagnostics, cd)
	}
	return payload
}

func fromCached(payload *CachedResult, file *source.File, maxDiagnostics int) (CheckResult, bool) {
	bag := diag.NewBag(maxDiagnostics)
	for _, d := range payload.Diagnostics {
		if !diag.Severity(d.Severity).Valid() {
			return CheckResult{}, false
		}
		item := diag.New(diag.Severity(d.Severity), diag.Code(d.Code),
			source.Span{File: file.ID, Start: d.Start, End: d.End}, d.Message)
		for _, n := range d.Notes {
			item = item.WithNote(source.Span{File: file.ID, Start: n.Start, End: n.End}, n.Msg)
		}
		bag.Add(item)
	}
	bag.AddDropped(payload.Dropped)
	return CheckResult{
		FileID: file.ID,
		Bag:    bag,
		Tokens: payload.Tokens,
		Stats: tree.Stats{
			Rules:     payload.Rules,
			Terminals: payload.Terminals,
			Errors:    payload.ErrorNodes,
			Missing:   payload.Missing,
			Depth:     payload.Depth,
		},
		Cached: true,
	}, true
}

// loadCached — ошибки чтения кэша трактуются как промах.
func loadCached(c *DiskCache, key Digest, file *source.File, maxDiagnostics int) (CheckResult, bool) {
	if c == nil {
		return CheckResult{}, false
	}
	var payload CachedResult
	ok, err := c.Get(key, &payload)
	if err != nil || !ok {
		return CheckResult{}, false
	}
	return fromCached(&payload, file, maxDiagnostics)
}

// storeCached — кэш best-effort, ошибка записи не ломает check.
func storeCached(c *DiskCache, key Digest, r *CheckResult) {
	if c == nil {
		return
	}
	_ = c.Put(key, toCached(r))
}
