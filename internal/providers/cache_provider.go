package providers

import (
	"errors"
	"potatoguard/internal/structures"
	"sync"
	"time"
	"unsafe"

	"github.com/coocood/freecache"
)

// CacheProviderInterface is the host key-value store behind the session
// layer: user identity, the one-shot result slot, preview blobs and the
// hydrated history cache all live here.
type CacheProviderInterface interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
	Del(key string)
}

type overflowEntry struct {
	data    []byte
	expires time.Time
}

// CacheProvider keeps entries in freecache and spills anything the ring
// buffer rejects as oversized (an entry above 1/1024 of the cache size)
// into a plain expiring map. Preview blobs and base64-hydrated history
// routinely cross that line, and this store is authoritative for them:
// a dropped write would 404 the preview route and lose replayable history.
type CacheProvider struct {
	cache *freecache.Cache
	ttl   int

	mu       sync.Mutex
	overflow map[string]overflowEntry
}

func NewCacheProvider(conf *structures.Config, logger Logger) CacheProviderInterface {
	sizeBytes := conf.Session.CacheSize * 1024 * 1024
	ttl := max(int(conf.Session.TTL.Seconds()), 1)

	logger.Infof(TypeApp, "Session cache initialized: %dMB, TTL=%ds", conf.Session.CacheSize, ttl)

	return &CacheProvider{
		cache:    freecache.NewCache(sizeBytes),
		ttl:      ttl,
		overflow: make(map[string]overflowEntry),
	}
}

// unsafeStringToBytes converts string to []byte without allocation.
// Safe when the result is only read (not modified), which is the case
// for freecache: it copies keys internally.
func unsafeStringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

func (c *CacheProvider) Get(key string) ([]byte, bool) {
	val, err := c.cache.Get(unsafeStringToBytes(key))
	if err == nil {
		return val, true
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.overflow[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expires) {
		delete(c.overflow, key)
		return nil, false
	}
	return entry.data, true
}

func (c *CacheProvider) Set(key string, value []byte) error {
	err := c.cache.Set(unsafeStringToBytes(key), value, c.ttl)
	if err == nil {
		c.mu.Lock()
		delete(c.overflow, key)
		c.mu.Unlock()
		return nil
	}
	if !errors.Is(err, freecache.ErrLargeEntry) {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, entry := range c.overflow {
		if now.After(entry.expires) {
			delete(c.overflow, k)
		}
	}
	c.overflow[key] = overflowEntry{
		data:    append([]byte(nil), value...),
		expires: now.Add(time.Duration(c.ttl) * time.Second),
	}
	return nil
}

func (c *CacheProvider) Del(key string) {
	c.cache.Del(unsafeStringToBytes(key))
	c.mu.Lock()
	delete(c.overflow, key)
	c.mu.Unlock()
}
