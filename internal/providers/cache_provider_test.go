package providers

import (
	"bytes"
	"potatoguard/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Errorf(_ TypeEnum, _ string, _ ...interface{}) {}
func (nopLogger) Warnf(_ TypeEnum, _ string, _ ...interface{})  {}
func (nopLogger) Debugf(_ TypeEnum, _ string, _ ...interface{}) {}
func (nopLogger) Infof(_ TypeEnum, _ string, _ ...interface{})  {}
func (nopLogger) Fatalf(_ TypeEnum, _ string, _ ...interface{}) {}
func (nopLogger) Close()                                        {}

func cacheConfig() *structures.Config {
	return &structures.Config{
		Session: structures.SessionConfig{
			TTL:       time.Hour,
			CacheSize: 1,
		},
	}
}

func TestCacheProvider_SetGet(t *testing.T) {
	c := NewCacheProvider(cacheConfig(), nopLogger{})

	c.Set("result:sid", []byte(`{"image":""}`))
	val, ok := c.Get("result:sid")
	require.True(t, ok)
	assert.Equal(t, `{"image":""}`, string(val))
}

func TestCacheProvider_GetMissing(t *testing.T) {
	c := NewCacheProvider(cacheConfig(), nopLogger{})

	_, ok := c.Get("nope")
	assert.False(t, ok)
}

func TestCacheProvider_Del(t *testing.T) {
	c := NewCacheProvider(cacheConfig(), nopLogger{})

	c.Set("result:sid", []byte("x"))
	c.Del("result:sid")

	_, ok := c.Get("result:sid")
	assert.False(t, ok)
}

// The shipped cacheSize is 64MB, and freecache alone rejects any entry
// above 1/1024 of that. A full-size upload stashed as a preview must
// still come back.
func TestCacheProvider_LargeEntrySurvives(t *testing.T) {
	conf := cacheConfig()
	conf.Session.CacheSize = 64
	c := NewCacheProvider(conf, nopLogger{})

	blob := bytes.Repeat([]byte{0xAB}, 1<<20)
	require.NoError(t, c.Set("preview:tok", blob))

	val, ok := c.Get("preview:tok")
	require.True(t, ok)
	assert.Equal(t, blob, val)

	c.Del("preview:tok")
	_, ok = c.Get("preview:tok")
	assert.False(t, ok)
}

func TestCacheProvider_LargeEntryOverwrittenBySmall(t *testing.T) {
	conf := cacheConfig()
	conf.Session.CacheSize = 64
	c := NewCacheProvider(conf, nopLogger{})

	require.NoError(t, c.Set("result:sid", bytes.Repeat([]byte{0xCD}, 2<<20)))
	require.NoError(t, c.Set("result:sid", []byte("small")))

	val, ok := c.Get("result:sid")
	require.True(t, ok)
	assert.Equal(t, "small", string(val))
}

func TestCacheProvider_EmptyKey(t *testing.T) {
	c := NewCacheProvider(cacheConfig(), nopLogger{})

	_, ok := c.Get("")
	assert.False(t, ok)
}
