package cachestore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBolt(t *testing.T) *BoltStore {
	t.Helper()
	s, err := NewBoltStore(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStores_SetGet(t *testing.T) {
	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"bolt":   newTestBolt(t),
	}

	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set("k1", []byte("v1"), time.Minute))

			v, err := s.Get("k1")
			require.NoError(t, err)
			assert.Equal(t, []byte("v1"), v)

			ok, err := s.Exists("k1")
			require.NoError(t, err)
			assert.True(t, ok)

			v, err = s.Get("missing")
			require.NoError(t, err)
			assert.Nil(t, v)

			ok, err = s.Exists("missing")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestStores_TTLExpiry(t *testing.T) {
	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"bolt":   newTestBolt(t),
	}

	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set("short", []byte("x"), time.Millisecond))
			time.Sleep(5 * time.Millisecond)

			v, err := s.Get("short")
			require.NoError(t, err)
			assert.Nil(t, v)

			ok, err := s.Exists("short")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestStores_Delete(t *testing.T) {
	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"bolt":   newTestBolt(t),
	}

	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set("k", []byte("v"), 0))
			require.NoError(t, s.Delete("k"))

			v, err := s.Get("k")
			require.NoError(t, err)
			assert.Nil(t, v)

			// deleting again is a no-op
			require.NoError(t, s.Delete("k"))
		})
	}
}

func TestStores_EmptyValueStillPresent(t *testing.T) {
	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"bolt":   newTestBolt(t),
	}

	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set("empty", []byte{}, time.Minute))

			v, err := s.Get("empty")
			require.NoError(t, err)
			assert.NotNil(t, v)
			assert.Len(t, v, 0)

			ok, err := s.Exists("empty")
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestStores_ZeroTTLNeverExpires(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Set("k", []byte("v"), 0))
	time.Sleep(5 * time.Millisecond)

	v, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)
}
