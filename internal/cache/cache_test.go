package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetAfterSet(t *testing.T) {
	m := NewMemory(2 * time.Minute)
	payload := json.RawMessage(`[{"id":"sedan"}]`)
	m.Set(KeyVehicles, payload)

	got, ok := m.Get(KeyVehicles)
	require.True(t, ok)
	assert.Equal(t, payload, got)
}

func TestMemoryFreshnessWindow(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory(2 * time.Minute)
	m.Now = func() time.Time { return now }
	m.Set(KeyVehicles, json.RawMessage(`[1]`))

	// boundary is inclusive
	now = now.Add(2 * time.Minute)
	_, ok := m.Get(KeyVehicles)
	assert.True(t, ok, "entry exactly at TTL is still fresh")

	now = now.Add(time.Millisecond)
	_, ok = m.Get(KeyVehicles)
	assert.False(t, ok, "entry past TTL is a miss on the fresh path")

	// but the stale path still serves it
	stale, ok := m.GetStale(KeyVehicles)
	require.True(t, ok)
	assert.Equal(t, json.RawMessage(`[1]`), stale)
}

func TestMemoryInvalidate(t *testing.T) {
	m := NewMemory(time.Minute)
	m.Set(KeyLocalFares, json.RawMessage(`[1]`))
	m.Invalidate(KeyLocalFares)

	_, ok := m.Get(KeyLocalFares)
	assert.False(t, ok)
	_, ok = m.GetStale(KeyLocalFares)
	assert.False(t, ok, "invalidate removes the entry entirely, unlike expiry")
}

func TestFileRoundTrip(t *testing.T) {
	f, err := NewFile(t.TempDir(), time.Minute)
	require.NoError(t, err)

	payload := json.RawMessage(`{"vehicles":[]}`)
	f.Set(KeyAirportFares, payload)

	got, ok := f.Get(KeyAirportFares)
	require.True(t, ok)
	assert.Equal(t, payload, got)

	f.Invalidate(KeyAirportFares)
	_, ok = f.GetStale(KeyAirportFares)
	assert.False(t, ok)
}

func TestFileCorruptEntryIsMiss(t *testing.T) {
	dir := t.TempDir()
	f, err := NewFile(dir, time.Minute)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, KeyVehicles+".json"), []byte("{not json"), 0o644))

	_, ok := f.Get(KeyVehicles)
	assert.False(t, ok)
	_, ok = f.GetStale(KeyVehicles)
	assert.False(t, ok)
}

func TestFileStaleRetained(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	f, err := NewFile(t.TempDir(), time.Minute)
	require.NoError(t, err)
	f.Now = func() time.Time { return now }

	f.Set(KeyVehicles, json.RawMessage(`[2]`))
	now = now.Add(time.Hour)

	_, ok := f.Get(KeyVehicles)
	assert.False(t, ok)
	stale, ok := f.GetStale(KeyVehicles)
	require.True(t, ok)
	assert.Equal(t, json.RawMessage(`[2]`), stale)
}
