// Package cache is a TTL key-value layer for upstream payloads. Staleness
// never deletes an entry: expired envelopes stay retrievable through GetStale
// as the read path's last network-free resort.
package cache

import (
	"encoding/json"
	"time"
)

// DefaultTTL matches the freshness window the booking screens were tuned for.
const DefaultTTL = 2 * time.Minute

// Well-known keys, one per resource type.
const (
	KeyVehicles        = "cached_vehicle_data"
	KeyOutstationFares = "fare_cache_outstation"
	KeyLocalFares      = "fare_cache_local"
	KeyAirportFares    = "fare_cache_airport"
)

// Keys lists every cache key the gateway owns, for bulk invalidation.
func Keys() []string {
	return []string{KeyVehicles, KeyOutstationFares, KeyLocalFares, KeyAirportFares}
}

// Envelope wraps a cached payload with its capture time.
type Envelope struct {
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// Fresh reports whether the envelope is inside the freshness window. The
// boundary is inclusive.
func (e Envelope) Fresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.Timestamp) <= ttl
}

// Store is the injectable cache backend. Implementations must treat corrupt
// or unreadable entries as misses, never as errors: a broken cache must not
// take the read path down with it.
type Store interface {
	// Get returns the payload only when fresh. Stale entries report a miss
	// but are retained.
	Get(key string) (json.RawMessage, bool)
	// GetStale returns the payload regardless of age. Used only by the
	// last-resort fallback tier.
	GetStale(key string) (json.RawMessage, bool)
	Set(key string, payload json.RawMessage)
	Invalidate(key string)
}
