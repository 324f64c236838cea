package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"faregateway/internal/cache"
	"faregateway/internal/events"
	"faregateway/internal/upstream"
	"faregateway/internal/utils"
	"faregateway/internal/vehicle"

	"github.com/sirupsen/logrus"
)

// Source labels for where a read was ultimately served from.
const (
	SourceCache      = "cache"
	SourceMock       = "mock"
	SourceStaleCache = "stale-cache"
	SourceDefaults   = "defaults"
)

// Historically-accumulated endpoint families on the legacy backend. Order is
// the trust order; the first usable response wins.
var (
	defaultVehicleReadPaths = []string{
		"/api/fares/vehicles.php",
		"/api/fares/vehicles",
		"/api/vehicles",
		"/api/vehicles/list",
		"/api/cabs/vehicles.php",
		"/api/cabs/vehicles",
	}
	defaultVehicleWritePaths = []string{
		"/api/admin/vehicle-pricing",
		"/api/admin/vehicle-pricing.php",
		"/api/fares/vehicles",
		"/api/fares/vehicles.php",
		"/api/admin/vehicles-update",
		"/api/admin/vehicles-update.php",
	}
)

const (
	defaultMockPath    = "/mock/fares/vehicles-data.json"
	defaultMockTimeout = 3 * time.Second
)

// VehicleService owns the resilient vehicle read path and the guarded
// pricing write path. Reads never fail: they degrade through fresh cache,
// live endpoints, the mock fixture, stale cache, and built-in defaults.
type VehicleService struct {
	Client   *upstream.Client
	Cache    cache.Store
	Bus      *events.Bus
	Resolver *vehicle.Resolver

	ReadPaths   []string
	WritePaths  []string
	MockPath    string
	MockTimeout time.Duration

	RetryCount int
	RetryDelay time.Duration
	DemoMode   bool
	RequestID  string

	// Sleep is injectable so retry tests don't wait.
	Sleep func(time.Duration)
}

func (s *VehicleService) readPaths() []string {
	if len(s.ReadPaths) > 0 {
		return s.ReadPaths
	}
	return defaultVehicleReadPaths
}

func (s *VehicleService) writePaths() []string {
	if len(s.WritePaths) > 0 {
		return s.WritePaths
	}
	return defaultVehicleWritePaths
}

func (s *VehicleService) mockPath() string {
	if s.MockPath != "" {
		return s.MockPath
	}
	return defaultMockPath
}

func (s *VehicleService) mockTimeout() time.Duration {
	if s.MockTimeout > 0 {
		return s.MockTimeout
	}
	return defaultMockTimeout
}

func (s *VehicleService) retryDelay() time.Duration {
	if s.RetryDelay > 0 {
		return s.RetryDelay
	}
	return defaultRetryDelay
}

func (s *VehicleService) retryCount() int {
	if s.RetryCount > 0 {
		return s.RetryCount
	}
	return defaultRetryCount
}

func (s *VehicleService) sleep() func(time.Duration) {
	if s.Sleep != nil {
		return s.Sleep
	}
	return time.Sleep
}

func parseVehicles(raw json.RawMessage) ([]vehicle.Vehicle, bool) {
	var list []vehicle.Vehicle
	if err := json.Unmarshal(raw, &list); err != nil || len(list) == 0 {
		return nil, false
	}
	return list, true
}

// Fetch resolves to a non-empty vehicle list plus the tier that served it.
// It never returns an error: every failure downgrades to the next tier.
func (s *VehicleService) Fetch(ctx context.Context, forceRefresh bool) ([]vehicle.Vehicle, string) {
	if !forceRefresh {
		if raw, ok := s.Cache.Get(cache.KeyVehicles); ok {
			if list, ok := parseVehicles(raw); ok {
				utils.LogEvent(s.RequestID, "vehicles", "fetch", "served from fresh cache")
				return list, SourceCache
			}
		}
	} else {
		s.Cache.Invalidate(cache.KeyVehicles)
		utils.LogEvent(s.RequestID, "vehicles", "fetch", "forced refresh, cache purged")
	}

	// Warm the fixture reserve before the endpoint walk; it is only trusted
	// when every real endpoint fails.
	var (
		reserve    []vehicle.Vehicle
		reserveRaw json.RawMessage
	)
	if body, err := s.Client.FetchBody(ctx, s.mockPath(), s.mockTimeout()); err == nil {
		if arr, ok := upstream.ExtractArray(body); ok {
			if list, ok := parseVehicles(arr); ok {
				reserve, reserveRaw = list, arr
			}
		}
	}

	if arr, path, err := s.Client.FetchArray(ctx, s.readPaths()); err == nil {
		if list, ok := parseVehicles(arr); ok {
			s.Cache.Set(cache.KeyVehicles, arr)
			utils.LogEvent(s.RequestID, "vehicles", "fetch", "served from "+path)
			return list, "api:" + path
		}
		logrus.WithField("endpoint", path).Warn("endpoint array did not parse as vehicles")
	}

	if len(reserve) > 0 {
		s.Cache.Set(cache.KeyVehicles, reserveRaw)
		utils.LogEvent(s.RequestID, "vehicles", "fetch", "served from mock fixture")
		return reserve, SourceMock
	}

	if raw, ok := s.Cache.GetStale(cache.KeyVehicles); ok {
		if list, ok := parseVehicles(raw); ok {
			utils.LogEvent(s.RequestID, "vehicles", "fetch", "served from stale cache")
			return list, SourceStaleCache
		}
	}

	defaults := vehicle.DefaultVehicles()
	if raw, err := json.Marshal(defaults); err == nil {
		// seed the cache so the session stays stable on the same dataset
		s.Cache.Set(cache.KeyVehicles, raw)
	}
	utils.LogEvent(s.RequestID, "vehicles", "fetch", "served built-in defaults")
	return defaults, SourceDefaults
}

// VehiclePricing is the admin pricing form payload.
type VehiclePricing struct {
	VehicleID       string  `json:"vehicleId"`
	BasePrice       float64 `json:"basePrice"`
	PricePerKm      float64 `json:"pricePerKm"`
	DriverAllowance float64 `json:"driverAllowance"`
	NightHaltCharge float64 `json:"nightHaltCharge"`
	AirportFee      float64 `json:"airportFee"`
	Hr8km80Price    float64 `json:"hr8km80Price"`
	Hr10km100Price  float64 `json:"hr10km100Price"`
}

func (p VehiclePricing) dualPayload(canonicalID string) map[string]any {
	out := map[string]any{
		"vehicleId":  canonicalID,
		"vehicle_id": canonicalID,
		"id":         canonicalID,
	}
	set := func(camel, snake string, v float64) {
		out[camel] = v
		out[snake] = v
	}
	set("basePrice", "base_price", p.BasePrice)
	set("pricePerKm", "price_per_km", p.PricePerKm)
	set("driverAllowance", "driver_allowance", p.DriverAllowance)
	set("nightHaltCharge", "night_halt_charge", p.NightHaltCharge)
	set("airportFee", "airport_fee", p.AirportFee)
	set("hr8km80Price", "hr8km80_price", p.Hr8km80Price)
	set("hr10km100Price", "hr10km100_price", p.Hr10km100Price)
	return out
}

// UpdatePricing persists a pricing change upstream. The vehicle ID must
// resolve before any network call; unresolvable IDs fail fast.
func (s *VehicleService) UpdatePricing(ctx context.Context, p VehiclePricing) (WriteResult, error) {
	canonical, err := s.Resolver.Resolve(p.VehicleID)
	if err != nil {
		utils.LogEvent(s.RequestID, "vehicles", "update_rejected", fmt.Sprintf("vehicle_id=%q", p.VehicleID))
		return WriteResult{}, err
	}

	endpoint, err := postWithRetry(ctx, s.Client, s.writePaths(), p.dualPayload(canonical),
		s.retryCount(), s.retryDelay(), s.sleep())
	if err != nil {
		if !s.DemoMode {
			return WriteResult{}, err
		}
		logrus.WithField("vehicle_id", canonical).Warn("all write endpoints failed, demo mode simulating success")
		s.afterWrite(canonical)
		return WriteResult{Simulated: true}, nil
	}

	utils.LogEvent(s.RequestID, "vehicles", "update", "vehicle_id="+canonical)
	s.afterWrite(canonical)
	return WriteResult{Endpoint: endpoint}, nil
}

// afterWrite invalidates every related cache entry and tells open UI views
// to refetch.
func (s *VehicleService) afterWrite(vehicleID string) {
	for _, key := range cache.Keys() {
		s.Cache.Invalidate(key)
	}
	s.Bus.Publish(events.Event{Topic: events.TopicVehicleTablesSynced, VehicleID: vehicleID})
	s.Bus.Publish(events.Event{Topic: events.TopicFareCacheCleared, VehicleID: vehicleID})
}
