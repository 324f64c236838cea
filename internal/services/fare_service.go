package services

import (
	"context"
	"encoding/json"
	"time"

	"faregateway/internal/cache"
	"faregateway/internal/events"
	"faregateway/internal/fare"
	"faregateway/internal/upstream"
	"faregateway/internal/utils"
	"faregateway/internal/vehicle"

	"github.com/sirupsen/logrus"
)

// fareCategory binds one trip category to its cache key, event topic and
// endpoint families.
type fareCategory struct {
	tripType   string
	cacheKey   string
	topic      events.Topic
	readPaths  []string
	writePaths []string
}

var (
	outstationCategory = fareCategory{
		tripType: fare.TripOutstation,
		cacheKey: cache.KeyOutstationFares,
		topic:    events.TopicTripFaresUpdated,
		readPaths: []string{
			"/api/outstation-fares",
			"/api/outstation-fares.php",
		},
		writePaths: []string{
			"/api/direct-outstation-fares",
			"/api/direct-outstation-fares.php",
			"/api/admin/outstation-fares-update",
		},
	}
	localCategory = fareCategory{
		tripType: fare.TripLocal,
		cacheKey: cache.KeyLocalFares,
		topic:    events.TopicLocalFaresUpdated,
		readPaths: []string{
			"/api/local-fares",
			"/api/local-fares.php",
		},
		writePaths: []string{
			"/api/direct-local-fares",
			"/api/direct-local-fares.php",
			"/api/admin/local-fares-update",
		},
	}
	airportCategory = fareCategory{
		tripType: fare.TripAirport,
		cacheKey: cache.KeyAirportFares,
		topic:    events.TopicAirportFaresUpdated,
		readPaths: []string{
			"/api/airport-fares",
			"/api/airport-fares.php",
		},
		writePaths: []string{
			"/api/direct-airport-fares",
			"/api/direct-airport-fares.php",
			"/api/admin/airport-fares-update",
		},
	}
)

// FareService serves and updates per-category fare tables through the same
// cache/endpoint fallback discipline as vehicles. Fares have no fixture or
// built-in tier: the terminal fallback is an empty list, which the UI treats
// as "pricing temporarily unavailable".
type FareService struct {
	Client   *upstream.Client
	Cache    cache.Store
	Bus      *events.Bus
	Resolver *vehicle.Resolver

	RetryCount int
	RetryDelay time.Duration
	DemoMode   bool
	RequestID  string

	Sleep func(time.Duration)
}

func (s *FareService) retryDelay() time.Duration {
	if s.RetryDelay > 0 {
		return s.RetryDelay
	}
	return defaultRetryDelay
}

func (s *FareService) retryCount() int {
	if s.RetryCount > 0 {
		return s.RetryCount
	}
	return defaultRetryCount
}

func (s *FareService) sleep() func(time.Duration) {
	if s.Sleep != nil {
		return s.Sleep
	}
	return time.Sleep
}

// fetchRaw runs the fallback chain for one category and always resolves to a
// valid JSON array (possibly empty) plus the serving tier.
func (s *FareService) fetchRaw(ctx context.Context, cat fareCategory, forceRefresh bool) (json.RawMessage, string) {
	if !forceRefresh {
		if raw, ok := s.Cache.Get(cat.cacheKey); ok {
			return raw, SourceCache
		}
	} else {
		s.Cache.Invalidate(cat.cacheKey)
	}

	if arr, path, err := s.Client.FetchArray(ctx, cat.readPaths); err == nil {
		s.Cache.Set(cat.cacheKey, arr)
		utils.LogEvent(s.RequestID, "fares", "fetch_"+cat.tripType, "served from "+path)
		return arr, "api:" + path
	}

	if raw, ok := s.Cache.GetStale(cat.cacheKey); ok {
		utils.LogEvent(s.RequestID, "fares", "fetch_"+cat.tripType, "served from stale cache")
		return raw, SourceStaleCache
	}

	logrus.WithField("trip_type", cat.tripType).Warn("no fare data reachable, serving empty list")
	return json.RawMessage(`[]`), SourceDefaults
}

func (s *FareService) FetchOutstation(ctx context.Context, forceRefresh bool) ([]fare.OutstationFare, string) {
	raw, src := s.fetchRaw(ctx, outstationCategory, forceRefresh)
	list := []fare.OutstationFare{}
	_ = json.Unmarshal(raw, &list)
	return list, src
}

func (s *FareService) FetchLocal(ctx context.Context, forceRefresh bool) ([]fare.LocalFare, string) {
	raw, src := s.fetchRaw(ctx, localCategory, forceRefresh)
	list := []fare.LocalFare{}
	_ = json.Unmarshal(raw, &list)
	return list, src
}

func (s *FareService) FetchAirport(ctx context.Context, forceRefresh bool) ([]fare.AirportFare, string) {
	raw, src := s.fetchRaw(ctx, airportCategory, forceRefresh)
	list := []fare.AirportFare{}
	_ = json.Unmarshal(raw, &list)
	return list, src
}

func (s *FareService) UpdateOutstation(ctx context.Context, f fare.OutstationFare) (WriteResult, error) {
	canonical, err := s.Resolver.Resolve(f.VehicleID)
	if err != nil {
		return WriteResult{}, err
	}
	f.VehicleID = canonical
	return s.write(ctx, outstationCategory, f.DualPayload(), canonical)
}

func (s *FareService) UpdateLocal(ctx context.Context, f fare.LocalFare) (WriteResult, error) {
	canonical, err := s.Resolver.Resolve(f.VehicleID)
	if err != nil {
		return WriteResult{}, err
	}
	f.VehicleID = canonical
	return s.write(ctx, localCategory, f.DualPayload(), canonical)
}

func (s *FareService) UpdateAirport(ctx context.Context, f fare.AirportFare) (WriteResult, error) {
	canonical, err := s.Resolver.Resolve(f.VehicleID)
	if err != nil {
		return WriteResult{}, err
	}
	f.VehicleID = canonical
	return s.write(ctx, airportCategory, f.DualPayload(), canonical)
}

func (s *FareService) write(ctx context.Context, cat fareCategory, payload map[string]any, vehicleID string) (WriteResult, error) {
	endpoint, err := postWithRetry(ctx, s.Client, cat.writePaths, payload,
		s.retryCount(), s.retryDelay(), s.sleep())
	if err != nil {
		if !s.DemoMode {
			return WriteResult{}, err
		}
		logrus.WithFields(logrus.Fields{"trip_type": cat.tripType, "vehicle_id": vehicleID}).
			Warn("all write endpoints failed, demo mode simulating success")
		s.afterWrite(cat, vehicleID)
		return WriteResult{Simulated: true}, nil
	}

	utils.LogEvent(s.RequestID, "fares", "update_"+cat.tripType, "vehicle_id="+vehicleID)
	s.afterWrite(cat, vehicleID)
	return WriteResult{Endpoint: endpoint}, nil
}

func (s *FareService) afterWrite(cat fareCategory, vehicleID string) {
	s.Cache.Invalidate(cat.cacheKey)
	s.Cache.Invalidate(cache.KeyVehicles)
	s.Bus.Publish(events.Event{Topic: cat.topic, VehicleID: vehicleID, TripType: cat.tripType})
	s.Bus.Publish(events.Event{Topic: events.TopicFareCacheCleared, VehicleID: vehicleID, TripType: cat.tripType})
}
