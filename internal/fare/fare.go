// Package fare holds the per-vehicle pricing records for each trip category.
// Writes go upstream as dual-cased payloads: the legacy backend versions
// disagree on camelCase vs snake_case, so every field is sent both ways.
package fare

import (
	"encoding/json"

	"faregateway/internal/vehicle"
)

// Trip categories as they appear in domain events and admin forms.
const (
	TripOutstation = "outstation"
	TripLocal      = "local"
	TripAirport    = "airport"
)

type OutstationFare struct {
	VehicleID           string  `json:"vehicleId"`
	BasePrice           float64 `json:"basePrice"`
	PricePerKm          float64 `json:"pricePerKm"`
	RoundTripBasePrice  float64 `json:"roundTripBasePrice"`
	RoundTripPricePerKm float64 `json:"roundTripPricePerKm"`
	DriverAllowance     float64 `json:"driverAllowance"`
	NightHaltCharge     float64 `json:"nightHaltCharge"`
}

func (f *OutstationFare) UnmarshalJSON(b []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	f.VehicleID = vehicle.PickString(m, "vehicleId", "vehicle_id", "id")
	f.BasePrice = vehicle.PickFloat(m, "basePrice", "base_price", "oneWayBasePrice", "one_way_base_price")
	f.PricePerKm = vehicle.PickFloat(m, "pricePerKm", "price_per_km", "oneWayPricePerKm")
	f.RoundTripBasePrice = vehicle.PickFloat(m, "roundTripBasePrice", "round_trip_base_price")
	f.RoundTripPricePerKm = vehicle.PickFloat(m, "roundTripPricePerKm", "round_trip_price_per_km")
	f.DriverAllowance = vehicle.PickFloat(m, "driverAllowance", "driver_allowance")
	f.NightHaltCharge = vehicle.PickFloat(m, "nightHaltCharge", "night_halt_charge")
	return nil
}

// DualPayload renders the record with both naming conventions for every field.
func (f OutstationFare) DualPayload() map[string]any {
	p := dualBase(f.VehicleID)
	dualSet(p, "basePrice", "base_price", f.BasePrice)
	dualSet(p, "pricePerKm", "price_per_km", f.PricePerKm)
	dualSet(p, "roundTripBasePrice", "round_trip_base_price", f.RoundTripBasePrice)
	dualSet(p, "roundTripPricePerKm", "round_trip_price_per_km", f.RoundTripPricePerKm)
	dualSet(p, "driverAllowance", "driver_allowance", f.DriverAllowance)
	dualSet(p, "nightHaltCharge", "night_halt_charge", f.NightHaltCharge)
	p["tripType"] = TripOutstation
	p["trip_type"] = TripOutstation
	return p
}

type LocalFare struct {
	VehicleID        string  `json:"vehicleId"`
	Package4hr40km   float64 `json:"package4hr40km"`
	Package8hr80km   float64 `json:"package8hr80km"`
	Package10hr100km float64 `json:"package10hr100km"`
	ExtraKmRate      float64 `json:"extraKmRate"`
	ExtraHourRate    float64 `json:"extraHourRate"`
}

func (f *LocalFare) UnmarshalJSON(b []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	f.VehicleID = vehicle.PickString(m, "vehicleId", "vehicle_id", "id")
	f.Package4hr40km = vehicle.PickFloat(m, "package4hr40km", "package_4hr_40km", "price4hrs40km", "price_4hrs_40km")
	f.Package8hr80km = vehicle.PickFloat(m, "package8hr80km", "package_8hr_80km", "price8hrs80km", "price_8hrs_80km")
	f.Package10hr100km = vehicle.PickFloat(m, "package10hr100km", "package_10hr_100km", "price10hrs100km", "price_10hrs_100km")
	f.ExtraKmRate = vehicle.PickFloat(m, "extraKmRate", "extra_km_rate", "priceExtraKm", "price_extra_km")
	f.ExtraHourRate = vehicle.PickFloat(m, "extraHourRate", "extra_hour_rate", "priceExtraHour", "price_extra_hour")
	return nil
}

func (f LocalFare) DualPayload() map[string]any {
	p := dualBase(f.VehicleID)
	dualSet(p, "package4hr40km", "package_4hr_40km", f.Package4hr40km)
	dualSet(p, "package8hr80km", "package_8hr_80km", f.Package8hr80km)
	dualSet(p, "package10hr100km", "package_10hr_100km", f.Package10hr100km)
	dualSet(p, "extraKmRate", "extra_km_rate", f.ExtraKmRate)
	dualSet(p, "extraHourRate", "extra_hour_rate", f.ExtraHourRate)
	p["tripType"] = TripLocal
	p["trip_type"] = TripLocal
	return p
}

type AirportFare struct {
	VehicleID     string  `json:"vehicleId"`
	BasePrice     float64 `json:"basePrice"`
	PricePerKm    float64 `json:"pricePerKm"`
	PickupPrice   float64 `json:"pickupPrice"`
	DropPrice     float64 `json:"dropPrice"`
	Tier1Price    float64 `json:"tier1Price"` // 0-10 km
	Tier2Price    float64 `json:"tier2Price"` // 11-20 km
	Tier3Price    float64 `json:"tier3Price"` // 21-30 km
	Tier4Price    float64 `json:"tier4Price"` // beyond 30 km
	ExtraKmCharge float64 `json:"extraKmCharge"`
}

func (f *AirportFare) UnmarshalJSON(b []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	f.VehicleID = vehicle.PickString(m, "vehicleId", "vehicle_id", "id")
	f.BasePrice = vehicle.PickFloat(m, "basePrice", "base_price")
	f.PricePerKm = vehicle.PickFloat(m, "pricePerKm", "price_per_km")
	f.PickupPrice = vehicle.PickFloat(m, "pickupPrice", "pickup_price")
	f.DropPrice = vehicle.PickFloat(m, "dropPrice", "drop_price")
	f.Tier1Price = vehicle.PickFloat(m, "tier1Price", "tier1_price")
	f.Tier2Price = vehicle.PickFloat(m, "tier2Price", "tier2_price")
	f.Tier3Price = vehicle.PickFloat(m, "tier3Price", "tier3_price")
	f.Tier4Price = vehicle.PickFloat(m, "tier4Price", "tier4_price")
	f.ExtraKmCharge = vehicle.PickFloat(m, "extraKmCharge", "extra_km_charge")
	return nil
}

func (f AirportFare) DualPayload() map[string]any {
	p := dualBase(f.VehicleID)
	dualSet(p, "basePrice", "base_price", f.BasePrice)
	dualSet(p, "pricePerKm", "price_per_km", f.PricePerKm)
	dualSet(p, "pickupPrice", "pickup_price", f.PickupPrice)
	dualSet(p, "dropPrice", "drop_price", f.DropPrice)
	dualSet(p, "tier1Price", "tier1_price", f.Tier1Price)
	dualSet(p, "tier2Price", "tier2_price", f.Tier2Price)
	dualSet(p, "tier3Price", "tier3_price", f.Tier3Price)
	dualSet(p, "tier4Price", "tier4_price", f.Tier4Price)
	dualSet(p, "extraKmCharge", "extra_km_charge", f.ExtraKmCharge)
	p["tripType"] = TripAirport
	p["trip_type"] = TripAirport
	return p
}

func dualBase(vehicleID string) map[string]any {
	return map[string]any{
		"vehicleId":  vehicleID,
		"vehicle_id": vehicleID,
		"id":         vehicleID,
	}
}

func dualSet(p map[string]any, camel, snake string, v float64) {
	p[camel] = v
	p[snake] = v
}
