package vehicle

import (
	"encoding/json"
)

// Vehicle is a bookable cab category. IDs are canonical lowercase snake
// tokens (see normalize.go); display data and pricing ride along.
type Vehicle struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	BasePrice       float64  `json:"basePrice"`
	PricePerKm      float64  `json:"pricePerKm"`
	Capacity        int      `json:"capacity"`
	LuggageCapacity int      `json:"luggageCapacity"`
	AC              bool     `json:"ac"`
	Hr8km80Price    float64  `json:"hr8km80Price"`
	Hr10km100Price  float64  `json:"hr10km100Price"`
	DriverAllowance float64  `json:"driverAllowance"`
	NightHaltCharge float64  `json:"nightHaltCharge"`
	AirportFee      float64  `json:"airportFee"`
	Amenities       []string `json:"amenities"`
	IsActive        bool     `json:"isActive"`
}

// UnmarshalJSON tolerates the legacy backend's mixed conventions: camelCase
// or snake_case keys, and numerics that arrive as quoted strings.
func (v *Vehicle) UnmarshalJSON(b []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	v.ID = PickString(m, "id", "vehicleId", "vehicle_id")
	v.Name = PickString(m, "name", "vehicleName", "vehicle_name")
	v.BasePrice = PickFloat(m, "basePrice", "base_price", "price")
	v.PricePerKm = PickFloat(m, "pricePerKm", "price_per_km")
	v.Capacity = int(PickFloat(m, "capacity", "seatingCapacity", "seating_capacity"))
	v.LuggageCapacity = int(PickFloat(m, "luggageCapacity", "luggage_capacity"))
	v.AC = PickBool(m, "ac", "is_ac")
	v.Hr8km80Price = PickFloat(m, "hr8km80Price", "hr8km80_price", "price_8hrs_80km")
	v.Hr10km100Price = PickFloat(m, "hr10km100Price", "hr10km100_price", "price_10hrs_100km")
	v.DriverAllowance = PickFloat(m, "driverAllowance", "driver_allowance")
	v.NightHaltCharge = PickFloat(m, "nightHaltCharge", "night_halt_charge")
	v.AirportFee = PickFloat(m, "airportFee", "airport_fee")
	v.Amenities = PickStrings(m, "amenities")
	if raw, ok := firstRaw(m, "isActive", "is_active"); ok {
		v.IsActive = parseBool(raw)
	} else {
		v.IsActive = true
	}
	return nil
}

// DefaultVehicles is the terminal fallback tier: a small built-in fleet so
// booking screens always have something to price against.
func DefaultVehicles() []Vehicle {
	return []Vehicle{
		{
			ID:              "sedan",
			Name:            "Sedan",
			BasePrice:       4200,
			PricePerKm:      14,
			Capacity:        4,
			LuggageCapacity: 2,
			AC:              true,
			Hr8km80Price:    2500,
			Hr10km100Price:  3000,
			DriverAllowance: 250,
			NightHaltCharge: 700,
			Amenities:       []string{"AC", "Bottle Water", "Music System"},
			IsActive:        true,
		},
		{
			ID:              "ertiga",
			Name:            "Ertiga",
			BasePrice:       5400,
			PricePerKm:      18,
			Capacity:        6,
			LuggageCapacity: 3,
			AC:              true,
			Hr8km80Price:    3000,
			Hr10km100Price:  3600,
			DriverAllowance: 250,
			NightHaltCharge: 1000,
			Amenities:       []string{"AC", "Bottle Water", "Music System", "Extra Legroom"},
			IsActive:        true,
		},
		{
			ID:              "innova_crysta",
			Name:            "Innova Crysta",
			BasePrice:       6000,
			PricePerKm:      20,
			Capacity:        7,
			LuggageCapacity: 4,
			AC:              true,
			Hr8km80Price:    3800,
			Hr10km100Price:  4500,
			DriverAllowance: 250,
			NightHaltCharge: 1000,
			Amenities:       []string{"AC", "Bottle Water", "Music System", "Extra Legroom", "Charging Point"},
			IsActive:        true,
		},
	}
}
