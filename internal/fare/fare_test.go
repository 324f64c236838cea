package fare

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutstationUnmarshalSnakeCase(t *testing.T) {
	body := `{"vehicle_id":"innova_crysta","base_price":"6000","price_per_km":20,"driver_allowance":250,"night_halt_charge":"1000"}`
	var f OutstationFare
	require.NoError(t, json.Unmarshal([]byte(body), &f))
	assert.Equal(t, "innova_crysta", f.VehicleID)
	assert.Equal(t, 6000.0, f.BasePrice)
	assert.Equal(t, 20.0, f.PricePerKm)
	assert.Equal(t, 1000.0, f.NightHaltCharge)
}

func TestDualPayloadCarriesBothCasings(t *testing.T) {
	f := OutstationFare{VehicleID: "sedan", BasePrice: 4200, PricePerKm: 14, DriverAllowance: 250}
	p := f.DualPayload()

	assert.Equal(t, "sedan", p["vehicleId"])
	assert.Equal(t, "sedan", p["vehicle_id"])
	assert.Equal(t, "sedan", p["id"])
	assert.Equal(t, 4200.0, p["basePrice"])
	assert.Equal(t, 4200.0, p["base_price"])
	assert.Equal(t, 14.0, p["pricePerKm"])
	assert.Equal(t, 14.0, p["price_per_km"])
	assert.Equal(t, TripOutstation, p["tripType"])
	assert.Equal(t, TripOutstation, p["trip_type"])
}

func TestLocalDualPayload(t *testing.T) {
	f := LocalFare{VehicleID: "ertiga", Package8hr80km: 3000, Package10hr100km: 3600, ExtraKmRate: 18}
	p := f.DualPayload()

	assert.Equal(t, 3000.0, p["package8hr80km"])
	assert.Equal(t, 3000.0, p["package_8hr_80km"])
	assert.Equal(t, 3600.0, p["package10hr100km"])
	assert.Equal(t, 18.0, p["extra_km_rate"])
	assert.Equal(t, TripLocal, p["trip_type"])
}

func TestAirportUnmarshalTiers(t *testing.T) {
	body := `{"vehicleId":"sedan","tier1_price":600,"tier2Price":800,"tier3_price":1000,"tier4Price":1200,"extra_km_charge":"14"}`
	var f AirportFare
	require.NoError(t, json.Unmarshal([]byte(body), &f))
	assert.Equal(t, 600.0, f.Tier1Price)
	assert.Equal(t, 800.0, f.Tier2Price)
	assert.Equal(t, 1000.0, f.Tier3Price)
	assert.Equal(t, 1200.0, f.Tier4Price)
	assert.Equal(t, 14.0, f.ExtraKmCharge)
}
