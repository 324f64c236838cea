package handlers

import (
	"net/http"

	"faregateway/internal/fare"

	"github.com/gin-gonic/gin"
)

// GET /api/outstation-fares
func GetOutstationFares(c *gin.Context) {
	d := getDeps()
	list, source := d.Fares.FetchOutstation(c.Request.Context(), forceRefresh(c))
	c.JSON(http.StatusOK, gin.H{"fares": list, "source": source, "tripType": fare.TripOutstation})
}

// GET /api/local-fares
func GetLocalFares(c *gin.Context) {
	d := getDeps()
	list, source := d.Fares.FetchLocal(c.Request.Context(), forceRefresh(c))
	c.JSON(http.StatusOK, gin.H{"fares": list, "source": source, "tripType": fare.TripLocal})
}

// GET /api/airport-fares
func GetAirportFares(c *gin.Context) {
	d := getDeps()
	list, source := d.Fares.FetchAirport(c.Request.Context(), forceRefresh(c))
	c.JSON(http.StatusOK, gin.H{"fares": list, "source": source, "tripType": fare.TripAirport})
}

func writeResponse(c *gin.Context, message string, endpoint string, simulated bool) {
	out := gin.H{"message": message}
	if endpoint != "" {
		out["endpoint"] = endpoint
	}
	if simulated {
		out["simulated"] = true
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/direct-outstation-fares
func UpdateOutstationFares(c *gin.Context) {
	var req fare.OutstationFare
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := getDeps().Fares.UpdateOutstation(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	writeResponse(c, "outstation fares updated", res.Endpoint, res.Simulated)
}

// POST /api/direct-local-fares
func UpdateLocalFares(c *gin.Context) {
	var req fare.LocalFare
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := getDeps().Fares.UpdateLocal(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	writeResponse(c, "local fares updated", res.Endpoint, res.Simulated)
}

// POST /api/direct-airport-fares
func UpdateAirportFares(c *gin.Context) {
	var req fare.AirportFare
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := getDeps().Fares.UpdateAirport(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	writeResponse(c, "airport fares updated", res.Endpoint, res.Simulated)
}
