package handlers

import (
	"net/http"

	"faregateway/internal/http/middleware"
	"faregateway/internal/services"
	"faregateway/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/vehicles?force=true
// Also mounted at the legacy paths the booking screens still call.
func GetVehicles(c *gin.Context) {
	d := getDeps()
	list, source := d.Vehicles.Fetch(c.Request.Context(), forceRefresh(c))
	utils.LogEvent(middleware.GetRequestID(c), "vehicles", "list", "source="+source)
	c.JSON(http.StatusOK, gin.H{
		"vehicles": list,
		"source":   source,
		"count":    len(list),
	})
}

// POST /api/admin/vehicle-pricing
func UpdateVehiclePricing(c *gin.Context) {
	var req services.VehiclePricing
	if !BindJSONOrError(c, &req) {
		return
	}

	d := getDeps()
	res, err := d.Vehicles.UpdatePricing(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	out := gin.H{"message": "vehicle pricing updated"}
	if res.Endpoint != "" {
		out["endpoint"] = res.Endpoint
	}
	if res.Simulated {
		out["simulated"] = true
	}
	c.JSON(http.StatusOK, out)
}
