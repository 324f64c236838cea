package handlers

import (
	"net/http"
	"sync"

	"faregateway/internal/cache"
	"faregateway/internal/config"
	"faregateway/internal/events"
	"faregateway/internal/http/middleware"
	"faregateway/internal/services"

	"github.com/gin-gonic/gin"
)

// Deps wires the handler package to the service layer. Set once at startup.
type Deps struct {
	Env      config.Env
	Vehicles *services.VehicleService
	Fares    *services.FareService
	Reports  services.ReportService
	Recorder *events.Recorder
	Cache    cache.Store
}

var (
	depsMu sync.RWMutex
	deps   Deps
)

func Init(d Deps) {
	depsMu.Lock()
	deps = d
	depsMu.Unlock()
}

func getDeps() Deps {
	depsMu.RLock()
	defer depsMu.RUnlock()
	return deps
}

// RespondError sends a standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures the body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "empty request body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}

// forceRefresh reads the ?force=true query flag the admin screens send.
func forceRefresh(c *gin.Context) bool {
	return c.Query("force") == "true" || c.Query("forceRefresh") == "true"
}
