package handlers

import (
	"net/http"

	"faregateway/internal/cache"
	"faregateway/internal/config"
	"faregateway/internal/events"
	"faregateway/internal/http/middleware"
	"faregateway/internal/utils"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "fare gateway running"})
}

func DBCheck(c *gin.Context) {
	if config.DB == nil {
		c.JSON(http.StatusOK, gin.H{"message": "no cache database configured", "store": getDeps().Env.CacheStore})
		return
	}
	if err := config.EnsureDB(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cache database unreachable: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cache database OK"})
}

// CacheStatus reports freshness per cache key so operators can see which
// tier the UIs are being served from.
func CacheStatus(c *gin.Context) {
	d := getDeps()
	out := gin.H{}
	for _, key := range cache.Keys() {
		switch {
		case firstOK(d.Cache.Get(key)):
			out[key] = "fresh"
		case firstOK(d.Cache.GetStale(key)):
			out[key] = "stale"
		default:
			out[key] = "missing"
		}
	}
	c.JSON(http.StatusOK, gin.H{"cache": out, "ttl": d.Env.CacheTTL.String()})
}

func firstOK[T any](_ T, ok bool) bool { return ok }

// CacheClear drops every cache entry and notifies open views. Admin only.
func CacheClear(c *gin.Context) {
	d := getDeps()
	for _, key := range cache.Keys() {
		d.Cache.Invalidate(key)
	}
	d.Vehicles.Bus.Publish(events.Event{Topic: events.TopicFareCacheCleared})
	utils.LogEvent(middleware.GetRequestID(c), "system", "cache_clear", "all keys invalidated")
	c.JSON(http.StatusOK, gin.H{"message": "cache cleared"})
}
