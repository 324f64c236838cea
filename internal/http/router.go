package http

import (
	"net/http"
	"time"

	"faregateway/internal/config"
	"faregateway/internal/http/handlers"
	"faregateway/internal/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires every route of the gateway. Read endpoints are public,
// pricing writes sit behind the admin token.
func NewRouter(env config.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware(env))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.Health)
		api.GET("/db-check", handlers.DBCheck)
		api.GET("/cache-status", handlers.CacheStatus)
		api.GET("/events/recent", handlers.RecentEvents)

		api.POST("/auth/login", handlers.Login)

		api.GET("/vehicles", handlers.GetVehicles)
		// legacy paths older booking screens still call
		api.GET("/vehicles/list", handlers.GetVehicles)
		api.GET("/fares/vehicles", handlers.GetVehicles)

		api.GET("/outstation-fares", handlers.GetOutstationFares)
		api.GET("/local-fares", handlers.GetLocalFares)
		api.GET("/airport-fares", handlers.GetAirportFares)

		api.GET("/reports/tariff-pdf", handlers.GetTariffPDF)

		admin := api.Group("/", middleware.RequireAdmin([]byte(env.JWTSecret)))
		{
			admin.POST("/admin/vehicle-pricing", handlers.UpdateVehiclePricing)
			admin.POST("/direct-outstation-fares", handlers.UpdateOutstationFares)
			admin.POST("/direct-local-fares", handlers.UpdateLocalFares)
			admin.POST("/direct-airport-fares", handlers.UpdateAirportFares)
			admin.POST("/admin/cache-clear", handlers.CacheClear)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	return r
}

func corsMiddleware(env config.Env) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(env.CORSOrigins) == 0 || (len(env.CORSOrigins) == 1 && env.CORSOrigins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = env.CORSOrigins
	}
	return cors.New(cfg)
}
