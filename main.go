package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"faregateway/internal/cache"
	"faregateway/internal/config"
	"faregateway/internal/events"
	apphttp "faregateway/internal/http"
	"faregateway/internal/http/handlers"
	"faregateway/internal/services"
	"faregateway/internal/upstream"
	"faregateway/internal/vehicle"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	env := config.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	store := buildCacheStore(env)
	defer config.CloseDB()

	resolver, err := vehicle.LoadResolver(env.VehicleIDConfig)
	if err != nil {
		logrus.WithError(err).WithField("path", env.VehicleIDConfig).
			Warn("vehicle id config not loaded, using built-in tables")
		resolver = vehicle.DefaultResolver()
	}

	if env.UpstreamBaseURL == "" {
		logrus.Warn("UPSTREAM_BASE_URL is not set; live endpoint tiers will fail and reads will serve from cache, fixtures or defaults")
	}
	client := upstream.New(env.UpstreamBaseURL, env.ReadTimeout)
	bus := events.NewBus()
	recorder := events.NewRecorder(bus, 50)
	defer recorder.Close()

	vehicles := &services.VehicleService{
		Client:      client,
		Cache:       store,
		Bus:         bus,
		Resolver:    resolver,
		MockTimeout: env.MockTimeout,
		RetryCount:  env.RetryCount,
		RetryDelay:  env.RetryDelay,
		DemoMode:    env.DemoMode,
	}
	fares := &services.FareService{
		Client:     client,
		Cache:      store,
		Bus:        bus,
		Resolver:   resolver,
		RetryCount: env.RetryCount,
		RetryDelay: env.RetryDelay,
		DemoMode:   env.DemoMode,
	}
	reports := services.ReportService{
		Loader: func(ctx context.Context) []vehicle.Vehicle {
			list, _ := vehicles.Fetch(ctx, false)
			return list
		},
	}

	handlers.Init(handlers.Deps{
		Env:      env,
		Vehicles: vehicles,
		Fares:    fares,
		Reports:  reports,
		Recorder: recorder,
		Cache:    store,
	})

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           apphttp.NewRouter(env),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logrus.WithField("addr", env.AppAddr).Info("fare gateway listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("shutdown incomplete")
	}
}

func buildCacheStore(env config.Env) cache.Store {
	switch env.CacheStore {
	case "mysql":
		if env.DBDSN == "" {
			logrus.Warn("CACHE_STORE=mysql but CACHE_DB_DSN is empty, using in-memory cache")
			return cache.NewMemory(env.CacheTTL)
		}
		db, err := config.ConnectDB(env.DBDSN)
		if err != nil {
			logrus.WithError(err).Warn("cache database unavailable, using in-memory cache")
			return cache.NewMemory(env.CacheTTL)
		}
		if err := cache.MigrateSQL(db); err != nil {
			logrus.WithError(err).Warn("cache table migration failed, using in-memory cache")
			return cache.NewMemory(env.CacheTTL)
		}
		return cache.NewSQL(db, env.CacheTTL)
	case "file":
		store, err := cache.NewFile(env.CacheDir, env.CacheTTL)
		if err != nil {
			logrus.WithError(err).WithField("dir", env.CacheDir).
				Warn("file cache unavailable, using in-memory cache")
			return cache.NewMemory(env.CacheTTL)
		}
		return store
	default:
		return cache.NewMemory(env.CacheTTL)
	}
}
