package config

import (
	"testing"
	"time"
)

func TestLoadEnvDefaults(t *testing.T) {
	for _, key := range []string{
		"APP_ADDR", "UPSTREAM_BASE_URL", "CACHE_TTL", "CACHE_STORE",
		"WRITE_RETRY_COUNT", "DEMO_MODE", "CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}

	env := LoadEnv()

	if env.UpstreamBaseURL != "" {
		t.Errorf("UpstreamBaseURL default = %q, want empty (real URL belongs in deployment env)", env.UpstreamBaseURL)
	}
	if env.AppAddr != ":8080" {
		t.Errorf("AppAddr default = %q", env.AppAddr)
	}
	if env.CacheTTL != 2*time.Minute {
		t.Errorf("CacheTTL default = %v", env.CacheTTL)
	}
	if env.CacheStore != "memory" {
		t.Errorf("CacheStore default = %q", env.CacheStore)
	}
	if env.RetryCount != 2 {
		t.Errorf("RetryCount default = %d", env.RetryCount)
	}
	if env.DemoMode {
		t.Error("DemoMode must default to off")
	}
	if len(env.CORSOrigins) != 1 || env.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins default = %v", env.CORSOrigins)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("UPSTREAM_BASE_URL", "https://fares.internal.example")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("CACHE_STORE", "File")
	t.Setenv("DEMO_MODE", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	env := LoadEnv()

	if env.UpstreamBaseURL != "https://fares.internal.example" {
		t.Errorf("UpstreamBaseURL = %q", env.UpstreamBaseURL)
	}
	if env.CacheTTL != 90*time.Second {
		t.Errorf("CacheTTL = %v", env.CacheTTL)
	}
	if env.CacheStore != "file" {
		t.Errorf("CacheStore should be lowercased, got %q", env.CacheStore)
	}
	if !env.DemoMode {
		t.Error("DemoMode override ignored")
	}
	if len(env.CORSOrigins) != 2 || env.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %v", env.CORSOrigins)
	}
}

func TestEnvDurationInvalidFallsBack(t *testing.T) {
	t.Setenv("CACHE_TTL", "two minutes")
	env := LoadEnv()
	if env.CacheTTL != 2*time.Minute {
		t.Errorf("invalid duration must fall back to default, got %v", env.CacheTTL)
	}
}
