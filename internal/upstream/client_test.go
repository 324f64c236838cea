package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestFetchArrayFallsThroughToWorkingEndpoint(t *testing.T) {
	var hits []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits = append(hits, r.URL.Path)
		switch r.URL.Path {
		case "/api/fares/vehicles.php":
			w.WriteHeader(http.StatusBadGateway)
		case "/api/fares/vehicles":
			// 200 but unusable shape: must be treated like a failure
			w.Write([]byte(`{"status":"ok"}`))
		case "/api/vehicles":
			w.Write([]byte(`{"vehicles":[{"id":"sedan"}]}`))
		default:
			t.Errorf("endpoint %s should not be tried after a success", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, 2*time.Second)
	arr, winner, err := c.FetchArray(context.Background(), []string{
		"/api/fares/vehicles.php",
		"/api/fares/vehicles",
		"/api/vehicles",
		"/api/vehicles/list",
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if winner != "/api/vehicles" {
		t.Fatalf("unexpected winner %q", winner)
	}
	if !strings.Contains(string(arr), `"sedan"`) {
		t.Fatalf("unexpected payload %s", arr)
	}
	if len(hits) != 3 {
		t.Fatalf("expected exactly 3 attempts (short-circuit after success), got %d", len(hits))
	}
}

func TestFetchArrayAllEndpointsFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	if _, _, err := c.FetchArray(context.Background(), []string{"/a", "/b"}); err == nil {
		t.Fatal("expected error when every endpoint fails")
	}
}

func TestFetchBodySendsCacheDefeatingRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("_t") == "" {
			t.Error("missing _t cache-busting param")
		}
		if cc := r.Header.Get("Cache-Control"); !strings.Contains(cc, "no-store") {
			t.Errorf("unexpected Cache-Control: %q", cc)
		}
		if r.Header.Get("Pragma") != "no-cache" {
			t.Error("missing Pragma header")
		}
		w.Write([]byte(`[1]`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	if _, err := c.FetchBody(context.Background(), "/api/vehicles", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFetchBodyTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(`[1]`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	start := time.Now()
	_, err := c.FetchBody(context.Background(), "/slow", 50*time.Millisecond)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Fatal("timeout did not bound the attempt")
	}
}

func TestPostFirstStopsAtFirstSuccess(t *testing.T) {
	var total int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&total, 1)
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.Header.Get("X-Force-Refresh") != "true" {
			t.Error("missing X-Force-Refresh header")
		}
		if r.Header.Get("X-API-Version") == "" {
			t.Error("missing X-API-Version header")
		}
		switch r.URL.Path {
		case "/api/admin/vehicle-pricing":
			w.WriteHeader(http.StatusNotFound)
		case "/api/admin/vehicle-pricing.php":
			w.WriteHeader(http.StatusOK)
		default:
			t.Errorf("endpoint %s tried after success", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	winner, err := c.PostFirst(context.Background(), []string{
		"/api/admin/vehicle-pricing",
		"/api/admin/vehicle-pricing.php",
		"/api/fares/vehicles",
	}, map[string]any{"vehicleId": "sedan", "vehicle_id": "sedan"})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if winner != "/api/admin/vehicle-pricing.php" {
		t.Fatalf("unexpected winner %q", winner)
	}
	if atomic.LoadInt32(&total) != 2 {
		t.Fatalf("expected 2 attempts, got %d", total)
	}
}

func TestPostFirstAllFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	if _, err := c.PostFirst(context.Background(), []string{"/a", "/b"}, map[string]any{}); err == nil {
		t.Fatal("expected error")
	}
}
