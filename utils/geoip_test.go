package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func geoClient() *http.Client {
	return &http.Client{Timeout: 2 * time.Second}
}

func TestClientIPPrefersCloudflareHeader(t *testing.T) {
	r := httptest.NewRequest("GET", "http://example.local/", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	r.Header.Set("CF-Connecting-IP", "203.0.113.9")
	r.Header.Set("X-Forwarded-For", "198.51.100.4")
	if got := ClientIP(r); got != "203.0.113.9" {
		t.Fatalf("expected CF-Connecting-IP value, got %q", got)
	}
}

func TestClientIPSkipsPrivateForwardedEntries(t *testing.T) {
	r := httptest.NewRequest("GET", "http://example.local/", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	r.Header.Set("X-Forwarded-For", "10.1.2.3, 192.168.0.5, 203.0.113.20")
	if got := ClientIP(r); got != "203.0.113.20" {
		t.Fatalf("expected first public forwarded IP, got %q", got)
	}
}

func TestClientIPAllPrivateFallsBackEmpty(t *testing.T) {
	r := httptest.NewRequest("GET", "http://example.local/", nil)
	r.RemoteAddr = "127.0.0.1:9000"
	r.Header.Set("X-Forwarded-For", "10.1.2.3")
	if got := ClientIP(r); got != "" {
		t.Fatalf("expected empty IP for private-only signals, got %q", got)
	}
}

func TestResolveCountryEdgeHeader(t *testing.T) {
	r := httptest.NewRequest("GET", "http://example.local/", nil)
	r.Header.Set("CF-IPCountry", "pk")
	c := ResolveCountry(context.Background(), r, geoClient())
	if c.Code != "PK" {
		t.Fatalf("expected PK, got %q", c.Code)
	}
	if c.Name != "Pakistan" {
		t.Fatalf("expected country name, got %q", c.Name)
	}
}

func TestResolveCountrySentinelHeaderSkipped(t *testing.T) {
	r := httptest.NewRequest("GET", "http://example.local/", nil)
	r.Header.Set("CF-IPCountry", "XX")
	r.Header.Set("X-Vercel-IP-Country", "AE")
	c := ResolveCountry(context.Background(), r, geoClient())
	if c.Code != "AE" {
		t.Fatalf("expected secondary header AE, got %q", c.Code)
	}
}

func TestResolveCountryLookupPrimary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","country":"United States","countryCode":"US"}`))
	}))
	defer srv.Close()

	oldPrimary := ipAPIBaseURL
	ipAPIBaseURL = srv.URL
	defer func() { ipAPIBaseURL = oldPrimary }()

	r := httptest.NewRequest("GET", "http://example.local/", nil)
	r.RemoteAddr = "203.0.113.7:443"
	c := ResolveCountry(context.Background(), r, geoClient())
	if c.Code != "US" || c.Name != "United States" {
		t.Fatalf("expected US lookup result, got %+v", c)
	}
}

func TestResolveCountryFailsOverToSecondary(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer primary.Close()
	secondary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"country":"United Kingdom","country_code":"GB"}`))
	}))
	defer secondary.Close()

	oldPrimary, oldSecondary := ipAPIBaseURL, ipWhoisBaseURL
	ipAPIBaseURL, ipWhoisBaseURL = primary.URL, secondary.URL
	defer func() { ipAPIBaseURL, ipWhoisBaseURL = oldPrimary, oldSecondary }()

	r := httptest.NewRequest("GET", "http://example.local/", nil)
	r.RemoteAddr = "203.0.113.7:443"
	c := ResolveCountry(context.Background(), r, geoClient())
	if c.Code != "GB" {
		t.Fatalf("expected secondary provider result GB, got %+v", c)
	}
}

func TestResolveCountryFailsOpenWhenProvidersDown(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer down.Close()

	oldPrimary, oldSecondary := ipAPIBaseURL, ipWhoisBaseURL
	ipAPIBaseURL, ipWhoisBaseURL = down.URL, down.URL
	defer func() { ipAPIBaseURL, ipWhoisBaseURL = oldPrimary, oldSecondary }()

	r := httptest.NewRequest("GET", "http://example.local/", nil)
	r.RemoteAddr = "203.0.113.7:443"
	c := ResolveCountry(context.Background(), r, geoClient())
	if c.Code != "" {
		t.Fatalf("expected unknown country (fail open), got %q", c.Code)
	}
	if !FailOpenOnLookupTimeout {
		t.Fatal("fail-open policy constant must be set")
	}
}
