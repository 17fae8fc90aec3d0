package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/flight-seat-reservation/internal/config"
)

func okHandler(c echo.Context) error { return c.String(http.StatusOK, "ok") }

func serve(mw echo.MiddlewareFunc, setup func(c echo.Context)) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/chart", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.7")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if setup != nil {
		setup(c)
	}
	_ = mw(okHandler)(c)
	return rec
}

func TestRequireRole(t *testing.T) {
	mw := RequireRole("DISPLAY")
	if rec := serve(mw, func(c echo.Context) { c.Set(RoleKey, "DISPLAY") }); rec.Code != http.StatusOK {
		t.Errorf("allowed role = %d", rec.Code)
	}
	if rec := serve(mw, func(c echo.Context) { c.Set(RoleKey, "OWNER") }); rec.Code != http.StatusForbidden {
		t.Errorf("other role = %d", rec.Code)
	}
	if rec := serve(mw, nil); rec.Code != http.StatusForbidden {
		t.Errorf("missing role = %d", rec.Code)
	}
}

func TestRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.7")
	c := e.NewContext(req, httptest.NewRecorder())
	if got := rateKey(c); got != "flightdesk:ratelimit:sub:anon:ip:10.0.0.7" {
		t.Errorf("anonymous key = %q", got)
	}
	c.Set(SubjectKey, "gate-display-ab12")
	if got := rateKey(c); got != "flightdesk:ratelimit:sub:gate-display-ab12:ip:10.0.0.7" {
		t.Errorf("display key = %q", got)
	}
}

func TestRateLimitPassesThroughWithoutRedis(t *testing.T) {
	cfg := config.DisplayConfig{RateCapacity: 1, RateRefill: time.Second}
	mw := RateLimit(cfg, nil)
	for range 3 {
		if rec := serve(mw, nil); rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	}
}

func TestRateLimitFailsOpenOnRedisError(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer rdb.Close()
	mw := RateLimit(config.DisplayConfig{RateCapacity: 1, RateRefill: time.Second}, rdb)
	rec := serve(mw, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	if rec.Header().Get("X-RateLimit-Limit") != "" {
		t.Errorf("headers set on a failed check: %v", rec.Header())
	}
}
