package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flight-seat-reservation/internal/cache"
	"github.com/iliyamo/flight-seat-reservation/internal/handler"
	"github.com/iliyamo/flight-seat-reservation/internal/utils"
)

const secret = "gate-secret"

func newServer(t *testing.T, store cache.SnapshotStore, limiter echo.MiddlewareFunc) *echo.Echo {
	t.Helper()
	e := echo.New()
	RegisterRoutes(e)
	RegisterDisplay(e, handler.NewDisplayHandler(store), secret, limiter)
	return e
}

func get(e *echo.Echo, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func displayToken(t *testing.T) string {
	t.Helper()
	tok, err := utils.NewDisplayToken(secret, 5)
	if err != nil {
		t.Fatal(err)
	}
	return tok.Token
}

func signed(t *testing.T, claims jwt.MapClaims, key string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestHealth(t *testing.T) {
	e := newServer(t, cache.NewMemorySnapshotStore(), nil)
	rec := get(e, "/healthz", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("healthz = %d %s", rec.Code, rec.Body)
	}
}

func TestDisplayRequiresDisplayToken(t *testing.T) {
	e := newServer(t, cache.NewMemorySnapshotStore(), nil)
	exp := time.Now().Add(time.Hour).Unix()
	cases := []struct {
		name  string
		token string
		want  int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"garbage", "not-a-jwt", http.StatusUnauthorized},
		{"wrong key", signed(t, jwt.MapClaims{"sub": "x", "role": utils.DisplayRole, "exp": exp}, "other"), http.StatusUnauthorized},
		{"expired", signed(t, jwt.MapClaims{"sub": "x", "role": utils.DisplayRole, "exp": time.Now().Add(-time.Minute).Unix()}, secret), http.StatusUnauthorized},
		{"no expiry", signed(t, jwt.MapClaims{"sub": "x", "role": utils.DisplayRole}, secret), http.StatusUnauthorized},
		{"wrong role", signed(t, jwt.MapClaims{"sub": "x", "role": "ATTENDANT", "exp": exp}, secret), http.StatusForbidden},
		{"display, no snapshot yet", displayToken(t), http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if rec := get(e, "/v1/chart", tc.token); rec.Code != tc.want {
				t.Errorf("status = %d, want %d (%s)", rec.Code, tc.want, rec.Body)
			}
		})
	}
}

func TestChartAndOccupancy(t *testing.T) {
	store := cache.NewMemorySnapshotStore()
	at := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	snap := cache.Snapshot{
		Chart:     "SEATING DISPLAY\n| Ada Lovelace |\n",
		Tiers:     []cache.TierOccupancy{{Tier: "First Class", Booked: 1, Open: 7}, {Tier: "Coach", Booked: 0, Open: 40}},
		UpdatedAt: at,
	}
	if err := store.Save(context.Background(), snap); err != nil {
		t.Fatal(err)
	}
	e := newServer(t, store, nil)
	token := displayToken(t)

	rec := get(e, "/v1/chart", token)
	if rec.Code != http.StatusOK || rec.Body.String() != snap.Chart {
		t.Fatalf("chart = %d %q", rec.Code, rec.Body)
	}
	if !strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMETextPlain) {
		t.Errorf("content type = %q", rec.Header().Get(echo.HeaderContentType))
	}
	if rec.Header().Get("Last-Modified") != at.Format(http.TimeFormat) {
		t.Errorf("Last-Modified = %q", rec.Header().Get("Last-Modified"))
	}

	rec = get(e, "/v1/occupancy", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("occupancy = %d", rec.Code)
	}
	var body struct {
		Tiers     []cache.TierOccupancy `json:"tiers"`
		Full      bool                  `json:"full"`
		UpdatedAt time.Time             `json:"updated_at"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Tiers) != 2 || body.Tiers[1].Open != 40 || body.Full || !body.UpdatedAt.Equal(at) {
		t.Errorf("body = %+v", body)
	}
}

func TestLimiterRunsAfterAuth(t *testing.T) {
	var seen string
	limiter := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			seen, _ = c.Get("subject").(string)
			return c.NoContent(http.StatusTooManyRequests)
		}
	}
	e := newServer(t, cache.NewMemorySnapshotStore(), limiter)
	if rec := get(e, "/v1/occupancy", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated = %d", rec.Code)
	}
	if rec := get(e, "/v1/occupancy", displayToken(t)); rec.Code != http.StatusTooManyRequests {
		t.Errorf("limited = %d", rec.Code)
	}
	if !strings.HasPrefix(seen, "gate-display-") {
		t.Errorf("limiter saw subject %q", seen)
	}
}
