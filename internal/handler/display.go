package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flight-seat-reservation/internal/cache"
)

// DisplayHandler serves the latest occupancy snapshot to gate displays.
// It reads only from the snapshot store.
type DisplayHandler struct {
	Store cache.SnapshotStore
}

// NewDisplayHandler creates a new DisplayHandler.
func NewDisplayHandler(store cache.SnapshotStore) *DisplayHandler {
	return &DisplayHandler{Store: store}
}

// occupancyResponse is the JSON body of GET /v1/occupancy.
type occupancyResponse struct {
	Tiers     []cache.TierOccupancy `json:"tiers"`
	Full      bool                  `json:"full"`
	Empty     bool                  `json:"empty"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// Chart returns the seating chart as plain text, exactly as the attendant
// sees it.
func (h *DisplayHandler) Chart(c echo.Context) error {
	snap, err := h.latest(c)
	if err != nil {
		return err
	}
	c.Response().Header().Set("Last-Modified", snap.UpdatedAt.UTC().Format(http.TimeFormat))
	return c.String(http.StatusOK, snap.Chart)
}

// Occupancy returns per-tier booked and open counts.
func (h *DisplayHandler) Occupancy(c echo.Context) error {
	snap, err := h.latest(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, occupancyResponse{
		Tiers:     snap.Tiers,
		Full:      snap.Full,
		Empty:     snap.Empty,
		UpdatedAt: snap.UpdatedAt,
	})
}

// latest maps store failures onto HTTP errors: 503 until the desk has
// written a first snapshot, 500 when the store itself fails.
func (h *DisplayHandler) latest(c echo.Context) (cache.Snapshot, error) {
	snap, err := h.Store.Latest(c.Request().Context())
	if errors.Is(err, cache.ErrNoSnapshot) {
		return snap, echo.NewHTTPError(http.StatusServiceUnavailable, "no snapshot yet")
	}
	if err != nil {
		c.Logger().Errorf("display: read snapshot: %v", err)
		return snap, echo.NewHTTPError(http.StatusInternalServerError, "snapshot unavailable")
	}
	return snap, nil
}
