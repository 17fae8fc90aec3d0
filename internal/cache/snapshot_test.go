package cache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/flight-seat-reservation/internal/inventory"
	"github.com/iliyamo/flight-seat-reservation/internal/model"
)

func smallFlight(t *testing.T) *inventory.Inventory {
	t.Helper()
	inv, err := inventory.New(map[model.Tier]inventory.Layout{
		model.FirstClass: {Rows: 1, Seats: 2},
		model.Coach:      {Rows: 2, Seats: 2},
	})
	if err != nil {
		t.Fatal(err)
	}
	return inv
}

func book(t *testing.T, inv *inventory.Inventory, tier model.Tier, row int, letter rune, name string) {
	t.Helper()
	p, err := model.NewPassenger(name, 40)
	if err != nil {
		t.Fatal(err)
	}
	s, err := inv.Seat(tier, row, letter)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Assign(p); err != nil {
		t.Fatal(err)
	}
	if err := inv.Commit(s); err != nil {
		t.Fatal(err)
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemorySnapshotStore()
	if _, err := m.Latest(ctx); !errors.Is(err, ErrNoSnapshot) {
		t.Fatalf("empty store = %v", err)
	}
	if err := m.Save(ctx, Snapshot{Chart: "x"}); err != nil {
		t.Fatal(err)
	}
	if s, err := m.Latest(ctx); err != nil || s.Chart != "x" {
		t.Errorf("Latest = %+v, %v", s, err)
	}
}

func TestRecorderRefreshesAfterEachCommit(t *testing.T) {
	ctx := context.Background()
	inv := smallFlight(t)
	store := NewMemorySnapshotStore()
	rec := NewSnapshotRecorder(inv, store)
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rec.now = func() time.Time { return at }

	if err := rec.Refresh(ctx); err != nil {
		t.Fatal(err)
	}
	s, _ := store.Latest(ctx)
	if !s.Empty || s.Full || !s.UpdatedAt.Equal(at) {
		t.Errorf("startup snapshot = %+v", s)
	}

	book(t, inv, model.Coach, 2, 'B', "Grace Hopper")
	if err := rec.Record(ctx, model.BookingEvent{Kind: model.EventCreated}); err != nil {
		t.Fatal(err)
	}
	s, _ = store.Latest(ctx)
	if s.Empty || s.Full {
		t.Errorf("flags = empty %v full %v", s.Empty, s.Full)
	}
	want := []TierOccupancy{{Tier: "First Class", Booked: 0, Open: 2}, {Tier: "Coach", Booked: 1, Open: 3}}
	if len(s.Tiers) != 2 || s.Tiers[0] != want[0] || s.Tiers[1] != want[1] {
		t.Errorf("tiers = %+v", s.Tiers)
	}
	if !strings.Contains(s.Chart, "Grace Hopper") || !strings.Contains(s.Chart, "SEATING DISPLAY") {
		t.Errorf("chart:\n%s", s.Chart)
	}
	if rec.Name() != "snapshot" {
		t.Errorf("Name = %q", rec.Name())
	}
}

func TestRedisStoreUnreachable(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer rdb.Close()
	st := NewRedisSnapshotStore(rdb, "flightdesk:snapshot", 0)
	if st.ttl != 24*time.Hour {
		t.Errorf("default ttl = %v", st.ttl)
	}
	ctx := context.Background()
	if err := st.Save(ctx, Snapshot{}); err == nil {
		t.Error("Save should fail")
	}
	if _, err := st.Latest(ctx); err == nil || errors.Is(err, ErrNoSnapshot) {
		t.Errorf("Latest = %v", err)
	}
}
