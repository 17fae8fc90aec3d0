// Package cache keeps the latest occupancy snapshot for the gate display.
// Snapshots are written by the attendant's workflow after each committed
// booking and read by the display API, which never sees the inventory.
package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/iliyamo/flight-seat-reservation/internal/chart"
	"github.com/iliyamo/flight-seat-reservation/internal/model"
)

// ErrNoSnapshot is returned by a store that has not been written yet.
var ErrNoSnapshot = errors.New("no occupancy snapshot available")

// TierOccupancy counts the seats of one tier.
type TierOccupancy struct {
	Tier   string `json:"tier"`
	Booked int    `json:"booked"`
	Open   int    `json:"open"`
}

// Snapshot is what the gate display shows.
type Snapshot struct {
	Chart     string          `json:"chart"`
	Tiers     []TierOccupancy `json:"tiers"`
	Full      bool            `json:"full"`
	Empty     bool            `json:"empty"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// SnapshotStore holds the most recent snapshot.
type SnapshotStore interface {
	Save(ctx context.Context, s Snapshot) error
	Latest(ctx context.Context) (Snapshot, error)
}

// MemorySnapshotStore is used when Redis is disabled or unreachable.
type MemorySnapshotStore struct {
	mu   sync.RWMutex
	snap *Snapshot
}

// NewMemorySnapshotStore returns an empty in-memory store.
func NewMemorySnapshotStore() *MemorySnapshotStore { return &MemorySnapshotStore{} }

func (m *MemorySnapshotStore) Save(_ context.Context, s Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = &s
	return nil
}

func (m *MemorySnapshotStore) Latest(_ context.Context) (Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.snap == nil {
		return Snapshot{}, ErrNoSnapshot
	}
	return *m.snap, nil
}

// Source is what a snapshot is taken from.
type Source interface {
	chart.Source
	Counts(tier model.Tier) (booked, open int)
	IsFull() bool
	IsEmpty() bool
}

// Take renders src into a snapshot stamped with at.
func Take(src Source, at time.Time) (Snapshot, error) {
	text, err := chart.Render(src)
	if err != nil {
		return Snapshot{}, err
	}
	s := Snapshot{
		Chart:     text,
		Full:      src.IsFull(),
		Empty:     src.IsEmpty(),
		UpdatedAt: at.UTC(),
	}
	for _, tier := range model.Tiers() {
		booked, open := src.Counts(tier)
		s.Tiers = append(s.Tiers, TierOccupancy{Tier: tier.Name(), Booked: booked, Open: open})
	}
	return s, nil
}

// SnapshotRecorder refreshes the store after every committed booking.  It
// runs on the workflow's goroutine, so it reads the inventory between
// operations and never while one is in progress.
type SnapshotRecorder struct {
	src   Source
	store SnapshotStore
	now   func() time.Time
}

// NewSnapshotRecorder returns a recorder that snapshots src into store.
func NewSnapshotRecorder(src Source, store SnapshotStore) *SnapshotRecorder {
	return &SnapshotRecorder{src: src, store: store, now: time.Now}
}

// Name identifies the recorder in failure logs.
func (r *SnapshotRecorder) Name() string { return "snapshot" }

// Record ignores the event itself; any commit changes the picture.
func (r *SnapshotRecorder) Record(ctx context.Context, _ model.BookingEvent) error {
	return r.Refresh(ctx)
}

// Refresh takes and stores a snapshot now.  It is also called once at
// startup so the display has something to show before the first booking.
func (r *SnapshotRecorder) Refresh(ctx context.Context) error {
	s, err := Take(r.src, r.now())
	if err != nil {
		return err
	}
	return r.store.Save(ctx, s)
}
