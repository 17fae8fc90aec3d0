package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/flight-seat-reservation/internal/model"
)

// execer is the part of *sql.DB the ledger writes through.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// LedgerRepo appends one row per committed booking operation to the
// booking_ledger table.  Rows are never updated; the ledger is the
// airline's record of what was sold, moved and released at the desk.
type LedgerRepo struct {
	db execer
}

// NewLedgerRepo returns a new LedgerRepo bound to the given database.
func NewLedgerRepo(db *sql.DB) *LedgerRepo { return &LedgerRepo{db: db} }

const createLedgerTable = `CREATE TABLE IF NOT EXISTS booking_ledger (
    id             BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
    reference      CHAR(36)      NOT NULL,
    kind           VARCHAR(16)   NOT NULL,
    passenger      VARCHAR(128)  NOT NULL,
    age            SMALLINT      NOT NULL,
    tax_rate       DECIMAL(7,3)  NULL,
    tier           VARCHAR(32)   NOT NULL,
    seat           VARCHAR(8)    NOT NULL,
    from_tier      VARCHAR(32)   NULL,
    from_seat      VARCHAR(8)    NULL,
    owed_cents     BIGINT        NOT NULL DEFAULT 0,
    tendered_cents BIGINT        NOT NULL DEFAULT 0,
    change_cents   BIGINT        NOT NULL DEFAULT 0,
    occurred_at    DATETIME(6)   NOT NULL,
    UNIQUE KEY uq_ledger_event (reference, kind, occurred_at),
    KEY idx_ledger_occurred (occurred_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// EnsureSchema creates the ledger table when it does not exist yet.
func (r *LedgerRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createLedgerTable); err != nil {
		return fmt.Errorf("create booking_ledger: %w", err)
	}
	return nil
}

// LedgerRecord mirrors one row of booking_ledger.
type LedgerRecord struct {
	Reference     string
	Kind          string
	Passenger     string
	Age           int
	TaxRate       sql.NullString
	Tier          string
	Seat          string
	FromTier      sql.NullString
	FromSeat      sql.NullString
	OwedCents     int64
	TenderedCents int64
	ChangeCents   int64
}

// RecordFromEvent flattens a booking event into a ledger row.
func RecordFromEvent(ev model.BookingEvent) LedgerRecord {
	rec := LedgerRecord{
		Reference:     ev.Reference.String(),
		Kind:          ev.Kind.String(),
		Passenger:     ev.PassengerName,
		Age:           ev.Age,
		Tier:          ev.Seat.Tier.Name(),
		Seat:          ev.Seat.Label(),
		OwedCents:     ev.OwedCents,
		TenderedCents: ev.TenderedCents,
		ChangeCents:   ev.ChangeCents,
	}
	if ev.Kind != model.EventDeleted {
		rec.TaxRate = sql.NullString{String: ev.TaxRate.StringFixed(3), Valid: true}
	}
	if ev.From != nil {
		rec.FromTier = sql.NullString{String: ev.From.Tier.Name(), Valid: true}
		rec.FromSeat = sql.NullString{String: ev.From.Label(), Valid: true}
	}
	return rec
}

const insertLedgerRow = `INSERT INTO booking_ledger
    (reference, kind, passenger, age, tax_rate, tier, seat, from_tier, from_seat,
     owed_cents, tendered_cents, change_cents, occurred_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// Name identifies the ledger in recorder failure logs.
func (r *LedgerRepo) Name() string { return "ledger" }

// Record appends ev to the ledger.  A second row for the same event
// reports ErrConflict.
func (r *LedgerRepo) Record(ctx context.Context, ev model.BookingEvent) error {
	rec := RecordFromEvent(ev)
	_, err := r.db.ExecContext(ctx, insertLedgerRow,
		rec.Reference, rec.Kind, rec.Passenger, rec.Age, rec.TaxRate, rec.Tier, rec.Seat,
		rec.FromTier, rec.FromSeat, rec.OwedCents, rec.TenderedCents, rec.ChangeCents,
		ev.OccurredAt.UTC(),
	)
	if isDuplicate(err) {
		return fmt.Errorf("ledger row %s %s: %w", rec.Kind, rec.Reference, ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("insert ledger row: %w", err)
	}
	return nil
}
