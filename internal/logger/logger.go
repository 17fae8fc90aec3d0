package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/iliyamo/flight-seat-reservation/internal/model"
)

// Logger wraps slog.Logger with booking specific helpers.
type Logger struct {
	*slog.Logger
}

// Options controls where and how much is logged.  The terminal belongs to
// the attendant, so output only ever goes to File.
type Options struct {
	Level string
	File  string
	// JSON selects the JSON handler; text is used otherwise.
	JSON bool
}

// Open creates the log file (and its directory) and returns a logger
// writing to it.  The returned closer releases the file.
func Open(opts Options) (*Logger, io.Closer, error) {
	if dir := filepath.Dir(opts.File); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, opts.Level, opts.JSON), f, nil
}

// New creates a logger writing to w at the named level.
func New(w io.Writer, level string, json bool) *Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl == slog.LevelDebug,
	}
	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return &Logger{Logger: slog.New(handler)}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, "error", false)
}

// ParseLevel converts a level name to slog.Level, defaulting to info.
func ParseLevel(levelStr string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithError adds error to logger context
func (l *Logger) WithError(err error) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("error", err.Error()))}
}

// WithFields adds multiple fields to logger context
func (l *Logger) WithFields(fields map[string]any) *Logger {
	args := make([]any, 0, len(fields))
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	return &Logger{Logger: l.Logger.With(args...)}
}

// Writer returns an io.Writer that logs each write as one record at
// level.  It lets libraries with their own loggers write to the log file.
func (l *Logger) Writer(level slog.Level) io.Writer {
	return slog.NewLogLogger(l.Handler(), level).Writer()
}

// Booking logging methods

// LogBookingCreated logs a committed new booking.
func (l *Logger) LogBookingCreated(ctx context.Context, ev model.BookingEvent) {
	l.Logger.InfoContext(ctx, "Booking Created", bookingAttrs(ev)...)
}

// LogBookingMoved logs a committed seat change.
func (l *Logger) LogBookingMoved(ctx context.Context, ev model.BookingEvent) {
	attrs := bookingAttrs(ev)
	if ev.From != nil {
		attrs = append(attrs,
			slog.String("from_tier", ev.From.Tier.Name()),
			slog.String("from_seat", ev.From.Label()),
		)
	}
	l.Logger.InfoContext(ctx, "Booking Moved", attrs...)
}

// LogBookingDeleted logs a released seat.
func (l *Logger) LogBookingDeleted(ctx context.Context, ev model.BookingEvent) {
	l.Logger.InfoContext(ctx, "Booking Deleted",
		slog.String("reference", ev.Reference.String()),
		slog.String("passenger", ev.PassengerName),
		slog.String("tier", ev.Seat.Tier.Name()),
		slog.String("seat", ev.Seat.Label()),
	)
}

// LogRecorderFailure logs a recorder that could not take an event.  The
// booking itself stands.
func (l *Logger) LogRecorderFailure(ctx context.Context, recorder string, ev model.BookingEvent, err error) {
	l.Logger.ErrorContext(ctx, "Recorder Failure",
		slog.String("recorder", recorder),
		slog.String("kind", ev.Kind.String()),
		slog.String("reference", ev.Reference.String()),
		slog.String("error", err.Error()),
	)
}

// LogRejectedInput logs an attendant entry that failed a booking rule.
func (l *Logger) LogRejectedInput(ctx context.Context, step string, err error) {
	l.Logger.DebugContext(ctx, "Input Rejected",
		slog.String("step", step),
		slog.String("error", err.Error()),
	)
}

func bookingAttrs(ev model.BookingEvent) []any {
	return []any{
		slog.String("reference", ev.Reference.String()),
		slog.String("passenger", ev.PassengerName),
		slog.Int("age", ev.Age),
		slog.String("tax_rate", ev.TaxRate.String()),
		slog.String("tier", ev.Seat.Tier.Name()),
		slog.String("seat", ev.Seat.Label()),
		slog.Int64("owed_cents", ev.OwedCents),
		slog.Int64("tendered_cents", ev.TenderedCents),
		slog.Int64("change_cents", ev.ChangeCents),
	}
}
