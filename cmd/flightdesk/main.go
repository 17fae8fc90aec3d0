// Command flightdesk runs the attendant's booking desk on the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/flight-seat-reservation/internal/cache"
	"github.com/iliyamo/flight-seat-reservation/internal/chart"
	"github.com/iliyamo/flight-seat-reservation/internal/config"
	"github.com/iliyamo/flight-seat-reservation/internal/console"
	"github.com/iliyamo/flight-seat-reservation/internal/database"
	"github.com/iliyamo/flight-seat-reservation/internal/handler"
	"github.com/iliyamo/flight-seat-reservation/internal/inventory"
	"github.com/iliyamo/flight-seat-reservation/internal/logger"
	"github.com/iliyamo/flight-seat-reservation/internal/middleware"
	"github.com/iliyamo/flight-seat-reservation/internal/repository"
	"github.com/iliyamo/flight-seat-reservation/internal/router"
	"github.com/iliyamo/flight-seat-reservation/internal/service"
	"github.com/iliyamo/flight-seat-reservation/internal/utils"
	"github.com/iliyamo/flight-seat-reservation/internal/workflow"
)

const infoText = "Flight Desk v1.0, seat bookings for the gate attendant"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "flightdesk:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	lg, logFile, err := logger.Open(logger.Options{Level: cfg.Log.Level, File: cfg.Log.File, JSON: cfg.Log.JSON})
	if err != nil {
		return err
	}
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	inv, err := inventory.New(cfg.Layout.Layouts())
	if err != nil {
		return err
	}
	con := console.New(os.Stdin, os.Stdout)
	con.Show(chart.Banner(fmt.Sprintf("Hello! Welcome to %s!", cfg.AirlineName), infoText))

	if err := con.SignOn(ctx, cfg.SignOn.PINHash); err != nil {
		if errors.Is(err, workflow.Quit) {
			return nil
		}
		lg.Warn("sign-on failed", "error", err)
		return err
	}

	rdb := openRedis(ctx, cfg.Snapshot, lg)
	if rdb != nil {
		defer rdb.Close()
	}
	var store cache.SnapshotStore = cache.NewMemorySnapshotStore()
	if rdb != nil {
		store = cache.NewRedisSnapshotStore(rdb, cfg.Snapshot.Key, cfg.Snapshot.TTL)
	}
	snapshots := cache.NewSnapshotRecorder(inv, store)
	if err := snapshots.Refresh(ctx); err != nil {
		lg.Warn("initial snapshot failed", "error", err)
	}

	recorders := []workflow.Recorder{snapshots}
	if cfg.Events.Enabled {
		recorders = append(recorders, service.NewEventPublisher(cfg.Events.URL, cfg.Events.Queue, lg))
		lg.Info("publishing booking events", "queue", cfg.Events.Queue)
	}
	if cfg.Ledger.Enabled {
		if ledger, closeLedger := openLedger(ctx, cfg.Ledger, lg); ledger != nil {
			defer closeLedger()
			recorders = append(recorders, ledger)
		}
	}

	if cfg.Display.Enabled {
		srv, err := startDisplay(cfg.Display, store, rdb, lg)
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	session := lg.WithFields(map[string]any{"env": cfg.Env, "airline": cfg.AirlineName})
	machine := workflow.New(inv, con, con, workflow.WithRecorders(recorders...), workflow.WithLogger(session))
	session.Info("session started")
	err = machine.Run(ctx)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	session.Info("session ended", "error", err)
	return err
}

// openRedis returns nil when Redis is disabled or unreachable; snapshots
// then stay in memory and the display API is not rate limited.
func openRedis(ctx context.Context, cfg config.SnapshotConfig, lg *logger.Logger) *redis.Client {
	if !cfg.RedisEnabled {
		return nil
	}
	rdb, err := config.NewRedisClient(ctx, cfg)
	if err != nil {
		lg.Warn("redis unavailable; keeping snapshots in memory", "error", err)
		return nil
	}
	return rdb
}

func openLedger(ctx context.Context, cfg config.LedgerConfig, lg *logger.Logger) (*repository.LedgerRepo, func()) {
	db, err := database.Open(ctx, cfg)
	if err != nil {
		lg.Warn("ledger database unavailable; bookings will not be recorded", "error", err)
		return nil, nil
	}
	ledger := repository.NewLedgerRepo(db)
	if err := ledger.EnsureSchema(ctx); err != nil {
		lg.Warn("ledger schema setup failed", "error", err)
		_ = db.Close()
		return nil, nil
	}
	return ledger, func() { _ = db.Close() }
}

// startDisplay serves the gate display API in the background and logs a
// freshly minted display token.  Nothing is written to the terminal.
func startDisplay(cfg config.DisplayConfig, store cache.SnapshotStore, rdb *redis.Client, lg *logger.Logger) (*echo.Echo, error) {
	tok, err := utils.NewDisplayToken(cfg.JWTSecret, cfg.TokenTTLMin)
	if err != nil {
		return nil, fmt.Errorf("mint display token: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetOutput(lg.Writer(slog.LevelWarn))
	router.RegisterRoutes(e)
	router.RegisterDisplay(e, handler.NewDisplayHandler(store), cfg.JWTSecret, middleware.RateLimit(cfg, rdb))

	addr := ":" + cfg.Port
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("display server stopped", "error", err)
		}
	}()
	lg.Info("display API listening", "addr", addr, "subject", tok.Subject,
		"token", tok.Token, "expires", tok.Exp.Format(time.RFC3339))
	return e, nil
}
