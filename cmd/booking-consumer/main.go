// Command booking-consumer appends booking events from RabbitMQ to a log file.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/iliyamo/flight-seat-reservation/internal/config"
	"github.com/iliyamo/flight-seat-reservation/internal/logger"
	"github.com/iliyamo/flight-seat-reservation/internal/queue"
)

func main() {
	cfg, err := config.Load()
	lg := logger.New(os.Stdout, cfg.Log.Level, cfg.Log.JSON)
	if err != nil {
		lg.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := &queue.Consumer{
		URL:    cfg.Events.URL,
		Queue:  cfg.Events.Queue,
		LogDir: cfg.Events.LogDir,
		Log:    lg,
	}
	lg.Info("booking-consumer: starting", "queue", c.Queue, "log_dir", c.LogDir)
	if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("booking-consumer: stopped", "error", err)
		os.Exit(1)
	}
	lg.Info("booking-consumer: stopped")
}
