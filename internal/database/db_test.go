package database

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/flight-seat-reservation/internal/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.LedgerConfig{
		DBUser: "agent", DBPass: "s3cret", DBHost: "db.internal", DBPort: "3307", DBName: "flightdesk",
	})
	if !strings.HasPrefix(dsn, "agent:s3cret@tcp(db.internal:3307)/flightdesk?") || !strings.Contains(dsn, "charset=utf8mb4") {
		t.Errorf("DSN = %q", dsn)
	}
	mc, err := mysql.ParseDSN(dsn)
	if err != nil {
		t.Fatal(err)
	}
	if !mc.ParseTime || mc.Loc != time.UTC || mc.DBName != "flightdesk" {
		t.Errorf("parsed = %+v", mc)
	}
}

func TestOpenUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_, err := Open(ctx, config.LedgerConfig{DBUser: "u", DBHost: "127.0.0.1", DBPort: "1", DBName: "x"})
	if err == nil {
		t.Fatal("expected a connection error")
	}
}
