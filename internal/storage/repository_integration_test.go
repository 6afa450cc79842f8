//go:build integration
// +build integration

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/lib/pq"
	goose "github.com/pressly/goose/v3"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/guttosm/tradeactivity/internal/domain/models"
)

// startPostgres spins up a Postgres container and returns a DSN and terminate func.
func startPostgres(t *testing.T) (dsn string, terminate func()) {
	t.Helper()
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "tradeactivity",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(host string, port nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=tradeactivity sslmode=disable", host, port.Port())
		}).WithStartupTimeout(60 * time.Second),
	}

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container start: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", "postgres", "postgres", host, port.Port(), "tradeactivity")
	terminate = func() { _ = container.Terminate(context.Background()) }
	return dsn, terminate
}

func openDB(t *testing.T, dsn string) *sql.DB {
	t.Helper()
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	if err := goose.SetDialect("postgres"); err != nil {
		t.Fatalf("dialect: %v", err)
	}
	// migrations path relative to this test file (internal/storage → ../../db/migrations)
	path := filepath.Join("..", "..", "db", "migrations")
	if err := goose.Up(db, path); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
}

func seedTrades(t *testing.T, repo TradeStatisticsRepository) time.Time {
	t.Helper()
	base := time.Date(2026, 9, 11, 12, 0, 0, 0, time.UTC)
	batch := []models.TradeRecord{
		{BaseCurrency: "XMR", TradeDate: base, TradeAmount: 40000},
		{BaseCurrency: "XMR", TradeDate: base.Add(time.Hour), TradeAmount: 60000},
		{BaseCurrency: "ETH", TradeDate: base.Add(-time.Hour), TradeAmount: 2500},
	}
	if err := repo.InsertTradesBatch(context.Background(), "seed.csv", batch); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return base
}

func TestRepository_Integration(t *testing.T) {
	dsn, terminate := startPostgres(t)
	defer terminate()
	db := openDB(t, dsn)
	defer db.Close()
	runMigrations(t, db)

	ctx := context.Background()
	repo := NewTradeStatisticsRepository(db)
	base := seedTrades(t, repo)

	t.Run("records ordered by trade date", func(t *testing.T) {
		out, err := repo.TradeRecords(ctx)
		if err != nil {
			t.Fatalf("TradeRecords: %v", err)
		}
		if len(out) != 3 {
			t.Fatalf("want 3 records, got %d", len(out))
		}
		if out[0].BaseCurrency != "ETH" || !out[1].TradeDate.Equal(base) || out[2].TradeAmount != 60000 {
			t.Fatalf("unexpected order: %+v", out)
		}
	})

	t.Run("ingestion log upsert+exists", func(t *testing.T) {
		if err := repo.UpsertIngestionLog(ctx, "seed.csv", 3); err != nil {
			t.Fatalf("upsert: %v", err)
		}
		if err := repo.UpsertIngestionLog(ctx, "seed.csv", 4); err != nil {
			t.Fatalf("second upsert: %v", err)
		}
		ok, err := repo.HasIngestionForFile(ctx, "seed.csv")
		if err != nil || !ok {
			t.Fatalf("exists want true, got ok=%v err=%v", ok, err)
		}
		ok, err = repo.HasIngestionForFile(ctx, "other.csv")
		if err != nil || ok {
			t.Fatalf("exists want false, got ok=%v err=%v", ok, err)
		}
	})

	t.Run("delete by file", func(t *testing.T) {
		if err := repo.DeleteTradesByFile(ctx, "seed.csv"); err != nil {
			t.Fatalf("delete: %v", err)
		}
		var cnt int
		if err := db.QueryRow("SELECT COUNT(*) FROM trade_statistics WHERE source_file=$1", "seed.csv").Scan(&cnt); err != nil {
			t.Fatalf("count: %v", err)
		}
		if cnt != 0 {
			t.Fatalf("want 0 rows after delete, got %d", cnt)
		}
	})
}
