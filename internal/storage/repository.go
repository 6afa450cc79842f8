package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/guttosm/tradeactivity/internal/domain/models"
	pq "github.com/lib/pq"
)

// TradeStatisticsRepository defines contract for DB operations on the trade statistics set.
type TradeStatisticsRepository interface {
	TradeRecords(ctx context.Context) ([]models.TradeRecord, error)
	InsertTradesBatch(ctx context.Context, file string, records []models.TradeRecord) error
	HasIngestionForFile(ctx context.Context, file string) (bool, error)
	UpsertIngestionLog(ctx context.Context, file string, rowCount int) error
	DeleteTradesByFile(ctx context.Context, file string) error
}

type tradeStatisticsRepository struct {
	db *sql.DB
}

func NewTradeStatisticsRepository(db *sql.DB) TradeStatisticsRepository {
	return &tradeStatisticsRepository{db: db}
}

// TradeRecords returns the full trade statistics set ordered by trade date.
// Window and currency filtering belong to the report, not to the query.
func (r *tradeStatisticsRepository) TradeRecords(ctx context.Context) ([]models.TradeRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT base_currency, trade_date, trade_amount
		FROM trade_statistics
		ORDER BY trade_date
	`)
	if err != nil {
		return nil, fmt.Errorf("query trade statistics: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.TradeRecord
	for rows.Next() {
		var rec models.TradeRecord
		if err := rows.Scan(&rec.BaseCurrency, &rec.TradeDate, &rec.TradeAmount); err != nil {
			return nil, fmt.Errorf("scan trade statistics: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trade statistics: %w", err)
	}
	return out, nil
}

// InsertTradesBatch copies records into trade_statistics in a single transaction,
// tagging every row with the file it came from.
func (r *tradeStatisticsRepository) InsertTradesBatch(ctx context.Context, file string, records []models.TradeRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(
		"trade_statistics",
		"base_currency",
		"trade_date",
		"trade_amount",
		"source_file",
	))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx, rec.BaseCurrency, rec.TradeDate, rec.TradeAmount, file); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// HasIngestionForFile checks if a statistics file was already ingested.
func (r *tradeStatisticsRepository) HasIngestionForFile(ctx context.Context, file string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM ingestion_log WHERE file_name = $1)`, file).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// UpsertIngestionLog records (or refreshes) the ingestion entry of a file.
func (r *tradeStatisticsRepository) UpsertIngestionLog(ctx context.Context, file string, rowCount int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ingestion_log (file_name, row_count)
		VALUES ($1, $2)
		ON CONFLICT (file_name)
		DO UPDATE SET row_count = EXCLUDED.row_count,
					  ingested_at = NOW()
	`, file, rowCount)
	return err
}

// DeleteTradesByFile removes every record ingested from file.
func (r *tradeStatisticsRepository) DeleteTradesByFile(ctx context.Context, file string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM trade_statistics WHERE source_file = $1`, file)
	return err
}
