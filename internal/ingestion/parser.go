package ingestion

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/tradeactivity/internal/domain/models"
	"github.com/guttosm/tradeactivity/internal/storage"
)

// expectedHeaders enforces strict column ordering for trade statistics exports.
// If the header doesn't match EXACTLY (order + count), the file is rejected.
var expectedHeaders = []string{
	"base_currency",
	"trade_date",
	"trade_amount",
}

// readTradeFile opens, validates and streams one statistics file, calling
// emit for every parsed record. It returns the number of records emitted.
//
// It fails on:
//   - header not matching expected order/length
//   - a row with a wrong column count or an unparsable value
//   - unrecoverable I/O errors or context cancellation
func readTradeFile(ctx context.Context, path string, emit func(models.TradeRecord) error) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.Comma = ';'
	r.FieldsPerRecord = -1 // checked explicitly for better messages
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	if len(header) != len(expectedHeaders) {
		return 0, fmt.Errorf("invalid header length: expected %d, got %d", len(expectedHeaders), len(header))
	}
	for i, h := range header {
		if strings.TrimSpace(h) != expectedHeaders[i] {
			return 0, fmt.Errorf("invalid header at col %d: expected %q, got %q", i+1, expectedHeaders[i], h)
		}
	}

	total := 0
	lineNumber := 1

	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		rec, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return 0, fmt.Errorf("read line after %d: %w", lineNumber, err)
		}
		lineNumber++

		if len(rec) != len(expectedHeaders) {
			return 0, fmt.Errorf("invalid column count on line %d: expected %d got %d", lineNumber, len(expectedHeaders), len(rec))
		}

		tr, err := recordToTrade(rec)
		if err != nil {
			return 0, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		if err := emit(tr); err != nil {
			return 0, err
		}
		total++
	}

	return total, nil
}

// parseAndPersistFile parses one file and persists it in batches of at most
// batch records, tagging rows with the file's base name.
func parseAndPersistFile(ctx context.Context, path, file string, repo storage.TradeStatisticsRepository, batch int) (int, error) {
	buf := make([]models.TradeRecord, 0, batch)

	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		if err := repo.InsertTradesBatch(ctx, file, buf); err != nil {
			return err
		}
		buf = buf[:0]
		return nil
	}

	total, err := readTradeFile(ctx, path, func(tr models.TradeRecord) error {
		buf = append(buf, tr)
		if len(buf) >= batch {
			if err := flush(); err != nil {
				return fmt.Errorf("flush batch: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if err := flush(); err != nil {
		return 0, fmt.Errorf("final flush: %w", err)
	}
	return total, nil
}

// recordToTrade converts a CSV record (length already validated) into a
// models.TradeRecord.
//
// Columns:
//
//	0 base_currency → BaseCurrency (upper-cased, required)
//	1 trade_date    → TradeDate (RFC3339 or unix milliseconds, required)
//	2 trade_amount  → TradeAmount (satoshi, non-negative integer)
func recordToTrade(rec []string) (models.TradeRecord, error) {
	var t models.TradeRecord

	t.BaseCurrency = strings.ToUpper(strings.TrimSpace(rec[0]))
	if t.BaseCurrency == "" {
		return t, fmt.Errorf("empty base_currency")
	}

	d, err := parseTradeDate(strings.TrimSpace(rec[1]))
	if err != nil {
		return t, fmt.Errorf("invalid trade_date: %v", err)
	}
	t.TradeDate = d

	amount, err := strconv.ParseInt(strings.TrimSpace(rec[2]), 10, 64)
	if err != nil {
		return t, fmt.Errorf("invalid trade_amount: %v", err)
	}
	if amount < 0 {
		return t, fmt.Errorf("negative trade_amount: %d", amount)
	}
	t.TradeAmount = amount

	return t, nil
}

func parseTradeDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty value")
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	return time.Parse(time.RFC3339, s)
}
