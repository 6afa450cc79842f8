package storage

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/guttosm/tradeactivity/internal/domain/models"
)

type dummyErr struct{}

func (dummyErr) Error() string { return "dummy" }

func newMockRepo(t *testing.T) (*tradeStatisticsRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	repo := &tradeStatisticsRepository{db: db}
	cleanup := func() { _ = db.Close() }
	return repo, mock, cleanup
}

func TestTradeRecords_SQLMock(t *testing.T) {
	selectRegex := `SELECT base_currency, trade_date, trade_amount\s+FROM trade_statistics\s+ORDER BY trade_date`
	d1 := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 9, 2, 11, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		want    int
		wantErr bool
	}{
		{
			name: "rows",
			setup: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"base_currency", "trade_date", "trade_amount"}).
					AddRow("XMR", d1, int64(100000)).
					AddRow("ETH", d2, int64(2500))
				mock.ExpectQuery(selectRegex).WillReturnRows(rows)
			},
			want: 2,
		},
		{
			name: "empty",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(selectRegex).WillReturnRows(sqlmock.NewRows([]string{"base_currency", "trade_date", "trade_amount"}))
			},
			want: 0,
		},
		{
			name: "query error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(selectRegex).WillReturnError(dummyErr{})
			},
			wantErr: true,
		},
		{
			name: "row error",
			setup: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"base_currency", "trade_date", "trade_amount"}).
					AddRow("XMR", d1, int64(1)).
					RowError(0, dummyErr{})
				mock.ExpectQuery(selectRegex).WillReturnRows(rows)
			},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, done := newMockRepo(t)
			defer done()
			tc.setup(mock)

			out, err := repo.TradeRecords(context.Background())
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got out=%+v", out)
				}
			} else {
				if err != nil || len(out) != tc.want {
					t.Fatalf("unexpected out=%+v err=%v", out, err)
				}
			}
			if tc.name == "rows" && (out[0].BaseCurrency != "XMR" || out[0].TradeAmount != 100000 || !out[0].TradeDate.Equal(d1)) {
				t.Fatalf("unexpected first record: %+v", out[0])
			}

			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestIngestionLog_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()
	ctx := context.Background()

	// HasIngestionForFile
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM ingestion_log WHERE file_name = $1)")).
		WithArgs("2026-09.csv").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	ok, err := repo.HasIngestionForFile(ctx, "2026-09.csv")
	if err != nil || !ok {
		t.Fatalf("HasIngestionForFile: ok=%v err=%v", ok, err)
	}

	// UpsertIngestionLog
	mock.ExpectExec(`INSERT INTO ingestion_log \(file_name, row_count\)\s+VALUES \(\$1, \$2\)\s+ON CONFLICT \(file_name\)`).
		WithArgs("2026-09.csv", 10).WillReturnResult(sqlmock.NewResult(1, 1))
	if err := repo.UpsertIngestionLog(ctx, "2026-09.csv", 10); err != nil {
		t.Fatalf("UpsertIngestionLog: %v", err)
	}

	// DeleteTradesByFile
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM trade_statistics WHERE source_file = $1")).
		WithArgs("2026-09.csv").WillReturnResult(sqlmock.NewResult(0, 3))
	if err := repo.DeleteTradesByFile(ctx, "2026-09.csv"); err != nil {
		t.Fatalf("DeleteTradesByFile: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestHasIngestionForFile_Error(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM ingestion_log WHERE file_name = $1)")).
		WithArgs("x.csv").WillReturnError(dummyErr{})
	if _, err := repo.HasIngestionForFile(context.Background(), "x.csv"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestInsertTradesBatch_SQLMock(t *testing.T) {
	d := time.Date(2026, 9, 11, 12, 0, 0, 0, time.UTC)
	records := []models.TradeRecord{
		{BaseCurrency: "XMR", TradeDate: d, TradeAmount: 100000},
		{BaseCurrency: "ETH", TradeDate: d, TradeAmount: 5000},
	}

	t.Run("commit", func(t *testing.T) {
		repo, mock, done := newMockRepo(t)
		defer done()

		mock.ExpectBegin()
		prep := mock.ExpectPrepare(`COPY "trade_statistics"`)
		prep.ExpectExec().WithArgs("XMR", d, int64(100000), "a.csv").WillReturnResult(sqlmock.NewResult(0, 1))
		prep.ExpectExec().WithArgs("ETH", d, int64(5000), "a.csv").WillReturnResult(sqlmock.NewResult(0, 1))
		prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		if err := repo.InsertTradesBatch(context.Background(), "a.csv", records); err != nil {
			t.Fatalf("InsertTradesBatch: %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet expectations: %v", err)
		}
	})

	t.Run("rollback on exec error", func(t *testing.T) {
		repo, mock, done := newMockRepo(t)
		defer done()

		mock.ExpectBegin()
		prep := mock.ExpectPrepare(`COPY "trade_statistics"`)
		prep.ExpectExec().WillReturnError(dummyErr{})
		mock.ExpectRollback()

		if err := repo.InsertTradesBatch(context.Background(), "a.csv", records); err == nil {
			t.Fatalf("expected error")
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet expectations: %v", err)
		}
	})

	t.Run("begin error", func(t *testing.T) {
		repo, mock, done := newMockRepo(t)
		defer done()

		mock.ExpectBegin().WillReturnError(dummyErr{})
		if err := repo.InsertTradesBatch(context.Background(), "a.csv", records); err == nil {
			t.Fatalf("expected error")
		}
	})
}
