package ingestion

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/tradeactivity/internal/logger"
	"github.com/guttosm/tradeactivity/internal/storage"
)

const (
	fileSuffix       = ".csv"
	defaultBatchSize = 5000
	maxParallelFiles = 8
)

// repoCtor is an indirection for creating the repository; tests can override this.
var repoCtor = func(db *sql.DB) storage.TradeStatisticsRepository {
	return storage.NewTradeStatisticsRepository(db)
}

// listTradeFiles returns the statistics files of dir sorted by name.
func listTradeFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), fileSuffix) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// ProcessDirectory ingests every trade statistics file of dir into Postgres.
//
//   - dir: directory containing ";"-separated .csv exports.
//   - db:  open *sql.DB (PostgreSQL).
//   - parallel: max files processed concurrently (0 = min(8, NumCPU)).
//   - force: re-ingest files already present in ingestion_log.
//
// Behavior:
//   - Each file is ingested once; ingestion_log keyed by file name keeps
//     the trade set free of duplicates across runs.
//   - Rows previously loaded from a file are deleted before it is loaded
//     again, either with force or after a run that failed midway.
//   - If any file returns error, cancels the rest and returns that error.
func ProcessDirectory(ctx context.Context, dir string, db *sql.DB, parallel int, force bool) error {
	repo := repoCtor(db)

	files, err := listTradeFiles(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s files found in %s", fileSuffix, dir)
	}

	maxParallel := maxParallelFiles
	if parallel > 0 {
		if parallel < maxParallel {
			maxParallel = parallel
		}
	} else if c := runtime.NumCPU(); c < maxParallel {
		maxParallel = c
	}

	logger.L().Info().Int("files", len(files)).Str("dir", dir).Int("max_parallel", maxParallel).Msg("ingestion start")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)

	for i, f := range files {
		idx := i
		path := f
		g.Go(func() error {
			return ingestFile(gctx, repo, path, idx, len(files), force)
		})
	}

	return g.Wait()
}

func ingestFile(ctx context.Context, repo storage.TradeStatisticsRepository, path string, idx, total int, force bool) error {
	start := time.Now()
	base := filepath.Base(path)
	log := logger.L().With().Int("idx", idx+1).Int("total", total).Str("file", base).Logger()
	log.Info().Msg("file start")

	exists, err := repo.HasIngestionForFile(ctx, base)
	if err != nil {
		log.Error().Err(err).Msg("check ingestion log failed")
		return fmt.Errorf("file %s: check ingestion log: %w", path, err)
	}
	if exists && !force {
		log.Info().Bool("skipped", true).Msg("already ingested")
		return nil
	}
	// Rows of an earlier run that failed midway have no ingestion_log entry.
	if err := repo.DeleteTradesByFile(ctx, base); err != nil {
		log.Error().Err(err).Msg("delete existing failed")
		return fmt.Errorf("file %s: delete existing: %w", path, err)
	}

	rows, err := parseAndPersistFile(ctx, path, base, repo, defaultBatchSize)
	if err != nil {
		log.Error().Dur("elapsed", time.Since(start)).Err(err).Msg("file failed")
		return fmt.Errorf("file %s: %w", path, err)
	}
	if err := repo.UpsertIngestionLog(ctx, base, rows); err != nil {
		log.Error().Err(err).Msg("update ingestion log failed")
		return fmt.Errorf("file %s: upsert ingestion log: %w", path, err)
	}

	log.Info().Int("rows", rows).Dur("elapsed", time.Since(start)).Bool("force", force).Msg("file done")
	return nil
}
