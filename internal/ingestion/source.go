package ingestion

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/guttosm/tradeactivity/internal/domain/models"
)

// FileSource serves the trade statistics set straight from the .csv exports
// of a directory, without a database.
type FileSource struct {
	dir string
}

// NewFileSource returns a FileSource reading dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

// TradeRecords parses every file of the directory on each call.
// A missing or empty directory is an empty trade set.
func (s *FileSource) TradeRecords(ctx context.Context) ([]models.TradeRecord, error) {
	files, err := listTradeFiles(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var out []models.TradeRecord
	for _, f := range files {
		if _, err := readTradeFile(ctx, f, func(tr models.TradeRecord) error {
			out = append(out, tr)
			return nil
		}); err != nil {
			return nil, fmt.Errorf("file %s: %w", f, err)
		}
	}
	return out, nil
}
