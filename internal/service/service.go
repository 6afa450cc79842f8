package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/guttosm/tradeactivity/internal/domain/models"
	"github.com/guttosm/tradeactivity/internal/logger"
)

// ErrSourceIO wraps every failure of the trade statistics source or the
// asset registry.
var ErrSourceIO = errors.New("source I/O error")

// TradeSource supplies the trade statistics.
type TradeSource interface {
	TradeRecords(ctx context.Context) ([]models.TradeRecord, error)
}

// AssetRegistry supplies the whitelist and the listing fee status.
type AssetRegistry interface {
	Whitelist(ctx context.Context) ([]models.Asset, error)
	HasPaidFee(ctx context.Context, code string) (bool, error)
	IsCrypto(code string) bool
}

// Recorder observes report runs.
type Recorder interface {
	ObserveReport(r *models.Report, elapsed time.Duration)
	ObserveFailure()
}

// ReportService runs the trade activity check against its collaborators.
type ReportService interface {
	BuildReport(ctx context.Context) (*models.Report, error)
	GenerateReport(ctx context.Context) (string, error)
}

type reportService struct {
	classifier *ActivityClassifier
	trades     TradeSource
	registry   AssetRegistry
	recorder   Recorder
}

// NewReportService wires a ReportService. recorder may be nil.
func NewReportService(c *ActivityClassifier, trades TradeSource, registry AssetRegistry, recorder Recorder) ReportService {
	return &reportService{classifier: c, trades: trades, registry: registry, recorder: recorder}
}

// BuildReport loads the whitelist and the trade records once and classifies
// them at the current time.
func (s *reportService) BuildReport(ctx context.Context) (*models.Report, error) {
	start := time.Now()
	report, err := s.build(ctx)
	if err != nil {
		if s.recorder != nil {
			s.recorder.ObserveFailure()
		}
		logger.L().Error().Err(err).Msg("trade activity check failed")
		return nil, err
	}
	elapsed := time.Since(start)
	if s.recorder != nil {
		s.recorder.ObserveReport(report, elapsed)
	}

	logger.L().Info().
		Time("cutoff", report.Cutoff).
		Int("whitelisted", len(report.Classifications)).
		Int("to_remove", len(report.ToRemove)).
		Int("newly_added", len(report.Bucket(models.NewlyAdded))).
		Int("sufficiently_traded", len(report.Bucket(models.SufficientlyTraded))).
		Dur("elapsed", elapsed).
		Msg("trade activity check done")
	return report, nil
}

func (s *reportService) build(ctx context.Context) (*models.Report, error) {
	whitelist, err := s.registry.Whitelist(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load whitelist: %w", ErrSourceIO, err)
	}
	for i := range whitelist {
		paid, err := s.registry.HasPaidFee(ctx, whitelist[i].Code)
		if err != nil {
			return nil, fmt.Errorf("%w: fee status of %s: %w", ErrSourceIO, whitelist[i].Code, err)
		}
		whitelist[i].FeePaid = paid
	}

	records, err := s.trades.TradeRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load trade statistics: %w", ErrSourceIO, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return s.classifier.Run(whitelist, records, s.registry.IsCrypto), nil
}

// GenerateReport builds the report and renders it as text.
func (s *reportService) GenerateReport(ctx context.Context) (string, error) {
	report, err := s.BuildReport(ctx)
	if err != nil {
		return "", err
	}
	text := FormatReport(report)
	logger.L().Debug().Msg(text)
	return text, nil
}
