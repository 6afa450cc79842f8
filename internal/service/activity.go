// Package service implements the trade activity check: the classifier that
// sorts whitelisted assets by their recent trade activity and the report
// service that feeds it from the registry and the trade statistics source.
package service

import (
	"sort"
	"time"

	"github.com/guttosm/tradeactivity/internal/domain/models"
)

const day = 24 * time.Hour

// Params holds the thresholds of the activity check.
type Params struct {
	// WindowDays is the length of the trailing window.
	WindowDays int
	// MinTradeAmount is the traded volume in satoshi that makes an asset
	// sufficiently traded on its own.
	MinTradeAmount int64
	// MinNumOfTrades is the trade count that makes an asset sufficiently
	// traded on its own.
	MinNumOfTrades int
	// GracePeriod is the warm-up period counted from Asset.ListedAt.
	GracePeriod time.Duration
	// NewlyAdded lists codes that are warming up regardless of their
	// listing date.
	NewlyAdded map[string]struct{}
}

// DefaultParams returns the standard thresholds: 120 days, 0.001 BTC or 3 trades.
func DefaultParams() Params {
	return Params{
		WindowDays:     120,
		MinTradeAmount: 100_000,
		MinNumOfTrades: 3,
		GracePeriod:    120 * day,
		NewlyAdded:     map[string]struct{}{},
	}
}

// CodeSet builds a NewlyAdded set.
func CodeSet(codes ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return set
}

// ActivityClassifier classifies whitelisted assets by trade activity.
// It performs no I/O; every run is a pure function of its inputs and the clock.
type ActivityClassifier struct {
	params Params
	now    func() time.Time
}

// ClassifierOption customizes an ActivityClassifier.
type ClassifierOption func(*ActivityClassifier)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ClassifierOption {
	return func(c *ActivityClassifier) { c.now = now }
}

// NewActivityClassifier returns a classifier using p.
func NewActivityClassifier(p Params, opts ...ClassifierOption) *ActivityClassifier {
	if p.NewlyAdded == nil {
		p.NewlyAdded = map[string]struct{}{}
	}
	c := &ActivityClassifier{params: p, now: time.Now}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Cutoff returns the start of the window ending at now.
func (c *ActivityClassifier) Cutoff(now time.Time) time.Time {
	return now.Add(-time.Duration(c.params.WindowDays) * day)
}

// Aggregate sums the records of crypto assets traded strictly after cutoff.
func Aggregate(records []models.TradeRecord, cutoff time.Time, isCrypto func(code string) bool) map[string]models.AggregateEntry {
	out := make(map[string]models.AggregateEntry)
	for _, r := range records {
		if !isCrypto(r.BaseCurrency) || !r.TradeDate.After(cutoff) {
			continue
		}
		e := out[r.BaseCurrency]
		e.Code = r.BaseCurrency
		e.TotalAmount += r.TradeAmount
		e.TradeCount++
		out[r.BaseCurrency] = e
	}
	return out
}

// IsWarmingUp reports whether the asset is inside its warm-up period at now.
func (c *ActivityClassifier) IsWarmingUp(a models.Asset, now time.Time) bool {
	if _, ok := c.params.NewlyAdded[a.Code]; ok {
		return true
	}
	return !a.ListedAt.IsZero() && now.Before(a.ListedAt.Add(c.params.GracePeriod))
}

// Classify assigns the category of one asset. entry and traded come from
// the aggregate lookup of the asset code.
//
// Warm-up takes precedence over a paid listing fee.
func (c *ActivityClassifier) Classify(a models.Asset, entry models.AggregateEntry, traded bool, now time.Time) models.Category {
	switch {
	case c.IsWarmingUp(a, now):
		return models.NewlyAdded
	case a.FeePaid:
		return models.FeePaid
	case !traded:
		return models.NotTraded
	case entry.TotalAmount >= c.params.MinTradeAmount || entry.TradeCount >= c.params.MinNumOfTrades:
		return models.SufficientlyTraded
	default:
		return models.InsufficientlyTraded
	}
}

// Run classifies every whitelisted asset against records at the
// classifier's current time. The whitelist order is preserved; Asset.FeePaid
// must already be resolved.
func (c *ActivityClassifier) Run(whitelist []models.Asset, records []models.TradeRecord, isCrypto func(code string) bool) *models.Report {
	return c.RunAt(c.now(), whitelist, records, isCrypto)
}

// RunAt is Run with an explicit time.
func (c *ActivityClassifier) RunAt(now time.Time, whitelist []models.Asset, records []models.TradeRecord, isCrypto func(code string) bool) *models.Report {
	cutoff := c.Cutoff(now)
	agg := Aggregate(records, cutoff, isCrypto)

	report := &models.Report{
		GeneratedAt:     now,
		Cutoff:          cutoff,
		Classifications: make([]models.Classification, 0, len(whitelist)),
	}
	for _, a := range whitelist {
		entry, traded := agg[a.Code]
		cat := c.Classify(a, entry, traded, now)
		report.Classifications = append(report.Classifications, models.Classification{
			Asset:       a,
			Category:    cat,
			TotalAmount: entry.TotalAmount,
			TradeCount:  entry.TradeCount,
		})
		if cat.Removable() {
			report.ToRemove = append(report.ToRemove, a)
		}
	}
	sort.SliceStable(report.ToRemove, func(i, j int) bool { return report.ToRemove[i].Code < report.ToRemove[j].Code })
	return report
}
