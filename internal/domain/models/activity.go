package models

import "time"

// AggregateEntry accumulates the in-window trades of one asset code.
type AggregateEntry struct {
	Code        string
	TotalAmount int64
	TradeCount  int
}

// Category is the trade-activity class assigned to a whitelisted asset.
type Category int

const (
	// NotTraded: no trade inside the window. Removal candidate.
	NotTraded Category = iota
	// InsufficientlyTraded: traded, but below both thresholds. Removal candidate.
	InsufficientlyTraded
	// SufficientlyTraded: meets the amount or the trade count threshold.
	SufficientlyTraded
	// NewlyAdded: inside its warm-up period, exempt regardless of activity.
	NewlyAdded
	// FeePaid: exempt through the listing fee; never reported in a bucket.
	FeePaid
)

// String returns the snake_case name used in logs, metrics and JSON.
func (c Category) String() string {
	switch c {
	case NotTraded:
		return "not_traded"
	case InsufficientlyTraded:
		return "insufficiently_traded"
	case SufficientlyTraded:
		return "sufficiently_traded"
	case NewlyAdded:
		return "newly_added"
	case FeePaid:
		return "fee_paid"
	default:
		return "unknown"
	}
}

// Removable reports whether assets of this category are delisting candidates.
func (c Category) Removable() bool {
	return c == NotTraded || c == InsufficientlyTraded
}

// Classification is the outcome for one whitelisted asset.
// TotalAmount and TradeCount are zero when the asset had no in-window trade.
type Classification struct {
	Asset       Asset
	Category    Category
	TotalAmount int64
	TradeCount  int
}

// Report is the result of one trade activity check.
//
// Classifications keep the whitelist order. ToRemove holds the removal
// candidates sorted by code.
type Report struct {
	GeneratedAt     time.Time
	Cutoff          time.Time
	Classifications []Classification
	ToRemove        []Asset
}

// Bucket returns the classifications of the given category in whitelist order.
func (r *Report) Bucket(c Category) []Classification {
	var out []Classification
	for _, cl := range r.Classifications {
		if cl.Category == c {
			out = append(out, cl)
		}
	}
	return out
}
