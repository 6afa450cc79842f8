package dto

import (
	"time"

	"github.com/guttosm/tradeactivity/internal/currency"
	"github.com/guttosm/tradeactivity/internal/domain/models"
)

// ReportResponse is the JSON form of a trade activity report returned by
// GET /api/v1/report?format=json.
//
// Buckets are keyed by category and keep the whitelist order. Fee paid
// assets are exempt and not listed.
type ReportResponse struct {
	GeneratedAt          time.Time       `json:"generated_at" example:"2018-09-01T12:00:00Z"`
	Cutoff               time.Time       `json:"cutoff" example:"2018-05-04T12:00:00Z"`
	ToRemove             []string        `json:"to_remove" example:"DASH,ETH"`
	InsufficientlyTraded []AssetActivity `json:"insufficiently_traded"`
	NotTraded            []AssetActivity `json:"not_traded"`
	NewlyAdded           []AssetActivity `json:"newly_added"`
	SufficientlyTraded   []AssetActivity `json:"sufficiently_traded"`
}

// AssetActivity is the in-window activity of one asset.
type AssetActivity struct {
	Code        string `json:"code" example:"XMR"`
	Name        string `json:"name,omitempty" example:"Monero"`
	TradeAmount int64  `json:"trade_amount_sat" example:"200000000"`
	Amount      string `json:"trade_amount" example:"2.00 BTC"`
	TradeCount  int    `json:"number_of_trades" example:"2"`
}

// NewReportResponse maps a report to its JSON contract.
func NewReportResponse(r *models.Report) ReportResponse {
	out := ReportResponse{
		GeneratedAt:          r.GeneratedAt,
		Cutoff:               r.Cutoff,
		ToRemove:             make([]string, 0, len(r.ToRemove)),
		InsufficientlyTraded: activities(r.Bucket(models.InsufficientlyTraded)),
		NotTraded:            activities(r.Bucket(models.NotTraded)),
		NewlyAdded:           activities(r.Bucket(models.NewlyAdded)),
		SufficientlyTraded:   activities(r.Bucket(models.SufficientlyTraded)),
	}
	for _, a := range r.ToRemove {
		out.ToRemove = append(out.ToRemove, a.Code)
	}
	return out
}

func activities(cls []models.Classification) []AssetActivity {
	out := make([]AssetActivity, 0, len(cls))
	for _, cl := range cls {
		out = append(out, AssetActivity{
			Code:        cl.Asset.Code,
			Name:        cl.Asset.Name,
			TradeAmount: cl.TotalAmount,
			Amount:      currency.FormatAmount(cl.TotalAmount),
			TradeCount:  cl.TradeCount,
		})
	}
	return out
}
