package models

import "time"

// Asset is a crypto-currency registered for trading.
//
// Fields:
//   - Code: short currency code, unique in the registry (e.g., "XMR").
//   - Name: display name (e.g., "Monero"). May be empty.
//   - FeePaid: listing fee obligation satisfied; exempts the asset from
//     volume-based delisting.
//   - ListedAt: date the asset was listed. Zero when unknown.
type Asset struct {
	Code     string    `json:"code" yaml:"code"`
	Name     string    `json:"name" yaml:"name"`
	FeePaid  bool      `json:"fee_paid" yaml:"fee_paid"`
	ListedAt time.Time `json:"listed_at,omitempty" yaml:"listed_at"`
}
