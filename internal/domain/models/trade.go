package models

import "time"

// TradeRecord is a single entry of the trade statistics set.
//
// Fields:
//   - BaseCurrency: code of the traded asset (e.g., "XMR"). For crypto trades
//     the asset is the base currency and the amount is settled in BTC.
//   - TradeDate: time the trade was completed.
//   - TradeAmount: traded BTC amount in satoshi.
type TradeRecord struct {
	BaseCurrency string    `json:"base_currency"`
	TradeDate    time.Time `json:"trade_date"`
	TradeAmount  int64     `json:"trade_amount"`
}
