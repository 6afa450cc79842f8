// Package currency formats BTC amounts and asset labels for reports.
package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// satoshiExp is the decimal exponent of one satoshi (1 BTC = 10^8 sat).
const satoshiExp = -8

// FormatAmount renders a satoshi amount as a BTC string with at least two
// decimals and no trailing zeros beyond that, e.g. 100000 -> "0.001 BTC",
// 0 -> "0.00 BTC", 150000000 -> "1.50 BTC".
func FormatAmount(sat int64) string {
	s := decimal.New(sat, satoshiExp).String()
	dot := strings.IndexByte(s, '.')
	switch {
	case dot < 0:
		s += ".00"
	case len(s)-dot-1 < 2:
		s += strings.Repeat("0", 2-(len(s)-dot-1))
	}
	return s + " BTC"
}

// NameAndCode returns the "Name (CODE)" label, or the bare code when the
// name is unknown.
func NameAndCode(name, code string) string {
	if name == "" || name == code {
		return code
	}
	return name + " (" + code + ")"
}
