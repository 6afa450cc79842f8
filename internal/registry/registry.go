// Package registry provides the asset registry: the whitelist of tradable
// crypto assets, their listing fee status and listing dates.
package registry

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/guttosm/tradeactivity/internal/domain/models"
)

// Entry is one registered crypto asset.
type Entry struct {
	models.Asset
	// Whitelisted marks the asset as currently eligible for trading.
	Whitelisted bool
}

// Static is an in-memory registry. It is immutable after construction and
// safe for concurrent use.
type Static struct {
	entries map[string]Entry
	sorted  []models.Asset // whitelisted assets ordered by code
}

// NewStatic builds a registry from the given entries.
// Codes are normalized to upper case; empty or duplicate codes are rejected.
func NewStatic(entries []Entry) (*Static, error) {
	s := &Static{entries: make(map[string]Entry, len(entries))}
	for i, e := range entries {
		code := strings.ToUpper(strings.TrimSpace(e.Code))
		if code == "" {
			return nil, fmt.Errorf("entry %d: empty code", i)
		}
		if _, dup := s.entries[code]; dup {
			return nil, fmt.Errorf("entry %d: duplicate code %q", i, code)
		}
		e.Code = code
		s.entries[code] = e
		if e.Whitelisted {
			s.sorted = append(s.sorted, e.Asset)
		}
	}
	sort.Slice(s.sorted, func(i, j int) bool { return s.sorted[i].Code < s.sorted[j].Code })
	return s, nil
}

// Whitelist returns the whitelisted assets sorted by code. The returned
// slice is a copy.
func (s *Static) Whitelist(_ context.Context) ([]models.Asset, error) {
	out := make([]models.Asset, len(s.sorted))
	copy(out, s.sorted)
	return out, nil
}

// HasPaidFee reports whether the listing fee of code has been paid.
// Unknown codes have not paid.
func (s *Static) HasPaidFee(_ context.Context, code string) (bool, error) {
	e, ok := s.entries[code]
	return ok && e.FeePaid, nil
}

// IsCrypto reports whether code is a registered crypto asset, whitelisted or not.
func (s *Static) IsCrypto(code string) bool {
	_, ok := s.entries[code]
	return ok
}

// Len returns the number of registered assets.
func (s *Static) Len() int { return len(s.entries) }
