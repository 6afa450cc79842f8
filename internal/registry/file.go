package registry

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/guttosm/tradeactivity/internal/domain/models"
)

// fileAsset mirrors one item of the registry file.
//
// Example:
//
//	assets:
//	  - code: XMR
//	    name: Monero
//	    listed_at: 2018-07-04
//	  - code: BSQ
//	    name: BSQ
//	    fee_paid: true
//	  - code: OLD
//	    whitelisted: false
type fileAsset struct {
	Code        string    `yaml:"code"`
	Name        string    `yaml:"name"`
	FeePaid     bool      `yaml:"fee_paid"`
	ListedAt    time.Time `yaml:"listed_at"`
	Whitelisted *bool     `yaml:"whitelisted"`
}

type fileRegistry struct {
	Assets []fileAsset `yaml:"assets"`
}

// LoadFile reads a YAML registry file. Assets are whitelisted unless the
// file says otherwise.
func LoadFile(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}
	return Parse(data)
}

// Parse decodes registry YAML.
func Parse(data []byte) (*Static, error) {
	var f fileRegistry
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}

	entries := make([]Entry, 0, len(f.Assets))
	for _, a := range f.Assets {
		whitelisted := true
		if a.Whitelisted != nil {
			whitelisted = *a.Whitelisted
		}
		entries = append(entries, Entry{
			Asset: models.Asset{
				Code:     a.Code,
				Name:     a.Name,
				FeePaid:  a.FeePaid,
				ListedAt: a.ListedAt,
			},
			Whitelisted: whitelisted,
		})
	}

	s, err := NewStatic(entries)
	if err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}
	return s, nil
}
