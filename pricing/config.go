package pricing

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"fashionfusion-storefront/models"
)

// PromoConfig represents the promo configuration file structure.
// Example (YAML):
//
//	promos:
//	  - code: SAVE10
//	    kind: percentage
//	    value: 10
//	    minOrder: 50
type PromoConfig struct {
	Promos []PromoEntry `json:"promos" yaml:"promos"`
}

type PromoEntry struct {
	Code     string  `json:"code" yaml:"code"`
	Kind     string  `json:"kind" yaml:"kind"`
	Value    float64 `json:"value" yaml:"value"`
	MinOrder float64 `json:"minOrder" yaml:"minOrder"`
}

// LoadPromoCatalog reads a JSON or YAML promo file, chosen by extension
func LoadPromoCatalog(configPath string) (*PromoCatalog, error) {
	// Resolve config path
	if !filepath.IsAbs(configPath) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		configPath = filepath.Join(wd, configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read promo config: %w", err)
	}

	var config PromoConfig
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse promo config: %w", err)
	}

	if len(config.Promos) == 0 {
		return nil, fmt.Errorf("invalid promo config: promos are required")
	}

	rules := make([]models.PromoRule, 0, len(config.Promos))
	for _, entry := range config.Promos {
		rules = append(rules, models.PromoRule{
			Code:     entry.Code,
			Kind:     models.PromoKind(entry.Kind),
			Value:    decimal.NewFromFloat(entry.Value),
			MinOrder: decimal.NewFromFloat(entry.MinOrder),
		})
	}

	catalog, err := NewPromoCatalog(rules)
	if err != nil {
		return nil, fmt.Errorf("invalid promo config: %w", err)
	}

	log.Printf("✅ PromoCatalog: Loaded %d promo codes from %s", len(rules), configPath)
	return catalog, nil
}
