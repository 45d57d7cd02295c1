package pricing

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"fashionfusion-storefront/models"
	"fashionfusion-storefront/utils"
)

// PromoCatalog maps promo codes to discount rules. Lookups are case-insensitive.
type PromoCatalog struct {
	rules map[string]models.PromoRule
}

// DefaultPromoRules returns the storefront's built-in promo codes
func DefaultPromoRules() []models.PromoRule {
	return []models.PromoRule{
		{Code: "SAVE10", Kind: models.PromoPercentage, Value: decimal.NewFromInt(10), MinOrder: decimal.NewFromInt(50)},
		{Code: "WELCOME15", Kind: models.PromoPercentage, Value: decimal.NewFromInt(15), MinOrder: decimal.NewFromInt(30)},
		{Code: "FREESHIP", Kind: models.PromoFreeShipping, Value: decimal.RequireFromString("5.99"), MinOrder: decimal.Zero},
		{Code: "SAVE20", Kind: models.PromoPercentage, Value: decimal.NewFromInt(20), MinOrder: decimal.NewFromInt(100)},
	}
}

// DefaultPromoCatalog returns a catalog holding DefaultPromoRules
func DefaultPromoCatalog() *PromoCatalog {
	catalog, err := NewPromoCatalog(DefaultPromoRules())
	if err != nil {
		panic(err)
	}
	return catalog
}

// NewPromoCatalog validates rules and indexes them by normalized code
func NewPromoCatalog(rules []models.PromoRule) (*PromoCatalog, error) {
	index := make(map[string]models.PromoRule, len(rules))
	for i, rule := range rules {
		rule.Code = utils.NormalizeCode(rule.Code)
		if err := validateRule(rule); err != nil {
			return nil, fmt.Errorf("promo %d: %w", i, err)
		}
		if _, exists := index[rule.Code]; exists {
			return nil, fmt.Errorf("promo %d: duplicate code %s", i, rule.Code)
		}
		index[rule.Code] = rule
	}
	return &PromoCatalog{rules: index}, nil
}

func validateRule(rule models.PromoRule) error {
	if rule.Code == "" {
		return fmt.Errorf("code is required")
	}
	if !rule.Kind.IsValid() {
		return fmt.Errorf("%s: unknown kind %q", rule.Code, rule.Kind)
	}
	if rule.Value.IsNegative() {
		return fmt.Errorf("%s: value must not be negative", rule.Code)
	}
	if rule.MinOrder.IsNegative() {
		return fmt.Errorf("%s: minOrder must not be negative", rule.Code)
	}
	if rule.Kind == models.PromoPercentage && (rule.Value.IsZero() || rule.Value.GreaterThan(decimal.NewFromInt(100))) {
		return fmt.Errorf("%s: percentage must be in (0, 100]", rule.Code)
	}
	return nil
}

// Lookup returns the rule for code. Surrounding whitespace and case are ignored.
func (c *PromoCatalog) Lookup(code string) (models.PromoRule, bool) {
	rule, ok := c.rules[utils.NormalizeCode(code)]
	return rule, ok
}

// Codes returns every known code in alphabetical order
func (c *PromoCatalog) Codes() []string {
	codes := make([]string, 0, len(c.rules))
	for code := range c.rules {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
