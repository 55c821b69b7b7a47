package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Gift is a registry item with a unit target and, optionally, a monetary
// target for partial/cash funding. PurchasedQuantity and CollectedAmount are
// caches over the confirmed contributions for the gift; they change only
// through the contribution service's per-gift transaction.
type Gift struct {
	ID           string
	CoupleID     string
	Name         string
	Description  string
	Category     string
	ImageURL     string
	PurchaseLink string
	DisplayOrder int

	DesiredQuantity int
	// SuggestedValue is nil when the gift is fundable only by whole units.
	SuggestedValue *decimal.Decimal

	PurchasedQuantity int
	CollectedAmount   decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RemainingQuantity reports how many units the gift can still accept.
func (g Gift) RemainingQuantity() int {
	remaining := g.DesiredQuantity - g.PurchasedQuantity
	if remaining < 0 {
		return 0
	}
	return remaining
}
