package domain

type GiftStatus string

const (
	GiftStatusAvailable       GiftStatus = "available"
	GiftStatusPartiallyFunded GiftStatus = "partially_funded"
	GiftStatusFulfilled       GiftStatus = "fulfilled"
)

// StatusOf derives a gift's display status from its cached aggregates.
// Fulfilled wins over partially funded: the gift is done as soon as either
// the unit target or the monetary target (when one exists) is reached.
// A gift with no suggested value can only be fulfilled by units.
func StatusOf(g Gift) GiftStatus {
	if g.PurchasedQuantity >= g.DesiredQuantity {
		return GiftStatusFulfilled
	}
	if g.SuggestedValue != nil && g.CollectedAmount.GreaterThanOrEqual(*g.SuggestedValue) {
		return GiftStatusFulfilled
	}
	if g.PurchasedQuantity == 0 && g.CollectedAmount.IsZero() {
		return GiftStatusAvailable
	}
	return GiftStatusPartiallyFunded
}
