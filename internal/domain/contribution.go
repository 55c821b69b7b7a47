package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contribution is one guest's pledge toward a gift: a unit count, a monetary
// amount, or both. It counts toward the gift's caches only once confirmed,
// and the confirmed flag is monotonic.
type Contribution struct {
	ID     string
	GiftID string

	Quantity int
	Amount   decimal.Decimal

	ContributorName  string
	ContributorEmail string
	Message          string
	PaymentMethod    string
	PaymentReference string
	IsAnonymous      bool

	IsConfirmed bool
	CreatedAt   time.Time
	ConfirmedAt *time.Time
}
