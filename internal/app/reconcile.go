package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Teckart20/say-i-do-gifts/internal/domain"
)

type AuditReport struct {
	GiftID            string
	PurchasedQuantity int
	CollectedAmount   decimal.Decimal
	LedgerQuantity    int
	LedgerAmount      decimal.Decimal
	Consistent        bool
}

// AuditGift replays the confirmed ledger entries for a gift and compares the
// sums against the cached aggregates. A mismatch returns
// ErrLedgerInconsistency alongside the report; it should never happen in
// correct operation and calls for operator intervention.
func (s *ContributionService) AuditGift(ctx context.Context, giftID string) (AuditReport, error) {
	if giftID == "" {
		return AuditReport{}, domain.ErrInvalidID
	}

	var report AuditReport
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		gift, err := s.repo.GetGiftForUpdate(txCtx, giftID)
		if err != nil {
			return err
		}
		quantity, amount, err := s.repo.SumConfirmed(txCtx, giftID)
		if err != nil {
			return err
		}
		report = AuditReport{
			GiftID:            gift.ID,
			PurchasedQuantity: gift.PurchasedQuantity,
			CollectedAmount:   gift.CollectedAmount,
			LedgerQuantity:    quantity,
			LedgerAmount:      amount,
			Consistent:        gift.PurchasedQuantity == quantity && gift.CollectedAmount.Equal(amount),
		}
		return nil
	})
	if err != nil {
		return AuditReport{}, err
	}

	if !report.Consistent {
		return report, domain.ErrLedgerInconsistency
	}
	return report, nil
}
