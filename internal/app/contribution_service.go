package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Teckart20/say-i-do-gifts/internal/clock"
	"github.com/Teckart20/say-i-do-gifts/internal/domain"
)

type ContributionRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetGiftForUpdate(ctx context.Context, giftID string) (domain.Gift, error)
	CreateContribution(ctx context.Context, c domain.Contribution) error
	GetContribution(ctx context.Context, id string) (domain.Contribution, error)
	MarkConfirmed(ctx context.Context, id string, confirmedAt time.Time) (bool, error)
	ApplyDelta(ctx context.Context, giftID string, deltaQuantity int, deltaAmount decimal.Decimal) error
	SumConfirmed(ctx context.Context, giftID string) (int, decimal.Decimal, error)
	ListByGift(ctx context.Context, giftID string) ([]domain.Contribution, error)
}

// ContributionService is the only entry point for submitting and confirming
// contributions. Every mutation runs inside a transaction that locks the
// gift row, so checks and writes for one gift are serialized while
// different gifts proceed independently.
type ContributionService struct {
	repo  ContributionRepository
	clock clock.Clock
}

func NewContributionService(repo ContributionRepository, clk clock.Clock) *ContributionService {
	return &ContributionService{
		repo:  repo,
		clock: clk,
	}
}

type SubmitContributionInput struct {
	GiftID           string
	Quantity         int
	Amount           decimal.Decimal
	ContributorName  string
	ContributorEmail string
	Message          string
	PaymentMethod    string
	PaymentReference string
	IsAnonymous      bool
}

// Submit records an unconfirmed contribution after validating it against the
// gift's remaining unit capacity. Unconfirmed rows do not touch the cached
// aggregates and do not reserve capacity; the confirm step re-checks.
func (s *ContributionService) Submit(ctx context.Context, in SubmitContributionInput) (domain.Contribution, error) {
	if in.GiftID == "" {
		return domain.Contribution{}, domain.ErrInvalidID
	}
	if in.Quantity < 0 {
		return domain.Contribution{}, domain.ErrInvalidQuantity
	}
	if in.Amount.IsNegative() {
		return domain.Contribution{}, domain.ErrInvalidAmount
	}
	if in.Quantity == 0 && in.Amount.IsZero() {
		return domain.Contribution{}, domain.ErrEmptyContribution
	}

	now := s.clock.Now()
	var result domain.Contribution

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		gift, err := s.repo.GetGiftForUpdate(txCtx, in.GiftID)
		if err != nil {
			return err
		}

		if in.Amount.IsPositive() && gift.SuggestedValue == nil {
			return domain.ErrNotMoneyFundable
		}
		if in.Quantity > 0 && gift.PurchasedQuantity+in.Quantity > gift.DesiredQuantity {
			return domain.ErrCapacityExceeded
		}

		contribution := domain.Contribution{
			ID:               uuid.NewString(),
			GiftID:           gift.ID,
			Quantity:         in.Quantity,
			Amount:           in.Amount,
			ContributorName:  in.ContributorName,
			ContributorEmail: in.ContributorEmail,
			Message:          in.Message,
			PaymentMethod:    in.PaymentMethod,
			PaymentReference: in.PaymentReference,
			IsAnonymous:      in.IsAnonymous,
			IsConfirmed:      false,
			CreatedAt:        now,
		}

		if err := s.repo.CreateContribution(txCtx, contribution); err != nil {
			return err
		}

		result = contribution
		return nil
	})
	if err != nil {
		return domain.Contribution{}, err
	}

	return result, nil
}

type ConfirmContributionResult struct {
	Contribution domain.Contribution
	Gift         domain.Gift
	// Applied is false when the contribution was already confirmed and this
	// call changed nothing.
	Applied bool
}

// Confirm flips a contribution to confirmed and applies its quantity and
// amount to the gift's caches, all under the gift row lock. Confirmations
// can arrive in any order relative to submission, so unit capacity is
// checked again here; on overflow the transaction rolls back and the
// contribution stays unconfirmed for out-of-band compensation.
// Confirming twice is a no-op and reports Applied=false.
func (s *ContributionService) Confirm(ctx context.Context, contributionID string) (ConfirmContributionResult, error) {
	if contributionID == "" {
		return ConfirmContributionResult{}, domain.ErrInvalidID
	}

	now := s.clock.Now()
	var result ConfirmContributionResult

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		probe, err := s.repo.GetContribution(txCtx, contributionID)
		if err != nil {
			return err
		}

		gift, err := s.repo.GetGiftForUpdate(txCtx, probe.GiftID)
		if err != nil {
			return err
		}

		// Re-read under the gift lock: every confirm path locks the gift
		// row before flipping, so this read is authoritative.
		contribution, err := s.repo.GetContribution(txCtx, contributionID)
		if err != nil {
			return err
		}
		if contribution.IsConfirmed {
			result = ConfirmContributionResult{Contribution: contribution, Gift: gift, Applied: false}
			return nil
		}

		if contribution.Quantity > 0 && gift.PurchasedQuantity+contribution.Quantity > gift.DesiredQuantity {
			return domain.ErrCapacityExceeded
		}

		flipped, err := s.repo.MarkConfirmed(txCtx, contribution.ID, now)
		if err != nil {
			return err
		}
		if !flipped {
			// Unreachable unless some writer bypassed the gift lock.
			return domain.ErrLedgerInconsistency
		}

		if err := s.repo.ApplyDelta(txCtx, gift.ID, contribution.Quantity, contribution.Amount); err != nil {
			return err
		}

		contribution.IsConfirmed = true
		contribution.ConfirmedAt = &now
		gift.PurchasedQuantity += contribution.Quantity
		gift.CollectedAmount = gift.CollectedAmount.Add(contribution.Amount)

		result = ConfirmContributionResult{Contribution: contribution, Gift: gift, Applied: true}
		return nil
	})
	if err != nil {
		return ConfirmContributionResult{}, err
	}

	return result, nil
}

// ListByGift returns the gift's ledger in creation order.
func (s *ContributionService) ListByGift(ctx context.Context, giftID string) ([]domain.Contribution, error) {
	if giftID == "" {
		return nil, domain.ErrInvalidID
	}
	return s.repo.ListByGift(ctx, giftID)
}
