package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Teckart20/say-i-do-gifts/internal/clock"
	"github.com/Teckart20/say-i-do-gifts/internal/domain"
)

type RegistryRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	CreateCouple(ctx context.Context, couple domain.Couple) error
	ListCouples(ctx context.Context) ([]domain.Couple, error)
	CreateGift(ctx context.Context, gift domain.Gift) error
	GetGift(ctx context.Context, id string) (domain.Gift, error)
	GetGiftForUpdate(ctx context.Context, id string) (domain.Gift, error)
	ListGiftsByCouple(ctx context.Context, coupleID string) ([]domain.Gift, error)
	UpdateGiftTarget(ctx context.Context, id string, desiredQuantity int, suggestedValue *decimal.Decimal) error
	CountConfirmedByGift(ctx context.Context, giftID string) (int, error)
	DeleteGift(ctx context.Context, id string) error
}

// RegistryService covers the couple-facing administration of a registry:
// couples and gift records. Aggregate caches are never touched here; only
// the contribution service mutates them.
type RegistryService struct {
	repo  RegistryRepository
	clock clock.Clock
}

func NewRegistryService(repo RegistryRepository, clk clock.Clock) *RegistryService {
	return &RegistryService{
		repo:  repo,
		clock: clk,
	}
}

type CreateCoupleInput struct {
	Slug        string
	BrideName   string
	GroomName   string
	WeddingDate *time.Time
}

func (s *RegistryService) CreateCouple(ctx context.Context, in CreateCoupleInput) (domain.Couple, error) {
	if in.Slug == "" {
		return domain.Couple{}, domain.ErrSlugRequired
	}
	if in.BrideName == "" || in.GroomName == "" {
		return domain.Couple{}, domain.ErrCoupleNamesRequired
	}

	now := s.clock.Now()
	couple := domain.Couple{
		ID:          uuid.NewString(),
		Slug:        in.Slug,
		BrideName:   in.BrideName,
		GroomName:   in.GroomName,
		WeddingDate: now,
		CreatedAt:   now,
	}
	if in.WeddingDate != nil {
		couple.WeddingDate = *in.WeddingDate
	}

	if err := s.repo.CreateCouple(ctx, couple); err != nil {
		return domain.Couple{}, err
	}
	return couple, nil
}

func (s *RegistryService) ListCouples(ctx context.Context) ([]domain.Couple, error) {
	return s.repo.ListCouples(ctx)
}

type CreateGiftInput struct {
	CoupleID        string
	Name            string
	Description     string
	Category        string
	ImageURL        string
	PurchaseLink    string
	DisplayOrder    int
	DesiredQuantity int
	SuggestedValue  *decimal.Decimal
}

func (s *RegistryService) CreateGift(ctx context.Context, in CreateGiftInput) (domain.Gift, error) {
	if in.CoupleID == "" {
		return domain.Gift{}, domain.ErrInvalidID
	}
	if in.Name == "" {
		return domain.Gift{}, domain.ErrGiftNameRequired
	}
	desired := in.DesiredQuantity
	if desired == 0 {
		desired = 1
	}
	if desired < 0 {
		return domain.Gift{}, domain.ErrInvalidTarget
	}
	if in.SuggestedValue != nil && !in.SuggestedValue.IsPositive() {
		return domain.Gift{}, domain.ErrInvalidTarget
	}

	now := s.clock.Now()
	gift := domain.Gift{
		ID:              uuid.NewString(),
		CoupleID:        in.CoupleID,
		Name:            in.Name,
		Description:     in.Description,
		Category:        in.Category,
		ImageURL:        in.ImageURL,
		PurchaseLink:    in.PurchaseLink,
		DisplayOrder:    in.DisplayOrder,
		DesiredQuantity: desired,
		SuggestedValue:  in.SuggestedValue,
		CollectedAmount: decimal.Zero,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.CreateGift(ctx, gift); err != nil {
		return domain.Gift{}, err
	}
	return gift, nil
}

func (s *RegistryService) GetGift(ctx context.Context, id string) (domain.Gift, error) {
	if id == "" {
		return domain.Gift{}, domain.ErrInvalidID
	}
	return s.repo.GetGift(ctx, id)
}

func (s *RegistryService) ListGifts(ctx context.Context, coupleID string) ([]domain.Gift, error) {
	if coupleID == "" {
		return nil, domain.ErrInvalidID
	}
	return s.repo.ListGiftsByCouple(ctx, coupleID)
}

type UpdateGiftTargetInput struct {
	GiftID          string
	DesiredQuantity int
	SuggestedValue  *decimal.Decimal
}

// UpdateGiftTarget changes a gift's targets under the gift row lock. The
// unit target can never drop below what has already been purchased.
func (s *RegistryService) UpdateGiftTarget(ctx context.Context, in UpdateGiftTargetInput) (domain.Gift, error) {
	if in.GiftID == "" {
		return domain.Gift{}, domain.ErrInvalidID
	}
	if in.DesiredQuantity <= 0 {
		return domain.Gift{}, domain.ErrInvalidTarget
	}
	if in.SuggestedValue != nil && !in.SuggestedValue.IsPositive() {
		return domain.Gift{}, domain.ErrInvalidTarget
	}

	var result domain.Gift
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		gift, err := s.repo.GetGiftForUpdate(txCtx, in.GiftID)
		if err != nil {
			return err
		}
		if in.DesiredQuantity < gift.PurchasedQuantity {
			return domain.ErrInvalidTarget
		}
		if err := s.repo.UpdateGiftTarget(txCtx, gift.ID, in.DesiredQuantity, in.SuggestedValue); err != nil {
			return err
		}
		gift.DesiredQuantity = in.DesiredQuantity
		gift.SuggestedValue = in.SuggestedValue
		result = gift
		return nil
	})
	if err != nil {
		return domain.Gift{}, err
	}
	return result, nil
}

// DeleteGift removes a gift only while no confirmed contribution references
// it; unconfirmed ledger rows go with the gift.
func (s *RegistryService) DeleteGift(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidID
	}

	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		gift, err := s.repo.GetGiftForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		confirmed, err := s.repo.CountConfirmedByGift(txCtx, gift.ID)
		if err != nil {
			return err
		}
		if confirmed > 0 {
			return domain.ErrGiftHasContributions
		}
		return s.repo.DeleteGift(txCtx, gift.ID)
	})
}
