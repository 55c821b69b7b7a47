package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Teckart20/say-i-do-gifts/internal/app"
	"github.com/Teckart20/say-i-do-gifts/internal/domain"
)

// GiftReader is the minimal interface needed to serve public gift reads.
type GiftReader interface {
	GetGift(ctx context.Context, id string) (domain.Gift, error)
}

// ContributionLedger is the minimal interface for the public contribution
// endpoints under /gifts/{id}/contributions.
type ContributionLedger interface {
	Submit(ctx context.Context, in app.SubmitContributionInput) (domain.Contribution, error)
	ListByGift(ctx context.Context, giftID string) ([]domain.Contribution, error)
}

// HandleGifts serves GET /gifts/{id} plus the contribution sub-resource
// (POST and GET /gifts/{id}/contributions).
func HandleGifts(gifts GiftReader, ledger ContributionLedger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if giftID, ok := parseGiftPath(r.URL.Path); ok {
			if r.Method != http.MethodGet {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			serveGift(w, r, gifts, giftID)
			return
		}

		if giftID, ok := parseGiftContributionsPath(r.URL.Path); ok {
			switch r.Method {
			case http.MethodGet:
				serveContributionList(w, r, ledger, giftID)
			case http.MethodPost:
				serveSubmitContribution(w, r, ledger, giftID)
			default:
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			}
			return
		}

		writeError(w, http.StatusNotFound, codeNotFound, "not found")
	}
}

func serveGift(w http.ResponseWriter, r *http.Request, gifts GiftReader, giftID string) {
	gift, err := gifts.GetGift(r.Context(), giftID)
	if err != nil {
		switch err {
		case domain.ErrInvalidID:
			writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
		case domain.ErrGiftNotFound:
			writeError(w, http.StatusNotFound, codeGiftNotFound, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toGiftResponse(gift))
}

func parseGiftPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 2 {
		return "", false
	}
	if parts[0] != "gifts" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func parseGiftContributionsPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 3 {
		return "", false
	}
	if parts[0] != "gifts" || parts[2] != "contributions" {
		return "", false
	}
	if parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

type giftResponse struct {
	ID                string           `json:"id"`
	CoupleID          string           `json:"couple_id"`
	Name              string           `json:"name"`
	Description       string           `json:"description,omitempty"`
	Category          string           `json:"category,omitempty"`
	ImageURL          string           `json:"image_url,omitempty"`
	PurchaseLink      string           `json:"purchase_link,omitempty"`
	DisplayOrder      int              `json:"display_order"`
	DesiredQuantity   int              `json:"desired_quantity"`
	SuggestedValue    *decimal.Decimal `json:"suggested_value,omitempty"`
	PurchasedQuantity int              `json:"purchased_quantity"`
	CollectedAmount   decimal.Decimal  `json:"collected_amount"`
	RemainingQuantity int              `json:"remaining_quantity"`
	Status            string           `json:"status"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

func toGiftResponse(gift domain.Gift) giftResponse {
	return giftResponse{
		ID:                gift.ID,
		CoupleID:          gift.CoupleID,
		Name:              gift.Name,
		Description:       gift.Description,
		Category:          gift.Category,
		ImageURL:          gift.ImageURL,
		PurchaseLink:      gift.PurchaseLink,
		DisplayOrder:      gift.DisplayOrder,
		DesiredQuantity:   gift.DesiredQuantity,
		SuggestedValue:    gift.SuggestedValue,
		PurchasedQuantity: gift.PurchasedQuantity,
		CollectedAmount:   gift.CollectedAmount,
		RemainingQuantity: gift.RemainingQuantity(),
		Status:            string(domain.StatusOf(gift)),
		CreatedAt:         gift.CreatedAt,
		UpdatedAt:         gift.UpdatedAt,
	}
}
