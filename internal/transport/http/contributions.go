package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Teckart20/say-i-do-gifts/internal/app"
	"github.com/Teckart20/say-i-do-gifts/internal/domain"
)

type submitContributionRequest struct {
	Quantity         int             `json:"quantity"`
	Amount           decimal.Decimal `json:"amount"`
	ContributorName  string          `json:"contributor_name"`
	ContributorEmail string          `json:"contributor_email"`
	Message          string          `json:"message"`
	PaymentMethod    string          `json:"payment_method"`
	PaymentReference string          `json:"payment_reference"`
	IsAnonymous      bool            `json:"is_anonymous"`
}

func serveSubmitContribution(w http.ResponseWriter, r *http.Request, ledger ContributionLedger, giftID string) {
	var req submitContributionRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return
	}

	contribution, err := ledger.Submit(r.Context(), app.SubmitContributionInput{
		GiftID:           giftID,
		Quantity:         req.Quantity,
		Amount:           req.Amount,
		ContributorName:  req.ContributorName,
		ContributorEmail: req.ContributorEmail,
		Message:          req.Message,
		PaymentMethod:    req.PaymentMethod,
		PaymentReference: req.PaymentReference,
		IsAnonymous:      req.IsAnonymous,
	})
	if err != nil {
		switch err {
		case domain.ErrInvalidID:
			writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
		case domain.ErrInvalidQuantity:
			writeError(w, http.StatusBadRequest, codeInvalidQuantity, err.Error())
		case domain.ErrInvalidAmount:
			writeError(w, http.StatusBadRequest, codeInvalidAmount, err.Error())
		case domain.ErrEmptyContribution:
			writeError(w, http.StatusBadRequest, codeEmptyContribution, err.Error())
		case domain.ErrNotMoneyFundable:
			writeError(w, http.StatusBadRequest, codeNotMoneyFundable, err.Error())
		case domain.ErrGiftNotFound:
			writeError(w, http.StatusNotFound, codeGiftNotFound, err.Error())
		case domain.ErrCapacityExceeded:
			capacityRejectedTotal.WithLabelValues("submit").Inc()
			writeError(w, http.StatusConflict, codeCapacityExceeded, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
		}
		return
	}

	contributionsSubmittedTotal.Inc()
	writeJSON(w, http.StatusCreated, toContributionResponse(contribution, false))
}

func serveContributionList(w http.ResponseWriter, r *http.Request, ledger ContributionLedger, giftID string) {
	contributions, err := ledger.ListByGift(r.Context(), giftID)
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

	resp := make([]contributionResponse, 0, len(contributions))
	for _, c := range contributions {
		// Public listing hides who an anonymous guest is.
		resp = append(resp, toContributionResponse(c, c.IsAnonymous))
	}
	writeJSON(w, http.StatusOK, resp)
}

type contributionResponse struct {
	ID               string          `json:"id"`
	GiftID           string          `json:"gift_id"`
	Quantity         int             `json:"quantity"`
	Amount           decimal.Decimal `json:"amount"`
	ContributorName  string          `json:"contributor_name,omitempty"`
	ContributorEmail string          `json:"contributor_email,omitempty"`
	Message          string          `json:"message,omitempty"`
	PaymentMethod    string          `json:"payment_method,omitempty"`
	IsAnonymous      bool            `json:"is_anonymous"`
	Status           string          `json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
	ConfirmedAt      *time.Time      `json:"confirmed_at,omitempty"`
}

func toContributionResponse(c domain.Contribution, hideContributor bool) contributionResponse {
	resp := contributionResponse{
		ID:            c.ID,
		GiftID:        c.GiftID,
		Quantity:      c.Quantity,
		Amount:        c.Amount,
		Message:       c.Message,
		PaymentMethod: c.PaymentMethod,
		IsAnonymous:   c.IsAnonymous,
		Status:        "unconfirmed",
		CreatedAt:     c.CreatedAt,
		ConfirmedAt:   c.ConfirmedAt,
	}
	if c.IsConfirmed {
		resp.Status = "confirmed"
	}
	if !hideContributor {
		resp.ContributorName = c.ContributorName
		resp.ContributorEmail = c.ContributorEmail
	}
	return resp
}
