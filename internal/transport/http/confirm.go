package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/Teckart20/say-i-do-gifts/internal/app"
	"github.com/Teckart20/say-i-do-gifts/internal/domain"
)

// ContributionConfirmer is the minimal interface needed to confirm a
// contribution after its payment settles.
type ContributionConfirmer interface {
	Confirm(ctx context.Context, contributionID string) (app.ConfirmContributionResult, error)
}

// HandleConfirmContribution serves POST /contributions/{id}/confirm. The
// endpoint is idempotent; a duplicate delivery of the payment confirmation
// reports applied=false and changes nothing.
func HandleConfirmContribution(svc ContributionConfirmer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		contributionID, ok := parseConfirmContributionPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		res, err := svc.Confirm(r.Context(), contributionID)
		if err != nil {
			switch err {
			case domain.ErrInvalidID:
				writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
			case domain.ErrContributionNotFound:
				writeError(w, http.StatusNotFound, codeContributionNotFound, err.Error())
			case domain.ErrGiftNotFound:
				writeError(w, http.StatusNotFound, codeGiftNotFound, err.Error())
			case domain.ErrCapacityExceeded:
				capacityRejectedTotal.WithLabelValues("confirm").Inc()
				writeError(w, http.StatusConflict, codeCapacityExceeded, err.Error())
			case domain.ErrLedgerInconsistency:
				writeError(w, http.StatusInternalServerError, codeLedgerInconsistency, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		if res.Applied {
			contributionsConfirmedTotal.Inc()
		}

		writeJSON(w, http.StatusOK, confirmContributionResponse{
			ID:         res.Contribution.ID,
			GiftID:     res.Gift.ID,
			Applied:    res.Applied,
			GiftStatus: string(domain.StatusOf(res.Gift)),
		})
	}
}

func parseConfirmContributionPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 3 {
		return "", false
	}
	if parts[0] != "contributions" || parts[2] != "confirm" {
		return "", false
	}
	if parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

type confirmContributionResponse struct {
	ID         string `json:"id"`
	GiftID     string `json:"gift_id"`
	Applied    bool   `json:"applied"`
	GiftStatus string `json:"gift_status"`
}
