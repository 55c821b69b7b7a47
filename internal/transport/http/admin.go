package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Teckart20/say-i-do-gifts/internal/app"
	"github.com/Teckart20/say-i-do-gifts/internal/domain"
)

// AdminCoupleService is the minimal interface needed for couple endpoints.
type AdminCoupleService interface {
	CreateCouple(ctx context.Context, in app.CreateCoupleInput) (domain.Couple, error)
	ListCouples(ctx context.Context) ([]domain.Couple, error)
}

// AdminGiftService is the minimal interface needed for gift administration.
type AdminGiftService interface {
	CreateGift(ctx context.Context, in app.CreateGiftInput) (domain.Gift, error)
	ListGifts(ctx context.Context, coupleID string) ([]domain.Gift, error)
	UpdateGiftTarget(ctx context.Context, in app.UpdateGiftTargetInput) (domain.Gift, error)
	DeleteGift(ctx context.Context, id string) error
}

// HandleAdminRegistries serves couple creation and listing.
func HandleAdminRegistries(svc AdminCoupleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			couples, err := svc.ListCouples(r.Context())
			if err != nil {
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				return
			}
			resp := make([]coupleResponse, 0, len(couples))
			for _, c := range couples {
				resp = append(resp, toCoupleResponse(c))
			}
			writeJSON(w, http.StatusOK, resp)
		case http.MethodPost:
			var req createCoupleRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}

			var weddingDate *time.Time
			if req.WeddingDate != "" {
				parsed, err := time.Parse(time.RFC3339, req.WeddingDate)
				if err != nil {
					writeError(w, http.StatusBadRequest, codeInvalidWeddingDate, "invalid wedding_date format")
					return
				}
				weddingDate = &parsed
			}

			couple, err := svc.CreateCouple(r.Context(), app.CreateCoupleInput{
				Slug:        req.Slug,
				BrideName:   req.BrideName,
				GroomName:   req.GroomName,
				WeddingDate: weddingDate,
			})
			if err != nil {
				switch err {
				case domain.ErrSlugRequired:
					writeError(w, http.StatusBadRequest, codeSlugRequired, err.Error())
				case domain.ErrCoupleNamesRequired:
					writeError(w, http.StatusBadRequest, codeCoupleNamesRequired, err.Error())
				case domain.ErrSlugAlreadyExists:
					writeError(w, http.StatusConflict, codeSlugAlreadyExists, err.Error())
				default:
					writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				}
				return
			}

			writeJSON(w, http.StatusCreated, toCoupleResponse(couple))
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// HandleAdminRegistryGifts serves gift creation and listing for one couple
// (POST and GET /admin/registries/{id}/gifts).
func HandleAdminRegistryGifts(svc AdminGiftService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		coupleID, ok := parseAdminRegistryGiftsPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch r.Method {
		case http.MethodGet:
			gifts, err := svc.ListGifts(r.Context(), coupleID)
			if err != nil {
				switch err {
				case domain.ErrInvalidID:
					writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
				case domain.ErrCoupleNotFound:
					writeError(w, http.StatusNotFound, codeCoupleNotFound, err.Error())
				default:
					writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				}
				return
			}
			resp := make([]giftResponse, 0, len(gifts))
			for _, g := range gifts {
				resp = append(resp, toGiftResponse(g))
			}
			writeJSON(w, http.StatusOK, resp)
		case http.MethodPost:
			var req createGiftRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}

			gift, err := svc.CreateGift(r.Context(), app.CreateGiftInput{
				CoupleID:        coupleID,
				Name:            req.Name,
				Description:     req.Description,
				Category:        req.Category,
				ImageURL:        req.ImageURL,
				PurchaseLink:    req.PurchaseLink,
				DisplayOrder:    req.DisplayOrder,
				DesiredQuantity: req.DesiredQuantity,
				SuggestedValue:  req.SuggestedValue,
			})
			if err != nil {
				switch err {
				case domain.ErrGiftNameRequired:
					writeError(w, http.StatusBadRequest, codeGiftNameRequired, err.Error())
				case domain.ErrInvalidTarget:
					writeError(w, http.StatusBadRequest, codeInvalidTarget, err.Error())
				case domain.ErrInvalidID:
					writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
				case domain.ErrCoupleNotFound:
					writeError(w, http.StatusNotFound, codeCoupleNotFound, err.Error())
				default:
					writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				}
				return
			}

			writeJSON(w, http.StatusCreated, toGiftResponse(gift))
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// HandleAdminGifts serves PATCH (target update) and DELETE on
// /admin/gifts/{id}.
func HandleAdminGifts(svc AdminGiftService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		giftID, ok := parseAdminGiftPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch r.Method {
		case http.MethodPatch:
			var req updateGiftTargetRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}

			gift, err := svc.UpdateGiftTarget(r.Context(), app.UpdateGiftTargetInput{
				GiftID:          giftID,
				DesiredQuantity: req.DesiredQuantity,
				SuggestedValue:  req.SuggestedValue,
			})
			if err != nil {
				switch err {
				case domain.ErrInvalidID:
					writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
				case domain.ErrInvalidTarget:
					writeError(w, http.StatusBadRequest, codeInvalidTarget, err.Error())
				case domain.ErrGiftNotFound:
					writeError(w, http.StatusNotFound, codeGiftNotFound, err.Error())
				default:
					writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				}
				return
			}

			writeJSON(w, http.StatusOK, toGiftResponse(gift))
		case http.MethodDelete:
			if err := svc.DeleteGift(r.Context(), giftID); err != nil {
				switch err {
				case domain.ErrInvalidID:
					writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
				case domain.ErrGiftNotFound:
					writeError(w, http.StatusNotFound, codeGiftNotFound, err.Error())
				case domain.ErrGiftHasContributions:
					writeError(w, http.StatusConflict, codeGiftHasContributions, err.Error())
				default:
					writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				}
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

type createCoupleRequest struct {
	Slug        string `json:"slug"`
	BrideName   string `json:"bride_name"`
	GroomName   string `json:"groom_name"`
	WeddingDate string `json:"wedding_date,omitempty"`
}

type coupleResponse struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	BrideName   string    `json:"bride_name"`
	GroomName   string    `json:"groom_name"`
	WeddingDate time.Time `json:"wedding_date"`
	CreatedAt   time.Time `json:"created_at"`
}

func toCoupleResponse(c domain.Couple) coupleResponse {
	return coupleResponse{
		ID:          c.ID,
		Slug:        c.Slug,
		BrideName:   c.BrideName,
		GroomName:   c.GroomName,
		WeddingDate: c.WeddingDate,
		CreatedAt:   c.CreatedAt,
	}
}

type createGiftRequest struct {
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	Category        string           `json:"category,omitempty"`
	ImageURL        string           `json:"image_url,omitempty"`
	PurchaseLink    string           `json:"purchase_link,omitempty"`
	DisplayOrder    int              `json:"display_order,omitempty"`
	DesiredQuantity int              `json:"desired_quantity,omitempty"`
	SuggestedValue  *decimal.Decimal `json:"suggested_value,omitempty"`
}

type updateGiftTargetRequest struct {
	DesiredQuantity int              `json:"desired_quantity"`
	SuggestedValue  *decimal.Decimal `json:"suggested_value,omitempty"`
}

func parseAdminRegistryGiftsPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 4 {
		return "", false
	}
	if parts[0] != "admin" || parts[1] != "registries" || parts[3] != "gifts" {
		return "", false
	}
	if parts[2] == "" {
		return "", false
	}
	return parts[2], true
}

func parseAdminGiftPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 3 {
		return "", false
	}
	if parts[0] != "admin" || parts[1] != "gifts" {
		return "", false
	}
	if parts[2] == "" {
		return "", false
	}
	return parts[2], true
}
