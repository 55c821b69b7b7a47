package http

import (
	"encoding/json"
	"net/http"
)

const (
	codeMethodNotAllowed     = "method_not_allowed"
	codeNotFound             = "not_found"
	codeInvalidRequestBody   = "invalid_request_body"
	codeInvalidID            = "invalid_id"
	codeInvalidWeddingDate   = "invalid_wedding_date"
	codeSlugRequired         = "slug_required"
	codeSlugAlreadyExists    = "slug_already_exists"
	codeCoupleNamesRequired  = "couple_names_required"
	codeCoupleNotFound       = "couple_not_found"
	codeGiftNameRequired     = "gift_name_required"
	codeGiftNotFound         = "gift_not_found"
	codeInvalidTarget        = "invalid_target"
	codeInvalidQuantity      = "invalid_quantity"
	codeInvalidAmount        = "invalid_amount"
	codeEmptyContribution    = "empty_contribution"
	codeNotMoneyFundable     = "not_money_fundable"
	codeCapacityExceeded     = "capacity_exceeded"
	codeContributionNotFound = "contribution_not_found"
	codeGiftHasContributions = "gift_has_contributions"
	codeLedgerInconsistency  = "ledger_inconsistency"
	codeForbidden            = "forbidden"
	codeInternalError        = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}
