package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Teckart20/say-i-do-gifts/internal/app"
	"github.com/Teckart20/say-i-do-gifts/internal/domain"
)

func TestHandleConfirmContribution(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC)
	contribution := domain.Contribution{
		ID:          "contribution-1",
		GiftID:      "gift-1",
		Quantity:    2,
		Amount:      decimal.Zero,
		IsConfirmed: true,
		CreatedAt:   now,
		ConfirmedAt: &now,
	}
	gift := domain.Gift{
		ID:                "gift-1",
		DesiredQuantity:   2,
		PurchasedQuantity: 2,
		CollectedAmount:   decimal.Zero,
	}

	tests := []struct {
		name           string
		method         string
		path           string
		result         app.ConfirmContributionResult
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "applied",
			method:         http.MethodPost,
			path:           "/contributions/contribution-1/confirm",
			result:         app.ConfirmContributionResult{Contribution: contribution, Gift: gift, Applied: true},
			expectedStatus: http.StatusOK,
			expectedSubstr: `"applied":true`,
		},
		{
			name:           "idempotent replay",
			method:         http.MethodPost,
			path:           "/contributions/contribution-1/confirm",
			result:         app.ConfirmContributionResult{Contribution: contribution, Gift: gift, Applied: false},
			expectedStatus: http.StatusOK,
			expectedSubstr: `"applied":false`,
		},
		{
			name:           "reports gift status",
			method:         http.MethodPost,
			path:           "/contributions/contribution-1/confirm",
			result:         app.ConfirmContributionResult{Contribution: contribution, Gift: gift, Applied: true},
			expectedStatus: http.StatusOK,
			expectedSubstr: `"gift_status":"fulfilled"`,
		},
		{
			name:           "contribution not found",
			method:         http.MethodPost,
			path:           "/contributions/contribution-404/confirm",
			serviceErr:     domain.ErrContributionNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "capacity exceeded",
			method:         http.MethodPost,
			path:           "/contributions/contribution-1/confirm",
			serviceErr:     domain.ErrCapacityExceeded,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "invalid id",
			method:         http.MethodPost,
			path:           "/contributions/not-a-uuid/confirm",
			serviceErr:     domain.ErrInvalidID,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "ledger inconsistency",
			method:         http.MethodPost,
			path:           "/contributions/contribution-1/confirm",
			serviceErr:     domain.ErrLedgerInconsistency,
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "invalid path",
			method:         http.MethodPost,
			path:           "/contributions/contribution-1",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "method not allowed",
			method:         http.MethodGet,
			path:           "/contributions/contribution-1/confirm",
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubContributionConfirmer{
				result: tt.result,
				err:    tt.serviceErr,
			}

			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()

			HandleConfirmContribution(svc).ServeHTTP(rec, req)

			res := rec.Result()
			if res.StatusCode != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, res.StatusCode)
			}
			if tt.expectedSubstr != "" {
				body := rec.Body.String()
				if !strings.Contains(body, tt.expectedSubstr) {
					t.Fatalf("expected response to contain %q, got %q", tt.expectedSubstr, body)
				}
			}
		})
	}
}

type stubContributionConfirmer struct {
	result app.ConfirmContributionResult
	err    error
}

func (s *stubContributionConfirmer) Confirm(_ context.Context, _ string) (app.ConfirmContributionResult, error) {
	return s.result, s.err
}
