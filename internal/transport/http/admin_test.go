package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Teckart20/say-i-do-gifts/internal/app"
	"github.com/Teckart20/say-i-do-gifts/internal/domain"
)

func TestHandleAdminRegistries_Create(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC)
	couple := domain.Couple{
		ID:          "couple-1",
		Slug:        "ana-e-bruno",
		BrideName:   "Ana",
		GroomName:   "Bruno",
		WeddingDate: now,
		CreatedAt:   now,
	}

	tests := []struct {
		name           string
		body           string
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "success",
			body:           `{"slug":"ana-e-bruno","bride_name":"Ana","groom_name":"Bruno"}`,
			expectedStatus: http.StatusCreated,
			expectedSubstr: `"slug":"ana-e-bruno"`,
		},
		{
			name:           "with wedding date",
			body:           `{"slug":"ana-e-bruno","bride_name":"Ana","groom_name":"Bruno","wedding_date":"2025-09-20T00:00:00Z"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "bad wedding date",
			body:           `{"slug":"ana-e-bruno","bride_name":"Ana","groom_name":"Bruno","wedding_date":"20/09/2025"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid json",
			body:           `{"slug":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing slug",
			body:           `{"bride_name":"Ana","groom_name":"Bruno"}`,
			serviceErr:     domain.ErrSlugRequired,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing names",
			body:           `{"slug":"ana-e-bruno"}`,
			serviceErr:     domain.ErrCoupleNamesRequired,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "slug taken",
			body:           `{"slug":"ana-e-bruno","bride_name":"Ana","groom_name":"Bruno"}`,
			serviceErr:     domain.ErrSlugAlreadyExists,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "internal error",
			body:           `{"slug":"ana-e-bruno","bride_name":"Ana","groom_name":"Bruno"}`,
			serviceErr:     errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubCoupleService{couple: couple, err: tt.serviceErr}

			req := httptest.NewRequest(http.MethodPost, "/admin/registries", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			HandleAdminRegistries(svc).ServeHTTP(rec, req)

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

func TestHandleAdminRegistries_List(t *testing.T) {
	t.Parallel()

	svc := &stubCoupleService{
		couples: []domain.Couple{
			{ID: "couple-1", Slug: "ana-e-bruno"},
			{ID: "couple-2", Slug: "carla-e-diego"},
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/registries", nil)
	rec := httptest.NewRecorder()

	HandleAdminRegistries(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "ana-e-bruno") || !strings.Contains(body, "carla-e-diego") {
		t.Fatalf("expected both slugs in listing, got %q", body)
	}
}

func TestHandleAdminRegistryGifts(t *testing.T) {
	t.Parallel()

	suggested := decimal.NewFromInt(450)
	gift := domain.Gift{
		ID:              "gift-1",
		CoupleID:        "couple-1",
		Name:            "Espresso Machine",
		DesiredQuantity: 1,
		SuggestedValue:  &suggested,
		CollectedAmount: decimal.Zero,
	}

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "create success",
			method:         http.MethodPost,
			path:           "/admin/registries/couple-1/gifts",
			body:           `{"name":"Espresso Machine","suggested_value":"450"}`,
			expectedStatus: http.StatusCreated,
			expectedSubstr: `"name":"Espresso Machine"`,
		},
		{
			name:           "create missing name",
			method:         http.MethodPost,
			path:           "/admin/registries/couple-1/gifts",
			body:           `{"desired_quantity":2}`,
			serviceErr:     domain.ErrGiftNameRequired,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "create couple not found",
			method:         http.MethodPost,
			path:           "/admin/registries/couple-404/gifts",
			body:           `{"name":"Espresso Machine"}`,
			serviceErr:     domain.ErrCoupleNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "list success",
			method:         http.MethodGet,
			path:           "/admin/registries/couple-1/gifts",
			expectedStatus: http.StatusOK,
			expectedSubstr: `"Espresso Machine"`,
		},
		{
			name:           "invalid path",
			method:         http.MethodGet,
			path:           "/admin/registries/couple-1",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "method not allowed",
			method:         http.MethodDelete,
			path:           "/admin/registries/couple-1/gifts",
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubGiftAdminService{gift: gift, gifts: []domain.Gift{gift}, err: tt.serviceErr}

			var body *bytes.Buffer
			if tt.body != "" {
				body = bytes.NewBufferString(tt.body)
			} else {
				body = &bytes.Buffer{}
			}
			req := httptest.NewRequest(tt.method, tt.path, body)
			rec := httptest.NewRecorder()

			HandleAdminRegistryGifts(svc).ServeHTTP(rec, req)

			res := rec.Result()
			if res.StatusCode != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, res.StatusCode)
			}
			if tt.expectedSubstr != "" {
				got := rec.Body.String()
				if !strings.Contains(got, tt.expectedSubstr) {
					t.Fatalf("expected response to contain %q, got %q", tt.expectedSubstr, got)
				}
			}
		})
	}
}

func TestHandleAdminGifts(t *testing.T) {
	t.Parallel()

	gift := domain.Gift{
		ID:                "gift-1",
		CoupleID:          "couple-1",
		Name:              "Dinner Set",
		DesiredQuantity:   6,
		PurchasedQuantity: 2,
		CollectedAmount:   decimal.Zero,
	}

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "patch target",
			method:         http.MethodPatch,
			path:           "/admin/gifts/gift-1",
			body:           `{"desired_quantity":6}`,
			expectedStatus: http.StatusOK,
			expectedSubstr: `"desired_quantity":6`,
		},
		{
			name:           "patch below purchased",
			method:         http.MethodPatch,
			path:           "/admin/gifts/gift-1",
			body:           `{"desired_quantity":1}`,
			serviceErr:     domain.ErrInvalidTarget,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "patch gift not found",
			method:         http.MethodPatch,
			path:           "/admin/gifts/gift-404",
			body:           `{"desired_quantity":3}`,
			serviceErr:     domain.ErrGiftNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "patch invalid json",
			method:         http.MethodPatch,
			path:           "/admin/gifts/gift-1",
			body:           `{"desired_quantity":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "delete success",
			method:         http.MethodDelete,
			path:           "/admin/gifts/gift-1",
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "delete with confirmed contributions",
			method:         http.MethodDelete,
			path:           "/admin/gifts/gift-1",
			serviceErr:     domain.ErrGiftHasContributions,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "invalid path",
			method:         http.MethodDelete,
			path:           "/admin/gifts",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "method not allowed",
			method:         http.MethodPut,
			path:           "/admin/gifts/gift-1",
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubGiftAdminService{gift: gift, err: tt.serviceErr}

			req := httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			HandleAdminGifts(svc).ServeHTTP(rec, req)

			res := rec.Result()
			if res.StatusCode != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, res.StatusCode)
			}
			if tt.expectedSubstr != "" {
				got := rec.Body.String()
				if !strings.Contains(got, tt.expectedSubstr) {
					t.Fatalf("expected response to contain %q, got %q", tt.expectedSubstr, got)
				}
			}
		})
	}
}

type stubCoupleService struct {
	couple  domain.Couple
	couples []domain.Couple
	err     error
}

func (s *stubCoupleService) CreateCouple(_ context.Context, _ app.CreateCoupleInput) (domain.Couple, error) {
	if s.err != nil {
		return domain.Couple{}, s.err
	}
	return s.couple, nil
}

func (s *stubCoupleService) ListCouples(_ context.Context) ([]domain.Couple, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.couples, nil
}

type stubGiftAdminService struct {
	gift  domain.Gift
	gifts []domain.Gift
	err   error
}

func (s *stubGiftAdminService) CreateGift(_ context.Context, _ app.CreateGiftInput) (domain.Gift, error) {
	if s.err != nil {
		return domain.Gift{}, s.err
	}
	return s.gift, nil
}

func (s *stubGiftAdminService) ListGifts(_ context.Context, _ string) ([]domain.Gift, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.gifts, nil
}

func (s *stubGiftAdminService) UpdateGiftTarget(_ context.Context, _ app.UpdateGiftTargetInput) (domain.Gift, error) {
	if s.err != nil {
		return domain.Gift{}, s.err
	}
	return s.gift, nil
}

func (s *stubGiftAdminService) DeleteGift(_ context.Context, _ string) error {
	return s.err
}
