package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/angelmondragon/invitation-backend/internal/gifts"
	pkgerrors "github.com/angelmondragon/invitation-backend/pkg/errors"
	"github.com/angelmondragon/invitation-backend/pkg/logger"
	"github.com/angelmondragon/invitation-backend/pkg/sheets"
)

type testGiftService struct {
	listFn    func(ctx context.Context) ([]gifts.Gift, error)
	claimFn   func(ctx context.Context, giftID string, claimant gifts.Claimant) error
	unclaimFn func(ctx context.Context, giftID string) error
}

func (s *testGiftService) List(ctx context.Context) ([]gifts.Gift, error) {
	if s.listFn != nil {
		return s.listFn(ctx)
	}
	return nil, nil
}

func (s *testGiftService) Claim(ctx context.Context, giftID string, claimant gifts.Claimant) error {
	if s.claimFn != nil {
		return s.claimFn(ctx, giftID, claimant)
	}
	return nil
}

func (s *testGiftService) Unclaim(ctx context.Context, giftID string) error {
	if s.unclaimFn != nil {
		return s.unclaimFn(ctx, giftID)
	}
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

type errorEnvelope struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func decodeErrorEnvelope(t *testing.T, resp *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var envelope errorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	return envelope
}

func assertSuccessMarker(t *testing.T, resp *httptest.ResponseRecorder) {
	t.Helper()
	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	var body map[string]bool
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body) != 1 || !body["success"] {
		t.Fatalf("expected success marker, got %v", body)
	}
}

func TestGiftListReturnsGifts(t *testing.T) {
	svc := &testGiftService{
		listFn: func(ctx context.Context) ([]gifts.Gift, error) {
			return []gifts.Gift{{ID: "g1", Title: "Licuadora", Status: "available", Kind: "unique"}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/gifts", nil)
	resp := httptest.NewRecorder()
	GiftList(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var list []map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(list) != 1 || list[0]["gift_id"] != "g1" || list[0]["type"] != "unique" {
		t.Fatalf("unexpected gifts %v", list)
	}
}

func TestGiftListStoreFailureIsOpaque(t *testing.T) {
	svc := &testGiftService{
		listFn: func(ctx context.Context) ([]gifts.Gift, error) {
			cause := &sheets.StoreError{Op: "read", Range: "Gifts!A2:K", Err: errors.New("quota exceeded for project 1234")}
			return nil, pkgerrors.Wrap(pkgerrors.CodeStoreUnavailable, cause, "list gifts")
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/gifts", nil)
	resp := httptest.NewRecorder()
	GiftList(svc, testLogger())(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if strings.Contains(resp.Body.String(), "quota") {
		t.Fatalf("store detail leaked: %s", resp.Body.String())
	}
	envelope := decodeErrorEnvelope(t, resp)
	if envelope.Error.Code != string(pkgerrors.CodeStoreUnavailable) {
		t.Fatalf("unexpected code %s", envelope.Error.Code)
	}
}

func TestGiftClaimPassesSanitizedClaimant(t *testing.T) {
	var gotID string
	var got gifts.Claimant
	svc := &testGiftService{
		claimFn: func(ctx context.Context, giftID string, claimant gifts.Claimant) error {
			gotID = giftID
			got = claimant
			return nil
		},
	}

	body := `{"gift_id":"g1","name":"  Ana  ","phone":"300 123","email":"ana@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/gifts/claim", strings.NewReader(body))
	resp := httptest.NewRecorder()
	GiftClaim(svc, testLogger())(resp, req)

	assertSuccessMarker(t, resp)
	if gotID != "g1" {
		t.Fatalf("unexpected gift id %q", gotID)
	}
	if got.Name != "Ana" || got.Phone != "300 123" || got.Email != "ana@example.com" {
		t.Fatalf("unexpected claimant %+v", got)
	}
}

func TestGiftClaimStripsFormulaPrefixes(t *testing.T) {
	var got gifts.Claimant
	svc := &testGiftService{
		claimFn: func(ctx context.Context, giftID string, claimant gifts.Claimant) error {
			got = claimant
			return nil
		},
	}

	body := `{"gift_id":"g1","name":"=HYPERLINK(\"http://evil\",\"Ana\")","phone":"+57 300 123","email":"ana@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/gifts/claim", strings.NewReader(body))
	resp := httptest.NewRecorder()
	GiftClaim(svc, testLogger())(resp, req)

	assertSuccessMarker(t, resp)
	if got.Name != `HYPERLINK("http://evil","Ana")` {
		t.Fatalf("unexpected name %q", got.Name)
	}
	if got.Phone != "+57 300 123" || got.Email != "ana@example.com" {
		t.Fatalf("unexpected claimant %+v", got)
	}
}

func TestGiftClaimValidation(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		field string
		want  string
	}{
		{"missing gift", `{"name":"Ana"}`, "gift_id", "Regalo es requerido"},
		{"missing name", `{"gift_id":"g1"}`, "name", "Nombre es requerido"},
		{"bad email", `{"gift_id":"g1","name":"Ana","email":"nope"}`, "email", "Correo inválido"},
		{"bad json", `{"gift_id":`, "body", "JSON inválido"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			svc := &testGiftService{
				claimFn: func(ctx context.Context, giftID string, claimant gifts.Claimant) error {
					called = true
					return nil
				},
			}
			req := httptest.NewRequest(http.MethodPost, "/api/gifts/claim", strings.NewReader(tc.body))
			resp := httptest.NewRecorder()
			GiftClaim(svc, testLogger())(resp, req)

			if resp.Code != http.StatusBadRequest {
				t.Fatalf("unexpected status %d", resp.Code)
			}
			if called {
				t.Fatal("service must not be called on invalid input")
			}
			envelope := decodeErrorEnvelope(t, resp)
			if envelope.Error.Code != string(pkgerrors.CodeValidation) || envelope.Error.Message != "Datos inválidos" {
				t.Fatalf("unexpected error %+v", envelope.Error)
			}
			if envelope.Error.Details[tc.field] != tc.want {
				t.Fatalf("unexpected details %v", envelope.Error.Details)
			}
		})
	}
}

func TestGiftClaimMapsDomainErrors(t *testing.T) {
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{pkgerrors.New(pkgerrors.CodeAlreadyClaimed, "taken"), http.StatusConflict, "Ya fue seleccionado por otra persona"},
		{pkgerrors.New(pkgerrors.CodeNotFound, "missing"), http.StatusNotFound, "regalo no encontrado"},
		{errors.New("boom"), http.StatusInternalServerError, "Ocurrió un error inesperado"},
	}

	for _, tc := range cases {
		svc := &testGiftService{
			claimFn: func(ctx context.Context, giftID string, claimant gifts.Claimant) error {
				return tc.err
			},
		}
		req := httptest.NewRequest(http.MethodPost, "/api/gifts/claim", strings.NewReader(`{"gift_id":"g1","name":"Ana"}`))
		resp := httptest.NewRecorder()
		GiftClaim(svc, testLogger())(resp, req)

		if resp.Code != tc.status {
			t.Fatalf("expected %d, got %d", tc.status, resp.Code)
		}
		if envelope := decodeErrorEnvelope(t, resp); envelope.Error.Message != tc.msg {
			t.Fatalf("unexpected message %q", envelope.Error.Message)
		}
	}
}

func TestGiftUnclaim(t *testing.T) {
	var gotID string
	svc := &testGiftService{
		unclaimFn: func(ctx context.Context, giftID string) error {
			gotID = giftID
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/gifts/unclaim", strings.NewReader(`{"gift_id":"g7"}`))
	resp := httptest.NewRecorder()
	GiftUnclaim(svc, testLogger())(resp, req)

	assertSuccessMarker(t, resp)
	if gotID != "g7" {
		t.Fatalf("unexpected gift id %q", gotID)
	}
}

func TestGiftHandlersRequireService(t *testing.T) {
	handlers := map[string]http.HandlerFunc{
		"list":    GiftList(nil, testLogger()),
		"claim":   GiftClaim(nil, testLogger()),
		"unclaim": GiftUnclaim(nil, testLogger()),
	}
	for name, handler := range handlers {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
		resp := httptest.NewRecorder()
		handler(resp, req)
		if resp.Code != http.StatusInternalServerError {
			t.Fatalf("%s: expected 500, got %d", name, resp.Code)
		}
	}
}
