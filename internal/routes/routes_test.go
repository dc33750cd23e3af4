package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/appointment-booking/internal/config"
	"github.com/BruksfildServices01/appointment-booking/internal/httperr"
	"github.com/BruksfildServices01/appointment-booking/internal/middleware"
	"github.com/BruksfildServices01/appointment-booking/internal/models"
)

// The requests below are all rejected before any store access, so the
// router is built without a database.
func testRouter(t *testing.T) (*gin.Engine, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWTSecret:              "test-secret",
		JWTTTL:                 time.Hour,
		DefaultIntervalMinutes: 30,
		BookingRateLimit:       5,
		BookingRateWindow:      time.Minute,
	}

	r := gin.New()
	RegisterRoutes(r, Deps{Config: cfg, Log: zap.NewNop()})
	return r, cfg
}

func tokenFor(t *testing.T, cfg *config.Config, role string) string {
	t.Helper()
	token, err := middleware.IssueToken(cfg, &models.User{ID: "user-1", Name: "Carla", Role: role}, "")
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	return token
}

func do(r http.Handler, method, path, token, body, lang string) (*httptest.ResponseRecorder, httperr.HTTPError) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if lang != "" {
		req.Header.Set("Accept-Language", lang)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out httperr.HTTPError
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func TestHealth(t *testing.T) {
	r, _ := testRouter(t)
	w, _ := do(r, http.MethodGet, "/health", "", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestBookingRequiresCustomer(t *testing.T) {
	r, cfg := testRouter(t)

	w, _ := do(r, http.MethodPost, "/api/businesses/biz-1/appointments", "", `{}`, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	w, body := do(r, http.MethodPost, "/api/businesses/biz-1/appointments", tokenFor(t, cfg, models.RoleBusiness), `{}`, "")
	if w.Code != http.StatusForbidden || body.Code != "not_customer" {
		t.Fatalf("expected 403 not_customer, got %d %+v", w.Code, body)
	}
}

func TestBookingValidationIsLocalized(t *testing.T) {
	r, cfg := testRouter(t)
	token := tokenFor(t, cfg, models.RoleCustomer)

	w, body := do(r, http.MethodPost, "/api/businesses/biz-1/appointments", token, `{"date":"2026-06-08","time":"10:00"}`, "")
	if w.Code != http.StatusBadRequest || body.Code != "missing_service" {
		t.Fatalf("expected 400 missing_service, got %d %+v", w.Code, body)
	}
	if body.Message != "Service is required." {
		t.Fatalf("unexpected english message %q", body.Message)
	}

	_, body = do(r, http.MethodPost, "/api/businesses/biz-1/appointments", token, `{"service_id":"s","date":"2026-06-08"}`, "pt-BR,pt;q=0.9")
	if body.Code != "missing_time" || body.Message != "Hora obrigatória." {
		t.Fatalf("expected portuguese missing_time, got %+v", body)
	}

	w, body = do(r, http.MethodPost, "/api/businesses/biz-1/appointments", token, `{"service_id":"s","date":"2026-06-08","time":"25:00"}`, "")
	if w.Code != http.StatusBadRequest || body.Code != "invalid_time" {
		t.Fatalf("expected 400 invalid_time, got %d %+v", w.Code, body)
	}

	w, body = do(r, http.MethodPost, "/api/businesses/biz-1/appointments", token, `not json`, "")
	if w.Code != http.StatusBadRequest || body.Code != "invalid_request" {
		t.Fatalf("expected 400 invalid_request, got %d %+v", w.Code, body)
	}
}

func TestAvailabilityValidation(t *testing.T) {
	r, _ := testRouter(t)

	w, body := do(r, http.MethodGet, "/api/businesses/biz-1/availability?date=2026-06-08", "", "", "")
	if w.Code != http.StatusBadRequest || body.Code != "missing_service" {
		t.Fatalf("expected 400 missing_service, got %d %+v", w.Code, body)
	}

	w, body = do(r, http.MethodGet, "/api/businesses/biz-1/availability?service_id=s", "", "", "")
	if w.Code != http.StatusBadRequest || body.Code != "missing_date" {
		t.Fatalf("expected 400 missing_date, got %d %+v", w.Code, body)
	}
}

func TestOwnerRoutesRejectCustomers(t *testing.T) {
	r, cfg := testRouter(t)
	token := tokenFor(t, cfg, models.RoleCustomer)

	cases := []struct {
		method, path string
	}{
		{http.MethodGet, "/api/me/business"},
		{http.MethodDelete, "/api/me/business"},
		{http.MethodGet, "/api/me/services"},
		{http.MethodGet, "/api/me/absences"},
		{http.MethodPatch, "/api/me/absences/abs-1"},
		{http.MethodPatch, "/api/me/absences/abs-1/approve"},
		{http.MethodPatch, "/api/me/absences/abs-1/reject"},
		{http.MethodGet, "/api/me/audit-logs"},
	}
	for _, tc := range cases {
		w, body := do(r, tc.method, tc.path, token, `{}`, "")
		if w.Code != http.StatusForbidden || body.Code != "not_business_owner" {
			t.Fatalf("%s %s: expected 403 not_business_owner, got %d %+v", tc.method, tc.path, w.Code, body)
		}
	}
}

func TestCustomerRoutesRejectOwners(t *testing.T) {
	r, cfg := testRouter(t)
	token := tokenFor(t, cfg, models.RoleBusiness)

	for _, path := range []string{"/api/me/appointments", "/api/me/appointments?upcoming=1", "/api/me/favorites"} {
		w, body := do(r, http.MethodGet, path, token, "", "")
		if w.Code != http.StatusForbidden || body.Code != "not_customer" {
			t.Fatalf("%s: expected 403 not_customer, got %d %+v", path, w.Code, body)
		}
	}
}

func TestAccountRoutesRequireToken(t *testing.T) {
	r, _ := testRouter(t)

	for _, method := range []string{http.MethodGet, http.MethodPatch, http.MethodDelete} {
		w, _ := do(r, method, "/api/me", "", `{}`, "")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s /api/me: expected 401, got %d", method, w.Code)
		}
	}
}
