package router

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"

	"github.com/Thakshaka/clinic-management-system/internal/assistant"
	"github.com/Thakshaka/clinic-management-system/internal/history"
	"github.com/Thakshaka/clinic-management-system/internal/records"
	"github.com/Thakshaka/clinic-management-system/pkg/logging"
)

const testJWTSecret = "router-test-secret"

type emptyFetcher struct{}

func (emptyFetcher) NextAppointment(context.Context, string) *records.Appointment { return nil }
func (emptyFetcher) RecentPrescriptions(context.Context, string, int) []records.Prescription {
	return nil
}
func (emptyFetcher) RecentVisits(context.Context, string, int) []records.Appointment { return nil }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := logging.New("error")
	mr := miniredis.RunT(t)
	historyStore := history.NewStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Hour, logger)

	clinic := assistant.ClinicInfo{Name: "Test Clinic", Location: "Colombo", Phone: "011", Email: "clinic@example.com", Hours: "9-5"}
	composer := assistant.NewComposer(emptyFetcher{}, nil, clinic, 0, rand.New(rand.NewSource(1)), nil, logger)
	service := assistant.NewService(composer, historyStore, nil, nil, logger)

	return New(&Config{
		Logger:           logger,
		AssistantHandler: assistant.NewHandler(service, logger),
		PatientJWTSecret: testJWTSecret,
	})
}

func patientToken(t *testing.T, email string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestRouterHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", resp["status"])
	}
}

func TestRouterAssistantRequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	endpoints := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/assistant/message"},
		{http.MethodGet, "/assistant/history"},
		{http.MethodDelete, "/assistant/history"},
		{http.MethodGet, "/assistant/quick-actions"},
	}

	for _, ep := range endpoints {
		req := httptest.NewRequest(ep.method, ep.path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", ep.method, ep.path, rr.Code)
		}
	}
}

func TestRouterAssistantMessageFlow(t *testing.T) {
	router := newTestRouter(t)
	token := patientToken(t, "jane@example.com")

	req := httptest.NewRequest(http.MethodPost, "/assistant/message", strings.NewReader(`{"message":"hello"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Intent string `json:"intent"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Intent != "greeting" {
		t.Errorf("intent = %q, want greeting", resp.Intent)
	}

	// The turn must be visible in history afterwards.
	req = httptest.NewRequest(http.MethodGet, "/assistant/history", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var histResp struct {
		Messages []struct {
			Text   string `json:"text"`
			Sender string `json:"sender"`
		} `json:"messages"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&histResp); err != nil {
		t.Fatalf("failed to decode history: %v", err)
	}
	if len(histResp.Messages) != 3 {
		t.Fatalf("expected welcome + user + assistant, got %d messages", len(histResp.Messages))
	}
	if histResp.Messages[1].Text != "hello" || histResp.Messages[1].Sender != "user" {
		t.Errorf("unexpected user message: %+v", histResp.Messages[1])
	}
}

func TestRouterQuickActions(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/assistant/quick-actions", nil)
	req.Header.Set("Authorization", "Bearer "+patientToken(t, "jane@example.com"))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp struct {
		QuickActions []json.RawMessage `json:"quickActions"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.QuickActions) != 5 {
		t.Errorf("expected 5 quick actions, got %d", len(resp.QuickActions))
	}
}
