package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, subject string, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func patientEchoHandler(t *testing.T, wantEmail string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, ok := PatientEmailFromContext(r.Context())
		if !ok {
			t.Error("patient email missing from context")
		}
		if email != wantEmail {
			t.Errorf("patient email = %q, want %q", email, wantEmail)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestPatientJWTValidBearer(t *testing.T) {
	handler := PatientJWT(testSecret)(patientEchoHandler(t, "jane@example.com"))

	req := httptest.NewRequest(http.MethodGet, "/assistant/history", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "jane@example.com", time.Now().Add(time.Hour)))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestPatientJWTQueryTokenFallback(t *testing.T) {
	handler := PatientJWT(testSecret)(patientEchoHandler(t, "jane@example.com"))

	token := signToken(t, testSecret, "jane@example.com", time.Now().Add(time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/assistant/ws?token="+token, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestPatientJWTRejections(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		header string
	}{
		{"no secret configured", "", "Bearer " + signToken(t, testSecret, "jane@example.com", time.Now().Add(time.Hour))},
		{"missing header", testSecret, ""},
		{"malformed header", testSecret, "Token abc"},
		{"wrong signing key", testSecret, "Bearer " + signToken(t, "other-secret", "jane@example.com", time.Now().Add(time.Hour))},
		{"expired token", testSecret, "Bearer " + signToken(t, testSecret, "jane@example.com", time.Now().Add(-time.Hour))},
		{"missing subject", testSecret, "Bearer " + signToken(t, testSecret, "", time.Now().Add(time.Hour))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := PatientJWT(tt.secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodGet, "/assistant/history", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
			if called {
				t.Error("next handler must not run on rejected request")
			}
		})
	}
}
