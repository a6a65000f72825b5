package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const patientEmailKey contextKey = "patientEmail"

// PatientJWT enforces an HMAC-signed JWT on patient endpoints. The subject
// claim carries the patient's email, which keys their records and transcript.
// WebSocket clients cannot set headers, so a "token" query parameter is
// accepted as a fallback.
func PatientJWT(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				http.Error(w, "patient auth disabled", http.StatusUnauthorized)
				return
			}

			tokenString := bearerToken(r)
			if tokenString == "" {
				tokenString = r.URL.Query().Get("token")
			}
			if tokenString == "" {
				http.Error(w, "missing authorization", http.StatusUnauthorized)
				return
			}

			claims := jwt.RegisteredClaims{}
			token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			if claims.Subject == "" {
				http.Error(w, "token missing subject", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPatientEmail(r.Context(), claims.Subject)))
		})
	}
}

// WithPatientEmail returns a context carrying the patient's email. Useful for
// handlers invoked outside the middleware chain and for tests.
func WithPatientEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, patientEmailKey, email)
}

// PatientEmailFromContext returns the authenticated patient's email.
func PatientEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(patientEmailKey).(string)
	return email, ok
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}
