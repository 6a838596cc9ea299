package account

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/btcpulse/handler"
	"github.com/dmitrymomot/btcpulse/pkg/auth"
	"github.com/dmitrymomot/btcpulse/pkg/jwt"
)

// requireToken verifies the bearer token and stores its claims with
// auth.WithClaims. No token is "Unauthorized"; a bad or expired one is
// "Token invalid or expired". Both are 401.
func (m *Module) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := jwt.BearerTokenExtractor(r)
		if errors.Is(err, jwt.ErrMissingToken) {
			unauthorized(w, "Unauthorized")
			return
		}
		if err != nil {
			unauthorized(w, "Token invalid or expired")
			return
		}

		claims, err := m.auth.ParseToken(token)
		if err != nil {
			unauthorized(w, "Token invalid or expired")
			return
		}

		ctx := jwt.SetToken(r.Context(), token)
		next.ServeHTTP(w, r.WithContext(auth.WithClaims(ctx, claims)))
	})
}

func unauthorized(w http.ResponseWriter, message string) {
	handler.WriteJSON(w, http.StatusUnauthorized, handler.Envelope{
		"success": false,
		"message": message,
	})
}
