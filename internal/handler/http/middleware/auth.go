package middleware

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/tokenstore"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired accepts only unrevoked access tokens. It runs after jwtauth.Verifier.
func AuthRequired(revoked tokenstore.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != jwt.TypeAccess {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			isRevoked, err := revoked.IsRevoked(r.Context(), token.JwtID())
			if err != nil {
				slog.Error("token revocation lookup failed", "error", err)
				response.InternalServerError(w, "Unable to verify token")
				return
			}
			if isRevoked {
				response.HandleError(w, auth.ErrTokenRevoked)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
