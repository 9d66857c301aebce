package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

type contextKey string

const ClaimsContextKey contextKey = "claims"

// AuthMiddleware extracts the bearer token from the Authorization header,
// verifies it and injects the claims into the request context. Every failure
// answers with the same generic 401; expired, malformed and unsigned tokens
// are not distinguished.
func (h *AuthHandler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			h.sendErrorResponse(w, http.StatusUnauthorized, invalidToken)
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || bearerToken[0] != "Bearer" {
			h.sendErrorResponse(w, http.StatusUnauthorized, invalidToken)
			return
		}

		claims, err := h.service.ParseToken(bearerToken[1])
		if err != nil {
			h.sendErrorResponse(w, http.StatusUnauthorized, invalidToken)
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClaimsFromContext extracts verified claims from the request context.
func GetClaimsFromContext(r *http.Request) (*Claims, error) {
	claims, ok := r.Context().Value(ClaimsContextKey).(*Claims)
	if !ok {
		return nil, errors.New("no claims found in context")
	}
	return claims, nil
}
