package api

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
)

// ValidateAdminToken returns true if providedToken matches configToken.
// If configToken is empty, callers should treat the admin surface as disabled.
func ValidateAdminToken(providedToken string, configToken string) bool {
	if configToken == "" || providedToken == "" {
		return false
	}
	if len(providedToken) != len(configToken) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(providedToken), []byte(configToken)) == 1
}

// ExtractBearerToken extracts a token from an Authorization: Bearer <token> header.
func ExtractBearerToken(r *http.Request) (string, error) {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return "", errors.New("missing Authorization header")
	}

	const prefix = "Bearer "
	if len(auth) < len(prefix) || auth[:len(prefix)] != prefix {
		return "", errors.New("invalid Authorization header format")
	}

	token := strings.TrimSpace(auth[len(prefix):])
	if token == "" {
		return "", errors.New("missing token")
	}
	return token, nil
}

// adminAuthMiddleware validates the bearer token guarding administrative routes
func (s *Server) adminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := ExtractBearerToken(r)
		if err != nil {
			s.writeError(w, http.StatusUnauthorized, err.Error())
			return
		}

		if !ValidateAdminToken(token, s.config.AdminToken) {
			s.writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		next.ServeHTTP(w, r)
	})
}
