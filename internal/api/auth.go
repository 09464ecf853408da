package api

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// extractToken pulls a bearer token from the Authorization header, falling
// back to a ?token= query param for browser-initiated WebSocket-style
// clients that can't set headers.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}
	return ""
}

// parseClaims validates tokenString against secret and returns the caller's
// subject and role.
func parseClaims(tokenString string, secret []byte) (subject, role string, err error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		return "", "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", fmt.Errorf("heimdall: invalid token claims")
	}

	subject, _ = claims["sub"].(string)
	role, _ = claims["role"].(string)
	return subject, role, nil
}

// jwtSecret resolves the HMAC signing secret. It panics outside development
// mode if the secret is unset or shorter than 32 characters, matching the fail-closed posture of Asgard's own auth
// service: a validator that silently accepts unsigned requests is worse
// than one that refuses to start.
func jwtSecret() []byte {
	secret := os.Getenv("HEIMDALL_JWT_SECRET")
	if len(secret) >= 32 {
		return []byte(secret)
	}
	if os.Getenv("HEIMDALL_ENV") == "development" {
		return []byte("heimdall_dev_jwt_secret_not_for_production_use")
	}
	panic("HEIMDALL_JWT_SECRET environment variable must be set (min 32 characters)")
}
