package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/agromandi/payment-service/internal/delivery/http/handlers"
	"github.com/golang-jwt/jwt/v5"
)

// Authenticator resolves the caller identity for a request.
type Authenticator interface {
	Authenticate(r *http.Request) (userID string, err error)
}

// JWTAuthenticator validates HS256 bearer tokens issued by the marketplace
// auth service. Only the subject claim is consumed here.
type JWTAuthenticator struct {
	secret []byte
}

func NewJWTAuthenticator(secret string) *JWTAuthenticator {
	return &JWTAuthenticator{secret: []byte(secret)}
}

func (a *JWTAuthenticator) Authenticate(r *http.Request) (string, error) {
	raw, err := bearerTokenFromHeader(r.Header.Get("Authorization"))
	if err != nil {
		return "", err
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", errors.New("missing subject claim")
	}
	return sub, nil
}

// DemoAuthenticator resolves every request to one fixed identity. Selected
// once at startup when demo mode is configured; request handlers never
// consult global state to decide.
type DemoAuthenticator struct {
	UserID string
}

func (a *DemoAuthenticator) Authenticate(_ *http.Request) (string, error) {
	return a.UserID, nil
}

func authMiddleware(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := auth.Authenticate(r)
			if err != nil {
				handlers.WriteError(w, http.StatusUnauthorized, "invalid or missing credentials")
				return
			}
			next.ServeHTTP(w, r.WithContext(handlers.WithUserID(r.Context(), userID)))
		})
	}
}
