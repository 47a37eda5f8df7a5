package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const tokenTTL = 24 * time.Hour

// Claims defines the JWT claims structure.
type Claims struct {
	UserID int64 `json:"userId"`
	jwt.RegisteredClaims
}

type contextKey string

// userIDKey is the context key under which the middleware stores the
// authenticated user's id.
const userIDKey = contextKey("applytrack-user-id")

// Manager issues and validates signed bearer tokens. The signing secret is
// injected once at construction; it is never read from the environment at
// call sites.
type Manager struct {
	secret []byte
}

// NewManager creates a token manager for the given signing secret.
func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

// Generate creates a new signed token bound to the given user id,
// expiring 24 hours from now.
func (m *Manager) Generate(userID int64) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate parses a token string and returns its claims. Expired, malformed,
// or wrongly signed tokens all fail.
func (m *Manager) Validate(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// Middleware gates a route behind a valid bearer token. The token travels in
// the Authorization header only, as "Bearer <token>"; requests failing the
// check are rejected before any business logic runs.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr, err := bearerToken(r.Header.Get("Authorization"))
		if err != nil {
			log.Warn().Err(err).Str("path", r.URL.Path).Msg("Missing or malformed auth header")
			unauthorized(w, "Missing auth token")
			return
		}

		claims, err := m.Validate(tokenStr)
		if err != nil {
			log.Warn().Err(err).Str("path", r.URL.Path).Msg("Token validation failed")
			unauthorized(w, "Invalid auth token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID extracts the authenticated user's id from the request context.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

func bearerToken(header string) (string, error) {
	if strings.TrimSpace(header) == "" {
		return "", errors.New("missing authorization header")
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header format")
	}
	return parts[1], nil
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
