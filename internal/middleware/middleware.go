package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/RafiqApp/Rafiq-Backend/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/time/rate"
)

// Identity is the authenticated caller as asserted by the external auth
// service. The engine never stores credentials; it only consumes tokens.
type Identity struct {
	MemberID    string
	DisplayName string
}

type IdentityFetcher interface {
	FromToken(token string) (Identity, error)
}

// JWTFetcher validates HS256 tokens minted by the auth service.
type JWTFetcher struct {
	Secret []byte
}

func (f JWTFetcher) FromToken(raw string) (Identity, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return f.Secret, nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Identity{}, fmt.Errorf("invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return Identity{}, fmt.Errorf("token missing sub claim")
	}
	name, _ := claims["name"].(string)
	if name == "" {
		name = sub
	}

	return Identity{MemberID: sub, DisplayName: name}, nil
}

// IdentityMiddleware resolves the Bearer token into member id + display name
// context values. Requests without a valid identity get a 401.
func IdentityMiddleware(fetcher IdentityFetcher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "Missing bearer token", http.StatusUnauthorized)
				return
			}

			identity, err := fetcher.FromToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), utils.ContextMemberIDKey, identity.MemberID)
			ctx = context.WithValue(ctx, utils.ContextMemberNameKey, identity.DisplayName)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

var allowed = map[string]struct{}{
	"http://localhost:5173":      {},
	"http://localhost:8081":      {},
	"https://app.rafiq.travel":   {},
	"https://admin.rafiq.travel": {},
	"https://agent.rafiq.travel": {},
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		// Echo the origin back only if it's on our allow-list
		if _, ok := allowed[origin]; ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin") // important for caches
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods",
				"GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers",
				"Content-Type, Authorization")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// memberLimiter hands out one token-bucket limiter per member id so a
// misbehaving client cannot flood the report pipeline for everyone.
type memberLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

func (m *memberLimiter) get(memberID string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.limiters[memberID]
	if !ok {
		l = rate.NewLimiter(m.rate, m.burst)
		m.limiters[memberID] = l
	}
	return l
}

// ReportRateLimitMiddleware throttles position reports per member. Must run
// after IdentityMiddleware so the member id is in context.
func ReportRateLimitMiddleware(perSec float64, burst int) func(http.Handler) http.Handler {
	ml := &memberLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(perSec),
		burst:    burst,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			memberID, ok := utils.GetMemberIDFromContext(r.Context())
			if !ok {
				http.Error(w, "Missing identity", http.StatusUnauthorized)
				return
			}

			if !ml.get(memberID).Allow() {
				http.Error(w, "Too many position reports", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
