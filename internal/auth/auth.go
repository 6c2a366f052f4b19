package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Daniru12/PcStore/internal/httpx"
)

type ctxKey string

const (
	userIDCtxKey = ctxKey("userID")
	roleCtxKey   = ctxKey("role")

	// TokenTTL is how long an issued token stays valid.
	TokenTTL = 24 * time.Hour
)

// UserVerifier is an optional callback to validate that a token's user still
// exists. Set it during app bootstrap via SetUserVerifier. If nil, no extra
// verification is performed.
type UserVerifier func(ctx context.Context, uid uint) bool

var verifier UserVerifier

// SetUserVerifier configures the global verifier used by Middleware.
func SetUserVerifier(v UserVerifier) { verifier = v }

// Secret returns TOKEN_SECRET or a default dev value.
func Secret() string {
	if s := os.Getenv("TOKEN_SECRET"); s != "" {
		return s
	}
	return "devtokensecret"
}

func sign(payload string) string {
	mac := hmac.New(sha256.New, []byte(Secret()))
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// IssueToken creates a signed bearer token embedding the user id, role and
// expiry: "uid.role.exp.sig".
func IssueToken(userID uint, role string) string {
	exp := time.Now().Add(TokenTTL).Unix()
	payload := strconv.FormatUint(uint64(userID), 10) + "." + role + "." + strconv.FormatInt(exp, 10)
	return payload + "." + sign(payload)
}

// ParseToken validates a token and returns the embedded user id and role.
func ParseToken(token string) (uint, string, bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 4 {
		return 0, "", false
	}
	payload := strings.Join(parts[:3], ".")
	if !hmac.Equal([]byte(parts[3]), []byte(sign(payload))) {
		return 0, "", false
	}
	exp, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil || time.Now().Unix() > exp {
		return 0, "", false
	}
	id64, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return 0, "", false
	}
	return uint(id64), parts[1], true
}

// WithUser stores the user id and role in context.
func WithUser(ctx context.Context, userID uint, role string) context.Context {
	ctx = context.WithValue(ctx, userIDCtxKey, userID)
	return context.WithValue(ctx, roleCtxKey, role)
}

// UserIDFromContext extracts the user id.
func UserIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(userIDCtxKey).(uint)
	return id, ok
}

// RoleFromContext extracts the role.
func RoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleCtxKey).(string)
	return role, ok
}

// bearerToken pulls the token out of the Authorization header.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// Middleware attaches the user id and role to the request context when a
// valid bearer token is present.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := bearerToken(r); token != "" {
			if uid, role, ok := ParseToken(token); ok {
				if verifier == nil || verifier(r.Context(), uid) {
					r = r.WithContext(WithUser(r.Context(), uid, role))
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth rejects requests without an authenticated user.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if uid, ok := UserIDFromContext(r.Context()); !ok || uid == 0 {
			httpx.Error(w, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests whose user does not hold the admin role.
func RequireAdmin(next http.Handler) http.Handler {
	return RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if role, ok := RoleFromContext(r.Context()); !ok || role != "admin" {
			httpx.Error(w, http.StatusForbidden, "forbidden", "admin role required", nil)
			return
		}
		next.ServeHTTP(w, r)
	}))
}
