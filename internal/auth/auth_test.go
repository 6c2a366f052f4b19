package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	token := IssueToken(42, "admin")
	uid, role, ok := ParseToken(token)
	if !ok {
		t.Fatal("expected token to parse")
	}
	if uid != 42 || role != "admin" {
		t.Fatalf("got uid=%d role=%s", uid, role)
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	token := IssueToken(42, "user")
	// promote the role without re-signing
	tampered := strings.Replace(token, ".user.", ".admin.", 1)
	if _, _, ok := ParseToken(tampered); ok {
		t.Fatal("tampered token must not parse")
	}
	if _, _, ok := ParseToken("garbage"); ok {
		t.Fatal("garbage must not parse")
	}
	if _, _, ok := ParseToken(""); ok {
		t.Fatal("empty token must not parse")
	}
}

func TestMiddlewareAttachesUser(t *testing.T) {
	var gotID uint
	var gotRole string
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = UserIDFromContext(r.Context())
		gotRole, _ = RoleFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+IssueToken(7, "user"))
	h.ServeHTTP(httptest.NewRecorder(), req)

	if gotID != 7 || gotRole != "user" {
		t.Fatalf("got uid=%d role=%s", gotID, gotRole)
	}
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	h := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", w.Code)
	}
}

func TestRequireAdminRejectsUserRole(t *testing.T) {
	called := false
	h := Middleware(RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+IssueToken(7, "user"))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", w.Code)
	}
	if called {
		t.Fatal("handler must not be reached")
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+IssueToken(7, "admin"))
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	if !called {
		t.Fatal("handler should be reached for admin")
	}
}

func TestVerifierBlocksDeletedUser(t *testing.T) {
	SetUserVerifier(func(ctx context.Context, uid uint) bool { return false })
	t.Cleanup(func() { SetUserVerifier(nil) })

	h := Middleware(RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+IssueToken(7, "user"))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", w.Code)
	}
}
