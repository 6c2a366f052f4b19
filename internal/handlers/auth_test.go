package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/Daniru12/PcStore/internal/models"
	"github.com/Daniru12/PcStore/internal/services"
)

func newAuthTestHandler(t *testing.T) *AuthHandler {
	t.Helper()
	db := setupHandlerTestDB(t)
	return NewAuthHandler(services.NewUserService(db, zap.NewNop()), zap.NewNop())
}

func TestAuthRegisterAndLogin(t *testing.T) {
	h := newAuthTestHandler(t)

	regBody := `{"username":"kasun","email":"kasun@example.com","password":"s3cret","full_name":"Kasun Silva"}`
	regW := httptest.NewRecorder()
	h.Register(regW, httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(regBody)))
	if regW.Code != http.StatusCreated {
		t.Fatalf("register: expected 201 got %d body=%s", regW.Code, regW.Body.String())
	}
	if strings.Contains(regW.Body.String(), "s3cret") {
		t.Fatal("password leaked in register response")
	}
	var user models.User
	if err := json.Unmarshal(regW.Body.Bytes(), &user); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if user.Role != models.RoleUser {
		t.Fatalf("expected default role %q got %q", models.RoleUser, user.Role)
	}

	loginW := httptest.NewRecorder()
	h.Login(loginW, httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"username":"kasun","password":"s3cret"}`)))
	if loginW.Code != http.StatusOK {
		t.Fatalf("login: expected 200 got %d body=%s", loginW.Code, loginW.Body.String())
	}
	var resp services.LoginResponse
	if err := json.Unmarshal(loginW.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token in the login response")
	}
	if resp.Username != "kasun" || resp.Role != models.RoleUser {
		t.Fatalf("unexpected login payload: %+v", resp)
	}
}

func TestAuthLoginRejectsBadCredentials(t *testing.T) {
	h := newAuthTestHandler(t)

	regBody := `{"username":"kasun","email":"kasun@example.com","password":"s3cret"}`
	regW := httptest.NewRecorder()
	h.Register(regW, httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(regBody)))

	cases := []string{
		`{"username":"kasun","password":"wrong"}`,
		`{"username":"nobody","password":"s3cret"}`,
	}
	for _, body := range cases {
		w := httptest.NewRecorder()
		h.Login(w, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body)))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("body %s: expected 401 got %d", body, w.Code)
		}
		// the same message for a wrong password and an unknown user
		if !strings.Contains(w.Body.String(), "invalid username or password") {
			t.Fatalf("body %s: unexpected error payload %s", body, w.Body.String())
		}
	}
}

func TestAuthRegisterDuplicateUsername(t *testing.T) {
	h := newAuthTestHandler(t)

	body := `{"username":"kasun","email":"kasun@example.com","password":"s3cret"}`
	w1 := httptest.NewRecorder()
	h.Register(w1, httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body)))
	if w1.Code != http.StatusCreated {
		t.Fatalf("first register failed: %d", w1.Code)
	}

	w2 := httptest.NewRecorder()
	h.Register(w2, httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"username":"kasun","email":"other@example.com","password":"s3cret"}`)))
	if w2.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", w2.Code, w2.Body.String())
	}
}

func TestAuthGetUser(t *testing.T) {
	h := newAuthTestHandler(t)

	body := `{"username":"kasun","email":"kasun@example.com","password":"s3cret"}`
	w := httptest.NewRecorder()
	h.Register(w, httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body)))

	getReq := httptest.NewRequest(http.MethodGet, "/api/auth/user/kasun", nil)
	getReq.SetPathValue("username", "kasun")
	getW := httptest.NewRecorder()
	h.GetUser(getW, getReq)
	if getW.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", getW.Code)
	}

	missReq := httptest.NewRequest(http.MethodGet, "/api/auth/user/ghost", nil)
	missReq.SetPathValue("username", "ghost")
	missW := httptest.NewRecorder()
	h.GetUser(missW, missReq)
	if missW.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", missW.Code)
	}
}
