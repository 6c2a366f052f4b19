package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Daniru12/PcStore/internal/httpx"
	"github.com/Daniru12/PcStore/internal/services"
)

// AuthHandler exposes registration, login and account lookup.
type AuthHandler struct {
	Svc *services.UserService
	Log *zap.Logger
}

func NewAuthHandler(svc *services.UserService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Log: log}
}

// Register: POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "validation", "invalid JSON body", nil)
		return
	}
	user, err := h.Svc.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, user)
}

// Login: POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req services.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "validation", "invalid JSON body", nil)
		return
	}
	resp, err := h.Svc.Login(r.Context(), req)
	if err != nil {
		// Deliberately the same response for unknown user and bad password.
		var ve *services.ValidationError
		if errors.As(err, &ve) {
			httpx.Error(w, http.StatusUnauthorized, "unauthorized", "invalid username or password", nil)
			return
		}
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// GetUser: GET /api/auth/user/{username}
func (h *AuthHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	user, err := h.Svc.GetByUsername(r.Context(), username)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}
