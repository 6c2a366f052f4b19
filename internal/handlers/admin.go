package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/Daniru12/PcStore/internal/httpx"
	"github.com/Daniru12/PcStore/internal/models"
)

// AdminHandler manages user accounts.
type AdminHandler struct {
	DB *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler { return &AdminHandler{DB: db} }

// ListUsers: GET /api/admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	var users []models.User
	if err := h.DB.Order("id").Find(&users).Error; err != nil {
		httpx.Error(w, http.StatusInternalServerError, "internal", "failed to list users", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, users)
}

// GetUser: GET /api/admin/users/{id}
func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Error(w, http.StatusBadRequest, "validation", "invalid user id", nil)
		return
	}
	var user models.User
	err := h.DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.Error(w, http.StatusNotFound, "not_found", "user not found", nil)
		return
	}
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, "internal", "failed to load user", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

// UpdateUser: PUT /api/admin/users/{id} — partial update of profile fields and role.
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Error(w, http.StatusBadRequest, "validation", "invalid user id", nil)
		return
	}
	var user models.User
	err := h.DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.Error(w, http.StatusNotFound, "not_found", "user not found", nil)
		return
	}
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, "internal", "failed to load user", nil)
		return
	}
	var req struct {
		Email    *string `json:"email"`
		FullName *string `json:"full_name"`
		Role     *string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "validation", "invalid JSON body", nil)
		return
	}
	if req.Email != nil {
		if strings.TrimSpace(*req.Email) == "" {
			httpx.Error(w, http.StatusBadRequest, "validation", "email cannot be blank", nil)
			return
		}
		user.Email = strings.TrimSpace(*req.Email)
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Role != nil {
		if *req.Role != models.RoleUser && *req.Role != models.RoleAdmin {
			httpx.Error(w, http.StatusBadRequest, "validation", "unknown role: "+*req.Role, nil)
			return
		}
		user.Role = *req.Role
	}
	if err := h.DB.Save(&user).Error; err != nil {
		httpx.Error(w, http.StatusInternalServerError, "internal", "failed to update user", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

// DeleteUser: DELETE /api/admin/users/{id}
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Error(w, http.StatusBadRequest, "validation", "invalid user id", nil)
		return
	}
	res := h.DB.Delete(&models.User{}, id)
	if res.Error != nil {
		httpx.Error(w, http.StatusInternalServerError, "internal", "failed to delete user", nil)
		return
	}
	if res.RowsAffected == 0 {
		httpx.Error(w, http.StatusNotFound, "not_found", "user not found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"message": "user deleted"})
}
