package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Daniru12/PcStore/internal/httpx"
	"github.com/Daniru12/PcStore/internal/models"
)

// PCHandler is CRUD over the PC catalog.
type PCHandler struct {
	DB *gorm.DB
}

func NewPCHandler(db *gorm.DB) *PCHandler { return &PCHandler{DB: db} }

type pcRequest struct {
	Name  *string          `json:"name"`
	Brand *string          `json:"brand"`
	Price *decimal.Decimal `json:"price"`
}

// List: GET /api/pcs
func (h *PCHandler) List(w http.ResponseWriter, r *http.Request) {
	var pcs []models.PC
	if err := h.DB.Preload("Parts").Order("id").Find(&pcs).Error; err != nil {
		httpx.Error(w, http.StatusInternalServerError, "internal", "failed to list pcs", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, pcs)
}

// Get: GET /api/pcs/{id}
func (h *PCHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Error(w, http.StatusBadRequest, "validation", "invalid pc id", nil)
		return
	}
	var pc models.PC
	err := h.DB.Preload("Parts").First(&pc, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.Error(w, http.StatusNotFound, "not_found", "pc not found", nil)
		return
	}
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, "internal", "failed to load pc", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, pc)
}

// Create: POST /api/admin/pcs
func (h *PCHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req pcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "validation", "invalid JSON body", nil)
		return
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		httpx.Error(w, http.StatusBadRequest, "validation", "pc name is required", nil)
		return
	}
	pc := models.PC{Name: strings.TrimSpace(*req.Name)}
	if req.Brand != nil {
		pc.Brand = *req.Brand
	}
	if req.Price != nil {
		pc.Price = *req.Price
	}
	if err := h.DB.Create(&pc).Error; err != nil {
		httpx.Error(w, http.StatusInternalServerError, "internal", "failed to create pc", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, pc)
}

// Update: PUT /api/admin/pcs/{id}
func (h *PCHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Error(w, http.StatusBadRequest, "validation", "invalid pc id", nil)
		return
	}
	var pc models.PC
	err := h.DB.First(&pc, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.Error(w, http.StatusNotFound, "not_found", "pc not found", nil)
		return
	}
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, "internal", "failed to load pc", nil)
		return
	}
	var req pcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "validation", "invalid JSON body", nil)
		return
	}
	if req.Name != nil {
		pc.Name = strings.TrimSpace(*req.Name)
	}
	if req.Brand != nil {
		pc.Brand = *req.Brand
	}
	if req.Price != nil {
		pc.Price = *req.Price
	}
	if err := h.DB.Save(&pc).Error; err != nil {
		httpx.Error(w, http.StatusInternalServerError, "internal", "failed to update pc", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, pc)
}

// Delete: DELETE /api/admin/pcs/{id}
func (h *PCHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Error(w, http.StatusBadRequest, "validation", "invalid pc id", nil)
		return
	}
	res := h.DB.Delete(&models.PC{}, id)
	if res.Error != nil {
		httpx.Error(w, http.StatusInternalServerError, "internal", "failed to delete pc", nil)
		return
	}
	if res.RowsAffected == 0 {
		httpx.Error(w, http.StatusNotFound, "not_found", "pc not found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"message": "pc deleted"})
}

// PartHandler is CRUD over the part catalog.
type PartHandler struct {
	DB *gorm.DB
}

func NewPartHandler(db *gorm.DB) *PartHandler { return &PartHandler{DB: db} }

type partRequest struct {
	Name  *string          `json:"name"`
	Type  *string          `json:"type"`
	Price *decimal.Decimal `json:"price"`
	PCID  *uint            `json:"pc_id"`
}

// List: GET /api/parts
func (h *PartHandler) List(w http.ResponseWriter, r *http.Request) {
	var parts []models.Part
	if err := h.DB.Order("id").Find(&parts).Error; err != nil {
		httpx.Error(w, http.StatusInternalServerError, "internal", "failed to list parts", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, parts)
}

// Get: GET /api/parts/{id}
func (h *PartHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Error(w, http.StatusBadRequest, "validation", "invalid part id", nil)
		return
	}
	var part models.Part
	err := h.DB.First(&part, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.Error(w, http.StatusNotFound, "not_found", "part not found", nil)
		return
	}
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, "internal", "failed to load part", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, part)
}

// Create: POST /api/admin/parts
func (h *PartHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req partRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "validation", "invalid JSON body", nil)
		return
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		httpx.Error(w, http.StatusBadRequest, "validation", "part name is required", nil)
		return
	}
	part := models.Part{Name: strings.TrimSpace(*req.Name)}
	if req.Type != nil {
		part.Type = *req.Type
	}
	if req.Price != nil {
		part.Price = *req.Price
	}
	if req.PCID != nil {
		if err := h.DB.First(&models.PC{}, *req.PCID).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(w, http.StatusNotFound, "not_found", "pc not found", nil)
			return
		}
		part.PCID = req.PCID
	}
	if err := h.DB.Create(&part).Error; err != nil {
		httpx.Error(w, http.StatusInternalServerError, "internal", "failed to create part", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, part)
}

// Update: PUT /api/admin/parts/{id}
func (h *PartHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Error(w, http.StatusBadRequest, "validation", "invalid part id", nil)
		return
	}
	var part models.Part
	err := h.DB.First(&part, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.Error(w, http.StatusNotFound, "not_found", "part not found", nil)
		return
	}
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, "internal", "failed to load part", nil)
		return
	}
	var req partRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "validation", "invalid JSON body", nil)
		return
	}
	if req.Name != nil {
		part.Name = strings.TrimSpace(*req.Name)
	}
	if req.Type != nil {
		part.Type = *req.Type
	}
	if req.Price != nil {
		part.Price = *req.Price
	}
	if req.PCID != nil {
		if err := h.DB.First(&models.PC{}, *req.PCID).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(w, http.StatusNotFound, "not_found", "pc not found", nil)
			return
		}
		part.PCID = req.PCID
	}
	if err := h.DB.Save(&part).Error; err != nil {
		httpx.Error(w, http.StatusInternalServerError, "internal", "failed to update part", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, part)
}

// Delete: DELETE /api/admin/parts/{id}
func (h *PartHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Error(w, http.StatusBadRequest, "validation", "invalid part id", nil)
		return
	}
	res := h.DB.Delete(&models.Part{}, id)
	if res.Error != nil {
		httpx.Error(w, http.StatusInternalServerError, "internal", "failed to delete part", nil)
		return
	}
	if res.RowsAffected == 0 {
		httpx.Error(w, http.StatusNotFound, "not_found", "part not found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"message": "part deleted"})
}
