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

// ProductHandler is plain CRUD over the generic product table.
type ProductHandler struct {
	DB *gorm.DB
}

func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{DB: db}
}

type productRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	Category    *string          `json:"category"`
	ImageURL    *string          `json:"image_url"`
}

// List: GET /api/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	var products []models.Product
	if err := h.DB.Order("id").Find(&products).Error; err != nil {
		httpx.Error(w, http.StatusInternalServerError, "internal", "failed to list products", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, products)
}

// Get: GET /api/products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Error(w, http.StatusBadRequest, "validation", "invalid product id", nil)
		return
	}
	var product models.Product
	err := h.DB.First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.Error(w, http.StatusNotFound, "not_found", "product not found", nil)
		return
	}
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, "internal", "failed to load product", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

// Create: POST /api/admin/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "validation", "invalid JSON body", nil)
		return
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		httpx.Error(w, http.StatusBadRequest, "validation", "product name is required", nil)
		return
	}
	if req.Price == nil || req.Price.Sign() <= 0 {
		httpx.Error(w, http.StatusBadRequest, "validation", "valid price is required", nil)
		return
	}
	if req.Stock == nil || *req.Stock < 0 {
		httpx.Error(w, http.StatusBadRequest, "validation", "valid stock quantity is required", nil)
		return
	}
	if req.Category == nil || strings.TrimSpace(*req.Category) == "" {
		httpx.Error(w, http.StatusBadRequest, "validation", "category is required", nil)
		return
	}
	product := models.Product{
		Name:     strings.TrimSpace(*req.Name),
		Price:    *req.Price,
		Stock:    *req.Stock,
		Category: strings.TrimSpace(*req.Category),
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if err := h.DB.Create(&product).Error; err != nil {
		httpx.Error(w, http.StatusInternalServerError, "internal", "failed to create product", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, product)
}

// Update: PUT /api/admin/products/{id} — partial, untouched fields keep prior values.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Error(w, http.StatusBadRequest, "validation", "invalid product id", nil)
		return
	}
	var product models.Product
	err := h.DB.First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.Error(w, http.StatusNotFound, "not_found", "product not found", nil)
		return
	}
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, "internal", "failed to load product", nil)
		return
	}
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "validation", "invalid JSON body", nil)
		return
	}
	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if err := h.DB.Save(&product).Error; err != nil {
		httpx.Error(w, http.StatusInternalServerError, "internal", "failed to update product", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

// Delete: DELETE /api/admin/products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Error(w, http.StatusBadRequest, "validation", "invalid product id", nil)
		return
	}
	res := h.DB.Delete(&models.Product{}, id)
	if res.Error != nil {
		httpx.Error(w, http.StatusInternalServerError, "internal", "failed to delete product", nil)
		return
	}
	if res.RowsAffected == 0 {
		httpx.Error(w, http.StatusNotFound, "not_found", "product not found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"message": "product deleted"})
}
