package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Daniru12/PcStore/internal/httpx"
	"github.com/Daniru12/PcStore/internal/services"
)

// InquiryHandler exposes inquiry intake and admin handling.
type InquiryHandler struct {
	Svc *services.InquiryService
}

func NewInquiryHandler(svc *services.InquiryService) *InquiryHandler {
	return &InquiryHandler{Svc: svc}
}

// Create: POST /api/inquiries
func (h *InquiryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.InquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "validation", "invalid JSON body", nil)
		return
	}
	inquiry, err := h.Svc.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, inquiry)
}

// List: GET /api/admin/inquiries
func (h *InquiryHandler) List(w http.ResponseWriter, r *http.Request) {
	inquiries, err := h.Svc.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inquiries)
}

// Get: GET /api/admin/inquiries/{id}
func (h *InquiryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Error(w, http.StatusBadRequest, "validation", "invalid inquiry id", nil)
		return
	}
	inquiry, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inquiry)
}

// UpdateStatus: PUT /api/admin/inquiries/{id}/status
func (h *InquiryHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Error(w, http.StatusBadRequest, "validation", "invalid inquiry id", nil)
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "validation", "invalid JSON body", nil)
		return
	}
	inquiry, err := h.Svc.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inquiry)
}
