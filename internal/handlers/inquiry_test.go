package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Daniru12/PcStore/internal/models"
	"github.com/Daniru12/PcStore/internal/services"
)

func newInquiryTestHandler(t *testing.T) *InquiryHandler {
	t.Helper()
	return NewInquiryHandler(services.NewInquiryService(setupHandlerTestDB(t)))
}

func TestInquiryCreateOpensTicket(t *testing.T) {
	h := newInquiryTestHandler(t)

	body := `{"name":"Dilki","email":"dilki@example.com","subject":"Warranty","message":"Does the tower ship with a warranty card?"}`
	w := httptest.NewRecorder()
	h.Create(w, httptest.NewRequest(http.MethodPost, "/api/inquiries", strings.NewReader(body)))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var created models.Inquiry
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Status != models.InquiryStatusOpen {
		t.Fatalf("expected status %q got %q", models.InquiryStatusOpen, created.Status)
	}
}

func TestInquiryCreateRequiresMessage(t *testing.T) {
	h := newInquiryTestHandler(t)
	w := httptest.NewRecorder()
	h.Create(w, httptest.NewRequest(http.MethodPost, "/api/inquiries",
		strings.NewReader(`{"name":"Dilki","email":"dilki@example.com"}`)))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}

func TestInquiryStatusUpdate(t *testing.T) {
	h := newInquiryTestHandler(t)

	body := `{"name":"Dilki","email":"dilki@example.com","message":"hello"}`
	w := httptest.NewRecorder()
	h.Create(w, httptest.NewRequest(http.MethodPost, "/api/inquiries", strings.NewReader(body)))
	var created models.Inquiry
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	updW := httptest.NewRecorder()
	updReq := withID(httptest.NewRequest(http.MethodPut, "/api/admin/inquiries/1/status",
		strings.NewReader(`{"status":"Resolved"}`)), created.ID)
	h.UpdateStatus(updW, updReq)
	if updW.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", updW.Code, updW.Body.String())
	}
	var updated models.Inquiry
	_ = json.Unmarshal(updW.Body.Bytes(), &updated)
	if updated.Status != models.InquiryStatusResolved {
		t.Fatalf("expected resolved got %q", updated.Status)
	}

	missW := httptest.NewRecorder()
	h.UpdateStatus(missW, withID(httptest.NewRequest(http.MethodPut, "/api/admin/inquiries/99/status",
		strings.NewReader(`{"status":"Closed"}`)), 99))
	if missW.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", missW.Code)
	}
}
