package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Daniru12/PcStore/internal/models"
)

func TestProductCreateValidation(t *testing.T) {
	h := NewProductHandler(setupHandlerTestDB(t))

	cases := []struct {
		name string
		body string
	}{
		{"missing name", `{"price":"10","stock":5,"category":"Accessories"}`},
		{"zero price", `{"name":"Mouse","price":"0","stock":5,"category":"Accessories"}`},
		{"negative stock", `{"name":"Mouse","price":"10","stock":-1,"category":"Accessories"}`},
		{"missing category", `{"name":"Mouse","price":"10","stock":5}`},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		h.Create(w, httptest.NewRequest(http.MethodPost, "/api/admin/products", strings.NewReader(tc.body)))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400 got %d body=%s", tc.name, w.Code, w.Body.String())
		}
	}
}

func TestProductCRUD(t *testing.T) {
	db := setupHandlerTestDB(t)
	h := NewProductHandler(db)

	body := `{"name":"Gaming Mouse","description":"RGB","price":"49.90","stock":12,"category":"Accessories"}`
	w := httptest.NewRecorder()
	h.Create(w, httptest.NewRequest(http.MethodPost, "/api/admin/products", strings.NewReader(body)))
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var created models.Product
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !created.Price.Equal(decimal.NewFromFloat(49.90)) {
		t.Fatalf("price mismatch: %s", created.Price)
	}

	// partial update only touches stock
	updW := httptest.NewRecorder()
	updReq := withID(httptest.NewRequest(http.MethodPut, "/api/admin/products/1", strings.NewReader(`{"stock":7}`)), created.ID)
	h.Update(updW, updReq)
	if updW.Code != http.StatusOK {
		t.Fatalf("update: expected 200 got %d", updW.Code)
	}
	var updated models.Product
	_ = json.Unmarshal(updW.Body.Bytes(), &updated)
	if updated.Stock != 7 || updated.Name != "Gaming Mouse" {
		t.Fatalf("partial update went wrong: %+v", updated)
	}

	listW := httptest.NewRecorder()
	h.List(listW, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	var products []models.Product
	_ = json.Unmarshal(listW.Body.Bytes(), &products)
	if len(products) != 1 {
		t.Fatalf("expected 1 product got %d", len(products))
	}

	delW := httptest.NewRecorder()
	h.Delete(delW, withID(httptest.NewRequest(http.MethodDelete, "/api/admin/products/1", nil), created.ID))
	if delW.Code != http.StatusOK {
		t.Fatalf("delete: expected 200 got %d", delW.Code)
	}

	delW2 := httptest.NewRecorder()
	h.Delete(delW2, withID(httptest.NewRequest(http.MethodDelete, "/api/admin/products/1", nil), created.ID))
	if delW2.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404 got %d", delW2.Code)
	}
}

func TestProductGetUnknownID(t *testing.T) {
	h := NewProductHandler(setupHandlerTestDB(t))
	w := httptest.NewRecorder()
	h.Get(w, withID(httptest.NewRequest(http.MethodGet, "/api/products/42", nil), 42))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "not_found") {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}
