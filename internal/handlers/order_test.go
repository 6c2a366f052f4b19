package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Daniru12/PcStore/internal/models"
	"github.com/Daniru12/PcStore/internal/services"
)

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.PC{}, &models.Part{}, &models.Product{}, &models.Order{}, &models.Inquiry{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// seed a part and a pc for order fixtures
func seedOrderFixtures(t *testing.T, db *gorm.DB) (part models.Part, pc models.PC) {
	t.Helper()
	part = models.Part{Name: "CPU-1", Type: "CPU", Price: decimal.NewFromFloat(120.00)}
	if err := db.Create(&part).Error; err != nil {
		t.Fatalf("part: %v", err)
	}
	pc = models.PC{Name: "Tower-1", Brand: "Proline", Price: decimal.NewFromFloat(999.99)}
	if err := db.Create(&pc).Error; err != nil {
		t.Fatalf("pc: %v", err)
	}
	return
}

func newOrderTestHandler(t *testing.T) (*OrderHandler, *gorm.DB) {
	t.Helper()
	db := setupHandlerTestDB(t)
	return NewOrderHandler(services.NewOrderService(db, zap.NewNop()), zap.NewNop()), db
}

func withID(r *http.Request, id uint) *http.Request {
	r.SetPathValue("id", fmt.Sprintf("%d", id))
	return r
}

func TestOrderCreateAndGetJSON(t *testing.T) {
	h, db := newOrderTestHandler(t)
	part, _ := seedOrderFixtures(t, db)

	body := fmt.Sprintf(`{"customer_name":"Jamie Perera","customer_email":"jamie@example.com","part_ids":[%d],"tax_amount":"10","shipping_cost":"5"}`, part.ID)
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}

	var created models.Order
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == 0 || created.OrderNumber == "" {
		t.Fatalf("missing id/order number: %+v", created)
	}
	if !created.TotalPrice.Equal(decimal.NewFromInt(135)) {
		t.Fatalf("expected total 135 got %s", created.TotalPrice)
	}
	if len(created.Parts) != 1 {
		t.Fatalf("expected resolved part detail, got %d parts", len(created.Parts))
	}

	getReq := withID(httptest.NewRequest(http.MethodGet, "/api/orders/1", nil), created.ID)
	getW := httptest.NewRecorder()
	h.Get(getW, getReq)
	if getW.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", getW.Code)
	}
}

func TestOrderCreateMissingPartReturns404(t *testing.T) {
	h, db := newOrderTestHandler(t)
	seedOrderFixtures(t, db)

	body := `{"customer_name":"Jamie","customer_email":"j@example.com","part_ids":[9999]}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Error   string `json:"error"`
		Details struct {
			IDs []uint `json:"ids"`
		} `json:"details"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error != "not_found" {
		t.Fatalf("expected not_found kind got %q", resp.Error)
	}
	if len(resp.Details.IDs) != 1 || resp.Details.IDs[0] != 9999 {
		t.Fatalf("expected missing id 9999 in details, got %v", resp.Details.IDs)
	}
}

func TestOrderCreateBlankNameReturns400(t *testing.T) {
	h, db := newOrderTestHandler(t)
	part, _ := seedOrderFixtures(t, db)

	body := fmt.Sprintf(`{"customer_name":"  ","customer_email":"j@example.com","part_ids":[%d]}`, part.ID)
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.Order{}).Count(&count)
	if count != 0 {
		t.Fatalf("no order row may be persisted, found %d", count)
	}
}

func TestOrderStatusEndpointIllegalTransition(t *testing.T) {
	h, db := newOrderTestHandler(t)
	part, _ := seedOrderFixtures(t, db)

	body := fmt.Sprintf(`{"customer_name":"Jamie","customer_email":"j@example.com","part_ids":[%d]}`, part.ID)
	w := httptest.NewRecorder()
	h.Create(w, httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body)))
	var created models.Order
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	// cancel, then try to move on
	cancelW := httptest.NewRecorder()
	h.Cancel(cancelW, withID(httptest.NewRequest(http.MethodPut, "/api/orders/1/cancel", nil), created.ID))
	if cancelW.Code != http.StatusOK {
		t.Fatalf("cancel: expected 200 got %d body=%s", cancelW.Code, cancelW.Body.String())
	}

	statusW := httptest.NewRecorder()
	statusReq := withID(httptest.NewRequest(http.MethodPut, "/api/orders/1/status",
		strings.NewReader(`{"status":"Processing"}`)), created.ID)
	h.UpdateStatus(statusW, statusReq)
	if statusW.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d body=%s", statusW.Code, statusW.Body.String())
	}
	var resp struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(statusW.Body.Bytes(), &resp)
	if resp.Error != "illegal_state" {
		t.Fatalf("expected illegal_state kind got %q", resp.Error)
	}
}

func TestOrderUpdatePartial(t *testing.T) {
	h, db := newOrderTestHandler(t)
	part, pc := seedOrderFixtures(t, db)

	body := fmt.Sprintf(`{"customer_name":"Jamie","customer_email":"j@example.com","part_ids":[%d]}`, part.ID)
	w := httptest.NewRecorder()
	h.Create(w, httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body)))
	var created models.Order
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	updateBody := fmt.Sprintf(`{"pc_ids":[%d],"notes":"add a tower"}`, pc.ID)
	updateW := httptest.NewRecorder()
	h.Update(updateW, withID(httptest.NewRequest(http.MethodPut, "/api/orders/1", strings.NewReader(updateBody)), created.ID))
	if updateW.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", updateW.Code, updateW.Body.String())
	}
	var updated models.Order
	if err := json.Unmarshal(updateW.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.CustomerName != "Jamie" {
		t.Fatalf("untouched field changed: %q", updated.CustomerName)
	}
	if updated.Notes != "add a tower" {
		t.Fatalf("notes not applied: %q", updated.Notes)
	}
	want := decimal.NewFromFloat(120.00).Add(decimal.NewFromFloat(999.99))
	if !updated.Subtotal.Equal(want) {
		t.Fatalf("expected subtotal %s got %s", want, updated.Subtotal)
	}
}

func TestOrderDeleteAndList(t *testing.T) {
	h, db := newOrderTestHandler(t)
	part, _ := seedOrderFixtures(t, db)

	body := fmt.Sprintf(`{"customer_name":"Jamie","customer_email":"j@example.com","part_ids":[%d]}`, part.ID)
	w := httptest.NewRecorder()
	h.Create(w, httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body)))
	var created models.Order
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	delW := httptest.NewRecorder()
	h.Delete(delW, withID(httptest.NewRequest(http.MethodDelete, "/api/orders/1", nil), created.ID))
	if delW.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", delW.Code)
	}

	listW := httptest.NewRecorder()
	h.List(listW, httptest.NewRequest(http.MethodGet, "/api/orders", nil))
	var orders []models.Order
	if err := json.Unmarshal(listW.Body.Bytes(), &orders); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("deleted order still listed: %d", len(orders))
	}

	// deleting again is a 404
	delW2 := httptest.NewRecorder()
	h.Delete(delW2, withID(httptest.NewRequest(http.MethodDelete, "/api/orders/1", nil), created.ID))
	if delW2.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", delW2.Code)
	}
}

func TestOrderGetInvalidID(t *testing.T) {
	h, _ := newOrderTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/orders/abc", nil)
	req.SetPathValue("id", "abc")
	w := httptest.NewRecorder()
	h.Get(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}
