package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Daniru12/PcStore/internal/metrics"
	"github.com/Daniru12/PcStore/internal/models"
)

// OrderService orchestrates order creation, reads, updates, status
// transitions and deletion against the relational store.
type OrderService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewOrderService(db *gorm.DB, log *zap.Logger) *OrderService {
	return &OrderService{db: db, log: log}
}

// CreateOrderRequest carries the fields accepted on order placement.
type CreateOrderRequest struct {
	CustomerName      string          `json:"customer_name"`
	CustomerEmail     string          `json:"customer_email"`
	CustomerPhone     string          `json:"customer_phone"`
	ShippingAddress   string          `json:"shipping_address"`
	BillingAddress    string          `json:"billing_address"`
	OrderDate         *time.Time      `json:"order_date"`
	EstimatedDelivery *time.Time      `json:"estimated_delivery"`
	PartIDs           []uint          `json:"part_ids"`
	PCIDs             []uint          `json:"pc_ids"`
	TaxAmount         decimal.Decimal `json:"tax_amount"`
	ShippingCost      decimal.Decimal `json:"shipping_cost"`
	PaymentMethod     string          `json:"payment_method"`
	Notes             string          `json:"notes"`
}

// UpdateOrderRequest carries a partial update: nil fields keep their prior
// values. Supplying PartIDs or PCIDs replaces the item set and triggers a
// total recomputation. Version, when set, is checked against the stored row.
type UpdateOrderRequest struct {
	CustomerName      *string          `json:"customer_name"`
	CustomerEmail     *string          `json:"customer_email"`
	CustomerPhone     *string          `json:"customer_phone"`
	ShippingAddress   *string          `json:"shipping_address"`
	BillingAddress    *string          `json:"billing_address"`
	EstimatedDelivery *time.Time       `json:"estimated_delivery"`
	PartIDs           *[]uint          `json:"part_ids"`
	PCIDs             *[]uint          `json:"pc_ids"`
	TaxAmount         *decimal.Decimal `json:"tax_amount"`
	ShippingCost      *decimal.Decimal `json:"shipping_cost"`
	PaymentMethod     *string          `json:"payment_method"`
	Notes             *string          `json:"notes"`
	Version           *int             `json:"version"`
}

func (r *CreateOrderRequest) validate() error {
	if strings.TrimSpace(r.CustomerName) == "" {
		return &ValidationError{Field: "customer_name", Message: "customer name is required"}
	}
	if strings.TrimSpace(r.CustomerEmail) == "" {
		return &ValidationError{Field: "customer_email", Message: "customer email is required"}
	}
	if len(r.PartIDs) == 0 && len(r.PCIDs) == 0 {
		return &ValidationError{Field: "items", Message: "order must contain at least one part or pc"}
	}
	return nil
}

// computeTotals sums the referenced part and PC prices into a subtotal and
// applies tax and shipping. A zero-value price contributes nothing.
func computeTotals(parts []models.Part, pcs []models.PC, tax, shipping decimal.Decimal) (subtotal, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, p := range parts {
		subtotal = subtotal.Add(p.Price)
	}
	for _, pc := range pcs {
		subtotal = subtotal.Add(pc.Price)
	}
	return subtotal, subtotal.Add(tax).Add(shipping)
}

// newOrderNumber generates the human-facing unique order identifier.
func newOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}

func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// findParts loads all requested parts, failing with a NotFoundError naming
// every missing identifier. All-or-nothing: a single missing id aborts.
func findParts(tx *gorm.DB, ids []uint) ([]models.Part, error) {
	ids = dedupeIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	var parts []models.Part
	if err := tx.Where("id IN ?", ids).Find(&parts).Error; err != nil {
		return nil, err
	}
	if len(parts) < len(ids) {
		found := make(map[uint]struct{}, len(parts))
		for _, p := range parts {
			found[p.ID] = struct{}{}
		}
		var missing []uint
		for _, id := range ids {
			if _, ok := found[id]; !ok {
				missing = append(missing, id)
			}
		}
		return nil, &NotFoundError{Resource: "part", IDs: missing}
	}
	return parts, nil
}

func findPCs(tx *gorm.DB, ids []uint) ([]models.PC, error) {
	ids = dedupeIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	var pcs []models.PC
	if err := tx.Where("id IN ?", ids).Find(&pcs).Error; err != nil {
		return nil, err
	}
	if len(pcs) < len(ids) {
		found := make(map[uint]struct{}, len(pcs))
		for _, pc := range pcs {
			found[pc.ID] = struct{}{}
		}
		var missing []uint
		for _, id := range ids {
			if _, ok := found[id]; !ok {
				missing = append(missing, id)
			}
		}
		return nil, &NotFoundError{Resource: "pc", IDs: missing}
	}
	return pcs, nil
}

// Create validates the request, resolves the referenced catalog rows,
// computes totals and persists the new Pending order in one transaction.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*models.Order, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	orderDate := time.Now()
	if req.OrderDate != nil {
		orderDate = *req.OrderDate
	}

	order := models.Order{
		OrderNumber:       newOrderNumber(),
		CustomerName:      strings.TrimSpace(req.CustomerName),
		CustomerEmail:     strings.TrimSpace(req.CustomerEmail),
		CustomerPhone:     strings.TrimSpace(req.CustomerPhone),
		ShippingAddress:   req.ShippingAddress,
		BillingAddress:    req.BillingAddress,
		OrderDate:         orderDate,
		EstimatedDelivery: req.EstimatedDelivery,
		Status:            models.OrderStatusPending,
		TaxAmount:         req.TaxAmount,
		ShippingCost:      req.ShippingCost,
		PaymentMethod:     req.PaymentMethod,
		Notes:             req.Notes,
		Version:           1,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		parts, err := findParts(tx, req.PartIDs)
		if err != nil {
			return err
		}
		pcs, err := findPCs(tx, req.PCIDs)
		if err != nil {
			return err
		}
		order.Parts = parts
		order.PCs = pcs
		order.Subtotal, order.TotalPrice = computeTotals(parts, pcs, order.TaxAmount, order.ShippingCost)
		// Omit association upserts so catalog rows are referenced, not rewritten.
		return tx.Omit("Parts.*", "PCs.*").Create(&order).Error
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersCreated.Inc()
	s.log.Info("order created",
		zap.Uint("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.String("total_price", order.TotalPrice.String()))
	return s.Get(ctx, order.ID)
}

// Get returns the order with its parts and PCs eagerly loaded.
func (s *OrderService) Get(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Preload("Parts").Preload("PCs").First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Resource: "order", IDs: []uint{id}}
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns all orders with their item sets eagerly loaded.
func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.WithContext(ctx).Preload("Parts").Preload("PCs").Order("id").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Update applies a partial update. Totals are recomputed only when the item
// set changes. The write is guarded by the optimistic version counter.
func (s *OrderService) Update(ctx context.Context, id uint, req UpdateOrderRequest) (*models.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	expected := order.Version
	if req.Version != nil {
		expected = *req.Version
	}

	if req.CustomerName != nil {
		if strings.TrimSpace(*req.CustomerName) == "" {
			return nil, &ValidationError{Field: "customer_name", Message: "customer name cannot be blank"}
		}
		order.CustomerName = strings.TrimSpace(*req.CustomerName)
	}
	if req.CustomerEmail != nil {
		if strings.TrimSpace(*req.CustomerEmail) == "" {
			return nil, &ValidationError{Field: "customer_email", Message: "customer email cannot be blank"}
		}
		order.CustomerEmail = strings.TrimSpace(*req.CustomerEmail)
	}
	if req.CustomerPhone != nil {
		order.CustomerPhone = *req.CustomerPhone
	}
	if req.ShippingAddress != nil {
		order.ShippingAddress = *req.ShippingAddress
	}
	if req.BillingAddress != nil {
		order.BillingAddress = *req.BillingAddress
	}
	if req.EstimatedDelivery != nil {
		order.EstimatedDelivery = req.EstimatedDelivery
	}
	if req.TaxAmount != nil {
		order.TaxAmount = *req.TaxAmount
	}
	if req.ShippingCost != nil {
		order.ShippingCost = *req.ShippingCost
	}
	if req.PaymentMethod != nil {
		order.PaymentMethod = *req.PaymentMethod
	}
	if req.Notes != nil {
		order.Notes = *req.Notes
	}

	itemsChanged := req.PartIDs != nil || req.PCIDs != nil

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if itemsChanged {
			parts := order.Parts
			pcs := order.PCs
			if req.PartIDs != nil {
				parts, err = findParts(tx, *req.PartIDs)
				if err != nil {
					return err
				}
			}
			if req.PCIDs != nil {
				pcs, err = findPCs(tx, *req.PCIDs)
				if err != nil {
					return err
				}
			}
			order.Parts = parts
			order.PCs = pcs
		}
		// Recompute whenever the item set or a monetary input moved so the
		// total invariant holds after every mutation.
		order.Subtotal, order.TotalPrice = computeTotals(order.Parts, order.PCs, order.TaxAmount, order.ShippingCost)

		res := tx.Model(&models.Order{}).
			Where("id = ? AND version = ?", order.ID, expected).
			Updates(map[string]any{
				"customer_name":      order.CustomerName,
				"customer_email":     order.CustomerEmail,
				"customer_phone":     order.CustomerPhone,
				"shipping_address":   order.ShippingAddress,
				"billing_address":    order.BillingAddress,
				"estimated_delivery": order.EstimatedDelivery,
				"tax_amount":         order.TaxAmount,
				"shipping_cost":      order.ShippingCost,
				"subtotal":           order.Subtotal,
				"total_price":        order.TotalPrice,
				"payment_method":     order.PaymentMethod,
				"notes":              order.Notes,
				"version":            expected + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &ConflictError{Resource: "order", ID: order.ID}
		}
		if itemsChanged {
			if err := tx.Model(order).Association("Parts").Replace(order.Parts); err != nil {
				return err
			}
			if err := tx.Model(order).Association("PCs").Replace(order.PCs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// UpdateStatus requests a transition to next, enforcing the legal-transition
// table. The write is guarded by the optimistic version counter.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, next models.OrderStatus) (*models.Order, error) {
	if !next.Valid() {
		return nil, &ValidationError{Field: "status", Message: "unknown order status: " + string(next)}
	}

	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, &IllegalStateError{From: order.Status, To: next}
	}

	res := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND version = ?", order.ID, order.Version).
		Updates(map[string]any{"status": next, "version": order.Version + 1})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, &ConflictError{Resource: "order", ID: order.ID}
	}

	metrics.OrderStatusTransitions.WithLabelValues(string(next)).Inc()
	s.log.Info("order status updated",
		zap.Uint("order_id", order.ID),
		zap.String("from", string(order.Status)),
		zap.String("to", string(next)))
	return s.Get(ctx, id)
}

// Cancel transitions the order to Cancelled under the same transition rules.
func (s *OrderService) Cancel(ctx context.Context, id uint) (*models.Order, error) {
	return s.UpdateStatus(ctx, id, models.OrderStatusCancelled)
}

// Delete hard-deletes the order and its association rows. Catalog rows are
// untouched.
func (s *OrderService) Delete(ctx context.Context, id uint) error {
	order, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(order).Association("Parts").Clear(); err != nil {
			return err
		}
		if err := tx.Model(order).Association("PCs").Clear(); err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, order.ID).Error
	})
}
