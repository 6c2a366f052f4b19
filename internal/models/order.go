package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
	OrderStatusReturned   OrderStatus = "Returned"
	OrderStatusCompleted  OrderStatus = "Completed"
)

// orderTransitions is the legal-transition table. A status that maps to an
// empty set accepts no further transitions. Pending is the only status that
// may transition to itself.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusPending, OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusReturned},
	OrderStatusDelivered:  {OrderStatusReturned, OrderStatusCompleted},
	OrderStatusReturned:   {},
	OrderStatusCancelled:  {},
	OrderStatusCompleted:  {},
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// IsTerminal reports whether no transition out of s is ever permitted.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCancelled || s == OrderStatusCompleted
}

// IsCancellable reports whether an order in status s may still be cancelled.
// Used for presentation gating; CanTransitionTo is the authoritative guard.
func (s OrderStatus) IsCancellable() bool {
	return s == OrderStatusPending || s == OrderStatusProcessing
}

// CanTransitionTo reports whether moving from s to next is permitted.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

// Order is a customer order referencing catalog parts and PCs.
// Monetary fields are computed once at creation (and again whenever the item
// set changes) and persisted; reads return the stored amounts. The invariant
// TotalPrice = Subtotal + TaxAmount + ShippingCost holds after every mutation.
type Order struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OrderNumber string `gorm:"size:40;uniqueIndex;not null" json:"order_number"`

	CustomerName  string `gorm:"size:255;not null" json:"customer_name"`
	CustomerEmail string `gorm:"size:255;not null" json:"customer_email"`
	CustomerPhone string `gorm:"size:50" json:"customer_phone,omitempty"`

	ShippingAddress string `gorm:"size:500" json:"shipping_address,omitempty"`
	BillingAddress  string `gorm:"size:500" json:"billing_address,omitempty"`

	OrderDate         time.Time   `gorm:"not null" json:"order_date"`
	EstimatedDelivery *time.Time  `json:"estimated_delivery,omitempty"`
	Status            OrderStatus `gorm:"size:20;not null;default:'Pending'" json:"status"`

	Parts []Part `gorm:"many2many:order_parts" json:"parts"`
	PCs   []PC   `gorm:"many2many:order_pcs" json:"pcs"`

	Subtotal     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"subtotal"`
	TaxAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"tax_amount"`
	ShippingCost decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"shipping_cost"`
	TotalPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total_price"`

	PaymentMethod string `gorm:"size:50" json:"payment_method,omitempty"`
	Notes         string `gorm:"type:text" json:"notes,omitempty"`

	// Version is the optimistic counter; a write with a stale version fails.
	Version int `gorm:"not null;default:1" json:"version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
