package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a generic storefront item (accessories, peripherals) managed by
// admins, independent of the PC/part catalog.
type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description,omitempty"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"price"`
	Stock       int             `gorm:"not null;default:0" json:"stock"`
	Category    string          `gorm:"size:100" json:"category,omitempty"`
	ImageURL    string          `gorm:"size:500" json:"image_url,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
