package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PC represents a pre-built computer in the catalog.
type PC struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	Brand     string          `gorm:"size:100" json:"brand,omitempty"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"price"`
	Parts     []Part          `gorm:"foreignKey:PCID" json:"parts,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Part represents a single PC component (CPU, GPU, RAM, ...).
// A part may optionally belong to one PC build.
type Part struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	Type      string          `gorm:"size:50" json:"type,omitempty"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"price"`
	PCID      *uint           `gorm:"index" json:"pc_id,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
