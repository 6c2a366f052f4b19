package models

import "time"

// Inquiry statuses.
const (
	InquiryStatusOpen     = "Open"
	InquiryStatusResolved = "Resolved"
	InquiryStatusClosed   = "Closed"
)

// Inquiry is a customer support message submitted from the storefront.
type Inquiry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	Subject   string    `gorm:"size:255" json:"subject,omitempty"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Status    string    `gorm:"size:20;not null;default:'Open'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
