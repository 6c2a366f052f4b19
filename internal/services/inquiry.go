package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Daniru12/PcStore/internal/models"
)

// InquiryService handles customer support inquiries.
type InquiryService struct {
	db *gorm.DB
}

func NewInquiryService(db *gorm.DB) *InquiryService {
	return &InquiryService{db: db}
}

// InquiryRequest carries the fields accepted on inquiry intake.
type InquiryRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Create stores a new inquiry with the Open status.
func (s *InquiryService) Create(ctx context.Context, req InquiryRequest) (*models.Inquiry, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, &ValidationError{Field: "name", Message: "name is required"}
	}
	if strings.TrimSpace(req.Email) == "" {
		return nil, &ValidationError{Field: "email", Message: "email is required"}
	}
	if strings.TrimSpace(req.Message) == "" {
		return nil, &ValidationError{Field: "message", Message: "message is required"}
	}
	inquiry := models.Inquiry{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Subject: req.Subject,
		Message: req.Message,
		Status:  models.InquiryStatusOpen,
	}
	if err := s.db.WithContext(ctx).Create(&inquiry).Error; err != nil {
		return nil, err
	}
	return &inquiry, nil
}

// Get returns a single inquiry.
func (s *InquiryService) Get(ctx context.Context, id uint) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	err := s.db.WithContext(ctx).First(&inquiry, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Resource: "inquiry", IDs: []uint{id}}
	}
	if err != nil {
		return nil, err
	}
	return &inquiry, nil
}

// List returns all inquiries, newest first.
func (s *InquiryService) List(ctx context.Context) ([]models.Inquiry, error) {
	var inquiries []models.Inquiry
	if err := s.db.WithContext(ctx).Order("id desc").Find(&inquiries).Error; err != nil {
		return nil, err
	}
	return inquiries, nil
}

// UpdateStatus sets a new handling status on the inquiry.
func (s *InquiryService) UpdateStatus(ctx context.Context, id uint, status string) (*models.Inquiry, error) {
	if strings.TrimSpace(status) == "" {
		return nil, &ValidationError{Field: "status", Message: "status is required"}
	}
	inquiry, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	inquiry.Status = status
	if err := s.db.WithContext(ctx).Save(inquiry).Error; err != nil {
		return nil, err
	}
	return inquiry, nil
}
