package db

import (
	"errors"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Daniru12/PcStore/internal/models"
)

func allModels() []any {
	return []any{
		&models.User{},
		&models.PC{},
		&models.Part{},
		&models.Product{},
		&models.Order{},
		&models.Inquiry{},
	}
}

// Seed creates the default admin account and a small sample catalog when
// they do not already exist.
func Seed(conn *gorm.DB) error {
	if err := seedAdmin(conn); err != nil {
		return err
	}
	return seedCatalog(conn)
}

func seedAdmin(conn *gorm.DB) error {
	var count int64
	if err := conn.Model(&models.User{}).Where("username = ?", "admin").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Username: "admin",
		Email:    "admin@pcstore.com",
		Password: string(hash),
		FullName: "System Administrator",
		Role:     models.RoleAdmin,
	}
	return conn.Create(&admin).Error
}

func seedCatalog(conn *gorm.DB) error {
	pcs := []models.PC{
		{Name: "Aurora Gaming Tower", Brand: "Proline", Price: decimal.NewFromFloat(1899.00)},
		{Name: "Compact Office PC", Brand: "Proline", Price: decimal.NewFromFloat(649.00)},
	}
	for i := range pcs {
		var existing models.PC
		err := conn.Where("name = ?", pcs[i].Name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := conn.Create(&pcs[i]).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}

	parts := []models.Part{
		{Name: "Ryzen 7 7800X3D", Type: "CPU", Price: decimal.NewFromFloat(449.00)},
		{Name: "GeForce RTX 4070", Type: "GPU", Price: decimal.NewFromFloat(599.00)},
		{Name: "32GB DDR5-6000", Type: "RAM", Price: decimal.NewFromFloat(129.00)},
		{Name: "1TB NVMe SSD", Type: "Storage", Price: decimal.NewFromFloat(89.00)},
	}
	for i := range parts {
		var existing models.Part
		err := conn.Where("name = ?", parts[i].Name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := conn.Create(&parts[i]).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}
	return nil
}
