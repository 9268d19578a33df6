package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"alfredoptarigan/resume-analyzer/internal/models"
)

var ErrAdminNotFound = errors.New("admin credentials not found")

type AdminRepository interface {
	Count() (int64, error)
	Create(admin *models.AdminCredential) error
	FindByUsername(username string) (*models.AdminCredential, error)
}

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.AdminCredential{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count admin credentials: %w", err)
	}
	return count, nil
}

func (r *adminRepository) Create(admin *models.AdminCredential) error {
	if err := r.db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create admin credentials: %w", err)
	}
	return nil
}

func (r *adminRepository) FindByUsername(username string) (*models.AdminCredential, error) {
	var admin models.AdminCredential
	if err := r.db.Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to find admin credentials: %w", err)
	}
	return &admin, nil
}
