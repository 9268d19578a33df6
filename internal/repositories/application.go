package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"alfredoptarigan/resume-analyzer/internal/models"
)

var ErrApplicationNotFound = errors.New("application not found")

type ApplicationRepository interface {
	Create(app *models.Application) error
	FindAll() ([]models.Application, error)
	FindByID(id uint) (*models.Application, error)
	FindByIDs(ids []uint) ([]models.Application, error)
	Delete(id uint) (*models.Application, error)
	FindUnindexed(limit int) ([]models.Application, error)
	MarkIndexed(id uint) error
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// Create implements ApplicationRepository.
func (r *applicationRepository) Create(app *models.Application) error {
	if err := r.db.Create(app).Error; err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

// FindAll returns every application, best score first and newest first within a score.
func (r *applicationRepository) FindAll() ([]models.Application, error) {
	var apps []models.Application
	if err := r.db.Order("score DESC").Order("id DESC").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// FindByID implements ApplicationRepository.
func (r *applicationRepository) FindByID(id uint) (*models.Application, error) {
	var app models.Application
	if err := r.db.Where("id = ?", id).First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	return &app, nil
}

// FindByIDs implements ApplicationRepository.
func (r *applicationRepository) FindByIDs(ids []uint) ([]models.Application, error) {
	var apps []models.Application
	if len(ids) == 0 {
		return apps, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("failed to find applications: %w", err)
	}
	return apps, nil
}

// Delete removes the row and returns it so callers can clean up the stored file.
func (r *applicationRepository) Delete(id uint) (*models.Application, error) {
	app, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Delete(&models.Application{}, id)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to delete application: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrApplicationNotFound
	}

	return app, nil
}

// FindUnindexed implements ApplicationRepository.
func (r *applicationRepository) FindUnindexed(limit int) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.
		Where("indexed = ?", false).
		Order("id ASC").
		Limit(limit).
		Find(&apps).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find unindexed applications: %w", err)
	}
	return apps, nil
}

// MarkIndexed implements ApplicationRepository.
func (r *applicationRepository) MarkIndexed(id uint) error {
	result := r.db.Model(&models.Application{}).
		Where("id = ?", id).
		Update("indexed", true)

	if result.Error != nil {
		return fmt.Errorf("failed to mark application indexed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}
