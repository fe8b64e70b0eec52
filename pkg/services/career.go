package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"library_backend/pkg/models"
)

type CareerService struct {
	db *gorm.DB
}

func NewCareerService(db *gorm.DB) *CareerService {
	return &CareerService{db: db}
}

func (s *CareerService) Create(code, name string) (*models.Career, error) {
	career := models.Career{
		Code:   code,
		Name:   name,
		Status: true,
	}
	if err := s.db.Create(&career).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("career with code %s: %w", code, ErrDuplicateEntity)
		}
		return nil, err
	}
	return &career, nil
}

func (s *CareerService) Update(code, name string) (*models.Career, error) {
	var career models.Career
	if err := s.db.First(&career, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("career with code %s: %w", code, ErrNotFound)
		}
		return nil, err
	}
	career.Name = name
	if err := s.db.Save(&career).Error; err != nil {
		return nil, err
	}
	return &career, nil
}

// GetActiveByCode resolves only careers that have not been soft-deleted.
func (s *CareerService) GetActiveByCode(code string) (*models.Career, error) {
	var career models.Career
	err := s.db.First(&career, "code = ? AND status = ?", code, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("career with code %s: %w", code, ErrNotFound)
		}
		return nil, err
	}
	return &career, nil
}

func (s *CareerService) ListActive() ([]models.Career, error) {
	var careers []models.Career
	if err := s.db.Where("status = ?", true).Find(&careers).Error; err != nil {
		return nil, err
	}
	return careers, nil
}

func (s *CareerService) SoftDelete(code string) (*models.Career, error) {
	var career models.Career
	if err := s.db.First(&career, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("career with code %s: %w", code, ErrNotFound)
		}
		return nil, err
	}
	career.Status = false
	if err := s.db.Save(&career).Error; err != nil {
		return nil, err
	}
	return &career, nil
}
