package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"library_backend/pkg/models"
)

type StudentInput struct {
	Carnet     string
	Name       string
	BirthDate  *time.Time
	CareerCode string
}

type StudentService struct {
	db      *gorm.DB
	careers *CareerService
}

func NewStudentService(db *gorm.DB, careers *CareerService) *StudentService {
	return &StudentService{db: db, careers: careers}
}

// Create resolves the career before inserting; a missing or inactive career
// surfaces as the career lookup's NotFound, untranslated.
func (s *StudentService) Create(input StudentInput) (*models.Student, error) {
	career, err := s.careers.GetActiveByCode(input.CareerCode)
	if err != nil {
		return nil, err
	}

	student := models.Student{
		Carnet:     input.Carnet,
		Name:       input.Name,
		BirthDate:  input.BirthDate,
		Status:     true,
		CareerCode: career.Code,
	}
	if err := s.db.Create(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("student with carnet %s: %w", input.Carnet, ErrDuplicateEntity)
		}
		return nil, err
	}
	student.Career = *career
	return &student, nil
}

func (s *StudentService) Update(carnet string, input StudentInput) (*models.Student, error) {
	var student models.Student
	if err := s.db.First(&student, "carnet = ?", carnet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("student with carnet %s: %w", carnet, ErrNotFound)
		}
		return nil, err
	}

	career, err := s.careers.GetActiveByCode(input.CareerCode)
	if err != nil {
		return nil, err
	}

	student.Name = input.Name
	student.BirthDate = input.BirthDate
	student.CareerCode = career.Code
	if err := s.db.Save(&student).Error; err != nil {
		return nil, err
	}
	student.Career = *career
	return &student, nil
}

func (s *StudentService) GetByCarnet(carnet string) (*models.Student, error) {
	var student models.Student
	if err := s.db.First(&student, "carnet = ?", carnet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("student with carnet %s: %w", carnet, ErrNotFound)
		}
		return nil, err
	}
	return &student, nil
}

// ListActive loads the career along with each student so callers can read the
// career name without another lookup.
func (s *StudentService) ListActive() ([]models.Student, error) {
	var students []models.Student
	err := s.db.Where("status = ?", true).Preload("Career").Find(&students).Error
	if err != nil {
		return nil, err
	}
	return students, nil
}

// ListActiveWithLoans is the loan-history variant of ListActive: each student
// carries the career and the full loan list, preloaded in one query each.
func (s *StudentService) ListActiveWithLoans() ([]models.Student, error) {
	var students []models.Student
	err := s.db.Where("status = ?", true).
		Preload("Career").
		Preload("Loans").
		Find(&students).Error
	if err != nil {
		return nil, err
	}
	return students, nil
}

// Delete removes the record permanently and returns the deleted carnet.
func (s *StudentService) Delete(carnet string) (string, error) {
	var student models.Student
	if err := s.db.First(&student, "carnet = ?", carnet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("student with carnet %s: %w", carnet, ErrNotFound)
		}
		return "", err
	}
	if err := s.db.Delete(&student).Error; err != nil {
		return "", err
	}
	return carnet, nil
}

func (s *StudentService) SoftDelete(carnet string) (*models.Student, error) {
	var student models.Student
	if err := s.db.First(&student, "carnet = ?", carnet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("student with carnet %s: %w", carnet, ErrNotFound)
		}
		return nil, err
	}
	student.Status = false
	if err := s.db.Save(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}
