package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"library_backend/pkg/models"
)

type ReservationInput struct {
	ID              *uint
	Carnet          string
	BookCode        string
	ReservationDate time.Time
}

type ReservationUpdate struct {
	Carnet          string
	BookCode        string
	ReservationDate time.Time
	Status          string
}

type ReservationService struct {
	db       *gorm.DB
	students *StudentService
	books    *BookService
}

func NewReservationService(db *gorm.DB, students *StudentService, books *BookService) *ReservationService {
	return &ReservationService{db: db, students: students, books: books}
}

func (s *ReservationService) Create(input ReservationInput) (*models.Reservation, error) {
	if input.BookCode == "" {
		return nil, fmt.Errorf("book code: %w", ErrRequiredField)
	}

	student, err := s.students.GetByCarnet(input.Carnet)
	if err != nil {
		return nil, err
	}
	book, err := s.books.GetByCode(input.BookCode)
	if err != nil {
		return nil, err
	}
	if book.AvailableCopies <= 0 {
		return nil, fmt.Errorf("book %s: %w", book.Code, ErrInsufficientCopies)
	}

	reservation := models.Reservation{
		ReservationDate: input.ReservationDate,
		Status:          models.ReservationStatusActive,
		StudentCarnet:   student.Carnet,
		BookCode:        book.Code,
	}
	if input.ID != nil {
		reservation.ID = *input.ID
	}
	if err := s.db.Create(&reservation).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("reservation with id %d: %w", reservation.ID, ErrDuplicateEntity)
		}
		return nil, err
	}
	return &reservation, nil
}

// Update overwrites all mutable fields, including the book reference.
func (s *ReservationService) Update(id uint, input ReservationUpdate) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.db.First(&reservation, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("reservation with id %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	reservation.StudentCarnet = input.Carnet
	reservation.BookCode = input.BookCode
	reservation.ReservationDate = input.ReservationDate
	reservation.Status = input.Status
	if err := s.db.Save(&reservation).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

// UpdateStatus stores the status string as given, without checking it against
// the known set.
func (s *ReservationService) UpdateStatus(id uint, status string) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.db.First(&reservation, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("reservation with id %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	reservation.Status = status
	if err := s.db.Save(&reservation).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (s *ReservationService) GetByID(id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := s.db.Preload("Student").Preload("Book").First(&reservation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("reservation with id %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &reservation, nil
}

func (s *ReservationService) ListAll() ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := s.db.Preload("Student").Preload("Book").Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

func (s *ReservationService) ListByStatus(status string) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := s.db.Where("status = ?", status).Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}
