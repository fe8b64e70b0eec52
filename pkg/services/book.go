package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"library_backend/pkg/models"
)

type BookInput struct {
	Code            string
	Title           string
	Author          string
	PublicationDate *time.Time
	Publisher       string
	AvailableCopies int
}

type BookService struct {
	db *gorm.DB
}

func NewBookService(db *gorm.DB) *BookService {
	return &BookService{db: db}
}

func (s *BookService) Create(input BookInput) (*models.Book, error) {
	book := models.Book{
		Code:            input.Code,
		Title:           input.Title,
		Author:          input.Author,
		PublicationDate: input.PublicationDate,
		Publisher:       input.Publisher,
		AvailableCopies: input.AvailableCopies,
		Status:          true,
	}
	if err := s.db.Create(&book).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("book with code %s: %w", input.Code, ErrDuplicateEntity)
		}
		return nil, err
	}
	return &book, nil
}

// Update overwrites the descriptive fields and the copy count. The code, the
// publication date and the active flag are left untouched.
func (s *BookService) Update(code string, input BookInput) (*models.Book, error) {
	var book models.Book
	if err := s.db.First(&book, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("book with code %s: %w", code, ErrNotFound)
		}
		return nil, err
	}
	book.Title = input.Title
	book.Author = input.Author
	book.Publisher = input.Publisher
	book.AvailableCopies = input.AvailableCopies
	if err := s.db.Save(&book).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// GetByCode has no active filter: inactive books stay resolvable so that
// existing loans and reservations can still reference them.
func (s *BookService) GetByCode(code string) (*models.Book, error) {
	var book models.Book
	if err := s.db.First(&book, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("book with code %s: %w", code, ErrNotFound)
		}
		return nil, err
	}
	return &book, nil
}

func (s *BookService) ListActive() ([]models.Book, error) {
	var books []models.Book
	if err := s.db.Where("status = ?", true).Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (s *BookService) SoftDelete(code string) (*models.Book, error) {
	var book models.Book
	if err := s.db.First(&book, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("book with code %s: %w", code, ErrNotFound)
		}
		return nil, err
	}
	book.Status = false
	if err := s.db.Save(&book).Error; err != nil {
		return nil, err
	}
	return &book, nil
}
