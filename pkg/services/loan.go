package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"library_backend/pkg/models"
)

type LoanInput struct {
	ID         *uint
	Carnet     string
	BookCode   string
	LoanDate   time.Time
	ReturnDate *time.Time
	TotalDue   float64
}

type LoanUpdate struct {
	Carnet     string
	LoanDate   time.Time
	ReturnDate *time.Time
	Status     string
}

type LoanService struct {
	db       *gorm.DB
	students *StudentService
	books    *BookService
}

func NewLoanService(db *gorm.DB, students *StudentService, books *BookService) *LoanService {
	return &LoanService{db: db, students: students, books: books}
}

// Create runs the guards in a fixed order: total due, book code presence,
// student lookup, book lookup, copy availability, then the insert itself.
// The available-copy count is only checked here, never decremented.
func (s *LoanService) Create(input LoanInput) (*models.Loan, error) {
	if input.TotalDue < 0 {
		return nil, fmt.Errorf("total due %.2f: %w", input.TotalDue, ErrInvalidQuantity)
	}
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

	loan := models.Loan{
		LoanDate:      input.LoanDate,
		ReturnDate:    input.ReturnDate,
		Status:        models.LoanStatusActive,
		TotalDue:      input.TotalDue,
		StudentCarnet: student.Carnet,
		BookCode:      book.Code,
	}
	if input.ID != nil {
		loan.ID = *input.ID
	}
	if err := s.db.Create(&loan).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("loan with id %d: %w", loan.ID, ErrDuplicateEntity)
		}
		return nil, err
	}
	return &loan, nil
}

// Update overwrites the student reference, the dates and the status. The book
// reference is not touched by this operation.
func (s *LoanService) Update(id uint, input LoanUpdate) (*models.Loan, error) {
	var loan models.Loan
	if err := s.db.First(&loan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("loan with id %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	loan.StudentCarnet = input.Carnet
	loan.LoanDate = input.LoanDate
	loan.ReturnDate = input.ReturnDate
	loan.Status = input.Status
	if err := s.db.Save(&loan).Error; err != nil {
		return nil, err
	}
	return &loan, nil
}

// Close stamps the lowercase status the original system wrote, which differs
// from the LoanStatusReturned constant.
func (s *LoanService) Close(id uint) (*models.Loan, error) {
	var loan models.Loan
	if err := s.db.First(&loan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("loan with id %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	loan.Status = "returned"
	if err := s.db.Save(&loan).Error; err != nil {
		return nil, err
	}
	return &loan, nil
}

func (s *LoanService) GetByID(id uint) (*models.Loan, error) {
	var loan models.Loan
	err := s.db.Preload("Student").Preload("Book").First(&loan, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("loan with id %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &loan, nil
}

func (s *LoanService) ListAll() ([]models.Loan, error) {
	var loans []models.Loan
	err := s.db.Preload("Student").Preload("Book").Find(&loans).Error
	if err != nil {
		return nil, err
	}
	return loans, nil
}

func (s *LoanService) ListByStatus(status string) ([]models.Loan, error) {
	var loans []models.Loan
	err := s.db.Where("status = ?", status).Find(&loans).Error
	if err != nil {
		return nil, err
	}
	return loans, nil
}
