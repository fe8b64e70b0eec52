package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"library_backend/pkg/models"
)

type UserInput struct {
	Name     string
	Email    string
	Username string
	Password string
	Role     string
}

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Signup checks the username before the email so the two collisions surface
// as distinct errors in a stable order. The unique index on username remains
// the backstop for concurrent signups.
func (s *UserService) Signup(input UserInput) (*models.User, error) {
	var existing models.User
	err := s.db.First(&existing, "username = ?", input.Username).Error
	if err == nil {
		return nil, fmt.Errorf("user with username %s: %w", input.Username, ErrDuplicateEntity)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = s.db.First(&existing, "email = ?", input.Email).Error
	if err == nil {
		return nil, fmt.Errorf("user with email %s: %w", input.Email, ErrDuplicateEntity)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), 12)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = models.RoleStudent
	}
	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Username: input.Username,
		Password: string(hash),
		Role:     role,
		Status:   models.UserEnabled,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("user with username %s: %w", input.Username, ErrDuplicateEntity)
		}
		return nil, err
	}
	return &user, nil
}

// Update re-hashes the password on every call, whether or not it changed.
func (s *UserService) Update(id uint, input UserInput) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with id %d: %w", id, ErrNotFound)
		}
		return nil, err
	}

	var other models.User
	err := s.db.First(&other, "username = ? AND id <> ?", input.Username, id).Error
	if err == nil {
		return nil, fmt.Errorf("user with username %s: %w", input.Username, ErrDuplicateEntity)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = s.db.First(&other, "email = ? AND id <> ?", input.Email, id).Error
	if err == nil {
		return nil, fmt.Errorf("user with email %s: %w", input.Email, ErrDuplicateEntity)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), 12)
	if err != nil {
		return nil, err
	}

	user.Name = input.Name
	user.Email = input.Email
	user.Username = input.Username
	user.Password = string(hash)
	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate verifies the credentials of an enabled account. An unknown
// username is NotFound; a disabled account and a wrong password are separate
// outcomes.
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user.Status != models.UserEnabled {
		return nil, fmt.Errorf("user %s: %w", username, ErrUserDisabled)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, fmt.Errorf("user %s: %w", username, ErrInvalidCredentials)
		}
		return nil, err
	}
	return user, nil
}

// CreateUser is the administrative entry point: it hashes and inserts without
// the signup duplicate checks.
func (s *UserService) CreateUser(name, username, rawPassword, email, role string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), 12)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Name:     name,
		Email:    email,
		Username: username,
		Password: string(hash),
		Role:     role,
		Status:   models.UserEnabled,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with id %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with username %s: %w", username, ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}
