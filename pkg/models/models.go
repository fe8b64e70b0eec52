package models

import (
	"time"
)

const (
	RoleLibrarian = "LIBRARIAN"
	RoleStudent   = "STUDENT"
)

const (
	LoanStatusActive     = "ACTIVE"
	LoanStatusReturned   = "RETURNED"
	LoanStatusDelinquent = "DELINQUENT"
)

const (
	ReservationStatusActive    = "ACTIVE"
	ReservationStatusExpired   = "EXPIRED"
	ReservationStatusCompleted = "COMPLETED"
)

const (
	UserEnabled  int16 = 1
	UserDisabled int16 = 0
)

type Career struct {
	Code      string `gorm:"primaryKey;size:10"`
	Name      string `gorm:"size:255;not null"`
	Status    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Book struct {
	Code            string `gorm:"primaryKey;size:20"`
	Title           string `gorm:"size:255;not null"`
	Author          string `gorm:"size:255;not null"`
	PublicationDate *time.Time
	Publisher       string `gorm:"size:255"`
	AvailableCopies int    `gorm:"not null"`
	Status          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Student struct {
	Carnet     string `gorm:"primaryKey;size:10"`
	Name       string `gorm:"size:255;not null"`
	BirthDate  *time.Time
	Status     bool
	CareerCode string `gorm:"size:10;not null"`
	Career     Career `gorm:"foreignKey:CareerCode;references:Code"`
	Loans      []Loan `gorm:"foreignKey:StudentCarnet;references:Carnet"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Loan struct {
	ID            uint `gorm:"primaryKey"`
	LoanDate      time.Time
	ReturnDate    *time.Time
	Status        string  `gorm:"size:20;not null"`
	TotalDue      float64 `gorm:"type:decimal(10,2)"`
	StudentCarnet string  `gorm:"size:10;not null"`
	BookCode      string  `gorm:"size:20;not null"`
	Student       Student `gorm:"foreignKey:StudentCarnet;references:Carnet"`
	Book          Book    `gorm:"foreignKey:BookCode;references:Code"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Reservation struct {
	ID              uint `gorm:"primaryKey"`
	ReservationDate time.Time
	Status          string  `gorm:"size:20;not null"`
	StudentCarnet   string  `gorm:"size:10;not null"`
	BookCode        string  `gorm:"size:20;not null"`
	Student         Student `gorm:"foreignKey:StudentCarnet;references:Carnet"`
	Book            Book    `gorm:"foreignKey:BookCode;references:Code"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type User struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:45;not null"`
	Email     string `gorm:"size:45;not null"`
	Username  string `gorm:"size:45;not null;uniqueIndex"`
	Password  string `gorm:"size:500;not null"`
	Role      string `gorm:"size:20;not null"`
	Status    int16  `gorm:"default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
