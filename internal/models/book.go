package models

import (
	"time"

	"github.com/google/uuid"
)

// Book представляет книгу в каталоге
type Book struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Cover         string    `json:"cover"`
	ISBN          string    `json:"isbn"`
	Description   string    `json:"description,omitempty"`
	PageCount     int       `json:"page_count,omitempty"`
	Genre         []string  `json:"genre"`
	PublishedDate string    `json:"published_date,omitempty"`
	Condition     string    `json:"condition"`
	OwnerID       uuid.UUID `json:"owner_id"`
	Available     bool      `json:"available"`
	CreatedAt     time.Time `json:"created_at"`
}

// Допустимые состояния книги
var bookConditions = map[string]bool{
	"New":       true,
	"Like New":  true,
	"Very Good": true,
	"Good":      true,
	"Fair":      true,
	"Poor":      true,
}

// IsValidCondition проверяет, что состояние книги входит в допустимый список
func IsValidCondition(condition string) bool {
	return bookConditions[condition]
}
