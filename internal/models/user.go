package models

import (
	"time"

	"github.com/google/uuid"
)

// User представляет пользователя в системе
type User struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Avatar        string    `json:"avatar"`
	Bio           string    `json:"bio,omitempty"`
	Location      string    `json:"location,omitempty"`
	Joined        time.Time `json:"joined"`
	Credits       int       `json:"credits"`
	BooksOffered  int       `json:"books_offered"`
	BooksReceived int       `json:"books_received"`
	Rating        float64   `json:"rating"`
}

// Значения по умолчанию для нового пользователя
const (
	DefaultCredits = 100
	DefaultRating  = 5.0
	DefaultAvatar  = "/placeholder.svg"
)
