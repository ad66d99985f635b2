package models

import (
	"time"

	"github.com/google/uuid"
)

// Message представляет личное сообщение между пользователями.
// Сообщение может быть привязано к заявке на обмен через TradeRequestID.
type Message struct {
	ID             uuid.UUID  `json:"id"`
	SenderID       uuid.UUID  `json:"sender_id"`
	SenderName     string     `json:"sender_name"`
	SenderAvatar   string     `json:"sender_avatar"`
	RecipientID    uuid.UUID  `json:"recipient_id"`
	Content        string     `json:"content"`
	TradeRequestID *uuid.UUID `json:"trade_request_id,omitempty"`
	Read           bool       `json:"read"`
	CreatedAt      time.Time  `json:"timestamp"`
}
