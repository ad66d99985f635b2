package models

import (
	"time"

	"github.com/google/uuid"
)

// Статусы заявки на обмен
const (
	TradeStatusPending   = "pending"
	TradeStatusAccepted  = "accepted"
	TradeStatusRejected  = "rejected"
	TradeStatusCompleted = "completed"
)

// Типы выборки заявок по роли участника
const (
	TradeRoleIncoming = "incoming"
	TradeRoleOutgoing = "outgoing"
	TradeRoleAll      = "all"
)

// TradeRequest представляет заявку на обмен книгами.
// Поля requester/owner/book — снимок данных на момент создания заявки:
// последующие изменения книги или профиля не затрагивают уже созданную
// заявку. Единственное изменяемое после создания поле — status.
type TradeRequest struct {
	ID                 uuid.UUID  `json:"id"`
	RequesterID        uuid.UUID  `json:"requester_id"`
	RequesterName      string     `json:"requester_name"`
	RequesterAvatar    string     `json:"requester_avatar"`
	OwnerID            uuid.UUID  `json:"owner_id"`
	OwnerName          string     `json:"owner_name"`
	OwnerAvatar        string     `json:"owner_avatar"`
	BookRequestedID    uuid.UUID  `json:"book_requested_id"`
	BookRequestedTitle string     `json:"book_requested_title"`
	BookRequestedCover string     `json:"book_requested_cover"`
	AuthorRequested    string     `json:"author_requested,omitempty"`
	ISBNRequested      string     `json:"isbn_requested,omitempty"`
	BookOfferedID      *uuid.UUID `json:"book_offered_id,omitempty"`
	BookOfferedTitle   string     `json:"book_offered_title,omitempty"`
	BookOfferedCover   string     `json:"book_offered_cover,omitempty"`
	AuthorOffered      string     `json:"author_offered,omitempty"`
	ISBNOffered        string     `json:"isbn_offered,omitempty"`
	Message            string     `json:"message"`
	Status             string     `json:"status"`
	CreatedAt          time.Time  `json:"created_at"`
}

// IsDirectRequest сообщает, является ли заявка прямым запросом книги
// без встречного предложения
func (t *TradeRequest) IsDirectRequest() bool {
	return t.BookOfferedID == nil
}

// IsParticipant проверяет, участвует ли пользователь в заявке
func (t *TradeRequest) IsParticipant(userID uuid.UUID) bool {
	return t.RequesterID == userID || t.OwnerID == userID
}

// IsValidTradeStatus проверяет, что статус входит в допустимый список
func IsValidTradeStatus(status string) bool {
	switch status {
	case TradeStatusPending, TradeStatusAccepted, TradeStatusRejected, TradeStatusCompleted:
		return true
	}
	return false
}

// IsTerminalTradeStatus сообщает, является ли статус конечным.
// Из конечного статуса переходы запрещены.
func IsTerminalTradeStatus(status string) bool {
	return status == TradeStatusAccepted || status == TradeStatusRejected
}

// CanTransitionTrade проверяет допустимость перехода статуса заявки.
// Разрешены только pending -> accepted и pending -> rejected. Статус
// completed зарезервирован под подтверждение физического обмена,
// перехода в него через API нет.
func CanTransitionTrade(from, to string) bool {
	if from != TradeStatusPending {
		return false
	}
	return to == TradeStatusAccepted || to == TradeStatusRejected
}

// MatchesTradeRole проверяет, попадает ли заявка в выборку по роли:
// incoming — пользователь владеет запрошенной книгой, outgoing —
// пользователь создал заявку, all — любая из ролей
func (t *TradeRequest) MatchesTradeRole(userID uuid.UUID, role string) bool {
	switch role {
	case TradeRoleIncoming:
		return t.OwnerID == userID
	case TradeRoleOutgoing:
		return t.RequesterID == userID
	default:
		return t.IsParticipant(userID)
	}
}
