package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/rajivgeraev/bookswap-api/internal/models"
)

// Интерфейсы хранилищ. Сервисы работают только через них и не зависят
// от времени жизни процесса или конкретной СУБД. Реализации поверх pgx
// живут в этом же пакете, фейки для тестов — рядом с тестами сервисов.

// UserRepository определяет операции хранилища пользователей
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// BookRepository определяет операции хранилища книг
type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Book, error)
	List(ctx context.Context) ([]models.Book, error)
}

// TradeRepository определяет операции хранилища заявок на обмен
type TradeRepository interface {
	Create(ctx context.Context, trade *models.TradeRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.TradeRequest, error)
	// ListByParticipant возвращает заявки пользователя по роли
	// (incoming/outgoing/all) и статусу, новые первыми
	ListByParticipant(ctx context.Context, userID uuid.UUID, role, status string) ([]models.TradeRequest, error)
	// UpdateStatusIfPending атомарно переводит заявку из pending в
	// новый статус. Возвращает false, если заявка уже не pending.
	UpdateStatusIfPending(ctx context.Context, id uuid.UUID, status string) (bool, error)
}

// MessageRepository определяет операции хранилища сообщений
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	// ListByParticipant возвращает сообщения, где пользователь
	// отправитель или получатель, в хронологическом порядке
	ListByParticipant(ctx context.Context, userID uuid.UUID) ([]models.Message, error)
	// MarkRead помечает сообщение прочитанным. Идемпотентна: повторный
	// вызов, чужое или несуществующее сообщение — тихий no-op.
	MarkRead(ctx context.Context, messageID, recipientID uuid.UUID) error
}
