package db

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rajivgeraev/bookswap-api/internal/models"
)

// PostgresMessageRepository реализует MessageRepository поверх pgx
type PostgresMessageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository создает новый экземпляр PostgresMessageRepository
func NewMessageRepository(pool *pgxpool.Pool) *PostgresMessageRepository {
	return &PostgresMessageRepository{pool: pool}
}

// Create сохраняет новое сообщение
func (r *PostgresMessageRepository) Create(ctx context.Context, message *models.Message) error {
	message.ID = uuid.New()
	message.Read = false

	err := r.pool.QueryRow(ctx, `
		INSERT INTO messages (id, sender_id, sender_name, sender_avatar, recipient_id, content, trade_request_id, read)
		VALUES ($1, $2, $3, $4, $5, $6, $7, false)
		RETURNING created_at
	`, message.ID, message.SenderID, message.SenderName, message.SenderAvatar,
		message.RecipientID, message.Content, message.TradeRequestID,
	).Scan(&message.CreatedAt)

	if err != nil {
		return fmt.Errorf("%w: ошибка при создании сообщения: %v", models.ErrStorage, err)
	}
	return nil
}

// ListByParticipant возвращает переписку пользователя в хронологическом
// порядке: сообщения, где он отправитель или получатель
func (r *PostgresMessageRepository) ListByParticipant(ctx context.Context, userID uuid.UUID) ([]models.Message, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, sender_id, sender_name, sender_avatar, recipient_id, content, trade_request_id, read, created_at
		FROM messages
		WHERE sender_id = $1 OR recipient_id = $1
		ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: ошибка при запросе сообщений: %v", models.ErrStorage, err)
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var message models.Message
		if err := rows.Scan(
			&message.ID, &message.SenderID, &message.SenderName, &message.SenderAvatar,
			&message.RecipientID, &message.Content, &message.TradeRequestID,
			&message.Read, &message.CreatedAt,
		); err != nil {
			log.Printf("Ошибка сканирования строки сообщения: %v", err)
			continue
		}
		messages = append(messages, message)
	}

	return messages, nil
}

// MarkRead помечает сообщение прочитанным. Флаг меняется только у
// получателя; повторный вызов, чужой или неизвестный ID — тихий no-op.
func (r *PostgresMessageRepository) MarkRead(ctx context.Context, messageID, recipientID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE messages
		SET read = true
		WHERE id = $1 AND recipient_id = $2 AND read = false
	`, messageID, recipientID)

	if err != nil {
		return fmt.Errorf("%w: ошибка при обновлении сообщения: %v", models.ErrStorage, err)
	}
	return nil
}
