package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rajivgeraev/bookswap-api/internal/models"
)

// PostgresTradeRepository реализует TradeRepository поверх pgx
type PostgresTradeRepository struct {
	pool *pgxpool.Pool
}

// NewTradeRepository создает новый экземпляр PostgresTradeRepository
func NewTradeRepository(pool *pgxpool.Pool) *PostgresTradeRepository {
	return &PostgresTradeRepository{pool: pool}
}

const tradeColumns = `
	id, requester_id, requester_name, requester_avatar,
	owner_id, owner_name, owner_avatar,
	book_requested_id, book_requested_title, book_requested_cover,
	author_requested, isbn_requested,
	book_offered_id, book_offered_title, book_offered_cover,
	author_offered, isbn_offered,
	message, status, created_at`

// Create сохраняет новую заявку на обмен. ID и created_at присваиваются
// на сервере, статус всегда pending.
func (r *PostgresTradeRepository) Create(ctx context.Context, trade *models.TradeRequest) error {
	trade.ID = uuid.New()
	trade.Status = models.TradeStatusPending

	err := r.pool.QueryRow(ctx, `
		INSERT INTO trade_requests (
			id, requester_id, requester_name, requester_avatar,
			owner_id, owner_name, owner_avatar,
			book_requested_id, book_requested_title, book_requested_cover,
			author_requested, isbn_requested,
			book_offered_id, book_offered_title, book_offered_cover,
			author_offered, isbn_offered,
			message, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING created_at
	`, trade.ID, trade.RequesterID, trade.RequesterName, trade.RequesterAvatar,
		trade.OwnerID, trade.OwnerName, trade.OwnerAvatar,
		trade.BookRequestedID, trade.BookRequestedTitle, trade.BookRequestedCover,
		nullableText(trade.AuthorRequested), nullableText(trade.ISBNRequested),
		trade.BookOfferedID, nullableText(trade.BookOfferedTitle), nullableText(trade.BookOfferedCover),
		nullableText(trade.AuthorOffered), nullableText(trade.ISBNOffered),
		trade.Message, trade.Status,
	).Scan(&trade.CreatedAt)

	if err != nil {
		return fmt.Errorf("%w: ошибка при создании заявки на обмен: %v", models.ErrStorage, err)
	}
	return nil
}

// GetByID получает заявку на обмен по ID
func (r *PostgresTradeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.TradeRequest, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+tradeColumns+` FROM trade_requests WHERE id = $1`, id)

	trade, err := scanTrade(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("%w: ошибка при запросе заявки: %v", models.ErrStorage, err)
	}
	return trade, nil
}

// ListByParticipant возвращает заявки пользователя по роли и статусу,
// отсортированные по времени создания, новые первыми
func (r *PostgresTradeRepository) ListByParticipant(ctx context.Context, userID uuid.UUID, role, status string) ([]models.TradeRequest, error) {
	// Формируем условие в зависимости от роли участника
	var condition string
	switch role {
	case models.TradeRoleIncoming:
		condition = `owner_id = $1`
	case models.TradeRoleOutgoing:
		condition = `requester_id = $1`
	default:
		condition = `(requester_id = $1 OR owner_id = $1)`
	}

	query := `SELECT ` + tradeColumns + ` FROM trade_requests WHERE ` + condition
	args := []interface{}{userID}

	if status != "" && status != "all" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ошибка при запросе заявок: %v", models.ErrStorage, err)
	}
	defer rows.Close()

	trades := []models.TradeRequest{}
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			log.Printf("Ошибка сканирования строки заявки: %v", err)
			continue
		}
		trades = append(trades, *trade)
	}

	return trades, nil
}

// UpdateStatusIfPending атомарно переводит заявку из pending в новый
// статус (compare-and-swap по условию status = 'pending'). Возвращает
// false, если заявка уже не pending и переход не состоялся.
func (r *PostgresTradeRepository) UpdateStatusIfPending(ctx context.Context, id uuid.UUID, status string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE trade_requests
		SET status = $1
		WHERE id = $2 AND status = 'pending'
	`, status, id)

	if err != nil {
		return false, fmt.Errorf("%w: ошибка при обновлении статуса заявки: %v", models.ErrStorage, err)
	}
	return tag.RowsAffected() > 0, nil
}

// scanTrade читает заявку из строки результата
func scanTrade(row pgx.Row) (*models.TradeRequest, error) {
	var trade models.TradeRequest
	var authorRequested, isbnRequested pgtype.Text
	var bookOfferedTitle, bookOfferedCover, authorOffered, isbnOffered pgtype.Text

	err := row.Scan(
		&trade.ID, &trade.RequesterID, &trade.RequesterName, &trade.RequesterAvatar,
		&trade.OwnerID, &trade.OwnerName, &trade.OwnerAvatar,
		&trade.BookRequestedID, &trade.BookRequestedTitle, &trade.BookRequestedCover,
		&authorRequested, &isbnRequested,
		&trade.BookOfferedID, &bookOfferedTitle, &bookOfferedCover,
		&authorOffered, &isbnOffered,
		&trade.Message, &trade.Status, &trade.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Преобразуем nullable поля
	if authorRequested.Valid {
		trade.AuthorRequested = authorRequested.String
	}
	if isbnRequested.Valid {
		trade.ISBNRequested = isbnRequested.String
	}
	if bookOfferedTitle.Valid {
		trade.BookOfferedTitle = bookOfferedTitle.String
	}
	if bookOfferedCover.Valid {
		trade.BookOfferedCover = bookOfferedCover.String
	}
	if authorOffered.Valid {
		trade.AuthorOffered = authorOffered.String
	}
	if isbnOffered.Valid {
		trade.ISBNOffered = isbnOffered.String
	}

	return &trade, nil
}

// nullableText преобразует пустую строку в NULL
func nullableText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}
