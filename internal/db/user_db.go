package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rajivgeraev/bookswap-api/internal/models"
)

// PostgresUserRepository реализует UserRepository поверх pgx
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository создает новый экземпляр PostgresUserRepository
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// Create сохраняет нового пользователя. ID и время регистрации
// присваиваются на сервере.
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = uuid.New()

	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, name, email, password_hash, avatar, bio, location, credits, books_offered, books_received, rating)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING joined
	`, user.ID, user.Name, user.Email, user.PasswordHash, user.Avatar, user.Bio,
		user.Location, user.Credits, user.BooksOffered, user.BooksReceived, user.Rating,
	).Scan(&user.Joined)

	if err != nil {
		return fmt.Errorf("%w: ошибка при создании пользователя: %v", models.ErrStorage, err)
	}
	return nil
}

// GetByID получает пользователя по ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.getUser(ctx, `WHERE id = $1`, id)
}

// GetByEmail получает пользователя по email
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx, `WHERE email = $1`, email)
}

func (r *PostgresUserRepository) getUser(ctx context.Context, where string, arg interface{}) (*models.User, error) {
	var user models.User
	var bio, location pgtype.Text

	err := r.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, avatar, bio, location,
		       joined, credits, books_offered, books_received, rating
		FROM users `+where, arg,
	).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Avatar,
		&bio, &location, &user.Joined, &user.Credits,
		&user.BooksOffered, &user.BooksReceived, &user.Rating,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("%w: ошибка при запросе пользователя: %v", models.ErrStorage, err)
	}

	// Преобразуем nullable поля
	if bio.Valid {
		user.Bio = bio.String
	}
	if location.Valid {
		user.Location = location.String
	}

	return &user, nil
}
