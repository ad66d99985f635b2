package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rajivgeraev/bookswap-api/internal/models"
)

// PostgresBookRepository реализует BookRepository поверх pgx
type PostgresBookRepository struct {
	pool *pgxpool.Pool
}

// NewBookRepository создает новый экземпляр PostgresBookRepository
func NewBookRepository(pool *pgxpool.Pool) *PostgresBookRepository {
	return &PostgresBookRepository{pool: pool}
}

// Create сохраняет новую книгу в каталоге
func (r *PostgresBookRepository) Create(ctx context.Context, book *models.Book) error {
	book.ID = uuid.New()

	genreData, err := json.Marshal(book.Genre)
	if err != nil {
		return fmt.Errorf("%w: ошибка сериализации жанров: %v", models.ErrStorage, err)
	}

	err = r.pool.QueryRow(ctx, `
		INSERT INTO books (id, title, author, cover, isbn, description, page_count, genre, published_date, condition, owner_id, available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at
	`, book.ID, book.Title, book.Author, book.Cover, book.ISBN, book.Description,
		book.PageCount, genreData, book.PublishedDate, book.Condition, book.OwnerID, book.Available,
	).Scan(&book.CreatedAt)

	if err != nil {
		return fmt.Errorf("%w: ошибка при создании книги: %v", models.ErrStorage, err)
	}
	return nil
}

// GetByID получает книгу по ID
func (r *PostgresBookRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, title, author, cover, isbn, description, page_count, genre,
		       published_date, condition, owner_id, available, created_at
		FROM books WHERE id = $1
	`, id)

	book, err := scanBook(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("%w: ошибка при запросе книги: %v", models.ErrStorage, err)
	}
	return book, nil
}

// List возвращает весь каталог книг, новые первыми
func (r *PostgresBookRepository) List(ctx context.Context) ([]models.Book, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, author, cover, isbn, description, page_count, genre,
		       published_date, condition, owner_id, available, created_at
		FROM books
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: ошибка при запросе каталога: %v", models.ErrStorage, err)
	}
	defer rows.Close()

	books := []models.Book{}
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			log.Printf("Ошибка сканирования строки книги: %v", err)
			continue
		}
		books = append(books, *book)
	}

	return books, nil
}

// scanBook читает книгу из строки результата
func scanBook(row pgx.Row) (*models.Book, error) {
	var book models.Book
	var genreData []byte

	err := row.Scan(
		&book.ID, &book.Title, &book.Author, &book.Cover, &book.ISBN,
		&book.Description, &book.PageCount, &genreData, &book.PublishedDate,
		&book.Condition, &book.OwnerID, &book.Available, &book.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Преобразуем JSONB жанры в массив строк
	if err := json.Unmarshal(genreData, &book.Genre); err != nil {
		log.Printf("Ошибка разбора жанров: %v", err)
		book.Genre = []string{}
	}

	return &book, nil
}
