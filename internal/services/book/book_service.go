package book

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/rajivgeraev/bookswap-api/internal/cache"
	"github.com/rajivgeraev/bookswap-api/internal/config"
	"github.com/rajivgeraev/bookswap-api/internal/db"
	"github.com/rajivgeraev/bookswap-api/internal/models"
	"github.com/rajivgeraev/bookswap-api/internal/utils"
)

// Ключи и время жизни кэша каталога
const (
	cacheKeyAllBooks = "books:all"
	cacheKeyBook     = "books:"
	cacheTTL         = 5 * time.Minute
)

// BookService представляет сервис каталога книг
type BookService struct {
	cfg        *config.Config
	jwtService *utils.JWTService
	books      db.BookRepository
	cache      *cache.Cache
}

// NewBookService создает новый экземпляр BookService. Кэш может быть
// nil — тогда все запросы идут напрямую в базу данных.
func NewBookService(cfg *config.Config, books db.BookRepository, bookCache *cache.Cache) *BookService {
	return &BookService{
		cfg:        cfg,
		jwtService: utils.NewJWTService(cfg.JWTSecret),
		books:      books,
		cache:      bookCache,
	}
}

// ListBooks возвращает весь каталог книг
func (s *BookService) ListBooks(c fiber.Ctx) error {
	ctx, cancel := db.GetContext()
	defer cancel()

	// Сначала пробуем кэш
	if s.cache != nil {
		if cached := s.cache.Get(ctx, cacheKeyAllBooks); cached != "" {
			c.Set("Content-Type", "application/json")
			return c.SendString(cached)
		}
	}

	books, err := s.books.List(ctx)
	if err != nil {
		log.Printf("Ошибка запроса каталога: %v", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Хранилище временно недоступно"})
	}

	// Кладем результат в кэш
	if s.cache != nil {
		if data, err := json.Marshal(books); err == nil {
			s.cache.Set(ctx, cacheKeyAllBooks, string(data), cacheTTL)
		}
	}

	return c.JSON(books)
}

// GetBook возвращает книгу по ID
func (s *BookService) GetBook(c fiber.Ctx) error {
	bookID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат ID книги"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	if s.cache != nil {
		if cached := s.cache.Get(ctx, cacheKeyBook+bookID.String()); cached != "" {
			c.Set("Content-Type", "application/json")
			return c.SendString(cached)
		}
	}

	book, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Книга не найдена"})
		}
		log.Printf("Ошибка запроса книги: %v", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Хранилище временно недоступно"})
	}

	if s.cache != nil {
		if data, err := json.Marshal(book); err == nil {
			s.cache.Set(ctx, cacheKeyBook+bookID.String(), string(data), cacheTTL)
		}
	}

	return c.JSON(book)
}

// CreateBook добавляет книгу в каталог. Владельцем становится
// авторизованный пользователь.
func (s *BookService) CreateBook(c fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат ID пользователя"})
	}

	var payload struct {
		Title         string   `json:"title"`
		Author        string   `json:"author"`
		Cover         string   `json:"cover"`
		ISBN          string   `json:"isbn"`
		Description   string   `json:"description"`
		PageCount     int      `json:"page_count"`
		Genre         []string `json:"genre"`
		PublishedDate string   `json:"published_date"`
		Condition     string   `json:"condition"`
	}

	if err := c.Bind().Body(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат данных"})
	}

	if payload.Title == "" || payload.Author == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Необходимо указать название и автора книги"})
	}

	if payload.Condition == "" {
		payload.Condition = "Good"
	}
	if !models.IsValidCondition(payload.Condition) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Недопустимое состояние книги"})
	}

	if payload.Genre == nil {
		payload.Genre = []string{}
	}

	book := &models.Book{
		Title:         payload.Title,
		Author:        payload.Author,
		Cover:         payload.Cover,
		ISBN:          payload.ISBN,
		Description:   payload.Description,
		PageCount:     payload.PageCount,
		Genre:         payload.Genre,
		PublishedDate: payload.PublishedDate,
		Condition:     payload.Condition,
		OwnerID:       ownerID,
		Available:     true,
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	if err := s.books.Create(ctx, book); err != nil {
		log.Printf("Ошибка создания книги: %v", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Хранилище временно недоступно"})
	}

	// Сбрасываем кэш каталога
	if s.cache != nil {
		s.cache.Delete(ctx, cacheKeyAllBooks)
	}

	return c.Status(fiber.StatusCreated).JSON(book)
}
