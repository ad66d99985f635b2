package auth

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/rajivgeraev/bookswap-api/internal/config"
	"github.com/rajivgeraev/bookswap-api/internal/db"
	"github.com/rajivgeraev/bookswap-api/internal/models"
	"github.com/rajivgeraev/bookswap-api/internal/utils"
)

// AuthService – структура для обработки регистрации и входа
type AuthService struct {
	cfg        *config.Config
	jwtService *utils.JWTService
	users      db.UserRepository
}

// NewAuthService – конструктор AuthService
func NewAuthService(cfg *config.Config, users db.UserRepository) *AuthService {
	return &AuthService{
		cfg:        cfg,
		jwtService: utils.NewJWTService(cfg.JWTSecret),
		users:      users,
	}
}

// GetJWTService возвращает JWT сервис для настройки middleware
func (s *AuthService) GetJWTService() *utils.JWTService {
	return s.jwtService
}

// Register регистрирует нового пользователя и возвращает токен
func (s *AuthService) Register(c fiber.Ctx) error {
	var payload struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.Bind().Body(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат данных"})
	}

	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))
	if payload.Name == "" || payload.Email == "" || payload.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Необходимо указать имя, email и пароль"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	// Проверяем, не занят ли email
	_, err := s.users.GetByEmail(ctx, payload.Email)
	if err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Пользователь с таким email уже существует"})
	}
	if !errors.Is(err, models.ErrNotFound) {
		log.Printf("Ошибка проверки email: %v", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Хранилище временно недоступно"})
	}

	// Хешируем пароль
	passwordHash, err := utils.HashPassword(payload.Password)
	if err != nil {
		log.Printf("Ошибка хеширования пароля: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Ошибка при регистрации"})
	}

	user := &models.User{
		Name:         payload.Name,
		Email:        payload.Email,
		PasswordHash: passwordHash,
		Avatar:       models.DefaultAvatar,
		Credits:      models.DefaultCredits,
		Rating:       models.DefaultRating,
	}

	if err := s.users.Create(ctx, user); err != nil {
		log.Printf("Ошибка создания пользователя: %v", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Хранилище временно недоступно"})
	}

	// Генерируем JWT
	token, err := s.jwtService.GenerateToken(user.ID.String())
	if err != nil {
		log.Printf("Ошибка генерации токена: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Ошибка при генерации токена"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":  user,
		"token": token,
	})
}

// Login выполняет вход по email и паролю
func (s *AuthService) Login(c fiber.Ctx) error {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.Bind().Body(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат данных"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(payload.Email)))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			// Не раскрываем, существует ли email
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверные учетные данные"})
		}
		log.Printf("Ошибка запроса пользователя: %v", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Хранилище временно недоступно"})
	}

	if !utils.CheckPassword(user.PasswordHash, payload.Password) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверные учетные данные"})
	}

	token, err := s.jwtService.GenerateToken(user.ID.String())
	if err != nil {
		log.Printf("Ошибка генерации токена: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Ошибка при генерации токена"})
	}

	return c.JSON(fiber.Map{
		"user":  user,
		"token": token,
	})
}

// Me возвращает профиль текущего пользователя
func (s *AuthService) Me(c fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат ID пользователя"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	user, err := s.users.GetByID(ctx, userUUID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Пользователь не найден"})
		}
		log.Printf("Ошибка запроса пользователя: %v", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Хранилище временно недоступно"})
	}

	return c.JSON(user)
}
