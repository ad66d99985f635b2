package trade

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/rajivgeraev/bookswap-api/internal/config"
	"github.com/rajivgeraev/bookswap-api/internal/db"
	"github.com/rajivgeraev/bookswap-api/internal/models"
	"github.com/rajivgeraev/bookswap-api/internal/utils"
)

// TradeService представляет сервис заявок на обмен книгами
type TradeService struct {
	cfg        *config.Config
	jwtService *utils.JWTService
	trades     db.TradeRepository
	books      db.BookRepository
	users      db.UserRepository
}

// NewTradeService создает новый экземпляр TradeService
func NewTradeService(cfg *config.Config, trades db.TradeRepository, books db.BookRepository, users db.UserRepository) *TradeService {
	return &TradeService{
		cfg:        cfg,
		jwtService: utils.NewJWTService(cfg.JWTSecret),
		trades:     trades,
		books:      books,
		users:      users,
	}
}

// createTradeRequestInput — тело запроса на создание заявки. Клиент
// передает только идентификаторы: снимки полей книги и участников
// сервис снимает сам на момент создания.
type createTradeRequestInput struct {
	BookRequestedID string `json:"book_requested_id"`
	BookOfferedID   string `json:"book_offered_id"`
	Message         string `json:"message"`
}

// createTradeRequest создает заявку на обмен от имени requesterID.
// Проверки выполняются на уровне сервиса, а не клиента: нельзя
// запросить собственную или недоступную книгу, предлагать можно только
// свою доступную книгу.
func (s *TradeService) createTradeRequest(ctx context.Context, requesterID uuid.UUID, input createTradeRequestInput) (*models.TradeRequest, error) {
	if input.BookRequestedID == "" {
		return nil, fmt.Errorf("%w: не указана запрашиваемая книга", models.ErrValidation)
	}

	bookRequestedID, err := uuid.Parse(input.BookRequestedID)
	if err != nil {
		return nil, fmt.Errorf("%w: неверный формат ID запрашиваемой книги", models.ErrValidation)
	}

	// Запрашиваемая книга должна существовать и быть доступной
	bookRequested, err := s.books.GetByID(ctx, bookRequestedID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("%w: запрашиваемая книга не найдена", models.ErrNotFound)
		}
		return nil, err
	}
	if !bookRequested.Available {
		return nil, fmt.Errorf("%w: книга недоступна для обмена", models.ErrValidation)
	}

	// Нельзя запросить собственную книгу
	if bookRequested.OwnerID == requesterID {
		return nil, fmt.Errorf("%w: нельзя запросить собственную книгу", models.ErrValidation)
	}

	requester, err := s.users.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	owner, err := s.users.GetByID(ctx, bookRequested.OwnerID)
	if err != nil {
		return nil, err
	}

	trade := &models.TradeRequest{
		RequesterID:        requester.ID,
		RequesterName:      requester.Name,
		RequesterAvatar:    requester.Avatar,
		OwnerID:            owner.ID,
		OwnerName:          owner.Name,
		OwnerAvatar:        owner.Avatar,
		BookRequestedID:    bookRequested.ID,
		BookRequestedTitle: bookRequested.Title,
		BookRequestedCover: bookRequested.Cover,
		AuthorRequested:    bookRequested.Author,
		ISBNRequested:      bookRequested.ISBN,
		Message:            input.Message,
	}

	// Встречная книга указывается опционально: без нее заявка считается
	// прямым запросом
	if input.BookOfferedID != "" {
		bookOfferedID, err := uuid.Parse(input.BookOfferedID)
		if err != nil {
			return nil, fmt.Errorf("%w: неверный формат ID предлагаемой книги", models.ErrValidation)
		}

		bookOffered, err := s.books.GetByID(ctx, bookOfferedID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return nil, fmt.Errorf("%w: предлагаемая книга не найдена", models.ErrNotFound)
			}
			return nil, err
		}
		if bookOffered.OwnerID != requesterID {
			return nil, fmt.Errorf("%w: нельзя предложить чужую книгу для обмена", models.ErrForbidden)
		}
		if !bookOffered.Available {
			return nil, fmt.Errorf("%w: предлагаемая книга недоступна для обмена", models.ErrValidation)
		}

		trade.BookOfferedID = &bookOffered.ID
		trade.BookOfferedTitle = bookOffered.Title
		trade.BookOfferedCover = bookOffered.Cover
		trade.AuthorOffered = bookOffered.Author
		trade.ISBNOffered = bookOffered.ISBN
	}

	// Ошибка хранилища возвращается вызывающему как есть: никаких
	// сфабрикованных локальных заявок вместо записи
	if err := s.trades.Create(ctx, trade); err != nil {
		return nil, err
	}

	return trade, nil
}

// listTradeRequests возвращает заявки пользователя по роли и статусу
func (s *TradeService) listTradeRequests(ctx context.Context, userID uuid.UUID, role, status string) ([]models.TradeRequest, error) {
	switch role {
	case models.TradeRoleIncoming, models.TradeRoleOutgoing, models.TradeRoleAll, "":
	default:
		return nil, fmt.Errorf("%w: недопустимый тип выборки", models.ErrValidation)
	}

	if status != "" && status != "all" && !models.IsValidTradeStatus(status) {
		return nil, fmt.Errorf("%w: недопустимый статус", models.ErrValidation)
	}

	return s.trades.ListByParticipant(ctx, userID, role, status)
}

// transitionTradeRequest переводит заявку из pending в accepted или
// rejected. Принять или отклонить заявку может только владелец
// запрошенной книги; статусы accepted и rejected конечные.
func (s *TradeService) transitionTradeRequest(ctx context.Context, callerID, tradeID uuid.UUID, status string) (*models.TradeRequest, error) {
	if status != models.TradeStatusAccepted && status != models.TradeStatusRejected {
		return nil, fmt.Errorf("%w: недопустимый целевой статус", models.ErrValidation)
	}

	trade, err := s.trades.GetByID(ctx, tradeID)
	if err != nil {
		return nil, err
	}

	if trade.OwnerID != callerID {
		return nil, fmt.Errorf("%w: только владелец книги может принять или отклонить заявку", models.ErrForbidden)
	}

	if !models.CanTransitionTrade(trade.Status, status) {
		return nil, fmt.Errorf("%w: заявка уже находится в статусе %s", models.ErrConflict, trade.Status)
	}

	// Compare-and-swap по условию pending: параллельное повторное
	// действие не пройдет
	ok, err := s.trades.UpdateStatusIfPending(ctx, tradeID, status)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: заявка уже обработана", models.ErrConflict)
	}

	trade.Status = status
	return trade, nil
}

// CreateTradeRequest — HTTP-обработчик создания заявки на обмен
func (s *TradeService) CreateTradeRequest(c fiber.Ctx) error {
	requesterID, err := callerID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат ID пользователя"})
	}

	var input createTradeRequestInput
	if err := c.Bind().Body(&input); err != nil {
		log.Printf("Ошибка декодирования тела запроса: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат данных"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	trade, err := s.createTradeRequest(ctx, requesterID, input)
	if err != nil {
		return respondTradeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(trade)
}

// ListTradeRequests — HTTP-обработчик списка заявок текущего пользователя
func (s *TradeService) ListTradeRequests(c fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат ID пользователя"})
	}

	role := c.Query("type", models.TradeRoleAll)
	status := c.Query("status", "all")

	ctx, cancel := db.GetContext()
	defer cancel()

	trades, err := s.listTradeRequests(ctx, userID, role, status)
	if err != nil {
		return respondTradeError(c, err)
	}

	return c.JSON(fiber.Map{
		"trade_requests": trades,
		"count":          len(trades),
	})
}

// UpdateTradeRequestStatus — HTTP-обработчик принятия или отклонения заявки
func (s *TradeService) UpdateTradeRequestStatus(c fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат ID пользователя"})
	}

	tradeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат ID заявки"})
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := c.Bind().Body(&payload); err != nil {
		log.Printf("Ошибка декодирования тела запроса: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат данных"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	trade, err := s.transitionTradeRequest(ctx, userID, tradeID, payload.Status)
	if err != nil {
		return respondTradeError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"trade_id": trade.ID,
		"status":   trade.Status,
	})
}

// callerID извлекает UUID авторизованного пользователя из контекста
func callerID(c fiber.Ctx) (uuid.UUID, error) {
	userID, _ := c.Locals("userID").(string)
	return uuid.Parse(userID)
}

// respondTradeError преобразует ошибку сервиса в HTTP-ответ
func respondTradeError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, models.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, models.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, models.ErrStorage):
		log.Printf("Ошибка хранилища: %v", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Хранилище временно недоступно"})
	default:
		log.Printf("Внутренняя ошибка: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Внутренняя ошибка сервера"})
	}
}
