package message

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

// MessageService представляет сервис личных сообщений
type MessageService struct {
	cfg        *config.Config
	jwtService *utils.JWTService
	messages   db.MessageRepository
	users      db.UserRepository
}

// NewMessageService создает новый экземпляр MessageService
func NewMessageService(cfg *config.Config, messages db.MessageRepository, users db.UserRepository) *MessageService {
	return &MessageService{
		cfg:        cfg,
		jwtService: utils.NewJWTService(cfg.JWTSecret),
		messages:   messages,
		users:      users,
	}
}

type sendMessageInput struct {
	RecipientID    string `json:"recipient_id"`
	Content        string `json:"content"`
	TradeRequestID string `json:"trade_request_id"`
}

// sendMessage создает сообщение от имени senderID. Получатель должен
// существовать; флаг read всегда false, время присваивается сервером.
func (s *MessageService) sendMessage(ctx context.Context, senderID uuid.UUID, input sendMessageInput) (*models.Message, error) {
	if input.Content == "" {
		return nil, fmt.Errorf("%w: пустое сообщение", models.ErrValidation)
	}
	if input.RecipientID == "" {
		return nil, fmt.Errorf("%w: не указан получатель", models.ErrValidation)
	}

	recipientID, err := uuid.Parse(input.RecipientID)
	if err != nil {
		return nil, fmt.Errorf("%w: неверный формат ID получателя", models.ErrValidation)
	}
	if recipientID == senderID {
		return nil, fmt.Errorf("%w: нельзя отправить сообщение самому себе", models.ErrValidation)
	}

	sender, err := s.users.GetByID(ctx, senderID)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.GetByID(ctx, recipientID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("%w: получатель не найден", models.ErrNotFound)
		}
		return nil, err
	}

	message := &models.Message{
		SenderID:     sender.ID,
		SenderName:   sender.Name,
		SenderAvatar: sender.Avatar,
		RecipientID:  recipientID,
		Content:      input.Content,
	}

	if input.TradeRequestID != "" {
		tradeRequestID, err := uuid.Parse(input.TradeRequestID)
		if err != nil {
			return nil, fmt.Errorf("%w: неверный формат ID заявки", models.ErrValidation)
		}
		message.TradeRequestID = &tradeRequestID
	}

	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}

	return message, nil
}

// SendMessage — HTTP-обработчик отправки сообщения
func (s *MessageService) SendMessage(c fiber.Ctx) error {
	senderID, err := callerID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат ID пользователя"})
	}

	var input sendMessageInput
	if err := c.Bind().Body(&input); err != nil {
		log.Printf("Ошибка декодирования тела запроса: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат данных"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	message, err := s.sendMessage(ctx, senderID, input)
	if err != nil {
		return respondMessageError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(message)
}

// ListMessages — HTTP-обработчик переписки текущего пользователя
func (s *MessageService) ListMessages(c fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат ID пользователя"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	messages, err := s.messages.ListByParticipant(ctx, userID)
	if err != nil {
		return respondMessageError(c, err)
	}

	return c.JSON(fiber.Map{
		"messages": messages,
		"count":    len(messages),
	})
}

// MarkMessageRead — HTTP-обработчик отметки о прочтении. Операция
// идемпотентна: повторная отметка или неизвестный ID не считаются
// ошибкой.
func (s *MessageService) MarkMessageRead(c fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат ID пользователя"})
	}

	messageID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат ID сообщения"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	if err := s.messages.MarkRead(ctx, messageID, userID); err != nil {
		return respondMessageError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// callerID извлекает UUID авторизованного пользователя из контекста
func callerID(c fiber.Ctx) (uuid.UUID, error) {
	userID, _ := c.Locals("userID").(string)
	return uuid.Parse(userID)
}

// respondMessageError преобразует ошибку сервиса в HTTP-ответ
func respondMessageError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, models.ErrStorage):
		log.Printf("Ошибка хранилища: %v", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Хранилище временно недоступно"})
	default:
		log.Printf("Внутренняя ошибка: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Внутренняя ошибка сервера"})
	}
}
