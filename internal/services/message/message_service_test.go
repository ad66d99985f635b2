package message

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rajivgeraev/bookswap-api/internal/config"
	"github.com/rajivgeraev/bookswap-api/internal/models"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*models.User
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = uuid.New()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, models.ErrNotFound
}

type fakeMessageRepo struct {
	messages  []*models.Message
	markCalls int
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *models.Message) error {
	message.ID = uuid.New()
	message.Read = false
	message.CreatedAt = time.Now()

	copied := *message
	r.messages = append(r.messages, &copied)
	return nil
}

func (r *fakeMessageRepo) ListByParticipant(ctx context.Context, userID uuid.UUID) ([]models.Message, error) {
	result := []models.Message{}
	for _, message := range r.messages {
		if message.SenderID == userID || message.RecipientID == userID {
			result = append(result, *message)
		}
	}
	return result, nil
}

func (r *fakeMessageRepo) MarkRead(ctx context.Context, messageID, recipientID uuid.UUID) error {
	r.markCalls++
	for _, message := range r.messages {
		if message.ID == messageID && message.RecipientID == recipientID && !message.Read {
			message.Read = true
		}
	}
	return nil
}

func newMessageTestEnv(t *testing.T) (*MessageService, *fakeMessageRepo, uuid.UUID, uuid.UUID) {
	t.Helper()

	users := &fakeUserRepo{users: map[uuid.UUID]*models.User{}}
	messages := &fakeMessageRepo{}
	ctx := context.Background()

	sender := &models.User{Name: "Alice", Email: "alice@example.com", Avatar: models.DefaultAvatar}
	recipient := &models.User{Name: "Bob", Email: "bob@example.com", Avatar: models.DefaultAvatar}
	if err := users.Create(ctx, sender); err != nil {
		t.Fatalf("создание отправителя: %v", err)
	}
	if err := users.Create(ctx, recipient); err != nil {
		t.Fatalf("создание получателя: %v", err)
	}

	cfg := &config.Config{JWTSecret: "test-secret"}
	service := NewMessageService(cfg, messages, users)
	return service, messages, sender.ID, recipient.ID
}

func TestSendMessage(t *testing.T) {
	service, _, senderID, recipientID := newMessageTestEnv(t)

	message, err := service.sendMessage(context.Background(), senderID, sendMessageInput{
		RecipientID: recipientID.String(),
		Content:     "Привет! Книга еще доступна?",
	})
	if err != nil {
		t.Fatalf("отправка сообщения: %v", err)
	}

	if message.ID == uuid.Nil {
		t.Error("ID сообщения должен быть присвоен")
	}
	if message.Read {
		t.Error("новое сообщение не должно быть прочитанным")
	}
	if message.CreatedAt.IsZero() {
		t.Error("время сообщения должно быть присвоено")
	}
	if message.SenderName != "Alice" {
		t.Errorf("снимок имени отправителя = %q", message.SenderName)
	}
}

func TestSendMessageValidation(t *testing.T) {
	service, _, senderID, recipientID := newMessageTestEnv(t)
	ctx := context.Background()

	// Пустое сообщение
	_, err := service.sendMessage(ctx, senderID, sendMessageInput{RecipientID: recipientID.String()})
	if !errors.Is(err, models.ErrValidation) {
		t.Fatalf("ожидался ErrValidation, получен %v", err)
	}

	// Сообщение самому себе
	_, err = service.sendMessage(ctx, senderID, sendMessageInput{
		RecipientID: senderID.String(),
		Content:     "привет",
	})
	if !errors.Is(err, models.ErrValidation) {
		t.Fatalf("ожидался ErrValidation, получен %v", err)
	}

	// Несуществующий получатель
	_, err = service.sendMessage(ctx, senderID, sendMessageInput{
		RecipientID: uuid.New().String(),
		Content:     "привет",
	})
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("ожидался ErrNotFound, получен %v", err)
	}
}

func TestMarkReadIdempotent(t *testing.T) {
	service, messages, senderID, recipientID := newMessageTestEnv(t)
	ctx := context.Background()

	message, err := service.sendMessage(ctx, senderID, sendMessageInput{
		RecipientID: recipientID.String(),
		Content:     "привет",
	})
	if err != nil {
		t.Fatalf("отправка сообщения: %v", err)
	}

	// Первая отметка помечает сообщение прочитанным
	if err := messages.MarkRead(ctx, message.ID, recipientID); err != nil {
		t.Fatalf("первая отметка: %v", err)
	}
	if !messages.messages[0].Read {
		t.Fatal("сообщение должно быть прочитанным")
	}

	// Повторная отметка — no-op без ошибки
	if err := messages.MarkRead(ctx, message.ID, recipientID); err != nil {
		t.Fatalf("повторная отметка: %v", err)
	}
	if !messages.messages[0].Read {
		t.Fatal("состояние не должно меняться при повторной отметке")
	}

	// Неизвестный ID — тоже no-op без ошибки
	if err := messages.MarkRead(ctx, uuid.New(), recipientID); err != nil {
		t.Fatalf("отметка неизвестного сообщения: %v", err)
	}
}

func TestMarkReadOnlyRecipient(t *testing.T) {
	service, messages, senderID, recipientID := newMessageTestEnv(t)
	ctx := context.Background()

	message, err := service.sendMessage(ctx, senderID, sendMessageInput{
		RecipientID: recipientID.String(),
		Content:     "привет",
	})
	if err != nil {
		t.Fatalf("отправка сообщения: %v", err)
	}

	// Отправитель не может пометить сообщение прочитанным
	if err := messages.MarkRead(ctx, message.ID, senderID); err != nil {
		t.Fatalf("отметка отправителем: %v", err)
	}
	if messages.messages[0].Read {
		t.Fatal("флаг read меняется только у получателя")
	}
}
