package utils

import (
	"testing"

	"github.com/google/uuid"
)

func TestJWTRoundTrip(t *testing.T) {
	service := NewJWTService("test-secret")
	userID := uuid.New().String()

	token, err := service.GenerateToken(userID)
	if err != nil {
		t.Fatalf("генерация токена: %v", err)
	}

	extracted, err := service.ExtractUserID(token)
	if err != nil {
		t.Fatalf("извлечение user_id: %v", err)
	}
	if extracted != userID {
		t.Errorf("user_id = %q, ожидался %q", extracted, userID)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	service := NewJWTService("test-secret")
	other := NewJWTService("other-secret")

	token, err := service.GenerateToken(uuid.New().String())
	if err != nil {
		t.Fatalf("генерация токена: %v", err)
	}

	if _, err := other.ExtractUserID(token); err == nil {
		t.Error("токен с чужим секретом должен быть отклонен")
	}
}

func TestJWTGarbage(t *testing.T) {
	service := NewJWTService("test-secret")

	if _, err := service.ExtractUserID("not-a-token"); err == nil {
		t.Error("мусорная строка должна быть отклонена")
	}
}
