package utils

import (
	"strings"
	"testing"
)

func TestPasswordHashAndCheck(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("хеширование пароля: %v", err)
	}

	if hash == "secret123" {
		t.Fatal("пароль не должен храниться открытым текстом")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("ожидался bcrypt-хеш, получено %q", hash)
	}

	if !CheckPassword(hash, "secret123") {
		t.Error("верный пароль должен проходить проверку")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("неверный пароль не должен проходить проверку")
	}
}

func TestPasswordHashesDiffer(t *testing.T) {
	first, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("хеширование пароля: %v", err)
	}
	second, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("хеширование пароля: %v", err)
	}

	// Соль случайная, хеши одинаковых паролей различаются
	if first == second {
		t.Error("хеши с разной солью не должны совпадать")
	}
}
