package message

import (
	"github.com/gofiber/fiber/v3"
	"github.com/rajivgeraev/bookswap-api/internal/middleware"
)

// SetupRoutes настраивает маршруты для API сообщений
func (s *MessageService) SetupRoutes(app *fiber.App) {
	api := app.Group("/api/messages")

	// Все маршруты требуют авторизации
	api.Use(middleware.AuthMiddleware(s.jwtService))

	// Маршрут для отправки сообщения
	api.Post("/", s.SendMessage)

	// Маршрут для получения переписки
	api.Get("/", s.ListMessages)

	// Маршрут для отметки о прочтении
	api.Post("/:id/read", s.MarkMessageRead)
}
