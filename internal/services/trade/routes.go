package trade

import (
	"github.com/gofiber/fiber/v3"
	"github.com/rajivgeraev/bookswap-api/internal/middleware"
)

// SetupRoutes настраивает маршруты для API заявок на обмен. Пути
// совпадают с таблицей trade_requests клиентского слоя персистентности.
func (s *TradeService) SetupRoutes(app *fiber.App) {
	api := app.Group("/trade_requests")

	// Все маршруты требуют авторизации
	api.Use(middleware.AuthMiddleware(s.jwtService))

	// Маршрут для создания заявки на обмен
	api.Post("/", s.CreateTradeRequest)

	// Маршрут для получения списка заявок
	api.Get("/", s.ListTradeRequests)

	// Маршрут для принятия или отклонения заявки
	api.Patch("/:id", s.UpdateTradeRequestStatus)
}
