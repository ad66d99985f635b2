package book

import (
	"github.com/gofiber/fiber/v3"
	"github.com/rajivgeraev/bookswap-api/internal/middleware"
)

// SetupRoutes настраивает маршруты для API каталога книг
func (s *BookService) SetupRoutes(app *fiber.App) {
	api := app.Group("/api/books")

	// Публичные маршруты
	api.Get("/", s.ListBooks)
	api.Get("/:id", s.GetBook)

	// Защищенные маршруты
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(s.jwtService))
	protected.Post("/", s.CreateBook)
}
