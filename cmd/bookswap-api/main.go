package main

import (
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/rajivgeraev/bookswap-api/internal/cache"
	"github.com/rajivgeraev/bookswap-api/internal/config"
	"github.com/rajivgeraev/bookswap-api/internal/db"
	"github.com/rajivgeraev/bookswap-api/internal/services/auth"
	"github.com/rajivgeraev/bookswap-api/internal/services/book"
	"github.com/rajivgeraev/bookswap-api/internal/services/cloudinary"
	"github.com/rajivgeraev/bookswap-api/internal/services/message"
	"github.com/rajivgeraev/bookswap-api/internal/services/trade"
)

func main() {
	// Загружаем конфигурацию
	cfg := config.LoadConfig()

	// Инициализируем базу данных
	if err := db.InitDB(cfg); err != nil {
		log.Fatalf("❌ Ошибка при инициализации базы данных: %v", err)
	}
	defer db.CloseDB()

	// Подключаем кэш каталога. Redis не обязателен: без него каталог
	// читается напрямую из базы
	bookCache, err := cache.NewCache(cfg)
	if err != nil {
		log.Printf("⚠️ Redis недоступен, каталог работает без кэша: %v", err)
		bookCache = nil
	} else {
		defer bookCache.Close()
	}

	// Создаём экземпляр Fiber
	app := fiber.New(fiber.Config{
		AppName:      "BookSwap API",
		ErrorHandler: errorHandler,
	})

	// Добавляем middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowCredentials: false,
	}))

	// Создаём репозитории
	userRepo := db.NewUserRepository(db.Pool)
	bookRepo := db.NewBookRepository(db.Pool)
	tradeRepo := db.NewTradeRepository(db.Pool)
	messageRepo := db.NewMessageRepository(db.Pool)

	// Создаём сервисы
	authService := auth.NewAuthService(cfg, userRepo)
	bookService := book.NewBookService(cfg, bookRepo, bookCache)
	tradeService := trade.NewTradeService(cfg, tradeRepo, bookRepo, userRepo)
	messageService := message.NewMessageService(cfg, messageRepo, userRepo)
	cloudinaryService := cloudinary.NewCloudinaryService(cfg)

	// Регистрируем маршруты
	authService.SetupRoutes(app)
	bookService.SetupRoutes(app)
	tradeService.SetupRoutes(app)
	messageService.SetupRoutes(app)
	cloudinaryService.SetupRoutes(app)

	// Запускаем сервер
	log.Printf("✅ BookSwap API запущен на порту %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}

// errorHandler обрабатывает ошибки Fiber
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	// Проверяем, является ли ошибка из Fiber
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	// Отправляем ошибку в JSON
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
