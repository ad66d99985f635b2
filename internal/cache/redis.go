package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rajivgeraev/bookswap-api/internal/config"
)

// Cache представляет Redis-кэш для каталога книг
type Cache struct {
	client *redis.Client
}

// NewCache создает подключение к Redis. Кэш не является обязательным:
// при недоступном Redis сервис работает напрямую с базой данных.
func NewCache(cfg *config.Config) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisConfig.Host, cfg.RedisConfig.Port),
		Password: cfg.RedisConfig.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("ошибка подключения к Redis: %w", err)
	}

	log.Println("✅ Успешное подключение к Redis")
	return &Cache{client: client}, nil
}

// Get возвращает значение по ключу. Пустая строка — промах кэша.
func (c *Cache) Get(ctx context.Context, key string) string {
	value, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Ошибка чтения из кэша %s: %v", key, err)
		}
		return ""
	}
	return value
}

// Set сохраняет значение с временем жизни
func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Printf("Ошибка записи в кэш %s: %v", key, err)
	}
}

// Delete удаляет ключи из кэша
func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("Ошибка удаления из кэша: %v", err)
	}
}

// Close закрывает соединение с Redis
func (c *Cache) Close() error {
	return c.client.Close()
}
