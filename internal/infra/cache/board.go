package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const opTimeout = 2 * time.Second

// BoardCache кеширует собранные ответы доски в Redis.
// Ключ - бизнес-дата YYYY-MM-DD; значение - сериализованный ответ.
type BoardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New создает кеш доски и проверяет соединение с Redis.
func New(addr, password string, db int, ttl time.Duration) (*BoardCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &BoardCache{client: client, ttl: ttl}, nil
}

// Close закрывает соединение с Redis.
func (c *BoardCache) Close() error {
	return c.client.Close()
}

func boardKey(date string) string {
	return "board:" + date
}

// Get возвращает закешированный ответ доски на дату.
// Второй результат - признак попадания.
func (c *BoardCache) Get(ctx context.Context, date string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	val, err := c.client.Get(ctx, boardKey(date)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get board from cache: %w", err)
	}

	return val, true, nil
}

// Set сохраняет ответ доски на дату с TTL кеша.
func (c *BoardCache) Set(ctx context.Context, date, payload string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := c.client.Set(ctx, boardKey(date), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("set board to cache: %w", err)
	}

	return nil
}

// Invalidate сбрасывает кеш для перечисленных дат.
// Вызывается после любой мутации доски: размещения, переноса, удаления,
// смены оплаты.
func (c *BoardCache) Invalidate(ctx context.Context, dates ...string) error {
	if len(dates) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	keys := make([]string, 0, len(dates))
	for _, date := range dates {
		keys = append(keys, boardKey(date))
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("invalidate board cache: %w", err)
	}

	return nil
}

// InvalidateAll сбрасывает кеш доски на все даты. Используется при смене
// конфигурации сетки и при перекате рабочего дня.
func (c *BoardCache) InvalidateAll(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	iter := c.client.Scan(ctx, 0, boardKey("*"), 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan board cache keys: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("invalidate board cache: %w", err)
	}

	return nil
}
