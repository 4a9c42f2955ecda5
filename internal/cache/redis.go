package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KiraMuss/AndersonStudio/config"
	"github.com/KiraMuss/AndersonStudio/internal/domain"
)

// RedisCache keeps the per-date booked-label lists with a short TTL. Entries
// are invalidated on every write for the date so the availability grid never
// serves a slot that was just taken for longer than the TTL.
type RedisCache struct {
	client    *redis.Client
	bookedTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, bookedTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:    redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		bookedTTL: bookedTTL,
	}
}

// GetBookedLabels returns the cached labels for a date, or (nil, nil) on a
// cache miss.
func (c *RedisCache) GetBookedLabels(ctx context.Context, date time.Time) ([]string, error) {
	data, err := c.client.Get(ctx, bookedKey(date)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var labels []string
	if err := json.Unmarshal(data, &labels); err != nil {
		return nil, err
	}
	return labels, nil
}

func (c *RedisCache) SetBookedLabels(ctx context.Context, date time.Time, labels []string) error {
	if labels == nil {
		labels = []string{}
	}
	payload, err := json.Marshal(labels)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, bookedKey(date), payload, c.bookedTTL).Err()
}

// InvalidateDate drops the cached list after a booking lands or is cancelled.
func (c *RedisCache) InvalidateDate(ctx context.Context, date time.Time) error {
	return c.client.Del(ctx, bookedKey(date)).Err()
}

func bookedKey(date time.Time) string {
	return fmt.Sprintf("cache:booked:%s", date.Format(domain.DateLayout))
}
