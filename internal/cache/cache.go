package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/trimlyapp/trimly-api/internal/config"
)

// TTL curto: a disponibilidade muda a cada agendamento, o cache só
// amortece rajadas do portal público.
const slotsTTL = 60 * time.Second

type Cache struct {
	rdb *redis.Client
}

func New(cfg *config.Config) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	return &Cache{rdb: rdb}
}

func slotsKey(companyID, userID uint, date string) string {
	return fmt.Sprintf("slots:%d:%d:%s", companyID, userID, date)
}

func (c *Cache) GetSlots(ctx context.Context, companyID, userID uint, date string) ([]string, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, slotsKey(companyID, userID, date)).Result()
	if err != nil {
		return nil, false
	}

	var slots []string
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *Cache) SetSlots(ctx context.Context, companyID, userID uint, date string, slots []string) {
	if c == nil || c.rdb == nil {
		return
	}

	b, err := json.Marshal(slots)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, slotsKey(companyID, userID, date), b, slotsTTL)
}

func (c *Cache) InvalidateSlots(ctx context.Context, companyID, userID uint, date string) {
	if c == nil || c.rdb == nil {
		return
	}
	c.rdb.Del(ctx, slotsKey(companyID, userID, date))
}
