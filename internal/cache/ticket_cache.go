// Package cache holds a small Redis read-through cache for the public ticket
// list. The list is hit by every visitor while changing only on sales and
// admin edits, so a short TTL plus explicit invalidation keeps it honest.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/academic-forum/forum-tickets/internal/models"
	"github.com/redis/go-redis/v9"
)

const activeTicketsKey = "tickets:active"

// TicketCache is nil-safe: a nil *TicketCache behaves as a permanent miss,
// so the service runs unchanged without Redis.
type TicketCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewTicketCache(rdb *redis.Client, ttl time.Duration) *TicketCache {
	return &TicketCache{rdb: rdb, ttl: ttl}
}

func (c *TicketCache) GetActive(ctx context.Context) ([]models.TicketType, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, activeTicketsKey).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[TicketCache] get: %v", err)
		}
		return nil, false
	}

	var tickets []models.TicketType
	if err := json.Unmarshal([]byte(raw), &tickets); err != nil {
		log.Printf("[TicketCache] corrupt entry, dropping: %v", err)
		c.Invalidate(ctx)
		return nil, false
	}
	return tickets, true
}

func (c *TicketCache) SetActive(ctx context.Context, tickets []models.TicketType) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(tickets)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, activeTicketsKey, raw, c.ttl).Err(); err != nil {
		log.Printf("[TicketCache] set: %v", err)
	}
}

func (c *TicketCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.rdb.Del(ctx, activeTicketsKey).Err(); err != nil {
		log.Printf("[TicketCache] invalidate: %v", err)
	}
}
