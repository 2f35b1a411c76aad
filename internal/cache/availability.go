package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/glowdesk/salon-scheduler/internal/config"
	"github.com/glowdesk/salon-scheduler/internal/domain/schedule"
)

const availabilityTTL = 60 * time.Second

// AvailabilityCache guarda o resultado do cálculo de horários por
// (profissional, dia, serviço). Last-write-wins por chave; qualquer escrita
// de agendamento invalida o dia inteiro do profissional.
//
// Um cache nil é válido e vira no-op: a API funciona sem Redis.
type AvailabilityCache struct {
	rdb *redis.Client
}

func New(cfg *config.Config) *AvailabilityCache {
	if cfg.RedisAddr == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	return &AvailabilityCache{rdb: rdb}
}

func key(staffID uint, date string, serviceID uint) string {
	return fmt.Sprintf("availability:%d:%s:%d", staffID, date, serviceID)
}

func dayPattern(staffID uint, date string) string {
	return fmt.Sprintf("availability:%d:%s:*", staffID, date)
}

func (c *AvailabilityCache) Get(
	ctx context.Context,
	staffID uint,
	date string,
	serviceID uint,
) ([]schedule.TimeSlot, bool) {

	if c == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, key(staffID, date, serviceID)).Result()
	if err != nil {
		return nil, false
	}

	var slots []schedule.TimeSlot
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, false
	}

	return slots, true
}

func (c *AvailabilityCache) Set(
	ctx context.Context,
	staffID uint,
	date string,
	serviceID uint,
	slots []schedule.TimeSlot,
) {

	if c == nil {
		return
	}

	b, err := json.Marshal(slots)
	if err != nil {
		return
	}

	c.rdb.Set(ctx, key(staffID, date, serviceID), b, availabilityTTL)
}

// InvalidateStaffDay derruba todas as variações de serviço do dia.
func (c *AvailabilityCache) InvalidateStaffDay(
	ctx context.Context,
	staffID uint,
	date string,
) {

	if c == nil {
		return
	}

	iter := c.rdb.Scan(ctx, 0, dayPattern(staffID, date), 50).Iterator()
	for iter.Next(ctx) {
		c.rdb.Del(ctx, iter.Val())
	}
}

// InvalidateStaff derruba todos os dias do profissional. Usado quando as
// janelas de trabalho mudam, já que afetam qualquer data futura.
func (c *AvailabilityCache) InvalidateStaff(
	ctx context.Context,
	staffID uint,
) {

	if c == nil {
		return
	}

	pattern := fmt.Sprintf("availability:%d:*", staffID)
	iter := c.rdb.Scan(ctx, 0, pattern, 50).Iterator()
	for iter.Next(ctx) {
		c.rdb.Del(ctx, iter.Val())
	}
}
