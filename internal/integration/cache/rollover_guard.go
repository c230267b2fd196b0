// Package cache implements application adapters backed by Redis.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/domain/valueobject"
)

const rolloverKeyPrefix = "rollover"

// redisRolloverGuard marks applied (from, to) month pairs with SET NX.
type redisRolloverGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRolloverGuard creates a rollover guard stored in Redis.
// A ttl of zero keeps markers forever.
func NewRedisRolloverGuard(client *redis.Client, ttl time.Duration) adapter.RolloverGuard {
	return &redisRolloverGuard{
		client: client,
		ttl:    ttl,
	}
}

// Acquire sets the marker for the pair and reports whether it was absent.
func (g *redisRolloverGuard) Acquire(ctx context.Context, householdID uuid.UUID, fromMonth, toMonth time.Time) (bool, error) {
	ok, err := g.client.SetNX(ctx, rolloverKey(householdID, fromMonth, toMonth), time.Now().UTC().Format(time.RFC3339), g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to set rollover marker: %w", err)
	}
	return ok, nil
}

// Release deletes the marker for the pair.
func (g *redisRolloverGuard) Release(ctx context.Context, householdID uuid.UUID, fromMonth, toMonth time.Time) error {
	if err := g.client.Del(ctx, rolloverKey(householdID, fromMonth, toMonth)).Err(); err != nil {
		return fmt.Errorf("failed to delete rollover marker: %w", err)
	}
	return nil
}

func rolloverKey(householdID uuid.UUID, fromMonth, toMonth time.Time) string {
	return fmt.Sprintf("%s:%s:%s:%s",
		rolloverKeyPrefix,
		householdID,
		valueobject.FormatMonth(fromMonth),
		valueobject.FormatMonth(toMonth),
	)
}

// noopRolloverGuard accepts every rollover. Repeated invocations are the caller's concern.
type noopRolloverGuard struct{}

// NewNoopRolloverGuard creates a guard that never refuses.
func NewNoopRolloverGuard() adapter.RolloverGuard {
	return noopRolloverGuard{}
}

func (noopRolloverGuard) Acquire(context.Context, uuid.UUID, time.Time, time.Time) (bool, error) {
	return true, nil
}

func (noopRolloverGuard) Release(context.Context, uuid.UUID, time.Time, time.Time) error {
	return nil
}
