package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RolloverGuard records which (from, to) month pairs already had a rollover applied.
type RolloverGuard interface {
	// Acquire marks the pair as applied. It returns false if the pair was already marked.
	Acquire(ctx context.Context, householdID uuid.UUID, fromMonth, toMonth time.Time) (bool, error)

	// Release removes the mark so a failed rollover can be retried.
	Release(ctx context.Context, householdID uuid.UUID, fromMonth, toMonth time.Time) error
}

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}
