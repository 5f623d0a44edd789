package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ShardulMane20/Quick-Desk/internal/core/domain"
)

const dedupTTL = time.Hour

// DedupChecker provides idempotency checks for ticket changes backed by Redis.
// Key format: dedup:<ticket_id>:<kind>:<unix_nano>
type DedupChecker struct {
	client *redis.Client
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

// IsDuplicate reports whether this exact change has already been processed.
func (d *DedupChecker) IsDuplicate(ctx context.Context, ticketID string, kind domain.ChangeKind, at time.Time) (bool, error) {
	n, err := d.client.Exists(ctx, dedupKey(ticketID, kind, at)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this change has been processed (expires after dedupTTL).
func (d *DedupChecker) Mark(ctx context.Context, ticketID string, kind domain.ChangeKind, at time.Time) error {
	return d.client.Set(ctx, dedupKey(ticketID, kind, at), "1", dedupTTL).Err()
}

func dedupKey(ticketID string, kind domain.ChangeKind, at time.Time) string {
	return fmt.Sprintf("dedup:%s:%s:%d", ticketID, kind, at.UnixNano())
}
