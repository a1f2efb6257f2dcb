package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"intellilab-gc-be/internal/dto"

	"github.com/redis/go-redis/v9"
)

// SnapshotRepository shares the KPI snapshot between instances through Redis.
type SnapshotRepository struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewSnapshotRepository(rdb redis.Cmdable, ttl time.Duration) *SnapshotRepository {
	return &SnapshotRepository{rdb: rdb, ttl: ttl}
}

func (r *SnapshotRepository) Save(ctx context.Context, key string, snapshot *dto.KPISnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode kpi snapshot: %w", err)
	}
	return r.rdb.Set(ctx, key, payload, r.ttl).Err()
}

// Get returns (nil, nil) when the key is absent or expired.
func (r *SnapshotRepository) Get(ctx context.Context, key string) (*dto.KPISnapshot, error) {
	payload, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snapshot dto.KPISnapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("decode kpi snapshot: %w", err)
	}
	return &snapshot, nil
}
