package rediscache

import (
	"context"
	"os"
	"testing"
	"time"

	"intellilab-gc-be/internal/dto"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRepositoryRoundTrip(t *testing.T) {
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}
	opt, err := redis.ParseURL(url)
	require.NoError(t, err)
	rdb := redis.NewClient(opt)
	defer rdb.Close()

	ctx := context.Background()
	repo := NewSnapshotRepository(rdb, time.Minute)
	key := "test:kpis:" + uuid.NewString()
	defer rdb.Del(ctx, key)

	missing, err := repo.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, repo.Save(ctx, key, &dto.KPISnapshot{
		Methods:         4,
		SamplesByStatus: map[string]int64{"received": 2},
	}))
	got, err := repo.Get(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(4), got.Methods)
	assert.Equal(t, int64(2), got.SamplesByStatus["received"])
}
