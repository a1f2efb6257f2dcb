package memory

import (
	"time"

	"intellilab-gc-be/internal/dto"

	"github.com/patrickmn/go-cache"
)

// SnapshotRepository keeps the latest KPI snapshot in process memory.
type SnapshotRepository struct {
	cache *cache.Cache
}

func NewSnapshotRepository(ttl time.Duration) *SnapshotRepository {
	return &SnapshotRepository{cache: cache.New(ttl, 2*ttl)}
}

func (r *SnapshotRepository) Save(key string, snapshot *dto.KPISnapshot) {
	r.cache.Set(key, snapshot, cache.DefaultExpiration)
}

func (r *SnapshotRepository) Get(key string) (*dto.KPISnapshot, bool) {
	if x, found := r.cache.Get(key); found {
		return x.(*dto.KPISnapshot), true
	}
	return nil, false
}

func (r *SnapshotRepository) Delete(key string) {
	r.cache.Delete(key)
}
