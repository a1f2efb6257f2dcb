package memory

import (
	"testing"
	"time"

	"intellilab-gc-be/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRepository(t *testing.T) {
	repo := NewSnapshotRepository(time.Minute)

	_, ok := repo.Get("kpis")
	assert.False(t, ok)

	repo.Save("kpis", &dto.KPISnapshot{Instruments: 3})
	got, ok := repo.Get("kpis")
	require.True(t, ok)
	assert.Equal(t, int64(3), got.Instruments)

	repo.Delete("kpis")
	_, ok = repo.Get("kpis")
	assert.False(t, ok)
}

func TestSnapshotRepositoryExpires(t *testing.T) {
	repo := NewSnapshotRepository(20 * time.Millisecond)
	repo.Save("kpis", &dto.KPISnapshot{})

	assert.Eventually(t, func() bool {
		_, ok := repo.Get("kpis")
		return !ok
	}, time.Second, 10*time.Millisecond)
}
