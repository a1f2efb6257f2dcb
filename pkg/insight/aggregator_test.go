package insight

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncerCoalescesBursts(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Close()

	var calls int32
	done := make(chan struct{}, 10)
	for i := 0; i < 5; i++ {
		d.Trigger(func() {
			atomic.AddInt32(&calls, 1)
			done <- struct{}{}
		})
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("debounced function never ran")
	}
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestDebouncerCloseCancelsPending(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var calls int32
	d.Trigger(func() { atomic.AddInt32(&calls, 1) })
	d.Close()
	d.Trigger(func() { atomic.AddInt32(&calls, 1) })

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestAggregatorRegeneratesOnceAfterBurst(t *testing.T) {
	agg := NewAggregator(NewEngine(DefaultThresholds()), 20*time.Millisecond)
	defer agg.Close()

	var mu sync.Mutex
	var batches [][]Correlation
	fired := make(chan struct{}, 10)
	agg.OnRegenerate(func(cs []Correlation) {
		mu.Lock()
		batches = append(batches, cs)
		mu.Unlock()
		fired <- struct{}{}
	})

	agg.AddMethod(MethodData{ID: "m1", Name: "Hot", ColumnTemperature: 280})
	agg.AddMaintenance(MaintenanceData{ID: "r1", Component: "Injector", HealthScore: 60})
	agg.AddCost(CostData{ID: "c1", Category: "gas", Amount: 10, CostPerSample: 5})

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("no regeneration")
	}
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, batches, 1)
	require.Len(t, batches[0], 1)
	assert.Equal(t, PriorityHigh, batches[0][0].Priority)

	snap := agg.Snapshot()
	assert.Equal(t, 1, snap.MethodCount)
	assert.Equal(t, 1, snap.MaintenanceCount)
	assert.Equal(t, 1, snap.CostCount)
	assert.Equal(t, 1, agg.CountByPriority(PriorityHigh))
}

func TestAggregatorUpsertsByID(t *testing.T) {
	agg := NewAggregator(NewEngine(DefaultThresholds()), time.Hour)
	defer agg.Close()

	agg.Load(
		[]MethodData{{ID: "m1", ColumnTemperature: 280}},
		[]MaintenanceData{{ID: "r1", Component: "injector", HealthScore: 60}},
		nil,
	)
	assert.Len(t, agg.Snapshot().Correlations, 1)

	agg.AddMaintenance(MaintenanceData{ID: "r1", Component: "injector", HealthScore: 95})
	got := agg.Regenerate()
	assert.Empty(t, got)
	assert.Equal(t, 1, agg.Snapshot().MaintenanceCount)
}

func TestAggregatorRemoveDropsCorrelations(t *testing.T) {
	agg := NewAggregator(NewEngine(DefaultThresholds()), time.Hour)
	defer agg.Close()

	agg.Load(
		[]MethodData{{ID: "m1", Name: "Slow", AnalysisTime: 45}},
		nil,
		[]CostData{{ID: "c1", Category: "analysis", CostPerSample: 120, MethodID: "m1"}},
	)
	require.Len(t, agg.Snapshot().Correlations, 1)

	agg.RemoveCost("c1")
	assert.Empty(t, agg.Regenerate())
	assert.Equal(t, 0, agg.Snapshot().CostCount)

	agg.AddCost(CostData{ID: "c2", Category: "analysis", CostPerSample: 120, MethodID: "m1"})
	require.Len(t, agg.Regenerate(), 1)
	agg.RemoveMethod("m1")
	assert.Empty(t, agg.Regenerate())
	assert.Equal(t, 1, agg.Snapshot().CostCount)
}

func TestAggregatorRemoveInstrumentDropsItsMaintenanceAndSpend(t *testing.T) {
	agg := NewAggregator(NewEngine(DefaultThresholds()), time.Hour)
	defer agg.Close()

	agg.Load(
		nil,
		[]MaintenanceData{
			{ID: "r1", InstrumentID: "gc-1", Component: "Detector", HealthScore: 30},
			{ID: "r2", InstrumentID: "gc-2", Component: "Detector", HealthScore: 30},
		},
		[]CostData{
			{ID: "r1", Category: "maintenance", Amount: 1500},
			{ID: "r2", Category: "maintenance", Amount: 1500},
		},
	)
	require.Len(t, agg.Snapshot().Correlations, 4)

	agg.RemoveInstrument("gc-1")
	got := agg.Regenerate()
	require.Len(t, got, 1)
	assert.Equal(t, []string{"r2", "r2"}, got[0].SourceIDs)

	snap := agg.Snapshot()
	assert.Equal(t, 1, snap.MaintenanceCount)
	assert.Equal(t, 1, snap.CostCount)

	agg.RemoveMaintenance("r2")
	assert.Empty(t, agg.Regenerate())
	assert.Equal(t, 0, agg.Snapshot().CostCount)
}
