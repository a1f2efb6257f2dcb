package insight

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typesAndPriorities(cs []Correlation) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = string(c.Type) + ":" + string(c.Priority)
	}
	return out
}

func TestHotMethodWithWornInjectorIsHighPriority(t *testing.T) {
	engine := NewEngine(DefaultThresholds())

	tests := []struct {
		name      string
		component string
	}{
		{"lower case", "injector"},
		{"mixed case", "Front Injector Port"},
		{"upper case", "SPLIT/SPLITLESS INJECTOR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Generate(
				[]MethodData{{ID: "m1", Name: "PAH screen", ColumnTemperature: 280}},
				[]MaintenanceData{{ID: "r1", InstrumentID: "gc-2", Component: tt.component, HealthScore: 55}},
				nil,
			)
			require.NotEmpty(t, got)
			found := false
			for _, c := range got {
				if c.Type == TypeMethodMaintenance && c.Priority == PriorityHigh {
					found = true
					assert.Equal(t, []string{"m1", "r1"}, c.SourceIDs)
				}
			}
			assert.True(t, found)
		})
	}
}

func TestThresholdBoundariesAreExclusive(t *testing.T) {
	engine := NewEngine(DefaultThresholds())

	got := engine.Generate(
		[]MethodData{{ID: "m1", ColumnTemperature: 250}},
		[]MaintenanceData{{ID: "r1", Component: "injector", HealthScore: 50}},
		nil,
	)
	assert.Empty(t, got)

	got = engine.Generate(
		[]MethodData{{ID: "m1", ColumnTemperature: 260}},
		[]MaintenanceData{{ID: "r1", Component: "injector", HealthScore: 70}},
		nil,
	)
	assert.Empty(t, got)
}

func TestAllRulesAndOrdering(t *testing.T) {
	engine := NewEngine(DefaultThresholds())

	methods := []MethodData{{ID: "m1", Name: "Hot long", ColumnTemperature: 320, AnalysisTime: 42}}
	maintenance := []MaintenanceData{
		{ID: "r1", Component: "Injector", HealthScore: 40},
		{ID: "r2", Component: "Column", HealthScore: 75},
	}
	costs := []CostData{
		{ID: "c1", Category: "maintenance", Amount: 2500, CostPerSample: 60},
		{ID: "c2", Category: "consumables", Amount: 100, CostPerSample: 10, MethodID: "m1"},
		{ID: "c3", Category: "gas", Amount: 100, CostPerSample: 80, MethodID: "other"},
	}

	got := engine.Generate(methods, maintenance, costs)

	want := []string{
		"maintenance_cost:high",
		"method_maintenance:high",
		"method_maintenance:medium",
		"method_cost:medium",
	}
	if diff := cmp.Diff(want, typesAndPriorities(got)); diff != "" {
		t.Errorf("correlations mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateDeduplicates(t *testing.T) {
	engine := NewEngine(DefaultThresholds())
	m := MethodData{ID: "m1", ColumnTemperature: 280}
	r := MaintenanceData{ID: "r1", Component: "injector", HealthScore: 10}

	got := engine.Generate([]MethodData{m, m}, []MaintenanceData{r, r}, nil)
	assert.Len(t, got, 1)
}

func TestCorrelationIDsAreStable(t *testing.T) {
	engine := NewEngine(DefaultThresholds())
	engine.now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }
	in := []MethodData{{ID: "m1", ColumnTemperature: 280}}
	rec := []MaintenanceData{{ID: "r1", Component: "injector", HealthScore: 10}}

	a := engine.Generate(in, rec, nil)
	b := engine.Generate(in, rec, nil)
	require.Len(t, a, 1)
	assert.Equal(t, a[0].ID, b[0].ID)
}
