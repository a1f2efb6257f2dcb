package methodperf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseParams() Params {
	return Params{
		Oven:     Oven{InitialTemp: 50, InitialHold: 2, RampRate: 10, FinalTemp: 280, FinalHold: 5},
		Inlet:    Inlet{Mode: ModeSplit, Temperature: 250, SplitRatio: 50, InjectionVolumeUL: 1},
		Column:   Column{LengthM: 30, IDmm: 0.25, FilmUm: 0.25},
		Carrier:  Carrier{Gas: "helium", FlowMLMin: 1.0},
		Detector: Detector{Type: "FID", Temperature: 300},
	}
}

func TestEstimate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
		want   Performance
	}{
		{
			name:   "reference method",
			mutate: func(*Params) {},
			want:   Performance{AnalysisTimeMin: 30, DetectionLimitPpm: 0.5, EfficiencyPercent: 100, ColumnTemperature: 280},
		},
		{
			name:   "splitless ignores split ratio",
			mutate: func(p *Params) { p.Inlet.Mode = ModeSplitless },
			want:   Performance{AnalysisTimeMin: 30, DetectionLimitPpm: 0.1, EfficiencyPercent: 100, ColumnTemperature: 280},
		},
		{
			name:   "low split ratio floors at 1x",
			mutate: func(p *Params) { p.Inlet.SplitRatio = 5 },
			want:   Performance{AnalysisTimeMin: 30, DetectionLimitPpm: 0.1, EfficiencyPercent: 100, ColumnTemperature: 280},
		},
		{
			name:   "flow off optimum costs efficiency",
			mutate: func(p *Params) { p.Carrier.FlowMLMin = 1.5 },
			want:   Performance{AnalysisTimeMin: 30, DetectionLimitPpm: 0.5, EfficiencyPercent: 75, ColumnTemperature: 280},
		},
		{
			name:   "efficiency clamps at zero",
			mutate: func(p *Params) { p.Carrier.FlowMLMin = 10 },
			want:   Performance{AnalysisTimeMin: 30, DetectionLimitPpm: 0.5, EfficiencyPercent: 0, ColumnTemperature: 280},
		},
		{
			name:   "isothermal has no ramp segment",
			mutate: func(p *Params) { p.Oven.RampRate = 0; p.Oven.FinalTemp = 50 },
			want:   Performance{AnalysisTimeMin: 7, DetectionLimitPpm: 0.5, EfficiencyPercent: 100, ColumnTemperature: 50},
		},
		{
			name:   "unknown detector",
			mutate: func(p *Params) { p.Detector.Type = "PID" },
			want:   Performance{AnalysisTimeMin: 30, DetectionLimitPpm: 5, EfficiencyPercent: 100, ColumnTemperature: 280},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baseParams()
			tt.mutate(&p)
			assert.Equal(t, tt.want, Estimate(p))
		})
	}
}

func TestOptimumFlowByGas(t *testing.T) {
	assert.InDelta(t, 1.0, OptimumFlow(0.25, "helium"), 1e-9)
	assert.InDelta(t, 2.0, OptimumFlow(0.25, "H2"), 1e-9)
	assert.InDelta(t, 0.5, OptimumFlow(0.25, "nitrogen"), 1e-9)
	assert.InDelta(t, 1.0, OptimumFlow(0, ""), 1e-9)
}

func TestSimulateInlet(t *testing.T) {
	split, err := SimulateInlet(InletInput{ColumnFlow: 1.2, SplitRatio: 50, InjectionVolumeUL: 1})
	require.NoError(t, err)
	assert.Equal(t, ModeSplit, split.Mode)
	assert.InDelta(t, 60, split.SplitFlow, 1e-9)
	assert.InDelta(t, 64.2, split.TotalFlow, 1e-9)
	assert.InDelta(t, 1.0/51, split.OnColumnFraction, 1e-5)
	assert.InDelta(t, 1000.0/51, split.OnColumnVolumeNL, 1e-3)

	sl, err := SimulateInlet(InletInput{ColumnFlow: 1.2, SplitRatio: 50, SeptumPurge: 1, InjectionVolumeUL: 2, Mode: "Splitless"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, sl.SplitFlow)
	assert.InDelta(t, 2.2, sl.TotalFlow, 1e-9)
	assert.Equal(t, 1.0, sl.OnColumnFraction)
	assert.Equal(t, 2000.0, sl.OnColumnVolumeNL)

	_, err = SimulateInlet(InletInput{ColumnFlow: 0})
	assert.ErrorIs(t, err, ErrInvalidInlet)
}
