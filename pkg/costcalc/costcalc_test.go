package costcalc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	in := Input{
		SampleCount:              100,
		AnalysisTimeMin:          30,
		CarrierFlowMLMin:         2,
		GasPricePerL:             0.5,
		ColumnPrice:              600,
		ColumnLifetimeInjections: 1000,
		LaborRatePerHour:         60,
		LaborMinutesPerSample:    10,
		ConsumablesPerSample:     1.25,
		InstrumentHourlyRate:     12,
	}

	got, err := Calculate(in)
	require.NoError(t, err)

	want := Breakdown{
		Gas:            3,
		ColumnWear:     60,
		Labor:          1000,
		Consumables:    125,
		InstrumentTime: 600,
		Total:          1788,
		PerSample:      17.88,
	}
	assert.Equal(t, want, got)
}

func TestCalculateEdgeCases(t *testing.T) {
	got, err := Calculate(Input{ColumnPrice: 500})
	require.NoError(t, err)
	assert.Equal(t, Breakdown{}, got)

	_, err = Calculate(Input{SampleCount: 1, GasPricePerL: -1})
	var inErr *InputError
	require.ErrorAs(t, err, &inErr)
	assert.Equal(t, "gas_price_per_l", inErr.Field)
}
