// Package costcalc breaks down the running cost of a GC batch.
package costcalc

import (
	"fmt"
	"math"
)

type Input struct {
	SampleCount              int     `json:"sample_count" validate:"gte=0"`
	AnalysisTimeMin          float64 `json:"analysis_time_min" validate:"gte=0"`
	CarrierFlowMLMin         float64 `json:"carrier_flow_ml_min" validate:"gte=0"`
	GasPricePerL             float64 `json:"gas_price_per_l" validate:"gte=0"`
	ColumnPrice              float64 `json:"column_price" validate:"gte=0"`
	ColumnLifetimeInjections int     `json:"column_lifetime_injections" validate:"gte=0"`
	LaborRatePerHour         float64 `json:"labor_rate_per_hour" validate:"gte=0"`
	LaborMinutesPerSample    float64 `json:"labor_minutes_per_sample" validate:"gte=0"`
	ConsumablesPerSample     float64 `json:"consumables_per_sample" validate:"gte=0"`
	InstrumentHourlyRate     float64 `json:"instrument_hourly_rate" validate:"gte=0"`
}

type Breakdown struct {
	Gas            float64 `json:"gas"`
	ColumnWear     float64 `json:"column_wear"`
	Labor          float64 `json:"labor"`
	Consumables    float64 `json:"consumables"`
	InstrumentTime float64 `json:"instrument_time"`
	Total          float64 `json:"total"`
	PerSample      float64 `json:"per_sample"`
}

// InputError names the first negative field.
type InputError struct {
	Field string
	Value float64
}

func (e *InputError) Error() string {
	return fmt.Sprintf("costcalc: %s must not be negative (got %g)", e.Field, e.Value)
}

func (in Input) check() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"sample_count", float64(in.SampleCount)},
		{"analysis_time_min", in.AnalysisTimeMin},
		{"carrier_flow_ml_min", in.CarrierFlowMLMin},
		{"gas_price_per_l", in.GasPricePerL},
		{"column_price", in.ColumnPrice},
		{"column_lifetime_injections", float64(in.ColumnLifetimeInjections)},
		{"labor_rate_per_hour", in.LaborRatePerHour},
		{"labor_minutes_per_sample", in.LaborMinutesPerSample},
		{"consumables_per_sample", in.ConsumablesPerSample},
		{"instrument_hourly_rate", in.InstrumentHourlyRate},
	}
	for _, f := range fields {
		if f.v < 0 || math.IsNaN(f.v) {
			return &InputError{Field: f.name, Value: f.v}
		}
	}
	return nil
}

func cents(v float64) float64 {
	return math.Round(v*100) / 100
}

func Calculate(in Input) (Breakdown, error) {
	if err := in.check(); err != nil {
		return Breakdown{}, err
	}
	n := float64(in.SampleCount)

	var b Breakdown
	litres := in.AnalysisTimeMin * in.CarrierFlowMLMin / 1000
	b.Gas = litres * in.GasPricePerL * n
	if in.ColumnLifetimeInjections > 0 {
		b.ColumnWear = in.ColumnPrice / float64(in.ColumnLifetimeInjections) * n
	}
	b.Labor = in.LaborRatePerHour * in.LaborMinutesPerSample / 60 * n
	b.Consumables = in.ConsumablesPerSample * n
	b.InstrumentTime = in.InstrumentHourlyRate * in.AnalysisTimeMin / 60 * n

	b.Total = b.Gas + b.ColumnWear + b.Labor + b.Consumables + b.InstrumentTime
	if in.SampleCount > 0 {
		b.PerSample = b.Total / n
	}

	b.Gas = cents(b.Gas)
	b.ColumnWear = cents(b.ColumnWear)
	b.Labor = cents(b.Labor)
	b.Consumables = cents(b.Consumables)
	b.InstrumentTime = cents(b.InstrumentTime)
	b.Total = cents(b.Total)
	b.PerSample = cents(b.PerSample)
	return b, nil
}
