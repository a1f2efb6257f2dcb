package methodperf

import (
	"errors"
	"strings"
)

const DefaultSeptumPurge = 3.0

var ErrInvalidInlet = errors.New("methodperf: column flow must be positive and split ratio non-negative")

type InletInput struct {
	ColumnFlow        float64 `json:"column_flow" validate:"gt=0"`
	SplitRatio        float64 `json:"split_ratio" validate:"gte=0"`
	SeptumPurge       float64 `json:"septum_purge" validate:"gte=0"`
	InjectionVolumeUL float64 `json:"injection_volume_ul" validate:"gte=0"`
	Mode              string  `json:"mode" validate:"omitempty,oneof=split splitless"`
}

type InletResult struct {
	Mode             string  `json:"mode"`
	SplitFlow        float64 `json:"split_flow"`
	TotalFlow        float64 `json:"total_flow"`
	OnColumnFraction float64 `json:"on_column_fraction"`
	OnColumnVolumeNL float64 `json:"on_column_volume_nl"`
}

// SimulateInlet balances inlet flows. In splitless mode the split vent is
// closed during injection so the whole sample reaches the column.
func SimulateInlet(in InletInput) (InletResult, error) {
	if in.ColumnFlow <= 0 || in.SplitRatio < 0 {
		return InletResult{}, ErrInvalidInlet
	}
	purge := in.SeptumPurge
	if purge <= 0 {
		purge = DefaultSeptumPurge
	}
	mode := strings.ToLower(in.Mode)
	if mode == "" {
		mode = ModeSplit
	}

	res := InletResult{Mode: mode}
	if mode == ModeSplitless {
		res.OnColumnFraction = 1
	} else {
		res.SplitFlow = in.ColumnFlow * in.SplitRatio
		res.OnColumnFraction = 1 / (1 + in.SplitRatio)
	}
	res.TotalFlow = in.ColumnFlow + res.SplitFlow + purge
	res.OnColumnVolumeNL = in.InjectionVolumeUL * 1000 * res.OnColumnFraction

	res.SplitFlow = round(res.SplitFlow, 3)
	res.TotalFlow = round(res.TotalFlow, 3)
	res.OnColumnFraction = round(res.OnColumnFraction, 5)
	res.OnColumnVolumeNL = round(res.OnColumnVolumeNL, 3)
	return res, nil
}
