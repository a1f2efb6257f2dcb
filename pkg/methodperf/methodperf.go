// Package methodperf derives performance figures from a GC method's
// oven, inlet, column, carrier and detector parameters.
package methodperf

import (
	"math"
	"strings"
)

type Oven struct {
	InitialTemp float64 `json:"initial_temp" yaml:"initial_temp"`
	InitialHold float64 `json:"initial_hold" yaml:"initial_hold"`
	RampRate    float64 `json:"ramp_rate" yaml:"ramp_rate"`
	FinalTemp   float64 `json:"final_temp" yaml:"final_temp"`
	FinalHold   float64 `json:"final_hold" yaml:"final_hold"`
}

type Inlet struct {
	Mode              string  `json:"mode" yaml:"mode"` // split | splitless
	Temperature       float64 `json:"temperature" yaml:"temperature"`
	SplitRatio        float64 `json:"split_ratio" yaml:"split_ratio"`
	InjectionVolumeUL float64 `json:"injection_volume_ul" yaml:"injection_volume_ul"`
	SeptumPurge       float64 `json:"septum_purge" yaml:"septum_purge"`
}

type Column struct {
	LengthM float64 `json:"length_m" yaml:"length_m"`
	IDmm    float64 `json:"id_mm" yaml:"id_mm"`
	FilmUm  float64 `json:"film_um" yaml:"film_um"`
	Phase   string  `json:"phase,omitempty" yaml:"phase,omitempty"`
}

type Carrier struct {
	Gas       string  `json:"gas" yaml:"gas"` // helium | hydrogen | nitrogen
	FlowMLMin float64 `json:"flow_ml_min" yaml:"flow_ml_min"`
}

type Detector struct {
	Type        string  `json:"type" yaml:"type"`
	Temperature float64 `json:"temperature" yaml:"temperature"`
}

type Params struct {
	Oven     Oven     `json:"oven" yaml:"oven"`
	Inlet    Inlet    `json:"inlet" yaml:"inlet"`
	Column   Column   `json:"column" yaml:"column"`
	Carrier  Carrier  `json:"carrier" yaml:"carrier"`
	Detector Detector `json:"detector" yaml:"detector"`
}

type Performance struct {
	AnalysisTimeMin   float64 `json:"analysis_time_min" yaml:"analysis_time_min"`
	DetectionLimitPpm float64 `json:"detection_limit_ppm" yaml:"detection_limit_ppm"`
	EfficiencyPercent float64 `json:"efficiency_percent" yaml:"efficiency_percent"`
	ColumnTemperature float64 `json:"column_temperature" yaml:"column_temperature"`
}

const (
	ModeSplit     = "split"
	ModeSplitless = "splitless"
)

// Base limits of detection in ppm.
var detectorLOD = map[string]float64{
	"fid": 0.1,
	"tcd": 10,
	"ms":  0.01,
	"ecd": 0.001,
	"npd": 0.01,
	"fpd": 0.05,
}

const unknownDetectorLOD = 1.0

func DetectorLOD(kind string) float64 {
	if v, ok := detectorLOD[strings.ToLower(strings.TrimSpace(kind))]; ok {
		return v
	}
	return unknownDetectorLOD
}

// OptimumFlow is the carrier flow (mL/min) giving the best plate height for
// the column bore, scaled for the carrier gas.
func OptimumFlow(idMM float64, gas string) float64 {
	if idMM <= 0 {
		idMM = 0.25
	}
	opt := 4 * idMM
	switch strings.ToLower(gas) {
	case "hydrogen", "h2":
		opt *= 2
	case "nitrogen", "n2":
		opt *= 0.5
	}
	return opt
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func Estimate(p Params) Performance {
	o := p.Oven
	analysis := math.Max(0, o.InitialHold) + math.Max(0, o.FinalHold)
	if o.RampRate > 0 && o.FinalTemp > o.InitialTemp {
		analysis += (o.FinalTemp - o.InitialTemp) / o.RampRate
	}

	split := 1.0
	if !strings.EqualFold(p.Inlet.Mode, ModeSplitless) {
		split = math.Max(1, p.Inlet.SplitRatio/10)
	}
	lod := DetectorLOD(p.Detector.Type) * split

	opt := OptimumFlow(p.Column.IDmm, p.Carrier.Gas)
	eff := 100.0
	if p.Carrier.FlowMLMin > 0 {
		eff = 100 - 50*math.Abs(p.Carrier.FlowMLMin-opt)/opt
	}
	eff = math.Min(100, math.Max(0, eff))

	return Performance{
		AnalysisTimeMin:   round(analysis, 2),
		DetectionLimitPpm: round(lod, 4),
		EfficiencyPercent: round(eff, 1),
		ColumnTemperature: math.Max(o.InitialTemp, o.FinalTemp),
	}
}
