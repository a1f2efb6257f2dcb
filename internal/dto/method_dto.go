package dto

import (
	"time"

	"intellilab-gc-be/pkg/methodperf"

	"github.com/google/uuid"
)

type OvenParams struct {
	InitialTemp float64 `json:"initial_temp" validate:"gte=0,lte=450"`
	InitialHold float64 `json:"initial_hold" validate:"gte=0"`
	RampRate    float64 `json:"ramp_rate" validate:"gte=0"`
	FinalTemp   float64 `json:"final_temp" validate:"gte=0,lte=450"`
	FinalHold   float64 `json:"final_hold" validate:"gte=0"`
}

type InletParams struct {
	Mode              string  `json:"mode" validate:"omitempty,oneof=split splitless"`
	Temperature       float64 `json:"temperature" validate:"gte=0,lte=450"`
	SplitRatio        float64 `json:"split_ratio" validate:"gte=0"`
	InjectionVolumeUL float64 `json:"injection_volume_ul" validate:"gte=0"`
	SeptumPurge       float64 `json:"septum_purge" validate:"gte=0"`
}

type ColumnParams struct {
	LengthM float64 `json:"length_m" validate:"gte=0"`
	IDmm    float64 `json:"id_mm" validate:"gte=0"`
	FilmUm  float64 `json:"film_um" validate:"gte=0"`
	Phase   string  `json:"phase"`
}

type CarrierParams struct {
	Gas       string  `json:"gas" validate:"omitempty,oneof=helium hydrogen nitrogen"`
	FlowMLMin float64 `json:"flow_ml_min" validate:"gte=0"`
}

type DetectorParams struct {
	Type        string  `json:"type"`
	Temperature float64 `json:"temperature" validate:"gte=0,lte=450"`
}

type MethodParams struct {
	Oven     OvenParams     `json:"oven"`
	Inlet    InletParams    `json:"inlet"`
	Column   ColumnParams   `json:"column"`
	Carrier  CarrierParams  `json:"carrier"`
	Detector DetectorParams `json:"detector"`
}

func (p MethodParams) ToDomain() methodperf.Params {
	return methodperf.Params{
		Oven:     methodperf.Oven(p.Oven),
		Inlet:    methodperf.Inlet(p.Inlet),
		Column:   methodperf.Column(p.Column),
		Carrier:  methodperf.Carrier(p.Carrier),
		Detector: methodperf.Detector(p.Detector),
	}
}

func MethodParamsFrom(p methodperf.Params) MethodParams {
	return MethodParams{
		Oven:     OvenParams(p.Oven),
		Inlet:    InletParams(p.Inlet),
		Column:   ColumnParams(p.Column),
		Carrier:  CarrierParams(p.Carrier),
		Detector: DetectorParams(p.Detector),
	}
}

type CreateMethodRequest struct {
	Name         string       `json:"name" validate:"required,max=120"`
	Description  string       `json:"description"`
	InstrumentId *uuid.UUID   `json:"instrument_id"`
	Params       MethodParams `json:"params"`
}

type UpdateMethodRequest struct {
	Id uuid.UUID `json:"-"`
	CreateMethodRequest
}

type MethodResponse struct {
	Id           uuid.UUID              `json:"id"`
	Name         string                 `json:"name"`
	Description  string                 `json:"description"`
	InstrumentId *uuid.UUID             `json:"instrument_id"`
	Params       MethodParams           `json:"params"`
	Performance  methodperf.Performance `json:"performance"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    *time.Time             `json:"updated_at"`
}

// MethodExport is the YAML document served by the export route.
type MethodExport struct {
	Name        string                 `yaml:"name"`
	Description string                 `yaml:"description,omitempty"`
	Params      methodperf.Params      `yaml:"params"`
	Performance methodperf.Performance `yaml:"performance"`
	ExportedAt  time.Time              `yaml:"exported_at"`
}
