package calibration

import (
	"errors"
	"fmt"
	"math"
)

type Method string

const (
	Method3Sigma  Method = "3sigma"
	Method10Sigma Method = "10sigma"
)

// ICH Q2 multipliers applied to the residual standard deviation.
const (
	LODFactor = 3.3
	LOQFactor = 10.0
)

var (
	ErrInsufficientPoints = errors.New("calibration: at least 3 points are required for a fit")
	ErrDegenerateX        = errors.New("calibration: all concentrations are identical")
	ErrNonPositiveSlope   = errors.New("calibration: slope must be positive to derive detection limits")
)

func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case Method3Sigma, Method10Sigma:
		return Method(s), nil
	case "":
		return Method3Sigma, nil
	}
	return "", fmt.Errorf("calibration: unknown method %q", s)
}

// Fit is an ordinary least squares line, area = slope*concentration + intercept.
type Fit struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	RSquared  float64 `json:"r_squared"`
	StdError  float64 `json:"std_error"`
	N         int     `json:"n"`
}

func (f Fit) Predict(concentration float64) float64 {
	return f.Slope*concentration + f.Intercept
}

// Result is a complete detection-limit calculation.
type Result struct {
	Fit
	Method         Method  `json:"method"`
	LOD            float64 `json:"lod"`
	LOQ            float64 `json:"loq"`
	DetectionLimit float64 `json:"detection_limit"`
}

// FitLinear regresses area on concentration. StdError is sqrt(SSres/(n-2)).
func FitLinear(points []Point) (Fit, error) {
	n := len(points)
	if n < MinValidPoints {
		return Fit{}, ErrInsufficientPoints
	}

	var sumX, sumY float64
	for _, p := range points {
		sumX += p.Concentration
		sumY += p.Area
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var sxx, sxy, syy float64
	for _, p := range points {
		dx := p.Concentration - meanX
		dy := p.Area - meanY
		sxx += dx * dx
		sxy += dx * dy
		syy += dy * dy
	}
	if sxx == 0 {
		return Fit{}, ErrDegenerateX
	}

	slope := sxy / sxx
	intercept := meanY - slope*meanX

	var ssRes float64
	for _, p := range points {
		r := p.Area - (slope*p.Concentration + intercept)
		ssRes += r * r
	}

	r2 := 0.0
	switch {
	case syy > 0:
		r2 = 1 - ssRes/syy
	case ssRes == 0:
		r2 = 1
	}

	return Fit{
		Slope:     slope,
		Intercept: intercept,
		RSquared:  r2,
		StdError:  math.Sqrt(ssRes / float64(n-2)),
		N:         n,
	}, nil
}

// Compute validates the set, fits the valid points and derives LOD/LOQ.
// The returned Validation is filled even when err is non-nil.
func Compute(points []Point, method Method) (Result, Validation, error) {
	v := Validate(points)
	if !v.IsValid {
		return Result{}, v, ErrInsufficientPoints
	}

	fit, err := FitLinear(ValidPoints(points))
	if err != nil {
		return Result{}, v, err
	}
	if fit.Slope <= 0 {
		return Result{}, v, ErrNonPositiveSlope
	}

	res := Result{
		Fit:    fit,
		Method: method,
		LOD:    LODFactor * fit.StdError / fit.Slope,
		LOQ:    LOQFactor * fit.StdError / fit.Slope,
	}
	if method == Method10Sigma {
		res.DetectionLimit = res.LOQ
	} else {
		res.DetectionLimit = res.LOD
	}
	return res, v, nil
}
