// Package calibration validates calibration curves and derives detection limits from them.
package calibration

import (
	"math"
	"sort"
)

const MinValidPoints = 3

const (
	ErrTooFewPoints        = "at least 3 valid points (concentration > 0, area > 0) are required"
	WarnDuplicateConc      = "duplicate concentrations detected; replicate levels reduce the effective calibration range"
	WarnNarrowSpan         = "concentration span is less than one order of magnitude (10x)"
	WarnNonMonotonicSignal = "peak area does not increase monotonically with concentration"
)

// Point is one calibration level.
type Point struct {
	Concentration float64 `json:"concentration"`
	Area          float64 `json:"area"`
}

// Validation mirrors what the method editor shows before a calculation is sent.
type Validation struct {
	IsValid       bool     `json:"is_valid"`
	Warnings      []string `json:"warnings"`
	Errors        []string `json:"errors"`
	ValidPoints   int      `json:"valid_points"`
	IgnoredPoints int      `json:"ignored_points"`
}

func (p Point) valid() bool {
	return isFinite(p.Concentration) && isFinite(p.Area) && p.Concentration > 0 && p.Area > 0
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ValidPoints keeps points with positive, finite concentration and area, in submitted order.
func ValidPoints(points []Point) []Point {
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if p.valid() {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks a calibration set. Warnings never block a calculation; errors do.
func Validate(points []Point) Validation {
	valid := ValidPoints(points)
	v := Validation{
		Warnings:      []string{},
		Errors:        []string{},
		ValidPoints:   len(valid),
		IgnoredPoints: len(points) - len(valid),
	}

	if len(valid) < MinValidPoints {
		v.Errors = append(v.Errors, ErrTooFewPoints)
	}

	if hasDuplicateConcentration(valid) {
		v.Warnings = append(v.Warnings, WarnDuplicateConc)
	}
	if len(valid) >= 2 && concentrationSpan(valid) < 10 {
		v.Warnings = append(v.Warnings, WarnNarrowSpan)
	}
	if !isMonotonic(valid) {
		v.Warnings = append(v.Warnings, WarnNonMonotonicSignal)
	}

	v.IsValid = len(v.Errors) == 0
	return v
}

func hasDuplicateConcentration(points []Point) bool {
	seen := make(map[float64]struct{}, len(points))
	for _, p := range points {
		if _, ok := seen[p.Concentration]; ok {
			return true
		}
		seen[p.Concentration] = struct{}{}
	}
	return false
}

func concentrationSpan(points []Point) float64 {
	lo, hi := points[0].Concentration, points[0].Concentration
	for _, p := range points[1:] {
		lo = math.Min(lo, p.Concentration)
		hi = math.Max(hi, p.Concentration)
	}
	return hi / lo
}

// isMonotonic compares neighbours after sorting by concentration.
// Replicates at the same level are skipped; they are reported as duplicates.
func isMonotonic(points []Point) bool {
	sorted := make([]Point, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Concentration < sorted[j].Concentration })

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Concentration == sorted[i-1].Concentration {
			continue
		}
		if sorted[i].Area <= sorted[i-1].Area {
			return false
		}
	}
	return true
}
