// Package chromatogram draws a display trace from a digitized peak list.
// The trace is a sum of Gaussians over baseline jitter; it is not the
// detector's raw signal.
package chromatogram

import (
	"hash/fnv"
	"math"
	"math/rand"
)

const (
	DefaultPoints = 200
	DefaultWidth  = 0.05
	// FWHM = 2·sqrt(2·ln 2)·σ
	fwhmToSigma = 2.355
)

// Peak is the subset of an OCR peak the trace needs.
type Peak struct {
	RetentionTime float64 `json:"retention_time"`
	Height        float64 `json:"height"`
	Width         float64 `json:"width"`
	Name          string  `json:"name,omitempty"`
}

type Options struct {
	Points     int
	NoiseLevel float64
	Seed       int64
	RunTime    float64
}

type Trace struct {
	Time   []float64 `json:"time"`
	Signal []float64 `json:"signal"`
}

// SeedFromHash turns an analysis hash into a stable RNG seed.
func SeedFromHash(hash string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(hash))
	return int64(h.Sum64() >> 1)
}

func peakWidth(p Peak) float64 {
	if p.Width <= 0 {
		return DefaultWidth
	}
	return p.Width
}

// RunTime is the end of the time axis: the last peak tail plus 10%, at least 1 minute.
func RunTime(peaks []Peak) float64 {
	end := 0.0
	for _, p := range peaks {
		end = math.Max(end, p.RetentionTime+3*peakWidth(p))
	}
	return math.Max(1, end*1.1)
}

func Synthesize(peaks []Peak, opts Options) Trace {
	n := opts.Points
	if n < 2 {
		n = DefaultPoints
	}
	runTime := opts.RunTime
	if runTime <= 0 {
		runTime = RunTime(peaks)
	}

	maxHeight := 0.0
	for _, p := range peaks {
		maxHeight = math.Max(maxHeight, p.Height)
	}
	if maxHeight == 0 {
		maxHeight = 1
	}
	noise := math.Max(0, opts.NoiseLevel)
	rng := rand.New(rand.NewSource(opts.Seed))

	tr := Trace{Time: make([]float64, n), Signal: make([]float64, n)}
	step := runTime / float64(n-1)
	for i := 0; i < n; i++ {
		t := float64(i) * step
		y := (rng.Float64() - 0.5) * noise * maxHeight
		for _, p := range peaks {
			sigma := peakWidth(p) / fwhmToSigma
			d := t - p.RetentionTime
			y += p.Height * math.Exp(-(d*d)/(2*sigma*sigma))
		}
		tr.Time[i] = t
		tr.Signal[i] = y
	}
	return tr
}
