// Package insight cross-references method, maintenance and cost records
// against fixed thresholds and emits advisory correlations.
package insight

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

type CorrelationType string

const (
	TypeMethodMaintenance CorrelationType = "method_maintenance"
	TypeMethodCost        CorrelationType = "method_cost"
	TypeMaintenanceCost   CorrelationType = "maintenance_cost"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
)

func (p Priority) rank() int {
	if p == PriorityHigh {
		return 0
	}
	return 1
}

type MethodData struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	ColumnTemperature float64 `json:"column_temperature"`
	AnalysisTime      float64 `json:"analysis_time"`
	CarrierFlow       float64 `json:"carrier_flow"`
}

type MaintenanceData struct {
	ID           string  `json:"id"`
	InstrumentID string  `json:"instrument_id"`
	Component    string  `json:"component"`
	HealthScore  float64 `json:"health_score"`
}

type CostData struct {
	ID            string  `json:"id"`
	Category      string  `json:"category"`
	Amount        float64 `json:"amount"`
	CostPerSample float64 `json:"cost_per_sample"`
	MethodID      string  `json:"method_id,omitempty"`
}

type Correlation struct {
	ID             string          `json:"id"`
	Type           CorrelationType `json:"type"`
	Priority       Priority        `json:"priority"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Recommendation string          `json:"recommendation"`
	SourceIDs      []string        `json:"source_ids"`
	Confidence     float64         `json:"confidence"`
	CreatedAt      time.Time       `json:"created_at"`
}

func (c Correlation) key() string {
	return string(c.Type) + "|" + strings.Join(c.SourceIDs, "|")
}

type Thresholds struct {
	InjectorTemperature float64
	InjectorHealth      float64
	ColumnTemperature   float64
	ColumnHealth        float64
	LongRunMinutes      float64
	CostPerSample       float64
	CriticalHealth      float64
	MaintenanceSpend    float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		InjectorTemperature: 250,
		InjectorHealth:      70,
		ColumnTemperature:   300,
		ColumnHealth:        80,
		LongRunMinutes:      30,
		CostPerSample:       50,
		CriticalHealth:      50,
		MaintenanceSpend:    1000,
	}
}

type Engine struct {
	thresholds Thresholds
	now        func() time.Time
}

func NewEngine(t Thresholds) *Engine {
	return &Engine{thresholds: t, now: time.Now}
}

// Generate evaluates every pairing of the three datasets. Output is
// deduplicated by (type, sources) and ordered high priority first.
func (e *Engine) Generate(methods []MethodData, maintenance []MaintenanceData, costs []CostData) []Correlation {
	now := e.now()
	seen := make(map[string]struct{})
	out := make([]Correlation, 0)

	add := func(c Correlation) {
		if _, dup := seen[c.key()]; dup {
			return
		}
		seen[c.key()] = struct{}{}
		c.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(c.key())).String()
		c.CreatedAt = now
		out = append(out, c)
	}

	for _, m := range methods {
		for _, r := range maintenance {
			for _, c := range e.methodMaintenance(m, r) {
				add(c)
			}
		}
		for _, c := range costs {
			if corr, ok := e.methodCost(m, c); ok {
				add(corr)
			}
		}
	}
	for _, r := range maintenance {
		for _, c := range costs {
			if corr, ok := e.maintenanceCost(r, c); ok {
				add(corr)
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority.rank() != out[j].Priority.rank() {
			return out[i].Priority.rank() < out[j].Priority.rank()
		}
		return out[i].Title < out[j].Title
	})
	return out
}

func (e *Engine) methodMaintenance(m MethodData, r MaintenanceData) []Correlation {
	var out []Correlation
	component := strings.ToLower(r.Component)
	t := e.thresholds

	if m.ColumnTemperature > t.InjectorTemperature && strings.Contains(component, "injector") && r.HealthScore < t.InjectorHealth {
		out = append(out, Correlation{
			Type:     TypeMethodMaintenance,
			Priority: PriorityHigh,
			Title:    fmt.Sprintf("High-temperature method %q is wearing the injector", m.Name),
			Description: fmt.Sprintf("Method runs at %.0f°C while injector %q on instrument %s is at %.0f%% health.",
				m.ColumnTemperature, r.Component, r.InstrumentID, r.HealthScore),
			Recommendation: "Replace the inlet liner and septum, and schedule injector service before the next high-temperature batch.",
			SourceIDs:      []string{m.ID, r.ID},
			Confidence:     0.85,
		})
	}

	if m.ColumnTemperature > t.ColumnTemperature && strings.Contains(component, "column") && r.HealthScore < t.ColumnHealth {
		out = append(out, Correlation{
			Type:     TypeMethodMaintenance,
			Priority: PriorityMedium,
			Title:    fmt.Sprintf("Column bleed risk for method %q", m.Name),
			Description: fmt.Sprintf("Oven reaches %.0f°C and column %q is at %.0f%% health.",
				m.ColumnTemperature, r.Component, r.HealthScore),
			Recommendation: "Trim the column inlet and run a bake-out; consider a lower final oven temperature.",
			SourceIDs:      []string{m.ID, r.ID},
			Confidence:     0.7,
		})
	}
	return out
}

func (e *Engine) methodCost(m MethodData, c CostData) (Correlation, bool) {
	t := e.thresholds
	linked := c.MethodID == "" || c.MethodID == m.ID
	if !linked || m.AnalysisTime <= t.LongRunMinutes || c.CostPerSample <= t.CostPerSample {
		return Correlation{}, false
	}
	return Correlation{
		Type:     TypeMethodCost,
		Priority: PriorityMedium,
		Title:    fmt.Sprintf("Long run time is driving cost for method %q", m.Name),
		Description: fmt.Sprintf("A %.1f min run costs %.2f per sample (%s).",
			m.AnalysisTime, c.CostPerSample, c.Category),
		Recommendation: "Increase the oven ramp rate or shorten the final hold to cut gas and instrument time per sample.",
		SourceIDs:      []string{m.ID, c.ID},
		Confidence:     0.65,
	}, true
}

func (e *Engine) maintenanceCost(r MaintenanceData, c CostData) (Correlation, bool) {
	t := e.thresholds
	if r.HealthScore >= t.CriticalHealth || !strings.EqualFold(c.Category, "maintenance") || c.Amount <= t.MaintenanceSpend {
		return Correlation{}, false
	}
	return Correlation{
		Type:     TypeMaintenanceCost,
		Priority: PriorityHigh,
		Title:    fmt.Sprintf("Critical %s health with rising maintenance spend", r.Component),
		Description: fmt.Sprintf("%s on instrument %s is at %.0f%% health while maintenance spend reached %.2f.",
			r.Component, r.InstrumentID, r.HealthScore, c.Amount),
		Recommendation: "Plan a preventive replacement; reactive repairs are outpacing the component's remaining value.",
		SourceIDs:      []string{r.ID, c.ID},
		Confidence:     0.8,
	}, true
}
