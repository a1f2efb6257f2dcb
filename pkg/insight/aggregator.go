package insight

import (
	"sync"
	"time"
)

// Aggregator accumulates the three datasets and keeps the latest correlations.
type Aggregator struct {
	engine    *Engine
	debouncer *Debouncer

	mu           sync.RWMutex
	methods      []MethodData
	maintenance  []MaintenanceData
	costs        []CostData
	correlations []Correlation
	generatedAt  time.Time

	hooksMu sync.RWMutex
	hooks   []func([]Correlation)

	// regenerate is serialised so two debounced runs never interleave.
	regenMu sync.Mutex
}

func NewAggregator(engine *Engine, debounce time.Duration) *Aggregator {
	return &Aggregator{
		engine:       engine,
		debouncer:    NewDebouncer(debounce),
		correlations: []Correlation{},
	}
}

// OnRegenerate registers a callback invoked after each regeneration.
func (a *Aggregator) OnRegenerate(fn func([]Correlation)) {
	a.hooksMu.Lock()
	a.hooks = append(a.hooks, fn)
	a.hooksMu.Unlock()
}

// upsert replaces an entry with the same ID so edits do not pile up duplicates.
func upsert[T any](list []T, item T, id func(T) string) []T {
	for i := range list {
		if id(list[i]) == id(item) {
			list[i] = item
			return list
		}
	}
	return append(list, item)
}

func (a *Aggregator) AddMethod(m MethodData) {
	a.mu.Lock()
	a.methods = upsert(a.methods, m, func(x MethodData) string { return x.ID })
	a.mu.Unlock()
	a.schedule()
}

func (a *Aggregator) AddMaintenance(r MaintenanceData) {
	a.mu.Lock()
	a.maintenance = upsert(a.maintenance, r, func(x MaintenanceData) string { return x.ID })
	a.mu.Unlock()
	a.schedule()
}

func (a *Aggregator) AddCost(c CostData) {
	a.mu.Lock()
	a.costs = upsert(a.costs, c, func(x CostData) string { return x.ID })
	a.mu.Unlock()
	a.schedule()
}

func without[T any](list []T, drop func(T) bool) []T {
	out := list[:0]
	for _, item := range list {
		if !drop(item) {
			out = append(out, item)
		}
	}
	return out
}

func (a *Aggregator) RemoveMethod(id string) {
	a.mu.Lock()
	a.methods = without(a.methods, func(x MethodData) bool { return x.ID == id })
	a.mu.Unlock()
	a.schedule()
}

// RemoveMaintenance also drops the spend entry recorded under the same id.
func (a *Aggregator) RemoveMaintenance(id string) {
	a.mu.Lock()
	a.maintenance = without(a.maintenance, func(x MaintenanceData) bool { return x.ID == id })
	a.costs = without(a.costs, func(x CostData) bool { return x.ID == id })
	a.mu.Unlock()
	a.schedule()
}

func (a *Aggregator) RemoveCost(id string) {
	a.mu.Lock()
	a.costs = without(a.costs, func(x CostData) bool { return x.ID == id })
	a.mu.Unlock()
	a.schedule()
}

// RemoveInstrument drops every maintenance record of the instrument along
// with its spend entries.
func (a *Aggregator) RemoveInstrument(instrumentID string) {
	a.mu.Lock()
	dropped := make(map[string]struct{})
	a.maintenance = without(a.maintenance, func(x MaintenanceData) bool {
		if x.InstrumentID != instrumentID {
			return false
		}
		dropped[x.ID] = struct{}{}
		return true
	})
	a.costs = without(a.costs, func(x CostData) bool {
		_, ok := dropped[x.ID]
		return ok
	})
	a.mu.Unlock()
	a.schedule()
}

// Load replaces all datasets at once and regenerates synchronously.
func (a *Aggregator) Load(methods []MethodData, maintenance []MaintenanceData, costs []CostData) []Correlation {
	a.mu.Lock()
	a.methods = append([]MethodData(nil), methods...)
	a.maintenance = append([]MaintenanceData(nil), maintenance...)
	a.costs = append([]CostData(nil), costs...)
	a.mu.Unlock()
	return a.Regenerate()
}

func (a *Aggregator) schedule() {
	a.debouncer.Trigger(func() { a.Regenerate() })
}

// Regenerate recomputes correlations from the current datasets.
func (a *Aggregator) Regenerate() []Correlation {
	a.regenMu.Lock()
	defer a.regenMu.Unlock()

	a.mu.RLock()
	methods := append([]MethodData(nil), a.methods...)
	maintenance := append([]MaintenanceData(nil), a.maintenance...)
	costs := append([]CostData(nil), a.costs...)
	a.mu.RUnlock()

	result := a.engine.Generate(methods, maintenance, costs)

	a.mu.Lock()
	a.correlations = result
	a.generatedAt = time.Now()
	a.mu.Unlock()

	a.hooksMu.RLock()
	hooks := append([]func([]Correlation){}, a.hooks...)
	a.hooksMu.RUnlock()
	for _, h := range hooks {
		h(result)
	}
	return result
}

type Snapshot struct {
	Correlations     []Correlation `json:"correlations"`
	GeneratedAt      time.Time     `json:"generated_at"`
	MethodCount      int           `json:"method_count"`
	MaintenanceCount int           `json:"maintenance_count"`
	CostCount        int           `json:"cost_count"`
}

func (a *Aggregator) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return Snapshot{
		Correlations:     append([]Correlation(nil), a.correlations...),
		GeneratedAt:      a.generatedAt,
		MethodCount:      len(a.methods),
		MaintenanceCount: len(a.maintenance),
		CostCount:        len(a.costs),
	}
}

// CountByPriority is used by the dashboard KPIs.
func (a *Aggregator) CountByPriority(p Priority) int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	n := 0
	for _, c := range a.correlations {
		if c.Priority == p {
			n++
		}
	}
	return n
}

func (a *Aggregator) Close() {
	a.debouncer.Close()
}
