package service

import (
	"context"
	"math"
	"sync"

	"intellilab-gc-be/internal/dto"
	"intellilab-gc-be/internal/entity"
	"intellilab-gc-be/internal/repository/contract"
	"intellilab-gc-be/internal/repository/specification"
	"intellilab-gc-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// fakeFactory hands out one shared in-memory unit of work. Repositories only
// understand the specifications the services under test actually pass.
type fakeFactory struct {
	uow *fakeUow
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{uow: &fakeUow{
		samples:      &fakeSampleRepo{},
		audits:       &fakeAuditRepo{},
		branding:     &fakeBrandingRepo{},
		calibrations: &fakeCalibrationRepo{},
		costs:        &fakeCostRepo{},
		instruments:  &fakeInstrumentRepo{},
		methods:      &fakeMethodRepo{},
		compounds:    &fakeCompoundRepo{},
		maintenance:  &fakeMaintenanceRepo{},
		ocr:          &fakeOCRRepo{byHash: map[string]*entity.OCRAnalysis{}},
	}}
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakeUow struct {
	unitofwork.UnitOfWork

	begins, commits int
	samples         *fakeSampleRepo
	audits          *fakeAuditRepo
	branding        *fakeBrandingRepo
	calibrations    *fakeCalibrationRepo
	costs           *fakeCostRepo
	instruments     *fakeInstrumentRepo
	methods         *fakeMethodRepo
	compounds       *fakeCompoundRepo
	maintenance     *fakeMaintenanceRepo
	ocr             *fakeOCRRepo
}

func (u *fakeUow) Begin(ctx context.Context) error { u.begins++; return nil }
func (u *fakeUow) Commit() error                   { u.commits++; return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) SampleRepository() contract.SampleRepository           { return u.samples }
func (u *fakeUow) AuditRepository() contract.AuditRepository             { return u.audits }
func (u *fakeUow) BrandingRepository() contract.BrandingRepository       { return u.branding }
func (u *fakeUow) CalibrationRepository() contract.CalibrationRepository { return u.calibrations }
func (u *fakeUow) CostRepository() contract.CostRepository               { return u.costs }
func (u *fakeUow) InstrumentRepository() contract.InstrumentRepository   { return u.instruments }
func (u *fakeUow) MethodRepository() contract.MethodRepository           { return u.methods }
func (u *fakeUow) CompoundRepository() contract.CompoundRepository       { return u.compounds }
func (u *fakeUow) MaintenanceRepository() contract.MaintenanceRepository { return u.maintenance }
func (u *fakeUow) OCRAnalysisRepository() contract.OCRAnalysisRepository { return u.ocr }

type fakeSampleRepo struct {
	contract.SampleRepository
	items []*entity.Sample
}

func (r *fakeSampleRepo) match(s *entity.Sample, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch v := spec.(type) {
		case specification.ByID:
			if s.Id != v.ID {
				return false
			}
		case specification.ExcludeID:
			if s.Id == v.ID {
				return false
			}
		case specification.BySampleCode:
			if s.SampleCode != v.Code {
				return false
			}
		case specification.BySampleCodes:
			found := false
			for _, c := range v.Codes {
				found = found || c == s.SampleCode
			}
			if !found {
				return false
			}
		case specification.ByStatus:
			if v.Status != "" && s.Status != v.Status {
				return false
			}
		case specification.StatusNot:
			if s.Status == v.Status {
				return false
			}
		}
	}
	return true
}

func (r *fakeSampleRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Sample, error) {
	for _, s := range r.items {
		if r.match(s, specs) {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSampleRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Sample, error) {
	var out []*entity.Sample
	for _, s := range r.items {
		if r.match(s, specs) {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeSampleRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func (r *fakeSampleRepo) Create(ctx context.Context, s *entity.Sample) error {
	cp := *s
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakeSampleRepo) CreateBatch(ctx context.Context, samples []*entity.Sample) error {
	for _, s := range samples {
		_ = r.Create(ctx, s)
	}
	return nil
}

func (r *fakeSampleRepo) Update(ctx context.Context, s *entity.Sample) error {
	for i, existing := range r.items {
		if existing.Id == s.Id {
			cp := *s
			r.items[i] = &cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeSampleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, s := range r.items {
		if s.Id == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeSampleRepo) countBy(key func(*entity.Sample) string) map[string]int64 {
	out := map[string]int64{}
	for _, s := range r.items {
		out[key(s)]++
	}
	return out
}

func (r *fakeSampleRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return r.countBy(func(s *entity.Sample) string { return s.Status }), nil
}

func (r *fakeSampleRepo) CountByPriority(ctx context.Context) (map[string]int64, error) {
	return r.countBy(func(s *entity.Sample) string { return s.Priority }), nil
}

// fakeInstrumentRepo counts n instruments. When gate is set, Count signals
// entered and blocks until gate is closed.
type fakeInstrumentRepo struct {
	contract.InstrumentRepository
	n       int64
	err     error
	calls   int
	entered chan struct{}
	gate    chan struct{}
	deleted []uuid.UUID
}

func (r *fakeInstrumentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if r.err != nil {
		return r.err
	}
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeInstrumentRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.calls++
	if r.gate != nil {
		close(r.entered)
		<-r.gate
	}
	return r.n, r.err
}

type fakeMethodRepo struct {
	contract.MethodRepository
	n     int64
	items []*entity.Method
}

func (r *fakeMethodRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Method, error) {
	return r.items, nil
}

func (r *fakeMethodRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return r.n, nil
}

type fakeCompoundRepo struct {
	contract.CompoundRepository
	n     int64
	items []*entity.Compound
}

func (r *fakeCompoundRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Compound, error) {
	var out []*entity.Compound
	for _, c := range r.items {
		ok := true
		for _, spec := range specs {
			if w, isWindow := spec.(specification.RetentionWindow); isWindow {
				ok = ok && math.Abs(c.RetentionTime-w.RT) <= c.RtTolerance
			}
		}
		if ok {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeOCRRepo struct {
	byHash map[string]*entity.OCRAnalysis
}

func (r *fakeOCRRepo) FindByHash(ctx context.Context, hash string) (*entity.OCRAnalysis, error) {
	if a, ok := r.byHash[hash]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeOCRRepo) Upsert(ctx context.Context, a *entity.OCRAnalysis) error {
	if _, ok := r.byHash[a.Hash]; !ok {
		cp := *a
		r.byHash[a.Hash] = &cp
	}
	return nil
}

func (r *fakeCompoundRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return r.n, nil
}

type fakeMaintenanceRepo struct {
	contract.MaintenanceRepository
	items []*entity.MaintenanceRecord
}

func (r *fakeMaintenanceRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MaintenanceRecord, error) {
	return r.items, nil
}

type fakeAuditRepo struct {
	contract.AuditRepository
	mu      sync.Mutex
	entries []*entity.AuditLog
}

func (r *fakeAuditRepo) Create(ctx context.Context, log *entity.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, log)
	return nil
}

func (r *fakeAuditRepo) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.EntityType+":"+e.Action)
	}
	return out
}

type fakeBrandingRepo struct {
	contract.BrandingRepository
	items []*entity.BrandingTheme
}

func (r *fakeBrandingRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.BrandingTheme, error) {
	for _, t := range r.items {
		ok := true
		for _, spec := range specs {
			switch v := spec.(type) {
			case specification.ByID:
				ok = ok && t.Id == v.ID
			case specification.ActiveTheme:
				ok = ok && t.IsActive
			}
		}
		if ok {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeBrandingRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.BrandingTheme, error) {
	out := make([]*entity.BrandingTheme, 0, len(r.items))
	for _, t := range r.items {
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeBrandingRepo) Create(ctx context.Context, t *entity.BrandingTheme) error {
	cp := *t
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakeBrandingRepo) Activate(ctx context.Context, id uuid.UUID) error {
	found := false
	for _, t := range r.items {
		found = found || t.Id == id
	}
	if !found {
		return gorm.ErrRecordNotFound
	}
	for _, t := range r.items {
		t.IsActive = t.Id == id
	}
	return nil
}

type fakeCalibrationRepo struct {
	contract.CalibrationRepository
	items []*entity.CalibrationResult
}

func (r *fakeCalibrationRepo) Create(ctx context.Context, res *entity.CalibrationResult) error {
	cp := *res
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakeCalibrationRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CalibrationResult, error) {
	for _, res := range r.items {
		for _, spec := range specs {
			if v, ok := spec.(specification.ByID); ok && res.Id == v.ID {
				cp := *res
				return &cp, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeCalibrationRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CalibrationResult, error) {
	return r.items, nil
}

type fakeCostRepo struct {
	contract.CostRepository
	items []*entity.CostRecord
}

func (r *fakeCostRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CostRecord, error) {
	return r.items, nil
}

func (r *fakeCostRepo) Create(ctx context.Context, rec *entity.CostRecord) error {
	cp := *rec
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakeCostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, rec := range r.items {
		if rec.Id == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type statusChange struct {
	id       uuid.UUID
	from, to string
	actor    string
}

type recordingEvents struct {
	mu           sync.Mutex
	statuses     []statusChange
	calibrations []uuid.UUID
	regenerated  int
	ocr          []string
}

func (e *recordingEvents) PublishSampleStatusChanged(ctx context.Context, sampleID uuid.UUID, sampleName, from, to, actor string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.statuses = append(e.statuses, statusChange{id: sampleID, from: from, to: to, actor: actor})
}

func (e *recordingEvents) PublishCalibrationCompleted(ctx context.Context, resultID uuid.UUID, method string, lod, loq, rSquared float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calibrations = append(e.calibrations, resultID)
}

func (e *recordingEvents) PublishInsightsRegenerated(ctx context.Context, total, high, medium int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.regenerated++
}

func (e *recordingEvents) PublishOCRAnalyzed(ctx context.Context, hash string, peakCount int, cached bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ocr = append(e.ocr, hash)
}

type recordingFeed struct {
	methods      []dto.AddMethodDataRequest
	maintenances []dto.AddMaintenanceDataRequest
	costs        []dto.AddCostDataRequest
	removals     []string
}

func (f *recordingFeed) FeedMethod(ctx context.Context, data dto.AddMethodDataRequest) {
	f.methods = append(f.methods, data)
}

func (f *recordingFeed) FeedMaintenance(ctx context.Context, data dto.AddMaintenanceDataRequest) {
	f.maintenances = append(f.maintenances, data)
}

func (f *recordingFeed) FeedCost(ctx context.Context, data dto.AddCostDataRequest) {
	f.costs = append(f.costs, data)
}

func (f *recordingFeed) FeedRemoval(ctx context.Context, kind, id string) {
	f.removals = append(f.removals, kind+":"+id)
}

type broadcast struct {
	kind string
	data interface{}
}

type recordingHub struct {
	mu   sync.Mutex
	sent []broadcast
}

func (h *recordingHub) Broadcast(messageType string, data interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sent = append(h.sent, broadcast{kind: messageType, data: data})
}

func (h *recordingHub) kinds() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, 0, len(h.sent))
	for _, b := range h.sent {
		out = append(out, b.kind)
	}
	return out
}
