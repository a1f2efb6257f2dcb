package contract

import (
	"context"

	"intellilab-gc-be/internal/entity"
	"intellilab-gc-be/internal/repository/specification"

	"github.com/google/uuid"
)

// Finder is the read side shared by every lab repository.
// FindOne returns (nil, nil) when nothing matches.
type Finder[E any] interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*E, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*E, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type InstrumentRepository interface {
	Finder[entity.Instrument]
	Create(ctx context.Context, instrument *entity.Instrument) error
	Update(ctx context.Context, instrument *entity.Instrument) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type MaintenanceRepository interface {
	Finder[entity.MaintenanceRecord]
	Create(ctx context.Context, record *entity.MaintenanceRecord) error
}

type MethodRepository interface {
	Finder[entity.Method]
	Create(ctx context.Context, method *entity.Method) error
	Update(ctx context.Context, method *entity.Method) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CompoundRepository interface {
	Finder[entity.Compound]
	Create(ctx context.Context, compound *entity.Compound) error
	Update(ctx context.Context, compound *entity.Compound) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type SampleRepository interface {
	Finder[entity.Sample]
	Create(ctx context.Context, sample *entity.Sample) error
	CreateBatch(ctx context.Context, samples []*entity.Sample) error
	Update(ctx context.Context, sample *entity.Sample) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
	CountByPriority(ctx context.Context) (map[string]int64, error)
}

type CostRepository interface {
	Finder[entity.CostRecord]
	Create(ctx context.Context, record *entity.CostRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CalibrationRepository interface {
	Finder[entity.CalibrationResult]
	Create(ctx context.Context, result *entity.CalibrationResult) error
}

type OCRAnalysisRepository interface {
	FindByHash(ctx context.Context, hash string) (*entity.OCRAnalysis, error)
	// Upsert keeps the first stored analysis for a hash.
	Upsert(ctx context.Context, analysis *entity.OCRAnalysis) error
}

type BrandingRepository interface {
	Finder[entity.BrandingTheme]
	Create(ctx context.Context, theme *entity.BrandingTheme) error
	// Activate marks id active and every other theme inactive.
	Activate(ctx context.Context, id uuid.UUID) error
}

type AuditRepository interface {
	Finder[entity.AuditLog]
	Create(ctx context.Context, log *entity.AuditLog) error
}
