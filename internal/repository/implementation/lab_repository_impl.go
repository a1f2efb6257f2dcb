package implementation

import (
	"context"
	"errors"

	"intellilab-gc-be/internal/entity"
	"intellilab-gc-be/internal/mapper"
	"intellilab-gc-be/internal/model"
	"intellilab-gc-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InstrumentRepositoryImpl struct {
	baseRepository[entity.Instrument, model.Instrument]
}

func NewInstrumentRepository(db *gorm.DB) contract.InstrumentRepository {
	m := mapper.NewInstrumentMapper()
	return &InstrumentRepositoryImpl{baseRepository[entity.Instrument, model.Instrument]{db: db, toEntity: m.ToEntity, toModel: m.ToModel}}
}

type MaintenanceRepositoryImpl struct {
	baseRepository[entity.MaintenanceRecord, model.MaintenanceRecord]
}

func NewMaintenanceRepository(db *gorm.DB) contract.MaintenanceRepository {
	m := mapper.NewMaintenanceMapper()
	return &MaintenanceRepositoryImpl{baseRepository[entity.MaintenanceRecord, model.MaintenanceRecord]{db: db, toEntity: m.ToEntity, toModel: m.ToModel}}
}

type MethodRepositoryImpl struct {
	baseRepository[entity.Method, model.Method]
}

func NewMethodRepository(db *gorm.DB) contract.MethodRepository {
	m := mapper.NewMethodMapper()
	return &MethodRepositoryImpl{baseRepository[entity.Method, model.Method]{db: db, toEntity: m.ToEntity, toModel: m.ToModel}}
}

type CompoundRepositoryImpl struct {
	baseRepository[entity.Compound, model.Compound]
}

func NewCompoundRepository(db *gorm.DB) contract.CompoundRepository {
	m := mapper.NewCompoundMapper()
	return &CompoundRepositoryImpl{baseRepository[entity.Compound, model.Compound]{db: db, toEntity: m.ToEntity, toModel: m.ToModel}}
}

type SampleRepositoryImpl struct {
	baseRepository[entity.Sample, model.Sample]
}

func NewSampleRepository(db *gorm.DB) contract.SampleRepository {
	m := mapper.NewSampleMapper()
	return &SampleRepositoryImpl{baseRepository[entity.Sample, model.Sample]{db: db, toEntity: m.ToEntity, toModel: m.ToModel}}
}

func (r *SampleRepositoryImpl) CreateBatch(ctx context.Context, samples []*entity.Sample) error {
	if len(samples) == 0 {
		return nil
	}
	models := make([]*model.Sample, len(samples))
	for i, s := range samples {
		models[i] = r.toModel(s)
	}
	if err := r.db.WithContext(ctx).CreateInBatches(models, 100).Error; err != nil {
		return err
	}
	for i, m := range models {
		*samples[i] = *r.toEntity(m)
	}
	return nil
}

type groupCount struct {
	Bucket string
	Count  int64
}

func (r *SampleRepositoryImpl) countBy(ctx context.Context, column string) (map[string]int64, error) {
	var rows []groupCount
	err := r.db.WithContext(ctx).Model(&model.Sample{}).
		Select(column + " AS bucket, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Bucket] = row.Count
	}
	return out, nil
}

func (r *SampleRepositoryImpl) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return r.countBy(ctx, "status")
}

func (r *SampleRepositoryImpl) CountByPriority(ctx context.Context) (map[string]int64, error) {
	return r.countBy(ctx, "priority")
}

type CostRepositoryImpl struct {
	baseRepository[entity.CostRecord, model.CostRecord]
}

func NewCostRepository(db *gorm.DB) contract.CostRepository {
	m := mapper.NewCostMapper()
	return &CostRepositoryImpl{baseRepository[entity.CostRecord, model.CostRecord]{db: db, toEntity: m.ToEntity, toModel: m.ToModel}}
}

type CalibrationRepositoryImpl struct {
	baseRepository[entity.CalibrationResult, model.CalibrationResult]
}

func NewCalibrationRepository(db *gorm.DB) contract.CalibrationRepository {
	m := mapper.NewCalibrationMapper()
	return &CalibrationRepositoryImpl{baseRepository[entity.CalibrationResult, model.CalibrationResult]{db: db, toEntity: m.ToEntity, toModel: m.ToModel}}
}

type OCRAnalysisRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.OCRAnalysisMapper
}

func NewOCRAnalysisRepository(db *gorm.DB) contract.OCRAnalysisRepository {
	return &OCRAnalysisRepositoryImpl{db: db, mapper: mapper.NewOCRAnalysisMapper()}
}

func (r *OCRAnalysisRepositoryImpl) FindByHash(ctx context.Context, hash string) (*entity.OCRAnalysis, error) {
	var m model.OCRAnalysis
	if err := r.db.WithContext(ctx).Where("hash = ?", hash).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *OCRAnalysisRepositoryImpl) Upsert(ctx context.Context, analysis *entity.OCRAnalysis) error {
	m := r.mapper.ToModel(analysis)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(m).Error
}

type BrandingRepositoryImpl struct {
	baseRepository[entity.BrandingTheme, model.BrandingTheme]
}

func NewBrandingRepository(db *gorm.DB) contract.BrandingRepository {
	m := mapper.NewBrandingMapper()
	return &BrandingRepositoryImpl{baseRepository[entity.BrandingTheme, model.BrandingTheme]{db: db, toEntity: m.ToEntity, toModel: m.ToModel}}
}

func (r *BrandingRepositoryImpl) Activate(ctx context.Context, id uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Model(&model.BrandingTheme{}).Where("id <> ?", id).Update("is_active", false).Error; err != nil {
		return err
	}
	res := db.Model(&model.BrandingTheme{}).Where("id = ?", id).Update("is_active", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type AuditRepositoryImpl struct {
	baseRepository[entity.AuditLog, model.AuditLog]
}

func NewAuditRepository(db *gorm.DB) contract.AuditRepository {
	m := mapper.NewAuditMapper()
	return &AuditRepositoryImpl{baseRepository[entity.AuditLog, model.AuditLog]{db: db, toEntity: m.ToEntity, toModel: m.ToModel}}
}
