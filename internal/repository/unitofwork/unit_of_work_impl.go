package unitofwork

import (
	"context"
	"errors"

	"intellilab-gc-be/internal/repository/contract"
	"intellilab-gc-be/internal/repository/implementation"

	"gorm.io/gorm"
)

var (
	ErrTxActive   = errors.New("unit of work: transaction already started")
	ErrTxInactive = errors.New("unit of work: no active transaction")
)

// gormUnitOfWork hands repositories the open transaction when there is one
// and the context-bound pool otherwise.
type gormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &gormUnitOfWork{db: db}
}

func (u *gormUnitOfWork) conn() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *gormUnitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return ErrTxActive
	}
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	u.tx = tx
	return nil
}

func (u *gormUnitOfWork) finish(end func(*gorm.DB) *gorm.DB) error {
	if u.tx == nil {
		return ErrTxInactive
	}
	tx := u.tx
	u.tx = nil
	return end(tx).Error
}

func (u *gormUnitOfWork) Commit() error {
	return u.finish(func(tx *gorm.DB) *gorm.DB { return tx.Commit() })
}

func (u *gormUnitOfWork) Rollback() error {
	return u.finish(func(tx *gorm.DB) *gorm.DB { return tx.Rollback() })
}

func (u *gormUnitOfWork) InstrumentRepository() contract.InstrumentRepository {
	return implementation.NewInstrumentRepository(u.conn())
}

func (u *gormUnitOfWork) MaintenanceRepository() contract.MaintenanceRepository {
	return implementation.NewMaintenanceRepository(u.conn())
}

func (u *gormUnitOfWork) MethodRepository() contract.MethodRepository {
	return implementation.NewMethodRepository(u.conn())
}

func (u *gormUnitOfWork) CompoundRepository() contract.CompoundRepository {
	return implementation.NewCompoundRepository(u.conn())
}

func (u *gormUnitOfWork) SampleRepository() contract.SampleRepository {
	return implementation.NewSampleRepository(u.conn())
}

func (u *gormUnitOfWork) CostRepository() contract.CostRepository {
	return implementation.NewCostRepository(u.conn())
}

func (u *gormUnitOfWork) CalibrationRepository() contract.CalibrationRepository {
	return implementation.NewCalibrationRepository(u.conn())
}

func (u *gormUnitOfWork) OCRAnalysisRepository() contract.OCRAnalysisRepository {
	return implementation.NewOCRAnalysisRepository(u.conn())
}

func (u *gormUnitOfWork) BrandingRepository() contract.BrandingRepository {
	return implementation.NewBrandingRepository(u.conn())
}

func (u *gormUnitOfWork) AuditRepository() contract.AuditRepository {
	return implementation.NewAuditRepository(u.conn())
}
