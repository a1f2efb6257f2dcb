package unitofwork

import (
	"context"

	"intellilab-gc-be/internal/repository/contract"

	"gorm.io/gorm"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	InstrumentRepository() contract.InstrumentRepository
	MaintenanceRepository() contract.MaintenanceRepository
	MethodRepository() contract.MethodRepository
	CompoundRepository() contract.CompoundRepository
	SampleRepository() contract.SampleRepository
	CostRepository() contract.CostRepository
	CalibrationRepository() contract.CalibrationRepository
	OCRAnalysisRepository() contract.OCRAnalysisRepository
	BrandingRepository() contract.BrandingRepository
	AuditRepository() contract.AuditRepository
}

type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}

type gormFactory struct {
	db *gorm.DB
}

// NewRepositoryFactory returns a factory whose units of work carry the
// request context, so reads outside a transaction are traced and cancelled too.
func NewRepositoryFactory(db *gorm.DB) RepositoryFactory {
	return &gormFactory{db: db}
}

func (f *gormFactory) NewUnitOfWork(ctx context.Context) UnitOfWork {
	return NewUnitOfWork(f.db.WithContext(ctx))
}

// Transact runs fn in a transaction on uow. It commits when fn returns nil
// and rolls back on error or panic.
func Transact(ctx context.Context, uow UnitOfWork, fn func(UnitOfWork) error) (err error) {
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = uow.Rollback()
			panic(p)
		}
		if err != nil {
			_ = uow.Rollback()
		}
	}()

	if err = fn(uow); err != nil {
		return err
	}
	return uow.Commit()
}
