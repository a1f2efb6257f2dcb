package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	if s.Status == "" {
		return db
	}
	return db.Where("status = ?", s.Status)
}

// StatusNot excludes one status, e.g. pending samples are everything not complete.
type StatusNot struct {
	Status string
}

func (s StatusNot) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status <> ?", s.Status)
}

type ByPriority struct {
	Priority string
}

func (s ByPriority) Apply(db *gorm.DB) *gorm.DB {
	if s.Priority == "" {
		return db
	}
	return db.Where("priority = ?", s.Priority)
}

type ByInstrumentID struct {
	InstrumentID uuid.UUID
}

func (s ByInstrumentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("instrument_id = ?", s.InstrumentID)
}

// OfActiveInstrument keeps rows whose instrument has not been soft-deleted.
type OfActiveInstrument struct{}

func (OfActiveInstrument) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("instrument_id IN (SELECT id FROM instruments WHERE deleted_at IS NULL)")
}

type ByMethodID struct {
	MethodID uuid.UUID
}

func (s ByMethodID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("method_id = ?", s.MethodID)
}

type BySampleCode struct {
	Code string
}

func (s BySampleCode) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("sample_code = ?", s.Code)
}

type BySampleCodes struct {
	Codes []string
}

func (s BySampleCodes) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("sample_code IN ?", s.Codes)
}

type BySerialNumber struct {
	SerialNumber string
}

func (s BySerialNumber) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("serial_number = ?", s.SerialNumber)
}

type ExcludeID struct {
	ID uuid.UUID
}

func (s ExcludeID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id <> ?", s.ID)
}

type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	if s.Category == "" {
		return db
	}
	return db.Where("category = ?", s.Category)
}

type ByEntityType struct {
	EntityType string
}

func (s ByEntityType) Apply(db *gorm.DB) *gorm.DB {
	if s.EntityType == "" {
		return db
	}
	return db.Where("entity_type = ?", s.EntityType)
}

type ByHash struct {
	Hash string
}

func (s ByHash) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("hash = ?", s.Hash)
}

type ActiveTheme struct{}

func (ActiveTheme) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

// RetentionWindow finds compounds whose retention window contains RT.
type RetentionWindow struct {
	RT float64
}

func (s RetentionWindow) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("ABS(retention_time - ?) <= rt_tolerance", s.RT)
}

// LatestMaintenancePerInstrument keeps only the newest record of each instrument.
type LatestMaintenancePerInstrument struct{}

func (LatestMaintenancePerInstrument) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("(instrument_id, performed_at) IN (?)",
		db.Session(&gorm.Session{NewDB: true}).
			Table("maintenance_records").
			Select("instrument_id, MAX(performed_at)").
			Group("instrument_id"))
}
