package mapper

import (
	"time"

	"intellilab-gc-be/internal/entity"
	"intellilab-gc-be/internal/model"
	"intellilab-gc-be/pkg/methodperf"

	"gorm.io/datatypes"
)

func mapAll[A any, B any](in []*A, fn func(*A) *B) []*B {
	out := make([]*B, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out
}

func updatedPtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func updatedVal(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

type InstrumentMapper struct{}

func NewInstrumentMapper() *InstrumentMapper { return &InstrumentMapper{} }

func (m *InstrumentMapper) ToEntity(i *model.Instrument) *entity.Instrument {
	if i == nil {
		return nil
	}
	return &entity.Instrument{
		Id:               i.Id,
		Name:             i.Name,
		Model:            i.Model,
		SerialNumber:     i.SerialNumber,
		Location:         i.Location,
		Status:           i.Status,
		MaintenanceLevel: i.MaintenanceLevel,
		InstalledAt:      i.InstalledAt,
		LastCalibratedAt: i.LastCalibratedAt,
		Notes:            i.Notes,
		CreatedAt:        i.CreatedAt,
		UpdatedAt:        updatedPtr(i.UpdatedAt),
	}
}

func (m *InstrumentMapper) ToModel(i *entity.Instrument) *model.Instrument {
	if i == nil {
		return nil
	}
	return &model.Instrument{
		Id:               i.Id,
		Name:             i.Name,
		Model:            i.Model,
		SerialNumber:     i.SerialNumber,
		Location:         i.Location,
		Status:           i.Status,
		MaintenanceLevel: i.MaintenanceLevel,
		InstalledAt:      i.InstalledAt,
		LastCalibratedAt: i.LastCalibratedAt,
		Notes:            i.Notes,
		CreatedAt:        i.CreatedAt,
		UpdatedAt:        updatedVal(i.UpdatedAt),
	}
}

func (m *InstrumentMapper) ToEntities(in []*model.Instrument) []*entity.Instrument {
	return mapAll(in, m.ToEntity)
}

type MaintenanceMapper struct{}

func NewMaintenanceMapper() *MaintenanceMapper { return &MaintenanceMapper{} }

func (m *MaintenanceMapper) ToEntity(r *model.MaintenanceRecord) *entity.MaintenanceRecord {
	if r == nil {
		return nil
	}
	return &entity.MaintenanceRecord{
		Id:           r.Id,
		InstrumentId: r.InstrumentId,
		Component:    r.Component,
		HealthScore:  r.HealthScore,
		Cost:         r.Cost,
		Technician:   r.Technician,
		Notes:        r.Notes,
		PerformedAt:  r.PerformedAt,
		CreatedAt:    r.CreatedAt,
	}
}

func (m *MaintenanceMapper) ToModel(r *entity.MaintenanceRecord) *model.MaintenanceRecord {
	if r == nil {
		return nil
	}
	return &model.MaintenanceRecord{
		Id:           r.Id,
		InstrumentId: r.InstrumentId,
		Component:    r.Component,
		HealthScore:  r.HealthScore,
		Cost:         r.Cost,
		Technician:   r.Technician,
		Notes:        r.Notes,
		PerformedAt:  r.PerformedAt,
		CreatedAt:    r.CreatedAt,
	}
}

func (m *MaintenanceMapper) ToEntities(in []*model.MaintenanceRecord) []*entity.MaintenanceRecord {
	return mapAll(in, m.ToEntity)
}

type MethodMapper struct{}

func NewMethodMapper() *MethodMapper { return &MethodMapper{} }

func (m *MethodMapper) ToEntity(x *model.Method) *entity.Method {
	if x == nil {
		return nil
	}
	return &entity.Method{
		Id:           x.Id,
		Name:         x.Name,
		Description:  x.Description,
		InstrumentId: x.InstrumentId,
		Params: methodperf.Params{
			Oven:     x.Oven.Data(),
			Inlet:    x.Inlet.Data(),
			Column:   x.Column.Data(),
			Carrier:  x.Carrier.Data(),
			Detector: x.Detector.Data(),
		},
		AnalysisTimeMin:   x.AnalysisTimeMin,
		DetectionLimitPpm: x.DetectionLimitPpm,
		EfficiencyPercent: x.EfficiencyPercent,
		ColumnTemperature: x.ColumnTemperature,
		CreatedAt:         x.CreatedAt,
		UpdatedAt:         updatedPtr(x.UpdatedAt),
	}
}

func (m *MethodMapper) ToModel(x *entity.Method) *model.Method {
	if x == nil {
		return nil
	}
	return &model.Method{
		Id:                x.Id,
		Name:              x.Name,
		Description:       x.Description,
		InstrumentId:      x.InstrumentId,
		Oven:              datatypes.NewJSONType(x.Params.Oven),
		Inlet:             datatypes.NewJSONType(x.Params.Inlet),
		Column:            datatypes.NewJSONType(x.Params.Column),
		Carrier:           datatypes.NewJSONType(x.Params.Carrier),
		Detector:          datatypes.NewJSONType(x.Params.Detector),
		AnalysisTimeMin:   x.AnalysisTimeMin,
		DetectionLimitPpm: x.DetectionLimitPpm,
		EfficiencyPercent: x.EfficiencyPercent,
		ColumnTemperature: x.ColumnTemperature,
		CreatedAt:         x.CreatedAt,
		UpdatedAt:         updatedVal(x.UpdatedAt),
	}
}

func (m *MethodMapper) ToEntities(in []*model.Method) []*entity.Method {
	return mapAll(in, m.ToEntity)
}

type CompoundMapper struct{}

func NewCompoundMapper() *CompoundMapper { return &CompoundMapper{} }

func (m *CompoundMapper) ToEntity(c *model.Compound) *entity.Compound {
	if c == nil {
		return nil
	}
	return &entity.Compound{
		Id:              c.Id,
		Name:            c.Name,
		CasNumber:       c.CasNumber,
		Formula:         c.Formula,
		MolecularWeight: c.MolecularWeight,
		RetentionTime:   c.RetentionTime,
		RtTolerance:     c.RtTolerance,
		Category:        c.Category,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       updatedPtr(c.UpdatedAt),
	}
}

func (m *CompoundMapper) ToModel(c *entity.Compound) *model.Compound {
	if c == nil {
		return nil
	}
	return &model.Compound{
		Id:              c.Id,
		Name:            c.Name,
		CasNumber:       c.CasNumber,
		Formula:         c.Formula,
		MolecularWeight: c.MolecularWeight,
		RetentionTime:   c.RetentionTime,
		RtTolerance:     c.RtTolerance,
		Category:        c.Category,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       updatedVal(c.UpdatedAt),
	}
}

func (m *CompoundMapper) ToEntities(in []*model.Compound) []*entity.Compound {
	return mapAll(in, m.ToEntity)
}

type SampleMapper struct{}

func NewSampleMapper() *SampleMapper { return &SampleMapper{} }

func (m *SampleMapper) ToEntity(s *model.Sample) *entity.Sample {
	if s == nil {
		return nil
	}
	return &entity.Sample{
		Id:           s.Id,
		SampleCode:   s.SampleCode,
		Name:         s.Name,
		Matrix:       s.Matrix,
		Status:       s.Status,
		Priority:     s.Priority,
		MethodId:     s.MethodId,
		InstrumentId: s.InstrumentId,
		ReceivedAt:   s.ReceivedAt,
		CompletedAt:  s.CompletedAt,
		Notes:        s.Notes,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    updatedPtr(s.UpdatedAt),
	}
}

func (m *SampleMapper) ToModel(s *entity.Sample) *model.Sample {
	if s == nil {
		return nil
	}
	return &model.Sample{
		Id:           s.Id,
		SampleCode:   s.SampleCode,
		Name:         s.Name,
		Matrix:       s.Matrix,
		Status:       s.Status,
		Priority:     s.Priority,
		MethodId:     s.MethodId,
		InstrumentId: s.InstrumentId,
		ReceivedAt:   s.ReceivedAt,
		CompletedAt:  s.CompletedAt,
		Notes:        s.Notes,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    updatedVal(s.UpdatedAt),
	}
}

func (m *SampleMapper) ToEntities(in []*model.Sample) []*entity.Sample {
	return mapAll(in, m.ToEntity)
}

type CostMapper struct{}

func NewCostMapper() *CostMapper { return &CostMapper{} }

func (m *CostMapper) ToEntity(c *model.CostRecord) *entity.CostRecord {
	if c == nil {
		return nil
	}
	return &entity.CostRecord{
		Id:             c.Id,
		Label:          c.Label,
		Category:       c.Category,
		MethodId:       c.MethodId,
		SampleCount:    c.SampleCount,
		Inputs:         map[string]interface{}(c.Inputs),
		Gas:            c.Gas,
		ColumnWear:     c.ColumnWear,
		Labor:          c.Labor,
		Consumables:    c.Consumables,
		InstrumentTime: c.InstrumentTime,
		Total:          c.Total,
		PerSample:      c.PerSample,
		CreatedAt:      c.CreatedAt,
	}
}

func (m *CostMapper) ToModel(c *entity.CostRecord) *model.CostRecord {
	if c == nil {
		return nil
	}
	return &model.CostRecord{
		Id:             c.Id,
		Label:          c.Label,
		Category:       c.Category,
		MethodId:       c.MethodId,
		SampleCount:    c.SampleCount,
		Inputs:         datatypes.JSONMap(c.Inputs),
		Gas:            c.Gas,
		ColumnWear:     c.ColumnWear,
		Labor:          c.Labor,
		Consumables:    c.Consumables,
		InstrumentTime: c.InstrumentTime,
		Total:          c.Total,
		PerSample:      c.PerSample,
		CreatedAt:      c.CreatedAt,
	}
}

func (m *CostMapper) ToEntities(in []*model.CostRecord) []*entity.CostRecord {
	return mapAll(in, m.ToEntity)
}

type CalibrationMapper struct{}

func NewCalibrationMapper() *CalibrationMapper { return &CalibrationMapper{} }

func (m *CalibrationMapper) ToEntity(c *model.CalibrationResult) *entity.CalibrationResult {
	if c == nil {
		return nil
	}
	points := make([]entity.CalibrationPoint, len(c.Points))
	for i, p := range c.Points {
		points[i] = entity.CalibrationPoint{Concentration: p.Concentration, Area: p.Area}
	}
	return &entity.CalibrationResult{
		Id:             c.Id,
		Analyte:        c.Analyte,
		Method:         c.Method,
		Points:         points,
		Slope:          c.Slope,
		Intercept:      c.Intercept,
		RSquared:       c.RSquared,
		StdError:       c.StdError,
		Lod:            c.Lod,
		Loq:            c.Loq,
		DetectionLimit: c.DetectionLimit,
		PointCount:     c.PointCount,
		Warnings:       append([]string{}, c.Warnings...),
		CreatedBy:      c.CreatedBy,
		CreatedAt:      c.CreatedAt,
	}
}

func (m *CalibrationMapper) ToModel(c *entity.CalibrationResult) *model.CalibrationResult {
	if c == nil {
		return nil
	}
	points := make(datatypes.JSONSlice[model.CalibrationPointJSON], len(c.Points))
	for i, p := range c.Points {
		points[i] = model.CalibrationPointJSON{Concentration: p.Concentration, Area: p.Area}
	}
	return &model.CalibrationResult{
		Id:             c.Id,
		Analyte:        c.Analyte,
		Method:         c.Method,
		Points:         points,
		Slope:          c.Slope,
		Intercept:      c.Intercept,
		RSquared:       c.RSquared,
		StdError:       c.StdError,
		Lod:            c.Lod,
		Loq:            c.Loq,
		DetectionLimit: c.DetectionLimit,
		PointCount:     c.PointCount,
		Warnings:       datatypes.JSONSlice[string](append([]string{}, c.Warnings...)),
		CreatedBy:      c.CreatedBy,
		CreatedAt:      c.CreatedAt,
	}
}

func (m *CalibrationMapper) ToEntities(in []*model.CalibrationResult) []*entity.CalibrationResult {
	return mapAll(in, m.ToEntity)
}

type OCRAnalysisMapper struct{}

func NewOCRAnalysisMapper() *OCRAnalysisMapper { return &OCRAnalysisMapper{} }

func (m *OCRAnalysisMapper) ToEntity(a *model.OCRAnalysis) *entity.OCRAnalysis {
	if a == nil {
		return nil
	}
	peaks := make([]entity.OCRPeak, len(a.Peaks))
	for i, p := range a.Peaks {
		peaks[i] = entity.OCRPeak(p)
	}
	return &entity.OCRAnalysis{
		Hash:        a.Hash,
		Filename:    a.Filename,
		ContentType: a.ContentType,
		SizeBytes:   a.SizeBytes,
		BlobKey:     a.BlobKey,
		Engine:      a.Engine,
		Peaks:       peaks,
		CreatedAt:   a.CreatedAt,
	}
}

func (m *OCRAnalysisMapper) ToModel(a *entity.OCRAnalysis) *model.OCRAnalysis {
	if a == nil {
		return nil
	}
	peaks := make(datatypes.JSONSlice[model.OCRPeakJSON], len(a.Peaks))
	for i, p := range a.Peaks {
		peaks[i] = model.OCRPeakJSON(p)
	}
	return &model.OCRAnalysis{
		Hash:        a.Hash,
		Filename:    a.Filename,
		ContentType: a.ContentType,
		SizeBytes:   a.SizeBytes,
		BlobKey:     a.BlobKey,
		Engine:      a.Engine,
		Peaks:       peaks,
		CreatedAt:   a.CreatedAt,
	}
}

type BrandingMapper struct{}

func NewBrandingMapper() *BrandingMapper { return &BrandingMapper{} }

func (m *BrandingMapper) ToEntity(b *model.BrandingTheme) *entity.BrandingTheme {
	if b == nil {
		return nil
	}
	return &entity.BrandingTheme{
		Id:             b.Id,
		Name:           b.Name,
		PrimaryColor:   b.PrimaryColor,
		SecondaryColor: b.SecondaryColor,
		AccentColor:    b.AccentColor,
		LogoUrl:        b.LogoUrl,
		FontFamily:     b.FontFamily,
		IsActive:       b.IsActive,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      updatedPtr(b.UpdatedAt),
	}
}

func (m *BrandingMapper) ToModel(b *entity.BrandingTheme) *model.BrandingTheme {
	if b == nil {
		return nil
	}
	return &model.BrandingTheme{
		Id:             b.Id,
		Name:           b.Name,
		PrimaryColor:   b.PrimaryColor,
		SecondaryColor: b.SecondaryColor,
		AccentColor:    b.AccentColor,
		LogoUrl:        b.LogoUrl,
		FontFamily:     b.FontFamily,
		IsActive:       b.IsActive,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      updatedVal(b.UpdatedAt),
	}
}

func (m *BrandingMapper) ToEntities(in []*model.BrandingTheme) []*entity.BrandingTheme {
	return mapAll(in, m.ToEntity)
}

type AuditMapper struct{}

func NewAuditMapper() *AuditMapper { return &AuditMapper{} }

func (m *AuditMapper) ToEntity(a *model.AuditLog) *entity.AuditLog {
	if a == nil {
		return nil
	}
	return &entity.AuditLog{
		Id:         a.Id,
		EntityType: a.EntityType,
		EntityId:   a.EntityId,
		Action:     a.Action,
		Actor:      a.Actor,
		Details:    map[string]interface{}(a.Details),
		CreatedAt:  a.CreatedAt,
	}
}

func (m *AuditMapper) ToModel(a *entity.AuditLog) *model.AuditLog {
	if a == nil {
		return nil
	}
	return &model.AuditLog{
		Id:         a.Id,
		EntityType: a.EntityType,
		EntityId:   a.EntityId,
		Action:     a.Action,
		Actor:      a.Actor,
		Details:    datatypes.JSONMap(a.Details),
		CreatedAt:  a.CreatedAt,
	}
}

func (m *AuditMapper) ToEntities(in []*model.AuditLog) []*entity.AuditLog {
	return mapAll(in, m.ToEntity)
}
