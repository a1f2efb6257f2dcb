package main

import (
	"intellilab-gc-be/internal/model"
	"intellilab-gc-be/internal/service"
	"intellilab-gc-be/pkg/methodperf"

	"github.com/fatih/color"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var seedInstruments = []model.Instrument{
	{Name: "GC-FID Line 1", Model: "Agilent 8890", SerialNumber: "GC8890-0001", Location: "Lab A", Status: "online", MaintenanceLevel: "routine"},
	{Name: "GC-MS Line 2", Model: "Agilent 8890 / 5977B", SerialNumber: "GC5977-0002", Location: "Lab A", Status: "online", MaintenanceLevel: "routine"},
	{Name: "GC-TCD Gas Analyzer", Model: "Shimadzu GC-2030", SerialNumber: "GC2030-0003", Location: "Lab B", Status: "maintenance", MaintenanceLevel: "preventive"},
}

var seedCompounds = []model.Compound{
	{Name: "Benzene", CasNumber: "71-43-2", Formula: "C6H6", MolecularWeight: 78.11, RetentionTime: 3.05, RtTolerance: 0.05, Category: "aromatic"},
	{Name: "Toluene", CasNumber: "108-88-3", Formula: "C7H8", MolecularWeight: 92.14, RetentionTime: 4.21, RtTolerance: 0.05, Category: "aromatic"},
	{Name: "Ethylbenzene", CasNumber: "100-41-4", Formula: "C8H10", MolecularWeight: 106.17, RetentionTime: 5.62, RtTolerance: 0.05, Category: "aromatic"},
	{Name: "o-Xylene", CasNumber: "95-47-6", Formula: "C8H10", MolecularWeight: 106.17, RetentionTime: 6.14, RtTolerance: 0.05, Category: "aromatic"},
	{Name: "Methanol", CasNumber: "67-56-1", Formula: "CH4O", MolecularWeight: 32.04, RetentionTime: 1.42, RtTolerance: 0.05, Category: "solvent"},
}

func seedMethod() model.Method {
	params := methodperf.Params{
		Oven:     methodperf.Oven{InitialTemp: 40, InitialHold: 2, RampRate: 10, FinalTemp: 250, FinalHold: 5},
		Inlet:    methodperf.Inlet{Mode: methodperf.ModeSplit, Temperature: 250, SplitRatio: 50, InjectionVolumeUL: 1},
		Column:   methodperf.Column{LengthM: 30, IDmm: 0.25, FilmUm: 0.25, Phase: "5% phenyl"},
		Carrier:  methodperf.Carrier{Gas: "helium", FlowMLMin: 1.2},
		Detector: methodperf.Detector{Type: "fid", Temperature: 300},
	}
	perf := methodperf.Estimate(params)
	return model.Method{
		Name:              "BTEX Screening",
		Description:       "Aromatics screen on a 30 m 5% phenyl column",
		Oven:              datatypes.NewJSONType(params.Oven),
		Inlet:             datatypes.NewJSONType(params.Inlet),
		Column:            datatypes.NewJSONType(params.Column),
		Carrier:           datatypes.NewJSONType(params.Carrier),
		Detector:          datatypes.NewJSONType(params.Detector),
		AnalysisTimeMin:   perf.AnalysisTimeMin,
		DetectionLimitPpm: perf.DetectionLimitPpm,
		EfficiencyPercent: perf.EfficiencyPercent,
		ColumnTemperature: perf.ColumnTemperature,
	}
}

func seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, inst := range seedInstruments {
			inst := inst
			if err := tx.Where(model.Instrument{SerialNumber: inst.SerialNumber}).FirstOrCreate(&inst).Error; err != nil {
				return err
			}
		}
		color.Green("Seeded %d instruments", len(seedInstruments))

		for _, c := range seedCompounds {
			c := c
			if err := tx.Where(model.Compound{Name: c.Name}).FirstOrCreate(&c).Error; err != nil {
				return err
			}
		}
		color.Green("Seeded %d compounds", len(seedCompounds))

		method := seedMethod()
		if err := tx.Where(model.Method{Name: method.Name}).FirstOrCreate(&method).Error; err != nil {
			return err
		}
		color.Green("Seeded method %q", method.Name)

		def := service.DefaultTheme
		theme := model.BrandingTheme{
			Name:           def.Name,
			PrimaryColor:   def.PrimaryColor,
			SecondaryColor: def.SecondaryColor,
			AccentColor:    def.AccentColor,
			FontFamily:     def.FontFamily,
			IsActive:       true,
		}
		var active int64
		if err := tx.Model(&model.BrandingTheme{}).Where("is_active = ?", true).Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			theme.IsActive = false
		}
		if err := tx.Where(model.BrandingTheme{Name: theme.Name}).FirstOrCreate(&theme).Error; err != nil {
			return err
		}
		color.Green("Seeded branding theme %q", theme.Name)
		return nil
	})
}
