package main

import (
	"fmt"
	"os"

	"intellilab-gc-be/internal/config"
	"intellilab-gc-be/internal/model"
	"intellilab-gc-be/pkg/database"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the IntelliLab GC database schema",
	Long: `Manage the IntelliLab GC database schema.

Available subcommands:
  up   - Create extensions and AutoMigrate every lab table
  seed - Insert reference instruments, methods, compounds and the default theme`,
	SilenceUsage: true,
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Create extensions and migrate every lab table",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := connect()
		if err != nil {
			return err
		}
		return migrateUp(db)
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert reference data (idempotent)",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := connect()
		if err != nil {
			return err
		}
		if withMigrate {
			if err := migrateUp(db); err != nil {
				return err
			}
		}
		return seed(db)
	},
}

var withMigrate bool

func init() {
	seedCmd.Flags().BoolVar(&withMigrate, "migrate", false, "run migrate up before seeding")
	rootCmd.AddCommand(upCmd, seedCmd)
}

func connect() (*gorm.DB, error) {
	cfg := config.Load()
	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}

func migrateUp(db *gorm.DB) error {
	color.Cyan("Step 1: Setting up extensions...")
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			color.Yellow("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	models := model.AllLabModels()
	color.Cyan("Step 2: Running AutoMigrate for %d tables...", len(models))
	if err := db.AutoMigrate(models...); err != nil {
		color.Red("AutoMigrate failed: %v", err)
		return err
	}

	color.Green("Success: database migration completed.")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
