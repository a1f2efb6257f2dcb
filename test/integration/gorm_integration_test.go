package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"intellilab-gc-be/internal/entity"
	"intellilab-gc-be/internal/model"
	"intellilab-gc-be/internal/repository/specification"
	"intellilab-gc-be/internal/repository/unitofwork"
	"intellilab-gc-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(model.AllLabModels()...))
	return gormDB
}

func TestGormConnection(t *testing.T) {
	gormDB := openDB(t)

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	sqlDB, _ := gormDB.DB()
	assert.NoError(t, sqlDB.Ping())

	t.Run("Check Sample Repository", func(t *testing.T) {
		count, err := uow.SampleRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Sample count: %d", count)
	})

	t.Run("Check Instrument Repository", func(t *testing.T) {
		count, err := uow.InstrumentRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Instrument count: %d", count)
	})
}

func TestSampleRepositoryRoundTrip(t *testing.T) {
	gormDB := openDB(t)
	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(gormDB).NewUnitOfWork(ctx)

	code := "IT-" + uuid.NewString()[:8]
	sample := &entity.Sample{
		SampleCode: code,
		Name:       "Integration diesel",
		Status:     "received",
		Priority:   "high",
		ReceivedAt: time.Now().UTC(),
	}

	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.SampleRepository().Create(ctx, sample))
	require.NoError(t, uow.Commit())
	t.Cleanup(func() {
		_ = uow.SampleRepository().Delete(ctx, sample.Id)
	})

	found, err := uow.SampleRepository().FindOne(ctx, specification.BySampleCode{Code: code})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "high", found.Priority)

	counts, err := uow.SampleRepository().CountByStatus(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, counts["received"], int64(1))
}
