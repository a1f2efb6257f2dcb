package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type PoolConfig struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

var DefaultPool = PoolConfig{
	MaxIdleConns:    10,
	MaxOpenConns:    50,
	ConnMaxLifetime: 30 * time.Minute,
}

type Option func(*options)

type options struct {
	pool   PoolConfig
	logger gormlogger.Interface
}

func WithPool(pool PoolConfig) Option {
	return func(o *options) {
		if pool.MaxIdleConns > 0 {
			o.pool.MaxIdleConns = pool.MaxIdleConns
		}
		if pool.MaxOpenConns > 0 {
			o.pool.MaxOpenConns = pool.MaxOpenConns
		}
		if pool.ConnMaxLifetime > 0 {
			o.pool.ConnMaxLifetime = pool.ConnMaxLifetime
		}
	}
}

// WithLogger replaces the stdout query logger, e.g. with NewGormLogger.
func WithLogger(l gormlogger.Interface) Option {
	return func(o *options) { o.logger = l }
}

// Migrations and seeds print warnings only; the REST server swaps in the
// application logger once the container is built.
func stdoutLogger() gormlogger.Interface {
	return gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  true,
		},
	)
}

func NewGormDBFromDSN(dsn string, opts ...Option) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("empty database DSN")
	}

	o := options{pool: DefaultPool, logger: stdoutLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: o.logger,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(o.pool.MaxIdleConns)
	sqlDB.SetMaxOpenConns(o.pool.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(o.pool.ConnMaxLifetime)

	return db, nil
}
