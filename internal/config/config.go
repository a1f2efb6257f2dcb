package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	SMTP      SMTPConfig
	OCR       OCRConfig
	Blob      BlobConfig
	Dashboard DashboardConfig
	Insight   InsightConfig
	Training  TrainingConfig
	Tracing   TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	HubLogFilePath     string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JwtSecret          string
	BodyLimitBytes     int
}

type DatabaseConfig struct {
	Connection      string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	SlowQuery       time.Duration
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
	AlertTo    string // Lab manager inbox for high-priority insights
}

type OCRConfig struct {
	EngineURL      string
	Timeout        time.Duration
	MaxUploadBytes int64
	CacheTTL       time.Duration
}

type BlobConfig struct {
	Driver      string // "fs" | "s3" | "memory"
	FsRoot      string
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3PathStyle bool
}

type DashboardConfig struct {
	RefreshSchedule string // cron expression, e.g. "@every 30s"
	SnapshotTTL     time.Duration
}

type InsightConfig struct {
	Debounce            time.Duration
	InjectorTemperature float64
	InjectorHealth      float64
	ColumnTemperature   float64
	ColumnHealth        float64
	LongRunMinutes      float64
	CostPerSample       float64
	CriticalHealth      float64
	MaintenanceSpend    float64
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	SampleRatio float64
}

type TrainingConfig struct {
	CatalogPath string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			HubLogFilePath:     getEnv("HUB_LOG_FILE_PATH", "logs/hub.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JwtSecret:          getEnv("JWT_SECRET", ""),
			BodyLimitBytes:     getEnvAsInt("BODY_LIMIT_BYTES", 12*1024*1024),
		},
		Database: DatabaseConfig{
			Connection:      getEnv("DB_CONNECTION_STRING", ""),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 50),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			SlowQuery:       getEnvAsDuration("DB_SLOW_QUERY", 200*time.Millisecond),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "IntelliLab GC"),
			AlertTo:    getEnv("SMTP_ALERT_TO", ""),
		},
		OCR: OCRConfig{
			EngineURL:      getEnv("OCR_ENGINE_URL", "http://localhost:8500/analyze"),
			Timeout:        getEnvAsDuration("OCR_TIMEOUT", 60*time.Second),
			MaxUploadBytes: int64(getEnvAsInt("OCR_MAX_UPLOAD_BYTES", 10*1024*1024)),
			CacheTTL:       getEnvAsDuration("OCR_CACHE_TTL", 24*time.Hour),
		},
		Blob: BlobConfig{
			Driver:      getEnv("BLOB_DRIVER", "fs"),
			FsRoot:      getEnv("BLOB_FS_ROOT", "./uploads"),
			S3Bucket:    getEnv("BLOB_S3_BUCKET", ""),
			S3Region:    getEnv("BLOB_S3_REGION", "us-east-1"),
			S3Endpoint:  getEnv("BLOB_S3_ENDPOINT", ""),
			S3PathStyle: getEnvAsBool("BLOB_S3_PATH_STYLE", false),
		},
		Dashboard: DashboardConfig{
			RefreshSchedule: getEnv("DASHBOARD_REFRESH_SCHEDULE", "@every 30s"),
			SnapshotTTL:     getEnvAsDuration("DASHBOARD_SNAPSHOT_TTL", 2*time.Minute),
		},
		Insight: InsightConfig{
			Debounce:            getEnvAsDuration("INSIGHT_DEBOUNCE", 100*time.Millisecond),
			InjectorTemperature: getEnvAsFloat("INSIGHT_INJECTOR_TEMPERATURE", 250),
			InjectorHealth:      getEnvAsFloat("INSIGHT_INJECTOR_HEALTH", 70),
			ColumnTemperature:   getEnvAsFloat("INSIGHT_COLUMN_TEMPERATURE", 300),
			ColumnHealth:        getEnvAsFloat("INSIGHT_COLUMN_HEALTH", 80),
			LongRunMinutes:      getEnvAsFloat("INSIGHT_LONG_RUN_MINUTES", 30),
			CostPerSample:       getEnvAsFloat("INSIGHT_COST_PER_SAMPLE", 50),
			CriticalHealth:      getEnvAsFloat("INSIGHT_CRITICAL_HEALTH", 50),
			MaintenanceSpend:    getEnvAsFloat("INSIGHT_MAINTENANCE_SPEND", 1000),
		},
		Training: TrainingConfig{
			CatalogPath: getEnv("TRAINING_CATALOG_PATH", "config/exercises.yaml"),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			SampleRatio: getEnvAsFloat("OTEL_SAMPLE_RATIO", 1),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
