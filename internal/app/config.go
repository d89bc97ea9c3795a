package app

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/Roblokonha/StudyVault/internal/http/middleware"
	"github.com/Roblokonha/StudyVault/internal/platform/envutil"
	"github.com/Roblokonha/StudyVault/internal/platform/logger"
)

type Config struct {
	Port        string
	LogMode     string
	DBDriver    string
	SQLitePath  string
	RecallSeed  int64
	GraphSeed   int64
	TxRetries   int
	CORSOrigins []string
	ServiceName string
	Environment string
	Version     string
}

// LoadDotEnv reads .env from the working directory when present. Variables already
// set in the process environment win.
func LoadDotEnv(log *logger.Logger) {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	if err := godotenv.Load(); err != nil && log != nil {
		log.Warn("Could not load .env file", "error", err)
	}
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		Port:        envutil.String("PORT", "8080", log),
		LogMode:     envutil.String("LOG_MODE", "development", log),
		DBDriver:    envutil.String("DB_DRIVER", "postgres", log),
		SQLitePath:  envutil.String("SQLITE_PATH", "studyvault.db", log),
		RecallSeed:  envutil.Int64("RECALL_SEED", 0),
		GraphSeed:   envutil.Int64("GRAPH_STYLE_SEED", 0),
		TxRetries:   envutil.Int("TX_RETRIES", 2),
		CORSOrigins: envutil.List("CORS_ALLOWED_ORIGINS", middleware.DefaultOrigins),
		ServiceName: envutil.String("OTEL_SERVICE_NAME", "studyvault", log),
		Environment: envutil.String("APP_ENV", "development", log),
		Version:     envutil.String("APP_VERSION", "dev", log),
	}
}
