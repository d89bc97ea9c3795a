package db

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Roblokonha/StudyVault/internal/platform/logger"
)

type Service interface {
	DB() *gorm.DB
	AutoMigrateAll() error
}

// Open picks the backing store by driver name: "postgres" (default) or "sqlite".
func Open(log *logger.Logger, driver, sqlitePath string) (Service, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "postgres", "postgresql":
		return NewPostgresService(log)
	case "sqlite", "sqlite3":
		return NewSQLiteService(log, sqlitePath)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", driver)
	}
}
