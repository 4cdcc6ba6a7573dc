package database

import (
	"os"
	"sync"

	"github.com/clinicdesk/emr-core/pkg/common/config"
	"github.com/clinicdesk/emr-core/pkg/common/logger"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	db     *gorm.DB
	dbOnce sync.Once
)

// GetSQLite opens the application database file, creating the data directory
// on first run. The file is owned exclusively by the single running instance;
// a second concurrent writer is unsupported.
func GetSQLite(cfg *config.Config) (*gorm.DB, error) {
	var err error
	dbOnce.Do(func() {
		if err = os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			logger.Log.WithError(err).Error("Failed to create data directory")
			return
		}

		db, err = Open(cfg.DatabasePath())
		if err != nil {
			logger.Log.WithError(err).Error("Failed to open SQLite database")
			return
		}

		logger.Log.WithField("path", cfg.DatabasePath()).Info("Connected to SQLite database")
	})

	return db, err
}

// Open opens a gorm handle on the given SQLite file or DSN. Exposed separately
// so tests can use ":memory:" databases without touching global state.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
}

func CloseSQLite() error {
	if db != nil {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
