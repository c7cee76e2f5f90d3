package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"skillcheck_backend/internal/config"
	"skillcheck_backend/internal/model"
	"skillcheck_backend/pkg/logger"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, mode string) (*gorm.DB, error) {
	dialector, err := openDialector(cfg)
	if err != nil {
		return nil, err
	}

	logLevel := gormlogger.Warn
	if mode == "debug" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	if cfg.Driver == "sqlite" && cfg.Path == ":memory:" {
		// 每个连接各自一份内存库，只能保留一个连接
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	logger.Log.Info("Database connection established", zap.String("driver", cfg.Driver))

	if err := Migrate(db); err != nil {
		return nil, err
	}
	logger.Log.Info("Database migration completed")

	if err := SeedTopicFeatures(db); err != nil {
		return nil, fmt.Errorf("seed topic features: %w", err)
	}
	if cfg.SeedDemo {
		if err := SeedDemoData(db); err != nil {
			return nil, fmt.Errorf("seed demo data: %w", err)
		}
	}

	return db, nil
}

func openDialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.DBName,
			cfg.Charset,
			cfg.ParseTime,
		)
		return mysql.Open(dsn), nil
	case "sqlite":
		if cfg.Path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
				return nil, err
			}
		}
		return sqlite.Open(SQLiteDSN(cfg.Path)), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

// SQLiteDSN turns on foreign keys for every pooled connection; answers
// rely on it to cascade with their session.
func SQLiteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)"
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Subject{},
		&model.Course{},
		&model.AssessmentQuestion{},
		&model.AssessmentSession{},
		&model.AssessmentAnswer{},
		&model.TopicFeature{},
	)
}
