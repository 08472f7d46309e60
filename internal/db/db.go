package db

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Leganyst/meeting-planner/internal/config"
)

func NewGormDB(cfg *config.DBConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.Path)
	default:
		dialector = postgres.Open(cfg.DSN())
	}

	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		NowFunc: func() time.Time {
			// всегда в UTC, дальше уже сами конвертим в нужные таймзоны
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("gorm open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db.DB(): %w", err)
	}

	// in-memory sqlite живёт в рамках одного соединения
	if cfg.Driver == config.DriverSQLite && isMemory(cfg.Path) {
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifeTime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifeTime) * time.Minute)
	}

	return db, nil
}

// NewInMemory открывает пустую sqlite-базу в памяти с накатанной схемой migrate.
func NewInMemory(migrate func(*gorm.DB) error) (*gorm.DB, error) {
	db, err := NewGormDB(&config.DBConfig{Driver: config.DriverSQLite, Path: ":memory:"})
	if err != nil {
		return nil, err
	}
	if migrate != nil {
		if err := migrate(db); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return db, nil
}

func isMemory(path string) bool {
	return path == ":memory:" || strings.Contains(path, "mode=memory")
}
