package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/storebase/storefront/internal/config"
)

// Open connects to the configured database and returns the storage
// handle the repositories are constructed with. TranslateError is on so
// unique-constraint violations surface as gorm.ErrDuplicatedKey
// regardless of driver.
func Open(cfg *config.DBConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(postgresDSN(cfg, cfg.Name))
	case "mysql":
		dialector = mysql.Open(mysqlDSN(cfg))
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// EnsureDatabase creates the configured database if it does not exist
// yet. Only implemented for postgres, where a fresh cluster has no
// application database; mysql DSNs are expected to point at an existing
// schema.
func EnsureDatabase(cfg *config.DBConfig) error {
	if cfg.Driver != "postgres" {
		return nil
	}

	admin, err := sql.Open("postgres", postgresDSN(cfg, "postgres"))
	if err != nil {
		return fmt.Errorf("failed to open admin connection: %w", err)
	}
	defer admin.Close()

	var exists bool
	err = admin.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", cfg.Name).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check for database %q: %w", cfg.Name, err)
	}
	if exists {
		return nil
	}

	if _, err := admin.Exec(fmt.Sprintf("CREATE DATABASE %q", cfg.Name)); err != nil {
		return fmt.Errorf("failed to create database %q: %w", cfg.Name, err)
	}
	return nil
}

// HealthCheck pings the underlying connection.
func HealthCheck(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func postgresDSN(cfg *config.DBConfig, dbname string) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, dbname, cfg.SSLMode)
}

func mysqlDSN(cfg *config.DBConfig) string {
	// clientFoundRows makes RowsAffected count matched rows, as postgres
	// does, so same-value updates don't read as missing rows.
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
}
