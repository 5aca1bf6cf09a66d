package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"storefront-service/internal/config"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Database owns the connection pool and the gorm session built on top of it
type Database struct {
	Gorm   *gorm.DB
	sqlDB  *sql.DB
	driver string
	logger *zap.Logger
}

// Open connects to the configured datastore, applies pending migrations and
// returns a ready gorm session.
// SQLite runs with a single connection (single writer) and foreign keys on.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Database, error) {
	driverName, dsn, err := connectionString(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.DBDriver == DriverSQLite {
		if dir := filepath.Dir(cfg.DBPath); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	if err := Migrate(cfg.DBDriver, driverName, dsn); err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set connection pool settings
	if cfg.DBDriver == DriverSQLite {
		sqlDB.SetMaxOpenConns(1) // Single writer
		sqlDB.SetMaxIdleConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	var dialector gorm.Dialector
	if cfg.DBDriver == DriverSQLite {
		dialector = &sqlite.Dialector{Conn: sqlDB}
	} else {
		dialector = postgres.New(postgres.Config{Conn: sqlDB})
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger:         NewGormLogger(logger),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	logger.Info("Database initialized successfully",
		zap.String("driver", cfg.DBDriver),
	)

	return &Database{
		Gorm:   gormDB,
		sqlDB:  sqlDB,
		driver: cfg.DBDriver,
		logger: logger,
	}, nil
}

func connectionString(cfg *config.Config) (driverName, dsn string, err error) {
	switch cfg.DBDriver {
	case DriverSQLite:
		return "sqlite3", cfg.DBPath + "?_journal_mode=WAL&_foreign_keys=1&_busy_timeout=5000", nil
	case DriverPostgres:
		return "postgres", fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode), nil
	default:
		return "", "", fmt.Errorf("unsupported database driver: %q", cfg.DBDriver)
	}
}

// Driver returns the configured driver name
func (d *Database) Driver() string {
	return d.driver
}

// Ping checks the database connection
func (d *Database) Ping(ctx context.Context) error {
	return d.sqlDB.PingContext(ctx)
}

// Close closes the underlying connection pool
func (d *Database) Close() error {
	return d.sqlDB.Close()
}

// IsForeignKeyViolation reports whether err was caused by a foreign key
// constraint, for either supported driver.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23503"
	}
	return false
}

// IsUniqueViolation reports whether err was caused by a unique constraint
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
