package database

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"kpa-forms-api/config"
	"kpa-forms-api/internal/bogie"
	"kpa-forms-api/internal/wheelspec"

	"github.com/glebarez/sqlite"
	_ "github.com/lib/pq"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverPQ       = "pq"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// Dialector picks the gorm dialect for cfg.DBDriver. "pq" runs the postgres dialect on
// top of lib/pq instead of pgx.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "", DriverPostgres:
		return postgres.Open(postgresDSN(cfg)), nil
	case DriverPQ:
		return postgres.New(postgres.Config{
			DriverName: "postgres",
			DSN:        postgresDSN(cfg),
		}), nil
	case DriverMySQL:
		return mysql.Open(mysqlDSN(cfg)), nil
	case DriverSQLite:
		return sqlite.Open(sqliteDSN(cfg)), nil
	default:
		return nil, fmt.Errorf("database: unsupported driver %q", cfg.DBDriver)
	}
}

func postgresDSN(cfg *config.Config) string {
	sslMode := cfg.DBSSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return "host=" + cfg.DBHost +
		" user=" + cfg.DBUser +
		" password=" + cfg.DBPassword +
		" dbname=" + cfg.DBName +
		" port=" + cfg.DBPort +
		" sslmode=" + sslMode
}

func mysqlDSN(cfg *config.Config) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
}

// sqliteDSN turns on foreign keys so ON DELETE CASCADE applies.
func sqliteDSN(cfg *config.Config) string {
	path := cfg.DBPath
	if path == "" {
		path = "kpa_forms.db"
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=" + url.QueryEscape("foreign_keys(1)")
}

func Open(cfg *config.Config, logLevel gormlogger.LogLevel) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("database: open %s: %w", cfg.DBDriver, err)
	}
	return db, nil
}

// AllModels lists every table owned by the service, parents before children.
func AllModels() []interface{} {
	return []interface{}{
		&wheelspec.WheelSpecification{},
		&wheelspec.WheelSpecificationFields{},
		&bogie.BogieChecksheetForm{},
		&bogie.BogieDetails{},
		&bogie.BogieChecksheet{},
		&bogie.BmbcChecksheet{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("database: migrate: %w", err)
	}
	return nil
}

// Ping checks the underlying connection.
func Ping(db *gorm.DB) error {
	if db == nil {
		return errors.New("database: not configured")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
