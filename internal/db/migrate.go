package db

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	// The following blank imports register the database drivers and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/modernprinters/banner-tracker/internal/models"
)

// Connect opens the database selected by dsn (postgres URL or sqlite file path).
func Connect(dsn string) (*gorm.DB, error) {
	dsn = NormalizeDSN(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("database DSN is empty, check environment configuration")
	}
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var gdb *gorm.DB
	var err error
	if IsPostgresDSN(dsn) {
		// remote servers may need a moment after startup
		for i := 0; i < 10; i++ {
			gdb, err = gorm.Open(postgres.Open(dsn), cfg)
			if err == nil {
				break
			}
			fmt.Println("Retrying DB connection...", err)
			time.Sleep(2 * time.Second)
		}
	} else {
		gdb, err = gorm.Open(sqlite.Open(dsn), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	if pingErr := gdb.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}
	return gdb, nil
}

// ConnectAndMigrate opens the database, brings the schema up to date and seeds
// default settings. With MIGRATIONS=1 the sql migrations in ./migrations run
// via golang-migrate; otherwise AutoMigrate keeps the dev loop simple.
func ConnectAndMigrate(dsn string) (*gorm.DB, error) {
	gdb, err := Connect(dsn)
	if err != nil {
		return nil, err
	}
	if v := strings.ToLower(os.Getenv("MIGRATIONS")); v == "1" || v == "true" || v == "yes" {
		if err := runSQLMigrations(NormalizeDSN(dsn)); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		for _, m := range []interface{}{&models.Job{}, &models.Payment{}, &models.Setting{}} {
			if migErr := gdb.AutoMigrate(m); migErr != nil {
				return nil, fmt.Errorf("automigrate %T: %w", m, migErr)
			}
		}
	}
	for _, table := range []string{"jobs", "payments", "settings"} {
		if !gdb.Migrator().HasTable(table) {
			return nil, errors.New("missing table after migration: " + table)
		}
	}
	if err := SeedSettings(gdb); err != nil {
		return nil, fmt.Errorf("seed settings: %w", err)
	}
	return gdb, nil
}

// SeedSettings inserts missing default settings rows. Existing values win.
func SeedSettings(gdb *gorm.DB) error {
	defaults := models.DefaultSettings()
	rows := []models.Setting{
		{Key: models.SettingPricePerSqft, Value: fmt.Sprintf("%g", defaults.PricePerSqft)},
		{Key: models.SettingReminderDays, Value: fmt.Sprintf("%d", defaults.ReminderDays)},
		{Key: models.SettingCarryForward, Value: fmt.Sprintf("%g", defaults.CarryForward)},
	}
	for _, row := range rows {
		var existing models.Setting
		err := gdb.Where("key = ?", row.Key).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if cerr := gdb.Create(&row).Error; cerr != nil {
				return cerr
			}
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// runSQLMigrations executes migrations in ./migrations using golang-migrate file source.
func runSQLMigrations(dsn string) error {
	m, err := migrate.New("file://migrations", MigrateURL(dsn))
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
