package migration

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/gorm"

	"derbydesk/internal/shared/logger"
)

// Strategy is one way of bringing the schema up to date.
type Strategy interface {
	Migrate(db *gorm.DB, models ...interface{}) error
	GetName() string
}

// GolangMigrateStrategy applies versioned SQL scripts with golang-migrate.
// Unlike AutoMigrate it tracks a schema version, so it also supports
// stepping down and reporting status.
type GolangMigrateStrategy struct {
	scriptsPath string
	driver      string
	logger      logger.Interface
}

// NewGolangMigrateStrategy builds a script-based strategy for the given
// database driver ("sqlite" or "mysql").
func NewGolangMigrateStrategy(scriptsPath, driver string) *GolangMigrateStrategy {
	return &GolangMigrateStrategy{
		scriptsPath: scriptsPath,
		driver:      driver,
		logger:      logger.NewLogger().With("component", "migration.golang-migrate"),
	}
}

func (s *GolangMigrateStrategy) GetName() string { return "golang_migrate" }

// open builds a migrate instance over db's underlying connection. The caller
// must Close it.
func (s *GolangMigrateStrategy) open(db *gorm.DB) (*migrate.Migrate, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	var drv database.Driver
	switch s.driver {
	case "sqlite":
		drv, err = migratesqlite.WithInstance(sqlDB, &migratesqlite.Config{})
	default:
		drv, err = migratemysql.WithInstance(sqlDB, &migratemysql.Config{})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s driver: %w", s.driver, err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+s.scriptsPath, s.driver, drv)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

// Migrate runs all pending up migrations. A dirty database is refused; it
// needs manual repair before migrations can continue.
func (s *GolangMigrateStrategy) Migrate(db *gorm.DB, _ ...interface{}) error {
	s.logger.Infow("starting golang-migrate migration",
		"scripts_path", s.scriptsPath,
		"driver", s.driver)

	m, err := s.open(db)
	if err != nil {
		return err
	}
	defer m.Close()

	from, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}
	if dirty {
		return fmt.Errorf("database is in dirty state at version %d", from)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		s.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	to, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get final migration version: %w", err)
	}

	s.logger.Infow("migration completed successfully",
		"from_version", from,
		"to_version", to)
	return nil
}

// MigrateDown rolls back the given number of migration steps.
func (s *GolangMigrateStrategy) MigrateDown(db *gorm.DB, steps int) error {
	s.logger.Infow("starting down migration", "steps", steps)

	m, err := s.open(db)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		s.logger.Errorw("down migration failed", "error", err)
		return fmt.Errorf("failed to run down migrations: %w", err)
	}

	s.logger.Infow("down migration completed successfully")
	return nil
}

// GetVersion reports the current schema version and dirty flag.
func (s *GolangMigrateStrategy) GetVersion(db *gorm.DB) (uint, bool, error) {
	m, err := s.open(db)
	if err != nil {
		return 0, false, err
	}
	defer m.Close()
	return m.Version()
}
