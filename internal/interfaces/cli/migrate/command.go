package migrate

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"derbydesk/internal/infrastructure/config"
	"derbydesk/internal/infrastructure/database"
	"derbydesk/internal/infrastructure/migration"
	"derbydesk/internal/shared/logger"
)

var (
	env   string
	steps int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Apply, roll back, and inspect database schema migrations.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Bring the database schema up to date. Development uses GORM AutoMigrate; test and production apply versioned SQL scripts.`,
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE:  runStatus,
	}
}

func initEnv() (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return cfg, logger.NewLogger(), nil
}

func runUp(cmd *cobra.Command, args []string) error {
	cfg, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running migrations", "environment", env, "driver", cfg.Database.Driver)

	manager := migration.NewManager(env, cfg.Database.Driver)
	if err := manager.Migrate(database.Get(), migration.AutoMigrateModels()...); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Infow("migrations completed")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	cfg, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	strategy := scriptStrategy(cfg)
	log.Infow("rolling back migrations", "steps", steps)

	if err := strategy.MigrateDown(database.Get(), steps); err != nil {
		return fmt.Errorf("rollback failed: %w", err)
	}

	log.Infow("rollback completed")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	strategy := scriptStrategy(cfg)

	version, dirty, err := strategy.GetVersion(database.Get())
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	log.Infow("migration status", "version", version, "dirty", dirty)
	fmt.Printf("version: %d\ndirty: %v\n", version, dirty)
	return nil
}

// scriptStrategy always uses the versioned SQL scripts; down and status have
// no meaning under AutoMigrate.
func scriptStrategy(cfg *config.Config) *migration.GolangMigrateStrategy {
	scriptsPath, _ := filepath.Abs("./internal/infrastructure/migration/scripts")
	return migration.NewGolangMigrateStrategy(scriptsPath, cfg.Database.Driver)
}
