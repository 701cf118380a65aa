package db

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"derbydesk/internal/infrastructure/config"
	"derbydesk/internal/infrastructure/database"
	"derbydesk/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database utilities",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newPingCommand(),
		newConfigCommand(),
	)

	return cmd
}

func newPingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Test database connectivity",
		RunE:  runPing,
	}
}

func newConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		RunE:  runConfig,
	}
}

func runPing(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	start := time.Now()
	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("database unreachable: %w", err)
	}
	defer database.Close()

	sqlDB, err := database.Get().DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	fmt.Printf("ok: %s backend reachable in %s\n", cfg.Database.Driver, time.Since(start).Round(time.Millisecond))
	return nil
}

// effectiveConfig mirrors Config with credentials masked for display.
type effectiveConfig struct {
	Server   any `yaml:"server"`
	Database any `yaml:"database"`
	Logger   any `yaml:"logger"`
	Email    any `yaml:"email"`
	Redis    any `yaml:"redis"`
	Storage  any `yaml:"storage"`
	Security any `yaml:"security"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	out := effectiveConfig{
		Server: cfg.Server,
		Database: map[string]any{
			"driver":      cfg.Database.Driver,
			"host":        cfg.Database.Host,
			"port":        cfg.Database.Port,
			"username":    cfg.Database.Username,
			"password":    mask(cfg.Database.Password),
			"database":    cfg.Database.Database,
			"sqlite_path": cfg.Database.SQLitePath,
		},
		Logger: cfg.Logger,
		Email: map[string]any{
			"enabled":       cfg.Email.Enabled,
			"smtp_host":     cfg.Email.SMTPHost,
			"smtp_port":     cfg.Email.SMTPPort,
			"smtp_user":     cfg.Email.SMTPUser,
			"smtp_password": mask(cfg.Email.SMTPPassword),
			"from_address":  cfg.Email.FromAddress,
		},
		Redis: map[string]any{
			"enabled":  cfg.Redis.Enabled,
			"host":     cfg.Redis.Host,
			"port":     cfg.Redis.Port,
			"password": mask(cfg.Redis.Password),
			"db":       cfg.Redis.DB,
		},
		Storage:  cfg.Storage,
		Security: cfg.Security,
	}

	encoded, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	fmt.Print(string(encoded))
	return nil
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "********"
}
