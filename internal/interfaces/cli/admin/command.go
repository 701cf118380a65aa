package admin

import (
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	auditApp "derbydesk/internal/application/audit"
	userUsecases "derbydesk/internal/application/user/usecases"
	"derbydesk/internal/infrastructure/auth"
	"derbydesk/internal/infrastructure/config"
	"derbydesk/internal/infrastructure/database"
	"derbydesk/internal/infrastructure/repository"
	"derbydesk/internal/shared/logger"
)

var (
	env         string
	username    string
	email       string
	displayName string
	role        string
	isStaff     bool
)

var validate = validator.New()

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative account tools",
		Long:  `Bootstrap and recover operator accounts without going through the web console.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newCreateCommand(),
		newResetPasswordCommand(),
	)

	return cmd
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		Long:  `Create a user account. The password is prompted and never echoed.`,
		RunE:  runCreate,
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username (required)")
	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&displayName, "display-name", "", "Display name (defaults to the username)")
	cmd.Flags().StringVar(&role, "role", "admin", "Role (admin or user)")
	cmd.Flags().BoolVar(&isStaff, "staff", true, "Grant the staff flag")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("email")

	return cmd
}

func newResetPasswordCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Reset an account password",
		Long:  `Set a new password for an existing account without knowing the current one.`,
		RunE:  runResetPassword,
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username (required)")
	cmd.MarkFlagRequired("username")

	return cmd
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

func runCreate(cmd *cobra.Command, args []string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("invalid email address: %s", email)
	}

	cfg, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	password, err := promptPassword()
	if err != nil {
		return err
	}

	if displayName == "" {
		displayName = cases.Title(language.English).String(username)
	}

	userRepo := repository.NewUserRepository(database.Get())
	auditRepo := repository.NewAuditRepository(database.Get())
	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	recorder := auditApp.NewRecorder(auditRepo, log)

	createUser := userUsecases.NewCreateUserUseCase(userRepo, hasher, recorder, log)

	u, err := createUser.Execute(context.Background(), userUsecases.CreateUserCommand{
		Username:    username,
		Email:       email,
		DisplayName: displayName,
		Password:    password,
		Role:        role,
		IsStaff:     isStaff,
		IPAddress:   "cli",
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Printf("created user %q (id %d, role %s)\n", u.Username(), u.ID(), u.Role())
	return nil
}

func runResetPassword(cmd *cobra.Command, args []string) error {
	cfg, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	userRepo := repository.NewUserRepository(database.Get())

	u, err := userRepo.GetByUsername(context.Background(), username)
	if err != nil {
		return fmt.Errorf("user %q not found: %w", username, err)
	}

	password, err := promptPassword()
	if err != nil {
		return err
	}

	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	hash, err := hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := u.ChangePasswordHash(hash); err != nil {
		return err
	}
	if err := userRepo.Update(context.Background(), u); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	log.Infow("password reset", "username", username)
	fmt.Printf("password updated for %q\n", username)
	return nil
}

func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	first, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Fprint(os.Stderr, "Confirm password: ")
	second, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if string(first) != string(second) {
		return "", fmt.Errorf("passwords do not match")
	}
	if strings.TrimSpace(string(first)) == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	return string(first), nil
}
