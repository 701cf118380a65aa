package token

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	apitokenUsecases "derbydesk/internal/application/apitoken/usecases"
	auditApp "derbydesk/internal/application/audit"
	"derbydesk/internal/domain/apitoken"
	"derbydesk/internal/infrastructure/config"
	"derbydesk/internal/infrastructure/database"
	"derbydesk/internal/infrastructure/repository"
	infraToken "derbydesk/internal/infrastructure/token"
	"derbydesk/internal/shared/logger"
)

var (
	env       string
	ownerName string
	tokenName string
	expiresIn string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "API token management",
		Long:  `Issue, list, and toggle API tokens. The plaintext token is printed once at creation and never stored.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newCreateCommand(),
		newListCommand(),
		newActivateCommand(),
		newDeactivateCommand(),
	)

	return cmd
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Issue a new token",
		RunE:  runCreate,
	}

	cmd.Flags().StringVarP(&ownerName, "user", "u", "", "Username of the token owner (required)")
	cmd.Flags().StringVarP(&tokenName, "name", "n", "", "Token label (required)")
	cmd.Flags().StringVar(&expiresIn, "expires-in", "", "Optional lifetime, e.g. 720h")
	cmd.MarkFlagRequired("user")
	cmd.MarkFlagRequired("name")

	return cmd
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tokens",
		RunE:  runList,
	}
}

func newActivateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "activate <id|token>",
		Short: "Re-enable a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToggle(args[0], true)
		},
	}
}

func newDeactivateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <id|token>",
		Short: "Disable a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToggle(args[0], false)
		},
	}
}

func initEnv() (logger.Interface, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return logger.NewLogger(), nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	userRepo := repository.NewUserRepository(database.Get())
	owner, err := userRepo.GetByUsername(context.Background(), ownerName)
	if err != nil {
		return fmt.Errorf("user %q not found: %w", ownerName, err)
	}

	var expiresAt *time.Time
	if expiresIn != "" {
		d, err := time.ParseDuration(expiresIn)
		if err != nil {
			return fmt.Errorf("invalid --expires-in value %q: %w", expiresIn, err)
		}
		t := time.Now().UTC().Add(d)
		expiresAt = &t
	}

	tokenRepo := repository.NewAPITokenRepository(database.Get())
	auditRepo := repository.NewAuditRepository(database.Get())
	recorder := auditApp.NewRecorder(auditRepo, log)

	issue := apitokenUsecases.NewIssueTokenUseCase(tokenRepo, infraToken.NewGenerator(), recorder, log)

	result, err := issue.Execute(context.Background(), apitokenUsecases.IssueTokenCommand{
		UserID:    owner.ID(),
		Name:      tokenName,
		ExpiresAt: expiresAt,
		IPAddress: "cli",
	})
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	fmt.Printf("token %q issued for %s (id %d)\n", result.Name, owner.Username(), result.TokenID)
	fmt.Printf("\n  %s\n\n", result.PlainToken)
	fmt.Println("store this value now; it cannot be recovered later")
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	tokenRepo := repository.NewAPITokenRepository(database.Get())
	list := apitokenUsecases.NewListTokensUseCase(tokenRepo, log)

	tokens, err := list.Execute(context.Background(), apitokenUsecases.ListTokensQuery{})
	if err != nil {
		return fmt.Errorf("failed to list tokens: %w", err)
	}

	if len(tokens) == 0 {
		fmt.Println("no tokens")
		return nil
	}

	fmt.Printf("%-5s %-30s %-8s %-8s %s\n", "ID", "NAME", "OWNER", "ACTIVE", "LAST USED")
	for _, t := range tokens {
		lastUsed := "never"
		if t.LastUsedAt() != nil {
			lastUsed = t.LastUsedAt().UTC().Format(time.RFC3339)
		}
		fmt.Printf("%-5d %-30s %-8d %-8v %s\n", t.ID(), t.Name(), t.UserID(), t.IsActive(), lastUsed)
	}
	return nil
}

func runToggle(ref string, active bool) error {
	log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	tokenRepo := repository.NewAPITokenRepository(database.Get())

	t, err := findToken(tokenRepo, ref)
	if err != nil {
		return err
	}

	if active {
		t.Activate()
	} else {
		t.Revoke()
	}

	if err := tokenRepo.Update(context.Background(), t); err != nil {
		return fmt.Errorf("failed to update token: %w", err)
	}

	state := "deactivated"
	if active {
		state = "activated"
	}
	log.Infow("token state changed", "token_id", t.ID(), "active", active)
	fmt.Printf("token %d (%s) %s\n", t.ID(), t.Name(), state)
	return nil
}

// findToken resolves the argument as a numeric id first, then as the
// plaintext token value.
func findToken(repo *repository.APITokenRepository, ref string) (*apitoken.APIToken, error) {
	if id, err := strconv.ParseUint(ref, 10, 32); err == nil {
		t, err := repo.GetByID(context.Background(), uint(id))
		if err != nil {
			return nil, fmt.Errorf("token %d not found: %w", id, err)
		}
		return t, nil
	}

	t, err := repo.GetByHash(context.Background(), infraToken.HashToken(ref))
	if err != nil {
		return nil, fmt.Errorf("token not found: %w", err)
	}
	return t, nil
}
