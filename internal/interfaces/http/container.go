package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	apitokenUsecases "derbydesk/internal/application/apitoken/usecases"
	auditApp "derbydesk/internal/application/audit"
	categoryUsecases "derbydesk/internal/application/category/usecases"
	ticketUsecases "derbydesk/internal/application/ticket/usecases"
	userUsecases "derbydesk/internal/application/user/usecases"
	"derbydesk/internal/infrastructure/auth"
	"derbydesk/internal/infrastructure/cache"
	"derbydesk/internal/infrastructure/config"
	"derbydesk/internal/infrastructure/email"
	"derbydesk/internal/infrastructure/repository"
	"derbydesk/internal/infrastructure/storage"
	"derbydesk/internal/infrastructure/token"
	apiHandlers "derbydesk/internal/interfaces/http/handlers/api"
	webHandlers "derbydesk/internal/interfaces/http/handlers/web"
	"derbydesk/internal/interfaces/http/middleware"
	db "derbydesk/internal/shared/db"
	"derbydesk/internal/shared/logger"
	"derbydesk/internal/shared/services/markdown"
)

// Container wires repositories, use cases, handlers, and middleware into a
// ready-to-serve gin engine.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	ucs   *useCases
	hdlrs *handlers

	sessionMiddleware  *middleware.SessionMiddleware
	apiTokenMiddleware *middleware.APITokenMiddleware

	txManager     *db.TransactionManager
	jwtSvc        *auth.JWTService
	hasher        *auth.BcryptPasswordHasher
	tokenGen      *token.Generator
	categoryCache cache.CategoryCache
	lockoutStore  userUsecases.LockoutStore
	notifier      email.Notifier
	auditRecorder *auditApp.Recorder
	attachments   *storage.AttachmentStore
	markdownSvc   markdown.Service
}

type repositories struct {
	userRepo       *repository.UserRepository
	sessionRepo    *repository.SessionRepository
	ticketRepo     *repository.TicketRepository
	commentRepo    *repository.CommentRepository
	attachmentRepo *repository.AttachmentRepository
	categoryRepo   *repository.CategoryRepository
	tokenRepo      *repository.APITokenRepository
	auditRepo      *repository.AuditRepository
	numberGen      *repository.DailyNumberGenerator
}

type useCases struct {
	// auth & users
	login          *userUsecases.LoginUseCase
	logout         *userUsecases.LogoutUseCase
	changePassword *userUsecases.ChangePasswordUseCase
	createUser     *userUsecases.CreateUserUseCase
	updateUser     *userUsecases.UpdateUserUseCase
	deleteUser     *userUsecases.DeleteUserUseCase
	getUser        *userUsecases.GetUserUseCase
	listUsers      *userUsecases.ListUsersUseCase
	listAssignable *userUsecases.ListAssignableUseCase

	// tickets
	createTicket  *ticketUsecases.CreateTicketUseCase
	getTicket     *ticketUsecases.GetTicketUseCase
	listTickets   *ticketUsecases.ListTicketsUseCase
	updateTicket  *ticketUsecases.UpdateTicketUseCase
	assignTicket  *ticketUsecases.AssignTicketUseCase
	changeStatus  *ticketUsecases.ChangeStatusUseCase
	addComment    *ticketUsecases.AddCommentUseCase
	addAttachment *ticketUsecases.AddAttachmentUseCase
	getAttachment *ticketUsecases.GetAttachmentUseCase
	deleteTicket  *ticketUsecases.DeleteTicketUseCase
	ticketStats   *ticketUsecases.GetTicketStatsUseCase

	// categories
	listCategories *categoryUsecases.ListCategoriesUseCase
	saveCategory   *categoryUsecases.SaveCategoryUseCase
	deleteCategory *categoryUsecases.DeleteCategoryUseCase

	// api tokens
	issueToken    *apitokenUsecases.IssueTokenUseCase
	revokeToken   *apitokenUsecases.RevokeTokenUseCase
	listTokens    *apitokenUsecases.ListTokensUseCase
	validateToken *apitokenUsecases.ValidateTokenUseCase

	// audit
	securityEvents *auditApp.ListSecurityEventsUseCase
	auditLog       *auditApp.ListAuditLogUseCase
}

type handlers struct {
	auth      *webHandlers.AuthHandler
	account   *webHandlers.AccountHandler
	ticket    *webHandlers.TicketHandler
	admin     *webHandlers.AdminHandler
	apiTicket *apiHandlers.TicketHandler
}

// NewContainer builds the full dependency graph. The caller owns the gorm
// connection; everything else is constructed here.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}
	c.initUseCases()
	c.initHandlers()

	return c, nil
}

func (c *Container) initInfrastructure() error {
	cfg := c.cfg

	c.repos = &repositories{
		userRepo:       repository.NewUserRepository(c.db),
		sessionRepo:    repository.NewSessionRepository(c.db),
		ticketRepo:     repository.NewTicketRepository(c.db),
		commentRepo:    repository.NewCommentRepository(c.db),
		attachmentRepo: repository.NewAttachmentRepository(c.db),
		categoryRepo:   repository.NewCategoryRepository(c.db),
		tokenRepo:      repository.NewAPITokenRepository(c.db),
		auditRepo:      repository.NewAuditRepository(c.db),
	}
	c.repos.numberGen = repository.NewDailyNumberGenerator(c.repos.ticketRepo)
	c.txManager = db.NewTransactionManager(c.db)

	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.Session.ExpHours)
	c.hasher = auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	c.tokenGen = token.NewGenerator()
	c.markdownSvc = markdown.NewService()
	c.auditRecorder = auditApp.NewRecorder(c.repos.auditRepo, c.log)

	lockoutWindow := time.Duration(cfg.Security.LockoutSeconds) * time.Second
	if cfg.Redis.Enabled {
		c.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := c.redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping failed: %w", err)
		}
		c.categoryCache = cache.NewRedisCategoryCache(c.redis, cache.DefaultCategoryTTL)
		c.lockoutStore = cache.NewRedisLoginLockoutStore(c.redis, cfg.Security.MaxLoginAttempts, lockoutWindow)
	} else {
		c.categoryCache = cache.NewMemoryCategoryCache(cache.DefaultCategoryTTL)
		c.lockoutStore = cache.NewMemoryLoginLockoutStore(cfg.Security.MaxLoginAttempts, lockoutWindow)
	}

	if cfg.Email.Enabled {
		c.notifier = email.NewSMTPNotifier(email.SMTPConfig{
			Host:        cfg.Email.SMTPHost,
			Port:        cfg.Email.SMTPPort,
			Username:    cfg.Email.SMTPUser,
			Password:    cfg.Email.SMTPPassword,
			FromAddress: cfg.Email.FromAddress,
			FromName:    cfg.Email.FromName,
			BaseURL:     cfg.Server.BaseURL,
		})
	} else {
		c.notifier = email.NewNopNotifier()
	}

	store, err := storage.NewAttachmentStore(cfg.Storage.AttachmentDir)
	if err != nil {
		return fmt.Errorf("attachment store init failed: %w", err)
	}
	c.attachments = store

	return nil
}

func (c *Container) initUseCases() {
	cfg := c.cfg
	log := c.log
	r := c.repos
	rec := c.auditRecorder

	c.ucs = &useCases{
		login: userUsecases.NewLoginUseCase(
			r.userRepo, r.sessionRepo, c.hasher, c.jwtSvc, c.lockoutStore, rec,
			cfg.Auth.Session.ExpHours, log),
		logout:         userUsecases.NewLogoutUseCase(r.sessionRepo, rec, log),
		changePassword: userUsecases.NewChangePasswordUseCase(r.userRepo, c.hasher, log),
		createUser:     userUsecases.NewCreateUserUseCase(r.userRepo, c.hasher, rec, log),
		updateUser:     userUsecases.NewUpdateUserUseCase(r.userRepo, c.hasher, rec, log),
		deleteUser:     userUsecases.NewDeleteUserUseCase(r.userRepo, r.sessionRepo, rec, log),
		getUser:        userUsecases.NewGetUserUseCase(r.userRepo, log),
		listUsers:      userUsecases.NewListUsersUseCase(r.userRepo, log),
		listAssignable: userUsecases.NewListAssignableUseCase(r.userRepo, log),

		createTicket:  ticketUsecases.NewCreateTicketUseCase(r.ticketRepo, r.userRepo, r.numberGen, c.notifier, rec, log),
		getTicket:     ticketUsecases.NewGetTicketUseCase(r.ticketRepo, r.attachmentRepo, rec, log),
		listTickets:   ticketUsecases.NewListTicketsUseCase(r.ticketRepo, log),
		updateTicket:  ticketUsecases.NewUpdateTicketUseCase(r.ticketRepo, rec, log),
		assignTicket:  ticketUsecases.NewAssignTicketUseCase(r.ticketRepo, r.userRepo, c.notifier, rec, log),
		changeStatus:  ticketUsecases.NewChangeStatusUseCase(r.ticketRepo, r.userRepo, c.notifier, rec, log),
		addComment:    ticketUsecases.NewAddCommentUseCase(r.ticketRepo, r.commentRepo, r.userRepo, c.notifier, rec, log),
		addAttachment: ticketUsecases.NewAddAttachmentUseCase(r.ticketRepo, r.attachmentRepo, c.attachments, log),
		getAttachment: ticketUsecases.NewGetAttachmentUseCase(r.ticketRepo, r.attachmentRepo, log),
		deleteTicket: ticketUsecases.NewDeleteTicketUseCase(
			r.ticketRepo, r.commentRepo, r.attachmentRepo, c.attachments, c.txManager, rec, log),
		ticketStats:   ticketUsecases.NewGetTicketStatsUseCase(r.ticketRepo, log),

		listCategories: categoryUsecases.NewListCategoriesUseCase(r.categoryRepo, r.ticketRepo, c.categoryCache, log),
		saveCategory:   categoryUsecases.NewSaveCategoryUseCase(r.categoryRepo, c.categoryCache, rec, log),
		deleteCategory: categoryUsecases.NewDeleteCategoryUseCase(r.categoryRepo, c.categoryCache, rec, log),

		issueToken:    apitokenUsecases.NewIssueTokenUseCase(r.tokenRepo, c.tokenGen, rec, log),
		revokeToken:   apitokenUsecases.NewRevokeTokenUseCase(r.tokenRepo, rec, log),
		listTokens:    apitokenUsecases.NewListTokensUseCase(r.tokenRepo, log),
		validateToken: apitokenUsecases.NewValidateTokenUseCase(r.tokenRepo, r.userRepo, rec, log),

		securityEvents: auditApp.NewListSecurityEventsUseCase(r.auditRepo, log),
		auditLog:       auditApp.NewListAuditLogUseCase(r.auditRepo, log),
	}
}

func (c *Container) initHandlers() {
	cfg := c.cfg
	log := c.log
	ucs := c.ucs

	c.sessionMiddleware = middleware.NewSessionMiddleware(c.jwtSvc, c.repos.sessionRepo, log)
	c.apiTokenMiddleware = middleware.NewAPITokenMiddleware(ucs.validateToken, log)

	c.hdlrs = &handlers{
		auth:    webHandlers.NewAuthHandler(ucs.login, ucs.logout, cfg.Auth.Cookie, log),
		account: webHandlers.NewAccountHandler(ucs.changePassword, log),
		ticket: webHandlers.NewTicketHandler(webHandlers.TicketHandlerDeps{
			CreateTicket:   ucs.createTicket,
			GetTicket:      ucs.getTicket,
			ListTickets:    ucs.listTickets,
			UpdateTicket:   ucs.updateTicket,
			AssignTicket:   ucs.assignTicket,
			ChangeStatus:   ucs.changeStatus,
			AddComment:     ucs.addComment,
			AddAttachment:  ucs.addAttachment,
			GetAttachment:  ucs.getAttachment,
			DeleteTicket:   ucs.deleteTicket,
			ListCategories: ucs.listCategories,
			ListAssignable: ucs.listAssignable,
			UserResolver:   c.repos.userRepo,
			Store:          c.attachments,
			Markdown:       c.markdownSvc,
			MaxUploadMB:    cfg.Storage.MaxUploadMB,
			Logger:         log,
		}),
		admin: webHandlers.NewAdminHandler(webHandlers.AdminHandlerDeps{
			TicketStats:    ucs.ticketStats,
			ListUsers:      ucs.listUsers,
			GetUser:        ucs.getUser,
			CreateUser:     ucs.createUser,
			UpdateUser:     ucs.updateUser,
			DeleteUser:     ucs.deleteUser,
			ListTokens:     ucs.listTokens,
			IssueToken:     ucs.issueToken,
			RevokeToken:    ucs.revokeToken,
			ListCategories: ucs.listCategories,
			SaveCategory:   ucs.saveCategory,
			DeleteCategory: ucs.deleteCategory,
			SecurityEvents: ucs.securityEvents,
			AuditLog:       ucs.auditLog,
			UserResolver:   c.repos.userRepo,
			Logger:         log,
		}),
		apiTicket: apiHandlers.NewTicketHandler(ucs.listTickets, ucs.getTicket, ucs.listCategories, c.repos.userRepo, log),
	}
}

// Close releases connections held by the container.
func (c *Container) Close() error {
	if c.redis != nil {
		return c.redis.Close()
	}
	return nil
}
