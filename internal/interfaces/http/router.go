package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"derbydesk/internal/interfaces/http/middleware"
	"derbydesk/internal/shared/authorization"
)

// SetupRoutes registers middleware and the three route surfaces: the
// browser UI, the admin console, and the token-authenticated read API.
func (c *Container) SetupRoutes() {
	engine := c.engine
	engine.HandleMethodNotAllowed = true

	engine.Use(middleware.RequestLogger(c.log))
	engine.Use(middleware.Recovery())
	engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	engine.Use(middleware.SecurityHeaders(c.cfg.Security.ContentSecurityPolicy))

	if c.cfg.Server.TemplateGlob != "" {
		engine.LoadHTMLGlob(c.cfg.Server.TemplateGlob)
	}

	engine.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	engine.GET("/", func(ctx *gin.Context) {
		ctx.Redirect(http.StatusFound, "/tickets/")
	})

	c.setupAuthRoutes()
	c.setupTicketRoutes()
	c.setupAdminRoutes()
	c.setupAPIRoutes()

	engine.NoRoute(func(ctx *gin.Context) {
		if strings.HasPrefix(ctx.Request.URL.Path, "/api/") {
			apiError(ctx, http.StatusNotFound, "not found")
			return
		}
		ctx.HTML(http.StatusNotFound, "error.html", gin.H{
			"Title":   "Not found",
			"Status":  http.StatusNotFound,
			"Message": "Page not found.",
		})
	})

	engine.NoMethod(func(ctx *gin.Context) {
		if strings.HasPrefix(ctx.Request.URL.Path, "/api/") {
			apiError(ctx, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		ctx.HTML(http.StatusMethodNotAllowed, "error.html", gin.H{
			"Title":   "Method not allowed",
			"Status":  http.StatusMethodNotAllowed,
			"Message": "Method not allowed.",
		})
	})
}

func (c *Container) setupAuthRoutes() {
	session := c.sessionMiddleware

	c.engine.GET("/login/", session.OptionalSession(), c.hdlrs.auth.ShowLogin)
	c.engine.POST("/login/", c.hdlrs.auth.Login)
	c.engine.GET("/logout/", session.RequireSession(), c.hdlrs.auth.Logout)

	account := c.engine.Group("/account", session.RequireSession())
	{
		account.GET("/password/", c.hdlrs.account.ShowChangePassword)
		account.POST("/password/", c.hdlrs.account.ChangePassword)
	}
}

func (c *Container) setupTicketRoutes() {
	h := c.hdlrs.ticket

	tickets := c.engine.Group("/tickets", c.sessionMiddleware.RequireSession())
	{
		tickets.GET("/", h.List)
		tickets.GET("/create/", h.ShowCreate)
		tickets.POST("/create/", h.Create)

		tickets.GET("/:id/", h.Detail)
		tickets.POST("/:id/edit/", h.Edit)
		tickets.POST("/:id/status/", h.ChangeStatus)
		tickets.POST("/:id/comments/", h.AddComment)
		tickets.POST("/:id/attachments/", h.Upload)
		tickets.GET("/:id/attachments/:attachmentID/", h.Download)

		tickets.POST("/:id/assign/", authorization.RequireStaff(), h.Assign)
		tickets.POST("/:id/delete/", authorization.RequireAdmin(), h.Delete)
	}
}

func (c *Container) setupAdminRoutes() {
	h := c.hdlrs.admin

	admin := c.engine.Group("/admin", c.sessionMiddleware.RequireSession(), authorization.RequireAdmin())
	{
		admin.GET("/", h.Dashboard)

		admin.GET("/users/", h.Users)
		admin.GET("/users/create/", h.ShowCreateUser)
		admin.POST("/users/create/", h.CreateUser)
		admin.GET("/users/:id/", h.ShowEditUser)
		admin.POST("/users/:id/", h.EditUser)
		admin.POST("/users/:id/delete/", h.DeleteUser)

		admin.GET("/tokens/", h.Tokens)
		admin.POST("/tokens/create/", h.IssueToken)
		admin.POST("/tokens/:id/revoke/", h.RevokeToken)

		admin.GET("/categories/", h.Categories)
		admin.POST("/categories/save/", h.SaveCategory)
		admin.POST("/categories/:id/delete/", h.DeleteCategory)

		admin.GET("/security/", h.Security)
		admin.GET("/audit/", h.Audit)
	}
}

func (c *Container) setupAPIRoutes() {
	api := c.engine.Group("/api", c.apiTokenMiddleware.RequireToken())
	c.hdlrs.apiTicket.RegisterRoutes(api)
}

// GetEngine exposes the configured gin engine for the HTTP server.
func (c *Container) GetEngine() *gin.Engine {
	return c.engine
}

func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success":   false,
		"error":     message,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
