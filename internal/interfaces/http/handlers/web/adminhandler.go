package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apitokenUsecases "derbydesk/internal/application/apitoken/usecases"
	auditApp "derbydesk/internal/application/audit"
	categoryUsecases "derbydesk/internal/application/category/usecases"
	ticketUsecases "derbydesk/internal/application/ticket/usecases"
	userUsecases "derbydesk/internal/application/user/usecases"
	"derbydesk/internal/shared/logger"
	"derbydesk/internal/shared/utils"
)

// AdminHandler serves the admin console: users, API tokens, categories,
// and the security log. Every route behind it is guarded by RequireAdmin.
type AdminHandler struct {
	ticketStats    ticketUsecases.GetTicketStatsExecutor
	listUsers      ListUsersExecutor
	getUser        GetUserExecutor
	createUser     CreateUserExecutor
	updateUser     UpdateUserExecutor
	deleteUser     DeleteUserExecutor
	listTokens     ListTokensExecutor
	issueToken     IssueTokenExecutor
	revokeToken    RevokeTokenExecutor
	listCategories CategoryLister
	saveCategory   SaveCategoryExecutor
	deleteCategory DeleteCategoryExecutor
	securityEvents SecurityEventsLister
	auditLog       AuditLogLister
	userResolver   UserResolver
	logger         logger.Interface
}

type AdminHandlerDeps struct {
	TicketStats    ticketUsecases.GetTicketStatsExecutor
	ListUsers      ListUsersExecutor
	GetUser        GetUserExecutor
	CreateUser     CreateUserExecutor
	UpdateUser     UpdateUserExecutor
	DeleteUser     DeleteUserExecutor
	ListTokens     ListTokensExecutor
	IssueToken     IssueTokenExecutor
	RevokeToken    RevokeTokenExecutor
	ListCategories CategoryLister
	SaveCategory   SaveCategoryExecutor
	DeleteCategory DeleteCategoryExecutor
	SecurityEvents SecurityEventsLister
	AuditLog       AuditLogLister
	UserResolver   UserResolver
	Logger         logger.Interface
}

func NewAdminHandler(deps AdminHandlerDeps) *AdminHandler {
	return &AdminHandler{
		ticketStats:    deps.TicketStats,
		listUsers:      deps.ListUsers,
		getUser:        deps.GetUser,
		createUser:     deps.CreateUser,
		updateUser:     deps.UpdateUser,
		deleteUser:     deps.DeleteUser,
		listTokens:     deps.ListTokens,
		issueToken:     deps.IssueToken,
		revokeToken:    deps.RevokeToken,
		listCategories: deps.ListCategories,
		saveCategory:   deps.SaveCategory,
		deleteCategory: deps.DeleteCategory,
		securityEvents: deps.SecurityEvents,
		auditLog:       deps.AuditLog,
		userResolver:   deps.UserResolver,
		logger:         deps.Logger,
	}
}

// Dashboard shows ticket counts and recent security events.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.ticketStats.Execute(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to load ticket stats", "error", err)
		renderError(c, http.StatusInternalServerError, "Could not load the dashboard.")
		return
	}

	events, err := h.securityEvents.Execute(c.Request.Context(), auditApp.ListSecurityEventsQuery{
		Page:     1,
		PageSize: 10,
	})
	if err != nil {
		h.logger.Warnw("failed to load recent security events", "error", err)
	}

	extra := gin.H{"Stats": stats}
	if events != nil {
		extra["RecentEvents"] = events.Events
	}

	c.HTML(http.StatusOK, "admin_dashboard.html", pageData(c, "Admin", extra))
}

// Users lists accounts with the console's filters.
func (h *AdminHandler) Users(c *gin.Context) {
	pg := utils.ParsePagination(c)

	query := userUsecases.ListUsersQuery{
		Username: c.Query("username"),
		Role:     c.Query("role"),
		Page:     pg.Page,
		PageSize: pg.PageSize,
	}
	if raw := c.Query("active"); raw == "true" || raw == "false" {
		active := raw == "true"
		query.Active = &active
	}

	result, err := h.listUsers.Execute(c.Request.Context(), query)
	if err != nil {
		h.logger.Errorw("failed to list users", "error", err)
		renderError(c, http.StatusInternalServerError, "Could not load users.")
		return
	}

	c.HTML(http.StatusOK, "admin_users.html", pageData(c, "Users", gin.H{
		"Users":      result.Users,
		"Total":      result.Total,
		"Page":       result.Page,
		"TotalPages": result.TotalPages,
		"HasPrev":    result.Page > 1,
		"HasNext":    result.Page < result.TotalPages,
		"PrevPage":   result.Page - 1,
		"NextPage":   result.Page + 1,
		"Username":   c.Query("username"),
		"RoleFilter": c.Query("role"),
	}))
}

// ShowCreateUser renders the new-account form.
func (h *AdminHandler) ShowCreateUser(c *gin.Context) {
	c.HTML(http.StatusOK, "admin_user_form.html", pageData(c, "New user", gin.H{}))
}

// CreateUser handles the posted new-account form.
func (h *AdminHandler) CreateUser(c *gin.Context) {
	cmd := userUsecases.CreateUserCommand{
		Username:    c.PostForm("username"),
		Email:       c.PostForm("email"),
		DisplayName: c.PostForm("display_name"),
		Password:    c.PostForm("password"),
		Role:        c.PostForm("role"),
		IsStaff:     c.PostForm("is_staff") == "on",
		ActorID:     currentUserID(c),
		IPAddress:   c.ClientIP(),
	}

	created, err := h.createUser.Execute(c.Request.Context(), cmd)
	if err != nil {
		c.HTML(http.StatusBadRequest, "admin_user_form.html", pageData(c, "New user", gin.H{
			"Error":       formErrorMessage(err),
			"Username":    cmd.Username,
			"Email":       cmd.Email,
			"DisplayName": cmd.DisplayName,
			"RoleValue":   cmd.Role,
			"IsStaffSet":  cmd.IsStaff,
		}))
		return
	}

	redirectWithFlash(c, "/admin/users/", "User "+created.Username()+" created.")
}

// ShowEditUser renders the account edit form.
func (h *AdminHandler) ShowEditUser(c *gin.Context) {
	userID, err := utils.ParseUintParam(c, "id")
	if err != nil {
		renderError(c, http.StatusNotFound, "User not found.")
		return
	}

	u, err := h.getUser.Execute(c.Request.Context(), userID)
	if err != nil {
		renderError(c, http.StatusNotFound, "User not found.")
		return
	}

	c.HTML(http.StatusOK, "admin_user_form.html", pageData(c, "Edit "+u.Username(), gin.H{
		"Editing":     true,
		"EditUserID":  u.ID(),
		"Username":    u.Username(),
		"Email":       u.Email(),
		"DisplayName": u.DisplayName(),
		"RoleValue":   string(u.Role()),
		"IsStaffSet":  u.IsStaff(),
		"ActiveSet":   u.IsActive(),
	}))
}

// EditUser applies role, staff, active, and password changes.
func (h *AdminHandler) EditUser(c *gin.Context) {
	userID, err := utils.ParseUintParam(c, "id")
	if err != nil {
		renderError(c, http.StatusNotFound, "User not found.")
		return
	}

	cmd := userUsecases.UpdateUserCommand{
		UserID:    userID,
		ActorID:   currentUserID(c),
		IPAddress: c.ClientIP(),
	}
	if v := c.PostForm("display_name"); v != "" {
		cmd.DisplayName = &v
	}
	if v := c.PostForm("email"); v != "" {
		cmd.Email = &v
	}
	if v := c.PostForm("role"); v != "" {
		cmd.Role = &v
	}
	if v := c.PostForm("password"); v != "" {
		cmd.Password = &v
	}
	active := c.PostForm("active") == "on"
	cmd.Active = &active

	if _, err := h.updateUser.Execute(c.Request.Context(), cmd); err != nil {
		redirectWithFlash(c, "/admin/users/"+strconv.FormatUint(uint64(userID), 10)+"/", formErrorMessage(err))
		return
	}

	redirectWithFlash(c, "/admin/users/", "User updated.")
}

// DeleteUser removes an account and its sessions.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID, err := utils.ParseUintParam(c, "id")
	if err != nil {
		renderError(c, http.StatusNotFound, "User not found.")
		return
	}

	err = h.deleteUser.Execute(c.Request.Context(), userUsecases.DeleteUserCommand{
		UserID:    userID,
		ActorID:   currentUserID(c),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		redirectWithFlash(c, "/admin/users/", formErrorMessage(err))
		return
	}

	redirectWithFlash(c, "/admin/users/", "User deleted.")
}

// Tokens lists API tokens alongside the accounts they belong to.
func (h *AdminHandler) Tokens(c *gin.Context) {
	tokens, err := h.listTokens.Execute(c.Request.Context(), apitokenUsecases.ListTokensQuery{})
	if err != nil {
		h.logger.Errorw("failed to list api tokens", "error", err)
		renderError(c, http.StatusInternalServerError, "Could not load tokens.")
		return
	}

	ownerIDs := make([]uint, 0, len(tokens))
	for _, t := range tokens {
		ownerIDs = append(ownerIDs, t.UserID())
	}
	owners := make(map[uint]string)
	if len(ownerIDs) > 0 {
		users, err := h.userResolver.GetByIDs(c.Request.Context(), ownerIDs)
		if err != nil {
			h.logger.Warnw("failed to resolve token owners", "error", err)
		}
		for _, u := range users {
			owners[u.ID()] = u.Username()
		}
	}

	type tokenRow struct {
		ID       uint
		Name     string
		Owner    string
		Active   bool
		LastUsed interface{}
	}
	rows := make([]tokenRow, 0, len(tokens))
	for _, t := range tokens {
		row := tokenRow{
			ID:     t.ID(),
			Name:   t.Name(),
			Owner:  owners[t.UserID()],
			Active: t.IsActive(),
		}
		if last := t.LastUsedAt(); last != nil {
			row.LastUsed = *last
		}
		rows = append(rows, row)
	}

	c.HTML(http.StatusOK, "admin_tokens.html", pageData(c, "API tokens", gin.H{
		"Tokens": rows,
	}))
}

// IssueToken creates a token and shows the plaintext on the resulting
// page. It is never shown again.
func (h *AdminHandler) IssueToken(c *gin.Context) {
	ownerID := parseOptionalID(c.PostForm("user_id"))
	if ownerID == nil {
		redirectWithFlash(c, "/admin/tokens/", "Select a token owner.")
		return
	}

	result, err := h.issueToken.Execute(c.Request.Context(), apitokenUsecases.IssueTokenCommand{
		UserID:    *ownerID,
		Name:      c.PostForm("name"),
		ActorID:   currentUserID(c),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		redirectWithFlash(c, "/admin/tokens/", formErrorMessage(err))
		return
	}

	c.HTML(http.StatusOK, "admin_token_created.html", pageData(c, "Token issued", gin.H{
		"TokenName":  result.Name,
		"PlainToken": result.PlainToken,
	}))
}

// RevokeToken deactivates a token.
func (h *AdminHandler) RevokeToken(c *gin.Context) {
	tokenID, err := utils.ParseUintParam(c, "id")
	if err != nil {
		renderError(c, http.StatusNotFound, "Token not found.")
		return
	}

	err = h.revokeToken.Execute(c.Request.Context(), apitokenUsecases.RevokeTokenCommand{
		TokenID:   tokenID,
		ActorID:   currentUserID(c),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		redirectWithFlash(c, "/admin/tokens/", formErrorMessage(err))
		return
	}

	redirectWithFlash(c, "/admin/tokens/", "Token revoked.")
}

// Categories lists categories with their ticket counts.
func (h *AdminHandler) Categories(c *gin.Context) {
	entries, err := h.listCategories.Execute(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to list categories", "error", err)
		renderError(c, http.StatusInternalServerError, "Could not load categories.")
		return
	}

	c.HTML(http.StatusOK, "admin_categories.html", pageData(c, "Categories", gin.H{
		"Categories": entries,
	}))
}

// SaveCategory creates or renames a category.
func (h *AdminHandler) SaveCategory(c *gin.Context) {
	sortOrder, _ := strconv.Atoi(c.PostForm("sort_order"))
	cmd := categoryUsecases.SaveCategoryCommand{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		SortOrder:   sortOrder,
		ActorID:     currentUserID(c),
		IPAddress:   c.ClientIP(),
	}
	if id := parseOptionalID(c.PostForm("category_id")); id != nil {
		cmd.CategoryID = *id
	}

	if _, err := h.saveCategory.Execute(c.Request.Context(), cmd); err != nil {
		redirectWithFlash(c, "/admin/categories/", formErrorMessage(err))
		return
	}

	redirectWithFlash(c, "/admin/categories/", "Category saved.")
}

// DeleteCategory removes a category; tickets keep their reference and
// render as uncategorized.
func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	categoryID, err := utils.ParseUintParam(c, "id")
	if err != nil {
		renderError(c, http.StatusNotFound, "Category not found.")
		return
	}

	err = h.deleteCategory.Execute(c.Request.Context(), categoryUsecases.DeleteCategoryCommand{
		CategoryID: categoryID,
		ActorID:    currentUserID(c),
		IPAddress:  c.ClientIP(),
	})
	if err != nil {
		redirectWithFlash(c, "/admin/categories/", formErrorMessage(err))
		return
	}

	redirectWithFlash(c, "/admin/categories/", "Category deleted.")
}

// Security shows the security event log.
func (h *AdminHandler) Security(c *gin.Context) {
	pg := utils.ParsePagination(c)

	result, err := h.securityEvents.Execute(c.Request.Context(), auditApp.ListSecurityEventsQuery{
		Page:     pg.Page,
		PageSize: pg.PageSize,
	})
	if err != nil {
		h.logger.Errorw("failed to list security events", "error", err)
		renderError(c, http.StatusInternalServerError, "Could not load security events.")
		return
	}

	c.HTML(http.StatusOK, "admin_security.html", pageData(c, "Security log", gin.H{
		"Events":     result.Events,
		"Total":      result.Total,
		"Page":       result.Page,
		"TotalPages": result.TotalPages,
		"HasPrev":    result.Page > 1,
		"HasNext":    result.Page < result.TotalPages,
		"PrevPage":   result.Page - 1,
		"NextPage":   result.Page + 1,
	}))
}

// Audit shows the change history across entities.
func (h *AdminHandler) Audit(c *gin.Context) {
	pg := utils.ParsePagination(c)

	result, err := h.auditLog.Execute(c.Request.Context(), auditApp.ListAuditLogQuery{
		Action:     c.Query("action"),
		EntityType: c.Query("entity_type"),
		Page:       pg.Page,
		PageSize:   pg.PageSize,
	})
	if err != nil {
		h.logger.Errorw("failed to list audit log", "error", err)
		renderError(c, http.StatusInternalServerError, "Could not load the audit log.")
		return
	}

	c.HTML(http.StatusOK, "admin_audit.html", pageData(c, "Audit log", gin.H{
		"Entries":    result.Entries,
		"Total":      result.Total,
		"Page":       result.Page,
		"TotalPages": result.TotalPages,
		"HasPrev":    result.Page > 1,
		"HasNext":    result.Page < result.TotalPages,
		"PrevPage":   result.Page - 1,
		"NextPage":   result.Page + 1,
	}))
}

