package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"derbydesk/internal/application/ticket/dto"
	ticketUsecases "derbydesk/internal/application/ticket/usecases"
	"derbydesk/internal/domain/user"
	"derbydesk/internal/infrastructure/cache"
	"derbydesk/internal/shared/authorization"
	"derbydesk/internal/shared/constants"
	"derbydesk/internal/shared/errors"
	"derbydesk/internal/shared/logger"
)

// CategoryLister serves the cached category list for name resolution.
type CategoryLister interface {
	Execute(ctx context.Context) ([]cache.CategoryEntry, error)
}

// UserResolver looks up users in bulk for username resolution.
type UserResolver interface {
	GetByIDs(ctx context.Context, ids []uint) ([]*user.User, error)
}

// TicketHandler serves the token-authenticated read API. Responses carry a
// fixed field set with usernames and category names resolved, so consumers
// never need a second lookup.
type TicketHandler struct {
	listTickets    ticketUsecases.ListTicketsExecutor
	getTicket      ticketUsecases.GetTicketExecutor
	listCategories CategoryLister
	userRepo       UserResolver
	logger         logger.Interface
}

func NewTicketHandler(
	listTickets ticketUsecases.ListTicketsExecutor,
	getTicket ticketUsecases.GetTicketExecutor,
	listCategories CategoryLister,
	userRepo UserResolver,
	logger logger.Interface,
) *TicketHandler {
	return &TicketHandler{
		listTickets:    listTickets,
		getTicket:      getTicket,
		listCategories: listCategories,
		userRepo:       userRepo,
		logger:         logger,
	}
}

func (h *TicketHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/tickets/", h.List)
	rg.GET("/tickets", h.List)
	rg.GET("/tickets/:id/", h.Get)
	rg.GET("/tickets/:id", h.Get)
}

// List returns every ticket visible to the token's owner.
func (h *TicketHandler) List(c *gin.Context) {
	viewerID, viewerStaff := viewerIdentity(c)

	result, err := h.listTickets.Execute(c.Request.Context(), ticketUsecases.ListTicketsQuery{
		Status:      c.Query("status"),
		Priority:    c.Query("priority"),
		Search:      c.Query("search"),
		Unpaginated: true,
		ViewerID:    viewerID,
		ViewerStaff: viewerStaff,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	userIDs := make([]uint, 0, len(result.Tickets)*2)
	for _, t := range result.Tickets {
		userIDs = append(userIDs, t.CreatorID)
		if t.AssigneeID != nil {
			userIDs = append(userIDs, *t.AssigneeID)
		}
	}
	tables := h.resolveNames(c.Request.Context(), userIDs)

	tickets := make([]gin.H, 0, len(result.Tickets))
	for _, t := range result.Tickets {
		tickets = append(tickets, ticketFields(listItemView(t), tables))
	}

	respond(c, http.StatusOK, gin.H{
		"count":   len(tickets),
		"tickets": tickets,
	})
}

// Get returns one ticket by numeric ID or ticket number. Tickets outside
// the owner's visibility look identical to absent ones.
func (h *TicketHandler) Get(c *gin.Context) {
	viewerID, viewerStaff := viewerIdentity(c)

	query := ticketUsecases.GetTicketQuery{
		ViewerID:    viewerID,
		ViewerRole:  authorization.UserRole(c.GetString(constants.ContextKeyUserRole)),
		ViewerStaff: viewerStaff,
		IPAddress:   c.ClientIP(),
	}

	raw := c.Param("id")
	if id, err := strconv.ParseUint(raw, 10, 32); err == nil && id > 0 {
		query.TicketID = uint(id)
	} else {
		query.Number = raw
	}

	ticketDTO, err := h.getTicket.Execute(c.Request.Context(), query)
	if err != nil {
		h.writeError(c, err)
		return
	}

	userIDs := []uint{ticketDTO.CreatorID}
	if ticketDTO.AssigneeID != nil {
		userIDs = append(userIDs, *ticketDTO.AssigneeID)
	}
	tables := h.resolveNames(c.Request.Context(), userIDs)

	respond(c, http.StatusOK, gin.H{
		"ticket": ticketFields(detailView(ticketDTO), tables),
	})
}

// nameTables holds the category and username lookups resolved for one
// request.
type nameTables struct {
	categories map[uint]string
	usernames  map[uint]string
}

func (h *TicketHandler) resolveNames(ctx context.Context, userIDs []uint) *nameTables {
	tables := &nameTables{
		categories: make(map[uint]string),
		usernames:  make(map[uint]string),
	}

	entries, err := h.listCategories.Execute(ctx)
	if err != nil {
		h.logger.Warnw("failed to resolve category names", "error", err)
	}
	for _, e := range entries {
		tables.categories[e.ID] = e.Name
	}

	if len(userIDs) > 0 {
		users, err := h.userRepo.GetByIDs(ctx, userIDs)
		if err != nil {
			h.logger.Warnw("failed to resolve usernames", "error", err)
		}
		for _, u := range users {
			tables.usernames[u.ID()] = u.Username()
		}
	}

	return tables
}

func (t *nameTables) category(id *uint) interface{} {
	if id == nil {
		return nil
	}
	if name, ok := t.categories[*id]; ok {
		return name
	}
	return nil
}

func (t *nameTables) username(id uint) string {
	return t.usernames[id]
}

func (t *nameTables) usernamePtr(id *uint) interface{} {
	if id == nil {
		return nil
	}
	return t.usernames[*id]
}

// ticketView is the field set shared by list and detail rendering.
type ticketView struct {
	Number      string
	Title       string
	Description string
	CategoryID  *uint
	CreatorID   uint
	AssigneeID  *uint
	Status      string
	Priority    string
	Location    string
	Department  string
	CreatedAt   time.Time
	ClosedAt    *time.Time
}

func listItemView(t dto.TicketListItemDTO) ticketView {
	return ticketView{
		Number:      t.Number,
		Title:       t.Title,
		Description: t.Description,
		CategoryID:  t.CategoryID,
		CreatorID:   t.CreatorID,
		AssigneeID:  t.AssigneeID,
		Status:      t.Status,
		Priority:    t.Priority,
		Location:    t.Location,
		Department:  t.Department,
		CreatedAt:   t.CreatedAt,
		ClosedAt:    t.ClosedAt,
	}
}

func detailView(t *dto.TicketDTO) ticketView {
	return ticketView{
		Number:      t.Number,
		Title:       t.Title,
		Description: t.Description,
		CategoryID:  t.CategoryID,
		CreatorID:   t.CreatorID,
		AssigneeID:  t.AssigneeID,
		Status:      t.Status,
		Priority:    t.Priority,
		Location:    t.Location,
		Department:  t.Department,
		CreatedAt:   t.CreatedAt,
		ClosedAt:    t.ClosedAt,
	}
}

func ticketFields(v ticketView, tables *nameTables) gin.H {
	return gin.H{
		"ticket_number": v.Number,
		"title":         v.Title,
		"description":   v.Description,
		"category":      tables.category(v.CategoryID),
		"created_by":    tables.username(v.CreatorID),
		"assigned_to":   tables.usernamePtr(v.AssigneeID),
		"status":        v.Status,
		"priority":      v.Priority,
		"location":      v.Location,
		"department":    v.Department,
		"created_at":    formatTime(v.CreatedAt),
		"closed_on":     formatTimePtr(v.ClosedAt),
	}
}

func (h *TicketHandler) writeError(c *gin.Context, err error) {
	if appErr := errors.GetAppError(err); appErr != nil {
		respondError(c, appErr.Code, appErr.Message)
		return
	}
	h.logger.Errorw("api request failed", "path", c.Request.URL.Path, "error", err)
	respondError(c, http.StatusInternalServerError, constants.ErrMsgInternalServerError)
}

func viewerIdentity(c *gin.Context) (uint, bool) {
	var viewerID uint
	if v, exists := c.Get(constants.ContextKeyUserID); exists {
		if id, ok := v.(uint); ok {
			viewerID = id
		}
	}
	return viewerID, c.GetBool(constants.ContextKeyIsStaff)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}
