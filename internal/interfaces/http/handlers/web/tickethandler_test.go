package web

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"derbydesk/internal/application/ticket/dto"
	ticketUsecases "derbydesk/internal/application/ticket/usecases"
	"derbydesk/internal/domain/ticket"
	"derbydesk/internal/domain/user"
	"derbydesk/internal/infrastructure/cache"
	"derbydesk/internal/shared/authorization"
	"derbydesk/internal/shared/errors"
	"derbydesk/internal/shared/services/markdown"
)

type webMockListTicketsUC struct {
	query  ticketUsecases.ListTicketsQuery
	result *ticketUsecases.ListTicketsResult
	err    error
}

func (m *webMockListTicketsUC) Execute(_ context.Context, query ticketUsecases.ListTicketsQuery) (*ticketUsecases.ListTicketsResult, error) {
	m.query = query
	return m.result, m.err
}

type webMockGetTicketUC struct {
	result *dto.TicketDTO
	err    error
}

func (m *webMockGetTicketUC) Execute(_ context.Context, _ ticketUsecases.GetTicketQuery) (*dto.TicketDTO, error) {
	return m.result, m.err
}

type webMockCreateTicketUC struct {
	cmd    ticketUsecases.CreateTicketCommand
	result *ticketUsecases.CreateTicketResult
	err    error
}

func (m *webMockCreateTicketUC) Execute(_ context.Context, cmd ticketUsecases.CreateTicketCommand) (*ticketUsecases.CreateTicketResult, error) {
	m.cmd = cmd
	return m.result, m.err
}

type webMockAddCommentUC struct {
	cmd ticketUsecases.AddCommentCommand
	err error
}

func (m *webMockAddCommentUC) Execute(_ context.Context, cmd ticketUsecases.AddCommentCommand) (*ticketUsecases.AddCommentResult, error) {
	m.cmd = cmd
	if m.err != nil {
		return nil, m.err
	}
	return &ticketUsecases.AddCommentResult{CommentID: 1}, nil
}

type webMockCategoryLister struct {
	entries []cache.CategoryEntry
}

func (m *webMockCategoryLister) Execute(_ context.Context) ([]cache.CategoryEntry, error) {
	return m.entries, nil
}

type webMockAssignableUC struct {
	users []*user.User
}

func (m *webMockAssignableUC) Execute(_ context.Context) ([]*user.User, error) {
	return m.users, nil
}

type webMockUserResolver struct {
	users []*user.User
}

func (m *webMockUserResolver) GetByIDs(_ context.Context, _ []uint) ([]*user.User, error) {
	return m.users, nil
}

type webMockGetAttachmentUC struct {
	attachment *ticket.Attachment
	err        error
}

func (m *webMockGetAttachmentUC) Execute(_ context.Context, _ ticketUsecases.GetAttachmentQuery) (*ticket.Attachment, error) {
	return m.attachment, m.err
}

func newWebTicketHandler(deps TicketHandlerDeps) *TicketHandler {
	if deps.ListCategories == nil {
		deps.ListCategories = &webMockCategoryLister{}
	}
	if deps.ListAssignable == nil {
		deps.ListAssignable = &webMockAssignableUC{}
	}
	if deps.UserResolver == nil {
		deps.UserResolver = &webMockUserResolver{}
	}
	if deps.Markdown == nil {
		deps.Markdown = markdown.NewService()
	}
	if deps.Logger == nil {
		deps.Logger = testLogger()
	}
	deps.MaxUploadMB = 10
	return NewTicketHandler(deps)
}

func TestTicketHandler_List_RendersVisibleTickets(t *testing.T) {
	listUC := &webMockListTicketsUC{
		result: &ticketUsecases.ListTicketsResult{
			Tickets: []dto.TicketListItemDTO{
				{ID: 1, Number: "T-20250601-0001", Title: "Projector dead", Status: "open", Priority: "high", CreatorID: 7, CreatedAt: time.Now()},
			},
			Total:      1,
			Page:       1,
			TotalPages: 1,
		},
	}
	handler := newWebTicketHandler(TicketHandlerDeps{
		ListTickets:  listUC,
		UserResolver: &webMockUserResolver{users: []*user.User{webTestUser(t, 7, "hdavis", authorization.RoleUser)}},
	})

	c, w := newGetContext("/tickets/")
	signIn(c, 7, authorization.RoleUser, false)

	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "T-20250601-0001")
	assert.Contains(t, w.Body.String(), "hdavis")

	assert.Equal(t, uint(7), listUC.query.ViewerID)
	assert.False(t, listUC.query.ViewerStaff)
	assert.False(t, listUC.query.Unpaginated)
}

func TestTicketHandler_Detail_RendersSanitizedMarkdown(t *testing.T) {
	getUC := &webMockGetTicketUC{
		result: &dto.TicketDTO{
			ID:          5,
			Number:      "T-20250601-0001",
			Title:       "Projector dead",
			Description: "**urgent** <script>alert('x')</script>",
			Status:      "open",
			Priority:    "high",
			CreatorID:   7,
			Comments: []dto.CommentDTO{
				{ID: 1, UserID: 7, Content: "tried _rebooting_", CreatedAt: time.Now()},
			},
		},
	}
	handler := newWebTicketHandler(TicketHandlerDeps{
		GetTicket:    getUC,
		UserResolver: &webMockUserResolver{users: []*user.User{webTestUser(t, 7, "hdavis", authorization.RoleUser)}},
	})

	c, w := newGetContext("/tickets/5/")
	c.Params = append(c.Params, gin.Param{Key: "id", Value: "5"})
	signIn(c, 7, authorization.RoleUser, false)

	handler.Detail(c)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<strong>urgent</strong>")
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "<em>rebooting</em>")
}

func TestTicketHandler_Detail_HiddenTicketRenders404(t *testing.T) {
	handler := newWebTicketHandler(TicketHandlerDeps{
		GetTicket: &webMockGetTicketUC{err: errors.NewNotFoundError("ticket not found")},
	})

	c, w := newGetContext("/tickets/99/")
	c.Params = append(c.Params, gin.Param{Key: "id", Value: "99"})
	signIn(c, 7, authorization.RoleUser, false)

	handler.Detail(c)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Ticket not found")
}

func TestTicketHandler_Create_RedirectsWithFlash(t *testing.T) {
	createUC := &webMockCreateTicketUC{
		result: &ticketUsecases.CreateTicketResult{TicketID: 12, Number: "T-20250601-0003", Status: "open"},
	}
	handler := newWebTicketHandler(TicketHandlerDeps{CreateTicket: createUC})

	form := url.Values{}
	form.Set("title", "Laptop will not boot")
	form.Set("description", "Black screen on power up")
	form.Set("priority", "high")
	c, w := newFormContext(http.MethodPost, "/tickets/create/", form)
	signIn(c, 7, authorization.RoleUser, false)

	handler.Create(c)
	c.Writer.WriteHeaderNow()

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/tickets/12/", w.Header().Get("Location"))
	assert.Equal(t, uint(7), createUC.cmd.CreatorID)
	assert.Equal(t, "Laptop will not boot", createUC.cmd.Title)
}

func TestTicketHandler_Create_ValidationErrorRedisplaysForm(t *testing.T) {
	createUC := &webMockCreateTicketUC{err: errors.NewValidationError("ticket title is required")}
	handler := newWebTicketHandler(TicketHandlerDeps{CreateTicket: createUC})

	form := url.Values{}
	form.Set("priority", "high")
	c, w := newFormContext(http.MethodPost, "/tickets/create/", form)
	signIn(c, 7, authorization.RoleUser, false)

	handler.Create(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ticket title is required")
}

func TestTicketHandler_AddComment_InternalFlagFromForm(t *testing.T) {
	commentUC := &webMockAddCommentUC{}
	handler := newWebTicketHandler(TicketHandlerDeps{AddComment: commentUC})

	form := url.Values{}
	form.Set("content", "Swapped the bulb")
	form.Set("internal", "on")
	c, w := newFormContext(http.MethodPost, "/tickets/5/comments/", form)
	c.Params = append(c.Params, gin.Param{Key: "id", Value: "5"})
	signIn(c, 3, authorization.RoleAdmin, true)

	handler.AddComment(c)
	c.Writer.WriteHeaderNow()

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/tickets/5/", w.Header().Get("Location"))
	assert.True(t, commentUC.cmd.IsInternal)
	assert.True(t, commentUC.cmd.ActorStaff)
	assert.Equal(t, "Swapped the bulb", commentUC.cmd.Content)
}

type webMockDeleteTicketUC struct {
	cmd ticketUsecases.DeleteTicketCommand
	err error
}

func (m *webMockDeleteTicketUC) Execute(_ context.Context, cmd ticketUsecases.DeleteTicketCommand) error {
	m.cmd = cmd
	return m.err
}

func TestTicketHandler_Delete_RedirectsToList(t *testing.T) {
	deleteUC := &webMockDeleteTicketUC{}
	handler := newWebTicketHandler(TicketHandlerDeps{DeleteTicket: deleteUC})

	c, w := newFormContext(http.MethodPost, "/tickets/5/delete/", url.Values{})
	c.Params = append(c.Params, gin.Param{Key: "id", Value: "5"})
	signIn(c, 3, authorization.RoleAdmin, true)

	handler.Delete(c)
	c.Writer.WriteHeaderNow()

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/tickets/", w.Header().Get("Location"))
	assert.Equal(t, uint(5), deleteUC.cmd.TicketID)
	assert.Equal(t, uint(3), deleteUC.cmd.ActorID)
}

func TestTicketHandler_Delete_FailureReturnsToTicket(t *testing.T) {
	deleteUC := &webMockDeleteTicketUC{err: errors.NewForbiddenError("only admins can delete tickets")}
	handler := newWebTicketHandler(TicketHandlerDeps{DeleteTicket: deleteUC})

	c, w := newFormContext(http.MethodPost, "/tickets/5/delete/", url.Values{})
	c.Params = append(c.Params, gin.Param{Key: "id", Value: "5"})
	signIn(c, 3, authorization.RoleAdmin, true)

	handler.Delete(c)
	c.Writer.WriteHeaderNow()

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/tickets/5/", w.Header().Get("Location"))
}
