package web

import (
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"derbydesk/internal/application/ticket/dto"
	ticketUsecases "derbydesk/internal/application/ticket/usecases"
	"derbydesk/internal/infrastructure/cache"
	"derbydesk/internal/infrastructure/storage"
	"derbydesk/internal/shared/errors"
	"derbydesk/internal/shared/logger"
	"derbydesk/internal/shared/services/markdown"
	"derbydesk/internal/shared/utils"
)

// TicketHandler serves the ticket browsing and editing pages.
type TicketHandler struct {
	createTicket   ticketUsecases.CreateTicketExecutor
	getTicket      ticketUsecases.GetTicketExecutor
	listTickets    ticketUsecases.ListTicketsExecutor
	updateTicket   ticketUsecases.UpdateTicketExecutor
	assignTicket   ticketUsecases.AssignTicketExecutor
	changeStatus   ticketUsecases.ChangeStatusExecutor
	addComment     ticketUsecases.AddCommentExecutor
	addAttachment  ticketUsecases.AddAttachmentExecutor
	getAttachment  ticketUsecases.GetAttachmentExecutor
	deleteTicket   ticketUsecases.DeleteTicketExecutor
	listCategories CategoryLister
	listAssignable ListAssignableExecutor
	userResolver   UserResolver
	store          *storage.AttachmentStore
	markdown       markdown.Service
	maxUploadBytes int64
	logger         logger.Interface
}

type TicketHandlerDeps struct {
	CreateTicket   ticketUsecases.CreateTicketExecutor
	GetTicket      ticketUsecases.GetTicketExecutor
	ListTickets    ticketUsecases.ListTicketsExecutor
	UpdateTicket   ticketUsecases.UpdateTicketExecutor
	AssignTicket   ticketUsecases.AssignTicketExecutor
	ChangeStatus   ticketUsecases.ChangeStatusExecutor
	AddComment     ticketUsecases.AddCommentExecutor
	AddAttachment  ticketUsecases.AddAttachmentExecutor
	GetAttachment  ticketUsecases.GetAttachmentExecutor
	DeleteTicket   ticketUsecases.DeleteTicketExecutor
	ListCategories CategoryLister
	ListAssignable ListAssignableExecutor
	UserResolver   UserResolver
	Store          *storage.AttachmentStore
	Markdown       markdown.Service
	MaxUploadMB    int
	Logger         logger.Interface
}

func NewTicketHandler(deps TicketHandlerDeps) *TicketHandler {
	return &TicketHandler{
		createTicket:   deps.CreateTicket,
		getTicket:      deps.GetTicket,
		listTickets:    deps.ListTickets,
		updateTicket:   deps.UpdateTicket,
		assignTicket:   deps.AssignTicket,
		changeStatus:   deps.ChangeStatus,
		addComment:     deps.AddComment,
		addAttachment:  deps.AddAttachment,
		getAttachment:  deps.GetAttachment,
		deleteTicket:   deps.DeleteTicket,
		listCategories: deps.ListCategories,
		listAssignable: deps.ListAssignable,
		userResolver:   deps.UserResolver,
		store:          deps.Store,
		markdown:       deps.Markdown,
		maxUploadBytes: int64(deps.MaxUploadMB) << 20,
		logger:         deps.Logger,
	}
}

// ticketRow is the list page's rendering model.
type ticketRow struct {
	ID        uint
	Number    string
	Title     string
	Status    string
	Priority  string
	Category  string
	Creator   string
	Assignee  string
	CreatedAt time.Time
}

// List shows the tickets visible to the signed-in user.
func (h *TicketHandler) List(c *gin.Context) {
	pg := utils.ParsePagination(c)

	var categoryID *uint
	if raw := c.Query("category"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil && id > 0 {
			cid := uint(id)
			categoryID = &cid
		}
	}

	result, err := h.listTickets.Execute(c.Request.Context(), ticketUsecases.ListTicketsQuery{
		Status:      c.Query("status"),
		Priority:    c.Query("priority"),
		CategoryID:  categoryID,
		Search:      c.Query("search"),
		Page:        pg.Page,
		PageSize:    pg.PageSize,
		ViewerID:    currentUserID(c),
		ViewerStaff: currentStaff(c),
	})
	if err != nil {
		h.renderFailure(c, err)
		return
	}

	userIDs := make([]uint, 0, len(result.Tickets)*2)
	for _, t := range result.Tickets {
		userIDs = append(userIDs, t.CreatorID)
		if t.AssigneeID != nil {
			userIDs = append(userIDs, *t.AssigneeID)
		}
	}
	usernames := h.usernames(c, userIDs)
	categories := h.categories(c)

	rows := make([]ticketRow, 0, len(result.Tickets))
	for _, t := range result.Tickets {
		row := ticketRow{
			ID:        t.ID,
			Number:    t.Number,
			Title:     t.Title,
			Status:    t.Status,
			Priority:  t.Priority,
			Creator:   usernames[t.CreatorID],
			CreatedAt: t.CreatedAt,
		}
		if t.CategoryID != nil {
			row.Category = categories.names[*t.CategoryID]
		}
		if t.AssigneeID != nil {
			row.Assignee = usernames[*t.AssigneeID]
		}
		rows = append(rows, row)
	}

	c.HTML(http.StatusOK, "ticket_list.html", pageData(c, "Tickets", gin.H{
		"Tickets":    rows,
		"Categories": categories.entries,
		"Total":      result.Total,
		"Page":       result.Page,
		"TotalPages": result.TotalPages,
		"HasPrev":    result.Page > 1,
		"HasNext":    result.Page < result.TotalPages,
		"PrevPage":   result.Page - 1,
		"NextPage":   result.Page + 1,
		"Status":     c.Query("status"),
		"Priority":   c.Query("priority"),
		"Search":     c.Query("search"),
	}))
}

// ShowCreate renders the new-ticket form.
func (h *TicketHandler) ShowCreate(c *gin.Context) {
	c.HTML(http.StatusOK, "ticket_form.html", pageData(c, "New ticket", gin.H{
		"Categories": h.categories(c).entries,
	}))
}

// Create handles the posted new-ticket form.
func (h *TicketHandler) Create(c *gin.Context) {
	cmd := ticketUsecases.CreateTicketCommand{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Priority:    c.PostForm("priority"),
		Location:    c.PostForm("location"),
		Department:  c.PostForm("department"),
		CreatorID:   currentUserID(c),
		IPAddress:   c.ClientIP(),
	}
	cmd.CategoryID = parseOptionalID(c.PostForm("category_id"))

	result, err := h.createTicket.Execute(c.Request.Context(), cmd)
	if err != nil {
		c.HTML(http.StatusBadRequest, "ticket_form.html", pageData(c, "New ticket", gin.H{
			"Categories":      h.categories(c).entries,
			"Error":           formErrorMessage(err),
			"FormTitle":       cmd.Title,
			"FormDescription": cmd.Description,
			"FormPriority":    cmd.Priority,
			"FormLocation":    cmd.Location,
			"FormDepartment":  cmd.Department,
		}))
		return
	}

	redirectWithFlash(c, ticketPath(result.TicketID), "Ticket "+result.Number+" created.")
}

// commentView pairs a comment with its rendered body and author.
type commentView struct {
	Author     string
	BodyHTML   template.HTML
	IsInternal bool
	CreatedAt  time.Time
}

// Detail renders one ticket with comments, attachments, and the edit
// controls the viewer is allowed to use.
func (h *TicketHandler) Detail(c *gin.Context) {
	t, ok := h.loadTicket(c)
	if !ok {
		return
	}

	userIDs := []uint{t.CreatorID}
	if t.AssigneeID != nil {
		userIDs = append(userIDs, *t.AssigneeID)
	}
	for _, comment := range t.Comments {
		userIDs = append(userIDs, comment.UserID)
	}
	usernames := h.usernames(c, userIDs)

	descriptionHTML, err := h.markdown.ToHTMLSanitized(t.Description)
	if err != nil {
		h.logger.Warnw("failed to render ticket description", "ticket_id", t.ID, "error", err)
		descriptionHTML = template.HTMLEscapeString(t.Description)
	}

	comments := make([]commentView, 0, len(t.Comments))
	for _, comment := range t.Comments {
		bodyHTML, err := h.markdown.ToHTMLSanitized(comment.Content)
		if err != nil {
			bodyHTML = template.HTMLEscapeString(comment.Content)
		}
		comments = append(comments, commentView{
			Author:     usernames[comment.UserID],
			BodyHTML:   template.HTML(bodyHTML),
			IsInternal: comment.IsInternal,
			CreatedAt:  comment.CreatedAt,
		})
	}

	categories := h.categories(c)
	categoryName := ""
	if t.CategoryID != nil {
		categoryName = categories.names[*t.CategoryID]
	}

	extra := gin.H{
		"Ticket":          t,
		"DescriptionHTML": template.HTML(descriptionHTML),
		"Comments":        comments,
		"Attachments":     t.Attachments,
		"Creator":         usernames[t.CreatorID],
		"CategoryName":    categoryName,
		"Categories":      categories.entries,
		"CanEdit":         currentStaff(c) || t.CreatorID == currentUserID(c),
	}
	if t.AssigneeID != nil {
		extra["Assignee"] = usernames[*t.AssigneeID]
	}
	if currentStaff(c) {
		assignable, err := h.listAssignable.Execute(c.Request.Context())
		if err != nil {
			h.logger.Warnw("failed to list assignable users", "error", err)
		}
		extra["Assignable"] = assignable
	}

	c.HTML(http.StatusOK, "ticket_detail.html", pageData(c, t.Number+" — "+t.Title, extra))
}

// Edit updates the ticket's details from the detail-page form.
func (h *TicketHandler) Edit(c *gin.Context) {
	ticketID, err := utils.ParseUintParam(c, "id")
	if err != nil {
		renderError(c, http.StatusNotFound, "Ticket not found.")
		return
	}

	cmd := ticketUsecases.UpdateTicketCommand{
		TicketID:    ticketID,
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Priority:    c.PostForm("priority"),
		Location:    c.PostForm("location"),
		Department:  c.PostForm("department"),
		ActorID:     currentUserID(c),
		ActorRole:   currentRole(c),
		ActorStaff:  currentStaff(c),
		IPAddress:   c.ClientIP(),
	}
	cmd.CategoryID = parseOptionalID(c.PostForm("category_id"))

	if err := h.updateTicket.Execute(c.Request.Context(), cmd); err != nil {
		h.failBackToTicket(c, ticketID, err)
		return
	}

	redirectWithFlash(c, ticketPath(ticketID), "Ticket updated.")
}

// Assign sets or clears the assignee. Staff only; the router guards this.
func (h *TicketHandler) Assign(c *gin.Context) {
	ticketID, err := utils.ParseUintParam(c, "id")
	if err != nil {
		renderError(c, http.StatusNotFound, "Ticket not found.")
		return
	}

	cmd := ticketUsecases.AssignTicketCommand{
		TicketID:   ticketID,
		AssigneeID: parseOptionalID(c.PostForm("assignee_id")),
		ActorID:    currentUserID(c),
		IPAddress:  c.ClientIP(),
	}

	if err := h.assignTicket.Execute(c.Request.Context(), cmd); err != nil {
		h.failBackToTicket(c, ticketID, err)
		return
	}

	message := "Ticket assigned."
	if cmd.AssigneeID == nil {
		message = "Ticket unassigned."
	}
	redirectWithFlash(c, ticketPath(ticketID), message)
}

// ChangeStatus moves the ticket between open, in progress, and closed.
func (h *TicketHandler) ChangeStatus(c *gin.Context) {
	ticketID, err := utils.ParseUintParam(c, "id")
	if err != nil {
		renderError(c, http.StatusNotFound, "Ticket not found.")
		return
	}

	cmd := ticketUsecases.ChangeStatusCommand{
		TicketID:   ticketID,
		NewStatus:  c.PostForm("status"),
		ActorID:    currentUserID(c),
		ActorRole:  currentRole(c),
		ActorStaff: currentStaff(c),
		IPAddress:  c.ClientIP(),
	}

	if err := h.changeStatus.Execute(c.Request.Context(), cmd); err != nil {
		h.failBackToTicket(c, ticketID, err)
		return
	}

	redirectWithFlash(c, ticketPath(ticketID), "Status updated.")
}

// AddComment appends a comment from the detail-page form.
func (h *TicketHandler) AddComment(c *gin.Context) {
	ticketID, err := utils.ParseUintParam(c, "id")
	if err != nil {
		renderError(c, http.StatusNotFound, "Ticket not found.")
		return
	}

	cmd := ticketUsecases.AddCommentCommand{
		TicketID:   ticketID,
		Content:    c.PostForm("content"),
		IsInternal: c.PostForm("internal") == "on",
		ActorID:    currentUserID(c),
		ActorRole:  currentRole(c),
		ActorStaff: currentStaff(c),
		IPAddress:  c.ClientIP(),
	}

	if _, err := h.addComment.Execute(c.Request.Context(), cmd); err != nil {
		h.failBackToTicket(c, ticketID, err)
		return
	}

	redirectWithFlash(c, ticketPath(ticketID), "Comment added.")
}

// Delete removes a ticket. The route is admin-only.
func (h *TicketHandler) Delete(c *gin.Context) {
	ticketID, err := utils.ParseUintParam(c, "id")
	if err != nil {
		renderError(c, http.StatusNotFound, "Ticket not found.")
		return
	}

	cmd := ticketUsecases.DeleteTicketCommand{
		TicketID:  ticketID,
		ActorID:   currentUserID(c),
		IPAddress: c.ClientIP(),
	}

	if err := h.deleteTicket.Execute(c.Request.Context(), cmd); err != nil {
		h.failBackToTicket(c, ticketID, err)
		return
	}

	redirectWithFlash(c, "/tickets/", "Ticket deleted.")
}

// Upload receives one attachment from the detail-page form.
func (h *TicketHandler) Upload(c *gin.Context) {
	ticketID, err := utils.ParseUintParam(c, "id")
	if err != nil {
		renderError(c, http.StatusNotFound, "Ticket not found.")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		redirectWithFlash(c, ticketPath(ticketID), "No file selected.")
		return
	}
	if h.maxUploadBytes > 0 && fileHeader.Size > h.maxUploadBytes {
		redirectWithFlash(c, ticketPath(ticketID), "File is too large.")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		h.logger.Errorw("failed to open uploaded file", "ticket_id", ticketID, "error", err)
		redirectWithFlash(c, ticketPath(ticketID), "Upload failed.")
		return
	}
	defer f.Close()

	cmd := ticketUsecases.AddAttachmentCommand{
		TicketID:    ticketID,
		Filename:    storage.SanitizeFilename(fileHeader.Filename),
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     f,
		ActorID:     currentUserID(c),
		ActorRole:   currentRole(c),
		ActorStaff:  currentStaff(c),
	}

	result, err := h.addAttachment.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.failBackToTicket(c, ticketID, err)
		return
	}

	redirectWithFlash(c, ticketPath(ticketID), "Attached "+result.Filename+".")
}

// Download streams an attachment to viewers of the owning ticket.
func (h *TicketHandler) Download(c *gin.Context) {
	attachmentID, err := utils.ParseUintParam(c, "attachmentID")
	if err != nil {
		renderError(c, http.StatusNotFound, "Attachment not found.")
		return
	}

	attachment, err := h.getAttachment.Execute(c.Request.Context(), ticketUsecases.GetAttachmentQuery{
		AttachmentID: attachmentID,
		ViewerID:     currentUserID(c),
		ViewerRole:   currentRole(c),
		ViewerStaff:  currentStaff(c),
	})
	if err != nil {
		renderError(c, http.StatusNotFound, "Attachment not found.")
		return
	}

	reader, err := h.store.Open(attachment.StoragePath())
	if err != nil {
		h.logger.Errorw("failed to open attachment", "attachment_id", attachmentID, "error", err)
		renderError(c, http.StatusInternalServerError, "Could not read the attachment.")
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", `attachment; filename="`+attachment.Filename()+`"`)
	c.DataFromReader(http.StatusOK, attachment.SizeBytes(), attachment.ContentType(), reader, nil)
}

// loadTicket fetches the ticket for the detail page, rendering the 404
// page when it is absent or hidden from the viewer.
func (h *TicketHandler) loadTicket(c *gin.Context) (*dto.TicketDTO, bool) {
	ticketID, err := utils.ParseUintParam(c, "id")
	if err != nil {
		renderError(c, http.StatusNotFound, "Ticket not found.")
		return nil, false
	}

	t, err := h.getTicket.Execute(c.Request.Context(), ticketUsecases.GetTicketQuery{
		TicketID:    ticketID,
		ViewerID:    currentUserID(c),
		ViewerRole:  currentRole(c),
		ViewerStaff: currentStaff(c),
		IPAddress:   c.ClientIP(),
	})
	if err != nil {
		h.renderFailure(c, err)
		return nil, false
	}
	return t, true
}

// failBackToTicket sends form errors back to the detail page as a flash,
// and denials to the error page.
func (h *TicketHandler) failBackToTicket(c *gin.Context, ticketID uint, err error) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		h.logger.Errorw("ticket operation failed", "ticket_id", ticketID, "error", err)
		renderError(c, http.StatusInternalServerError, "Something went wrong.")
		return
	}

	switch appErr.Type {
	case errors.ErrorTypeNotFound:
		renderError(c, http.StatusNotFound, "Ticket not found.")
	case errors.ErrorTypeForbidden:
		redirectWithFlash(c, ticketPath(ticketID), "You do not have permission to do that.")
	default:
		redirectWithFlash(c, ticketPath(ticketID), appErr.Message)
	}
}

func (h *TicketHandler) renderFailure(c *gin.Context, err error) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		h.logger.Errorw("ticket page failed", "path", c.Request.URL.Path, "error", err)
		renderError(c, http.StatusInternalServerError, "Something went wrong.")
		return
	}

	switch appErr.Type {
	case errors.ErrorTypeNotFound:
		renderError(c, http.StatusNotFound, "Ticket not found.")
	case errors.ErrorTypeForbidden:
		redirectWithFlash(c, "/tickets/", "You do not have permission to view that ticket.")
	default:
		renderError(c, appErr.Code, appErr.Message)
	}
}

// categoryTables caches one request's category list in both shapes the
// pages need.
type categoryTables struct {
	entries []cache.CategoryEntry
	names   map[uint]string
}

func (h *TicketHandler) categories(c *gin.Context) categoryTables {
	tables := categoryTables{names: make(map[uint]string)}

	entries, err := h.listCategories.Execute(c.Request.Context())
	if err != nil {
		h.logger.Warnw("failed to load categories", "error", err)
	}
	for _, e := range entries {
		tables.names[e.ID] = e.Name
	}
	tables.entries = entries
	return tables
}

func (h *TicketHandler) usernames(c *gin.Context, ids []uint) map[uint]string {
	names := make(map[uint]string)
	if len(ids) == 0 {
		return names
	}

	users, err := h.userResolver.GetByIDs(c.Request.Context(), ids)
	if err != nil {
		h.logger.Warnw("failed to resolve usernames", "error", err)
		return names
	}
	for _, u := range users {
		names[u.ID()] = u.Username()
	}
	return names
}

func parseOptionalID(raw string) *uint {
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return nil
	}
	v := uint(id)
	return &v
}

func ticketPath(ticketID uint) string {
	return "/tickets/" + strconv.FormatUint(uint64(ticketID), 10) + "/"
}

func formErrorMessage(err error) string {
	if appErr := errors.GetAppError(err); appErr != nil {
		return appErr.Message
	}
	return "Something went wrong. Please try again."
}
