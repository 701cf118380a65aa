package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"derbydesk/internal/domain/ticket"
	vo "derbydesk/internal/domain/ticket/valueobjects"
	"derbydesk/internal/infrastructure/persistence/mappers"
	"derbydesk/internal/infrastructure/persistence/models"
	db "derbydesk/internal/shared/db"
	"derbydesk/internal/shared/errors"
)

// allowedTicketOrderByFields defines the whitelist of allowed ORDER BY fields
// to prevent SQL injection attacks.
var allowedTicketOrderByFields = map[string]bool{
	"id":          true,
	"number":      true,
	"title":       true,
	"status":      true,
	"priority":    true,
	"category_id": true,
	"creator_id":  true,
	"assignee_id": true,
	"created_at":  true,
	"updated_at":  true,
}

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(gdb *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     gdb,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("ticket number already exists", t.Number())
		}
		return fmt.Errorf("failed to save ticket: %w", err)
	}

	return t.SetID(model.ID)
}

func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	// Select lists every column so nil assignee and cleared close time
	// are written, not skipped as zero values.
	result := tx.
		Model(&models.TicketModel{}).
		Where("id = ?", model.ID).
		Select("title", "description", "category_id", "priority", "status",
			"assignee_id", "location", "department", "updated_at", "closed_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}

	// Note: RowsAffected may be 0 when updated values are identical to existing values.

	return nil
}

func (r *TicketRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Delete(&models.TicketModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete ticket: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("ticket not found")
	}
	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("ticket not found")
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	t, err := r.mapper.ToDomain(&model)
	if err != nil {
		return nil, err
	}

	if err := r.loadComments(ctx, t, model.ID); err != nil {
		return nil, err
	}

	return t, nil
}

func (r *TicketRepository) GetByNumber(ctx context.Context, number string) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("number = ?", number).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("ticket not found")
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	t, err := r.mapper.ToDomain(&model)
	if err != nil {
		return nil, err
	}

	if err := r.loadComments(ctx, t, model.ID); err != nil {
		return nil, err
	}

	return t, nil
}

func (r *TicketRepository) List(
	ctx context.Context,
	filter ticket.TicketFilter,
) ([]*ticket.Ticket, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := r.applyFilter(tx.Model(&models.TicketModel{}), filter)

	return r.listPage(query, filter)
}

func (r *TicketRepository) ListVisibleTo(
	ctx context.Context,
	userID uint,
	filter ticket.TicketFilter,
) ([]*ticket.Ticket, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := r.applyFilter(tx.Model(&models.TicketModel{}), filter).
		Where("creator_id = ? OR assignee_id = ?", userID, userID)

	return r.listPage(query, filter)
}

func (r *TicketRepository) applyFilter(query *gorm.DB, filter ticket.TicketFilter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", filter.Priority.String())
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.CreatorID != nil {
		query = query.Where("creator_id = ?", *filter.CreatorID)
	}
	if filter.AssigneeID != nil {
		query = query.Where("assignee_id = ?", *filter.AssigneeID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR number LIKE ?", like, like)
	}
	return query
}

func (r *TicketRepository) listPage(query *gorm.DB, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	// Apply sorting with whitelist validation to prevent SQL injection
	sortBy := strings.ToLower(filter.SortBy)
	if sortBy != "" && allowedTicketOrderByFields[sortBy] {
		order := strings.ToUpper(filter.SortOrder)
		if order != "ASC" && order != "DESC" {
			order = "DESC"
		}
		query = query.Order(sortBy + " " + order)
	} else {
		query = query.Order("created_at DESC")
	}

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	var ticketModels []models.TicketModel
	if err := query.Find(&ticketModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets := make([]*ticket.Ticket, len(ticketModels))
	for i := range ticketModels {
		t, err := r.mapper.ToDomain(&ticketModels[i])
		if err != nil {
			return nil, 0, err
		}
		tickets[i] = t
	}

	return tickets, total, nil
}

func (r *TicketRepository) CountByStatus(ctx context.Context) (map[vo.TicketStatus]int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []struct {
		Status string
		Count  int64
	}
	if err := tx.Model(&models.TicketModel{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count tickets by status: %w", err)
	}

	counts := make(map[vo.TicketStatus]int64, len(rows))
	for _, row := range rows {
		counts[vo.TicketStatus(row.Status)] = row.Count
	}
	return counts, nil
}

func (r *TicketRepository) CountByCategory(ctx context.Context) (map[uint]int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []struct {
		CategoryID *uint
		Count      int64
	}
	if err := tx.Model(&models.TicketModel{}).
		Select("category_id, count(*) as count").
		Group("category_id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count tickets by category: %w", err)
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		if row.CategoryID != nil {
			counts[*row.CategoryID] = row.Count
		}
	}
	return counts, nil
}

// NextSequenceForDate counts tickets whose number carries the given
// date key, including soft-deleted ones so numbers are never reissued.
func (r *TicketRepository) NextSequenceForDate(ctx context.Context, dateKey string) (int, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var count int64
	if err := tx.Unscoped().
		Model(&models.TicketModel{}).
		Where("number LIKE ?", "T-"+dateKey+"-%").
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count tickets for date: %w", err)
	}

	return int(count) + 1, nil
}

// loadComments queries comments for a ticket and adds them to the domain entity.
func (r *TicketRepository) loadComments(ctx context.Context, t *ticket.Ticket, ticketID uint) error {
	var commentModels []models.CommentModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Find(&commentModels).Error; err != nil {
		return fmt.Errorf("failed to load comments: %w", err)
	}

	for i := range commentModels {
		comment, err := r.mapper.CommentToDomain(&commentModels[i])
		if err != nil {
			return err
		}
		if err := t.AddComment(comment); err != nil {
			return err
		}
	}

	return nil
}
