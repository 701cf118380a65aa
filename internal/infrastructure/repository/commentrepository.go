package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"derbydesk/internal/domain/ticket"
	"derbydesk/internal/infrastructure/persistence/mappers"
	"derbydesk/internal/infrastructure/persistence/models"
	db "derbydesk/internal/shared/db"
	"derbydesk/internal/shared/errors"
)

type CommentRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewCommentRepository(gdb *gorm.DB) *CommentRepository {
	return &CommentRepository{
		db:     gdb,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *CommentRepository) Save(ctx context.Context, c *ticket.Comment) error {
	model := r.mapper.CommentToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save comment: %w", err)
	}

	return c.SetID(model.ID)
}

func (r *CommentRepository) GetByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Comment, error) {
	var commentModels []models.CommentModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Find(&commentModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find comments: %w", err)
	}

	comments := make([]*ticket.Comment, len(commentModels))
	for i := range commentModels {
		c, err := r.mapper.CommentToDomain(&commentModels[i])
		if err != nil {
			return nil, err
		}
		comments[i] = c
	}

	return comments, nil
}

func (r *CommentRepository) DeleteByTicketID(ctx context.Context, ticketID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("ticket_id = ?", ticketID).Delete(&models.CommentModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete ticket comments: %w", err)
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, commentID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Delete(&models.CommentModel{}, commentID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete comment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("comment not found")
	}
	return nil
}
