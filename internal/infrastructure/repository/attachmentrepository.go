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

type AttachmentRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewAttachmentRepository(gdb *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{
		db:     gdb,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *AttachmentRepository) Save(ctx context.Context, a *ticket.Attachment) error {
	model := r.mapper.AttachmentToModel(a)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save attachment: %w", err)
	}

	return a.SetID(model.ID)
}

func (r *AttachmentRepository) GetByID(ctx context.Context, attachmentID uint) (*ticket.Attachment, error) {
	var model models.AttachmentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, attachmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("attachment not found")
		}
		return nil, fmt.Errorf("failed to find attachment: %w", err)
	}

	return r.mapper.AttachmentToDomain(&model)
}

func (r *AttachmentRepository) GetByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Attachment, error) {
	var attachmentModels []models.AttachmentModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Find(&attachmentModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find attachments: %w", err)
	}

	attachments := make([]*ticket.Attachment, len(attachmentModels))
	for i := range attachmentModels {
		a, err := r.mapper.AttachmentToDomain(&attachmentModels[i])
		if err != nil {
			return nil, err
		}
		attachments[i] = a
	}

	return attachments, nil
}

func (r *AttachmentRepository) DeleteByTicketID(ctx context.Context, ticketID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("ticket_id = ?", ticketID).Delete(&models.AttachmentModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete ticket attachments: %w", err)
	}
	return nil
}

func (r *AttachmentRepository) Delete(ctx context.Context, attachmentID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Delete(&models.AttachmentModel{}, attachmentID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete attachment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("attachment not found")
	}
	return nil
}
