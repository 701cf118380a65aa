package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"derbydesk/internal/domain/audit"
	"derbydesk/internal/infrastructure/persistence/mappers"
	"derbydesk/internal/infrastructure/persistence/models"
	db "derbydesk/internal/shared/db"
)

type AuditRepository struct {
	db     *gorm.DB
	mapper mappers.AuditMapper
}

func NewAuditRepository(gdb *gorm.DB) *AuditRepository {
	return &AuditRepository{
		db:     gdb,
		mapper: mappers.NewAuditMapper(),
	}
}

func (r *AuditRepository) SaveEntry(ctx context.Context, entry *audit.Entry) error {
	model, err := r.mapper.EntryToModel(entry)
	if err != nil {
		return err
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save audit entry: %w", err)
	}
	entry.ID = model.ID
	return nil
}

func (r *AuditRepository) ListEntries(ctx context.Context, filter audit.Filter) ([]*audit.Entry, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.AuditLogModel{})

	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.EntityType != "" {
		query = query.Where("entity_type = ?", filter.EntityType)
	}
	if filter.ActorID != nil {
		query = query.Where("actor_id = ?", *filter.ActorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count audit entries: %w", err)
	}

	query = query.Order("created_at DESC")
	query = paginate(query, filter.Page, filter.PageSize)

	var entryModels []models.AuditLogModel
	if err := query.Find(&entryModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list audit entries: %w", err)
	}

	entries := make([]*audit.Entry, 0, len(entryModels))
	for i := range entryModels {
		e, err := r.mapper.EntryToDomain(&entryModels[i])
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, total, nil
}

func (r *AuditRepository) SaveSecurityEvent(ctx context.Context, event *audit.SecurityEvent) error {
	model, err := r.mapper.SecurityEventToModel(event)
	if err != nil {
		return err
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save security event: %w", err)
	}
	event.ID = model.ID
	return nil
}

func (r *AuditRepository) ListSecurityEvents(ctx context.Context, page, pageSize int) ([]*audit.SecurityEvent, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.SecurityEventModel{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count security events: %w", err)
	}

	query = paginate(query.Order("created_at DESC"), page, pageSize)

	var eventModels []models.SecurityEventModel
	if err := query.Find(&eventModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list security events: %w", err)
	}

	events := make([]*audit.SecurityEvent, 0, len(eventModels))
	for i := range eventModels {
		e, err := r.mapper.SecurityEventToDomain(&eventModels[i])
		if err != nil {
			return nil, 0, err
		}
		events = append(events, e)
	}
	return events, total, nil
}

func (r *AuditRepository) SaveLoginAttempt(ctx context.Context, attempt *audit.LoginAttempt) error {
	model := r.mapper.LoginAttemptToModel(attempt)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save login attempt: %w", err)
	}
	attempt.ID = model.ID
	return nil
}

func (r *AuditRepository) ListLoginAttempts(ctx context.Context, username string, page, pageSize int) ([]*audit.LoginAttempt, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.LoginAttemptModel{})

	if username != "" {
		query = query.Where("username = ?", username)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count login attempts: %w", err)
	}

	query = paginate(query.Order("created_at DESC"), page, pageSize)

	var attemptModels []models.LoginAttemptModel
	if err := query.Find(&attemptModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list login attempts: %w", err)
	}

	attempts := make([]*audit.LoginAttempt, 0, len(attemptModels))
	for i := range attemptModels {
		attempts = append(attempts, r.mapper.LoginAttemptToDomain(&attemptModels[i]))
	}
	return attempts, total, nil
}

func paginate(query *gorm.DB, page, pageSize int) *gorm.DB {
	if pageSize <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}
