package mappers

import (
	"encoding/json"
	"fmt"

	"derbydesk/internal/domain/audit"
	"derbydesk/internal/infrastructure/persistence/models"
)

// AuditMapper handles the conversion between audit records and persistence models.
type AuditMapper interface {
	EntryToModel(e *audit.Entry) (*models.AuditLogModel, error)
	EntryToDomain(model *models.AuditLogModel) (*audit.Entry, error)
	SecurityEventToModel(e *audit.SecurityEvent) (*models.SecurityEventModel, error)
	SecurityEventToDomain(model *models.SecurityEventModel) (*audit.SecurityEvent, error)
	LoginAttemptToModel(a *audit.LoginAttempt) *models.LoginAttemptModel
	LoginAttemptToDomain(model *models.LoginAttemptModel) *audit.LoginAttempt
}

type AuditMapperImpl struct{}

func NewAuditMapper() AuditMapper {
	return &AuditMapperImpl{}
}

func (m *AuditMapperImpl) EntryToModel(e *audit.Entry) (*models.AuditLogModel, error) {
	detail, err := marshalDetail(e.Detail)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal audit detail: %w", err)
	}

	return &models.AuditLogModel{
		ID:         e.ID,
		ActorID:    e.ActorID,
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Detail:     detail,
		IPAddress:  e.IPAddress,
		CreatedAt:  e.CreatedAt,
	}, nil
}

func (m *AuditMapperImpl) EntryToDomain(model *models.AuditLogModel) (*audit.Entry, error) {
	detail, err := unmarshalDetail(model.Detail)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal audit detail (id=%d): %w", model.ID, err)
	}

	return &audit.Entry{
		ID:         model.ID,
		ActorID:    model.ActorID,
		Action:     model.Action,
		EntityType: model.EntityType,
		EntityID:   model.EntityID,
		Detail:     detail,
		IPAddress:  model.IPAddress,
		CreatedAt:  model.CreatedAt,
	}, nil
}

func (m *AuditMapperImpl) SecurityEventToModel(e *audit.SecurityEvent) (*models.SecurityEventModel, error) {
	detail, err := marshalDetail(e.Detail)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal security event detail: %w", err)
	}

	return &models.SecurityEventModel{
		ID:        e.ID,
		UserID:    e.UserID,
		EventType: e.EventType,
		Detail:    detail,
		IPAddress: e.IPAddress,
		UserAgent: e.UserAgent,
		CreatedAt: e.CreatedAt,
	}, nil
}

func (m *AuditMapperImpl) SecurityEventToDomain(model *models.SecurityEventModel) (*audit.SecurityEvent, error) {
	detail, err := unmarshalDetail(model.Detail)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal security event detail (id=%d): %w", model.ID, err)
	}

	return &audit.SecurityEvent{
		ID:        model.ID,
		UserID:    model.UserID,
		EventType: model.EventType,
		Detail:    detail,
		IPAddress: model.IPAddress,
		UserAgent: model.UserAgent,
		CreatedAt: model.CreatedAt,
	}, nil
}

func (m *AuditMapperImpl) LoginAttemptToModel(a *audit.LoginAttempt) *models.LoginAttemptModel {
	return &models.LoginAttemptModel{
		ID:        a.ID,
		Username:  a.Username,
		Success:   a.Success,
		IPAddress: a.IPAddress,
		UserAgent: a.UserAgent,
		CreatedAt: a.CreatedAt,
	}
}

func (m *AuditMapperImpl) LoginAttemptToDomain(model *models.LoginAttemptModel) *audit.LoginAttempt {
	return &audit.LoginAttempt{
		ID:        model.ID,
		Username:  model.Username,
		Success:   model.Success,
		IPAddress: model.IPAddress,
		UserAgent: model.UserAgent,
		CreatedAt: model.CreatedAt,
	}
}

func marshalDetail(detail map[string]any) ([]byte, error) {
	if len(detail) == 0 {
		return nil, nil
	}
	return json.Marshal(detail)
}

func unmarshalDetail(raw []byte) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var detail map[string]any
	if err := json.Unmarshal(raw, &detail); err != nil {
		return nil, err
	}
	return detail, nil
}
