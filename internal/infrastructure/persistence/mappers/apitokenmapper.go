package mappers

import (
	"derbydesk/internal/domain/apitoken"
	"derbydesk/internal/infrastructure/persistence/models"
)

// APITokenMapper handles the conversion between APIToken domain entities and persistence models.
type APITokenMapper interface {
	ToModel(t *apitoken.APIToken) *models.APITokenModel
	ToDomain(model *models.APITokenModel) (*apitoken.APIToken, error)
}

type APITokenMapperImpl struct{}

func NewAPITokenMapper() APITokenMapper {
	return &APITokenMapperImpl{}
}

func (m *APITokenMapperImpl) ToModel(t *apitoken.APIToken) *models.APITokenModel {
	return &models.APITokenModel{
		ID:         t.ID(),
		UserID:     t.UserID(),
		Name:       t.Name(),
		TokenHash:  t.TokenHash(),
		Active:     t.IsActive(),
		LastUsedAt: t.LastUsedAt(),
		ExpiresAt:  t.ExpiresAt(),
		CreatedAt:  t.CreatedAt(),
		UpdatedAt:  t.UpdatedAt(),
	}
}

func (m *APITokenMapperImpl) ToDomain(model *models.APITokenModel) (*apitoken.APIToken, error) {
	return apitoken.ReconstructAPIToken(
		model.ID,
		model.UserID,
		model.Name,
		model.TokenHash,
		model.Active,
		model.LastUsedAt,
		model.ExpiresAt,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
