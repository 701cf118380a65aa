package mappers

import (
	"derbydesk/internal/domain/user"
	"derbydesk/internal/infrastructure/persistence/models"
	"derbydesk/internal/shared/authorization"
)

// UserMapper handles the conversion between User domain entities and persistence models.
type UserMapper interface {
	ToModel(u *user.User) *models.UserModel
	ToDomain(model *models.UserModel, profile *models.UserProfileModel) (*user.User, error)
	ProfileToModel(userID uint, p user.Profile) *models.UserProfileModel
	SessionToModel(s *user.Session) *models.UserSessionModel
	SessionToDomain(model *models.UserSessionModel) *user.Session
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:           u.ID(),
		Username:     u.Username(),
		Email:        u.Email(),
		DisplayName:  u.DisplayName(),
		PasswordHash: u.PasswordHash(),
		Role:         u.Role().String(),
		IsStaff:      u.IsStaff(),
		Active:       u.IsActive(),
		LastLoginAt:  u.LastLoginAt(),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	}
}

// ToDomain converts a user persistence model to a domain entity. The
// profile model may be nil when the user has never filled one in.
func (m *UserMapperImpl) ToDomain(model *models.UserModel, profile *models.UserProfileModel) (*user.User, error) {
	var p user.Profile
	if profile != nil {
		p = user.Profile{
			Phone:      profile.Phone,
			Location:   profile.Location,
			Department: profile.Department,
		}
	}

	return user.ReconstructUser(
		model.ID,
		model.Username,
		model.Email,
		model.DisplayName,
		model.PasswordHash,
		authorization.ParseUserRole(model.Role),
		model.IsStaff,
		model.Active,
		model.LastLoginAt,
		p,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *UserMapperImpl) ProfileToModel(userID uint, p user.Profile) *models.UserProfileModel {
	return &models.UserProfileModel{
		UserID:     userID,
		Phone:      p.Phone,
		Location:   p.Location,
		Department: p.Department,
	}
}

func (m *UserMapperImpl) SessionToModel(s *user.Session) *models.UserSessionModel {
	return &models.UserSessionModel{
		ID:             s.ID,
		UserID:         s.UserID,
		IPAddress:      s.IPAddress,
		UserAgent:      s.UserAgent,
		ExpiresAt:      s.ExpiresAt,
		LastActivityAt: s.LastActivityAt,
		RevokedAt:      s.RevokedAt,
		CreatedAt:      s.CreatedAt,
	}
}

func (m *UserMapperImpl) SessionToDomain(model *models.UserSessionModel) *user.Session {
	return &user.Session{
		ID:             model.ID,
		UserID:         model.UserID,
		IPAddress:      model.IPAddress,
		UserAgent:      model.UserAgent,
		ExpiresAt:      model.ExpiresAt,
		LastActivityAt: model.LastActivityAt,
		RevokedAt:      model.RevokedAt,
		CreatedAt:      model.CreatedAt,
	}
}
