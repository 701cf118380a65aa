package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"derbydesk/internal/domain/user"
	"derbydesk/internal/infrastructure/persistence/mappers"
	"derbydesk/internal/infrastructure/persistence/models"
	"derbydesk/internal/shared/authorization"
	db "derbydesk/internal/shared/db"
	"derbydesk/internal/shared/errors"
)

var allowedUserOrderByFields = map[string]bool{
	"id":            true,
	"username":      true,
	"email":         true,
	"display_name":  true,
	"role":          true,
	"created_at":    true,
	"last_login_at": true,
}

type UserRepository struct {
	db     *gorm.DB
	mapper mappers.UserMapper
}

func NewUserRepository(gdb *gorm.DB) *UserRepository {
	return &UserRepository{
		db:     gdb,
		mapper: mappers.NewUserMapper(),
	}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	model := r.mapper.ToModel(u)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("username or email already exists")
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	if err := u.SetID(model.ID); err != nil {
		return err
	}

	return r.saveProfile(ctx, model.ID, u.Profile())
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	model := r.mapper.ToModel(u)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.UserModel{}).
		Where("id = ?", model.ID).
		Select("email", "display_name", "password_hash", "role",
			"is_staff", "active", "last_login_at", "updated_at").
		Updates(model)

	if result.Error != nil {
		if errors.IsDuplicateError(result.Error) {
			return errors.NewConflictError("email already exists")
		}
		return fmt.Errorf("failed to update user: %w", result.Error)
	}

	return r.saveProfile(ctx, model.ID, u.Profile())
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Delete(&models.UserModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("user not found")
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	return r.getOne(ctx, "id = ?", id)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.getOne(ctx, "username = ?", strings.ToLower(username))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getOne(ctx, "email = ?", email)
}

func (r *UserRepository) getOne(ctx context.Context, cond string, arg any) (*user.User, error) {
	var model models.UserModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where(cond, arg).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("user not found")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	profile, err := r.loadProfile(ctx, model.ID)
	if err != nil {
		return nil, err
	}

	return r.mapper.ToDomain(&model, profile)
}

func (r *UserRepository) GetByIDs(ctx context.Context, ids []uint) ([]*user.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var userModels []models.UserModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("id IN ?", ids).Find(&userModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}

	return r.toDomainList(ctx, userModels)
}

func (r *UserRepository) List(ctx context.Context, filter user.ListFilter) ([]*user.User, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.UserModel{})

	if filter.Username != "" {
		query = query.Where("username LIKE ?", "%"+strings.ToLower(filter.Username)+"%")
	}
	if filter.Email != "" {
		query = query.Where("email LIKE ?", "%"+filter.Email+"%")
	}
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	orderBy := strings.ToLower(filter.OrderBy)
	if orderBy != "" && allowedUserOrderByFields[orderBy] {
		order := strings.ToUpper(filter.Order)
		if order != "ASC" && order != "DESC" {
			order = "ASC"
		}
		query = query.Order(orderBy + " " + order)
	} else {
		query = query.Order("username ASC")
	}

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	var userModels []models.UserModel
	if err := query.Find(&userModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	users, err := r.toDomainList(ctx, userModels)
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *UserRepository) ListAssignable(ctx context.Context) ([]*user.User, error) {
	var userModels []models.UserModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("role = ? AND active = ?", authorization.RoleAdmin.String(), true).
		Order("username ASC").
		Find(&userModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list assignable users: %w", err)
	}

	return r.toDomainList(ctx, userModels)
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username = ?", strings.ToLower(username))
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", email)
}

func (r *UserRepository) exists(ctx context.Context, cond string, arg any) (bool, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.UserModel{}).Where(cond, arg).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return count > 0, nil
}

func (r *UserRepository) toDomainList(ctx context.Context, userModels []models.UserModel) ([]*user.User, error) {
	if len(userModels) == 0 {
		return nil, nil
	}

	ids := make([]uint, len(userModels))
	for i := range userModels {
		ids[i] = userModels[i].ID
	}

	// Load profiles in one query instead of one per user
	var profileModels []models.UserProfileModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("user_id IN ?", ids).Find(&profileModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}

	profilesByUser := make(map[uint]*models.UserProfileModel, len(profileModels))
	for i := range profileModels {
		profilesByUser[profileModels[i].UserID] = &profileModels[i]
	}

	users := make([]*user.User, len(userModels))
	for i := range userModels {
		u, err := r.mapper.ToDomain(&userModels[i], profilesByUser[userModels[i].ID])
		if err != nil {
			return nil, err
		}
		users[i] = u
	}

	return users, nil
}

func (r *UserRepository) loadProfile(ctx context.Context, userID uint) (*models.UserProfileModel, error) {
	var profile models.UserProfileModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &profile, nil
}

// saveProfile upserts the user's profile row. Empty profiles are still
// written so edits that clear fields persist.
func (r *UserRepository) saveProfile(ctx context.Context, userID uint, p user.Profile) error {
	model := r.mapper.ProfileToModel(userID, p)
	tx := db.GetTxFromContext(ctx, r.db)

	var existing models.UserProfileModel
	err := tx.Where("user_id = ?", userID).First(&existing).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to load profile: %w", err)
	default:
		if err := tx.Model(&models.UserProfileModel{}).
			Where("user_id = ?", userID).
			Select("phone", "location", "department").
			Updates(model).Error; err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}
	}

	return nil
}
