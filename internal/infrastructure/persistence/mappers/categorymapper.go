package mappers

import (
	"derbydesk/internal/domain/category"
	"derbydesk/internal/infrastructure/persistence/models"
)

// CategoryMapper handles the conversion between Category domain entities and persistence models.
type CategoryMapper interface {
	ToModel(c *category.Category) *models.CategoryModel
	ToDomain(model *models.CategoryModel) (*category.Category, error)
}

type CategoryMapperImpl struct{}

func NewCategoryMapper() CategoryMapper {
	return &CategoryMapperImpl{}
}

func (m *CategoryMapperImpl) ToModel(c *category.Category) *models.CategoryModel {
	return &models.CategoryModel{
		ID:          c.ID(),
		Name:        c.Name(),
		Slug:        c.Slug(),
		Description: c.Description(),
		SortOrder:   c.SortOrder(),
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	}
}

func (m *CategoryMapperImpl) ToDomain(model *models.CategoryModel) (*category.Category, error) {
	return category.ReconstructCategory(
		model.ID,
		model.Name,
		model.Slug,
		model.Description,
		model.SortOrder,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
