// services/category_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"reward-marketplace-system/models"
)

type CategoryService struct {
	DB *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{DB: db}
}

// ListCategories is open to any caller.
func (s *CategoryService) ListCategories() ([]models.Category, error) {
	var cats []models.Category
	err := s.DB.Order("name ASC").Find(&cats).Error
	return cats, err
}

// CreateCategory adds reference data. Admin only.
func (s *CategoryService) CreateCategory(actor Actor, name, description string) (*models.Category, error) {
	if !CanManageCategories(actor) {
		return nil, models.ErrForbidden
	}
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	cat := &models.Category{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
	}
	if err := s.DB.Create(cat).Error; err != nil {
		return nil, err
	}
	return cat, nil
}

// UpdateCategory edits reference data. Admin only.
func (s *CategoryService) UpdateCategory(actor Actor, id, name, description string) (*models.Category, error) {
	if !CanManageCategories(actor) {
		return nil, models.ErrForbidden
	}

	var cat models.Category
	if err := s.DB.First(&cat, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	if name != "" {
		cat.Name = name
	}
	cat.Description = description
	if err := s.DB.Save(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

// DeleteCategory removes a category; rewards keep a dangling reference
// cleared to null by the FK, matching the original SET_NULL behavior.
func (s *CategoryService) DeleteCategory(actor Actor, id string) error {
	if !CanManageCategories(actor) {
		return models.ErrForbidden
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Category{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrNotFound
		}
		return tx.Model(&models.Reward{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error
	})
}
