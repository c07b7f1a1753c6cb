package repository

import (
	"github.com/delesray/forum/internal/models"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create creates a new category
func (r *CategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.First(&category, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// ExistsByName checks if a category with this name exists
func (r *CategoryRepository) ExistsByName(name string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Category{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

// GetAll lists categories, optionally filtered by a name substring.
// order is "asc", "desc" or empty for insertion order.
func (r *CategoryRepository) GetAll(search, order string) ([]models.Category, error) {
	var categories []models.Category
	query := r.db.Model(&models.Category{})
	if search != "" {
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\'`, containsPattern(search))
	}
	switch order {
	case "asc":
		query = query.Order("name ASC")
	case "desc":
		query = query.Order("name DESC")
	default:
		query = query.Order("id ASC")
	}
	err := query.Find(&categories).Error
	return categories, err
}

// UpdatePrivacy sets the is_private flag
func (r *CategoryRepository) UpdatePrivacy(id uint, isPrivate bool) error {
	return r.db.Model(&models.Category{}).Where("id = ?", id).Update("is_private", isPrivate).Error
}

// UpdateLocking sets the is_locked flag
func (r *CategoryRepository) UpdateLocking(id uint, isLocked bool) error {
	return r.db.Model(&models.Category{}).Where("id = ?", id).Update("is_locked", isLocked).Error
}
