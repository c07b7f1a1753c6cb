package repository

import (
	"github.com/delesray/forum/internal/models"
	"gorm.io/gorm"
)

type CategoryPermissionRepository struct {
	db *gorm.DB
}

func NewCategoryPermissionRepository(db *gorm.DB) *CategoryPermissionRepository {
	return &CategoryPermissionRepository{db: db}
}

// Create grants a user access to a category
func (r *CategoryPermissionRepository) Create(permission *models.CategoryPermission) error {
	return r.db.Create(permission).Error
}

// Get retrieves the grant of a user for a category
func (r *CategoryPermissionRepository) Get(userID, categoryID uint) (*models.CategoryPermission, error) {
	var permission models.CategoryPermission
	err := r.db.Where("user_id = ? AND category_id = ?", userID, categoryID).First(&permission).Error
	if err != nil {
		return nil, err
	}
	return &permission, nil
}

// Exists checks if a user holds any grant (read or write) for a category
func (r *CategoryPermissionRepository) Exists(userID, categoryID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.CategoryPermission{}).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Count(&count).Error
	return count > 0, err
}

// HasWriteAccess checks if a user holds a write grant for a category
func (r *CategoryPermissionRepository) HasWriteAccess(userID, categoryID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.CategoryPermission{}).
		Where("user_id = ? AND category_id = ? AND write_access = ?", userID, categoryID, true).
		Count(&count).Error
	return count > 0, err
}

// UpdateWriteAccess sets the write_access flag of an existing grant
func (r *CategoryPermissionRepository) UpdateWriteAccess(userID, categoryID uint, writeAccess bool) error {
	return r.db.Model(&models.CategoryPermission{}).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Update("write_access", writeAccess).Error
}

// Delete removes a grant; removing a missing grant is not an error
func (r *CategoryPermissionRepository) Delete(userID, categoryID uint) error {
	return r.db.Where("user_id = ? AND category_id = ?", userID, categoryID).Delete(&models.CategoryPermission{}).Error
}

// GetPrivilegedUsers lists the grantees of a category, write access first
func (r *CategoryPermissionRepository) GetPrivilegedUsers(categoryID uint) ([]models.PrivilegedUserRow, error) {
	var rows []models.PrivilegedUserRow
	err := r.db.Table("users_categories_permissions").
		Select("users_categories_permissions.user_id, users.username, users_categories_permissions.write_access").
		Joins("JOIN users ON users.id = users_categories_permissions.user_id").
		Where("users_categories_permissions.category_id = ? AND users.is_deleted = ?", categoryID, false).
		Order("users_categories_permissions.write_access DESC, users.username ASC").
		Scan(&rows).Error
	return rows, err
}
