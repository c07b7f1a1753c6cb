package repository

import (
	"github.com/delesray/forum/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// active limits a query to users that have not been soft-deleted
func (r *UserRepository) active() *gorm.DB {
	return r.db.Model(&models.User{}).Where("is_deleted = ?", false)
}

// Create creates a new user
func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// GetByID retrieves a non-deleted user by ID
func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.active().Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername retrieves a non-deleted user by username
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.active().Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetAll returns every non-deleted user
func (r *UserRepository) GetAll() ([]models.User, error) {
	var users []models.User
	err := r.active().Order("id").Find(&users).Error
	return users, err
}

// CheckUsernameExists checks if a username is taken, deleted accounts included
func (r *UserRepository) CheckUsernameExists(username string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// CheckEmailExists checks if an email is taken, deleted accounts included
func (r *UserRepository) CheckEmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// ExistsByUsername checks if a non-deleted user has this username
func (r *UserRepository) ExistsByUsername(username string) (bool, error) {
	var count int64
	err := r.active().Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// UpdateNames updates first and last name
func (r *UserRepository) UpdateNames(id uint, firstName, lastName string) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{"first_name": firstName, "last_name": lastName}).Error
}

// UpdatePassword stores a new password hash
func (r *UserRepository) UpdatePassword(id uint, passwordHash string) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("password_hash", passwordHash).Error
}

// SoftDelete flags the user as deleted; the database trigger removes their messages
func (r *UserRepository) SoftDelete(id uint) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("is_deleted", true).Error
}
