package services

import (
	"fmt"

	"github.com/delesray/forum/internal/database/repository"
	"github.com/delesray/forum/internal/models"
	"github.com/delesray/forum/internal/services/auth"
	"github.com/sirupsen/logrus"
)

type UserService struct {
	userRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register creates a new user account
func (s *UserService) Register(req *models.RegisterRequest) (*models.User, error) {
	exists, err := s.userRepo.CheckUsernameExists(req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return nil, ConflictError("Such username already exists!")
	}

	exists, err = s.userRepo.CheckEmailExists(req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ConflictError("Such email already exists!")
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: hashed,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}
	if err := s.userRepo.Create(user); err != nil {
		if constraint, ok := repository.UniqueViolation(err); ok {
			return nil, duplicateUserError(constraint)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logrus.Infof("Registered user %s (ID: %d)", user.Username, user.ID)
	return user, nil
}

// duplicateUserError names the field behind a unique violation that slipped
// past the pre-checks
func duplicateUserError(constraint string) error {
	switch constraint {
	case repository.ConstraintUsersEmail:
		return ConflictError("Such email already exists!")
	case repository.ConstraintUsersUsername:
		return ConflictError("Such username already exists!")
	default:
		return ConflictError("Such user already exists!")
	}
}

// GetAll returns every active user
func (s *UserService) GetAll() ([]models.UserInfo, error) {
	users, err := s.userRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	result := make([]models.UserInfo, 0, len(users))
	for i := range users {
		result = append(result, models.ToUserInfo(&users[i]))
	}
	return result, nil
}

// GetByID returns an active user
func (s *UserService) GetByID(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, NotFoundError("User with ID: %d doesn't exist!", id)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// Update changes the names of user; empty fields keep their current value
func (s *UserService) Update(user *models.User, req *models.UpdateUserRequest) (*models.User, error) {
	firstName := user.FirstName
	if req.FirstName != "" {
		firstName = req.FirstName
	}
	lastName := user.LastName
	if req.LastName != "" {
		lastName = req.LastName
	}

	if err := s.userRepo.UpdateNames(user.ID, firstName, lastName); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	updated := *user
	updated.FirstName = firstName
	updated.LastName = lastName
	return &updated, nil
}

// ChangePassword replaces the password of user after checking the current one
func (s *UserService) ChangePassword(user *models.User, req *models.ChangePasswordRequest) error {
	if !auth.VerifyPassword(user.PasswordHash, req.CurrentPassword) {
		return ValidationError("Current password is incorrect")
	}
	if req.NewPassword != req.ConfirmPassword {
		return ValidationError("New password and confirmation do not match")
	}

	hashed, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(user.ID, hashed); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// Delete soft-deletes user once the password is confirmed
func (s *UserService) Delete(user *models.User, currentPassword string) error {
	if !auth.VerifyPassword(user.PasswordHash, currentPassword) {
		return ValidationError("Current password is incorrect")
	}
	if err := s.userRepo.SoftDelete(user.ID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	logrus.Infof("User %s (ID: %d) deleted", user.Username, user.ID)
	return nil
}
