package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/delesray/forum/internal/database/repository"
	"github.com/delesray/forum/internal/models"
	"github.com/delesray/forum/internal/services/excel"
	"github.com/sirupsen/logrus"
)

// CategoryPermissionService manages the grants of private categories
type CategoryPermissionService struct {
	permissionRepo *repository.CategoryPermissionRepository
	userRepo       *repository.UserRepository
	categoryRepo   *repository.CategoryRepository
	events         EventPublisher
}

func NewCategoryPermissionService(permissionRepo *repository.CategoryPermissionRepository, userRepo *repository.UserRepository, categoryRepo *repository.CategoryRepository, events EventPublisher) *CategoryPermissionService {
	return &CategoryPermissionService{
		permissionRepo: permissionRepo,
		userRepo:       userRepo,
		categoryRepo:   categoryRepo,
		events:         events,
	}
}

func (s *CategoryPermissionService) getUserAndCategory(userID, categoryID uint) (*models.User, *models.Category, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, nil, NotFoundError("User with ID: %d doesn't exist!", userID)
		}
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}
	category, err := s.categoryRepo.GetByID(categoryID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, nil, NotFoundError("Category #ID:%d does not exist", categoryID)
		}
		return nil, nil, fmt.Errorf("failed to get category: %w", err)
	}
	return user, category, nil
}

func (s *CategoryPermissionService) publish(ctx context.Context, userID, categoryID uint, access string) {
	s.events.Publish(ctx, EventGrantChanged, map[string]interface{}{
		"user_id":     userID,
		"category_id": categoryID,
		"access":      access,
	})
}

// Grant gives a user read access to a category
func (s *CategoryPermissionService) Grant(ctx context.Context, userID, categoryID uint) (string, error) {
	user, category, err := s.getUserAndCategory(userID, categoryID)
	if err != nil {
		return "", err
	}

	exists, err := s.permissionRepo.Exists(userID, categoryID)
	if err != nil {
		return "", fmt.Errorf("failed to check permission: %w", err)
	}
	if exists {
		return "", ValidationError("User is already in the category")
	}

	permission := &models.CategoryPermission{UserID: userID, CategoryID: categoryID}
	if err := s.permissionRepo.Create(permission); err != nil {
		if _, ok := repository.UniqueViolation(err); ok {
			return "", ValidationError("User is already in the category")
		}
		return "", fmt.Errorf("failed to grant permission: %w", err)
	}

	s.publish(ctx, userID, categoryID, models.AccessName(false))
	logrus.Infof("Granted user %s read access to category %s", user.Username, category.Name)
	return fmt.Sprintf("User %s added to category %s", user.Username, category.Name), nil
}

// Revoke removes a user's grant; revoking a missing grant succeeds
func (s *CategoryPermissionService) Revoke(ctx context.Context, userID, categoryID uint) error {
	if _, _, err := s.getUserAndCategory(userID, categoryID); err != nil {
		return err
	}
	if err := s.permissionRepo.Delete(userID, categoryID); err != nil {
		return fmt.Errorf("failed to revoke permission: %w", err)
	}
	s.publish(ctx, userID, categoryID, "none")
	return nil
}

// ToggleWriteAccess flips an existing grant between read and write
func (s *CategoryPermissionService) ToggleWriteAccess(ctx context.Context, userID, categoryID uint) (string, error) {
	if _, _, err := s.getUserAndCategory(userID, categoryID); err != nil {
		return "", err
	}

	permission, err := s.permissionRepo.Get(userID, categoryID)
	if err != nil {
		if repository.IsNotFound(err) {
			return "", NotFoundError("User is not in that category")
		}
		return "", fmt.Errorf("failed to get permission: %w", err)
	}

	writeAccess := !permission.WriteAccess
	if err := s.permissionRepo.UpdateWriteAccess(userID, categoryID, writeAccess); err != nil {
		return "", fmt.Errorf("failed to update write access: %w", err)
	}

	s.publish(ctx, userID, categoryID, models.AccessName(writeAccess))
	if writeAccess {
		return "User can write", nil
	}
	return "User cannot write", nil
}

// PrivilegedUsers lists the grantees of a private category, write access first
func (s *CategoryPermissionService) PrivilegedUsers(categoryID uint) (*models.PrivilegedUsersResponse, error) {
	category, err := s.categoryRepo.GetByID(categoryID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, NotFoundError("Category #ID:%d does not exist", categoryID)
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if !category.IsPrivate {
		return nil, ValidationError("This category is public")
	}

	rows, err := s.permissionRepo.GetPrivilegedUsers(categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get privileged users: %w", err)
	}

	users := make([]models.PrivilegedUser, 0, len(rows))
	for _, row := range rows {
		users = append(users, models.ToPrivilegedUser(row))
	}
	return &models.PrivilegedUsersResponse{Category: category.Name, Users: users}, nil
}

// ExportPrivilegedUsers renders PrivilegedUsers as an XLSX workbook and
// returns it with a suggested file name
func (s *CategoryPermissionService) ExportPrivilegedUsers(categoryID uint) (*bytes.Buffer, string, error) {
	resp, err := s.PrivilegedUsers(categoryID)
	if err != nil {
		return nil, "", err
	}

	buf, err := excel.ExportPrivilegedUsers(resp.Category, resp.Users)
	if err != nil {
		return nil, "", err
	}
	return buf, fmt.Sprintf("category_%d_privileged_users.xlsx", categoryID), nil
}
