package services

import (
	"fmt"

	"github.com/delesray/forum/internal/database/repository"
	"github.com/delesray/forum/internal/models"
)

// Reasons returned by CanAccessTopicContent
const (
	ReasonAccessOK          = "OK"
	ReasonNoWritePermission = "insufficient permissions to post, modify replies, or vote in this topic"
	ReasonTopicReadOnly     = "this topic is read-only"
)

// AccessService answers who may see or write what
type AccessService struct {
	topicRepo      *repository.TopicRepository
	categoryRepo   *repository.CategoryRepository
	permissionRepo *repository.CategoryPermissionRepository
}

func NewAccessService(topicRepo *repository.TopicRepository, categoryRepo *repository.CategoryRepository, permissionRepo *repository.CategoryPermissionRepository) *AccessService {
	return &AccessService{
		topicRepo:      topicRepo,
		categoryRepo:   categoryRepo,
		permissionRepo: permissionRepo,
	}
}

// CanAccessTopicContent decides whether a user may post, edit or delete
// replies, or vote, inside a topic. The topic must exist.
func (s *AccessService) CanAccessTopicContent(topicID, userID uint) (bool, string, error) {
	topic, err := s.topicRepo.GetByID(topicID)
	if err != nil {
		return false, "", fmt.Errorf("failed to get topic %d: %w", topicID, err)
	}
	category, err := s.categoryRepo.GetByID(topic.CategoryID)
	if err != nil {
		return false, "", fmt.Errorf("failed to get category %d: %w", topic.CategoryID, err)
	}

	if category.IsPrivate {
		canWrite, err := s.permissionRepo.HasWriteAccess(userID, category.ID)
		if err != nil {
			return false, "", fmt.Errorf("failed to check write access: %w", err)
		}
		if !canWrite {
			return false, ReasonNoWritePermission, nil
		}
	}

	if topic.Status().IsLocked() {
		return false, ReasonTopicReadOnly, nil
	}

	return true, ReasonAccessOK, nil
}

// RequireTopicContentAccess is CanAccessTopicContent as a Forbidden error
func (s *AccessService) RequireTopicContentAccess(topicID, userID uint) error {
	allowed, reason, err := s.CanAccessTopicContent(topicID, userID)
	if err != nil {
		return err
	}
	if !allowed {
		return ForbiddenError("%s", reason)
	}
	return nil
}

// CheckCategoryVisibility returns nil when viewer may see category.
// A nil viewer is anonymous and is rejected from private categories before
// any permission lookup.
func (s *AccessService) CheckCategoryVisibility(category *models.Category, viewer *models.User) error {
	if !category.IsPrivate {
		return nil
	}
	if viewer == nil {
		return UnauthenticatedError("Login to view private categories")
	}
	if viewer.IsAdmin {
		return nil
	}

	granted, err := s.permissionRepo.Exists(viewer.ID, category.ID)
	if err != nil {
		return fmt.Errorf("failed to check category permission: %w", err)
	}
	if !granted {
		return ForbiddenError("You do not have permission to access this private category")
	}
	return nil
}

// CanCreateTopic decides whether user may open a topic in category
func (s *AccessService) CanCreateTopic(category *models.Category, user *models.User) error {
	if category.IsLocked {
		return ForbiddenError("Category #ID:%d, Name: %s is locked", category.ID, category.Name)
	}
	if !category.IsPrivate || user.IsAdmin {
		return nil
	}

	canWrite, err := s.permissionRepo.HasWriteAccess(user.ID, category.ID)
	if err != nil {
		return fmt.Errorf("failed to check write access: %w", err)
	}
	if !canWrite {
		return ForbiddenError("You do not have permission to post in this private category")
	}
	return nil
}
