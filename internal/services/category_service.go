package services

import (
	"context"
	"fmt"

	"github.com/delesray/forum/internal/database/repository"
	"github.com/delesray/forum/internal/models"
	"github.com/sirupsen/logrus"
)

type CategoryService struct {
	categoryRepo *repository.CategoryRepository
	topicRepo    *repository.TopicRepository
	access       *AccessService
	events       EventPublisher
}

func NewCategoryService(categoryRepo *repository.CategoryRepository, topicRepo *repository.TopicRepository, access *AccessService, events EventPublisher) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		topicRepo:    topicRepo,
		access:       access,
		events:       events,
	}
}

// GetAll lists categories filtered by name; sort orders them by name
func (s *CategoryService) GetAll(search, sort string) ([]models.Category, error) {
	sort, err := normalizeSort(sort)
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.GetAll(search, sort)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

// GetByID returns a category or a not-found error
func (s *CategoryService) GetByID(id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, NotFoundError("Category #ID:%d does not exist", id)
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

// GetCategoryPage returns a category with one page of its topics, provided
// viewer may see it. Username, Category and Status of q are ignored.
func (s *CategoryService) GetCategoryPage(viewer *models.User, id uint, q TopicQuery, req PageRequest) (*models.CategoryTopicsPage, error) {
	filter, err := baseTopicFilter(TopicQuery{Search: q.Search, Sort: q.Sort, SortBy: q.SortBy})
	if err != nil {
		return nil, err
	}

	category, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.access.CheckCategoryVisibility(category, viewer); err != nil {
		return nil, err
	}

	filter.CategoryID = category.ID
	filter.AllCategories = true

	topics, info, links, err := topicsPage(s.topicRepo, filter, req)
	if err != nil {
		return nil, err
	}
	return &models.CategoryTopicsPage{
		Category:       *category,
		Topics:         topics,
		PaginationInfo: info,
		Links:          links,
	}, nil
}

// Create adds a new category
func (s *CategoryService) Create(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {
	exists, err := s.categoryRepo.ExistsByName(req.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if exists {
		return nil, ConflictError("Such category name already exists!")
	}

	category := &models.Category{
		Name:      req.Name,
		IsLocked:  req.IsLocked,
		IsPrivate: req.IsPrivate,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		if _, ok := repository.UniqueViolation(err); ok {
			return nil, ConflictError("Such category name already exists!")
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.events.Publish(ctx, EventCategoryAdded, map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
		"is_private":  category.IsPrivate,
	})
	logrus.Infof("Created category %s (ID: %d)", category.Name, category.ID)
	return category, nil
}

// TogglePrivacy flips a category between public and private
func (s *CategoryService) TogglePrivacy(id uint) (string, error) {
	category, err := s.GetByID(id)
	if err != nil {
		return "", err
	}

	isPrivate := !category.IsPrivate
	if err := s.categoryRepo.UpdatePrivacy(id, isPrivate); err != nil {
		return "", fmt.Errorf("failed to update category privacy: %w", err)
	}

	if isPrivate {
		return fmt.Sprintf("Category %s is private now", category.Name), nil
	}
	return fmt.Sprintf("Category %s is public now", category.Name), nil
}

// ToggleLocking flips a category between locked and unlocked
func (s *CategoryService) ToggleLocking(id uint) (string, error) {
	category, err := s.GetByID(id)
	if err != nil {
		return "", err
	}

	isLocked := !category.IsLocked
	if err := s.categoryRepo.UpdateLocking(id, isLocked); err != nil {
		return "", fmt.Errorf("failed to update category locking: %w", err)
	}

	if isLocked {
		return fmt.Sprintf("Category %s is locked now", category.Name), nil
	}
	return fmt.Sprintf("Category %s is unlocked now", category.Name), nil
}
