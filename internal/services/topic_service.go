package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/delesray/forum/internal/database/repository"
	"github.com/delesray/forum/internal/models"
	"github.com/delesray/forum/internal/utils"
	"github.com/sirupsen/logrus"
)

// PageRequest is a validated page of a listing and the URL it was requested at
type PageRequest struct {
	Page int
	Size int
	URL  *url.URL
}

// TopicQuery holds the raw listing parameters of a topic request
type TopicQuery struct {
	Search   string
	Username string
	Category string
	Status   string
	Sort     string
	SortBy   string
}

// normalizeSort checks a sort direction case-insensitively and returns it
// in lower case; empty means unsorted
func normalizeSort(sort string) (string, error) {
	sort = strings.ToLower(sort)
	switch sort {
	case "", "asc", "desc":
		return sort, nil
	}
	return "", ValidationError("Invalid sort parameter")
}

// baseTopicFilter validates the parameters that need no database lookup
func baseTopicFilter(q TopicQuery) (repository.TopicFilter, error) {
	filter := repository.TopicFilter{Search: q.Search}

	if q.Status != "" {
		status, ok := models.ParseTopicStatus(q.Status)
		if !ok {
			return filter, ValidationError("Invalid status value")
		}
		locked := status.IsLocked()
		filter.Locked = &locked
	}

	order, err := normalizeSort(q.Sort)
	if err != nil {
		return filter, err
	}
	sortBy := strings.ToLower(q.SortBy)
	if sortBy != "" {
		if _, ok := repository.TopicSortColumns[sortBy]; !ok {
			return filter, ValidationError("Invalid sort_by parameter")
		}
	}
	filter.Order = order
	filter.SortBy = sortBy
	return filter, nil
}

// topicsPage runs a filtered listing and attaches pagination metadata
func topicsPage(topicRepo *repository.TopicRepository, filter repository.TopicFilter, req PageRequest) ([]models.TopicResponse, models.PaginationInfo, models.Links, error) {
	rows, total, err := topicRepo.List(filter, req.Page, req.Size)
	if err != nil {
		return nil, models.PaginationInfo{}, models.Links{}, fmt.Errorf("failed to list topics: %w", err)
	}

	topics := make([]models.TopicResponse, 0, len(rows))
	for _, row := range rows {
		topics = append(topics, models.ToTopicResponse(row))
	}

	info := utils.CalculatePaginationInfo(total, req.Page, req.Size)
	return topics, info, utils.BuildLinks(req.URL, info), nil
}

type TopicService struct {
	topicRepo    *repository.TopicRepository
	categoryRepo *repository.CategoryRepository
	userRepo     *repository.UserRepository
	replyRepo    *repository.ReplyRepository
	access       *AccessService
	events       EventPublisher
}

func NewTopicService(topicRepo *repository.TopicRepository, categoryRepo *repository.CategoryRepository, userRepo *repository.UserRepository, replyRepo *repository.ReplyRepository, access *AccessService, events EventPublisher) *TopicService {
	return &TopicService{
		topicRepo:    topicRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		replyRepo:    replyRepo,
		access:       access,
		events:       events,
	}
}

// ListTopics returns one page of the topics viewer may see
func (s *TopicService) ListTopics(viewer *models.User, q TopicQuery, req PageRequest) (*models.TopicsPage, error) {
	filter, err := baseTopicFilter(q)
	if err != nil {
		return nil, err
	}

	if q.Username != "" {
		exists, err := s.userRepo.ExistsByUsername(q.Username)
		if err != nil {
			return nil, fmt.Errorf("failed to check user: %w", err)
		}
		if !exists {
			return nil, NotFoundError("User not found")
		}
		filter.Username = q.Username
	}

	if q.Category != "" {
		exists, err := s.categoryRepo.ExistsByName(q.Category)
		if err != nil {
			return nil, fmt.Errorf("failed to check category: %w", err)
		}
		if !exists {
			return nil, NotFoundError("Category not found")
		}
		filter.Category = q.Category
	}

	switch {
	case viewer == nil:
	case viewer.IsAdmin:
		filter.AllCategories = true
	default:
		filter.ViewerID = viewer.ID
	}

	topics, info, links, err := topicsPage(s.topicRepo, filter, req)
	if err != nil {
		return nil, err
	}
	return &models.TopicsPage{Topics: topics, PaginationInfo: info, Links: links}, nil
}

// GetTopicPage returns a topic with one page of its replies. sort orders the
// replies by id and may be empty.
func (s *TopicService) GetTopicPage(viewer *models.User, topicID uint, sort string, req PageRequest) (*models.TopicRepliesPage, error) {
	sort, err := normalizeSort(sort)
	if err != nil {
		return nil, err
	}

	row, err := s.topicRepo.GetRowByID(topicID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, NotFoundError("Topic #ID:%d does not exist", topicID)
		}
		return nil, fmt.Errorf("failed to get topic: %w", err)
	}

	category, err := s.categoryRepo.GetByID(row.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if err := s.access.CheckCategoryVisibility(category, viewer); err != nil {
		return nil, err
	}

	rows, total, err := s.replyRepo.ListByTopic(topicID, req.Page, req.Size, sort)
	if err != nil {
		return nil, fmt.Errorf("failed to list replies: %w", err)
	}

	replies := make([]models.ReplyResponse, 0, len(rows))
	for _, r := range rows {
		replies = append(replies, models.ToReplyResponse(r))
	}

	info := utils.CalculatePaginationInfo(total, req.Page, req.Size)
	return &models.TopicRepliesPage{
		Topic:          models.ToTopicResponse(*row),
		Replies:        replies,
		PaginationInfo: info,
		Links:          utils.BuildLinks(req.URL, info),
	}, nil
}

// Create opens a new topic in a category
func (s *TopicService) Create(user *models.User, req *models.CreateTopicRequest) (*models.Topic, error) {
	category, err := s.categoryRepo.GetByID(req.CategoryID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, NotFoundError("Category #ID:%d does not exist", req.CategoryID)
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	if err := s.access.CanCreateTopic(category, user); err != nil {
		return nil, err
	}

	topic := &models.Topic{
		Title:      req.Title,
		UserID:     user.ID,
		CategoryID: category.ID,
	}
	if err := s.topicRepo.Create(topic); err != nil {
		return nil, fmt.Errorf("failed to create topic: %w", err)
	}

	logrus.Infof("User %s created topic %d in category %s", user.Username, topic.ID, category.Name)
	return topic, nil
}

// getOwnedTopic loads a topic that user may manage as its author or as an admin
func (s *TopicService) getOwnedTopic(user *models.User, topicID uint) (*models.Topic, error) {
	topic, err := s.topicRepo.GetByID(topicID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, NotFoundError("Topic #ID:%d does not exist", topicID)
		}
		return nil, fmt.Errorf("failed to get topic: %w", err)
	}
	if topic.UserID != user.ID && !user.IsAdmin {
		return nil, ForbiddenError("You are not the owner of topic #ID:%d", topicID)
	}
	return topic, nil
}

// SetBestReply marks one of the topic's replies as the best one
func (s *TopicService) SetBestReply(user *models.User, topicID, replyID uint) error {
	topic, err := s.getOwnedTopic(user, topicID)
	if err != nil {
		return err
	}
	if topic.Status().IsLocked() {
		return ForbiddenError("%s", ReasonTopicReadOnly)
	}

	replyIDs, err := s.replyRepo.GetIDsByTopic(topicID)
	if err != nil {
		return fmt.Errorf("failed to get replies: %w", err)
	}
	if len(replyIDs) == 0 {
		return NotFoundError("Topic #ID:%d does not have any replies", topicID)
	}

	found := false
	for _, id := range replyIDs {
		if id == replyID {
			found = true
			break
		}
	}
	if !found {
		return ValidationError("Invalid reply ID")
	}

	if err := s.topicRepo.UpdateBestReply(topicID, replyID); err != nil {
		return fmt.Errorf("failed to update best reply: %w", err)
	}
	return nil
}

// ToggleLocking flips the topic between open and locked and describes the result
func (s *TopicService) ToggleLocking(ctx context.Context, user *models.User, topicID uint) (string, error) {
	topic, err := s.getOwnedTopic(user, topicID)
	if err != nil {
		return "", err
	}

	next := topic.Status().Opposite()
	if err := s.topicRepo.UpdateLocking(topicID, next.IsLocked()); err != nil {
		return "", fmt.Errorf("failed to update topic locking: %w", err)
	}

	s.events.Publish(ctx, EventTopicLocking, map[string]interface{}{
		"topic_id": topicID,
		"status":   next,
		"by":       user.ID,
	})
	return fmt.Sprintf("Topic %s is %s now", topic.Title, next), nil
}
