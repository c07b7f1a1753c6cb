package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/delesray/forum/internal/database/repository"
	"github.com/delesray/forum/internal/models"
)

type ReplyService struct {
	replyRepo *repository.ReplyRepository
	topicRepo *repository.TopicRepository
	access    *AccessService
	events    EventPublisher
}

func NewReplyService(replyRepo *repository.ReplyRepository, topicRepo *repository.TopicRepository, access *AccessService, events EventPublisher) *ReplyService {
	return &ReplyService{
		replyRepo: replyRepo,
		topicRepo: topicRepo,
		access:    access,
		events:    events,
	}
}

// requireTopic fails with a not-found error when the topic is missing
func requireTopic(topicRepo *repository.TopicRepository, topicID uint) error {
	exists, err := topicRepo.Exists(topicID)
	if err != nil {
		return fmt.Errorf("failed to check topic: %w", err)
	}
	if !exists {
		return NotFoundError("No such topic")
	}
	return nil
}

// replyInTopic loads a live reply and checks it belongs to topicID
func replyInTopic(replyRepo *repository.ReplyRepository, topicID, replyID uint) (*models.Reply, error) {
	reply, err := replyRepo.GetByID(replyID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, NotFoundError("No such reply")
		}
		return nil, fmt.Errorf("failed to get reply: %w", err)
	}
	if reply.TopicID != topicID {
		return nil, NotFoundError("No such reply")
	}
	return reply, nil
}

func cleanText(text, field string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ValidationError("%s text is required", field)
	}
	return text, nil
}

// Create posts a reply in a topic
func (s *ReplyService) Create(ctx context.Context, user *models.User, topicID uint, text string) (*models.Reply, error) {
	if err := requireTopic(s.topicRepo, topicID); err != nil {
		return nil, err
	}
	if err := s.access.RequireTopicContentAccess(topicID, user.ID); err != nil {
		return nil, err
	}
	text, err := cleanText(text, "Reply")
	if err != nil {
		return nil, err
	}

	reply := &models.Reply{Text: text, UserID: user.ID, TopicID: topicID}
	if err := s.replyRepo.Create(reply); err != nil {
		return nil, fmt.Errorf("failed to create reply: %w", err)
	}

	s.events.Publish(ctx, EventReplyCreated, map[string]interface{}{
		"reply_id": reply.ID,
		"topic_id": topicID,
		"user_id":  user.ID,
	})
	return reply, nil
}

// ownReply runs the checks shared by edit and delete, in order: topic,
// reply membership, content access, authorship
func (s *ReplyService) ownReply(user *models.User, topicID, replyID uint) (*models.Reply, error) {
	if err := requireTopic(s.topicRepo, topicID); err != nil {
		return nil, err
	}
	reply, err := replyInTopic(s.replyRepo, topicID, replyID)
	if err != nil {
		return nil, err
	}
	if err := s.access.RequireTopicContentAccess(topicID, user.ID); err != nil {
		return nil, err
	}
	if reply.UserID != user.ID {
		return nil, ForbiddenError("You can only modify your own replies")
	}
	return reply, nil
}

// Update replaces the text of the user's own reply
func (s *ReplyService) Update(user *models.User, topicID, replyID uint, text string) (*models.Reply, error) {
	reply, err := s.ownReply(user, topicID, replyID)
	if err != nil {
		return nil, err
	}
	text, err = cleanText(text, "Reply")
	if err != nil {
		return nil, err
	}

	if err := s.replyRepo.UpdateText(replyID, text); err != nil {
		return nil, fmt.Errorf("failed to update reply: %w", err)
	}
	reply.Text = text
	reply.IsEdited = true
	return reply, nil
}

// Delete soft-deletes the user's own reply
func (s *ReplyService) Delete(user *models.User, topicID, replyID uint) error {
	if _, err := s.ownReply(user, topicID, replyID); err != nil {
		return err
	}
	if err := s.replyRepo.SoftDelete(replyID); err != nil {
		return fmt.Errorf("failed to delete reply: %w", err)
	}
	return nil
}
