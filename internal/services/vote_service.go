package services

import (
	"context"
	"fmt"

	"github.com/delesray/forum/internal/database/repository"
	"github.com/delesray/forum/internal/models"
)

// VoteAction is what AddOrSwitch does to the stored vote
type VoteAction int

const (
	VoteCreate VoteAction = iota
	VoteSwitch
	VoteUnchanged
)

// NextVote computes the transition from the current vote (nil when the user
// has not voted) to a requested type, with the message shown to the user.
func NextVote(current *models.VoteType, requested models.VoteType, replyID uint) (VoteAction, string) {
	switch {
	case current == nil:
		return VoteCreate, fmt.Sprintf("You %svoted reply with ID: %d", requested, replyID)
	case *current == requested:
		return VoteUnchanged, fmt.Sprintf("Reply already %svoted. Choose different type to switch it", requested)
	default:
		return VoteSwitch, fmt.Sprintf("Vote switched to %svote", requested)
	}
}

type VoteService struct {
	voteRepo  *repository.VoteRepository
	replyRepo *repository.ReplyRepository
	topicRepo *repository.TopicRepository
	access    *AccessService
	events    EventPublisher
}

func NewVoteService(voteRepo *repository.VoteRepository, replyRepo *repository.ReplyRepository, topicRepo *repository.TopicRepository, access *AccessService, events EventPublisher) *VoteService {
	return &VoteService{
		voteRepo:  voteRepo,
		replyRepo: replyRepo,
		topicRepo: topicRepo,
		access:    access,
		events:    events,
	}
}

func parseVoteType(s string) (models.VoteType, error) {
	voteType, ok := models.ParseVoteType(s)
	if !ok {
		return "", ValidationError("Invalid vote type")
	}
	return voteType, nil
}

// gate runs the checks every vote operation shares
func (s *VoteService) gate(user *models.User, topicID, replyID uint) error {
	if err := requireTopic(s.topicRepo, topicID); err != nil {
		return err
	}
	if _, err := replyInTopic(s.replyRepo, topicID, replyID); err != nil {
		return err
	}
	return s.access.RequireTopicContentAccess(topicID, user.ID)
}

// AddOrSwitch casts a vote, switches an existing one, or leaves a vote of
// the same type untouched
func (s *VoteService) AddOrSwitch(ctx context.Context, user *models.User, topicID, replyID uint, rawType string) (*models.VoteResult, error) {
	voteType, err := parseVoteType(rawType)
	if err != nil {
		return nil, err
	}
	if err := s.gate(user, topicID, replyID); err != nil {
		return nil, err
	}

	var current *models.VoteType
	existing, err := s.voteRepo.Get(user.ID, replyID)
	switch {
	case err == nil:
		current = &existing.Type
	case !repository.IsNotFound(err):
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}

	action, message := NextVote(current, voteType, replyID)
	switch action {
	case VoteCreate:
		vote := &models.Vote{UserID: user.ID, ReplyID: replyID, Type: voteType}
		if err := s.voteRepo.Create(vote); err != nil {
			return nil, fmt.Errorf("failed to create vote: %w", err)
		}
	case VoteSwitch:
		if err := s.voteRepo.UpdateType(user.ID, replyID, voteType); err != nil {
			return nil, fmt.Errorf("failed to switch vote: %w", err)
		}
	case VoteUnchanged:
		return &models.VoteResult{Message: message}, nil
	}

	s.events.Publish(ctx, EventVoteCast, map[string]interface{}{
		"reply_id": replyID,
		"user_id":  user.ID,
		"type":     voteType,
	})
	return &models.VoteResult{Message: message, Created: action == VoteCreate}, nil
}

// Remove deletes the user's vote on a reply; a missing vote is not an error
func (s *VoteService) Remove(ctx context.Context, user *models.User, topicID, replyID uint) error {
	if err := s.gate(user, topicID, replyID); err != nil {
		return err
	}

	removed, err := s.voteRepo.Delete(user.ID, replyID)
	if err != nil {
		return fmt.Errorf("failed to delete vote: %w", err)
	}
	if removed > 0 {
		s.events.Publish(ctx, EventVoteRemoved, map[string]interface{}{
			"reply_id": replyID,
			"user_id":  user.ID,
		})
	}
	return nil
}

// Count returns how many votes of one type a reply has
func (s *VoteService) Count(user *models.User, topicID, replyID uint, rawType string) (*models.VoteCountResponse, error) {
	voteType, err := parseVoteType(rawType)
	if err != nil {
		return nil, err
	}
	if err := s.gate(user, topicID, replyID); err != nil {
		return nil, err
	}

	count, err := s.voteRepo.CountByType(replyID, voteType)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}
	return &models.VoteCountResponse{ReplyID: replyID, Type: voteType, Count: count}, nil
}
