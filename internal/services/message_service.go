package services

import (
	"context"
	"fmt"

	"github.com/delesray/forum/internal/database/repository"
	"github.com/delesray/forum/internal/models"
)

type MessageService struct {
	messageRepo *repository.MessageRepository
	userRepo    *repository.UserRepository
	events      EventPublisher
}

func NewMessageService(messageRepo *repository.MessageRepository, userRepo *repository.UserRepository, events EventPublisher) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		events:      events,
	}
}

// Send delivers a private message from sender to receiverID
func (s *MessageService) Send(ctx context.Context, sender *models.User, receiverID uint, text string) (*models.Message, error) {
	text, err := cleanText(text, "Message")
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByID(receiverID); err != nil {
		if repository.IsNotFound(err) {
			return nil, NotFoundError("Receiver not found")
		}
		return nil, fmt.Errorf("failed to get receiver: %w", err)
	}
	if receiverID == sender.ID {
		return nil, ValidationError("You cannot message yourself")
	}

	message := &models.Message{Text: text, SenderID: sender.ID, ReceiverID: receiverID}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	s.events.Publish(ctx, EventMessageSent, map[string]interface{}{
		"message_id":  message.ID,
		"sender_id":   sender.ID,
		"receiver_id": receiverID,
	})
	return message, nil
}

// Conversations lists the users user has exchanged messages with
func (s *MessageService) Conversations(user *models.User) ([]models.ConversationPartner, error) {
	partners, err := s.messageRepo.GetConversationPartners(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversations: %w", err)
	}
	return partners, nil
}

// Conversation returns the messages between user and otherID, oldest first
func (s *MessageService) Conversation(user *models.User, otherID uint) ([]models.Message, error) {
	if _, err := s.userRepo.GetByID(otherID); err != nil {
		if repository.IsNotFound(err) {
			return nil, NotFoundError("User with ID: %d doesn't exist!", otherID)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	messages, err := s.messageRepo.GetConversation(user.ID, otherID)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	return messages, nil
}

// UpdateText edits a message the user sent
func (s *MessageService) UpdateText(user *models.User, messageID uint, text string) (*models.Message, error) {
	message, err := s.messageRepo.GetByID(messageID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, NotFoundError("No such message")
		}
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	if message.SenderID != user.ID {
		return nil, ForbiddenError("You can only edit messages you sent")
	}

	text, err = cleanText(text, "Message")
	if err != nil {
		return nil, err
	}
	if err := s.messageRepo.UpdateText(messageID, text); err != nil {
		return nil, fmt.Errorf("failed to update message: %w", err)
	}
	message.Text = text
	return message, nil
}
