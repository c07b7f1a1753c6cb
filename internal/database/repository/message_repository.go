package repository

import (
	"github.com/delesray/forum/internal/models"
	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create stores a new message
func (r *MessageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

// GetByID retrieves a message by ID
func (r *MessageRepository) GetByID(id uint) (*models.Message, error) {
	var message models.Message
	err := r.db.First(&message, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// UpdateText replaces the text of a message
func (r *MessageRepository) UpdateText(id uint, text string) error {
	return r.db.Model(&models.Message{}).Where("id = ?", id).Update("text", text).Error
}

// GetConversation returns the messages exchanged between two users, oldest first
func (r *MessageRepository) GetConversation(userID, otherID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherID, otherID, userID).
		Order("id ASC").
		Find(&messages).Error
	return messages, err
}

// GetConversationPartners lists the users a user has messaged or heard from
func (r *MessageRepository) GetConversationPartners(userID uint) ([]models.ConversationPartner, error) {
	var partners []models.ConversationPartner
	err := r.db.Table("users").
		Distinct("users.id", "users.username").
		Joins("JOIN messages ON (messages.sender_id = users.id AND messages.receiver_id = ?) "+
			"OR (messages.receiver_id = users.id AND messages.sender_id = ?)", userID, userID).
		Where("users.is_deleted = ?", false).
		Order("users.id").
		Scan(&partners).Error
	return partners, err
}
