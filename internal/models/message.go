package models

import "time"

// Message is a private message between two users
type Message struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Text       string    `json:"text" gorm:"type:text;not null"`
	SenderID   uint      `json:"sender_id" gorm:"not null;index"`
	ReceiverID uint      `json:"receiver_id" gorm:"not null;index"`
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	Sender   User `json:"-" gorm:"foreignKey:SenderID;references:ID"`
	Receiver User `json:"-" gorm:"foreignKey:ReceiverID;references:ID"`
}

// TableName specifies the table name for the Message model
func (Message) TableName() string {
	return "messages"
}

// MessageTextRequest carries the text of a new or edited message
type MessageTextRequest struct {
	Text string `json:"text" binding:"required" example:"Hi there"`
}

// ConversationPartner is a user the caller has exchanged messages with
type ConversationPartner struct {
	ID       uint   `json:"id" example:"2"`
	Username string `json:"username" example:"bob"`
}
