package models

import "time"

// Reply is a post inside a topic
type Reply struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	TopicID   uint      `json:"topic_id" gorm:"not null;index"`
	IsEdited  bool      `json:"is_edited" gorm:"default:false"`
	IsDeleted bool      `json:"-" gorm:"default:false;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	User  User  `json:"-" gorm:"foreignKey:UserID;references:ID"`
	Topic Topic `json:"-" gorm:"foreignKey:TopicID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Reply model
func (Reply) TableName() string {
	return "replies"
}

// ReplyTextRequest carries the text of a new or edited reply
type ReplyTextRequest struct {
	Text string `json:"text" binding:"required" example:"Start with the docs."`
}

// ReplyRow is a reply joined with its author and vote counts
type ReplyRow struct {
	ID        uint
	Text      string
	UserID    uint
	Author    string
	TopicID   uint
	IsEdited  bool
	Upvotes   int64
	Downvotes int64
}

// ReplyResponse represents a reply in API responses
type ReplyResponse struct {
	ID        uint   `json:"id" example:"5"`
	Text      string `json:"text" example:"Start with the docs."`
	UserID    uint   `json:"user_id" example:"2"`
	Author    string `json:"author" example:"bob"`
	TopicID   uint   `json:"topic_id" example:"1"`
	IsEdited  bool   `json:"is_edited" example:"false"`
	Upvotes   int64  `json:"upvotes" example:"3"`
	Downvotes int64  `json:"downvotes" example:"0"`
}

// ToReplyResponse maps a joined reply row to its response form
func ToReplyResponse(row ReplyRow) ReplyResponse {
	return ReplyResponse{
		ID:        row.ID,
		Text:      row.Text,
		UserID:    row.UserID,
		Author:    row.Author,
		TopicID:   row.TopicID,
		IsEdited:  row.IsEdited,
		Upvotes:   row.Upvotes,
		Downvotes: row.Downvotes,
	}
}
