package models

import (
	"strings"
	"time"
)

// TopicStatus is the API form of a topic's lock flag
type TopicStatus string

const (
	TopicStatusOpen   TopicStatus = "open"
	TopicStatusLocked TopicStatus = "locked"
)

// StatusFromLocked converts the stored is_locked column to a TopicStatus.
// false is open, true is locked; every layer uses this encoding.
func StatusFromLocked(isLocked bool) TopicStatus {
	if isLocked {
		return TopicStatusLocked
	}
	return TopicStatusOpen
}

// ParseTopicStatus validates a status string coming from a request,
// ignoring case
func ParseTopicStatus(s string) (TopicStatus, bool) {
	status := TopicStatus(strings.ToLower(s))
	switch status {
	case TopicStatusOpen, TopicStatusLocked:
		return status, true
	}
	return "", false
}

// IsLocked reports whether the status maps to a locked topic
func (s TopicStatus) IsLocked() bool {
	return s == TopicStatusLocked
}

// Opposite returns the status a locking toggle switches to
func (s TopicStatus) Opposite() TopicStatus {
	if s.IsLocked() {
		return TopicStatusOpen
	}
	return TopicStatusLocked
}

// Topic is a discussion thread inside a category
type Topic struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"type:varchar(255);not null"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	IsLocked    bool      `json:"-" gorm:"default:false;index"`
	BestReplyID *uint     `json:"best_reply_id"`
	CategoryID  uint      `json:"category_id" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at"`

	// Relationships
	User     User     `json:"-" gorm:"foreignKey:UserID;references:ID"`
	Category Category `json:"-" gorm:"foreignKey:CategoryID;references:ID"`
}

// TableName specifies the table name for the Topic model
func (Topic) TableName() string {
	return "topics"
}

// Status returns the API status of the topic
func (t *Topic) Status() TopicStatus {
	return StatusFromLocked(t.IsLocked)
}

// CreateTopicRequest represents the request to create a new topic
type CreateTopicRequest struct {
	Title      string `json:"title" binding:"required,min=1,max=255" example:"How do I start?"`
	CategoryID uint   `json:"category_id" binding:"required" example:"1"`
}

// UpdateBestReplyRequest selects the best reply of a topic
type UpdateBestReplyRequest struct {
	BestReplyID uint `json:"best_reply_id" binding:"required" example:"5"`
}

// TopicRow is a topic joined with its author and category names
type TopicRow struct {
	ID           uint
	Title        string
	UserID       uint
	Author       string
	IsLocked     bool
	BestReplyID  *uint
	CategoryID   uint
	CategoryName string
}

// TopicResponse represents the response for topic operations
type TopicResponse struct {
	ID           uint        `json:"id" example:"1"`
	Title        string      `json:"title" example:"How do I start?"`
	UserID       uint        `json:"user_id" example:"1"`
	Author       string      `json:"author" example:"alice"`
	Status       TopicStatus `json:"status" example:"open"`
	BestReplyID  *uint       `json:"best_reply_id" example:"5"`
	CategoryID   uint        `json:"category_id" example:"1"`
	CategoryName string      `json:"category_name" example:"General"`
}

// ToTopicResponse maps a joined topic row to its response form
func ToTopicResponse(row TopicRow) TopicResponse {
	return TopicResponse{
		ID:           row.ID,
		Title:        row.Title,
		UserID:       row.UserID,
		Author:       row.Author,
		Status:       StatusFromLocked(row.IsLocked),
		BestReplyID:  row.BestReplyID,
		CategoryID:   row.CategoryID,
		CategoryName: row.CategoryName,
	}
}

// TopicsPage is one page of a topic listing
type TopicsPage struct {
	Topics         []TopicResponse `json:"topics"`
	PaginationInfo PaginationInfo  `json:"pagination_info"`
	Links          Links           `json:"links"`
}

// TopicRepliesPage is a topic together with one page of its replies
type TopicRepliesPage struct {
	Topic          TopicResponse   `json:"topic"`
	Replies        []ReplyResponse `json:"replies"`
	PaginationInfo PaginationInfo  `json:"pagination_info"`
	Links          Links           `json:"links"`
}
