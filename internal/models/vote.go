package models

// VoteType is the direction of a vote
type VoteType string

const (
	VoteUp   VoteType = "up"
	VoteDown VoteType = "down"
)

// ParseVoteType validates a vote type coming from a request
func ParseVoteType(s string) (VoteType, bool) {
	switch VoteType(s) {
	case VoteUp, VoteDown:
		return VoteType(s), true
	}
	return "", false
}

// Vote is one user's judgment on one reply; the pair is the primary key
type Vote struct {
	UserID  uint     `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	ReplyID uint     `json:"reply_id" gorm:"primaryKey;autoIncrement:false;index"`
	Type    VoteType `json:"type" gorm:"type:varchar(4);not null"`

	// Relationships
	User  User  `json:"-" gorm:"foreignKey:UserID;references:ID"`
	Reply Reply `json:"-" gorm:"foreignKey:ReplyID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Vote model
func (Vote) TableName() string {
	return "votes"
}

// VoteResult is the outcome of an add-or-switch request
type VoteResult struct {
	Message string `json:"message" example:"You upvoted reply with ID: 5"`
	Created bool   `json:"-"`
}

// VoteCountResponse is the number of votes of one type for a reply
type VoteCountResponse struct {
	ReplyID uint     `json:"reply_id" example:"5"`
	Type    VoteType `json:"type" example:"up"`
	Count   int64    `json:"count" example:"3"`
}
