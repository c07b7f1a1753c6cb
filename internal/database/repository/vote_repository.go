package repository

import (
	"github.com/delesray/forum/internal/models"
	"gorm.io/gorm"
)

type VoteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

// Get retrieves the vote of a user on a reply
func (r *VoteRepository) Get(userID, replyID uint) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.Where("user_id = ? AND reply_id = ?", userID, replyID).First(&vote).Error
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

// Create stores a new vote
func (r *VoteRepository) Create(vote *models.Vote) error {
	return r.db.Create(vote).Error
}

// UpdateType overwrites the type of an existing vote in place
func (r *VoteRepository) UpdateType(userID, replyID uint, voteType models.VoteType) error {
	return r.db.Model(&models.Vote{}).
		Where("user_id = ? AND reply_id = ?", userID, replyID).
		Update("type", voteType).Error
}

// Delete removes a vote; deleting a missing vote affects no rows
func (r *VoteRepository) Delete(userID, replyID uint) (int64, error) {
	result := r.db.Where("user_id = ? AND reply_id = ?", userID, replyID).Delete(&models.Vote{})
	return result.RowsAffected, result.Error
}

// CountByType counts the votes of one type on a reply
func (r *VoteRepository) CountByType(replyID uint, voteType models.VoteType) (int64, error) {
	var count int64
	err := r.db.Model(&models.Vote{}).
		Where("reply_id = ? AND type = ?", replyID, voteType).
		Count(&count).Error
	return count, err
}
