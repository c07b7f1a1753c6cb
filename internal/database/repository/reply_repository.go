package repository

import (
	"github.com/delesray/forum/internal/models"
	"github.com/delesray/forum/internal/utils"
	"gorm.io/gorm"
)

type ReplyRepository struct {
	db *gorm.DB
}

func NewReplyRepository(db *gorm.DB) *ReplyRepository {
	return &ReplyRepository{db: db}
}

// Create creates a new reply
func (r *ReplyRepository) Create(reply *models.Reply) error {
	return r.db.Create(reply).Error
}

// GetByID retrieves a non-deleted reply by ID
func (r *ReplyRepository) GetByID(id uint) (*models.Reply, error) {
	var reply models.Reply
	err := r.db.Where("id = ? AND is_deleted = ?", id, false).First(&reply).Error
	if err != nil {
		return nil, err
	}
	return &reply, nil
}

// GetIDsByTopic returns the IDs of the non-deleted replies of a topic
func (r *ReplyRepository) GetIDsByTopic(topicID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Reply{}).
		Where("topic_id = ? AND is_deleted = ?", topicID, false).
		Order("id").
		Pluck("id", &ids).Error
	return ids, err
}

// ListByTopic returns one page of a topic's replies with vote counts.
// order is "asc", "desc" or empty for ascending.
func (r *ReplyRepository) ListByTopic(topicID uint, page, size int, order string) ([]models.ReplyRow, int64, error) {
	var total int64
	err := r.db.Model(&models.Reply{}).
		Where("topic_id = ? AND is_deleted = ?", topicID, false).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	direction := "ASC"
	if order == "desc" {
		direction = "DESC"
	}

	var rows []models.ReplyRow
	err = r.db.Table("replies").
		Select("replies.id, replies.text, replies.user_id, users.username AS author, replies.topic_id, replies.is_edited, "+
			"(SELECT COUNT(*) FROM votes WHERE votes.reply_id = replies.id AND votes.type = ?) AS upvotes, "+
			"(SELECT COUNT(*) FROM votes WHERE votes.reply_id = replies.id AND votes.type = ?) AS downvotes",
			string(models.VoteUp), string(models.VoteDown)).
		Joins("JOIN users ON users.id = replies.user_id").
		Where("replies.topic_id = ? AND replies.is_deleted = ?", topicID, false).
		Order("replies.id " + direction).
		Limit(size).
		Offset(utils.CalculateOffset(page, size)).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// UpdateText replaces the text of a reply and marks it edited
func (r *ReplyRepository) UpdateText(id uint, text string) error {
	return r.db.Model(&models.Reply{}).Where("id = ?", id).
		Updates(map[string]interface{}{"text": text, "is_edited": true}).Error
}

// SoftDelete flags a reply as deleted
func (r *ReplyRepository) SoftDelete(id uint) error {
	return r.db.Model(&models.Reply{}).Where("id = ?", id).Update("is_deleted", true).Error
}
