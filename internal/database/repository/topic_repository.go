package repository

import (
	"fmt"

	"github.com/delesray/forum/internal/models"
	"github.com/delesray/forum/internal/utils"
	"gorm.io/gorm"
)

// TopicSortColumns maps the sort_by values accepted by the API to columns
var TopicSortColumns = map[string]string{
	"topic_id":      "topics.id",
	"title":         "topics.title",
	"user_id":       "topics.user_id",
	"status":        "topics.is_locked",
	"best_reply_id": "topics.best_reply_id",
	"category_id":   "topics.category_id",
}

// TopicFilter narrows and orders a topic listing. All set filters are
// combined with AND.
type TopicFilter struct {
	Search     string
	Username   string
	Category   string
	CategoryID uint
	Locked     *bool

	SortBy string // key of TopicSortColumns
	Order  string // "asc", "desc" or empty

	// Visibility: admins see every category; anonymous callers (ViewerID 0)
	// see public ones; other users also see categories they hold a grant for.
	AllCategories bool
	ViewerID      uint
}

type TopicRepository struct {
	db *gorm.DB
}

func NewTopicRepository(db *gorm.DB) *TopicRepository {
	return &TopicRepository{db: db}
}

// Create creates a new topic
func (r *TopicRepository) Create(topic *models.Topic) error {
	return r.db.Create(topic).Error
}

// GetByID retrieves a topic by ID
func (r *TopicRepository) GetByID(id uint) (*models.Topic, error) {
	var topic models.Topic
	err := r.db.First(&topic, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

// Exists checks if a topic exists
func (r *TopicRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Topic{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// GetRowByID retrieves a topic joined with its author and category
func (r *TopicRepository) GetRowByID(id uint) (*models.TopicRow, error) {
	var rows []models.TopicRow
	err := r.joined().Where("topics.id = ?", id).Limit(1).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

// List returns one page of topics matching filter and the total match count
func (r *TopicRepository) List(filter TopicFilter, page, size int) ([]models.TopicRow, int64, error) {
	var total int64
	if err := r.filtered(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.filtered(filter)
	if column, ok := TopicSortColumns[filter.SortBy]; ok && filter.Order != "" {
		// NULL ranks above every value: last ascending, first descending
		if filter.Order == "desc" {
			query = query.Order(fmt.Sprintf("%s IS NULL DESC, %s DESC", column, column))
		} else {
			query = query.Order(fmt.Sprintf("%s IS NULL, %s ASC", column, column))
		}
	}
	query = query.Order("topics.id ASC")

	var rows []models.TopicRow
	err := query.Limit(size).Offset(utils.CalculateOffset(page, size)).Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// UpdateLocking sets the is_locked flag
func (r *TopicRepository) UpdateLocking(id uint, isLocked bool) error {
	return r.db.Model(&models.Topic{}).Where("id = ?", id).Update("is_locked", isLocked).Error
}

// UpdateBestReply sets the best reply of a topic
func (r *TopicRepository) UpdateBestReply(id, replyID uint) error {
	return r.db.Model(&models.Topic{}).Where("id = ?", id).Update("best_reply_id", replyID).Error
}

func (r *TopicRepository) joined() *gorm.DB {
	return r.db.Table("topics").
		Select("topics.id, topics.title, topics.user_id, users.username AS author, topics.is_locked, " +
			"topics.best_reply_id, topics.category_id, categories.name AS category_name").
		Joins("JOIN users ON users.id = topics.user_id").
		Joins("JOIN categories ON categories.id = topics.category_id")
}

func (r *TopicRepository) filtered(filter TopicFilter) *gorm.DB {
	query := r.joined()

	if filter.Search != "" {
		query = query.Where(`LOWER(topics.title) LIKE ? ESCAPE '\'`, containsPattern(filter.Search))
	}
	if filter.Username != "" {
		query = query.Where("users.username = ?", filter.Username)
	}
	if filter.Category != "" {
		query = query.Where("categories.name = ?", filter.Category)
	}
	if filter.CategoryID != 0 {
		query = query.Where("topics.category_id = ?", filter.CategoryID)
	}
	if filter.Locked != nil {
		query = query.Where("topics.is_locked = ?", *filter.Locked)
	}

	if !filter.AllCategories {
		if filter.ViewerID == 0 {
			query = query.Where("categories.is_private = ?", false)
		} else {
			query = query.Where("(categories.is_private = ? OR categories.id IN (?))", false,
				r.db.Model(&models.CategoryPermission{}).Select("category_id").Where("user_id = ?", filter.ViewerID))
		}
	}
	return query
}
