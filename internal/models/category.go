package models

// Category groups topics; private categories are gated by permission grants
type Category struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"type:varchar(45);not null;uniqueIndex:idx_categories_name"`
	IsLocked  bool   `json:"is_locked" gorm:"default:false"`
	IsPrivate bool   `json:"is_private" gorm:"default:false"`
}

// TableName specifies the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// CreateCategoryRequest represents the request to create a category (admin only)
type CreateCategoryRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=45" example:"General"`
	IsLocked  bool   `json:"is_locked" example:"false"`
	IsPrivate bool   `json:"is_private" example:"false"`
}

// CategoryTopicsPage is a category together with one page of its topics
type CategoryTopicsPage struct {
	Category       Category        `json:"category"`
	Topics         []TopicResponse `json:"topics"`
	PaginationInfo PaginationInfo  `json:"pagination_info"`
	Links          Links           `json:"links"`
}
