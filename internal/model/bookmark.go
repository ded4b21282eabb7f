package model

// Bookmark joins users to learning resources. The composite unique index
// makes a duplicate insert a constraint violation, which the repository
// treats as a soft success.
// swagger:model Bookmark
type Bookmark struct {
	BaseModel
	UserID     uint `gorm:"uniqueIndex:idx_user_resource;not null" json:"user_id"`
	ResourceID uint `gorm:"uniqueIndex:idx_user_resource;not null" json:"resource_id"`
}

func (Bookmark) TableName() string {
	return "bookmarks"
}
