package model

type ResourceType string

const (
	Video   ResourceType = "video"
	Article ResourceType = "article"
)

// swagger:model LearningResource
type LearningResource struct {
	BaseModel
	TopicID    uint         `gorm:"index;not null" json:"topic_id"`
	Type       ResourceType `gorm:"size:20;not null" json:"type"`
	Title      string       `gorm:"size:255;not null" json:"title"`
	URL        string       `gorm:"size:255;not null" json:"url"`
	Language   string       `gorm:"size:20;default:'english'" json:"language"`
	Difficulty Difficulty   `gorm:"size:20" json:"difficulty"`
}

func (LearningResource) TableName() string {
	return "learning_resources"
}
