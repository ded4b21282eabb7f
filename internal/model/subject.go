package model

// swagger:model Subject
type Subject struct {
	BaseModel
	Name        string `gorm:"size:255;not null" json:"name"`
	Semester    int    `gorm:"index;not null" json:"semester"`
	Description string `gorm:"type:text" json:"description"`
	TotalTopics int    `gorm:"default:0" json:"total_topics"`
}

func (Subject) TableName() string {
	return "subjects"
}
