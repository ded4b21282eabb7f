package model

type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// Topic is the smallest curriculum unit. OrderIndex defines display and
// quiz ordering within a subject.
// swagger:model Topic
type Topic struct {
	BaseModel
	SubjectID   uint       `gorm:"index;not null" json:"subject_id"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Difficulty  Difficulty `gorm:"size:20;default:'beginner'" json:"difficulty"`
	OrderIndex  int        `json:"order_index"`
}

func (Topic) TableName() string {
	return "topics"
}
