package repository

import (
	"learning_path_backend/internal/model"

	"gorm.io/gorm"
)

type SubjectRepository struct {
	DB *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) *SubjectRepository {
	return &SubjectRepository{DB: db}
}

// SubjectWithCompleted is a subject row annotated with the caller's count
// of completed topics. Completed is 0 for anonymous requests.
type SubjectWithCompleted struct {
	model.Subject
	Completed int `json:"completed"`
}

// List returns subjects annotated with the user's completed-topic count,
// optionally filtered by semester. semester <= 0 means all semesters,
// ordered by semester then name; a filtered list is ordered by name.
func (r *SubjectRepository) List(userID uint, semester int) ([]SubjectWithCompleted, error) {
	subQuery := `(SELECT COUNT(DISTINCT up.topic_id)
		FROM user_progress up
		JOIN topics t ON up.topic_id = t.id
		WHERE t.subject_id = subjects.id AND up.user_id = ? AND up.completion_status = 'completed') AS completed`

	query := r.DB.Model(&model.Subject{}).
		Select("subjects.*, "+subQuery, userID)

	if semester > 0 {
		query = query.Where("subjects.semester = ?", semester).Order("subjects.name")
	} else {
		query = query.Order("subjects.semester, subjects.name")
	}

	var subjects []SubjectWithCompleted
	err := query.Scan(&subjects).Error
	return subjects, err
}

func (r *SubjectRepository) FindByID(id uint) (*model.Subject, error) {
	var subject model.Subject
	err := r.DB.First(&subject, id).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}
