package repository

import (
	"eduz_backend/internal/model"

	"gorm.io/gorm"
)

// QuestionScope narrows a question query to a subject, branch or topic.
// Nil fields are ignored; the subject filter goes through the topic table
// because questions reference subjects only via their topic.
type QuestionScope struct {
	SubjectID *uint
	BranchID  *uint
	TopicID   *uint
}

func (s QuestionScope) Empty() bool {
	return s.SubjectID == nil && s.BranchID == nil && s.TopicID == nil
}

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	err := r.DB.First(&question, id).Error
	return &question, err
}

func (r *QuestionRepository) FindByIDs(ids []uint) ([]model.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var questions []model.Question
	err := r.DB.Where("id IN ?", ids).Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) ListApproved(scope QuestionScope) ([]model.Question, error) {
	q := r.DB.Model(&model.Question{}).Where("questions.approved = ?", true)
	q = applyScope(q, scope)

	var questions []model.Question
	err := q.Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) ListUnapproved() ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("approved = ?", false).Order("created_at").Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) SetApproved(id uint, approved bool) error {
	res := r.DB.Model(&model.Question{}).Where("id = ?", id).Update("approved", approved)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *QuestionRepository) Delete(id uint) error {
	res := r.DB.Delete(&model.Question{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func applyScope(q *gorm.DB, scope QuestionScope) *gorm.DB {
	if scope.TopicID != nil {
		q = q.Where("questions.topic_id = ?", *scope.TopicID)
	}
	if scope.BranchID != nil {
		q = q.Where("questions.branch_id = ?", *scope.BranchID)
	}
	if scope.SubjectID != nil {
		q = q.Joins("JOIN topics ON topics.id = questions.topic_id").
			Where("topics.subject_id = ?", *scope.SubjectID)
	}
	return q
}
