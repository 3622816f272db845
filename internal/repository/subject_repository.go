package repository

import (
	"eduz_backend/internal/model"

	"gorm.io/gorm"
)

// SubjectRepository covers the whole subject/branch/topic taxonomy.
type SubjectRepository struct {
	DB *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) *SubjectRepository {
	return &SubjectRepository{DB: db}
}

func (r *SubjectRepository) ListSubjects() ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.DB.Order("name, level").Find(&subjects).Error
	return subjects, err
}

func (r *SubjectRepository) CreateSubject(subject *model.Subject) error {
	return r.DB.Create(subject).Error
}

func (r *SubjectRepository) FindSubjectByID(id uint) (*model.Subject, error) {
	var subject model.Subject
	err := r.DB.First(&subject, id).Error
	return &subject, err
}

func (r *SubjectRepository) FindSubjectByGceID(gceID string) (*model.Subject, error) {
	var subject model.Subject
	err := r.DB.Where("gce_id = ?", gceID).First(&subject).Error
	return &subject, err
}

func (r *SubjectRepository) CreateBranch(branch *model.Branch) error {
	return r.DB.Create(branch).Error
}

func (r *SubjectRepository) ListBranches(subjectID *uint) ([]model.Branch, error) {
	q := r.DB.Model(&model.Branch{})
	if subjectID != nil {
		q = q.Where("subject_id = ?", *subjectID)
	}
	var branches []model.Branch
	err := q.Order("name").Find(&branches).Error
	return branches, err
}

func (r *SubjectRepository) FindBranchByID(id uint) (*model.Branch, error) {
	var branch model.Branch
	err := r.DB.First(&branch, id).Error
	return &branch, err
}

func (r *SubjectRepository) CreateTopic(topic *model.Topic) error {
	return r.DB.Create(topic).Error
}

func (r *SubjectRepository) ListTopics(subjectID, branchID *uint) ([]model.Topic, error) {
	q := r.DB.Model(&model.Topic{})
	if subjectID != nil {
		q = q.Where("subject_id = ?", *subjectID)
	}
	if branchID != nil {
		q = q.Where("branch_id = ?", *branchID)
	}
	var topics []model.Topic
	err := q.Order("name").Find(&topics).Error
	return topics, err
}

func (r *SubjectRepository) FindTopicByID(id uint) (*model.Topic, error) {
	var topic model.Topic
	err := r.DB.First(&topic, id).Error
	return &topic, err
}
