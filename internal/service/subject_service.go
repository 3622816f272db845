package service

import (
	"eduz_backend/internal/model"
	"eduz_backend/internal/repository"
	"eduz_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

type SubjectService struct {
	Subjects *repository.SubjectRepository
}

func NewSubjectService(subjectRepo *repository.SubjectRepository) *SubjectService {
	return &SubjectService{Subjects: subjectRepo}
}

func (s *SubjectService) ListSubjects() ([]model.Subject, error) {
	return s.Subjects.ListSubjects()
}

type CreateSubjectRequest struct {
	Name  string `json:"name" binding:"required"`
	Level string `json:"level" binding:"required,oneof=Ordinary Advanced"`
	GceID string `json:"gceId" binding:"required"`
}

// CreateSubject registers a GCE paper. The paper code is the natural key, so
// a second subject with the same code is rejected.
func (s *SubjectService) CreateSubject(req CreateSubjectRequest) (*model.Subject, error) {
	if _, err := s.Subjects.FindSubjectByGceID(req.GceID); err == nil {
		return nil, util.ErrSubjectExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	subject := &model.Subject{Name: req.Name, Level: req.Level, GceID: req.GceID}
	if err := s.Subjects.CreateSubject(subject); err != nil {
		return nil, err
	}
	return subject, nil
}

type CreateBranchRequest struct {
	Name      string `json:"name" binding:"required"`
	SubjectID uint   `json:"subjectId" binding:"required"`
}

func (s *SubjectService) CreateBranch(req CreateBranchRequest) (*model.Branch, error) {
	if _, err := s.Subjects.FindSubjectByID(req.SubjectID); err != nil {
		return nil, notFoundOr(err, util.ErrSubjectNotFound)
	}
	branch := &model.Branch{Name: req.Name, SubjectID: req.SubjectID}
	if err := s.Subjects.CreateBranch(branch); err != nil {
		return nil, err
	}
	return branch, nil
}

func (s *SubjectService) ListBranches(subjectID *uint) ([]model.Branch, error) {
	return s.Subjects.ListBranches(subjectID)
}

type CreateTopicRequest struct {
	Name      string `json:"name" binding:"required"`
	SubjectID uint   `json:"subjectId" binding:"required"`
	BranchID  *uint  `json:"branchId"`
}

func (s *SubjectService) CreateTopic(req CreateTopicRequest) (*model.Topic, error) {
	if _, err := s.Subjects.FindSubjectByID(req.SubjectID); err != nil {
		return nil, notFoundOr(err, util.ErrSubjectNotFound)
	}
	if req.BranchID != nil {
		branch, err := s.Subjects.FindBranchByID(*req.BranchID)
		if err != nil {
			return nil, notFoundOr(err, util.ErrBranchNotFound)
		}
		if branch.SubjectID != req.SubjectID {
			return nil, util.ErrBranchNotFound
		}
	}
	topic := &model.Topic{Name: req.Name, SubjectID: req.SubjectID, BranchID: req.BranchID}
	if err := s.Subjects.CreateTopic(topic); err != nil {
		return nil, err
	}
	return topic, nil
}

func (s *SubjectService) ListTopics(subjectID, branchID *uint) ([]model.Topic, error) {
	return s.Subjects.ListTopics(subjectID, branchID)
}
